package phonology

import (
	"strings"
)

// romanTable is the closed IPA to Latin transliteration. Symbols absent from
// the table pass through unchanged.
var romanTable = [...][2]string{
	// digraph consonants
	{"ʃ", "sh"},
	{"ʧ", "ch"},
	{"ʤ", "j"},
	{"ŋ", "ng"},
	{"θ", "th"},
	{"ð", "dh"},
	{"ʒ", "zh"},
	{"ɲ", "ny"},
	{"χ", "kh"},
	{"ɣ", "gh"},
	{"ɬ", "lh"},
	{"ʦ", "ts"},
	// single-letter consonants
	{"ʔ", "'"},
	{"ɾ", "r"},
	{"ɹ", "r"},
	{"ʁ", "r"},
	{"ɦ", "h"},
	{"ɸ", "f"},
	{"β", "v"},
	{"ɡ", "g"},
	{"p", "p"},
	{"b", "b"},
	{"t", "t"},
	{"d", "d"},
	{"k", "k"},
	{"g", "g"},
	{"q", "q"},
	{"m", "m"},
	{"n", "n"},
	{"f", "f"},
	{"v", "v"},
	{"s", "s"},
	{"z", "z"},
	{"h", "h"},
	{"x", "x"},
	{"l", "l"},
	{"r", "r"},
	{"w", "w"},
	{"j", "j"},
	// vowels
	{"a", "a"},
	{"e", "e"},
	{"i", "i"},
	{"o", "o"},
	{"u", "u"},
	{"y", "y"},
	{"ə", "e"},
	{"ɛ", "e"},
	{"ɔ", "o"},
	{"ɪ", "i"},
	{"ʊ", "u"},
	{"ɑ", "a"},
	{"æ", "ae"},
	{"ø", "oe"},
	{"ɨ", "i"},
	{"ɯ", "u"},
	{"ː", ""},
	// tone marks
	{"¹", "¹"},
	{"²", "²"},
	{"³", "³"},
	{"⁴", "⁴"},
	{"⁵", "⁵"},
	{"⁶", "⁶"},
	{"⁷", "⁷"},
	{"⁸", "⁸"},
	{"⁹", "⁹"},
}

var romanReplacer = func() *strings.Replacer {
	pairs := make([]string, 0, len(romanTable)*2)
	for _, p := range romanTable {
		pairs = append(pairs, p[0], p[1])
	}
	return strings.NewReplacer(pairs...)
}()

// Romanize transliterates an IPA string symbol by symbol. It is pure.
func Romanize(ipa string) string {
	return romanReplacer.Replace(ipa)
}

// RomanizationTable returns a copy of the transliteration table in display
// order.
func RomanizationTable() [][2]string {
	out := make([][2]string, len(romanTable))
	copy(out, romanTable[:])
	return out
}

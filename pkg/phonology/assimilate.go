package phonology

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// consonantPreferences lists, for each source letter, the target sounds in
// order of phonetic closeness. When none is in the inventory the first
// inventory consonant is used.
var consonantPreferences = map[rune][]string{
	'b': {"b", "p", "v", "β"},
	'c': {"k", "s", "ʧ"},
	'd': {"d", "t", "ð"},
	'f': {"f", "v", "p", "ɸ"},
	'g': {"g", "k", "ɣ"},
	'h': {"h", "x", "ɦ", "k"},
	'j': {"ʤ", "ʒ", "j", "y"},
	'k': {"k", "g", "x", "q"},
	'l': {"l", "r", "ɾ"},
	'm': {"m", "n", "b"},
	'n': {"n", "m", "ŋ"},
	'p': {"p", "b", "f"},
	'q': {"k", "q", "g"},
	'r': {"r", "ɾ", "ɹ", "l"},
	's': {"s", "z", "ʃ", "θ"},
	't': {"t", "d", "θ"},
	'v': {"v", "f", "b", "w"},
	'w': {"w", "v", "u"},
	'x': {"k", "x", "s"},
	'z': {"z", "s", "ʒ"},
}

// vowelPreferences is the vowel counterpart of consonantPreferences; the
// fallback is the first inventory vowel.
var vowelPreferences = map[rune][]string{
	'a': {"a", "ɑ", "ə", "e"},
	'e': {"e", "ɛ", "ə", "i"},
	'i': {"i", "ɪ", "e"},
	'o': {"o", "ɔ", "u"},
	'u': {"u", "ʊ", "o"},
	'y': {"i", "y", "ɪ", "e"},
}

var lower = cases.Lower(language.Und)

// AssimilateLoanword maps each letter of a foreign word onto the closest
// sound in the target inventory. Diacritics are stripped first; characters
// with no preference list are dropped.
func AssimilateLoanword(word string, consonants, vowels []string) string {
	src := norm.NFD.String(lower.String(word))

	var sb strings.Builder

	for _, r := range src {
		if unicode.Is(unicode.Mn, r) {
			continue
		}

		if prefs, ok := vowelPreferences[r]; ok {
			sb.WriteString(closest(prefs, vowels))
			continue
		}

		if prefs, ok := consonantPreferences[r]; ok {
			sb.WriteString(closest(prefs, consonants))
		}
	}

	return norm.NFC.String(sb.String())
}

func closest(prefs, inventory []string) string {
	for _, p := range prefs {
		if slices.Contains(inventory, p) {
			return p
		}
	}

	if len(inventory) > 0 {
		return inventory[0]
	}

	return ""
}

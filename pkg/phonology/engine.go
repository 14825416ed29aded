// Package phonology synthesizes word forms from a phoneme inventory and
// syllable templates, applies contextual sound changes, and converts IPA
// strings into a Latin romanization.
package phonology

import (
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"
)

const (
	// SlotConsonant marks a consonant slot in a syllable template.
	SlotConsonant = 'C'

	// SlotVowel marks a vowel slot in a syllable template.
	SlotVowel = 'V'

	// MaxTones is the largest tone count that has a marker glyph.
	MaxTones = 9
)

// toneMarks are the superscript numerals appended for tones 1 through 9.
var toneMarks = [MaxTones]string{
	"\u00b9", // ¹
	"\u00b2", // ²
	"\u00b3", // ³
	"\u2074", // ⁴
	"\u2075", // ⁵
	"\u2076", // ⁶
	"\u2077", // ⁷
	"\u2078", // ⁸
	"\u2079", // ⁹
}

// Inventory is the phoneme inventory of a language. Order matters: the
// first symbol of each list is the fallback target during loanword
// assimilation.
type Inventory struct {
	Consonants []string `toml:"consonants" yaml:"consonants" json:"consonants"`
	Vowels     []string `toml:"vowels" yaml:"vowels" json:"vowels"`
}

// Empty reports whether either list has no symbols, in which case no word
// can be synthesized.
func (i Inventory) Empty() bool {
	return len(i.Consonants) == 0 || len(i.Vowels) == 0
}

// ToneConfig controls tone marking of generated words.
type ToneConfig struct {
	Enabled bool `toml:"enabled" yaml:"enabled" json:"enabled"`
	Count   int  `toml:"count" yaml:"count" json:"count"`
}

// ToneMark returns the marker glyph for tone n, where n is 1-based.
func ToneMark(n int) string {
	if n < 1 || n > MaxTones {
		return ""
	}
	return toneMarks[n-1]
}

// Engine draws every random choice of word synthesis from a single source.
// It is not safe for concurrent use, as *rand.Rand is not.
type Engine struct {
	rng    *rand.Rand
	logger *log.Logger
}

func NewEngine(rng *rand.Rand, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Engine{
		rng:    rng,
		logger: logger,
	}
}

// SynthesizeWord picks one template uniformly at random and fills each
// slot with a uniformly random consonant or vowel. It returns false when
// the inventory or template set is empty. Template symbols other than C
// and V contribute nothing.
func (e *Engine) SynthesizeWord(inv Inventory, templates []string) (
	string,
	bool,
) {
	if inv.Empty() || len(templates) == 0 {
		return "", false
	}

	template := templates[e.rng.IntN(len(templates))]

	word := make([]byte, 0, len(template)*2)

	for _, slot := range template {
		switch slot {
		case SlotConsonant:
			word = append(word, inv.Consonants[e.rng.IntN(len(inv.Consonants))]...)
		case SlotVowel:
			word = append(word, inv.Vowels[e.rng.IntN(len(inv.Vowels))]...)
		}
	}

	return string(word), true
}

// ApplyRules applies rules in order, each to the output of the last.
// Malformed rules are logged and skipped.
func (e *Engine) ApplyRules(word string, rules []Rule, vowels []string) string {
	return ApplyRules(word, rules, vowels, e.logger)
}

// ApplyTone appends exactly one tone marker drawn uniformly from
// 1..tone.Count. Counts above MaxTones are clamped.
func (e *Engine) ApplyTone(word string, tone ToneConfig) string {
	if !tone.Enabled || tone.Count < 1 {
		return word
	}

	n := min(tone.Count, MaxTones)

	return word + ToneMark(e.rng.IntN(n)+1)
}

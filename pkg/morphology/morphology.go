// Package morphology derives new lexical entries from existing ones, either
// regularly by affixation or irregularly by vowel mutation.
package morphology

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"codeberg.org/n30w/nimi/pkg/memory"
	"codeberg.org/n30w/nimi/pkg/phonology"
)

type AffixType string

const (
	Prefix AffixType = "prefix"
	Suffix AffixType = "suffix"
)

// Morpheme is a derivational affix. Func labels what the affix does and
// becomes the part of speech of every word derived with it.
type Morpheme struct {
	Type AffixType `toml:"type" yaml:"type" json:"type"`
	Form string    `toml:"form" yaml:"form" json:"form"`
	Func string    `toml:"func" yaml:"func" json:"func"`
}

func (m Morpheme) Validate() error {
	if m.Type != Prefix && m.Type != Suffix {
		return errors.Errorf("morpheme %q: type must be prefix or suffix, got %q", m.Func, m.Type)
	}
	if m.Form == "" {
		return errors.Errorf("morpheme %q: empty form", m.Func)
	}
	if m.Func == "" {
		return errors.Errorf("morpheme %q: empty function label", m.Form)
	}
	return nil
}

// DeriveRegular attaches m to entry. The result's part of speech is the
// morpheme's function and it carries no gender.
func DeriveRegular(entry memory.Entry, m Morpheme) memory.Entry {
	base := entry.Phonemic()
	affix := phonology.Romanize(m.Form)

	var ipa, roman string

	switch m.Type {
	case Prefix:
		ipa = m.Form + base
		roman = affix + entry.Roman
	default:
		ipa = base + m.Form
		roman = entry.Roman + affix
	}

	return memory.Entry{
		IPA:          memory.WrapIPA(ipa),
		Roman:        roman,
		PartOfSpeech: memory.PartOfSpeech(m.Func),
		Meaning:      fmt.Sprintf("%s (%s)", entry.Meaning, m.Func),
	}
}

// DeriveIrregular replaces the last vowel of entry with a vowel drawn
// uniformly from vowels. Gender is carried over. It returns false when
// vowels is empty or the entry has no vowel to mutate.
func DeriveIrregular(
	entry memory.Entry,
	m Morpheme,
	vowels []string,
	rng *rand.Rand,
) (memory.Entry, bool) {
	if len(vowels) == 0 {
		return memory.Entry{}, false
	}

	segments := phonology.Segments(entry.Phonemic(), vowels)

	last := -1
	for i, s := range segments {
		if slices.Contains(vowels, s) {
			last = i
		}
	}

	if last < 0 {
		return memory.Entry{}, false
	}

	segments[last] = vowels[rng.IntN(len(vowels))]

	ipa := strings.Join(segments, "")

	return memory.Entry{
		IPA:          memory.WrapIPA(ipa),
		Roman:        phonology.Romanize(ipa),
		PartOfSpeech: memory.PartOfSpeech(m.Func),
		Meaning:      fmt.Sprintf("%s (irregular %s)", entry.Meaning, m.Func),
		Gender:       entry.Gender,
	}, true
}

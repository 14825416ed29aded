// Package grammar composes example sentences from a generated dictionary
// under configurable word order, case marking, tense, and agreement.
package grammar

import (
	"slices"
	"strings"

	"github.com/pkg/errors"

	"codeberg.org/n30w/nimi/pkg/memory"
	"codeberg.org/n30w/nimi/pkg/morphology"
)

// WordOrder is a permutation of S, O and V, e.g. "SOV".
type WordOrder string

const DefaultWordOrder WordOrder = "SOV"

func (w WordOrder) Valid() bool {
	if len(w) != 3 {
		return false
	}
	s := []byte(w)
	slices.Sort(s)
	return string(s) == "OSV"
}

type AdjectiveOrder string

const (
	AdjectiveNoun AdjectiveOrder = "AN"
	NounAdjective AdjectiveOrder = "NA"
)

type CaseMarking string

const (
	CaseSuffix       CaseMarking = "suffix"
	CasePrefix       CaseMarking = "prefix"
	CasePostposition CaseMarking = "postposition"
)

// Mark attaches marker to phrase.
func (c CaseMarking) Mark(phrase, marker string) string {
	if marker == "" {
		return phrase
	}

	switch c {
	case CasePrefix:
		return marker + "-" + phrase
	case CasePostposition:
		return phrase + " " + marker
	default:
		return phrase + "-" + marker
	}
}

type Tense struct {
	Name   string `toml:"name" yaml:"name" json:"name"`
	Marker string `toml:"marker" yaml:"marker" json:"marker"`
}

// Table holds the grammatical markers of a language. They are constants
// of a generation session and are not derived from the inventory.
type Table struct {
	SubjectMarker string  `toml:"subject_marker" yaml:"subject_marker" json:"subject_marker"`
	ObjectMarker  string  `toml:"object_marker" yaml:"object_marker" json:"object_marker"`
	PluralMarker  string  `toml:"plural_marker" yaml:"plural_marker" json:"plural_marker"`
	Tenses        []Tense `toml:"tenses" yaml:"tenses" json:"tenses"`
}

func DefaultTable() Table {
	return Table{
		SubjectMarker: "ga",
		ObjectMarker:  "wo",
		PluralMarker:  "ri",
		Tenses: []Tense{
			{Name: "past", Marker: "ta"},
			{Name: "present", Marker: "ru"},
			{Name: "future", Marker: "mas"},
		},
	}
}

func (t Table) Validate() error {
	if len(t.Tenses) == 0 {
		return errors.New("grammar table needs at least one tense")
	}

	seen := make(map[string]struct{}, len(t.Tenses))

	for _, tense := range t.Tenses {
		name := strings.TrimSpace(tense.Name)
		if name == "" {
			return errors.New("tense with empty name")
		}
		if _, ok := seen[name]; ok {
			return errors.Errorf("duplicate tense %q", name)
		}
		seen[name] = struct{}{}
	}

	return nil
}

// MorphoSyntax is the morphological and syntactic part of a language
// configuration.
type MorphoSyntax struct {
	WordOrder             WordOrder             `toml:"word_order" yaml:"word_order" json:"word_order"`
	AdjectiveOrder        AdjectiveOrder        `toml:"adjective_order" yaml:"adjective_order" json:"adjective_order"`
	CaseMarking           CaseMarking           `toml:"case_marking" yaml:"case_marking" json:"case_marking"`
	IrregularityRate      float64               `toml:"irregularity_rate" yaml:"irregularity_rate" json:"irregularity_rate"`
	GrammaticalGender     memory.GenderSystem   `toml:"grammatical_gender" yaml:"grammatical_gender" json:"grammatical_gender"`
	GenderAgreement       bool                  `toml:"gender_agreement" yaml:"gender_agreement" json:"gender_agreement"`
	DerivationalMorphemes []morphology.Morpheme `toml:"derivational_morphemes" yaml:"derivational_morphemes" json:"derivational_morphemes"`

	// PluralRate is the chance that a sentence's object is pluralized.
	PluralRate float64 `toml:"plural_rate" yaml:"plural_rate" json:"plural_rate"`
}

func (m MorphoSyntax) Validate() error {
	if !m.WordOrder.Valid() {
		return errors.Errorf("word order %q is not a permutation of S, O, V", m.WordOrder)
	}

	switch m.AdjectiveOrder {
	case AdjectiveNoun, NounAdjective:
	default:
		return errors.Errorf("adjective order must be AN or NA, got %q", m.AdjectiveOrder)
	}

	switch m.CaseMarking {
	case CaseSuffix, CasePrefix, CasePostposition:
	default:
		return errors.Errorf(
			"case marking must be suffix, prefix or postposition, got %q",
			m.CaseMarking,
		)
	}

	if m.IrregularityRate < 0 || m.IrregularityRate > 1 {
		return errors.Errorf("irregularity rate %v outside [0, 1]", m.IrregularityRate)
	}

	if m.PluralRate < 0 || m.PluralRate > 1 {
		return errors.Errorf("plural rate %v outside [0, 1]", m.PluralRate)
	}

	if !m.GrammaticalGender.Valid() {
		return errors.Errorf("grammatical gender must be none, mf or mfn, got %q", m.GrammaticalGender)
	}

	for _, morpheme := range m.DerivationalMorphemes {
		if err := morpheme.Validate(); err != nil {
			return err
		}
	}

	return nil
}

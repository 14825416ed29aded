package memory

import (
	"encoding/json"
	"strings"

	"github.com/invopop/jsonschema"
)

type PartOfSpeech string

const (
	Noun      PartOfSpeech = "noun"
	Verb      PartOfSpeech = "verb"
	Adjective PartOfSpeech = "adjective"
)

// BasePartsOfSpeech are the categories a root can be assigned. Derived
// entries take their morpheme's function label instead.
func BasePartsOfSpeech() []PartOfSpeech {
	return []PartOfSpeech{Noun, Verb, Adjective}
}

func (p PartOfSpeech) String() string {
	return string(p)
}

type Gender int32

const (
	NoGender Gender = iota
	Masculine
	Feminine
	Neuter
)

func (g Gender) String() string {
	switch g {
	case Masculine:
		return "masculine"
	case Feminine:
		return "feminine"
	case Neuter:
		return "neuter"
	default:
		return ""
	}
}

// Agreement is the suffix an adjective takes when modifying a noun of
// this gender.
func (g Gender) Agreement() string {
	switch g {
	case Masculine:
		return "-o"
	case Feminine:
		return "-a"
	case Neuter:
		return "-e"
	default:
		return ""
	}
}

func (g Gender) MarshalJSON() ([]byte, error) {
	if g == NoGender {
		return []byte("null"), nil
	}

	return json.Marshal(g.String())
}

func (g *Gender) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*g = NoGender
		return nil
	}

	var s string

	err := json.Unmarshal(b, &s)
	if err != nil {
		return err
	}

	switch strings.ToLower(s) {
	default:
		*g = NoGender
	case "masculine":
		*g = Masculine
	case "feminine":
		*g = Feminine
	case "neuter":
		*g = Neuter
	}

	return nil
}

func (Gender) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{
				Type: "string",
				Enum: []any{"masculine", "feminine", "neuter"},
			},
			{Type: "null"},
		},
		Description: "Grammatical gender, null when the entry has none",
	}
}

// GenderSystem selects which genders nouns are assigned.
type GenderSystem string

const (
	GenderNone GenderSystem = "none"
	GenderMF   GenderSystem = "mf"
	GenderMFN  GenderSystem = "mfn"
)

// Genders returns the assignable genders, or nil for GenderNone.
func (s GenderSystem) Genders() []Gender {
	switch s {
	case GenderMF:
		return []Gender{Masculine, Feminine}
	case GenderMFN:
		return []Gender{Masculine, Feminine, Neuter}
	default:
		return nil
	}
}

func (s GenderSystem) Valid() bool {
	switch s {
	case GenderNone, GenderMF, GenderMFN, "":
		return true
	default:
		return false
	}
}

// Entry is one word of a generated lexicon. Roman is unique within a
// dictionary.
type Entry struct {
	IPA          string       `json:"ipa" jsonschema_description:"Phonemic form wrapped in slashes"`
	Roman        string       `json:"roman" jsonschema_description:"Romanized form, unique in the dictionary"`
	PartOfSpeech PartOfSpeech `json:"pos" jsonschema_description:"noun, verb, adjective, or a derivational function"`
	Meaning      string       `json:"meaning" jsonschema_description:"English gloss"`
	Gender       Gender       `json:"gender"`
}

// Phonemic returns the IPA form without its slashes.
func (e Entry) Phonemic() string {
	return UnwrapIPA(e.IPA)
}

func WrapIPA(s string) string {
	return "/" + s + "/"
}

func UnwrapIPA(s string) string {
	s = strings.TrimPrefix(s, "/")
	return strings.TrimSuffix(s, "/")
}

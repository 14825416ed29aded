package grammar

import (
	"math/rand/v2"
	"strings"

	"codeberg.org/n30w/nimi/pkg/memory"
)

// InsufficientVocabulary is returned by Compose when the dictionary cannot
// supply two nouns and a verb.
const InsufficientVocabulary = "Not enough vocabulary to build a sentence (need at least 2 nouns and 1 verb)."

const (
	adjectiveChance = 0.5

	// maxObjectDraws bounds the redraws for an object distinct from the
	// subject before falling back to the first distinct noun.
	maxObjectDraws = 10
)

// Sentence is one composed sentence with its parts.
type Sentence struct {
	Surface string `json:"surface"`
	Gloss   string `json:"gloss"`
	Tense   string `json:"tense"`
}

func (s Sentence) String() string {
	return s.Surface + " (" + s.Gloss + ")"
}

// Composer draws sentence constituents from a dictionary. It only reads
// the dictionary it is given.
type Composer struct {
	rng *rand.Rand
}

func NewComposer(rng *rand.Rand) *Composer {
	return &Composer{rng: rng}
}

// Compose returns a surface sentence followed by its parenthesized gloss,
// or InsufficientVocabulary.
func (c *Composer) Compose(dict memory.Dictionary, ms MorphoSyntax, table Table) string {
	s, ok := c.ComposeSentence(dict, ms, table)
	if !ok {
		return InsufficientVocabulary
	}
	return s.String()
}

// ComposeSentence builds one sentence. It returns false, without touching
// the grammar table, when there are fewer than two nouns or no verb.
func (c *Composer) ComposeSentence(
	dict memory.Dictionary,
	ms MorphoSyntax,
	table Table,
) (Sentence, bool) {
	nouns := dict.Filter(memory.Noun)
	verbs := dict.Filter(memory.Verb)
	adjectives := dict.Filter(memory.Adjective)

	if len(nouns) < 2 || len(verbs) == 0 {
		return Sentence{}, false
	}

	subject := nouns[c.rng.IntN(len(nouns))]
	object := c.drawObject(nouns, subject)
	verb := verbs[c.rng.IntN(len(verbs))]

	subjectPhrase := subject.Roman
	subjectGloss := subject.Meaning

	if len(adjectives) > 0 && c.rng.Float64() < adjectiveChance {
		adj := adjectives[c.rng.IntN(len(adjectives))]

		form := adj.Roman
		if ms.GenderAgreement {
			form += subject.Gender.Agreement()
		}

		if ms.AdjectiveOrder == NounAdjective {
			subjectPhrase = subjectPhrase + " " + form
		} else {
			subjectPhrase = form + " " + subjectPhrase
		}

		subjectGloss = adj.Meaning + " " + subjectGloss
	}

	objectForm := object.Roman
	objectGloss := object.Meaning

	if ms.PluralRate > 0 && c.rng.Float64() < ms.PluralRate {
		objectForm = CaseSuffix.Mark(objectForm, table.PluralMarker)
		objectGloss += " (pl)"
	}

	markedSubject := ms.CaseMarking.Mark(subjectPhrase, table.SubjectMarker)
	markedObject := ms.CaseMarking.Mark(objectForm, table.ObjectMarker)

	markedVerb := verb.Roman
	tenseName := ""

	if len(table.Tenses) > 0 {
		tense := table.Tenses[c.rng.IntN(len(table.Tenses))]
		markedVerb += "-" + tense.Marker
		tenseName = tense.Name
	}

	order := ms.WordOrder
	if !order.Valid() {
		order = DefaultWordOrder
	}

	constituents := make([]string, 0, 3)

	for _, slot := range order {
		switch slot {
		case 'S':
			constituents = append(constituents, markedSubject)
		case 'O':
			constituents = append(constituents, markedObject)
		case 'V':
			constituents = append(constituents, markedVerb)
		}
	}

	gloss := subjectGloss + " " + verb.Meaning
	if tenseName != "" {
		gloss += " [" + tenseName + "]"
	}
	gloss += " " + objectGloss

	return Sentence{
		Surface: strings.Join(constituents, " ") + ".",
		Gloss:   gloss,
		Tense:   tenseName,
	}, true
}

func (c *Composer) drawObject(nouns []memory.Entry, subject memory.Entry) memory.Entry {
	for range maxObjectDraws {
		object := nouns[c.rng.IntN(len(nouns))]
		if object.Roman != subject.Roman {
			return object
		}
	}

	for _, n := range nouns {
		if n.Roman != subject.Roman {
			return n
		}
	}

	return subject
}

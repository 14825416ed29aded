// Package conlang is the entry point of the generator. It ties the
// phonology, lexicon, and grammar packages together behind one seeded
// random source.
package conlang

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"codeberg.org/n30w/nimi/pkg/config"
	"codeberg.org/n30w/nimi/pkg/grammar"
	"codeberg.org/n30w/nimi/pkg/lexicon"
	"codeberg.org/n30w/nimi/pkg/memory"
	"codeberg.org/n30w/nimi/pkg/phonology"
)

// Generator produces lexicons and sentences from a single seeded source.
// It is not safe for concurrent use; create one per goroutine.
type Generator struct {
	seed     uint64
	builder  *lexicon.Builder
	composer *grammar.Composer
	logger   *log.Logger
}

// NewGenerator returns a Generator seeded with seed. A zero seed is
// replaced by one taken from the clock.
func NewGenerator(seed uint64, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	rng := rand.New(rand.NewPCG(seed, seed))

	return &Generator{
		seed:     seed,
		builder:  lexicon.NewBuilder(rng, logger),
		composer: grammar.NewComposer(rng),
		logger:   logger,
	}
}

func (g *Generator) Seed() uint64 {
	return g.seed
}

// GenerateLexicon builds a new dictionary. It never fails; insufficient
// configuration yields a short or empty dictionary.
func (g *Generator) GenerateLexicon(cfg config.Config) memory.Dictionary {
	return g.builder.Generate(cfg)
}

// GenerateSentence composes one sentence from dict, or returns
// grammar.InsufficientVocabulary.
func (g *Generator) GenerateSentence(dict memory.Dictionary, cfg config.Config) string {
	return g.composer.Compose(dict, cfg.MorphoSyntax, cfg.Grammar)
}

// GenerateSentences composes up to n independent sentences from a copy of
// dict. It returns nil when dict lacks the vocabulary for any.
func (g *Generator) GenerateSentences(
	dict memory.Dictionary,
	cfg config.Config,
	n int,
) []grammar.Sentence {
	var sentences []grammar.Sentence

	dict = dict.Copy()

	for range n {
		s, ok := g.composer.ComposeSentence(dict, cfg.MorphoSyntax, cfg.Grammar)
		if !ok {
			g.logger.Debug("not enough vocabulary for sentences", "entries", len(dict))
			return nil
		}
		sentences = append(sentences, s)
	}

	return sentences
}

// Romanize converts an IPA string with the fixed romanization table.
func Romanize(ipa string) string {
	return phonology.Romanize(ipa)
}

// Generation is the record of one generation pass.
type Generation struct {
	ID         uuid.UUID          `json:"id"`
	Name       string             `json:"name"`
	Seed       uint64             `json:"seed"`
	CreatedAt  time.Time          `json:"created_at"`
	Config     config.Config      `json:"config"`
	Dictionary memory.Dictionary  `json:"dictionary"`
	Sentences  []grammar.Sentence `json:"sentences"`
}

// Summary is the short form of a Generation used in listings and events.
type Summary struct {
	ID        uuid.UUID                   `json:"id"`
	Name      string                      `json:"name"`
	Seed      uint64                      `json:"seed"`
	CreatedAt time.Time                   `json:"created_at"`
	Entries   int                         `json:"entries"`
	Counts    map[memory.PartOfSpeech]int `json:"counts"`
}

func (g Generation) Summary() Summary {
	return Summary{
		ID:        g.ID,
		Name:      g.Name,
		Seed:      g.Seed,
		CreatedAt: g.CreatedAt,
		Entries:   len(g.Dictionary),
		Counts:    g.Dictionary.Counts(),
	}
}

// Key identifies a Generation in a memory.Store.
func (g Generation) Key() string {
	return g.ID.String()
}

// Generate validates cfg, builds a dictionary, and composes
// example sentences from it.
func Generate(cfg config.Config, sentences int, logger *log.Logger) (Generation, error) {
	err := cfg.Validate()
	if err != nil {
		return Generation{}, errors.Wrap(err, "cannot generate")
	}

	gen := NewGenerator(cfg.Seed, logger)
	cfg.Seed = gen.Seed()

	dict := gen.GenerateLexicon(cfg)

	g := Generation{
		ID:         uuid.New(),
		Name:       cfg.Name,
		Seed:       cfg.Seed,
		CreatedAt:  time.Now().UTC(),
		Config:     cfg,
		Dictionary: dict,
		Sentences:  gen.GenerateSentences(dict, cfg, sentences),
	}

	gen.logger.Info(
		"generated language",
		"id", g.ID,
		"name", g.Name,
		"seed", g.Seed,
		"entries", len(dict),
	)

	return g, nil
}

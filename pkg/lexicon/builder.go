// Package lexicon builds the dictionary of a generated language: it picks
// meanings from semantic fields, mints unique word forms for them, derives
// new words with morphemes, and borrows loanwords.
package lexicon

import (
	"io"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"codeberg.org/n30w/nimi/pkg/config"
	"codeberg.org/n30w/nimi/pkg/memory"
	"codeberg.org/n30w/nimi/pkg/morphology"
	"codeberg.org/n30w/nimi/pkg/phonology"
)

const (
	// MaxFormAttempts is how many word forms are tried for one meaning
	// before the meaning is dropped.
	MaxFormAttempts = 10

	derivationChance = 0.5
	loanwordRatio    = 0.05
)

// Builder generates dictionaries. All random draws come from one source,
// so a Builder is not safe for concurrent use.
type Builder struct {
	rng    *rand.Rand
	engine *phonology.Engine
	logger *log.Logger
}

func NewBuilder(rng *rand.Rand, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Builder{
		rng:    rng,
		engine: phonology.NewEngine(rng, logger),
		logger: logger,
	}
}

// Generate builds a fresh dictionary from cfg: roots in meaning order,
// then derived words, then loanwords. No two entries share a romanized
// form. Meanings that cannot get a unique form are dropped, so the result
// may hold fewer roots than requested.
func (b *Builder) Generate(cfg config.Config) memory.Dictionary {
	dict := make(memory.Dictionary, 0)

	if cfg.Inventory.Empty() || len(cfg.Templates) == 0 {
		b.logger.Warn("phoneme inventory or syllable templates are empty, nothing to generate")
		return dict
	}

	romans := make(map[string]struct{})
	rules := phonology.CompileRules(cfg.Rules, cfg.Inventory.Vowels, b.logger)

	add := func(e memory.Entry) bool {
		if e.Roman == "" {
			return false
		}
		if _, ok := romans[e.Roman]; ok {
			return false
		}
		romans[e.Roman] = struct{}{}
		dict = append(dict, e)
		return true
	}

	meanings := SelectMeanings(cfg.SemanticFields, cfg.RootCount, b.rng)
	if len(meanings) < cfg.RootCount {
		b.logger.Debug(
			"semantic fields ran out of meanings",
			"requested", cfg.RootCount,
			"selected", len(meanings),
		)
	}

	dict = slices.Grow(dict, len(meanings))

	for _, meaning := range meanings {
		entry, ok := b.root(cfg, rules, meaning, romans)
		if !ok {
			b.logger.Debug("dropping meaning after form collisions", "meaning", meaning)
			continue
		}
		add(entry)
	}

	roots := len(dict)

	for _, m := range cfg.MorphoSyntax.DerivationalMorphemes {
		for _, base := range dict[:roots] {
			if b.rng.Float64() >= derivationChance {
				continue
			}

			derived, ok := b.derive(base, m, cfg)
			if !ok {
				continue
			}

			if !add(derived) {
				b.logger.Debug("derived form collides", "roman", derived.Roman, "func", m.Func)
			}
		}
	}

	if cfg.Loanwords {
		n := max(1, int(float64(cfg.RootCount)*loanwordRatio))

		for range n {
			source := loanwordSources[b.rng.IntN(len(loanwordSources))]

			entry, ok := Borrow(source, cfg.Inventory)
			if !ok || !add(entry) {
				b.logger.Debug("skipping loanword", "source", source)
			}
		}
	}

	return dict
}

// root mints a word for meaning whose romanized form is not yet taken.
func (b *Builder) root(
	cfg config.Config,
	rules phonology.Rewrites,
	meaning string,
	taken map[string]struct{},
) (memory.Entry, bool) {
	for range MaxFormAttempts {
		word, ok := b.engine.SynthesizeWord(cfg.Inventory, cfg.Templates)
		if !ok {
			return memory.Entry{}, false
		}

		word = rules.Apply(word)
		word = b.engine.ApplyTone(word, cfg.Tone)

		roman := phonology.Romanize(word)
		if roman == "" {
			continue
		}
		if _, ok := taken[roman]; ok {
			continue
		}

		pos := memory.BasePartsOfSpeech()[b.rng.IntN(len(memory.BasePartsOfSpeech()))]

		var gender memory.Gender

		genders := cfg.MorphoSyntax.GrammaticalGender.Genders()
		if pos == memory.Noun && len(genders) > 0 {
			gender = genders[b.rng.IntN(len(genders))]
		}

		return memory.Entry{
			IPA:          memory.WrapIPA(word),
			Roman:        roman,
			PartOfSpeech: pos,
			Meaning:      meaning,
			Gender:       gender,
		}, true
	}

	return memory.Entry{}, false
}

func (b *Builder) derive(
	base memory.Entry,
	m morphology.Morpheme,
	cfg config.Config,
) (memory.Entry, bool) {
	if b.rng.Float64() < cfg.MorphoSyntax.IrregularityRate {
		return morphology.DeriveIrregular(base, m, cfg.Inventory.Vowels, b.rng)
	}

	return morphology.DeriveRegular(base, m), true
}

// Borrow assimilates source into inv and returns it as a noun. It returns
// false when nothing of source survives assimilation.
func Borrow(source string, inv phonology.Inventory) (memory.Entry, bool) {
	ipa := phonology.AssimilateLoanword(source, inv.Consonants, inv.Vowels)
	if ipa == "" {
		return memory.Entry{}, false
	}

	return memory.Entry{
		IPA:          memory.WrapIPA(ipa),
		Roman:        phonology.Romanize(ipa),
		PartOfSpeech: memory.Noun,
		Meaning:      source + " (loanword)",
	}, true
}

// Loanwords returns the foreign words a lexicon can borrow from.
func Loanwords() []string {
	return slices.Clone(loanwordSources[:])
}

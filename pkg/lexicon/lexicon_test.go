package lexicon

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/n30w/nimi/pkg/config"
	"codeberg.org/n30w/nimi/pkg/memory"
	"codeberg.org/n30w/nimi/pkg/morphology"
	"codeberg.org/n30w/nimi/pkg/phonology"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.RootCount = 30
	cfg.SemanticFields = []string{"nature", "animals", "actions", "colors"}
	return cfg
}

func TestSelectMeanings(t *testing.T) {
	got := SelectMeanings([]string{"nature", "animals"}, 10, newRand(1))
	require.Len(t, got, 10)

	seen := make(map[string]bool)
	for i, m := range got {
		assert.False(t, seen[m], "duplicate meaning %q", m)
		seen[m] = true

		field := "nature"
		if i%2 == 1 {
			field = "animals"
		}
		assert.Contains(t, Meanings(field), m, "meaning %d should come from %s", i, field)
	}
}

func TestSelectMeanings_UnknownFieldIsLiteral(t *testing.T) {
	got := SelectMeanings([]string{" Weaving "}, 5, newRand(2))
	assert.Equal(t, []string{"Weaving"}, got)
}

func TestSelectMeanings_Starvation(t *testing.T) {
	got := SelectMeanings([]string{"colors"}, 100, newRand(3))
	assert.Len(t, got, len(Meanings("colors")))

	assert.Nil(t, SelectMeanings(nil, 5, newRand(3)))
	assert.Nil(t, SelectMeanings([]string{"food"}, 0, newRand(3)))
}

func TestSelectMeanings_HugeCount(t *testing.T) {
	got := SelectMeanings([]string{"food"}, 1<<60, newRand(4))
	assert.Len(t, got, len(Meanings("food")))
}

func TestMeanings_ReturnsCopy(t *testing.T) {
	m := Meanings("nature")
	first := m[0]
	m[0] = "changed"

	assert.Equal(t, first, Meanings("nature")[0])
}

func TestMeanings_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Meanings("food"), Meanings("FOOD"))
	assert.Nil(t, Meanings("  "))
	assert.Len(t, Fields(), 10)
}

func TestGenerate_UniqueRomanForms(t *testing.T) {
	for seed := range uint64(20) {
		dict := NewBuilder(newRand(seed), nil).Generate(testConfig())
		require.NotEmpty(t, dict)

		seen := make(map[string]struct{}, len(dict))
		for _, e := range dict {
			_, dup := seen[e.Roman]
			require.False(t, dup, "seed %d: duplicate roman %q", seed, e.Roman)
			seen[e.Roman] = struct{}{}
		}
	}
}

func TestGenerate_Structure(t *testing.T) {
	cfg := testConfig()
	dict := NewBuilder(newRand(11), nil).Generate(cfg)

	var roots, derived, loans int

	phase := 0

	for _, e := range dict {
		switch {
		case strings.HasSuffix(e.Meaning, "(loanword)"):
			phase = max(phase, 2)
			require.Equal(t, 2, phase, "loanwords come last")
			assert.Equal(t, memory.Noun, e.PartOfSpeech)
			loans++
		case strings.HasSuffix(e.Meaning, "(agent)"),
			strings.HasSuffix(e.Meaning, "(diminutive)"),
			strings.Contains(e.Meaning, "(irregular "):
			phase = max(phase, 1)
			require.Equal(t, 1, phase, "derived entries follow roots")
			derived++
		default:
			require.Equal(t, 0, phase, "roots come first")
			assert.Contains(t, memory.BasePartsOfSpeech(), e.PartOfSpeech)

			if e.PartOfSpeech == memory.Noun {
				assert.Contains(t, []memory.Gender{memory.Masculine, memory.Feminine}, e.Gender)
			} else {
				assert.Equal(t, memory.NoGender, e.Gender)
			}

			assert.Equal(t, phonology.Romanize(e.Phonemic()), e.Roman)
			roots++
		}

		assert.True(t, strings.HasPrefix(e.IPA, "/") && strings.HasSuffix(e.IPA, "/"))
	}

	assert.GreaterOrEqual(t, roots, 1)
	assert.LessOrEqual(t, roots, cfg.RootCount)
	assert.Positive(t, derived)
	assert.LessOrEqual(t, loans, 1)
}

func TestGenerate_Reproducible(t *testing.T) {
	a := NewBuilder(newRand(5), nil).Generate(testConfig())
	b := NewBuilder(newRand(5), nil).Generate(testConfig())

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different dictionaries (-a +b):\n%s", diff)
	}
}

func TestGenerate_EmptyInventory(t *testing.T) {
	cfg := testConfig()
	cfg.Inventory.Vowels = nil

	assert.Empty(t, NewBuilder(newRand(1), nil).Generate(cfg))

	cfg = testConfig()
	cfg.Templates = nil

	assert.Empty(t, NewBuilder(newRand(1), nil).Generate(cfg))
}

func TestGenerate_CollisionsDropMeanings(t *testing.T) {
	cfg := testConfig()
	cfg.Inventory = phonology.Inventory{Consonants: []string{"p"}, Vowels: []string{"a", "i"}}
	cfg.Templates = []string{"CV"}
	cfg.Rules = nil
	cfg.MorphoSyntax.DerivationalMorphemes = nil
	cfg.Loanwords = false

	dict := NewBuilder(newRand(9), nil).Generate(cfg)

	// Only "pa" and "pi" exist.
	assert.LessOrEqual(t, len(dict), 2)
	assert.NotEmpty(t, dict)
}

func TestGenerate_RegularDerivationOnly(t *testing.T) {
	cfg := testConfig()
	cfg.Loanwords = false
	cfg.MorphoSyntax.IrregularityRate = 0
	cfg.MorphoSyntax.DerivationalMorphemes = []morphology.Morpheme{
		{Type: morphology.Suffix, Form: "zz", Func: "place"},
	}

	dict := NewBuilder(newRand(13), nil).Generate(cfg)

	var derived int

	for _, e := range dict {
		if e.PartOfSpeech != "place" {
			continue
		}

		derived++

		assert.True(t, strings.HasSuffix(e.Roman, "zz"))
		assert.True(t, strings.HasSuffix(e.Meaning, " (place)"))
		assert.Equal(t, memory.NoGender, e.Gender)

		base, ok := dict.Lookup(strings.TrimSuffix(e.Roman, "zz"))
		require.True(t, ok)
		assert.Equal(t, base.Meaning+" (place)", e.Meaning)
	}

	assert.Positive(t, derived)
}

func TestGenerate_IrregularDerivation(t *testing.T) {
	cfg := testConfig()
	cfg.Loanwords = false
	cfg.MorphoSyntax.IrregularityRate = 1
	cfg.MorphoSyntax.DerivationalMorphemes = cfg.MorphoSyntax.DerivationalMorphemes[:1]

	dict := NewBuilder(newRand(17), nil).Generate(cfg)

	bases := make(map[string]memory.Entry)
	for _, e := range dict {
		if e.PartOfSpeech != "agent" {
			bases[e.Meaning] = e
		}
	}

	var derived int

	for _, e := range dict {
		if e.PartOfSpeech != "agent" {
			continue
		}

		derived++

		meaning, ok := strings.CutSuffix(e.Meaning, " (irregular agent)")
		require.True(t, ok, e.Meaning)

		base, ok := bases[meaning]
		require.True(t, ok, meaning)
		assert.Equal(t, base.Gender, e.Gender, e.Roman)
	}

	assert.Positive(t, derived)
}

func TestGenerate_Loanwords(t *testing.T) {
	cfg := testConfig()
	cfg.RootCount = 60
	cfg.SemanticFields = Fields()
	cfg.MorphoSyntax.DerivationalMorphemes = nil

	dict := NewBuilder(newRand(21), nil).Generate(cfg)

	var loans int
	for _, e := range dict {
		if strings.HasSuffix(e.Meaning, "(loanword)") {
			loans++
		}
	}

	// floor(60 * 0.05) = 3, duplicates are skipped.
	assert.GreaterOrEqual(t, loans, 1)
	assert.LessOrEqual(t, loans, 3)
}

func TestGenerate_LogsMalformedRule(t *testing.T) {
	var buf bytes.Buffer

	cfg := testConfig()
	cfg.Rules = append(cfg.Rules, phonology.Rule{Pattern: "broken"})

	dict := NewBuilder(newRand(1), log.New(&buf)).Generate(cfg)

	assert.NotEmpty(t, dict)
	assert.Contains(t, buf.String(), "skipping malformed phonological rule")
}

func TestBorrow(t *testing.T) {
	inv := phonology.Inventory{Consonants: []string{"p", "h", "n"}, Vowels: []string{"o", "e"}}

	e, ok := Borrow("phone", inv)
	require.True(t, ok)
	assert.Equal(t, memory.Entry{
		IPA:          "/phone/",
		Roman:        "phone",
		PartOfSpeech: memory.Noun,
		Meaning:      "phone (loanword)",
	}, e)

	_, ok = Borrow("123", inv)
	assert.False(t, ok)

	assert.Len(t, Loanwords(), len(loanwordSources))
}

// Package config holds the tunable parameters of a conlang generation and
// loads them from TOML, YAML, or JSON files and the environment.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"codeberg.org/n30w/nimi/pkg/grammar"
	"codeberg.org/n30w/nimi/pkg/memory"
	"codeberg.org/n30w/nimi/pkg/morphology"
	"codeberg.org/n30w/nimi/pkg/phonology"
)

const (
	DefaultName      = "nimi"
	DefaultRootCount = 40
	DefaultToneCount = 3

	// MaxRootCount bounds the roots a single generation may request.
	MaxRootCount = 10000
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is everything a single generation reads. It is passed by value
// into the core and never mutated during a generation.
type Config struct {
	Name string `toml:"name" yaml:"name" json:"name"`

	// Seed makes a generation reproducible. Zero picks a seed from the
	// clock.
	Seed uint64 `toml:"seed" yaml:"seed" json:"seed"`

	Inventory phonology.Inventory  `toml:"inventory" yaml:"inventory" json:"inventory"`
	Templates []string             `toml:"syllable_templates" yaml:"syllable_templates" json:"syllable_templates"`
	Rules     []phonology.Rule     `toml:"rules" yaml:"rules" json:"rules"`
	Tone      phonology.ToneConfig `toml:"tone" yaml:"tone" json:"tone"`

	SemanticFields []string `toml:"semantic_fields" yaml:"semantic_fields" json:"semantic_fields"`
	RootCount      int      `toml:"root_count" yaml:"root_count" json:"root_count"`
	Loanwords      bool     `toml:"loanwords" yaml:"loanwords" json:"loanwords"`

	MorphoSyntax grammar.MorphoSyntax `toml:"morphosyntax" yaml:"morphosyntax" json:"morphosyntax"`
	Grammar      grammar.Table        `toml:"grammar" yaml:"grammar" json:"grammar"`
}

// Default returns a small, valid configuration.
func Default() Config {
	return Config{
		Name: DefaultName,
		Inventory: phonology.Inventory{
			Consonants: []string{"p", "t", "k", "m", "n", "s", "ʃ", "l", "w", "j"},
			Vowels:     []string{"a", "e", "i", "o", "u"},
		},
		Templates: []string{"CV", "CVC", "CVCV", "VCV"},
		Rules: []phonology.Rule{
			{Pattern: "n>m", Context: "_p"},
			{Pattern: "s>ʃ", Context: "_i"},
		},
		Tone: phonology.ToneConfig{Count: DefaultToneCount},
		SemanticFields: []string{
			"nature",
			"animals",
			"body",
			"family",
			"food",
		},
		RootCount: DefaultRootCount,
		Loanwords: true,
		MorphoSyntax: grammar.MorphoSyntax{
			WordOrder:         grammar.DefaultWordOrder,
			AdjectiveOrder:    grammar.AdjectiveNoun,
			CaseMarking:       grammar.CaseSuffix,
			IrregularityRate:  0.1,
			GrammaticalGender: memory.GenderMF,
			GenderAgreement:   true,
			DerivationalMorphemes: []morphology.Morpheme{
				{Type: morphology.Suffix, Form: "ka", Func: "agent"},
				{Type: morphology.Prefix, Form: "mi", Func: "diminutive"},
			},
		},
		Grammar: grammar.DefaultTable(),
	}
}

// Clone returns a copy of c that shares no slices with it.
func (c Config) Clone() Config {
	c.Inventory.Consonants = slices.Clone(c.Inventory.Consonants)
	c.Inventory.Vowels = slices.Clone(c.Inventory.Vowels)
	c.Templates = slices.Clone(c.Templates)
	c.Rules = slices.Clone(c.Rules)
	c.SemanticFields = slices.Clone(c.SemanticFields)
	c.MorphoSyntax.DerivationalMorphemes = slices.Clone(c.MorphoSyntax.DerivationalMorphemes)
	c.Grammar.Tenses = slices.Clone(c.Grammar.Tenses)
	return c
}

// Load decodes the file at path over Default. The format is chosen by the
// file extension.
func Load(path string) (Config, error) {
	cfg := Default()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		_, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return cfg, errors.Wrapf(err, "failed to decode toml config %s", path)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrapf(err, "failed to read config %s", path)
		}
		err = yaml.Unmarshal(data, &cfg)
		if err != nil {
			return cfg, errors.Wrapf(err, "failed to decode yaml config %s", path)
		}
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrapf(err, "failed to read config %s", path)
		}
		err = json.Unmarshal(data, &cfg)
		if err != nil {
			return cfg, errors.Wrapf(err, "failed to decode json config %s", path)
		}
	default:
		return cfg, errors.Errorf("unsupported config format %q", ext)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from NIMI_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := getEnv("NIMI_SEED", ""); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrap(err, "NIMI_SEED")
		}
		c.Seed = seed
	}

	if v := getEnv("NIMI_ROOT_COUNT", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "NIMI_ROOT_COUNT")
		}
		c.RootCount = n
	}

	c.MorphoSyntax.WordOrder = grammar.WordOrder(
		strings.ToUpper(getEnv("NIMI_WORD_ORDER", string(c.MorphoSyntax.WordOrder))),
	)

	if v := getEnv("NIMI_LOANWORDS", ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "NIMI_LOANWORDS")
		}
		c.Loanwords = b
	}

	return nil
}

// Validate rejects parameter values the generator cannot interpret. An
// empty inventory or template set is allowed and yields an empty lexicon.
func (c Config) Validate() error {
	if c.RootCount < 1 || c.RootCount > MaxRootCount {
		return errors.Wrapf(
			ErrInvalidConfig,
			"root count must be in 1..%d, got %d",
			MaxRootCount,
			c.RootCount,
		)
	}

	if c.Tone.Enabled && (c.Tone.Count < 1 || c.Tone.Count > phonology.MaxTones) {
		return errors.Wrapf(
			ErrInvalidConfig,
			"tone count must be in 1..%d, got %d",
			phonology.MaxTones,
			c.Tone.Count,
		)
	}

	for _, t := range c.Templates {
		if t == "" || strings.Trim(t, "CV") != "" {
			return errors.Wrapf(ErrInvalidConfig, "syllable template %q must use only C and V", t)
		}
	}

	for _, s := range slices.Concat(c.Inventory.Consonants, c.Inventory.Vowels) {
		if strings.TrimSpace(s) == "" {
			return errors.Wrap(ErrInvalidConfig, "inventory contains an empty phoneme")
		}
	}

	err := c.MorphoSyntax.Validate()
	if err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}

	err = c.Grammar.Validate()
	if err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

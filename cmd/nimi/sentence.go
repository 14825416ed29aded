package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"codeberg.org/n30w/nimi/pkg/conlang"
)

var (
	flagDictionary string

	sentenceCmd = &cobra.Command{
		Use:   "sentence",
		Short: "Compose sentences from a saved dictionary",
		Long: `sentence loads a dictionary exported with "generate --format json" and
composes example sentences with the grammar of the current configuration.`,
		Example: `  nimi sentence --dict lang.json -n 3
  nimi sentence --dict lang.json -c lang.toml`,
		Args: cobra.NoArgs,
		RunE: runSentence,
	}
)

func init() {
	sentenceCmd.Flags().StringVarP(&flagDictionary, "dict", "d", "", "dictionary JSON file")
	sentenceCmd.Flags().IntVarP(&flagSentences, "sentences", "n", DefaultSentences, "sentences to compose")
	sentenceCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "random seed, 0 picks one")

	_ = sentenceCmd.MarkFlagRequired("dict")
}

func runSentence(cmd *cobra.Command, _ []string) error {
	dict, err := loadDictionary(flagDictionary)
	if err != nil {
		return err
	}

	err = cfg.Validate()
	if err != nil {
		return err
	}

	gen := conlang.NewGenerator(flagSeed, logger)

	for range flagSentences {
		fmt.Fprintln(cmd.OutOrStdout(), gen.GenerateSentence(dict, cfg))
	}

	return nil
}

package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"codeberg.org/n30w/nimi/pkg/conlang"
	"codeberg.org/n30w/nimi/pkg/lexicon"
	"codeberg.org/n30w/nimi/pkg/phonology"
)

var flagTable bool

var romanizeCmd = &cobra.Command{
	Use:   "romanize <ipa>...",
	Short: "Romanize IPA strings",
	Example: `  nimi romanize ʃaŋ θiðo
  nimi romanize --table`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagTable {
			for _, pair := range phonology.RomanizationTable() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", pair[0], pair[1])
			}
			return nil
		}

		if len(args) == 0 {
			return errors.New("romanize needs at least one IPA string")
		}

		for _, ipa := range args {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", ipa, conlang.Romanize(ipa))
		}
		return nil
	},
}

func init() {
	romanizeCmd.Flags().BoolVar(&flagTable, "table", false, "print the romanization table")
}

var assimilateCmd = &cobra.Command{
	Use:   "assimilate <word>...",
	Short: "Borrow foreign words into the configured phoneme inventory",
	Example: `  nimi assimilate coffee telephone
  nimi assimilate -c lang.toml radio`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, word := range args {
			e, ok := lexicon.Borrow(word, cfg.Inventory)
			if !ok {
				logger.Warn("nothing of the word fits the inventory", "word", word)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", word, e.IPA, e.Roman)
		}
		return nil
	},
}

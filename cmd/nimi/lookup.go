package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/n30w/nimi/pkg/lexicon"
	"codeberg.org/n30w/nimi/pkg/memory"
	"codeberg.org/n30w/nimi/pkg/render"
)

var lookupCmd = &cobra.Command{
	Use:     "lookup <roman>...",
	Short:   "Look up words in a saved dictionary",
	Example: `  nimi lookup --dict lang.json kama tenpo`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dict, err := loadDictionary(flagDictionary)
		if err != nil {
			return err
		}

		var found memory.Dictionary

		for _, roman := range args {
			e, ok := dict.Lookup(roman)
			if !ok {
				logger.Warn("word not in dictionary", "roman", roman)
				continue
			}
			found = append(found, e)
		}

		if len(found) > 0 {
			render.DictionaryTable(cmd.OutOrStdout(), found)
		}

		return nil
	},
}

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the semantic fields and loanword sources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := cmd.OutOrStdout()

		for _, f := range lexicon.Fields() {
			fmt.Fprintf(w, "%s\t%s\n", f, strings.Join(lexicon.Meanings(f), ", "))
		}

		fmt.Fprintf(w, "loanwords\t%s\n", strings.Join(lexicon.Loanwords(), ", "))

		return nil
	},
}

func init() {
	lookupCmd.Flags().StringVarP(&flagDictionary, "dict", "d", "", "dictionary JSON file")

	_ = lookupCmd.MarkFlagRequired("dict")
}

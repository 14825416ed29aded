package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"codeberg.org/n30w/nimi/pkg/conlang"
	"codeberg.org/n30w/nimi/pkg/export"
	"codeberg.org/n30w/nimi/pkg/render"
)

var (
	flagSeed      uint64
	flagSentences int
	flagFormat    string
	flagOut       string

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate a language and print its dictionary",
		Example: `  nimi generate --seed 42
  nimi generate -c lang.toml --format json --out lang.json
  nimi generate --format csv > dictionary.csv`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}
)

func init() {
	generateCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "random seed, 0 picks one")
	generateCmd.Flags().IntVarP(&flagSentences, "sentences", "n", DefaultSentences, "example sentences to compose")
	generateCmd.Flags().StringVarP(&flagFormat, "format", "f", string(DefaultFormat), "output format: table, json or csv")
	generateCmd.Flags().StringVarP(&flagOut, "out", "o", "", "write output to this file instead of stdout")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	format := outputFormat(flagFormat)
	if !format.valid() {
		return errors.Errorf("unknown format %q", flagFormat)
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed = flagSeed
	}

	g, err := conlang.Generate(cfg, flagSentences, logger)
	if err != nil {
		return err
	}

	write := func(w io.Writer) error {
		return writeGeneration(w, g, format)
	}

	if flagOut == "" {
		return write(os.Stdout)
	}

	err = export.SaveFile(flagOut, write)
	if err != nil {
		return errors.Wrapf(err, "failed to save %s", flagOut)
	}

	logger.Info("saved generation", "path", flagOut, "format", format)

	return nil
}

func writeGeneration(w io.Writer, g conlang.Generation, format outputFormat) error {
	switch format {
	case formatJSON:
		return export.WriteJSON(w, g)
	case formatCSV:
		return export.WriteCSV(w, g.Dictionary)
	}

	fmt.Fprintln(w, render.GrammarSummary(g.Config, g.Dictionary))
	render.DictionaryTable(w, g.Dictionary)

	if len(g.Sentences) > 0 {
		fmt.Fprintln(w)
	}

	for _, s := range g.Sentences {
		fmt.Fprintln(w, s)
	}

	fmt.Fprintf(w, "\nseed %d\n", g.Seed)

	return nil
}

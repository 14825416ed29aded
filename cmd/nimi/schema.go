package main

import (
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"codeberg.org/n30w/nimi/pkg/config"
	"codeberg.org/n30w/nimi/pkg/conlang"
	"codeberg.org/n30w/nimi/pkg/export"
	"codeberg.org/n30w/nimi/pkg/memory"
)

var schemas = map[string]func() *jsonschema.Schema{
	"config":     export.Schema[config.Config],
	"entry":      export.Schema[memory.Entry],
	"dictionary": export.Schema[memory.Dictionary],
	"generation": export.Schema[conlang.Generation],
}

var schemaCmd = &cobra.Command{
	Use:       "schema [config|entry|dictionary|generation]",
	Short:     "Print the JSON Schema of a configuration or export format",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"config", "entry", "dictionary", "generation"},
	RunE: func(cmd *cobra.Command, args []string) error {
		target := DefaultSchemaTarget
		if len(args) == 1 {
			target = args[0]
		}

		schema, ok := schemas[target]
		if !ok {
			return errors.Errorf("no schema named %q", target)
		}

		return export.WriteJSON(cmd.OutOrStdout(), schema())
	},
}

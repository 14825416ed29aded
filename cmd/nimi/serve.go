package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/n30w/nimi/pkg/network"
)

var (
	flagAddr    string
	flagHistory int

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the generator over HTTP",
		Long: `serve starts an HTTP JSON API for generating languages, composing
sentences, and exporting dictionaries. New generations are also pushed to
/api/events as server-sent events.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
)

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", DefaultServerAddr, "listen address")
	serveCmd.Flags().IntVar(&flagHistory, "history", DefaultHistory, "generations kept in memory")
	serveCmd.Flags().IntVarP(&flagSentences, "sentences", "n", DefaultSentences, "example sentences per generation")
}

func runServe(cmd *cobra.Command, _ []string) error {
	err := cfg.Validate()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)

	defer stop()

	s, err := network.NewServer(
		cfg,
		logger,
		network.WithAddr(flagAddr),
		network.WithHistory(flagHistory),
		network.WithSentences(flagSentences),
	)
	if err != nil {
		return err
	}

	return s.ListenAndServe(ctx)
}

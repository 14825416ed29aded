package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"codeberg.org/n30w/nimi/pkg/config"
)

var (
	flagConfigPath string
	flagDebug      bool
	flagLogFile    string

	logger  *log.Logger
	cfg     config.Config
	logFile io.Closer

	rootCmd = &cobra.Command{
		Use:   "nimi",
		Short: "Procedurally generate constructed languages",
		Long: `nimi generates a constructed language from a phoneme inventory,
syllable templates, sound changes, and grammar parameters: a dictionary of
roots, derived words and loanwords, plus example sentences with glosses.

Parameters come from a TOML, YAML, or JSON file (--config) and the
NIMI_SEED, NIMI_ROOT_COUNT, NIMI_WORD_ORDER and NIMI_LOANWORDS variables,
which may also be set in a .env file.`,
		SilenceUsage:       true,
		PersistentPreRunE:  setup,
		PersistentPostRunE: teardown,
	}
)

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && logger != nil {
		logger.Error(err)
	}

	// PersistentPostRunE is skipped when a command fails.
	closeErr := closeLogFile()
	if err == nil {
		err = closeErr
	}

	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&flagConfigPath,
		"config",
		"c",
		DefaultConfigPath,
		"language configuration file (.toml, .yaml, .json)",
	)
	rootCmd.PersistentFlags().BoolVar(
		&flagDebug,
		"debug",
		DefaultDebugToggle,
		"debug mode, extra logging",
	)
	rootCmd.PersistentFlags().StringVar(
		&flagLogFile,
		"log-file",
		DefaultLogFilePath,
		"also write logs to this file",
	)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(sentenceCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(romanizeCmd)
	rootCmd.AddCommand(assimilateCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(serveCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	var out io.Writer = os.Stderr

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return errors.Wrap(err, "failed to open log file")
		}
		logFile = f
		out = io.MultiWriter(os.Stderr, f)
	}

	logger = newLogger(out, flagDebug)

	logger.Debug("DEBUG is set to TRUE")

	err := godotenv.Load(DefaultDotEnvPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrap(err, "failed to load .env")
	}

	cfg, err = loadConfig(flagConfigPath)
	if err != nil {
		return err
	}

	logger.Debug(
		"configuration loaded",
		"path", flagConfigPath,
		"name", cfg.Name,
		"seed", cfg.Seed,
		"roots", cfg.RootCount,
	)

	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	return closeLogFile()
}

func closeLogFile() error {
	if logFile == nil {
		return nil
	}

	err := logFile.Close()
	logFile = nil

	return err
}

func newLogger(w io.Writer, debug bool) *log.Logger {
	logOptions := log.Options{
		ReportTimestamp: true,
	}

	if debug {
		logOptions.Level = log.DebugLevel
		logOptions.ReportCaller = true
	}

	return log.NewWithOptions(w, logOptions)
}

// loadConfig reads path, or starts from the defaults when path is empty,
// then applies the environment.
func loadConfig(path string) (config.Config, error) {
	c := config.Default()

	if path != "" {
		var err error

		c, err = config.Load(path)
		if err != nil {
			return c, err
		}
	}

	err := c.ApplyEnv()
	if err != nil {
		return c, errors.Wrap(err, "failed to apply environment")
	}

	return c, nil
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	root := &cobra.Command{
		Use:     "avantis-bot",
		Short:   "Compound-growth risk and position engine",
		Version: version,
		Long: `avantis-bot sizes and risk-gates leveraged perpetual trades against a
daily compounding target: phase-aware leverage, progress-biased sizing, and
hard circuit breakers (daily loss limit, consecutive-loss pause).`,
	}

	root.PersistentFlags().StringP("config", "c", "", "path to config file (YAML or JSON)")
	root.PersistentFlags().String("env-file", ".env", "path to .env file with overrides")

	root.AddCommand(
		newRunCmd(),
		newProjectCmd(),
		newJournalCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

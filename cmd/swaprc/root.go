package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/swaprc/pkg/config"
	"github.com/walteh/swaprc/pkg/log"
	"github.com/walteh/swaprc/pkg/swap"
)

var (
	// Flags
	directionFlag string
	configFile    string
	dryRun        bool
	debug         bool
)

// newRootCmd builds the swaprc command
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swaprc",
		Short: "Swap working and committed values in JSON files",
		Long: `swaprc rewrites configured keys in JSON files between their working
(local development) and committed (version control) values. It is meant to
run as a pre-commit or post-checkout hook driven by a ruleset file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSwap,
	}

	cmd.Flags().StringVar(&directionFlag, "direction", "", "direction of replacement (to_committed or to_working)")
	cmd.Flags().StringVar(&configFile, "config", "", "path to the ruleset file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report files that would change without writing")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	_ = cmd.MarkFlagRequired("direction")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// runSwap loads the ruleset and drives the batch
func runSwap(cmd *cobra.Command, args []string) error {
	// Set up logger
	logLevel := zerolog.InfoLevel
	if debug {
		logLevel = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).Level(logLevel).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	// Validate direction before touching any file
	direction, err := swap.ParseDirection(directionFlag)
	if err != nil {
		return err
	}

	// Load ruleset
	ruleset, err := config.Load(ctx, configFile)
	if err != nil {
		return errors.Errorf("loading ruleset: %w", err)
	}

	// Run the batch. Per-file errors are reported by the console logger
	// and never fail the command.
	reporter := log.New(cmd.OutOrStdout(), logLevel)
	batcher := swap.NewBatcher(swap.Options{
		Fs:       afero.NewOsFs(),
		DryRun:   dryRun,
		Reporter: reporter,
	})

	summary := batcher.Run(ctx, ruleset, direction)
	reporter.Summarize(ctx, summary)

	return nil
}

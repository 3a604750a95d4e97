// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Autograde - grades programming assignments from test-execution results.
It scores a student's implementation against the official suite and the student's own
suite against known-correct (wheat) and known-buggy (chaff) implementations.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bartekus/autograde/cmd/autograde/internal/clierr"
)

// LoggerFactory builds the logger for a command invocation.
type LoggerFactory func(verbose bool) (*zap.Logger, error)

// NewRootCmd constructs the autograde root Cobra command.
func NewRootCmd() *cobra.Command {
	return newRootCmd(productionLogger)
}

func productionLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

// app carries state shared by the root command and its subcommands.
type app struct {
	newLogger LoggerFactory
	logger    *zap.Logger
	verbose   bool
}

func (a *app) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}

func newRootCmd(newLogger LoggerFactory) *cobra.Command {
	version := os.Getenv("AUTOGRADE_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	a := &app{newLogger: newLogger}
	var printSummary bool

	cmd := &cobra.Command{
		Use:   "autograde <results.json> <report.json> <points.json>",
		Short: "Grade a submission from test-execution results",
		Long: `Grade a submission from test-execution results.

Reads the execution records, grades the student's implementation against the
official suite and the student's suite against wheats and chaffs, and writes
a report for the grading platform. Tests that fail against any wheat are
ignored when deciding whether a chaff was caught.`,
		Args:          exactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := a.newLogger(a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrade(cmd, a.log(), gradeOptions{
				ResultsPath:  args[0],
				OutputPath:   args[1],
				PointsPath:   args[2],
				PrintSummary: printSummary,
			})
		},
	}

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().BoolVar(&printSummary, "print", false, "print a summary of the report to stdout")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of autograde",
		Args:  exactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "autograde version %s\n", version)
		},
	})
	cmd.AddCommand(newSummaryCmd(a))

	return cmd
}

// exactArgs is cobra.ExactArgs with a usage exit code.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return clierr.Newf(clierr.CodeUsage, "usage: %s (expected %d arguments, got %d)", cmd.UseLine(), n, len(args))
		}
		return nil
	}
}

// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bartekus/autograde/cmd/autograde/internal/clierr"
	"github.com/bartekus/autograde/internal/grading"
	"github.com/bartekus/autograde/internal/outcome"
	"github.com/bartekus/autograde/internal/points"
	"github.com/bartekus/autograde/internal/render"
	"github.com/bartekus/autograde/internal/report"
)

type gradeOptions struct {
	ResultsPath  string
	OutputPath   string
	PointsPath   string
	PrintSummary bool
}

// runGrade loads every input before grading starts and writes the report
// only once grading has fully succeeded.
func runGrade(cmd *cobra.Command, logger *zap.Logger, opts gradeOptions) error {
	records, err := outcome.LoadRecords(opts.ResultsPath)
	if err != nil {
		return clierr.Wrap(clierr.CodeInput, "grade: loading results", err)
	}
	logger.Debug("loaded execution records", zap.String("path", opts.ResultsPath), zap.Int("count", len(records)))

	table, err := points.Load(opts.PointsPath)
	if err != nil {
		return clierr.Wrap(clierr.CodeInput, "grade: loading point table", err)
	}

	rep, err := grading.Grade(records, table, logger)
	if err != nil {
		if errors.Is(err, grading.ErrInvariant) {
			logger.Error("grading aborted", zap.Error(err))
			return clierr.Wrap(clierr.CodeInvariant, "grade", err)
		}
		return clierr.Wrap(clierr.CodeInput, "grade", err)
	}

	if err := report.Write(opts.OutputPath, rep); err != nil {
		return clierr.Wrap(clierr.CodeInput, "grade", err)
	}
	logger.Info("wrote report", zap.String("path", opts.OutputPath), zap.Int("items", len(rep.Tests)))

	if opts.PrintSummary {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), render.NewTerminal(render.DefaultTheme()).Render(&rep))
	}
	return nil
}

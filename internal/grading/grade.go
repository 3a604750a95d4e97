// SPDX-License-Identifier: AGPL-3.0-or-later
package grading

import (
	"go.uber.org/zap"

	"github.com/bartekus/autograde/internal/outcome"
	"github.com/bartekus/autograde/internal/points"
	"github.com/bartekus/autograde/internal/report"
)

// Summary names used in the report.
const (
	WheatSummaryName         = "Wheats"
	ChaffSummaryName         = "Chaffs"
	functionalitySummaryName = "Functionality: "
)

// Grade turns execution records into the final report. The invalidity
// registry is fully built from the wheats before any chaff is graded.
func Grade(records []outcome.Record, table *points.Table, logger *zap.Logger) (report.Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if table == nil {
		table = &points.Table{}
	}

	groups := Partition(records)
	logger.Info("partitioned execution records",
		zap.Int("functionality", len(groups.Functionality)),
		zap.Int("wheats", len(groups.Wheats)),
		zap.Int("chaffs", len(groups.Chaffs)))

	inv := BuildInvalidity(groups.Wheats)
	logger.Info("built invalidity registry",
		zap.Int("invalid_tests", len(inv.tests)),
		zap.Int("invalid_blocks", len(inv.blocks)))
	logger.Debug("invalid locations",
		zap.Strings("tests", inv.TestLocations()),
		zap.Strings("blocks", inv.BlockLocations()))

	wheats := make([]report.Item, 0, len(groups.Wheats))
	for _, rec := range groups.Wheats {
		item, err := GradeWheat(rec)
		if err != nil {
			return report.Report{}, err
		}
		logger.Debug("graded wheat", zap.String("wheat", rec.ImplementationID), zap.Float64("score", item.Score))
		wheats = append(wheats, item)
	}

	chaffs := make([]report.Item, 0, len(groups.Chaffs))
	for _, rec := range groups.Chaffs {
		item := GradeChaff(inv, rec)
		logger.Debug("graded chaff", zap.String("chaff", rec.ImplementationID), zap.Float64("score", item.Score))
		chaffs = append(chaffs, item)
	}

	functionality := make([][]report.Item, 0, len(groups.Functionality))
	summaries := make([]report.Item, 0, len(groups.Functionality)+2)
	for _, rec := range groups.Functionality {
		items := GradeFunctionality(rec)
		functionality = append(functionality, items)

		name := functionalitySummaryName + outcome.LocName(rec.ImplementationID)
		summary := Summarize(name, items, table.Functionality)
		logger.Info("graded functionality",
			zap.String("implementation", rec.ImplementationID),
			zap.Float64("score", summary.Score),
			zap.Float64("max_score", summary.MaxScore))
		summaries = append(summaries, summary)
	}

	wheatSummary := Summarize(WheatSummaryName, wheats, table.Testing)
	chaffSummary := Summarize(ChaffSummaryName, chaffs, table.Testing)
	logger.Info("graded test suite",
		zap.Float64("wheat_score", wheatSummary.Score),
		zap.Float64("wheat_max", wheatSummary.MaxScore),
		zap.Float64("chaff_score", chaffSummary.Score),
		zap.Float64("chaff_max", chaffSummary.MaxScore))
	summaries = append(summaries, wheatSummary, chaffSummary)

	return report.Assemble(wheats, chaffs, functionality, summaries), nil
}

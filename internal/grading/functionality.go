// SPDX-License-Identifier: AGPL-3.0-or-later
package grading

import (
	"fmt"

	"github.com/bartekus/autograde/internal/outcome"
	"github.com/bartekus/autograde/internal/report"
)

// GradeFunctionality scores a student implementation run against the official
// suite: one item per block, or a single failing item if the run failed.
func GradeFunctionality(rec outcome.Record) []report.Item {
	switch res := rec.Result.(type) {
	case outcome.Success:
		items := make([]report.Item, 0, len(res.Blocks))
		for _, block := range res.Blocks {
			items = append(items, gradeBlock(block))
		}
		return items
	case outcome.Failure:
		// Shown right away so students see compile and runtime failures.
		return []report.Item{{
			Name:       outcome.LocName(rec.ImplementationID),
			Score:      0,
			MaxScore:   1,
			Output:     "Error: " + res.Reason,
			Visibility: report.Visible,
		}}
	default:
		return nil
	}
}

func gradeBlock(block outcome.BlockOutcome) report.Item {
	item := report.Item{
		Name:       block.Name,
		MaxScore:   1,
		Visibility: report.AfterPublished,
	}
	if block.Errored {
		item.Output = "Block errored."
		return item
	}

	failed := 0
	for _, test := range block.Tests {
		if !test.Passed {
			failed++
		}
	}

	switch failed {
	case 0:
		item.Score = 1
		item.Output = "Passed all tests in this block!"
	case 1:
		item.Output = "Missing 1 test in this block."
	default:
		item.Output = fmt.Sprintf("Missing %d tests in this block.", failed)
	}
	return item
}

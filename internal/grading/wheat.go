// SPDX-License-Identifier: AGPL-3.0-or-later
package grading

import (
	"errors"
	"fmt"

	"github.com/bartekus/autograde/internal/outcome"
	"github.com/bartekus/autograde/internal/report"
)

// ErrInvariant means two parts of the grader disagreed about the same input.
// It is never expected and aborts the run.
var ErrInvariant = errors.New("grading invariant violated")

// GradeWheat reports whether a wheat passed the student's suite and, if not,
// the first violation in declaration order. Invalidity masking is never
// applied here: a wheat that fails a test is reported as failing.
func GradeWheat(rec outcome.Record) (report.Item, error) {
	item := report.Item{
		Name:       outcome.LocName(rec.ImplementationID),
		MaxScore:   1,
		Visibility: report.Visible,
	}

	switch res := rec.Result.(type) {
	case outcome.Failure:
		item.Output = "Wheat failed to run: " + res.Reason
		return item, nil
	case outcome.Success:
		invalid := !Contribution(res).Empty()
		reason, found := firstViolation(res.Blocks)
		if invalid != found {
			return report.Item{}, fmt.Errorf("%w: wheat %q flagged=%t but violation found=%t",
				ErrInvariant, rec.ImplementationID, invalid, found)
		}
		if !found {
			item.Score = 1
			item.Output = "Passed wheat!"
			return item, nil
		}
		item.Output = reason
		return item, nil
	default:
		return report.Item{}, fmt.Errorf("%w: wheat %q has no result", ErrInvariant, rec.ImplementationID)
	}
}

func firstViolation(blocks []outcome.BlockOutcome) (string, bool) {
	for _, block := range blocks {
		if block.Errored {
			return "Wheat errored in block " + block.Name, true
		}
		for _, test := range block.Tests {
			if !test.Passed {
				return "Wheat failed test in block " + block.Name, true
			}
		}
	}
	return "", false
}

// SPDX-License-Identifier: AGPL-3.0-or-later
package grading

import (
	"github.com/bartekus/autograde/internal/outcome"
	"github.com/bartekus/autograde/internal/report"
)

// GradeChaff reports whether the student's suite caught a chaff. Locations in
// inv are ignored; the first remaining violation decides the message.
func GradeChaff(inv Invalidity, rec outcome.Record) report.Item {
	item := report.Item{
		Name:       outcome.LocName(rec.ImplementationID),
		MaxScore:   1,
		Visibility: report.Visible,
	}

	switch res := rec.Result.(type) {
	case outcome.Failure:
		item.Score = 1
		item.Output = "Chaff caught; failed to run: " + res.Reason + "!"
		return item
	case outcome.Success:
		if msg, caught := catch(inv, res.Blocks); caught {
			item.Score = 1
			item.Output = msg
			return item
		}
	}

	item.Output = "Chaff not caught."
	return item
}

func catch(inv Invalidity, blocks []outcome.BlockOutcome) (string, bool) {
	for _, block := range blocks {
		if block.Errored {
			if !inv.BlockInvalid(block.Location) {
				return "Chaff caught; error in block " + block.Name + "!", true
			}
			continue
		}
		for _, test := range block.Tests {
			if !test.Passed && !inv.TestInvalid(test.Location) {
				return "Chaff caught; test failed in block " + block.Name + "!", true
			}
		}
	}
	return "", false
}

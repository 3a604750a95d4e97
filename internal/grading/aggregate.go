// SPDX-License-Identifier: AGPL-3.0-or-later
package grading

import "github.com/bartekus/autograde/internal/report"

// Weigher looks up how many points an item is worth.
type Weigher interface {
	Weight(name string) float64
}

// defaultWeight counts each item as one point.
type defaultWeight struct{}

func (defaultWeight) Weight(string) float64 { return 1 }

// Summarize rolls items up into a single hidden item. An item contributes its
// weight only when it earned its full score; there is no partial credit.
func Summarize(name string, items []report.Item, weights Weigher) report.Item {
	if weights == nil {
		weights = defaultWeight{}
	}

	summary := report.Item{Name: name, Visibility: report.Hidden}
	for _, item := range items {
		w := weights.Weight(item.Name)
		summary.MaxScore += w
		if item.Passed() {
			summary.Score += w
		}
	}
	return summary
}

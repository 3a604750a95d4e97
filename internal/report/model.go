// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report holds the graded items and the final report consumed by the
// grading platform. Field names are fixed by that platform.
package report

// Visibility controls when the platform shows an item to students.
type Visibility string

const (
	Visible        Visibility = "visible"
	AfterPublished Visibility = "after_published"
	Hidden         Visibility = "hidden"
)

// Item is one scored line of the report. Leaf results and rolled-up
// summaries share this shape.
type Item struct {
	Name       string     `json:"name"`
	Score      float64    `json:"score"`
	MaxScore   float64    `json:"max_score"`
	Output     string     `json:"output"`
	Visibility Visibility `json:"visibility"`
}

// Passed reports whether the item earned its full score.
func (i Item) Passed() bool {
	return i.Score == i.MaxScore
}

// Report is the document written for the grading platform.
type Report struct {
	Visibility       Visibility `json:"visibility"`
	StdoutVisibility Visibility `json:"stdout_visibility"`
	Tests            []Item     `json:"tests"`
}

// SPDX-License-Identifier: AGPL-3.0-or-later
package report

// Assemble concatenates graded items in the order the platform displays them:
// wheats, chaffs, every functionality submission's blocks, then the summaries.
func Assemble(wheats, chaffs []Item, functionality [][]Item, summaries []Item) Report {
	n := len(wheats) + len(chaffs) + len(summaries)
	for _, group := range functionality {
		n += len(group)
	}

	tests := make([]Item, 0, n)
	tests = append(tests, wheats...)
	tests = append(tests, chaffs...)
	for _, group := range functionality {
		tests = append(tests, group...)
	}
	tests = append(tests, summaries...)

	return Report{
		Visibility:       Visible,
		StdoutVisibility: Visible,
		Tests:            tests,
	}
}

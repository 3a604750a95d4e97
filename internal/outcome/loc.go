// SPDX-License-Identifier: AGPL-3.0-or-later
package outcome

import "strings"

// LocName strips an implementation or suite path down to its last segment,
// e.g. "impls/wheats/wheat-1.arr" -> "wheat-1.arr". Both separators are
// accepted because paths come from whichever OS ran the execution phase.
func LocName(path string) string {
	trimmed := strings.TrimRight(path, `/\`)
	if i := strings.LastIndexAny(trimmed, `/\`); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

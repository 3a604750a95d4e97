// SPDX-License-Identifier: AGPL-3.0-or-later
package grading

import (
	"sort"

	"github.com/bartekus/autograde/internal/outcome"
)

// Invalidity records the test and block locations that fail against at least
// one wheat. Those locations say nothing about a chaff and are ignored when
// deciding whether it was caught.
type Invalidity struct {
	tests  map[string]struct{}
	blocks map[string]struct{}
}

// TestInvalid reports whether the test at loc failed against some wheat.
func (inv Invalidity) TestInvalid(loc string) bool {
	_, ok := inv.tests[loc]
	return ok
}

// BlockInvalid reports whether the block at loc errored against some wheat.
func (inv Invalidity) BlockInvalid(loc string) bool {
	_, ok := inv.blocks[loc]
	return ok
}

// Empty reports whether nothing was flagged.
func (inv Invalidity) Empty() bool {
	return len(inv.tests) == 0 && len(inv.blocks) == 0
}

// TestLocations returns the flagged test locations, sorted.
func (inv Invalidity) TestLocations() []string {
	return sortedKeys(inv.tests)
}

// BlockLocations returns the flagged block locations, sorted.
func (inv Invalidity) BlockLocations() []string {
	return sortedKeys(inv.blocks)
}

func (inv *Invalidity) merge(other Invalidity) {
	for loc := range other.tests {
		inv.addTest(loc)
	}
	for loc := range other.blocks {
		inv.addBlock(loc)
	}
}

func (inv *Invalidity) addTest(loc string) {
	if inv.tests == nil {
		inv.tests = make(map[string]struct{})
	}
	inv.tests[loc] = struct{}{}
}

func (inv *Invalidity) addBlock(loc string) {
	if inv.blocks == nil {
		inv.blocks = make(map[string]struct{})
	}
	inv.blocks[loc] = struct{}{}
}

// Contribution returns what a single wheat run flags. A wheat that failed to
// run at all flags nothing; it is reported as a wheat error instead, so one
// infrastructure failure cannot mask the whole suite.
func Contribution(result outcome.Result) Invalidity {
	var inv Invalidity
	success, ok := result.(outcome.Success)
	if !ok {
		return inv
	}
	for _, block := range success.Blocks {
		if block.Errored {
			inv.addBlock(block.Location)
			continue
		}
		for _, test := range block.Tests {
			if !test.Passed {
				inv.addTest(test.Location)
			}
		}
	}
	return inv
}

// BuildInvalidity unions the contributions of every wheat. The result does
// not depend on the order of wheats.
func BuildInvalidity(wheats []outcome.Record) Invalidity {
	var inv Invalidity
	for _, w := range wheats {
		inv.merge(Contribution(w.Result))
	}
	return inv
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

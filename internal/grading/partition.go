// SPDX-License-Identifier: AGPL-3.0-or-later

// Package grading scores student submissions from execution records.
//
// Wheat runs decide which tests of the student's suite are trustworthy; chaff
// runs are then graded against only those tests.
package grading

import (
	"strings"

	"github.com/bartekus/autograde/internal/outcome"
)

// Role is what an implementation is in the grading environment.
type Role int

const (
	RoleFunctionality Role = iota
	RoleWheat
	RoleChaff
)

func (r Role) String() string {
	switch r {
	case RoleWheat:
		return "wheat"
	case RoleChaff:
		return "chaff"
	default:
		return "functionality"
	}
}

// Classify derives the role from the implementation identifier. The grading
// environment encodes it in the file name, and "wheat" is checked first.
func Classify(implementationID string) Role {
	switch {
	case strings.Contains(implementationID, "wheat"):
		return RoleWheat
	case strings.Contains(implementationID, "chaff"):
		return RoleChaff
	default:
		return RoleFunctionality
	}
}

// Groups holds the records split by role, each in input order.
type Groups struct {
	Functionality []outcome.Record
	Wheats        []outcome.Record
	Chaffs        []outcome.Record
}

// Partition splits records by role.
func Partition(records []outcome.Record) Groups {
	var g Groups
	for _, rec := range records {
		switch Classify(rec.ImplementationID) {
		case RoleWheat:
			g.Wheats = append(g.Wheats, rec)
		case RoleChaff:
			g.Chaffs = append(g.Chaffs, rec)
		default:
			g.Functionality = append(g.Functionality, rec)
		}
	}
	return g
}

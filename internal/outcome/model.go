// SPDX-License-Identifier: AGPL-3.0-or-later

// Package outcome models the results produced by the test-execution phase:
// which implementation ran against which test suite, and what happened.
package outcome

// TestOutcome is the result of a single test.
type TestOutcome struct {
	Location string
	Passed   bool
}

// BlockOutcome is the result of a named group of tests.
// When Errored is set the block failed as a unit and Tests must not be trusted.
type BlockOutcome struct {
	Name     string
	Location string
	Errored  bool
	Tests    []TestOutcome
}

// Result is either a Success or a Failure.
type Result interface {
	isResult()
}

// Success means the run completed and reported per-block outcomes.
type Success struct {
	Blocks []BlockOutcome
}

// Failure means the run itself failed (compile error, timeout, out of memory, ...).
type Failure struct {
	Reason string
}

func (Success) isResult() {}
func (Failure) isResult() {}

// Record identifies an implementation run against a test suite.
type Record struct {
	ImplementationID string
	TestSuiteID      string
	Result           Result
}

// Ok is shorthand for a record whose run succeeded.
func Ok(impl, suite string, blocks ...BlockOutcome) Record {
	return Record{ImplementationID: impl, TestSuiteID: suite, Result: Success{Blocks: blocks}}
}

// Err is shorthand for a record whose run failed.
func Err(impl, suite, reason string) Record {
	return Record{ImplementationID: impl, TestSuiteID: suite, Result: Failure{Reason: reason}}
}

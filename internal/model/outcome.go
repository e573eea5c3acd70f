package model

import (
	"fmt"
	"time"
)

// OutcomeKind is the normalized result shape handed back to a host.
type OutcomeKind int

const (
	// OutcomePass is a schema that validated with no lint warnings.
	OutcomePass OutcomeKind = iota
	// OutcomeFail is a schema that could not be loaded or did not validate.
	OutcomeFail
	// OutcomeMulti is a valid schema with one synthetic test per warning.
	OutcomeMulti
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomePass:
		return "pass"
	case OutcomeFail:
		return "fail"
	case OutcomeMulti:
		return "multi"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k OutcomeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *OutcomeKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "pass":
		*k = OutcomePass
	case "fail":
		*k = OutcomeFail
	case "multi":
		*k = OutcomeMulti
	default:
		return fmt.Errorf("unknown outcome kind %q", text)
	}

	return nil
}

// TestStatus is the status of a single test record.
type TestStatus string

const (
	// StatusPassed marks a passing test.
	StatusPassed TestStatus = "passed"
	// StatusFailed marks a failing test.
	StatusFailed TestStatus = "failed"
)

// SyntheticTest is a test record manufactured from a single lint warning.
type SyntheticTest struct {
	Title        string        `json:"title"`
	ErrorMessage string        `json:"errorMessage"`
	Duration     time.Duration `json:"duration"`
	TestPath     Path          `json:"testPath"`
	Status       TestStatus    `json:"status"`
}

// Stats aggregates test counts for an outcome.
type Stats struct {
	Failures int       `json:"failures"`
	Passes   int       `json:"passes"`
	Pending  int       `json:"pending"`
	Todo     int       `json:"todo"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// TestOutcome is exactly one result per schema file.
type TestOutcome struct {
	Kind         OutcomeKind     `json:"kind"`
	TestPath     Path            `json:"testPath"`
	Title        string          `json:"title"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	Detail       string          `json:"detail,omitempty"`
	Tests        []SyntheticTest `json:"tests,omitempty"`
	Stats        Stats           `json:"stats"`
}

// Duration is the elapsed time between the outcome's start and end.
func (o TestOutcome) Duration() time.Duration {
	return o.Stats.End.Sub(o.Stats.Start)
}

// Failed reports whether the outcome should fail the run.
func (o TestOutcome) Failed() bool {
	return o.Kind != OutcomePass
}

// RunTotals summarizes a run.
type RunTotals struct {
	Files    int `json:"files"`
	Passed   int `json:"passed"`
	Failed   int `json:"failed"`
	Warnings int `json:"warnings"`
}

// RunReport is persisted after every CLI run.
type RunReport struct {
	RunID      string        `json:"runId"`
	StartedAt  time.Time     `json:"startedAt"`
	FinishedAt time.Time     `json:"finishedAt"`
	Outcomes   []TestOutcome `json:"outcomes"`
	Totals     RunTotals     `json:"totals"`
}

// Add records an outcome and updates the totals.
func (r *RunReport) Add(outcome TestOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)
	r.Totals.Files++

	switch outcome.Kind {
	case OutcomePass:
		r.Totals.Passed++
	case OutcomeFail:
		r.Totals.Failed++
	case OutcomeMulti:
		r.Totals.Failed++
		r.Totals.Warnings += len(outcome.Tests)
	}
}

// Failed reports whether any file in the run failed.
func (r RunReport) Failed() bool {
	return r.Totals.Failed > 0
}

package domain

import (
	"errors"
	"fmt"
	"time"

	m "oaslint.dev/pkg/oaslint/internal/model"
	"oaslint.dev/pkg/oaslint/internal/validator"
)

// OutcomeTitle is the title of the single test reported per schema file.
const OutcomeTitle = "OAS Linter"

// Timing brackets one invocation.
type Timing struct {
	Start time.Time
	End   time.Time
}

// Elapsed is End minus Start.
func (t Timing) Elapsed() time.Duration {
	return t.End.Sub(t.Start)
}

// MapVerdict turns a verdict into an outcome. Invalid wins over warnings.
func MapVerdict(verdict m.Verdict, timing Timing, testPath m.Path) m.TestOutcome {
	switch {
	case !verdict.Valid:
		return failOutcome(timing, testPath, MessageSchemaInvalid)
	case len(verdict.Warnings) == 0:
		return passOutcome(timing, testPath)
	default:
		return multiOutcome(verdict.Warnings, timing, testPath)
	}
}

// MapEngineResult maps what the engine returned. An error carrying a verdict
// is mapped best effort; any other error is returned as *EngineFaultError.
func MapEngineResult(verdict m.Verdict, err error, timing Timing, testPath m.Path) (m.TestOutcome, error) {
	if err == nil {
		return MapVerdict(verdict, timing, testPath), nil
	}

	var engineErr *validator.EngineError
	if !errors.As(err, &engineErr) || engineErr.Options == nil {
		return m.TestOutcome{}, &EngineFaultError{Path: testPath, Err: err}
	}

	outcome := MapVerdict(*engineErr.Options, timing, testPath)
	if outcome.Kind == m.OutcomeFail {
		outcome.Detail = engineErr.Error()
	}

	return outcome, nil
}

// LoadFailure reports a schema that could not be loaded.
func LoadFailure(err error, timing Timing, testPath m.Path) m.TestOutcome {
	return failOutcome(timing, testPath, err.Error())
}

func baseOutcome(kind m.OutcomeKind, timing Timing, testPath m.Path) m.TestOutcome {
	return m.TestOutcome{
		Kind:     kind,
		TestPath: testPath,
		Title:    OutcomeTitle,
		Stats: m.Stats{
			Start: timing.Start,
			End:   timing.End,
		},
	}
}

func passOutcome(timing Timing, testPath m.Path) m.TestOutcome {
	outcome := baseOutcome(m.OutcomePass, timing, testPath)
	outcome.Stats.Passes = 1

	return outcome
}

func failOutcome(timing Timing, testPath m.Path, message string) m.TestOutcome {
	outcome := baseOutcome(m.OutcomeFail, timing, testPath)
	outcome.ErrorMessage = message
	outcome.Stats.Failures = 1

	return outcome
}

func multiOutcome(warnings []m.Warning, timing Timing, testPath m.Path) m.TestOutcome {
	elapsed := timing.Elapsed()

	tests := make([]m.SyntheticTest, 0, len(warnings))
	for _, warning := range warnings {
		tests = append(tests, m.SyntheticTest{
			Title:        WarningTitle(warning),
			ErrorMessage: warning.Message,
			Duration:     elapsed,
			TestPath:     testPath,
			Status:       m.StatusFailed,
		})
	}

	outcome := baseOutcome(m.OutcomeMulti, timing, testPath)
	outcome.ErrorMessage = MessageLintWarnings
	outcome.Tests = tests
	outcome.Stats.Failures = len(warnings)

	return outcome
}

// WarningTitle renders a warning as a synthetic test title.
func WarningTitle(warning m.Warning) string {
	return fmt.Sprintf("%s - %s (%s)", warning.Message, warning.Pointer, warning.RuleName)
}

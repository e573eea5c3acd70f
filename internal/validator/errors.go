package validator

import (
	m "oaslint.dev/pkg/oaslint/internal/model"
)

// EngineError reports a document that failed validation. Options carries the
// verdict reached so callers can still map it to a result.
type EngineError struct {
	Message  string
	Problems []Problem
	Options  *m.Verdict
}

func (e *EngineError) Error() string {
	if e.Message == "" {
		return "document is not a valid OpenAPI description"
	}

	return e.Message
}

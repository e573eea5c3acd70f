package domain

import (
	"fmt"

	m "oaslint.dev/pkg/oaslint/internal/model"
)

const (
	// MessageSchemaInvalid is the error message of a Fail outcome produced by
	// an invalid document.
	MessageSchemaInvalid = "Not a valid OpenAPI schema."

	// MessageLintWarnings is the error message of a Multi outcome.
	MessageLintWarnings = "Schema is valid, but linting errors were present."
)

// InvalidSchemaShapeError is returned when a file decodes to something other
// than an object.
type InvalidSchemaShapeError struct {
	Path m.Path
}

func (e *InvalidSchemaShapeError) Error() string {
	return fmt.Sprintf("%s does not resolve to an object, cannot be a valid schema", e.Path)
}

// ConfigLoadError describes a lint configuration that could not be read or
// validated. It is logged and the defaults are used instead.
type ConfigLoadError struct {
	Path m.Path
	Err  error
}

func (e *ConfigLoadError) Error() string {
	return fmt.Sprintf("load lint config %s: %v", e.Path, e.Err)
}

func (e *ConfigLoadError) Unwrap() error {
	return e.Err
}

// EngineFaultError wraps a validation engine failure that carried no verdict.
type EngineFaultError struct {
	Path m.Path
	Err  error
}

func (e *EngineFaultError) Error() string {
	return fmt.Sprintf("validate %s: %v", e.Path, e.Err)
}

func (e *EngineFaultError) Unwrap() error {
	return e.Err
}

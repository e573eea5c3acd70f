package domain

import (
	"context"

	m "oaslint.dev/pkg/oaslint/internal/model"
	"oaslint.dev/pkg/oaslint/internal/validator"
)

// Engine is the validation engine contract.
type Engine interface {
	Validate(ctx context.Context, doc any, opts validator.Options) (m.Verdict, error)
}

// ValidationAdapter submits a loaded schema to the engine and returns its
// single verdict.
type ValidationAdapter interface {
	Validate(ctx context.Context, schema map[string]any) (m.Verdict, error)
}

type validationAdapter struct {
	engine Engine
	linter validator.Linter
}

// NewValidationAdapter constructs a ValidationAdapter running engine with
// linter enabled.
func NewValidationAdapter(engine Engine, linter validator.Linter) ValidationAdapter {
	return &validationAdapter{
		engine: engine,
		linter: linter,
	}
}

// Options returns the fixed option bundle every schema is validated with.
func (a *validationAdapter) Options() validator.Options {
	return validator.Options{
		Lint:     true,
		Skip:     false,
		Prettify: true,
		Verbose:  false,
		Linter:   a.linter,
	}
}

func (a *validationAdapter) Validate(ctx context.Context, schema map[string]any) (m.Verdict, error) {
	return a.engine.Validate(ctx, schema, a.Options())
}

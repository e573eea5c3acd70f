package domain

import (
	"context"
	"log/slog"
	"time"

	m "oaslint.dev/pkg/oaslint/internal/model"
)

// Runner processes one schema file per call and always yields exactly one
// outcome. Only engine faults without a usable verdict are returned as errors.
type Runner interface {
	Run(ctx context.Context, inv m.Invocation) (m.TestOutcome, error)
}

type runner struct {
	schemas    SchemaLoader
	configs    ConfigLoader
	validation ValidationAdapter
	now        func() time.Time
}

// RunnerOption customizes a Runner.
type RunnerOption func(*runner)

// WithClock replaces time.Now for timing outcomes.
func WithClock(now func() time.Time) RunnerOption {
	return func(r *runner) {
		r.now = now
	}
}

// NewRunner wires the loading, configuration and validation steps together.
func NewRunner(schemas SchemaLoader, configs ConfigLoader, validation ValidationAdapter, opts ...RunnerOption) Runner {
	r := &runner{
		schemas:    schemas,
		configs:    configs,
		validation: validation,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *runner) Run(ctx context.Context, inv m.Invocation) (m.TestOutcome, error) {
	timing := Timing{Start: r.now()}

	schema, err := r.schemas.Load(ctx, inv.TestPath, inv.Config)
	if err != nil {
		timing.End = r.now()

		slog.Debug("Schema could not be loaded", "path", inv.TestPath, "error", err)

		return LoadFailure(err, timing, inv.TestPath), nil
	}

	r.configs.Load(ctx, inv.TestPath)

	verdict, err := r.validation.Validate(ctx, schema)
	timing.End = r.now()

	outcome, err := MapEngineResult(verdict, err, timing, inv.TestPath)
	if err != nil {
		slog.Error("Failed to validate schema", "path", inv.TestPath, "error", err)
		return m.TestOutcome{}, err
	}

	return outcome, nil
}

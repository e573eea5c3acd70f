// Package oastest checks OpenAPI schema files from go test. Each file becomes
// a subtest and each lint warning a failing subtest of its own.
//
//	func TestSchemas(t *testing.T) {
//		oastest.Run(t, "api/openapi.yaml", "specs/...")
//	}
//
// The lint config is resolved from the first file checked and then shared by
// every later file in the test binary.
package oastest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"oaslint.dev/pkg/oaslint/internal/adapter"
	"oaslint.dev/pkg/oaslint/internal/domain"
	"oaslint.dev/pkg/oaslint/internal/lint"
	m "oaslint.dev/pkg/oaslint/internal/model"
	"oaslint.dev/pkg/oaslint/internal/validator"
)

// Outcome is the result for one schema file.
type Outcome = m.TestOutcome

// Option customizes Check and Run.
type Option func(*options)

type options struct {
	processing m.ProcessingConfig
	exclude    []string
}

// WithTransform runs the named transformer on files whose path matches
// pattern before they are decoded.
func WithTransform(pattern, transformer string) Option {
	return func(o *options) {
		o.processing.Transform = append(o.processing.Transform, m.TransformSpec{
			Pattern:     pattern,
			Transformer: transformer,
		})
	}
}

// WithExclude skips discovered files matching the regular expression.
func WithExclude(pattern string) Option {
	return func(o *options) {
		o.exclude = append(o.exclude, pattern)
	}
}

var (
	sharedOnce   sync.Once
	sharedRunner domain.Runner
	sharedFS     *adapter.LocalSourceFSAdapter
	sharedErr    error
)

// process returns the runner shared by every caller in this process.
func process() (domain.Runner, *adapter.LocalSourceFSAdapter, error) {
	sharedOnce.Do(func() {
		engine, err := validator.New()
		if err != nil {
			sharedErr = err
			return
		}

		sharedFS = adapter.NewLocalSourceFSAdapter()
		rules := lint.NewEngine()
		applier := domain.NewConfigApplier(rules)

		sharedRunner = domain.NewRunner(
			domain.NewSchemaLoader(sharedFS, domain.NewTransformerRegistry()),
			domain.NewConfigLoader(sharedFS, applier, domain.DefaultConfigLoaderOptions()),
			domain.NewValidationAdapter(engine, rules),
		)
	})

	return sharedRunner, sharedFS, sharedErr
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Check validates and lints a single schema file.
func Check(ctx context.Context, path string, opts ...Option) (Outcome, error) {
	runner, _, err := process()
	if err != nil {
		return Outcome{}, err
	}

	o := newOptions(opts)

	return runner.Run(ctx, m.Invocation{TestPath: m.Path(path), Config: o.processing})
}

// Run checks every schema file under paths as a subtest of t. Paths accept
// files, directories and "dir/..." patterns.
func Run(t *testing.T, paths ...string) {
	t.Helper()

	RunWith(t, nil, paths...)
}

// RunWith is Run with options.
func RunWith(t *testing.T, opts []Option, paths ...string) {
	t.Helper()

	_, fsAdapter, err := process()
	if err != nil {
		t.Fatalf("oastest: %v", err)
	}

	o := newOptions(opts)

	files, err := discover(t.Context(), fsAdapter, paths, o.exclude)
	if err != nil {
		t.Fatalf("oastest: %v", err)
	}

	if len(files) == 0 {
		t.Fatalf("oastest: no schema files found in %s", strings.Join(paths, ", "))
	}

	for _, file := range files {
		t.Run(filepath.ToSlash(file), func(t *testing.T) {
			outcome, err := Check(t.Context(), file, opts...)
			if err != nil {
				t.Fatalf("%v", err)
			}

			Report(t, outcome)
		})
	}
}

// Report turns an outcome into test failures on t.
func Report(t *testing.T, outcome Outcome) {
	t.Helper()

	switch outcome.Kind {
	case m.OutcomePass:
		return
	case m.OutcomeFail:
		if outcome.Detail != "" {
			t.Errorf("%s\n%s", outcome.ErrorMessage, outcome.Detail)
			return
		}

		t.Error(outcome.ErrorMessage)
	case m.OutcomeMulti:
		for _, test := range outcome.Tests {
			t.Run(test.Title, func(t *testing.T) {
				t.Error(test.ErrorMessage)
			})
		}
	default:
		t.Errorf("unknown outcome %s", outcome.Kind)
	}
}

func discover(ctx context.Context, fsAdapter adapter.SourceFSAdapter, paths []string, exclude []string) ([]string, error) {
	wf := domain.NewWorkflow(fsAdapter, nil, nil, nil, nil)

	targets := make([]m.Path, 0, len(paths))
	for _, path := range paths {
		targets = append(targets, m.Path(path))
	}

	found, err := wf.Discover(ctx, targets, exclude...)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}

	files := make([]string, 0, len(found))
	for _, path := range found {
		files = append(files, string(path))
	}

	return files, nil
}

package domain_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"oaslint.dev/pkg/oaslint/internal/adapter"
	"oaslint.dev/pkg/oaslint/internal/domain"
	domainmocks "oaslint.dev/pkg/oaslint/internal/domain/mocks"
	"oaslint.dev/pkg/oaslint/internal/lint"
	m "oaslint.dev/pkg/oaslint/internal/model"
	"oaslint.dev/pkg/oaslint/internal/validator"
)

const propertyDescriptionRule = "schema-property-require-description"

const describedSchema = `openapi: 3.0.3
info:
  title: Pets
  version: "1.0.0"
paths: {}
components:
  schemas:
    Foo:
      type: object
      properties:
        bar:
          type: string
          description: the bar
`

const undescribedSchema = `openapi: 3.0.3
info:
  title: Pets
  version: "1.0.0"
paths: {}
components:
  schemas:
    Foo:
      type: object
      properties:
        bar:
          type: string
`

const missingInfoSchema = `openapi: 3.0.3
paths: {}
`

func fixedClock() func() time.Time {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := 0

	return func() time.Time {
		calls++
		return start.Add(time.Duration(calls) * 10 * time.Millisecond)
	}
}

func ruleNamed(t *testing.T, name string) m.RuleSpec {
	t.Helper()

	for _, rule := range lint.DefaultRules() {
		if rule.Name == name {
			return rule
		}
	}

	t.Fatalf("rule %q not found", name)

	return m.RuleSpec{}
}

// newRealRunner wires the production pipeline with only the property
// description rule enabled.
func newRealRunner(t *testing.T) domain.Runner {
	t.Helper()

	engine := lint.NewEngine()
	applier := domain.NewConfigApplier(engine)
	applier.Initialize(m.ResolvedConfig{
		LoadDefaultRules: false,
		Rules:            []m.RuleSpec{ruleNamed(t, propertyDescriptionRule)},
	})

	v, err := validator.New()
	require.NoError(t, err)

	fsAdapter := adapter.NewLocalSourceFSAdapter()

	return domain.NewRunner(
		domain.NewSchemaLoader(fsAdapter, domain.NewTransformerRegistry()),
		domain.NewConfigLoader(fsAdapter, applier, domain.ConfigLoaderOptions{Manifest: testManifest}),
		domain.NewValidationAdapter(v, engine),
		domain.WithClock(fixedClock()),
	)
}

func TestRunner_Scenarios(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid schema without warnings passes", func(t *testing.T) {
		path := writeFile(t, dir, "described.yaml", describedSchema)

		outcome, err := newRealRunner(t).Run(context.Background(), m.Invocation{TestPath: path})
		require.NoError(t, err)

		assert.Equal(t, m.OutcomePass, outcome.Kind)
		assert.Equal(t, path, outcome.TestPath)
		assert.Equal(t, domain.OutcomeTitle, outcome.Title)
		assert.Equal(t, 1, outcome.Stats.Passes)
		assert.Positive(t, outcome.Duration())
	})

	t.Run("non-object document fails with load error", func(t *testing.T) {
		path := writeFile(t, dir, "number.json", "42")

		outcome, err := newRealRunner(t).Run(context.Background(), m.Invocation{TestPath: path})
		require.NoError(t, err)

		assert.Equal(t, m.OutcomeFail, outcome.Kind)
		assert.Equal(t, string(path)+" does not resolve to an object, cannot be a valid schema", outcome.ErrorMessage)
		assert.Equal(t, 1, outcome.Stats.Failures)
	})

	t.Run("structurally invalid schema fails", func(t *testing.T) {
		path := writeFile(t, dir, "no-info.yaml", missingInfoSchema)

		outcome, err := newRealRunner(t).Run(context.Background(), m.Invocation{TestPath: path})
		require.NoError(t, err)

		assert.Equal(t, m.OutcomeFail, outcome.Kind)
		assert.Equal(t, domain.MessageSchemaInvalid, outcome.ErrorMessage)
		assert.NotEmpty(t, outcome.Detail)
		assert.Empty(t, outcome.Tests)
	})

	t.Run("lint warnings become synthetic tests", func(t *testing.T) {
		path := writeFile(t, dir, "undescribed.yaml", undescribedSchema)

		outcome, err := newRealRunner(t).Run(context.Background(), m.Invocation{TestPath: path})
		require.NoError(t, err)

		require.Equal(t, m.OutcomeMulti, outcome.Kind)
		assert.Equal(t, domain.MessageLintWarnings, outcome.ErrorMessage)
		require.Len(t, outcome.Tests, 1)
		assert.Equal(t,
			"should have a description - #/components/schemas/Foo/properties/bar (schema-property-require-description)",
			outcome.Tests[0].Title,
		)
		assert.Equal(t, path, outcome.Tests[0].TestPath)
		assert.Equal(t, 1, outcome.Stats.Failures)
	})
}

func TestRunner_IsIdempotent(t *testing.T) {
	path := writeFile(t, t.TempDir(), "undescribed.yaml", undescribedSchema)
	runner := newRealRunner(t)

	first, err := runner.Run(context.Background(), m.Invocation{TestPath: path})
	require.NoError(t, err)

	second, err := runner.Run(context.Background(), m.Invocation{TestPath: path})
	require.NoError(t, err)

	assert.Equal(t, first.Kind, second.Kind)
	assert.Equal(t, first.ErrorMessage, second.ErrorMessage)
	require.Len(t, second.Tests, len(first.Tests))

	for i := range first.Tests {
		assert.Equal(t, first.Tests[i].Title, second.Tests[i].Title)
	}
}

func TestRunner_LoadErrorSkipsConfigAndValidation(t *testing.T) {
	schemas := domainmocks.NewMockSchemaLoader(t)
	configs := domainmocks.NewMockConfigLoader(t)
	validation := domainmocks.NewMockValidationAdapter(t)

	schemas.EXPECT().
		Load(mock.Anything, m.Path("api.yaml"), m.ProcessingConfig{}).
		Return(nil, errors.New("read api.yaml: permission denied"))

	runner := domain.NewRunner(schemas, configs, validation, domain.WithClock(fixedClock()))

	outcome, err := runner.Run(context.Background(), m.Invocation{TestPath: "api.yaml"})
	require.NoError(t, err)

	assert.Equal(t, m.OutcomeFail, outcome.Kind)
	assert.Equal(t, "read api.yaml: permission denied", outcome.ErrorMessage)
	configs.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
	validation.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything)
}

func TestRunner_PassesProcessingConfigToLoader(t *testing.T) {
	schemas := domainmocks.NewMockSchemaLoader(t)
	configs := domainmocks.NewMockConfigLoader(t)
	validation := domainmocks.NewMockValidationAdapter(t)

	processing := m.ProcessingConfig{Transform: []m.TransformSpec{{Pattern: ".*", Transformer: "envsubst"}}}
	schema := map[string]any{"openapi": "3.0.3"}

	schemas.EXPECT().Load(mock.Anything, m.Path("api.yaml"), processing).Return(schema, nil)
	configs.EXPECT().Load(mock.Anything, m.Path("api.yaml")).Return(m.DefaultConfig())
	validation.EXPECT().Validate(mock.Anything, schema).Return(m.Verdict{Valid: true}, nil)

	runner := domain.NewRunner(schemas, configs, validation)

	outcome, err := runner.Run(context.Background(), m.Invocation{TestPath: "api.yaml", Config: processing})
	require.NoError(t, err)
	assert.Equal(t, m.OutcomePass, outcome.Kind)
}

func TestRunner_EngineFaultIsReturned(t *testing.T) {
	schemas := domainmocks.NewMockSchemaLoader(t)
	configs := domainmocks.NewMockConfigLoader(t)
	validation := domainmocks.NewMockValidationAdapter(t)

	schema := map[string]any{"openapi": "3.0.3"}
	cause := errors.New("engine crashed")

	schemas.EXPECT().Load(mock.Anything, mock.Anything, mock.Anything).Return(schema, nil)
	configs.EXPECT().Load(mock.Anything, mock.Anything).Return(m.DefaultConfig())
	validation.EXPECT().Validate(mock.Anything, schema).Return(m.Verdict{}, cause)

	runner := domain.NewRunner(schemas, configs, validation)

	_, err := runner.Run(context.Background(), m.Invocation{TestPath: "api.yaml"})

	var fault *domain.EngineFaultError
	require.ErrorAs(t, err, &fault)
	assert.ErrorIs(t, err, cause)
}

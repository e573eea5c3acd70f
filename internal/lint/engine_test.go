package lint

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "oaslint.dev/pkg/oaslint/internal/model"
)

func boolPtr(v bool) *bool { return &v }

func minimalDoc() map[string]any {
	return map[string]any{
		"openapi": "3.0.0",
		"info": map[string]any{
			"title":   "x",
			"version": "1",
		},
		"paths": map[string]any{},
	}
}

func rulesNamed(warnings []m.Warning) []string {
	names := make([]string, 0, len(warnings))
	for _, w := range warnings {
		names = append(names, w.RuleName)
	}

	return names
}

func TestEngine_NoRulesNoWarnings(t *testing.T) {
	engine := NewEngine()

	warnings := engine.Lint(context.Background(), minimalDoc())

	assert.NotNil(t, warnings)
	assert.Empty(t, warnings)
}

func TestEngine_LintNonObject(t *testing.T) {
	engine := NewEngine()
	engine.LoadDefaultRules()

	assert.Empty(t, engine.Lint(context.Background(), 42))
	assert.Empty(t, engine.Lint(context.Background(), nil))
}

func TestEngine_DefaultRules(t *testing.T) {
	engine := NewEngine()
	engine.LoadDefaultRules()

	warnings := engine.Lint(context.Background(), minimalDoc())

	assert.Equal(t, []string{"openapi-tags", "info-contact", "info-description"}, rulesNamed(warnings))
	assert.Equal(t, "#/", warnings[0].Pointer)
	assert.Equal(t, "#/info", warnings[1].Pointer)
	assert.Equal(t, "info object should contain contact object", warnings[1].Message)
}

func TestEngine_SchemaPropertyRequiresDescription(t *testing.T) {
	engine := NewEngine()
	engine.ApplyRules([]m.RuleSpec{ruleByName(t, "schema-property-require-description")})

	doc := minimalDoc()
	doc["components"] = map[string]any{
		"schemas": map[string]any{
			"Foo": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"bar": map[string]any{"type": "string"},
					"baz": map[string]any{"type": "string", "description": "documented"},
					"ref": map[string]any{"$ref": "#/components/schemas/Foo"},
				},
			},
		},
	}

	warnings := engine.Lint(context.Background(), doc)

	require.Len(t, warnings, 1)
	assert.Equal(t, m.Warning{
		RuleName: "schema-property-require-description",
		Message:  "should have a description",
		Pointer:  "#/components/schemas/Foo/properties/bar",
	}, warnings[0])
}

func TestEngine_OperationRules(t *testing.T) {
	engine := NewEngine()
	engine.ApplyRules([]m.RuleSpec{
		ruleByName(t, "operation-operationId"),
		ruleByName(t, "operation-summary-or-description"),
		ruleByName(t, "path-keys-no-trailing-slash"),
		ruleByName(t, "parameter-description"),
	})

	doc := minimalDoc()
	doc["paths"] = map[string]any{
		"/": map[string]any{
			"get": map[string]any{"operationId": "root", "summary": "root"},
		},
		"/pets/": map[string]any{
			"get": map[string]any{
				"parameters": []any{
					map[string]any{"name": "limit", "in": "query"},
				},
			},
		},
	}

	warnings := engine.Lint(context.Background(), doc)

	assert.Equal(t, []m.Warning{
		{RuleName: "path-keys-no-trailing-slash", Message: "paths should not end with a slash", Pointer: "#/paths/~1pets~1"},
		{RuleName: "operation-operationId", Message: "operation should have an operationId", Pointer: "#/paths/~1pets~1/get"},
		{RuleName: "operation-summary-or-description", Message: "operation should have summary or description", Pointer: "#/paths/~1pets~1/get"},
		{RuleName: "parameter-description", Message: "parameter objects should have a description", Pointer: "#/paths/~1pets~1/get/parameters/0"},
	}, warnings)
}

func TestEngine_ApplyRulesReplacesByName(t *testing.T) {
	engine := NewEngine()
	engine.LoadDefaultRules()
	before := len(engine.Rules())

	engine.ApplyRules([]m.RuleSpec{
		{Name: "info-description", Enabled: boolPtr(false)},
		{Name: "info-title-short", Object: ObjectInfo, Description: "title too long", MaxLength: &m.MaxLengthRule{Property: "title", Value: 3}},
	})

	rules := engine.Rules()
	require.Len(t, rules, before+1)

	doc := minimalDoc()
	doc["info"].(map[string]any)["title"] = "a much longer title"

	warnings := engine.Lint(context.Background(), doc)

	assert.NotContains(t, rulesNamed(warnings), "info-description")
	assert.Contains(t, rulesNamed(warnings), "info-title-short")
}

func TestEngine_Results(t *testing.T) {
	engine := NewEngine()
	engine.LoadDefaultRules()

	assert.Empty(t, engine.Results())

	warnings := engine.Lint(context.Background(), minimalDoc())

	assert.Equal(t, warnings, engine.Results())
}

func TestEngine_ConcurrentLint(t *testing.T) {
	engine := NewEngine()
	engine.LoadDefaultRules()

	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			warnings := engine.Lint(context.Background(), minimalDoc())
			assert.Len(t, warnings, 3)
		}()
	}

	wg.Wait()
}

func TestEngine_CancelledContext(t *testing.T) {
	engine := NewEngine()
	engine.LoadDefaultRules()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Empty(t, engine.Lint(ctx, minimalDoc()))
}

func ruleByName(t *testing.T, name string) m.RuleSpec {
	t.Helper()

	for _, rule := range DefaultRules() {
		if rule.Name == name {
			return rule
		}
	}

	t.Fatalf("default rule %q not found", name)

	return m.RuleSpec{}
}

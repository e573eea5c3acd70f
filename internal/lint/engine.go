// Package lint implements the OpenAPI style linter: a registry of
// declarative rules evaluated against every typed object of a document.
package lint

import (
	"context"
	"sync"

	m "oaslint.dev/pkg/oaslint/internal/model"
)

// Engine holds the active rule set. It is shared by every file processed in
// a run, so configuration happens once up front and linting only reads it.
type Engine struct {
	mu      sync.RWMutex
	rules   []m.RuleSpec
	results []m.Warning
}

// NewEngine constructs an Engine with no rules.
func NewEngine() *Engine {
	return &Engine{}
}

// LoadDefaultRules registers the built-in rule set.
func (e *Engine) LoadDefaultRules() {
	e.ApplyRules(DefaultRules())
}

// ApplyRules registers rules. A rule whose name is already registered
// replaces the earlier one in place.
func (e *Engine) ApplyRules(rules []m.RuleSpec) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, rule := range rules {
		replaced := false

		for i := range e.rules {
			if e.rules[i].Name == rule.Name {
				e.rules[i] = mergeRule(e.rules[i], rule)
				replaced = true

				break
			}
		}

		if !replaced {
			e.rules = append(e.rules, rule)
		}
	}
}

// mergeRule lets a bare {name, enabled} entry toggle an existing rule
// without restating its checks.
func mergeRule(existing, update m.RuleSpec) m.RuleSpec {
	if update.Object == "" {
		existing.Enabled = update.Enabled
		return existing
	}

	return update
}

// Rules returns a copy of the registered rules.
func (e *Engine) Rules() []m.RuleSpec {
	e.mu.RLock()
	defer e.mu.RUnlock()

	rules := make([]m.RuleSpec, len(e.rules))
	copy(rules, e.rules)

	return rules
}

// Lint evaluates every enabled rule against the document and returns the
// warnings in document order. Non-object documents yield no warnings.
func (e *Engine) Lint(ctx context.Context, doc any) []m.Warning {
	warnings := []m.Warning{}

	root, ok := doc.(map[string]any)
	if !ok {
		return warnings
	}

	rules := e.Rules()
	nodes := collectNodes(root)

	for _, n := range nodes {
		if ctx.Err() != nil {
			break
		}

		for _, rule := range rules {
			if !rule.IsEnabled() || (rule.Object != ObjectAny && rule.Object != n.object) {
				continue
			}

			if pointer, ok := evaluate(rule, n); !ok {
				warnings = append(warnings, m.Warning{
					RuleName: rule.Name,
					Message:  rule.Description,
					Pointer:  formatPointer(pointer),
				})
			}
		}
	}

	e.mu.Lock()
	e.results = warnings
	e.mu.Unlock()

	return warnings
}

// Results returns the warnings of the most recent Lint call.
func (e *Engine) Results() []m.Warning {
	e.mu.RLock()
	defer e.mu.RUnlock()

	results := make([]m.Warning, len(e.results))
	copy(results, e.results)

	return results
}

func formatPointer(pointer string) string {
	if pointer == "" {
		return "#/"
	}

	return "#" + pointer
}

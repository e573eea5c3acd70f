package lint

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-openapi/strfmt"

	m "oaslint.dev/pkg/oaslint/internal/model"
)

// keyProperty makes a rule look at every key of the object instead of a
// named property.
const keyProperty = "$key"

// check evaluates one rule against one node and returns the pointer of the
// first violation, or ok=true when the node conforms.
type check func(rule m.RuleSpec, n node) (pointer string, ok bool)

// checks are evaluated in a fixed order; the first violation wins so a rule
// yields at most one warning per object.
var checks = []check{
	checkTruthy,
	checkFalsy,
	checkOr,
	checkXor,
	checkProperties,
	checkPattern,
	checkNotContain,
	checkNotEndWith,
	checkMaxLength,
	checkAlphabetical,
	checkFormat,
}

func evaluate(rule m.RuleSpec, n node) (string, bool) {
	for _, c := range checks {
		if pointer, ok := c(rule, n); !ok {
			return pointer, false
		}
	}

	return "", true
}

func checkTruthy(rule m.RuleSpec, n node) (string, bool) {
	for _, property := range rule.Truthy {
		if !truthy(n.value[property]) {
			return n.pointer, false
		}
	}

	return "", true
}

func checkFalsy(rule m.RuleSpec, n node) (string, bool) {
	for _, property := range rule.Falsy {
		if truthy(n.value[property]) {
			return join(n.pointer, property), false
		}
	}

	return "", true
}

func checkOr(rule m.RuleSpec, n node) (string, bool) {
	if len(rule.Or) == 0 {
		return "", true
	}

	for _, property := range rule.Or {
		if truthy(n.value[property]) {
			return "", true
		}
	}

	return n.pointer, false
}

func checkXor(rule m.RuleSpec, n node) (string, bool) {
	if len(rule.Xor) == 0 {
		return "", true
	}

	present := 0

	for _, property := range rule.Xor {
		if _, ok := n.value[property]; ok {
			present++
		}
	}

	return n.pointer, present == 1
}

func checkProperties(rule m.RuleSpec, n node) (string, bool) {
	if rule.Properties == nil {
		return "", true
	}

	return n.pointer, len(n.value) == *rule.Properties
}

func checkPattern(rule m.RuleSpec, n node) (string, bool) {
	p := rule.Pattern
	if p == nil {
		return "", true
	}

	re, err := compilePattern(p.Value)
	if err != nil {
		slog.Warn("Skipping pattern check with invalid expression", "rule", rule.Name, "pattern", p.Value, "error", err)
		return "", true
	}

	for _, t := range stringTargets(n, p.Property) {
		value := strings.TrimPrefix(t.value, p.Omit)
		if p.StartsWith != "" && !strings.HasPrefix(value, p.StartsWith) {
			return t.pointer, false
		}

		parts := []string{value}
		if p.Split != "" {
			parts = strings.Split(value, p.Split)
		}

		for _, part := range parts {
			if part == "" {
				continue
			}

			if !re.MatchString(part) {
				return t.pointer, false
			}
		}
	}

	return "", true
}

func checkNotContain(rule m.RuleSpec, n node) (string, bool) {
	nc := rule.NotContain
	if nc == nil {
		return "", true
	}

	for _, property := range nc.Properties {
		if value, ok := n.value[property].(string); ok && strings.Contains(value, nc.Value) {
			return join(n.pointer, property), false
		}
	}

	return "", true
}

func checkNotEndWith(rule m.RuleSpec, n node) (string, bool) {
	ne := rule.NotEndWith
	if ne == nil {
		return "", true
	}

	for _, t := range stringTargets(n, ne.Property) {
		if ne.Omit != "" && t.value == ne.Omit {
			continue
		}

		if strings.HasSuffix(t.value, ne.Value) {
			return t.pointer, false
		}
	}

	return "", true
}

func checkMaxLength(rule m.RuleSpec, n node) (string, bool) {
	ml := rule.MaxLength
	if ml == nil {
		return "", true
	}

	if value, ok := n.value[ml.Property].(string); ok && len([]rune(value)) > ml.Value {
		return join(n.pointer, ml.Property), false
	}

	return "", true
}

func checkAlphabetical(rule m.RuleSpec, n node) (string, bool) {
	a := rule.Alphabetical
	if a == nil {
		return "", true
	}

	items, ok := n.value[a.Properties].([]any)
	if !ok {
		return "", true
	}

	names := make([]string, 0, len(items))

	for _, item := range items {
		if a.KeyedBy == "" {
			names = append(names, fmt.Sprint(item))
			continue
		}

		if obj, ok := item.(map[string]any); ok {
			names = append(names, fmt.Sprint(obj[a.KeyedBy]))
		}
	}

	return join(n.pointer, a.Properties), sort.StringsAreSorted(names)
}

func checkFormat(rule m.RuleSpec, n node) (string, bool) {
	f := rule.Format
	if f == nil {
		return "", true
	}

	value, ok := n.value[f.Property].(string)
	if !ok || value == "" {
		return "", true
	}

	return join(n.pointer, f.Property), strfmt.Default.Validates(f.Type, value)
}

type target struct {
	pointer string
	value   string
}

// stringTargets returns the strings a check applies to: either each key of
// the object in sorted order, or a single named property.
func stringTargets(n node, property string) []target {
	if property == keyProperty {
		keys := sortedKeys(n.value)
		targets := make([]target, 0, len(keys))

		for _, key := range keys {
			targets = append(targets, target{pointer: join(n.pointer, key), value: key})
		}

		return targets
	}

	if value, ok := n.value[property].(string); ok {
		return []target{{pointer: join(n.pointer, property), value: value}}
	}

	return nil
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

var patternCache sync.Map

func compilePattern(expr string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(expr); ok {
		return cached.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	patternCache.Store(expr, re)

	return re, nil
}

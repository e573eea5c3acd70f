// Package validator checks that a decoded document is a structurally sound
// OpenAPI 3.x description and, when asked to, lints it.
package validator

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/go-openapi/jsonpointer"
	"github.com/xeipuuv/gojsonschema"

	m "oaslint.dev/pkg/oaslint/internal/model"
)

//go:embed openapi3.json
var openAPI3Schema []byte

const rootContext = "(root)"

// Linter produces style warnings for a structurally valid document.
type Linter interface {
	Lint(ctx context.Context, doc any) []m.Warning
}

// Options select which phases run and how problems are reported.
type Options struct {
	// Skip assumes the document is valid and goes straight to linting.
	Skip bool
	// Lint runs Linter after a successful validation.
	Lint bool
	// Prettify renders problems as "location: description" lines.
	Prettify bool
	// Verbose reports every problem instead of stopping at the first one.
	Verbose bool

	Linter Linter
}

// Problem is one structural or semantic defect.
type Problem struct {
	Pointer     string
	Description string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Pointer, p.Description)
}

// Validator validates documents against the embedded OpenAPI 3 root schema.
// It is safe for concurrent use.
type Validator struct {
	schema *gojsonschema.Schema
}

// New compiles the embedded schema.
func New() (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(openAPI3Schema))
	if err != nil {
		return nil, fmt.Errorf("compile openapi schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// Validate produces a single verdict for doc. An invalid document yields an
// *EngineError whose Options carry the verdict; any other error means no
// verdict could be produced.
func (v *Validator) Validate(ctx context.Context, doc any, opts Options) (m.Verdict, error) {
	if err := ctx.Err(); err != nil {
		return m.Verdict{}, err
	}

	verdict := m.Verdict{
		Valid:    true,
		Warnings: []m.Warning{},
		Context:  []string{"#/"},
	}

	if !opts.Skip {
		problems, err := v.check(doc, opts.Verbose)
		if err != nil {
			return m.Verdict{}, err
		}

		if len(problems) > 0 {
			verdict.Valid = false
			verdict.Context = make([]string, 0, len(problems))

			for _, problem := range problems {
				verdict.Context = append(verdict.Context, problem.Pointer)
			}

			slog.Debug("Document failed validation", "problems", len(problems))

			return verdict, &EngineError{
				Message:  render(problems, opts.Prettify),
				Problems: problems,
				Options:  &verdict,
			}
		}
	}

	if opts.Lint && opts.Linter != nil {
		verdict.Warnings = opts.Linter.Lint(ctx, doc)
	}

	return verdict, nil
}

func (v *Validator) check(doc any, verbose bool) ([]Problem, error) {
	result, err := v.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate document: %w", err)
	}

	var problems []Problem

	for _, desc := range result.Errors() {
		problems = append(problems, Problem{
			Pointer:     contextPointer(desc.Context()),
			Description: desc.Description(),
		})

		if !verbose {
			return problems, nil
		}
	}

	if len(problems) > 0 {
		return problems, nil
	}

	root, _ := doc.(map[string]any)

	for _, semantic := range []func(map[string]any) []Problem{checkPathKeys, checkOperationIDs, checkReferences} {
		found := semantic(root)
		if len(found) == 0 {
			continue
		}

		if !verbose {
			return found[:1], nil
		}

		problems = append(problems, found...)
	}

	return problems, nil
}

func contextPointer(ctx *gojsonschema.JsonContext) string {
	if ctx == nil {
		return "#/"
	}

	path := strings.TrimPrefix(ctx.String("/"), rootContext)
	if path == "" {
		return "#/"
	}

	return "#" + path
}

func render(problems []Problem, prettify bool) string {
	if !prettify {
		parts := make([]string, 0, len(problems))
		for _, problem := range problems {
			parts = append(parts, problem.Description)
		}

		return strings.Join(parts, "; ")
	}

	lines := make([]string, 0, len(problems))
	for _, problem := range problems {
		lines = append(lines, problem.String())
	}

	return strings.Join(lines, "\n")
}

func checkPathKeys(root map[string]any) []Problem {
	paths, _ := root["paths"].(map[string]any)

	var problems []Problem

	for _, key := range sortedKeys(paths) {
		if strings.HasPrefix(key, "x-") || strings.HasPrefix(key, "/") {
			continue
		}

		problems = append(problems, Problem{
			Pointer:     "#/paths/" + jsonpointer.Escape(key),
			Description: fmt.Sprintf("path %q must begin with /", key),
		})
	}

	return problems
}

func checkOperationIDs(root map[string]any) []Problem {
	paths, _ := root["paths"].(map[string]any)
	seen := map[string]string{}

	var problems []Problem

	for _, key := range sortedKeys(paths) {
		item, _ := paths[key].(map[string]any)

		for _, method := range sortedKeys(item) {
			op, ok := item[method].(map[string]any)
			if !ok {
				continue
			}

			id, ok := op["operationId"].(string)
			if !ok || id == "" {
				continue
			}

			pointer := "#/paths/" + jsonpointer.Escape(key) + "/" + method + "/operationId"
			if first, dup := seen[id]; dup {
				problems = append(problems, Problem{
					Pointer:     pointer,
					Description: fmt.Sprintf("duplicate operationId %q, first used at %s", id, first),
				})

				continue
			}

			seen[id] = pointer
		}
	}

	return problems
}

// checkReferences resolves every local $ref against the document. External
// references are left alone.
func checkReferences(root map[string]any) []Problem {
	var problems []Problem

	var walk func(pointer string, value any)

	walk = func(pointer string, value any) {
		switch v := value.(type) {
		case map[string]any:
			if ref, ok := v["$ref"].(string); ok && strings.HasPrefix(ref, "#") {
				if err := resolve(root, ref); err != nil {
					problems = append(problems, Problem{
						Pointer:     "#" + pointer,
						Description: fmt.Sprintf("cannot resolve reference %q: %v", ref, err),
					})
				}
			}

			for _, key := range sortedKeys(v) {
				walk(pointer+"/"+jsonpointer.Escape(key), v[key])
			}
		case []any:
			for i, item := range v {
				walk(fmt.Sprintf("%s/%d", pointer, i), item)
			}
		}
	}

	walk("", root)

	return problems
}

func resolve(root map[string]any, ref string) error {
	ptr, err := jsonpointer.New(strings.TrimPrefix(ref, "#"))
	if err != nil {
		return err
	}

	_, _, err = ptr.Get(root)

	return err
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

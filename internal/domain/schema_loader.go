package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"oaslint.dev/pkg/oaslint/internal/adapter"
	m "oaslint.dev/pkg/oaslint/internal/model"
)

// SchemaLoader turns a schema file into an in-memory document.
type SchemaLoader interface {
	Load(ctx context.Context, path m.Path, cfg m.ProcessingConfig) (map[string]any, error)
}

type schemaLoader struct {
	fsAdapter    adapter.SourceFSAdapter
	transformers *TransformerRegistry
}

// NewSchemaLoader constructs a SchemaLoader reading through fsAdapter and
// resolving transformer IDs against transformers.
func NewSchemaLoader(fsAdapter adapter.SourceFSAdapter, transformers *TransformerRegistry) SchemaLoader {
	return &schemaLoader{
		fsAdapter:    fsAdapter,
		transformers: transformers,
	}
}

// Load reads, optionally transforms, and decodes the file at path. A file
// that decodes to anything but an object yields *InvalidSchemaShapeError.
func (l *schemaLoader) Load(ctx context.Context, path m.Path, cfg m.ProcessingConfig) (map[string]any, error) {
	target, err := l.readTarget(ctx, path)
	if err != nil {
		return nil, err
	}

	content, err := l.transform(target, cfg)
	if err != nil {
		return nil, err
	}

	value, err := decode(content, path)
	if err != nil {
		return nil, err
	}

	doc, ok := normalize(value).(map[string]any)
	if !ok || doc == nil {
		return nil, &InvalidSchemaShapeError{Path: path}
	}

	return doc, nil
}

func (l *schemaLoader) readTarget(ctx context.Context, path m.Path) (m.Target, error) {
	content, err := l.fsAdapter.ReadFile(ctx, path)
	if err != nil {
		return m.Target{}, fmt.Errorf("read %s: %w", path, err)
	}

	return m.Target{Path: path, RawContent: content}, nil
}

func (l *schemaLoader) transform(target m.Target, cfg m.ProcessingConfig) ([]byte, error) {
	name := string(target.Path)

	for _, pattern := range cfg.TransformIgnorePatterns {
		matched, err := matchPattern(pattern, name)
		if err != nil {
			return nil, err
		}

		if matched {
			return target.RawContent, nil
		}
	}

	for _, spec := range cfg.Transform {
		matched, err := matchPattern(spec.Pattern, name)
		if err != nil {
			return nil, err
		}

		if !matched {
			continue
		}

		transformer, ok := l.transformers.Get(spec.Transformer)
		if !ok {
			return nil, fmt.Errorf("transform %s: unknown transformer %q", target.Path, spec.Transformer)
		}

		slog.Debug("Applying transformer", "path", target.Path, "transformer", spec.Transformer)

		content, err := transformer.Process(target.RawContent, target.Path, cfg)
		if err != nil {
			return nil, fmt.Errorf("transform %s: %w", target.Path, err)
		}

		return content, nil
	}

	return target.RawContent, nil
}

func matchPattern(pattern, path string) (bool, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, fmt.Errorf("invalid transform pattern %q: %w", pattern, err)
	}

	return re.MatchString(path), nil
}

// decode reads JSON files with encoding/json and everything else as YAML.
// Both are data-only formats; nothing in the file is executed.
func decode(content []byte, path m.Path) (any, error) {
	var value any

	if formatOf(path) == m.FormatJSON {
		if err := json.Unmarshal(bytes.TrimPrefix(content, utf8BOM), &value); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}

		return value, nil
	}

	if err := yaml.Unmarshal(content, &value); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return value, nil
}

func formatOf(path m.Path) m.SchemaFormat {
	if strings.EqualFold(filepath.Ext(string(path)), ".json") {
		return m.FormatJSON
	}

	return m.FormatYAML
}

// normalize rewrites YAML mappings with non-string keys into
// map[string]any so the document can be addressed by JSON pointers.
func normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		for key, item := range v {
			v[key] = normalize(item)
		}

		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalize(item)
		}

		return out
	case []any:
		for i, item := range v {
			v[i] = normalize(item)
		}

		return v
	default:
		return v
	}
}

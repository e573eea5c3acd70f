package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	m "oaslint.dev/pkg/oaslint/internal/model"
)

// Transformer rewrites raw file content before it is decoded.
type Transformer interface {
	Process(content []byte, path m.Path, cfg m.ProcessingConfig) ([]byte, error)
}

// TransformerFunc adapts a function to the Transformer interface.
type TransformerFunc func(content []byte, path m.Path, cfg m.ProcessingConfig) ([]byte, error)

// Process calls f.
func (f TransformerFunc) Process(content []byte, path m.Path, cfg m.ProcessingConfig) ([]byte, error) {
	return f(content, path, cfg)
}

// TransformerRegistry resolves transformer IDs used in ProcessingConfig.
type TransformerRegistry struct {
	mu           sync.RWMutex
	transformers map[string]Transformer
}

// NewTransformerRegistry returns a registry holding the built-in transformers.
func NewTransformerRegistry() *TransformerRegistry {
	r := &TransformerRegistry{transformers: map[string]Transformer{}}

	r.Register("envsubst", TransformerFunc(expandEnv))
	r.Register("strip-bom", TransformerFunc(stripBOM))
	r.Register("json", TransformerFunc(checkJSON))
	r.Register("yaml", TransformerFunc(checkYAML))

	return r
}

// Register adds or replaces a transformer.
func (r *TransformerRegistry) Register(id string, t Transformer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.transformers[id] = t
}

// Get returns the transformer registered under id.
func (r *TransformerRegistry) Get(id string) (Transformer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.transformers[id]

	return t, ok
}

// IDs lists the registered transformer IDs in sorted order.
func (r *TransformerRegistry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.transformers))
	for id := range r.transformers {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

// expandEnv substitutes ${VAR} and $VAR references from the environment.
func expandEnv(content []byte, _ m.Path, _ m.ProcessingConfig) ([]byte, error) {
	return []byte(os.ExpandEnv(string(content))), nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func stripBOM(content []byte, _ m.Path, _ m.ProcessingConfig) ([]byte, error) {
	return bytes.TrimPrefix(content, utf8BOM), nil
}

// checkJSON passes content through unchanged after making sure it is strict
// JSON rather than YAML.
func checkJSON(content []byte, path m.Path, _ m.ProcessingConfig) ([]byte, error) {
	if !json.Valid(bytes.TrimPrefix(content, utf8BOM)) {
		return nil, fmt.Errorf("%s is not valid JSON", path)
	}

	return content, nil
}

func checkYAML(content []byte, path m.Path, _ m.ProcessingConfig) ([]byte, error) {
	var probe yaml.Node
	if err := yaml.Unmarshal(content, &probe); err != nil {
		return nil, fmt.Errorf("%s is not valid YAML: %w", path, err)
	}

	return content, nil
}

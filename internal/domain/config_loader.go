package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"oaslint.dev/pkg/oaslint/internal/adapter"
	m "oaslint.dev/pkg/oaslint/internal/model"
)

// Default locations for project lint configuration.
const (
	DefaultManifest    = "package.json"
	DefaultConfigField = "oaslintConfig"
)

// DefaultRCFiles are probed in order inside the project root.
var DefaultRCFiles = []string{".oaslintrc.json", ".oaslintrc.yaml", ".oaslintrc.yml"}

// ConfigLoaderOptions locate a project's lint configuration.
type ConfigLoaderOptions struct {
	Manifest    string
	ConfigField string
	RCFiles     []string
}

// DefaultConfigLoaderOptions returns the package.json / .oaslintrc layout.
func DefaultConfigLoaderOptions() ConfigLoaderOptions {
	return ConfigLoaderOptions{
		Manifest:    DefaultManifest,
		ConfigField: DefaultConfigField,
		RCFiles:     append([]string(nil), DefaultRCFiles...),
	}
}

// ConfigSource tells where a resolved configuration came from. An empty Path
// means the defaults were used.
type ConfigSource struct {
	Path  m.Path
	Field string
}

// ConfigLoader resolves the lint configuration for a schema file.
type ConfigLoader interface {
	// Resolve finds and parses the configuration without applying it. On
	// error the returned config is the default one.
	Resolve(ctx context.Context, testPath m.Path) (m.ResolvedConfig, ConfigSource, error)

	// Load resolves the configuration, logs any error, and hands the result
	// to the applier. After the first application it returns the installed
	// configuration without touching the disk.
	Load(ctx context.Context, testPath m.Path) m.ResolvedConfig
}

type configLoader struct {
	fsAdapter adapter.SourceFSAdapter
	applier   *ConfigApplier
	validate  *validator.Validate
	opts      ConfigLoaderOptions
}

// NewConfigLoader constructs a ConfigLoader. Empty option fields fall back to
// the defaults.
func NewConfigLoader(fsAdapter adapter.SourceFSAdapter, applier *ConfigApplier, opts ConfigLoaderOptions) ConfigLoader {
	defaults := DefaultConfigLoaderOptions()

	if opts.Manifest == "" {
		opts.Manifest = defaults.Manifest
	}

	if opts.ConfigField == "" {
		opts.ConfigField = defaults.ConfigField
	}

	if len(opts.RCFiles) == 0 {
		opts.RCFiles = defaults.RCFiles
	}

	return &configLoader{
		fsAdapter: fsAdapter,
		applier:   applier,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		opts:      opts,
	}
}

func (l *configLoader) Load(ctx context.Context, testPath m.Path) m.ResolvedConfig {
	if cfg, ok := l.applier.Config(); ok {
		return cfg
	}

	cfg, source, err := l.Resolve(ctx, testPath)
	if err != nil {
		slog.Error("Failed to load lint config, using defaults", "path", testPath, "error", err)
	} else if source.Path != "" {
		slog.Debug("Loaded lint config", "source", source.Path, "field", source.Field)
	}

	l.applier.Apply(cfg)

	return cfg
}

func (l *configLoader) Resolve(ctx context.Context, testPath m.Path) (m.ResolvedConfig, ConfigSource, error) {
	root, err := l.fsAdapter.FindProjectRoot(ctx, testPath, l.opts.Manifest)
	if err != nil {
		if errors.Is(err, adapter.ErrProjectRootNotFound) {
			return m.DefaultConfig(), ConfigSource{}, nil
		}

		return m.DefaultConfig(), ConfigSource{}, &ConfigLoadError{Path: testPath, Err: err}
	}

	for _, name := range l.opts.RCFiles {
		rcPath := l.fsAdapter.JoinPath(ctx, string(root), name)
		if !l.fsAdapter.Exists(ctx, rcPath) {
			continue
		}

		cfg, err := l.readRCFile(ctx, rcPath)
		if err != nil {
			return m.DefaultConfig(), ConfigSource{}, &ConfigLoadError{Path: rcPath, Err: err}
		}

		return cfg, ConfigSource{Path: rcPath}, nil
	}

	manifestPath := l.fsAdapter.JoinPath(ctx, string(root), l.opts.Manifest)

	cfg, found, err := l.readManifestField(ctx, manifestPath)
	if err != nil {
		return m.DefaultConfig(), ConfigSource{}, &ConfigLoadError{Path: manifestPath, Err: err}
	}

	if !found {
		return m.DefaultConfig(), ConfigSource{}, nil
	}

	return cfg, ConfigSource{Path: manifestPath, Field: l.opts.ConfigField}, nil
}

func (l *configLoader) readRCFile(ctx context.Context, path m.Path) (m.ResolvedConfig, error) {
	data, err := l.fsAdapter.ReadFile(ctx, path)
	if err != nil {
		return m.ResolvedConfig{}, fmt.Errorf("read: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return m.ResolvedConfig{}, fmt.Errorf("parse: %w", err)
	}

	if len(node.Content) == 0 {
		return m.DefaultConfig(), nil
	}

	return l.mergeOverDefaults(node.Content[0])
}

func (l *configLoader) readManifestField(ctx context.Context, path m.Path) (m.ResolvedConfig, bool, error) {
	data, err := l.fsAdapter.ReadFile(ctx, path)
	if err != nil {
		return m.ResolvedConfig{}, false, fmt.Errorf("read: %w", err)
	}

	var manifest map[string]yaml.Node
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return m.ResolvedConfig{}, false, fmt.Errorf("parse: %w", err)
	}

	field, ok := manifest[l.opts.ConfigField]
	if !ok || field.Tag == "!!null" {
		return m.ResolvedConfig{}, false, nil
	}

	cfg, err := l.mergeOverDefaults(&field)
	if err != nil {
		return m.ResolvedConfig{}, false, err
	}

	return cfg, true, nil
}

// mergeOverDefaults decodes node on top of the default config so fields the
// node leaves out keep their default values.
func (l *configLoader) mergeOverDefaults(node *yaml.Node) (m.ResolvedConfig, error) {
	if node.Kind != yaml.MappingNode {
		return m.ResolvedConfig{}, fmt.Errorf("line %d: lint config must be an object", node.Line)
	}

	cfg := m.DefaultConfig()
	if err := node.Decode(&cfg); err != nil {
		return m.ResolvedConfig{}, fmt.Errorf("decode: %w", err)
	}

	if cfg.Rules == nil {
		cfg.Rules = []m.RuleSpec{}
	}

	if err := l.validate.Struct(cfg); err != nil {
		return m.ResolvedConfig{}, fmt.Errorf("invalid: %w", err)
	}

	return cfg, nil
}

// ResolveFrom parses a configuration file given explicitly, for example by
// a command-line flag. The file's format is taken from its extension.
func ResolveFrom(ctx context.Context, fsAdapter adapter.SourceFSAdapter, path m.Path) (m.ResolvedConfig, error) {
	l := &configLoader{
		fsAdapter: fsAdapter,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		opts:      DefaultConfigLoaderOptions(),
	}

	if filepath.Base(string(path)) == DefaultManifest {
		cfg, found, err := l.readManifestField(ctx, path)
		if err != nil {
			return m.DefaultConfig(), &ConfigLoadError{Path: path, Err: err}
		}

		if !found {
			return m.DefaultConfig(), nil
		}

		return cfg, nil
	}

	cfg, err := l.readRCFile(ctx, path)
	if err != nil {
		return m.DefaultConfig(), &ConfigLoadError{Path: path, Err: err}
	}

	return cfg, nil
}

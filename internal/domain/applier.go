package domain

import (
	"log/slog"
	"sync"
	"sync/atomic"

	m "oaslint.dev/pkg/oaslint/internal/model"
)

// RuleRegistry is the part of the lint engine the applier configures.
type RuleRegistry interface {
	LoadDefaultRules()
	ApplyRules(rules []m.RuleSpec)
}

// ConfigApplier installs a lint configuration into a RuleRegistry at most
// once. Later calls are no-ops even when they carry a different config.
type ConfigApplier struct {
	registry RuleRegistry
	once     sync.Once
	applied  atomic.Bool
	config   m.ResolvedConfig
}

// NewConfigApplier constructs an applier for registry.
func NewConfigApplier(registry RuleRegistry) *ConfigApplier {
	return &ConfigApplier{registry: registry}
}

// Apply installs cfg if nothing has been applied yet and reports whether this
// call did the work.
func (a *ConfigApplier) Apply(cfg m.ResolvedConfig) bool {
	did := false

	a.once.Do(func() {
		if cfg.LoadDefaultRules {
			a.registry.LoadDefaultRules()
		}

		if len(cfg.Rules) > 0 {
			a.registry.ApplyRules(cfg.Rules)
		}

		a.config = cfg
		a.applied.Store(true)
		did = true

		slog.Debug("Applied lint configuration", "defaults", cfg.LoadDefaultRules, "rules", len(cfg.Rules))
	})

	return did
}

// Initialize is the explicit composition-root entry point; it is Apply under
// a name that reads well at startup.
func (a *ConfigApplier) Initialize(cfg m.ResolvedConfig) bool {
	return a.Apply(cfg)
}

// Applied reports whether a configuration has been installed.
func (a *ConfigApplier) Applied() bool {
	return a.applied.Load()
}

// Config returns the installed configuration, if any.
func (a *ConfigApplier) Config() (m.ResolvedConfig, bool) {
	if !a.applied.Load() {
		return m.ResolvedConfig{}, false
	}

	return a.config, true
}

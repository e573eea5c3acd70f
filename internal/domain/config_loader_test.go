package domain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oaslint.dev/pkg/oaslint/internal/adapter"
	"oaslint.dev/pkg/oaslint/internal/domain"
	m "oaslint.dev/pkg/oaslint/internal/model"
)

// testManifest avoids picking up a real package.json above the temp dir.
const testManifest = "oaslint-test-manifest.json"

func newConfigLoader(registry domain.RuleRegistry) (domain.ConfigLoader, *domain.ConfigApplier) {
	applier := domain.NewConfigApplier(registry)
	loader := domain.NewConfigLoader(adapter.NewLocalSourceFSAdapter(), applier, domain.ConfigLoaderOptions{
		Manifest: testManifest,
	})

	return loader, applier
}

func TestConfigLoader_NoProjectRootUsesDefaults(t *testing.T) {
	registry := &recordingRegistry{}
	loader, applier := newConfigLoader(registry)

	target := writeFile(t, t.TempDir(), "api/openapi.yaml", "openapi: 3.0.0\n")

	cfg, source, err := loader.Resolve(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, m.DefaultConfig(), cfg)
	assert.Empty(t, source.Path)

	assert.Equal(t, m.DefaultConfig(), loader.Load(context.Background(), target))
	assert.True(t, applier.Applied())
	assert.Equal(t, 1, registry.defaultLoads)
}

func TestConfigLoader_RCFileWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, testManifest, `{"name": "api", "oaslintConfig": {"loadDefaultRules": true}}`)
	writeFile(t, root, ".oaslintrc.json", `{"loadDefaultRules": false, "rules": [{"name": "info-title-short", "object": "info", "description": "short", "maxLength": {"property": "title", "value": 10}}]}`)
	target := writeFile(t, root, "specs/v1/openapi.yaml", "openapi: 3.0.0\n")

	loader, _ := newConfigLoader(&recordingRegistry{})

	cfg, source, err := loader.Resolve(context.Background(), target)
	require.NoError(t, err)

	assert.False(t, cfg.LoadDefaultRules)
	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, "info-title-short", cfg.Rules[0].Name)
	assert.Equal(t, 10, cfg.Rules[0].MaxLength.Value)
	assert.Contains(t, string(source.Path), ".oaslintrc.json")
}

func TestConfigLoader_YAMLRCFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, testManifest, `{}`)
	writeFile(t, root, ".oaslintrc.yaml", "rules:\n  - name: operation-tags\n    enabled: false\n  - name: no-deprecated\n    object: operation\n    description: operations should not be deprecated\n    falsy: deprecated\n")
	target := writeFile(t, root, "openapi.yaml", "openapi: 3.0.0\n")

	loader, _ := newConfigLoader(&recordingRegistry{})

	cfg, _, err := loader.Resolve(context.Background(), target)
	require.NoError(t, err)

	assert.True(t, cfg.LoadDefaultRules, "absent fields keep their defaults")
	require.Len(t, cfg.Rules, 2)
	assert.False(t, cfg.Rules[0].IsEnabled())
	assert.Equal(t, m.StringList{"deprecated"}, cfg.Rules[1].Falsy)
}

func TestConfigLoader_ManifestField(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, testManifest, `{"name": "api", "oaslintConfig": {"loadDefaultRules": false}}`)
	target := writeFile(t, root, "openapi.json", "{}")

	loader, _ := newConfigLoader(&recordingRegistry{})

	cfg, source, err := loader.Resolve(context.Background(), target)
	require.NoError(t, err)

	assert.Equal(t, m.ResolvedConfig{LoadDefaultRules: false, Rules: []m.RuleSpec{}}, cfg)
	assert.Equal(t, domain.DefaultConfigField, source.Field)
}

func TestConfigLoader_ManifestWithoutFieldUsesDefaults(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, testManifest, `{"name": "api"}`)
	target := writeFile(t, root, "openapi.json", "{}")

	loader, _ := newConfigLoader(&recordingRegistry{})

	cfg, source, err := loader.Resolve(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, m.DefaultConfig(), cfg)
	assert.Empty(t, source.Path)
}

func TestConfigLoader_ErrorsFallBackToDefaults(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{
			name:  "malformed rc file",
			files: map[string]string{testManifest: `{}`, ".oaslintrc.json": `{"rules": [`},
		},
		{
			name:  "rc file is not an object",
			files: map[string]string{testManifest: `{}`, ".oaslintrc.json": `[1, 2]`},
		},
		{
			name:  "rule without name",
			files: map[string]string{testManifest: `{}`, ".oaslintrc.json": `{"rules": [{"object": "info", "truthy": "description"}]}`},
		},
		{
			name:  "rule without object or enabled",
			files: map[string]string{testManifest: `{}`, ".oaslintrc.json": `{"rules": [{"name": "x"}]}`},
		},
		{
			name:  "malformed manifest",
			files: map[string]string{testManifest: `{"oaslintConfig": `},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, root, name, content)
			}

			target := writeFile(t, root, "openapi.yaml", "openapi: 3.0.0\n")

			registry := &recordingRegistry{}
			loader, applier := newConfigLoader(registry)

			cfg, _, err := loader.Resolve(context.Background(), target)

			var loadErr *domain.ConfigLoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, m.DefaultConfig(), cfg)

			assert.Equal(t, m.DefaultConfig(), loader.Load(context.Background(), target))
			assert.True(t, applier.Applied())
			assert.Equal(t, 1, registry.defaultLoads)
		})
	}
}

func TestConfigLoader_LoadIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, testManifest, `{}`)
	writeFile(t, root, ".oaslintrc.json", `{"loadDefaultRules": false}`)
	first := writeFile(t, root, "a.yaml", "openapi: 3.0.0\n")

	other := t.TempDir()
	writeFile(t, other, testManifest, `{}`)
	writeFile(t, other, ".oaslintrc.json", `{"loadDefaultRules": true}`)
	second := writeFile(t, other, "b.yaml", "openapi: 3.0.0\n")

	registry := &recordingRegistry{}
	loader, _ := newConfigLoader(registry)

	assert.False(t, loader.Load(context.Background(), first).LoadDefaultRules)
	assert.False(t, loader.Load(context.Background(), second).LoadDefaultRules, "first applied config stays in effect")
	assert.Zero(t, registry.defaultLoads)
}

func TestResolveFrom(t *testing.T) {
	root := t.TempDir()
	fsAdapter := adapter.NewLocalSourceFSAdapter()

	rc := writeFile(t, root, "lint.yaml", "loadDefaultRules: false\n")
	cfg, err := domain.ResolveFrom(context.Background(), fsAdapter, rc)
	require.NoError(t, err)
	assert.False(t, cfg.LoadDefaultRules)

	manifest := writeFile(t, root, "package.json", `{"oaslintConfig": {"rules": [{"name": "tag-description", "enabled": false}]}}`)
	cfg, err = domain.ResolveFrom(context.Background(), fsAdapter, manifest)
	require.NoError(t, err)
	assert.True(t, cfg.LoadDefaultRules)
	require.Len(t, cfg.Rules, 1)

	_, err = domain.ResolveFrom(context.Background(), fsAdapter, m.Path(root+"/missing.yaml"))
	assert.Error(t, err)
}

package cmd

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"oaslint.dev/pkg/oaslint/internal/domain"
	domainmocks "oaslint.dev/pkg/oaslint/internal/domain/mocks"
	"oaslint.dev/pkg/oaslint/internal/lint"
	m "oaslint.dev/pkg/oaslint/internal/model"
)

func withMockWorkflow(t *testing.T) *domainmocks.MockWorkflow {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow

	t.Cleanup(func() { workflow = originalWorkflow })

	return mockWorkflow
}

func withFreshApplier(t *testing.T) *domain.ConfigApplier {
	t.Helper()

	originalApplier := applier
	applier = domain.NewConfigApplier(lint.NewEngine())

	t.Cleanup(func() { applier = originalApplier })

	return applier
}

func passingReport(files int) m.RunReport {
	return m.RunReport{Totals: m.RunTotals{Files: files, Passed: files}}
}

func TestRunCmd_RunMode(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	cmd, _ := newTestRootCmd(t, newRunCmd())

	mockWorkflow.EXPECT().
		Run(mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
			return args.Workers == 2 &&
				args.Reports == m.Path(defaultReportsDir) &&
				len(args.Paths) == 1 && args.Paths[0] == m.Path("./...")
		})).
		Return(passingReport(3), nil)

	cmd.SetArgs([]string{"run", "--parallel", "2", "./..."})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_MultiplePaths(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	cmd, _ := newTestRootCmd(t, newRunCmd())

	mockWorkflow.EXPECT().
		Run(mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
			return len(args.Paths) == 3 &&
				args.Paths[0] == m.Path("./api") &&
				args.Paths[1] == m.Path("openapi.yaml") &&
				args.Paths[2] == m.Path("./specs/...")
		})).
		Return(passingReport(3), nil)

	cmd.SetArgs([]string{"run", "./api", "openapi.yaml", "./specs/..."})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_WithExcludePatterns(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	cmd, _ := newTestRootCmd(t, newRunCmd())

	mockWorkflow.EXPECT().
		Run(mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
			return len(args.Exclude) == 2 &&
				args.Exclude[0] == "^generated/" &&
				args.Exclude[1] == `\.draft\.yaml$`
		})).
		Return(passingReport(1), nil)

	cmd.SetArgs([]string{"run", "-x", "^generated/", "-x", `\.draft\.yaml$`, "./..."})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_DefaultTransformConfig(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	cmd, _ := newTestRootCmd(t, newRunCmd())

	mockWorkflow.EXPECT().
		Run(mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
			return assert.ObjectsAreEqual(defaultTransformIgnorePatterns, args.Config.TransformIgnorePatterns) &&
				len(args.Config.Transform) == 0
		})).
		Return(passingReport(1), nil)

	cmd.SetArgs([]string{"run"})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_FailedSchemasExitNonZero(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	cmd, _ := newTestRootCmd(t, newRunCmd())

	mockWorkflow.EXPECT().
		Run(mock.Anything, mock.Anything).
		Return(m.RunReport{Totals: m.RunTotals{Files: 2, Passed: 1, Failed: 1, Warnings: 3}}, nil)

	cmd.SetArgs([]string{"run", "./..."})
	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 schema file(s) failed")
}

func TestRunCmd_WorkflowError(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	cmd, _ := newTestRootCmd(t, newRunCmd())

	mockWorkflow.EXPECT().
		Run(mock.Anything, mock.Anything).
		Return(m.RunReport{}, errors.New("discover: stat ./missing: no such file or directory"))

	cmd.SetArgs([]string{"run", "./missing"})
	assert.Error(t, cmd.Execute())
}

func TestRunCmd_WatchMode(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	cmd, _ := newTestRootCmd(t, newRunCmd())

	mockWorkflow.EXPECT().
		Watch(mock.Anything, mock.MatchedBy(func(args domain.RunArgs) bool {
			return len(args.Paths) == 1 && args.Paths[0] == m.Path("./api/...")
		})).
		Return(nil)

	cmd.SetArgs([]string{"run", "--watch", "./api/..."})
	require.NoError(t, cmd.Execute())
}

func TestRunCmd_LintConfigFlag(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	freshApplier := withFreshApplier(t)
	cmd, _ := newTestRootCmd(t, newRunCmd())

	rc := filepath.Join(t.TempDir(), "lint.yaml")
	writeTestFile(t, rc, "loadDefaultRules: false\nrules:\n  - name: info-contact\n    enabled: false\n")

	mockWorkflow.EXPECT().Run(mock.Anything, mock.Anything).Return(passingReport(1), nil)

	cmd.SetArgs([]string{"run", "--lint-config", rc, "./..."})
	require.NoError(t, cmd.Execute())

	cfg, ok := freshApplier.Config()
	require.True(t, ok)
	assert.False(t, cfg.LoadDefaultRules)
	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, "info-contact", cfg.Rules[0].Name)
}

func TestRunCmd_LintConfigFlagMissingFile(t *testing.T) {
	withMockWorkflow(t)
	freshApplier := withFreshApplier(t)
	cmd, _ := newTestRootCmd(t, newRunCmd())

	cmd.SetArgs([]string{"run", "--lint-config", filepath.Join(t.TempDir(), "missing.yaml"), "./..."})
	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load lint config")
	assert.False(t, freshApplier.Applied())
}

package controller

import (
	"bytes"
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "oaslint.dev/pkg/oaslint/internal/model"
)

func update(t *testing.T, model runModel, msg tea.Msg) (runModel, tea.Cmd) {
	t.Helper()

	next, cmd := model.Update(msg)

	rm, ok := next.(runModel)
	require.True(t, ok)

	return rm, cmd
}

func TestRunModel_TracksProgress(t *testing.T) {
	model := newRunModel(ModeRun)

	model, _ = update(t, model, runInfoMsg{files: 2, workers: 1})
	model, _ = update(t, model, startingMsg{path: "a.yaml"})
	model, _ = update(t, model, startingMsg{path: "b.yaml"})

	assert.Equal(t, []m.Path{"a.yaml", "b.yaml"}, model.running)

	outcomes := sampleOutcomes()
	outcomes[0].TestPath = "a.yaml"

	model, _ = update(t, model, outcomeMsg{outcome: outcomes[0]})
	assert.Equal(t, []m.Path{"b.yaml"}, model.running)

	model, _ = update(t, model, faultMsg{path: "b.yaml", err: errors.New("boom")})
	assert.Empty(t, model.running)

	view := model.View()
	assert.Contains(t, view, "Checking 2 schema file(s) with 1 worker(s)")
	assert.Contains(t, view, "a.yaml")
	assert.Contains(t, view, "boom")
}

func TestRunModel_SummaryQuitsInRunMode(t *testing.T) {
	model := newRunModel(ModeRun)

	var report m.RunReport
	for _, outcome := range sampleOutcomes() {
		report.Add(outcome)
	}

	model, cmd := update(t, model, summaryMsg{report: report})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, model.View(), "Files: 3 | Passed: 1 | Failed: 2 | Warnings: 2")
	assert.False(t, model.quitting)
}

func TestRunModel_SummaryKeepsWatchModeOpen(t *testing.T) {
	model := newRunModel(ModeWatch)

	model, cmd := update(t, model, summaryMsg{report: m.RunReport{}})
	assert.Nil(t, cmd)
	assert.Contains(t, model.View(), "watching for changes")

	model, _ = update(t, model, outcomeMsg{outcome: sampleOutcomes()[2]})
	model, _ = update(t, model, runInfoMsg{files: 1, workers: 1})
	assert.Empty(t, model.outcomes)
	assert.Nil(t, model.summary)
}

func TestRunModel_MultiOutcomeView(t *testing.T) {
	model := newRunModel(ModeRun)

	model, _ = update(t, model, outcomeMsg{outcome: sampleOutcomes()[2]})

	view := model.View()
	assert.Contains(t, view, "api/warn.yaml (2 warnings)")
	assert.Contains(t, view, "info object should contain contact object - #/info (info-contact)")
}

func TestRunModel_QuitKeys(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyCtrlC},
		{Type: tea.KeyEsc},
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
	} {
		model, cmd := update(t, newRunModel(ModeWatch), key)
		assert.True(t, model.quitting)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}

	model, cmd := update(t, newRunModel(ModeWatch), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.False(t, model.quitting)
	assert.Nil(t, cmd)
}

func TestTUI_DisplayRulesPrintsTable(t *testing.T) {
	var buf bytes.Buffer

	tui := NewTUI(&buf)

	err := tui.DisplayRules(context.Background(), []m.RuleSpec{{Name: "tag-description", Object: "tag"}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "tag-description")
}

func TestTUI_SendBeforeStartIsNoop(t *testing.T) {
	tui := NewTUI(&bytes.Buffer{})

	tui.DisplayOutcome(context.Background(), sampleOutcomes()[0])
	tui.Close(context.Background())
	tui.Wait(context.Background())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

package controller

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "oaslint.dev/pkg/oaslint/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the Bubble Tea program in the background.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := newStartConfig(options...)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return fmt.Errorf("tui already started")
	}

	t.program = tea.NewProgram(newRunModel(cfg.mode), tea.WithOutput(t.output), tea.WithContext(ctx))
	t.done = make(chan struct{})

	go func(program *tea.Program, done chan struct{}) {
		defer close(done)

		final, err := program.Run()
		if err != nil && ctx.Err() == nil {
			_, _ = fmt.Fprintf(t.output, "tui error: %v\n", err)
		}

		if model, ok := final.(runModel); ok && model.quitting && cfg.onQuit != nil {
			cfg.onQuit()
		}
	}(t.program, t.done)

	return nil
}

// Close stops the program and waits for it to exit.
func (t *TUI) Close(_ context.Context) {
	program, done := t.handles()
	if program == nil {
		return
	}

	program.Quit()
	<-done
}

// Wait blocks until the program exits.
func (t *TUI) Wait(ctx context.Context) {
	_, done := t.handles()
	if done == nil {
		return
	}

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// DisplayRunInfo resets the view for a new run.
func (t *TUI) DisplayRunInfo(_ context.Context, files int, workers int) {
	t.send(runInfoMsg{files: files, workers: workers})
}

// DisplayStartingFile marks a file as in progress.
func (t *TUI) DisplayStartingFile(_ context.Context, path m.Path) {
	t.send(startingMsg{path: path})
}

// DisplayOutcome records a finished file.
func (t *TUI) DisplayOutcome(_ context.Context, outcome m.TestOutcome) {
	t.send(outcomeMsg{outcome: outcome})
}

// DisplayFault records a file that produced no outcome.
func (t *TUI) DisplayFault(_ context.Context, path m.Path, err error) {
	t.send(faultMsg{path: path, err: err})
}

// DisplaySummary shows the totals. In run mode it ends the program.
func (t *TUI) DisplaySummary(_ context.Context, report m.RunReport) {
	t.send(summaryMsg{report: report})
}

// DisplayRules prints the rule table directly; it is not interactive.
func (t *TUI) DisplayRules(ctx context.Context, rules []m.RuleSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprint(t.output, renderRulesTable(rules))

	return err
}

func (t *TUI) handles() (*tea.Program, chan struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.program, t.done
}

func (t *TUI) send(msg tea.Msg) {
	program, _ := t.handles()
	if program == nil {
		return
	}

	program.Send(msg)
}

type runInfoMsg struct {
	files   int
	workers int
}

type startingMsg struct {
	path m.Path
}

type outcomeMsg struct {
	outcome m.TestOutcome
}

type faultMsg struct {
	path m.Path
	err  error
}

type summaryMsg struct {
	report m.RunReport
}

type faultLine struct {
	path m.Path
	err  error
}

// runModel is the Bubble Tea model for a lint run.
type runModel struct {
	spinner  spinner.Model
	mode     StartMode
	files    int
	workers  int
	running  []m.Path
	outcomes []m.TestOutcome
	faults   []faultLine
	summary  *m.RunReport
	quitting bool
}

func newRunModel(mode StartMode) runModel {
	return runModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(warnStyle)),
		mode:    mode,
	}
}

func (rm runModel) Init() tea.Cmd {
	return rm.spinner.Tick
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return rm.handleKeyPress(msg)

	case runInfoMsg:
		rm.files = msg.files
		rm.workers = msg.workers
		rm.running = nil
		rm.outcomes = nil
		rm.faults = nil
		rm.summary = nil

		return rm, nil

	case startingMsg:
		rm.running = append(rm.running, msg.path)
		return rm, nil

	case outcomeMsg:
		rm.running = removePath(rm.running, msg.outcome.TestPath)
		rm.outcomes = append(rm.outcomes, msg.outcome)

		return rm, nil

	case faultMsg:
		rm.running = removePath(rm.running, msg.path)
		rm.faults = append(rm.faults, faultLine(msg))

		return rm, nil

	case summaryMsg:
		report := msg.report
		rm.summary = &report
		rm.running = nil

		if rm.mode == ModeRun {
			return rm, tea.Quit
		}

		return rm, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		rm.spinner, cmd = rm.spinner.Update(msg)

		return rm, cmd
	}

	return rm, nil
}

func (rm runModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	//nolint:exhaustive // only quit keys are handled
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		rm.quitting = true
		return rm, tea.Quit
	default:
	}

	if msg.String() == "q" {
		rm.quitting = true
		return rm, tea.Quit
	}

	return rm, nil
}

func (rm runModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("oaslint - OpenAPI schema lint"))
	b.WriteString("\n\n")

	if rm.files > 0 {
		fmt.Fprintf(&b, "  Checking %d schema file(s) with %d worker(s)\n\n", rm.files, rm.workers)
	}

	for _, outcome := range rm.outcomes {
		rm.writeOutcome(&b, outcome)
	}

	for _, fault := range rm.faults {
		fmt.Fprintf(&b, "  %s %s: %v\n", failStyle.Render("!"), fault.path, fault.err)
	}

	for _, path := range rm.running {
		fmt.Fprintf(&b, "  %s %s\n", rm.spinner.View(), path)
	}

	if rm.summary != nil {
		totals := rm.summary.Totals
		fmt.Fprintf(&b, "\n  Files: %d | Passed: %d | Failed: %d | Warnings: %d\n",
			totals.Files, totals.Passed, totals.Failed, totals.Warnings)
	}

	if rm.mode == ModeWatch {
		b.WriteString(dimStyle.Render("\n  watching for changes | q: quit"))
		b.WriteString("\n")
	}

	return b.String()
}

func (rm runModel) writeOutcome(b *strings.Builder, outcome m.TestOutcome) {
	switch outcome.Kind {
	case m.OutcomePass:
		fmt.Fprintf(b, "  %s %s\n", passStyle.Render("✓"), outcome.TestPath)
	case m.OutcomeFail:
		fmt.Fprintf(b, "  %s %s - %s\n", failStyle.Render("✗"), outcome.TestPath, outcome.ErrorMessage)
	case m.OutcomeMulti:
		fmt.Fprintf(b, "  %s %s (%d warnings)\n", warnStyle.Render("⚠"), outcome.TestPath, len(outcome.Tests))

		for _, test := range outcome.Tests {
			fmt.Fprintf(b, "      %s\n", dimStyle.Render(test.Title))
		}
	}
}

func removePath(paths []m.Path, target m.Path) []m.Path {
	out := make([]m.Path, 0, len(paths))

	for _, path := range paths {
		if path != target {
			out = append(out, path)
		}
	}

	return out
}

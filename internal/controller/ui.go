// Package controller provides output adapters for displaying schema lint results.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	m "oaslint.dev/pkg/oaslint/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeRun StartMode = iota
	ModeWatch
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode   StartMode
	onQuit func()
}

// WithRunMode sets the UI to a single run that ends with a summary.
func WithRunMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeRun
	}
}

// WithWatchMode keeps the UI open across repeated runs.
func WithWatchMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeWatch
	}
}

// WithOnQuit registers a callback invoked when the user quits an interactive UI.
func WithOnQuit(fn func()) StartOption {
	return func(c *StartConfig) {
		c.onQuit = fn
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	cfg := StartConfig{mode: ModeRun}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines how run progress and results are shown.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayRunInfo(ctx context.Context, files int, workers int)
	DisplayStartingFile(ctx context.Context, path m.Path)
	DisplayOutcome(ctx context.Context, outcome m.TestOutcome)
	DisplayFault(ctx context.Context, path m.Path, err error)
	DisplaySummary(ctx context.Context, report m.RunReport)
	DisplayRules(ctx context.Context, rules []m.RuleSpec) error
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

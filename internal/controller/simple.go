package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "oaslint.dev/pkg/oaslint/internal/model"
)

var (
	passLabel = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	warnLabel = color.New(color.FgYellow, color.Bold).SprintFunc()
	faint     = color.New(color.Faint).SprintFunc()
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(_ context.Context) {}

// DisplayRunInfo shows how many files will be checked.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, files int, workers int) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Checking %d schema file(s) with %d worker(s)\n", files, workers)
}

// DisplayStartingFile is silent in simple mode; results are printed on completion.
func (s *SimpleUI) DisplayStartingFile(_ context.Context, _ m.Path) {}

// DisplayOutcome prints one file's result and, for lint warnings, one line
// per synthetic test.
func (s *SimpleUI) DisplayOutcome(ctx context.Context, outcome m.TestOutcome) {
	if ctx.Err() != nil {
		return
	}

	duration := faint(fmt.Sprintf("(%s)", outcome.Duration().Round(time.Millisecond)))

	switch outcome.Kind {
	case m.OutcomePass:
		s.printf("%s %s %s\n", passLabel("PASS"), outcome.TestPath, duration)
	case m.OutcomeFail:
		s.printf("%s %s %s\n", failLabel("FAIL"), outcome.TestPath, duration)
		s.printf("  %s\n", outcome.ErrorMessage)

		if outcome.Detail != "" {
			for _, line := range strings.Split(outcome.Detail, "\n") {
				s.printf("    %s\n", line)
			}
		}
	case m.OutcomeMulti:
		s.printf("%s %s %s\n", warnLabel("WARN"), outcome.TestPath, duration)
		s.printf("  %s\n", outcome.ErrorMessage)

		for _, test := range outcome.Tests {
			s.printf("  %s %s\n", failLabel("✗"), test.Title)
		}
	}
}

// DisplayFault prints a file that produced no outcome at all.
func (s *SimpleUI) DisplayFault(ctx context.Context, path m.Path, err error) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%s %s\n  %v\n", failLabel("ERROR"), path, err)
}

// DisplaySummary prints the per-file table and totals.
func (s *SimpleUI) DisplaySummary(ctx context.Context, report m.RunReport) {
	if ctx.Err() != nil {
		return
	}

	s.printf("\n%s", renderSummaryTable(report))
}

// DisplayRules prints the active rule set.
func (s *SimpleUI) DisplayRules(ctx context.Context, rules []m.RuleSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderRulesTable(rules))

	return nil
}

func renderSummaryTable(report m.RunReport) string {
	outcomes := append([]m.TestOutcome(nil), report.Outcomes...)
	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].TestPath < outcomes[j].TestPath
	})

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Result", "Warnings"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	for _, outcome := range outcomes {
		table.Append([]string{string(outcome.TestPath), outcome.Kind.String(), fmt.Sprintf("%d", len(outcome.Tests))})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", report.Totals.Files),
		fmt.Sprintf("%d passed %d failed", report.Totals.Passed, report.Totals.Failed),
		fmt.Sprintf("%d", report.Totals.Warnings),
	})

	table.Render()

	return tableBuffer.String()
}

func renderRulesTable(rules []m.RuleSpec) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Rule", "Object", "Enabled", "Description"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	enabled := 0

	for _, rule := range rules {
		state := "no"
		if rule.IsEnabled() {
			state = "yes"
			enabled++
		}

		table.Append([]string{rule.Name, rule.Object, state, rule.Description})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Rules %d", len(rules)), "", fmt.Sprintf("%d", enabled), ""})
	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

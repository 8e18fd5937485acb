package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	m "bundlepatch.dev/pkg/bundlepatch/internal/model"
)

// Status label styles. Rendering is skipped entirely when color is off, so
// captured output in tests stays plain.
var (
	appliedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	satisfiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	missingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// SimpleUI implements UI using a cobra Command's output streams.
type SimpleUI struct {
	cmd   *cobra.Command
	color bool
}

// NewSimpleUI creates a new SimpleUI. color enables ANSI-styled status labels.
func NewSimpleUI(cmd *cobra.Command, color bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, color: color}
}

// DisplayRuleOutcome prints one status line for a single rule.
func (s *SimpleUI) DisplayRuleOutcome(ctx context.Context, outcome m.Outcome) {
	if err := ctx.Err(); err != nil {
		return
	}

	line := fmt.Sprintf("[%s] %s: %s", s.statusLabel(outcome.Status), outcome.RuleID, outcome.Description)

	if outcome.Status == m.Applied {
		line += fmt.Sprintf(" (%d occurrence(s))", outcome.Matches)
	}

	if outcome.Err != nil {
		line += fmt.Sprintf(": %v", outcome.Err)
	}

	s.printf("%s\n", line)
}

// DisplayDiff renders a unified diff between the original and patched buffers.
func (s *SimpleUI) DisplayDiff(ctx context.Context, name string, before, after []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  1,
	})
	if err != nil {
		return fmt.Errorf("render diff: %w", err)
	}

	s.printf("%s", diff)

	return nil
}

// DisplayBackup names the backup path after a successful commit.
func (s *SimpleUI) DisplayBackup(ctx context.Context, path m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Backup saved to %s\n", path)
}

// DisplaySummary prints the applied/total summary table for a finished run.
func (s *SimpleUI) DisplaySummary(ctx context.Context, result m.RunResult) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\n%s", renderSummaryTable(result))
}

func renderSummaryTable(result m.RunResult) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Rule", "Status", "Matches"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, outcome := range result.Outcomes {
		table.Append([]string{
			outcome.RuleID,
			outcome.Status.String(),
			fmt.Sprintf("%d", outcome.Matches),
		})
	}

	table.SetFooter([]string{
		"applied",
		fmt.Sprintf("%d/%d", result.Applied(), result.Total()),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayDryRunNotice flags that changes were detected but not written.
func (s *SimpleUI) DisplayDryRunNotice(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Dry run: no files were written\n")
}

// DisplayRestored reports a completed backup restore.
func (s *SimpleUI) DisplayRestored(ctx context.Context, target, backup m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Restored %s from %s\n", target, backup)
}

// DisplayRules lists the built-in rule set in application order.
func (s *SimpleUI) DisplayRules(ctx context.Context, rules []m.Rule) {
	if err := ctx.Err(); err != nil {
		return
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"#", "Rule", "Kind", "Description"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
	})

	for i, rule := range rules {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			rule.ID,
			string(rule.Kind),
			rule.Description,
		})
	}

	table.Render()

	s.printf("%s", tableBuffer.String())
}

func (s *SimpleUI) statusLabel(status m.OutcomeStatus) string {
	label := status.String()
	if !s.color {
		return label
	}

	switch status {
	case m.Applied:
		return appliedStyle.Render(label)
	case m.Satisfied:
		return satisfiedStyle.Render(label)
	case m.NotFound:
		return missingStyle.Render(label)
	case m.Error:
		return errorStyle.Render(label)
	}

	return label
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

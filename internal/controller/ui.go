// Package controller provides output adapters for displaying patch results.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"

	m "bundlepatch.dev/pkg/bundlepatch/internal/model"
)

// UI defines the interface for reporting a patch run to the user.
// Implementations can use different output methods (plain text, colored
// terminal output, etc).
type UI interface {
	// DisplayRuleOutcome prints one status line for a single rule.
	DisplayRuleOutcome(ctx context.Context, outcome m.Outcome)
	// DisplayDiff renders a unified diff between the original and patched buffers.
	DisplayDiff(ctx context.Context, name string, before, after []byte) error
	// DisplayBackup names the backup path after a successful commit.
	DisplayBackup(ctx context.Context, path m.Path)
	// DisplaySummary prints the applied/total summary for a finished run.
	DisplaySummary(ctx context.Context, result m.RunResult)
	// DisplayDryRunNotice flags that changes were detected but not written.
	DisplayDryRunNotice(ctx context.Context)
	// DisplayRestored reports a completed backup restore.
	DisplayRestored(ctx context.Context, target, backup m.Path)
	// DisplayRules lists the built-in rule set.
	DisplayRules(ctx context.Context, rules []m.Rule)
}

// IsTTY reports whether the file is attached to a terminal. Colored output is
// only enabled on terminals.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

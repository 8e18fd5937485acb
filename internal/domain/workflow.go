package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"bundlepatch.dev/pkg/bundlepatch/internal/adapter"
	"bundlepatch.dev/pkg/bundlepatch/internal/controller"
	m "bundlepatch.dev/pkg/bundlepatch/internal/model"
)

// PatchArgs contains the arguments for patching a bundle.
type PatchArgs struct {
	Target       m.Path
	BackupSuffix string
	Report       m.Path // empty disables the machine-readable report
	ShowDiff     bool
	DryRun       bool
}

// RestoreArgs contains the arguments for restoring a bundle from its backup.
type RestoreArgs struct {
	Target       m.Path
	BackupSuffix string
}

// Workflow ties the patch engine to the filesystem and the UI. Control flow
// is strictly linear: load, run all rules, decide commit/no-op, report.
type Workflow interface {
	Patch(ctx context.Context, args PatchArgs) error
	Restore(ctx context.Context, args RestoreArgs) error
}

type workflow struct {
	fs      adapter.BundleFSAdapter
	reports adapter.ReportStore
	ui      controller.UI
	patcher Patcher
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fs adapter.BundleFSAdapter,
	reports adapter.ReportStore,
	ui controller.UI,
	patcher Patcher,
) Workflow {
	return &workflow{
		fs:      fs,
		reports: reports,
		ui:      ui,
		patcher: patcher,
	}
}

// Patch loads the target bundle, applies the rule set, commits the result
// behind a backup when the buffer changed, and reports every rule outcome.
// An unreadable target is fatal and aborts before any mutation.
func (w *workflow) Patch(ctx context.Context, args PatchArgs) error {
	info, err := w.fs.FileInfo(args.Target)
	if err != nil {
		return fmt.Errorf("target bundle: %w", err)
	}

	original, err := w.fs.ReadFile(args.Target)
	if err != nil {
		return fmt.Errorf("read bundle %s: %w", args.Target, err)
	}

	slog.Info("bundle loaded", "path", args.Target, "bytes", len(original))

	// The input handle is fully read and released before any mutation begins.
	result := w.patcher.Run(original)

	for _, outcome := range result.Outcomes {
		w.ui.DisplayRuleOutcome(ctx, outcome)
	}

	if args.ShowDiff && result.Changed {
		if err := w.ui.DisplayDiff(ctx, string(args.Target), original, result.Final); err != nil {
			return err
		}
	}

	commit := m.CommitResult{}

	switch {
	case !result.Changed:
		// No byte-level change: perform no filesystem writes at all.
	case args.DryRun:
		w.ui.DisplayDryRunNotice(ctx)
	default:
		commit, err = w.commit(args, original, result.Final, info.Mode())
		if err != nil {
			return err
		}

		w.ui.DisplayBackup(ctx, commit.BackupPath)
	}

	w.ui.DisplaySummary(ctx, result)

	if args.Report != "" {
		report := m.NewRunReport(args.Target, result, commit, args.DryRun)
		if err := w.reports.Save(args.Report, report); err != nil {
			return fmt.Errorf("save run report: %w", err)
		}
	}

	return runStatus(result)
}

// commit writes the pre-patch bytes to the backup path first; the original is
// only opened for writing after the backup write fully succeeded.
func (w *workflow) commit(args PatchArgs, original, final []byte, mode os.FileMode) (m.CommitResult, error) {
	backup := m.Path(string(args.Target) + args.BackupSuffix)

	if err := w.fs.WriteFile(backup, original, mode.Perm()); err != nil {
		return m.CommitResult{}, fmt.Errorf("write backup %s: %w", backup, err)
	}

	slog.Info("backup written", "path", backup)

	if err := w.fs.WriteFile(args.Target, final, mode.Perm()); err != nil {
		// The backup stays on disk; re-running recovers from here.
		return m.CommitResult{BackupPath: backup},
			fmt.Errorf("write patched bundle %s (backup retained at %s): %w", args.Target, backup, err)
	}

	slog.Info("bundle committed", "path", args.Target, "bytes", len(final))

	return m.CommitResult{Committed: true, BackupPath: backup}, nil
}

// Restore copies the backup back over the target. The backup file is retained.
func (w *workflow) Restore(ctx context.Context, args RestoreArgs) error {
	backup := m.Path(string(args.Target) + args.BackupSuffix)

	if _, err := w.fs.FileInfo(backup); err != nil {
		return fmt.Errorf("no backup for %s: %w", args.Target, err)
	}

	if err := w.fs.CopyFile(backup, args.Target); err != nil {
		return fmt.Errorf("restore %s from %s: %w", args.Target, backup, err)
	}

	slog.Info("bundle restored", "path", args.Target, "backup", backup)
	w.ui.DisplayRestored(ctx, args.Target, backup)

	return nil
}

// runStatus maps a finished run onto the exit-code contract: zero only when
// every rule is applied or already satisfied.
func runStatus(result m.RunResult) error {
	switch {
	case result.Complete():
		return nil
	case result.Effective():
		return &ExitError{
			Code: ExitPartial,
			Reason: fmt.Sprintf("incomplete patch: %d/%d rules applied, %d missing (bundle version may have drifted)",
				result.Applied(), result.Total(), result.Missing()),
		}
	default:
		return &ExitError{
			Code:   ExitFailure,
			Reason: "no rules matched: target does not look like a supported bundle",
		}
	}
}

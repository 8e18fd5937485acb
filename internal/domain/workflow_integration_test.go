package domain

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bundlepatch.dev/pkg/bundlepatch/internal/adapter"
	"bundlepatch.dev/pkg/bundlepatch/internal/controller"
	m "bundlepatch.dev/pkg/bundlepatch/internal/model"
)

// End-to-end run over the real filesystem adapter and the plain-text UI.
func TestWorkflow_PatchAndRestore_OnDisk(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "index.js")
	require.NoError(t, os.WriteFile(target, []byte(unpatchedBundle), 0o644))

	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	ui := controller.NewSimpleUI(cmd, false)
	fs := adapter.NewLocalBundleFSAdapter()
	workflow := NewWorkflow(fs, adapter.NewReportStore(), ui, NewPatcher(Rules()))

	err := workflow.Patch(context.Background(), PatchArgs{
		Target:       m.Path(target),
		BackupSuffix: ".bak",
	})
	require.NoError(t, err)

	patched, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(patched), "quietPenguinEnabled:!0")

	backup, err := os.ReadFile(target + ".bak")
	require.NoError(t, err)
	assert.Equal(t, unpatchedBundle, string(backup))

	output := out.String()
	assert.Contains(t, output, "[applied] prefs-default")
	assert.Contains(t, output, "Backup saved to "+target+".bak")
	assert.Contains(t, output, "3/3")

	// Re-running is a clean no-op: the probes report satisfied and the file
	// is left alone.
	out.Reset()
	err = workflow.Patch(context.Background(), PatchArgs{
		Target:       m.Path(target),
		BackupSuffix: ".bak",
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[satisfied] prefs-default")

	rerun, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, patched, rerun)

	// Restore brings back the original bytes and keeps the backup around.
	err = workflow.Restore(context.Background(), RestoreArgs{
		Target:       m.Path(target),
		BackupSuffix: ".bak",
	})
	require.NoError(t, err)

	restored, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, unpatchedBundle, string(restored))

	_, err = os.Stat(target + ".bak")
	assert.NoError(t, err)
}

func TestWorkflow_Patch_MissingFileWritesNothing(t *testing.T) {
	tempDir := t.TempDir()
	target := filepath.Join(tempDir, "absent.js")

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	workflow := NewWorkflow(
		adapter.NewLocalBundleFSAdapter(),
		adapter.NewReportStore(),
		controller.NewSimpleUI(cmd, false),
		NewPatcher(Rules()),
	)

	err := workflow.Patch(context.Background(), PatchArgs{
		Target:       m.Path(target),
		BackupSuffix: ".bak",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "bundlepatch.dev/pkg/bundlepatch/internal/model"
)

func TestLocalBundleFSAdapter_ReadWriteRoundTrip(t *testing.T) {
	fs := NewLocalBundleFSAdapter()
	path := m.Path(filepath.Join(t.TempDir(), "bundle.js"))

	require.NoError(t, fs.WriteFile(path, []byte("content"), 0o644))

	got, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), got)

	info, err := fs.FileInfo(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), info.Size())
}

func TestLocalBundleFSAdapter_ReadFile_Missing(t *testing.T) {
	fs := NewLocalBundleFSAdapter()

	_, err := fs.ReadFile(m.Path(filepath.Join(t.TempDir(), "nope.js")))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalBundleFSAdapter_CopyFile(t *testing.T) {
	fs := NewLocalBundleFSAdapter()
	dir := t.TempDir()
	src := m.Path(filepath.Join(dir, "src.js"))
	dst := m.Path(filepath.Join(dir, "dst.js"))

	require.NoError(t, fs.WriteFile(src, []byte("original bytes"), 0o600))

	require.NoError(t, fs.CopyFile(src, dst))

	got, err := fs.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("original bytes"), got)

	info, err := fs.FileInfo(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLocalBundleFSAdapter_CopyFile_OverwritesExisting(t *testing.T) {
	fs := NewLocalBundleFSAdapter()
	dir := t.TempDir()
	src := m.Path(filepath.Join(dir, "src.js"))
	dst := m.Path(filepath.Join(dir, "dst.js"))

	require.NoError(t, fs.WriteFile(src, []byte("new"), 0o644))
	require.NoError(t, fs.WriteFile(dst, []byte("stale and longer"), 0o644))

	require.NoError(t, fs.CopyFile(src, dst))

	got, err := fs.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestLocalBundleFSAdapter_CopyFile_MissingSource(t *testing.T) {
	fs := NewLocalBundleFSAdapter()
	dir := t.TempDir()

	err := fs.CopyFile(m.Path(filepath.Join(dir, "absent")), m.Path(filepath.Join(dir, "dst")))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

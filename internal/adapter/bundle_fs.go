// Package adapter contains infrastructure adapters for the bundlepatch CLI.
package adapter

import (
	"io"
	"os"

	m "bundlepatch.dev/pkg/bundlepatch/internal/model"
)

// BundleFSAdapter abstracts the filesystem operations the workflow relies on
// when loading, backing up and committing a bundle. It intentionally hides
// direct `os` access so the workflow logic can be tested without touching the
// disk.
type BundleFSAdapter interface {
	// ReadFile loads a file from disk and returns its full contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// CopyFile copies src over dst, preserving the source file mode. An
	// existing dst is overwritten.
	CopyFile(src, dst m.Path) error

	// FileInfo returns metadata for a path so the workflow can check
	// existence and carry the original mode through a commit.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// LocalBundleFSAdapter is the concrete BundleFSAdapter backed by the os
// package.
type LocalBundleFSAdapter struct{}

// NewLocalBundleFSAdapter constructs a LocalBundleFSAdapter.
func NewLocalBundleFSAdapter() *LocalBundleFSAdapter {
	return &LocalBundleFSAdapter{}
}

// ReadFile loads file contents from disk.
func (a *LocalBundleFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalBundleFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// CopyFile copies src over dst, preserving the source file mode.
func (a *LocalBundleFSAdapter) CopyFile(src, dst m.Path) error {
	info, err := os.Stat(string(src))
	if err != nil {
		return err
	}

	// #nosec G304 - src is a user-provided bundle path by design
	in, err := os.Open(string(src))
	if err != nil {
		return err
	}

	defer func() { _ = in.Close() }()

	// #nosec G304 - dst derives from the user-provided bundle path
	out, err := os.OpenFile(string(dst), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalBundleFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

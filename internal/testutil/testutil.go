// Package testutil provides fixtures, fake servers and sandboxed file system
// helpers for the omdb tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestEnv is a sandboxed directory for tests that write files, such as
// poster downloads and SQLite exports. Paths that escape it fail the test.
type TestEnv struct {
	t       testing.TB
	rootDir string
}

// NewTestEnv creates a TestEnv rooted in t.TempDir().
func NewTestEnv(t testing.TB) *TestEnv {
	t.Helper()
	return &TestEnv{t: t, rootDir: t.TempDir()}
}

// RootDir returns the root directory of the test environment.
func (e *TestEnv) RootDir() string {
	return e.rootDir
}

// Path returns the absolute path of elem inside the sandbox.
func (e *TestEnv) Path(elem ...string) string {
	e.t.Helper()

	path := filepath.Clean(filepath.Join(append([]string{e.rootDir}, elem...)...))
	if path != e.rootDir && !strings.HasPrefix(path, e.rootDir+string(filepath.Separator)) {
		e.t.Fatalf("path %q escapes test sandbox %q", path, e.rootDir)
	}
	return path
}

// WriteFile writes content to path, creating parent directories.
func (e *TestEnv) WriteFile(path string, content []byte) {
	e.t.Helper()

	absPath := e.Path(path)
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		e.t.Fatalf("failed to create directory for %q: %v", absPath, err)
	}
	if err := os.WriteFile(absPath, content, 0o644); err != nil {
		e.t.Fatalf("failed to write file %q: %v", absPath, err)
	}
}

// ReadFile reads path from the sandbox.
func (e *TestEnv) ReadFile(path string) []byte {
	e.t.Helper()

	content, err := os.ReadFile(e.Path(path))
	if err != nil {
		e.t.Fatalf("failed to read file %q: %v", path, err)
	}
	return content
}

// FileExists reports whether path exists in the sandbox.
func (e *TestEnv) FileExists(path string) bool {
	e.t.Helper()

	_, err := os.Stat(e.Path(path))
	return err == nil
}

// Chdir changes into path for the rest of the test.
func (e *TestEnv) Chdir(path string) {
	e.t.Helper()

	origDir, err := os.Getwd()
	if err != nil {
		e.t.Fatalf("failed to get current directory: %v", err)
	}
	if err := os.Chdir(e.Path(path)); err != nil {
		e.t.Fatalf("failed to change directory to %q: %v", path, err)
	}
	e.t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			e.t.Errorf("failed to restore directory to %q: %v", origDir, err)
		}
	})
}

// Package testutil provides fixtures for tests that work on real files.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Tree is a directory of fixture files addressed by slash-separated
// relative paths.
type Tree struct {
	t    *testing.T
	Root string
}

// NewTree creates a Tree rooted in a fresh temporary directory.
func NewTree(t *testing.T) *Tree {
	t.Helper()
	return &Tree{t: t, Root: t.TempDir()}
}

// Path returns the absolute path of rel.
func (tr *Tree) Path(rel string) string {
	return filepath.Join(tr.Root, filepath.FromSlash(rel))
}

// Write creates rel with content, making parent directories as needed.
func (tr *Tree) Write(rel, content string) *Tree {
	tr.t.Helper()
	p := tr.Path(rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		tr.t.Fatalf("failed to create %s: %v", filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		tr.t.Fatalf("failed to write %s: %v", p, err)
	}
	return tr
}

// Read returns the content of rel.
func (tr *Tree) Read(rel string) string {
	tr.t.Helper()
	// #nosec G304 - test helper, paths are controlled by test code
	data, err := os.ReadFile(tr.Path(rel))
	if err != nil {
		tr.t.Fatalf("failed to read %s: %v", rel, err)
	}
	return string(data)
}

// Rel converts absolute paths under Root back to slash-separated relative
// paths.
func (tr *Tree) Rel(paths []string) []string {
	tr.t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(tr.Root, p)
		if err != nil {
			tr.t.Fatalf("%s is not under %s: %v", p, tr.Root, err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

// AssertFileExists validates that a file exists.
func (tr *Tree) AssertFileExists(rel string) *Tree {
	tr.t.Helper()
	if _, err := os.Stat(tr.Path(rel)); os.IsNotExist(err) {
		tr.t.Errorf("Expected file to exist: %s", rel)
	}
	return tr
}

// AssertFileNotExists validates that a file does not exist.
func (tr *Tree) AssertFileNotExists(rel string) *Tree {
	tr.t.Helper()
	if _, err := os.Stat(tr.Path(rel)); err == nil {
		tr.t.Errorf("Expected file to not exist: %s", rel)
	}
	return tr
}

// AssertFileContains validates that a file contains expected content.
func (tr *Tree) AssertFileContains(rel, expected string) *Tree {
	tr.t.Helper()
	content := tr.Read(rel)
	if !strings.Contains(content, expected) {
		tr.t.Errorf("Expected file %s to contain %q\nActual content:\n%s", rel, expected, content)
	}
	return tr
}

package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/obagen/internal/logfields"
)

// Workspace describes where a run operates.
type Workspace struct {
	// Root is the absolute directory relative paths resolve against.
	Root string
	// InRepo reports whether Root is a git work-tree root.
	InRepo bool
	// Commit is the checked-out HEAD, empty outside a repository or before
	// the first commit.
	Commit string
}

// Detect finds the workspace containing start. Discovery walks up from start
// looking for a .git directory.
func Detect(start string) (*Workspace, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", start, err)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		slog.Debug("No git repository found, using working directory", logfields.File(abs))
		return &Workspace{Root: abs}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", abs, err)
	}

	wt, err := repo.Worktree()
	if errors.Is(err, git.ErrIsBareRepository) {
		return &Workspace{Root: abs}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}

	// The commit is informational; an unreadable HEAD leaves it empty.
	ws := &Workspace{Root: wt.Filesystem.Root(), InRepo: true}
	head, err := repo.Head()
	switch {
	case err == nil:
		ws.Commit = head.Hash().String()
	case errors.Is(err, plumbing.ErrReferenceNotFound):
	default:
		slog.Debug("Failed to read HEAD, continuing without commit",
			logfields.File(ws.Root),
			logfields.Error(err))
	}

	slog.Debug("Detected git work tree", logfields.File(ws.Root), slog.String("commit", ws.ShortCommit()))
	return ws, nil
}

// Resolve makes p absolute against the workspace root. Absolute paths are
// returned cleaned but otherwise unchanged.
func (w *Workspace) Resolve(p string) string {
	if p == "" {
		return w.Root
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(w.Root, p)
}

// Rel returns p relative to the root using forward slashes, or p itself when
// it lies outside the root.
func (w *Workspace) Rel(p string) string {
	rel, err := filepath.Rel(w.Root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

// ShortCommit returns the abbreviated HEAD hash.
func (w *Workspace) ShortCommit() string {
	if len(w.Commit) > 8 {
		return w.Commit[:8]
	}
	return w.Commit
}

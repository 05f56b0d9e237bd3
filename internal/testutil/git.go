package testutil

import (
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// InitRepo initializes a git repository in a fresh Tree.
func InitRepo(t *testing.T) (*git.Repository, *Tree) {
	t.Helper()
	tr := NewTree(t)
	repo, err := git.PlainInit(tr.Root, false)
	if err != nil {
		t.Fatalf("failed to initialize git repo: %v", err)
	}
	return repo, tr
}

// CommitAll stages every file in the work tree and commits it.
func CommitAll(t *testing.T, repo *git.Repository, msg string) plumbing.Hash {
	t.Helper()
	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to get worktree: %v", err)
	}
	if err := w.AddGlob("."); err != nil {
		t.Fatalf("failed to stage files: %v", err)
	}
	hash, err := w.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
	return hash
}

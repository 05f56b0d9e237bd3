package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTree(t *testing.T) {
	tr := NewTree(t)
	tr.Write("a/b/c.txt", "hello").Write("top.txt", "x")

	assert.Equal(t, "hello", tr.Read("a/b/c.txt"))
	assert.Equal(t, []string{"a/b/c.txt", "top.txt"}, tr.Rel([]string{tr.Path("a/b/c.txt"), tr.Path("top.txt")}))
	tr.AssertFileExists("top.txt").AssertFileNotExists("nope.txt").AssertFileContains("a/b/c.txt", "ell")
}

func TestCommitAll(t *testing.T) {
	repo, tr := InitRepo(t)
	tr.Write("README.md", "oba\n")

	hash := CommitAll(t, repo, "initial")
	head, err := repo.Head()
	assert.NoError(t, err)
	assert.Equal(t, hash, head.Hash())
}

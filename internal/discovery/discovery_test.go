package discovery

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/obagen/internal/testutil"
)

func touch(tr *testutil.Tree, rels ...string) {
	for _, rel := range rels {
		tr.Write(rel, "")
	}
}

func TestMatcher(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"**/*.oba", "top.oba", true},
		{"**/*.oba", "a/b/c.oba", true},
		{"**/*.oba", "a/b/c.obax", false},
		{"*.oba", "a/c.oba", false},
		{"*.oba", "c.oba", true},
		{"lists/**/*.oba", "lists/x.oba", true},
		{"lists/**/*.oba", "lists/deep/er/x.oba", true},
		{"lists/**/*.oba", "other/x.oba", false},
		{"lists/**", "lists/a/b", true},
		{"?.oba", "a.oba", true},
		{"?.oba", "ab.oba", false},
		{"[ab].oba", "b.oba", true},
		{"[!ab].oba", "b.oba", false},
		{"[!ab].oba", "c.oba", true},
		{"a+b.oba", "a+b.oba", true},
		{"a+b.oba", "aab.oba", false},
		{"x**y", "xzzy", true},
		{"x**y", "x/y", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.path, func(t *testing.T) {
			m, err := Compile(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(tt.path))
		})
	}
}

func TestGlob_RecursiveAndSorted(t *testing.T) {
	tr := testutil.NewTree(t)
	touch(tr,
		"strings/concat.oba",
		"basics.oba",
		"lists/append.oba",
		"lists/nested/length.oba",
		"lists/README.md",
		".hidden/skip.oba",
		"lists/.swap.oba",
	)

	files, err := Glob(tr.Root, "**/*.oba")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"basics.oba",
		"lists/append.oba",
		"lists/nested/length.oba",
		"strings/concat.oba",
	}, tr.Rel(files))
}

func TestGlob_MissingRoot(t *testing.T) {
	files, err := Glob(filepath.Join(t.TempDir(), "absent"), "**/*.oba")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestModules(t *testing.T) {
	tr := testutil.NewTree(t)
	touch(tr, "list.oba", "math.oba", "list.oba.c", "sub/deep.oba", "notes.txt")

	files, err := Modules(tr.Root, "*.oba")
	require.NoError(t, err)
	assert.Equal(t, []string{"list.oba", "math.oba"}, tr.Rel(files))

	_, err = Modules(tr.Root, "[")
	require.Error(t, err)
}

func TestModules_MissingDir(t *testing.T) {
	files, err := Modules(filepath.Join(t.TempDir(), "mod"), "*.oba")
	require.NoError(t, err)
	assert.Empty(t, files)
}

package inline

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/obagen/internal/foundation/errors"
)

func TestSource_TwoLines(t *testing.T) {
	in := New(Options{})

	got, err := in.Source("mod/math.oba", "a\nb\n")
	require.NoError(t, err)
	assert.Equal(t, "// Generated automatically from mod/math.oba. Do not edit.\n"+
		"const char* mathModSource =\n"+
		"\n"+
		`"a\n"`+"\n"+
		`"b\n";`, got)
}

func TestTransform_RightTrimsLines(t *testing.T) {
	c := New(Options{}).Transform("mod/list.oba", []string{"fn f {  \t\n", "\n", "  return 1\r\n"})
	assert.Equal(t, "list", c.Symbol)
	assert.Equal(t, []string{`"fn f {\n"`, `"\n"`, `"  return 1\n"`}, c.Literals)
}

func TestTransform_Escaping(t *testing.T) {
	src := []string{`print("a\tb")` + "\n"}

	escaped := New(Options{}).Transform("mod/io.oba", src)
	assert.Equal(t, []string{`"print(\"a\\tb\")\n"`}, escaped.Literals)

	raw := New(Options{Raw: true}).Transform("mod/io.oba", src)
	assert.Equal(t, []string{`"print("a\tb")\n"`}, raw.Literals)
}

func TestRender_EmptyModule(t *testing.T) {
	got := Render("mod/empty.oba", Constant{Symbol: "empty"})
	assert.Equal(t, "// Generated automatically from mod/empty.oba. Do not edit.\n"+
		"const char* emptyModSource =\n"+
		"\n"+
		`"";`, got)
}

func TestRender_TerminatorOnlyOnLastLiteral(t *testing.T) {
	got := Render("m.oba", Constant{Symbol: "m", Literals: []string{`"x\n"`, `"y\n"`, `"z\n"`}})
	assert.Contains(t, got, "\"x\\n\"\n\"y\\n\"\n\"z\\n\";")
	assert.NotContains(t, got, "\"y\\n\";")
}

func TestSymbolName(t *testing.T) {
	in := New(Options{})
	assert.Equal(t, "option", in.SymbolName("mod/option.oba"))
	assert.Equal(t, "list", in.SymbolName(filepath.Join("a", "b", "list.oba")))

	custom := New(Options{Extension: ".ob", OutputSuffix: ".h"})
	assert.Equal(t, "math", custom.SymbolName("mod/math.ob"))
	assert.Equal(t, "mod/math.ob.h", custom.OutputPath("mod/math.ob"))
}

func TestSource_RejectsInvalidIdentifier(t *testing.T) {
	_, err := New(Options{}).Source("mod/my-mod.oba", "x\n")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}

func TestInlineFile(t *testing.T) {
	root := t.TempDir()
	modDir := filepath.Join(root, "mod")
	require.NoError(t, os.MkdirAll(modDir, 0o750))
	path := filepath.Join(modDir, "option.oba")
	require.NoError(t, os.WriteFile(path, []byte("data Option = None | Some x\n"), 0o600))

	stale := path + ".c"
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0o600))

	out, err := New(Options{HeaderBase: root}).InlineFile(path)
	require.NoError(t, err)
	assert.Equal(t, stale, out)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "// Generated automatically from mod/option.oba. Do not edit.\n"+
		"const char* optionModSource =\n"+
		"\n"+
		`"data Option = None | Some x\n";`, string(got))
}

func TestInlineFiles_StopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.oba")
	require.NoError(t, os.WriteFile(good, []byte("a\n"), 0o600))
	missing := filepath.Join(dir, "missing.oba")

	outs, err := New(Options{}).InlineFiles([]string{good, missing})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, []string{good + ".c"}, outs)
}

package commands

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/obagen/internal/examples"
	ferrors "git.home.luguber.info/inful/obagen/internal/foundation/errors"
	"git.home.luguber.info/inful/obagen/internal/testutil"
)

type testEnv struct {
	*testutil.Tree
	config string
	out    bytes.Buffer
	logs   bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	env := &testEnv{Tree: testutil.NewTree(t)}
	env.config = env.Path("obagen.yaml")
	env.Write("obagen.yaml", "examples:\n  fence_language: oba\n").
		Write("test/examples/lists.oba", "print(1)\n// example: guide/lists append\nappend(1, xs)\n// end example\n").
		Write("docs/content/guide/lists.md", "# Lists\n\n<!-- example append -->\n").
		Write("mod/math.oba", "fn add(a, b) = a + b   \n")
	return env
}

func (e *testEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	e.out.Reset()
	cli := &CLI{}
	g := &Global{Out: &e.out, Err: &e.logs}
	parser, err := kong.New(cli,
		kong.Name("obagen"),
		kong.Vars{"version": "test"},
		kong.Bind(g),
		kong.Exit(func(code int) { t.Fatalf("unexpected exit %d", code) }),
	)
	require.NoError(t, err)

	full := append([]string{"--root", e.Root, "-c", e.config}, args...)
	ctx, err := parser.Parse(full)
	require.NoError(t, err)
	return ctx.Run(cli)
}

func TestGenerateDocExamples(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run(t, "generate-doc-examples"))
	assert.Equal(t, "# Lists\n```oba\nappend(1, xs)\n```\n", env.Read("docs/content/guide/lists.md"))
	assert.Contains(t, env.out.String(), "1 guides, 1 examples replaced, 0 unmatched")
	assert.Contains(t, env.logs.String(), "run_id=")
}

func TestGenerateDocExamples_FlagsOverrideConfig(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run(t, "generate-doc-examples", "--lang", "text"))
	assert.Equal(t, "# Lists\n```text\nappend(1, xs)\n```\n", env.Read("docs/content/guide/lists.md"))
}

func TestGenerateDocExamples_DryRun(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run(t, "generate-doc-examples", "--dry-run"))
	assert.Equal(t, "# Lists\n\n<!-- example append -->\n", env.Read("docs/content/guide/lists.md"))
	assert.Contains(t, env.out.String(), "would update")
}

func TestGenerateDocExamples_StructuralError(t *testing.T) {
	env := newTestEnv(t)
	env.Write("test/examples/broken.oba", "// example: guide/lists a\n// example: guide/lists b\n")

	err := env.run(t, "generate-doc-examples")
	require.Error(t, err)
	assert.True(t, examples.IsStructural(err))
	assert.Equal(t, "# Lists\n\n<!-- example append -->\n", env.Read("docs/content/guide/lists.md"))
}

func TestInlineModules(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.run(t, "inline-modules"))
	assert.Equal(t, "// Generated automatically from mod/math.oba. Do not edit.\n"+
		"const char* mathModSource =\n"+
		"\n"+
		`"fn add(a, b) = a + b\n";`, env.Read("mod/math.oba.c"))
	assert.Contains(t, env.out.String(), "mod/math.oba.c")
	assert.Contains(t, env.out.String(), "1 modules inlined")
}

func TestInlineModules_Raw(t *testing.T) {
	env := newTestEnv(t)
	env.Write("mod/io.oba", `print("hi")`+"\n")

	require.NoError(t, env.run(t, "inline-modules", "--raw"))
	assert.Contains(t, env.Read("mod/io.oba.c"), `"print("hi")\n";`)

	require.NoError(t, env.run(t, "inline-modules"))
	assert.Contains(t, env.Read("mod/io.oba.c"), `"print(\"hi\")\n";`)
}

func TestCheck(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.run(t, "check"))
	assert.Contains(t, env.out.String(), "1 examples all match")

	env.Write("docs/content/guide/lists.md", "# Lists\n\n<!-- example append -->\n\n<!-- example length -->\n")
	err := env.run(t, "check")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
	assert.Contains(t, env.out.String(), "unused placeholder guide/lists/length")
}

func TestMetricsFile(t *testing.T) {
	env := newTestEnv(t)
	metricsPath := env.Path("obagen.prom")

	require.NoError(t, env.run(t, "--metrics-file", metricsPath, "generate-doc-examples"))
	got := env.Read("obagen.prom")
	assert.Contains(t, got, "obagen_examples_scraped_total 1")
	assert.Contains(t, got, `obagen_splice_results_total{outcome="replaced"} 1`)
}

func TestInit(t *testing.T) {
	env := newTestEnv(t)
	env.config = env.Path("fresh.yaml")

	require.NoError(t, env.run(t, "init"))
	assert.Contains(t, env.Read("fresh.yaml"), "content_dir: docs/content")

	err := env.run(t, "init")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	require.NoError(t, env.run(t, "init", "--force"))
}

func TestExplicitConfigMustExist(t *testing.T) {
	env := newTestEnv(t)
	env.config = env.Path("missing.yaml")

	err := env.run(t, "inline-modules")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestInvalidLogFormat(t *testing.T) {
	env := newTestEnv(t)

	err := env.run(t, "--log-format", "xml", "inline-modules")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

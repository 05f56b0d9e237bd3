// Package inline turns Oba module sources into C string constants so the
// interpreter can link its core library statically.
//
// For mod/list.oba the generated mod/list.oba.c reads:
//
//	// Generated automatically from mod/list.oba. Do not edit.
//	const char* listModSource =
//
//	"data List = Empty | Cons x xs\n"
//	"fn head xs = ...\n";
package inline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	ferrors "git.home.luguber.info/inful/obagen/internal/foundation/errors"
	"git.home.luguber.info/inful/obagen/internal/logfields"
	"git.home.luguber.info/inful/obagen/internal/metrics"
	"git.home.luguber.info/inful/obagen/internal/util/lines"
)

const (
	// DefaultExtension is the module source extension stripped from symbol names.
	DefaultExtension = ".oba"
	// DefaultOutputSuffix is appended to the module path to name the output.
	DefaultOutputSuffix = ".c"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var literalEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Options configures an Inliner.
type Options struct {
	Extension    string
	OutputSuffix string
	// Raw disables escaping of backslashes and double quotes, reproducing the
	// historical output byte for byte. Modules containing either character
	// then produce invalid C.
	Raw bool
	// HeaderBase, when set, makes the path in the generated header relative
	// to it, so output does not depend on where the tool runs from.
	HeaderBase string
}

// Constant is the generated declaration for one module.
type Constant struct {
	Symbol   string
	Literals []string
}

// Inliner converts module files.
type Inliner struct {
	opts     Options
	recorder metrics.Recorder
}

// New creates an Inliner, filling unset options with defaults.
func New(opts Options) *Inliner {
	if opts.Extension == "" {
		opts.Extension = DefaultExtension
	}
	if opts.OutputSuffix == "" {
		opts.OutputSuffix = DefaultOutputSuffix
	}
	return &Inliner{opts: opts, recorder: metrics.NoopRecorder{}}
}

// WithRecorder sets the metrics recorder.
func (in *Inliner) WithRecorder(r metrics.Recorder) *Inliner {
	if r != nil {
		in.recorder = r
	}
	return in
}

// SymbolName derives the constant's base name from the module path.
func (in *Inliner) SymbolName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), in.opts.Extension)
}

// OutputPath returns where the generated source for path is written.
func (in *Inliner) OutputPath(path string) string {
	return path + in.opts.OutputSuffix
}

// Transform builds the constant for a module's lines. Each line is
// right-trimmed and closed with an explicit newline escape.
func (in *Inliner) Transform(path string, src []string) Constant {
	c := Constant{
		Symbol:   in.SymbolName(path),
		Literals: make([]string, 0, len(src)),
	}
	for _, line := range src {
		line = strings.TrimRightFunc(line, unicode.IsSpace)
		if !in.opts.Raw {
			line = literalEscaper.Replace(line)
		}
		c.Literals = append(c.Literals, `"`+line+`\n"`)
	}
	return c
}

// Render produces the generated source text for c. Lines are joined with
// "\n" and the text has no trailing newline. The statement terminator is
// attached to the final literal; a module without lines gets an empty literal.
func Render(header string, c Constant) string {
	out := []string{
		fmt.Sprintf("// Generated automatically from %s. Do not edit.", header),
		fmt.Sprintf("const char* %sModSource =", c.Symbol),
		"",
	}
	literals := c.Literals
	if len(literals) == 0 {
		literals = []string{`""`}
	}
	out = append(out, literals...)
	out[len(out)-1] += ";"
	return strings.Join(out, "\n")
}

// Source converts module content read from path into generated source.
func (in *Inliner) Source(path, content string) (string, error) {
	c := in.Transform(path, lines.Split(content))
	if !identifier.MatchString(c.Symbol) {
		return "", ferrors.ValidationError("module name is not a valid C identifier").
			WithContext("file", path).
			WithContext("symbol", c.Symbol).
			Build()
	}
	return Render(in.headerPath(path), c), nil
}

// InlineFile reads the module at path and writes its generated sibling,
// overwriting any previous output. It returns the output path.
func (in *Inliner) InlineFile(path string) (string, error) {
	// #nosec G304 -- module paths come from discovery under the module dir.
	data, err := os.ReadFile(path)
	if err != nil {
		return "", ferrors.FileSystemError("read module").WithCause(err).
			WithContext("file", path).
			Build()
	}

	text, err := in.Source(path, string(data))
	if err != nil {
		return "", err
	}

	out := in.OutputPath(path)
	// #nosec G306 -- generated sources are checked in alongside the module.
	if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
		return "", ferrors.FileSystemError("write generated module").WithCause(err).
			WithContext("file", out).
			Build()
	}

	symbol := in.SymbolName(path)
	in.recorder.IncModuleInlined(symbol)
	slog.Info("Inlined module", logfields.Module(symbol), logfields.File(path), logfields.Output(out))
	return out, nil
}

// InlineFiles inlines each path in order, stopping at the first failure.
func (in *Inliner) InlineFiles(paths []string) ([]string, error) {
	outs := make([]string, 0, len(paths))
	for _, p := range paths {
		out, err := in.InlineFile(p)
		if err != nil {
			return outs, err
		}
		outs = append(outs, out)
	}
	return outs, nil
}

func (in *Inliner) headerPath(path string) string {
	if in.opts.HeaderBase == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(in.opts.HeaderBase, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

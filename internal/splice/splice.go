// Package splice writes scraped example blocks into guide templates.
//
// A guide template marks each example position with a placeholder line
// preceded by one separator line:
//
//	Some prose about lists.
//
//	<!-- example append -->
//
// Splicing replaces both the separator and the placeholder with a fenced
// code block holding the example's lines. The separator contract is load
// bearing: whatever sits directly above a placeholder is consumed.
package splice

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/obagen/internal/examples"
	ferrors "git.home.luguber.info/inful/obagen/internal/foundation/errors"
	"git.home.luguber.info/inful/obagen/internal/logfields"
	"git.home.luguber.info/inful/obagen/internal/markdown"
	"git.home.luguber.info/inful/obagen/internal/metrics"
	"git.home.luguber.info/inful/obagen/internal/util/lines"
	"git.home.luguber.info/inful/obagen/internal/util/sets"
)

// Options configures a Splicer.
type Options struct {
	// ContentDir holds the guide templates, one <guide>.md per guide.
	ContentDir string
	// FenceInfo is written after the opening fence, e.g. "oba". Empty by default.
	FenceInfo string
	// DryRun computes substitutions without writing guide files.
	DryRun bool
}

// GuideReport summarizes the splice of one guide file.
type GuideReport struct {
	Guide     string
	Path      string
	Replaced  []examples.Block
	Unmatched []examples.Block
	// Changed is false when the file content is unchanged.
	Changed bool
}

// Report summarizes a splice run.
type Report struct {
	Guides []GuideReport
}

// Replaced counts substituted blocks across all guides.
func (r *Report) Replaced() int {
	n := 0
	for _, g := range r.Guides {
		n += len(g.Replaced)
	}
	return n
}

// Unmatched returns every block whose placeholder was not found.
func (r *Report) Unmatched() []examples.Block {
	var out []examples.Block
	for _, g := range r.Guides {
		out = append(out, g.Unmatched...)
	}
	return out
}

// Splicer rewrites guide templates in place.
type Splicer struct {
	opts     Options
	recorder metrics.Recorder
}

// New creates a Splicer.
func New(opts Options) *Splicer {
	return &Splicer{opts: opts, recorder: metrics.NoopRecorder{}}
}

// WithRecorder sets the metrics recorder.
func (s *Splicer) WithRecorder(r metrics.Recorder) *Splicer {
	if r != nil {
		s.recorder = r
	}
	return s
}

// GuidePath returns the template path of guide.
func (s *Splicer) GuidePath(guide string) string {
	return filepath.Join(s.opts.ContentDir, filepath.FromSlash(guide)+".md")
}

// Splice applies blocks to their guides. Guides are processed in the order
// they first appear in blocks; the first failure aborts the run and leaves
// guides written so far in place.
func (s *Splicer) Splice(blocks []examples.Block) (*Report, error) {
	byGuide := make(map[string][]examples.Block)
	order := make([]string, 0, len(blocks))
	for _, b := range blocks {
		order = append(order, b.Guide)
		byGuide[b.Guide] = append(byGuide[b.Guide], b)
	}

	report := &Report{}
	for _, guide := range sets.Ordered(order) {
		gr, err := s.SpliceGuide(guide, byGuide[guide])
		if err != nil {
			return report, err
		}
		report.Guides = append(report.Guides, gr)
	}
	return report, nil
}

// SpliceGuide applies blocks to a single guide file.
func (s *Splicer) SpliceGuide(guide string, blocks []examples.Block) (GuideReport, error) {
	path := s.GuidePath(guide)
	gr := GuideReport{Guide: guide, Path: path}

	// #nosec G304 -- guide names are restricted to word and slash characters.
	data, err := os.ReadFile(path)
	if err != nil {
		return gr, ferrors.FileSystemError("read guide").WithCause(err).
			WithContext("guide", guide).
			WithContext("file", path).
			Build()
	}

	res, err := Text(string(data), blocks, s.opts.FenceInfo)
	if err != nil {
		var classified *ferrors.ClassifiedError
		if errors.As(err, &classified) {
			return gr, classified.WithContext("file", path)
		}
		return gr, err
	}
	gr.Replaced = res.Replaced
	gr.Unmatched = res.Unmatched
	gr.Changed = res.Output != string(data)

	for _, b := range res.Replaced {
		s.recorder.IncSpliceResult(metrics.SpliceReplaced)
		slog.Debug("Replaced placeholder", logfields.Guide(guide), logfields.Example(b.Name), logfields.File(b.Source))
	}
	for range res.Unmatched {
		s.recorder.IncSpliceResult(metrics.SpliceUnmatched)
	}

	if !gr.Changed || s.opts.DryRun {
		return gr, nil
	}

	// #nosec G306 -- guides are documentation sources meant to be world readable.
	if err := os.WriteFile(path, []byte(res.Output), 0o644); err != nil {
		return gr, ferrors.FileSystemError("write guide").WithCause(err).
			WithContext("guide", guide).
			WithContext("file", path).
			Build()
	}
	slog.Info("Spliced examples into guide",
		logfields.Guide(guide),
		logfields.File(path),
		logfields.Count(len(res.Replaced)))
	return gr, nil
}

// TextResult is the outcome of splicing one template buffer.
type TextResult struct {
	Output    string
	Replaced  []examples.Block
	Unmatched []examples.Block
}

// Text splices blocks into the template src and returns the new content.
//
// Each block claims the first placeholder line for its name that no earlier
// block has claimed. All substitutions are located against the original
// buffer and applied end-to-start, so inserted code is never rescanned.
// A block with no placeholder is skipped without error.
//
// The separator line above a placeholder is consumed along with it, unless
// that line is itself a claimed placeholder. Adjacent placeholders thus
// each keep their own line and never collide.
func Text(src string, blocks []examples.Block, fenceInfo string) (TextResult, error) {
	ls := lines.Split(src)
	off := lines.Offsets(ls)
	claimed := sets.New[int]()

	type match struct {
		line  int
		block examples.Block
	}
	var (
		res     TextResult
		matches []match
	)
	for _, b := range blocks {
		i := findPlaceholder(ls, b.Name, claimed)
		if i < 0 {
			res.Unmatched = append(res.Unmatched, b)
			continue
		}
		claimed.Add(i)
		matches = append(matches, match{line: i, block: b})
	}

	edits := make([]markdown.Edit, 0, len(matches))
	for _, m := range matches {
		start := m.line
		if m.line > 0 && !claimed.Has(m.line-1) {
			start = m.line - 1
		}
		edits = append(edits, markdown.Edit{
			Start:       off[start],
			End:         off[m.line+1],
			Replacement: []byte(Fence(m.block.Code, fenceInfo)),
			Label:       m.block.Name,
		})
		res.Replaced = append(res.Replaced, m.block)
	}

	out, err := markdown.ApplyEdits([]byte(src), edits)
	if err != nil {
		return TextResult{}, ferrors.InternalError("apply splice edits").WithCause(err).Build()
	}
	res.Output = string(out)
	return res, nil
}

// Fence renders code as a fenced block. Code lines are copied verbatim; a
// final line missing its terminator gets one.
func Fence(code []string, info string) string {
	var b strings.Builder
	b.WriteString("```")
	b.WriteString(info)
	b.WriteString("\n")
	for _, line := range code {
		b.WriteString(line)
	}
	if n := len(code); n > 0 && !strings.HasSuffix(code[n-1], "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n")
	return b.String()
}

func findPlaceholder(ls []string, name string, claimed sets.Set[int]) int {
	for i, line := range ls {
		if claimed.Has(i) {
			continue
		}
		if markdown.IsPlaceholder(line, name) {
			return i
		}
	}
	return -1
}

// String renders a one-line summary for logs and CLI output.
func (r *Report) String() string {
	return fmt.Sprintf("%d guides, %d examples replaced, %d unmatched",
		len(r.Guides), r.Replaced(), len(r.Unmatched()))
}

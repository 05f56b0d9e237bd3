package examples

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	ferrors "git.home.luguber.info/inful/obagen/internal/foundation/errors"
	"git.home.luguber.info/inful/obagen/internal/logfields"
	"git.home.luguber.info/inful/obagen/internal/util/lines"
)

var (
	beginMarker = regexp.MustCompile(`// example: ([\w/]+) (.*)`)
	endMarker   = regexp.MustCompile(`// end example`)
)

// Diagnostic messages carried by structural errors.
const (
	MsgNotInExample = "not in an example"
	MsgNested       = "nested example"
)

// state is the scanner position: outside{} or inside{block}.
type state interface{ isState() }

type outside struct{}

type inside struct{ block Block }

func (outside) isState() {}
func (inside) isState()  {}

// Scrape reads r and returns its example blocks in appearance order.
// source names the input in blocks and errors.
func Scrape(r io.Reader, source string) ([]Block, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	return ScrapeLines(lines.Split(string(data)), source)
}

// ScrapeLines runs the marker state machine over pre-split lines.
func ScrapeLines(src []string, source string) ([]Block, error) {
	var (
		blocks []Block
		st     state = outside{}
	)

	for i, line := range src {
		lineNo := i + 1

		switch cur := st.(type) {
		case outside:
			if lines.IsBlank(line) {
				continue
			}
			if m := beginMarker.FindStringSubmatch(line); m != nil {
				st = inside{block: Block{
					Guide:  m[1],
					Name:   strings.TrimRight(m[2], "\r\n"),
					Code:   []string{},
					Source: source,
					Line:   lineNo,
				}}
				continue
			}
			if endMarker.MatchString(line) {
				return nil, structural(MsgNotInExample, source, lineNo)
			}

		case inside:
			if beginMarker.MatchString(line) {
				return nil, structural(MsgNested, source, lineNo).
					WithContext("open_line", cur.block.Line)
			}
			if endMarker.MatchString(line) {
				blocks = append(blocks, cur.block)
				st = outside{}
				continue
			}
			cur.block.Code = append(cur.block.Code, line)
			st = cur
		}
	}

	// A block still open at end of input is dropped; closed blocks stand.
	if open, ok := st.(inside); ok {
		slog.Debug("Dropped unterminated example",
			logfields.File(source),
			logfields.Example(open.block.Name),
			slog.Int("line", open.block.Line))
	}
	return blocks, nil
}

// ScrapeFile scrapes a single file from disk.
func ScrapeFile(path string) ([]Block, error) {
	// #nosec G304 -- paths come from discovery under the configured examples dir.
	f, err := os.Open(path)
	if err != nil {
		return nil, ferrors.FileSystemError("open example file").WithCause(err).
			WithContext("file", path).
			Build()
	}
	defer func() {
		_ = f.Close()
	}()
	return Scrape(f, path)
}

// ScrapeFiles scrapes each path in order and concatenates the results.
// The first failure aborts the whole batch.
func ScrapeFiles(paths []string) ([]Block, error) {
	var all []Block
	for _, p := range paths {
		blocks, err := ScrapeFile(p)
		if err != nil {
			return nil, err
		}
		slog.Debug("Scraped example file", logfields.File(p), logfields.Count(len(blocks)))
		all = append(all, blocks...)
	}
	return all, nil
}

// IsStructural reports whether err stems from malformed example markers.
func IsStructural(err error) bool {
	return ferrors.HasCategory(err, ferrors.CategoryStructural)
}

func structural(msg, source string, line int) *ferrors.ClassifiedError {
	return ferrors.StructuralError(msg).
		WithContext("file", source).
		WithContext("line", line).
		Build()
}

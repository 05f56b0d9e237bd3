// Package markdown holds the Markdown-aware helpers used when splicing examples
// into guide templates: byte-range edits and placeholder discovery.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var placeholderPattern = regexp.MustCompile(`^<!-- example (.+) -->$`)

// PlaceholderToken returns the exact (trimmed) line that marks where the
// example called name is substituted.
func PlaceholderToken(name string) string {
	return fmt.Sprintf("<!-- example %s -->", name)
}

// IsPlaceholder reports whether line, once trimmed, is the placeholder for name.
func IsPlaceholder(line, name string) bool {
	return strings.TrimSpace(line) == PlaceholderToken(name)
}

// Placeholder is a placeholder comment found in a rendered Markdown document.
type Placeholder struct {
	Name string
	// Line is the 1-based line number in the document.
	Line int
}

// FindPlaceholders parses body with Goldmark and returns the placeholders that
// appear as HTML comment blocks. Placeholder text inside fenced or indented
// code is not reported, since it renders as code rather than as a marker.
func FindPlaceholders(body []byte) []Placeholder {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	var found []Placeholder
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		block, ok := n.(*gmast.HTMLBlock)
		if !ok {
			return gmast.WalkContinue, nil
		}

		segs := block.Lines()
		for i := 0; i < segs.Len(); i++ {
			found = appendPlaceholder(found, body, segs.At(i))
		}
		if block.HasClosure() {
			found = appendPlaceholder(found, body, block.ClosureLine)
		}
		return gmast.WalkSkipChildren, nil
	})
	return found
}

func appendPlaceholder(found []Placeholder, body []byte, seg text.Segment) []Placeholder {
	line := strings.TrimSpace(string(seg.Value(body)))
	m := placeholderPattern.FindStringSubmatch(line)
	if m == nil {
		return found
	}
	return append(found, Placeholder{
		Name: m[1],
		Line: bytes.Count(body[:seg.Start], []byte("\n")) + 1,
	})
}

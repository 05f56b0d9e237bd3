package splice

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/inful/obagen/internal/discovery"
	"git.home.luguber.info/inful/obagen/internal/examples"
	ferrors "git.home.luguber.info/inful/obagen/internal/foundation/errors"
	"git.home.luguber.info/inful/obagen/internal/markdown"
)

// FindingKind classifies a mismatch between examples and placeholders.
type FindingKind string

const (
	// FindingUnmatchedExample is a block whose guide has no free placeholder for it.
	FindingUnmatchedExample FindingKind = "unmatched example"
	// FindingMissingGuide is a block naming a guide without a template.
	FindingMissingGuide FindingKind = "missing guide"
	// FindingUnusedPlaceholder is a placeholder no block fills.
	FindingUnusedPlaceholder FindingKind = "unused placeholder"
)

// Finding is one mismatch reported by Check.
type Finding struct {
	Kind  FindingKind
	Guide string
	Name  string
	// File and Line locate the finding: the test program for examples, the
	// guide template for placeholders.
	File string
	Line int
}

func (f Finding) String() string {
	return fmt.Sprintf("%s:%d: %s %s/%s", f.File, f.Line, f.Kind, f.Guide, f.Name)
}

// Check compares blocks with the placeholders found in the rendered guides.
// guides maps guide names to their template contents. Each placeholder
// satisfies at most one block, matching how Splice claims them.
func Check(blocks []examples.Block, guides map[string][]byte) []Finding {
	free := make(map[string]map[string][]markdown.Placeholder, len(guides))
	for guide, body := range guides {
		byName := make(map[string][]markdown.Placeholder)
		for _, p := range markdown.FindPlaceholders(body) {
			byName[p.Name] = append(byName[p.Name], p)
		}
		free[guide] = byName
	}

	var findings []Finding
	for _, b := range blocks {
		byName, ok := free[b.Guide]
		if !ok {
			findings = append(findings, Finding{Kind: FindingMissingGuide, Guide: b.Guide, Name: b.Name, File: b.Source, Line: b.Line})
			continue
		}
		if ps := byName[b.Name]; len(ps) > 0 {
			byName[b.Name] = ps[1:]
			continue
		}
		findings = append(findings, Finding{Kind: FindingUnmatchedExample, Guide: b.Guide, Name: b.Name, File: b.Source, Line: b.Line})
	}

	var unused []Finding
	for guide, byName := range free {
		for name, ps := range byName {
			for _, p := range ps {
				unused = append(unused, Finding{Kind: FindingUnusedPlaceholder, Guide: guide, Name: name, Line: p.Line})
			}
		}
	}
	sort.Slice(unused, func(i, j int) bool {
		if unused[i].Guide != unused[j].Guide {
			return unused[i].Guide < unused[j].Guide
		}
		return unused[i].Line < unused[j].Line
	})
	return append(findings, unused...)
}

// Check loads every guide template under the content directory and compares
// it with blocks. Unused placeholder findings carry the template path.
func (s *Splicer) Check(blocks []examples.Block) ([]Finding, error) {
	paths, err := discovery.Glob(s.opts.ContentDir, "**/*.md")
	if err != nil {
		return nil, err
	}

	guides := make(map[string][]byte, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(s.opts.ContentDir, p)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "relative guide path").Build()
		}
		// #nosec G304 -- paths come from walking the content directory.
		body, err := os.ReadFile(p)
		if err != nil {
			return nil, ferrors.FileSystemError("read guide").WithCause(err).
				WithContext("file", p).
				Build()
		}
		guides[strings.TrimSuffix(filepath.ToSlash(rel), ".md")] = body
	}

	findings := Check(blocks, guides)
	for i := range findings {
		if findings[i].Kind == FindingUnusedPlaceholder {
			findings[i].File = s.GuidePath(findings[i].Guide)
		}
	}
	return findings, nil
}

// Package discovery finds the input files of a run: test programs under the
// examples directory and module sources under the module directory.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	ferrors "git.home.luguber.info/inful/obagen/internal/foundation/errors"
	"git.home.luguber.info/inful/obagen/internal/logfields"
)

// Matcher tests slash-separated relative paths against a glob.
type Matcher struct {
	pattern string
	rx      *regexp.Regexp
}

// Compile builds a Matcher. "**" as a whole path segment matches any number
// of directories, "*" and "?" never cross a "/", and "[...]" is a character
// class ("[!...]" negates).
func Compile(pattern string) (*Matcher, error) {
	rx, err := regexp.Compile(globToRegex(pattern))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryValidation, "invalid glob").
			WithContext("pattern", pattern).
			Build()
	}
	return &Matcher{pattern: pattern, rx: rx}, nil
}

// Match reports whether rel matches.
func (m *Matcher) Match(rel string) bool {
	return m.rx.MatchString(filepath.ToSlash(rel))
}

func (m *Matcher) String() string { return m.pattern }

// globToRegex converts a shell-style glob to an anchored regex string.
func globToRegex(glob string) string {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(glob); i++ {
		c := glob[i]
		switch c {
		case '*':
			if i+1 < len(glob) && glob[i+1] == '*' && (i == 0 || glob[i-1] == '/') {
				if i+2 == len(glob) {
					b.WriteString(".*")
					i++
					continue
				}
				if glob[i+2] == '/' {
					b.WriteString("(?:[^/]*/)*")
					i += 2
					continue
				}
			}
			b.WriteString("[^/]*")
		case '?':
			b.WriteString("[^/]")
		case '[':
			end := strings.IndexByte(glob[i+1:], ']')
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}
			class := glob[i+1 : i+1+end]
			b.WriteByte('[')
			if strings.HasPrefix(class, "!") {
				b.WriteByte('^')
				class = class[1:]
			}
			b.WriteString(strings.ReplaceAll(class, `\`, `\\`))
			b.WriteByte(']')
			i += end + 1
		case '.', '+', '(', ')', '|', '^', '$', '{', '}', ']', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteString("$")
	return b.String()
}

// Glob walks root and returns the regular files whose path relative to root
// matches pattern, sorted lexically. Hidden files and directories are
// skipped. A missing root yields no files.
func Glob(root, pattern string) ([]string, error) {
	m, err := Compile(pattern)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}
		if m.Match(rel) {
			files = append(files, path)
			slog.Debug("Discovered file", logfields.File(rel), logfields.Pattern(pattern))
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) && len(files) == 0 {
		slog.Warn("Search root does not exist", logfields.File(root))
		return nil, nil
	}
	if err != nil {
		return nil, ferrors.FileSystemError("failed to walk directory").WithCause(err).
			WithContext("file", root).
			Build()
	}

	sort.Strings(files)
	return files, nil
}

// Modules lists the files directly inside dir whose name matches pattern.
func Modules(dir, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryValidation, "invalid module pattern").
			WithContext("pattern", pattern).
			Build()
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Module directory does not exist", logfields.File(dir))
		return nil, nil
	}
	if err != nil {
		return nil, ferrors.FileSystemError("failed to read module directory").WithCause(err).
			WithContext("file", dir).
			Build()
	}

	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if ok, _ := filepath.Match(pattern, e.Name()); ok {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

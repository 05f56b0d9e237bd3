// Package lines splits text into lines the way the generators consume it:
// each line keeps its own terminator so content can be copied back verbatim.
package lines

import "strings"

// Split breaks data into lines, each retaining its trailing "\n" (and any
// preceding "\r"). A final line without a terminator is kept as-is.
// Empty input yields no lines.
func Split(data string) []string {
	if data == "" {
		return nil
	}
	out := make([]string, 0, strings.Count(data, "\n")+1)
	for data != "" {
		i := strings.IndexByte(data, '\n')
		if i < 0 {
			out = append(out, data)
			break
		}
		out = append(out, data[:i+1])
		data = data[i+1:]
	}
	return out
}

// Offsets returns the byte offset at which each line starts, plus a final
// entry holding the total length, so line i spans [off[i], off[i+1]).
func Offsets(ls []string) []int {
	off := make([]int, len(ls)+1)
	for i, l := range ls {
		off[i+1] = off[i] + len(l)
	}
	return off
}

// IsBlank reports whether the line holds only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

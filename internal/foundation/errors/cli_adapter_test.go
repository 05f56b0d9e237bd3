package errors

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation error", err: ValidationError("invalid input").Build(), expected: 2},
		{name: "structural error", err: StructuralError("not in an example").Build(), expected: 3},
		{name: "config error", err: ConfigError("bad config").Build(), expected: 7},
		{name: "filesystem error", err: FileSystemError("write failed").Build(), expected: 11},
		{name: "internal error", err: InternalError("boom").Build(), expected: 10},
		{
			name:     "wrapped structural error",
			err:      fmt.Errorf("scrape a.oba: %w", StructuralError("not in an example").Build()),
			expected: 3,
		},
		{name: "unclassified error", err: &customError{msg: "unknown error"}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{name: "internal error in non-verbose mode", err: InternalError("internal issue").Build(), contains: "Internal error occurred (use -v for details)"},
		{name: "structural error keeps location", err: StructuralError("not in an example").WithContext("file", "a.oba").WithContext("line", 4).Build(), contains: "file=a.oba line=4"},
		{name: "config error", err: ConfigError("bad config").Build(), contains: "bad config"},
		{name: "unclassified error", err: &customError{msg: "unknown error"}, contains: "Error: unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, adapter.FormatError(tt.err), tt.contains)
		})
	}

	assert.Empty(t, adapter.FormatError(nil))
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out bytes.Buffer
	var logs bytes.Buffer
	code := -1

	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	adapter.out = &out
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(StructuralError("not in an example").WithContext("file", "x.oba").Build())

	require.Equal(t, 3, code)
	assert.Contains(t, out.String(), "not in an example")
	assert.Contains(t, logs.String(), "category=structural")
	assert.Contains(t, logs.String(), "file=x.oba")
}

// customError is a test helper for unclassified errors
type customError struct {
	msg string
}

func (e *customError) Error() string {
	return e.msg
}

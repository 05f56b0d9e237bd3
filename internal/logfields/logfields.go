package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyFile       = "file"
	KeyGuide      = "guide"
	KeyExample    = "example"
	KeyModule     = "module"
	KeyOutput     = "output"
	KeyCount      = "count"
	KeyPattern    = "pattern"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr     { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr   { return slog.String(KeyStage, name) }
func File(path string) slog.Attr    { return slog.String(KeyFile, path) }
func Guide(name string) slog.Attr   { return slog.String(KeyGuide, name) }
func Example(name string) slog.Attr { return slog.String(KeyExample, name) }
func Module(name string) slog.Attr  { return slog.String(KeyModule, name) }
func Output(path string) slog.Attr  { return slog.String(KeyOutput, path) }
func Count(n int) slog.Attr         { return slog.Int(KeyCount, n) }
func Pattern(p string) slog.Attr    { return slog.String(KeyPattern, p) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

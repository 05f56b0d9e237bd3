package metrics

import (
	"log/slog"
	"time"

	"git.home.luguber.info/inful/obagen/internal/logfields"
)

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// SpliceOutcome labels what happened to one example block during splicing.
type SpliceOutcome string

const (
	SpliceReplaced  SpliceOutcome = "replaced"
	SpliceUnmatched SpliceOutcome = "unmatched"
)

// Recorder defines observability hooks for generator runs.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	AddExamplesScraped(n int)
	IncSpliceResult(outcome SpliceOutcome)
	IncModuleInlined(module string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) AddExamplesScraped(int)                     {}
func (NoopRecorder) IncSpliceResult(SpliceOutcome)              {}
func (NoopRecorder) IncModuleInlined(string)                    {}

// TimeStage runs fn, recording its duration and outcome under stage.
func TimeStage(r Recorder, stage string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	r.ObserveStageDuration(stage, elapsed)
	slog.Debug("Stage finished", logfields.Stage(stage), logfields.Duration(elapsed), slog.Bool("ok", err == nil))
	if err != nil {
		r.IncStageResult(stage, ResultFailed)
		return err
	}
	r.IncStageResult(stage, ResultSuccess)
	return nil
}

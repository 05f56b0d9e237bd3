package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "obagen"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry        *prom.Registry
	stageDuration   *prom.HistogramVec
	stageResults    *prom.CounterVec
	examplesScraped prom.Counter
	spliceResults   *prom.CounterVec
	modulesInlined  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
// A nil registry gets a fresh one.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of generator stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		examplesScraped: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "examples_scraped_total",
			Help:      "Example blocks scraped from test sources",
		}),
		spliceResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "splice_results_total",
			Help:      "Example blocks by splice outcome",
		}, []string{"outcome"}),
		modulesInlined: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "modules_inlined_total",
			Help:      "Interpreter modules converted to generated source",
		}, []string{"module"}),
	}
	reg.MustRegister(pr.stageDuration, pr.stageResults, pr.examplesScraped, pr.spliceResults, pr.modulesInlined)
	return pr
}

// Registry returns the registry the recorder's collectors live on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) AddExamplesScraped(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.examplesScraped.Add(float64(n))
}

func (p *PrometheusRecorder) IncSpliceResult(outcome SpliceOutcome) {
	if p == nil {
		return
	}
	p.spliceResults.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncModuleInlined(module string) {
	if p == nil {
		return
	}
	p.modulesInlined.WithLabelValues(module).Inc()
}

// WriteTextfile writes the recorder's registry to path in the Prometheus
// text exposition format. The file is replaced atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.registry)
}

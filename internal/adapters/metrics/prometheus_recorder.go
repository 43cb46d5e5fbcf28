package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/qworld/internal/core/domain"
	"go.trai.ch/qworld/internal/core/ports"
	"go.trai.ch/zerr"
)

// Namespace prefixes every metric name.
const Namespace = "qworld"

// PrometheusRecorder implements ports.Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry *prom.Registry

	cacheLookups    *prom.CounterVec
	deduplicated    prom.Counter
	compiles        *prom.CounterVec
	compileDuration *prom.HistogramVec
	passDuration    prom.Histogram
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}

	pr := &PrometheusRecorder{
		registry: reg,
		cacheLookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: Namespace,
			Name:      "cache_lookups_total",
			Help:      "Artifact cache lookups by result",
		}, []string{"result"}),
		deduplicated: prom.NewCounter(prom.CounterOpts{
			Namespace: Namespace,
			Name:      "deduplicated_fragments_total",
			Help:      "Fragments that shared an in-flight compilation",
		}),
		compiles: prom.NewCounterVec(prom.CounterOpts{
			Namespace: Namespace,
			Name:      "compilations_total",
			Help:      "Toolchain compilations by fragment kind and result",
		}, []string{"kind", "result"}),
		compileDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: Namespace,
			Name:      "compile_duration_seconds",
			Help:      "Duration of one two-stage compilation",
			Buckets:   prom.ExponentialBuckets(0.25, 2, 8),
		}, []string{"kind"}),
		passDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: Namespace,
			Name:      "pass_duration_seconds",
			Help:      "Duration of a document build pass",
			Buckets:   prom.DefBuckets,
		}),
	}

	reg.MustRegister(pr.cacheLookups, pr.deduplicated, pr.compiles, pr.compileDuration, pr.passDuration)
	return pr
}

// Registry returns the registry holding the recorder's collectors.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

func (p *PrometheusRecorder) IncCacheHit() {
	p.cacheLookups.WithLabelValues("hit").Inc()
}

func (p *PrometheusRecorder) IncCacheMiss() {
	p.cacheLookups.WithLabelValues("miss").Inc()
}

func (p *PrometheusRecorder) IncDeduplicated() {
	p.deduplicated.Inc()
}

func (p *PrometheusRecorder) IncCompile(kind string, result ports.CompileResult) {
	p.compiles.WithLabelValues(kind, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveCompileDuration(kind string, d time.Duration) {
	p.compileDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObservePassDuration(d time.Duration) {
	p.passDuration.Observe(d.Seconds())
}

// WriteTextfile writes the registry atomically in the text exposition format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMetricsWriteFailed.Error()), "path", path)
	}
	return nil
}

var (
	_ ports.Recorder        = (*PrometheusRecorder)(nil)
	_ ports.MetricsExporter = (*PrometheusRecorder)(nil)
)

package ports

import "time"

// CompileResult labels the outcome of a compilation for metrics.
type CompileResult string

const (
	// ResultSuccess labels a compilation that produced an artifact.
	ResultSuccess CompileResult = "success"
	// ResultFailure labels a compilation that failed.
	ResultFailure CompileResult = "failure"
)

// Recorder collects pipeline metrics.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Recorder interface {
	IncCacheHit()
	IncCacheMiss()
	IncDeduplicated()
	IncCompile(kind string, result CompileResult)
	ObserveCompileDuration(kind string, d time.Duration)
	ObservePassDuration(d time.Duration)
}

// MetricsExporter writes collected metrics for external collectors.
type MetricsExporter interface {
	// WriteTextfile writes all metrics in the Prometheus text format to path.
	WriteTextfile(path string) error
}

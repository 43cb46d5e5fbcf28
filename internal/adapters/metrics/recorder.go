package metrics

import (
	"time"

	"go.trai.ch/qworld/internal/core/ports"
)

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) IncCacheHit()                                 {}
func (NoopRecorder) IncCacheMiss()                                {}
func (NoopRecorder) IncDeduplicated()                             {}
func (NoopRecorder) IncCompile(string, ports.CompileResult)       {}
func (NoopRecorder) ObserveCompileDuration(string, time.Duration) {}
func (NoopRecorder) ObservePassDuration(time.Duration)            {}

// WriteTextfile does nothing.
func (NoopRecorder) WriteTextfile(string) error { return nil }

var (
	_ ports.Recorder        = NoopRecorder{}
	_ ports.MetricsExporter = NoopRecorder{}
)

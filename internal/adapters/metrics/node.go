package metrics

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/qworld/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the Prometheus recorder Graft node.
	NodeID graft.ID = "adapter.metrics"
	// RecorderNodeID exposes the recorder as ports.Recorder.
	RecorderNodeID graft.ID = "adapter.metrics.recorder"
	// ExporterNodeID exposes the recorder as ports.MetricsExporter.
	ExporterNodeID graft.ID = "adapter.metrics.exporter"
)

func init() {
	graft.Register(graft.Node[*PrometheusRecorder]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*PrometheusRecorder, error) {
			return NewPrometheusRecorder(nil), nil
		},
	})

	graft.Register(graft.Node[ports.Recorder]{
		ID:        RecorderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (ports.Recorder, error) {
			rec, err := graft.Dep[*PrometheusRecorder](ctx)
			if err != nil {
				return nil, err
			}
			return rec, nil
		},
	})

	graft.Register(graft.Node[ports.MetricsExporter]{
		ID:        ExporterNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (ports.MetricsExporter, error) {
			rec, err := graft.Dep[*PrometheusRecorder](ctx)
			if err != nil {
				return nil, err
			}
			return rec, nil
		},
	})
}

package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/qworld/internal/adapters/metrics"
	"go.trai.ch/qworld/internal/core/domain"
	"go.trai.ch/qworld/internal/core/ports"
)

func TestPrometheusRecorder_Counters(t *testing.T) {
	reg := prom.NewRegistry()
	pr := metrics.NewPrometheusRecorder(reg)

	pr.IncCacheHit()
	pr.IncCacheHit()
	pr.IncCacheMiss()
	pr.IncDeduplicated()
	pr.IncCompile("block", ports.ResultSuccess)
	pr.IncCompile("inline", ports.ResultFailure)
	pr.ObserveCompileDuration("block", 1500*time.Millisecond)
	pr.ObservePassDuration(2 * time.Second)

	assert.Same(t, reg, pr.Registry())

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.ElementsMatch(t, []string{
		"qworld_cache_lookups_total",
		"qworld_compilations_total",
		"qworld_compile_duration_seconds",
		"qworld_deduplicated_fragments_total",
		"qworld_pass_duration_seconds",
	}, names)

	path := filepath.Join(t.TempDir(), "qworld.prom")
	require.NoError(t, pr.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(data)
	for _, line := range []string{
		`qworld_cache_lookups_total{result="hit"} 2`,
		`qworld_cache_lookups_total{result="miss"} 1`,
		`qworld_compilations_total{kind="block",result="success"} 1`,
		`qworld_compilations_total{kind="inline",result="failure"} 1`,
		`qworld_deduplicated_fragments_total 1`,
		`qworld_compile_duration_seconds_count{kind="block"} 1`,
		`qworld_pass_duration_seconds_sum 2`,
	} {
		assert.Contains(t, text, line)
	}
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := metrics.NewPrometheusRecorder(nil)
	pr.IncCacheMiss()

	path := filepath.Join(t.TempDir(), "qworld.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `qworld_cache_lookups_total{result="miss"} 1`)

	err = pr.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "qworld.prom"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMetricsWriteFailed.Error())
}

func TestNoopRecorder(t *testing.T) {
	var rec ports.Recorder = metrics.NoopRecorder{}
	assert.NotPanics(t, func() {
		rec.IncCacheHit()
		rec.IncCacheMiss()
		rec.IncDeduplicated()
		rec.IncCompile("block", ports.ResultSuccess)
		rec.ObserveCompileDuration("block", time.Second)
		rec.ObservePassDuration(time.Second)
	})
	assert.NoError(t, metrics.NoopRecorder{}.WriteTextfile("/nonexistent/path"))
}

package linear_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/qworld/internal/adapters/linear"
	"go.trai.ch/zerr"
)

var t0 = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newRenderer(t *testing.T, opts ...linear.Option) (*linear.Renderer, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr, opts...)
	require.NoError(t, r.Start(context.Background()))
	return r, &stdout, &stderr
}

func TestRenderer_StreamedLifecycle(t *testing.T) {
	r, stdout, stderr := newRenderer(t, linear.WithStreamedLogs())

	r.OnPlanEmit([]string{"aa", "bb"})
	r.OnTaskStart("root", "", "build", t0)
	r.OnTaskStart("span1", "root", "diagram aa", t0)
	r.OnTaskLog("span1", []byte("This is LuaHBTeX\nOutput "))
	r.OnTaskLog("span1", []byte("written\n"))
	r.OnTaskComplete("span1", t0.Add(1234*time.Millisecond), nil)
	r.OnTaskComplete("root", t0.Add(2*time.Second), nil)
	require.NoError(t, r.Stop())

	assert.Equal(t, "[diagram aa] This is LuaHBTeX\n[diagram aa] Output written\n", stdout.String())
	assert.Equal(t,
		"Compiling 2 diagram(s)\n"+
			"[diagram aa] Compiling...\n"+
			"[diagram aa] ✓ Compiled in 1.234s\n",
		stderr.String())
}

func TestRenderer_CompactHidesLogs(t *testing.T) {
	r, stdout, stderr := newRenderer(t)

	r.OnTaskStart("span1", "root", "diagram aa", t0)
	r.OnTaskLog("span1", []byte("noise\n"))
	r.OnTaskComplete("span1", t0.Add(50*time.Millisecond), zerr.New("compile error"))

	assert.Empty(t, stdout.String())
	assert.Equal(t, "[diagram aa] ✗ Failed after 50ms: compile error\n", stderr.String())
}

func TestRenderer_PartialLineFlushedOnComplete(t *testing.T) {
	r, stdout, _ := newRenderer(t, linear.WithStreamedLogs())

	r.OnTaskStart("span1", "root", "diagram aa", t0)
	r.OnTaskLog("span1", []byte("partial"))
	assert.Empty(t, stdout.String())

	r.OnTaskLog("span1", []byte(" line\r\nunflushed"))
	assert.Equal(t, "[diagram aa] partial line\n", stdout.String())

	r.OnTaskComplete("span1", t0, nil)
	assert.Equal(t, "[diagram aa] partial line\n[diagram aa] unflushed\n", stdout.String())
}

func TestRenderer_StopFlushesOpenSpans(t *testing.T) {
	r, stdout, _ := newRenderer(t, linear.WithStreamedLogs())

	r.OnTaskStart("span1", "root", "diagram aa", t0)
	r.OnTaskLog("span1", []byte("dangling"))
	require.NoError(t, r.Stop())

	assert.Equal(t, "[diagram aa] dangling\n", stdout.String())
}

func TestRenderer_UnknownSpansAndEmptyPlan(t *testing.T) {
	r, stdout, stderr := newRenderer(t, linear.WithStreamedLogs())

	r.OnPlanEmit(nil)
	r.OnTaskLog("missing", []byte("x\n"))
	r.OnTaskComplete("missing", t0, nil)

	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRenderer_InterleavedSpans(t *testing.T) {
	r, stdout, _ := newRenderer(t, linear.WithStreamedLogs())

	r.OnTaskStart("s1", "root", "diagram aa", t0)
	r.OnTaskStart("s2", "root", "diagram bb", t0)
	r.OnTaskLog("s1", []byte("a1\n"))
	r.OnTaskLog("s2", []byte("b1\n"))
	r.OnTaskLog("s1", []byte("a2\n"))

	assert.Equal(t, "[diagram aa] a1\n[diagram bb] b1\n[diagram aa] a2\n", stdout.String())
}

func TestRenderer_NoColor(t *testing.T) {
	r, _, stderr := newRenderer(t, linear.WithStreamedLogs())

	r.OnTaskStart("span1", "root", "diagram aa", t0)
	r.OnTaskComplete("span1", t0, nil)

	assert.NotContains(t, stderr.String(), "\x1b[")
}

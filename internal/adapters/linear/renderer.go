// Package linear provides a synchronous, line-buffered progress renderer.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/qworld/internal/ui/output"
)

// Renderer implements ports.Renderer with chronological, prefixed lines.
// Root spans frame a build pass and are not printed.
type Renderer struct {
	stdout     io.Writer
	stderr     io.Writer
	output     *termenv.Output
	streamLogs bool

	mu      sync.Mutex
	tasks   map[string]*taskState // spanID -> task state
	buffers map[string]*bytes.Buffer
}

type taskState struct {
	name      string
	startTime time.Time
	root      bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStreamedLogs prints toolchain output and start lines as they arrive.
func WithStreamedLogs() Option {
	return func(r *Renderer) {
		r.streamLogs = true
	}
}

// NewRenderer creates a new Renderer. Nil writers default to stdout and stderr.
func NewRenderer(stdout, stderr io.Writer, opts ...Option) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	r := &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		output:  output.New(stderr, output.Basic),
		tasks:   make(map[string]*taskState),
		buffers: make(map[string]*bytes.Buffer),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start is a no-op; the renderer is synchronous.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes all remaining buffers.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for spanID := range r.buffers {
		r.flushBufferLocked(spanID)
	}
	return nil
}

// OnPlanEmit announces how many diagrams a pass compiles.
func (r *Renderer) OnPlanEmit(fingerprints []string) {
	if len(fingerprints) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Compiling %d diagram(s)\n", len(fingerprints))
}

// OnTaskStart records a span and, when streaming, prints a start line.
func (r *Renderer) OnTaskStart(spanID, parentID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[spanID] = &taskState{
		name:      name,
		startTime: startTime,
		root:      parentID == "",
	}
	r.buffers[spanID] = new(bytes.Buffer)

	if r.streamLogs && parentID != "" {
		prefix := r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
		_, _ = fmt.Fprintf(r.stderr, "%s Compiling...\n", prefix)
	}
}

// OnTaskLog buffers output and prints complete lines with the span prefix.
// Output is dropped unless streaming.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok || !r.streamLogs {
		return
	}

	buf := r.buffers[spanID]
	buf.Write(data)

	for {
		idx := bytes.IndexByte(buf.Bytes(), '\n')
		if idx < 0 {
			break
		}
		r.printLineLocked(task.name, buf.Next(idx+1))
	}
}

// OnTaskComplete flushes remaining output and prints the outcome.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}

	r.flushBufferLocked(spanID)
	delete(r.tasks, spanID)
	delete(r.buffers, spanID)

	if task.root {
		return
	}

	duration := endTime.Sub(task.startTime).Round(time.Millisecond)
	prefix := fmt.Sprintf("[%s]", task.name)

	if err != nil {
		symbol := output.Outcome(r.output, false)
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n", prefix, symbol, duration, err)
		return
	}

	_, _ = fmt.Fprintf(r.stderr, "%s %s Compiled in %v\n", prefix, output.Outcome(r.output, true), duration)
}

// flushBufferLocked prints a trailing partial line. Must be called with r.mu held.
func (r *Renderer) flushBufferLocked(spanID string) {
	task, ok := r.tasks[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	if buf.Len() > 0 {
		r.printLineLocked(task.name, buf.Bytes())
		buf.Reset()
	}
}

// printLineLocked prints a line with the span name prefix. Must be called with r.mu held.
func (r *Renderer) printLineLocked(taskName string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))

	if len(line) == 0 {
		return
	}

	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", taskName, line)
}

// Package scheduler runs build passes: it resolves every diagram fragment of a
// document against the artifact cache, compiles the misses with bounded
// parallelism and rewrites the document tree.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/yuin/goldmark/ast"
	"go.trai.ch/qworld/internal/core/domain"
	"go.trai.ch/qworld/internal/core/ports"
	"go.trai.ch/qworld/internal/engine/extractor"
	"go.trai.ch/qworld/internal/engine/rewriter"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Span attribute keys set on every compile span.
const (
	AttrFingerprint = "fingerprint"
	AttrKind        = "kind"
	AttrCache       = "cache"
)

// Options tunes a Scheduler.
type Options struct {
	// TemplateVersion is mixed into every fingerprint.
	TemplateVersion string
	// Concurrency bounds the number of simultaneous compilations.
	Concurrency int
	// TaskTimeout bounds a single compilation. Zero means no limit.
	TaskTimeout time.Duration
}

// Scheduler owns the collaborators of a build pass.
type Scheduler struct {
	extractor *extractor.Extractor
	rewriter  *rewriter.Rewriter
	hasher    ports.Hasher
	cache     ports.ArtifactCache
	compiler  ports.Compiler
	tracer    ports.Tracer
	recorder  ports.Recorder
	logger    ports.Logger
	opts      Options
}

// NewScheduler creates a new Scheduler with the given dependencies.
func NewScheduler(
	ext *extractor.Extractor,
	rw *rewriter.Rewriter,
	hasher ports.Hasher,
	cache ports.ArtifactCache,
	compiler ports.Compiler,
	tracer ports.Tracer,
	recorder ports.Recorder,
	logger ports.Logger,
	opts Options,
) *Scheduler {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &Scheduler{
		extractor: ext,
		rewriter:  rw,
		hasher:    hasher,
		cache:     cache,
		compiler:  compiler,
		tracer:    tracer,
		recorder:  recorder,
		logger:    logger,
		opts:      opts,
	}
}

// FragmentFailure is a failed fingerprint reported by a pass.
type FragmentFailure struct {
	Fingerprint domain.Fingerprint
	Kind        domain.Kind
	Failure     *domain.Failure
}

// Report summarizes a build pass.
//
// Hits, Compiled and Failed count distinct fingerprints. Deduplicated counts
// the fragments that shared a fingerprint with an earlier fragment, so
// Fragments == Hits + Compiled + Failed + Deduplicated.
type Report struct {
	Fragments    int
	Hits         int
	Compiled     int
	Deduplicated int
	Failed       int
	Failures     []FragmentFailure
}

// Add accumulates another report into r.
func (r *Report) Add(other Report) {
	r.Fragments += other.Fragments
	r.Hits += other.Hits
	r.Compiled += other.Compiled
	r.Deduplicated += other.Deduplicated
	r.Failed += other.Failed
	r.Failures = append(r.Failures, other.Failures...)
}

// task is the unit of work for one distinct fingerprint within a pass.
type task struct {
	fp         domain.Fingerprint
	kind       domain.Kind
	source     string
	cached     bool
	resolution domain.Resolution
}

// Process runs one build pass over doc and rewrites it in place.
//
// Compile failures settle their own fragment and never abort the pass. The
// returned error is non-nil only for I/O failures on the artifact or scratch
// directories, or when ctx is cancelled, in which case doc is left untouched.
func (s *Scheduler) Process(ctx context.Context, doc ast.Node, source []byte) (Report, error) {
	start := time.Now()
	defer func() { s.recorder.ObservePassDuration(time.Since(start)) }()

	// Collect before touching the tree: the rewriter detaches nodes.
	var fragments []domain.Fragment
	for f := range s.extractor.Extract(doc, source) {
		fragments = append(fragments, f)
	}

	report := Report{Fragments: len(fragments)}
	if len(fragments) == 0 {
		return report, nil
	}

	inFlight := make(map[domain.Fingerprint]*task, len(fragments))
	assigned := make([]*task, len(fragments))
	var pending []*task

	for i, f := range fragments {
		fp := s.hasher.Fingerprint(s.opts.TemplateVersion, f.Kind, f.Source)
		if t, ok := inFlight[fp]; ok {
			assigned[i] = t
			report.Deduplicated++
			s.recorder.IncDeduplicated()
			continue
		}

		t := &task{fp: fp, kind: f.Kind, source: f.Source}
		inFlight[fp] = t
		assigned[i] = t

		if entry, ok := s.cache.Lookup(fp); ok {
			t.cached = true
			t.resolution = domain.Resolution{Entry: entry, Cached: true}
			s.recorder.IncCacheHit()
			continue
		}

		s.recorder.IncCacheMiss()
		pending = append(pending, t)
	}

	if err := s.compileAll(ctx, pending); err != nil {
		return report, err
	}

	for _, t := range inFlight {
		switch {
		case t.cached:
			report.Hits++
		case t.resolution.OK():
			report.Compiled++
		default:
			report.Failed++
		}
	}
	for _, t := range pending {
		if !t.resolution.OK() {
			report.Failures = append(report.Failures, FragmentFailure{
				Fingerprint: t.fp,
				Kind:        t.kind,
				Failure:     t.resolution.Failure,
			})
		}
	}

	for i, f := range fragments {
		s.rewriter.Apply(f, assigned[i].resolution)
	}

	return report, nil
}

// compileAll announces the pending fingerprints and compiles them with
// bounded parallelism.
func (s *Scheduler) compileAll(ctx context.Context, pending []*task) error {
	if len(pending) == 0 {
		return ctx.Err()
	}

	plan := make([]string, len(pending))
	for i, t := range pending {
		plan[i] = t.fp.String()
	}
	s.tracer.EmitPlan(ctx, plan)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for _, t := range pending {
		g.Go(func() error {
			return s.compile(gctx, t)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// compile runs the toolchain for one task and settles its resolution.
func (s *Scheduler) compile(ctx context.Context, t *task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, span := s.tracer.Start(ctx, "diagram "+t.fp.String())
	defer span.End()

	span.SetAttribute(AttrFingerprint, t.fp.String())
	span.SetAttribute(AttrKind, t.kind.String())
	span.SetAttribute(AttrCache, "miss")

	taskCtx := ctx
	if s.opts.TaskTimeout > 0 {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithTimeout(ctx, s.opts.TaskTimeout)
		defer cancel()
	}

	kind := t.kind.String()
	started := time.Now()
	outcome, err := s.compiler.Compile(taskCtx, t.kind, t.source, t.fp, span)
	s.recorder.ObserveCompileDuration(kind, time.Since(started))
	if err != nil {
		span.RecordError(err)
		return zerr.With(err, "fingerprint", t.fp.String())
	}

	if !outcome.OK() {
		failure := outcome.Failure
		if errors.Is(taskCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			failure = &domain.Failure{
				Kind:  domain.FailureCompile,
				Log:   failure.Log,
				Cause: zerr.With(domain.ErrCompileTimeout, "timeout", s.opts.TaskTimeout.String()),
			}
		}
		t.resolution = domain.Resolution{
			Entry:   domain.CacheEntry{Fingerprint: t.fp},
			Failure: failure,
		}
		s.recorder.IncCompile(kind, ports.ResultFailure)
		span.RecordError(failure)
		s.logFailure(t, failure)
		return nil
	}

	entry, err := s.cache.Store(t.fp, outcome.Artifact)
	if err != nil {
		span.RecordError(err)
		return zerr.With(err, "fingerprint", t.fp.String())
	}

	t.resolution = domain.Resolution{Entry: entry}
	s.recorder.IncCompile(kind, ports.ResultSuccess)
	return nil
}

func (s *Scheduler) logFailure(t *task, failure *domain.Failure) {
	msg := "diagram " + t.fp.String() + " (" + t.kind.String() + ") failed: " + failure.Error()
	if failure.Log != "" {
		msg += "\n" + failure.Log
	}
	s.logger.Warn(msg)
}

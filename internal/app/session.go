package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/qworld/internal/adapters/detector"
	"go.trai.ch/qworld/internal/adapters/linear"
	"go.trai.ch/qworld/internal/adapters/telemetry"
	"go.trai.ch/qworld/internal/core/domain"
	"go.trai.ch/qworld/internal/core/ports"
	"go.trai.ch/qworld/internal/engine/extractor"
	"go.trai.ch/qworld/internal/engine/rewriter"
	"go.trai.ch/qworld/internal/engine/scheduler"
	"go.trai.ch/qworld/internal/markdown"
	"go.trai.ch/zerr"
)

// TracerName names the tracer of build spans.
const TracerName = "qworld"

// Root span attributes.
const (
	AttrBuildID   = "build.id"
	AttrDocuments = "documents"
	AttrDiagrams  = "diagrams"
	AttrFailed    = "failed"
)

// NewMarkdown returns the goldmark instance documents are parsed and rendered with.
func NewMarkdown() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.GFM, markdown.Math))
}

// session holds everything a build needs that depends on the configuration.
// Watch mode reuses one session for every pass.
type session struct {
	cfg       *domain.Config
	logger    ports.Logger
	markdown  goldmark.Markdown
	scheduler *scheduler.Scheduler
	tracer    ports.Tracer
	// provider is nil when spans go nowhere.
	provider *sdktrace.TracerProvider
	renderer  ports.Renderer
}

func (a *App) newSession(cfg *domain.Config, mode detector.OutputMode) (*session, error) {
	if err := os.MkdirAll(cfg.ScratchDir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrScratchCreateFailed.Error()), "path", cfg.ScratchDir)
	}

	cache, err := a.cacheFactory(cfg)
	if err != nil {
		return nil, err
	}

	compiler, err := a.compilerFactory(cfg)
	if err != nil {
		return nil, err
	}

	version, err := a.hasher.ComputeTemplateVersion(cfg.Template, cfg.MacroResourceDir, cfg.TemplateLabel)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("template version " + version)

	renderer := a.newRenderer(mode)
	tracer, provider := a.newTracer(renderer)

	sched := scheduler.NewScheduler(
		extractor.New(cfg),
		rewriter.New(),
		a.hasher,
		cache,
		compiler,
		tracer,
		a.recorder,
		a.logger,
		scheduler.Options{
			TemplateVersion: version,
			Concurrency:     cfg.ConcurrencyLimit,
			TaskTimeout:     cfg.TaskTimeout,
		},
	)

	return &session{
		cfg:       cfg,
		logger:    a.logger,
		markdown:  NewMarkdown(),
		scheduler: sched,
		tracer:    tracer,
		provider:  provider,
		renderer:  renderer,
	}, nil
}

// newRenderer returns nil in quiet mode.
func (a *App) newRenderer(mode detector.OutputMode) ports.Renderer {
	switch mode {
	case detector.ModeQuiet:
		return nil
	case detector.ModeLinear:
		return linear.NewRenderer(a.stdout, a.stderr, linear.WithStreamedLogs())
	default:
		return linear.NewRenderer(a.stdout, a.stderr)
	}
}

// newTracer returns a no-op tracer when neither a renderer nor a span
// processor would see the spans.
func (a *App) newTracer(renderer ports.Renderer) (ports.Tracer, *sdktrace.TracerProvider) {
	if renderer == nil && len(a.spanProcessors) == 0 {
		return telemetry.NewNoOpTracer(), nil
	}

	provider := telemetry.NewProvider(renderer, a.spanProcessors...)
	tracer := telemetry.NewOTelTracer(provider, TracerName)
	if renderer != nil {
		tracer = tracer.WithRenderer(renderer)
	}
	return tracer, provider
}

func (s *session) close(ctx context.Context) {
	if s.provider != nil {
		_ = s.provider.Shutdown(ctx)
	}
}

// run builds docs in order under one root span.
func (s *session) run(ctx context.Context, buildID string, docs []document) (scheduler.Report, error) {
	if s.renderer != nil {
		if err := s.renderer.Start(ctx); err != nil {
			return scheduler.Report{}, err
		}
		defer func() { _ = s.renderer.Stop() }()
	}

	ctx, span := s.tracer.Start(ctx, "build", ports.WithRoot())
	defer span.End()
	span.SetAttribute(AttrBuildID, buildID)
	span.SetAttribute(AttrDocuments, len(docs))

	var total scheduler.Report
	for _, doc := range docs {
		report, err := s.buildDocument(ctx, doc)
		if err != nil {
			span.RecordError(err)
			return total, err
		}
		total.Add(report)
	}

	span.SetAttribute(AttrDiagrams, total.Fragments)
	span.SetAttribute(AttrFailed, total.Failed)
	return total, nil
}

func (s *session) buildDocument(ctx context.Context, doc document) (scheduler.Report, error) {
	source, err := os.ReadFile(doc.source)
	if err != nil {
		return scheduler.Report{}, zerr.With(zerr.Wrap(err, domain.ErrDocumentReadFailed.Error()), "path", doc.source)
	}

	root := s.markdown.Parser().Parse(text.NewReader(source))

	report, err := s.scheduler.Process(ctx, root, source)
	if err != nil {
		return report, zerr.With(err, "document", doc.source)
	}

	var buf bytes.Buffer
	if err := s.markdown.Renderer().Render(&buf, source, root); err != nil {
		return report, zerr.With(zerr.Wrap(err, domain.ErrRenderFailed.Error()), "document", doc.source)
	}

	if err := os.MkdirAll(filepath.Dir(doc.output), domain.DirPerm); err != nil {
		return report, zerr.With(zerr.Wrap(err, domain.ErrDocumentWriteFailed.Error()), "path", doc.output)
	}
	if err := os.WriteFile(doc.output, buf.Bytes(), domain.FilePerm); err != nil {
		return report, zerr.With(zerr.Wrap(err, domain.ErrDocumentWriteFailed.Error()), "path", doc.output)
	}

	s.logger.Debug("wrote " + doc.output)
	return report, nil
}

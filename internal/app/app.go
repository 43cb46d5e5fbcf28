// Package app implements the application layer for qworld.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/qworld/internal/adapters/detector"
	"go.trai.ch/qworld/internal/adapters/metrics"
	"go.trai.ch/qworld/internal/core/domain"
	"go.trai.ch/qworld/internal/core/ports"
	"go.trai.ch/qworld/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader    ports.ConfigLoader
	logger          ports.Logger
	hasher          ports.Hasher
	walker          ports.DocumentWalker
	cacheFactory    ports.ArtifactCacheFactory
	compilerFactory ports.CompilerFactory
	recorder        ports.Recorder
	exporter        ports.MetricsExporter
	watcher         ports.Watcher

	stdout         io.Writer
	stderr         io.Writer
	env            detector.Environment
	newBuildID     func() string
	spanProcessors []sdktrace.SpanProcessor
	debounce       time.Duration
}

// New creates a new App instance. A nil recorder or exporter disables metrics.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	hasher ports.Hasher,
	walker ports.DocumentWalker,
	cacheFactory ports.ArtifactCacheFactory,
	compilerFactory ports.CompilerFactory,
	recorder ports.Recorder,
	exporter ports.MetricsExporter,
	watcher ports.Watcher,
) *App {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	if exporter == nil {
		exporter = metrics.NoopRecorder{}
	}
	return &App{
		configLoader:    loader,
		logger:          log,
		hasher:          hasher,
		walker:          walker,
		cacheFactory:    cacheFactory,
		compilerFactory: compilerFactory,
		recorder:        recorder,
		exporter:        exporter,
		watcher:         watcher,
		stdout:          os.Stdout,
		stderr:          os.Stderr,
		env:             detector.ProcessEnvironment(),
		newBuildID:      uuid.NewString,
		debounce:        DefaultDebounceWindow,
	}
}

// WithOutput redirects progress output.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithEnvironment replaces the detected terminal environment.
// This is primarily used for testing to pin the output mode.
func (a *App) WithEnvironment(env detector.Environment) *App {
	a.env = env
	return a
}

// WithBuildID replaces the build id generator.
func (a *App) WithBuildID(newID func() string) *App {
	a.newBuildID = newID
	return a
}

// WithSpanProcessors adds span processors next to the progress bridge.
// This is primarily used for testing to record spans.
func (a *App) WithSpanProcessors(processors ...sdktrace.SpanProcessor) *App {
	a.spanProcessors = append(a.spanProcessors, processors...)
	return a
}

// WithDebounce sets the quiet period of watch mode.
func (a *App) WithDebounce(d time.Duration) *App {
	a.debounce = d
	return a
}

// ConfigureLogging applies the --json and --verbose flags.
func (a *App) ConfigureLogging(jsonOutput, verbose bool) {
	settings, ok := a.logger.(ports.LogSettings)
	if !ok {
		return
	}
	settings.SetJSON(jsonOutput)
	settings.SetVerbose(verbose)
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	// ConfigPath overrides qworld.yaml discovery.
	ConfigPath string
	// OutDir overrides docs.output.
	OutDir string
	// Concurrency overrides concurrencyLimit when positive.
	Concurrency int
	// OutputMode is the raw --output-mode value.
	OutputMode string
	// MetricsTextfile, when set, receives the metrics after every pass.
	MetricsTextfile string
	// Strict fails the build when any diagram failed.
	Strict bool
	// Watch rebuilds changed documents until ctx is done.
	Watch bool
}

// Build renders the Markdown documents below paths to HTML, compiling every
// diagram they contain. Without paths the configured docs.source is used.
func (a *App) Build(ctx context.Context, paths []string, opts BuildOptions) error {
	mode, err := detector.ParseMode(opts.OutputMode)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to get working directory")
	}

	cfg, err := a.configLoader.Load(cwd, opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if opts.Concurrency > 0 {
		cfg.ConcurrencyLimit = opts.Concurrency
	}
	if opts.OutDir != "" {
		cfg.SiteDir = absPath(cwd, opts.OutDir)
	}

	roots := resolveRoots(cwd, cfg, paths)

	sess, err := a.newSession(cfg, detector.ResolveMode(detector.DetectEnvironment(a.env), mode))
	if err != nil {
		return err
	}
	defer sess.close(context.WithoutCancel(ctx))

	docs := a.discover(cfg.SiteDir, roots)
	if len(docs) == 0 {
		return zerr.With(domain.ErrNoDocuments, "paths", fmt.Sprint(roots))
	}

	report, err := a.pass(ctx, sess, docs, opts)
	if err != nil {
		return err
	}

	if opts.Watch {
		return a.watch(ctx, sess, roots, opts)
	}

	if opts.Strict && report.Failed > 0 {
		return zerr.With(domain.ErrBuildFailed, "failed", report.Failed)
	}
	return nil
}

// pass builds docs once, logs the summary and exports metrics.
func (a *App) pass(ctx context.Context, sess *session, docs []document, opts BuildOptions) (scheduler.Report, error) {
	buildID := a.newBuildID()
	started := time.Now()

	report, err := sess.run(ctx, buildID, docs)
	if err != nil {
		return report, err
	}

	a.logger.Info(fmt.Sprintf(
		"build %s: %d document(s), %d diagram(s): %d cached, %d compiled, %d deduplicated, %d failed in %v",
		buildID, len(docs), report.Fragments,
		report.Hits, report.Compiled, report.Deduplicated, report.Failed,
		time.Since(started).Round(time.Millisecond),
	))

	if opts.MetricsTextfile != "" {
		if err := a.exporter.WriteTextfile(opts.MetricsTextfile); err != nil {
			return report, err
		}
	}
	return report, nil
}

func absPath(cwd, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(cwd, p)
}

package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yuin/goldmark/text"
	"go.trai.ch/qworld/internal/core/domain"
	"go.trai.ch/qworld/internal/engine/extractor"
	"go.trai.ch/zerr"
)

// CleanOptions configuration for the Clean method.
// With no option set, both the scratch directory and the artifacts are removed.
type CleanOptions struct {
	ConfigPath string
	Scratch    bool
	Artifacts  bool
	// Unused removes only the artifacts no document below the paths references.
	Unused bool
}

// Clean removes scratch files and artifacts based on the provided options.
func (a *App) Clean(_ context.Context, paths []string, opts CleanOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to get working directory")
	}

	cfg, err := a.configLoader.Load(cwd, opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if !opts.Scratch && !opts.Artifacts && !opts.Unused {
		opts.Scratch = true
		opts.Artifacts = true
	}

	var errs error

	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", path))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if opts.Scratch {
		remove(cfg.ScratchDir, "scratch directory")
	}

	switch {
	case opts.Artifacts:
		remove(cfg.OutputDir, "artifacts")
	case opts.Unused:
		errs = errors.Join(errs, a.pruneUnused(cfg, resolveRoots(cwd, cfg, paths)))
	}

	return errs
}

// pruneUnused keeps exactly the artifacts referenced by the documents below roots.
func (a *App) pruneUnused(cfg *domain.Config, roots []string) error {
	version, err := a.hasher.ComputeTemplateVersion(cfg.Template, cfg.MacroResourceDir, cfg.TemplateLabel)
	if err != nil {
		return err
	}

	ext := extractor.New(cfg)
	md := NewMarkdown()
	keep := make(map[domain.Fingerprint]struct{})

	docs := 0
	for _, root := range roots {
		for src := range a.walker.WalkMarkdown(root) {
			source, err := os.ReadFile(src)
			if err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrDocumentReadFailed.Error()), "path", src)
			}
			doc := md.Parser().Parse(text.NewReader(source))
			for f := range ext.Extract(doc, source) {
				keep[a.hasher.Fingerprint(version, f.Kind, f.Source)] = struct{}{}
			}
			docs++
		}
	}

	// Without documents every artifact would look unused.
	if docs == 0 {
		return zerr.With(domain.ErrNoDocuments, "paths", fmt.Sprint(roots))
	}

	cache, err := a.cacheFactory(cfg)
	if err != nil {
		return err
	}

	removed, err := cache.Prune(keep)
	if err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("removed %d unused artifact(s), %d referenced by %d document(s)", removed, len(keep), docs))
	return nil
}

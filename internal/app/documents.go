package app

import (
	"path/filepath"
	"strings"

	"go.trai.ch/qworld/internal/core/domain"
)

// HTMLExt is the extension of rendered documents.
const HTMLExt = ".html"

// document pairs a Markdown source with its rendered HTML destination.
type document struct {
	source string
	output string
}

// resolveRoots makes the build paths absolute, falling back to docs.source.
func resolveRoots(cwd string, cfg *domain.Config, paths []string) []string {
	if len(paths) == 0 {
		return []string{cfg.SourceDir}
	}
	roots := make([]string, len(paths))
	for i, p := range paths {
		roots[i] = absPath(cwd, p)
	}
	return roots
}

// discover lists the documents below roots. A document reachable from two
// roots is built once, for the first.
func (a *App) discover(siteDir string, roots []string) []document {
	seen := make(map[string]struct{})
	var docs []document
	for _, root := range roots {
		for src := range a.walker.WalkMarkdown(root) {
			if _, ok := seen[src]; ok {
				continue
			}
			seen[src] = struct{}{}
			docs = append(docs, document{source: src, output: outputPath(siteDir, root, src)})
		}
	}
	return docs
}

// outputPath mirrors src's position below root into siteDir.
func outputPath(siteDir, root, src string) string {
	rel, err := filepath.Rel(root, src)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(src)
	}
	return filepath.Join(siteDir, strings.TrimSuffix(rel, filepath.Ext(rel))+HTMLExt)
}

func isMarkdown(path string) bool {
	return strings.EqualFold(filepath.Ext(path), domain.MarkdownExt)
}

// Package fs provides file system adapters for walking and hashing files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"

	"go.trai.ch/qworld/internal/core/domain"
)

// skippedDirs are never descended into.
var skippedDirs = map[string]struct{}{
	".git":              {},
	".jj":               {},
	"node_modules":      {},
	domain.QworldDirName: {},
}

// IsSkippedDir reports whether a directory with the given base name is never
// descended into.
func IsSkippedDir(name string) bool {
	_, ok := skippedDirs[name]
	return ok
}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every regular file below root, in lexical order.
// Entries whose base name matches one of the ignore patterns are skipped.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if skip, action := w.shouldSkip(d, ignores); skip {
				return action
			}

			if !d.Type().IsRegular() {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

// WalkMarkdown yields the Markdown documents below root. A root that names a
// single file is yielded as is.
func (w *Walker) WalkMarkdown(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for path := range w.WalkFiles(root, nil) {
			if !strings.EqualFold(filepath.Ext(path), domain.MarkdownExt) {
				continue
			}
			if !yield(path) {
				return
			}
		}
	}
}

// shouldSkip reports whether the entry is excluded and the WalkDir action for it.
func (w *Walker) shouldSkip(d fs.DirEntry, ignores []string) (bool, error) {
	name := d.Name()

	if d.IsDir() && IsSkippedDir(name) {
		return true, filepath.SkipDir
	}

	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			if d.IsDir() {
				return true, filepath.SkipDir
			}
			return true, nil
		}
	}

	return false, nil
}

// Package cas implements the content-addressed artifact store.
package cas

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/qworld/internal/core/domain"
	"go.trai.ch/qworld/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactCache = (*Store)(nil)

// Store keeps one file per fingerprint in a flat directory.
type Store struct {
	dir      string
	baseURL  string
	assetDir string
}

// NewStore creates a Store rooted at dir. The directory is created on demand.
func NewStore(dir, baseURL, assetDir string) *Store {
	return &Store{
		dir:      dir,
		baseURL:  baseURL,
		assetDir: assetDir,
	}
}

// Open creates a Store for the configured output directory and ensures the
// directory exists.
func Open(cfg *domain.Config) (*Store, error) {
	if err := os.MkdirAll(cfg.OutputDir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheDirCreateFailed.Error()), "path", cfg.OutputDir)
	}
	return NewStore(cfg.OutputDir, cfg.BaseURL, cfg.AssetDir), nil
}

// Dir returns the directory holding the artifacts.
func (s *Store) Dir() string {
	return s.dir
}

// Lookup reports whether an artifact exists for the fingerprint.
func (s *Store) Lookup(fp domain.Fingerprint) (domain.CacheEntry, bool) {
	p := s.path(fp)
	info, err := os.Stat(p)
	if err != nil || !info.Mode().IsRegular() {
		return domain.CacheEntry{}, false
	}
	return s.entry(fp), true
}

// Store writes data as the artifact for fp. The file appears under its final
// name only once fully written.
func (s *Store) Store(fp domain.Fingerprint, data []byte) (domain.CacheEntry, error) {
	if entry, ok := s.Lookup(fp); ok {
		return entry, nil
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return domain.CacheEntry{}, zerr.With(zerr.Wrap(err, domain.ErrCacheDirCreateFailed.Error()), "path", s.dir)
	}

	tmp, err := os.CreateTemp(s.dir, "."+fp.String()+"-*.tmp")
	if err != nil {
		return domain.CacheEntry{}, zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "fingerprint", fp.String())
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if err := writeAndSync(tmp, data); err != nil {
		return domain.CacheEntry{}, zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "fingerprint", fp.String())
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return domain.CacheEntry{}, zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "fingerprint", fp.String())
	}

	if err := os.Rename(tmpName, s.path(fp)); err != nil {
		return domain.CacheEntry{}, zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "fingerprint", fp.String())
	}

	return s.entry(fp), nil
}

// PublicPath returns the URL path of the artifact.
func (s *Store) PublicPath(fp domain.Fingerprint) string {
	base := s.baseURL
	if base == "" {
		base = "/"
	}
	return path.Join(base, s.assetDir, fp.FileName())
}

// Entries yields the stored artifacts in fingerprint order.
func (s *Store) Entries() iter.Seq[domain.CacheEntry] {
	return func(yield func(domain.CacheEntry) bool) {
		entries, err := os.ReadDir(s.dir)
		if err != nil {
			return
		}
		for _, e := range entries {
			fp, ok := fingerprintOf(e)
			if !ok {
				continue
			}
			if !yield(s.entry(fp)) {
				return
			}
		}
	}
}

// Prune removes the artifacts whose fingerprint is not in keep.
func (s *Store) Prune(keep map[domain.Fingerprint]struct{}) (int, error) {
	stale := slices.Collect(func(yield func(domain.CacheEntry) bool) {
		for e := range s.Entries() {
			if _, ok := keep[e.Fingerprint]; ok {
				continue
			}
			if !yield(e) {
				return
			}
		}
	})

	var errs error
	removed := 0
	for _, e := range stale {
		if err := os.Remove(e.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", e.Path))
			continue
		}
		removed++
	}
	return removed, errs
}

func (s *Store) path(fp domain.Fingerprint) string {
	return filepath.Join(s.dir, fp.FileName())
}

func (s *Store) entry(fp domain.Fingerprint) domain.CacheEntry {
	return domain.CacheEntry{
		Fingerprint: fp,
		Path:        s.path(fp),
		PublicPath:  s.PublicPath(fp),
	}
}

func fingerprintOf(e fs.DirEntry) (domain.Fingerprint, bool) {
	name := e.Name()
	if !e.Type().IsRegular() || strings.HasPrefix(name, ".") {
		return "", false
	}
	stem, ok := strings.CutSuffix(name, domain.ArtifactExt)
	if !ok || stem == "" {
		return "", false
	}
	return domain.Fingerprint(stem), true
}

func writeAndSync(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

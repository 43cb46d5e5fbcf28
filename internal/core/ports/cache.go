package ports

import (
	"iter"

	"go.trai.ch/qworld/internal/core/domain"
)

// ArtifactCache is the persistent, content-addressed store of generated artifacts.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type ArtifactCache interface {
	// Lookup reports whether an artifact exists for the fingerprint.
	// It has no side effects.
	Lookup(fp domain.Fingerprint) (domain.CacheEntry, bool)

	// Store writes the artifact atomically. Storing a fingerprint that is
	// already present is a no-op.
	Store(fp domain.Fingerprint, data []byte) (domain.CacheEntry, error)

	// PublicPath returns the URL path documents use to reference the artifact.
	PublicPath(fp domain.Fingerprint) string

	// Entries yields every stored artifact.
	Entries() iter.Seq[domain.CacheEntry]

	// Prune removes every artifact whose fingerprint is not in keep.
	// It returns the number of removed artifacts.
	Prune(keep map[domain.Fingerprint]struct{}) (int, error)
}

// ArtifactCacheFactory opens the artifact cache described by a configuration.
type ArtifactCacheFactory func(cfg *domain.Config) (ArtifactCache, error)

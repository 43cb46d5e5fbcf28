package ports

import "go.trai.ch/qworld/internal/core/domain"

// Hasher computes fingerprints and content digests.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Fingerprint returns the digest of a fragment under the given template version.
	// It must be pure: identical input always yields the identical fingerprint.
	Fingerprint(templateVersion string, kind domain.Kind, source string) domain.Fingerprint

	// ComputeTemplateVersion digests the document template, the optional label and
	// every file of the macro resource directory.
	ComputeTemplateVersion(template, resourceDir, label string) (string, error)

	// ComputeFileHash computes the digest of a file's content.
	ComputeFileHash(path string) (uint64, error)
}

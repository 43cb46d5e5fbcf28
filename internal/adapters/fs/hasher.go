package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/qworld/internal/core/domain"
	"go.trai.ch/qworld/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes fragment fingerprints and file digests.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// Fingerprint digests the template version, the fragment kind and the source.
func (h *Hasher) Fingerprint(templateVersion string, kind domain.Kind, source string) domain.Fingerprint {
	hasher := xxhash.New()
	_, _ = hasher.WriteString(templateVersion)
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(kind.String())
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(source)

	return domain.Fingerprint(fmt.Sprintf("%016x", hasher.Sum64()))
}

// ComputeTemplateVersion digests everything that changes the compiled output
// without appearing in the fragment source.
func (h *Hasher) ComputeTemplateVersion(template, resourceDir, label string) (string, error) {
	hasher := xxhash.New()
	_, _ = hasher.WriteString(template)
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(label)
	_, _ = hasher.Write([]byte{0})

	if resourceDir != "" {
		if err := h.hashResources(resourceDir, hasher); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// hashResources hashes every file below dir in lexical order of its relative path.
func (h *Hasher) hashResources(dir string, hasher io.Writer) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return zerr.With(domain.ErrMacroResourceMissing, "path", dir)
	}

	files := slices.Sorted(h.walker.WalkFiles(dir, nil))
	for _, path := range files {
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to relativize resource path"), "path", path)
		}
		_, _ = hasher.Write([]byte(filepath.ToSlash(rel)))
		_, _ = hasher.Write([]byte{0})

		sum, err := h.ComputeFileHash(path)
		if err != nil {
			return err
		}
		if err := binary.Write(hasher, binary.LittleEndian, sum); err != nil {
			return zerr.Wrap(err, "failed to write hash to digest")
		}
	}
	return nil
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrFileHashFailed.Error()), "path", path)
	}

	return hasher.Sum64(), nil
}

package domain

// ArtifactExt is the file extension of generated artifacts.
const ArtifactExt = ".svg"

// Fingerprint is the content digest of a fragment.
// It is used both as the cache key and as the artifact file name stem.
type Fingerprint string

// String returns the hex digest.
func (f Fingerprint) String() string {
	return string(f)
}

// FileName returns the artifact file name for the fingerprint.
func (f Fingerprint) FileName() string {
	return string(f) + ArtifactExt
}

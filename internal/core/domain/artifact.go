package domain

import (
	"fmt"
	"strings"
)

// CacheEntry describes a stored artifact.
type CacheEntry struct {
	Fingerprint Fingerprint
	// Path is the artifact location on disk.
	Path string
	// PublicPath is the URL path documents use to reference the artifact.
	PublicPath string
}

// FailureKind classifies fragment-level compilation failures.
type FailureKind string

const (
	// FailureCompile means the typesetting engine exited with an error.
	FailureCompile FailureKind = "CompileError"
	// FailureMissingArtifact means the engine reported success but wrote no document.
	FailureMissingArtifact FailureKind = "MissingArtifact"
	// FailureConversion means the vector converter failed or wrote nothing.
	FailureConversion FailureKind = "ConversionError"
)

// Failure is a recoverable, fragment-level compilation failure.
type Failure struct {
	Kind FailureKind
	// Log holds the toolchain diagnostics, typically the engine log file.
	Log   string
	Cause error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Cause == nil {
		return string(f.Kind)
	}
	return fmt.Sprintf("%s: %v", f.Kind, f.Cause)
}

// Unwrap returns the underlying cause.
func (f *Failure) Unwrap() error {
	return f.Cause
}

// LogTail returns at most the last n lines of the failure log.
func (f *Failure) LogTail(n int) string {
	text := strings.TrimRight(f.Log, "\n")
	if n <= 0 || text == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) <= n {
		return text
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}

// CompileOutcome is the transient result of one compiler invocation.
type CompileOutcome struct {
	Artifact []byte
	Failure  *Failure
}

// OK reports whether the compilation produced an artifact.
func (o CompileOutcome) OK() bool {
	return o.Failure == nil
}

// Resolution is the settled state of a fingerprint within a build pass.
// Exactly one of Entry (when Failure is nil) or Failure is meaningful.
type Resolution struct {
	Entry   CacheEntry
	Failure *Failure
	// Cached is set when the artifact was already present before the pass.
	Cached bool
}

// OK reports whether the fingerprint resolved to an artifact.
func (r Resolution) OK() bool {
	return r.Failure == nil
}

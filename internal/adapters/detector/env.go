// Package detector provides environment detection for output mode selection.
package detector

import (
	"os"
	"strings"

	"go.trai.ch/qworld/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode represents how build progress is reported.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeCompact prints one line per finished diagram. Used on terminals.
	ModeCompact
	// ModeLinear also streams toolchain output with diagram prefixes. Used in CI.
	ModeLinear
	// ModeQuiet reports nothing but the final summary.
	ModeQuiet
)

// String returns the flag spelling of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeCompact:
		return "compact"
	case ModeLinear:
		return "linear"
	case ModeQuiet:
		return "quiet"
	default:
		return "auto"
	}
}

// Environment is the part of the process environment mode detection reads.
type Environment struct {
	IsTerminal bool
	Getenv     func(string) string
}

// ProcessEnvironment inspects stdout and the real environment.
func ProcessEnvironment() Environment {
	return Environment{
		IsTerminal: term.IsTerminal(int(os.Stdout.Fd())), //nolint:gosec // fd fits in int
		Getenv:     os.Getenv,
	}
}

// DetectEnvironment returns the recommended output mode for env.
// Non-terminals and CI runners get the linear mode.
func DetectEnvironment(env Environment) OutputMode {
	isCI := false
	if env.Getenv != nil {
		ci := strings.ToLower(env.Getenv("CI"))
		isCI = ci == "true" || ci == "1"
	}

	if !env.IsTerminal || isCI {
		return ModeLinear
	}
	return ModeCompact
}

// ParseMode parses a --output-mode value.
// Accepted: auto, compact, tty, linear, ci, quiet, none, and empty.
func ParseMode(flag string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "auto", "":
		return ModeAuto, nil
	case "compact", "tty":
		return ModeCompact, nil
	case "linear", "ci":
		return ModeLinear, nil
	case "quiet", "none":
		return ModeQuiet, nil
	default:
		return ModeAuto, zerr.With(domain.ErrInvalidOutputMode, "output_mode", flag)
	}
}

// ResolveMode applies a user override to auto-detection.
func ResolveMode(autoDetected, requested OutputMode) OutputMode {
	if requested == ModeAuto {
		return autoDetected
	}
	return requested
}

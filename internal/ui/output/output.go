// Package output builds the termenv outputs progress and log lines are written to.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"go.trai.ch/qworld/internal/ui/style"
)

// Profile selects the color profile of an output.
type Profile func() termenv.Profile

// Detected uses the capabilities of the terminal. NO_COLOR disables color.
func Detected() termenv.Profile {
	if noColor() {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// Basic restricts color to the 16 ANSI colors, which every CI log viewer
// renders. NO_COLOR disables color.
func Basic() termenv.Profile {
	if noColor() {
		return termenv.Ascii
	}
	return termenv.ANSI
}

func noColor() bool {
	return os.Getenv("NO_COLOR") != ""
}

// New returns an output writing to w with the given profile.
// A nil w writes to stderr.
func New(w io.Writer, profile Profile) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, termenv.WithProfile(profile()), termenv.WithTTY(true))
}

// Outcome renders the diagram outcome symbol: a green check or a red cross.
func Outcome(out *termenv.Output, ok bool) string {
	if ok {
		return out.String(style.Check).Foreground(termenv.ANSIGreen).String()
	}
	return out.String(style.Cross).Foreground(termenv.ANSIRed).String()
}

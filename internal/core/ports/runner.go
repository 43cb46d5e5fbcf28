package ports

import (
	"context"
	"io"
)

// Command describes one external program invocation.
type Command struct {
	// Path is the resolved executable.
	Path string
	Args []string
	// Dir is the working directory.
	Dir string
	// Env holds additional "KEY=VALUE" entries.
	Env []string
}

// CommandRunner runs external programs.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run executes the command and waits for it to finish.
	// A nonzero exit is reported as an error carrying the exit code.
	Run(ctx context.Context, cmd Command, stdout, stderr io.Writer) error
}

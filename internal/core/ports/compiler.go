package ports

import (
	"context"
	"io"

	"go.trai.ch/qworld/internal/core/domain"
)

// Compiler turns diagram source into an artifact.
//
//go:generate mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type Compiler interface {
	// Compile wraps and compiles a fragment. Toolchain failures are reported in
	// the outcome. The error is non-nil only when the scratch workspace itself
	// is unusable.
	Compile(
		ctx context.Context,
		kind domain.Kind,
		source string,
		fp domain.Fingerprint,
		output io.Writer,
	) (domain.CompileOutcome, error)
}

// CompilerFactory builds the compiler described by a configuration.
// It fails when the toolchain cannot be resolved.
type CompilerFactory func(cfg *domain.Config) (Compiler, error)

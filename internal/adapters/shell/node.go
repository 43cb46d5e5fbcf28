package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/qworld/internal/adapters/logger" //nolint:depguard // Logger feeds subprocess output
	"go.trai.ch/qworld/internal/core/domain"
	"go.trai.ch/qworld/internal/core/ports"
)

const (
	// RunnerNodeID is the unique identifier for the command runner Graft node.
	RunnerNodeID graft.ID = "adapter.runner"
	// CompilerNodeID is the unique identifier for the compiler factory Graft node.
	CompilerNodeID graft.ID = "adapter.compiler"
)

func init() {
	graft.Register(graft.Node[ports.CommandRunner]{
		ID:        RunnerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.CommandRunner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(log), nil
		},
	})

	graft.Register(graft.Node[ports.CompilerFactory]{
		ID:        CompilerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{RunnerNodeID},
		Run: func(ctx context.Context) (ports.CompilerFactory, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return func(cfg *domain.Config) (ports.Compiler, error) {
				compiler, err := NewCompiler(runner, cfg)
				if err != nil {
					return nil, err
				}
				return compiler, nil
			}, nil
		},
	})
}

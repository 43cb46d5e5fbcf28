package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/qworld/internal/adapters/cas"     //nolint:depguard // Wired in app layer
	"go.trai.ch/qworld/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/qworld/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/qworld/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/qworld/internal/adapters/metrics" //nolint:depguard // Wired in app layer
	"go.trai.ch/qworld/internal/adapters/shell"   //nolint:depguard // Wired in app layer
	"go.trai.ch/qworld/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/qworld/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			fs.HasherNodeID,
			fs.WalkerNodeID,
			cas.NodeID,
			shell.CompilerNodeID,
			metrics.RecorderNodeID,
			metrics.ExporterNodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	walker, err := graft.Dep[*fs.Walker](ctx)
	if err != nil {
		return nil, err
	}

	cacheFactory, err := graft.Dep[ports.ArtifactCacheFactory](ctx)
	if err != nil {
		return nil, err
	}

	compilerFactory, err := graft.Dep[ports.CompilerFactory](ctx)
	if err != nil {
		return nil, err
	}

	recorder, err := graft.Dep[ports.Recorder](ctx)
	if err != nil {
		return nil, err
	}

	exporter, err := graft.Dep[ports.MetricsExporter](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, hasher, walker, cacheFactory, compilerFactory, recorder, exporter, w), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}

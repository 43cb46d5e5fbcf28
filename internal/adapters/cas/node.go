package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/qworld/internal/core/domain"
	"go.trai.ch/qworld/internal/core/ports"
)

// NodeID is the unique identifier for the artifact cache factory Graft node.
const NodeID graft.ID = "adapter.artifact_cache"

func init() {
	graft.Register(graft.Node[ports.ArtifactCacheFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArtifactCacheFactory, error) {
			return func(cfg *domain.Config) (ports.ArtifactCache, error) {
				store, err := Open(cfg)
				if err != nil {
					return nil, err
				}
				return store, nil
			}, nil
		},
	})
}

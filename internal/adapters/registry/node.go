package registry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/config"
	"go.trai.ch/strata/internal/adapters/fs"
	"go.trai.ch/strata/internal/core/ports"
)

// NodeID is the unique identifier for the layer registry Graft node.
const NodeID graft.ID = "adapter.registry"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, fs.ResolverNodeID},
		Run: func(ctx context.Context) (*Registry, error) {
			loader, err := graft.Dep[*config.Loader](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[ports.AssetResolver](ctx)
			if err != nil {
				return nil, err
			}
			return New(loader.ReadLayer, resolver), nil
		},
	})
}

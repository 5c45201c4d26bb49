package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/strata/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/registry"  //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/strata/internal/core/ports"
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
			config.SettingsNodeID,
			registry.NodeID,
			fs.ResolverNodeID,
			fs.HasherNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			watcher.NodeID,
			config.SettingsNodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[*config.Loader](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[config.Settings](ctx)
	if err != nil {
		return nil, err
	}

	reg, err := graft.Dep[*registry.Registry](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[ports.AssetResolver](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[*fs.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, reg, resolver, hasher, log, tracer, Options{
		Workers:       settings.Workers,
		Interpolation: settings.Interpolation,
		Debounce:      settings.Debounce,
	}), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[config.Settings](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:      a,
		Logger:   log,
		Watcher:  w,
		Settings: settings,
	}, nil
}

// Package app assembles stages from stage files and answers value queries
// against them.
package app

import (
	"context"
	"strings"
	"time"

	"go.trai.ch/strata/internal/adapters/scene"
	"go.trai.ch/strata/internal/adapters/schema"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/clips"
	"go.trai.ch/strata/internal/engine/resolve"
	"go.trai.ch/strata/internal/engine/stagecache"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// LayerStore is the layer registry the app opens and reloads layers with.
type LayerStore interface {
	ports.LayerRegistry
	// Reload re-reads an open layer in place. It reports false for layers
	// that are not open.
	Reload(identifier string) (bool, error)
}

// ChangeDetector filters file events whose content did not change.
type ChangeDetector interface {
	Changed(path string) bool
}

// Options tune stage assembly.
type Options struct {
	// Workers bounds the clip population fan-out.
	Workers int
	// Interpolation overrides the stage file's interpolation type when set.
	Interpolation string
	// Debounce is the quiet period before changed files are reloaded.
	Debounce time.Duration
}

// App builds stages once per stage key and serves queries on them.
type App struct {
	loader   ports.StageLoader
	layers   LayerStore
	resolver ports.AssetResolver
	changes  ChangeDetector
	logger   ports.Logger
	tracer   ports.Tracer
	opts     Options
	stages   *stagecache.Cache[*Stage]
}

// New creates a new App instance.
func New(
	loader ports.StageLoader,
	layers LayerStore,
	resolver ports.AssetResolver,
	changes ChangeDetector,
	logger ports.Logger,
	tracer ports.Tracer,
	opts Options,
) *App {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &App{
		loader:   loader,
		layers:   layers,
		resolver: resolver,
		changes:  changes,
		logger:   logger,
		tracer:   tracer,
		opts:     opts,
		stages:   stagecache.New[*Stage](),
	}
}

// Open loads the stage file at path and returns its stage, building it on
// first use. Concurrent opens of the same stage share one build.
func (a *App) Open(ctx context.Context, path string) (*Stage, error) {
	desc, err := a.loader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrStageUnavailable.Error())
	}
	if a.opts.Interpolation != "" {
		interp, ok := domain.ParseInterpolationType(a.opts.Interpolation)
		if !ok {
			return nil, zerr.With(domain.ErrSettingsParseFailed, "interpolation", a.opts.Interpolation)
		}
		desc.Interpolation = interp
	}

	return a.stages.FindOrCreate(ctx, desc.Key(), func(ctx context.Context) (*Stage, error) {
		return a.build(ctx, path, desc)
	})
}

// Close drops the cached stage built from desc's key.
func (a *App) Close(st *Stage) {
	a.stages.Erase(st.Key())
}

func (a *App) build(ctx context.Context, path string, desc *domain.StageDescription) (*Stage, error) {
	ctx, span := a.tracer.Start(ctx, "stage.build", ports.WithAttribute("stage", desc.Root))
	defer span.End()

	composer, err := scene.Compose(desc, a.layers)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStageUnavailable.Error()), "stage", path)
	}

	cache := clips.NewCache(a.layers, a.resolver, a.logger)
	if err := a.populate(ctx, composer, cache, composer.Prims()); err != nil {
		span.RecordError(err)
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStageUnavailable.Error()), "stage", path)
	}

	st := &Stage{
		path:     path,
		desc:     desc,
		composer: composer,
		clips:    cache,
		engine: resolve.New(resolve.Config{
			Fallbacks:     schema.New(desc.Fallbacks),
			Resolver:      a.resolver,
			Clips:         cache,
			Logger:        a.logger,
			Interpolation: desc.Interpolation,
		}),
		tracer: a.tracer,
	}
	span.SetAttribute("prims", len(composer.Prims()))
	span.SetAttribute("clip_entries", cache.Len())
	return st, nil
}

// populate fills cache for prims. Prims of one depth are populated
// concurrently; a depth starts once every shallower prim is done so that
// children see their ancestors' clip sets.
func (a *App) populate(ctx context.Context, composer ports.Composer, cache *clips.Cache, prims []domain.Path) error {
	ctx, span := a.tracer.Start(ctx, "clips.populate", ports.WithAttribute("prims", len(prims)))
	defer span.End()

	pc := clips.NewConcurrentPopulationContext(cache)
	defer pc.Close()

	for _, level := range byDepth(prims) {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(a.opts.Workers)
		for _, p := range level {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				idx, ok := composer.PrimIndex(p)
				if !ok {
					return zerr.With(domain.ErrPrimNotFound, "prim", p.String())
				}
				cache.PopulateClipsForPrim(p, idx)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			span.RecordError(err)
			return err
		}
	}
	return nil
}

// byDepth groups paths by the number of path elements, shallowest first.
func byDepth(paths []domain.Path) [][]domain.Path {
	var levels [][]domain.Path
	for _, p := range paths {
		d := strings.Count(p.String(), "/")
		for len(levels) < d {
			levels = append(levels, nil)
		}
		levels[d-1] = append(levels[d-1], p)
	}
	return levels
}

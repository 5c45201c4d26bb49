package resolve_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/fs"
	"go.trai.ch/strata/internal/adapters/memlayer"
	"go.trai.ch/strata/internal/adapters/registry"
	"go.trai.ch/strata/internal/adapters/scene"
	"go.trai.ch/strata/internal/adapters/schema"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/clips"
	"go.trai.ch/strata/internal/engine/resolve"
)

const (
	rootID = "/stage/root.layer.yaml"
	subID  = "/stage/sub.layer.yaml"
)

var (
	worldPath = domain.NewPath("/World")
	attrX     = worldPath.AppendProperty("x")
	clipAttrX = domain.NewPath("/Model").AppendProperty("x")
)

// store keeps layers alive for the registry and counts opens.
type store struct {
	mu     sync.Mutex
	layers map[string]*memlayer.Layer
	opens  map[string]int
	reg    *registry.Registry
}

func newStore() *store {
	s := &store{
		layers: make(map[string]*memlayer.Layer),
		opens:  make(map[string]int),
	}
	s.reg = registry.New(s.open, fs.NewResolver())
	return s
}

func (s *store) open(id string) (*memlayer.Layer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.layers[id]
	if !ok {
		return nil, domain.ErrLayerNotFound
	}
	s.opens[id]++
	return l, nil
}

func (s *store) layer(id string) *memlayer.Layer {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.layers[id]
	if !ok {
		l = memlayer.New(id)
		s.layers[id] = l
	}
	return l
}

func (s *store) opened(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opens[id]
}

// stack opens ids through the registry as one layer stack, strongest first.
func (s *store) stack(t *testing.T, offsets []domain.LayerOffset, ids ...string) *scene.LayerStack {
	t.Helper()
	layers := make([]ports.Layer, 0, len(ids))
	for _, id := range ids {
		s.layer(id)
		l, err := s.reg.FindOrOpen(id)
		require.NoError(t, err)
		layers = append(layers, l)
	}
	return scene.NewLayerStack(ids[0], domain.ResolverContext{}, layers, offsets)
}

func rootNode(stack *scene.LayerStack, path domain.Path) *scene.Node {
	return scene.NewNode(scene.NodeParams{Stack: stack, Path: path, Offset: domain.IdentityOffset()})
}

type fixture struct {
	engine *resolve.Engine
	cache  *clips.Cache
	prim   *scene.PrimIndex
}

type fixtureOpts struct {
	typeName      string
	fallbacks     []domain.FallbackDescription
	interpolation domain.InterpolationType
	logger        ports.Logger
}

// newFixture composes /World from nodes and populates its clips.
func newFixture(s *store, opts fixtureOpts, nodes ...*scene.Node) fixture {
	prim := scene.NewPrimIndex(worldPath, opts.typeName, nodes...)
	cache := clips.NewCache(s.reg, fs.NewResolver(), opts.logger)
	cache.PopulateClipsForPrim(worldPath, prim)

	return fixture{
		engine: resolve.New(resolve.Config{
			Fallbacks:     schema.New(opts.fallbacks),
			Resolver:      fs.NewResolver(),
			Clips:         cache,
			Logger:        opts.logger,
			Interpolation: opts.interpolation,
		}),
		cache: cache,
		prim:  prim,
	}
}

func (f fixture) x() resolve.Object {
	return resolve.Attr(f.prim, "x")
}

func pairs(ps ...[2]float64) domain.Value {
	vs := make([][]float64, len(ps))
	for i, p := range ps {
		vs[i] = []float64{p[0], p[1]}
	}
	return domain.VecArray(vs...)
}

// authorClipSet writes a single clip set named "default" on /World in l.
func authorClipSet(l ports.Layer, assets []string, active [][2]float64, manifest string) {
	info := domain.Dictionary{
		domain.ClipKeyAssetPaths: domain.AssetArray(assets...),
		domain.ClipKeyPrimPath:   domain.String("/Model"),
		domain.ClipKeyActive:     pairs(active...),
	}
	if manifest != "" {
		info[domain.ClipKeyManifestAssetPath] = domain.AssetRef(manifest)
	}
	l.SetField(worldPath, domain.FieldClips, domain.Dict(domain.Dictionary{"default": domain.Dict(info)}))
}

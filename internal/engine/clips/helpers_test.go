package clips_test

import (
	"sync"
	"testing"

	"go.trai.ch/strata/internal/adapters/fs"
	"go.trai.ch/strata/internal/adapters/memlayer"
	"go.trai.ch/strata/internal/adapters/registry"
	"go.trai.ch/strata/internal/adapters/scene"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
)

const rootID = "/stage/root.layer.yaml"

var (
	worldPath = domain.NewPath("/World")
	modelPath = domain.NewPath("/Model")
	attrX     = worldPath.AppendProperty("x")
	clipAttrX = modelPath.AppendProperty("x")
)

// store holds layers strongly so the registry can open them by identifier.
type store struct {
	mu     sync.Mutex
	layers map[string]*memlayer.Layer
	opens  map[string]int
	reg    *registry.Registry
}

func newStore(t *testing.T) *store {
	t.Helper()
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

// clipLayer authors samples t -> value(t) for /Model.x in a new layer.
func (s *store) clipLayer(id string, value func(t float64) domain.Value, times ...float64) *memlayer.Layer {
	l := s.layer(id)
	for _, t := range times {
		l.SetTimeSample(clipAttrX, t, value(t))
	}
	return l
}

func (s *store) stack(t *testing.T, ids ...string) *scene.LayerStack {
	t.Helper()
	layers := make([]ports.Layer, 0, len(ids))
	for _, id := range ids {
		s.layer(id)
		l, err := s.reg.FindOrOpen(id)
		if err != nil {
			t.Fatalf("open %s: %v", id, err)
		}
		layers = append(layers, l)
	}
	return scene.NewLayerStack(ids[0], domain.ResolverContext{}, layers, nil)
}

func rootIndex(stack *scene.LayerStack, path domain.Path) *scene.PrimIndex {
	return scene.NewPrimIndex(path, "", scene.NewNode(scene.NodeParams{
		Stack:  stack,
		Path:   path,
		Offset: domain.IdentityOffset(),
	}))
}

func double(t float64) domain.Value { return domain.Double(t) }

func pairs(ps ...[2]float64) domain.Value {
	vs := make([][]float64, len(ps))
	for i, p := range ps {
		vs[i] = []float64{p[0], p[1]}
	}
	return domain.VecArray(vs...)
}

type setInfo struct {
	assets   []string
	primPath string
	active   [][2]float64
	times    [][2]float64
	manifest string
}

func (i setInfo) dict() domain.Dictionary {
	d := domain.Dictionary{}
	if i.assets != nil {
		d[domain.ClipKeyAssetPaths] = domain.AssetArray(i.assets...)
	}
	if i.primPath != "" {
		d[domain.ClipKeyPrimPath] = domain.String(i.primPath)
	}
	if i.active != nil {
		d[domain.ClipKeyActive] = pairs(i.active...)
	}
	if i.times != nil {
		d[domain.ClipKeyTimes] = pairs(i.times...)
	}
	if i.manifest != "" {
		d[domain.ClipKeyManifestAssetPath] = domain.AssetRef(i.manifest)
	}
	return d
}

// authorClips writes the clips dictionary on path in l.
func authorClips(l ports.Layer, path domain.Path, sets map[string]setInfo) {
	clips := domain.Dictionary{}
	for name, info := range sets {
		clips[name] = domain.Dict(info.dict())
	}
	l.SetField(path, domain.FieldClips, domain.Dict(clips))
}

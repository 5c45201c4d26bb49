package clips_test

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/fs"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports/mocks"
	"go.trai.ch/strata/internal/engine/clips"
	"go.uber.org/mock/gomock"
)

func singleClip(s *store, path domain.Path) {
	authorClips(s.layer(rootID), path, map[string]setInfo{
		"default": {assets: []string{"./a.layer.yaml"}, primPath: "/Model", active: [][2]float64{{0, 0}}},
	})
}

func TestCache_AncestorEntriesAreCopiedDown(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	s.clipLayer("/stage/a.layer.yaml", double, 0)
	singleClip(s, worldPath)
	leaf := domain.NewPath("/World/A/B")
	authorClips(s.layer(rootID), leaf, map[string]setInfo{
		"own": {assets: []string{"./a.layer.yaml"}, primPath: "/Model", active: [][2]float64{{0, 0}}},
	})
	stack := s.stack(t, rootID)

	cache := clips.NewCache(s.reg, nil, nil)
	require.True(t, cache.PopulateClipsForPrim(worldPath, rootIndex(stack, worldPath)))
	require.True(t, cache.PopulateClipsForPrim(leaf, rootIndex(stack, leaf)))
	assert.False(t, cache.PopulateClipsForPrim(domain.NewPath("/Other"), rootIndex(stack, domain.NewPath("/Other"))))

	world := cache.GetClipsForPrim(worldPath)
	require.Len(t, world, 1)

	sets := cache.GetClipsForPrim(leaf)
	require.Len(t, sets, 2)
	assert.Equal(t, "own", sets[0].Name)
	assert.Same(t, world[0], sets[1])

	assert.Equal(t, world, cache.GetClipsForPrim(domain.NewPath("/World/A")))
	assert.Equal(t, sets, cache.GetClipsForPrim(leaf.AppendChild("C")))
	assert.True(t, cache.HasClips(leaf.AppendProperty("x")))
	assert.False(t, cache.HasClips(domain.NewPath("/Other")))
	assert.Equal(t, 3, cache.Len())
}

func TestCache_InvalidateReusesGeneratedManifest(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	s.clipLayer("/stage/a.layer.yaml", double, 0)
	singleClip(s, worldPath)
	child := worldPath.AppendChild("Child")
	idx := rootIndex(s.stack(t, rootID), worldPath)

	cache := clips.NewCache(s.reg, nil, nil)
	require.True(t, cache.PopulateClipsForPrim(worldPath, idx))
	require.True(t, cache.PopulateClipsForPrim(child, rootIndex(s.stack(t, rootID), child)))
	before := cache.GetClipsForPrim(worldPath)[0]
	require.True(t, before.GeneratedManifest)

	lb := cache.NewLifeboat()
	cache.InvalidateClipsForPrim(worldPath, lb)
	assert.Zero(t, cache.Len())
	assert.False(t, cache.HasClips(child))
	assert.Equal(t, 1, lb.Len())

	require.True(t, cache.PopulateClipsForPrim(worldPath, idx))
	after := cache.GetClipsForPrim(worldPath)[0]
	assert.NotSame(t, before, after)
	assert.Equal(t, before.ManifestID, after.ManifestID)
	assert.Same(t, before.Manifest.Layer(), after.Manifest.Layer())

	lb.Release()
	assert.Zero(t, lb.Len())

	fresh := clips.NewCache(s.reg, nil, nil)
	require.True(t, fresh.PopulateClipsForPrim(worldPath, idx))
	assert.NotEqual(t, before.ManifestID, fresh.GetClipsForPrim(worldPath)[0].ManifestID)
}

func TestCache_ClipLayerUsage(t *testing.T) {
	t.Parallel()

	const clipID = "/stage/a.layer.yaml"
	s := newStore(t)
	s.clipLayer(clipID, double, 0)
	singleClip(s, worldPath)
	child := worldPath.AppendChild("Child")
	idx := rootIndex(s.stack(t, rootID), worldPath)

	cache := clips.NewCache(s.reg, fs.NewResolver(), nil)
	require.True(t, cache.PopulateClipsForPrim(worldPath, idx))
	require.True(t, cache.PopulateClipsForPrim(child, rootIndex(s.stack(t, rootID), child)))

	assert.Equal(t, []string{clipID}, cache.LayerIdentifiers())
	assert.Equal(t, []domain.Path{worldPath, child}, cache.PrimsUsingLayer(clipID))
	assert.Empty(t, cache.PrimsUsingLayer(rootID))

	before := cache.GetClipsForPrim(worldPath)[0]

	lb := cache.NewLifeboat()
	cache.InvalidateClipsForPrim(worldPath, lb)
	lb.ForgetManifestsUsing([]string{"/stage/other.layer.yaml"})
	require.True(t, cache.PopulateClipsForPrim(worldPath, idx))
	kept := cache.GetClipsForPrim(worldPath)[0]
	assert.Equal(t, before.ManifestID, kept.ManifestID, "unrelated layers keep the manifest")
	lb.Release()

	lb = cache.NewLifeboat()
	defer lb.Release()
	cache.InvalidateClipsForPrim(worldPath, lb)
	lb.ForgetManifestsUsing([]string{clipID})
	require.True(t, cache.PopulateClipsForPrim(worldPath, idx))
	assert.NotEqual(t, kept.ManifestID, cache.GetClipsForPrim(worldPath)[0].ManifestID)
}

func TestCache_InvalidateWithoutLifeboat(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, domain.ErrLifeboatRequired.Error())
	}).Times(1)

	s := newStore(t)
	s.clipLayer("/stage/a.layer.yaml", double, 0)
	singleClip(s, worldPath)

	cache := clips.NewCache(s.reg, nil, logger)
	require.True(t, cache.PopulateClipsForPrim(worldPath, rootIndex(s.stack(t, rootID), worldPath)))

	cache.InvalidateClipsForPrim(worldPath, nil)
	cache.InvalidateClipsForPrim(worldPath, nil)
	assert.True(t, cache.HasClips(worldPath))
}

func TestCache_ConcurrentPopulation(t *testing.T) {
	t.Parallel()

	const prims = 32

	s := newStore(t)
	s.clipLayer("/stage/a.layer.yaml", double, 0, 10)
	paths := make([]domain.Path, prims)
	for i := range paths {
		paths[i] = worldPath.AppendChild("P" + strconv.Itoa(i))
		singleClip(s, paths[i])
	}
	stack := s.stack(t, rootID)

	cache := clips.NewCache(s.reg, nil, nil)
	pc := clips.NewConcurrentPopulationContext(cache)

	var wg sync.WaitGroup
	for _, p := range paths {
		wg.Go(func() {
			assert.True(t, cache.PopulateClipsForPrim(p, rootIndex(stack, p)))
		})
	}
	wg.Wait()
	pc.Close()

	assert.Equal(t, prims, cache.Len())
	assert.Equal(t, 1, s.opened("/stage/a.layer.yaml"))
	for _, p := range paths {
		sets := cache.GetClipsForPrim(p)
		require.Len(t, sets, 1)
		assert.Equal(t, p, sets[0].PrimPath)
	}
}

package clips_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/engine/clips"
	"go.trai.ch/strata/internal/engine/interp"
)

// adjacentClips authors two clips active from 0 and 10 with a declared
// manifest on /World and returns the populated set.
func adjacentClips(t *testing.T, s *store, variability string) *clips.ClipSet {
	t.Helper()

	s.clipLayer("/stage/a.layer.yaml", func(float64) domain.Value { return domain.Double(1) }, 0)
	s.clipLayer("/stage/b.layer.yaml", func(float64) domain.Value { return domain.Double(2) }, 10)
	s.layer("/stage/manifest.layer.yaml").SetField(clipAttrX, domain.FieldVariability, domain.Token(variability))

	authorClips(s.layer(rootID), worldPath, map[string]setInfo{
		"default": {
			assets:   []string{"./a.layer.yaml", "./b.layer.yaml"},
			primPath: "/Model",
			active:   [][2]float64{{10, 1}, {0, 0}},
			manifest: "./manifest.layer.yaml",
		},
	})

	cache := clips.NewCache(s.reg, nil, nil)
	require.True(t, cache.PopulateClipsForPrim(worldPath, rootIndex(s.stack(t, rootID), worldPath)))

	sets := cache.GetClipsForPrim(worldPath)
	require.Len(t, sets, 1)
	return sets[0]
}

func TestClipSet_AdjacentClipsOpenOnlyTheActiveOne(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	set := adjacentClips(t, s, domain.VariabilityVarying)

	require.Len(t, set.Clips, 2)
	first, second := set.Clips[0], set.Clips[1]
	assert.InDelta(t, domain.ClipTimesEarliest, first.Start, 0)
	assert.InDelta(t, 10.0, first.End, 0)
	assert.InDelta(t, 10.0, second.Start, 0)
	assert.InDelta(t, domain.ClipTimesLatest, second.End, 0)
	assert.False(t, set.GeneratedManifest)

	assert.True(t, set.MayHaveSamples(attrX))

	v, ok := set.QueryTimeSample(attrX, 10, interp.Linear{})
	require.True(t, ok)
	assert.True(t, domain.Double(2).Equal(v), "got %s", v)

	_, open := first.LayerIfOpen()
	assert.False(t, open)
	_, open = second.LayerIfOpen()
	assert.True(t, open)
	assert.Zero(t, s.opened("/stage/a.layer.yaml"))

	assert.Same(t, first, set.ActiveClip(-1e9))
	assert.Same(t, first, set.ActiveClip(9.5))
	assert.Same(t, second, set.ActiveClip(1e9))
}

func TestClipSet_ListTimeSamples(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	set := adjacentClips(t, s, domain.VariabilityVarying)

	assert.Equal(t, []float64{0, 10}, set.ListTimeSamples(attrX, domain.FullInterval()))
	assert.Equal(t, []float64{10}, set.ListTimeSamples(attrX, domain.ClosedInterval(5, 20)))

	lower, upper, ok := set.BracketingTimeSamples(attrX, 3)
	require.True(t, ok)
	assert.InDelta(t, 0.0, lower, 0)
	assert.InDelta(t, 0.0, upper, 0)
}

func TestClipSet_UniformManifestSkipsClipLayers(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	set := adjacentClips(t, s, domain.VariabilityUniform)

	assert.False(t, set.MayHaveSamples(attrX))
	assert.False(t, set.MayHaveSamples(worldPath.AppendProperty("y")))
	for _, c := range set.Clips {
		_, open := c.LayerIfOpen()
		assert.False(t, open, c.AssetPath)
	}
	assert.Zero(t, s.opened("/stage/a.layer.yaml"))
	assert.Zero(t, s.opened("/stage/b.layer.yaml"))
	assert.Equal(t, 1, s.opened("/stage/manifest.layer.yaml"))
}

func TestClipSet_GeneratedManifest(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	a := s.clipLayer("/stage/a.layer.yaml", double, 0, 5)
	a.SetField(clipAttrX, domain.FieldDefault, domain.Double(-1))
	a.SetField(modelPath.AppendProperty("still"), domain.FieldDefault, domain.Double(3))
	authorClips(s.layer(rootID), worldPath, map[string]setInfo{
		"default": {assets: []string{"./a.layer.yaml"}, primPath: "/Model", active: [][2]float64{{0, 0}}},
	})

	cache := clips.NewCache(s.reg, nil, nil)
	require.True(t, cache.PopulateClipsForPrim(worldPath, rootIndex(s.stack(t, rootID), worldPath)))
	set := cache.GetClipsForPrim(worldPath)[0]

	assert.True(t, set.GeneratedManifest)
	require.NotNil(t, set.Manifest)
	assert.True(t, domain.IsAnonymousLayerIdentifier(set.ManifestID))
	assert.Contains(t, set.ManifestID, "generated_manifest_")

	manifest := set.Manifest.Layer()
	v, ok := manifest.Field(clipAttrX, domain.FieldDefault)
	require.True(t, ok)
	assert.True(t, domain.Double(-1).Equal(v))

	assert.True(t, set.MayHaveSamples(attrX))
	assert.False(t, set.MayHaveSamples(worldPath.AppendProperty("still")))
	assert.True(t, strings.HasPrefix(set.String(), "default@/World"))
}

func TestClipSet_ValidationDropsOnlyTheBadSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info setInfo
		want string
	}{
		{
			name: "relative clip prim path",
			info: setInfo{assets: []string{"./a.layer.yaml"}, primPath: "Model", active: [][2]float64{{0, 0}}},
			want: domain.ErrInvalidClipPrimPath.Error(),
		},
		{
			name: "index out of range",
			info: setInfo{assets: []string{"./a.layer.yaml"}, primPath: "/Model", active: [][2]float64{{0, 1}}},
			want: domain.ErrClipIndexOutOfRange.Error(),
		},
		{
			name: "fractional index",
			info: setInfo{assets: []string{"./a.layer.yaml"}, primPath: "/Model", active: [][2]float64{{0, 0.5}}},
			want: domain.ErrClipIndexOutOfRange.Error(),
		},
		{
			name: "duplicate start time",
			info: setInfo{assets: []string{"./a.layer.yaml"}, primPath: "/Model", active: [][2]float64{{0, 0}, {0, 0}}},
			want: domain.ErrDuplicateClipActiveTime.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, warned := recordingLogger(t)
			s := newStore(t)
			s.clipLayer("/stage/a.layer.yaml", double, 0)
			authorClips(s.layer(rootID), worldPath, map[string]setInfo{
				"bad":  tt.info,
				"good": {assets: []string{"./a.layer.yaml"}, primPath: "/Model", active: [][2]float64{{0, 0}}},
			})

			cache := clips.NewCache(s.reg, nil, logger)
			require.True(t, cache.PopulateClipsForPrim(worldPath, rootIndex(s.stack(t, rootID), worldPath)))

			sets := cache.GetClipsForPrim(worldPath)
			require.Len(t, sets, 1)
			assert.Equal(t, "good", sets[0].Name)

			require.Len(t, *warned, 1)
			assert.Contains(t, (*warned)[0], "Invalid clips in clip set 'bad' for prim </World>")
			assert.Contains(t, (*warned)[0], tt.want)
		})
	}
}

func TestClipSet_IncompleteDefinitionIsIgnored(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	authorClips(s.layer(rootID), worldPath, map[string]setInfo{
		"noPrim":   {assets: []string{"./a.layer.yaml"}, active: [][2]float64{{0, 0}}},
		"noActive": {assets: []string{"./a.layer.yaml"}, primPath: "/Model"},
		"empty":    {assets: []string{}, primPath: "/Model", active: [][2]float64{}},
	})

	cache := clips.NewCache(s.reg, nil, nil)
	assert.False(t, cache.PopulateClipsForPrim(worldPath, rootIndex(s.stack(t, rootID), worldPath)))
	assert.Zero(t, cache.Len())
}

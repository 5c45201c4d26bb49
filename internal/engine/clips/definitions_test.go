package clips_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/fs"
	"go.trai.ch/strata/internal/adapters/scene"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/core/ports/mocks"
	"go.trai.ch/strata/internal/engine/clips"
	"go.trai.ch/strata/internal/engine/diag"
	"go.uber.org/mock/gomock"
)

func recordingLogger(t *testing.T) (*mocks.MockLogger, *[]string) {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	var warned []string
	logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) { warned = append(warned, msg) }).AnyTimes()
	return logger, &warned
}

func TestComputeDefinitions_ComposesAcrossSublayers(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	strong := s.layer(rootID)
	weak := s.layer("/stage/sub.layer.yaml")
	authorClips(weak, worldPath, map[string]setInfo{
		"default": {
			assets:   []string{"./a.layer.yaml"},
			primPath: "/Model",
			active:   [][2]float64{{0, 0}},
			times:    [][2]float64{{0, 0}, {10, 10}},
		},
	})
	authorClips(strong, worldPath, map[string]setInfo{
		"default": {active: [][2]float64{{5, 0}}},
	})

	stack := scene.NewLayerStack(rootID, domain.ResolverContext{},
		[]ports.Layer{strong, weak},
		[]domain.LayerOffset{domain.IdentityOffset(), domain.NewLayerOffset(10, 1)})

	defs := clips.ComputeDefinitions(rootIndex(stack, worldPath), fs.NewResolver(), diag.New(nil))
	require.Len(t, defs, 1)

	def := defs[0]
	assert.Equal(t, "default", def.Name)
	assert.Equal(t, []string{"./a.layer.yaml"}, def.AssetPaths)
	assert.Equal(t, "/Model", def.PrimPath)
	assert.Equal(t, [][2]float64{{5, 0}}, def.Active)
	assert.Equal(t, [][2]float64{{10, 0}, {20, 10}}, def.Times)
	assert.Equal(t, 1, def.Source.LayerIndex)
	assert.Equal(t, worldPath, def.Source.PrimPath)

	stored, _ := weak.Field(worldPath, domain.FieldClips)
	d, _ := stored.AsDictionary()
	entry, _ := d["default"].AsDictionary()
	assert.True(t, pairs([2]float64{0, 0}, [2]float64{10, 10}).Equal(entry[domain.ClipKeyTimes]), "authored data must not be retimed in place")
}

func TestComputeDefinitions_AnchorsAtStrongestNode(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	authorClips(s.layer(rootID), worldPath, map[string]setInfo{
		"default": {active: [][2]float64{{1, 0}}},
	})
	authorClips(s.layer("/stage/ref.layer.yaml"), modelPath, map[string]setInfo{
		"default": {
			assets:   []string{"./a.layer.yaml"},
			primPath: "/Model",
			active:   [][2]float64{{0, 0}},
			times:    [][2]float64{{0, 0}},
		},
	})

	rootStack := s.stack(t, rootID)
	refStack := s.stack(t, "/stage/ref.layer.yaml")
	root := scene.NewNode(scene.NodeParams{Stack: rootStack, Path: worldPath, Offset: domain.IdentityOffset()})
	ref := scene.NewNode(scene.NodeParams{
		Stack:  refStack,
		Path:   modelPath,
		Arc:    domain.ArcReference,
		Offset: domain.NewLayerOffset(100, 1),
		Parent: root,
	})

	defs := clips.ComputeDefinitions(scene.NewPrimIndex(worldPath, "", root, ref), fs.NewResolver(), diag.New(nil))
	require.Len(t, defs, 1)

	def := defs[0]
	assert.Same(t, refStack, def.Source.Stack)
	assert.Equal(t, modelPath, def.Source.PrimPath)
	assert.Equal(t, [][2]float64{{1, 0}}, def.Active)
	assert.Equal(t, [][2]float64{{100, 0}}, def.Times)
}

func TestComputeDefinitions_ClipSetsListOp(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	weak := s.layer("/stage/sub.layer.yaml")
	strong := s.layer(rootID)
	set := setInfo{assets: []string{"./a.layer.yaml"}, primPath: "/Model", active: [][2]float64{{0, 0}}}
	authorClips(weak, worldPath, map[string]setInfo{"a": set, "b": set, "c": set})
	weak.SetField(worldPath, domain.FieldClipSets, domain.ListOpValue(domain.ExplicitListOp("c", "b", "a")))
	strong.SetField(worldPath, domain.FieldClipSets, domain.ListOpValue(domain.ListOp{Deleted: []string{"b"}}))

	stack := scene.NewLayerStack(rootID, domain.ResolverContext{}, []ports.Layer{strong, weak}, nil)
	defs := clips.ComputeDefinitions(rootIndex(stack, worldPath), fs.NewResolver(), diag.New(nil))

	names := make([]string, 0, len(defs))
	for _, d := range defs {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"c", "a"}, names)
}

func TestComputeDefinitions_WarnsOnMalformedEntries(t *testing.T) {
	t.Parallel()

	logger, warned := recordingLogger(t)
	s := newStore(t)
	l := s.layer(rootID)
	l.SetField(worldPath, domain.FieldClips, domain.Dict(domain.Dictionary{
		"":       domain.Dict(domain.Dictionary{}),
		"scalar": domain.Double(1),
		"bad": domain.Dict(domain.Dictionary{
			domain.ClipKeyAssetPaths: domain.AssetArray("./a.layer.yaml"),
			domain.ClipKeyPrimPath:          domain.Double(3),
			domain.ClipKeyActive:     domain.DoubleArray(0, 0),
		}),
	}))

	defs := clips.ComputeDefinitions(rootIndex(s.stack(t, rootID), worldPath), fs.NewResolver(), diag.New(logger))
	require.Len(t, defs, 1)
	assert.Empty(t, defs[0].PrimPath)
	assert.Nil(t, defs[0].Active)

	joined := strings.Join(*warned, "\n")
	assert.Contains(t, joined, "Invalid unnamed clip set")
	assert.Contains(t, joined, "Expected dictionary for entry 'scalar'")
	assert.Contains(t, joined, domain.ErrMalformedClipMetadata.Error()+": unexpected value for 'primPath'")
	assert.Contains(t, joined, domain.ErrMalformedClipMetadata.Error()+": unexpected value for 'active'")
}

func TestComputeDefinitions_NonDictionaryClips(t *testing.T) {
	t.Parallel()

	logger, warned := recordingLogger(t)
	s := newStore(t)
	s.layer(rootID).SetField(worldPath, domain.FieldClips, domain.String("nope"))

	defs := clips.ComputeDefinitions(rootIndex(s.stack(t, rootID), worldPath), fs.NewResolver(), diag.New(logger))
	assert.Empty(t, defs)
	require.Len(t, *warned, 1)
	assert.Contains(t, (*warned)[0], "Expected dictionary for 'clips'")
}

type templateInfo struct {
	assetPath string
	stride    float64
	start     float64
	end       float64
	offset    *float64
}

func (i templateInfo) dict() domain.Dictionary {
	d := domain.Dictionary{
		domain.ClipKeyPrimPath:          domain.String("/Model"),
		domain.ClipKeyTemplateAssetPath: domain.String(i.assetPath),
		domain.ClipKeyTemplateStride:    domain.Double(i.stride),
		domain.ClipKeyTemplateStartTime: domain.Double(i.start),
		domain.ClipKeyTemplateEndTime:   domain.Double(i.end),
	}
	if i.offset != nil {
		d[domain.ClipKeyTemplateActiveOffset] = domain.Double(*i.offset)
	}
	return d
}

func templateDefinition(t *testing.T, info templateInfo, files ...string) (clips.Definition, []string) {
	t.Helper()

	dir := t.TempDir()
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("version: \"1\"\n"), 0o600))
	}

	logger, warned := recordingLogger(t)
	s := newStore(t)
	rootLayer := filepath.Join(dir, "root.layer.yaml")
	s.layer(rootLayer).SetField(worldPath, domain.FieldClips, domain.Dict(domain.Dictionary{
		"default": domain.Dict(info.dict()),
	}))

	defs := clips.ComputeDefinitions(rootIndex(s.stack(t, rootLayer), worldPath), fs.NewResolver(), diag.New(logger))
	require.Len(t, defs, 1)

	def := defs[0]
	for i, p := range def.AssetPaths {
		def.AssetPaths[i] = strings.TrimPrefix(p, dir+string(filepath.Separator))
	}
	return def, *warned
}

func TestComputeDefinitions_Template(t *testing.T) {
	t.Parallel()

	def, warned := templateDefinition(t, templateInfo{assetPath: "./clip.###.layer.yaml", stride: 1, start: 1, end: 3},
		"clip.001.layer.yaml", "clip.003.layer.yaml")

	assert.Empty(t, warned)
	assert.Equal(t, []string{"clip.001.layer.yaml", "clip.003.layer.yaml"}, def.AssetPaths)
	assert.Equal(t, [][2]float64{{1, 0}, {3, 1}}, def.Active)
	assert.Equal(t, [][2]float64{{1, 1}, {3, 3}}, def.Times)
}

func TestComputeDefinitions_TemplateDecimal(t *testing.T) {
	t.Parallel()

	def, _ := templateDefinition(t, templateInfo{assetPath: "./clip.###.##.layer.yaml", stride: 0.5, start: 1, end: 2},
		"clip.001.50.layer.yaml")

	assert.Equal(t, []string{"clip.001.50.layer.yaml"}, def.AssetPaths)
	assert.Equal(t, [][2]float64{{1.5, 0}}, def.Active)
}

func TestComputeDefinitions_TemplateActiveOffset(t *testing.T) {
	t.Parallel()

	offset := 0.5
	def, _ := templateDefinition(t, templateInfo{assetPath: "./clip.#.layer.yaml", stride: 1, start: 1, end: 2, offset: &offset},
		"clip.1.layer.yaml", "clip.2.layer.yaml")

	assert.Equal(t, [][2]float64{{1.5, 0}, {2.5, 1}}, def.Active)
	assert.Equal(t, [][2]float64{{0.5, 0.5}, {1, 1}, {2, 2}, {2.5, 2.5}}, def.Times)
}

func TestComputeDefinitions_InvalidTemplate(t *testing.T) {
	t.Parallel()

	big := 2.0
	tests := []struct {
		name string
		info templateInfo
	}{
		{name: "zero stride", info: templateInfo{assetPath: "./clip.###.layer.yaml", start: 1, end: 2}},
		{name: "offset beyond stride", info: templateInfo{assetPath: "./clip.###.layer.yaml", stride: 1, start: 1, end: 2, offset: &big}},
		{name: "no hash group", info: templateInfo{assetPath: "./clip.layer.yaml", stride: 1, start: 1, end: 2}},
		{name: "split hash groups", info: templateInfo{assetPath: "./clip.##.x.##.layer.yaml", stride: 1, start: 1, end: 2}},
		{name: "start after end", info: templateInfo{assetPath: "./clip.###.layer.yaml", stride: 1, start: 3, end: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			def, warned := templateDefinition(t, tt.info, "clip.001.layer.yaml")
			assert.Nil(t, def.AssetPaths)
			require.Len(t, warned, 1)
			assert.Contains(t, warned[0], "Ignoring clip set 'default'")
			assert.Contains(t, warned[0], domain.ErrInvalidClipTemplate.Error())
		})
	}
}

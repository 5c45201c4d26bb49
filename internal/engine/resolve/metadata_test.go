package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/scene"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/engine/resolve"
)

func TestGetMetadata_MergesDictionaries(t *testing.T) {
	t.Parallel()

	s := newStore()
	strong := s.layer(rootID)
	strong.SetField(worldPath, domain.FieldCustomData, domain.Dict(domain.Dictionary{
		"a":      domain.Int(1),
		"nested": domain.Dict(domain.Dictionary{"k": domain.String("strong")}),
	}))
	weak := s.layer(subID)
	weak.SetField(worldPath, domain.FieldCustomData, domain.Dict(domain.Dictionary{
		"a":      domain.Int(10),
		"b":      domain.Int(2),
		"nested": domain.Dict(domain.Dictionary{"k": domain.String("weak"), "j": domain.Bool(true)}),
	}))

	f := newFixture(s, fixtureOpts{
		typeName: "Mesh",
		fallbacks: []domain.FallbackDescription{{
			PrimType: "Mesh",
			Field:    domain.FieldCustomData,
			Value:    domain.Dict(domain.Dictionary{"a": domain.Int(100), "c": domain.Int(3)}),
		}},
	}, rootNode(s.stack(t, nil, rootID, subID), worldPath))

	v, ok := f.engine.GetMetadata(resolve.Prim(f.prim), domain.FieldCustomData)
	require.True(t, ok)
	got, ok := v.AsDictionary()
	require.True(t, ok)

	nested := domain.Dict(domain.Dictionary{"k": domain.String("strong"), "j": domain.Bool(true)})
	want := domain.Dictionary{
		"a":      domain.Int(1),
		"b":      domain.Int(2),
		"c":      domain.Int(3),
		"nested": nested,
	}
	assert.True(t, want.Equal(got), "got %s", v)

	entry, ok := f.engine.GetDictionaryMetadata(resolve.Prim(f.prim), domain.FieldCustomData, "nested:j")
	require.True(t, ok)
	assert.True(t, entry.Equal(domain.Bool(true)))

	entry, ok = f.engine.GetDictionaryMetadata(resolve.Prim(f.prim), domain.FieldCustomData, "c")
	require.True(t, ok)
	assert.True(t, entry.Equal(domain.Int(3)), "fallback entries are visible by key path")

	_, ok = f.engine.GetDictionaryMetadata(resolve.Prim(f.prim), domain.FieldCustomData, "nested:missing")
	assert.False(t, ok)
}

func TestGetMetadata_TwoKeyDictionary(t *testing.T) {
	t.Parallel()

	s := newStore()
	s.layer(rootID).SetField(worldPath, domain.FieldAssetInfo, domain.Dict(domain.Dictionary{"a": domain.Int(1)}))
	s.layer(subID).SetField(worldPath, domain.FieldAssetInfo, domain.Dict(domain.Dictionary{"b": domain.Int(2)}))

	f := newFixture(s, fixtureOpts{}, rootNode(s.stack(t, nil, rootID, subID), worldPath))

	v, ok := f.engine.GetMetadata(resolve.Prim(f.prim), domain.FieldAssetInfo)
	require.True(t, ok)
	assert.True(t, v.Equal(domain.Dict(domain.Dictionary{"a": domain.Int(1), "b": domain.Int(2)})), "got %s", v)
}

func TestGetMetadata_StrongestScalarWins(t *testing.T) {
	t.Parallel()

	s := newStore()
	s.layer(rootID).SetField(worldPath, "comment", domain.String("strong"))
	s.layer(subID).SetField(worldPath, "comment", domain.String("weak"))

	f := newFixture(s, fixtureOpts{}, rootNode(s.stack(t, nil, rootID, subID), worldPath))

	v, ok := f.engine.GetMetadata(resolve.Prim(f.prim), "comment")
	require.True(t, ok)
	assert.True(t, v.Equal(domain.String("strong")))

	_, ok = f.engine.GetMetadata(resolve.Prim(f.prim), "documentation")
	assert.False(t, ok)
}

func TestGetListOpMetadata(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		strong   *domain.ListOp
		weak     *domain.ListOp
		fallback *domain.ListOp
		want     []string
		found    bool
	}{
		{
			name:   "prepend over explicit",
			strong: &domain.ListOp{Prepended: []string{"c"}},
			weak:   &domain.ListOp{Explicit: true, ExplicitItems: []string{"a", "b"}},
			want:   []string{"c", "a", "b"},
			found:  true,
		},
		{
			name:     "explicit hides weaker opinions and fallback",
			strong:   &domain.ListOp{Explicit: true, ExplicitItems: []string{"x"}},
			weak:     &domain.ListOp{Appended: []string{"y"}},
			fallback: &domain.ListOp{Appended: []string{"z"}},
			want:     []string{"x"},
			found:    true,
		},
		{
			name:     "fallback is weakest",
			strong:   &domain.ListOp{Deleted: []string{"a"}, Appended: []string{"c"}},
			fallback: &domain.ListOp{Explicit: true, ExplicitItems: []string{"a", "b"}},
			want:     []string{"b", "c"},
			found:    true,
		},
		{
			name:  "no opinion",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newStore()
			s.layer(rootID).CreateSpec(worldPath)
			s.layer(subID).CreateSpec(worldPath)
			if tt.strong != nil {
				s.layer(rootID).SetField(worldPath, domain.FieldClipSets, domain.ListOpValue(*tt.strong))
			}
			if tt.weak != nil {
				s.layer(subID).SetField(worldPath, domain.FieldClipSets, domain.ListOpValue(*tt.weak))
			}
			opts := fixtureOpts{typeName: "Mesh"}
			if tt.fallback != nil {
				opts.fallbacks = []domain.FallbackDescription{{
					PrimType: "Mesh",
					Field:    domain.FieldClipSets,
					Value:    domain.ListOpValue(*tt.fallback),
				}}
			}

			f := newFixture(s, opts, rootNode(s.stack(t, nil, rootID, subID), worldPath))

			got, ok := f.engine.GetListOpMetadata(resolve.Prim(f.prim), domain.FieldClipSets)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetTimeSampleMap(t *testing.T) {
	t.Parallel()

	s := newStore()
	s.layer(rootID).CreateSpec(worldPath)
	sub := s.layer(subID)
	sub.SetTimeSample(attrX, 0, domain.TimeCodeValue(1))
	sub.SetTimeSample(attrX, 2, domain.TimeCodeValue(4))

	stack := s.stack(t, []domain.LayerOffset{domain.IdentityOffset(), domain.NewLayerOffset(5, 2)}, rootID, subID)
	f := newFixture(s, fixtureOpts{}, rootNode(stack, worldPath))

	got := f.engine.GetTimeSampleMap(f.x())
	require.Len(t, got, 2)
	assert.InDelta(t, 5, got[0].Time, 1e-9)
	assert.True(t, got[0].Value.Equal(domain.TimeCodeValue(7)), "got %s", got[0].Value)
	assert.InDelta(t, 9, got[1].Time, 1e-9)
	assert.True(t, got[1].Value.Equal(domain.TimeCodeValue(13)), "got %s", got[1].Value)
}

func TestGetPropertyStack(t *testing.T) {
	t.Parallel()

	s := newStore()
	s.layer(rootID).SetField(attrX, domain.FieldDefault, domain.Double(1))
	s.layer(rootID).CreateSpec(worldPath)
	s.layer(subID).SetTimeSample(attrX, 0, domain.Double(0))

	f := newFixture(s, fixtureOpts{}, rootNode(s.stack(t, nil, rootID, subID), worldPath))

	stack := f.engine.GetPropertyStack(f.x(), domain.DefaultTime())
	require.Len(t, stack, 2)
	assert.Equal(t, rootID, stack[0].Layer.Identifier())
	assert.Equal(t, subID, stack[1].Layer.Identifier())
	assert.Equal(t, attrX, stack[1].Path)
}

func TestGetSpecifier(t *testing.T) {
	t.Parallel()

	classPath := domain.NewPath("/_Class")

	tests := []struct {
		name          string
		root          *domain.Specifier
		inherited     *domain.Specifier
		dueToAncestor bool
		want          domain.Specifier
		found         bool
	}{
		{
			name:  "over only",
			root:  ptr(domain.SpecifierOver),
			want:  domain.SpecifierOver,
			found: true,
		},
		{
			name:      "directly inherited class beats over",
			root:      ptr(domain.SpecifierOver),
			inherited: ptr(domain.SpecifierClass),
			want:      domain.SpecifierClass,
			found:     true,
		},
		{
			name:      "inherited class alone",
			inherited: ptr(domain.SpecifierClass),
			want:      domain.SpecifierClass,
			found:     true,
		},
		{
			name:      "defining root wins",
			root:      ptr(domain.SpecifierDef),
			inherited: ptr(domain.SpecifierClass),
			want:      domain.SpecifierDef,
			found:     true,
		},
		{
			name:          "class through ancestral inherit is defining",
			root:          ptr(domain.SpecifierOver),
			inherited:     ptr(domain.SpecifierClass),
			dueToAncestor: true,
			want:          domain.SpecifierClass,
			found:         true,
		},
		{
			name:  "no specs",
			want:  domain.SpecifierOver,
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newStore()
			if tt.root != nil {
				s.layer(rootID).SetField(worldPath, domain.FieldSpecifier, domain.SpecifierValue(*tt.root))
			}
			if tt.inherited != nil {
				s.layer(subID).SetField(classPath, domain.FieldSpecifier, domain.SpecifierValue(*tt.inherited))
			}

			root := rootNode(s.stack(t, nil, rootID), worldPath)
			inherit := scene.NewNode(scene.NodeParams{
				Stack:         s.stack(t, nil, subID),
				Path:          classPath,
				Arc:           domain.ArcInherit,
				DueToAncestor: tt.dueToAncestor,
				Offset:        domain.IdentityOffset(),
				Parent:        root,
			})
			f := newFixture(s, fixtureOpts{}, root, inherit)

			got, ok := f.engine.GetSpecifier(f.prim)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func ptr[T any](v T) *T { return &v }

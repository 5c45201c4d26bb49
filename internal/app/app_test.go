package app_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/app"
	"go.trai.ch/strata/internal/core/domain"
)

var (
	world = domain.NewPath("/World")
	ball  = domain.NewPath("/World/Ball")
	x     = world.AppendProperty("x")
)

func TestApp_Open_BuildsOnce(t *testing.T) {
	t.Parallel()

	h := newHarness(t, app.Options{Workers: 4})

	const callers = 16
	stages := make([]*app.Stage, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Go(func() {
			st, err := h.app.Open(t.Context(), h.stagePath)
			assert.NoError(t, err)
			stages[i] = st
		})
	}
	wg.Wait()

	for _, st := range stages {
		assert.Same(t, stages[0], st)
	}
	assert.Equal(t, 1, h.ended("stage.build"))
	assert.Equal(t, []domain.Path{world, ball}, stages[0].Prims())

	h.app.Close(stages[0])
	again, err := h.app.Open(t.Context(), h.stagePath)
	require.NoError(t, err)
	assert.NotSame(t, stages[0], again)
	assert.Equal(t, 2, h.ended("stage.build"))
}

func TestApp_Open_Errors(t *testing.T) {
	t.Parallel()

	h := newHarness(t, app.Options{})
	_, err := h.app.Open(t.Context(), h.path("missing.yaml"))
	require.ErrorContains(t, err, domain.ErrStageUnavailable.Error())

	bad := newHarness(t, app.Options{Interpolation: "cubic"})
	_, err = bad.app.Open(t.Context(), bad.stagePath)
	require.ErrorContains(t, err, domain.ErrSettingsParseFailed.Error())
}

func TestStage_Value(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		opts   app.Options
		time   domain.TimeCode
		want   domain.Value
		found  bool
		source domain.Source
	}{
		{
			name:   "clip sample",
			time:   domain.At(10),
			want:   domain.Double(10),
			found:  true,
			source: domain.SourceValueClips,
		},
		{
			name:   "linear between clip samples",
			time:   domain.At(5),
			want:   domain.Double(5),
			found:  true,
			source: domain.SourceValueClips,
		},
		{
			name:   "held override",
			opts:   app.Options{Interpolation: "held"},
			time:   domain.At(5),
			want:   domain.Double(0),
			found:  true,
			source: domain.SourceValueClips,
		},
		{
			name:   "clips never answer the default time",
			time:   domain.DefaultTime(),
			found:  false,
			source: domain.SourceNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t, tt.opts)
			st, err := h.app.Open(t.Context(), h.stagePath)
			require.NoError(t, err)

			got, err := st.Value(t.Context(), x, tt.time)
			require.NoError(t, err)
			assert.Equal(t, tt.found, got.Found)
			assert.Equal(t, tt.source, got.Info.Source)
			if tt.found {
				assert.True(t, tt.want.Equal(got.Value), "got %s", got.Value)
			}
		})
	}
}

func TestStage_Value_Fallback(t *testing.T) {
	t.Parallel()

	h := newHarness(t, app.Options{})
	st, err := h.app.Open(t.Context(), h.stagePath)
	require.NoError(t, err)

	got, err := st.Value(t.Context(), ball.AppendProperty("radius"), domain.At(3))
	require.NoError(t, err)
	require.True(t, got.Found)
	assert.Equal(t, domain.SourceFallback, got.Info.Source)
	assert.True(t, got.Value.Equal(domain.Double(1)))
}

func TestStage_QueryErrors(t *testing.T) {
	t.Parallel()

	h := newHarness(t, app.Options{})
	st, err := h.app.Open(t.Context(), h.stagePath)
	require.NoError(t, err)

	_, err = st.Value(t.Context(), domain.NewPath("/Nowhere.x"), domain.At(1))
	require.ErrorContains(t, err, domain.ErrPrimNotFound.Error())

	_, err = st.Value(t.Context(), world, domain.At(1))
	require.ErrorContains(t, err, domain.ErrUnknownObject.Error())

	_, err = st.Info(t.Context(), domain.Path{}, domain.DefaultTime())
	require.ErrorContains(t, err, domain.ErrInvalidPath.Error())
}

func TestStage_Samples(t *testing.T) {
	t.Parallel()

	h := newHarness(t, app.Options{})
	st, err := h.app.Open(t.Context(), h.stagePath)
	require.NoError(t, err)

	got, err := st.Samples(t.Context(), x, domain.FullInterval(), domain.At(12))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 10, 20}, got.Times)
	assert.True(t, got.Varying)
	require.NotNil(t, got.Bracket)
	assert.Equal(t, app.Bracket{Time: 12, Lower: 10, Upper: 20, HasSamples: true}, *got.Bracket)

	within, err := st.Samples(t.Context(), x, domain.ClosedInterval(5, 15), domain.DefaultTime())
	require.NoError(t, err)
	assert.Equal(t, []float64{10}, within.Times)
	assert.Nil(t, within.Bracket)

	info, err := st.Info(t.Context(), x, domain.DefaultTime())
	require.NoError(t, err)
	assert.Equal(t, domain.SourceIsTimeDependent, info.Source)
}

func TestStage_Metadata(t *testing.T) {
	t.Parallel()

	h := newHarness(t, app.Options{})
	st, err := h.app.Open(t.Context(), h.stagePath)
	require.NoError(t, err)

	v, ok, err := st.Metadata(t.Context(), ball, domain.FieldCustomData, "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, v.Equal(domain.Dict(domain.Dictionary{"b": domain.Int(2)})), "got %s", v)

	v, ok, err = st.Metadata(t.Context(), world, domain.FieldCustomData, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, v.Equal(domain.Int(1)))

	spec, ok, err := st.Specifier(t.Context(), ball)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.SpecifierDef, spec)

	_, ok, err = st.ListOp(t.Context(), world, domain.FieldClipSets)
	require.NoError(t, err)
	assert.False(t, ok)

	stack, err := st.PropertyStack(t.Context(), x, domain.At(1))
	require.NoError(t, err)
	require.Len(t, stack, 1)
	assert.Equal(t, h.path("clip.layer.yaml"), stack[0].Layer.Identifier())
}

func TestByDepth(t *testing.T) {
	t.Parallel()

	paths := domain.NewPaths([]string{"/A", "/A/B", "/C", "/A/B/D"})
	got := app.ByDepth(paths)
	require.Len(t, got, 3)
	assert.Equal(t, domain.NewPaths([]string{"/A", "/C"}), got[0])
	assert.Equal(t, domain.NewPaths([]string{"/A/B"}), got[1])
	assert.Equal(t, domain.NewPaths([]string{"/A/B/D"}), got[2])
}

func TestTopmost(t *testing.T) {
	t.Parallel()

	paths := domain.NewPaths([]string{"/A/B", "/C", "/A", "/A/B", "/AB"})
	assert.Equal(t, domain.NewPaths([]string{"/A", "/C", "/AB"}), app.Topmost(paths))
}

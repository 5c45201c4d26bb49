package app_test

import (
	"context"
	"iter"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/app"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func valueAt(t *testing.T, st *app.Stage, at float64) domain.Value {
	t.Helper()
	got, err := st.Value(t.Context(), x, domain.At(at))
	require.NoError(t, err)
	require.True(t, got.Found)
	return got.Value
}

func TestApp_Reload(t *testing.T) {
	t.Parallel()

	h := newHarness(t, app.Options{Workers: 2})
	st, err := h.app.Open(t.Context(), h.stagePath)
	require.NoError(t, err)
	assert.True(t, valueAt(t, st, 5).Equal(domain.Double(5)))

	writeFiles(t, h.dir, map[string]string{"root.layer.yaml": retimedRootLayerYAML})
	root := h.path("root.layer.yaml")

	report, err := h.app.Reload(t.Context(), st, []string{root})
	require.NoError(t, err)
	assert.Equal(t, []string{root}, report.Layers)
	assert.Equal(t, []domain.Path{world, ball}, report.Prims)
	assert.GreaterOrEqual(t, report.Retained, 1)
	assert.Equal(t, 1, h.ended("stage.reload"))

	got := valueAt(t, st, 5)
	assert.True(t, got.Equal(domain.Double(10)), "got %s", got)

	again, err := h.app.Reload(t.Context(), st, []string{root})
	require.NoError(t, err)
	assert.Empty(t, again.Layers, "unchanged content is skipped")
	assert.Empty(t, again.Prims)
}

func TestApp_Reload_ClipLayer(t *testing.T) {
	t.Parallel()

	h := newHarness(t, app.Options{})
	st, err := h.app.Open(t.Context(), h.stagePath)
	require.NoError(t, err)

	y := world.AppendProperty("y")
	before, err := st.Value(t.Context(), y, domain.At(0))
	require.NoError(t, err)
	assert.False(t, before.Found, "y is not in the generated manifest")

	writeFiles(t, h.dir, map[string]string{"clip.layer.yaml": editedClipLayerYAML})
	clip := h.path("clip.layer.yaml")

	report, err := h.app.Reload(t.Context(), st, []string{clip})
	require.NoError(t, err)
	assert.Equal(t, []string{clip}, report.Layers)
	assert.Equal(t, []domain.Path{world, ball}, report.Prims)

	got := valueAt(t, st, 10)
	assert.True(t, got.Equal(domain.Double(20)), "got %s", got)

	after, err := st.Value(t.Context(), y, domain.At(0))
	require.NoError(t, err)
	require.True(t, after.Found, "the manifest is generated from the edited clip layer")
	assert.True(t, after.Value.Equal(domain.Double(1)), "got %s", after.Value)
}

func TestApp_Reload_UnknownLayer(t *testing.T) {
	t.Parallel()

	h := newHarness(t, app.Options{})
	st, err := h.app.Open(t.Context(), h.stagePath)
	require.NoError(t, err)

	report, err := h.app.Reload(t.Context(), st, []string{h.path("other.layer.yaml")})
	require.NoError(t, err)
	assert.Empty(t, report.Layers)
}

func TestApp_Watch(t *testing.T) {
	t.Parallel()

	h := newHarness(t, app.Options{Debounce: time.Hour})
	st, err := h.app.Open(t.Context(), h.stagePath)
	require.NoError(t, err)

	root := h.path("root.layer.yaml")
	clip := h.path("clip.layer.yaml")
	ctrl := gomock.NewController(t)
	w := mocks.NewMockWatcher(ctrl)
	w.EXPECT().Start(gomock.Any(), []string{root, clip}).Return(nil)
	w.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](func(yield func(ports.WatchEvent) bool) {
		writeFiles(t, h.dir, map[string]string{"root.layer.yaml": retimedRootLayerYAML})
		if !yield(ports.WatchEvent{Path: h.path("unrelated.txt"), Operation: ports.OpWrite}) {
			return
		}
		yield(ports.WatchEvent{Path: root, Operation: ports.OpWrite})
	}))
	w.EXPECT().Stop().Return(nil)

	var reports []app.ReloadReport
	err = h.app.Watch(t.Context(), st, w, func(r app.ReloadReport, err error) {
		assert.NoError(t, err)
		reports = append(reports, r)
	})
	require.NoError(t, err)

	require.Len(t, reports, 1)
	assert.Equal(t, []string{root}, reports[0].Layers)
	assert.True(t, valueAt(t, st, 5).Equal(domain.Double(10)))
}

func TestApp_Watch_ClipLayer(t *testing.T) {
	t.Parallel()

	h := newHarness(t, app.Options{Debounce: time.Hour})
	st, err := h.app.Open(t.Context(), h.stagePath)
	require.NoError(t, err)

	clip := h.path("clip.layer.yaml")
	ctrl := gomock.NewController(t)
	w := mocks.NewMockWatcher(ctrl)
	w.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
	w.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](func(yield func(ports.WatchEvent) bool) {
		writeFiles(t, h.dir, map[string]string{"clip.layer.yaml": editedClipLayerYAML})
		yield(ports.WatchEvent{Path: clip, Operation: ports.OpWrite})
	}))
	w.EXPECT().Stop().Return(nil)

	var reports []app.ReloadReport
	err = h.app.Watch(t.Context(), st, w, func(r app.ReloadReport, err error) {
		assert.NoError(t, err)
		reports = append(reports, r)
	})
	require.NoError(t, err)

	require.Len(t, reports, 1)
	assert.Equal(t, []string{clip}, reports[0].Layers)
	assert.True(t, valueAt(t, st, 10).Equal(domain.Double(20)))
}

func TestApp_Watch_Cancelled(t *testing.T) {
	t.Parallel()

	h := newHarness(t, app.Options{Debounce: time.Hour})
	st, err := h.app.Open(t.Context(), h.stagePath)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	root := h.path("root.layer.yaml")
	ctrl := gomock.NewController(t)
	w := mocks.NewMockWatcher(ctrl)
	w.EXPECT().Start(gomock.Any(), gomock.Any()).Return(nil)
	w.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](func(yield func(ports.WatchEvent) bool) {
		yield(ports.WatchEvent{Path: root, Operation: ports.OpWrite})
		cancel()
	}))
	w.EXPECT().Stop().Return(nil)

	called := false
	require.NoError(t, h.app.Watch(ctx, st, w, func(app.ReloadReport, error) { called = true }))
	assert.False(t, called, "pending changes are dropped on cancel")
}

func TestApp_Watch_StartError(t *testing.T) {
	t.Parallel()

	h := newHarness(t, app.Options{})
	st, err := h.app.Open(t.Context(), h.stagePath)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	w := mocks.NewMockWatcher(ctrl)
	w.EXPECT().Start(gomock.Any(), gomock.Any()).Return(domain.ErrWatcherStartFailed)

	err = h.app.Watch(t.Context(), st, w, nil)
	require.ErrorIs(t, err, domain.ErrWatcherStartFailed)
}

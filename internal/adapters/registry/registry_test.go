package registry_test

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/strata/internal/adapters/memlayer"
	"go.trai.ch/strata/internal/adapters/registry"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type countingOpener struct {
	calls atomic.Int32
	fail  map[string]bool
}

func (o *countingOpener) open(identifier string) (*memlayer.Layer, error) {
	o.calls.Add(1)
	if o.fail[identifier] {
		return nil, errors.New("boom")
	}
	l := memlayer.New(identifier)
	l.SetField(domain.NewPath("/Prim"), domain.FieldTypeName, domain.Token("Xform"))
	return l, nil
}

func TestRegistry_FindOrOpen_SharesOneOpen(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	opener := &countingOpener{}
	reg := registry.New(opener.open, mocks.NewMockAssetResolver(ctrl))

	const callers = 16
	layers := make([]any, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Go(func() {
			l, err := reg.FindOrOpen("/stage/clip.layer.yaml")
			assert.NoError(t, err)
			layers[i] = l
		})
	}
	wg.Wait()

	assert.Equal(t, int32(1), opener.calls.Load())
	for _, l := range layers {
		assert.Same(t, layers[0], l)
	}

	found, ok := reg.Find("/stage/clip.layer.yaml")
	require.True(t, ok)
	assert.Same(t, layers[0], found)
}

func TestRegistry_FindOrOpen_Errors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	opener := &countingOpener{fail: map[string]bool{"/stage/broken.layer.yaml": true}}
	reg := registry.New(opener.open, mocks.NewMockAssetResolver(ctrl))

	_, err := reg.FindOrOpen("/stage/broken.layer.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	_, err = reg.FindOrOpen("anon:99:missing")
	require.ErrorContains(t, err, domain.ErrLayerNotFound.Error())
	assert.Equal(t, int32(1), opener.calls.Load(), "anonymous identifiers are never opened")
}

func TestRegistry_CreateAnonymous(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := registry.New((&countingOpener{}).open, mocks.NewMockAssetResolver(ctrl))

	l := reg.CreateAnonymous("manifest")
	assert.True(t, l.IsAnonymous())

	found, ok := reg.Find(l.Identifier())
	require.True(t, ok)
	assert.Same(t, l, found)
}

func TestRegistry_FindOrOpenRelative(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	resolver := mocks.NewMockAssetResolver(ctrl)
	opener := &countingOpener{}
	reg := registry.New(opener.open, resolver)

	anchor := memlayer.New("/stage/root.layer.yaml")
	ctx := domain.ResolverContext{SearchPaths: []string{"/library"}}

	resolver.EXPECT().Anchor("/stage/root.layer.yaml", "./clip.layer.yaml").Return("/stage/clip.layer.yaml").Times(2)
	resolver.EXPECT().Resolve(ctx, "/stage/clip.layer.yaml").Return("/stage/clip.layer.yaml").Times(2)

	_, ok := reg.FindRelative(anchor, "./clip.layer.yaml", ctx)
	assert.False(t, ok)

	l, err := reg.FindOrOpenRelative(anchor, "./clip.layer.yaml", ctx)
	require.NoError(t, err)
	assert.Equal(t, "/stage/clip.layer.yaml", l.Identifier())
}

func TestRegistry_DropsUnreferencedLayers(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reg := registry.New((&countingOpener{}).open, mocks.NewMockAssetResolver(ctrl))

	id := reg.CreateAnonymous("transient").Identifier()

	require.Eventually(t, func() bool {
		runtime.GC()
		_, ok := reg.Find(id)
		return !ok
	}, 5*time.Second, 10*time.Millisecond)
}

func TestRegistry_Reload(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	version := 0
	open := func(identifier string) (*memlayer.Layer, error) {
		version++
		l := memlayer.New(identifier)
		l.SetField(domain.NewPath("/Prim.size"), domain.FieldDefault, domain.Int(int64(version)))
		return l, nil
	}
	reg := registry.New(open, mocks.NewMockAssetResolver(ctrl))

	l, err := reg.FindOrOpen("/stage/root.layer.yaml")
	require.NoError(t, err)

	reloaded, err := reg.Reload("/stage/root.layer.yaml")
	require.NoError(t, err)
	assert.True(t, reloaded)

	v, ok := l.Field(domain.NewPath("/Prim.size"), domain.FieldDefault)
	require.True(t, ok)
	assert.True(t, v.Equal(domain.Int(2)), "contents are swapped in place")

	reloaded, err = reg.Reload("/stage/unopened.layer.yaml")
	require.NoError(t, err)
	assert.False(t, reloaded)
}

// Package registry keeps the identity map of open layers.
package registry

import (
	"runtime"
	"sync"
	"weak"

	"go.trai.ch/strata/internal/adapters/memlayer"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Opener reads the layer with the given identifier from storage.
type Opener func(identifier string) (*memlayer.Layer, error)

var _ ports.LayerRegistry = (*Registry)(nil)

// Registry implements ports.LayerRegistry. Layers are held weakly: an entry
// disappears once nothing outside the registry references the layer.
type Registry struct {
	open     Opener
	resolver ports.AssetResolver

	mu     sync.Mutex
	layers map[string]weak.Pointer[memlayer.Layer]
	group  singleflight.Group
}

// New creates a registry that opens layers with open and resolves relative
// asset paths with resolver.
func New(open Opener, resolver ports.AssetResolver) *Registry {
	return &Registry{
		open:     open,
		resolver: resolver,
		layers:   make(map[string]weak.Pointer[memlayer.Layer]),
	}
}

// Find returns the open layer with the given identifier.
func (r *Registry) Find(identifier string) (ports.Layer, bool) {
	l := r.lookup(identifier)
	if l == nil {
		return nil, false
	}
	return l, true
}

// Lookup returns the concrete open layer with the given identifier, or nil.
func (r *Registry) Lookup(identifier string) *memlayer.Layer {
	return r.lookup(identifier)
}

func (r *Registry) lookup(identifier string) *memlayer.Layer {
	r.mu.Lock()
	defer r.mu.Unlock()
	wp, ok := r.layers[identifier]
	if !ok {
		return nil
	}
	return wp.Value()
}

// FindOrOpen returns the open layer with the given identifier or opens it.
// Concurrent opens of the same identifier share one read.
func (r *Registry) FindOrOpen(identifier string) (ports.Layer, error) {
	l, err := r.FindOrOpenLayer(identifier)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// FindOrOpenLayer is FindOrOpen returning the concrete layer.
func (r *Registry) FindOrOpenLayer(identifier string) (*memlayer.Layer, error) {
	if l := r.lookup(identifier); l != nil {
		return l, nil
	}
	if identifier == "" || domain.IsAnonymousLayerIdentifier(identifier) {
		return nil, zerr.With(domain.ErrLayerNotFound, "layer", identifier)
	}

	v, err, _ := r.group.Do(identifier, func() (any, error) {
		if l := r.lookup(identifier); l != nil {
			return l, nil
		}
		l, err := r.open(identifier)
		if err != nil {
			return nil, err
		}
		r.Register(l)
		return l, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*memlayer.Layer), nil //nolint:forcetypeassert // Only layers are stored in the group
}

// FindRelative finds an open layer for assetPath anchored to anchor.
func (r *Registry) FindRelative(anchor ports.Layer, assetPath string, ctx domain.ResolverContext) (ports.Layer, bool) {
	return r.Find(r.identify(anchor, assetPath, ctx))
}

// FindOrOpenRelative finds or opens the layer for assetPath anchored to
// anchor.
func (r *Registry) FindOrOpenRelative(anchor ports.Layer, assetPath string, ctx domain.ResolverContext) (ports.Layer, error) {
	return r.FindOrOpen(r.identify(anchor, assetPath, ctx))
}

func (r *Registry) identify(anchor ports.Layer, assetPath string, ctx domain.ResolverContext) string {
	anchorID := ""
	if anchor != nil {
		anchorID = anchor.Identifier()
	}
	anchored := r.resolver.Anchor(anchorID, assetPath)
	if resolved := r.resolver.Resolve(ctx, anchored); resolved != "" {
		return resolved
	}
	return anchored
}

// CreateAnonymous creates and registers an empty in-memory layer.
func (r *Registry) CreateAnonymous(tag string) ports.Layer {
	l := memlayer.NewAnonymous(tag)
	r.Register(l)
	return l
}

// Register adds l to the identity map, replacing any previous entry with
// the same identifier.
func (r *Registry) Register(l *memlayer.Layer) {
	id := l.Identifier()
	wp := weak.Make(l)

	r.mu.Lock()
	r.layers[id] = wp
	r.mu.Unlock()

	runtime.AddCleanup(l, r.forget, entry{id: id, wp: wp})
}

// Len returns the number of live layers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, wp := range r.layers {
		if wp.Value() != nil {
			n++
		}
	}
	return n
}

type entry struct {
	id string
	wp weak.Pointer[memlayer.Layer]
}

func (r *Registry) forget(e entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.layers[e.id]; ok && cur == e.wp {
		delete(r.layers, e.id)
	}
}

// Reload re-reads an open layer from storage and swaps its contents in
// place. Layers that are not open are ignored.
func (r *Registry) Reload(identifier string) (bool, error) {
	l := r.lookup(identifier)
	if l == nil {
		return false, nil
	}
	fresh, err := r.open(identifier)
	if err != nil {
		return false, err
	}
	l.Replace(fresh)
	return true, nil
}

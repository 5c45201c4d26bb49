package clips

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/diag"
	"go.trai.ch/zerr"
)

// env carries the collaborators shared by a cache and the clips it builds.
type env struct {
	registry ports.LayerRegistry
	resolver ports.AssetResolver
	report   *diag.Reporter

	lifeboat func() *Lifeboat
}

func (e *env) lifeboatManifest(key uint64) (string, bool) {
	lb := e.lifeboat()
	if lb == nil {
		return "", false
	}
	return lb.manifest(key)
}

// layerIdentifier returns the identifier the registry opens c's layer under.
func (e *env) layerIdentifier(c *Clip) string {
	if l, ok := c.LayerIfOpen(); ok {
		return l.Identifier()
	}
	if e.resolver == nil {
		return c.AssetPath
	}

	anchorID := ""
	if anchor, ok := c.Source.Layer(); ok {
		anchorID = anchor.Identifier()
	}
	var ctx domain.ResolverContext
	if c.Source.Stack != nil {
		ctx = c.Source.Stack.ResolverContext()
	}
	anchored := e.resolver.Anchor(anchorID, c.AssetPath)
	if resolved := e.resolver.Resolve(ctx, anchored); resolved != "" {
		return resolved
	}
	return anchored
}

// layerIdentifiers returns the clip layers of s and its authored manifest.
func (e *env) layerIdentifiers(s *ClipSet) []string {
	ids := make([]string, 0, len(s.Clips)+1)
	for _, c := range s.Clips {
		ids = append(ids, e.layerIdentifier(c))
	}
	if s.Manifest != nil && !s.GeneratedManifest {
		ids = append(ids, e.layerIdentifier(s.Manifest))
	}
	return ids
}

// Cache holds the clip sets that apply to each prim of one stage. Entries
// exist only for prims with clips of their own or copied from an ancestor.
type Cache struct {
	env env

	// mu is non-nil while a concurrent population context is open.
	mu       *sync.Mutex
	table    map[domain.Path][]*ClipSet
	lifeboat *Lifeboat
}

// NewCache returns an empty cache. Clip layers are opened through registry
// and template clip paths are resolved with resolver.
func NewCache(registry ports.LayerRegistry, resolver ports.AssetResolver, logger ports.Logger) *Cache {
	c := &Cache{table: make(map[domain.Path][]*ClipSet)}
	c.env = env{
		registry: registry,
		resolver: resolver,
		report:   diag.New(logger),
		lifeboat: func() *Lifeboat { return c.lifeboat },
	}
	return c
}

func (c *Cache) lock() func() {
	if c.mu == nil {
		return func() {}
	}
	c.mu.Lock()
	return c.mu.Unlock
}

// PopulateClipsForPrim computes the clip sets authored on idx and records
// them for path. It reports whether path or an ancestor has clips.
func (c *Cache) PopulateClipsForPrim(path domain.Path, idx ports.PrimIndex) bool {
	var own []*ClipSet
	for _, def := range ComputeDefinitions(idx, c.env.resolver, c.env.report) {
		set, err := newClipSet(path, def, &c.env)
		if err != nil {
			c.env.report.Warn("Invalid clips in clip set '" + def.Name + "' for prim <" + path.String() + ">: " +
				describe(err))
			continue
		}
		if set != nil && len(set.Clips) > 0 {
			own = append(own, set)
		}
	}

	unlock := c.lock()
	defer unlock()

	var (
		inherited    []*ClipSet
		intermediate []domain.Path
	)
	for p := path.Parent(); !p.IsEmpty(); p = p.Parent() {
		if sets, ok := c.table[p]; ok {
			inherited = sets
			break
		}
		intermediate = append(intermediate, p)
	}

	if len(inherited) > 0 {
		for _, p := range intermediate {
			c.table[p] = inherited
		}
	}

	if len(own) == 0 && len(inherited) == 0 {
		return false
	}
	c.table[path] = append(own, inherited...)
	return true
}

// describe renders err with its metadata for warnings.
func describe(err error) string {
	msg := err.Error()
	var z *zerr.Error
	if !errors.As(err, &z) {
		return msg
	}
	meta := z.Metadata()
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		msg += fmt.Sprintf(" %s=%v", k, meta[k])
	}
	return msg
}

// GetClipsForPrim returns the clip sets that apply to path, strongest first,
// from path or its nearest ancestor with an entry.
func (c *Cache) GetClipsForPrim(path domain.Path) []*ClipSet {
	unlock := c.lock()
	defer unlock()

	for p := path; !p.IsEmpty(); p = p.Parent() {
		if sets, ok := c.table[p]; ok {
			return sets
		}
	}
	return nil
}

// HasClips reports whether any clip set applies to path.
func (c *Cache) HasClips(path domain.Path) bool {
	return len(c.GetClipsForPrim(path)) > 0
}

// InvalidateClipsForPrim moves the entries for path and its descendants into
// lb, which keeps their layers open until released.
func (c *Cache) InvalidateClipsForPrim(path domain.Path, lb *Lifeboat) {
	if lb == nil {
		c.env.report.Once("clips.invalidate.lifeboat", zerr.With(domain.ErrLifeboatRequired, "prim", path.String()))
		return
	}

	unlock := c.lock()
	defer unlock()

	for p, sets := range c.table {
		if p.HasPrefix(path) {
			lb.retain(sets)
			delete(c.table, p)
		}
	}
}

// LayerIdentifiers returns the sorted identifiers of every clip layer and
// authored manifest the cached clip sets read.
func (c *Cache) LayerIdentifiers() []string {
	unlock := c.lock()
	defer unlock()

	seen := make(map[*ClipSet]struct{})
	var ids []string
	for _, sets := range c.table {
		for _, s := range sets {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			ids = append(ids, c.env.layerIdentifiers(s)...)
		}
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// PrimsUsingLayer returns the prims whose clip sets read the layer with
// identifier, sorted.
func (c *Cache) PrimsUsingLayer(identifier string) []domain.Path {
	unlock := c.lock()
	defer unlock()

	var out []domain.Path
	for p, sets := range c.table {
		if slices.ContainsFunc(sets, func(s *ClipSet) bool {
			return slices.Contains(c.env.layerIdentifiers(s), identifier)
		}) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b domain.Path) int { return cmp.Compare(a.String(), b.String()) })
	return out
}

// Len returns the number of cache entries.
func (c *Cache) Len() int {
	unlock := c.lock()
	defer unlock()
	return len(c.table)
}

// PopulationContext allows PopulateClipsForPrim to be called concurrently
// until it is closed.
type PopulationContext struct {
	cache *Cache
}

// NewConcurrentPopulationContext guards every read and write of cache with
// a mutex until Close.
func NewConcurrentPopulationContext(cache *Cache) *PopulationContext {
	cache.mu = &sync.Mutex{}
	return &PopulationContext{cache: cache}
}

// Close removes the guard. No population may be in flight.
func (p *PopulationContext) Close() {
	p.cache.mu = nil
}

// Lifeboat keeps invalidated clip sets, and the layers they hold, alive
// through one recompose pass.
type Lifeboat struct {
	cache *Cache

	mu        sync.Mutex
	sets      map[*ClipSet]struct{}
	manifests map[uint64]string
}

// NewLifeboat creates a lifeboat and makes it the cache's active one, so
// repopulation can reuse the manifests it holds.
func (c *Cache) NewLifeboat() *Lifeboat {
	lb := &Lifeboat{
		cache:     c,
		sets:      make(map[*ClipSet]struct{}),
		manifests: make(map[uint64]string),
	}
	c.lifeboat = lb
	return lb
}

func (lb *Lifeboat) retain(sets []*ClipSet) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	for _, s := range sets {
		if _, ok := lb.sets[s]; ok {
			continue
		}
		lb.sets[s] = struct{}{}
		if s.GeneratedManifest {
			lb.manifests[manifestKey(s.PrimPath, s.Name, s.ClipPrimPath, s.AssetPaths)] = s.ManifestID
		}
	}
}

func (lb *Lifeboat) manifest(key uint64) (string, bool) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	id, ok := lb.manifests[key]
	return id, ok
}

// ForgetManifestsUsing withholds the generated manifests of retained sets
// that read any of identifiers, so repopulation generates fresh ones from
// the changed clip layers.
func (lb *Lifeboat) ForgetManifestsUsing(identifiers []string) {
	if len(identifiers) == 0 {
		return
	}

	lb.mu.Lock()
	defer lb.mu.Unlock()

	for s := range lb.sets {
		if !s.GeneratedManifest {
			continue
		}
		if slices.ContainsFunc(lb.cache.env.layerIdentifiers(s), func(id string) bool {
			return slices.Contains(identifiers, id)
		}) {
			delete(lb.manifests, manifestKey(s.PrimPath, s.Name, s.ClipPrimPath, s.AssetPaths))
		}
	}
}

// Len returns the number of retained clip sets.
func (lb *Lifeboat) Len() int {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return len(lb.sets)
}

// Release drops everything retained and detaches the lifeboat from its
// cache.
func (lb *Lifeboat) Release() {
	lb.mu.Lock()
	clear(lb.sets)
	clear(lb.manifests)
	lb.mu.Unlock()

	if lb.cache.lifeboat == lb {
		lb.cache.lifeboat = nil
	}
}

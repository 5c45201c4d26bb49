// Package stagecache shares built stages between callers and makes sure
// each distinct stage is built once even under concurrent requests.
package stagecache

import (
	"context"
	"sync"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Builder manufactures the stage for a key.
type Builder[S any] func(ctx context.Context) (S, error)

// Cache maps stage keys to built stages.
type Cache[S any] struct {
	mu      sync.Mutex
	stages  map[domain.StageKey]S
	pending map[domain.StageKey]int

	group singleflight.Group
}

// New returns an empty cache.
func New[S any]() *Cache[S] {
	return &Cache[S]{
		stages:  make(map[domain.StageKey]S),
		pending: make(map[domain.StageKey]int),
	}
}

func flightKey(k domain.StageKey) string {
	return k.Root + "\x00" + k.Session + "\x00" + k.Context
}

// FindOrCreate returns the stage cached for key, building it with build
// when absent. Concurrent callers for the same key wait for a single build
// and all receive its result. A failed build is not cached.
//
// The build runs detached from ctx. ctx only bounds how long this caller
// waits.
func (c *Cache[S]) FindOrCreate(ctx context.Context, key domain.StageKey, build Builder[S]) (S, error) {
	if s, ok := c.Find(key); ok {
		return s, nil
	}

	ch := c.group.DoChan(flightKey(key), func() (any, error) {
		if s, ok := c.Find(key); ok {
			return s, nil
		}

		c.track(key, 1)
		defer c.track(key, -1)

		s, err := build(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.Insert(key, s)
		return s, nil
	})

	var zero S
	select {
	case <-ctx.Done():
		return zero, zerr.With(zerr.Wrap(ctx.Err(), "stage request abandoned"), "stage", key.String())
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(S), nil //nolint:forcetypeassert // Only stages are returned by the group
	}
}

func (c *Cache[S]) track(key domain.StageKey, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[key] += delta
	if c.pending[key] <= 0 {
		delete(c.pending, key)
	}
}

// Insert caches s under key, replacing any previous stage.
func (c *Cache[S]) Insert(key domain.StageKey, s S) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stages[key] = s
}

// Find returns the stage cached under key.
func (c *Cache[S]) Find(key domain.StageKey) (S, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.stages[key]
	return s, ok
}

// Erase removes the stage cached under key and reports whether one existed.
func (c *Cache[S]) Erase(key domain.StageKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.stages[key]
	delete(c.stages, key)
	return ok
}

// Size returns the number of cached stages.
func (c *Cache[S]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.stages)
}

// Clear drops every cached stage. Builds in flight still complete and are
// inserted.
func (c *Cache[S]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.stages)
}

// Pending returns the number of builds in flight.
func (c *Cache[S]) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Package memlayer implements an in-memory layer holding field data and
// time samples for scene paths.
package memlayer

import (
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
)

var anonymousCounter atomic.Uint64

type spec struct {
	fields  map[string]domain.Value
	times   []float64
	samples map[float64]domain.Value
}

// Layer is a concurrency-safe in-memory ports.Layer.
type Layer struct {
	id        string
	anonymous bool

	mu    sync.RWMutex
	specs map[domain.Path]*spec
}

var _ ports.Layer = (*Layer)(nil)

// New creates an empty layer with the given identifier.
func New(identifier string) *Layer {
	return &Layer{
		id:    identifier,
		specs: make(map[domain.Path]*spec),
	}
}

// NewAnonymous creates an empty layer with a unique anonymous identifier
// containing tag.
func NewAnonymous(tag string) *Layer {
	n := anonymousCounter.Add(1)
	l := New(domain.AnonymousLayerPrefix + strconv.FormatUint(n, 10) + ":" + tag)
	l.anonymous = true
	return l
}

// Identifier returns the layer identifier.
func (l *Layer) Identifier() string { return l.id }

// IsAnonymous reports whether the layer was created in memory.
func (l *Layer) IsAnonymous() bool { return l.anonymous }

// CreateSpec authors an empty spec at path. Existing specs are kept.
func (l *Layer) CreateSpec(path domain.Path) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.specAt(path)
}

// specAt returns the spec at path, creating it. Callers hold the write lock.
func (l *Layer) specAt(path domain.Path) *spec {
	s, ok := l.specs[path]
	if !ok {
		s = &spec{fields: make(map[string]domain.Value)}
		l.specs[path] = s
	}
	return s
}

// HasSpec reports whether anything is authored at path.
func (l *Layer) HasSpec(path domain.Path) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.specs[path]
	return ok
}

// Paths returns every authored path in sorted order.
func (l *Layer) Paths() []domain.Path {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Path, 0, len(l.specs))
	for p := range l.specs {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b domain.Path) int {
		return strings.Compare(a.String(), b.String())
	})
	return out
}

// Field returns the value of field at path.
func (l *Layer) Field(path domain.Path, field string) (domain.Value, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.specs[path]
	if !ok {
		return domain.Value{}, false
	}
	v, ok := s.fields[field]
	return v, ok
}

// FieldDictKey returns the entry at keyPath inside a dictionary field.
func (l *Layer) FieldDictKey(path domain.Path, field, keyPath string) (domain.Value, bool) {
	v, ok := l.Field(path, field)
	if !ok {
		return domain.Value{}, false
	}
	d, ok := v.AsDictionary()
	if !ok {
		return domain.Value{}, false
	}
	return d.Lookup(keyPath)
}

// SetField authors field at path.
func (l *Layer) SetField(path domain.Path, field string, value domain.Value) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.specAt(path).fields[field] = value
}

// EraseField removes field at path.
func (l *Layer) EraseField(path domain.Path, field string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.specs[path]; ok {
		delete(s.fields, field)
	}
}

// SetTimeSample authors a sample at t.
func (l *Layer) SetTimeSample(path domain.Path, t float64, value domain.Value) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.specAt(path)
	if s.samples == nil {
		s.samples = make(map[float64]domain.Value)
	}
	if _, exists := s.samples[t]; !exists {
		i, _ := slices.BinarySearch(s.times, t)
		s.times = slices.Insert(s.times, i, t)
	}
	s.samples[t] = value
}

// ListTimeSamples returns the sorted sample times at path.
func (l *Layer) ListTimeSamples(path domain.Path) []float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.specs[path]
	if !ok {
		return nil
	}
	return slices.Clone(s.times)
}

// NumTimeSamples returns the number of samples at path.
func (l *Layer) NumTimeSamples(path domain.Path) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.specs[path]
	if !ok {
		return 0
	}
	return len(s.times)
}

// BracketingTimeSamples returns the samples surrounding t. Times before the
// first sample bracket to the first, times after the last to the last, and
// an exact hit brackets to itself.
func (l *Layer) BracketingTimeSamples(path domain.Path, t float64) (lower, upper float64, ok bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, exists := l.specs[path]
	if !exists || len(s.times) == 0 {
		return 0, 0, false
	}
	lower, upper = Bracket(s.times, t)
	return lower, upper, true
}

// Bracket brackets t inside the sorted, non-empty times.
func Bracket(times []float64, t float64) (lower, upper float64) {
	first, last := times[0], times[len(times)-1]
	switch {
	case t <= first:
		return first, first
	case t >= last:
		return last, last
	}
	i, found := slices.BinarySearch(times, t)
	if found {
		return t, t
	}
	return times[i-1], times[i]
}

// QueryTimeSample returns the sample authored exactly at t.
func (l *Layer) QueryTimeSample(path domain.Path, t float64) (domain.Value, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.specs[path]
	if !ok || s.samples == nil {
		return domain.Value{}, false
	}
	v, ok := s.samples[t]
	return v, ok
}

// PropertyAtPath returns the property spec at path, if authored.
func (l *Layer) PropertyAtPath(path domain.Path) (ports.PropertySpec, bool) {
	if !path.IsPropertyPath() || !l.HasSpec(path) {
		return ports.PropertySpec{}, false
	}
	return ports.PropertySpec{Layer: l, Path: path}, true
}

// Replace swaps the contents of l for those of src. The identifier of l is
// kept, so every holder of l observes the new contents.
func (l *Layer) Replace(src *Layer) {
	if src == l {
		return
	}
	src.mu.RLock()
	specs := make(map[domain.Path]*spec, len(src.specs))
	for p, s := range src.specs {
		specs[p] = s.clone()
	}
	src.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.specs = specs
}

func (s *spec) clone() *spec {
	return &spec{
		fields:  maps.Clone(s.fields),
		times:   slices.Clone(s.times),
		samples: maps.Clone(s.samples),
	}
}

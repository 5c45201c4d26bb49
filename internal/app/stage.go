package app

import (
	"context"
	"sync"

	"go.trai.ch/strata/internal/adapters/scene"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/clips"
	"go.trai.ch/strata/internal/engine/resolve"
	"go.trai.ch/zerr"
)

// Stage is one composed stage with its populated clip cache. Queries may run
// concurrently with each other but not with a reload.
type Stage struct {
	path string
	desc *domain.StageDescription

	mu       sync.RWMutex
	composer *scene.Composer
	clips    *clips.Cache
	engine   *resolve.Engine
	tracer   ports.Tracer
}

// Key returns the stage cache key.
func (s *Stage) Key() domain.StageKey { return s.desc.Key() }

// Path returns the stage file the stage was built from.
func (s *Stage) Path() string { return s.path }

// Description returns the loaded stage file.
func (s *Stage) Description() *domain.StageDescription { return s.desc }

// Prims returns every composed prim path.
func (s *Stage) Prims() []domain.Path {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.composer.Prims()
}

// ClipSets returns the clip sets that apply to the prim at path, strongest
// first.
func (s *Stage) ClipSets(path domain.Path) []*clips.ClipSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clips.GetClipsForPrim(path)
}

// object resolves a prim or property path against the composed stage.
// Callers hold mu.
func (s *Stage) object(path domain.Path) (resolve.Object, error) {
	if path.IsEmpty() {
		return resolve.Object{}, zerr.With(domain.ErrInvalidPath, "path", path.String())
	}
	idx, ok := s.composer.PrimIndex(path.PrimPath())
	if !ok {
		return resolve.Object{}, zerr.With(domain.ErrPrimNotFound, "prim", path.PrimPath().String())
	}
	if !path.IsPropertyPath() {
		return resolve.Prim(idx), nil
	}
	return resolve.Attr(idx, path.Name()), nil
}

// query runs fn against the object at path under a read lock and a span.
func query[T any](ctx context.Context, s *Stage, op string, path domain.Path, fn func(obj resolve.Object) (T, error)) (T, error) {
	_, span := s.tracer.Start(ctx, "resolve."+op, ports.WithAttribute("path", path.String()))
	defer span.End()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero T
	obj, err := s.object(path)
	if err != nil {
		span.RecordError(err)
		return zero, err
	}
	out, err := fn(obj)
	if err != nil {
		span.RecordError(err)
	}
	return out, err
}

// Resolved is the answer to a value query.
type Resolved struct {
	Value domain.Value
	// Found is false when no opinion or fallback supplies a value.
	Found bool
	Info  *resolve.Info
}

// Value resolves the attribute at path at time t.
func (s *Stage) Value(ctx context.Context, path domain.Path, t domain.TimeCode) (Resolved, error) {
	return query(ctx, s, "value", path, func(obj resolve.Object) (Resolved, error) {
		if obj.Name == "" {
			return Resolved{}, zerr.With(domain.ErrUnknownObject, "path", path.String())
		}
		v, ok := s.engine.GetValue(obj, t)
		return Resolved{Value: v, Found: ok, Info: s.engine.GetResolveInfoAt(obj, t)}, nil
	})
}

// Info reports which source answers the attribute at path. A default time
// reports the source without choosing a clip.
func (s *Stage) Info(ctx context.Context, path domain.Path, t domain.TimeCode) (*resolve.Info, error) {
	return query(ctx, s, "info", path, func(obj resolve.Object) (*resolve.Info, error) {
		if t.IsDefault() {
			return s.engine.GetResolveInfo(obj), nil
		}
		return s.engine.GetResolveInfoAt(obj, t), nil
	})
}

// Samples summarizes the time samples of an attribute.
type Samples struct {
	Times   []float64
	Varying bool
	// Bracket is set when a time was given.
	Bracket *Bracket
}

// Bracket holds the samples surrounding a queried time.
type Bracket struct {
	Time       float64
	Lower      float64
	Upper      float64
	HasSamples bool
}

// Samples lists the stage times at which the attribute at path has samples
// within interval, and brackets at when it is not the default time.
func (s *Stage) Samples(ctx context.Context, path domain.Path, interval domain.Interval, at domain.TimeCode) (Samples, error) {
	return query(ctx, s, "samples", path, func(obj resolve.Object) (Samples, error) {
		out := Samples{
			Times:   s.engine.GetTimeSamplesInInterval(obj, interval),
			Varying: s.engine.ValueMightBeTimeVarying(obj),
		}
		if !at.IsDefault() {
			lo, hi, has, ok := s.engine.GetBracketingTimeSamples(obj, at.Value())
			if ok {
				out.Bracket = &Bracket{Time: at.Value(), Lower: lo, Upper: hi, HasSamples: has}
			}
		}
		return out, nil
	})
}

// SampleMap returns the strongest authored samples of the attribute at path
// retimed to stage time.
func (s *Stage) SampleMap(ctx context.Context, path domain.Path) ([]resolve.Sample, error) {
	return query(ctx, s, "samplemap", path, func(obj resolve.Object) ([]resolve.Sample, error) {
		return s.engine.GetTimeSampleMap(obj), nil
	})
}

// Metadata composes field on the object at path. keyPath selects an entry
// of a dictionary field.
func (s *Stage) Metadata(ctx context.Context, path domain.Path, field, keyPath string) (domain.Value, bool, error) {
	type result struct {
		v  domain.Value
		ok bool
	}
	r, err := query(ctx, s, "metadata", path, func(obj resolve.Object) (result, error) {
		var r result
		if keyPath != "" {
			r.v, r.ok = s.engine.GetDictionaryMetadata(obj, field, keyPath)
		} else {
			r.v, r.ok = s.engine.GetMetadata(obj, field)
		}
		return r, nil
	})
	return r.v, r.ok, err
}

// ListOp composes the list-op field on the object at path into one list.
func (s *Stage) ListOp(ctx context.Context, path domain.Path, field string) ([]string, bool, error) {
	type result struct {
		items []string
		ok    bool
	}
	r, err := query(ctx, s, "listop", path, func(obj resolve.Object) (result, error) {
		items, ok := s.engine.GetListOpMetadata(obj, field)
		return result{items: items, ok: ok}, nil
	})
	return r.items, r.ok, err
}

// Specifier composes the specifier of the prim at path.
func (s *Stage) Specifier(ctx context.Context, path domain.Path) (domain.Specifier, bool, error) {
	type result struct {
		spec domain.Specifier
		ok   bool
	}
	r, err := query(ctx, s, "specifier", path, func(obj resolve.Object) (result, error) {
		spec, ok := s.engine.GetSpecifier(obj.Prim)
		return result{spec: spec, ok: ok}, nil
	})
	return r.spec, r.ok, err
}

// PropertyStack lists the specs contributing to the attribute at path,
// strongest first.
func (s *Stage) PropertyStack(ctx context.Context, path domain.Path, t domain.TimeCode) ([]ports.PropertySpec, error) {
	return query(ctx, s, "stack", path, func(obj resolve.Object) ([]ports.PropertySpec, error) {
		return s.engine.GetPropertyStack(obj, t), nil
	})
}

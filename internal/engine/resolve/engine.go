// Package resolve answers value, time-sample and metadata queries against a
// composed stage by walking each prim's composition sites strongest first.
package resolve

import (
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/clips"
	"go.trai.ch/strata/internal/engine/diag"
	"go.trai.ch/strata/internal/engine/interp"
	"go.trai.ch/zerr"
)

// Config holds the collaborators of an Engine. Only Resolver is required.
type Config struct {
	Fallbacks     ports.FallbackRegistry
	Resolver      ports.AssetResolver
	Clips         *clips.Cache
	Logger        ports.Logger
	Interpolation domain.InterpolationType
}

// Engine resolves values for one stage. It is safe for concurrent use once
// clip population has finished.
type Engine struct {
	cfg    Config
	report *diag.Reporter
	interp interp.Interpolator
}

// New creates an Engine.
func New(cfg Config) *Engine {
	return &Engine{
		cfg:    cfg,
		report: diag.New(cfg.Logger),
		interp: interp.For(cfg.Interpolation),
	}
}

// Interpolation returns the interpolation type values are resolved with.
func (e *Engine) Interpolation() domain.InterpolationType {
	return e.cfg.Interpolation
}

// query selects which time the walk resolves at.
type query struct {
	// timed is false for Default time and for time-independent queries.
	timed bool
	t     float64
	clips bool
}

func untimed() query { return query{clips: true} }

func at(t domain.TimeCode) query {
	if t.IsDefault() {
		return query{}
	}
	return query{timed: true, t: t.Value(), clips: true}
}

// site is one node of a prim index together with the path of the queried
// object inside the node's layer stack.
type site struct {
	node  ports.Node
	stack ports.LayerStack
	path  domain.Path
}

type visitor interface {
	// layer is called for every layer of every site. Returning true stops
	// the walk.
	layer(s site, index int, layer ports.Layer) bool
	// clip is called for every clip of the sets authored at s in the layer
	// at index, right after that layer.
	clip(s site, index int, set *clips.ClipSet, c *clips.Clip) bool
}

// walk visits the sites of obj strongest first.
func (e *Engine) walk(obj Object, useClips bool, v visitor) {
	var sets []*clips.ClipSet
	if useClips && e.cfg.Clips != nil {
		sets = e.cfg.Clips.GetClipsForPrim(obj.Prim.Path())
	}

	for _, node := range obj.Prim.Nodes() {
		if len(sets) == 0 && !node.HasSpecs() {
			continue
		}

		s := site{node: node, stack: node.LayerStack(), path: obj.pathIn(node.Path())}

		var applying []*clips.ClipSet
		for _, set := range sets {
			if set.Source.Stack == s.stack && node.Path().HasPrefix(set.Source.PrimPath) && set.MayHaveSamples(s.path) {
				applying = append(applying, set)
			}
		}

		for i, layer := range s.stack.Layers() {
			if v.layer(s, i, layer) {
				return
			}
			for _, set := range applying {
				if set.Source.LayerIndex != i {
					continue
				}
				for _, c := range set.Clips {
					if v.clip(s, i, set, c) {
						return
					}
				}
			}
		}
	}
}

// valid reports whether obj and t can be queried, reporting the first
// violation seen for op.
func (e *Engine) valid(op string, obj Object, t domain.TimeCode) bool {
	if obj.Prim == nil || !obj.Prim.Path().IsAbsolutePrimPath() {
		e.report.Once("resolve."+op+".path", zerr.With(domain.ErrInvalidPath, "object", obj.String()))
		return false
	}
	if !t.IsValid() {
		e.report.Once("resolve."+op+".time", zerr.With(zerr.With(domain.ErrInvalidTime, "object", obj.String()), "time", t.String()))
		return false
	}
	return true
}

// GetResolveInfo reports which source would supply values for obj at any
// time. Clip sources are reported as IsTimeDependent.
func (e *Engine) GetResolveInfo(obj Object) *Info {
	if !e.valid("info", obj, domain.DefaultTime()) {
		return &Info{}
	}
	return e.resolveInfo(obj, untimed())
}

// GetResolveInfoAt reports which source supplies the value of obj at t.
// Clips are not consulted at Default time.
func (e *Engine) GetResolveInfoAt(obj Object, t domain.TimeCode) *Info {
	if !e.valid("info", obj, t) {
		return &Info{}
	}
	return e.resolveInfo(obj, at(t))
}

func (e *Engine) resolveInfo(obj Object, q query) *Info {
	v := &infoVisitor{q: q, info: &Info{}}
	e.walk(obj, q.clips, v)

	info := v.info
	if info.Source != domain.SourceNone {
		return info
	}

	if fb, ok := e.fallback(obj, domain.FieldDefault); ok {
		info.Source = domain.SourceFallback
		info.value = fb
	}
	return info
}

func (e *Engine) fallback(obj Object, field string) (domain.Value, bool) {
	if e.cfg.Fallbacks == nil {
		return domain.Value{}, false
	}
	return e.cfg.Fallbacks.Fallback(obj.Prim.TypeName(), obj.Name, field)
}

type infoVisitor struct {
	q    query
	info *Info
}

func (v *infoVisitor) found(s site, index int, src domain.Source) {
	v.info.Source = src
	v.info.Node = s.node
	v.info.LayerStack = s.stack
	v.info.LayerIndex = index
	v.info.PrimPathInLayerStack = s.node.Path()
}

func (v *infoVisitor) layer(s site, index int, layer ports.Layer) bool {
	if v.q.timed {
		local := layerToStage(s.node, index).Inverse().Apply(v.q.t)
		if lower, upper, ok := layer.BracketingTimeSamples(s.path, local); ok {
			v.found(s, index, domain.SourceTimeSamples)
			v.info.Lower, v.info.Upper = lower, upper
			return true
		}
	} else if layer.NumTimeSamples(s.path) > 0 {
		v.found(s, index, domain.SourceTimeSamples)
		return true
	}

	def, ok := layer.Field(s.path, domain.FieldDefault)
	if !ok {
		return false
	}
	if def.IsBlock() {
		v.info.ValueIsBlocked = true
		return true
	}
	v.found(s, index, domain.SourceDefault)
	v.info.value = def
	return true
}

func (v *infoVisitor) clip(s site, index int, set *clips.ClipSet, c *clips.Clip) bool {
	if v.q.timed && !c.IsActive(v.q.t) {
		return false
	}
	if !c.HasAuthoredTimeSamples(s.path) {
		return false
	}

	if !v.q.timed {
		v.found(s, index, domain.SourceIsTimeDependent)
	} else {
		lower, upper, ok := c.BracketingTimeSamples(s.path, v.q.t)
		if !ok {
			return false
		}
		v.found(s, index, domain.SourceValueClips)
		v.info.Lower, v.info.Upper = lower, upper
	}
	v.info.Clip = c
	v.info.ClipSet = set
	return true
}

// GetValue resolves the value of obj at t. At Default time the strongest
// authored default wins.
func (e *Engine) GetValue(obj Object, t domain.TimeCode) (domain.Value, bool) {
	if !e.valid("value", obj, t) {
		return domain.Value{}, false
	}
	if t.IsDefault() {
		return e.GetMetadata(obj, domain.FieldDefault)
	}
	return e.valueFromInfo(obj, e.resolveInfo(obj, at(t)), t.Value())
}

func (e *Engine) valueFromInfo(obj Object, info *Info, t float64) (domain.Value, bool) {
	switch info.Source {
	case domain.SourceTimeSamples:
		layer, ok := info.Layer()
		if !ok {
			return domain.Value{}, false
		}
		offset := info.LayerToStageOffset()
		path := obj.pathIn(info.PrimPathInLayerStack)
		v, ok := interp.GetOrInterpolate(layer, path, offset.Inverse().Apply(t), info.Lower, info.Upper, e.interp)
		if !ok {
			return domain.Value{}, false
		}
		return e.fixup(layer.Identifier(), info.LayerStack, &offset).apply(v), true

	case domain.SourceDefault:
		layer, ok := info.Layer()
		if !ok {
			return domain.Value{}, false
		}
		offset := info.LayerToStageOffset()
		return e.fixup(layer.Identifier(), info.LayerStack, &offset).apply(info.value), true

	case domain.SourceValueClips:
		path := obj.pathIn(info.PrimPathInLayerStack)
		v, ok := interp.GetOrInterpolate(info.Clip.Sampler(e.interp), path, t, info.Lower, info.Upper, e.interp)
		if !ok {
			return domain.Value{}, false
		}
		return e.fixup(info.Clip.Layer().Identifier(), info.LayerStack, nil).apply(v), true

	case domain.SourceFallback:
		return info.value, true

	default:
		return domain.Value{}, false
	}
}

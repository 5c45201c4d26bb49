package resolve

import (
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/clips"
)

// GetPropertyStack returns every property spec contributing to obj,
// strongest first. At a numeric time the clip layers with samples for obj
// at that time are included.
func (e *Engine) GetPropertyStack(obj Object, t domain.TimeCode) []ports.PropertySpec {
	if !e.valid("stack", obj, t) {
		return nil
	}
	v := &stackVisitor{q: at(t)}
	e.walk(obj, v.q.clips, v)
	return v.specs
}

type stackVisitor struct {
	q     query
	specs []ports.PropertySpec
}

func (v *stackVisitor) layer(s site, _ int, layer ports.Layer) bool {
	if spec, ok := layer.PropertyAtPath(s.path); ok {
		v.specs = append(v.specs, spec)
	}
	return false
}

func (v *stackVisitor) clip(s site, _ int, _ *clips.ClipSet, c *clips.Clip) bool {
	if v.q.timed && !c.IsActive(v.q.t) {
		return false
	}
	if !c.HasAuthoredTimeSamples(s.path) {
		return false
	}
	if spec, ok := c.PropertyAtPath(s.path); ok {
		v.specs = append(v.specs, spec)
	}
	return false
}

// opinionVisitor collects authored values of one field, strongest first.
type opinionVisitor struct {
	e     *Engine
	field string
	// keyPath selects an entry inside a dictionary-valued field.
	keyPath string
	// each receives every opinion after post-resolution and returns true to
	// stop.
	each func(v domain.Value) bool
}

func (v *opinionVisitor) layer(s site, index int, layer ports.Layer) bool {
	var (
		val domain.Value
		ok  bool
	)
	if v.keyPath != "" {
		val, ok = layer.FieldDictKey(s.path, v.field, v.keyPath)
	} else {
		val, ok = layer.Field(s.path, v.field)
	}
	if !ok {
		return false
	}
	offset := layerToStage(s.node, index)
	return v.each(v.e.fixup(layer.Identifier(), s.stack, &offset).apply(val))
}

func (*opinionVisitor) clip(site, int, *clips.ClipSet, *clips.Clip) bool { return false }

// GetMetadata returns the composed value of field on obj. Dictionary values
// are merged across every opinion, filling gaps left by stronger ones, with
// the schema fallback merged last. Other values come from the strongest
// opinion, or the fallback.
func (e *Engine) GetMetadata(obj Object, field string) (domain.Value, bool) {
	if !e.valid("metadata", obj, domain.DefaultTime()) {
		return domain.Value{}, false
	}
	return e.composeField(obj, field, "")
}

// GetDictionaryMetadata returns the entry at keyPath, a colon-delimited key
// path, inside the dictionary-valued field of obj.
func (e *Engine) GetDictionaryMetadata(obj Object, field, keyPath string) (domain.Value, bool) {
	if !e.valid("metadata", obj, domain.DefaultTime()) {
		return domain.Value{}, false
	}
	return e.composeField(obj, field, keyPath)
}

func (e *Engine) composeField(obj Object, field, keyPath string) (domain.Value, bool) {
	var (
		result  domain.Value
		found   bool
		blocked bool
		isDict  bool
		merged  domain.Dictionary
	)
	mergeable := field != domain.FieldDefault

	e.walk(obj, false, &opinionVisitor{e: e, field: field, keyPath: keyPath, each: func(v domain.Value) bool {
		if !found {
			found = true
			if v.IsBlock() {
				blocked = true
				return true
			}
			result = v
			d, ok := v.AsDictionary()
			if !ok || !mergeable {
				return true
			}
			isDict, merged = true, d
			return false
		}
		if d, ok := v.AsDictionary(); ok {
			merged = domain.OverRecursive(merged, d)
		}
		return false
	}})

	if blocked {
		return domain.Value{}, false
	}

	fb, hasFallback := e.fallback(obj, field)
	if hasFallback && keyPath != "" {
		d, ok := fb.AsDictionary()
		if !ok {
			hasFallback = false
		} else {
			fb, hasFallback = d.Lookup(keyPath)
		}
	}

	switch {
	case !found:
		return fb, hasFallback
	case !isDict:
		return result, true
	}

	if hasFallback {
		if d, ok := fb.AsDictionary(); ok {
			merged = domain.OverRecursive(merged, d)
		}
	}
	return domain.Dict(merged), true
}

// Sample is one authored time sample retimed to stage time.
type Sample struct {
	Time  float64
	Value domain.Value
}

// GetTimeSampleMap returns the samples of the strongest layer authoring
// samples for obj, retimed to stage time.
func (e *Engine) GetTimeSampleMap(obj Object) []Sample {
	if !e.valid("samplemap", obj, domain.DefaultTime()) {
		return nil
	}

	var out []Sample
	e.walk(obj, false, &sampleMapVisitor{e: e, out: &out})
	return out
}

type sampleMapVisitor struct {
	e   *Engine
	out *[]Sample
}

func (v *sampleMapVisitor) layer(s site, index int, layer ports.Layer) bool {
	times := layer.ListTimeSamples(s.path)
	if len(times) == 0 {
		return false
	}
	offset := layerToStage(s.node, index)
	f := v.e.fixup(layer.Identifier(), s.stack, &offset)
	for _, t := range times {
		val, _ := layer.QueryTimeSample(s.path, t)
		*v.out = append(*v.out, Sample{Time: offset.Apply(t), Value: f.apply(val)})
	}
	if offset.Scale < 0 {
		for i, j := 0, len(*v.out)-1; i < j; i, j = i+1, j-1 {
			(*v.out)[i], (*v.out)[j] = (*v.out)[j], (*v.out)[i]
		}
	}
	return true
}

func (*sampleMapVisitor) clip(site, int, *clips.ClipSet, *clips.Clip) bool { return false }

// GetListOpMetadata composes the list-op-valued field of obj into a single
// list. Opinions are gathered strongest first until an explicit one, then
// applied weakest first. The schema fallback is the weakest opinion.
func (e *Engine) GetListOpMetadata(obj Object, field string) ([]string, bool) {
	if !e.valid("listop", obj, domain.DefaultTime()) {
		return nil, false
	}

	var (
		ops      []domain.ListOp
		explicit bool
	)
	e.walk(obj, false, &opinionVisitor{e: e, field: field, each: func(v domain.Value) bool {
		op, ok := v.AsListOp()
		if !ok {
			return false
		}
		ops = append(ops, op)
		explicit = op.Explicit
		return explicit
	}})

	if !explicit {
		if fb, ok := e.fallback(obj, field); ok {
			if op, ok := fb.AsListOp(); ok {
				ops = append(ops, op)
			}
		}
	}
	if len(ops) == 0 {
		return nil, false
	}

	var items []string
	for i := len(ops) - 1; i >= 0; i-- {
		items = ops[i].ApplyOperations(items)
	}
	return items, true
}

type specifierRank uint8

const (
	rankNonDefining specifierRank = iota
	rankDirectlyInheritedClass
	rankDefining
)

// GetSpecifier composes the specifier of prim. A defining opinion wins over
// a class reached through a direct inherit arc, which wins over an over.
// ok is false when no layer authors a specifier for prim.
func (e *Engine) GetSpecifier(prim ports.PrimIndex) (domain.Specifier, bool) {
	if !e.valid("specifier", Prim(prim), domain.DefaultTime()) {
		return domain.SpecifierOver, false
	}

	var (
		best  = rankNonDefining
		spec  = domain.SpecifierOver
		found bool
	)
	for _, node := range prim.Nodes() {
		if !node.HasSpecs() {
			continue
		}
		for _, layer := range node.LayerStack().Layers() {
			v, ok := layer.Field(node.Path(), domain.FieldSpecifier)
			if !ok {
				continue
			}
			s, ok := v.AsSpecifier()
			if !ok {
				continue
			}

			r := rank(s, node)
			if !found || r > best {
				best, spec = r, s
			}
			found = true
			if r == rankDefining {
				return spec, true
			}
		}
	}
	return spec, found
}

func rank(s domain.Specifier, node ports.Node) specifierRank {
	switch {
	case !s.IsDefining():
		return rankNonDefining
	case s == domain.SpecifierClass && directlyInherited(node):
		return rankDirectlyInheritedClass
	default:
		return rankDefining
	}
}

// directlyInherited reports whether node was reached through an inherit arc
// authored on the prim itself rather than an ancestor.
func directlyInherited(node ports.Node) bool {
	for n := node; n != nil; n = n.Parent() {
		if n.Arc() == domain.ArcInherit && !n.IsDueToAncestor() {
			return true
		}
	}
	return false
}

package clips

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/diag"
	"go.trai.ch/zerr"
)

// Definition is the composed clip metadata of one clip set on a prim,
// anchored at the strongest site that declares its asset paths.
type Definition struct {
	Name   string
	Source Source
	// AssetPaths is nil when no asset paths were authored or derived.
	AssetPaths        []string
	PrimPath          string
	Active            [][2]float64
	Times             [][2]float64
	ManifestAssetPath string
}

type anchor struct {
	source Source
	node   int
	order  int
	offset domain.LayerOffset
}

type composedSet struct {
	anchor *anchor
	info   domain.Dictionary
}

// ComputeDefinitions composes the clip sets authored on idx, strongest
// first.
func ComputeDefinitions(idx ports.PrimIndex, resolver ports.AssetResolver, report *diag.Reporter) []Definition {
	composed := make(map[string]*composedSet)

	for n, node := range idx.Nodes() {
		for name, set := range setsInNode(idx.Path(), n, node, report) {
			c, ok := composed[name]
			if !ok {
				c = &composedSet{}
				composed[name] = c
			}
			if c.anchor == nil {
				c.anchor = set.anchor
			}
			c.info = domain.OverRecursive(c.info, set.info)
		}
	}

	names := make([]string, 0, len(composed))
	for name, set := range composed {
		if set.anchor != nil {
			names = append(names, name)
		}
	}
	slices.SortFunc(names, func(a, b string) int {
		x, y := composed[a].anchor, composed[b].anchor
		if c := cmp.Compare(x.node, y.node); c != 0 {
			return c
		}
		return cmp.Compare(x.order, y.order)
	})

	defs := make([]Definition, 0, len(names))
	for _, name := range names {
		defs = append(defs, definition(idx.Path(), name, composed[name], resolver, report))
	}
	return defs
}

// setsInNode composes the clip sets authored across the layers of one
// node, weakest layer first.
func setsInNode(prim domain.Path, n int, node ports.Node, report *diag.Reporter) map[string]*composedSet {
	stack := node.LayerStack()
	layers := stack.Layers()
	path := node.Path()

	weakest := -1
	for i := len(layers) - 1; i >= 0; i-- {
		if _, ok := layers[i].Field(path, domain.FieldClips); ok {
			weakest = i
			break
		}
	}
	if weakest < 0 {
		return nil
	}

	sets := make(map[string]*composedSet)
	var added []string

	for i := weakest; i >= 0; i-- {
		layer := layers[i]
		site := "@" + layer.Identifier() + "@<" + path.String() + ">"

		if v, ok := layer.Field(path, domain.FieldClips); ok {
			clips, isDict := v.AsDictionary()
			if !isDict {
				report.Warn("Expected dictionary for 'clips' on prim <" + prim.String() + "> at spec " + site)
			}

			var inLayer []string
			for _, name := range clips.Keys() {
				if name == "" {
					report.Warn("Invalid unnamed clip set for prim <" + prim.String() + "> in 'clips' dictionary on spec " + site)
					continue
				}
				info, ok := clips[name].AsDictionary()
				if !ok {
					report.Warn("Expected dictionary for entry '" + name + "' for prim <" + prim.String() +
						"> in 'clips' dictionary on spec " + site)
					continue
				}

				set, ok := sets[name]
				if !ok {
					set = &composedSet{}
					sets[name] = set
				}

				offset := offsetToRoot(node, i)
				if declaresAssets(info) {
					set.anchor = &anchor{
						source: Source{Stack: stack, PrimPath: path, LayerIndex: i},
						node:   n,
						offset: offset,
					}
				}
				shiftExternalTimes(info, domain.ClipKeyActive, offset)
				shiftExternalTimes(info, domain.ClipKeyTimes, offset)

				set.info = domain.OverRecursive(info, set.info)
				inLayer = append(inLayer, name)
			}

			added = domain.ListOp{Added: inLayer}.ApplyOperations(added)
		}

		if v, ok := layer.Field(path, domain.FieldClipSets); ok {
			if op, isOp := v.AsListOp(); isOp {
				added = op.ApplyOperations(added)
			} else {
				report.Warn("Expected list op for 'clipSets' on prim <" + prim.String() + "> at spec " + site)
			}
		}
	}

	for name, set := range sets {
		order := slices.Index(added, name)
		if order < 0 {
			delete(sets, name)
			continue
		}
		if set.anchor != nil {
			set.anchor.order = order
		}
	}
	return sets
}

func declaresAssets(info domain.Dictionary) bool {
	if v, ok := info[domain.ClipKeyAssetPaths]; ok && v.Kind() == domain.KindArray && v.ElemKind() == domain.KindAssetPath {
		return true
	}
	v, ok := info[domain.ClipKeyTemplateAssetPath]
	if !ok {
		return false
	}
	_, isString := v.AsString()
	return isString
}

// offsetToRoot maps times in layer i of node to the root of the stage.
func offsetToRoot(node ports.Node, i int) domain.LayerOffset {
	return node.MapToRootOffset().Compose(node.LayerStack().LayerOffset(i))
}

func shiftExternalTimes(info domain.Dictionary, key string, offset domain.LayerOffset) {
	if offset.IsIdentity() {
		return
	}
	pairs, ok := vec2s(info[key])
	if !ok {
		return
	}
	info[key] = vec2Value(applyOffset(pairs, offset))
}

func applyOffset(pairs [][2]float64, offset domain.LayerOffset) [][2]float64 {
	if offset.IsIdentity() {
		return pairs
	}
	out := make([][2]float64, len(pairs))
	for i, p := range pairs {
		out[i] = [2]float64{offset.Apply(p[0]), p[1]}
	}
	return out
}

func vec2s(v domain.Value) ([][2]float64, bool) {
	if v.Kind() != domain.KindArray || v.ElemKind() != domain.KindVec {
		return nil, false
	}
	elems := v.Elems()
	out := make([][2]float64, 0, len(elems))
	for _, e := range elems {
		comps, _ := e.AsVec()
		if len(comps) != 2 {
			return nil, false
		}
		out = append(out, [2]float64{comps[0], comps[1]})
	}
	return out, true
}

func vec2Value(pairs [][2]float64) domain.Value {
	vs := make([][]float64, len(pairs))
	for i, p := range pairs {
		vs[i] = []float64{p[0], p[1]}
	}
	return domain.VecArray(vs...)
}

func definition(
	prim domain.Path,
	name string,
	set *composedSet,
	resolver ports.AssetResolver,
	report *diag.Reporter,
) Definition {
	def := Definition{Name: name, Source: set.anchor.source}
	info := set.info

	malformed := func(key string) {
		report.Warn(domain.ErrMalformedClipMetadata.Error() + ": unexpected value for '" + key +
			"' in clip set '" + name + "' on prim <" + prim.String() + ">")
	}

	if v, ok := info[domain.ClipKeyPrimPath]; ok {
		if s, isString := v.AsString(); isString {
			def.PrimPath = s
		} else {
			malformed(domain.ClipKeyPrimPath)
		}
	}
	if v, ok := info[domain.ClipKeyManifestAssetPath]; ok {
		if a, isAsset := v.AsAssetPath(); isAsset {
			def.ManifestAssetPath = a.Authored
		} else {
			malformed(domain.ClipKeyManifestAssetPath)
		}
	}

	if v, ok := info[domain.ClipKeyAssetPaths]; ok && v.Kind() == domain.KindArray && v.ElemKind() == domain.KindAssetPath {
		def.AssetPaths = make([]string, 0, v.Len())
		for _, e := range v.Elems() {
			a, _ := e.AsAssetPath()
			def.AssetPaths = append(def.AssetPaths, a.Authored)
		}
		for _, key := range []string{domain.ClipKeyActive, domain.ClipKeyTimes} {
			raw, ok := info[key]
			if !ok {
				continue
			}
			pairs, isPairs := vec2s(raw)
			if !isPairs {
				malformed(key)
				continue
			}
			if key == domain.ClipKeyActive {
				def.Active = pairs
			} else {
				def.Times = pairs
			}
		}
		return def
	}

	tmpl, ok := templateFrom(info)
	if !ok {
		return def
	}
	layer, ok := def.Source.Layer()
	if !ok {
		return def
	}

	derived, err := deriveFromTemplate(tmpl, layer.Identifier(), def.Source.Stack.ResolverContext(), resolver)
	if err != nil {
		report.Warn("Ignoring clip set '" + name + "' on prim <" + prim.String() + ">: " + err.Error())
		return def
	}

	def.AssetPaths = derived.assetPaths
	def.Active = applyOffset(derived.active, set.anchor.offset)
	def.Times = applyOffset(derived.times, set.anchor.offset)
	return def
}

type template struct {
	assetPath    string
	stride       float64
	start        float64
	end          float64
	activeOffset float64
	hasOffset    bool
}

func templateFrom(info domain.Dictionary) (template, bool) {
	var t template

	v, ok := info[domain.ClipKeyTemplateAssetPath]
	if !ok {
		return t, false
	}
	if t.assetPath, ok = v.AsString(); !ok {
		return t, false
	}

	number := func(key string) (float64, bool) {
		v, ok := info[key]
		if !ok {
			return 0, false
		}
		return v.AsFloat()
	}

	var hasStride, hasStart, hasEnd bool
	t.stride, hasStride = number(domain.ClipKeyTemplateStride)
	t.start, hasStart = number(domain.ClipKeyTemplateStartTime)
	t.end, hasEnd = number(domain.ClipKeyTemplateEndTime)
	t.activeOffset, t.hasOffset = number(domain.ClipKeyTemplateActiveOffset)

	return t, hasStride && hasStart && hasEnd
}

type derivedClips struct {
	assetPaths []string
	active     [][2]float64
	times      [][2]float64
}

// templatePromotion shifts template times into the integer range so that
// fractional strides accumulate without drift.
const templatePromotion = 10000

func deriveFromTemplate(
	t template,
	anchorID string,
	ctx domain.ResolverContext,
	resolver ports.AssetResolver,
) (derivedClips, error) {
	var out derivedClips

	if t.stride <= 0 {
		return out, zerr.With(zerr.Wrap(domain.ErrInvalidClipTemplate, "stride must be greater than 0"), "stride", t.stride)
	}
	if t.hasOffset && math.Abs(t.activeOffset) > t.stride {
		return out, zerr.With(
			zerr.Wrap(domain.ErrInvalidClipTemplate, "absolute active offset must not exceed stride"),
			"active_offset", t.activeOffset,
		)
	}

	dir, base := "", t.assetPath
	if i := strings.LastIndex(t.assetPath, "/"); i >= 0 {
		dir, base = t.assetPath[:i+1], t.assetPath[i+1:]
	}
	tokens := strings.Split(base, ".")

	intGroup, decGroup := -1, -1
	groups := 0
	for i, tok := range tokens {
		if tok == "" || strings.Trim(tok, "#") != "" {
			continue
		}
		if intGroup < 0 {
			intGroup = i
		} else {
			decGroup = i
		}
		groups++
	}
	if (groups != 1 && groups != 2) || (groups == 2 && decGroup != intGroup+1) {
		return out, zerr.With(
			zerr.Wrap(domain.ErrInvalidClipTemplate, "template must look like path/basename.###.ext or path/basename.###.###.ext"),
			"template", t.assetPath,
		)
	}
	if t.start > t.end {
		return out, zerr.With(zerr.Wrap(domain.ErrInvalidClipTemplate, "start time is after end time"), "start", t.start)
	}

	intWidth := len(tokens[intGroup])
	decWidth := 0
	if decGroup >= 0 {
		decWidth = len(tokens[decGroup])
	}

	if t.hasOffset {
		knot := (t.start*templatePromotion - math.Abs(t.activeOffset)*templatePromotion) / templatePromotion
		out.times = append(out.times, [2]float64{knot, knot})
	}

	index := 0
	for p := t.start * templatePromotion; p <= t.end*templatePromotion; p += t.stride * templatePromotion {
		clipTime := p / templatePromotion

		name := slices.Clone(tokens)
		name[intGroup] = fmt.Sprintf("%0*d", intWidth, int(clipTime))
		if decGroup >= 0 {
			formatted := strconv.FormatFloat(clipTime, 'f', decWidth, 64)
			name[decGroup] = formatted[strings.IndexByte(formatted, '.')+1:]
		}

		assetPath := resolver.Anchor(anchorID, dir+strings.Join(name, "."))
		if resolver.Resolve(ctx, assetPath) == "" {
			continue
		}

		out.assetPaths = append(out.assetPaths, assetPath)
		out.times = append(out.times, [2]float64{clipTime, clipTime})
		activeAt := clipTime
		if t.hasOffset {
			activeAt = (p + t.activeOffset*templatePromotion) / templatePromotion
		}
		out.active = append(out.active, [2]float64{activeAt, float64(index)})
		index++
	}

	if t.hasOffset {
		knot := (t.end*templatePromotion + math.Abs(t.activeOffset)*templatePromotion) / templatePromotion
		out.times = append(out.times, [2]float64{knot, knot})
	}

	return out, nil
}

package clips

import (
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/diag"
	"go.trai.ch/strata/internal/engine/interp"
)

// PlaceholderTag is part of the identifier of the empty layer substituted
// for a clip layer that failed to open.
const PlaceholderTag = "dummy_clip"

// Source is the composition site a clip was authored on.
type Source struct {
	Stack      ports.LayerStack
	PrimPath   domain.Path
	LayerIndex int
}

// Layer returns the layer the clip metadata was authored in.
func (s Source) Layer() (ports.Layer, bool) {
	if s.Stack == nil {
		return nil, false
	}
	layers := s.Stack.Layers()
	if s.LayerIndex < 0 || s.LayerIndex >= len(layers) {
		return nil, false
	}
	return layers[s.LayerIndex], true
}

type openLayer struct {
	layer       ports.Layer
	placeholder bool
}

// Clip is a retimed reference to a layer that answers time-sample queries
// for stage times in [Start, End).
type Clip struct {
	Source    Source
	AssetPath string
	// PrimPath is the prim inside the clip layer that Source.PrimPath maps to.
	PrimPath domain.Path
	// AuthoredStart is the activation time as authored. The clip always
	// reports a sample there.
	AuthoredStart float64
	Start         float64
	End           float64
	Times         TimeMappings

	registry ports.LayerRegistry
	report   *diag.Reporter

	once   sync.Once
	opened atomic.Pointer[openLayer]
}

// ClipParams describes a clip to construct.
type ClipParams struct {
	Source        Source
	AssetPath     string
	PrimPath      domain.Path
	AuthoredStart float64
	Start         float64
	End           float64
	Times         TimeMappings
}

// NewClip returns a clip whose layer is opened on first use. If the layer is
// already open it is adopted immediately.
func NewClip(p ClipParams, registry ports.LayerRegistry, report *diag.Reporter) *Clip {
	c := newClip(p, registry, report)
	if anchor, ok := p.Source.Layer(); ok {
		if l, found := registry.FindRelative(anchor, p.AssetPath, p.Source.Stack.ResolverContext()); found {
			c.opened.Store(&openLayer{layer: l})
		}
	}
	return c
}

func newClipWithLayer(p ClipParams, layer ports.Layer, registry ports.LayerRegistry, report *diag.Reporter) *Clip {
	c := newClip(p, registry, report)
	c.opened.Store(&openLayer{layer: layer})
	return c
}

func newClip(p ClipParams, registry ports.LayerRegistry, report *diag.Reporter) *Clip {
	return &Clip{
		Source:        p.Source,
		AssetPath:     p.AssetPath,
		PrimPath:      p.PrimPath,
		AuthoredStart: p.AuthoredStart,
		Start:         p.Start,
		End:           p.End,
		Times:         p.Times,
		registry:      registry,
		report:        report,
	}
}

// IsActive reports whether the clip answers queries at stage time t.
func (c *Clip) IsActive(t float64) bool {
	return c.Start <= t && t < c.End
}

// Layer returns the clip's layer, opening it on first use. A layer that
// cannot be opened is replaced by an empty placeholder.
func (c *Clip) Layer() ports.Layer {
	if o := c.opened.Load(); o != nil {
		return o.layer
	}

	c.once.Do(func() {
		if c.opened.Load() != nil {
			return
		}
		c.opened.Store(c.open())
	})

	return c.opened.Load().layer
}

func (c *Clip) open() *openLayer {
	reason := "source layer index out of range"
	if anchor, ok := c.Source.Layer(); ok {
		l, err := c.registry.FindOrOpenRelative(anchor, c.AssetPath, c.Source.Stack.ResolverContext())
		if err == nil {
			return &openLayer{layer: l}
		}
		reason = err.Error()
	}

	c.report.Warn(domain.ErrClipLayerOpenFailed.Error() + " @" + c.AssetPath + "@: " + reason)
	return &openLayer{layer: c.registry.CreateAnonymous(PlaceholderTag), placeholder: true}
}

// LayerIfOpen returns the clip layer if it has been opened. Placeholders are
// never returned.
func (c *Clip) LayerIfOpen() (ports.Layer, bool) {
	o := c.opened.Load()
	if o == nil || o.placeholder {
		return nil, false
	}
	return o.layer, true
}

// TranslatePath maps a path under the source prim to the clip layer.
func (c *Clip) TranslatePath(path domain.Path) domain.Path {
	return path.ReplacePrefix(c.Source.PrimPath, c.PrimPath)
}

// ToInternal translates stage time t into clip time.
func (c *Clip) ToInternal(t float64) float64 {
	return c.Times.ToInternal(t)
}

func (c *Clip) toExternal(internal float64, i1, i2 int) float64 {
	ext, err := c.Times.ToExternal(internal, i1, i2)
	if err != nil {
		c.report.Once("clips.translate."+c.AssetPath+"."+strconv.Itoa(i1), err)
	}
	return ext
}

// layerBracket returns the clip layer's samples bracketing stage time t,
// translated back to stage time.
func (c *Clip) layerBracket(path domain.Path, t float64) (lower, upper float64, ok bool) {
	internal := c.ToInternal(t)
	lowerIn, upperIn, ok := c.Layer().BracketingTimeSamples(c.TranslatePath(path), internal)
	if !ok {
		return 0, 0, false
	}

	m1, m2, mapped := c.Times.Segment(t)
	if !mapped {
		return lowerIn, upperIn, true
	}

	var gotLower, gotUpper bool
	translate := func(i1, i2 int, lowerSide bool) bool {
		s1, s2 := c.Times[i1], c.Times[i2]
		if s1.IsJumpDiscontinuity {
			return false
		}

		sample := upperIn
		if lowerSide {
			sample = lowerIn
		}
		if sample < min(s1.Internal, s2.Internal) || sample > max(s1.Internal, s2.Internal) {
			return false
		}

		var ext float64
		switch {
		case s1.Internal != s2.Internal:
			ext = c.toExternal(sample, i1, i2)
		case lowerIn == upperIn && t == s1.External:
			ext = s1.External
		case lowerIn == upperIn && t == s2.External:
			ext = s2.External
		case lowerSide:
			ext = s1.External
		default:
			ext = s2.External
		}

		if lowerSide {
			lower, gotLower = ext, true
		} else {
			upper, gotUpper = ext, true
		}
		return true
	}

	for i1, i2 := m1, m2; i1 >= 0; i1, i2 = i1-1, i2-1 {
		if translate(i1, i2, true) {
			break
		}
	}
	for i1, i2 := m1, m2; i2 < len(c.Times); i1, i2 = i1+1, i2+1 {
		if translate(i1, i2, false) {
			break
		}
	}

	switch {
	case gotLower && !gotUpper:
		upper = lower
	case !gotLower && gotUpper:
		lower = upper
	case !gotLower && !gotUpper:
		lower = c.clamp(lowerIn)
		upper = c.clamp(upperIn)
	}
	return lower, upper, true
}

// clamp maps a clip time outside the mapping's internal range to the
// nearest end of its external range.
func (c *Clip) clamp(internal float64) float64 {
	front, back := c.Times.Front(), c.Times.Back()
	if internal > back.Internal {
		return back.Authored
	}
	return front.Authored
}

// BracketingTimeSamples returns the samples surrounding stage time t, never
// leaving [Start, End).
func (c *Clip) BracketingTimeSamples(path domain.Path, t float64) (lower, upper float64, ok bool) {
	candidates := make([]float64, 0, 5)

	if lo, hi, found := c.layerBracket(path, t); found {
		candidates = append(candidates, lo, hi)
	}
	if m1, m2, mapped := c.Times.Segment(t); mapped {
		candidates = append(candidates, c.Times[m1].External, c.Times[m2].External)
	}
	candidates = append(candidates, c.AuthoredStart)

	candidates = slices.DeleteFunc(candidates, func(s float64) bool { return !c.IsActive(s) })
	if len(candidates) == 0 {
		return 0, 0, false
	}
	slices.Sort(candidates)
	candidates = slices.Compact(candidates)

	lower, upper = bracket(candidates, t)
	return lower, upper, true
}

// ListTimeSamples returns every stage time at which the clip has a sample,
// restricted to [Start, End).
func (c *Clip) ListTimeSamples(path domain.Path) []float64 {
	internal := c.Layer().ListTimeSamples(c.TranslatePath(path))
	for _, m := range c.Times {
		internal = append(internal, m.Internal)
	}

	var samples []float64
	if len(c.Times) == 0 {
		samples = internal
	} else {
		active := domain.HalfOpenInterval(c.Start, c.End)
		for _, t := range internal {
			for i := 0; i < len(c.Times)-1; i++ {
				m1, m2 := c.Times[i], c.Times[i+1]
				if m1.IsJumpDiscontinuity {
					continue
				}
				if !domain.ClosedInterval(m1.External, m2.External).Intersects(active) {
					continue
				}
				if t < min(m1.Internal, m2.Internal) || t > max(m1.Internal, m2.Internal) {
					continue
				}
				if m1.Internal == m2.Internal {
					samples = append(samples, m1.External, m2.External)
				} else {
					samples = append(samples, c.toExternal(t, i, i+1))
				}
			}
		}

		if len(samples) == 0 {
			front, back := c.Times.Front(), c.Times.Back()
			for _, t := range internal {
				if t < front.Internal {
					samples = append(samples, front.Authored)
				} else if t > back.Internal {
					samples = append(samples, back.Authored)
				}
			}
		}
	}

	samples = append(samples, c.AuthoredStart)
	samples = slices.DeleteFunc(samples, func(s float64) bool { return !c.IsActive(s) })
	slices.Sort(samples)
	return slices.Compact(samples)
}

// NumTimeSamples returns len(ListTimeSamples(path)).
func (c *Clip) NumTimeSamples(path domain.Path) int {
	return len(c.ListTimeSamples(path))
}

// HasAuthoredTimeSamples reports whether the clip layer itself has samples
// for path.
func (c *Clip) HasAuthoredTimeSamples(path domain.Path) bool {
	return c.Layer().NumTimeSamples(c.TranslatePath(path)) > 0
}

// HasField reports whether the clip layer authors field at path.
func (c *Clip) HasField(path domain.Path, field string) bool {
	_, ok := c.Layer().Field(c.TranslatePath(path), field)
	return ok
}

// PropertyAtPath returns the property spec for path in the clip layer.
func (c *Clip) PropertyAtPath(path domain.Path) (ports.PropertySpec, bool) {
	return c.Layer().PropertyAtPath(c.TranslatePath(path))
}

// QueryTimeSample returns the value at stage time t. When the clip layer
// has no sample at the translated time, the value is interpolated inside
// the clip layer with in. Time codes are shifted into stage time.
func (c *Clip) QueryTimeSample(path domain.Path, t float64, in interp.Interpolator) (domain.Value, bool) {
	layer := c.Layer()
	clipPath := c.TranslatePath(path)
	internal := c.ToInternal(t)

	v, ok := layer.QueryTimeSample(clipPath, internal)
	if !ok {
		lower, upper, found := layer.BracketingTimeSamples(clipPath, internal)
		if !found {
			return domain.Value{}, false
		}
		if domain.ApproxEqual(lower, upper) {
			v, ok = layer.QueryTimeSample(clipPath, lower)
		} else {
			v, ok = in.Interpolate(layer, clipPath, internal, lower, upper)
		}
		if !ok {
			return domain.Value{}, false
		}
	}

	return ShiftTimeCodes(v, t-internal), true
}

// Sampler adapts the clip to interp.SampleSource using in for values between
// clip layer samples.
func (c *Clip) Sampler(in interp.Interpolator) interp.SampleSource {
	return sampler{clip: c, in: in}
}

type sampler struct {
	clip *Clip
	in   interp.Interpolator
}

func (s sampler) QueryTimeSample(path domain.Path, t float64) (domain.Value, bool) {
	return s.clip.QueryTimeSample(path, t, s.in)
}

// ShiftTimeCodes offsets time code values, and arrays of them, by delta.
func ShiftTimeCodes(v domain.Value, delta float64) domain.Value {
	if delta == 0 {
		return v
	}
	switch {
	case v.Kind() == domain.KindTimeCode:
		tc, _ := v.AsTimeCode()
		return domain.TimeCodeValue(tc + delta)
	case v.Kind() == domain.KindArray && v.ElemKind() == domain.KindTimeCode:
		return v.MapLeaves(func(e domain.Value) domain.Value {
			tc, _ := e.AsTimeCode()
			return domain.TimeCodeValue(tc + delta)
		})
	default:
		return v
	}
}

func bracket(times []float64, t float64) (lower, upper float64) {
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

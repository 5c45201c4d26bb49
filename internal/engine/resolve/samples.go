package resolve

import (
	"slices"

	"go.trai.ch/strata/internal/core/domain"
)

// GetBracketingTimeSamples returns the samples of obj surrounding stage time
// t. hasSamples is false when obj resolves to a default or fallback. ok is
// false when obj has no value source at all.
func (e *Engine) GetBracketingTimeSamples(obj Object, t float64) (lower, upper float64, hasSamples, ok bool) {
	if !e.valid("bracketing", obj, domain.At(t)) {
		return 0, 0, false, false
	}

	info := e.resolveInfo(obj, untimed())
	path := obj.pathIn(info.PrimPathInLayerStack)

	switch info.Source {
	case domain.SourceTimeSamples:
		layer, _ := info.Layer()
		offset := info.LayerToStageOffset()
		lo, hi, found := layer.BracketingTimeSamples(path, offset.Inverse().Apply(t))
		if !found {
			return 0, 0, false, true
		}
		lo, hi = offset.Apply(lo), offset.Apply(hi)
		return min(lo, hi), max(lo, hi), true, true

	case domain.SourceIsTimeDependent:
		lo, hi, found := info.ClipSet.BracketingTimeSamples(path, t)
		return lo, hi, found, true

	case domain.SourceDefault, domain.SourceFallback:
		return 0, 0, false, true

	default:
		return 0, 0, false, false
	}
}

// GetTimeSamples returns every stage time at which obj has a sample.
func (e *Engine) GetTimeSamples(obj Object) []float64 {
	return e.GetTimeSamplesInInterval(obj, domain.FullInterval())
}

// GetTimeSamplesInInterval returns the sorted stage times in interval at
// which obj has a sample.
func (e *Engine) GetTimeSamplesInInterval(obj Object, interval domain.Interval) []float64 {
	if !e.valid("samples", obj, domain.DefaultTime()) || interval.IsEmpty() {
		return nil
	}

	info := e.resolveInfo(obj, untimed())
	path := obj.pathIn(info.PrimPathInLayerStack)

	var out []float64
	switch info.Source {
	case domain.SourceTimeSamples:
		layer, _ := info.Layer()
		offset := info.LayerToStageOffset()
		for _, t := range layer.ListTimeSamples(path) {
			if st := offset.Apply(t); interval.Contains(st) {
				out = append(out, st)
			}
		}
	case domain.SourceIsTimeDependent:
		out = info.ClipSet.ListTimeSamples(path, interval)
	default:
		return nil
	}

	slices.Sort(out)
	return slices.Compact(out)
}

// GetNumTimeSamples returns len(GetTimeSamples(obj)).
func (e *Engine) GetNumTimeSamples(obj Object) int {
	return len(e.GetTimeSamples(obj))
}

// ValueMightBeTimeVarying reports whether obj may resolve to different
// values at different times. Clip sources spanning more than one clip
// always might.
func (e *Engine) ValueMightBeTimeVarying(obj Object) bool {
	if !e.valid("varying", obj, domain.DefaultTime()) {
		return false
	}

	info := e.resolveInfo(obj, untimed())
	path := obj.pathIn(info.PrimPathInLayerStack)

	switch info.Source {
	case domain.SourceTimeSamples:
		layer, _ := info.Layer()
		return layer.NumTimeSamples(path) > 1
	case domain.SourceIsTimeDependent:
		c := info.Clip
		if c.Start == domain.ClipTimesEarliest && c.End == domain.ClipTimesLatest {
			return c.NumTimeSamples(path) > 1
		}
		return true
	default:
		return false
	}
}

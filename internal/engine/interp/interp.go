// Package interp computes attribute values that fall between authored time
// samples.
package interp

import (
	"math"

	"go.trai.ch/strata/internal/core/domain"
)

// SampleSource answers exact time-sample queries. Layers and value clips
// both satisfy it.
type SampleSource interface {
	QueryTimeSample(path domain.Path, t float64) (domain.Value, bool)
}

// Interpolator produces the value at t from the samples at lower and upper.
type Interpolator interface {
	Interpolate(src SampleSource, path domain.Path, t, lower, upper float64) (domain.Value, bool)
}

// Held returns the lower sample verbatim.
type Held struct{}

// Interpolate implements Interpolator.
func (Held) Interpolate(src SampleSource, path domain.Path, _, lower, _ float64) (domain.Value, bool) {
	return src.QueryTimeSample(path, lower)
}

// Linear blends the bracketing samples. Values that cannot be blended, and
// pairs where either side is a block, are held.
type Linear struct{}

// Interpolate implements Interpolator.
func (Linear) Interpolate(src SampleSource, path domain.Path, t, lower, upper float64) (domain.Value, bool) {
	lo, ok := src.QueryTimeSample(path, lower)
	if !ok {
		return domain.Value{}, false
	}
	hi, ok := src.QueryTimeSample(path, upper)
	if !ok {
		hi = lo
	}
	if lo.IsBlock() || hi.IsBlock() || upper == lower {
		return lo, true
	}
	return Lerp((t-lower)/(upper-lower), lo, hi), true
}

// Null never produces a value between samples.
type Null struct{}

// Interpolate implements Interpolator.
func (Null) Interpolate(SampleSource, domain.Path, float64, float64, float64) (domain.Value, bool) {
	return domain.Value{}, false
}

// For returns the interpolator for a stage interpolation setting.
func For(t domain.InterpolationType) Interpolator {
	switch t {
	case domain.InterpolationHeld:
		return Held{}
	case domain.InterpolationNone:
		return Null{}
	default:
		return Linear{}
	}
}

// GetOrInterpolate returns the value at t given its bracketing samples. When
// the samples coincide the exact sample is returned. Blocks resolve to no
// value.
func GetOrInterpolate(src SampleSource, path domain.Path, t, lower, upper float64, in Interpolator) (domain.Value, bool) {
	var (
		v  domain.Value
		ok bool
	)
	if domain.ApproxEqual(lower, upper) {
		v, ok = src.QueryTimeSample(path, lower)
	} else {
		v, ok = in.Interpolate(src, path, t, lower, upper)
	}
	if !ok || v.IsBlock() {
		return domain.Value{}, false
	}
	return v, true
}

// Lerp blends a and b by alpha. Quaternions are slerped and arrays blend
// element-wise. Mismatched or non-interpolatable values return a.
func Lerp(alpha float64, a, b domain.Value) domain.Value {
	if a.Kind() != b.Kind() || !a.IsInterpolatable() {
		return a
	}
	switch a.Kind() {
	case domain.KindDouble:
		x, _ := a.AsDouble()
		y, _ := b.AsDouble()
		return domain.Double(lerp(alpha, x, y))
	case domain.KindTimeCode:
		x, _ := a.AsTimeCode()
		y, _ := b.AsTimeCode()
		return domain.TimeCodeValue(lerp(alpha, x, y))
	case domain.KindVec:
		x, _ := a.AsVec()
		y, _ := b.AsVec()
		if len(x) != len(y) {
			return a
		}
		for i := range x {
			x[i] = lerp(alpha, x[i], y[i])
		}
		return domain.Vec(x...)
	case domain.KindQuat:
		x, _ := a.AsQuat()
		y, _ := b.AsQuat()
		return domain.QuatValue(Slerp(alpha, x, y))
	case domain.KindArray:
		if a.ElemKind() != b.ElemKind() || a.Len() != b.Len() {
			return a
		}
		xs, ys := a.Elems(), b.Elems()
		for i := range xs {
			xs[i] = Lerp(alpha, xs[i], ys[i])
		}
		return domain.Array(a.ElemKind(), xs...)
	default:
		return a
	}
}

func lerp(alpha, a, b float64) float64 {
	return (1-alpha)*a + alpha*b
}

// Slerp interpolates along the shortest arc between two unit quaternions.
func Slerp(alpha float64, a, b domain.Quat) domain.Quat {
	cos := a.W*b.W + a.X*b.X + a.Y*b.Y + a.Z*b.Z
	if cos < 0 {
		cos = -cos
		b = domain.Quat{W: -b.W, X: -b.X, Y: -b.Y, Z: -b.Z}
	}

	s0, s1 := 1-alpha, alpha
	if 1-cos > 1e-5 {
		theta := math.Acos(cos)
		sin := math.Sin(theta)
		s0 = math.Sin((1-alpha)*theta) / sin
		s1 = math.Sin(alpha*theta) / sin
	}

	return domain.Quat{
		W: s0*a.W + s1*b.W,
		X: s0*a.X + s1*b.X,
		Y: s0*a.Y + s1*b.Y,
		Z: s0*a.Z + s1*b.Z,
	}
}

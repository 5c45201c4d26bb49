package domain

import "math"

// LayerOffset maps times from one layer's domain into another's:
// t' = t*Scale + Offset.
type LayerOffset struct {
	Offset float64
	Scale  float64
}

// IdentityOffset returns the offset that leaves times unchanged.
func IdentityOffset() LayerOffset {
	return LayerOffset{Scale: 1}
}

// NewLayerOffset returns an offset with the given values. A zero scale is
// treated as 1 so the zero value of a decoded offset is the identity.
func NewLayerOffset(offset, scale float64) LayerOffset {
	if scale == 0 {
		scale = 1
	}
	return LayerOffset{Offset: offset, Scale: scale}
}

// IsIdentity reports whether o leaves times unchanged.
func (o LayerOffset) IsIdentity() bool {
	return o.Offset == 0 && (o.Scale == 1 || o.Scale == 0)
}

func (o LayerOffset) scale() float64 {
	if o.Scale == 0 {
		return 1
	}
	return o.Scale
}

// Apply maps t through the offset.
func (o LayerOffset) Apply(t float64) float64 {
	if o.IsIdentity() {
		return t
	}
	return t*o.scale() + o.Offset
}

// Inverse returns the offset that undoes o.
func (o LayerOffset) Inverse() LayerOffset {
	if o.IsIdentity() {
		return IdentityOffset()
	}
	s := 1.0 / o.scale()
	return LayerOffset{Offset: -o.Offset * s, Scale: s}
}

// Compose returns the offset equivalent to applying inner first and then o.
func (o LayerOffset) Compose(inner LayerOffset) LayerOffset {
	return LayerOffset{
		Offset: o.scale()*inner.Offset + o.Offset,
		Scale:  o.scale() * inner.scale(),
	}
}

// IsValid reports whether both components are finite.
func (o LayerOffset) IsValid() bool {
	return !math.IsNaN(o.Offset) && !math.IsInf(o.Offset, 0) &&
		!math.IsNaN(o.Scale) && !math.IsInf(o.Scale, 0)
}

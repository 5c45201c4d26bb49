package domain

import (
	"math"
	"strconv"
)

// Clip activity sentinels. The first clip of a set is active from
// ClipTimesEarliest and the last one until ClipTimesLatest.
const (
	ClipTimesEarliest = -math.MaxFloat64
	ClipTimesLatest   = math.MaxFloat64
)

// TimeEpsilon is the tolerance used to decide that two bracketing samples
// are the same sample.
const TimeEpsilon = 1e-6

// TimeCode is either the Default marker or a finite stage time.
type TimeCode struct {
	value float64
	set   bool
}

// DefaultTime returns the Default time marker.
func DefaultTime() TimeCode {
	return TimeCode{}
}

// At returns the stage time t.
func At(t float64) TimeCode {
	return TimeCode{value: t, set: true}
}

// IsDefault reports whether t is the Default marker.
func (t TimeCode) IsDefault() bool {
	return !t.set
}

// Value returns the numeric time. It is zero for Default.
func (t TimeCode) Value() float64 {
	return t.value
}

// IsValid reports whether t is Default or a finite number.
func (t TimeCode) IsValid() bool {
	return !t.set || (!math.IsNaN(t.value) && !math.IsInf(t.value, 0))
}

func (t TimeCode) String() string {
	if !t.set {
		return "DEFAULT"
	}
	return strconv.FormatFloat(t.value, 'g', -1, 64)
}

// ApproxEqual reports whether a and b differ by less than TimeEpsilon.
func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) < TimeEpsilon
}

// Interval is a range of real numbers with independently open or closed ends.
type Interval struct {
	Min     float64
	Max     float64
	MinOpen bool
	MaxOpen bool
}

// ClosedInterval returns [lo, hi].
func ClosedInterval(lo, hi float64) Interval {
	return Interval{Min: lo, Max: hi}
}

// HalfOpenInterval returns [lo, hi).
func HalfOpenInterval(lo, hi float64) Interval {
	return Interval{Min: lo, Max: hi, MaxOpen: true}
}

// FullInterval returns (-inf, inf).
func FullInterval() Interval {
	return Interval{Min: math.Inf(-1), Max: math.Inf(1), MinOpen: true, MaxOpen: true}
}

// IsEmpty reports whether no number lies in the interval.
func (i Interval) IsEmpty() bool {
	return i.Min > i.Max || (i.Min == i.Max && (i.MinOpen || i.MaxOpen))
}

// Contains reports whether t lies in the interval.
func (i Interval) Contains(t float64) bool {
	if i.IsEmpty() {
		return false
	}
	lowOK := t > i.Min || (!i.MinOpen && t == i.Min)
	highOK := t < i.Max || (!i.MaxOpen && t == i.Max)
	return lowOK && highOK
}

// Intersects reports whether i and o share at least one number.
func (i Interval) Intersects(o Interval) bool {
	return !i.Intersection(o).IsEmpty()
}

// Intersection returns the overlap of i and o.
func (i Interval) Intersection(o Interval) Interval {
	res := i
	if o.Min > res.Min || (o.Min == res.Min && o.MinOpen) {
		res.Min, res.MinOpen = o.Min, o.MinOpen
	}
	if o.Max < res.Max || (o.Max == res.Max && o.MaxOpen) {
		res.Max, res.MaxOpen = o.Max, o.MaxOpen
	}
	return res
}

// Transform maps both ends of i through offset. A negative scale swaps
// the ends.
func (i Interval) Transform(offset LayerOffset) Interval {
	lo, hi := offset.Apply(i.Min), offset.Apply(i.Max)
	if offset.Scale < 0 {
		return Interval{Min: hi, Max: lo, MinOpen: i.MaxOpen, MaxOpen: i.MinOpen}
	}
	return Interval{Min: lo, Max: hi, MinOpen: i.MinOpen, MaxOpen: i.MaxOpen}
}

// Package clips implements value clips: retimed, lazily opened layers that
// supply time samples for a range of stage time, and the per-stage cache of
// the clip sets authored on each prim.
package clips

import (
	"cmp"
	"math"
	"slices"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/zerr"
)

// TimeMapping is one breakpoint of a clip's retiming function.
type TimeMapping struct {
	// External is the stage time of the breakpoint. For a jump discontinuity
	// it is nudged just below the authored time.
	External float64
	// Internal is the time in the clip layer.
	Internal float64
	// Authored is the external time as authored.
	Authored float64
	// IsJumpDiscontinuity marks a breakpoint followed by another at the same
	// authored external time.
	IsJumpDiscontinuity bool
}

// TimeMappings is a sorted breakpoint list with a sentinel copy of the first
// and last breakpoint at either end. An empty TimeMappings is the identity.
type TimeMappings []TimeMapping

// NewTimeMappings builds the retiming function from authored
// (external, internal) pairs.
func NewTimeMappings(pairs [][2]float64) TimeMappings {
	if len(pairs) == 0 {
		return nil
	}

	times := make(TimeMappings, 0, len(pairs)+2)
	for _, p := range pairs {
		times = append(times, TimeMapping{External: p[0], Internal: p[1], Authored: p[0]})
	}
	slices.SortStableFunc(times, func(a, b TimeMapping) int {
		return cmp.Compare(a.External, b.External)
	})

	for i := 0; i < len(times)-1; i++ {
		if times[i].Authored == times[i+1].Authored {
			times[i].External = math.Nextafter(times[i].Authored, math.Inf(-1))
			times[i].IsJumpDiscontinuity = true
		}
	}

	first, last := times[0], times[len(times)-1]
	first.IsJumpDiscontinuity = false
	times = slices.Insert(times, 0, first)
	return append(times, last)
}

// Segment returns the indices of the breakpoints bracketing ext. The two
// indices always differ. ok is false for the identity mapping.
func (m TimeMappings) Segment(ext float64) (i1, i2 int, ok bool) {
	if len(m) < 2 {
		return 0, 0, false
	}
	switch {
	case ext <= m[0].External:
		return 0, 1, true
	case ext >= m[len(m)-1].External:
		return len(m) - 2, len(m) - 1, true
	}
	i2, _ = slices.BinarySearchFunc(m, ext, func(t TimeMapping, e float64) int {
		return cmp.Compare(t.External, e)
	})
	return i2 - 1, i2, true
}

// ToInternal translates a stage time into clip time.
func (m TimeMappings) ToInternal(ext float64) float64 {
	i1, i2, ok := m.Segment(ext)
	if !ok {
		return ext
	}
	m1, m2 := m[i1], m[i2]

	switch {
	case m1.External == m2.External:
		return m1.Internal
	case ext == m1.External:
		return m1.Internal
	case ext == m2.External:
		return m2.Internal
	}

	if m2.IsJumpDiscontinuity {
		m2.External = m2.Authored
	}

	return (m2.Internal-m1.Internal)/(m2.External-m1.External)*(ext-m1.External) + m1.Internal
}

// ToExternal translates a clip time into stage time on the segment (i1, i2).
// A clip time landing on a breakpoint before a jump maps to its nudged
// external time, so it stays on the near side of the jump. A segment starting at a jump discontinuity cannot be translated across;
// the breakpoint's external time is returned with an error.
func (m TimeMappings) ToExternal(internal float64, i1, i2 int) (float64, error) {
	m1, m2 := m[i1], m[i2]
	if m1.IsJumpDiscontinuity {
		return m1.External, zerr.With(domain.ErrDiscontinuousSegment, "breakpoint", m1.Authored)
	}

	switch {
	case m1.Internal == m2.Internal:
		return m1.External, nil
	case internal == m1.Internal:
		return m1.External, nil
	case internal == m2.Internal:
		return m2.External, nil
	}

	// The slope uses the authored time; exact hits above keep the nudged one.
	if m2.IsJumpDiscontinuity {
		m2.External = m2.Authored
	}

	return (m2.External-m1.External)/(m2.Internal-m1.Internal)*(internal-m1.Internal) + m1.External, nil
}

// Front returns the first breakpoint.
func (m TimeMappings) Front() TimeMapping { return m[0] }

// Back returns the last breakpoint.
func (m TimeMappings) Back() TimeMapping { return m[len(m)-1] }

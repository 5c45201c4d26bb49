package domain

// Source names the kind of opinion that supplied a resolved value.
type Source uint8

const (
	// SourceNone means no opinion and no fallback exist.
	SourceNone Source = iota
	// SourceFallback means the value comes from the schema registry.
	SourceFallback
	// SourceDefault means the value comes from an authored default.
	SourceDefault
	// SourceTimeSamples means the value comes from authored time samples.
	SourceTimeSamples
	// SourceValueClips means the value comes from a value clip.
	SourceValueClips
	// SourceIsTimeDependent means clips may supply the value but which one
	// depends on the time queried.
	SourceIsTimeDependent
)

func (s Source) String() string {
	switch s {
	case SourceFallback:
		return "fallback"
	case SourceDefault:
		return "default"
	case SourceTimeSamples:
		return "time samples"
	case SourceValueClips:
		return "value clips"
	case SourceIsTimeDependent:
		return "time dependent"
	default:
		return "none"
	}
}

// InterpolationType selects how values between samples are computed.
type InterpolationType uint8

const (
	InterpolationLinear InterpolationType = iota
	InterpolationHeld
	// InterpolationNone answers only at authored sample times.
	InterpolationNone
)

// ParseInterpolationType converts the textual form used in settings.
func ParseInterpolationType(s string) (InterpolationType, bool) {
	switch s {
	case "", "linear":
		return InterpolationLinear, true
	case "held":
		return InterpolationHeld, true
	case "none":
		return InterpolationNone, true
	default:
		return InterpolationLinear, false
	}
}

func (t InterpolationType) String() string {
	switch t {
	case InterpolationHeld:
		return "held"
	case InterpolationNone:
		return "none"
	default:
		return "linear"
	}
}

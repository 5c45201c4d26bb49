package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidClipPrimPath is returned when a clip set names a clip prim path
	// that is not a valid absolute prim path.
	ErrInvalidClipPrimPath = zerr.New("invalid clip prim path")

	// ErrClipIndexOutOfRange is returned when an active entry references a clip
	// index outside the declared asset paths.
	ErrClipIndexOutOfRange = zerr.New("clip index out of range")

	// ErrDuplicateClipActiveTime is returned when two active entries share a
	// start time.
	ErrDuplicateClipActiveTime = zerr.New("duplicate clip active time")

	// ErrMalformedClipMetadata is returned when a clip-set entry holds a value of
	// the wrong kind.
	ErrMalformedClipMetadata = zerr.New("malformed clip metadata")

	// ErrInvalidClipTemplate is returned when template clip metadata cannot
	// derive a list of clips.
	ErrInvalidClipTemplate = zerr.New("invalid clip template")

	// ErrClipLayerOpenFailed is returned when a clip's backing layer cannot be
	// opened.
	ErrClipLayerOpenFailed = zerr.New("unable to open clip layer")

	// ErrLifeboatRequired is returned when clips are invalidated without an
	// active lifeboat.
	ErrLifeboatRequired = zerr.New("lifeboat required to invalidate clips")

	// ErrInvalidTime is returned when a query is given a non-finite time.
	ErrInvalidTime = zerr.New("invalid time")

	// ErrInvalidPath is returned when a query is given an empty or malformed path.
	ErrInvalidPath = zerr.New("invalid path")

	// ErrDiscontinuousSegment is returned when a time translation is asked to
	// interpolate across a jump discontinuity.
	ErrDiscontinuousSegment = zerr.New("time mapping segment is a jump discontinuity")

	// ErrLayerNotFound is returned when a layer identifier cannot be resolved.
	ErrLayerNotFound = zerr.New("layer not found")

	// ErrLayerReadFailed is returned when a layer file cannot be read.
	ErrLayerReadFailed = zerr.New("failed to read layer")

	// ErrLayerParseFailed is returned when a layer file cannot be decoded.
	ErrLayerParseFailed = zerr.New("failed to parse layer")

	// ErrConfigReadFailed is returned when the stage file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read stage file")

	// ErrConfigParseFailed is returned when the stage file cannot be decoded.
	ErrConfigParseFailed = zerr.New("failed to parse stage file")

	// ErrInvalidValue is returned when an authored value cannot be converted.
	ErrInvalidValue = zerr.New("invalid value")

	// ErrPrimNotFound is returned when a prim has no composition in the stage.
	ErrPrimNotFound = zerr.New("prim not found")

	// ErrStageUnavailable is returned when stage construction failed.
	ErrStageUnavailable = zerr.New("stage unavailable")

	// ErrSettingsParseFailed is returned when environment settings are malformed.
	ErrSettingsParseFailed = zerr.New("failed to parse settings")

	// ErrWatcherStartFailed is returned when the file watcher cannot start.
	ErrWatcherStartFailed = zerr.New("failed to start watcher")

	// ErrTelemetrySetupFailed is returned when the trace exporter cannot be
	// created.
	ErrTelemetrySetupFailed = zerr.New("failed to set up tracing")

	// ErrUnknownObject is returned when a query names neither a prim nor one
	// of its properties.
	ErrUnknownObject = zerr.New("unknown object")
)

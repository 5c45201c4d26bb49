package ports

import "go.trai.ch/strata/internal/core/domain"

//go:generate mockgen -source=layer.go -destination=mocks/mock_layer.go -package=mocks

// PropertySpec identifies a property authored on a layer.
type PropertySpec struct {
	Layer Layer
	Path  domain.Path
}

// Layer is an ordered source of field data and time samples for scene paths.
type Layer interface {
	// Identifier returns the identifier the layer was opened or created with.
	Identifier() string
	// IsAnonymous reports whether the layer exists only in memory.
	IsAnonymous() bool
	// HasSpec reports whether anything is authored at path.
	HasSpec(path domain.Path) bool
	// Field returns the value of field at path.
	Field(path domain.Path, field string) (domain.Value, bool)
	// FieldDictKey returns the entry at keyPath inside a dictionary-valued field.
	FieldDictKey(path domain.Path, field, keyPath string) (domain.Value, bool)
	// SetField authors field at path.
	SetField(path domain.Path, field string, value domain.Value)
	// EraseField removes field at path.
	EraseField(path domain.Path, field string)
	// BracketingTimeSamples returns the samples surrounding t. ok is false when
	// path has no samples.
	BracketingTimeSamples(path domain.Path, t float64) (lower, upper float64, ok bool)
	// ListTimeSamples returns the sorted sample times at path.
	ListTimeSamples(path domain.Path) []float64
	// NumTimeSamples returns the number of samples at path.
	NumTimeSamples(path domain.Path) int
	// QueryTimeSample returns the sample authored exactly at t.
	QueryTimeSample(path domain.Path, t float64) (domain.Value, bool)
	// SetTimeSample authors a sample at t.
	SetTimeSample(path domain.Path, t float64, value domain.Value)
	// PropertyAtPath returns the property spec at path, if authored.
	PropertyAtPath(path domain.Path) (PropertySpec, bool)
	// Paths returns every authored path in sorted order.
	Paths() []domain.Path
}

// LayerRegistry finds already-open layers and opens new ones.
type LayerRegistry interface {
	// Find returns the open layer with the given identifier.
	Find(identifier string) (Layer, bool)
	// FindOrOpen returns the open layer with the given identifier or opens it.
	FindOrOpen(identifier string) (Layer, error)
	// FindRelative finds an open layer for assetPath anchored to anchor.
	FindRelative(anchor Layer, assetPath string, ctx domain.ResolverContext) (Layer, bool)
	// FindOrOpenRelative finds or opens the layer for assetPath anchored to anchor.
	FindOrOpenRelative(anchor Layer, assetPath string, ctx domain.ResolverContext) (Layer, error)
	// CreateAnonymous creates an empty in-memory layer whose identifier
	// contains tag.
	CreateAnonymous(tag string) Layer
}

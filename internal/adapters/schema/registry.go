// Package schema provides the registry of schema fallback values.
package schema

import (
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
)

var _ ports.FallbackRegistry = (*Registry)(nil)

type key struct {
	primType string
	property string
	field    string
}

// Registry is an immutable table of fallback values.
type Registry struct {
	fallbacks map[key]domain.Value
}

// New builds a registry from fallback declarations. Later declarations for
// the same field replace earlier ones.
func New(fallbacks []domain.FallbackDescription) *Registry {
	r := &Registry{fallbacks: make(map[key]domain.Value, len(fallbacks))}
	for _, fb := range fallbacks {
		field := fb.Field
		if field == "" {
			field = domain.FieldDefault
		}
		r.fallbacks[key{primType: fb.PrimType, property: fb.Property, field: field}] = fb.Value
	}
	return r
}

// Fallback returns the fallback for field on property of primType.
func (r *Registry) Fallback(primType, property, field string) (domain.Value, bool) {
	if primType == "" {
		return domain.Value{}, false
	}
	v, ok := r.fallbacks[key{primType: primType, property: property, field: field}]
	if !ok {
		return domain.Value{}, false
	}
	if d, isDict := v.AsDictionary(); isDict {
		return domain.Dict(d), true
	}
	return v, true
}

// Len returns the number of registered fallbacks.
func (r *Registry) Len() int {
	return len(r.fallbacks)
}

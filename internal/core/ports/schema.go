package ports

import "go.trai.ch/strata/internal/core/domain"

// FallbackRegistry supplies schema fallback values.
//
//go:generate mockgen -source=schema.go -destination=mocks/mock_schema.go -package=mocks
type FallbackRegistry interface {
	// Fallback returns the fallback for field on property of primType. An
	// empty property addresses prim-level fields.
	Fallback(primType, property, field string) (domain.Value, bool)
}

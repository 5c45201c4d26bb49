package ports

import "go.trai.ch/strata/internal/core/domain"

// AssetResolver anchors and resolves asset paths.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type AssetResolver interface {
	// Anchor makes a relative assetPath relative to the layer with
	// anchorIdentifier. Other paths are returned unchanged.
	Anchor(anchorIdentifier, assetPath string) string
	// Resolve returns the location assetPath resolves to under ctx, or an
	// empty string.
	Resolve(ctx domain.ResolverContext, assetPath string) string
}

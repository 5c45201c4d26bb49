package resolve

import (
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
)

// fixup adjusts values read from one layer for use at the stage level.
type fixup struct {
	resolver ports.AssetResolver
	anchor   string
	ctx      domain.ResolverContext
	// offset retimes time codes. Nil for clip values, which are already in
	// stage time.
	offset *domain.LayerOffset
}

func (e *Engine) fixup(anchor string, stack ports.LayerStack, offset *domain.LayerOffset) fixup {
	f := fixup{resolver: e.cfg.Resolver, anchor: anchor, offset: offset}
	if stack != nil {
		f.ctx = stack.ResolverContext()
	}
	return f
}

// apply anchors and resolves asset paths and retimes time codes, descending
// into arrays and dictionaries.
func (f fixup) apply(v domain.Value) domain.Value {
	switch v.Kind() {
	case domain.KindAssetPath, domain.KindTimeCode, domain.KindArray, domain.KindDictionary:
	default:
		return v
	}
	return v.MapLeaves(f.leaf)
}

func (f fixup) leaf(v domain.Value) domain.Value {
	switch v.Kind() {
	case domain.KindAssetPath:
		a, _ := v.AsAssetPath()
		if a.Authored == "" || f.resolver == nil {
			return v
		}
		a.Resolved = f.resolver.Resolve(f.ctx, f.resolver.Anchor(f.anchor, a.Authored))
		return domain.Asset(a)
	case domain.KindTimeCode:
		if f.offset == nil || f.offset.IsIdentity() {
			return v
		}
		t, _ := v.AsTimeCode()
		return domain.TimeCodeValue(f.offset.Apply(t))
	default:
		return v
	}
}

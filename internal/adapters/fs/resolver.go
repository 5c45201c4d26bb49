package fs

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
)

var _ ports.AssetResolver = (*Resolver)(nil)

// Resolver implements ports.AssetResolver on the local filesystem.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Anchor makes assetPath relative to the directory of the anchoring layer.
// "./" and "../" paths are always anchored. Other relative paths are
// anchored only when the anchored file exists, and are otherwise left for
// the search paths. Absolute paths and in-memory identifiers are returned
// unchanged.
func (r *Resolver) Anchor(anchorIdentifier, assetPath string) string {
	if assetPath == "" || domain.IsAnonymousLayerIdentifier(assetPath) || filepath.IsAbs(assetPath) {
		return assetPath
	}
	if anchorIdentifier == "" || domain.IsAnonymousLayerIdentifier(anchorIdentifier) {
		return assetPath
	}

	anchored := filepath.Join(filepath.Dir(anchorIdentifier), assetPath)
	if isFileRelative(assetPath) || exists(anchored) {
		return anchored
	}
	return assetPath
}

// Resolve returns the absolute location of assetPath, trying every search
// path of ctx for relative paths. It returns an empty string when nothing
// exists.
func (r *Resolver) Resolve(ctx domain.ResolverContext, assetPath string) string {
	if assetPath == "" {
		return ""
	}
	if domain.IsAnonymousLayerIdentifier(assetPath) {
		return assetPath
	}
	if filepath.IsAbs(assetPath) || isFileRelative(assetPath) {
		return existing(assetPath)
	}
	for _, dir := range ctx.SearchPaths {
		if p := existing(filepath.Join(dir, assetPath)); p != "" {
			return p
		}
	}
	return existing(assetPath)
}

func isFileRelative(p string) bool {
	return strings.HasPrefix(p, "./") || strings.HasPrefix(p, "../")
}

func exists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func existing(p string) string {
	if !exists(p) {
		return ""
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}

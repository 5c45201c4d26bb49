package clips

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
)

const manifestTagPrefix = "generated_manifest_"

// manifestKey identifies a generated manifest by everything it was derived
// from.
func manifestKey(prim domain.Path, name string, clipPrim domain.Path, assetPaths []string) uint64 {
	d := xxhash.New()
	sep := []byte{0}
	_, _ = d.WriteString(prim.String())
	_, _ = d.Write(sep)
	_, _ = d.WriteString(name)
	_, _ = d.Write(sep)
	_, _ = d.WriteString(clipPrim.String())
	for _, a := range assetPaths {
		_, _ = d.Write(sep)
		_, _ = d.WriteString(a)
	}
	return d.Sum64()
}

// GenerateManifest creates an anonymous layer declaring every attribute
// under clipPrim that has time samples in any of clips as varying, along
// with its default value.
func GenerateManifest(clips []*Clip, clipPrim domain.Path, registry ports.LayerRegistry, tag string) ports.Layer {
	manifest := registry.CreateAnonymous(tag)

	for _, c := range clips {
		layer := c.Layer()
		for _, path := range layer.Paths() {
			if !path.IsPropertyPath() || !path.HasPrefix(clipPrim) || layer.NumTimeSamples(path) == 0 {
				continue
			}
			manifest.SetField(path, domain.FieldVariability, domain.Token(domain.VariabilityVarying))
			if _, declared := manifest.Field(path, domain.FieldDefault); declared {
				continue
			}
			if def, ok := layer.Field(path, domain.FieldDefault); ok {
				manifest.SetField(path, domain.FieldDefault, def)
			}
		}
	}

	return manifest
}

// attachGeneratedManifest gives set a generated manifest, reusing the one a
// live lifeboat recorded for the same key while its layer is still open.
func (e *env) attachGeneratedManifest(set *ClipSet) {
	key := manifestKey(set.PrimPath, set.Name, set.ClipPrimPath, set.AssetPaths)

	var layer ports.Layer
	if id, ok := e.lifeboatManifest(key); ok {
		layer, _ = e.registry.Find(id)
	}
	if layer == nil {
		layer = GenerateManifest(set.Clips, set.ClipPrimPath, e.registry, manifestTagPrefix+strconv.FormatUint(key, 16))
	}

	set.ManifestID = layer.Identifier()
	set.GeneratedManifest = true
	set.Manifest = newClipWithLayer(manifestParams(set, set.ManifestID), layer, e.registry, e.report)
}

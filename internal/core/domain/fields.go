package domain

import "strings"

// Field names understood by layers and the resolver.
const (
	FieldDefault     = "default"
	FieldVariability = "variability"
	FieldSpecifier   = "specifier"
	FieldTypeName    = "typeName"
	FieldCustomData  = "customData"
	FieldAssetInfo   = "assetInfo"
	FieldClips       = "clips"
	FieldClipSets    = "clipSets"
)

// Keys of a clip-set entry in the clips dictionary.
const (
	ClipKeyAssetPaths           = "assetPaths"
	ClipKeyPrimPath             = "primPath"
	ClipKeyActive               = "active"
	ClipKeyTimes                = "times"
	ClipKeyManifestAssetPath    = "manifestAssetPath"
	ClipKeyTemplateAssetPath    = "templateAssetPath"
	ClipKeyTemplateStride       = "templateStride"
	ClipKeyTemplateStartTime    = "templateStartTime"
	ClipKeyTemplateEndTime      = "templateEndTime"
	ClipKeyTemplateActiveOffset = "templateActiveOffset"
)

// Variability tokens stored in the variability field.
const (
	VariabilityVarying = "varying"
	VariabilityUniform = "uniform"
)

// IsClipRelatedField reports whether a field carries value-clip metadata.
// Changes to these fields require clip caches to be rebuilt.
func IsClipRelatedField(field string) bool {
	return field == FieldClips || field == FieldClipSets
}

// AnonymousLayerPrefix starts the identifier of every in-memory layer.
const AnonymousLayerPrefix = "anon:"

// IsAnonymousLayerIdentifier reports whether identifier names an in-memory
// layer.
func IsAnonymousLayerIdentifier(identifier string) bool {
	return strings.HasPrefix(identifier, AnonymousLayerPrefix)
}

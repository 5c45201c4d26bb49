// Package config provides the stage and layer file loaders for strata.
package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"

	"go.trai.ch/strata/internal/adapters/memlayer"
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// StageFileName is the default name of the stage file.
	StageFileName = "strata.yaml"
	// LayerFileSuffix is the suffix of layer files.
	LayerFileSuffix = ".layer.yaml"
	// RootStackName names the stage's root layer stack.
	RootStackName = "root"
	// SupportedVersion is the file format version this loader understands.
	SupportedVersion = "1"
)

var _ ports.StageLoader = (*Loader)(nil)

// Loader implements ports.StageLoader and reads layer files for the
// layer registry.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

// NewLoader creates a new Loader reading from the local filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: NewOSFS()}
}

// Load reads the stage file at path.
func (l *Loader) Load(path string) (*domain.StageDescription, error) {
	path = absolute("", path)

	var sf Stagefile
	if err := readAndUnmarshalYAML(l.FS, path, &sf, domain.ErrConfigReadFailed, domain.ErrConfigParseFailed); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	l.checkVersion(path, sf.Version)

	if sf.Root == "" {
		return nil, zerr.With(zerr.Wrap(zerr.New("root layer is required"), domain.ErrConfigParseFailed.Error()), "path", path)
	}

	baseDir := filepath.Dir(path)
	desc := &domain.StageDescription{
		Root: absolute(baseDir, sf.Root),
	}
	if sf.Session != "" {
		desc.Session = absolute(baseDir, sf.Session)
	}
	for _, sp := range sf.SearchPaths {
		desc.ResolverContext.SearchPaths = append(desc.ResolverContext.SearchPaths, absolute(baseDir, sp))
	}

	interp, ok := domain.ParseInterpolationType(sf.Interpolation)
	if !ok {
		return nil, zerr.With(zerr.With(domain.ErrConfigParseFailed, "path", path), "interpolation", sf.Interpolation)
	}
	desc.Interpolation = interp

	desc.LayerStacks = buildLayerStacks(baseDir, desc, sf.LayerStacks)

	prims, err := buildPrims(sf.Prims, desc.LayerStacks)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	desc.Prims = prims

	for _, fb := range sf.Fallbacks {
		v, err := DecodeValue(&fb.Value)
		if err != nil {
			return nil, zerr.With(zerr.With(err, "path", path), "fallback", fb.Type+"."+fb.Property)
		}
		field := fb.Field
		if field == "" {
			field = domain.FieldDefault
		}
		desc.Fallbacks = append(desc.Fallbacks, domain.FallbackDescription{
			PrimType: fb.Type,
			Property: fb.Property,
			Field:    field,
			Value:    v,
		})
	}

	return desc, nil
}

// buildLayerStacks assembles the root stack from the session layer, the
// root layer and the declared root sublayers, followed by every other
// declared stack in name order.
func buildLayerStacks(baseDir string, desc *domain.StageDescription, dtos map[string][]SublayerDTO) []domain.LayerStackDescription {
	root := domain.LayerStackDescription{Name: RootStackName}
	if desc.Session != "" {
		root.Layers = append(root.Layers, domain.SublayerRef{Identifier: desc.Session, Offset: domain.IdentityOffset()})
	}
	root.Layers = append(root.Layers, domain.SublayerRef{Identifier: desc.Root, Offset: domain.IdentityOffset()})
	root.Layers = append(root.Layers, sublayers(baseDir, dtos[RootStackName])...)

	stacks := []domain.LayerStackDescription{root}
	names := make([]string, 0, len(dtos))
	for name := range dtos {
		if name != RootStackName {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	for _, name := range names {
		stacks = append(stacks, domain.LayerStackDescription{
			Name:   name,
			Layers: sublayers(baseDir, dtos[name]),
		})
	}
	return stacks
}

func sublayers(baseDir string, dtos []SublayerDTO) []domain.SublayerRef {
	out := make([]domain.SublayerRef, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, domain.SublayerRef{
			Identifier: absolute(baseDir, dto.Layer),
			Offset:     domain.NewLayerOffset(dto.Offset, dto.Scale),
		})
	}
	return out
}

func buildPrims(dtos map[string]*PrimDTO, stacks []domain.LayerStackDescription) ([]domain.PrimDescription, error) {
	known := make(map[string]bool, len(stacks))
	for _, s := range stacks {
		known[s.Name] = len(s.Layers) > 0
	}

	paths := make([]string, 0, len(dtos))
	for p := range dtos {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	prims := make([]domain.PrimDescription, 0, len(paths))
	for _, p := range paths {
		if !domain.IsAbsolutePrimPath(p) {
			return nil, zerr.With(domain.ErrInvalidPath, "prim", p)
		}
		dto := dtos[p]
		if dto == nil {
			dto = &PrimDTO{}
		}
		prim := domain.PrimDescription{Path: domain.NewPath(p), TypeName: dto.Type}

		nodes := dto.Nodes
		if len(nodes) == 0 {
			nodes = []*NodeDTO{{Stack: RootStackName}}
		}
		for i, n := range nodes {
			node, err := buildNode(prim.Path, i, n, known)
			if err != nil {
				return nil, zerr.With(err, "prim", p)
			}
			prim.Nodes = append(prim.Nodes, node)
		}
		prims = append(prims, prim)
	}
	return prims, nil
}

func buildNode(primPath domain.Path, index int, dto *NodeDTO, known map[string]bool) (domain.NodeDescription, error) {
	stack := dto.Stack
	if stack == "" {
		stack = RootStackName
	}
	if !known[stack] {
		return domain.NodeDescription{}, zerr.With(zerr.Wrap(zerr.New("unknown layer stack"), domain.ErrConfigParseFailed.Error()), "stack", stack)
	}

	path := primPath
	if dto.Path != "" {
		if !domain.IsAbsolutePrimPath(dto.Path) {
			return domain.NodeDescription{}, zerr.With(domain.ErrInvalidPath, "node", dto.Path)
		}
		path = domain.NewPath(dto.Path)
	}

	arc, ok := domain.ParseArcType(dto.Arc)
	if !ok {
		return domain.NodeDescription{}, zerr.With(zerr.Wrap(zerr.New("unknown arc"), domain.ErrConfigParseFailed.Error()), "arc", dto.Arc)
	}

	parent := -1
	if index > 0 {
		parent = 0
	}
	if dto.Parent != nil {
		parent = *dto.Parent
	}
	if parent >= index {
		return domain.NodeDescription{}, zerr.With(zerr.Wrap(zerr.New("parent must precede its child"), domain.ErrConfigParseFailed.Error()), "node", index)
	}

	return domain.NodeDescription{
		LayerStack:    stack,
		Path:          path,
		Arc:           arc,
		DueToAncestor: dto.DueToAncestor,
		Offset:        domain.NewLayerOffset(dto.Offset, dto.Scale),
		Parent:        parent,
	}, nil
}

// ReadLayer reads the layer file with the given identifier. It has the
// signature of a registry opener.
func (l *Loader) ReadLayer(identifier string) (*memlayer.Layer, error) {
	var lf Layerfile
	if err := readAndUnmarshalYAML(l.FS, identifier, &lf, domain.ErrLayerReadFailed, domain.ErrLayerParseFailed); err != nil {
		return nil, zerr.With(err, "layer", identifier)
	}
	l.checkVersion(identifier, lf.Version)

	layer := memlayer.New(identifier)

	paths := make([]string, 0, len(lf.Prims))
	for p := range lf.Prims {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	for _, p := range paths {
		if !domain.IsAbsolutePrimPath(p) {
			return nil, zerr.With(zerr.With(domain.ErrInvalidPath, "layer", identifier), "prim", p)
		}
		if err := populatePrim(layer, domain.NewPath(p), lf.Prims[p]); err != nil {
			return nil, zerr.With(zerr.With(err, "layer", identifier), "prim", p)
		}
	}

	return layer, nil
}

func populatePrim(layer *memlayer.Layer, path domain.Path, dto *PrimSpecDTO) error {
	layer.CreateSpec(path)
	if dto == nil {
		return nil
	}

	if dto.Specifier != "" {
		spec, ok := domain.ParseSpecifier(dto.Specifier)
		if !ok {
			return zerr.With(domain.ErrInvalidValue, "specifier", dto.Specifier)
		}
		layer.SetField(path, domain.FieldSpecifier, domain.SpecifierValue(spec))
	}
	if dto.Type != "" {
		layer.SetField(path, domain.FieldTypeName, domain.Token(dto.Type))
	}
	if err := populateFields(layer, path, dto.Metadata); err != nil {
		return err
	}

	for _, name := range sortedKeys(dto.Properties) {
		prop := dto.Properties[name]
		propPath := path.AppendProperty(name)
		if err := populateProperty(layer, propPath, prop); err != nil {
			return zerr.With(err, "property", name)
		}
	}
	return nil
}

func populateProperty(layer *memlayer.Layer, path domain.Path, dto *PropertySpecDTO) error {
	layer.CreateSpec(path)
	if dto == nil {
		return nil
	}

	if dto.Variability != "" {
		if dto.Variability != domain.VariabilityVarying && dto.Variability != domain.VariabilityUniform {
			return zerr.With(domain.ErrInvalidValue, "variability", dto.Variability)
		}
		layer.SetField(path, domain.FieldVariability, domain.Token(dto.Variability))
	}
	if dto.Default != nil {
		v, err := DecodeValue(dto.Default)
		if err != nil {
			return err
		}
		layer.SetField(path, domain.FieldDefault, v)
	}
	for _, key := range sortedKeys(dto.TimeSamples) {
		t, err := strconv.ParseFloat(key, 64)
		if err != nil {
			return zerr.With(domain.ErrInvalidValue, "time", key)
		}
		node := dto.TimeSamples[key]
		v, err := DecodeValue(&node)
		if err != nil {
			return zerr.With(err, "time", key)
		}
		layer.SetTimeSample(path, t, v)
	}
	return populateFields(layer, path, dto.Metadata)
}

func populateFields(layer *memlayer.Layer, path domain.Path, fields map[string]yaml.Node) error {
	for _, key := range sortedKeys(fields) {
		node := fields[key]
		v, err := DecodeValue(&node)
		if err != nil {
			return zerr.With(err, "field", key)
		}
		layer.SetField(path, key, v)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (l *Loader) checkVersion(path, version string) {
	if version != "" && version != SupportedVersion && l.Logger != nil {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, expected %q", path, version, SupportedVersion))
	}
}

func readAndUnmarshalYAML[T any](fsys FileSystem, path string, target *T, readErr, parseErr error) error {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return zerr.Wrap(err, readErr.Error())
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, parseErr.Error())
	}
	return nil
}

// absolute joins a relative path onto baseDir and cleans the result.
func absolute(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	if baseDir == "" {
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}

package config

import "gopkg.in/yaml.v3"

// Stagefile represents the structure of the strata.yaml stage file.
type Stagefile struct {
	Version       string                   `yaml:"version"`
	Root          string                   `yaml:"root"`
	Session       string                   `yaml:"session"`
	SearchPaths   []string                 `yaml:"searchPaths"`
	Interpolation string                   `yaml:"interpolation"`
	LayerStacks   map[string][]SublayerDTO `yaml:"layerStacks"`
	Prims         map[string]*PrimDTO      `yaml:"prims"`
	Fallbacks     []FallbackDTO            `yaml:"fallbacks"`
}

// FallbackDTO declares a schema fallback value. An empty field means the
// property default.
type FallbackDTO struct {
	Type     string    `yaml:"type"`
	Property string    `yaml:"property"`
	Field    string    `yaml:"field"`
	Value    yaml.Node `yaml:"value"`
}

// SublayerDTO is one layer of a layer stack.
type SublayerDTO struct {
	Layer  string  `yaml:"layer"`
	Offset float64 `yaml:"offset"`
	Scale  float64 `yaml:"scale"`
}

// PrimDTO is the composed index of one prim.
type PrimDTO struct {
	Type  string     `yaml:"type"`
	Nodes []*NodeDTO `yaml:"nodes"`
}

// NodeDTO is one composition site of a prim.
type NodeDTO struct {
	Stack         string  `yaml:"stack"`
	Path          string  `yaml:"path"`
	Arc           string  `yaml:"arc"`
	DueToAncestor bool    `yaml:"dueToAncestor"`
	Offset        float64 `yaml:"offset"`
	Scale         float64 `yaml:"scale"`
	Parent        *int    `yaml:"parent"`
}

// Layerfile represents the structure of a *.layer.yaml file.
type Layerfile struct {
	Version string                  `yaml:"version"`
	Prims   map[string]*PrimSpecDTO `yaml:"prims"`
}

// PrimSpecDTO is a prim spec authored in a layer.
type PrimSpecDTO struct {
	Specifier  string                      `yaml:"specifier"`
	Type       string                      `yaml:"type"`
	Metadata   map[string]yaml.Node        `yaml:"metadata"`
	Properties map[string]*PropertySpecDTO `yaml:"properties"`
}

// PropertySpecDTO is an attribute spec authored in a layer.
type PropertySpecDTO struct {
	Variability string               `yaml:"variability"`
	Default     *yaml.Node           `yaml:"default"`
	TimeSamples map[string]yaml.Node `yaml:"timeSamples"`
	Metadata    map[string]yaml.Node `yaml:"metadata"`
}

package domain

// SublayerRef is one layer of a layer stack with its offset to the stack root.
type SublayerRef struct {
	Identifier string
	Offset     LayerOffset
}

// LayerStackDescription lists the layers of a stack, strongest first.
type LayerStackDescription struct {
	Name   string
	Layers []SublayerRef
}

// NodeDescription is one composition site of a prim. Parent indexes into
// the prim's node list; -1 marks the root node.
type NodeDescription struct {
	LayerStack    string
	Path          Path
	Arc           ArcType
	DueToAncestor bool
	Offset        LayerOffset
	Parent        int
}

// PrimDescription is the composed index of one prim.
type PrimDescription struct {
	Path     Path
	TypeName string
	Nodes    []NodeDescription
}

// FallbackDescription declares a schema fallback value.
type FallbackDescription struct {
	PrimType string
	Property string
	Field    string
	Value    Value
}

// StageDescription is everything needed to assemble a stage: its layer
// stacks, the composed prims and the schema fallbacks.
type StageDescription struct {
	// Root is the identifier of the root layer. The stack named after it is
	// the stage's root layer stack.
	Root            string
	Session         string
	ResolverContext ResolverContext
	Interpolation   InterpolationType
	LayerStacks     []LayerStackDescription
	Prims           []PrimDescription
	Fallbacks       []FallbackDescription
}

// Key returns the stage cache key of the description.
func (d *StageDescription) Key() StageKey {
	return NewStageKey(d.Root, d.Session, d.ResolverContext)
}

// LayerIdentifiers returns the identifier of every layer named by the
// description's layer stacks.
func (d *StageDescription) LayerIdentifiers() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, ls := range d.LayerStacks {
		for _, l := range ls.Layers {
			if _, ok := seen[l.Identifier]; ok {
				continue
			}
			seen[l.Identifier] = struct{}{}
			ids = append(ids, l.Identifier)
		}
	}
	return ids
}

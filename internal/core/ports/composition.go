package ports

import "go.trai.ch/strata/internal/core/domain"

//go:generate mockgen -source=composition.go -destination=mocks/mock_composition.go -package=mocks

// LayerStack is a root layer with its sublayers, strongest first.
type LayerStack interface {
	// Identifier returns the identifier of the stack's root layer.
	Identifier() string
	// ResolverContext returns the context asset paths are resolved under.
	ResolverContext() domain.ResolverContext
	// Layers returns the layers of the stack, strongest first.
	Layers() []Layer
	// LayerOffset returns the offset mapping times in layer index to the
	// stack's root layer.
	LayerOffset(index int) domain.LayerOffset
}

// Node is one site contributing opinions to a prim.
type Node interface {
	LayerStack() LayerStack
	// Path is the prim's path inside the node's layer stack.
	Path() domain.Path
	// HasSpecs reports whether any layer of the stack has a spec at Path.
	HasSpecs() bool
	Arc() domain.ArcType
	// IsDueToAncestor reports whether the arc was introduced on an ancestor.
	IsDueToAncestor() bool
	// Parent returns the node that introduced this one, or nil for the root.
	Parent() Node
	// MapToRootOffset maps times in this node to the root node.
	MapToRootOffset() domain.LayerOffset
}

// PrimIndex is the ordered list of sites contributing to one prim.
type PrimIndex interface {
	Path() domain.Path
	// TypeName returns the composed schema type of the prim.
	TypeName() string
	// Nodes returns the contributing nodes, strongest first.
	Nodes() []Node
}

// Composer answers prim index queries for a composed stage.
type Composer interface {
	// PrimIndex returns the index for the prim at path.
	PrimIndex(path domain.Path) (PrimIndex, bool)
	// Prims returns every composed prim path, parents before children.
	Prims() []domain.Path
}

// Package scene assembles the static composition graph of a stage from its
// description and the layers held by the registry.
package scene

import (
	"slices"
	"strings"

	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.LayerStack = (*LayerStack)(nil)
	_ ports.Node       = (*Node)(nil)
	_ ports.PrimIndex  = (*PrimIndex)(nil)
	_ ports.Composer   = (*Composer)(nil)
)

// LayerStack is an ordered list of open layers, strongest first.
type LayerStack struct {
	identifier string
	ctx        domain.ResolverContext
	layers     []ports.Layer
	offsets    []domain.LayerOffset
}

// NewLayerStack creates a stack. offsets may be shorter than layers; missing
// entries are the identity.
func NewLayerStack(identifier string, ctx domain.ResolverContext, layers []ports.Layer, offsets []domain.LayerOffset) *LayerStack {
	return &LayerStack{identifier: identifier, ctx: ctx, layers: layers, offsets: offsets}
}

// Identifier returns the identifier of the stack's root layer.
func (s *LayerStack) Identifier() string { return s.identifier }

// ResolverContext returns the context asset paths in the stack resolve under.
func (s *LayerStack) ResolverContext() domain.ResolverContext { return s.ctx }

// Layers returns the stack's layers, strongest first.
func (s *LayerStack) Layers() []ports.Layer { return s.layers }

// LayerOffset returns the offset of layer index to the stack root.
func (s *LayerStack) LayerOffset(index int) domain.LayerOffset {
	if index < 0 || index >= len(s.offsets) {
		return domain.IdentityOffset()
	}
	return s.offsets[index]
}

// Uses reports whether the stack contains the layer with identifier.
func (s *LayerStack) Uses(identifier string) bool {
	return slices.ContainsFunc(s.layers, func(l ports.Layer) bool { return l.Identifier() == identifier })
}

// NodeParams describes a node to construct.
type NodeParams struct {
	Stack         *LayerStack
	Path          domain.Path
	Arc           domain.ArcType
	DueToAncestor bool
	// Offset maps times in the node to its parent.
	Offset domain.LayerOffset
	Parent *Node
}

// Node is one site contributing opinions to a prim.
type Node struct {
	stack         *LayerStack
	path          domain.Path
	arc           domain.ArcType
	dueToAncestor bool
	parent        *Node
	toRoot        domain.LayerOffset
}

// NewNode creates a node and computes its offset to the root node.
func NewNode(p NodeParams) *Node {
	toRoot := p.Offset
	if toRoot.Scale == 0 {
		toRoot = domain.NewLayerOffset(toRoot.Offset, 1)
	}
	if p.Parent != nil {
		toRoot = p.Parent.toRoot.Compose(toRoot)
	}
	return &Node{
		stack:         p.Stack,
		path:          p.Path,
		arc:           p.Arc,
		dueToAncestor: p.DueToAncestor,
		parent:        p.Parent,
		toRoot:        toRoot,
	}
}

// LayerStack returns the layer stack the node reads opinions from.
func (n *Node) LayerStack() ports.LayerStack { return n.stack }

// Path returns the prim's path inside the node's layer stack.
func (n *Node) Path() domain.Path { return n.path }

// Arc returns the arc that introduced the node.
func (n *Node) Arc() domain.ArcType { return n.arc }

// IsDueToAncestor reports whether the arc was authored on an ancestor prim.
func (n *Node) IsDueToAncestor() bool { return n.dueToAncestor }

// HasSpecs reports whether any layer of the stack authors the node's path.
// It is evaluated on every call so reloaded layers are seen.
func (n *Node) HasSpecs() bool {
	return slices.ContainsFunc(n.stack.layers, func(l ports.Layer) bool { return l.HasSpec(n.path) })
}

// Parent returns the introducing node. A nil *Node is returned as a nil
// interface.
func (n *Node) Parent() ports.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// MapToRootOffset returns the offset mapping times in the node to the root
// node.
func (n *Node) MapToRootOffset() domain.LayerOffset { return n.toRoot }

// PrimIndex is the ordered list of nodes contributing to one prim.
type PrimIndex struct {
	path     domain.Path
	typeName string
	nodes    []*Node
}

// NewPrimIndex creates an index with nodes ordered strongest first.
func NewPrimIndex(path domain.Path, typeName string, nodes ...*Node) *PrimIndex {
	return &PrimIndex{path: path, typeName: typeName, nodes: nodes}
}

// Path returns the composed prim's path.
func (p *PrimIndex) Path() domain.Path { return p.path }

// TypeName returns the declared type, or the first typeName field authored
// across the nodes.
func (p *PrimIndex) TypeName() string {
	if p.typeName != "" {
		return p.typeName
	}
	for _, n := range p.nodes {
		for _, l := range n.stack.layers {
			if v, ok := l.Field(n.path, domain.FieldTypeName); ok {
				if s, isString := v.AsString(); isString {
					return s
				}
			}
		}
	}
	return ""
}

// Nodes returns the contributing nodes, strongest first.
func (p *PrimIndex) Nodes() []ports.Node {
	out := make([]ports.Node, len(p.nodes))
	for i, n := range p.nodes {
		out[i] = n
	}
	return out
}

// Composer answers prim index queries for one stage.
type Composer struct {
	root   *LayerStack
	stacks map[string]*LayerStack
	prims  map[domain.Path]*PrimIndex
	order  []domain.Path
}

// Compose opens every layer named by desc through registry and builds the
// prim indexes it declares.
func Compose(desc *domain.StageDescription, registry ports.LayerRegistry) (*Composer, error) {
	c := &Composer{
		stacks: make(map[string]*LayerStack, len(desc.LayerStacks)),
		prims:  make(map[domain.Path]*PrimIndex, len(desc.Prims)),
	}

	for i, sd := range desc.LayerStacks {
		layers := make([]ports.Layer, 0, len(sd.Layers))
		offsets := make([]domain.LayerOffset, 0, len(sd.Layers))
		for _, ref := range sd.Layers {
			l, err := registry.FindOrOpen(ref.Identifier)
			if err != nil {
				return nil, zerr.With(err, "stack", sd.Name)
			}
			layers = append(layers, l)
			offsets = append(offsets, ref.Offset)
		}
		identifier := sd.Name
		if len(layers) > 0 {
			identifier = layers[0].Identifier()
		}
		stack := NewLayerStack(identifier, desc.ResolverContext, layers, offsets)
		c.stacks[sd.Name] = stack
		if i == 0 {
			c.root = stack
		}
	}

	for _, pd := range desc.Prims {
		nodes := make([]*Node, 0, len(pd.Nodes))
		for _, nd := range pd.Nodes {
			stack, ok := c.stacks[nd.LayerStack]
			if !ok {
				return nil, zerr.With(zerr.With(domain.ErrPrimNotFound, "prim", pd.Path.String()), "stack", nd.LayerStack)
			}
			var parent *Node
			if nd.Parent >= 0 && nd.Parent < len(nodes) {
				parent = nodes[nd.Parent]
			}
			nodes = append(nodes, NewNode(NodeParams{
				Stack:         stack,
				Path:          nd.Path,
				Arc:           nd.Arc,
				DueToAncestor: nd.DueToAncestor,
				Offset:        nd.Offset,
				Parent:        parent,
			}))
		}
		c.prims[pd.Path] = NewPrimIndex(pd.Path, pd.TypeName, nodes...)
		c.order = append(c.order, pd.Path)
	}
	slices.SortFunc(c.order, func(a, b domain.Path) int { return strings.Compare(a.String(), b.String()) })

	return c, nil
}

// PrimIndex returns the index of the prim at path.
func (c *Composer) PrimIndex(path domain.Path) (ports.PrimIndex, bool) {
	idx, ok := c.prims[path]
	if !ok {
		return nil, false
	}
	return idx, true
}

// Prims returns every prim path, parents before children.
func (c *Composer) Prims() []domain.Path {
	return slices.Clone(c.order)
}

// RootStack returns the stage's root layer stack.
func (c *Composer) RootStack() *LayerStack {
	return c.root
}

// PrimsUsingLayer returns the prims with a node whose stack contains the
// layer with identifier, parents before children.
func (c *Composer) PrimsUsingLayer(identifier string) []domain.Path {
	var out []domain.Path
	for _, p := range c.order {
		if slices.ContainsFunc(c.prims[p].nodes, func(n *Node) bool { return n.stack.Uses(identifier) }) {
			out = append(out, p)
		}
	}
	return out
}

package resolve

import (
	"go.trai.ch/strata/internal/core/domain"
	"go.trai.ch/strata/internal/core/ports"
	"go.trai.ch/strata/internal/engine/clips"
)

// Object addresses a composed prim, or one of its properties when Name is
// set.
type Object struct {
	Prim ports.PrimIndex
	Name string
}

// Prim addresses the prim of idx.
func Prim(idx ports.PrimIndex) Object {
	return Object{Prim: idx}
}

// Attr addresses the attribute name of the prim of idx.
func Attr(idx ports.PrimIndex, name string) Object {
	return Object{Prim: idx, Name: name}
}

// Path returns the stage path of the object.
func (o Object) Path() domain.Path {
	if o.Prim == nil {
		return domain.Path{}
	}
	return o.pathIn(o.Prim.Path())
}

// pathIn maps the object onto the prim at primPath of a composition site.
func (o Object) pathIn(primPath domain.Path) domain.Path {
	if o.Name == "" {
		return primPath
	}
	return primPath.AppendProperty(o.Name)
}

func (o Object) String() string {
	if p := o.Path(); !p.IsEmpty() {
		return p.String()
	}
	return "<invalid>"
}

// Info records which source answered a value query.
type Info struct {
	Source domain.Source
	Node   ports.Node
	// LayerStack and LayerIndex locate the layer holding the opinion. For
	// clip sources LayerIndex is the layer the clip metadata was authored in.
	LayerStack           ports.LayerStack
	LayerIndex           int
	PrimPathInLayerStack domain.Path
	// Clip and ClipSet are set for ValueClips and IsTimeDependent sources.
	Clip    *clips.Clip
	ClipSet *clips.ClipSet
	// Lower and Upper bracket the queried time. They are in layer time for
	// TimeSamples and in stage time for ValueClips.
	Lower          float64
	Upper          float64
	ValueIsBlocked bool

	value  domain.Value
	offset *domain.LayerOffset
}

// HasOpinion reports whether an authored source or a fallback was found.
func (i *Info) HasOpinion() bool {
	return i.Source != domain.SourceNone
}

// LayerToStageOffset maps times in the contributing layer to stage time.
// It is computed on first use.
func (i *Info) LayerToStageOffset() domain.LayerOffset {
	if i.offset != nil {
		return *i.offset
	}
	o := domain.IdentityOffset()
	if i.Node != nil {
		o = layerToStage(i.Node, i.LayerIndex)
	}
	i.offset = &o
	return o
}

// Layer returns the layer holding a TimeSamples or Default opinion.
func (i *Info) Layer() (ports.Layer, bool) {
	if i.LayerStack == nil {
		return nil, false
	}
	layers := i.LayerStack.Layers()
	if i.LayerIndex < 0 || i.LayerIndex >= len(layers) {
		return nil, false
	}
	return layers[i.LayerIndex], true
}

func layerToStage(node ports.Node, index int) domain.LayerOffset {
	return node.MapToRootOffset().Compose(node.LayerStack().LayerOffset(index))
}

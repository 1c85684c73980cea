package wavefront

import "fmt"

// Vertex is a geometric vertex, position (x, y, z) with an optional
// homogeneous weight w (defaults to 1 when the OBJ source omits it).
type Vertex struct {
	X, Y, Z, W float64
}

func (v Vertex) String() string {
	return fmt.Sprintf("v  %v  %v  %v  %v", v.X, v.Y, v.Z, v.W)
}

// TextureVertex is a texture coordinate (u, v, w); v and w default to 0.
type TextureVertex struct {
	U, V, W float64
}

func (vt TextureVertex) String() string {
	return fmt.Sprintf("vt  %v  %v  %v", vt.U, vt.V, vt.W)
}

// NormalVertex is a vertex normal (i, j, k). Normals need not be unit length.
type NormalVertex struct {
	I, J, K float64
}

func (vn NormalVertex) String() string {
	return fmt.Sprintf("vn  %v  %v  %v", vn.I, vn.J, vn.K)
}

// VTNKind tags which combination of vertex/texture/normal indices a VTNIndex
// carries.
type VTNKind int

const (
	VTNKindV VTNKind = iota
	VTNKindVT
	VTNKindVN
	VTNKindVTN
)

// VTNIndex is a 1-based reference into an Object's vertex, texture vertex
// and/or normal vertex sets, in one of the four shapes OBJ allows on a face,
// line or point element: "v", "v/vt", "v//vn" or "v/vt/vn".
type VTNIndex struct {
	Kind VTNKind
	V    int
	VT   int
	VN   int
}

func NewVTNIndexV(v int) VTNIndex               { return VTNIndex{Kind: VTNKindV, V: v} }
func NewVTNIndexVT(v, vt int) VTNIndex           { return VTNIndex{Kind: VTNKindVT, V: v, VT: vt} }
func NewVTNIndexVN(v, vn int) VTNIndex           { return VTNIndex{Kind: VTNKindVN, V: v, VN: vn} }
func NewVTNIndexVTN(v, vt, vn int) VTNIndex      { return VTNIndex{Kind: VTNKindVTN, V: v, VT: vt, VN: vn} }

// HasSameTypeAs reports whether two VTNIndex values have the same kind. OBJ
// requires every index on a given element line to agree in shape.
func (idx VTNIndex) HasSameTypeAs(other VTNIndex) bool {
	return idx.Kind == other.Kind
}

func (idx VTNIndex) String() string {
	switch idx.Kind {
	case VTNKindV:
		return fmt.Sprintf("%d", idx.V)
	case VTNKindVT:
		return fmt.Sprintf("%d/%d", idx.V, idx.VT)
	case VTNKindVN:
		return fmt.Sprintf("%d//%d", idx.V, idx.VN)
	case VTNKindVTN:
		return fmt.Sprintf("%d/%d/%d", idx.V, idx.VT, idx.VN)
	default:
		return ""
	}
}

// ElementKind tags which kind of primitive an Element represents.
type ElementKind int

const (
	ElementKindPoint ElementKind = iota
	ElementKindLine
	ElementKindFace
)

// Element is a point, line or (triangulated) face, each referencing one to
// three VTNIndex values depending on kind.
type Element struct {
	Kind ElementKind
	A, B, C VTNIndex
}

func NewPoint(a VTNIndex) Element       { return Element{Kind: ElementKindPoint, A: a} }
func NewLine(a, b VTNIndex) Element     { return Element{Kind: ElementKindLine, A: a, B: b} }
func NewFace(a, b, c VTNIndex) Element  { return Element{Kind: ElementKindFace, A: a, B: b, C: c} }

func (e Element) String() string {
	switch e.Kind {
	case ElementKindPoint:
		return fmt.Sprintf("p  %s", e.A)
	case ElementKindLine:
		return fmt.Sprintf("l  %s  %s", e.A, e.B)
	case ElementKindFace:
		return fmt.Sprintf("f  %s  %s  %s", e.A, e.B, e.C)
	default:
		return ""
	}
}

// Group is a named OBJ group ("g" statement). The zero value is not a valid
// Group; use NewGroup or DefaultGroup.
type Group struct {
	name string
}

func NewGroup(name string) Group { return Group{name: name} }

// DefaultGroup is the implicit group every element belongs to until the
// first "g" statement in an object.
func DefaultGroup() Group { return NewGroup("default") }

func (g Group) Name() string   { return g.name }
func (g Group) String() string { return g.name }

// SmoothingGroup is a smoothing group index ("s" statement). Zero means
// smoothing is off and renders as "off".
type SmoothingGroup struct {
	index int
}

func NewSmoothingGroup(index int) SmoothingGroup { return SmoothingGroup{index: index} }

// DefaultSmoothingGroup is the implicit smoothing group ("off") every
// element belongs to until the first "s" statement in an object.
func DefaultSmoothingGroup() SmoothingGroup { return SmoothingGroup{index: 0} }

func (s SmoothingGroup) Index() int { return s.index }

func (s SmoothingGroup) String() string {
	if s.index == 0 {
		return "off"
	}
	return fmt.Sprintf("%d", s.index)
}

// ShapeEntry binds one element (by 1-based index into Object.ElementSet) to
// the groups and smoothing group that were active when it was parsed.
type ShapeEntry struct {
	Element        int
	Groups         []int
	SmoothingGroup int
}

func NewShapeEntry(element int, groups []int, smoothingGroup int) ShapeEntry {
	g := make([]int, len(groups))
	copy(g, groups)
	return ShapeEntry{Element: element, Groups: g, SmoothingGroup: smoothingGroup}
}

func groupsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// VTNTriple resolves a VTNIndex against the Vertex/TextureVertex/NormalVertex
// values it references.
type VTNTriple struct {
	Kind VTNKind
	V    Vertex
	VT   TextureVertex
	VN   NormalVertex
}

// Object is one "o"-delimited (or implicit, file-leading) object: its own
// vertex/texture/normal sets, its groups and smoothing groups, and the
// elements and shape entries built from them.
type Object struct {
	Name              string
	VertexSet         []Vertex
	TextureVertexSet  []TextureVertex
	NormalVertexSet   []NormalVertex
	GroupSet          []Group
	SmoothingGroupSet []SmoothingGroup
	ElementSet        []Element
	ShapeSet          []ShapeEntry
}

// GetVTNTriple resolves a VTNIndex against this Object's vertex, texture
// vertex and normal vertex sets. It reports false if any referenced index is
// out of range.
func (o *Object) GetVTNTriple(index VTNIndex) (VTNTriple, bool) {
	vertexAt := func(i int) (Vertex, bool) {
		if i < 1 || i > len(o.VertexSet) {
			return Vertex{}, false
		}
		return o.VertexSet[i-1], true
	}
	textureAt := func(i int) (TextureVertex, bool) {
		if i < 1 || i > len(o.TextureVertexSet) {
			return TextureVertex{}, false
		}
		return o.TextureVertexSet[i-1], true
	}
	normalAt := func(i int) (NormalVertex, bool) {
		if i < 1 || i > len(o.NormalVertexSet) {
			return NormalVertex{}, false
		}
		return o.NormalVertexSet[i-1], true
	}

	switch index.Kind {
	case VTNKindV:
		v, ok := vertexAt(index.V)
		if !ok {
			return VTNTriple{}, false
		}
		return VTNTriple{Kind: VTNKindV, V: v}, true
	case VTNKindVT:
		v, ok := vertexAt(index.V)
		if !ok {
			return VTNTriple{}, false
		}
		vt, ok := textureAt(index.VT)
		if !ok {
			return VTNTriple{}, false
		}
		return VTNTriple{Kind: VTNKindVT, V: v, VT: vt}, true
	case VTNKindVN:
		v, ok := vertexAt(index.V)
		if !ok {
			return VTNTriple{}, false
		}
		vn, ok := normalAt(index.VN)
		if !ok {
			return VTNTriple{}, false
		}
		return VTNTriple{Kind: VTNKindVN, V: v, VN: vn}, true
	case VTNKindVTN:
		v, ok := vertexAt(index.V)
		if !ok {
			return VTNTriple{}, false
		}
		vt, ok := textureAt(index.VT)
		if !ok {
			return VTNTriple{}, false
		}
		vn, ok := normalAt(index.VN)
		if !ok {
			return VTNTriple{}, false
		}
		return VTNTriple{Kind: VTNKindVTN, V: v, VT: vt, VN: vn}, true
	default:
		return VTNTriple{}, false
	}
}

// String renders a human-readable debug dump of the object, not OBJ text.
// Use TextObjectCompositor.Compose, or Compose with a TextObjectSetCompositor,
// to emit OBJ text.
func (o *Object) String() string {
	return (&DisplayObjectCompositor{}).ComposeObject(o)
}

// ObjectSet is an ordered collection of Objects parsed from one source.
type ObjectSet struct {
	Objects []Object
}

func NewObjectSet(objects []Object) ObjectSet {
	return ObjectSet{Objects: objects}
}

func (s ObjectSet) Len() int { return len(s.Objects) }

func (s ObjectSet) String() string {
	return (&DisplayObjectSetCompositor{}).Compose(s)
}

// ObjectBuilder assembles an Object from its constituent sets, applying the
// defaults spec.md requires when a set is never supplied: empty texture/
// normal/group/element/shape sets, and a single default smoothing group.
type ObjectBuilder struct {
	name              string
	hasName           bool
	vertexSet         []Vertex
	textureVertexSet  []TextureVertex
	normalVertexSet   []NormalVertex
	groupSet          []Group
	smoothingGroupSet []SmoothingGroup
	elementSet        []Element
	shapeSet          []ShapeEntry
}

func NewObjectBuilder(vertexSet []Vertex, elementSet []Element) *ObjectBuilder {
	return &ObjectBuilder{vertexSet: vertexSet, elementSet: elementSet}
}

func (b *ObjectBuilder) WithName(name string) *ObjectBuilder {
	b.name, b.hasName = name, true
	return b
}

func (b *ObjectBuilder) WithTextureVertexSet(set []TextureVertex) *ObjectBuilder {
	b.textureVertexSet = set
	return b
}

func (b *ObjectBuilder) WithNormalVertexSet(set []NormalVertex) *ObjectBuilder {
	b.normalVertexSet = set
	return b
}

func (b *ObjectBuilder) WithGroupSet(set []Group) *ObjectBuilder {
	b.groupSet = set
	return b
}

func (b *ObjectBuilder) WithSmoothingGroupSet(set []SmoothingGroup) *ObjectBuilder {
	b.smoothingGroupSet = set
	return b
}

func (b *ObjectBuilder) WithShapeSet(set []ShapeEntry) *ObjectBuilder {
	b.shapeSet = set
	return b
}

func (b *ObjectBuilder) Build() Object {
	smoothingGroupSet := b.smoothingGroupSet
	if smoothingGroupSet == nil {
		smoothingGroupSet = []SmoothingGroup{DefaultSmoothingGroup()}
	}
	return Object{
		Name:              b.name,
		VertexSet:         b.vertexSet,
		TextureVertexSet:  b.textureVertexSet,
		NormalVertexSet:   b.normalVertexSet,
		GroupSet:          b.groupSet,
		SmoothingGroupSet: smoothingGroupSet,
		ElementSet:        b.elementSet,
		ShapeSet:          b.shapeSet,
	}
}

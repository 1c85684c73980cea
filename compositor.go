package wavefront

import (
	"fmt"
	"strings"
)

// Compositor serializes an ObjectSet to text. Two flavors are provided:
// TextObjectSetCompositor emits valid, round-trippable OBJ text;
// DisplayObjectSetCompositor emits a human-readable debug dump. Callers pick
// the flavor at construction time (the strategy pattern), never by type
// assertion.
type Compositor interface {
	Compose(objectSet ObjectSet) string
}

// groupingStatementKind tags whether a groupingStatement is a "g" or "s"
// line.
type groupingStatementKind int

const (
	groupingStatementG groupingStatementKind = iota
	groupingStatementS
)

type groupingStatement struct {
	kind       groupingStatementKind
	groups     []Group
	smoothing  SmoothingGroup
}

func gStatement(groups []Group) groupingStatement {
	return groupingStatement{kind: groupingStatementG, groups: groups}
}

func sStatement(sg SmoothingGroup) groupingStatement {
	return groupingStatement{kind: groupingStatementS, smoothing: sg}
}

// elementInterval is a half-open [Min, Max) range of 1-based element
// indices sharing one set of grouping statements.
type elementInterval struct {
	Min, Max int
}

type instructionEntry struct {
	interval     elementInterval
	statements   []groupingStatement
}

// generateMissingGroups finds groups and smoothing groups that contain no
// elements at all, by noticing gaps in the monotone increasing group and
// smoothing-group indices recorded on each ShapeEntry. Gaps can occur before
// the first interval, between two intervals, or after the last interval.
func generateMissingGroups(object *Object) []instructionEntry {
	var entries []instructionEntry

	initialGroup := object.ShapeSet[0].Groups[0]
	initialSmoothingGroup := object.ShapeSet[0].SmoothingGroup

	var current []groupingStatement
	for groupIndex := 1; groupIndex < initialGroup; groupIndex++ {
		current = append(current, gStatement([]Group{object.GroupSet[groupIndex-1]}))
	}
	for sgIndex := 1; sgIndex < initialSmoothingGroup; sgIndex++ {
		current = append(current, sStatement(object.SmoothingGroupSet[sgIndex-1]))
	}

	currentEntry := object.ShapeSet[0]
	minElement := 1
	maxElement := 1
	for _, shapeEntry := range object.ShapeSet {
		if !groupsEqual(shapeEntry.Groups, currentEntry.Groups) || shapeEntry.SmoothingGroup != currentEntry.SmoothingGroup {
			entries = append(entries, instructionEntry{elementInterval{minElement, maxElement}, current})
			current = nil

			if !groupsEqual(shapeEntry.Groups, currentEntry.Groups) {
				gapStart := 1 + currentEntry.Groups[len(currentEntry.Groups)-1]
				gapEnd := shapeEntry.Groups[0]
				for groupIndex := gapStart; groupIndex < gapEnd; groupIndex++ {
					current = append(current, gStatement([]Group{object.GroupSet[groupIndex-1]}))
				}
			}

			if shapeEntry.SmoothingGroup != currentEntry.SmoothingGroup {
				gapStart := 1 + currentEntry.SmoothingGroup
				gapEnd := shapeEntry.SmoothingGroup
				for sgIndex := gapStart; sgIndex < gapEnd; sgIndex++ {
					current = append(current, sStatement(object.SmoothingGroupSet[sgIndex-1]))
				}
			}

			currentEntry = shapeEntry
			minElement = maxElement
		}
		maxElement++
	}

	entries = append(entries, instructionEntry{elementInterval{minElement, maxElement}, current})
	minElement = maxElement

	finalShapeEntry := object.ShapeSet[minElement-2]
	finalGroup := finalShapeEntry.Groups[len(finalShapeEntry.Groups)-1]
	finalSmoothingGroup := finalShapeEntry.SmoothingGroup
	var final []groupingStatement
	for groupIndex := finalGroup + 1; groupIndex <= len(object.GroupSet); groupIndex++ {
		final = append(final, gStatement([]Group{object.GroupSet[groupIndex-1]}))
	}
	for sgIndex := finalSmoothingGroup + 1; sgIndex <= len(object.SmoothingGroupSet); sgIndex++ {
		final = append(final, sStatement(object.SmoothingGroupSet[sgIndex-1]))
	}
	entries = append(entries, instructionEntry{elementInterval{minElement, minElement}, final})

	return entries
}

// generateFoundGroups places the grouping statements for the groups and
// smoothing groups that do contain elements.
func generateFoundGroups(object *Object) []instructionEntry {
	var entries []instructionEntry

	minElement := 1
	maxElement := 1
	currentEntry := object.ShapeSet[0]

	groupsAt := func(indices []int) []Group {
		groups := make([]Group, 0, len(indices))
		for _, idx := range indices {
			groups = append(groups, object.GroupSet[idx-1])
		}
		return groups
	}

	current := []groupingStatement{
		gStatement(groupsAt(currentEntry.Groups)),
		sStatement(object.SmoothingGroupSet[currentEntry.SmoothingGroup-1]),
	}

	for _, shapeEntry := range object.ShapeSet {
		if !groupsEqual(shapeEntry.Groups, currentEntry.Groups) || shapeEntry.SmoothingGroup != currentEntry.SmoothingGroup {
			entries = append(entries, instructionEntry{elementInterval{minElement, maxElement}, current})
			current = nil

			if !groupsEqual(shapeEntry.Groups, currentEntry.Groups) {
				current = append(current, gStatement(groupsAt(shapeEntry.Groups)))
			}
			if shapeEntry.SmoothingGroup != currentEntry.SmoothingGroup {
				current = append(current, sStatement(object.SmoothingGroupSet[shapeEntry.SmoothingGroup-1]))
			}

			currentEntry = shapeEntry
			minElement = maxElement
		}
		maxElement++
	}

	entries = append(entries, instructionEntry{elementInterval{minElement, maxElement}, current})
	minElement = maxElement
	entries = append(entries, instructionEntry{elementInterval{minElement, minElement}, nil})

	return entries
}

// generateInstructions merges the missing-group and found-group entries for
// an object, interval by interval, so that any implicit (empty) groups or
// smoothing groups are emitted immediately before the statements for the
// elements that follow them.
func generateInstructions(object *Object) []instructionEntry {
	missing := generateMissingGroups(object)
	found := generateFoundGroups(object)

	merged := make([]instructionEntry, 0, len(missing))
	for i := range missing {
		statements := append(append([]groupingStatement{}, missing[i].statements...), found[i].statements...)
		merged = append(merged, instructionEntry{missing[i].interval, statements})
	}
	return merged
}

// DisplayObjectCompositor renders a human-readable debug dump of an Object,
// not valid OBJ text.
type DisplayObjectCompositor struct{}

func composeSet[T fmt.Stringer](set []T, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "    %s set:\n", name)
	if len(set) == 0 {
		b.WriteString("        data: []\n")
	} else {
		fmt.Fprintf(&b, "        data: [(%s) ... (%s)]\n", set[0], set[len(set)-1])
	}
	fmt.Fprintf(&b, "        length: %d\n", len(set))
	return b.String()
}

func (c *DisplayObjectCompositor) ComposeObject(object *Object) string {
	var b strings.Builder
	b.WriteString("Object {\n")
	fmt.Fprintf(&b, "    name: %s\n", object.Name)
	b.WriteString(composeSet(object.VertexSet, "vertex"))
	b.WriteString(composeSet(object.TextureVertexSet, "texture vertex"))
	b.WriteString(composeSet(object.NormalVertexSet, "normal vertex"))
	b.WriteString(composeSet(object.GroupSet, "group"))
	b.WriteString(composeSet(object.SmoothingGroupSet, "smoothing group"))
	b.WriteString(composeSet(object.ElementSet, "element"))
	b.WriteString("}\n")
	return b.String()
}

func (c *DisplayObjectCompositor) Compose(objectSet ObjectSet) string {
	return (&DisplayObjectSetCompositor{}).Compose(objectSet)
}

// DisplayObjectSetCompositor is the default compositor for presenting an
// ObjectSet to a human rather than to another OBJ reader.
type DisplayObjectSetCompositor struct{}

func (c *DisplayObjectSetCompositor) Compose(objectSet ObjectSet) string {
	inner := &DisplayObjectCompositor{}
	var b strings.Builder
	b.WriteString("ObjectSet {\n")
	for i := range objectSet.Objects {
		b.WriteString(inner.ComposeObject(&objectSet.Objects[i]))
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// TextObjectCompositor generates a Wavefront OBJ text block from an Object.
type TextObjectCompositor struct{}

func (c *TextObjectCompositor) composeObjectName(object *Object) string {
	if object.Name == "" {
		return ""
	}
	return fmt.Sprintf("o  %s\n", object.Name)
}

func (c *TextObjectCompositor) composeGroups(groups []Group) string {
	var b strings.Builder
	b.WriteString("g  ")
	for _, g := range groups {
		fmt.Fprintf(&b, "%s  ", g)
	}
	b.WriteString("\n")
	return b.String()
}

func (c *TextObjectCompositor) composeSmoothingGroup(sg SmoothingGroup) string {
	return fmt.Sprintf("s  %s\n", sg)
}

func (c *TextObjectCompositor) composeVertexSet(object *Object) string {
	var b strings.Builder
	for _, v := range object.VertexSet {
		if v.W == 1.0 {
			fmt.Fprintf(&b, "v  %v  %v  %v\n", v.X, v.Y, v.Z)
		} else {
			fmt.Fprintf(&b, "v  %v  %v  %v  %v\n", v.X, v.Y, v.Z, v.W)
		}
	}
	return b.String()
}

func (c *TextObjectCompositor) composeTextureVertexSet(object *Object) string {
	var b strings.Builder
	for _, vt := range object.TextureVertexSet {
		fmt.Fprintf(&b, "vt  %v  %v  %v \n", vt.U, vt.V, vt.W)
	}
	return b.String()
}

func (c *TextObjectCompositor) composeNormalVertexSet(object *Object) string {
	var b strings.Builder
	for _, vn := range object.NormalVertexSet {
		fmt.Fprintf(&b, "vn  %v  %v  %v \n", vn.I, vn.J, vn.K)
	}
	return b.String()
}

func (c *TextObjectCompositor) composeElements(object *Object, interval elementInterval) string {
	var b strings.Builder
	for i := interval.Min; i < interval.Max; i++ {
		fmt.Fprintf(&b, "%s\n", object.ElementSet[i-1])
	}
	return b.String()
}

func (c *TextObjectCompositor) composeInstructions(statements []groupingStatement) string {
	var b strings.Builder
	for _, s := range statements {
		switch s.kind {
		case groupingStatementG:
			b.WriteString(c.composeGroups(s.groups))
		case groupingStatementS:
			b.WriteString(c.composeSmoothingGroup(s.smoothing))
		}
	}
	return b.String()
}

func composeCountComment(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("# %d %s\n", count, singular)
	}
	return fmt.Sprintf("# %d %s\n", count, plural)
}

func (c *TextObjectCompositor) Compose(object *Object) string {
	var b strings.Builder
	b.WriteString(c.composeObjectName(object))

	b.WriteString(c.composeVertexSet(object))
	b.WriteString(composeCountComment(len(object.VertexSet), "vertex", "vertices"))
	b.WriteString("\n")

	b.WriteString(c.composeTextureVertexSet(object))
	b.WriteString(composeCountComment(len(object.TextureVertexSet), "texture vertex", "texture vertices"))
	b.WriteString("\n")

	b.WriteString(c.composeNormalVertexSet(object))
	b.WriteString(composeCountComment(len(object.NormalVertexSet), "normal vertex", "normal vertices"))
	b.WriteString("\n")

	if len(object.ShapeSet) > 0 {
		for _, entry := range generateInstructions(object) {
			b.WriteString(c.composeInstructions(entry.statements))
			b.WriteString(c.composeElements(object, entry.interval))
			count := entry.interval.Max - entry.interval.Min
			b.WriteString(composeCountComment(count, "element", "elements"))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// TextObjectSetCompositor generates a complete Wavefront OBJ file from an
// ObjectSet, one BEGIN/END-delimited block per Object.
type TextObjectSetCompositor struct{}

func (c *TextObjectSetCompositor) Compose(objectSet ObjectSet) string {
	inner := &TextObjectCompositor{}
	var b strings.Builder
	for i := range objectSet.Objects {
		fmt.Fprintf(&b, "# ### BEGIN Object %d\n", i+1)
		b.WriteString(inner.Compose(&objectSet.Objects[i]))
		fmt.Fprintf(&b, "# ### END Object %d\n", i+1)
		b.WriteString("\n")
	}
	return b.String()
}

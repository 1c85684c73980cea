package wavefront

import (
	"reflect"
	"strings"
	"testing"
)

// Ported from a one-element, multi-group object case: three empty groups and
// one empty smoothing group precede the element's own group/smoothing group,
// and one more empty group plus one more empty smoothing group follow it.
//
//	o  Object1
//	v  -36.84435  -31.289864  -23.619797  -8.21862
//	vt  -44.275238  28.583176  -23.780418
//	vn  93.94331  -61.460472  -32.00753
//	g  Group0
//	g  Group1
//	s  0
//	g  Group2
//	s  1
//	g  Group3
//	f 1/1/1 1/1/1 1/1/1
//	g  Group4
//	s  2
func compositorTestObject() Object {
	return Object{
		Name:              "Object1",
		VertexSet:         []Vertex{{X: -36.84435, Y: -31.289864, Z: -23.619797, W: -8.21862}},
		TextureVertexSet:  []TextureVertex{{U: -44.275238, V: 28.583176, W: -23.780418}},
		NormalVertexSet:   []NormalVertex{{I: 93.94331, J: -61.460472, K: -32.00753}},
		GroupSet:          []Group{NewGroup("Group0"), NewGroup("Group1"), NewGroup("Group2"), NewGroup("Group3"), NewGroup("Group4")},
		SmoothingGroupSet: []SmoothingGroup{NewSmoothingGroup(0), NewSmoothingGroup(1), NewSmoothingGroup(2)},
		ElementSet: []Element{
			NewFace(NewVTNIndexVTN(1, 1, 1), NewVTNIndexVTN(1, 1, 1), NewVTNIndexVTN(1, 1, 1)),
		},
		ShapeSet: []ShapeEntry{NewShapeEntry(1, []int{4}, 2)},
	}
}

func statementsEqual(t *testing.T, got, want []groupingStatement) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("statement count = %d, want %d (got %v, want %v)", len(got), len(want), got, want)
	}
	for i := range want {
		if !reflect.DeepEqual(got[i], want[i]) {
			t.Fatalf("statement %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestGenerateMissingGroups(t *testing.T) {
	object := compositorTestObject()
	entries := generateMissingGroups(&object)

	want := []instructionEntry{
		{
			interval: elementInterval{1, 2},
			statements: []groupingStatement{
				gStatement([]Group{NewGroup("Group0")}),
				gStatement([]Group{NewGroup("Group1")}),
				gStatement([]Group{NewGroup("Group2")}),
				sStatement(NewSmoothingGroup(0)),
			},
		},
		{
			interval: elementInterval{2, 2},
			statements: []groupingStatement{
				gStatement([]Group{NewGroup("Group4")}),
				sStatement(NewSmoothingGroup(2)),
			},
		},
	}

	if len(entries) != len(want) {
		t.Fatalf("entry count = %d, want %d", len(entries), len(want))
	}
	for i := range want {
		if entries[i].interval != want[i].interval {
			t.Fatalf("entry %d interval = %v, want %v", i, entries[i].interval, want[i].interval)
		}
		statementsEqual(t, entries[i].statements, want[i].statements)
	}
}

func TestGenerateFoundGroups(t *testing.T) {
	object := compositorTestObject()
	entries := generateFoundGroups(&object)

	want := []instructionEntry{
		{
			interval: elementInterval{1, 2},
			statements: []groupingStatement{
				gStatement([]Group{NewGroup("Group3")}),
				sStatement(NewSmoothingGroup(1)),
			},
		},
		{
			interval:   elementInterval{2, 2},
			statements: nil,
		},
	}

	if len(entries) != len(want) {
		t.Fatalf("entry count = %d, want %d", len(entries), len(want))
	}
	for i := range want {
		if entries[i].interval != want[i].interval {
			t.Fatalf("entry %d interval = %v, want %v", i, entries[i].interval, want[i].interval)
		}
		statementsEqual(t, entries[i].statements, want[i].statements)
	}
}

func TestGenerateInstructionsMergesMissingAndFound(t *testing.T) {
	object := compositorTestObject()
	entries := generateInstructions(&object)

	want := []instructionEntry{
		{
			interval: elementInterval{1, 2},
			statements: []groupingStatement{
				gStatement([]Group{NewGroup("Group0")}),
				gStatement([]Group{NewGroup("Group1")}),
				gStatement([]Group{NewGroup("Group2")}),
				sStatement(NewSmoothingGroup(0)),
				gStatement([]Group{NewGroup("Group3")}),
				sStatement(NewSmoothingGroup(1)),
			},
		},
		{
			interval: elementInterval{2, 2},
			statements: []groupingStatement{
				gStatement([]Group{NewGroup("Group4")}),
				sStatement(NewSmoothingGroup(2)),
			},
		},
	}

	if len(entries) != len(want) {
		t.Fatalf("entry count = %d, want %d", len(entries), len(want))
	}
	for i := range want {
		if entries[i].interval != want[i].interval {
			t.Fatalf("entry %d interval = %v, want %v", i, entries[i].interval, want[i].interval)
		}
		statementsEqual(t, entries[i].statements, want[i].statements)
	}
}

func TestTextObjectCompositorSkipsElementsWhenObjectHasNone(t *testing.T) {
	object := Object{Name: "Empty", SmoothingGroupSet: []SmoothingGroup{DefaultSmoothingGroup()}}
	out := (&TextObjectCompositor{}).Compose(&object)
	if out == "" {
		t.Fatalf("expected a non-empty dump even for a shapeless object")
	}
}

func TestTextObjectSetCompositorEmitsBeginEndMarkers(t *testing.T) {
	set := ObjectSet{Objects: []Object{compositorTestObject()}}
	out := (&TextObjectSetCompositor{}).Compose(set)

	if !strings.Contains(out, "# ### BEGIN Object 1") || !strings.Contains(out, "# ### END Object 1") {
		t.Fatalf("missing BEGIN/END markers in:\n%s", out)
	}
}

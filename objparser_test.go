package wavefront

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObjectName(t *testing.T) {
	p := NewParser("o object_name \n\n", nil)
	name, err := p.parseObjectName()
	require.NoError(t, err)
	assert.Equal(t, "object_name", name)
}

func TestParseObjectNameRequiresTrailingNewline(t *testing.T) {
	p := NewParser("o object_name", nil)
	if _, err := p.parseObjectName(); err == nil {
		t.Fatalf("expected an error for a name statement with no trailing newline")
	}
}

func TestParseVTNIndexForms(t *testing.T) {
	cases := []struct {
		input string
		want  VTNIndex
	}{
		{"1291", NewVTNIndexV(1291)},
		{"1291/1315", NewVTNIndexVT(1291, 1315)},
		{"1291/1315/1314", NewVTNIndexVTN(1291, 1315, 1314)},
		{"1291//1314", NewVTNIndexVN(1291, 1314)},
	}
	for _, c := range cases {
		p := NewParser(c.input, nil)
		got, err := p.parseVTNIndex()
		require.NoErrorf(t, err, "parseVTNIndex(%q)", c.input)
		assert.Equalf(t, c.want, got, "parseVTNIndex(%q)", c.input)
	}
}

func TestParseGroupsSingleAndMultiple(t *testing.T) {
	p := NewParser("g group", nil)
	var groups []Group
	p.parseGroups(&groups)
	if len(groups) != 1 || groups[0].Name() != "group" {
		t.Fatalf("groups = %v, want [group]", groups)
	}

	p = NewParser("g group1 group2 group3", nil)
	groups = nil
	p.parseGroups(&groups)
	want := []string{"group1", "group2", "group3"}
	if len(groups) != len(want) {
		t.Fatalf("groups = %v, want %v", groups, want)
	}
	for i, name := range want {
		if groups[i].Name() != name {
			t.Fatalf("groups[%d] = %q, want %q", i, groups[i].Name(), name)
		}
	}
}

func TestParseSmoothingGroupOffAndNumeric(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"s off", 0},
		{"s 0", 0},
		{"s 3434", 3434},
	}
	for _, c := range cases {
		p := NewParser(c.input, nil)
		var groups []SmoothingGroup
		err := p.parseSmoothingGroup(&groups)
		require.NoErrorf(t, err, "parseSmoothingGroup(%q)", c.input)
		require.Len(t, groups, 1)
		assert.Equalf(t, c.want, groups[0].Index(), "parseSmoothingGroup(%q)", c.input)
	}
}

func TestParseSmoothingGroupRejectsMissingName(t *testing.T) {
	cases := []string{"s\n", "s"}
	for _, input := range cases {
		p := NewParser(input, nil)
		var groups []SmoothingGroup
		err := p.parseSmoothingGroup(&groups)
		require.Errorf(t, err, "parseSmoothingGroup(%q)", input)
		parseErr, ok := err.(*ParseError)
		require.Truef(t, ok, "parseSmoothingGroup(%q) error type", input)
		assert.Equalf(t, ErrSmoothingGroupDeclarationHasNoName, parseErr.Kind, "parseSmoothingGroup(%q)", input)
	}
}

func TestParseSmoothingGroupRejectsNonOffNonIntegerName(t *testing.T) {
	p := NewParser("s foo\n", nil)
	var groups []SmoothingGroup
	err := p.parseSmoothingGroup(&groups)
	require.Error(t, err)
	parseErr, ok := err.(*ParseError)
	require.True(t, ok, "error type")
	assert.Equal(t, ErrSmoothingGroupNameMustBeOffOrInteger, parseErr.Kind)
	assert.Equal(t, "foo", parseErr.Got)
}

func TestParseFaceRejectsFewerThanThreeVertices(t *testing.T) {
	p := NewParser("f 1 2\n", nil)
	var elements []Element
	_, err := p.parseFace(&elements)
	assert.Error(t, err)
}

func TestParseFaceRejectsMixedIndexForms(t *testing.T) {
	p := NewParser("f 1 2/2 3/3\n", nil)
	var elements []Element
	_, err := p.parseFace(&elements)
	assert.Error(t, err)
}

func TestParseFaceFanTriangulatesPolygon(t *testing.T) {
	p := NewParser("f 1 2 3 4 5\n", nil)
	var elements []Element
	n, err := p.parseFace(&elements)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	want := []Element{
		NewFace(NewVTNIndexV(1), NewVTNIndexV(2), NewVTNIndexV(3)),
		NewFace(NewVTNIndexV(1), NewVTNIndexV(3), NewVTNIndexV(4)),
		NewFace(NewVTNIndexV(1), NewVTNIndexV(4), NewVTNIndexV(5)),
	}
	assert.Equal(t, want, elements)
}

// cubeObjectSource is the same cube fixture used to confirm end-to-end
// parsing: a single object, one group, default smoothing, twelve
// fan-triangulated faces referencing vertex/normal indices only.
const cubeObjectSource = "o object1 \n" +
	"g cube \n" +
	"v  0.0  0.0  0.0 \n" +
	"v  0.0  0.0  1.0 \n" +
	"v  0.0  1.0  0.0 \n" +
	"v  0.0  1.0  1.0 \n" +
	"v  1.0  0.0  0.0 \n" +
	"v  1.0  0.0  1.0 \n" +
	"v  1.0  1.0  0.0 \n" +
	"v  1.0  1.0  1.0 \n" +
	"vn  0.0  0.0  1.0 \n" +
	"vn  0.0  0.0 -1.0 \n" +
	"vn  0.0  1.0  0.0 \n" +
	"vn  0.0 -1.0  0.0 \n" +
	"vn  1.0  0.0  0.0 \n" +
	"vn -1.0  0.0  0.0 \n" +
	"f  1//2  7//2  5//2 \n" +
	"f  1//2  3//2  7//2 \n" +
	"f  1//6  4//6  3//6 \n" +
	"f  1//6  2//6  4//6 \n" +
	"f  3//3  8//3  7//3 \n" +
	"f  3//3  4//3  8//3 \n" +
	"f  5//5  7//5  8//5 \n" +
	"f  5//5  8//5  6//5 \n" +
	"f  1//4  5//4  6//4 \n" +
	"f  1//4  6//4  2//4 \n" +
	"f  2//1  6//1  8//1 \n" +
	"f  2//1  8//1  4//1 \n"

func cubeObjectExpectation() Object {
	return NewObjectBuilder(
		[]Vertex{
			{X: 0.0, Y: 0.0, Z: 0.0, W: 1.0},
			{X: 0.0, Y: 0.0, Z: 1.0, W: 1.0},
			{X: 0.0, Y: 1.0, Z: 0.0, W: 1.0},
			{X: 0.0, Y: 1.0, Z: 1.0, W: 1.0},
			{X: 1.0, Y: 0.0, Z: 0.0, W: 1.0},
			{X: 1.0, Y: 0.0, Z: 1.0, W: 1.0},
			{X: 1.0, Y: 1.0, Z: 0.0, W: 1.0},
			{X: 1.0, Y: 1.0, Z: 1.0, W: 1.0},
		},
		[]Element{
			NewFace(NewVTNIndexVN(1, 2), NewVTNIndexVN(7, 2), NewVTNIndexVN(5, 2)),
			NewFace(NewVTNIndexVN(1, 2), NewVTNIndexVN(3, 2), NewVTNIndexVN(7, 2)),
			NewFace(NewVTNIndexVN(1, 6), NewVTNIndexVN(4, 6), NewVTNIndexVN(3, 6)),
			NewFace(NewVTNIndexVN(1, 6), NewVTNIndexVN(2, 6), NewVTNIndexVN(4, 6)),
			NewFace(NewVTNIndexVN(3, 3), NewVTNIndexVN(8, 3), NewVTNIndexVN(7, 3)),
			NewFace(NewVTNIndexVN(3, 3), NewVTNIndexVN(4, 3), NewVTNIndexVN(8, 3)),
			NewFace(NewVTNIndexVN(5, 5), NewVTNIndexVN(7, 5), NewVTNIndexVN(8, 5)),
			NewFace(NewVTNIndexVN(5, 5), NewVTNIndexVN(8, 5), NewVTNIndexVN(6, 5)),
			NewFace(NewVTNIndexVN(1, 4), NewVTNIndexVN(5, 4), NewVTNIndexVN(6, 4)),
			NewFace(NewVTNIndexVN(1, 4), NewVTNIndexVN(6, 4), NewVTNIndexVN(2, 4)),
			NewFace(NewVTNIndexVN(2, 1), NewVTNIndexVN(6, 1), NewVTNIndexVN(8, 1)),
			NewFace(NewVTNIndexVN(2, 1), NewVTNIndexVN(8, 1), NewVTNIndexVN(4, 1)),
		},
	).
		WithName("object1").
		WithNormalVertexSet([]NormalVertex{
			{I: 0.0, J: 0.0, K: 1.0},
			{I: 0.0, J: 0.0, K: -1.0},
			{I: 0.0, J: 1.0, K: 0.0},
			{I: 0.0, J: -1.0, K: 0.0},
			{I: 1.0, J: 0.0, K: 0.0},
			{I: -1.0, J: 0.0, K: 0.0},
		}).
		WithGroupSet([]Group{NewGroup("cube")}).
		WithSmoothingGroupSet([]SmoothingGroup{DefaultSmoothingGroup()}).
		WithShapeSet([]ShapeEntry{
			NewShapeEntry(1, []int{1}, 1), NewShapeEntry(2, []int{1}, 1),
			NewShapeEntry(3, []int{1}, 1), NewShapeEntry(4, []int{1}, 1),
			NewShapeEntry(5, []int{1}, 1), NewShapeEntry(6, []int{1}, 1),
			NewShapeEntry(7, []int{1}, 1), NewShapeEntry(8, []int{1}, 1),
			NewShapeEntry(9, []int{1}, 1), NewShapeEntry(10, []int{1}, 1),
			NewShapeEntry(11, []int{1}, 1), NewShapeEntry(12, []int{1}, 1),
		}).
		Build()
}

func TestParseObjectSetCube(t *testing.T) {
	objectSet, err := ParseString(cubeObjectSource)
	require.NoError(t, err)
	require.Equal(t, 1, objectSet.Len())

	got := objectSet.Objects[0]
	want := cubeObjectExpectation()

	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.VertexSet, got.VertexSet)
	assert.Equal(t, want.NormalVertexSet, got.NormalVertexSet)
	assert.Equal(t, want.GroupSet, got.GroupSet)
	assert.Equal(t, want.SmoothingGroupSet, got.SmoothingGroupSet)
	assert.Equal(t, want.ElementSet, got.ElementSet)
	assert.Equal(t, want.ShapeSet, got.ShapeSet)
}

// TestPropVTNIndexEncodeDecodeInverses checks that for any VTNIndex, the
// index's own String encoding parses back into an equal VTNIndex.
func TestPropVTNIndexEncodeDecodeInverses(t *testing.T) {
	property := func(seed uint32, v, vt, vn uint16) bool {
		var idx VTNIndex
		switch seed % 4 {
		case 0:
			idx = NewVTNIndexV(int(v) + 1)
		case 1:
			idx = NewVTNIndexVT(int(v)+1, int(vt)+1)
		case 2:
			idx = NewVTNIndexVN(int(v)+1, int(vn)+1)
		default:
			idx = NewVTNIndexVTN(int(v)+1, int(vt)+1, int(vn)+1)
		}

		p := NewParser(idx.String(), nil)
		got, err := p.parseVTNIndex()
		if err != nil {
			return false
		}
		return got == idx
	}
	if err := quick.Check(property, &quick.Config{MaxCount: 500}); err != nil {
		t.Fatal(err)
	}
}

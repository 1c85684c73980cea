package wavefront

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Parser consumes OBJ geometry text and produces an ObjectSet, one Object
// per "o"-delimited (or implicit, file-leading) block.
type Parser struct {
	lineNumber int
	tokens     *tokenStream
	logger     *zap.Logger
}

// NewParser constructs a Parser over the given OBJ source text. A nil
// logger is replaced with a no-op logger, matching the library's
// silent-by-default behavior.
func NewParser(input string, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{lineNumber: 1, tokens: newTokenStream(input), logger: logger}
}

func (p *Parser) peek() (string, bool) {
	return p.tokens.peek()
}

func (p *Parser) next() (string, bool) {
	tok, ok := p.tokens.next()
	if ok && tok == "\n" {
		p.lineNumber++
	}
	return tok, ok
}

func (p *Parser) advance() {
	p.next()
}

func (p *Parser) nextString() (string, error) {
	tok, ok := p.next()
	if !ok {
		return "", newParseError(p.lineNumber, ErrEndOfFile, "")
	}
	return tok, nil
}

func (p *Parser) expect(tag string) (string, error) {
	tok, err := p.nextString()
	if err != nil {
		return "", err
	}
	if tok != tag {
		return "", newParseError(p.lineNumber, ErrExpectedStatementButGot, tok)
	}
	return tok, nil
}

func (p *Parser) parseFloat32() (float32, error) {
	tok, err := p.nextString()
	if err != nil {
		return 0, err
	}
	val, parseErr := strconv.ParseFloat(tok, 32)
	if parseErr != nil {
		return 0, newParseError(p.lineNumber, ErrExpectedFloatButGot, tok)
	}
	return float32(val), nil
}

func (p *Parser) parseUint() (int, error) {
	tok, err := p.nextString()
	if err != nil {
		return 0, err
	}
	val, parseErr := strconv.ParseUint(tok, 10, 32)
	if parseErr != nil {
		return 0, newParseError(p.lineNumber, ErrExpectedIntegerButGot, tok)
	}
	return int(val), nil
}

// tryParseFloat32 peeks at the next token and, if it parses as a float,
// consumes it and returns it. Otherwise the stream is left untouched.
func (p *Parser) tryParseFloat32() (float32, bool) {
	tok, ok := p.peek()
	if !ok {
		return 0, false
	}
	val, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return 0, false
	}
	p.advance()
	return float32(val), true
}

func (p *Parser) parseVertex() (Vertex, error) {
	if _, err := p.expect("v"); err != nil {
		return Vertex{}, err
	}
	x, err := p.parseFloat32()
	if err != nil {
		return Vertex{}, err
	}
	y, err := p.parseFloat32()
	if err != nil {
		return Vertex{}, err
	}
	z, err := p.parseFloat32()
	if err != nil {
		return Vertex{}, err
	}
	w, ok := p.tryParseFloat32()
	if !ok {
		w = 1.0
	}
	return Vertex{X: float64(x), Y: float64(y), Z: float64(z), W: float64(w)}, nil
}

func (p *Parser) parseTextureVertex() (TextureVertex, error) {
	if _, err := p.expect("vt"); err != nil {
		return TextureVertex{}, err
	}
	u, err := p.parseFloat32()
	if err != nil {
		return TextureVertex{}, err
	}
	v, ok := p.tryParseFloat32()
	if !ok {
		v = 0.0
	}
	w, ok := p.tryParseFloat32()
	if !ok {
		w = 0.0
	}
	return TextureVertex{U: float64(u), V: float64(v), W: float64(w)}, nil
}

func (p *Parser) parseNormalVertex() (NormalVertex, error) {
	if _, err := p.expect("vn"); err != nil {
		return NormalVertex{}, err
	}
	i, err := p.parseFloat32()
	if err != nil {
		return NormalVertex{}, err
	}
	j, err := p.parseFloat32()
	if err != nil {
		return NormalVertex{}, err
	}
	k, err := p.parseFloat32()
	if err != nil {
		return NormalVertex{}, err
	}
	return NormalVertex{I: float64(i), J: float64(j), K: float64(k)}, nil
}

func (p *Parser) skipZeroOrMoreNewlines() {
	for {
		tok, ok := p.peek()
		if !ok || tok != "\n" {
			return
		}
		p.advance()
	}
}

func (p *Parser) skipOneOrMoreNewlines() error {
	if _, err := p.expect("\n"); err != nil {
		return err
	}
	p.skipZeroOrMoreNewlines()
	return nil
}

func (p *Parser) parseObjectName() (string, error) {
	tok, ok := p.peek()
	if !ok || tok != "o" {
		return "", nil
	}
	if _, err := p.expect("o"); err != nil {
		return "", err
	}
	name, err := p.nextString()
	if err != nil {
		return "", err
	}
	if err := p.skipOneOrMoreNewlines(); err != nil {
		return "", err
	}
	return name, nil
}

// parseVTNIndex parses one vertex/texture/normal index, trying each of the
// four forms ("v//vn", "v/vt/vn", "v/vt", "v") in that exact order so that
// "v//vn" is never misread as a malformed "v/vt".
func (p *Parser) parseVTNIndex() (VTNIndex, error) {
	tok, err := p.nextString()
	if err != nil {
		return VTNIndex{}, err
	}

	if idx, ok := parseVN(tok); ok {
		return idx, nil
	}
	if idx, ok := parseVTN(tok); ok {
		return idx, nil
	}
	if idx, ok := parseVT(tok); ok {
		return idx, nil
	}
	if idx, ok := parseV(tok); ok {
		return idx, nil
	}

	return VTNIndex{}, newParseError(p.lineNumber, ErrExpectedVertexTextureNormalIndexButGot, tok)
}

func parseVN(tok string) (VTNIndex, bool) {
	i := strings.Index(tok, "//")
	if i < 0 {
		return VTNIndex{}, false
	}
	v, err := strconv.ParseUint(tok[:i], 10, 32)
	if err != nil {
		return VTNIndex{}, false
	}
	vn, err := strconv.ParseUint(tok[i+2:], 10, 32)
	if err != nil {
		return VTNIndex{}, false
	}
	return NewVTNIndexVN(int(v), int(vn)), true
}

func parseVT(tok string) (VTNIndex, bool) {
	i := strings.Index(tok, "/")
	if i < 0 {
		return VTNIndex{}, false
	}
	v, err := strconv.ParseUint(tok[:i], 10, 32)
	if err != nil {
		return VTNIndex{}, false
	}
	vt, err := strconv.ParseUint(tok[i+1:], 10, 32)
	if err != nil {
		return VTNIndex{}, false
	}
	return NewVTNIndexVT(int(v), int(vt)), true
}

func parseVTN(tok string) (VTNIndex, bool) {
	i := strings.Index(tok, "/")
	if i < 0 {
		return VTNIndex{}, false
	}
	v, err := strconv.ParseUint(tok[:i], 10, 32)
	if err != nil {
		return VTNIndex{}, false
	}
	rest := tok[i+1:]
	j := strings.Index(rest, "/")
	if j < 0 {
		return VTNIndex{}, false
	}
	vt, err := strconv.ParseUint(rest[:j], 10, 32)
	if err != nil {
		return VTNIndex{}, false
	}
	vn, err := strconv.ParseUint(rest[j+1:], 10, 32)
	if err != nil {
		return VTNIndex{}, false
	}
	return NewVTNIndexVTN(int(v), int(vt), int(vn)), true
}

func parseV(tok string) (VTNIndex, bool) {
	v, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		return VTNIndex{}, false
	}
	return NewVTNIndexV(int(v)), true
}

// parseVTNIndices greedily parses VTN indices until one fails, leaving the
// stream positioned at the first token that wasn't a valid index.
func (p *Parser) parseVTNIndices() []VTNIndex {
	var indices []VTNIndex
	for {
		tok, ok := p.peek()
		if !ok {
			return indices
		}
		idx, ok2 := tryParseVTNIndexString(tok)
		if !ok2 {
			return indices
		}
		p.advance()
		indices = append(indices, idx)
	}
}

func tryParseVTNIndexString(tok string) (VTNIndex, bool) {
	if idx, ok := parseVN(tok); ok {
		return idx, true
	}
	if idx, ok := parseVTN(tok); ok {
		return idx, true
	}
	if idx, ok := parseVT(tok); ok {
		return idx, true
	}
	if idx, ok := parseV(tok); ok {
		return idx, true
	}
	return VTNIndex{}, false
}

func (p *Parser) parsePoint(elements *[]Element) (int, error) {
	if _, err := p.expect("p"); err != nil {
		return 0, err
	}
	v, err := p.parseUint()
	if err != nil {
		return 0, err
	}
	*elements = append(*elements, NewPoint(NewVTNIndexV(v)))
	parsed := 1
	for {
		tok, ok := p.peek()
		if !ok || tok == "\n" {
			return parsed, nil
		}
		p.advance()
		v, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			return 0, newParseError(p.lineNumber, ErrExpectedIntegerButGot, tok)
		}
		*elements = append(*elements, NewPoint(NewVTNIndexV(int(v))))
		parsed++
	}
}

func (p *Parser) parseLine(elements *[]Element) (int, error) {
	if _, err := p.expect("l"); err != nil {
		return 0, err
	}
	first, err := p.parseVTNIndex()
	if err != nil {
		return 0, err
	}
	second, err := p.parseVTNIndex()
	if err != nil {
		return 0, err
	}
	indices := append([]VTNIndex{first, second}, p.parseVTNIndices()...)

	for i := 1; i < len(indices); i++ {
		if !indices[i].HasSameTypeAs(indices[0]) {
			return 0, newParseError(p.lineNumber, ErrEveryVTNIndexMustHaveTheSameFormForAGivenFace, "")
		}
	}

	for i := 0; i < len(indices)-1; i++ {
		*elements = append(*elements, NewLine(indices[i], indices[i+1]))
	}
	return len(indices) - 1, nil
}

func (p *Parser) parseFace(elements *[]Element) (int, error) {
	if _, err := p.expect("f"); err != nil {
		return 0, err
	}
	indices := p.parseVTNIndices()
	if len(indices) < 3 {
		return 0, newParseError(p.lineNumber, ErrEveryFaceElementMustHaveAtLeastThreeVertices, "")
	}
	for i := 1; i < len(indices); i++ {
		if !indices[i].HasSameTypeAs(indices[0]) {
			return 0, newParseError(p.lineNumber, ErrEveryVTNIndexMustHaveTheSameFormForAGivenFace, "")
		}
	}

	// Fan-triangulate: every triangle shares indices[0] as its first vertex.
	anchor := indices[0]
	for i := 0; i < len(indices)-2; i++ {
		*elements = append(*elements, NewFace(anchor, indices[i+1], indices[i+2]))
	}
	return len(indices) - 2, nil
}

func (p *Parser) parseElements(elements *[]Element) (int, error) {
	tok, ok := p.peek()
	if !ok {
		return 0, newParseError(p.lineNumber, ErrInvalidElement, "")
	}
	switch tok {
	case "p":
		return p.parsePoint(elements)
	case "l":
		return p.parseLine(elements)
	case "f":
		return p.parseFace(elements)
	default:
		return 0, newParseError(p.lineNumber, ErrInvalidElement, tok)
	}
}

func (p *Parser) parseGroups(groups *[]Group) int {
	p.advance() // "g"
	parsed := 0
	for {
		tok, ok := p.next()
		if !ok || tok == "\n" {
			return parsed
		}
		*groups = append(*groups, NewGroup(tok))
		parsed++
	}
}

func (p *Parser) parseSmoothingGroup(smoothingGroups *[]SmoothingGroup) error {
	p.advance() // "s"
	tok, ok := p.next()
	if !ok || tok == "\n" {
		return newParseError(p.lineNumber, ErrSmoothingGroupDeclarationHasNoName, "")
	}
	if tok == "off" {
		*smoothingGroups = append(*smoothingGroups, NewSmoothingGroup(0))
		return nil
	}
	n, parseErr := strconv.ParseUint(tok, 10, 32)
	if parseErr != nil {
		return newParseError(p.lineNumber, ErrSmoothingGroupNameMustBeOffOrInteger, tok)
	}
	*smoothingGroups = append(*smoothingGroups, NewSmoothingGroup(int(n)))
	return nil
}

type groupEntryRange struct {
	minElement, maxElement int
	minGroup, maxGroup     int
}

type smoothingGroupEntryRange struct {
	minElement, maxElement int
	smoothingGroupIndex    int
}

func buildShapeEntries(elements []Element, groupEntries []groupEntryRange, smoothingEntries []smoothingGroupEntryRange) []ShapeEntry {
	entries := make([]ShapeEntry, len(elements))
	for _, ge := range groupEntries {
		groups := make([]int, 0, ge.maxGroup-ge.minGroup)
		for g := ge.minGroup; g < ge.maxGroup; g++ {
			groups = append(groups, g)
		}
		for i := ge.minElement; i < ge.maxElement; i++ {
			entries[i-1] = NewShapeEntry(i, groups, 1)
		}
	}
	for _, se := range smoothingEntries {
		for i := se.minElement; i < se.maxElement; i++ {
			entries[i-1].SmoothingGroup = se.smoothingGroupIndex
		}
	}
	return entries
}

// parseObject parses one "o"-delimited (or implicit) object and returns it.
// No separate vertex counts are reported; indices stay 1-based per object
// and are not renumbered across objects.
func (p *Parser) parseObject() (Object, error) {
	name, err := p.parseObjectName()
	if err != nil {
		return Object{}, err
	}

	var vertices []Vertex
	var textureVertices []TextureVertex
	var normalVertices []NormalVertex
	var elements []Element

	var groupEntryTable []groupEntryRange
	var groups []Group
	minElementGroupIndex, maxElementGroupIndex := 0, 0
	minGroupIndex, maxGroupIndex := 0, 0

	var smoothingGroupEntryTable []smoothingGroupEntryRange
	var smoothingGroups []SmoothingGroup
	minElementSmoothingGroupIndex, maxElementSmoothingGroupIndex := 0, 0
	smoothingGroupIndex := 0

loop:
	for {
		tok, ok := p.peek()
		if !ok {
			groupEntryTable = append(groupEntryTable, groupEntryRange{
				minElementGroupIndex, maxElementGroupIndex, minGroupIndex, maxGroupIndex,
			})
			smoothingGroupEntryTable = append(smoothingGroupEntryTable, smoothingGroupEntryRange{
				minElementSmoothingGroupIndex, maxElementSmoothingGroupIndex, smoothingGroupIndex,
			})
			break loop
		}

		switch {
		case tok == "g" && len(groups) == 0:
			minElementGroupIndex, maxElementGroupIndex = 1, 1
			minGroupIndex, maxGroupIndex = 1, 1
			amountParsed := p.parseGroups(&groups)
			maxGroupIndex += amountParsed

		case tok == "g":
			groupEntryTable = append(groupEntryTable, groupEntryRange{
				minElementGroupIndex, maxElementGroupIndex, minGroupIndex, maxGroupIndex,
			})
			amountParsed := p.parseGroups(&groups)
			minGroupIndex = maxGroupIndex
			maxGroupIndex += amountParsed
			minElementGroupIndex = maxElementGroupIndex

		case tok == "s" && len(smoothingGroups) == 0:
			minElementSmoothingGroupIndex, maxElementSmoothingGroupIndex = 1, 1
			if err := p.parseSmoothingGroup(&smoothingGroups); err != nil {
				return Object{}, err
			}
			smoothingGroupIndex = 1

		case tok == "s":
			smoothingGroupEntryTable = append(smoothingGroupEntryTable, smoothingGroupEntryRange{
				minElementSmoothingGroupIndex, maxElementSmoothingGroupIndex, smoothingGroupIndex,
			})
			if err := p.parseSmoothingGroup(&smoothingGroups); err != nil {
				return Object{}, err
			}
			smoothingGroupIndex++
			minElementSmoothingGroupIndex = maxElementSmoothingGroupIndex

		case tok == "v":
			v, err := p.parseVertex()
			if err != nil {
				return Object{}, err
			}
			vertices = append(vertices, v)

		case tok == "vt":
			vt, err := p.parseTextureVertex()
			if err != nil {
				return Object{}, err
			}
			textureVertices = append(textureVertices, vt)

		case tok == "vn":
			vn, err := p.parseNormalVertex()
			if err != nil {
				return Object{}, err
			}
			normalVertices = append(normalVertices, vn)

		case tok == "p" || tok == "l" || tok == "f":
			if len(groups) == 0 {
				groups = append(groups, DefaultGroup())
				minElementGroupIndex, maxElementGroupIndex = 1, 1
				minGroupIndex, maxGroupIndex = 1, 2
			}
			if len(smoothingGroups) == 0 {
				smoothingGroups = append(smoothingGroups, DefaultSmoothingGroup())
				minElementSmoothingGroupIndex, maxElementSmoothingGroupIndex = 1, 1
				smoothingGroupIndex = 1
			}
			amountParsed, err := p.parseElements(&elements)
			if err != nil {
				return Object{}, err
			}
			maxElementGroupIndex += amountParsed
			maxElementSmoothingGroupIndex += amountParsed

		case tok == "\n":
			if err := p.skipOneOrMoreNewlines(); err != nil {
				return Object{}, err
			}

		case tok == "o":
			groupEntryTable = append(groupEntryTable, groupEntryRange{
				minElementGroupIndex, maxElementGroupIndex, minGroupIndex, maxGroupIndex,
			})
			minElementGroupIndex = maxElementGroupIndex
			smoothingGroupEntryTable = append(smoothingGroupEntryTable, smoothingGroupEntryRange{
				minElementSmoothingGroupIndex, maxElementSmoothingGroupIndex, smoothingGroupIndex,
			})
			minElementSmoothingGroupIndex = maxElementSmoothingGroupIndex
			break loop

		default:
			return Object{}, newParseError(p.lineNumber, ErrInvalidElementDeclaration, tok)
		}
	}

	shapeEntries := buildShapeEntries(elements, groupEntryTable, smoothingGroupEntryTable)

	p.logger.Debug("parsed object",
		zap.String("name", name),
		zap.Int("vertices", len(vertices)),
		zap.Int("elements", len(elements)),
		zap.Int("groups", len(groups)),
	)

	builder := NewObjectBuilder(vertices, elements).
		WithName(name).
		WithTextureVertexSet(textureVertices).
		WithNormalVertexSet(normalVertices).
		WithGroupSet(groups).
		WithSmoothingGroupSet(smoothingGroups).
		WithShapeSet(shapeEntries)

	return builder.Build(), nil
}

// parseObjects parses every object in the source, in order.
func (p *Parser) parseObjects() ([]Object, error) {
	var objects []Object

	p.skipZeroOrMoreNewlines()
	for {
		if _, ok := p.peek(); !ok {
			break
		}
		object, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		objects = append(objects, object)
		p.skipZeroOrMoreNewlines()
	}

	return objects, nil
}

// Parse runs the parser to completion, producing an ObjectSet.
func (p *Parser) Parse() (ObjectSet, error) {
	objects, err := p.parseObjects()
	if err != nil {
		return ObjectSet{}, err
	}
	return NewObjectSet(objects), nil
}

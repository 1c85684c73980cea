package wavefront

import "strconv"

// Color is an RGB color component used for ambient/diffuse/specular/
// emissive material channels.
type Color struct {
	R, G, B float64
}

// IlluminationModel selects which lighting terms a material participates
// in, per the MTL "illum" statement.
type IlluminationModel int

const (
	IlluminationAmbient IlluminationModel = iota
	IlluminationAmbientDiffuse
	IlluminationAmbientDiffuseSpecular
)

// Material is a single "newmtl"-delimited block of an MTL file.
type Material struct {
	Name                string
	ColorAmbient        Color
	ColorDiffuse        Color
	ColorSpecular       Color
	ColorEmissive       Color
	SpecularExponent    float64
	Dissolve            float64
	OpticalDensity      *float64
	IlluminationModel   IlluminationModel
	MapAmbient          string
	MapDiffuse          string
	MapSpecular         string
	MapEmissive         string
	MapSpecularExponent string
	MapBump             string
	MapDisplacement     string
	MapDissolve         string
}

func newMaterial() Material {
	return Material{IlluminationModel: IlluminationAmbientDiffuseSpecular}
}

// MaterialSet is an ordered collection of Materials parsed from one MTL
// source.
type MaterialSet struct {
	Materials []Material
}

func (s MaterialSet) Len() int { return len(s.Materials) }

// MTLParser consumes MTL material text and produces a MaterialSet.
type MTLParser struct {
	lineNumber int
	tokens     *tokenStream
}

func NewMTLParser(input string) *MTLParser {
	return &MTLParser{lineNumber: 1, tokens: newTokenStream(input)}
}

func (p *MTLParser) peek() (string, bool) { return p.tokens.peek() }

func (p *MTLParser) next() (string, bool) {
	tok, ok := p.tokens.next()
	if ok && tok == "\n" {
		p.lineNumber++
	}
	return tok, ok
}

func (p *MTLParser) advance() { p.next() }

func (p *MTLParser) nextString() (string, error) {
	tok, ok := p.next()
	if !ok {
		return "", newMTLParseError(p.lineNumber, MTLErrEndOfFile, "")
	}
	return tok, nil
}

func (p *MTLParser) expectTag(tag string) error {
	tok, ok := p.next()
	if !ok {
		return newMTLParseError(p.lineNumber, MTLErrEndOfFile, "")
	}
	if tok != tag {
		return newMTLParseError(p.lineNumber, MTLErrExpectedTag, tag)
	}
	return nil
}

func (p *MTLParser) skipZeroOrMoreNewlines() {
	for {
		tok, ok := p.peek()
		if !ok || tok != "\n" {
			return
		}
		p.advance()
	}
}

func (p *MTLParser) parseFloat64() (float64, error) {
	tok, err := p.nextString()
	if err != nil {
		return 0, err
	}
	val, parseErr := strconv.ParseFloat(tok, 64)
	if parseErr != nil {
		return 0, newMTLParseError(p.lineNumber, MTLErrExpectedFloat, tok)
	}
	return val, nil
}

func (p *MTLParser) parseUsize() (int, error) {
	tok, err := p.nextString()
	if err != nil {
		return 0, err
	}
	val, parseErr := strconv.ParseUint(tok, 10, 64)
	if parseErr != nil {
		return 0, newMTLParseError(p.lineNumber, MTLErrExpectedInteger, tok)
	}
	return int(val), nil
}

func (p *MTLParser) parseColor() (Color, error) {
	r, err := p.parseFloat64()
	if err != nil {
		return Color{}, err
	}
	g, err := p.parseFloat64()
	if err != nil {
		return Color{}, err
	}
	b, err := p.parseFloat64()
	if err != nil {
		return Color{}, err
	}
	return Color{R: r, G: g, B: b}, nil
}

func (p *MTLParser) parseTaggedColor(tag string) (Color, error) {
	if err := p.expectTag(tag); err != nil {
		return Color{}, err
	}
	return p.parseColor()
}

func (p *MTLParser) parseTaggedFloat(tag string) (float64, error) {
	if err := p.expectTag(tag); err != nil {
		return 0, err
	}
	return p.parseFloat64()
}

// parseTaggedMapName parses "<tag> <name>" and returns ("", false) if the
// next token isn't tag at all (the map statement is simply absent).
func (p *MTLParser) parseTaggedMapName(tag string) (string, bool, error) {
	tok, ok := p.peek()
	if !ok || tok != tag {
		return "", false, nil
	}
	p.advance()
	name, err := p.nextString()
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

func (p *MTLParser) parseMapBump() (string, bool, error) {
	tok, ok := p.peek()
	if !ok {
		return "", false, nil
	}
	if tok != "map_Bump" && tok != "bump" {
		return "", false, nil
	}
	p.advance()
	name, err := p.nextString()
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

func (p *MTLParser) parseIlluminationModel() (IlluminationModel, error) {
	if err := p.expectTag("illum"); err != nil {
		return 0, err
	}
	n, err := p.parseUsize()
	if err != nil {
		return 0, err
	}
	switch n {
	case 0:
		return IlluminationAmbient, nil
	case 1:
		return IlluminationAmbientDiffuse, nil
	case 2:
		return IlluminationAmbientDiffuseSpecular, nil
	default:
		return 0, newMTLParseError(p.lineNumber, MTLErrUnknownIlluminationModel, strconv.Itoa(n))
	}
}

func (p *MTLParser) parseNewmtl() (string, error) {
	tok, ok := p.next()
	if !ok {
		return "", newMTLParseError(p.lineNumber, MTLErrEndOfFile, "")
	}
	if tok != "newmtl" {
		return "", newMTLParseError(p.lineNumber, MTLErrExpectedTag, tok)
	}
	name, err := p.nextString()
	if err != nil {
		return "", err
	}
	return name, nil
}

func (p *MTLParser) parseMaterial() (Material, error) {
	material := newMaterial()
	name, err := p.parseNewmtl()
	if err != nil {
		return Material{}, err
	}
	material.Name = name

	p.skipZeroOrMoreNewlines()
	for {
		tok, ok := p.peek()
		if !ok || tok == "newmtl" {
			break
		}

		var parseErr error
		switch tok {
		case "Ka":
			material.ColorAmbient, parseErr = p.parseTaggedColor("Ka")
		case "Kd":
			material.ColorDiffuse, parseErr = p.parseTaggedColor("Kd")
		case "Ks":
			material.ColorSpecular, parseErr = p.parseTaggedColor("Ks")
		case "Ke":
			material.ColorEmissive, parseErr = p.parseTaggedColor("Ke")
		case "d":
			material.Dissolve, parseErr = p.parseTaggedFloat("d")
		case "illum":
			material.IlluminationModel, parseErr = p.parseIlluminationModel()
		case "Ns":
			material.SpecularExponent, parseErr = p.parseTaggedFloat("Ns")
		case "Ni":
			var density float64
			density, parseErr = p.parseTaggedFloat("Ni")
			if parseErr == nil {
				material.OpticalDensity = &density
			}
		case "map_Ka":
			material.MapAmbient, _, parseErr = p.parseTaggedMapName("map_Ka")
		case "map_Kd":
			material.MapDiffuse, _, parseErr = p.parseTaggedMapName("map_Kd")
		case "map_Ks":
			material.MapSpecular, _, parseErr = p.parseTaggedMapName("map_Ks")
		case "map_Ke":
			material.MapEmissive, _, parseErr = p.parseTaggedMapName("map_Ke")
		case "map_Ns":
			material.MapSpecularExponent, _, parseErr = p.parseTaggedMapName("map_Ns")
		case "map_Bump", "bump":
			material.MapBump, _, parseErr = p.parseMapBump()
		case "disp":
			material.MapDisplacement, _, parseErr = p.parseTaggedMapName("disp")
		case "map_d":
			material.MapDissolve, _, parseErr = p.parseTaggedMapName("map_d")
		default:
			return Material{}, newMTLParseError(p.lineNumber, MTLErrErrorParsingMaterial, tok)
		}
		if parseErr != nil {
			return Material{}, parseErr
		}

		p.skipZeroOrMoreNewlines()
	}

	return material, nil
}

// Parse runs the MTL parser to completion, producing a MaterialSet.
func (p *MTLParser) Parse() (MaterialSet, error) {
	p.skipZeroOrMoreNewlines()

	var materials []Material
	for {
		tok, ok := p.peek()
		if !ok || tok != "newmtl" {
			break
		}
		material, err := p.parseMaterial()
		if err != nil {
			return MaterialSet{}, err
		}
		materials = append(materials, material)
	}

	if tok, ok := p.peek(); ok {
		return MaterialSet{}, newMTLParseError(p.lineNumber, MTLErrExpectedEndOfInput, tok)
	}

	return MaterialSet{Materials: materials}, nil
}

// Package emit renders a parsed shader tree as ShaderLab-style text.
//
// Every node renders to its own string and parents concatenate their
// children, so the output depends only on the tree and the Programs source.
// Indentation is four spaces per nesting level.
package emit

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"unshader/internal/shader"
)

// Header is prefixed to every converted listing.
const Header = "//////////////////////////////////////////\n" +
	"//\n" +
	"// NOTE: This is *not* a valid shader file\n" +
	"//\n" +
	"///////////////////////////////////////////\n"

const indentUnit = "    "

func indent(depth int) string { return strings.Repeat(indentUnit, depth) }

// line writes one indented, newline-terminated line.
func line(b *strings.Builder, depth int, format string, args ...any) {
	b.WriteString(indent(depth))
	fmt.Fprintf(b, format, args...)
	b.WriteByte('\n')
}

// num formats a serialized float the shortest way that round-trips,
// without exponent notation.
func num(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}

// Emitter renders shader trees. Programs may be nil, in which case stages
// render their parameter blocks but no sub-programs.
type Emitter struct {
	Programs Programs

	// Unrecognized, if set, is called for every value rendered as an
	// <unrecognized ...> marker, with the node it appeared in.
	Unrecognized func(where string, err *shader.UnrecognizedValueError)
}

func (e *Emitter) note(where string, m marks) {
	if e.Unrecognized == nil {
		return
	}
	for _, uv := range m {
		e.Unrecognized(where, uv)
	}
}

// Shader renders the whole tree, ending with "}\n".
func (e *Emitter) Shader(s *shader.SerializedShader) string {
	var b strings.Builder
	line(&b, 0, "Shader %q {", s.Name)
	var m marks
	b.WriteString(m.properties(s.Properties, 1))
	e.note("Properties", m)
	for i := range s.SubShaders {
		b.WriteString(e.subShader(i, &s.SubShaders[i], 1))
	}
	if s.FallbackName != "" {
		line(&b, 1, "Fallback %q", s.FallbackName)
	}
	if s.CustomEditorName != "" {
		line(&b, 1, "CustomEditor %q", s.CustomEditorName)
	}
	for _, d := range s.Dependencies {
		line(&b, 1, "Dependency %q = %q", d.From, d.To)
	}
	line(&b, 0, "}")
	return b.String()
}

// Properties renders the property block.
func Properties(props []shader.Property, depth int) string {
	var m marks
	return m.properties(props, depth)
}

func (m *marks) properties(props []shader.Property, depth int) string {
	var b strings.Builder
	line(&b, depth, "Properties {")
	for i := range props {
		b.WriteString(indent(depth + 1))
		b.WriteString(m.property(&props[i]))
		b.WriteByte('\n')
	}
	line(&b, depth, "}")
	return b.String()
}

// Property renders one property declaration without indentation.
func Property(p *shader.Property) string {
	var m marks
	return m.property(p)
}

func (m *marks) property(p *shader.Property) string {
	var b strings.Builder
	for _, a := range p.Attributes {
		fmt.Fprintf(&b, "[%s] ", a)
	}
	for _, f := range p.Flags.Names() {
		fmt.Fprintf(&b, "[%s] ", f)
	}
	fmt.Fprintf(&b, "%s (%q, %s) = %s", p.Name, p.Description, m.propertyKind(p), propertyDefault(p))
	return b.String()
}

func (m *marks) unrecognized(concept string, v float32) string {
	return m.marker(&shader.UnrecognizedValueError{Concept: concept, Value: v})
}

func (m *marks) propertyKind(p *shader.Property) string {
	switch p.Type {
	case shader.PropColor:
		return "Color"
	case shader.PropVector:
		return "Vector"
	case shader.PropFloat:
		return "Float"
	case shader.PropRange:
		return fmt.Sprintf("Range(%s, %s)", num(p.DefValue[1]), num(p.DefValue[2]))
	case shader.PropTexture:
		if s, ok := p.DefTexture.Dim.Name(); ok {
			return s
		}
		return m.unrecognized("TextureDimension", float32(p.DefTexture.Dim))
	case shader.PropInt:
		return "Int"
	}
	return m.unrecognized("PropertyType", float32(p.Type))
}

func propertyDefault(p *shader.Property) string {
	v := p.DefValue
	switch p.Type {
	case shader.PropColor, shader.PropVector:
		return fmt.Sprintf("(%s,%s,%s,%s)", num(v[0]), num(v[1]), num(v[2]), num(v[3]))
	case shader.PropFloat, shader.PropRange:
		return num(v[0])
	case shader.PropInt:
		return strconv.FormatInt(int64(math.RoundToEven(float64(v[0]))), 10)
	case shader.PropTexture:
		return fmt.Sprintf("%q { }", p.DefTexture.DefaultName)
	}
	return num(v[0])
}

// tags renders a tag map on one line; empty maps render nothing.
func tags(ts []shader.Tag, depth int) string {
	if len(ts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(indent(depth))
	b.WriteString("Tags { ")
	for _, t := range ts {
		fmt.Fprintf(&b, "%q = %q ", t.Key, t.Value)
	}
	b.WriteString("}\n")
	return b.String()
}

func (e *Emitter) subShader(index int, ss *shader.SubShader, depth int) string {
	var b strings.Builder
	line(&b, depth, "SubShader {")
	if ss.LOD != 0 {
		line(&b, depth+1, "LOD %d", ss.LOD)
	}
	b.WriteString(tags(ss.Tags, depth+1))
	for i := range ss.Passes {
		where := fmt.Sprintf("SubShader %d/Pass %d", index, i)
		b.WriteString(e.pass(where, &ss.Passes[i], depth+1))
	}
	line(&b, depth, "}")
	return b.String()
}

func (e *Emitter) pass(where string, p *shader.Pass, depth int) string {
	var b strings.Builder
	switch p.Type {
	case shader.PassUse:
		line(&b, depth, "UsePass %q", p.UseName)
		return b.String()
	case shader.PassGrab:
		line(&b, depth, "GrabPass {")
		if p.TextureName != "" {
			line(&b, depth+1, "%q", p.TextureName)
		}
		line(&b, depth, "}")
		return b.String()
	}

	line(&b, depth, "Pass {")
	state, m := CheckedState(&p.State, depth+1)
	b.WriteString(state)
	e.note(where, m)
	names := Names(p.Names())
	for _, st := range p.Stages() {
		b.WriteString(e.stage(names, st, depth+1))
	}
	line(&b, depth, "}")
	return b.String()
}

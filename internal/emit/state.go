package emit

import (
	"errors"
	"fmt"
	"strings"

	"unshader/internal/shader"
)

// State renders a pass's fixed-function state. Fields equal to their
// ShaderLab default are omitted; GpuProgramID is always present.
func State(s *shader.State, depth int) string {
	text, _ := CheckedState(s, depth)
	return text
}

// CheckedState is State that also returns the values it rendered as
// <unrecognized ...> markers.
func CheckedState(s *shader.State, depth int) (string, []*shader.UnrecognizedValueError) {
	var m marks
	text := m.state(s, depth)
	return text, m
}

// marks collects the unrecognized values rendered inline.
type marks []*shader.UnrecognizedValueError

// marker records uv and returns its inline text.
func (m *marks) marker(uv *shader.UnrecognizedValueError) string {
	*m = append(*m, uv)
	return uv.Marker()
}

func (m *marks) state(s *shader.State, depth int) string {
	var b strings.Builder
	if s.Name != "" {
		line(&b, depth, "Name %q", s.Name)
	}
	if s.LOD != 0 {
		line(&b, depth, "LOD %d", s.LOD)
	}
	b.WriteString(tags(s.Tags, depth))

	for i := range s.RTBlend {
		m.blendTarget(&b, s, i, depth)
	}

	if s.AlphaToMask.Val > 0 {
		line(&b, depth, "AlphaToMask %s", bound(s.AlphaToMask, "On"))
	}
	if s.ZClip != nil && s.ZClip.Val != 1 {
		line(&b, depth, "ZClip %s", bound(*s.ZClip, "Off"))
	}
	if s.ZTest.Val != float32(shader.CompareLEqual) {
		line(&b, depth, "ZTest %s", m.zTest(s.ZTest))
	}
	if s.ZWrite.Val != 1 {
		line(&b, depth, "ZWrite %s", bound(s.ZWrite, "Off"))
	}
	if s.Culling.Val != float32(shader.CullBack) {
		line(&b, depth, "Cull %s", enum(m, s.Culling, shader.DecodeCullMode))
	}
	if s.OffsetFactor.Val != 0 || s.OffsetUnits.Val != 0 {
		line(&b, depth, "Offset %s, %s", value(s.OffsetFactor), value(s.OffsetUnits))
	}

	b.WriteString(m.stencil(s, depth))
	b.WriteString(m.fog(s, depth))

	if s.Lighting {
		line(&b, depth, "Lighting On")
	}
	line(&b, depth, "GpuProgramID %d", s.GPUProgramID)
	return b.String()
}

// bound renders a property-bound value as [_Prop], otherwise text.
func bound(v shader.FloatValue, text string) string {
	if v.Name != "" {
		return "[" + v.Name + "]"
	}
	return text
}

func value(v shader.FloatValue) string { return bound(v, num(v.Val)) }

// decoded renders an enumeration value or its unrecognized marker.
func (m *marks) decoded(v fmt.Stringer, err error) string {
	var uv *shader.UnrecognizedValueError
	if errors.As(err, &uv) {
		return m.marker(uv)
	}
	return v.String()
}

// enum renders v as [_Prop] when bound, otherwise through decode.
func enum[T fmt.Stringer](m *marks, v shader.FloatValue, decode func(float32) (T, error)) string {
	if v.Name != "" {
		return bound(v, "")
	}
	c, err := decode(v.Val)
	return m.decoded(c, err)
}

func (m *marks) zTest(v shader.FloatValue) string {
	if v.Name == "" && v.Val == float32(shader.CompareDisabled) {
		return "Off"
	}
	return enum(m, v, shader.DecodeCompareFunction)
}

func (m *marks) blendTarget(b *strings.Builder, s *shader.State, i, depth int) {
	rt := &s.RTBlend[i]
	target := ""
	if i != 0 || s.RTSeparateBlend {
		target = fmt.Sprintf("%d ", i)
	}

	factor := func(v shader.FloatValue) string {
		return enum(m, v, shader.DecodeBlendFactor)
	}
	op := func(v shader.FloatValue) string {
		return enum(m, v, shader.DecodeBlendOp)
	}

	alphaDiffers := rt.SrcBlendAlpha.Val != float32(shader.BlendOne) || rt.DestBlendAlpha.Val != float32(shader.BlendZero)
	if rt.SrcBlend.Val != float32(shader.BlendOne) || rt.DestBlend.Val != float32(shader.BlendZero) || alphaDiffers {
		text := fmt.Sprintf("Blend %s%s %s", target, factor(rt.SrcBlend), factor(rt.DestBlend))
		if alphaDiffers {
			text += fmt.Sprintf(", %s %s", factor(rt.SrcBlendAlpha), factor(rt.DestBlendAlpha))
		}
		line(b, depth, "%s", text)
	}

	if rt.BlendOp.Val != float32(shader.BlendOpAdd) || rt.BlendOpAlpha.Val != float32(shader.BlendOpAdd) {
		text := fmt.Sprintf("BlendOp %s%s", target, op(rt.BlendOp))
		if rt.BlendOpAlpha.Val != float32(shader.BlendOpAdd) {
			text += ", " + op(rt.BlendOpAlpha)
		}
		line(b, depth, "%s", text)
	}

	if rt.ColMask.Val != shader.ColorMaskAll {
		line(b, depth, "ColorMask %s %d", m.colorMask(rt.ColMask), i)
	}
}

// colorMask spells the set channel bits in R, G, B, A order.
func (m *marks) colorMask(v shader.FloatValue) string {
	if v.Name != "" {
		return bound(v, "")
	}
	mask, err := shader.DecodeColorMask(v.Val)
	if err != nil {
		return m.marker(err.(*shader.UnrecognizedValueError))
	}
	if mask == 0 {
		return "0"
	}
	var sb strings.Builder
	for _, c := range []struct {
		bit    int
		letter byte
	}{
		{shader.ColorMaskR, 'R'},
		{shader.ColorMaskG, 'G'},
		{shader.ColorMaskB, 'B'},
		{shader.ColorMaskA, 'A'},
	} {
		if mask&c.bit != 0 {
			sb.WriteByte(c.letter)
		}
	}
	return sb.String()
}

func (m *marks) stencil(s *shader.State, depth int) string {
	groups := []struct {
		suffix string
		op     shader.StencilOp
	}{
		{"", s.StencilOp},
		{"Front", s.StencilOpFront},
		{"Back", s.StencilOpBack},
	}
	deviates := s.StencilRef.Val != 0 || s.StencilReadMask.Val != 255 || s.StencilWriteMask.Val != 255
	for _, g := range groups {
		deviates = deviates || !g.op.IsDefault()
	}
	if !deviates {
		return ""
	}

	var b strings.Builder
	line(&b, depth, "Stencil {")
	if s.StencilRef.Val != 0 {
		line(&b, depth+1, "Ref %s", value(s.StencilRef))
	}
	if s.StencilReadMask.Val != 255 {
		line(&b, depth+1, "ReadMask %s", value(s.StencilReadMask))
	}
	if s.StencilWriteMask.Val != 255 {
		line(&b, depth+1, "WriteMask %s", value(s.StencilWriteMask))
	}
	stencilOp := func(v shader.FloatValue) string {
		return enum(m, v, shader.DecodeStencilOperation)
	}
	for _, g := range groups {
		op := g.op
		if op.Comp.Val != float32(shader.CompareAlways) {
			line(&b, depth+1, "Comp%s %s", g.suffix, enum(m, op.Comp, shader.DecodeCompareFunction))
		}
		if op.Pass.Val != float32(shader.StencilKeep) {
			line(&b, depth+1, "Pass%s %s", g.suffix, stencilOp(op.Pass))
		}
		if op.Fail.Val != float32(shader.StencilKeep) {
			line(&b, depth+1, "Fail%s %s", g.suffix, stencilOp(op.Fail))
		}
		if op.ZFail.Val != float32(shader.StencilKeep) {
			line(&b, depth+1, "ZFail%s %s", g.suffix, stencilOp(op.ZFail))
		}
	}
	line(&b, depth, "}")
	return b.String()
}

func (m *marks) fog(s *shader.State, depth int) string {
	c := s.FogColor
	colorSet := c[0].Val != 0 || c[1].Val != 0 || c[2].Val != 0 || c[3].Val != 0
	if s.FogMode == shader.FogUnknown && !colorSet &&
		s.FogDensity.Val == 0 && s.FogStart.Val == 0 && s.FogEnd.Val == 0 {
		return ""
	}

	var b strings.Builder
	line(&b, depth, "Fog {")
	if s.FogMode != shader.FogUnknown {
		name, err := s.FogMode.Name()
		if err != nil {
			name = m.marker(err.(*shader.UnrecognizedValueError))
		}
		line(&b, depth+1, "Mode %s", name)
	}
	if colorSet {
		line(&b, depth+1, "Color (%s,%s,%s,%s)", value(c[0]), value(c[1]), value(c[2]), value(c[3]))
	}
	if s.FogDensity.Val != 0 {
		line(&b, depth+1, "Density %s", value(s.FogDensity))
	}
	if s.FogStart.Val != 0 || s.FogEnd.Val != 0 {
		line(&b, depth+1, "Range %s, %s", value(s.FogStart), value(s.FogEnd))
	}
	line(&b, depth, "}")
	return b.String()
}

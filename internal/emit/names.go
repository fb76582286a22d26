package emit

import (
	"fmt"
	"strings"

	"unshader/internal/shader"
)

// Names resolves name-table indices to symbols.
type Names map[int32]string

// Name returns the symbol bound to index i.
func (n Names) Name(i int32) string {
	if s, ok := n[i]; ok {
		return s
	}
	return fmt.Sprintf("<unknown name %d>", i)
}

// swizzle names components 1 to 3; component 0 is the bare register.
var swizzle = [3]string{"x", "y", "z"}

// VectorName decodes a packed byte offset inside constant buffer cb.
// Registers are 16 bytes wide: the offset selects a register, then a
// component when it lands on a 4-byte boundary.
func VectorName(cb string, offset int32) string {
	base := offset / 16
	within := offset % 16
	component := within / 4
	remainder := within % 4
	switch {
	case component == 0:
		return fmt.Sprintf("%s[%d]", cb, base)
	case component > 0 && component < 4 && remainder == 0:
		return fmt.Sprintf("%s[%d].%s", cb, base, swizzle[component-1])
	default:
		return fmt.Sprintf("%s[%d]+%d", cb, base, within)
	}
}

// MatrixName names the four registers a matrix at offset occupies.
func MatrixName(cb string, offset int32) string {
	b := offset / 16
	return fmt.Sprintf("%s[%d][%d][%d][%d]", cb, b, b+1, b+2, b+3)
}

// TextureName names texture binding slot index.
func TextureName(index int32) string {
	return fmt.Sprintf("t%d", index)
}

// bufferNames maps a constant buffer's name index to its register name.
func bufferNames(p *shader.Parameters) map[int32]string {
	m := make(map[int32]string, len(p.ConstantBufferBindings))
	for _, b := range p.ConstantBufferBindings {
		m[b.NameIndex] = fmt.Sprintf("cb%d", b.Index)
	}
	return m
}

// textures renders the texture binding block of one stage.
func textures(names Names, p *shader.Parameters, stage string, depth int) string {
	if len(p.TextureParams) == 0 {
		return ""
	}
	var b strings.Builder
	line(&b, depth, "Textures %q {", stage)
	for _, t := range p.TextureParams {
		line(&b, depth+1, "%s : %s", TextureName(t.Index), names.Name(t.NameIndex))
	}
	line(&b, depth, "}")
	return b.String()
}

// parameters renders the constant buffer layout of one stage.
func parameters(names Names, p *shader.Parameters, stage string, depth int) string {
	if len(p.ConstantBuffers) == 0 {
		return ""
	}
	bound := bufferNames(p)
	var b strings.Builder
	line(&b, depth, "Parameters %q {", stage)
	for _, cb := range p.ConstantBuffers {
		reg, ok := bound[cb.NameIndex]
		if !ok {
			reg = "cb?"
		}
		line(&b, depth+1, "%s : %s", reg, names.Name(cb.NameIndex))
		for _, m := range cb.MatrixParams {
			line(&b, depth+2, "%s : %s", MatrixName(reg, m.Index), names.Name(m.NameIndex))
		}
		for _, v := range cb.VectorParams {
			line(&b, depth+2, "%s : %s", VectorName(reg, v.Index), names.Name(v.NameIndex))
		}
	}
	line(&b, depth, "}")
	return b.String()
}

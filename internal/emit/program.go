package emit

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"unshader/internal/platform"
	"unshader/internal/shader"
)

// SubProgramText is a sub-program ready to print: its keywords and the
// rendered program text.
type SubProgramText struct {
	Keywords      []string
	LocalKeywords []string
	Code          string
}

// Programs supplies the emitter with platform selection and rendered
// sub-programs. Implementations must be deterministic for a given asset.
type Programs interface {
	// Select picks the platform whose programs render a group of type t.
	Select(t platform.GPUProgramType) (platform.Selection, bool)
	// SubProgram returns blob index i of the selected platform's table.
	// A nil result with a nil error renders nothing; an error renders
	// in place of the program text.
	SubProgram(sel platform.Selection, blobIndex uint32) (*SubProgramText, error)
}

// Body renders a sub-program's keyword lines and quoted program text
// without indentation.
func (t *SubProgramText) Body() string {
	var b strings.Builder
	if len(t.Keywords) > 0 {
		b.WriteString("Keywords { ")
		for _, k := range t.Keywords {
			fmt.Fprintf(&b, "%q ", k)
		}
		b.WriteString("}\n")
	}
	if len(t.LocalKeywords) > 0 {
		b.WriteString("Local Keywords { ")
		for _, k := range t.LocalKeywords {
			fmt.Fprintf(&b, "%q ", k)
		}
		b.WriteString("}\n")
	}
	b.WriteByte('"')
	b.WriteString(t.Code)
	b.WriteByte('"')
	return b.String()
}

// reindent prefixes every line of s with the indentation for depth.
func reindent(s string, depth int) string {
	pad := indent(depth)
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}

func (e *Emitter) stage(names Names, st shader.Stage, depth int) string {
	p := st.Program
	if p == nil {
		return ""
	}
	var b strings.Builder
	if cp := p.CommonParameters; cp != nil {
		b.WriteString(textures(names, cp, st.Keyword, depth))
		b.WriteString(parameters(names, cp, st.Keyword, depth))
	}
	if len(p.SubPrograms) > 0 {
		line(&b, depth, "Program %q {", st.Keyword)
		b.WriteString(e.subPrograms(p.SubPrograms, true, depth+1))
		line(&b, depth, "}")
	}
	if player := shader.FlattenPlayerSubPrograms(p); len(player) > 0 {
		line(&b, depth, "PlayerProgram %q {", st.Keyword)
		b.WriteString(e.subPrograms(player, false, depth+1))
		line(&b, depth, "}")
	}
	return b.String()
}

// group is the descriptors sharing one (blob index, program type) pair.
type group struct {
	blobIndex uint32
	gpuType   platform.GPUProgramType
	members   []shader.ProgramDescriptor
}

// groupDescriptors groups by blob index, then by program type within
// each blob index. Both levels keep first-appearance order.
func groupDescriptors(ds []shader.ProgramDescriptor) []group {
	var blobs []uint32
	byBlob := make(map[uint32][]*group)
	n := 0
	for _, d := range ds {
		gs, seen := byBlob[d.BlobIndex]
		if !seen {
			blobs = append(blobs, d.BlobIndex)
		}
		var g *group
		for _, cand := range gs {
			if cand.gpuType == d.GPUProgramType {
				g = cand
				break
			}
		}
		if g == nil {
			g = &group{blobIndex: d.BlobIndex, gpuType: d.GPUProgramType}
			byBlob[d.BlobIndex] = append(gs, g)
			n++
		}
		g.members = append(g.members, d)
	}
	out := make([]group, 0, n)
	for _, bi := range blobs {
		for _, g := range byBlob[bi] {
			out = append(out, *g)
		}
	}
	return out
}

func (e *Emitter) subPrograms(ds []shader.ProgramDescriptor, editor bool, depth int) string {
	if e.Programs == nil {
		return ""
	}
	var b strings.Builder
	for _, g := range groupDescriptors(ds) {
		sel, ok := e.Programs.Select(g.gpuType)
		if !ok {
			continue
		}
		for i := range g.members {
			b.WriteString(e.subProgram(sel, &g.members[i], editor, depth))
		}
	}
	return b.String()
}

func (e *Emitter) subProgram(sel platform.Selection, d *shader.ProgramDescriptor, editor bool, depth int) string {
	text, err := e.Programs.SubProgram(sel, d.BlobIndex)
	if text == nil && err == nil {
		return ""
	}

	var b strings.Builder
	if editor {
		line(&b, depth, "SubProgram \"%s hw_tier%02d \" {", sel.Platform, d.HardwareTier)
		if d.Parameters != nil {
			if js, jerr := json.Marshal(d.Parameters); jerr == nil {
				line(&b, depth+1, "// parameters: %s", js)
			}
		}
	} else {
		line(&b, depth, "SubProgram \"%s \" {", sel.Platform)
	}
	if err != nil {
		line(&b, depth+1, "// %v", err)
	} else {
		b.WriteString(reindent(text.Body(), depth+1))
		b.WriteByte('\n')
	}
	line(&b, depth, "}")
	return b.String()
}

var gpuProgramIndex = regexp.MustCompile(`GpuProgramIndex (.+)`)

// Legacy substitutes every "GpuProgramIndex <n>" in a pre-5.5 script with
// the body of sub-program n. lookup returns nil for an absent program.
func Legacy(script string, lookup func(index int) (*SubProgramText, error)) string {
	return gpuProgramIndex.ReplaceAllStringFunc(script, func(m string) string {
		arg := strings.TrimSpace(gpuProgramIndex.FindStringSubmatch(m)[1])
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Sprintf("// bad program index %q", arg)
		}
		text, err := lookup(n)
		switch {
		case err != nil:
			return fmt.Sprintf("// %v", err)
		case text == nil:
			return fmt.Sprintf("// missing program %d", n)
		}
		return text.Body()
	})
}

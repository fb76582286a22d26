package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"unshader/internal/platform"
	"unshader/internal/shader"
	"unshader/internal/shadergraph"
)

func sample() *shader.SerializedShader {
	return &shader.SerializedShader{
		Name: "FX/<Glass>",
		SubShaders: []shader.SubShader{{
			Passes: []shader.Pass{
				{Type: shader.PassGrab, TextureName: "_GrabTexture"},
				{
					State:    shader.DefaultState(),
					Vertex:   &shader.Program{SubPrograms: []shader.ProgramDescriptor{{BlobIndex: 0, GPUProgramType: platform.GLCore32}}},
					Fragment: &shader.Program{SubPrograms: []shader.ProgramDescriptor{{BlobIndex: 1, GPUProgramType: platform.GLCore32}}},
				},
				{Type: shader.PassUse, UseName: "FX/Base/MAIN"},
			},
		}},
		Dependencies: []shader.Dependency{{From: "Fallback", To: "Diffuse"}},
	}
}

func selector() shadergraph.Selector {
	return shadergraph.Select(platform.DefaultCapabilities, []platform.Compiler{platform.OpenGLCore})
}

func TestDotID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"shader", "n_shader"},
		{"SubShader 0/Pass 1", "n_SubShader_00200_002fPass_00201"},
	}
	for _, tt := range tests {
		if got := dotID(tt.in); got != tt.want {
			t.Errorf("dotID(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestTruncLabel(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Pass", 10, "Pass"},
		{"ForwardBase", 8, "Forwa..."},
		{"Ombre/Éclairé", 13, "Ombre/Éclairé"},
		{"Ombre/Éclairé", 9, "Ombre/..."},
		{"ÉÉÉÉÉÉ", 5, "ÉÉ..."},
	}
	for _, tt := range tests {
		got := truncLabel(tt.in, tt.max)
		if got != tt.want || !utf8.ValidString(got) {
			t.Errorf("truncLabel(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestStructureDOT(t *testing.T) {
	st := shadergraph.Build(sample(), selector())
	dot := StructureDOT(st, "FX/<Glass>", NASA)

	for _, want := range []string{
		"digraph shader {",
		"subgraph cluster_n_SubShader_00200 {",
		"FX/&lt;Glass&gt;",
		`label="glcore GLCore32 #0"`,
		`label="UsePass FX/Base/MAIN", shape=plaintext`,
		`label="GrabPass _GrabTexture", fillcolor="#ECEFF1"`,
		`color="#E65100", style="dashed"`,
		`color="#0B3D91", style="solid"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if got := strings.Count(dot, " -> "); got != len(st.Graph.Edges) {
		t.Errorf("rendered %d edges, want %d", got, len(st.Graph.Edges))
	}
	if dot != StructureDOT(st, "FX/<Glass>", NASA) {
		t.Error("rendering is not deterministic")
	}
}

func TestPipelineDOT(t *testing.T) {
	cg := shadergraph.BuildPipelines(sample(), selector())
	dot := PipelineDOT(cg, "pipelines", NASA)
	for _, want := range []string{
		"subgraph cluster_p0 {",
		"p0_b0 -> p0_b1;",
		"vp: glcore GLCore32 #0",
		"fp: glcore GLCore32 #1",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

package platform

import (
	"errors"
	"testing"
)

func TestSelectFirstMatchWins(t *testing.T) {
	// Both platforms accept the type; the first declared must win every time.
	caps := Capabilities{
		D3D11:  {DX11VertexSM50, SPIRV},
		Vulkan: {SPIRV, DX11VertexSM50},
	}
	platforms := []Compiler{D3D11, Vulkan}
	for i := 0; i < 100; i++ {
		sel, ok, skipped := caps.Select(platforms, DX11VertexSM50)
		if !ok {
			t.Fatal("expected a selection")
		}
		if sel.Platform != D3D11 || sel.Index != 0 {
			t.Fatalf("selected %s@%d, want d3d11@0", sel.Platform, sel.Index)
		}
		if len(skipped) != 0 {
			t.Fatalf("unexpected skipped: %v", skipped)
		}
	}
}

func TestSelectDefaultTable(t *testing.T) {
	tests := []struct {
		name      string
		platforms []Compiler
		prog      GPUProgramType
		wantIdx   int
		wantOK    bool
	}{
		{"d3d11 before vulkan", []Compiler{D3D11, Vulkan}, SPIRV, 1, true},
		{"d3d11 vertex", []Compiler{D3D11, Vulkan}, DX11VertexSM50, 0, true},
		{"gles3 family", []Compiler{GLES20, GLES3Plus}, GLES31AEP, 1, true},
		{"console bucket first", []Compiler{PS4, Switch}, ConsoleFS, 0, true},
		{"metal", []Compiler{Metal}, MetalFS, 0, true},
		{"glcore", []Compiler{GL, OpenGLCore}, GLCore43, 1, true},
		{"d3d9", []Compiler{D3D9}, DX9PixelSM30, 0, true},
		{"d3d11_9x", []Compiler{D3D11, D3D11_9x}, DX10Level9Pixel, 1, true},
		{"ps5 nggc", []Compiler{PS5, PS5NGGC}, PS5NGGCProgram, 1, true},
		{"no match", []Compiler{D3D11, Metal}, SPIRV, -1, false},
		{"ray tracing unmapped", []Compiler{D3D11, Vulkan}, RayTracing, -1, false},
		{"empty list", nil, SPIRV, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, ok, _ := DefaultCapabilities.Select(tt.platforms, tt.prog)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if sel.Index != tt.wantIdx {
				t.Errorf("index = %d, want %d", sel.Index, tt.wantIdx)
			}
		})
	}
}

func TestSelectSkipsUnsupported(t *testing.T) {
	platforms := []Compiler{Flash, Compiler(99), Vulkan}
	sel, ok, skipped := DefaultCapabilities.Select(platforms, SPIRV)
	if !ok || sel.Platform != Vulkan || sel.Index != 2 {
		t.Fatalf("selection = %+v ok=%v, want vulkan@2", sel, ok)
	}
	if len(skipped) != 2 {
		t.Fatalf("skipped %d platforms, want 2", len(skipped))
	}
	var upe *UnsupportedPlatformError
	if !errors.As(skipped[0], &upe) || upe.Platform != Flash {
		t.Errorf("skipped[0] = %v, want UnsupportedPlatformError(Flash)", skipped[0])
	}
}

func TestAcceptsUnsupported(t *testing.T) {
	for _, p := range []Compiler{NaCl, Flash, PSM, None, Compiler(42)} {
		if _, err := DefaultCapabilities.Accepts(p, GLES); err == nil {
			t.Errorf("Accepts(%d) returned no error", p)
		}
	}
}

func TestCompilerString(t *testing.T) {
	tests := []struct {
		c    Compiler
		want string
	}{
		{D3D11, "d3d11"},
		{GL, "openGL"},
		{GLES3Plus, "gles3"},
		{GameCoreScarlett, "xbox_scarlett"},
		{Compiler(77), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Compiler(%d).String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestProgramFamily(t *testing.T) {
	tests := []struct {
		t    GPUProgramType
		want Family
	}{
		{GLES3, FamilyGL},
		{GLCore41, FamilyGL},
		{DX9VertexSM20, FamilyD3D9},
		{DX10Level9Pixel, FamilyD3D11},
		{DX11DomainSM50, FamilyD3D11},
		{MetalVS, FamilyMetal},
		{SPIRV, FamilyVulkan},
		{ConsoleGS, FamilyConsole},
		{RayTracing, FamilyOther},
		{Unknown, FamilyOther},
	}
	for _, tt := range tests {
		if got := tt.t.Family(); got != tt.want {
			t.Errorf("%s.Family() = %s, want %s", tt.t, got, tt.want)
		}
	}
	if GPUProgramType(99).String() != "GPUProgramType(99)" {
		t.Errorf("out-of-range String = %q", GPUProgramType(99).String())
	}
}

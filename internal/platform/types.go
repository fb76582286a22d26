// Package platform maps compiler platforms to the GPU program dialects they
// accept and selects which platform's compiled variant to render.
package platform

import "fmt"

// Compiler is a target graphics backend for which one full set of
// sub-programs was compiled (ShaderCompilerPlatform).
type Compiler int32

const (
	None             Compiler = -1
	GL               Compiler = 0
	D3D9             Compiler = 1
	Xbox360          Compiler = 2
	PS3              Compiler = 3
	D3D11            Compiler = 4
	GLES20           Compiler = 5
	NaCl             Compiler = 6
	Flash            Compiler = 7
	D3D11_9x         Compiler = 8
	GLES3Plus        Compiler = 9
	PSP2             Compiler = 10
	PS4              Compiler = 11
	XboxOne          Compiler = 12
	PSM              Compiler = 13
	Metal            Compiler = 14
	OpenGLCore       Compiler = 15
	N3DS             Compiler = 16
	WiiU             Compiler = 17
	Vulkan           Compiler = 18
	Switch           Compiler = 19
	XboxOneD3D12     Compiler = 20
	GameCoreXboxOne  Compiler = 21
	GameCoreScarlett Compiler = 22
	PS5              Compiler = 23
	PS5NGGC          Compiler = 24
)

var compilerNames = map[Compiler]string{
	GL:               "openGL",
	D3D9:             "d3d9",
	Xbox360:          "xbox360",
	PS3:              "ps3",
	D3D11:            "d3d11",
	GLES20:           "gles",
	NaCl:             "glesdesktop",
	Flash:            "flash",
	D3D11_9x:         "d3d11_9x",
	GLES3Plus:        "gles3",
	PSP2:             "psp2",
	PS4:              "ps4",
	XboxOne:          "xboxone",
	PSM:              "psm",
	Metal:            "metal",
	OpenGLCore:       "glcore",
	N3DS:             "n3ds",
	WiiU:             "wiiu",
	Vulkan:           "vulkan",
	Switch:           "switch",
	XboxOneD3D12:     "xboxone_d3d12",
	GameCoreXboxOne:  "xboxone",
	GameCoreScarlett: "xbox_scarlett",
	PS5:              "ps5",
	PS5NGGC:          "ps5_nggc",
}

// String returns the ShaderLab platform keyword used in SubProgram headers.
func (c Compiler) String() string {
	if s, ok := compilerNames[c]; ok {
		return s
	}
	return "unknown"
}

// GPUProgramType identifies the compiled-bytecode dialect of a sub-program.
type GPUProgramType int32

const (
	Unknown          GPUProgramType = 0
	GLLegacy         GPUProgramType = 1
	GLES31AEP        GPUProgramType = 2
	GLES31           GPUProgramType = 3
	GLES3            GPUProgramType = 4
	GLES             GPUProgramType = 5
	GLCore32         GPUProgramType = 6
	GLCore41         GPUProgramType = 7
	GLCore43         GPUProgramType = 8
	DX9VertexSM20    GPUProgramType = 9
	DX9VertexSM30    GPUProgramType = 10
	DX9PixelSM20     GPUProgramType = 11
	DX9PixelSM30     GPUProgramType = 12
	DX10Level9Vertex GPUProgramType = 13
	DX10Level9Pixel  GPUProgramType = 14
	DX11VertexSM40   GPUProgramType = 15
	DX11VertexSM50   GPUProgramType = 16
	DX11PixelSM40    GPUProgramType = 17
	DX11PixelSM50    GPUProgramType = 18
	DX11GeometrySM40 GPUProgramType = 19
	DX11GeometrySM50 GPUProgramType = 20
	DX11HullSM50     GPUProgramType = 21
	DX11DomainSM50   GPUProgramType = 22
	MetalVS          GPUProgramType = 23
	MetalFS          GPUProgramType = 24
	SPIRV            GPUProgramType = 25
	ConsoleVS        GPUProgramType = 26
	ConsoleFS        GPUProgramType = 27
	ConsoleHS        GPUProgramType = 28
	ConsoleDS        GPUProgramType = 29
	ConsoleGS        GPUProgramType = 30
	RayTracing       GPUProgramType = 31
	PS5NGGCProgram   GPUProgramType = 32
)

var programTypeNames = [...]string{
	Unknown:          "Unknown",
	GLLegacy:         "GLLegacy",
	GLES31AEP:        "GLES31AEP",
	GLES31:           "GLES31",
	GLES3:            "GLES3",
	GLES:             "GLES",
	GLCore32:         "GLCore32",
	GLCore41:         "GLCore41",
	GLCore43:         "GLCore43",
	DX9VertexSM20:    "DX9VertexSM20",
	DX9VertexSM30:    "DX9VertexSM30",
	DX9PixelSM20:     "DX9PixelSM20",
	DX9PixelSM30:     "DX9PixelSM30",
	DX10Level9Vertex: "DX10Level9Vertex",
	DX10Level9Pixel:  "DX10Level9Pixel",
	DX11VertexSM40:   "DX11VertexSM40",
	DX11VertexSM50:   "DX11VertexSM50",
	DX11PixelSM40:    "DX11PixelSM40",
	DX11PixelSM50:    "DX11PixelSM50",
	DX11GeometrySM40: "DX11GeometrySM40",
	DX11GeometrySM50: "DX11GeometrySM50",
	DX11HullSM50:     "DX11HullSM50",
	DX11DomainSM50:   "DX11DomainSM50",
	MetalVS:          "MetalVS",
	MetalFS:          "MetalFS",
	SPIRV:            "SPIRV",
	ConsoleVS:        "ConsoleVS",
	ConsoleFS:        "ConsoleFS",
	ConsoleHS:        "ConsoleHS",
	ConsoleDS:        "ConsoleDS",
	ConsoleGS:        "ConsoleGS",
	RayTracing:       "RayTracing",
	PS5NGGCProgram:   "PS5NGGC",
}

func (t GPUProgramType) String() string {
	if t >= 0 && int(t) < len(programTypeNames) {
		return programTypeNames[t]
	}
	return fmt.Sprintf("GPUProgramType(%d)", int32(t))
}

// Family groups program types by how their bytes are rendered.
type Family int

const (
	FamilyOther Family = iota
	FamilyGL
	FamilyD3D9
	FamilyD3D11
	FamilyMetal
	FamilyVulkan
	FamilyConsole
)

func (f Family) String() string {
	switch f {
	case FamilyGL:
		return "gl"
	case FamilyD3D9:
		return "d3d9"
	case FamilyD3D11:
		return "d3d11"
	case FamilyMetal:
		return "metal"
	case FamilyVulkan:
		return "vulkan"
	case FamilyConsole:
		return "console"
	default:
		return "other"
	}
}

// Family returns the rendering family of a program type.
func (t GPUProgramType) Family() Family {
	switch t {
	case GLLegacy, GLES31AEP, GLES31, GLES3, GLES, GLCore32, GLCore41, GLCore43:
		return FamilyGL
	case DX9VertexSM20, DX9VertexSM30, DX9PixelSM20, DX9PixelSM30:
		return FamilyD3D9
	case DX10Level9Vertex, DX10Level9Pixel,
		DX11VertexSM40, DX11VertexSM50, DX11PixelSM40, DX11PixelSM50,
		DX11GeometrySM40, DX11GeometrySM50, DX11HullSM50, DX11DomainSM50:
		return FamilyD3D11
	case MetalVS, MetalFS:
		return FamilyMetal
	case SPIRV:
		return FamilyVulkan
	case ConsoleVS, ConsoleFS, ConsoleHS, ConsoleDS, ConsoleGS:
		return FamilyConsole
	default:
		return FamilyOther
	}
}

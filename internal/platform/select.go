package platform

import "fmt"

// UnsupportedPlatformError reports a compiler platform with no capability set.
// Selection skips the platform and continues with the next one.
type UnsupportedPlatformError struct {
	Platform Compiler
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("platform: unsupported compiler platform %d (%s)", int32(e.Platform), e.Platform)
}

// Capabilities maps a compiler platform to the GPU program types it accepts.
type Capabilities map[Compiler][]GPUProgramType

var consolePrograms = []GPUProgramType{ConsoleVS, ConsoleFS, ConsoleHS, ConsoleDS, ConsoleGS}

// DefaultCapabilities is the static platform → program type table.
// Closed platforms share the console bucket. NaCl, Flash and PSM are absent.
var DefaultCapabilities = Capabilities{
	D3D11: {
		DX11VertexSM40, DX11VertexSM50, DX11PixelSM40, DX11PixelSM50,
		DX11GeometrySM40, DX11GeometrySM50, DX11HullSM50, DX11DomainSM50,
	},
	D3D9: {DX9VertexSM20, DX9VertexSM30, DX9PixelSM20, DX9PixelSM30},

	GL:         {GLLegacy},
	GLES20:     {GLES},
	D3D11_9x:   {DX10Level9Vertex, DX10Level9Pixel},
	GLES3Plus:  {GLES31AEP, GLES31, GLES3},
	Metal:      {MetalVS, MetalFS},
	OpenGLCore: {GLCore32, GLCore41, GLCore43},
	Vulkan:     {SPIRV},
	PS5NGGC:    {PS5NGGCProgram},

	Xbox360:          consolePrograms,
	PS3:              consolePrograms,
	PSP2:             consolePrograms,
	PS4:              consolePrograms,
	XboxOne:          consolePrograms,
	N3DS:             consolePrograms,
	WiiU:             consolePrograms,
	Switch:           consolePrograms,
	XboxOneD3D12:     consolePrograms,
	GameCoreXboxOne:  consolePrograms,
	GameCoreScarlett: consolePrograms,
	PS5:              consolePrograms,
}

// Accepts reports whether platform p can host program type t.
// A platform with no capability set yields *UnsupportedPlatformError.
func (c Capabilities) Accepts(p Compiler, t GPUProgramType) (bool, error) {
	set, ok := c[p]
	if !ok {
		return false, &UnsupportedPlatformError{Platform: p}
	}
	for _, s := range set {
		if s == t {
			return true, nil
		}
	}
	return false, nil
}

// Selection identifies the platform chosen for a program group.
// Index is the position in the asset's platform list, which is also the
// index of that platform's program table.
type Selection struct {
	Index    int
	Platform Compiler
}

// Select walks platforms in declared order and returns the first one that
// accepts t. Later platforms are never consulted. Unsupported platforms are
// skipped and reported in skipped; ok is false when nothing matches.
func (c Capabilities) Select(platforms []Compiler, t GPUProgramType) (sel Selection, ok bool, skipped []error) {
	for i, p := range platforms {
		accepts, err := c.Accepts(p, t)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		if accepts {
			return Selection{Index: i, Platform: p}, true, skipped
		}
	}
	return Selection{Index: -1, Platform: None}, false, skipped
}

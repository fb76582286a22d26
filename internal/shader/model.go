// Package shader holds the parsed shader asset: the compiled program
// storage and the ShaderLab tree that references it.
package shader

import (
	"unshader/internal/platform"
	"unshader/internal/unityfmt"
)

// Asset is one compiled shader as produced by the container parser.
// Either CompressedBlob (5.5 and up) or SubProgramBlob (5.3-5.4) carries
// the programs; an asset with neither only has Script.
type Asset struct {
	Name    string           `json:"name"`
	Version unityfmt.Version `json:"version"`

	// 5.3-5.4
	Script           string `json:"script,omitempty"`
	SubProgramBlob   []byte `json:"sub_program_blob,omitempty"`
	DecompressedSize uint32 `json:"decompressed_size,omitempty"`

	// 5.5 and up. Offsets and the length arrays are indexed [platform][segment].
	Platforms           []platform.Compiler `json:"platforms,omitempty"`
	Offsets             [][]uint32          `json:"offsets,omitempty"`
	CompressedLengths   [][]uint32          `json:"compressed_lengths,omitempty"`
	DecompressedLengths [][]uint32          `json:"decompressed_lengths,omitempty"`
	CompressedBlob      []byte              `json:"compressed_blob,omitempty"`

	ParsedForm *SerializedShader `json:"parsed_form,omitempty"`
}

// IsLegacy reports whether programs live in the single pre-5.5 blob.
func (a *Asset) IsLegacy() bool { return a.SubProgramBlob != nil }

// HasPrograms reports whether the asset carries any compiled programs.
func (a *Asset) HasPrograms() bool { return a.SubProgramBlob != nil || a.CompressedBlob != nil }

// SerializedShader is the ShaderLab tree.
type SerializedShader struct {
	Name             string       `json:"name"`
	Properties       []Property   `json:"properties"`
	SubShaders       []SubShader  `json:"sub_shaders"`
	FallbackName     string       `json:"fallback_name,omitempty"`
	CustomEditorName string       `json:"custom_editor_name,omitempty"`
	Dependencies     []Dependency `json:"dependencies,omitempty"`
}

// Dependency is a named dependent shader (UsePass targets, billboard shaders).
type Dependency struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Property struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Attributes  []string       `json:"attributes,omitempty"`
	Type        PropertyType   `json:"type"`
	Flags       PropertyFlag   `json:"flags,omitempty"`
	DefValue    [4]float32     `json:"def_value"`
	DefTexture  TextureDefault `json:"def_texture"`
}

type TextureDefault struct {
	DefaultName string           `json:"default_name"`
	Dim         TextureDimension `json:"dim"`
}

// Tag is one ordered key/value entry of a tag map.
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type SubShader struct {
	LOD    int32  `json:"lod,omitempty"`
	Tags   []Tag  `json:"tags,omitempty"`
	Passes []Pass `json:"passes"`
}

// NameIndex binds a symbol name to the index programs refer to it by.
type NameIndex struct {
	Name  string `json:"name"`
	Index int32  `json:"index"`
}

type Pass struct {
	Type        PassType    `json:"type"`
	UseName     string      `json:"use_name,omitempty"`
	TextureName string      `json:"texture_name,omitempty"`
	State       State       `json:"state"`
	NameIndices []NameIndex `json:"name_indices,omitempty"`

	Vertex     *Program `json:"vertex,omitempty"`
	Fragment   *Program `json:"fragment,omitempty"`
	Geometry   *Program `json:"geometry,omitempty"`
	Hull       *Program `json:"hull,omitempty"`
	Domain     *Program `json:"domain,omitempty"`
	RayTracing *Program `json:"ray_tracing,omitempty"`
}

// Stage pairs a program with its ShaderLab stage keyword.
type Stage struct {
	Keyword string // vp, fp, gp, hp, dp, rtp
	Program *Program
}

// Stages returns the pass's six stages in rendering order. Absent stages
// have a nil Program.
func (p *Pass) Stages() []Stage {
	return []Stage{
		{"vp", p.Vertex},
		{"fp", p.Fragment},
		{"gp", p.Geometry},
		{"hp", p.Hull},
		{"dp", p.Domain},
		{"rtp", p.RayTracing},
	}
}

// Names builds the index → name table of the pass. Later entries win.
func (p *Pass) Names() map[int32]string {
	m := make(map[int32]string, len(p.NameIndices))
	for _, ni := range p.NameIndices {
		m[ni.Index] = ni.Name
	}
	return m
}

// Program is one stage's compiled variants.
type Program struct {
	SubPrograms       []ProgramDescriptor   `json:"sub_programs,omitempty"`
	PlayerSubPrograms [][]ProgramDescriptor `json:"player_sub_programs,omitempty"`
	CommonParameters  *Parameters           `json:"common_parameters,omitempty"`
}

// ProgramDescriptor references one compiled variant by blob index.
// HardwareTier and Parameters are only set on editor sub-programs.
type ProgramDescriptor struct {
	BlobIndex          uint32                  `json:"blob_index"`
	GPUProgramType     platform.GPUProgramType `json:"gpu_program_type"`
	KeywordIndices     []uint16                `json:"keyword_indices,omitempty"`
	ShaderRequirements int64                   `json:"shader_requirements,omitempty"`
	HardwareTier       int8                    `json:"hardware_tier,omitempty"`
	Parameters         *Parameters             `json:"parameters,omitempty"`
}

// FlattenPlayerSubPrograms concatenates the per-platform player lists in
// order. Nil or empty inner lists contribute nothing.
func FlattenPlayerSubPrograms(p *Program) []ProgramDescriptor {
	if p == nil {
		return nil
	}
	var out []ProgramDescriptor
	for _, inner := range p.PlayerSubPrograms {
		out = append(out, inner...)
	}
	return out
}

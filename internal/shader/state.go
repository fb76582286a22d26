package shader

import (
	"bytes"
	"encoding/json"
)

// FloatValue is a serialized state value. Name is set when the value is
// bound to a material property.
type FloatValue struct {
	Val  float32 `json:"val"`
	Name string  `json:"name,omitempty"`
}

// F returns an unbound value.
func F(v float32) FloatValue { return FloatValue{Val: v} }

// UnmarshalJSON accepts either {"val": v, "name": n} or a bare number.
func (f *FloatValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] != '{' {
		*f = FloatValue{}
		return json.Unmarshal(b, &f.Val)
	}
	type plain FloatValue
	return json.Unmarshal(b, (*plain)(f))
}

// RenderTargetCount is the number of per-target blend states.
const RenderTargetCount = 8

// RTBlend is the blend state of one render target.
type RTBlend struct {
	SrcBlend       FloatValue `json:"src_blend"`
	DestBlend      FloatValue `json:"dest_blend"`
	SrcBlendAlpha  FloatValue `json:"src_blend_alpha"`
	DestBlendAlpha FloatValue `json:"dest_blend_alpha"`
	BlendOp        FloatValue `json:"blend_op"`
	BlendOpAlpha   FloatValue `json:"blend_op_alpha"`
	ColMask        FloatValue `json:"col_mask"`
}

// DefaultRTBlend is One Zero, One Zero, Add, all channels.
func DefaultRTBlend() RTBlend {
	return RTBlend{
		SrcBlend:       F(float32(BlendOne)),
		DestBlend:      F(float32(BlendZero)),
		SrcBlendAlpha:  F(float32(BlendOne)),
		DestBlendAlpha: F(float32(BlendZero)),
		BlendOp:        F(float32(BlendOpAdd)),
		BlendOpAlpha:   F(float32(BlendOpAdd)),
		ColMask:        F(ColorMaskAll),
	}
}

func (r *RTBlend) UnmarshalJSON(b []byte) error {
	type plain RTBlend
	*r = DefaultRTBlend()
	return json.Unmarshal(b, (*plain)(r))
}

// StencilOp is one face's stencil configuration.
type StencilOp struct {
	Pass  FloatValue `json:"pass"`
	Fail  FloatValue `json:"fail"`
	ZFail FloatValue `json:"z_fail"`
	Comp  FloatValue `json:"comp"`
}

// DefaultStencilOp keeps on every outcome and always passes.
func DefaultStencilOp() StencilOp {
	return StencilOp{Comp: F(float32(CompareAlways))}
}

// IsDefault reports whether every field equals its default.
func (s StencilOp) IsDefault() bool {
	return s.Pass.Val == float32(StencilKeep) &&
		s.Fail.Val == float32(StencilKeep) &&
		s.ZFail.Val == float32(StencilKeep) &&
		s.Comp.Val == float32(CompareAlways)
}

func (s *StencilOp) UnmarshalJSON(b []byte) error {
	type plain StencilOp
	*s = DefaultStencilOp()
	return json.Unmarshal(b, (*plain)(s))
}

// ColorMask bits as serialized.
const (
	ColorMaskA   = 0x1
	ColorMaskR   = 0x2
	ColorMaskG   = 0x4
	ColorMaskB   = 0x8
	ColorMaskAll = 0xf
)

// DecodeColorMask accepts integral masks in [0, ColorMaskAll].
func DecodeColorMask(v float32) (int, error) {
	return decodeIndex("ColorMask", v, ColorMaskAll+1)
}

// State is a pass's fixed-function state block.
type State struct {
	Name         string `json:"name,omitempty"`
	GPUProgramID int32  `json:"gpu_program_id"`
	LOD          int32  `json:"lod,omitempty"`
	Lighting     bool   `json:"lighting,omitempty"`
	Tags         []Tag  `json:"tags,omitempty"`

	RTBlend         []RTBlend `json:"rt_blend,omitempty"`
	RTSeparateBlend bool      `json:"rt_separate_blend,omitempty"`

	ZClip        *FloatValue `json:"z_clip,omitempty"` // nil means On
	ZTest        FloatValue  `json:"z_test"`
	ZWrite       FloatValue  `json:"z_write"`
	Culling      FloatValue  `json:"culling"`
	OffsetFactor FloatValue  `json:"offset_factor"`
	OffsetUnits  FloatValue  `json:"offset_units"`
	AlphaToMask  FloatValue  `json:"alpha_to_mask"`

	StencilOp        StencilOp  `json:"stencil_op"`
	StencilOpFront   StencilOp  `json:"stencil_op_front"`
	StencilOpBack    StencilOp  `json:"stencil_op_back"`
	StencilReadMask  FloatValue `json:"stencil_read_mask"`
	StencilWriteMask FloatValue `json:"stencil_write_mask"`
	StencilRef       FloatValue `json:"stencil_ref"`

	FogStart   FloatValue    `json:"fog_start"`
	FogEnd     FloatValue    `json:"fog_end"`
	FogDensity FloatValue    `json:"fog_density"`
	FogColor   [4]FloatValue `json:"fog_color"`
	FogMode    FogMode       `json:"fog_mode"`
}

// DefaultState returns a state whose every field equals the ShaderLab
// default, so that rendering it emits only the GpuProgramID line.
func DefaultState() State {
	rt := make([]RTBlend, RenderTargetCount)
	for i := range rt {
		rt[i] = DefaultRTBlend()
	}
	return State{
		RTBlend:          rt,
		ZTest:            F(float32(CompareLEqual)),
		ZWrite:           F(1),
		Culling:          F(float32(CullBack)),
		StencilOp:        DefaultStencilOp(),
		StencilOpFront:   DefaultStencilOp(),
		StencilOpBack:    DefaultStencilOp(),
		StencilReadMask:  F(255),
		StencilWriteMask: F(255),
		FogMode:          FogUnknown,
	}
}

// UnmarshalJSON fills fields missing from the input with their defaults.
func (s *State) UnmarshalJSON(b []byte) error {
	type plain State
	*s = DefaultState()
	s.RTBlend = nil
	if err := json.Unmarshal(b, (*plain)(s)); err != nil {
		return err
	}
	if s.RTBlend == nil {
		s.RTBlend = DefaultState().RTBlend
	}
	return nil
}

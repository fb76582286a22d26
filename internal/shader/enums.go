package shader

import (
	"fmt"
	"math"
)

// UnrecognizedValueError reports a serialized state value outside the
// closed set of its enumeration.
type UnrecognizedValueError struct {
	Concept string
	Value   float32
}

func (e *UnrecognizedValueError) Error() string {
	return fmt.Sprintf("shader: unrecognized %s value %v", e.Concept, e.Value)
}

// Marker is the inline text rendered in place of the value.
func (e *UnrecognizedValueError) Marker() string {
	return fmt.Sprintf("<unrecognized %s %v>", e.Concept, e.Value)
}

// decodeIndex maps a float wire value to an index in [0, n).
func decodeIndex(concept string, v float32, n int) (int, error) {
	if v != float32(math.Trunc(float64(v))) || v < 0 || v >= float32(n) {
		return 0, &UnrecognizedValueError{Concept: concept, Value: v}
	}
	return int(v), nil
}

// CompareFunction is a depth/stencil comparison.
type CompareFunction int

const (
	CompareDisabled CompareFunction = iota
	CompareNever
	CompareLess
	CompareEqual
	CompareLEqual
	CompareGreater
	CompareNotEqual
	CompareGEqual
	CompareAlways
)

var compareNames = [...]string{"Disabled", "Never", "Less", "Equal", "LEqual", "Greater", "NotEqual", "GEqual", "Always"}

func (c CompareFunction) String() string { return compareNames[c] }

// DecodeCompareFunction decodes a serialized comparison function.
func DecodeCompareFunction(v float32) (CompareFunction, error) {
	i, err := decodeIndex("CompareFunction", v, len(compareNames))
	return CompareFunction(i), err
}

// CullMode selects which faces are culled.
type CullMode int

const (
	CullOff CullMode = iota
	CullFront
	CullBack
)

var cullNames = [...]string{"Off", "Front", "Back"}

func (c CullMode) String() string { return cullNames[c] }

func DecodeCullMode(v float32) (CullMode, error) {
	i, err := decodeIndex("CullMode", v, len(cullNames))
	return CullMode(i), err
}

// BlendFactor is a source or destination blend multiplier.
type BlendFactor int

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendDstColor
	BlendSrcColor
	BlendOneMinusDstColor
	BlendSrcAlpha
	BlendOneMinusSrcColor
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendSrcAlphaSaturate
	BlendOneMinusSrcAlpha
)

var blendFactorNames = [...]string{
	"Zero", "One", "DstColor", "SrcColor", "OneMinusDstColor", "SrcAlpha",
	"OneMinusSrcColor", "DstAlpha", "OneMinusDstAlpha", "SrcAlphaSaturate", "OneMinusSrcAlpha",
}

func (b BlendFactor) String() string { return blendFactorNames[b] }

func DecodeBlendFactor(v float32) (BlendFactor, error) {
	i, err := decodeIndex("BlendFactor", v, len(blendFactorNames))
	return BlendFactor(i), err
}

// BlendOp combines source and destination after blending.
type BlendOp int

const BlendOpAdd BlendOp = 0

var blendOpNames = [...]string{
	"Add", "Sub", "RevSub", "Min", "Max",
	"LogicalClear", "LogicalSet", "LogicalCopy", "LogicalCopyInverted", "LogicalNoop",
	"LogicalInvert", "LogicalAnd", "LogicalNand", "LogicalOr", "LogicalNor",
	"LogicalXor", "LogicalEquiv", "LogicalAndReverse", "LogicalAndInverted", "LogicalOrReverse",
	"LogicalOrInverted",
}

func (b BlendOp) String() string { return blendOpNames[b] }

func DecodeBlendOp(v float32) (BlendOp, error) {
	i, err := decodeIndex("BlendOp", v, len(blendOpNames))
	return BlendOp(i), err
}

// StencilOperation is the action taken on a stencil test outcome.
type StencilOperation int

const (
	StencilKeep StencilOperation = iota
	StencilZero
	StencilReplace
	StencilIncrSat
	StencilDecrSat
	StencilInvert
	StencilIncrWrap
	StencilDecrWrap
)

var stencilOpNames = [...]string{"Keep", "Zero", "Replace", "IncrSat", "DecrSat", "Invert", "IncrWrap", "DecrWrap"}

func (s StencilOperation) String() string { return stencilOpNames[s] }

func DecodeStencilOperation(v float32) (StencilOperation, error) {
	i, err := decodeIndex("StencilOp", v, len(stencilOpNames))
	return StencilOperation(i), err
}

// FogMode is the fixed-function fog equation. Unknown means unset.
type FogMode int32

const (
	FogUnknown  FogMode = -1
	FogDisabled FogMode = 0
	FogLinear   FogMode = 1
	FogExp      FogMode = 2
	FogExp2     FogMode = 3
)

var fogNames = [...]string{"Off", "Linear", "Exp", "Exp2"}

// Name returns the ShaderLab keyword, or an error for values outside the set.
func (f FogMode) Name() (string, error) {
	if f < 0 || int(f) >= len(fogNames) {
		return "", &UnrecognizedValueError{Concept: "FogMode", Value: float32(f)}
	}
	return fogNames[f], nil
}

// PropertyType is the declared type of a material property.
type PropertyType int32

const (
	PropColor PropertyType = iota
	PropVector
	PropFloat
	PropRange
	PropTexture
	PropInt
)

// TextureDimension is the default texture's dimension tag.
type TextureDimension int32

const (
	TexUnknown   TextureDimension = -1
	TexNone      TextureDimension = 0
	TexAny       TextureDimension = 1
	Tex2D        TextureDimension = 2
	Tex3D        TextureDimension = 3
	TexCube      TextureDimension = 4
	Tex2DArray   TextureDimension = 5
	TexCubeArray TextureDimension = 6
)

var texDimNames = map[TextureDimension]string{
	TexAny:       "any",
	Tex2D:        "2D",
	Tex3D:        "3D",
	TexCube:      "Cube",
	Tex2DArray:   "2DArray",
	TexCubeArray: "CubeArray",
}

// Name returns the dimension keyword. Unknown and None have none.
func (d TextureDimension) Name() (string, bool) {
	s, ok := texDimNames[d]
	return s, ok
}

// PropertyFlag bits render as attribute prefixes.
type PropertyFlag uint32

const (
	FlagHideInInspector PropertyFlag = 1 << iota
	FlagPerRendererData
	FlagNoScaleOffset
	FlagNormal
	FlagHDR
	FlagGamma
	FlagNonModifiableTextureData
	FlagMainTexture
	FlagMainColor
)

var flagNames = []struct {
	bit  PropertyFlag
	name string
}{
	{FlagHideInInspector, "HideInInspector"},
	{FlagPerRendererData, "PerRendererData"},
	{FlagNoScaleOffset, "NoScaleOffset"},
	{FlagNormal, "Normal"},
	{FlagHDR, "HDR"},
	{FlagGamma, "Gamma"},
	{FlagNonModifiableTextureData, "NonModifiableTextureData"},
	{FlagMainTexture, "MainTexture"},
	{FlagMainColor, "MainColor"},
}

// Names returns the attribute names of the set bits in bit order.
func (f PropertyFlag) Names() []string {
	var out []string
	for _, fn := range flagNames {
		if f&fn.bit != 0 {
			out = append(out, fn.name)
		}
	}
	return out
}

// PassType distinguishes regular, alias and grab passes.
type PassType int32

const (
	PassNormal PassType = iota
	PassUse
	PassGrab
)

package shader

import (
	"errors"
	"math"
	"strings"
	"testing"

	"unshader/internal/platform"
)

func TestDecodeCompareFunction(t *testing.T) {
	tests := []struct {
		in   float32
		want string
		ok   bool
	}{
		{0, "Disabled", true},
		{4, "LEqual", true},
		{8, "Always", true},
		{9, "", false},
		{-1, "", false},
		{2.5, "", false},
		{float32(math.NaN()), "", false},
	}
	for _, tt := range tests {
		got, err := DecodeCompareFunction(tt.in)
		if tt.ok {
			if err != nil || got.String() != tt.want {
				t.Errorf("DecodeCompareFunction(%v) = %v, %v; want %s", tt.in, got, err, tt.want)
			}
			continue
		}
		var ue *UnrecognizedValueError
		if !errors.As(err, &ue) {
			t.Errorf("DecodeCompareFunction(%v): expected *UnrecognizedValueError, got %v", tt.in, err)
		}
	}
}

func TestDecodeTables(t *testing.T) {
	if v, err := DecodeBlendFactor(10); err != nil || v.String() != "OneMinusSrcAlpha" {
		t.Errorf("BlendFactor(10) = %v, %v", v, err)
	}
	if _, err := DecodeBlendFactor(11); err == nil {
		t.Error("BlendFactor(11): expected error")
	}
	if v, err := DecodeBlendOp(20); err != nil || v.String() != "LogicalOrInverted" {
		t.Errorf("BlendOp(20) = %v, %v", v, err)
	}
	if _, err := DecodeBlendOp(21); err == nil {
		t.Error("BlendOp(21): expected error")
	}
	if v, err := DecodeStencilOperation(7); err != nil || v.String() != "DecrWrap" {
		t.Errorf("StencilOp(7) = %v, %v", v, err)
	}
	if v, err := DecodeCullMode(1); err != nil || v.String() != "Front" {
		t.Errorf("CullMode(1) = %v, %v", v, err)
	}
	if _, err := DecodeCullMode(3); err == nil {
		t.Error("CullMode(3): expected error")
	}
}

func TestUnrecognizedValueMarker(t *testing.T) {
	_, err := DecodeCullMode(7)
	var ue *UnrecognizedValueError
	if !errors.As(err, &ue) {
		t.Fatal(err)
	}
	if got := ue.Marker(); got != "<unrecognized CullMode 7>" {
		t.Errorf("Marker = %q", got)
	}
}

func TestFogModeName(t *testing.T) {
	if s, err := FogDisabled.Name(); err != nil || s != "Off" {
		t.Errorf("FogDisabled = %q, %v", s, err)
	}
	if _, err := FogUnknown.Name(); err == nil {
		t.Error("FogUnknown: expected error")
	}
	if _, err := FogMode(9).Name(); err == nil {
		t.Error("FogMode(9): expected error")
	}
}

func TestPropertyFlagNames(t *testing.T) {
	got := strings.Join((FlagHideInInspector | FlagHDR | FlagMainColor).Names(), ",")
	if got != "HideInInspector,HDR,MainColor" {
		t.Errorf("Names = %s", got)
	}
	if PropertyFlag(0).Names() != nil {
		t.Error("zero flags should have no names")
	}
}

func TestFlattenPlayerSubPrograms(t *testing.T) {
	a := ProgramDescriptor{BlobIndex: 1}
	b := ProgramDescriptor{BlobIndex: 2}
	c := ProgramDescriptor{BlobIndex: 3}
	p := &Program{PlayerSubPrograms: [][]ProgramDescriptor{{a, b}, nil, {c}}}

	got := FlattenPlayerSubPrograms(p)
	if len(got) != 3 {
		t.Fatalf("got %d, want 3", len(got))
	}
	for i, want := range []uint32{1, 2, 3} {
		if got[i].BlobIndex != want {
			t.Errorf("[%d] = %d, want %d", i, got[i].BlobIndex, want)
		}
	}
	if FlattenPlayerSubPrograms(nil) != nil {
		t.Error("nil program should flatten to nil")
	}
	if FlattenPlayerSubPrograms(&Program{PlayerSubPrograms: [][]ProgramDescriptor{nil, {}}}) != nil {
		t.Error("empty inner lists should flatten to nil")
	}
}

func TestPassNamesLaterWins(t *testing.T) {
	p := Pass{NameIndices: []NameIndex{{"_A", 1}, {"_B", 2}, {"_C", 1}}}
	m := p.Names()
	if m[1] != "_C" || m[2] != "_B" {
		t.Errorf("Names = %v", m)
	}
}

const sampleJSON = `{
  "name": "Demo",
  "version": "2019.4.31f1",
  "platforms": [4, 18],
  "offsets": [[0], [10]],
  "compressed_lengths": [[10], [5]],
  "decompressed_lengths": [[64], [32]],
  "compressed_blob": "AAECAwQFBgcICQoLDA0O",
  "parsed_form": {
    "name": "Demo",
    "properties": [],
    "sub_shaders": [{
      "passes": [{
        "type": 0,
        "state": {"z_write": 0, "rt_blend": [{"src_blend": {"val": 5, "name": "_Src"}}], "stencil_op": {"pass": 2}}
      }]
    }]
  }
}`

func TestDecodeAppliesStateDefaults(t *testing.T) {
	a, err := Decode(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	if a.Version[0] != 2019 || a.Version[1] != 4 {
		t.Errorf("version = %v", a.Version)
	}
	if len(a.Platforms) != 2 || a.Platforms[1] != platform.Vulkan {
		t.Errorf("platforms = %v", a.Platforms)
	}
	st := a.ParsedForm.SubShaders[0].Passes[0].State
	if st.ZWrite.Val != 0 {
		t.Errorf("ZWrite = %v, want 0", st.ZWrite.Val)
	}
	if st.ZTest.Val != float32(CompareLEqual) || st.Culling.Val != float32(CullBack) {
		t.Errorf("defaults not applied: ZTest=%v Cull=%v", st.ZTest.Val, st.Culling.Val)
	}
	if st.FogMode != FogUnknown {
		t.Errorf("FogMode = %v, want Unknown", st.FogMode)
	}
	if len(st.RTBlend) != 1 {
		t.Fatalf("RTBlend len = %d, want 1", len(st.RTBlend))
	}
	rt := st.RTBlend[0]
	if rt.SrcBlend.Val != 5 || rt.SrcBlend.Name != "_Src" {
		t.Errorf("SrcBlend = %+v", rt.SrcBlend)
	}
	if rt.SrcBlendAlpha.Val != float32(BlendOne) || rt.ColMask.Val != ColorMaskAll {
		t.Errorf("RT defaults not applied: %+v", rt)
	}
	if st.StencilOp.Pass.Val != float32(StencilReplace) || st.StencilOp.Comp.Val != float32(CompareAlways) {
		t.Errorf("StencilOp = %+v", st.StencilOp)
	}
	if st.StencilReadMask.Val != 255 {
		t.Errorf("StencilReadMask = %v", st.StencilReadMask.Val)
	}
}

func TestDecodeRejectsMismatchedArrays(t *testing.T) {
	bad := strings.Replace(sampleJSON, `"offsets": [[0], [10]]`, `"offsets": [[0]]`, 1)
	if _, err := Decode(strings.NewReader(bad)); err == nil {
		t.Error("expected error for mismatched platform arrays")
	}
}

package emit

import (
	"fmt"
	"testing"
)

func TestVectorNameBranches(t *testing.T) {
	for off := int32(0); off < 4096; off++ {
		base, within := off/16, off%16
		component, remainder := within/4, within%4

		var want string
		switch {
		case component == 0:
			want = fmt.Sprintf("cb2[%d]", base)
		case remainder == 0:
			want = fmt.Sprintf("cb2[%d].%c", base, "xyz"[component-1])
		default:
			want = fmt.Sprintf("cb2[%d]+%d", base, within)
		}
		if got := VectorName("cb2", off); got != want {
			t.Fatalf("VectorName(%d) = %s, want %s", off, got, want)
		}
	}
}

func TestVectorNameExamples(t *testing.T) {
	tests := []struct {
		offset int32
		want   string
	}{
		{0, "cb0[0]"},
		{2, "cb0[0]"},
		{4, "cb0[0].x"},
		{20, "cb0[1].x"},
		{24, "cb0[1].y"},
		{44, "cb0[2].z"},
		{6, "cb0[0]+6"},
		{63, "cb0[3]+15"},
	}
	for _, tt := range tests {
		if got := VectorName("cb0", tt.offset); got != tt.want {
			t.Errorf("VectorName(%d) = %s, want %s", tt.offset, got, tt.want)
		}
	}
}

func TestMatrixAndTextureNames(t *testing.T) {
	if got := MatrixName("cb1", 64); got != "cb1[4][5][6][7]" {
		t.Errorf("MatrixName = %s", got)
	}
	if got := MatrixName("cb1", 8); got != "cb1[0][1][2][3]" {
		t.Errorf("MatrixName unaligned = %s", got)
	}
	if got := TextureName(3); got != "t3" {
		t.Errorf("TextureName = %s", got)
	}
}

func TestNamesLookup(t *testing.T) {
	n := Names{0: "_MainTex"}
	if got := n.Name(0); got != "_MainTex" {
		t.Errorf("Name(0) = %s", got)
	}
	if got := n.Name(12); got != "<unknown name 12>" {
		t.Errorf("Name(12) = %s", got)
	}
}

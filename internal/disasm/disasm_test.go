package disasm

import (
	"context"
	"encoding/binary"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/naga/spirv"

	"unshader/internal/platform"
)

func countingService(data []byte, err error, released *int) Service {
	return ServiceFunc(func(ctx context.Context, code []byte) (*Buffer, error) {
		return NewBuffer(data, func() { *released++ }), err
	})
}

func TestDispatcherReleasesBufferOnce(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		err     error
		want    string
		wantErr bool
	}{
		{"ok", []byte("dcl_input v0"), nil, "dcl_input v0", false},
		{"error with text", []byte("partial"), errors.New("boom"), "// disassembly error: dxbc: boom", true},
		{"empty", nil, nil, "// disassembly error: dxbc: empty disassembly", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			released := 0
			d := &Dispatcher{DXBC: countingService(tt.data, tt.err, &released)}
			got, err := d.Render(context.Background(), platform.DX11PixelSM40, []byte{1, 2, 3})
			if got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if released != 1 {
				t.Errorf("released %d times, want 1", released)
			}
		})
	}
}

func TestBufferReleaseIdempotent(t *testing.T) {
	n := 0
	b := NewBuffer([]byte("x"), func() { n++ })
	b.Release()
	b.Release()
	if n != 1 {
		t.Fatalf("release ran %d times", n)
	}
	if b.Len() != 0 {
		t.Fatalf("Len after release = %d", b.Len())
	}
	var nilBuf *Buffer
	nilBuf.Release()
	if nilBuf.Len() != 0 || nilBuf.Bytes() != nil {
		t.Fatal("nil buffer not empty")
	}
}

func TestDispatcherFamilies(t *testing.T) {
	d := NewDispatcher()
	ctx := context.Background()

	got, err := d.Render(ctx, platform.GLCore32, []byte("void main() {}"))
	if err != nil || got != "void main() {}" {
		t.Errorf("GL = %q, %v", got, err)
	}
	got, _ = d.Render(ctx, platform.ConsoleFS, []byte("ps_main"))
	if got != "ps_main" {
		t.Errorf("console = %q", got)
	}

	got, err = d.Render(ctx, platform.RayTracing, []byte{1})
	if got != "// shader disassembly not supported on RayTracing" {
		t.Errorf("unsupported = %q", got)
	}
	var ue *UnsupportedProgramError
	if !errors.As(err, &ue) || ue.Type != platform.RayTracing {
		t.Errorf("err = %v", err)
	}

	got, err = d.Render(ctx, platform.DX9PixelSM30, []byte{1})
	if !strings.HasPrefix(got, "// disassembly error: dxbc: no dxbc disassembler configured") {
		t.Errorf("dxbc = %q", got)
	}
	var se *DisassemblyServiceError
	if !errors.As(err, &se) || se.Service != "dxbc" {
		t.Errorf("err = %v", err)
	}

	got, err = d.Render(ctx, platform.SPIRV, nil)
	if got != "" || err != nil {
		t.Errorf("empty program = %q, %v", got, err)
	}
}

func TestDecodeTextReplacesInvalidUTF8(t *testing.T) {
	got := decodeText([]byte{'a', 0xff, 'b'})
	if got != "a�b" {
		t.Fatalf("got %q", got)
	}
}

func le32(vs ...uint32) []byte {
	b := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint32(b[i*4:], v)
	}
	return b
}

func TestParseMetal(t *testing.T) {
	plain := append(le32(0x12345678), []byte("xlatMtlMain\x00#include <metal_stdlib>")...)
	m, err := ParseMetal(plain)
	if err != nil {
		t.Fatal(err)
	}
	if m.Entry != "xlatMtlMain" || string(m.Source) != "#include <metal_stdlib>" {
		t.Errorf("plain = %q / %q", m.Entry, m.Source)
	}

	// tag, offset, 4 bytes of header, entry, source
	magic := append(le32(metalMagic, 12, 0xdeadbeef), []byte("main0\x00kernel")...)
	m, err = ParseMetal(magic)
	if err != nil {
		t.Fatal(err)
	}
	if m.Entry != "main0" || string(m.Source) != "kernel" {
		t.Errorf("magic = %q / %q", m.Entry, m.Source)
	}

	if _, err := ParseMetal(le32(metalMagic, 400)); err == nil {
		t.Error("header offset past end accepted")
	}
	if _, err := ParseMetal([]byte{1, 2}); err == nil {
		t.Error("short program accepted")
	}

	d := NewDispatcher()
	got, _ := d.Render(context.Background(), platform.MetalFS, magic)
	if got != "kernel" {
		t.Errorf("render = %q", got)
	}
}

func buildModule(t *testing.T) []byte {
	t.Helper()
	b := spirv.NewModuleBuilder(spirv.Version1_3)
	b.AddCapability(spirv.CapabilityShader)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
	void := b.AddTypeVoid()
	fnType := b.AddTypeFunction(void)
	fn := b.AddFunction(fnType, void, spirv.FunctionControlNone)
	b.AddLabel()
	b.AddReturn()
	b.AddFunctionEnd()
	b.AddEntryPoint(spirv.ExecutionModelVertex, fn, "main", nil)
	b.AddName(fn, "main")
	return b.Build()
}

func TestSPIRVModule(t *testing.T) {
	mod := buildModule(t)
	d := NewDispatcher()
	got, err := d.Render(context.Background(), platform.SPIRV, mod)
	if err != nil {
		t.Fatalf("render: %v\n%s", err, got)
	}
	for _, want := range []string{
		"; SPIR-V\n",
		"; Version: 1.3\n",
		"OpCapability Shader\n",
		"OpMemoryModel Logical GLSL450\n",
		"OpEntryPoint Vertex %",
		`"main"`,
		"= OpTypeVoid\n",
		"= OpFunction %",
		"OpReturn\n",
		"OpFunctionEnd\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
}

func TestSPIRVSnippetTable(t *testing.T) {
	mod := buildModule(t)
	// requirements, five (offset, size) pairs, then the module
	head := 4 + maxSnippets*8
	table := le32(0x3, uint32(head), uint32(len(mod)), 0, 0, 0, 0, 0, 0, 0, 0)
	code := append(table, mod...)

	got, err := NewDispatcher().Render(context.Background(), platform.SPIRV, code)
	if err != nil {
		t.Fatalf("render: %v\n%s", err, got)
	}
	if !strings.HasPrefix(got, "; Unity snippet table, requirements 0x3\n; snippet 0\n; SPIR-V\n") {
		t.Errorf("prefix:\n%s", got)
	}

	smolv := append(le32(0, 12, 8), le32(smolvMagic, 0)...)
	got, err = NewDispatcher().Render(context.Background(), platform.SPIRV, smolv)
	if !errors.Is(err, ErrSMOLV) {
		t.Errorf("smolv err = %v", err)
	}
	if !strings.HasPrefix(got, "// disassembly error: ") {
		t.Errorf("smolv text = %q", got)
	}

	bad := append(table, make([]byte, len(mod))...)
	if _, err := NewDispatcher().Render(context.Background(), platform.SPIRV, bad); !errors.Is(err, ErrSPIRVHeader) {
		t.Errorf("bad magic err = %v", err)
	}
}

func TestSPIRVTruncatedInstruction(t *testing.T) {
	mod := buildModule(t)
	// Claim a word count past the end of the module.
	binary.LittleEndian.PutUint32(mod[20:], 100<<16|uint32(spirv.OpCapability))
	buf, err := SPIRVText{}.Disassemble(context.Background(), mod)
	defer buf.Release()
	if err == nil || !strings.Contains(err.Error(), "bad word count 100") {
		t.Fatalf("err = %v", err)
	}
}

func TestFormatImageInstructions(t *testing.T) {
	tests := []struct {
		op   spirv.OpCode
		ops  []uint32
		want string
	}{
		{opTypeImage, []uint32{5, 3, 1, 0, 0, 0, 1, 0}, "%5 = OpTypeImage %3 1 0 0 0 1 0"},
		{opConstantTrue, []uint32{2, 7}, "%7 = OpConstantTrue %2"},
		{opSampledImage, []uint32{9, 10, 11, 12}, "%10 = OpSampledImage %9 %11 %12"},
		{opImageQuerySamples, []uint32{13, 14, 15}, "%14 = OpImageQuerySamples %13 %15"},
		{opTypeImage, []uint32{5}, pad + "OpTypeImage ; truncated, 1 operands"},
	}
	for _, tt := range tests {
		if got := formatInstruction(tt.op, tt.ops); got != tt.want {
			t.Errorf("formatInstruction(%d) = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestExecService(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}
	svc, err := ParseExecService("dxbc", "cat")
	if err != nil {
		t.Fatal(err)
	}
	d := &Dispatcher{DXBC: svc}
	got, err := d.Render(context.Background(), platform.DX11VertexSM50, []byte("ps_5_0\nret"))
	if err != nil || got != "ps_5_0\nret" {
		t.Errorf("cat = %q, %v", got, err)
	}

	if _, err := ParseExecService("dxbc", "  "); err == nil {
		t.Error("empty command accepted")
	}
}

func TestExecServiceFailure(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}
	d := &Dispatcher{DXBC: &ExecService{Name: "dxbc", Bin: "false"}}
	got, err := d.Render(context.Background(), platform.DX11VertexSM50, []byte{1})
	var se *DisassemblyServiceError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v", err)
	}
	if !strings.HasPrefix(got, "// disassembly error: dxbc: run [false]") {
		t.Errorf("text = %q", got)
	}
}

func TestExecServiceTimeout(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	d := &Dispatcher{
		SPIRV:   &ExecService{Name: "spirv", Bin: "sleep", Args: []string{"5"}},
		Timeout: 50 * time.Millisecond,
	}
	start := time.Now()
	got, err := d.Render(context.Background(), platform.SPIRV, []byte{1})
	if err == nil || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v", err)
	}
	if !strings.HasPrefix(got, "// disassembly error: ") {
		t.Errorf("text = %q", got)
	}
	if time.Since(start) > 4*time.Second {
		t.Error("timeout not applied")
	}
}

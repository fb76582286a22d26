package disasm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/encoding/unicode"

	"unshader/internal/platform"
)

// Dispatcher routes program bytes to a rendering strategy by program type.
type Dispatcher struct {
	DXBC    Service       // D3D9 and D3D10/11 bytecode
	SPIRV   Service       // Vulkan
	Timeout time.Duration // per service call; 0 means none
}

// NewDispatcher returns a dispatcher with the in-process SPIR-V service and
// no DXBC back-end.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		DXBC:  Unavailable{Name: "dxbc"},
		SPIRV: SPIRVText{},
	}
}

// Unsupported renders the comment for a program type with no strategy.
func Unsupported(t platform.GPUProgramType) string {
	return fmt.Sprintf("// shader disassembly not supported on %s", t)
}

// DisassemblyError renders the comment for a failed service call.
func DisassemblyError(err error) string {
	return fmt.Sprintf("// disassembly error: %v", err)
}

// decodeText decodes UTF-8, replacing invalid sequences with U+FFFD.
func decodeText(b []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

// Render returns the text for one program. Failures are rendered inline;
// the returned error is informational and never replaces the text.
func (d *Dispatcher) Render(ctx context.Context, t platform.GPUProgramType, code []byte) (string, error) {
	if len(code) == 0 {
		return "", nil
	}
	switch t.Family() {
	case platform.FamilyGL, platform.FamilyConsole:
		return decodeText(code), nil

	case platform.FamilyD3D9, platform.FamilyD3D11:
		return d.call(ctx, "dxbc", d.DXBC, code)

	case platform.FamilyMetal:
		m, err := ParseMetal(code)
		if err != nil {
			return DisassemblyError(err), err
		}
		return decodeText(m.Source), nil

	case platform.FamilyVulkan:
		return d.call(ctx, "spirv", d.SPIRV, code)

	default:
		return Unsupported(t), &UnsupportedProgramError{Type: t}
	}
}

// call runs one service request and releases whatever buffer comes back.
func (d *Dispatcher) call(ctx context.Context, name string, svc Service, code []byte) (string, error) {
	if svc == nil {
		svc = Unavailable{Name: name}
	}
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	buf, err := svc.Disassemble(ctx, code)
	defer buf.Release()

	if err != nil {
		if _, ok := err.(*DisassemblyServiceError); !ok {
			err = &DisassemblyServiceError{Service: name, Err: err}
		}
		return DisassemblyError(err), err
	}
	if buf.Len() == 0 {
		err := &DisassemblyServiceError{Service: name}
		return DisassemblyError(err), err
	}
	return decodeText(buf.Bytes()), nil
}

// UnsupportedProgramError reports a program type with no rendering strategy.
type UnsupportedProgramError struct {
	Type platform.GPUProgramType
}

func (e *UnsupportedProgramError) Error() string {
	return fmt.Sprintf("disasm: no renderer for %s", e.Type)
}

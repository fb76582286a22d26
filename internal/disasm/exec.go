package disasm

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ExecService runs an external disassembler that reads program bytes on
// stdin and writes text to stdout, e.g. a DXBC or spirv-dis wrapper.
type ExecService struct {
	Name string
	Bin  string
	Args []string
}

// ParseExecService splits a command line such as "spirv-dis -" into an
// ExecService. Arguments are split on whitespace.
func ParseExecService(name, cmdline string) (*ExecService, error) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%s: empty command", name)
	}
	return &ExecService{Name: name, Bin: fields[0], Args: fields[1:]}, nil
}

func (s *ExecService) Disassemble(ctx context.Context, code []byte) (*Buffer, error) {
	cmd := exec.CommandContext(ctx, s.Bin, s.Args...)
	cmd.Stdin = bytes.NewReader(code)

	buf, w := newPooled()
	cmd.Stdout = w
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, firstLine(msg))
		}
		return buf.seal(w), &DisassemblyServiceError{Service: s.Name, Err: fmt.Errorf("run %v: %w", cmd.Args, err)}
	}
	return buf.seal(w), nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

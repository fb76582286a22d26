package disasm

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/gogpu/naga/spirv"
	"github.com/pkg/errors"
)

// SPIRVText is an in-process SPIR-V disassembler. It accepts a raw module
// or Unity's snippet table: a requirements word followed by up to five
// (offset, size) pairs, each locating one module.
type SPIRVText struct{}

const (
	maxSnippets = 5
	smolvMagic  = 0x534d4f4c // "SMOL"
)

var (
	ErrSMOLV       = errors.New("spirv: SMOL-V encoded snippet")
	ErrSPIRVHeader = errors.New("spirv: bad module header")
)

func (SPIRVText) Disassemble(ctx context.Context, code []byte) (*Buffer, error) {
	buf, w := newPooled()
	var err error
	if len(code) >= 4 && binary.LittleEndian.Uint32(code) == spirv.MagicNumber {
		err = writeModule(w, code)
	} else {
		err = writeSnippets(ctx, w, code)
	}
	if err != nil {
		return buf.seal(w), &DisassemblyServiceError{Service: "spirv", Err: err}
	}
	return buf.seal(w), nil
}

func writeSnippets(ctx context.Context, w *bytes.Buffer, code []byte) error {
	if len(code) < 4 {
		return errors.Errorf("spirv: program of %d bytes", len(code))
	}
	requirements := binary.LittleEndian.Uint32(code)
	fmt.Fprintf(w, "; Unity snippet table, requirements 0x%x\n", requirements)

	// Pairs stop at the first snippet body.
	minOffset := len(code)
	pos := 4
	found := 0
	for i := 0; i < maxSnippets && pos+8 <= minOffset; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		off := int(int32(binary.LittleEndian.Uint32(code[pos:])))
		size := int(int32(binary.LittleEndian.Uint32(code[pos+4:])))
		pos += 8
		if size <= 0 {
			continue
		}
		if off < 0 || off+size > len(code) {
			return errors.Errorf("spirv: snippet %d at [%d, +%d) outside program of %d bytes", i, off, size, len(code))
		}
		if off < minOffset {
			minOffset = off
		}
		snippet := code[off : off+size]
		if size >= 4 && binary.LittleEndian.Uint32(snippet) == smolvMagic {
			return errors.Wrapf(ErrSMOLV, "snippet %d", i)
		}
		fmt.Fprintf(w, "; snippet %d\n", i)
		if err := writeModule(w, snippet); err != nil {
			return errors.Wrapf(err, "snippet %d", i)
		}
		found++
	}
	if found == 0 {
		return errors.New("spirv: snippet table has no modules")
	}
	return nil
}

// writeModule disassembles one SPIR-V module in spvasm style.
func writeModule(w *bytes.Buffer, data []byte) error {
	if len(data) < 20 || len(data)%4 != 0 {
		return errors.Wrapf(ErrSPIRVHeader, "%d bytes", len(data))
	}
	word := func(i int) uint32 { return binary.LittleEndian.Uint32(data[i*4:]) }
	if word(0) != spirv.MagicNumber {
		return errors.Wrapf(ErrSPIRVHeader, "magic 0x%08x", word(0))
	}
	version := word(1)
	w.WriteString("; SPIR-V\n")
	fmt.Fprintf(w, "; Version: %d.%d\n", (version>>16)&0xff, (version>>8)&0xff)
	fmt.Fprintf(w, "; Generator: 0x%08x\n", word(2))
	fmt.Fprintf(w, "; Bound: %d\n", word(3))
	fmt.Fprintf(w, "; Schema: %d\n", word(4))

	n := len(data) / 4
	for i := 5; i < n; {
		head := word(i)
		op := spirv.OpCode(head & 0xffff)
		count := int(head >> 16)
		if count == 0 || i+count > n {
			return errors.Errorf("spirv: bad word count %d at word %d", count, i)
		}
		ops := make([]uint32, count-1)
		for j := range ops {
			ops[j] = word(i + 1 + j)
		}
		w.WriteString(formatInstruction(op, ops))
		w.WriteString("\n")
		i += count
	}
	return nil
}

func id(n uint32) string { return fmt.Sprintf("%%%d", n) }

func ids(ops []uint32) string {
	var sb strings.Builder
	for _, o := range ops {
		sb.WriteByte(' ')
		sb.WriteString(id(o))
	}
	return sb.String()
}

func lits(ops []uint32) string {
	var sb strings.Builder
	for _, o := range ops {
		fmt.Fprintf(&sb, " %d", o)
	}
	return sb.String()
}

// literalString decodes a NUL-terminated string packed into words and
// returns it with the number of words consumed.
func literalString(ops []uint32) (string, int) {
	var sb strings.Builder
	for i, w := range ops {
		for k := 0; k < 4; k++ {
			c := byte(w >> (8 * k))
			if c == 0 {
				return sb.String(), i + 1
			}
			sb.WriteByte(c)
		}
	}
	return sb.String(), len(ops)
}

func need(op spirv.OpCode, ops []uint32, n int) (string, bool) {
	if len(ops) < n {
		return fmt.Sprintf("%s ; truncated, %d operands", opName(op), len(ops)), false
	}
	return "", true
}

const pad = "      "

func formatInstruction(op spirv.OpCode, ops []uint32) string {
	name := opName(op)
	if s, ok := need(op, ops, minOperands(op)); !ok {
		return pad + s
	}
	switch op {
	case spirv.OpCapability:
		return fmt.Sprintf("%s%s %s", pad, name, lookup(capabilityNames, ops[0]))
	case spirv.OpExtInstImport:
		str, _ := literalString(ops[1:])
		return fmt.Sprintf("%s = %s %q", id(ops[0]), name, str)
	case spirv.OpMemoryModel:
		return fmt.Sprintf("%s%s %s %s", pad, name, lookup(addressingNames, ops[0]), lookup(memoryModelNames, ops[1]))
	case spirv.OpEntryPoint:
		str, used := literalString(ops[2:])
		return fmt.Sprintf("%s%s %s %s %q%s", pad, name, lookup(executionModelNames, ops[0]), id(ops[1]), str, ids(ops[2+used:]))
	case spirv.OpExecutionMode:
		return fmt.Sprintf("%s%s %s %s%s", pad, name, id(ops[0]), lookup(executionModeNames, ops[1]), lits(ops[2:]))
	case spirv.OpName:
		str, _ := literalString(ops[1:])
		return fmt.Sprintf("%s%s %s %q", pad, name, id(ops[0]), str)
	case spirv.OpMemberName:
		str, _ := literalString(ops[2:])
		return fmt.Sprintf("%s%s %s %d %q", pad, name, id(ops[0]), ops[1], str)
	case spirv.OpSource:
		return fmt.Sprintf("%s%s %s %d", pad, name, lookup(sourceLanguageNames, ops[0]), ops[1])
	case spirv.OpDecorate:
		return fmt.Sprintf("%s%s %s %s", pad, name, id(ops[0]), decoration(ops[1], ops[2:]))
	case spirv.OpMemberDecorate:
		return fmt.Sprintf("%s%s %s %d %s", pad, name, id(ops[0]), ops[1], decoration(ops[2], ops[3:]))
	case spirv.OpTypeInt:
		return fmt.Sprintf("%s = %s%s", id(ops[0]), name, lits(ops[1:]))
	case spirv.OpTypeFloat:
		return fmt.Sprintf("%s = %s%s", id(ops[0]), name, lits(ops[1:]))
	case spirv.OpTypeVector, spirv.OpTypeMatrix:
		return fmt.Sprintf("%s = %s %s %d", id(ops[0]), name, id(ops[1]), ops[2])
	case opTypeImage:
		return fmt.Sprintf("%s = %s %s%s", id(ops[0]), name, id(ops[1]), lits(ops[2:]))
	case spirv.OpTypePointer:
		return fmt.Sprintf("%s = %s %s %s", id(ops[0]), name, lookup(storageClassNames, ops[1]), id(ops[2]))
	case spirv.OpConstant:
		return fmt.Sprintf("%s = %s %s%s", id(ops[1]), name, id(ops[0]), lits(ops[2:]))
	case spirv.OpFunction:
		return fmt.Sprintf("%s = %s %s %s %s", id(ops[1]), name, id(ops[0]), functionControl(ops[2]), id(ops[3]))
	case spirv.OpVariable:
		return fmt.Sprintf("%s = %s %s %s%s", id(ops[1]), name, id(ops[0]), lookup(storageClassNames, ops[2]), ids(ops[3:]))
	case spirv.OpStore, spirv.OpBranch:
		return fmt.Sprintf("%s%s%s", pad, name, ids(ops))
	}

	switch {
	case resultOnly(op):
		return fmt.Sprintf("%s = %s%s", id(ops[0]), name, ids(ops[1:]))
	case typedResult(op):
		return fmt.Sprintf("%s = %s %s%s", id(ops[1]), name, id(ops[0]), ids(ops[2:]))
	default:
		return fmt.Sprintf("%s%s%s", pad, name, lits(ops))
	}
}

func minOperands(op spirv.OpCode) int {
	switch op {
	case spirv.OpCapability, spirv.OpLabel:
		return 1
	case spirv.OpExtInstImport, spirv.OpMemoryModel, spirv.OpName, spirv.OpSource,
		spirv.OpDecorate, spirv.OpStore, spirv.OpExecutionMode, spirv.OpTypeInt, spirv.OpTypeFloat,
		opTypeImage:
		return 2
	case spirv.OpEntryPoint, spirv.OpMemberName, spirv.OpMemberDecorate, spirv.OpTypeVector,
		spirv.OpTypeMatrix, spirv.OpTypePointer, spirv.OpConstant, spirv.OpVariable:
		return 3
	case spirv.OpFunction:
		return 4
	}
	if resultOnly(op) {
		return 1
	}
	if typedResult(op) {
		return 2
	}
	return 0
}

// resultOnly reports ops whose first operand is the result id.
func resultOnly(op spirv.OpCode) bool {
	switch {
	case op == opString, op == spirv.OpExtInstImport, op == spirv.OpLabel:
		return true
	case op >= spirv.OpTypeVoid && op <= spirv.OpTypeFunction:
		return true
	}
	return false
}

// typedResult reports ops laid out as (result type, result id, ...).
func typedResult(op spirv.OpCode) bool {
	switch {
	case op >= opConstantTrue && op <= 46, // through OpConstantNull
		op == spirv.OpFunction, op == spirv.OpFunctionParameter, op == opFunctionCall,
		op >= spirv.OpVariable && op <= spirv.OpLoad,
		op >= spirv.OpAccessChain && op <= 68,
		op >= 77 && op <= 84, // composite and vector ops
		op >= opSampledImage && op <= opImageQuerySamples,
		op >= 109 && op <= 209, // conversion, arithmetic, relational, bit, derivative ops
		op == opExtInst, op == opPhi:
		return true
	}
	return false
}

func decoration(d uint32, args []uint32) string {
	s := lookup(decorationNames, d)
	if spirv.Decoration(d) == spirv.DecorationBuiltIn && len(args) > 0 {
		return s + " " + lookup(builtinNames, args[0])
	}
	return s + lits(args)
}

func functionControl(v uint32) string {
	if v == 0 {
		return "None"
	}
	var parts []string
	for bit, name := range []string{"Inline", "DontInline", "Pure", "Const"} {
		if v&(1<<bit) != 0 {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("0x%x", v)
	}
	return strings.Join(parts, "|")
}

func lookup(m map[uint32]string, v uint32) string {
	if s, ok := m[v]; ok {
		return s
	}
	return fmt.Sprintf("%d", v)
}

func opName(op spirv.OpCode) string {
	if s, ok := opNames[uint16(op)]; ok {
		return s
	}
	return fmt.Sprintf("Op%d", uint16(op))
}

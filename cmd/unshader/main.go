package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "convert":
		err = cmdConvert(os.Args[2:])
	case "scan":
		err = cmdScan(os.Args[2:])
	case "dump":
		err = cmdDump(os.Args[2:])
	case "graph":
		err = cmdGraph(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `unshader: compiled Unity shader to ShaderLab listing converter

Usage:
  unshader convert --in <file|dir> [--out <dir>]   Convert assets to listings
  unshader scan    --in <file> [--json]            Print platforms and program tables
  unshader dump    --in <file> --out <dir>         Dump raw sub-programs + programs.json
  unshader graph   --in <file> --out <dir>         Write structure and pipeline DOT

Input is a shader asset exported as JSON by the container parser.

Flags:
  --strict              Fail on first structural error
  --timeout <dur>       Per-call disassembler timeout (default 30s)
  --dxbc-tool <cmd>     External DXBC disassembler, reads bytes on stdin
  --spirv-tool <cmd>    External SPIR-V disassembler (default: built in)
  --jobs <n>            Concurrent conversions (convert only)
  --max-steps <n>       Cap on entries per program table
  --plain               Plain lattice DOT instead of the themed renderer (graph only)
  --verbose             Log diagnostics to stderr
`)
}

package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"unshader/internal/convert"
	"unshader/internal/disasm"
	"unshader/internal/unityfmt"
)

// commonFlags are shared by every subcommand.
type commonFlags struct {
	in        *string
	strict    *bool
	timeout   *time.Duration
	maxSteps  *int
	dxbcTool  *string
	spirvTool *string
	verbose   *bool
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	return &commonFlags{
		in:        fs.String("in", "", "input asset (JSON) or directory"),
		strict:    fs.Bool("strict", false, "fail on first structural error"),
		timeout:   fs.Duration("timeout", unityfmt.DefaultServiceTimeout, "per-call disassembler timeout"),
		maxSteps:  fs.Int("max-steps", 0, "cap on entries per program table"),
		dxbcTool:  fs.String("dxbc-tool", "", "external DXBC disassembler command"),
		spirvTool: fs.String("spirv-tool", "", "external SPIR-V disassembler command"),
		verbose:   fs.Bool("verbose", false, "log diagnostics to stderr"),
	}
}

func (c *commonFlags) options() unityfmt.Options {
	opts := unityfmt.Options{
		Mode:           unityfmt.ModeBestEffort,
		MaxSteps:       *c.maxSteps,
		ServiceTimeout: *c.timeout,
	}
	if *c.strict {
		opts.Mode = unityfmt.ModeStrict
	}
	return opts
}

// config builds the converter configuration and installs the logger.
func (c *commonFlags) config() (convert.Config, error) {
	if *c.verbose {
		convert.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	cfg := convert.Config{Options: c.options()}
	if *c.dxbcTool != "" {
		svc, err := disasm.ParseExecService("dxbc", *c.dxbcTool)
		if err != nil {
			return cfg, err
		}
		cfg.DXBC = svc
	}
	if *c.spirvTool != "" {
		svc, err := disasm.ParseExecService("spirv", *c.spirvTool)
		if err != nil {
			return cfg, err
		}
		cfg.SPIRV = svc
	}
	return cfg, nil
}

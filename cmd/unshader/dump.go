package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"unshader/internal/output"
	"unshader/internal/unityfmt"
)

func cmdDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	common := addCommonFlags(fs)
	outDir := fs.String("out", "", "output directory")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *outDir == "" {
		return fmt.Errorf("--out is required")
	}
	a, err := loadAsset(*common.in)
	if err != nil {
		return err
	}
	opts := common.options()
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	var entries []output.ProgramEntry
	written := 0
	for _, pt := range assetTables(a, opts) {
		if pt.Err != nil {
			if opts.Mode == unityfmt.ModeStrict {
				return fmt.Errorf("platform %d (%s): %w", pt.Index, pt.Name, pt.Err)
			}
			fmt.Fprintf(os.Stderr, "platform %d (%s): %v\n", pt.Index, pt.Name, pt.Err)
			entries = append(entries, output.ProgramEntry{Platform: pt.Name, PlatformIndex: pt.Index, BlobIndex: -1, Error: pt.Err.Error()})
			continue
		}
		for i, e := range pt.Table.Entries {
			pe := output.ProgramEntry{
				Platform:      pt.Name,
				PlatformIndex: pt.Index,
				BlobIndex:     i,
				Segment:       e.Segment,
			}
			rec, err := pt.Table.Record(i)
			if err != nil {
				if opts.Mode == unityfmt.ModeStrict {
					return fmt.Errorf("platform %d (%s) record %d: %w", pt.Index, pt.Name, i, err)
				}
				pe.Error = err.Error()
				entries = append(entries, pe)
				continue
			}
			pe.Version = rec.Version
			pe.Band = rec.Band().Label
			pe.ProgramType = rec.ProgramType.String()
			pe.Keywords = rec.Keywords
			pe.LocalKeywords = rec.LocalKeywords
			pe.CodeSize = len(rec.Code)
			if pe.File, err = output.WriteSubProgramBin(*outDir, pt.Name, i, rec.Code); err != nil {
				return err
			}
			written++
			entries = append(entries, pe)
		}
	}

	if err := output.WriteProgramsJSON(*outDir, entries); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %d sub-programs to %s\n", written, *outDir)
	fmt.Fprintf(os.Stderr, "wrote %s\n", filepath.Join(*outDir, "programs.json"))
	return nil
}

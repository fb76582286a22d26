package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"unshader/internal/convert"
	"unshader/internal/platform"
	"unshader/internal/unityfmt"
)

// scanPlatform summarizes one program table.
type scanPlatform struct {
	Index    int            `json:"index"`
	Platform string         `json:"platform"`
	Segments int            `json:"segments"`
	Entries  int            `json:"entries"`
	Parsed   int            `json:"parsed"`
	Types    map[string]int `json:"types,omitempty"`
	Bands    map[string]int `json:"bands,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type scanReport struct {
	Name      string           `json:"name"`
	Version   unityfmt.Version `json:"version"`
	Legacy    bool             `json:"legacy"`
	Platforms []scanPlatform   `json:"platforms"`
	Diags     []unityfmt.Diag  `json:"diags,omitempty"`
}

func cmdScan(args []string) error {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	common := addCommonFlags(fs)
	jsonOut := fs.Bool("json", false, "output as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}
	a, err := loadAsset(*common.in)
	if err != nil {
		return err
	}
	opts := common.options()

	rep := scanReport{Name: a.Name, Version: a.Version, Legacy: a.IsLegacy()}
	var diags unityfmt.Diags
	for _, pt := range assetTables(a, opts) {
		sp := scanPlatform{Index: pt.Index, Platform: pt.Name}
		where := fmt.Sprintf("platform %d (%s)", pt.Index, pt.Name)
		if pt.Index >= 0 {
			sp.Segments = len(a.Offsets[pt.Index])
		} else {
			sp.Segments = 1
		}
		if pt.Err != nil {
			if opts.Mode == unityfmt.ModeStrict {
				return fmt.Errorf("%s: %w", where, pt.Err)
			}
			sp.Error = pt.Err.Error()
			diags.Add(where, convert.KindOf(pt.Err), pt.Err.Error())
			rep.Platforms = append(rep.Platforms, sp)
			continue
		}
		sp.Entries = pt.Table.Len()
		sp.Types = make(map[string]int)
		sp.Bands = make(map[string]int)
		for i := 0; i < pt.Table.Len(); i++ {
			rec, err := pt.Table.Record(i)
			if err != nil {
				diags.Addf(where, convert.KindOf(err), "record %d: %v", i, err)
				continue
			}
			sp.Parsed++
			sp.Types[rec.ProgramType.String()]++
			sp.Bands[rec.Band().Label]++
		}
		rep.Platforms = append(rep.Platforms, sp)
	}
	rep.Diags = diags.Items()

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	fmt.Printf("Shader:   %s\n", rep.Name)
	fmt.Printf("Version:  %s\n", rep.Version)
	if rep.Legacy {
		fmt.Printf("Storage:  legacy single blob (%d bytes, %d decompressed)\n", len(a.SubProgramBlob), a.DecompressedSize)
	}
	fmt.Printf("\nPlatforms (%d):\n", len(rep.Platforms))
	for _, sp := range rep.Platforms {
		fmt.Printf("  [%2d] %-14s segments=%d entries=%d parsed=%d\n",
			sp.Index, sp.Platform, sp.Segments, sp.Entries, sp.Parsed)
		if sp.Error != "" {
			fmt.Printf("       error: %s\n", sp.Error)
		}
		for _, k := range sortedKeys(sp.Types) {
			fmt.Printf("       %-20s %d\n", k, sp.Types[k])
		}
		for _, k := range sortedKeys(sp.Bands) {
			fmt.Printf("       band %-15s %d\n", k, sp.Bands[k])
		}
	}
	if !rep.Legacy {
		printSelections(a.Platforms)
	}

	if len(rep.Diags) > 0 {
		fmt.Printf("\nDiagnostics (%d):\n", len(rep.Diags))
		for _, d := range rep.Diags {
			fmt.Printf("  %s\n", d)
		}
	}
	return nil
}

// printSelections shows which platform serves each program type the
// asset's platforms can host.
func printSelections(platforms []platform.Compiler) {
	seen := make(map[platform.GPUProgramType]bool)
	var types []platform.GPUProgramType
	for _, p := range platforms {
		for _, t := range platform.DefaultCapabilities[p] {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
	}
	if len(types) == 0 {
		return
	}
	fmt.Printf("\nSelection:\n")
	for _, t := range types {
		sel, ok, _ := platform.DefaultCapabilities.Select(platforms, t)
		if ok {
			fmt.Printf("  %-20s -> [%d] %s\n", t, sel.Index, sel.Platform)
		}
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

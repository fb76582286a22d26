package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"unshader/internal/convert"
	"unshader/internal/output"
)

func cmdConvert(args []string) error {
	fset := flag.NewFlagSet("convert", flag.ExitOnError)
	common := addCommonFlags(fset)
	outDir := fset.String("out", "", "output directory (default: listings to stdout)")
	jobs := fset.Int("jobs", 0, "concurrent conversions (0 = GOMAXPROCS)")

	if err := fset.Parse(args); err != nil {
		return err
	}
	if *common.in == "" {
		return fmt.Errorf("--in is required")
	}
	cfg, err := common.config()
	if err != nil {
		return err
	}

	paths, err := inputPaths(*common.in)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .json assets under %s", *common.in)
	}

	c := convert.New(cfg)
	outcomes, err := c.ConvertFiles(context.Background(), paths, *jobs)
	if err != nil {
		return err
	}

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	listings := make(map[string]string)
	failed, diags := 0, 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", o.Path, o.Err)
			continue
		}
		for _, d := range o.Result.Diags {
			fmt.Fprintf(os.Stderr, "%s: %s\n", o.Path, d)
		}
		diags += len(o.Result.Diags)

		if *outDir == "" {
			fmt.Print(o.Result.Text)
			continue
		}
		path, err := output.WriteListing(*outDir, o.Result.Name, o.Result.Text)
		if err != nil {
			return err
		}
		listings[o.Path] = path
		fmt.Fprintf(os.Stderr, "wrote %s (%d sub-programs)\n", path, o.Result.Rendered)
	}

	if *outDir != "" {
		if err := output.WriteSummaryJSON(*outDir, outcomes, listings); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", filepath.Join(*outDir, "summary.json"))
	}
	fmt.Fprintf(os.Stderr, "converted %d/%d assets, %d diagnostics\n", len(outcomes)-failed, len(outcomes), diags)
	if failed > 0 {
		return fmt.Errorf("%d of %d conversions failed", failed, len(outcomes))
	}
	return nil
}

// inputPaths expands a file or directory argument into sorted .json paths.
func inputPaths(in string) ([]string, error) {
	st, err := os.Stat(in)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return []string{in}, nil
	}
	var paths []string
	err = filepath.WalkDir(in, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", in, err)
	}
	sort.Strings(paths)
	return paths, nil
}

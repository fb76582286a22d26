package main

import (
	"flag"
	"fmt"
	"os"

	latticerender "github.com/zboralski/lattice/render"

	"unshader/internal/output"
	"unshader/internal/platform"
	"unshader/internal/render"
	"unshader/internal/shadergraph"
)

func cmdGraph(args []string) error {
	fs := flag.NewFlagSet("graph", flag.ExitOnError)
	common := addCommonFlags(fs)
	outDir := fs.String("out", "", "output directory")
	plain := fs.Bool("plain", false, "plain lattice DOT instead of the themed renderer")

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
	if a.ParsedForm == nil {
		return fmt.Errorf("%s: asset has no parsed form", a.Name)
	}
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	sel := shadergraph.Select(platform.DefaultCapabilities, a.Platforms)
	st := shadergraph.Build(a.ParsedForm, sel)
	cg := shadergraph.BuildPipelines(a.ParsedForm, sel)

	var structureDOT, pipelineDOT string
	if *plain {
		structureDOT = latticerender.DOT(st.Graph, a.Name)
		pipelineDOT = latticerender.DOTCFG(cg, a.Name+" pipelines")
	} else {
		structureDOT = render.StructureDOT(st, a.Name, render.NASA)
		pipelineDOT = render.PipelineDOT(cg, a.Name+" pipelines", render.NASA)
	}

	path, err := output.WriteDOT(*outDir, "structure", structureDOT)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d nodes, %d edges)\n", path, len(st.Graph.Nodes), len(st.Graph.Edges))

	path, err = output.WriteDOT(*outDir, "pipelines", pipelineDOT)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d passes)\n", path, len(cg.Funcs))
	return nil
}

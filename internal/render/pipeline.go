package render

import (
	"fmt"
	"strings"

	"github.com/zboralski/lattice"
)

// PipelineDOT renders per-pass stage pipelines as DOT, one cluster per
// pass. Each stage block lists its selected sub-programs; the entry stage
// is highlighted and the last stage filled.
func PipelineDOT(cg *lattice.CFGGraph, title string, t Theme) string {
	var b strings.Builder
	b.WriteString("digraph pipelines {\n")
	b.WriteString("  rankdir=TB;\n")
	b.WriteString("  nodesep=0.3;\n")
	b.WriteString("  ranksep=0.4;\n")
	fmt.Fprintf(&b, "  bgcolor=%q;\n", t.Background)
	fmt.Fprintf(&b, "  node [shape=rect, style=filled, fillcolor=%q, color=%q, penwidth=0.5, fontname=\"Courier,monospace\", fontsize=8, fontcolor=%q, margin=\"0.08,0.04\"];\n",
		t.NodeFill, t.NodeBorder, t.TextColor)
	fmt.Fprintf(&b, "  edge [penwidth=0.7, arrowsize=0.5, arrowhead=vee, color=%q];\n", t.EdgeContains)
	if title != "" {
		fmt.Fprintf(&b, "  labelloc=t;\n  labeljust=l;\n")
		fmt.Fprintf(&b, "  label=<<font face=\"Helvetica Neue,Helvetica\" point-size=\"9\" color=\"%s\">%s</font>>;\n",
			t.TextColor, dotEscape(title))
	}
	b.WriteByte('\n')

	for fi, fn := range cg.Funcs {
		if len(fn.Blocks) == 0 {
			continue
		}
		fmt.Fprintf(&b, "  subgraph cluster_p%d {\n", fi)
		fmt.Fprintf(&b, "    label=<<font point-size=\"8\" color=\"%s\">%s</font>>;\n",
			t.ClusterLabel, dotEscape(fn.Name))
		fmt.Fprintf(&b, "    style=dotted; color=%q; penwidth=0.3;\n", t.ClusterBorder)

		for _, blk := range fn.Blocks {
			var lines []string
			for _, c := range blk.Calls {
				lines = append(lines, dotEscape(truncLabel(c.Callee, 60)))
			}
			label := strings.Join(lines, "<br align=\"left\"/>") + "<br align=\"left\"/>"

			attrs := ""
			if blk.ID == 0 {
				attrs = fmt.Sprintf(", penwidth=1.5, color=%q", t.EdgeProgram)
			}
			if blk.Term {
				attrs += fmt.Sprintf(", fillcolor=%q", t.PassFill)
			}
			fmt.Fprintf(&b, "    p%d_b%d [label=<%s>%s];\n", fi, blk.ID, label, attrs)
		}
		for _, blk := range fn.Blocks {
			for _, s := range blk.Succs {
				fmt.Fprintf(&b, "    p%d_b%d -> p%d_b%d;\n", fi, blk.ID, fi, s.BlockID)
			}
		}
		b.WriteString("  }\n")
	}

	b.WriteString("}\n")
	return b.String()
}

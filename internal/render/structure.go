package render

import (
	"fmt"
	"strings"

	"unshader/internal/shadergraph"
)

// edgeColor returns the DOT color for an edge leading to a node of kind k.
func edgeColor(k shadergraph.Kind, t Theme) string {
	switch k {
	case shadergraph.KindProgram:
		return t.EdgeProgram
	case shadergraph.KindUsePass:
		return t.EdgeUsePass
	case shadergraph.KindDependency:
		return t.EdgeDependency
	default:
		return t.EdgeContains
	}
}

// edgeStyle returns the dot style for an edge leading to kind k.
func edgeStyle(k shadergraph.Kind) string {
	switch k {
	case shadergraph.KindUsePass, shadergraph.KindDependency:
		return "dashed"
	default:
		return "solid"
	}
}

// subShaderOf returns the sub-shader ancestor of id, or "" for nodes
// outside any sub-shader.
func subShaderOf(st *shadergraph.Structure, id string) string {
	for id != "" {
		n := st.Nodes[id]
		if n.Kind == shadergraph.KindSubShader {
			return id
		}
		id = n.Parent
	}
	return ""
}

func nodeAttrs(n shadergraph.Node, t Theme) string {
	label := truncLabel(n.Label, 60)
	switch n.Kind {
	case shadergraph.KindShader:
		return fmt.Sprintf("label=%q, penwidth=1.5", label)
	case shadergraph.KindPass, shadergraph.KindGrabPass:
		return fmt.Sprintf("label=%q, fillcolor=%q", label, t.PassFill)
	case shadergraph.KindStage:
		return fmt.Sprintf("label=%q, shape=ellipse, height=0.25", label)
	case shadergraph.KindProgram:
		return fmt.Sprintf("label=%q, fillcolor=%q, fontname=\"Courier,monospace\", fontsize=8", label, t.ProgramFill)
	case shadergraph.KindUsePass, shadergraph.KindDependency:
		return fmt.Sprintf("label=%q, shape=plaintext, style=\"\", fillcolor=none, fontcolor=%q, fontsize=8", label, t.ExternalText)
	default:
		return fmt.Sprintf("label=%q", label)
	}
}

// StructureDOT renders a shader structure graph as DOT. Each sub-shader and
// everything below it is drawn as one cluster.
func StructureDOT(st *shadergraph.Structure, title string, t Theme) string {
	var b strings.Builder
	b.WriteString("digraph shader {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  compound=true;\n")
	b.WriteString("  nodesep=0.4;\n")
	b.WriteString("  ranksep=0.6;\n")
	fmt.Fprintf(&b, "  bgcolor=%q;\n", t.Background)
	fmt.Fprintf(&b, "  node [shape=rect, style=filled, fillcolor=%q, color=%q, penwidth=0.5, fontname=\"Helvetica Neue,Helvetica,Arial\", fontsize=9, fontcolor=%q, height=0.3, margin=\"0.12,0.06\"];\n",
		t.NodeFill, t.NodeBorder, t.TextColor)
	fmt.Fprintf(&b, "  edge [penwidth=0.5, arrowsize=0.5, arrowhead=vee];\n")
	if title != "" {
		fmt.Fprintf(&b, "  labelloc=t;\n  labeljust=l;\n")
		fmt.Fprintf(&b, "  label=<<font face=\"Helvetica Neue,Helvetica\" point-size=\"8\" color=\"%s\">%s</font>>;\n",
			t.TextColor, dotEscape(title))
	}
	b.WriteByte('\n')

	// Group nodes by sub-shader, keeping graph order.
	var clusters []string
	members := make(map[string][]shadergraph.Node)
	var top []shadergraph.Node
	for _, id := range st.Graph.Nodes {
		n, ok := st.Nodes[id]
		if !ok {
			continue
		}
		ss := subShaderOf(st, id)
		if ss == "" {
			top = append(top, n)
			continue
		}
		if _, seen := members[ss]; !seen {
			clusters = append(clusters, ss)
		}
		members[ss] = append(members[ss], n)
	}

	for _, ss := range clusters {
		fmt.Fprintf(&b, "  subgraph %s {\n", "cluster_"+dotID(ss))
		fmt.Fprintf(&b, "    label=<<font point-size=\"8\" color=\"%s\">%s</font>>;\n",
			t.ClusterLabel, dotEscape(st.Nodes[ss].Label))
		fmt.Fprintf(&b, "    style=dotted; color=%q; penwidth=0.3;\n", t.ClusterBorder)
		for _, n := range members[ss] {
			fmt.Fprintf(&b, "    %s [%s];\n", dotID(n.ID), nodeAttrs(n, t))
		}
		b.WriteString("  }\n")
	}
	for _, n := range top {
		fmt.Fprintf(&b, "  %s [%s];\n", dotID(n.ID), nodeAttrs(n, t))
	}
	b.WriteByte('\n')

	for _, e := range st.Graph.Edges {
		to, ok := st.Nodes[e.Callee]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "  %s -> %s [color=%q, style=%q];\n",
			dotID(e.Caller), dotID(e.Callee), edgeColor(to.Kind, t), edgeStyle(to.Kind))
	}

	b.WriteString("}\n")
	return b.String()
}

// Package shadergraph models the structure of a shader (sub-shaders, passes,
// stages and the sub-programs selected for them) as lattice graphs.
package shadergraph

import (
	"fmt"

	"github.com/zboralski/lattice"

	"unshader/internal/platform"
	"unshader/internal/shader"
)

// Kind classifies a structure node.
type Kind int

const (
	KindShader Kind = iota
	KindSubShader
	KindPass
	KindUsePass
	KindGrabPass
	KindStage
	KindProgram
	KindDependency
)

var kindNames = [...]string{"shader", "subshader", "pass", "usepass", "grabpass", "stage", "program", "dependency"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Node describes one vertex of the structure graph.
type Node struct {
	ID     string
	Kind   Kind
	Label  string
	Parent string // empty for the root
}

// Structure is the shader tree as a lattice.Graph plus per-node metadata.
// Every edge runs parent → child.
type Structure struct {
	Graph *lattice.Graph
	Nodes map[string]Node
}

// RootID is the ID of the shader node.
const RootID = "shader"

// Selector picks the platform for a GPU program type. Programs whose type
// no platform accepts are left out of the graph.
type Selector func(t platform.GPUProgramType) (platform.Selection, bool)

// Select returns the first-match selector over an asset's platform list.
func Select(caps platform.Capabilities, platforms []platform.Compiler) Selector {
	return func(t platform.GPUProgramType) (platform.Selection, bool) {
		sel, ok, _ := caps.Select(platforms, t)
		return sel, ok
	}
}

type builder struct {
	st  *Structure
	sel Selector
}

func (b *builder) add(n Node) {
	if _, dup := b.st.Nodes[n.ID]; dup {
		return
	}
	b.st.Nodes[n.ID] = n
	b.st.Graph.Nodes = append(b.st.Graph.Nodes, n.ID)
	if n.Parent != "" {
		b.st.Graph.Edges = append(b.st.Graph.Edges, lattice.Edge{Caller: n.Parent, Callee: n.ID})
	}
}

// Build constructs the structure graph of s. sel may be nil, in which case
// stages carry no program nodes.
func Build(s *shader.SerializedShader, sel Selector) *Structure {
	b := &builder{
		st:  &Structure{Graph: &lattice.Graph{}, Nodes: make(map[string]Node)},
		sel: sel,
	}
	b.add(Node{ID: RootID, Kind: KindShader, Label: s.Name})

	for i := range s.SubShaders {
		ss := &s.SubShaders[i]
		ssID := fmt.Sprintf("SubShader %d", i)
		label := ssID
		if ss.LOD != 0 {
			label = fmt.Sprintf("%s (LOD %d)", ssID, ss.LOD)
		}
		b.add(Node{ID: ssID, Kind: KindSubShader, Label: label, Parent: RootID})
		for j := range ss.Passes {
			b.pass(&ss.Passes[j], fmt.Sprintf("%s/Pass %d", ssID, j), ssID)
		}
	}

	for _, d := range s.Dependencies {
		b.add(Node{ID: "dependency/" + d.From, Kind: KindDependency, Label: d.From + " = " + d.To, Parent: RootID})
	}
	b.st.Graph.Dedup()
	return b.st
}

func (b *builder) pass(p *shader.Pass, id, parent string) {
	switch p.Type {
	case shader.PassUse:
		b.add(Node{ID: id, Kind: KindUsePass, Label: "UsePass " + p.UseName, Parent: parent})
		return
	case shader.PassGrab:
		b.add(Node{ID: id, Kind: KindGrabPass, Label: "GrabPass " + p.TextureName, Parent: parent})
		return
	}

	label := id[len(parent)+1:]
	if p.State.Name != "" {
		label = p.State.Name
	}
	b.add(Node{ID: id, Kind: KindPass, Label: label, Parent: parent})
	for _, st := range p.Stages() {
		if st.Program == nil {
			continue
		}
		stID := id + "/" + st.Keyword
		b.add(Node{ID: stID, Kind: KindStage, Label: st.Keyword, Parent: id})
		for _, prog := range b.programs(st.Program) {
			b.add(Node{ID: stID + "/" + prog, Kind: KindProgram, Label: prog, Parent: stID})
		}
	}
}

// programs returns the labels of the selected sub-programs of p, editor
// descriptors first, without duplicates.
func (b *builder) programs(p *shader.Program) []string {
	if b.sel == nil {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	for _, d := range append(p.SubPrograms[:len(p.SubPrograms):len(p.SubPrograms)], shader.FlattenPlayerSubPrograms(p)...) {
		sel, ok := b.sel(d.GPUProgramType)
		if !ok {
			continue
		}
		label := programLabel(sel, d)
		if !seen[label] {
			seen[label] = true
			out = append(out, label)
		}
	}
	return out
}

func programLabel(sel platform.Selection, d shader.ProgramDescriptor) string {
	return fmt.Sprintf("%s %s #%d", sel.Platform, d.GPUProgramType, d.BlobIndex)
}

// Children returns the IDs of the children of id in edge order.
func (s *Structure) Children(id string) []string {
	var out []string
	for _, e := range s.Graph.Edges {
		if e.Caller == id {
			out = append(out, e.Callee)
		}
	}
	return out
}

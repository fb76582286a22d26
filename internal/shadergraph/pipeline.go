package shadergraph

import (
	"fmt"

	"github.com/zboralski/lattice"

	"unshader/internal/shader"
)

// pipelineOrder is the order stages execute in on the GPU. Ray tracing
// programs stand alone.
var pipelineOrder = []string{"vp", "hp", "dp", "gp", "fp", "rtp"}

// BuildPipelines returns one lattice.FuncCFG per regular pass. Each present
// stage is a basic block, linked to the next present stage in pipeline
// order; a block's calls are the sub-programs selected for that stage.
func BuildPipelines(s *shader.SerializedShader, sel Selector) *lattice.CFGGraph {
	b := &builder{sel: sel}
	cg := &lattice.CFGGraph{}
	for i := range s.SubShaders {
		for j := range s.SubShaders[i].Passes {
			p := &s.SubShaders[i].Passes[j]
			if p.Type != shader.PassNormal {
				continue
			}
			name := fmt.Sprintf("SubShader %d/Pass %d", i, j)
			if p.State.Name != "" {
				name += " " + p.State.Name
			}
			cg.Funcs = append(cg.Funcs, b.pipeline(name, p))
		}
	}
	return cg
}

func (b *builder) pipeline(name string, p *shader.Pass) *lattice.FuncCFG {
	programs := make(map[string]*shader.Program)
	for _, st := range p.Stages() {
		if st.Program != nil {
			programs[st.Keyword] = st.Program
		}
	}

	fn := &lattice.FuncCFG{Name: name}
	for _, kw := range pipelineOrder {
		prog, ok := programs[kw]
		if !ok {
			continue
		}
		id := len(fn.Blocks)
		blk := &lattice.BasicBlock{ID: id, Start: id, End: id + 1}
		for k, label := range b.programs(prog) {
			blk.Calls = append(blk.Calls, lattice.CallSite{Offset: k, Callee: kw + ": " + label})
		}
		if len(blk.Calls) == 0 {
			blk.Calls = append(blk.Calls, lattice.CallSite{Callee: kw})
		}
		// rtp never follows the raster stages.
		if id > 0 && kw != "rtp" {
			prev := fn.Blocks[id-1]
			prev.Succs = append(prev.Succs, lattice.Successor{BlockID: id})
		}
		fn.Blocks = append(fn.Blocks, blk)
	}
	for _, blk := range fn.Blocks {
		blk.Term = len(blk.Succs) == 0
	}
	return fn
}

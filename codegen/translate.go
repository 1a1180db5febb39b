package codegen

import (
	"fmt"

	"github.com/eelic-lang/eelic/quads"
)

// TranslateBlock translates every quad in qs, in order, appending
// assembly to the generator's accumulated output. isProgram selects the
// program-entry prologue variant of begin_block.
func (g *Generator) TranslateBlock(qs []quads.Quad, isProgram bool) {
	for _, q := range qs {
		g.emitLabel(QuadLabel(q.ID))
		g.translateQuad(q, isProgram)
	}
}

func (g *Generator) translateQuad(q quads.Quad, isProgram bool) {
	switch q.Op {
	case quads.OpBeginBlock:
		g.translateBeginBlock(q, isProgram)
	case quads.OpEndBlock:
		g.translateEndBlock(isProgram)
	case quads.OpHalt:
		g.translateHalt()
	case quads.OpInt:
		// Structural marker only: no code.
	case quads.OpAssign:
		g.translateAssign(q)
	case quads.OpAdd, quads.OpSub, quads.OpMul, quads.OpDiv:
		g.translateArith(q)
	case quads.OpJump:
		g.emit("j %s", QuadLabel(targetQuadID(q.Target)))
	case quads.OpEq, quads.OpNeq, quads.OpLt, quads.OpGt, quads.OpLe, quads.OpGe:
		g.translateRelational(q)
	case quads.OpPar:
		g.params = append(g.params, q)
	case quads.OpCall:
		g.translateCall(q)
	case quads.OpRetv:
		g.translateRetv(q)
	case quads.OpInp:
		g.translateInp(q)
	case quads.OpOut:
		g.translateOut(q)
	default:
		panic(fmt.Sprintf("codegen: unhandled quad op %q", q.Op))
	}
}

// targetQuadID parses a quad-id jump target. Backpatched targets are
// always quad ids by construction; this panics (an internal invariant
// violation) if that is not the case.
func targetQuadID(target string) int {
	var id int
	if _, err := fmt.Sscanf(target, "%d", &id); err != nil {
		panic(fmt.Sprintf("codegen: jump target %q is not a quad id", target))
	}
	return id
}

package codegen

import (
	"fmt"

	"github.com/eelic-lang/eelic/quads"
	"github.com/eelic-lang/eelic/symtab"
)

// translateCall implements `call f`: set up the callee's frame pointer,
// emit the buffered `par` quads as the argument-setup block, establish
// the static link, transfer control, and drop the callee's frame on
// return.
func (g *Generator) translateCall(q quads.Quad) {
	name := q.Term0
	callee, calleeDeclLevel, ok := g.table.Lookup(name)
	if !ok || callee.Kind != symtab.KindFunction {
		panic(fmt.Sprintf("codegen: call to unresolved function %q", name))
	}

	g.emit("add $fp, $sp, %d", callee.FrameLength)
	g.emitParams()
	g.emitStaticLink(calleeDeclLevel)
	g.emit("jal %s", name)
	g.emit("add $sp, $sp, -%d", callee.FrameLength)
}

// emitParams writes every buffered `par` quad into the callee's frame
// (addressed through $fp, which the callee will adopt as its own $sp).
// The return-slot ('ret') argument, when present, always targets the
// fixed return-value-pointer slot at offset 8; by-value and by-reference
// arguments occupy the positional slots starting at offset 12, in the
// order they were buffered.
func (g *Generator) emitParams() {
	posIndex := 0
	for _, p := range g.params {
		mode := p.Term1
		switch mode {
		case "ret":
			g.addressOf("$t1", p.Term0)
			g.emit("sw $t1, -8($fp)")
		case "ref":
			offset := 12 + 4*posIndex
			posIndex++
			g.addressOf("$t1", p.Term0)
			g.emit("sw $t1, -%d($fp)", offset)
		default: // "cv"
			offset := 12 + 4*posIndex
			posIndex++
			g.loadVar("$t1", p.Term0)
			g.emit("sw $t1, -%d($fp)", offset)
		}
	}
	g.params = g.params[:0]
}

// emitStaticLink compares the caller's current nesting level against
// the callee's declaring level. Equal levels mean caller and callee
// share an enclosing scope, so the caller forwards its own static
// link; otherwise the caller's own frame becomes the static link.
func (g *Generator) emitStaticLink(calleeDeclLevel int) {
	if g.table.CurrentNestingLevel() == calleeDeclLevel {
		g.emit("lw $t0, -4($sp)")
		g.emit("sw $t0, -4($fp)")
		return
	}
	g.emit("move $t0, $sp")
	g.emit("sw $t0, -4($fp)")
}

// translateRetv implements `retv v _ _`: write v through the
// return-value pointer left at offset 8 by the caller, then return.
func (g *Generator) translateRetv(q quads.Quad) {
	g.loadVar("$t1", q.Term0)
	g.emit("lw $t0, -8($sp)")
	g.emit("sw $t1, ($t0)")
	g.emit("lw $ra, ($sp)")
	g.emit("jr $ra")
}

package codegen

import "github.com/eelic-lang/eelic/quads"

// translateAssign implements `:= v _ t`: load v, store into t.
func (g *Generator) translateAssign(q quads.Quad) {
	g.loadVar("$t1", q.Term0)
	g.storeVar("$t1", q.Target)
}

// mipsArithOp maps a quad arithmetic op to its MIPS mnemonic.
var mipsArithOp = map[quads.Op]string{
	quads.OpAdd: "add",
	quads.OpSub: "sub",
	quads.OpMul: "mul",
	quads.OpDiv: "div",
}

// translateArith implements `+ - * /`: load both operands, emit the op,
// store the result.
func (g *Generator) translateArith(q quads.Quad) {
	g.loadVar("$t1", q.Term0)
	g.loadVar("$t2", q.Term1)
	g.emit("%s $t1, $t1, $t2", mipsArithOp[q.Op])
	g.storeVar("$t1", q.Target)
}

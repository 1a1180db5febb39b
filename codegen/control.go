package codegen

import "github.com/eelic-lang/eelic/quads"

// translateBeginBlock implements `begin_block name`: the block's own
// label, then the frame prologue (bump $sp, spill $ra, and for the
// program block only, latch $s0 as the saved global frame pointer).
func (g *Generator) translateBeginBlock(q quads.Quad, isProgram bool) {
	g.emitLabel(q.Term0)
	g.emit("add $sp, $sp, %d", g.blockFrameLength())
	g.emit("sw $ra, ($sp)")
	if isProgram {
		g.emit("move $s0, $sp")
	}
}

// blockFrameLength returns the current (just-opened) scope's frame
// length: the owning function's, already filled in by the parser before
// invoking translation, or the program scope's own variable count for
// the top-level block.
func (g *Generator) blockFrameLength() int {
	return g.table.CurrentScopeFrameLength()
}

// translateEndBlock implements `end_block`: a non-global block restores
// $ra and returns to its caller. The program's own end_block emits
// nothing further (halt already performed the exit).
func (g *Generator) translateEndBlock(isProgram bool) {
	if isProgram {
		return
	}
	g.emit("lw $ra, ($sp)")
	g.emit("jr $ra")
}

// translateHalt implements the program-end `halt`: the exit syscall.
func (g *Generator) translateHalt() {
	g.emit("li $v0, 10")
	g.emit("syscall")
}

// mipsBranchOp maps a relational quad op to its MIPS branch-if-true
// mnemonic.
var mipsBranchOp = map[quads.Op]string{
	quads.OpEq:  "beq",
	quads.OpNeq: "bne",
	quads.OpLt:  "blt",
	quads.OpGt:  "bgt",
	quads.OpLe:  "ble",
	quads.OpGe:  "bge",
}

// translateRelational implements a relational atom's true-branch quad:
// load both operands and branch to the (backpatched) target label.
func (g *Generator) translateRelational(q quads.Quad) {
	g.loadVar("$t1", q.Term0)
	g.loadVar("$t2", q.Term1)
	g.emit("%s $t1, $t2, %s", mipsBranchOp[q.Op], QuadLabel(targetQuadID(q.Target)))
}

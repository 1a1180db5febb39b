package codegen

import "github.com/eelic-lang/eelic/quads"

// translateOut implements `out v`: print v as an integer followed by a
// newline.
func (g *Generator) translateOut(q quads.Quad) {
	g.loadVar("$a0", q.Term0)
	g.emit("li $v0, 1")
	g.emit("syscall")
	g.emit("li $v0, 11")
	g.emit("li $a0, 10")
	g.emit("syscall")
}

// translateInp implements `inp v`: read an integer and store it to v.
func (g *Generator) translateInp(q quads.Quad) {
	g.emit("li $v0, 5")
	g.emit("syscall")
	g.storeVar("$v0", q.Term0)
}

// Package codegen translates a closed block's drained quad list into
// MIPS-like assembly, using static-link traversal for non-local
// variable access and an explicit frame-pointer discipline for calls.
package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eelic-lang/eelic/quads"
	"github.com/eelic-lang/eelic/symtab"
)

// Generator accumulates assembly lines across every block of a single
// compilation, in the order the parser closes those blocks.
type Generator struct {
	table  *symtab.Table
	lines  []string
	params []quads.Quad // buffered 'par' quads awaiting the next 'call'
}

// NewGenerator creates a Generator sharing the parser's live symbol
// table: scopes for blocks still open (an enclosing function, the
// program) remain on the table's stack while a nested block's quads are
// being translated, which is what makes static-link variable access
// resolvable mid-compilation.
func NewGenerator(table *symtab.Table) *Generator {
	return &Generator{table: table}
}

// emitLabel appends a bare "name:" line, flush-left.
func (g *Generator) emitLabel(name string) {
	g.lines = append(g.lines, name+":")
}

// emit appends an instruction line; String() tab-indents it.
func (g *Generator) emit(format string, args ...any) {
	g.lines = append(g.lines, fmt.Sprintf(format, args...))
}

// QuadLabel formats a quad's address label.
func QuadLabel(id int) string {
	return "L_" + strconv.Itoa(id)
}

// JumpToMain emits the program preamble `j L_0`. Execution starts at
// the top of the assembly file, but nested procedure/function bodies
// are translated (and therefore placed) ahead of the program's own
// block; the program's begin_block is always quad 0, so this single
// jump skips over every nested body to the main entry.
func (g *Generator) JumpToMain() {
	g.emit("j %s", QuadLabel(0))
}

// String renders the accumulated assembly: label lines flush-left,
// every other line indented with one tab.
func (g *Generator) String() string {
	var b strings.Builder
	for _, line := range g.lines {
		if strings.HasSuffix(line, ":") {
			b.WriteString(line)
		} else {
			b.WriteByte('\t')
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// isConst reports whether a quad operand is an integer literal rather
// than a variable/temporary name.
func isConst(operand string) bool {
	if operand == "" {
		return false
	}
	_, err := strconv.Atoi(operand)
	return err == nil
}

// loadVar emits code to load the value of a variable (or constant) into
// reg.
func (g *Generator) loadVar(reg, name string) {
	if isConst(name) {
		g.emit("li %s, %s", reg, name)
		return
	}
	g.loadValueFromSlot(reg, name)
}

// storeVar emits code to store reg into the named variable's slot.
func (g *Generator) storeVar(reg, name string) {
	entity, level, ok := g.table.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("codegen: store to undeclared name %q", name))
	}
	cur := g.table.CurrentNestingLevel()

	switch {
	case level == 0:
		g.emit("sw %s, -%d($s0)", reg, entity.Offset)
	case level == cur:
		if entity.Mode == symtab.ModeRef {
			g.emit("lw $t0, -%d($sp)", entity.Offset)
			g.emit("sw %s, ($t0)", reg)
		} else {
			g.emit("sw %s, -%d($sp)", reg, entity.Offset)
		}
	default:
		g.walkStaticLink(cur, level)
		g.emit("add $t0, $t0, -%d", entity.Offset)
		if entity.Mode == symtab.ModeRef {
			g.emit("lw $t0, ($t0)")
		}
		g.emit("sw %s, ($t0)", reg)
	}
}

// loadValueFromSlot emits code to load the value of a declared
// variable/parameter/temporary into reg, following static links for
// non-local names and an extra indirection for by-reference
// parameters.
func (g *Generator) loadValueFromSlot(reg, name string) {
	entity, level, ok := g.table.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("codegen: load of undeclared name %q", name))
	}
	cur := g.table.CurrentNestingLevel()

	switch {
	case level == 0:
		g.emit("lw %s, -%d($s0)", reg, entity.Offset)
	case level == cur:
		if entity.Mode == symtab.ModeRef {
			g.emit("lw $t0, -%d($sp)", entity.Offset)
			g.emit("lw %s, ($t0)", reg)
		} else {
			g.emit("lw %s, -%d($sp)", reg, entity.Offset)
		}
	default:
		g.walkStaticLink(cur, level)
		g.emit("add $t0, $t0, -%d", entity.Offset)
		if entity.Mode == symtab.ModeRef {
			g.emit("lw $t0, ($t0)")
		}
		g.emit("lw %s, ($t0)", reg)
	}
}

// addressOf emits code to compute the address of a variable's own slot
// into reg: for a by-reference parameter this is the pointer already
// held in the slot (one indirection, not two), which is exactly what
// `inout`/return-slot actual-parameter passing needs to forward.
func (g *Generator) addressOf(reg, name string) {
	entity, level, ok := g.table.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("codegen: address-of undeclared name %q", name))
	}
	cur := g.table.CurrentNestingLevel()

	switch {
	case level == 0:
		if entity.Mode == symtab.ModeRef {
			g.emit("lw %s, -%d($s0)", reg, entity.Offset)
		} else {
			g.emit("add %s, $s0, -%d", reg, entity.Offset)
		}
	case level == cur:
		if entity.Mode == symtab.ModeRef {
			g.emit("lw %s, -%d($sp)", reg, entity.Offset)
		} else {
			g.emit("add %s, $sp, -%d", reg, entity.Offset)
		}
	default:
		g.walkStaticLink(cur, level)
		g.emit("add $t0, $t0, -%d", entity.Offset)
		if entity.Mode == symtab.ModeRef {
			g.emit("lw %s, ($t0)", reg)
		} else if reg != "$t0" {
			g.emit("add %s, $t0, 0", reg)
		}
	}
}

// walkStaticLink emits the chain of static-link loads into $t0 needed to
// reach the frame that declared a variable `(curLevel - defLevel - 1)`
// hops outward from the current frame, starting from the current
// frame's own static-link slot.
func (g *Generator) walkStaticLink(curLevel, defLevel int) {
	g.emit("lw $t0, -4($sp)")
	for i := 0; i < curLevel-defLevel-1; i++ {
		g.emit("lw $t0, -4($t0)")
	}
}

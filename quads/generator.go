package quads

import (
	"strconv"
	"strings"

	"github.com/eelic-lang/eelic/symtab"
)

// Generator accumulates quads, allocates temporaries, and tracks which
// quads have already been drained to the final generator via a parallel
// "marked" bit per quad.
type Generator struct {
	quads      []Quad
	marked     []bool
	nextTempID int
	table      *symtab.Table
	tempPrefix string
}

// NewGenerator creates an empty Generator. table is used to register a
// Temporary entity in the current scope whenever NewTemp is asked to do
// so. tempPrefix names compiler-generated temporaries ("T_" if empty,
// matching config.Config's default).
func NewGenerator(table *symtab.Table, tempPrefix string) *Generator {
	if tempPrefix == "" {
		tempPrefix = "T_"
	}
	return &Generator{table: table, tempPrefix: tempPrefix}
}

// NextQuad returns the id the next GenQuad call will assign.
func (g *Generator) NextQuad() int {
	return len(g.quads)
}

// GenQuad appends a quad with the next id and an initially-false marked
// bit, returning its id.
func (g *Generator) GenQuad(op Op, term0, term1, target string) int {
	id := len(g.quads)
	g.quads = append(g.quads, Quad{ID: id, Op: op, Term0: term0, Term1: term1, Target: target})
	g.marked = append(g.marked, false)
	return id
}

// NewTemp produces a fresh name T_k. When register is true it also adds
// a Temporary entity to the current scope (register is false for the
// return-value temporary of a function call used in an expression,
// which is instead added as a 'ret'-mode Parameter by the caller).
func (g *Generator) NewTemp(register bool) string {
	name := g.tempPrefix + strconv.Itoa(g.nextTempID)
	g.nextTempID++
	if register {
		g.table.AddEntity(symtab.NewTemporary(name))
	}
	return name
}

// Backpatch rewrites the Target field of every listed quad id. Op,
// Term0, and Term1 are left unchanged.
func (g *Generator) Backpatch(ids []int, target string) {
	for _, id := range ids {
		g.quads[id].Target = target
	}
}

// GetAndMarkQuadsFrom returns the quads with id >= start whose marked
// bit is still false, in order, then marks every bit from start onward
// as true. A second call with the same start therefore always returns
// an empty slice.
func (g *Generator) GetAndMarkQuadsFrom(start int) []Quad {
	var out []Quad
	for i := start; i < len(g.quads); i++ {
		if !g.marked[i] {
			out = append(out, g.quads[i])
		}
	}
	for i := start; i < len(g.marked); i++ {
		g.marked[i] = true
	}
	return out
}

// All returns every quad emitted so far, for the intermediate listing.
func (g *Generator) All() []Quad {
	return g.quads
}

// String renders the full quad list as the intermediate listing, one
// quad per line.
func (g *Generator) String() string {
	var b strings.Builder
	for _, q := range g.quads {
		b.WriteString(q.String())
		b.WriteByte('\n')
	}
	return b.String()
}

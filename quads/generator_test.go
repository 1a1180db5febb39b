package quads

import (
	"testing"

	"github.com/eelic-lang/eelic/symtab"
)

func TestGenQuadIDsAreDense(t *testing.T) {
	g := NewGenerator(symtab.New(12, 4), "T_")
	for i := 0; i < 5; i++ {
		id := g.GenQuad(OpAdd, "1", "2", Unused)
		if id != i {
			t.Fatalf("expected quad %d to have id %d, got %d", i, i, id)
		}
	}
	for i, q := range g.All() {
		if q.ID != i {
			t.Fatalf("quad[%d].ID == %d, want %d", i, q.ID, i)
		}
	}
}

func TestNewTempRegistersEntity(t *testing.T) {
	table := symtab.New(12, 4)
	g := NewGenerator(table, "T_")

	name := g.NewTemp(true)
	if name != "T_0" {
		t.Fatalf("expected first temp named T_0, got %s", name)
	}
	if _, _, ok := table.Lookup("T_0"); !ok {
		t.Fatal("expected T_0 to be registered in the symbol table")
	}

	name2 := g.NewTemp(false)
	if name2 != "T_1" {
		t.Fatalf("expected second temp named T_1, got %s", name2)
	}
	if _, _, ok := table.Lookup("T_1"); ok {
		t.Fatal("expected unregistered temp to be absent from the symbol table")
	}
}

func TestBackpatchOnlyRewritesTarget(t *testing.T) {
	g := NewGenerator(symtab.New(12, 4), "T_")
	id := g.GenQuad(OpEq, "x", "0", Unused)

	g.Backpatch([]int{id}, "100")

	q := g.All()[id]
	if q.Target != "100" {
		t.Fatalf("expected target 100, got %s", q.Target)
	}
	if q.Op != OpEq || q.Term0 != "x" || q.Term1 != "0" {
		t.Fatalf("backpatch mutated other fields: %+v", q)
	}
}

func TestGetAndMarkQuadsFromDrainsOnce(t *testing.T) {
	g := NewGenerator(symtab.New(12, 4), "T_")
	g.GenQuad(OpInt, "x", Unused, Unused)
	g.GenQuad(OpInt, "y", Unused, Unused)
	start := g.NextQuad()
	g.GenQuad(OpAdd, "x", "y", "T_0")

	first := g.GetAndMarkQuadsFrom(start)
	if len(first) != 1 {
		t.Fatalf("expected 1 unmarked quad from start, got %d", len(first))
	}

	second := g.GetAndMarkQuadsFrom(start)
	if len(second) != 0 {
		t.Fatalf("expected second drain from the same start to be empty, got %d", len(second))
	}
}

func TestQuadStringFormat(t *testing.T) {
	q := Quad{ID: 3, Op: OpAdd, Term0: "3", Term1: "4", Target: "T_0"}
	want := "3: (+, 3, 4, T_0)"
	if q.String() != want {
		t.Fatalf("got %q, want %q", q.String(), want)
	}
}

package symtab

import "testing"

func TestAddEntityAssignsOffsets(t *testing.T) {
	tbl := New(12, 4)
	tbl.AddEntity(NewVariable("x"))
	tbl.AddEntity(NewVariable("y"))
	tbl.AddEntity(NewTemporary("T_0"))

	x, _, ok := tbl.Lookup("x")
	if !ok || x.Offset != 12 {
		t.Fatalf("expected x at offset 12, got %+v ok=%v", x, ok)
	}
	y, _, ok := tbl.Lookup("y")
	if !ok || y.Offset != 16 {
		t.Fatalf("expected y at offset 16, got %+v ok=%v", y, ok)
	}
	tmp, _, ok := tbl.Lookup("T_0")
	if !ok || tmp.Offset != 20 {
		t.Fatalf("expected T_0 at offset 20, got %+v ok=%v", tmp, ok)
	}
}

func TestCreateScopeSynthesizesParameters(t *testing.T) {
	tbl := New(12, 4)
	fn := NewFunction("f", FuncKindFunction, 0)
	fn.Arguments = []Argument{{Name: "a", Mode: ModeCV}, {Name: "b", Mode: ModeRef}}
	tbl.AddEntity(fn)

	tbl.CreateScope()

	a, ok := tbl.LookupOnCurrentScope("a")
	if !ok || a.Kind != KindParameter || a.Mode != ModeCV || a.Offset != 12 {
		t.Fatalf("expected parameter a at offset 12 mode cv, got %+v", a)
	}
	b, ok := tbl.LookupOnCurrentScope("b")
	if !ok || b.Mode != ModeRef || b.Offset != 16 {
		t.Fatalf("expected parameter b at offset 16 mode ref, got %+v", b)
	}
	if tbl.CurrentNestingLevel() != 1 {
		t.Fatalf("expected nesting level 1, got %d", tbl.CurrentNestingLevel())
	}
}

func TestLookupSearchesOutward(t *testing.T) {
	tbl := New(12, 4)
	tbl.AddEntity(NewVariable("g"))
	fn := NewFunction("f", FuncKindProcedure, 0)
	tbl.AddEntity(fn)
	tbl.CreateScope()
	tbl.AddEntity(NewVariable("local"))

	_, level, ok := tbl.Lookup("g")
	if !ok || level != 0 {
		t.Fatalf("expected g found at level 0, got level=%d ok=%v", level, ok)
	}
	_, level, ok = tbl.Lookup("local")
	if !ok || level != 1 {
		t.Fatalf("expected local found at level 1, got level=%d ok=%v", level, ok)
	}
	if _, _, ok := tbl.Lookup("nope"); ok {
		t.Fatal("expected lookup of undeclared name to fail")
	}
}

func TestFillInFrameLengthOnCallee(t *testing.T) {
	tbl := New(12, 4)
	fn := NewFunction("f", FuncKindProcedure, 0)
	tbl.AddEntity(fn)
	tbl.CreateScope()
	tbl.AddEntity(NewVariable("a"))
	tbl.AddEntity(NewVariable("b"))

	tbl.FillInFrameLengthOnCallee()

	if !fn.FrameLengthSet {
		t.Fatal("expected frame length to be set")
	}
	if fn.FrameLength != 12+4*2 {
		t.Fatalf("expected frame length 20, got %d", fn.FrameLength)
	}
}

func TestDestroyScopeRequiresFrameLength(t *testing.T) {
	tbl := New(12, 4)
	fn := NewFunction("f", FuncKindProcedure, 0)
	tbl.AddEntity(fn)
	tbl.CreateScope()

	if err := tbl.DestroyScope(); err == nil {
		t.Fatal("expected DestroyScope to fail before frame length is filled in")
	}

	tbl.FillInFrameLengthOnCallee()
	if err := tbl.DestroyScope(); err != nil {
		t.Fatalf("expected DestroyScope to succeed after frame length fill-in, got %v", err)
	}
}

func TestInsideFunction(t *testing.T) {
	tbl := New(12, 4)
	proc := NewFunction("p", FuncKindProcedure, 0)
	tbl.AddEntity(proc)
	tbl.CreateScope()
	if tbl.InsideFunction() {
		t.Fatal("expected InsideFunction false inside a procedure body")
	}
	tbl.FillInFrameLengthOnCallee()
	_ = tbl.DestroyScope()

	fn := NewFunction("f", FuncKindFunction, 1)
	tbl.AddEntity(fn)
	tbl.CreateScope()
	if !tbl.InsideFunction() {
		t.Fatal("expected InsideFunction true inside a function body")
	}
}

func TestHasCallableWithSignature(t *testing.T) {
	tbl := New(12, 4)
	fn := NewFunction("f", FuncKindFunction, 0)
	fn.Arguments = []Argument{{Name: "a", Mode: ModeCV}, {Name: "b", Mode: ModeRef}}
	tbl.AddEntity(fn)

	if !tbl.HasCallableWithSignature("f", []Mode{ModeCV, ModeRef}) {
		t.Fatal("expected signature match")
	}
	if tbl.HasCallableWithSignature("f", []Mode{ModeRef, ModeCV}) {
		t.Fatal("expected signature mismatch on mode order")
	}
	if !tbl.HasFunction("f") || tbl.HasProcedure("f") {
		t.Fatal("expected f to be classified as a function, not a procedure")
	}
}

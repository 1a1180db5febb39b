package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eelic-lang/eelic/config"
)

func compileOK(t *testing.T, src string) Result {
	t.Helper()
	p, err := New("test.eeli", src, config.DefaultConfig())
	require.NoError(t, err)
	result, err := p.Parse()
	require.NoError(t, err)
	return result
}

func compileErr(t *testing.T, src string) error {
	t.Helper()
	p, err := New("test.eeli", src, config.DefaultConfig())
	require.NoError(t, err)
	_, err = p.Parse()
	require.Error(t, err)
	return err
}

func TestSimpleProgram(t *testing.T) {
	src := `program p
declare x, y; enddeclare
x := 3 + 4;
print x
endprogram`
	result := compileOK(t, src)

	require.Contains(t, result.Quads, "(int, x, _, _)")
	require.Contains(t, result.Quads, "(int, y, _, _)")
	require.Contains(t, result.Quads, "(+, 3, 4, T_0)")
	require.Contains(t, result.Quads, "(:=, T_0, _, x)")
	require.Contains(t, result.Quads, "(out, x, _, _)")

	require.True(t, strings.HasPrefix(result.Assembly, "\tj L_0\n"),
		"assembly must start with the jump-to-main preamble, got %q", result.Assembly[:min(40, len(result.Assembly))])
	require.Contains(t, result.Assembly, "L_0:\np:\n")
	require.Contains(t, result.Assembly, "\tsw $ra, ($sp)\n")
	require.Contains(t, result.Assembly, "\tmove $s0, $sp\n")
	require.Contains(t, result.Assembly, "\tli $v0, 1\n")
}

// TestIfElseBackpatch checks that the true-list is backpatched to the
// then-branch's first quad, and the unconditional jump after the
// then-branch is backpatched past the else-branch.
func TestIfElseBackpatch(t *testing.T) {
	src := `program p
declare x, y; enddeclare
if x = 0 then y := 1 else y := 2 endif
endprogram`
	result := compileOK(t, src)

	lines := strings.Split(strings.TrimSpace(result.Quads), "\n")
	require.NotEmpty(t, lines)

	var eqLine, thenAssignLine, elseAssignLine string
	for _, l := range lines {
		switch {
		case strings.Contains(l, "(=, x, 0,"):
			eqLine = l
		case strings.Contains(l, "(:=, 1, _, y)"):
			thenAssignLine = l
		case strings.Contains(l, "(:=, 2, _, y)"):
			elseAssignLine = l
		}
	}
	require.NotEmpty(t, eqLine)
	require.NotEmpty(t, thenAssignLine)
	require.NotEmpty(t, elseAssignLine)

	thenID := strings.SplitN(thenAssignLine, ":", 2)[0]
	require.True(t, strings.HasSuffix(eqLine, ", "+thenID+")"), "expected true-jump target %s, got %q", thenID, eqLine)

	// The quad right after the then-branch is its exit jump; it must
	// target the quad right after the else-branch.
	var exitJumpLine, afterElseID string
	for i, l := range lines {
		if l == thenAssignLine && i+1 < len(lines) {
			exitJumpLine = lines[i+1]
		}
		if l == elseAssignLine && i+1 < len(lines) {
			afterElseID = strings.SplitN(lines[i+1], ":", 2)[0]
		}
	}
	require.NotEmpty(t, afterElseID)
	require.Contains(t, exitJumpLine, "(jump, _, _, "+afterElseID+")")
}

func TestRepeatExitBackpatch(t *testing.T) {
	src := `program p
declare x; enddeclare
repeat
  if x = 0 then exit endif;
  x := x - 1
endrepeat
endprogram`
	result := compileOK(t, src)
	// exit (quad 4) is patched past the back-edge jump (quad 8) to quad 9.
	require.Contains(t, result.Quads, "4: (jump, _, _, 9)")
	require.Contains(t, result.Quads, "8: (jump, _, _, 2)")
}

// TestNestedRepeatExitTargetsInnermost: exit inside a repeat nested in
// another repeat targets only the innermost endrepeat.
func TestNestedRepeatExitTargetsInnermost(t *testing.T) {
	src := `program p
declare x; enddeclare
repeat
  repeat
    exit
  endrepeat;
  x := 1
endrepeat
endprogram`
	result := compileOK(t, src)
	// exit (quad 2) lands on x := 1 (quad 4), right after the inner
	// back-edge jump (quad 3), not after the outer one (quad 5).
	require.Contains(t, result.Quads, "2: (jump, _, _, 4)")
}

func TestExitOutsideRepeatIsSemanticError(t *testing.T) {
	src := `program p
declare x; enddeclare
exit
endprogram`
	err := compileErr(t, src)
	require.Contains(t, err.Error(), "exit")
}

func TestFunctionWithoutReturnIsSemanticError(t *testing.T) {
	src := `program p
function f()
declare x; enddeclare
x := 1
endfunction
endprogram`
	err := compileErr(t, src)
	require.Contains(t, err.Error(), "return")
}

func TestSignatureMismatchOnCall(t *testing.T) {
	src := `program p
declare a; enddeclare
procedure g(in x, in y)
declare z; enddeclare
z := x
endprocedure
call g(inout a, in 5)
endprogram`
	err := compileErr(t, src)
	require.Contains(t, err.Error(), "g")
	require.Contains(t, err.Error(), "signature")
}

func TestRedeclarationIsSemanticError(t *testing.T) {
	src := `program p
declare x, x; enddeclare
endprogram`
	err := compileErr(t, src)
	require.Contains(t, err.Error(), "already declared")
}

func TestUnknownNameIsSemanticError(t *testing.T) {
	src := `program p
declare x; enddeclare
x := y
endprogram`
	err := compileErr(t, src)
	require.Contains(t, err.Error(), "y")
}

// TestNestedFunctionCall exercises a function body with a return, called
// from an expression, and checks the return-slot 'par' quad shape.
func TestNestedFunctionCall(t *testing.T) {
	src := `program p
declare a; enddeclare
function f(in x)
declare z; enddeclare
z := x + 1;
return z
endfunction
a := f(in 2)
endprogram`
	result := compileOK(t, src)
	require.Contains(t, result.Quads, "(par,")
	require.Contains(t, result.Quads, "(call, f, _, _)")
	require.Contains(t, result.Quads, "(retv, z, _, _)")
}

// TestWhileLoop checks that the pre-condition label is re-targeted by the
// back-edge jump after the loop body.
func TestWhileLoop(t *testing.T) {
	src := `program p
declare x; enddeclare
x := 0;
while x < 10
  x := x + 1
endwhile
endprogram`
	result := compileOK(t, src)
	require.Contains(t, result.Quads, "3: (<, x, 10,")
	require.Contains(t, result.Quads, "7: (jump, _, _, 3)")
}

func TestSwitchStatement(t *testing.T) {
	src := `program p
declare x; enddeclare
switch x
case 1 : x := 10
case 2 : x := 20
endswitch
endprogram`
	result := compileOK(t, src)
	require.Contains(t, result.Quads, "(<>, x, 1,")
	require.Contains(t, result.Quads, "(<>, x, 2,")
}

func TestForcaseStatement(t *testing.T) {
	src := `program p
declare x, y; enddeclare
forcase
when x = 1 : y := 1
when x = 2 : y := 2
endforcase
endprogram`
	result := compileOK(t, src)
	require.Contains(t, result.Quads, "(=, 1,")
}

func TestInputAndPrint(t *testing.T) {
	src := `program p
declare x; enddeclare
input x;
print x
endprogram`
	result := compileOK(t, src)
	require.Contains(t, result.Quads, "(inp, x, _, _)")
	require.Contains(t, result.Quads, "(out, x, _, _)")
}

func TestNotConditionSwapsLists(t *testing.T) {
	src := `program p
declare x; enddeclare
if not [ x = 0 ] then x := 1 endif
endprogram`
	result := compileOK(t, src)
	// The relational quad becomes the false exit (past the then-branch)
	// and its companion jump becomes the true exit (into x := 1).
	require.Contains(t, result.Quads, "2: (=, x, 0, 6)")
	require.Contains(t, result.Quads, "3: (jump, _, _, 4)")
}

// TestNegativeExpression checks that a leading minus negates the whole
// additive chain: -5 + 2 computes -(5+2), not (-5)+2.
func TestNegativeExpression(t *testing.T) {
	src := `program p
declare x; enddeclare
x := -5 + 2
endprogram`
	result := compileOK(t, src)
	require.Contains(t, result.Quads, "(+, 5, 2, T_0)")
	require.Contains(t, result.Quads, "(*, T_0, -1, T_1)")
	require.Contains(t, result.Quads, "(:=, T_1, _, x)")
}

// TestNestedBodiesPrecedeMainInAssembly covers the ordering guarantee
// that a nested subprogram's quads are drained before the enclosing
// block's remaining statements are parsed: the function's code appears
// ahead of the program's own block, and the jump-to-main preamble at
// the top of the file skips over it.
func TestNestedBodiesPrecedeMainInAssembly(t *testing.T) {
	src := `program p
declare a; enddeclare
function f(in x)
declare z; enddeclare
z := x + 1;
return z
endfunction
a := f(in 2)
endprogram`
	result := compileOK(t, src)

	require.True(t, strings.HasPrefix(result.Assembly, "\tj L_0\n"))
	fnIdx := strings.Index(result.Assembly, "f:\n")
	mainIdx := strings.Index(result.Assembly, "p:\n")
	require.Greater(t, fnIdx, 0)
	require.Greater(t, mainIdx, fnIdx, "function body must precede the program block in the assembly")
	require.Contains(t, result.Assembly, "\tjal f\n")
	require.Contains(t, result.Assembly, "\tlw $ra, ($sp)\n\tjr $ra\n")
}

// TestBeginEndBlockCounts checks the law that the number of begin_block
// quads equals the number of end_block quads equals 1 + the number of
// declared subprograms.
func TestBeginEndBlockCounts(t *testing.T) {
	src := `program p
declare a; enddeclare
procedure q()
a := 1
endprocedure
function f(in x)
return x
endfunction
call q()
endprogram`
	result := compileOK(t, src)

	begins := strings.Count(result.Quads, "(begin_block,")
	ends := strings.Count(result.Quads, "(end_block,")
	require.Equal(t, 3, begins)
	require.Equal(t, 3, ends)
}

// TestStaticLinkWalkDepth compiles a function nested two scopes deep
// that reads a variable of the outermost enclosing function and checks
// the static-link chain loads emitted for the access.
func TestStaticLinkWalkDepth(t *testing.T) {
	src := `program p
declare a; enddeclare
function outer(in x)
declare v; enddeclare
function inner(in y)
declare w; enddeclare
function innermost(in t)
return v + t
endfunction
w := innermost(in y);
return w
endfunction
v := 1;
return inner(in x)
endfunction
a := outer(in 3)
endprogram`
	result := compileOK(t, src)

	// innermost (level 3) reads v (level 1): one initial static-link
	// load plus one chain hop.
	require.Contains(t, result.Assembly, "\tlw $t0, -4($sp)\n\tlw $t0, -4($t0)\n")
}

func TestBracketedConditionGrouping(t *testing.T) {
	src := `program p
declare x, y; enddeclare
if [ x = 0 or y = 0 ] and x < y then x := 1 endif
endprogram`
	compileOK(t, src)
}

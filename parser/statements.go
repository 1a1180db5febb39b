package parser

import (
	"github.com/eelic-lang/eelic/lexer"
	"github.com/eelic-lang/eelic/quads"
	"github.com/eelic-lang/eelic/symtab"
)

// parseStatements = statement {';' statement}.
func (p *Parser) parseStatements() {
	p.parseStatement()
	for p.at(lexer.SEMICOLON) {
		p.advance()
		p.parseStatement()
	}
}

// parseStatement dispatches on the lookahead token. No token matching any
// of the forms below is itself a valid parse: the empty statement.
func (p *Parser) parseStatement() {
	switch p.cur().Type {
	case lexer.ID:
		p.parseAssignmentStat()
	case lexer.IF:
		p.parseIfStat()
	case lexer.WHILE:
		p.parseWhileStat()
	case lexer.REPEAT:
		p.parseRepeatStat()
	case lexer.EXIT:
		p.parseExitStat()
	case lexer.SWITCH:
		p.parseSwitchStat()
	case lexer.FORCASE:
		p.parseForCaseStat()
	case lexer.CALL:
		p.parseCallStat()
	case lexer.RETURN:
		p.parseReturnStat()
	case lexer.INPUT:
		p.parseInputStat()
	case lexer.PRINT:
		p.parsePrintStat()
	default:
		// empty statement
	}
}

// checkVariable raises a semantic error if tok does not name a declared
// Variable, Parameter, or Temporary.
func (p *Parser) checkVariable(tok lexer.Token) {
	if !p.table.HasVariable(tok.Value) {
		p.semanticErrorf(tok.Pos, "%q is not declared as a variable", tok.Value)
	}
}

// parseAssignmentStat = id `:=` expression.
func (p *Parser) parseAssignmentStat() {
	name := p.advance()
	p.checkVariable(name)
	p.expect(lexer.ASSIGN)
	value := p.parseExpression()
	p.gen.GenQuad(quads.OpAssign, value, quads.Unused, name.Value)
}

// parseIfStat = `if` condition `then` statements elsepart `endif`.
func (p *Parser) parseIfStat() {
	p.advance() // if
	cond := p.parseCondition()
	p.expect(lexer.THEN)

	p.gen.Backpatch(cond.True, quadTarget(p.gen.NextQuad()))
	p.parseStatements()

	exitJump := p.gen.GenQuad(quads.OpJump, quads.Unused, quads.Unused, quads.Unused)

	p.gen.Backpatch(cond.False, quadTarget(p.gen.NextQuad()))
	if p.at(lexer.ELSE) {
		p.advance()
		p.parseStatements()
	}

	p.gen.Backpatch([]int{exitJump}, quadTarget(p.gen.NextQuad()))
	p.expect(lexer.ENDIF)
}

// parseWhileStat = `while` condition statements `endwhile`.
func (p *Parser) parseWhileStat() {
	p.advance() // while
	preCond := p.gen.NextQuad()
	cond := p.parseCondition()

	p.gen.Backpatch(cond.True, quadTarget(p.gen.NextQuad()))
	p.parseStatements()
	p.gen.GenQuad(quads.OpJump, quads.Unused, quads.Unused, quadTarget(preCond))

	p.gen.Backpatch(cond.False, quadTarget(p.gen.NextQuad()))
	p.expect(lexer.ENDWHILE)
}

// parseRepeatStat = `repeat` statements `endrepeat`. A fresh pending-exit
// list is pushed for the body and drained here: every `exit` inside
// targets the innermost open repeat.
func (p *Parser) parseRepeatStat() {
	p.advance() // repeat
	start := p.gen.NextQuad()
	p.pushExitList()

	p.parseStatements()
	p.expect(lexer.ENDREPEAT)

	p.gen.GenQuad(quads.OpJump, quads.Unused, quads.Unused, quadTarget(start))
	exits := p.popExitList()
	p.gen.Backpatch(exits, quadTarget(p.gen.NextQuad()))
}

// parseExitStat = `exit`, legal only inside a repeat body.
func (p *Parser) parseExitStat() {
	tok := p.advance()
	if !p.insideRepeat() {
		p.semanticErrorf(tok.Pos, "'exit' used outside any 'repeat'")
	}
	id := p.gen.GenQuad(quads.OpJump, quads.Unused, quads.Unused, quads.Unused)
	p.addExit(id)
}

// parseSwitchStat = `switch` expression *case* {*case*} `endswitch`.
// The scrutinee is evaluated once; each case's `<>` quad jumps past
// that case's statements when the scrutinee doesn't match, falling
// through into them when it does.
func (p *Parser) parseSwitchStat() {
	p.advance() // switch
	scrutinee := p.parseExpression()

	afterSwitch := []int{p.parseCase(scrutinee)}
	for p.at(lexer.CASE) {
		afterSwitch = append(afterSwitch, p.parseCase(scrutinee))
	}
	p.expect(lexer.ENDSWITCH)
	p.gen.Backpatch(afterSwitch, quadTarget(p.gen.NextQuad()))
}

// parseCase = `case` expression `:` statements, returning the id of the
// after-switch jump that ends the case body.
func (p *Parser) parseCase(scrutinee string) int {
	p.expect(lexer.CASE)
	caseVal := p.parseExpression()
	neqID := p.gen.GenQuad(quads.OpNeq, scrutinee, caseVal, quads.Unused)
	p.expect(lexer.COLON)
	p.parseStatements()
	jumpID := p.gen.GenQuad(quads.OpJump, quads.Unused, quads.Unused, quads.Unused)
	p.gen.Backpatch([]int{neqID}, quadTarget(p.gen.NextQuad()))
	return jumpID
}

// parseForCaseStat = `forcase` *when* {*when*} `endforcase`. A fresh
// flag temporary tracks whether any guard fired this pass; the loop
// re-enters from the top while it did.
func (p *Parser) parseForCaseStat() {
	p.advance() // forcase
	loopStart := p.gen.NextQuad()
	flag := p.gen.NewTemp(true)
	p.gen.GenQuad(quads.OpAssign, "0", quads.Unused, flag)

	p.parseWhen(flag)
	for p.at(lexer.WHEN) {
		p.parseWhen(flag)
	}
	p.gen.GenQuad(quads.OpEq, "1", flag, quadTarget(loopStart))
	p.expect(lexer.ENDFORCASE)
}

// parseWhen = `when` condition `:` statements. The guarded block sets
// the fired flag before its own statements run; the condition's false
// list falls through to the next when (or the loop's re-entry compare).
func (p *Parser) parseWhen(flag string) {
	p.expect(lexer.WHEN)
	cond := p.parseCondition()
	p.expect(lexer.COLON)
	p.gen.Backpatch(cond.True, quadTarget(p.gen.NextQuad()))
	p.gen.GenQuad(quads.OpAssign, "1", quads.Unused, flag)
	p.parseStatements()
	p.gen.Backpatch(cond.False, quadTarget(p.gen.NextQuad()))
}

// parseCallStat = `call` id actualpars. name must resolve to a procedure
// whose declared modes match the actual parameter list exactly.
func (p *Parser) parseCallStat() {
	p.advance() // call
	name := p.expect(lexer.ID)
	if !p.table.HasProcedure(name.Value) {
		p.semanticErrorf(name.Pos, "%q is not declared as a procedure", name.Value)
	}

	modes := p.parseActualParList()
	if !p.table.HasCallableWithSignature(name.Value, modes) {
		p.semanticErrorf(name.Pos, "%q called with a parameter list that does not match its declared signature", name.Value)
	}
	p.gen.GenQuad(quads.OpCall, name.Value, quads.Unused, quads.Unused)
}

// parseActualParList = `(` [actualparitem {`,` actualparitem}] `)`,
// returning the ordered list of actual parameter modes for signature
// checking.
func (p *Parser) parseActualParList() []symtab.Mode {
	p.expect(lexer.OPAREN)
	var modes []symtab.Mode
	if !p.at(lexer.CPAREN) {
		modes = append(modes, p.parseActualParItem())
		for p.at(lexer.COMMA) {
			p.advance()
			modes = append(modes, p.parseActualParItem())
		}
	}
	p.expect(lexer.CPAREN)
	return modes
}

// parseActualParItem = `in` expression | `inout` id.
func (p *Parser) parseActualParItem() symtab.Mode {
	switch {
	case p.at(lexer.IN):
		p.advance()
		value := p.parseExpression()
		p.gen.GenQuad(quads.OpPar, value, symtab.ModeCV.String(), quads.Unused)
		return symtab.ModeCV
	case p.at(lexer.INOUT):
		p.advance()
		name := p.expect(lexer.ID)
		p.checkVariable(name)
		p.gen.GenQuad(quads.OpPar, name.Value, symtab.ModeRef.String(), quads.Unused)
		return symtab.ModeRef
	default:
		p.syntaxErrorf(p.cur().Pos, "expected 'in' or 'inout', got %s", p.cur().Type)
		return symtab.ModeNone
	}
}

// parseReturnStat = `return` expression. The retv quad is emitted
// unconditionally, then the in-function check runs; any failure aborts
// compilation immediately, so the emission order is unobservable.
func (p *Parser) parseReturnStat() {
	tok := p.advance() // return
	value := p.parseExpression()
	p.gen.GenQuad(quads.OpRetv, value, quads.Unused, quads.Unused)
	if !p.table.InsideFunction() {
		p.semanticErrorf(tok.Pos, "'return' used outside a function")
	}
	p.markReturnSeen()
}

// parseInputStat = `input` id.
func (p *Parser) parseInputStat() {
	p.advance() // input
	name := p.expect(lexer.ID)
	p.checkVariable(name)
	p.gen.GenQuad(quads.OpInp, name.Value, quads.Unused, quads.Unused)
}

// parsePrintStat = `print` expression.
func (p *Parser) parsePrintStat() {
	p.advance() // print
	value := p.parseExpression()
	p.gen.GenQuad(quads.OpOut, value, quads.Unused, quads.Unused)
}

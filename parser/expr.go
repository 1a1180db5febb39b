package parser

import (
	"github.com/eelic-lang/eelic/lexer"
	"github.com/eelic-lang/eelic/quads"
	"github.com/eelic-lang/eelic/symtab"
)

// parseCondition = boolterm {`or` boolterm}. On entry to the `or`, the
// left operand's false-list is backpatched to the next quad (so a false
// left operand falls through into evaluating the right one); the merged
// result's true-list is the union of both sides' true-lists, since either
// one succeeding makes the whole disjunction true.
func (p *Parser) parseCondition() boolResult {
	left := p.parseBoolTerm()
	for p.at(lexer.OR) {
		p.gen.Backpatch(left.False, quadTarget(p.gen.NextQuad()))
		p.advance()
		right := p.parseBoolTerm()
		left = boolResult{True: mergeIDs(left.True, right.True), False: right.False}
	}
	return left
}

// parseBoolTerm = boolfactor {`and` boolfactor}, the dual of parseCondition:
// the left operand's true-list is backpatched to fall through into the
// right operand, and the merged false-list is the union of both sides'.
func (p *Parser) parseBoolTerm() boolResult {
	left := p.parseBoolFactor()
	for p.at(lexer.AND) {
		p.gen.Backpatch(left.True, quadTarget(p.gen.NextQuad()))
		p.advance()
		right := p.parseBoolFactor()
		left = boolResult{True: right.True, False: mergeIDs(left.False, right.False)}
	}
	return left
}

// parseBoolFactor = `not` `[` condition `]` | `[` condition `]` |
// `true` | `false` | expression RELOP expression.
func (p *Parser) parseBoolFactor() boolResult {
	switch {
	case p.at(lexer.NOT):
		p.advance()
		p.expect(lexer.OBRACKET)
		inner := p.parseCondition()
		p.expect(lexer.CBRACKET)
		return boolResult{True: inner.False, False: inner.True}

	case p.at(lexer.OBRACKET):
		p.advance()
		inner := p.parseCondition()
		p.expect(lexer.CBRACKET)
		return inner

	case p.at(lexer.TRUE):
		p.advance()
		id := p.gen.GenQuad(quads.OpJump, quads.Unused, quads.Unused, quads.Unused)
		return boolResult{True: []int{id}}

	case p.at(lexer.FALSE):
		p.advance()
		id := p.gen.GenQuad(quads.OpJump, quads.Unused, quads.Unused, quads.Unused)
		return boolResult{False: []int{id}}

	default:
		lhs := p.parseExpression()
		op := p.parseRelOp()
		rhs := p.parseExpression()
		trueID := p.gen.GenQuad(op, lhs, rhs, quads.Unused)
		falseID := p.gen.GenQuad(quads.OpJump, quads.Unused, quads.Unused, quads.Unused)
		return boolResult{True: []int{trueID}, False: []int{falseID}}
	}
}

var relOps = map[lexer.TokenType]quads.Op{
	lexer.EQ:  quads.OpEq,
	lexer.NEQ: quads.OpNeq,
	lexer.LT:  quads.OpLt,
	lexer.GT:  quads.OpGt,
	lexer.LE:  quads.OpLe,
	lexer.GE:  quads.OpGe,
}

func (p *Parser) parseRelOp() quads.Op {
	op, ok := relOps[p.cur().Type]
	if !ok {
		p.syntaxErrorf(p.cur().Pos, "expected a relational operator, got %s", p.cur().Type)
	}
	p.advance()
	return op
}

// parseExpression = [`+` | `-`] term {(`+` | `-`) term}. A leading `-`
// negates the whole additive chain's result by multiplying it by the
// literal -1 into a fresh temporary, rather than emitting a dedicated
// unary-minus quad: `-a + b` computes -(a+b).
func (p *Parser) parseExpression() string {
	negate := false
	switch {
	case p.at(lexer.PLUS):
		p.advance()
	case p.at(lexer.MINUS):
		p.advance()
		negate = true
	}

	val := p.parseTerm()
	for p.at(lexer.PLUS) || p.at(lexer.MINUS) {
		op := quads.OpAdd
		if p.at(lexer.MINUS) {
			op = quads.OpSub
		}
		p.advance()
		rhs := p.parseTerm()
		tmp := p.gen.NewTemp(true)
		p.gen.GenQuad(op, val, rhs, tmp)
		val = tmp
	}

	if negate {
		tmp := p.gen.NewTemp(true)
		p.gen.GenQuad(quads.OpMul, val, "-1", tmp)
		val = tmp
	}
	return val
}

// parseTerm = factor {(`*` | `/`) factor}.
func (p *Parser) parseTerm() string {
	val := p.parseFactor()
	for p.at(lexer.MUL) || p.at(lexer.DIV) {
		op := quads.OpMul
		if p.at(lexer.DIV) {
			op = quads.OpDiv
		}
		p.advance()
		rhs := p.parseFactor()
		tmp := p.gen.NewTemp(true)
		p.gen.GenQuad(op, val, rhs, tmp)
		val = tmp
	}
	return val
}

// parseFactor = int | `(` expression `)` | id [`(` actualpars `)`].
// A bare id is a validated variable reference; id followed by `(` is a
// function call.
func (p *Parser) parseFactor() string {
	switch {
	case p.at(lexer.INT):
		return p.advance().Value

	case p.at(lexer.OPAREN):
		p.advance()
		val := p.parseExpression()
		p.expect(lexer.CPAREN)
		return val

	case p.at(lexer.ID):
		name := p.advance()
		if p.at(lexer.OPAREN) {
			return p.parseFunctionCall(name)
		}
		p.checkVariable(name)
		return name.Value

	default:
		p.syntaxErrorf(p.cur().Pos, "expected a number, '(', or an identifier, got %s", p.cur().Type)
		return ""
	}
}

// parseFunctionCall handles a function call in expression position: a
// return-slot temporary is created without registering it as a
// Temporary entity (it is instead added as a `ret`-mode Parameter,
// since the callee writes through it rather than the caller reading an
// ordinary local), and its `par` quad is emitted right before the
// `call`.
func (p *Parser) parseFunctionCall(name lexer.Token) string {
	if !p.table.HasFunction(name.Value) {
		p.semanticErrorf(name.Pos, "%q is not declared as a function", name.Value)
	}

	modes := p.parseActualParList()
	if !p.table.HasCallableWithSignature(name.Value, modes) {
		p.semanticErrorf(name.Pos, "%q called with a parameter list that does not match its declared signature", name.Value)
	}

	retTemp := p.gen.NewTemp(false)
	p.table.AddEntity(symtab.NewParameter(retTemp, symtab.ModeRet))
	p.gen.GenQuad(quads.OpPar, retTemp, symtab.ModeRet.String(), quads.Unused)
	p.gen.GenQuad(quads.OpCall, name.Value, quads.Unused, quads.Unused)
	return retTemp
}

package parser

import (
	"strconv"

	"github.com/eelic-lang/eelic/lexer"
	"github.com/eelic-lang/eelic/quads"
	"github.com/eelic-lang/eelic/symtab"
)

func quadTarget(id int) string {
	return strconv.Itoa(id)
}

// parseProgram = `program` id *block* `endprogram`.
//
// The `j L_0` preamble is written straight into the assembly output, not
// emitted as a quad: the program's begin_block is always quad 0, and
// nested procedure/function bodies are fully translated ahead of the
// program's own block, so execution (which starts at the top of the
// assembly file) needs this one jump to reach the main entry.
func (p *Parser) parseProgram() {
	p.expect(lexer.PROGRAM)
	name := p.expect(lexer.ID)

	p.cg.JumpToMain()

	p.parseBlock(name.Value, true)
	p.expect(lexer.ENDPROGRAM)
	if !p.at(lexer.EOF) {
		p.syntaxErrorf(p.cur().Pos, "unexpected token after endprogram: %s (%q)", p.cur().Type, p.cur().Value)
	}
}

// parseBlock = *declarations* *subprograms* *statements*, shared by the
// program's own top level and every procedure/function body.
//
// isProgramBlock selects: which scope to use (the program scope already
// exists; a subprogram opens a fresh one), whether a `halt` is emitted
// before `end_block`, and which draining start quad id to use (0 for the
// program, the owning function's recorded start quad otherwise).
func (p *Parser) parseBlock(name string, isProgramBlock bool) {
	if !isProgramBlock {
		p.table.CreateScope()
	}

	startQuad := 0
	if !isProgramBlock {
		startQuad = p.table.Callee().StartQuad
	}

	p.gen.GenQuad(quads.OpBeginBlock, name, quads.Unused, quads.Unused)

	p.parseDeclarations()
	p.parseSubprograms()
	p.parseStatements()

	if isProgramBlock {
		p.gen.GenQuad(quads.OpHalt, quads.Unused, quads.Unused, quads.Unused)
	}
	p.gen.GenQuad(quads.OpEndBlock, name, quads.Unused, quads.Unused)

	p.table.FillInFrameLengthOnCallee()
	qs := p.gen.GetAndMarkQuadsFrom(startQuad)
	p.cg.TranslateBlock(qs, isProgramBlock)

	if !isProgramBlock {
		if err := p.table.DestroyScope(); err != nil {
			panic(&InternalError{Message: err.Error()})
		}
	}
}

// parseDeclarations = [`declare` *varlist* [`;`] `enddeclare`].
func (p *Parser) parseDeclarations() {
	if !p.at(lexer.DECLARE) {
		return
	}
	p.advance()
	p.parseVarlist()
	if p.at(lexer.SEMICOLON) {
		p.advance()
	}
	p.expect(lexer.ENDDECLARE)
}

// parseVarlist = id {`,` id}. Each id is checked against redeclaration,
// emitted as a purely-informational `int` quad, and added as a
// Variable.
func (p *Parser) parseVarlist() {
	p.parseVarItem()
	for p.at(lexer.COMMA) {
		p.advance()
		p.parseVarItem()
	}
}

func (p *Parser) parseVarItem() {
	name := p.expect(lexer.ID)
	if _, ok := p.table.LookupOnCurrentScope(name.Value); ok {
		p.semanticErrorf(name.Pos, "%q is already declared in this scope", name.Value)
	}
	p.gen.GenQuad(quads.OpInt, name.Value, quads.Unused, quads.Unused)
	p.table.AddEntity(symtab.NewVariable(name.Value))
}

// parseSubprograms = { *procorfunc* }.
func (p *Parser) parseSubprograms() {
	for p.at(lexer.PROCEDURE) || p.at(lexer.FUNCTION) {
		p.parseProcOrFunc()
	}
}

// parseProcOrFunc = (`procedure` | `function`) id `(` *formalpars* `)`
// *block* (`endprocedure` | `endfunction`).
//
// The name is added as a Function entity, with its start quad recorded,
// before its inner block scope is opened, so CreateScope can find it to
// synthesize parameter entities.
func (p *Parser) parseProcOrFunc() {
	var kind symtab.FuncKind
	if p.at(lexer.PROCEDURE) {
		kind = symtab.FuncKindProcedure
	} else {
		kind = symtab.FuncKindFunction
	}
	p.advance()

	name := p.expect(lexer.ID)
	if _, ok := p.table.LookupOnCurrentScope(name.Value); ok {
		p.semanticErrorf(name.Pos, "%q is already declared in this scope", name.Value)
	}

	fn := symtab.NewFunction(name.Value, kind, p.gen.NextQuad())
	p.table.AddEntity(fn)

	p.expect(lexer.OPAREN)
	p.parseFormalParList()
	p.expect(lexer.CPAREN)

	if kind == symtab.FuncKindFunction {
		p.pushFunctionFrame()
	}

	p.parseBlock(name.Value, false)

	if kind == symtab.FuncKindFunction {
		endTok := p.cur()
		p.expect(lexer.ENDFUNCTION)
		if !p.popFunctionFrame() {
			p.semanticErrorf(endTok.Pos, "function %q has no return statement", name.Value)
		}
		return
	}
	p.expect(lexer.ENDPROCEDURE)
}

// parseFormalParList = [*formalparitem* {`,` *formalparitem*}].
func (p *Parser) parseFormalParList() {
	if !p.at(lexer.IN) && !p.at(lexer.INOUT) {
		return
	}
	p.parseFormalParItem()
	for p.at(lexer.COMMA) {
		p.advance()
		p.parseFormalParItem()
	}
}

// parseFormalParItem = (`in` | `inout`) id.
func (p *Parser) parseFormalParItem() {
	var mode symtab.Mode
	switch {
	case p.at(lexer.IN):
		mode = symtab.ModeCV
		p.advance()
	case p.at(lexer.INOUT):
		mode = symtab.ModeRef
		p.advance()
	default:
		p.syntaxErrorf(p.cur().Pos, "expected 'in' or 'inout', got %s", p.cur().Type)
	}
	name := p.expect(lexer.ID)
	if err := p.table.AddArgument(symtab.Argument{Name: name.Value, Mode: mode}); err != nil {
		panic(&InternalError{Message: err.Error()})
	}
}

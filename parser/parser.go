// Package parser implements the recursive-descent driver: it validates
// syntax, emits intermediate quads with on-the-fly backpatching, drives
// the symbol table's scope/entity bookkeeping, and invokes the final
// code generator at each block boundary.
package parser

import (
	"fmt"
	"log/slog"

	"github.com/eelic-lang/eelic/codegen"
	"github.com/eelic-lang/eelic/config"
	"github.com/eelic-lang/eelic/internal/diag"
	"github.com/eelic-lang/eelic/lexer"
	"github.com/eelic-lang/eelic/quads"
	"github.com/eelic-lang/eelic/symtab"
)

// Parser holds all single-pass compilation state: the remaining token
// sequence, the symbol table, the quad generator, the final generator,
// the per-function "seen a return" flags, and the stacked pending-exit
// lists for nested repeat blocks.
type Parser struct {
	filename string
	tokens   []lexer.Token
	pos      int

	table *symtab.Table
	gen   *quads.Generator
	cg    *codegen.Generator

	returnSeen []bool
	exitLists  [][]int

	logger *slog.Logger
}

// Result is everything a successful compilation produces.
type Result struct {
	Quads    string
	Assembly string
}

// New tokenizes src and builds a Parser ready to compile it. A lexer
// failure is reported as a CompileError rather than a bare *lexer.Error,
// so callers only ever see the one error shape.
func New(filename, src string, cfg *config.Config) (*Parser, error) {
	toks, err := lexer.New(src).Tokenize()
	if err != nil {
		return nil, lexErrToCompileError(filename, err)
	}

	table := symtab.New(cfg.Frame.HeaderBytes, cfg.Frame.SlotBytes)
	return &Parser{
		filename: filename,
		tokens:   toks,
		table:    table,
		gen:      quads.NewGenerator(table, cfg.Codegen.TempPrefix),
		cg:       codegen.NewGenerator(table),
		logger:   diag.NewDebugLogger(diag.Enabled()),
	}, nil
}

func lexErrToCompileError(filename string, err error) error {
	lexErr, ok := err.(*lexer.Error)
	if !ok {
		return err
	}
	return &CompileError{Filename: filename, Pos: lexErr.Pos, Kind: LexerErrorKind, Message: lexErr.Error()}
}

// Parse compiles the whole program and returns the intermediate listing
// and assembly text. Any CompileError raised during parsing is recovered
// here and returned as an ordinary error; an InternalError (an invariant
// violation that is a bug in eelic itself, not in the source text) is
// also recovered and wrapped distinctly.
func (p *Parser) Parse() (result Result, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch e := r.(type) {
		case *CompileError:
			err = e
		case *InternalError:
			err = e
		default:
			err = &InternalError{Message: fmt.Sprintf("%v", r)}
		}
	}()

	p.parseProgram()
	return Result{Quads: p.gen.String(), Assembly: p.cg.String()}, nil
}

func (p *Parser) cur() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peek() lexer.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

// advance consumes and returns the current token.
func (p *Parser) advance() lexer.Token {
	t := p.tokens[p.pos]
	p.logger.Debug("consume", "type", t.Type.String(), "value", t.Value, "pos", t.Pos.String())
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

// expect consumes the current token if it has type tt, else raises a
// SyntaxError naming both the expected and actual kind.
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	t := p.cur()
	if t.Type != tt {
		p.syntaxErrorf(t.Pos, "expected %s, got %s (%q)", tt, t.Type, t.Value)
	}
	return p.advance()
}

func (p *Parser) at(tt lexer.TokenType) bool {
	return p.cur().Type == tt
}

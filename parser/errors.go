package parser

import (
	"fmt"

	"github.com/eelic-lang/eelic/lexer"
)

// ErrorKind classifies a CompileError by the pipeline stage that raised it.
type ErrorKind int

const (
	LexerErrorKind ErrorKind = iota
	SyntaxErrorKind
	SemanticErrorKind
)

func (k ErrorKind) String() string {
	switch k {
	case LexerErrorKind:
		return "lexer error"
	case SyntaxErrorKind:
		return "syntax error"
	case SemanticErrorKind:
		return "semantic error"
	default:
		return "error"
	}
}

// CompileError is the one error shape the whole pipeline reports:
// position, message, and an optional suggestion. It aborts compilation
// immediately; no recovery is attempted.
type CompileError struct {
	Filename   string
	Pos        lexer.Position
	Kind       ErrorKind
	Message    string
	Suggestion string
}

func (e *CompileError) Error() string {
	msg := fmt.Sprintf("%s:(%d,%d):\n\t%s", e.Filename, e.Pos.Row, e.Pos.Col, e.Message)
	if e.Suggestion != "" {
		msg += fmt.Sprintf("\n\t-> %s", e.Suggestion)
	}
	return msg
}

// InternalError distinguishes a programmer-error invariant violation
// (e.g. destroying a scope before its frame length was filled in) from
// a CompileError arising out of the user's source text. Parse recovers
// both, but each renders through its own Error() string, so a caller
// that only ever prints err still tells the two apart.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Message
}

// fail panics with a *CompileError; it is recovered once, at the top of
// Parse, and converted into Parse's returned error. A panic unwind is
// simpler than threading an error return through every one of the
// dozens of mutually-recursive grammar methods, and compilation never
// continues past the first error anyway.
func (p *Parser) fail(kind ErrorKind, pos lexer.Position, message, suggestion string) {
	panic(&CompileError{Filename: p.filename, Pos: pos, Kind: kind, Message: message, Suggestion: suggestion})
}

func (p *Parser) syntaxErrorf(pos lexer.Position, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	suggestion := ""
	if p.cur().Type == lexer.ID {
		suggestion = "maybe a ';' or ',' is missing"
	}
	p.fail(SyntaxErrorKind, pos, msg, suggestion)
}

func (p *Parser) semanticErrorf(pos lexer.Position, format string, args ...any) {
	p.fail(SemanticErrorKind, pos, fmt.Sprintf(format, args...), "")
}

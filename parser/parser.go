// Package parser implements a recursive-descent parser for Lox, matching
// the grammar in spec.md exactly: the precedence ladder (assignment, or,
// and, equality, comparison, term, factor, unary, call, primary), the
// for-to-while desugaring, and error-recovery by synchronizing to the next
// statement boundary so a single run can report more than one syntax error.
package parser

import (
	"fmt"

	"github.com/lox-lang/lox/ast"
	"github.com/lox-lang/lox/lexer"
)

// ParseError pairs a diagnostic message with the token that triggered it so
// the CLI/REPL can report a line number (spec.md §4.2, §7).
type ParseError struct {
	Token   lexer.Token
	Message string
}

func (e *ParseError) Error() string {
	if e.Token.Type == lexer.EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Token.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Message)
}

const maxArgs = 255

// Parser consumes a flat token stream and builds the statement list that
// makes up a program.
type Parser struct {
	tokens  []lexer.Token
	current int
	errors  []*ParseError
}

// New creates a Parser over an already-scanned token stream.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseProgram parses the whole token stream into a statement list. It
// never stops at the first syntax error — each failing declaration is
// reported and synchronize() resumes parsing at the next statement
// boundary, so all the errors in one run surface together.
func (p *Parser) ParseProgram() ([]ast.Stmt, []*ParseError) {
	var stmts []ast.Stmt
	for !p.atEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, p.errors
}

// ---- token cursor helpers ----

func (p *Parser) atEnd() bool {
	return p.peek().Type == lexer.EOF
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) advance() lexer.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t lexer.TokenType) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past a token of type t, or records a syntax error at the
// current token if it isn't there.
func (p *Parser) consume(t lexer.TokenType, message string) (lexer.Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.newError(p.peek(), message)
}

// newError records the error (so the whole run can report many) and also
// returns it so the caller can unwind the current declaration/statement.
func (p *Parser) newError(tok lexer.Token, message string) error {
	err := &ParseError{Token: tok, Message: message}
	p.errors = append(p.errors, err)
	return err
}

// synchronize discards tokens until it finds a statement boundary: the
// token after a ';', or a keyword that starts a new statement. This keeps
// one bad statement from cascading into spurious follow-on errors.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Type == lexer.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case lexer.CLASS, lexer.FUN, lexer.VAR, lexer.FOR,
			lexer.IF, lexer.WHILE, lexer.PRINT, lexer.RETURN:
			return
		}
		p.advance()
	}
}

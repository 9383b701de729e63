// Package parser implements the recursive-descent parser that turns a
// plasm token stream into a typed AST, per the precedence levels and
// recovery strategy in spec.md §4.2.
package parser

import (
	"github.com/lehlud/plasm/internal/ast"
	"github.com/lehlud/plasm/internal/diagnostics"
	"github.com/lehlud/plasm/internal/lexer"
)

// statementStartKeywords are the token kinds the parser synchronises to
// after a statement-level error: the next semicolon, or one of these.
var statementStartKeywords = map[lexer.TokenType]bool{
	lexer.CLASS: true, lexer.FN: true, lexer.PROC: true, lexer.CONST: true,
	lexer.FINAL: true, lexer.LET: true, lexer.IF: true, lexer.WHILE: true,
	lexer.RETURN: true,
}

// Parser consumes a pre-lexed token slice and builds an *ast.Program.
type Parser struct {
	tokens []lexer.Token
	pos    int
	errors []diagnostics.Diagnostic
}

// New builds a Parser over source, running the lexer to completion first
// (tokenize(source) -> (tokens, diagnostics), per spec.md §4.1).
func New(source string) *Parser {
	tokens, lexErrs := lexer.Tokenize(source)
	p := &Parser{tokens: tokens}
	for _, e := range lexErrs {
		p.errors = append(p.errors, diagnostics.New(diagnostics.Lexer, e.Pos, "%s", e.Message))
	}
	return p
}

// Errors returns the accumulated parse (and lexer) diagnostics.
func (p *Parser) Errors() []diagnostics.Diagnostic { return p.errors }

func (p *Parser) cur() lexer.Token { return p.tokens[p.pos] }

func (p *Parser) peek(n int) lexer.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[idx]
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if tok.Type != lexer.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) check(tt lexer.TokenType) bool { return p.cur().Type == tt }

func (p *Parser) match(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) errorf(pos lexer.Position, format string, args ...any) {
	p.errors = append(p.errors, diagnostics.New(diagnostics.Parser, pos, format, args...))
}

// expect consumes tt, or records a diagnostic and returns the current
// (unconsumed) token so callers can keep building a best-effort AST.
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	if p.check(tt) {
		return p.advance()
	}
	p.errorf(p.cur().Pos, "expected %s, got %s %q", tt, p.cur().Type, p.cur().Literal)
	return p.cur()
}

// expectSemicolon records a diagnostic (not fatal) when `;` is missing,
// matching spec.md's "missing semicolon is a diagnostic, not a fatal
// error."
func (p *Parser) expectSemicolon() {
	if !p.match(lexer.SEMICOLON) {
		p.errorf(p.cur().Pos, "expected ';'")
	}
}

// synchronize recovers from a statement-level parse error by advancing
// to the next semicolon (consuming it) or the next statement/declaration
// start keyword.
func (p *Parser) synchronize() {
	for p.cur().Type != lexer.EOF {
		if p.cur().Type == lexer.SEMICOLON {
			p.advance()
			return
		}
		if statementStartKeywords[p.cur().Type] {
			return
		}
		p.advance()
	}
}

// ParseProgram parses the whole token stream: imports, then
// declarations, accumulating diagnostics without aborting on the first
// error.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}

	for p.check(lexer.IMPORT) {
		prog.Imports = append(prog.Imports, p.parseImport())
	}

	for p.cur().Type != lexer.EOF {
		decl := p.parseDeclaration()
		if decl != nil {
			prog.Declarations = append(prog.Declarations, decl)
		}
	}

	for _, d := range p.errors {
		prog.Errors = append(prog.Errors, d.String())
	}
	return prog
}

func (p *Parser) parseImport() *ast.ImportDecl {
	tok := p.advance() // 'import'
	pathTok := p.expect(lexer.IDENT)
	path := pathTok.Literal
	for p.match(lexer.DOT) {
		path += "." + p.expect(lexer.IDENT).Literal
	}
	p.expectSemicolon()
	return &ast.ImportDecl{Token: tok, Path: path}
}

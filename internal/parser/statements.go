package parser

import (
	"github.com/lehlud/plasm/internal/ast"
	"github.com/lehlud/plasm/internal/lexer"
)

// parseStatement dispatches on the leading token of a statement inside
// a block.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case lexer.FINAL, lexer.LET:
		return p.parseVarDecl()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExpressionStatement()
	}
}

// parseBlock parses `{ statement* }`.
func (p *Parser) parseBlock() *ast.Block {
	tok := p.expect(lexer.LBRACE)
	block := &ast.Block{Token: tok}
	for !p.check(lexer.RBRACE) && p.cur().Type != lexer.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
	}
	p.expect(lexer.RBRACE)
	return block
}

// parseVarDecl parses `final`/`let` local declarations with one or more
// comma-separated bindings: `let T? a = 1, b = 2;`.
func (p *Parser) parseVarDecl() *ast.VarDecl {
	kw := p.advance() // 'final' or 'let'
	isFinal := kw.Type == lexer.FINAL

	var typ *ast.TypeSpec
	omitType := !isFinal && p.check(lexer.IDENT) &&
		(p.peek(1).Type == lexer.ASSIGN || p.peek(1).Type == lexer.COMMA || p.peek(1).Type == lexer.SEMICOLON)
	if !omitType {
		typ = p.parseTypeSpec()
	}

	decl := &ast.VarDecl{Token: kw, IsFinal: isFinal, Type: typ}
	for {
		nameTok := p.expect(lexer.IDENT)
		name := &ast.Identifier{Token: nameTok, Value: nameTok.Literal}
		var init ast.Expression
		if p.match(lexer.ASSIGN) {
			init = p.parseExpression()
		}
		decl.Bindings = append(decl.Bindings, &ast.VarBinding{Name: name, Init: init})
		if !p.match(lexer.COMMA) {
			break
		}
	}
	p.expectSemicolon()
	return decl
}

// parseIfStatement parses `if (cond) block (else (ifStatement|block))?`;
// the parentheses around the condition are required by the grammar.
func (p *Parser) parseIfStatement() *ast.IfStatement {
	tok := p.advance() // 'if'
	p.expect(lexer.LPAREN)
	cond := p.parseExpression()
	p.expect(lexer.RPAREN)
	then := p.parseBlock()

	stmt := &ast.IfStatement{Token: tok, Condition: cond, Then: then}
	if p.match(lexer.ELSE) {
		if p.check(lexer.IF) {
			stmt.Else = p.parseIfStatement()
		} else {
			stmt.Else = p.parseBlock()
		}
	}
	return stmt
}

// parseWhileStatement parses `while (cond) block`.
func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	tok := p.advance() // 'while'
	p.expect(lexer.LPAREN)
	cond := p.parseExpression()
	p.expect(lexer.RPAREN)
	body := p.parseBlock()
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}

// parseReturnStatement parses `return expr?;`.
func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	tok := p.advance() // 'return'
	stmt := &ast.ReturnStatement{Token: tok}
	if !p.check(lexer.SEMICOLON) {
		stmt.Value = p.parseExpression()
	}
	p.expectSemicolon()
	return stmt
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	tok := p.cur()
	expr := p.parseExpression()
	p.expectSemicolon()
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

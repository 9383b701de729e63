package parser

import (
	"github.com/lehlud/plasm/internal/ast"
	"github.com/lehlud/plasm/internal/lexer"
)

// parseTypeSpec parses a primitive/user name, a generic application
// `N<T...>`, a parenthesised tuple/function type, `void`, or `any`.
func (p *Parser) parseTypeSpec() *ast.TypeSpec {
	tok := p.cur()

	switch tok.Type {
	case lexer.VOID:
		p.advance()
		return &ast.TypeSpec{Token: tok, Kind: ast.TypeVoid}
	case lexer.ANY:
		p.advance()
		return &ast.TypeSpec{Token: tok, Kind: ast.TypeAny}
	case lexer.LPAREN:
		return p.parseParenTypeSpec()
	}

	if tok.Type.IsPrimitiveType() || tok.Type == lexer.IDENT {
		p.advance()
		if p.match(lexer.LT) {
			var args []*ast.TypeSpec
			args = append(args, p.parseTypeSpec())
			for p.match(lexer.COMMA) {
				args = append(args, p.parseTypeSpec())
			}
			p.expect(lexer.GT)
			return &ast.TypeSpec{Token: tok, Kind: ast.TypeGeneric, Generic: tok.Literal, TypeArgs: args}
		}
		return &ast.TypeSpec{Token: tok, Kind: ast.TypeSimple, Name: tok.Literal}
	}

	p.errorf(tok.Pos, "expected a type, got %s %q", tok.Type, tok.Literal)
	p.advance()
	return &ast.TypeSpec{Token: tok, Kind: ast.TypeVoid}
}

// parseParenTypeSpec parses the shared prefix of tuple and function
// types. It commits to a function type only once the `)` is behind it
// and a `=>` follows — the grammar is unambiguous at that point, so no
// lookahead-then-restore is needed.
func (p *Parser) parseParenTypeSpec() *ast.TypeSpec {
	tok := p.advance() // '('

	var elems []*ast.TypeSpec
	if !p.check(lexer.RPAREN) {
		elems = append(elems, p.parseTypeSpec())
		for p.match(lexer.COMMA) {
			elems = append(elems, p.parseTypeSpec())
		}
	}
	p.expect(lexer.RPAREN)

	if p.match(lexer.FATARROW) {
		result := p.parseTypeSpec()
		return &ast.TypeSpec{Token: tok, Kind: ast.TypeFunction, Params: elems, Result: result}
	}
	return &ast.TypeSpec{Token: tok, Kind: ast.TypeTuple, Params: elems}
}

package parser

import (
	"github.com/lehlud/plasm/internal/ast"
	"github.com/lehlud/plasm/internal/lexer"
)

// parseDeclaration dispatches on the optional visibility/static modifiers
// followed by const/fn/proc/class, recovering via synchronize() on error.
func (p *Parser) parseDeclaration() ast.Declaration {
	vis := ast.VisibilityPrivate
	if p.check(lexer.PUB) {
		vis = ast.VisibilityPublic
		p.advance()
	} else if p.check(lexer.PROT) {
		vis = ast.VisibilityProtected
		p.advance()
	}

	isStatic := p.match(lexer.STATIC)

	switch p.cur().Type {
	case lexer.CONST:
		return p.parseConstDecl(vis)
	case lexer.FN:
		return p.parseFunctionDecl(vis, isStatic)
	case lexer.PROC:
		return p.parseProcedureDecl(vis, isStatic)
	case lexer.CLASS:
		return p.parseClassDecl(vis)
	default:
		p.errorf(p.cur().Pos, "expected a declaration (const/fn/proc/class), got %s", p.cur().Type)
		p.synchronize()
		return nil
	}
}

func (p *Parser) parseConstDecl(vis ast.Visibility) *ast.ConstDecl {
	tok := p.advance() // 'const'
	nameTok := p.expect(lexer.IDENT)
	name := &ast.Identifier{Token: nameTok, Value: nameTok.Literal}

	var typ *ast.TypeSpec
	if p.match(lexer.COLON) {
		typ = p.parseTypeSpec()
	}

	p.expect(lexer.ASSIGN)
	value := p.parseExpression()
	p.expectSemicolon()

	return &ast.ConstDecl{Token: tok, Visibility: vis, Name: name, Type: typ, Value: value}
}

func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	if p.check(lexer.RPAREN) {
		return params
	}
	for {
		typ := p.parseTypeSpec()
		nameTok := p.expect(lexer.IDENT)
		params = append(params, &ast.Param{Token: nameTok, Name: nameTok.Literal, Type: typ})
		if !p.match(lexer.COMMA) {
			break
		}
	}
	return params
}

func (p *Parser) parseFunctionDecl(vis ast.Visibility, isStatic bool) *ast.FunctionDecl {
	tok := p.advance() // 'fn'
	nameTok := p.expect(lexer.IDENT)
	name := &ast.Identifier{Token: nameTok, Value: nameTok.Literal}

	p.expect(lexer.LPAREN)
	params := p.parseParamList()
	p.expect(lexer.RPAREN)

	retType := p.parseTypeSpec()
	body := p.parseBlock()

	return &ast.FunctionDecl{
		Token: tok, Visibility: vis, IsStatic: isStatic,
		Name: name, Params: params, ReturnType: retType, Body: body,
	}
}

func (p *Parser) parseProcedureDecl(vis ast.Visibility, isStatic bool) *ast.ProcedureDecl {
	tok := p.advance() // 'proc'
	nameTok := p.expect(lexer.PROCIDENT)
	name := &ast.Identifier{Token: nameTok, Value: nameTok.Literal}

	p.expect(lexer.LPAREN)
	params := p.parseParamList()
	p.expect(lexer.RPAREN)

	retType := p.parseTypeSpec()
	body := p.parseBlock()

	return &ast.ProcedureDecl{
		Token: tok, Visibility: vis, IsStatic: isStatic,
		Name: name, Params: params, ReturnType: retType, Body: body,
	}
}

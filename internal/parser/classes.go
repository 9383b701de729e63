package parser

import (
	"github.com/lehlud/plasm/internal/ast"
	"github.com/lehlud/plasm/internal/lexer"
)

var operatorTokens = map[lexer.TokenType]ast.OperatorSymbol{
	lexer.PLUS: ast.OpAdd, lexer.MINUS: ast.OpSub, lexer.STAR: ast.OpMul,
	lexer.SLASH: ast.OpDiv, lexer.PERCENT: ast.OpMod,
	lexer.EQ: ast.OpEq, lexer.NOTEQ: ast.OpNeq,
	lexer.LT: ast.OpLt, lexer.GT: ast.OpGt, lexer.LE: ast.OpLe, lexer.GE: ast.OpGe,
	lexer.ANDAND: ast.OpAnd, lexer.OROR: ast.OpOr,
}

// parseClassDecl parses `class Name { member* }`, dispatching each
// member on its leading keyword: `final`/`let` for fields,
// `constructor` for constructors, `op` for operator overloads, and
// `fn`/`proc` (with optional `pub`/`prot`/`static`) for methods.
func (p *Parser) parseClassDecl(vis ast.Visibility) *ast.ClassDecl {
	tok := p.advance() // 'class'
	nameTok := p.expect(lexer.IDENT)
	name := &ast.Identifier{Token: nameTok, Value: nameTok.Literal}

	class := &ast.ClassDecl{Token: tok, Visibility: vis, Name: name}

	p.expect(lexer.LBRACE)
	for !p.check(lexer.RBRACE) && p.cur().Type != lexer.EOF {
		p.parseClassMember(class)
	}
	p.expect(lexer.RBRACE)

	return class
}

func (p *Parser) parseClassMember(class *ast.ClassDecl) {
	memberVis := ast.VisibilityPrivate
	if p.check(lexer.PUB) {
		memberVis = ast.VisibilityPublic
		p.advance()
	} else if p.check(lexer.PROT) {
		memberVis = ast.VisibilityProtected
		p.advance()
	}

	switch p.cur().Type {
	case lexer.FINAL:
		class.Fields = append(class.Fields, p.parseFieldDecl(memberVis, true))
	case lexer.LET:
		class.Fields = append(class.Fields, p.parseFieldDecl(memberVis, false))
	case lexer.CONSTRUCTOR:
		class.Constructors = append(class.Constructors, p.parseConstructorDecl())
	case lexer.OP:
		class.Operators = append(class.Operators, p.parseOperatorDecl())
	case lexer.STATIC:
		p.advance()
		class.Methods = append(class.Methods, p.parseMethod(memberVis, true))
	case lexer.FN, lexer.PROC:
		class.Methods = append(class.Methods, p.parseMethod(memberVis, false))
	default:
		p.errorf(p.cur().Pos, "expected a class member, got %s", p.cur().Type)
		p.synchronize()
	}
}

// parseFieldDecl handles `final T name = expr;` (type always present) and
// `let T? name (= expr)?;` (type omitted when inferred from the
// initializer: recognised by name immediately followed by `=` or `;`).
func (p *Parser) parseFieldDecl(vis ast.Visibility, isFinal bool) *ast.FieldDecl {
	kw := p.advance() // 'final' or 'let'

	var typ *ast.TypeSpec
	omitType := !isFinal && p.check(lexer.IDENT) &&
		(p.peek(1).Type == lexer.ASSIGN || p.peek(1).Type == lexer.SEMICOLON)
	if !omitType {
		typ = p.parseTypeSpec()
	}

	nameTok := p.expect(lexer.IDENT)
	name := &ast.Identifier{Token: nameTok, Value: nameTok.Literal}

	var init ast.Expression
	if p.match(lexer.ASSIGN) {
		init = p.parseExpression()
	}
	p.expectSemicolon()

	return &ast.FieldDecl{
		Token: kw, Visibility: vis, IsFinal: isFinal, IsStatic: false,
		Name: name, Type: typ, Init: init,
	}
}

// parseConstructorDecl parses `constructor ( params? ) block`.
func (p *Parser) parseConstructorDecl() *ast.ConstructorDecl {
	tok := p.advance() // 'constructor'
	p.expect(lexer.LPAREN)
	params := p.parseParamList()
	p.expect(lexer.RPAREN)
	body := p.parseBlock()
	return &ast.ConstructorDecl{Token: tok, Params: params, Body: body}
}

// parseOperatorDecl parses `op ( <sym> ) ( param ) returnType block`.
func (p *Parser) parseOperatorDecl() *ast.OperatorDecl {
	tok := p.advance() // 'op'
	p.expect(lexer.LPAREN)

	symTok := p.cur()
	sym, ok := operatorTokens[symTok.Type]
	if !ok {
		p.errorf(symTok.Pos, "expected an overloadable operator, got %s", symTok.Type)
	} else {
		p.advance()
	}
	p.expect(lexer.RPAREN)

	p.expect(lexer.LPAREN)
	var param *ast.Param
	if !p.check(lexer.RPAREN) {
		typ := p.parseTypeSpec()
		nameTok := p.expect(lexer.IDENT)
		param = &ast.Param{Token: nameTok, Name: nameTok.Literal, Type: typ}
	}
	p.expect(lexer.RPAREN)

	retType := p.parseTypeSpec()
	body := p.parseBlock()

	return &ast.OperatorDecl{Token: tok, Symbol: sym, Param: param, ReturnType: retType, Body: body}
}

// parseMethod parses a nested `fn`/`proc` member; shares its decl shape
// with the top-level form.
func (p *Parser) parseMethod(vis ast.Visibility, isStatic bool) ast.Declaration {
	if p.check(lexer.PROC) {
		return p.parseProcedureDecl(vis, isStatic)
	}
	return p.parseFunctionDecl(vis, isStatic)
}

package parser

import (
	"github.com/lehlud/plasm/internal/ast"
	"github.com/lehlud/plasm/internal/lexer"
)

// parseExpression is the entry point for the full precedence chain:
// assignment < logical-or < logical-and < equality < relational
// (with the is/as suffix chain) < additive < multiplicative < unary <
// postfix < primary.
func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

// parseAssignment is right-associative and restricts its target to a
// bare identifier (member/index targets are not assignable in this
// grammar).
func (p *Parser) parseAssignment() ast.Expression {
	left := p.parseLogicalOr()
	if !p.check(lexer.ASSIGN) {
		return left
	}
	tok := p.advance()
	ident, ok := left.(*ast.Identifier)
	if !ok {
		p.errorf(tok.Pos, "assignment target must be a bare identifier")
	}
	value := p.parseAssignment()
	return &ast.AssignmentExpression{Token: tok, Target: ident, Value: value}
}

func (p *Parser) parseLogicalOr() ast.Expression {
	left := p.parseLogicalAnd()
	for p.check(lexer.OROR) {
		tok := p.advance()
		right := p.parseLogicalAnd()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	left := p.parseEquality()
	for p.check(lexer.ANDAND) {
		tok := p.advance()
		right := p.parseEquality()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseRelational()
	for p.cur().Type == lexer.EQ || p.cur().Type == lexer.NOTEQ {
		tok := p.advance()
		right := p.parseRelational()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left
}

// parseRelational parses the comparison operators and, after them, an
// optional single `is T` test followed by zero or more left-associative
// `as T` casts.
func (p *Parser) parseRelational() ast.Expression {
	left := p.parseAdditive()
	for p.cur().Type == lexer.LT || p.cur().Type == lexer.GT ||
		p.cur().Type == lexer.LE || p.cur().Type == lexer.GE {
		tok := p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}

	if p.check(lexer.IS) {
		tok := p.advance()
		target := p.parseTypeSpec()
		left = &ast.TypeTestExpression{Token: tok, Value: left, Target: target}
	}
	for p.check(lexer.AS) {
		tok := p.advance()
		target := p.parseTypeSpec()
		left = &ast.CastExpression{Token: tok, Value: left, Target: target}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.cur().Type == lexer.PLUS || p.cur().Type == lexer.MINUS {
		tok := p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.cur().Type == lexer.STAR || p.cur().Type == lexer.SLASH || p.cur().Type == lexer.PERCENT {
		tok := p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.cur().Type == lexer.MINUS || p.cur().Type == lexer.NOT {
		tok := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpression{Token: tok, Operator: tok.Literal, Operand: operand}
	}
	return p.parsePostfix()
}

// parsePostfix chains member access, indexing, and calls onto a
// primary expression.
func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch {
		case p.check(lexer.DOT):
			p.advance()
			tok := p.cur()
			var name string
			isProc := false
			if tok.Type == lexer.PROCIDENT {
				name = tok.Literal
				isProc = true
				p.advance()
			} else {
				nameTok := p.expect(lexer.IDENT)
				name = nameTok.Literal
			}
			expr = &ast.MemberExpression{Token: tok, Target: expr, Name: name, IsProcCall: isProc}
		case p.check(lexer.LBRACKET):
			tok := p.advance()
			idx := p.parseExpression()
			p.expect(lexer.RBRACKET)
			expr = &ast.IndexExpression{Token: tok, Array: expr, Index: idx}
		case p.check(lexer.LPAREN):
			tok := p.advance()
			args := p.parseArgList()
			p.expect(lexer.RPAREN)
			expr = &ast.CallExpression{Token: tok, Callee: expr, Args: args}
		default:
			return expr
		}
	}
}

func (p *Parser) parseArgList() []ast.Expression {
	var args []ast.Expression
	if p.check(lexer.RPAREN) {
		return args
	}
	args = append(args, p.parseExpression())
	for p.match(lexer.COMMA) {
		args = append(args, p.parseExpression())
	}
	return args
}

// parsePrimary parses literals, `self`, array allocation/literal forms,
// lambdas, identifiers/proc-identifiers, and the parenthesised
// expression/tuple form.
func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case lexer.TRUE:
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: true}
	case lexer.FALSE:
		p.advance()
		return &ast.BooleanLiteral{Token: tok, Value: false}
	case lexer.INT:
		p.advance()
		return &ast.IntegerLiteral{Token: tok, Value: tok.IntValue}
	case lexer.FLOAT:
		p.advance()
		return &ast.FloatLiteral{Token: tok, Value: tok.FloatValue}
	case lexer.STRING:
		p.advance()
		return p.parseStringExpression(tok)
	case lexer.SELF:
		p.advance()
		return &ast.SelfExpression{Token: tok}
	case lexer.NEW:
		return p.parseArrayAlloc()
	case lexer.LBRACKET:
		return p.parseArrayLiteral()
	case lexer.AT:
		return p.parseLambda()
	case lexer.IDENT, lexer.PROCIDENT:
		p.advance()
		return &ast.Identifier{Token: tok, Value: tok.Literal}
	case lexer.LPAREN:
		return p.parseParenOrTuple()
	default:
		p.errorf(tok.Pos, "unexpected token %s %q in expression", tok.Type, tok.Literal)
		p.advance()
		return &ast.Identifier{Token: tok, Value: tok.Literal}
	}
}

// parseArrayAlloc parses `new T[size]`.
func (p *Parser) parseArrayAlloc() ast.Expression {
	tok := p.advance() // 'new'
	elemType := p.parseTypeSpec()
	p.expect(lexer.LBRACKET)
	size := p.parseExpression()
	p.expect(lexer.RBRACKET)
	return &ast.ArrayAllocExpression{Token: tok, ElemType: elemType, Size: size}
}

// parseArrayLiteral parses `[e, e, ...]`.
func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.advance() // '['
	lit := &ast.ArrayLiteral{Token: tok}
	if !p.check(lexer.RBRACKET) {
		lit.Elements = append(lit.Elements, p.parseExpression())
		for p.match(lexer.COMMA) {
			lit.Elements = append(lit.Elements, p.parseExpression())
		}
	}
	p.expect(lexer.RBRACKET)
	return lit
}

// parseLambda parses `@(params) => expr` or `@(params) block`.
func (p *Parser) parseLambda() ast.Expression {
	tok := p.advance() // '@'
	p.expect(lexer.LPAREN)
	params := p.parseParamList()
	p.expect(lexer.RPAREN)

	lam := &ast.LambdaExpression{Token: tok, Params: params}
	if p.match(lexer.FATARROW) {
		lam.IsShorthand = true
		lam.ExprBody = p.parseExpression()
	} else {
		lam.BlockBody = p.parseBlock()
	}
	return lam
}

// parseParenOrTuple disambiguates `(expr)` from `(e, e, ...)` by
// counting commas after parsing the first element — no backtracking is
// needed since a comma can only start a tuple continuation here.
func (p *Parser) parseParenOrTuple() ast.Expression {
	tok := p.advance() // '('
	first := p.parseExpression()
	if p.check(lexer.COMMA) {
		elems := []ast.Expression{first}
		for p.match(lexer.COMMA) {
			elems = append(elems, p.parseExpression())
		}
		p.expect(lexer.RPAREN)
		return &ast.TupleExpression{Token: tok, Elements: elems}
	}
	p.expect(lexer.RPAREN)
	return first
}

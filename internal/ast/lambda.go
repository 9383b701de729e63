package ast

import (
	"bytes"
	"strings"

	"github.com/lehlud/plasm/internal/lexer"
)

// LambdaExpression is `@(params) => expr` or `@(params) block`. Full
// closure capture of enclosing variables is out of scope (spec.md §1);
// the IR builder lowers a lambda to a plain top-level function.
type LambdaExpression struct {
	Token       lexer.Token
	Params      []*Param
	IsShorthand bool // true for `=> expr`, false for a block body
	ExprBody    Expression // set when IsShorthand
	BlockBody   *Block     // set when !IsShorthand
}

func (l *LambdaExpression) expressionNode()      {}
func (l *LambdaExpression) TokenLiteral() string { return l.Token.Literal }
func (l *LambdaExpression) Pos() lexer.Position  { return l.Token.Pos }
func (l *LambdaExpression) String() string {
	var out bytes.Buffer
	out.WriteString("@(")
	params := make([]string, len(l.Params))
	for i, p := range l.Params {
		params[i] = p.String()
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(")")
	if l.IsShorthand {
		out.WriteString(" => ")
		out.WriteString(l.ExprBody.String())
	} else {
		out.WriteString(" ")
		out.WriteString(l.BlockBody.String())
	}
	return out.String()
}

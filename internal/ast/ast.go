// Package ast defines the typed AST node variants produced by the parser
// and consumed by the name/type analysers and the IR builder.
package ast

import (
	"bytes"
	"strings"

	"github.com/lehlud/plasm/internal/lexer"
)

// Node is implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() lexer.Position
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Declaration is a top-level or class-member declaration.
type Declaration interface {
	Statement
	declarationNode()
}

// Program is the root of the AST: ordered imports then declarations.
type Program struct {
	Imports      []*ImportDecl
	Declarations []Declaration
	Errors       []string // parse-level diagnostics, kept separate from later phases
}

func (p *Program) TokenLiteral() string {
	if len(p.Imports) > 0 {
		return p.Imports[0].TokenLiteral()
	}
	if len(p.Declarations) > 0 {
		return p.Declarations[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() lexer.Position {
	if len(p.Imports) > 0 {
		return p.Imports[0].Pos()
	}
	if len(p.Declarations) > 0 {
		return p.Declarations[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, imp := range p.Imports {
		out.WriteString(imp.String())
		out.WriteString("\n")
	}
	for _, d := range p.Declarations {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	return out.String()
}

// ImportDecl is parsed and otherwise ignored (no module resolver).
type ImportDecl struct {
	Token lexer.Token
	Path  string
}

func (i *ImportDecl) statementNode()       {}
func (i *ImportDecl) declarationNode()     {}
func (i *ImportDecl) TokenLiteral() string { return i.Token.Literal }
func (i *ImportDecl) Pos() lexer.Position  { return i.Token.Pos }
func (i *ImportDecl) String() string       { return "import " + i.Path + ";" }

// Identifier is a bare name reference.
type Identifier struct {
	Token lexer.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() lexer.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Value }

// IntegerLiteral is an integer constant. Its recorded type is decided at
// type-analysis time (literal-binding rule): i64 by default, or the
// target type when it initialises a typed declaration.
type IntegerLiteral struct {
	Token lexer.Token
	Value int64
}

func (l *IntegerLiteral) expressionNode()      {}
func (l *IntegerLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *IntegerLiteral) Pos() lexer.Position  { return l.Token.Pos }
func (l *IntegerLiteral) String() string       { return l.Token.Literal }

// FloatLiteral is a floating-point constant, always typed f64.
type FloatLiteral struct {
	Token lexer.Token
	Value float64
}

func (l *FloatLiteral) expressionNode()      {}
func (l *FloatLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *FloatLiteral) Pos() lexer.Position  { return l.Token.Pos }
func (l *FloatLiteral) String() string       { return l.Token.Literal }

// StringLiteral is a quoted string constant, possibly containing
// interpolation segments (see StringInterpolation for the mixed form).
type StringLiteral struct {
	Token lexer.Token
	Value string
}

func (l *StringLiteral) expressionNode()      {}
func (l *StringLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *StringLiteral) Pos() lexer.Position  { return l.Token.Pos }
func (l *StringLiteral) String() string       { return "\"" + l.Value + "\"" }

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (l *BooleanLiteral) expressionNode()      {}
func (l *BooleanLiteral) TokenLiteral() string { return l.Token.Literal }
func (l *BooleanLiteral) Pos() lexer.Position  { return l.Token.Pos }
func (l *BooleanLiteral) String() string       { return l.Token.Literal }

// StringInterpolation represents a string literal with `${expr}`
// segments; Parts alternates literal text and embedded expressions in
// source order, with Exprs[i] corresponding to the gap after Parts[i].
type StringInterpolation struct {
	Token lexer.Token
	Parts []string
	Exprs []Expression
}

func (s *StringInterpolation) expressionNode()      {}
func (s *StringInterpolation) TokenLiteral() string { return s.Token.Literal }
func (s *StringInterpolation) Pos() lexer.Position  { return s.Token.Pos }
func (s *StringInterpolation) String() string {
	var out bytes.Buffer
	out.WriteString("\"")
	for i, part := range s.Parts {
		out.WriteString(part)
		if i < len(s.Exprs) {
			out.WriteString("${")
			out.WriteString(s.Exprs[i].String())
			out.WriteString("}")
		}
	}
	out.WriteString("\"")
	return out.String()
}

// SelfExpression is the `self` receiver reference, valid inside
// constructors, operator bodies, and methods.
type SelfExpression struct {
	Token lexer.Token
}

func (s *SelfExpression) expressionNode()      {}
func (s *SelfExpression) TokenLiteral() string { return s.Token.Literal }
func (s *SelfExpression) Pos() lexer.Position  { return s.Token.Pos }
func (s *SelfExpression) String() string       { return "self" }

// TupleExpression is a parenthesised comma list of two or more
// expressions; a single parenthesised expression is not a tuple.
type TupleExpression struct {
	Token    lexer.Token
	Elements []Expression
}

func (t *TupleExpression) expressionNode()      {}
func (t *TupleExpression) TokenLiteral() string { return t.Token.Literal }
func (t *TupleExpression) Pos() lexer.Position  { return t.Token.Pos }
func (t *TupleExpression) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

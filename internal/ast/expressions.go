package ast

import (
	"bytes"
	"strings"

	"github.com/lehlud/plasm/internal/lexer"
)

// BinaryExpression is `left op right` for arithmetic, comparison,
// equality, and logical operators.
type BinaryExpression struct {
	Token    lexer.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (b *BinaryExpression) expressionNode()      {}
func (b *BinaryExpression) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpression) Pos() lexer.Position  { return b.Token.Pos }
func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// UnaryExpression is `-x` or `!x`.
type UnaryExpression struct {
	Token    lexer.Token
	Operator string
	Operand  Expression
}

func (u *UnaryExpression) expressionNode()      {}
func (u *UnaryExpression) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpression) Pos() lexer.Position  { return u.Token.Pos }
func (u *UnaryExpression) String() string       { return "(" + u.Operator + u.Operand.String() + ")" }

// CallExpression is `callee(args...)`. Callee may be an identifier, a
// `$`-identifier, a member access, or any other expression that types
// to a function.
type CallExpression struct {
	Token    lexer.Token
	Callee   Expression
	Args     []Expression
}

func (c *CallExpression) expressionNode()      {}
func (c *CallExpression) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpression) Pos() lexer.Position  { return c.Token.Pos }
func (c *CallExpression) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// ConstructorCallExpression is a constructor call with an explicit class
// name. The parser never builds it: a class identifier used as a callee
// stays a plain CallExpression, and type analysis records the resolved
// overload in semantic.Info.ConstructorCalls instead.
type ConstructorCallExpression struct {
	Token     lexer.Token
	ClassName *Identifier
	Args      []Expression
}

func (c *ConstructorCallExpression) expressionNode()      {}
func (c *ConstructorCallExpression) TokenLiteral() string { return c.Token.Literal }
func (c *ConstructorCallExpression) Pos() lexer.Position  { return c.Token.Pos }
func (c *ConstructorCallExpression) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.ClassName.Value + "(" + strings.Join(args, ", ") + ")"
}

// MemberExpression is `target.name` or `target.$name`.
type MemberExpression struct {
	Token      lexer.Token
	Target     Expression
	Name       string
	IsProcCall bool // true when the member is a `$`-prefixed procedure name
}

func (m *MemberExpression) expressionNode()      {}
func (m *MemberExpression) TokenLiteral() string { return m.Token.Literal }
func (m *MemberExpression) Pos() lexer.Position  { return m.Token.Pos }
func (m *MemberExpression) String() string       { return m.Target.String() + "." + m.Name }

// IndexExpression is `arr[index]`.
type IndexExpression struct {
	Token lexer.Token
	Array Expression
	Index Expression
}

func (i *IndexExpression) expressionNode()      {}
func (i *IndexExpression) TokenLiteral() string { return i.Token.Literal }
func (i *IndexExpression) Pos() lexer.Position  { return i.Token.Pos }
func (i *IndexExpression) String() string {
	return i.Array.String() + "[" + i.Index.String() + "]"
}

// ArrayAllocExpression is `new T[size]`.
type ArrayAllocExpression struct {
	Token   lexer.Token
	ElemType *TypeSpec
	Size    Expression
}

func (a *ArrayAllocExpression) expressionNode()      {}
func (a *ArrayAllocExpression) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayAllocExpression) Pos() lexer.Position  { return a.Token.Pos }
func (a *ArrayAllocExpression) String() string {
	return "new " + a.ElemType.String() + "[" + a.Size.String() + "]"
}

// ArrayLiteral is `[e, e, ...]`; an empty literal types as array<any>.
type ArrayLiteral struct {
	Token    lexer.Token
	Elements []Expression
}

func (a *ArrayLiteral) expressionNode()      {}
func (a *ArrayLiteral) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayLiteral) Pos() lexer.Position  { return a.Token.Pos }
func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// CastExpression is `expr as T`, left-associative when chained.
type CastExpression struct {
	Token  lexer.Token
	Value  Expression
	Target *TypeSpec
}

func (c *CastExpression) expressionNode()      {}
func (c *CastExpression) TokenLiteral() string { return c.Token.Literal }
func (c *CastExpression) Pos() lexer.Position  { return c.Token.Pos }
func (c *CastExpression) String() string {
	return "(" + c.Value.String() + " as " + c.Target.String() + ")"
}

// TypeTestExpression is `expr is T`, result always bool.
type TypeTestExpression struct {
	Token  lexer.Token
	Value  Expression
	Target *TypeSpec
}

func (t *TypeTestExpression) expressionNode()      {}
func (t *TypeTestExpression) TokenLiteral() string { return t.Token.Literal }
func (t *TypeTestExpression) Pos() lexer.Position  { return t.Token.Pos }
func (t *TypeTestExpression) String() string {
	return "(" + t.Value.String() + " is " + t.Target.String() + ")"
}

// AssignmentExpression is `target = value`, right-associative. The
// grammar restricts Target to a bare identifier (see DESIGN.md on
// member-assignment being a known-non-functional area of the source
// language this compiler targets).
type AssignmentExpression struct {
	Token  lexer.Token
	Target *Identifier
	Value  Expression
}

func (a *AssignmentExpression) expressionNode()      {}
func (a *AssignmentExpression) TokenLiteral() string { return a.Token.Literal }
func (a *AssignmentExpression) Pos() lexer.Position  { return a.Token.Pos }
func (a *AssignmentExpression) String() string {
	return "(" + a.Target.Value + " = " + a.Value.String() + ")"
}

// ProcCallExpression is a call through a `$`-identifier: `$name(args)`.
type ProcCallExpression struct {
	Token lexer.Token
	Name  *Identifier // Value includes the leading '$'
	Args  []Expression
}

func (p *ProcCallExpression) expressionNode()      {}
func (p *ProcCallExpression) TokenLiteral() string { return p.Token.Literal }
func (p *ProcCallExpression) Pos() lexer.Position  { return p.Token.Pos }
func (p *ProcCallExpression) String() string {
	var out bytes.Buffer
	out.WriteString(p.Name.Value)
	out.WriteString("(")
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.String()
	}
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")
	return out.String()
}

package ast

import (
	"bytes"
	"strings"

	"github.com/lehlud/plasm/internal/lexer"
)

// Block is a `{ stmt... }` sequence; it opens a new lexical scope.
type Block struct {
	Token      lexer.Token
	Statements []Statement
}

func (b *Block) statementNode()       {}
func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) Pos() lexer.Position  { return b.Token.Pos }
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range b.Statements {
		out.WriteString(s.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

// VarBinding is one `name (= expr)?` entry in a `final`/`let` statement.
// It implements Node (via its Name) so name analysis can record it as a
// declaration site distinct from its enclosing VarDecl.
type VarBinding struct {
	Name *Identifier
	Init Expression // may be nil
}

func (b *VarBinding) TokenLiteral() string { return b.Name.TokenLiteral() }
func (b *VarBinding) Pos() lexer.Position  { return b.Name.Pos() }
func (b *VarBinding) String() string {
	if b.Init != nil {
		return b.Name.Value + " = " + b.Init.String()
	}
	return b.Name.Value
}

// VarDecl is a local variable declaration: `final`/`let`, an optional
// leading type shared by all bindings, then one or more comma-separated
// bindings.
type VarDecl struct {
	Token    lexer.Token
	IsFinal  bool
	Type     *TypeSpec // nil when every binding must infer its type
	Bindings []*VarBinding
}

func (v *VarDecl) statementNode()       {}
func (v *VarDecl) TokenLiteral() string { return v.Token.Literal }
func (v *VarDecl) Pos() lexer.Position  { return v.Token.Pos }
func (v *VarDecl) String() string {
	var out bytes.Buffer
	if v.IsFinal {
		out.WriteString("final ")
	} else {
		out.WriteString("let ")
	}
	if v.Type != nil {
		out.WriteString(v.Type.String())
		out.WriteString(" ")
	}
	parts := make([]string, len(v.Bindings))
	for i, b := range v.Bindings {
		if b.Init != nil {
			parts[i] = b.Name.Value + " = " + b.Init.String()
		} else {
			parts[i] = b.Name.Value
		}
	}
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString(";")
	return out.String()
}

// IfStatement is `if (cond) then [else alt]`; parentheses around cond
// are optional in the grammar but always rendered here.
type IfStatement struct {
	Token     lexer.Token
	Condition Expression
	Then      Statement
	Else      Statement // may be nil
}

func (i *IfStatement) statementNode()       {}
func (i *IfStatement) TokenLiteral() string { return i.Token.Literal }
func (i *IfStatement) Pos() lexer.Position  { return i.Token.Pos }
func (i *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(i.Condition.String())
	out.WriteString(") ")
	out.WriteString(i.Then.String())
	if i.Else != nil {
		out.WriteString(" else ")
		out.WriteString(i.Else.String())
	}
	return out.String()
}

// WhileStatement is `while (cond) body`.
type WhileStatement struct {
	Token     lexer.Token
	Condition Expression
	Body      Statement
}

func (w *WhileStatement) statementNode()       {}
func (w *WhileStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStatement) Pos() lexer.Position  { return w.Token.Pos }
func (w *WhileStatement) String() string {
	return "while (" + w.Condition.String() + ") " + w.Body.String()
}

// ReturnStatement is `return [expr];`; Value is nil for a bare return,
// valid only when the enclosing function's return type is void.
type ReturnStatement struct {
	Token lexer.Token
	Value Expression
}

func (r *ReturnStatement) statementNode()       {}
func (r *ReturnStatement) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStatement) Pos() lexer.Position  { return r.Token.Pos }
func (r *ReturnStatement) String() string {
	if r.Value == nil {
		return "return;"
	}
	return "return " + r.Value.String() + ";"
}

// ExpressionStatement wraps an expression used for its side effect.
type ExpressionStatement struct {
	Token      lexer.Token
	Expression Expression
}

func (e *ExpressionStatement) statementNode()       {}
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExpressionStatement) Pos() lexer.Position  { return e.Token.Pos }
func (e *ExpressionStatement) String() string       { return e.Expression.String() + ";" }

package ast

import (
	"bytes"
	"strings"

	"github.com/lehlud/plasm/internal/lexer"
)

// Visibility is the `pub`/`prot` modifier on a top-level or member
// declaration. The zero value is package-private (no modifier written).
type Visibility int

const (
	VisibilityPrivate Visibility = iota
	VisibilityProtected
	VisibilityPublic
)

func (v Visibility) String() string {
	switch v {
	case VisibilityProtected:
		return "prot"
	case VisibilityPublic:
		return "pub"
	default:
		return ""
	}
}

// Param is a single `Type name` entry in a parameter list.
type Param struct {
	Token lexer.Token
	Name  string
	Type  *TypeSpec
}

func (p *Param) TokenLiteral() string { return p.Token.Literal }
func (p *Param) Pos() lexer.Position  { return p.Token.Pos }
func (p *Param) String() string       { return p.Type.String() + " " + p.Name }

// ConstDecl: `const name = expr;` or `const name: T = expr;` (the
// grammar allows an optional type annotation even though spec.md's
// literal examples omit it).
type ConstDecl struct {
	Token      lexer.Token
	Visibility Visibility
	Name       *Identifier
	Type       *TypeSpec // may be nil; inferred from Value
	Value      Expression
}

func (c *ConstDecl) statementNode()       {}
func (c *ConstDecl) declarationNode()     {}
func (c *ConstDecl) TokenLiteral() string { return c.Token.Literal }
func (c *ConstDecl) Pos() lexer.Position  { return c.Token.Pos }
func (c *ConstDecl) String() string {
	var out bytes.Buffer
	out.WriteString("const ")
	out.WriteString(c.Name.Value)
	out.WriteString(" = ")
	out.WriteString(c.Value.String())
	out.WriteString(";")
	return out.String()
}

// FunctionDecl is `fn name(params) returnType block` at top level, or a
// nested method/operator-free class method of the same shape.
type FunctionDecl struct {
	Token      lexer.Token
	Visibility Visibility
	IsStatic   bool
	Name       *Identifier
	Params     []*Param
	ReturnType *TypeSpec
	Body       *Block
}

func (f *FunctionDecl) statementNode()       {}
func (f *FunctionDecl) declarationNode()     {}
func (f *FunctionDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDecl) Pos() lexer.Position  { return f.Token.Pos }
func (f *FunctionDecl) String() string {
	var out bytes.Buffer
	out.WriteString("fn ")
	out.WriteString(f.Name.Value)
	out.WriteString("(")
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") ")
	out.WriteString(f.ReturnType.String())
	out.WriteString(" ")
	out.WriteString(f.Body.String())
	return out.String()
}

// ProcedureDecl is `proc $name(params) returnType block`; procedures
// are called through their `$`-prefixed identifier.
type ProcedureDecl struct {
	Token      lexer.Token
	Visibility Visibility
	IsStatic   bool
	Name       *Identifier // Value includes the leading '$'
	Params     []*Param
	ReturnType *TypeSpec // the grammar requires a returnType for proc just as for fn
	Body       *Block
}

func (p *ProcedureDecl) statementNode()       {}
func (p *ProcedureDecl) declarationNode()     {}
func (p *ProcedureDecl) TokenLiteral() string { return p.Token.Literal }
func (p *ProcedureDecl) Pos() lexer.Position  { return p.Token.Pos }
func (p *ProcedureDecl) String() string {
	var out bytes.Buffer
	out.WriteString("proc ")
	out.WriteString(p.Name.Value)
	out.WriteString("(")
	params := make([]string, len(p.Params))
	for i, pr := range p.Params {
		params[i] = pr.String()
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") ")
	out.WriteString(p.ReturnType.String())
	out.WriteString(" ")
	out.WriteString(p.Body.String())
	return out.String()
}

package ast

import (
	"bytes"
	"strings"

	"github.com/lehlud/plasm/internal/lexer"
)

// OperatorSymbol is the overloadable operator a class may define via
// `op(<sym>)(param) returnType block`.
type OperatorSymbol string

const (
	OpAdd OperatorSymbol = "+"
	OpSub OperatorSymbol = "-"
	OpMul OperatorSymbol = "*"
	OpDiv OperatorSymbol = "/"
	OpMod OperatorSymbol = "%"
	OpEq  OperatorSymbol = "=="
	OpNeq OperatorSymbol = "!="
	OpLt  OperatorSymbol = "<"
	OpGt  OperatorSymbol = ">"
	OpLe  OperatorSymbol = "<="
	OpGe  OperatorSymbol = ">="
	OpAnd OperatorSymbol = "&&"
	OpOr  OperatorSymbol = "||"
)

// Mangle maps an operator symbol to the stable ABI name fragment used by
// the IR builder to name `<class>_op_<m>`; the WAT generator only sees
// the resulting function names.
// This table must never change shape once published.
var Mangle = map[OperatorSymbol]string{
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div", OpMod: "mod",
	OpEq: "eq", OpNeq: "neq", OpLt: "lt", OpGt: "gt", OpLe: "lte", OpGe: "gte",
	OpAnd: "and", OpOr: "or",
}

// FieldDecl is `final T name;` (immutable) or `let T? name (= expr)?;`
// inside a class body.
type FieldDecl struct {
	Token      lexer.Token
	Visibility Visibility
	IsFinal    bool
	IsStatic   bool
	Name       *Identifier
	Type       *TypeSpec // nil only for `let` with no annotation
	Init       Expression
}

func (f *FieldDecl) statementNode()       {}
func (f *FieldDecl) declarationNode()     {}
func (f *FieldDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FieldDecl) Pos() lexer.Position  { return f.Token.Pos }
func (f *FieldDecl) String() string {
	var out bytes.Buffer
	if f.IsFinal {
		out.WriteString("final ")
	} else {
		out.WriteString("let ")
	}
	if f.Type != nil {
		out.WriteString(f.Type.String())
		out.WriteString(" ")
	}
	out.WriteString(f.Name.Value)
	if f.Init != nil {
		out.WriteString(" = ")
		out.WriteString(f.Init.String())
	}
	out.WriteString(";")
	return out.String()
}

// ConstructorDecl is `constructor(params) block`. There may be several
// per class, distinguished by arity/parameter types at overload
// resolution time.
type ConstructorDecl struct {
	Token  lexer.Token
	Params []*Param
	Body   *Block
}

func (c *ConstructorDecl) statementNode()       {}
func (c *ConstructorDecl) declarationNode()     {}
func (c *ConstructorDecl) TokenLiteral() string { return c.Token.Literal }
func (c *ConstructorDecl) Pos() lexer.Position  { return c.Token.Pos }
func (c *ConstructorDecl) String() string {
	var out bytes.Buffer
	out.WriteString("constructor(")
	params := make([]string, len(c.Params))
	for i, p := range c.Params {
		params[i] = p.String()
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") ")
	out.WriteString(c.Body.String())
	return out.String()
}

// OperatorDecl is `op(<sym>)(param) returnType block`; the receiver is
// implicit (`self`), so Param holds only the right-hand operand.
type OperatorDecl struct {
	Token      lexer.Token
	Symbol     OperatorSymbol
	Param      *Param
	ReturnType *TypeSpec
	Body       *Block
}

func (o *OperatorDecl) statementNode()       {}
func (o *OperatorDecl) declarationNode()     {}
func (o *OperatorDecl) TokenLiteral() string { return o.Token.Literal }
func (o *OperatorDecl) Pos() lexer.Position  { return o.Token.Pos }
func (o *OperatorDecl) String() string {
	var out bytes.Buffer
	out.WriteString("op(")
	out.WriteString(string(o.Symbol))
	out.WriteString(")(")
	out.WriteString(o.Param.String())
	out.WriteString(") ")
	out.WriteString(o.ReturnType.String())
	out.WriteString(" ")
	out.WriteString(o.Body.String())
	return out.String()
}

// ClassDecl declares fields, constructors, operator overloads, and
// nested function/procedure methods.
type ClassDecl struct {
	Token        lexer.Token
	Visibility   Visibility
	Name         *Identifier
	Fields       []*FieldDecl
	Constructors []*ConstructorDecl
	Operators    []*OperatorDecl
	Methods      []Declaration // *FunctionDecl or *ProcedureDecl
}

func (c *ClassDecl) statementNode()       {}
func (c *ClassDecl) declarationNode()     {}
func (c *ClassDecl) TokenLiteral() string { return c.Token.Literal }
func (c *ClassDecl) Pos() lexer.Position  { return c.Token.Pos }
func (c *ClassDecl) String() string {
	var out bytes.Buffer
	out.WriteString("class ")
	out.WriteString(c.Name.Value)
	out.WriteString(" {\n")
	for _, f := range c.Fields {
		out.WriteString("  ")
		out.WriteString(f.String())
		out.WriteString("\n")
	}
	for _, ctor := range c.Constructors {
		out.WriteString("  ")
		out.WriteString(ctor.String())
		out.WriteString("\n")
	}
	for _, op := range c.Operators {
		out.WriteString("  ")
		out.WriteString(op.String())
		out.WriteString("\n")
	}
	for _, m := range c.Methods {
		out.WriteString("  ")
		out.WriteString(m.String())
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

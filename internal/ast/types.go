package ast

import (
	"strings"

	"github.com/lehlud/plasm/internal/lexer"
)

// TypeSpecKind discriminates the TypeSpec sum.
type TypeSpecKind int

const (
	TypeSimple TypeSpecKind = iota
	TypeGeneric
	TypeFunction
	TypeTuple
	TypeVoid
	TypeAny
)

// TypeSpec is the recursive type-syntax node: a primitive/user name, a
// generic application `N<T...>`, a function type `(T...) => T`, a tuple,
// `void`, or `any`.
type TypeSpec struct {
	Token lexer.Token
	Kind  TypeSpecKind

	Name string // TypeSimple: primitive keyword or user identifier

	Generic   string      // TypeGeneric: the outer name, e.g. "array"
	TypeArgs  []*TypeSpec // TypeGeneric: N<T...>

	Params  []*TypeSpec // TypeFunction/TypeTuple
	Result  *TypeSpec   // TypeFunction
}

func (t *TypeSpec) TokenLiteral() string { return t.Token.Literal }
func (t *TypeSpec) Pos() lexer.Position  { return t.Token.Pos }

func (t *TypeSpec) String() string {
	switch t.Kind {
	case TypeSimple:
		return t.Name
	case TypeGeneric:
		args := make([]string, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			args[i] = a.String()
		}
		return t.Generic + "<" + strings.Join(args, ", ") + ">"
	case TypeFunction:
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = p.String()
		}
		return "(" + strings.Join(params, ", ") + ") => " + t.Result.String()
	case TypeTuple:
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = p.String()
		}
		return "(" + strings.Join(params, ", ") + ")"
	case TypeVoid:
		return "void"
	case TypeAny:
		return "any"
	default:
		return "?"
	}
}

// ArrayType is a convenience constructor for `array<elem>`.
func ArrayType(tok lexer.Token, elem *TypeSpec) *TypeSpec {
	return &TypeSpec{Token: tok, Kind: TypeGeneric, Generic: "array", TypeArgs: []*TypeSpec{elem}}
}

// Package semantic implements plasm's two-pass name analysis followed
// by type analysis: resolving every identifier to a declaration, then
// assigning a types.PlasmType to every expression and checking the
// statement-level rules from the language's type system.
package semantic

import (
	"github.com/lehlud/plasm/internal/ast"
	"github.com/lehlud/plasm/internal/symbols"
	"github.com/lehlud/plasm/internal/types"
)

// FuncInfo is the resolved signature of a top-level function/procedure
// or a class method.
type FuncInfo struct {
	Name   string
	Params []*types.PlasmType
	Result *types.PlasmType
	Decl   ast.Declaration
}

// FieldInfo is a resolved class field.
type FieldInfo struct {
	Name    string
	Type    *types.PlasmType
	IsFinal bool
	Init    ast.Expression
	Decl    *ast.FieldDecl
}

// ConstructorInfo is one overload of a class's constructors.
type ConstructorInfo struct {
	Params []*types.PlasmType
	Decl   *ast.ConstructorDecl
}

// OperatorInfo is one `op(<sym>)` overload on a class.
type OperatorInfo struct {
	Symbol     ast.OperatorSymbol
	ParamType  *types.PlasmType // nil for a would-be unary form; plasm operators are always binary (self, rhs)
	ReturnType *types.PlasmType
	Decl       *ast.OperatorDecl
}

// ClassInfo is the resolved shape of a class declaration: its fields,
// constructor overloads, operator overloads, and methods.
type ClassInfo struct {
	Name         string
	Fields       []*FieldInfo
	FieldIndex   map[string]int
	Constructors []*ConstructorInfo
	Operators    map[ast.OperatorSymbol][]*OperatorInfo
	Methods      map[string]*FuncInfo
	Decl         *ast.ClassDecl
}

func (c *ClassInfo) Field(name string) (*FieldInfo, bool) {
	i, ok := c.FieldIndex[name]
	if !ok {
		return nil, false
	}
	return c.Fields[i], true
}

// ConstructorCall records which constructor overload a call site
// resolved to, once the type analyser proves the callee names a class.
// Since the parser never produces ast.ConstructorCallExpression (no
// distinct surface syntax exists for it), constructor
// calls stay plain *ast.CallExpression nodes and this table is how the
// IR builder later tells a constructor call apart from a function call.
type ConstructorCall struct {
	Class       *ClassInfo
	Constructor *ConstructorInfo
}

// OperatorCall records which operator overload a binary expression
// resolved to, when its left operand types to a class.
type OperatorCall struct {
	Class    *ClassInfo
	Operator *OperatorInfo
}

// Info is the semantic analysis result: every side table the IR
// builder needs, keyed by AST node identity (nodes are built once by
// the parser and never copied, so pointer identity is a stable key).
type Info struct {
	ExprTypes map[ast.Expression]*types.PlasmType

	Classes    map[string]*ClassInfo
	Functions  map[string]*FuncInfo
	Procedures map[string]*FuncInfo
	Constants  map[string]*types.PlasmType

	ConstructorCalls map[*ast.CallExpression]*ConstructorCall
	OperatorCalls    map[*ast.BinaryExpression]*OperatorCall

	// Lambdas collects every lambda expression in source-visitation
	// order; the IR builder lifts Lambdas[i] to a function named
	// "__lambda_<i>".
	Lambdas []*ast.LambdaExpression

	// Resolved maps an identifier reference (not a declaration site) to
	// the symbol it names, filled in by name analysis.
	Resolved map[*ast.Identifier]*symbols.Symbol

	// SymbolTypes maps a resolved symbol to its type, filled in
	// progressively as type analysis walks past each declaration.
	SymbolTypes map[*symbols.Symbol]*types.PlasmType

	// {Binding,Param,Const}Symbol let type analysis recover the exact
	// *symbols.Symbol a declaration site created during name analysis,
	// since ast.VarBinding/ast.Param/ast.ConstDecl aren't themselves
	// usable as scope.Define's declaration argument for this purpose
	// (VarDecl covers several bindings at once).
	BindingSymbol map[*ast.VarBinding]*symbols.Symbol
	ParamSymbol   map[*ast.Param]*symbols.Symbol
	ConstSymbol   map[*ast.ConstDecl]*symbols.Symbol
}

func newInfo() *Info {
	return &Info{
		ExprTypes:        make(map[ast.Expression]*types.PlasmType),
		Classes:          make(map[string]*ClassInfo),
		Functions:        make(map[string]*FuncInfo),
		Procedures:       make(map[string]*FuncInfo),
		Constants:        make(map[string]*types.PlasmType),
		ConstructorCalls: make(map[*ast.CallExpression]*ConstructorCall),
		OperatorCalls:    make(map[*ast.BinaryExpression]*OperatorCall),
		Resolved:         make(map[*ast.Identifier]*symbols.Symbol),
		SymbolTypes:      make(map[*symbols.Symbol]*types.PlasmType),
		BindingSymbol:    make(map[*ast.VarBinding]*symbols.Symbol),
		ParamSymbol:      make(map[*ast.Param]*symbols.Symbol),
		ConstSymbol:      make(map[*ast.ConstDecl]*symbols.Symbol),
	}
}

// TypeOf returns the type recorded for expr, or nil if it was never
// visited (e.g. analysis halted early on an earlier diagnostic).
func (info *Info) TypeOf(expr ast.Expression) *types.PlasmType {
	return info.ExprTypes[expr]
}

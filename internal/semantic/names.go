package semantic

import (
	"github.com/lehlud/plasm/internal/ast"
	"github.com/lehlud/plasm/internal/diagnostics"
	"github.com/lehlud/plasm/internal/lexer"
	"github.com/lehlud/plasm/internal/symbols"
	"github.com/lehlud/plasm/internal/types"
)

// analysis carries the state threaded through both the name-resolution
// and type-analysis passes: the accumulated Info side tables, the
// diagnostics collected so far, and which phase tag new diagnostics
// should carry.
type analysis struct {
	info   *Info
	diags  []diagnostics.Diagnostic
	phase  diagnostics.Phase
	global *symbols.Scope

	currentClass *ClassInfo     // non-nil inside a constructor/operator/method body
	currentFunc  *FuncInfo      // non-nil inside a fn/proc/method body, for return-type checks
	loopDepth    int
}

func (a *analysis) errorf(pos lexer.Position, format string, args ...any) {
	a.diags = append(a.diags, diagnostics.New(a.phase, pos, format, args...))
}

// AnalyzeNames runs name resolution over prog: it registers every
// top-level declaration and class member signature, then walks every
// function/procedure/constructor/operator/method body resolving each
// identifier reference to its declaring symbol.
func AnalyzeNames(prog *ast.Program) (*Info, []diagnostics.Diagnostic) {
	a := &analysis{info: newInfo(), phase: diagnostics.Name, global: symbols.NewScope(nil)}

	a.registerTopLevel(prog)
	if len(a.diags) > 0 {
		return a.info, a.diags
	}

	a.resolveSignatures(prog)
	if len(a.diags) > 0 {
		return a.info, a.diags
	}

	a.resolveBodies(prog)
	return a.info, a.diags
}

// registerTopLevel defines every top-level name (consts, functions,
// procedures, classes) in the global scope and seeds Info.Classes with
// name-only stubs so field/param types can reference any class
// regardless of declaration order.
func (a *analysis) registerTopLevel(prog *ast.Program) {
	for _, decl := range prog.Declarations {
		switch d := decl.(type) {
		case *ast.ConstDecl:
			sym, ok := a.global.Define(d.Name.Value, d, symbols.KindConstant)
			if !ok {
				a.errorf(d.Pos(), "'%s' is already declared", d.Name.Value)
			} else {
				a.info.ConstSymbol[d] = sym
			}
		case *ast.FunctionDecl:
			if _, ok := a.global.Define(d.Name.Value, d, symbols.KindFunction); !ok {
				a.errorf(d.Pos(), "'%s' is already declared", d.Name.Value)
			}
		case *ast.ProcedureDecl:
			if _, ok := a.global.Define(d.Name.Value, d, symbols.KindProcedure); !ok {
				a.errorf(d.Pos(), "'%s' is already declared", d.Name.Value)
			}
		case *ast.ClassDecl:
			if _, ok := a.global.Define(d.Name.Value, d, symbols.KindClass); !ok {
				a.errorf(d.Pos(), "'%s' is already declared", d.Name.Value)
				continue
			}
			if _, dup := a.info.Classes[d.Name.Value]; dup {
				continue
			}
			a.info.Classes[d.Name.Value] = &ClassInfo{Name: d.Name.Value, FieldIndex: map[string]int{}, Decl: d}
		}
	}
}

// resolveSignatures fills in every class's full member signatures and
// every top-level function/procedure's signature, now that every class
// name is known.
func (a *analysis) resolveSignatures(prog *ast.Program) {
	for _, decl := range prog.Declarations {
		if cd, ok := decl.(*ast.ClassDecl); ok {
			a.info.Classes[cd.Name.Value] = a.buildClassInfo(cd)
		}
	}
	for _, decl := range prog.Declarations {
		switch d := decl.(type) {
		case *ast.FunctionDecl:
			a.info.Functions[d.Name.Value] = a.resolveFuncSignature(d)
		case *ast.ProcedureDecl:
			a.info.Procedures[d.Name.Value] = a.resolveFuncSignature(d)
		}
	}
}

// resolveBodies walks every executable body, resolving identifier
// references against a scope chain rooted at the global scope.
func (a *analysis) resolveBodies(prog *ast.Program) {
	for _, decl := range prog.Declarations {
		switch d := decl.(type) {
		case *ast.ConstDecl:
			a.resolveExpr(symbols.NewScope(a.global), d.Value)
		case *ast.FunctionDecl:
			a.resolveFunctionLike(d.Params, d.Body, a.info.Functions[d.Name.Value])
		case *ast.ProcedureDecl:
			a.resolveFunctionLike(d.Params, d.Body, a.info.Procedures[d.Name.Value])
		case *ast.ClassDecl:
			a.resolveClassBodies(d)
		}
	}
}

func (a *analysis) resolveClassBodies(decl *ast.ClassDecl) {
	class := a.info.Classes[decl.Name.Value]
	prevClass := a.currentClass
	a.currentClass = class
	defer func() { a.currentClass = prevClass }()

	for _, f := range decl.Fields {
		if f.Init != nil {
			a.resolveExpr(symbols.NewScope(a.global), f.Init)
		}
	}
	for i, c := range decl.Constructors {
		scope := symbols.NewScope(a.global)
		a.defineParams(scope, c.Params)
		ctorFunc := &FuncInfo{Name: "constructor", Params: class.Constructors[i].Params, Result: nil}
		a.resolveFunctionScope(scope, c.Body, ctorFunc)
	}
	for _, op := range decl.Operators {
		scope := symbols.NewScope(a.global)
		if op.Param != nil {
			if sym, ok := scope.Define(op.Param.Name, op.Param, symbols.KindParameter); ok {
				a.info.ParamSymbol[op.Param] = sym
			}
		}
		opFunc := &FuncInfo{Name: "op" + string(op.Symbol), Result: operatorInfoFor(class, op).ReturnType}
		a.resolveFunctionScope(scope, op.Body, opFunc)
	}
	for _, m := range decl.Methods {
		switch md := m.(type) {
		case *ast.FunctionDecl:
			a.resolveFunctionLike(md.Params, md.Body, class.Methods[md.Name.Value])
		case *ast.ProcedureDecl:
			a.resolveFunctionLike(md.Params, md.Body, class.Methods[md.Name.Value])
		}
	}
}

// operatorInfoFor finds the OperatorInfo buildClassInfo built for op,
// matched by declaration identity (a class may overload the same
// symbol for several parameter types, so the symbol alone isn't enough).
func operatorInfoFor(class *ClassInfo, op *ast.OperatorDecl) *OperatorInfo {
	for _, oi := range class.Operators[op.Symbol] {
		if oi.Decl == op {
			return oi
		}
	}
	return &OperatorInfo{Symbol: op.Symbol, ReturnType: types.AnyType}
}

func (a *analysis) resolveFunctionLike(params []*ast.Param, body *ast.Block, fn *FuncInfo) {
	scope := symbols.NewScope(a.global)
	a.defineParams(scope, params)
	a.resolveFunctionScope(scope, body, fn)
}

func (a *analysis) defineParams(scope *symbols.Scope, params []*ast.Param) {
	for _, p := range params {
		sym, ok := scope.Define(p.Name, p, symbols.KindParameter)
		if !ok {
			a.errorf(p.Pos(), "parameter '%s' is already declared", p.Name)
			continue
		}
		a.info.ParamSymbol[p] = sym
	}
}

func (a *analysis) resolveFunctionScope(scope *symbols.Scope, body *ast.Block, fn *FuncInfo) {
	prevFunc := a.currentFunc
	a.currentFunc = fn
	defer func() { a.currentFunc = prevFunc }()
	a.resolveBlock(scope, body)
}

func (a *analysis) resolveBlock(parent *symbols.Scope, block *ast.Block) {
	scope := symbols.NewScope(parent)
	for _, stmt := range block.Statements {
		a.resolveStatement(scope, stmt)
	}
}

func (a *analysis) resolveStatement(scope *symbols.Scope, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		for _, b := range s.Bindings {
			if b.Init != nil {
				a.resolveExpr(scope, b.Init)
			}
		}
		for _, b := range s.Bindings {
			sym, ok := scope.Define(b.Name.Value, b, symbols.KindVariable)
			if !ok {
				a.errorf(b.Name.Pos(), "'%s' is already declared in this scope", b.Name.Value)
				continue
			}
			a.info.BindingSymbol[b] = sym
		}
	case *ast.IfStatement:
		a.resolveExpr(scope, s.Condition)
		a.resolveStatement(scope, s.Then)
		if s.Else != nil {
			a.resolveStatement(scope, s.Else)
		}
	case *ast.WhileStatement:
		a.resolveExpr(scope, s.Condition)
		a.loopDepth++
		a.resolveStatement(scope, s.Body)
		a.loopDepth--
	case *ast.ReturnStatement:
		if s.Value != nil {
			a.resolveExpr(scope, s.Value)
		}
	case *ast.ExpressionStatement:
		a.resolveExpr(scope, s.Expression)
	case *ast.Block:
		a.resolveBlock(scope, s)
	}
}

// resolveExpr walks expr, resolving every bare Identifier reference
// against scope and recording the match in info.Resolved. It does not
// compute types; that is type analysis's job.
func (a *analysis) resolveExpr(scope *symbols.Scope, expr ast.Expression) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		sym, ok := scope.Resolve(e.Value)
		if !ok {
			a.errorf(e.Pos(), "undefined name '%s'", e.Value)
			return
		}
		a.info.Resolved[e] = sym
	case *ast.BinaryExpression:
		a.resolveExpr(scope, e.Left)
		a.resolveExpr(scope, e.Right)
	case *ast.UnaryExpression:
		a.resolveExpr(scope, e.Operand)
	case *ast.CallExpression:
		a.resolveExpr(scope, e.Callee)
		for _, arg := range e.Args {
			a.resolveExpr(scope, arg)
		}
	case *ast.ConstructorCallExpression:
		for _, arg := range e.Args {
			a.resolveExpr(scope, arg)
		}
	case *ast.ProcCallExpression:
		if sym, ok := scope.Resolve(e.Name.Value); ok {
			a.info.Resolved[e.Name] = sym
		} else {
			a.errorf(e.Name.Pos(), "undefined procedure '%s'", e.Name.Value)
		}
		for _, arg := range e.Args {
			a.resolveExpr(scope, arg)
		}
	case *ast.MemberExpression:
		a.resolveExpr(scope, e.Target)
	case *ast.IndexExpression:
		a.resolveExpr(scope, e.Array)
		a.resolveExpr(scope, e.Index)
	case *ast.ArrayAllocExpression:
		a.resolveExpr(scope, e.Size)
	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			a.resolveExpr(scope, el)
		}
	case *ast.CastExpression:
		a.resolveExpr(scope, e.Value)
	case *ast.TypeTestExpression:
		a.resolveExpr(scope, e.Value)
	case *ast.AssignmentExpression:
		sym, ok := scope.Resolve(e.Target.Value)
		if !ok {
			a.errorf(e.Target.Pos(), "undefined name '%s'", e.Target.Value)
		} else {
			a.info.Resolved[e.Target] = sym
		}
		a.resolveExpr(scope, e.Value)
	case *ast.StringInterpolation:
		for _, sub := range e.Exprs {
			a.resolveExpr(scope, sub)
		}
	case *ast.LambdaExpression:
		a.info.Lambdas = append(a.info.Lambdas, e)
		inner := symbols.NewScope(a.global) // no closure capture: lambdas see only their own params
		a.defineParams(inner, e.Params)
		if e.IsShorthand {
			a.resolveExpr(inner, e.ExprBody)
		} else {
			a.resolveBlock(inner, e.BlockBody)
		}
	case *ast.TupleExpression:
		for _, el := range e.Elements {
			a.resolveExpr(scope, el)
		}
	// Literals and SelfExpression carry no nested names to resolve.
	case *ast.IntegerLiteral, *ast.FloatLiteral, *ast.StringLiteral, *ast.BooleanLiteral, *ast.SelfExpression:
	}
}

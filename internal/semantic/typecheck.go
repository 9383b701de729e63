package semantic

import (
	"github.com/lehlud/plasm/internal/ast"
	"github.com/lehlud/plasm/internal/diagnostics"
	"github.com/lehlud/plasm/internal/lexer"
	"github.com/lehlud/plasm/internal/symbols"
	"github.com/lehlud/plasm/internal/types"
)

// AnalyzeTypes runs type analysis over prog using the side tables name
// analysis already filled into info (Classes, Functions, Procedures,
// Resolved, {Binding,Param,Const}Symbol). It must only be called once
// AnalyzeNames reports zero diagnostics, matching the pipeline rule
// that a phase with diagnostics halts before the next one runs.
func AnalyzeTypes(prog *ast.Program, info *Info) []diagnostics.Diagnostic {
	a := &analysis{info: info, phase: diagnostics.Type}

	a.typeConsts(prog)
	if len(a.diags) > 0 {
		return a.diags
	}

	for _, decl := range prog.Declarations {
		switch d := decl.(type) {
		case *ast.FunctionDecl:
			a.typeCheckFunctionLike(d.Params, d.Body, a.info.Functions[d.Name.Value])
		case *ast.ProcedureDecl:
			a.typeCheckFunctionLike(d.Params, d.Body, a.info.Procedures[d.Name.Value])
		case *ast.ClassDecl:
			a.typeCheckClass(d)
		}
	}
	return a.diags
}

func (a *analysis) typeConsts(prog *ast.Program) {
	for _, decl := range prog.Declarations {
		d, ok := decl.(*ast.ConstDecl)
		if !ok {
			continue
		}
		var declared *types.PlasmType
		if d.Type != nil {
			t, err := resolveTypeSpec(d.Type, a.info.Classes)
			if err != nil {
				a.errorf(d.Pos(), "%s", err)
			} else {
				declared = t
			}
		}
		valType := a.typeExprExpecting(d.Value, declared)
		finalType := valType
		if declared != nil {
			if !types.IsCompatibleWith(valType, declared) {
				a.errorf(d.Pos(), "cannot initialize const '%s' of type %s with a value of type %s",
					d.Name.Value, declared, valType)
			}
			finalType = declared
		}
		a.info.Constants[d.Name.Value] = finalType
		if sym, ok := a.info.ConstSymbol[d]; ok {
			a.info.SymbolTypes[sym] = finalType
		}
	}
}

func (a *analysis) typeCheckFunctionLike(params []*ast.Param, body *ast.Block, fn *FuncInfo) {
	a.bindParamTypes(params)
	prevFunc := a.currentFunc
	a.currentFunc = fn
	defer func() { a.currentFunc = prevFunc }()
	a.typeCheckBlock(body)
}

func (a *analysis) bindParamTypes(params []*ast.Param) {
	for _, p := range params {
		sym, ok := a.info.ParamSymbol[p]
		if !ok {
			continue
		}
		t, err := resolveTypeSpec(p.Type, a.info.Classes)
		if err != nil {
			t = types.AnyType
		}
		a.info.SymbolTypes[sym] = t
	}
}

func (a *analysis) typeCheckClass(decl *ast.ClassDecl) {
	class := a.info.Classes[decl.Name.Value]
	prevClass := a.currentClass
	a.currentClass = class
	defer func() { a.currentClass = prevClass }()

	for _, f := range class.Fields {
		switch {
		case f.Init != nil:
			t := a.typeExprExpecting(f.Init, f.Type)
			if f.Type == nil {
				f.Type = t
			} else if !types.IsCompatibleWith(t, f.Type) {
				a.errorf(f.Init.Pos(), "cannot initialize field '%s' of type %s with a value of type %s",
					f.Name, f.Type, t)
			}
		case f.Type == nil:
			a.errorf(f.Decl.Pos(), "field '%s' needs an explicit type or an initializer", f.Name)
			f.Type = types.AnyType
		}
	}

	for i, c := range decl.Constructors {
		ctor := class.Constructors[i]
		a.bindParamTypes(c.Params)
		prevFunc := a.currentFunc
		a.currentFunc = &FuncInfo{Name: "constructor", Params: ctor.Params, Result: types.VoidType}
		a.typeCheckBlock(c.Body)
		a.currentFunc = prevFunc
	}

	for _, op := range decl.Operators {
		opInfo := operatorInfoFor(class, op)
		if op.Param != nil {
			if sym, ok := a.info.ParamSymbol[op.Param]; ok {
				a.info.SymbolTypes[sym] = opInfo.ParamType
			}
		}
		prevFunc := a.currentFunc
		a.currentFunc = &FuncInfo{Name: "op" + string(op.Symbol), Result: opInfo.ReturnType}
		a.typeCheckBlock(op.Body)
		a.currentFunc = prevFunc
	}

	for _, m := range decl.Methods {
		switch md := m.(type) {
		case *ast.FunctionDecl:
			a.typeCheckFunctionLike(md.Params, md.Body, class.Methods[md.Name.Value])
		case *ast.ProcedureDecl:
			a.typeCheckFunctionLike(md.Params, md.Body, class.Methods[md.Name.Value])
		}
	}
}

func (a *analysis) typeCheckBlock(block *ast.Block) {
	for _, stmt := range block.Statements {
		a.typeCheckStatement(stmt)
	}
}

func (a *analysis) typeCheckStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		a.typeCheckVarDecl(s)
	case *ast.IfStatement:
		condType := a.typeExpr(s.Condition)
		if !condType.IsBool() {
			a.errorf(s.Condition.Pos(), "if condition must be bool, got %s", condType)
		}
		a.typeCheckStatement(s.Then)
		if s.Else != nil {
			a.typeCheckStatement(s.Else)
		}
	case *ast.WhileStatement:
		condType := a.typeExpr(s.Condition)
		if !condType.IsBool() {
			a.errorf(s.Condition.Pos(), "while condition must be bool, got %s", condType)
		}
		a.loopDepth++
		a.typeCheckStatement(s.Body)
		a.loopDepth--
	case *ast.ReturnStatement:
		a.typeCheckReturn(s)
	case *ast.ExpressionStatement:
		a.typeExpr(s.Expression)
	case *ast.Block:
		a.typeCheckBlock(s)
	}
}

func (a *analysis) typeCheckVarDecl(s *ast.VarDecl) {
	var declared *types.PlasmType
	if s.Type != nil {
		t, err := resolveTypeSpec(s.Type, a.info.Classes)
		if err != nil {
			a.errorf(s.Pos(), "%s", err)
		} else {
			declared = t
		}
	}

	for _, b := range s.Bindings {
		var bindingType *types.PlasmType
		switch {
		case b.Init != nil:
			valType := a.typeExprExpecting(b.Init, declared)
			if declared != nil {
				if !types.IsCompatibleWith(valType, declared) {
					a.errorf(b.Init.Pos(), "cannot initialize '%s' of type %s with a value of type %s",
						b.Name.Value, declared, valType)
				}
				bindingType = declared
			} else {
				bindingType = valType
			}
		case declared != nil:
			bindingType = declared
		default:
			a.errorf(b.Pos(), "variable '%s' needs an explicit type or an initializer", b.Name.Value)
			bindingType = types.AnyType
		}
		if sym, ok := a.info.BindingSymbol[b]; ok {
			a.info.SymbolTypes[sym] = bindingType
		}
	}
}

func (a *analysis) typeCheckReturn(s *ast.ReturnStatement) {
	var retType *types.PlasmType
	if a.currentFunc != nil {
		retType = a.currentFunc.Result
	}
	if s.Value == nil {
		if retType != nil && !retType.IsVoid() {
			a.errorf(s.Pos(), "missing return value, function returns %s", retType)
		}
		return
	}
	valType := a.typeExprExpecting(s.Value, retType)
	if retType != nil && !types.IsCompatibleWith(valType, retType) {
		a.errorf(s.Value.Pos(), "cannot return %s, function returns %s", valType, retType)
	}
}

// typeExprExpecting applies the literal-binding rule: an untyped
// integer/float literal (and an empty array literal) takes on target's
// type directly instead of going through ordinary bottom-up inference,
// when target is a compatible kind.
func (a *analysis) typeExprExpecting(expr ast.Expression, target *types.PlasmType) *types.PlasmType {
	if target != nil {
		switch lit := expr.(type) {
		case *ast.IntegerLiteral:
			if target.Kind == types.KindPrimitive && (target.IsInteger() || target.IsFloating()) {
				a.info.ExprTypes[expr] = target
				return target
			}
		case *ast.FloatLiteral:
			if target.IsFloating() {
				a.info.ExprTypes[expr] = target
				return target
			}
		case *ast.ArrayLiteral:
			if target.IsArray() && len(lit.Elements) == 0 {
				a.info.ExprTypes[expr] = target
				return target
			}
		}
	}
	return a.typeExpr(expr)
}

// typeExpr computes expr's type bottom-up, memoised in info.ExprTypes.
func (a *analysis) typeExpr(expr ast.Expression) *types.PlasmType {
	if t, ok := a.info.ExprTypes[expr]; ok {
		return t
	}

	var result *types.PlasmType
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		result = types.I64Type
	case *ast.FloatLiteral:
		result = types.F64Type
	case *ast.StringLiteral:
		result = types.StringType
	case *ast.BooleanLiteral:
		result = types.BoolType
	case *ast.StringInterpolation:
		for _, sub := range e.Exprs {
			a.typeExpr(sub)
		}
		result = types.StringType
	case *ast.SelfExpression:
		if a.currentClass != nil {
			result = types.Class(a.currentClass.Name)
		} else {
			a.errorf(e.Pos(), "'self' used outside of a class member")
			result = types.AnyType
		}
	case *ast.Identifier:
		result = a.typeIdentifier(e)
	case *ast.UnaryExpression:
		result = a.typeUnary(e)
	case *ast.BinaryExpression:
		result = a.typeBinary(e)
	case *ast.AssignmentExpression:
		result = a.typeAssignment(e)
	case *ast.CallExpression:
		result = a.typeCall(e)
	case *ast.ConstructorCallExpression:
		for _, arg := range e.Args {
			a.typeExpr(arg)
		}
		result = types.Class(e.ClassName.Value)
	case *ast.ProcCallExpression:
		result = a.typeProcCall(e)
	case *ast.MemberExpression:
		result = a.typeMember(e)
	case *ast.IndexExpression:
		result = a.typeIndex(e)
	case *ast.ArrayAllocExpression:
		result = a.typeArrayAlloc(e)
	case *ast.ArrayLiteral:
		result = a.typeArrayLiteral(e)
	case *ast.CastExpression:
		a.typeExpr(e.Value)
		t, err := resolveTypeSpec(e.Target, a.info.Classes)
		if err != nil {
			a.errorf(e.Pos(), "%s", err)
			t = types.AnyType
		}
		result = t
	case *ast.TypeTestExpression:
		a.typeExpr(e.Value)
		if _, err := resolveTypeSpec(e.Target, a.info.Classes); err != nil {
			a.errorf(e.Pos(), "%s", err)
		}
		result = types.BoolType
	case *ast.LambdaExpression:
		result = a.typeLambda(e)
	case *ast.TupleExpression:
		for _, el := range e.Elements {
			a.typeExpr(el)
		}
		a.errorf(e.Pos(), "tuple expressions have no type in this type system")
		result = types.AnyType
	default:
		result = types.AnyType
	}

	if result == nil {
		result = types.AnyType
	}
	a.info.ExprTypes[expr] = result
	return result
}

func (a *analysis) typeIdentifier(e *ast.Identifier) *types.PlasmType {
	sym, ok := a.info.Resolved[e]
	if !ok {
		return types.AnyType
	}
	if sym.Kind == symbols.KindClass {
		a.errorf(e.Pos(), "class '%s' cannot be used as a value", e.Value)
		return types.AnyType
	}
	return a.symbolType(sym)
}

func (a *analysis) symbolType(sym *symbols.Symbol) *types.PlasmType {
	if t, ok := a.info.SymbolTypes[sym]; ok {
		return t
	}
	var t *types.PlasmType
	switch sym.Kind {
	case symbols.KindParameter:
		p, ok := sym.Declaration.(*ast.Param)
		if !ok {
			t = types.AnyType
			break
		}
		rt, err := resolveTypeSpec(p.Type, a.info.Classes)
		if err != nil {
			rt = types.AnyType
		}
		t = rt
	case symbols.KindFunction:
		fn := a.info.Functions[sym.Name]
		if fn == nil {
			t = types.AnyType
		} else {
			t = types.Function(fn.Params, fn.Result)
		}
	case symbols.KindProcedure:
		fn := a.info.Procedures[sym.Name]
		if fn == nil {
			t = types.AnyType
		} else {
			t = types.Function(fn.Params, fn.Result)
		}
	default:
		// KindVariable/KindConstant are bound eagerly as their
		// declaration statement is type-checked; reaching here means
		// the reference was recorded before its declaration, which
		// name analysis already rejects as undefined.
		t = types.AnyType
	}
	a.info.SymbolTypes[sym] = t
	return t
}

func (a *analysis) typeUnary(e *ast.UnaryExpression) *types.PlasmType {
	operand := a.typeExpr(e.Operand)
	switch e.Operator {
	case "-":
		if !operand.IsNumeric() {
			a.errorf(e.Pos(), "unary '-' requires a numeric operand, got %s", operand)
			return types.AnyType
		}
		return operand
	case "!":
		if !operand.IsBool() {
			a.errorf(e.Pos(), "unary '!' requires a bool operand, got %s", operand)
			return types.AnyType
		}
		return types.BoolType
	}
	return types.AnyType
}

func (a *analysis) typeAssignment(e *ast.AssignmentExpression) *types.PlasmType {
	sym, ok := a.info.Resolved[e.Target]
	var target *types.PlasmType
	if ok {
		target = a.symbolType(sym)
	}
	valType := a.typeExprExpecting(e.Value, target)
	if ok && target != nil && !types.IsCompatibleWith(valType, target) {
		a.errorf(e.Pos(), "cannot assign %s to '%s' of type %s", valType, e.Target.Value, target)
	}
	if target != nil {
		return target
	}
	return types.AnyType
}

func (a *analysis) typeBinary(e *ast.BinaryExpression) *types.PlasmType {
	leftType := a.typeExpr(e.Left)
	var rightType *types.PlasmType
	if leftType != nil && leftType.Kind == types.KindPrimitive {
		rightType = a.typeExprExpecting(e.Right, leftType)
	} else {
		rightType = a.typeExpr(e.Right)
	}

	if leftType.IsClass() {
		return a.typeOperatorCall(e, leftType, rightType)
	}

	switch e.Operator {
	case "+", "-", "*", "/", "%":
		if !leftType.IsNumeric() || !rightType.IsNumeric() {
			a.errorf(e.Pos(), "operator '%s' requires numeric operands, got %s and %s", e.Operator, leftType, rightType)
			return types.AnyType
		}
		return numericResult(leftType, rightType, e, a)
	case "==", "!=", "<", ">", "<=", ">=":
		if !types.IsCompatibleWith(rightType, leftType) && !types.IsCompatibleWith(leftType, rightType) {
			a.errorf(e.Pos(), "cannot compare %s and %s", leftType, rightType)
		}
		return types.BoolType
	case "&&", "||":
		if !leftType.IsBool() || !rightType.IsBool() {
			a.errorf(e.Pos(), "operator '%s' requires bool operands, got %s and %s", e.Operator, leftType, rightType)
		}
		return types.BoolType
	}
	return types.AnyType
}

// numericResult picks the result type of an arithmetic op between two
// numeric types: whichever side the other can implicitly upcast to.
func numericResult(left, right *types.PlasmType, e *ast.BinaryExpression, a *analysis) *types.PlasmType {
	if types.Equal(left, right) {
		return left
	}
	if types.CanImplicitlyUpcast(left, right) {
		return right
	}
	if types.CanImplicitlyUpcast(right, left) {
		return left
	}
	a.errorf(e.Pos(), "operands of '%s' have incompatible types %s and %s", e.Operator, left, right)
	return left
}

func (a *analysis) typeOperatorCall(e *ast.BinaryExpression, leftType, rightType *types.PlasmType) *types.PlasmType {
	sym := ast.OperatorSymbol(e.Operator)
	class, ok := a.info.Classes[leftType.ClassName]
	if !ok {
		return types.AnyType
	}
	match, count := resolveOperator(class, sym, rightType)
	if count == 0 {
		a.errorf(e.Pos(), "class '%s' has no overload of operator '%s' accepting %s", class.Name, sym, rightType)
		return types.AnyType
	}
	if count > 1 {
		a.errorf(e.Pos(), "ambiguous overload of operator '%s' on class '%s' for argument type %s", sym, class.Name, rightType)
	}
	a.info.OperatorCalls[e] = &OperatorCall{Class: class, Operator: match}
	return match.ReturnType
}

func (a *analysis) typeCall(e *ast.CallExpression) *types.PlasmType {
	if ident, ok := e.Callee.(*ast.Identifier); ok {
		if sym, resolved := a.info.Resolved[ident]; resolved {
			switch sym.Kind {
			case symbols.KindClass:
				return a.typeConstructorCall(e, ident.Value)
			case symbols.KindFunction:
				fn := a.info.Functions[ident.Value]
				return a.typeOrdinaryCall(e.Pos(), e.Args, fn.Params, fn.Result, fn.Name)
			case symbols.KindProcedure:
				proc := a.info.Procedures[ident.Value]
				return a.typeOrdinaryCall(e.Pos(), e.Args, proc.Params, proc.Result, proc.Name)
			}
		}
	}

	if member, ok := e.Callee.(*ast.MemberExpression); ok {
		return a.typeMethodCall(e, member)
	}

	calleeType := a.typeExpr(e.Callee)
	if !calleeType.IsFunction() {
		a.errorf(e.Pos(), "cannot call a value of type %s", calleeType)
		for _, arg := range e.Args {
			a.typeExpr(arg)
		}
		return types.AnyType
	}
	return a.typeOrdinaryCall(e.Pos(), e.Args, calleeType.Params, calleeType.Result, "<value>")
}

func (a *analysis) typeOrdinaryCall(pos lexer.Position, args []ast.Expression, params []*types.PlasmType, result *types.PlasmType, name string) *types.PlasmType {
	if len(args) != len(params) {
		a.errorf(pos, "'%s' expects %d argument(s), got %d", name, len(params), len(args))
	}
	for i, arg := range args {
		var expect *types.PlasmType
		if i < len(params) {
			expect = params[i]
		}
		argType := a.typeExprExpecting(arg, expect)
		if expect != nil && !types.IsCompatibleWith(argType, expect) {
			a.errorf(arg.Pos(), "argument %d to '%s': cannot use %s as %s", i+1, name, argType, expect)
		}
	}
	if result == nil {
		return types.VoidType
	}
	return result
}

func (a *analysis) typeConstructorCall(e *ast.CallExpression, className string) *types.PlasmType {
	class := a.info.Classes[className]
	argTypes := make([]*types.PlasmType, len(e.Args))
	for i, arg := range e.Args {
		argTypes[i] = a.typeExpr(arg)
	}
	match, count := resolveConstructor(class, argTypes)
	if count == 0 {
		a.errorf(e.Pos(), "no constructor of '%s' matches the given arguments", className)
		return types.Class(className)
	}
	if count > 1 {
		a.errorf(e.Pos(), "ambiguous constructor call for '%s'", className)
	}
	a.info.ConstructorCalls[e] = &ConstructorCall{Class: class, Constructor: match}
	return types.Class(className)
}

func (a *analysis) typeMethodCall(e *ast.CallExpression, member *ast.MemberExpression) *types.PlasmType {
	targetType := a.typeExpr(member.Target)
	if !targetType.IsClass() {
		a.errorf(member.Pos(), "cannot call method '%s' on non-class type %s", member.Name, targetType)
		for _, arg := range e.Args {
			a.typeExpr(arg)
		}
		return types.AnyType
	}
	class := a.info.Classes[targetType.ClassName]
	method, ok := class.Methods[member.Name]
	if !ok {
		a.errorf(member.Pos(), "class '%s' has no method '%s'", class.Name, member.Name)
		for _, arg := range e.Args {
			a.typeExpr(arg)
		}
		return types.AnyType
	}
	return a.typeOrdinaryCall(e.Pos(), e.Args, method.Params, method.Result, class.Name+"."+member.Name)
}

func (a *analysis) typeMember(e *ast.MemberExpression) *types.PlasmType {
	targetType := a.typeExpr(e.Target)
	if !targetType.IsClass() {
		a.errorf(e.Pos(), "cannot access member '%s' on non-class type %s", e.Name, targetType)
		return types.AnyType
	}
	class := a.info.Classes[targetType.ClassName]
	if field, ok := class.Field(e.Name); ok {
		return field.Type
	}
	if method, ok := class.Methods[e.Name]; ok {
		return types.Function(method.Params, method.Result)
	}
	a.errorf(e.Pos(), "class '%s' has no member '%s'", class.Name, e.Name)
	return types.AnyType
}

func (a *analysis) typeProcCall(e *ast.ProcCallExpression) *types.PlasmType {
	sym, ok := a.info.Resolved[e.Name]
	if !ok || sym.Kind != symbols.KindProcedure {
		if ok {
			a.errorf(e.Pos(), "'%s' is not a procedure", e.Name.Value)
		}
		for _, arg := range e.Args {
			a.typeExpr(arg)
		}
		return types.VoidType
	}
	proc := a.info.Procedures[e.Name.Value]
	return a.typeOrdinaryCall(e.Pos(), e.Args, proc.Params, proc.Result, e.Name.Value)
}

func (a *analysis) typeIndex(e *ast.IndexExpression) *types.PlasmType {
	arrType := a.typeExpr(e.Array)
	idxType := a.typeExpr(e.Index)
	if !idxType.IsInteger() {
		a.errorf(e.Index.Pos(), "array index must be an integer type, got %s", idxType)
	}
	if !arrType.IsArray() {
		a.errorf(e.Array.Pos(), "cannot index non-array type %s", arrType)
		return types.AnyType
	}
	return arrType.ElemType()
}

func (a *analysis) typeArrayAlloc(e *ast.ArrayAllocExpression) *types.PlasmType {
	elem, err := resolveTypeSpec(e.ElemType, a.info.Classes)
	if err != nil {
		a.errorf(e.Pos(), "%s", err)
		elem = types.AnyType
	}
	sizeType := a.typeExpr(e.Size)
	if !sizeType.IsInteger() {
		a.errorf(e.Size.Pos(), "array size must be an integer type, got %s", sizeType)
	}
	return types.Array(elem)
}

func (a *analysis) typeArrayLiteral(e *ast.ArrayLiteral) *types.PlasmType {
	if len(e.Elements) == 0 {
		return types.Array(types.AnyType)
	}
	elem := a.typeExpr(e.Elements[0])
	for _, el := range e.Elements[1:] {
		t := a.typeExprExpecting(el, elem)
		if types.IsCompatibleWith(t, elem) {
			continue
		}
		if types.IsCompatibleWith(elem, t) {
			elem = t
			continue
		}
		a.errorf(el.Pos(), "array literal element type %s incompatible with %s", t, elem)
	}
	return types.Array(elem)
}

func (a *analysis) typeLambda(e *ast.LambdaExpression) *types.PlasmType {
	paramTypes := make([]*types.PlasmType, len(e.Params))
	for i, p := range e.Params {
		t, err := resolveTypeSpec(p.Type, a.info.Classes)
		if err != nil {
			a.errorf(p.Pos(), "%s", err)
			t = types.AnyType
		}
		paramTypes[i] = t
		if sym, ok := a.info.ParamSymbol[p]; ok {
			a.info.SymbolTypes[sym] = t
		}
	}

	prevFunc := a.currentFunc
	var resultType *types.PlasmType
	if e.IsShorthand {
		resultType = a.typeExpr(e.ExprBody)
	} else {
		resultType = a.inferBlockReturnType(e.BlockBody)
		a.currentFunc = &FuncInfo{Name: "lambda", Params: paramTypes, Result: resultType}
		a.typeCheckBlock(e.BlockBody)
	}
	a.currentFunc = prevFunc
	return types.Function(paramTypes, resultType)
}

// inferBlockReturnType walks a block-bodied lambda's return statements
// (not descending into nested lambdas, which have their own inference)
// and unifies their types through the upcast lattice. A lambda with no
// return statement types as void.
func (a *analysis) inferBlockReturnType(block *ast.Block) *types.PlasmType {
	var result *types.PlasmType
	var walk func(stmt ast.Statement)
	walk = func(stmt ast.Statement) {
		switch s := stmt.(type) {
		case *ast.ReturnStatement:
			if s.Value == nil {
				return
			}
			t := a.typeExpr(s.Value)
			switch {
			case result == nil:
				result = t
			case types.IsCompatibleWith(t, result):
			case types.IsCompatibleWith(result, t):
				result = t
			}
		case *ast.IfStatement:
			walk(s.Then)
			if s.Else != nil {
				walk(s.Else)
			}
		case *ast.WhileStatement:
			walk(s.Body)
		case *ast.Block:
			for _, st := range s.Statements {
				walk(st)
			}
		}
	}
	for _, st := range block.Statements {
		walk(st)
	}
	if result == nil {
		return types.VoidType
	}
	return result
}

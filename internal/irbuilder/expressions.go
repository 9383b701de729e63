package irbuilder

import (
	"fmt"

	"github.com/lehlud/plasm/internal/ast"
	"github.com/lehlud/plasm/internal/ir"
	"github.com/lehlud/plasm/internal/semantic"
	"github.com/lehlud/plasm/internal/symbols"
	"github.com/lehlud/plasm/internal/types"
)

var binaryOpcodes = map[string]ir.Opcode{
	"+": ir.OpAdd, "-": ir.OpSub, "*": ir.OpMul, "/": ir.OpDiv, "%": ir.OpRem,
	"==": ir.OpEq, "!=": ir.OpNeq, "<": ir.OpLt, ">": ir.OpGt, "<=": ir.OpLe, ">=": ir.OpGe,
	"&&": ir.OpAnd, "||": ir.OpOr,
}

// lowerExpr lowers expr to the IR value that computes it, consulting
// Info.ExprTypes[expr] for its result type wherever the AST alone
// doesn't determine one (an identifier, a call, a cast).
func (b *Builder) lowerExpr(expr ast.Expression) ir.Value {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return ir.NewIntConstant(b.module.NextValueID(), b.irType(b.info.TypeOf(e)), e.Value)
	case *ast.FloatLiteral:
		return ir.NewFloatConstant(b.module.NextValueID(), b.irType(b.info.TypeOf(e)), e.Value)
	case *ast.StringLiteral:
		return ir.NewStringConstant(b.module.NextValueID(), e.Value)
	case *ast.BooleanLiteral:
		v := int64(0)
		if e.Value {
			v = 1
		}
		return ir.NewIntConstant(b.module.NextValueID(), ir.I32Type, v)
	case *ast.StringInterpolation:
		return b.lowerStringInterpolation(e)
	case *ast.SelfExpression:
		return b.selfValue
	case *ast.Identifier:
		return b.lowerIdentifier(e)
	case *ast.BinaryExpression:
		return b.lowerBinary(e)
	case *ast.UnaryExpression:
		return b.lowerUnary(e)
	case *ast.AssignmentExpression:
		return b.lowerAssignment(e)
	case *ast.CallExpression:
		return b.lowerCall(e)
	case *ast.ProcCallExpression:
		return b.lowerProcCall(e)
	case *ast.MemberExpression:
		return b.lowerMember(e)
	case *ast.IndexExpression:
		return b.lowerIndex(e)
	case *ast.ArrayAllocExpression:
		return b.lowerArrayAlloc(e)
	case *ast.ArrayLiteral:
		return b.lowerArrayLiteral(e)
	case *ast.CastExpression:
		return b.lowerCast(e)
	case *ast.TypeTestExpression:
		return b.lowerTypeTest(e)
	case *ast.LambdaExpression:
		return b.lowerLambda(e)
	case *ast.TupleExpression:
		return b.lowerTuple(e)
	default:
		panic(fmt.Sprintf("irbuilder: unhandled expression type %T", expr))
	}
}

// lowerIdentifier dispatches on the resolved symbol's kind: a variable
// or parameter reads through its alloca'd slot, a constant/global is
// its Global value directly, and a function/procedure name used as a
// bare value (not as a call's callee) yields a funcref.
func (b *Builder) lowerIdentifier(e *ast.Identifier) ir.Value {
	sym := b.info.Resolved[e]
	switch sym.Kind {
	case symbols.KindVariable, symbols.KindParameter:
		slot := b.values[sym]
		return b.currentBlock.Load(b.module.NextValueID, b.irType(b.info.SymbolTypes[sym]), slot)
	case symbols.KindConstant:
		return b.values[sym]
	case symbols.KindFunction:
		return b.currentBlock.FuncRef(b.module.NextValueID, e.Value, ir.FuncRefType(e.Value))
	case symbols.KindProcedure:
		return b.currentBlock.FuncRef(b.module.NextValueID, e.Value, ir.FuncRefType(e.Value))
	default:
		panic(fmt.Sprintf("irbuilder: identifier %q resolved to unexpected kind %s", e.Value, sym.Kind))
	}
}

func (b *Builder) lowerBinary(e *ast.BinaryExpression) ir.Value {
	if call, ok := b.info.OperatorCalls[e]; ok {
		self := b.lowerExpr(e.Left)
		arg := b.lowerExpr(e.Right)
		name := b.opNames[call.Operator.Decl]
		resultType := b.irType(call.Operator.ReturnType)
		return b.currentBlock.Call(b.module.NextValueID, name, resultType, self, arg)
	}

	lhs := b.lowerExpr(e.Left)
	rhs := b.lowerExpr(e.Right)
	op := binaryOpcodes[e.Operator]
	resultType := b.irType(b.info.TypeOf(e))
	instr := b.currentBlock.Binary(b.module.NextValueID, op, resultType, lhs, rhs)
	instr.Signed = b.isSigned(b.info.TypeOf(e.Left))
	return instr
}

func (b *Builder) lowerUnary(e *ast.UnaryExpression) ir.Value {
	operand := b.lowerExpr(e.Operand)
	resultType := b.irType(b.info.TypeOf(e))
	switch e.Operator {
	case "-":
		instr := b.currentBlock.Unary(b.module.NextValueID, ir.OpNeg, resultType, operand)
		instr.Signed = b.isSigned(b.info.TypeOf(e.Operand))
		return instr
	case "!":
		return b.currentBlock.Unary(b.module.NextValueID, ir.OpNot, resultType, operand)
	default:
		panic(fmt.Sprintf("irbuilder: unknown unary operator %q", e.Operator))
	}
}

// lowerAssignment stores the lowered value into the target's alloca'd
// slot and yields that same value, matching the language's
// assignment-as-expression semantics.
func (b *Builder) lowerAssignment(e *ast.AssignmentExpression) ir.Value {
	val := b.lowerExpr(e.Value)
	sym := b.info.Resolved[e.Target]
	slot := b.values[sym]
	b.currentBlock.Store(b.module.NextValueID, val, slot)
	return val
}

// lowerCall dispatches a CallExpression three ways: to a constructor
// call (struct.new of self followed by a void call into the chosen
// constructor overload), to an ordinary named call (the callee
// identifier names a function, or a member access names a method), or
// to an indirect call through a function-typed value (a parameter,
// local, or lambda result).
func (b *Builder) lowerCall(e *ast.CallExpression) ir.Value {
	if ctorCall, ok := b.info.ConstructorCalls[e]; ok {
		return b.lowerConstructorCall(ctorCall, e.Args)
	}

	switch callee := e.Callee.(type) {
	case *ast.Identifier:
		if sym := b.info.Resolved[callee]; sym != nil && sym.Kind == symbols.KindFunction {
			args := b.lowerArgs(e.Args)
			fn := b.info.Functions[callee.Value]
			return b.currentBlock.Call(b.module.NextValueID, callee.Value, b.irType(fn.Result), args...)
		}
	case *ast.MemberExpression:
		if !callee.IsProcCall {
			return b.lowerMethodCall(callee, e.Args, e)
		}
	}

	// Function-typed value: load it and call indirectly.
	fnVal := b.lowerExpr(e.Callee)
	args := b.lowerArgs(e.Args)
	resultType := b.irType(b.info.TypeOf(e))
	return b.currentBlock.CallIndirect(b.module.NextValueID, fnVal, resultType, args...)
}

func (b *Builder) lowerMethodCall(target *ast.MemberExpression, args []ast.Expression, call ast.Expression) ir.Value {
	recvType := b.info.TypeOf(target.Target)
	class := b.info.Classes[recvType.ClassName]
	method := class.Methods[target.Name]

	recv := b.lowerExpr(target.Target)
	argVals := b.lowerArgs(args)

	name := b.methodFuncName(class, target.Name, method)
	resultType := b.irType(method.Result)

	if b.methodIsStatic(method) {
		return b.currentBlock.Call(b.module.NextValueID, name, resultType, argVals...)
	}

	operands := append([]ir.Value{recv}, argVals...)
	return b.currentBlock.Call(b.module.NextValueID, name, resultType, operands...)
}

func (b *Builder) methodIsStatic(method *semantic.FuncInfo) bool {
	switch d := method.Decl.(type) {
	case *ast.FunctionDecl:
		return d.IsStatic
	case *ast.ProcedureDecl:
		return d.IsStatic
	default:
		return false
	}
}

func (b *Builder) methodFuncName(class *semantic.ClassInfo, methodName string, method *semantic.FuncInfo) string {
	if fn, ok := method.Decl.(*ast.FunctionDecl); ok {
		if name, ok := b.methodNames[fn]; ok {
			return name
		}
	}
	if pd, ok := method.Decl.(*ast.ProcedureDecl); ok {
		if name, ok := b.procNames[pd]; ok {
			return name
		}
	}
	return class.Name + "_" + methodName
}

func (b *Builder) lowerProcCall(e *ast.ProcCallExpression) ir.Value {
	sym := b.info.Resolved[e.Name]
	args := b.lowerArgs(e.Args)
	if sym != nil && sym.Kind == symbols.KindProcedure {
		fn := b.info.Procedures[e.Name.Value]
		return b.currentBlock.Call(b.module.NextValueID, e.Name.Value, b.irType(fn.Result), args...)
	}
	fnVal := b.lowerIdentifier(e.Name)
	return b.currentBlock.CallIndirect(b.module.NextValueID, fnVal, b.irType(b.info.TypeOf(e)), args...)
}

func (b *Builder) lowerArgs(args []ast.Expression) []ir.Value {
	out := make([]ir.Value, len(args))
	for i, a := range args {
		out[i] = b.lowerExpr(a)
	}
	return out
}

// lowerConstructorCall allocates self via struct.new (field values come
// from each field's own initialiser, evaluated fresh per call since
// field initialisers run in the class's static scope rather than the
// constructor's, see DESIGN.md), then calls the chosen constructor
// overload for its side effects, and yields self.
func (b *Builder) lowerConstructorCall(call *semantic.ConstructorCall, args []ast.Expression) ir.Value {
	class := call.Class
	fieldValues := make([]ir.Value, len(class.Fields))
	for i, f := range class.Fields {
		if f.Init != nil {
			fieldValues[i] = b.lowerExpr(f.Init)
		} else {
			fieldValues[i] = b.zeroValue(f.Type)
		}
	}
	selfType := ir.RefType(class.Name, false)
	self := b.currentBlock.StructNew(b.module.NextValueID, class.Name, selfType, fieldValues...)

	argVals := b.lowerArgs(args)
	name := b.ctorNames[call.Constructor.Decl]
	operands := append([]ir.Value{self}, argVals...)
	b.currentBlock.Call(b.module.NextValueID, name, ir.VoidType, operands...)
	return self
}

func (b *Builder) lowerMember(e *ast.MemberExpression) ir.Value {
	recvType := b.info.TypeOf(e.Target)
	class := b.info.Classes[recvType.ClassName]
	field, _ := class.Field(e.Name)

	recv := b.lowerExpr(e.Target)
	return b.currentBlock.StructGet(b.module.NextValueID, class.Name, e.Name, b.irType(field.Type), recv)
}

func (b *Builder) lowerIndex(e *ast.IndexExpression) ir.Value {
	arrType := b.info.TypeOf(e.Array)
	typeName := b.arrayTypeDef(arrType)

	arr := b.lowerExpr(e.Array)
	idx := b.lowerExpr(e.Index)
	return b.currentBlock.ArrayGet(b.module.NextValueID, typeName, b.irType(arrType.ElemType()), arr, idx)
}

func (b *Builder) lowerArrayAlloc(e *ast.ArrayAllocExpression) ir.Value {
	resultType := b.info.TypeOf(e)
	typeName := b.arrayTypeDef(resultType)
	size := b.lowerExpr(e.Size)
	return b.currentBlock.ArrayNewDefault(b.module.NextValueID, typeName, b.irType(resultType), size)
}

// lowerArrayLiteral allocates a default-valued array of the literal's
// length, then array.set's each element in order; there's no dedicated
// "array literal" wasm-GC instruction, so this is the direct
// construct-then-fill translation.
func (b *Builder) lowerArrayLiteral(e *ast.ArrayLiteral) ir.Value {
	resultType := b.info.TypeOf(e)
	typeName := b.arrayTypeDef(resultType)
	irType := b.irType(resultType)

	length := ir.NewIntConstant(b.module.NextValueID(), ir.I32Type, int64(len(e.Elements)))
	arr := b.currentBlock.ArrayNewDefault(b.module.NextValueID, typeName, irType, length)
	for i, elemExpr := range e.Elements {
		val := b.lowerExpr(elemExpr)
		idx := ir.NewIntConstant(b.module.NextValueID(), ir.I32Type, int64(i))
		b.currentBlock.ArraySet(b.module.NextValueID, typeName, arr, idx, val)
	}
	return arr
}

func (b *Builder) lowerCast(e *ast.CastExpression) ir.Value {
	val := b.lowerExpr(e.Value)
	targetType := b.info.TypeOf(e)
	irType := b.irType(targetType)
	if targetType.IsClass() || targetType.IsArray() {
		instr := b.currentBlock.Emit(b.module.NextValueID, ir.OpRefCast, irType, val)
		instr.TypeName = irType.RefName
		return instr
	}
	instr := b.currentBlock.Cast(b.module.NextValueID, irType, val)
	instr.Signed = b.isSigned(targetType)
	return instr
}

func (b *Builder) lowerTypeTest(e *ast.TypeTestExpression) ir.Value {
	val := b.lowerExpr(e.Value)
	instr := b.currentBlock.Emit(b.module.NextValueID, ir.OpRefTest, ir.I32Type, val)
	instr.TypeName = e.Target.Name
	return instr
}

// lowerLambda lifts a lambda expression to its own function, named
// "__lambda_<n>" by source-visitation order, then yields a funcref to
// it. Lowering happens inline at the expression site rather than via a
// separate pass over Info.Lambdas: save/restore of the current
// function/block/values is exactly what a recursive visit already
// gives for free.
func (b *Builder) lowerLambda(e *ast.LambdaExpression) ir.Value {
	name := fmt.Sprintf("__lambda_%d", b.lambdaIndex)
	b.lambdaIndex++

	resultType := b.lambdaResultType(e)
	b.lowerFunctionLike(name, e.Params, resultType, nil, "", func() {
		if e.IsShorthand {
			val := b.lowerExpr(e.ExprBody)
			if resultType.IsVoid() {
				b.currentBlock.SetRet(nil)
			} else {
				b.currentBlock.SetRet(val)
			}
		} else {
			b.lowerBlock(e.BlockBody)
		}
	})

	return b.currentBlock.FuncRef(b.module.NextValueID, name, ir.FuncRefType(name))
}

func (b *Builder) lambdaResultType(e *ast.LambdaExpression) *types.PlasmType {
	fnType := b.info.TypeOf(e)
	if fnType != nil && fnType.Result != nil {
		return fnType.Result
	}
	return types.VoidType
}

// lowerTuple lowers a tuple literal to a struct.new of an ad hoc
// "tupleN" type def, registering the def on first use. Tuples have no
// other consumer in the language (there is no destructuring
// assignment), so this representation only needs to support
// construction.
func (b *Builder) lowerTuple(e *ast.TupleExpression) ir.Value {
	name := fmt.Sprintf("tuple%d", len(e.Elements))
	if b.module.FindTypeDef(name) == nil {
		elems := b.lowerArgs(e.Elements)
		fields := make([]ir.Field, len(elems))
		for i, v := range elems {
			fields[i] = ir.Field{Name: fmt.Sprintf("_%d", i), Type: v.Type(), Mutable: false}
		}
		b.module.AddTypeDef(&ir.TypeDef{Name: name, Kind: ir.StructDef, Fields: fields})
		return b.currentBlock.StructNew(b.module.NextValueID, name, ir.RefType(name, false), elems...)
	}
	elems := b.lowerArgs(e.Elements)
	return b.currentBlock.StructNew(b.module.NextValueID, name, ir.RefType(name, false), elems...)
}

// lowerStringInterpolation folds `"a${x}b"`-style parts into a chain of
// runtime string-concatenation calls. Parts and Exprs interleave as
// Parts[0], Exprs[0], Parts[1], Exprs[1], ..., Parts[n] (one more part
// than hole), each piece concatenated onto the accumulator left to
// right; a part lowers to a string constant (possibly the empty
// string, when two holes are adjacent).
func (b *Builder) lowerStringInterpolation(e *ast.StringInterpolation) ir.Value {
	strType := ir.RefType("string", false)
	acc := ir.Value(ir.NewStringConstant(b.module.NextValueID(), e.Parts[0]))
	for i, expr := range e.Exprs {
		hole := b.lowerExpr(expr)
		acc = b.currentBlock.Call(b.module.NextValueID, "plasm_string_concat", strType, acc, hole)
		if i+1 < len(e.Parts) {
			part := ir.Value(ir.NewStringConstant(b.module.NextValueID(), e.Parts[i+1]))
			acc = b.currentBlock.Call(b.module.NextValueID, "plasm_string_concat", strType, acc, part)
		}
	}
	return acc
}

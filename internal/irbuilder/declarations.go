package irbuilder

import (
	"github.com/lehlud/plasm/internal/ast"
	"github.com/lehlud/plasm/internal/ir"
	"github.com/lehlud/plasm/internal/semantic"
	"github.com/lehlud/plasm/internal/symbols"
	"github.com/lehlud/plasm/internal/types"
)

// lowerConst lowers a top-level `const` to a module global marked
// IsConstant. A literal initialiser becomes the global's Init directly;
// anything else still gets a Global slot with Init left nil: such an
// initialiser expression is not lowered at all.
func (b *Builder) lowerConst(decl *ast.ConstDecl) {
	t := b.info.Constants[decl.Name.Value]
	irt := b.irType(t)

	var init ir.Value
	switch v := decl.Value.(type) {
	case *ast.IntegerLiteral:
		init = ir.NewIntConstant(b.module.NextValueID(), irt, v.Value)
	case *ast.FloatLiteral:
		init = ir.NewFloatConstant(b.module.NextValueID(), irt, v.Value)
	case *ast.BooleanLiteral:
		iv := int64(0)
		if v.Value {
			iv = 1
		}
		init = ir.NewIntConstant(b.module.NextValueID(), irt, iv)
	case *ast.StringLiteral:
		init = ir.NewStringConstant(b.module.NextValueID(), v.Value)
	}

	g := ir.NewGlobal(b.module.NextValueID(), decl.Name.Value, irt, true, init)
	b.module.AddGlobal(g)

	sym := b.info.ConstSymbol[decl]
	b.values[sym] = g
}

func (b *Builder) lowerFunctionDecl(decl *ast.FunctionDecl) {
	fn := b.info.Functions[decl.Name.Value]
	b.lowerFunctionLike(decl.Name.Value, decl.Params, fn.Result, nil, "", func() { b.lowerBlock(decl.Body) })
}

func (b *Builder) lowerProcedureDecl(decl *ast.ProcedureDecl) {
	fn := b.info.Procedures[decl.Name.Value]
	b.lowerFunctionLike(decl.Name.Value, decl.Params, fn.Result, nil, "", func() { b.lowerBlock(decl.Body) })
}

// lowerClass lowers every constructor, operator and method of decl to
// its own ir.Function. Constructor overloads, once lowered, are only
// ever reached through a constructor-call site (Info.ConstructorCalls
// picks the overload); there is no separate "class" value in the IR,
// matching the arena-of-values model's lack of a nominal class concept
// beyond the struct TypeDef registered in registerClassTypeDef.
func (b *Builder) lowerClass(decl *ast.ClassDecl) {
	class := b.info.Classes[decl.Name.Value]
	selfType := ir.RefType(class.Name, false)

	for _, ctor := range decl.Constructors {
		name := b.ctorNames[ctor]
		body := ctor.Body
		b.lowerFunctionLike(name, ctor.Params, types.VoidType, &selfType, "self", func() { b.lowerBlock(body) })
	}

	for _, op := range decl.Operators {
		name := b.opNames[op]
		opInfo := b.lookupOperatorInfo(class, op)
		params := []*ast.Param{op.Param}
		body := op.Body
		b.lowerFunctionLike(name, params, opInfo.ReturnType, &selfType, "self", func() { b.lowerBlock(body) })
	}

	for _, m := range decl.Methods {
		switch md := m.(type) {
		case *ast.FunctionDecl:
			info := class.Methods[md.Name.Value]
			body := md.Body
			if md.IsStatic {
				b.lowerFunctionLike(b.methodNames[md], md.Params, info.Result, nil, "", func() { b.lowerBlock(body) })
			} else {
				b.lowerFunctionLike(b.methodNames[md], md.Params, info.Result, &selfType, "self", func() { b.lowerBlock(body) })
			}
		case *ast.ProcedureDecl:
			info := class.Methods[md.Name.Value]
			body := md.Body
			if md.IsStatic {
				b.lowerFunctionLike(b.procNames[md], md.Params, info.Result, nil, "", func() { b.lowerBlock(body) })
			} else {
				b.lowerFunctionLike(b.procNames[md], md.Params, info.Result, &selfType, "self", func() { b.lowerBlock(body) })
			}
		}
	}
}

func (b *Builder) lookupOperatorInfo(class *semantic.ClassInfo, op *ast.OperatorDecl) *semantic.OperatorInfo {
	for _, overloads := range class.Operators {
		for _, o := range overloads {
			if o.Decl == op {
				return o
			}
		}
	}
	return nil
}

// lowerFunctionLike builds the ir.Function for any fn/proc/method/
// constructor/operator body: an entry block, a self param prepended
// when selfType is non-nil, then the ordinary parameter list, each
// alloca'd per the Builder doc comment's uniform storage model.
func (b *Builder) lowerFunctionLike(name string, params []*ast.Param, result *types.PlasmType, selfType *ir.Type, selfName string, lowerBody func()) {
	prevFunc, prevBlock, prevValues := b.currentFunc, b.currentBlock, b.values
	prevSelf, prevSelfClass := b.selfValue, b.selfClass

	fn := ir.NewFunction(name, nil, b.irType(result))
	entry := ir.NewBlock(b.module.NextBlockID(), "entry")
	fn.AddBlock(entry)
	b.module.AddFunction(fn)

	b.currentFunc = fn
	b.currentBlock = entry
	// Every function gets a fresh values map: the language has no
	// closure capture (see DESIGN.md), so nothing from an enclosing
	// function body is ever visible inside one being lowered here.
	b.values = make(map[*symbols.Symbol]ir.Value)

	if selfType != nil {
		selfParam := ir.NewParam(b.module.NextValueID(), selfName, *selfType)
		fn.Params = append(fn.Params, selfParam)
		b.selfValue = selfParam
		b.selfClass = selfType.RefName
	} else {
		b.selfValue = nil
		b.selfClass = ""
	}

	b.bindParams(fn, params)
	lowerBody()
	b.ensureTerminated()

	b.currentFunc, b.currentBlock = prevFunc, prevBlock
	b.values = prevValues
	b.selfValue, b.selfClass = prevSelf, prevSelfClass
}

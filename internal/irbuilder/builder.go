// Package irbuilder lowers a type-checked AST (plus its semantic.Info
// side tables) into an ir.Module. It assumes the program already passed
// semantic.Analyze with zero diagnostics: every expression has a
// recorded type and every identifier a resolved symbol, so lowering
// itself never produces diagnostics.
package irbuilder

import (
	"fmt"

	"github.com/lehlud/plasm/internal/ast"
	"github.com/lehlud/plasm/internal/ir"
	"github.com/lehlud/plasm/internal/semantic"
	"github.com/lehlud/plasm/internal/symbols"
	"github.com/lehlud/plasm/internal/types"
)

// Builder carries the state threaded through lowering: the module being
// built, the semantic side tables, and the position in the function
// currently being lowered.
//
// values maps a resolved symbol directly to its IR storage slot. Keying
// by *symbols.Symbol (rather than by name, the way the spec's
// "namedValues" map is phrased) sidesteps shadowing entirely, since
// name analysis already gave every declaration a distinct symbol
// identity; looking one up is just info.Resolved[ident] away. Every
// assignable binding (parameter or variable) is alloca'd and accessed
// through load/store, even when never reassigned: this keeps Store's
// "value, target" contract uniform and leaves single-assignment locals in
// their slots: none of the passes in internal/passes promotes them back
// to registers, which is exactly the kind of cleanup a trivial,
// non-optimising front end is expected to leave on the table.
type Builder struct {
	module *ir.Module
	info   *semantic.Info

	currentFunc  *ir.Function
	currentBlock *ir.Block
	values       map[*symbols.Symbol]ir.Value

	selfValue ir.Value
	selfClass string

	lambdaIndex int
	ctorNames   map[*ast.ConstructorDecl]string
	opNames     map[*ast.OperatorDecl]string
	methodNames map[*ast.FunctionDecl]string
	procNames   map[*ast.ProcedureDecl]string
}

// Build lowers prog to a fresh ir.Module.
func Build(prog *ast.Program, info *semantic.Info) *ir.Module {
	b := &Builder{
		module:      ir.NewModule(),
		info:        info,
		values:      make(map[*symbols.Symbol]ir.Value),
		ctorNames:   make(map[*ast.ConstructorDecl]string),
		opNames:     make(map[*ast.OperatorDecl]string),
		methodNames: make(map[*ast.FunctionDecl]string),
		procNames:   make(map[*ast.ProcedureDecl]string),
	}

	for _, name := range sortedClassNames(info) {
		b.registerClassTypeDef(info.Classes[name])
	}
	for _, decl := range prog.Declarations {
		if cd, ok := decl.(*ast.ClassDecl); ok {
			b.assignMemberNames(cd)
		}
	}

	for _, decl := range prog.Declarations {
		switch d := decl.(type) {
		case *ast.ConstDecl:
			b.lowerConst(d)
		case *ast.FunctionDecl:
			b.lowerFunctionDecl(d)
		case *ast.ProcedureDecl:
			b.lowerProcedureDecl(d)
		case *ast.ClassDecl:
			b.lowerClass(d)
		}
	}
	return b.module
}

// sortedClassNames gives type-def registration a deterministic order
// (map iteration order is not), matching declaration order isn't
// recoverable from Info.Classes alone so source order is approximated
// by a name sort; stable output matters more than source fidelity here
// since type defs don't reference each other except by class-name
// string, not by declaration order.
func sortedClassNames(info *semantic.Info) []string {
	names := make([]string, 0, len(info.Classes))
	for name := range info.Classes {
		names = append(names, name)
	}
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j-1] > names[j]; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}
	return names
}

func (b *Builder) registerClassTypeDef(class *semantic.ClassInfo) {
	fields := make([]ir.Field, len(class.Fields))
	for i, f := range class.Fields {
		fields[i] = ir.Field{Name: f.Name, Type: b.irType(f.Type), Mutable: !f.IsFinal}
	}
	b.module.AddTypeDef(&ir.TypeDef{Name: class.Name, Kind: ir.StructDef, Fields: fields})
}

// assignMemberNames precomputes the mangled function name for every
// constructor/operator/method of decl, so expression lowering can look
// one up by AST identity without recomputing per-class counters.
func (b *Builder) assignMemberNames(decl *ast.ClassDecl) {
	for i, c := range decl.Constructors {
		b.ctorNames[c] = fmt.Sprintf("%s_constructor_%d", decl.Name.Value, i)
	}
	for _, op := range decl.Operators {
		b.opNames[op] = fmt.Sprintf("%s_op_%s", decl.Name.Value, ast.Mangle[op.Symbol])
	}
	for _, m := range decl.Methods {
		switch md := m.(type) {
		case *ast.FunctionDecl:
			b.methodNames[md] = fmt.Sprintf("%s_%s", decl.Name.Value, md.Name.Value)
		case *ast.ProcedureDecl:
			b.procNames[md] = fmt.Sprintf("%s_%s", decl.Name.Value, md.Name.Value)
		}
	}
}

// irType maps a semantic PlasmType to its IR type. Numeric primitives
// collapse width here (u8/u16/u32/i8/i16/i32/bool -> i32, u64/i64 -> i64)
// rather than carrying full-width fidelity through a separate IR-level
// numeric type and deferring the collapse to WAT emission: the IR
// builder is the only place that still has the PlasmType on hand to
// decide it, and the WAT generator's type mapping (spec.md SS4.6) turns
// out to be a no-op once this collapse already happened here. Signedness
// needed for _s/_u instruction forms is preserved on the instruction
// itself (Instruction.Signed), not on the type.
func (b *Builder) irType(t *types.PlasmType) ir.Type {
	if t == nil {
		return ir.VoidType
	}
	switch t.Kind {
	case types.KindPrimitive:
		switch {
		case t.IsVoid():
			return ir.VoidType
		case t.Primitive == types.F32:
			return ir.F32Type
		case t.Primitive == types.F64:
			return ir.F64Type
		case t.BitWidth() == 64:
			return ir.I64Type
		case t.IsAny():
			return ir.RefType("any", true)
		case t.IsString():
			return ir.RefType("string", false)
		default: // u8/u16/u32/i8/i16/i32/bool
			return ir.I32Type
		}
	case types.KindClass:
		return ir.RefType(t.ClassName, false)
	case types.KindGeneric: // array<T>
		return ir.RefType(arrayTypeName(t), false)
	case types.KindFunction:
		return ir.FuncRefType("")
	default:
		return ir.VoidType
	}
}

// arrayTypeName derives a stable GC type-def name for array<T>;
// arrayTypeDef registers the def the first time an array of T is lowered.
func arrayTypeName(t *types.PlasmType) string {
	elem := t.ElemType()
	if elem == nil {
		return "array_any"
	}
	return "array_" + elem.String()
}

func (b *Builder) arrayTypeDef(t *types.PlasmType) string {
	name := arrayTypeName(t)
	if b.module.FindTypeDef(name) == nil {
		b.module.AddTypeDef(&ir.TypeDef{Name: name, Kind: ir.ArrayDef, Elem: b.irType(t.ElemType()), Mutable: true})
	}
	return name
}

// zeroValue lowers the default value for a field with no initialiser.
func (b *Builder) zeroValue(t *types.PlasmType) ir.Value {
	irt := b.irType(t)
	switch irt.Kind {
	case ir.F32, ir.F64:
		return ir.NewFloatConstant(b.module.NextValueID(), irt, 0)
	case ir.Ref, ir.FuncRef:
		return b.currentBlock.RefNull(b.module.NextValueID, irt.RefName)
	default:
		return ir.NewIntConstant(b.module.NextValueID(), irt, 0)
	}
}

func (b *Builder) isSigned(t *types.PlasmType) bool {
	return t != nil && t.IsSigned()
}

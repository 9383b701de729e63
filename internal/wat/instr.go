package wat

import (
	"fmt"
	"strings"

	"github.com/lehlud/plasm/internal/ir"
)

// push emits the code that leaves v's value on the wasm stack: a literal
// for a constant, `global.get`/`local.get` for everything else.
func (fg *funcGen) push(out *strings.Builder, indent int, v ir.Value) {
	switch val := v.(type) {
	case *ir.Constant:
		fg.pushConst(out, indent, val)
	case *ir.Global:
		fg.line(out, indent, "global.get $%s", val.Name())
	case *ir.Param:
		fg.line(out, indent, "local.get $p_%s", val.Name())
	default:
		fg.line(out, indent, "local.get $v%d", v.ID())
	}
}

func (fg *funcGen) pushConst(out *strings.Builder, indent int, c *ir.Constant) {
	switch c.Kind {
	case ir.ConstI32:
		fg.line(out, indent, "i32.const %d", c.IntValue)
	case ir.ConstI64:
		fg.line(out, indent, "i64.const %d", c.IntValue)
	case ir.ConstF32:
		fg.line(out, indent, "f32.const %v", c.FloatValue)
	case ir.ConstF64:
		fg.line(out, indent, "f64.const %v", c.FloatValue)
	case ir.ConstString:
		off, ln := fg.g.strOffset[c.StrValue], fg.g.strLen[c.StrValue]
		fg.line(out, indent, "array.new_data $string $strdata (i32.const %d) (i32.const %d)", off, ln)
	}
}

// setResult stores the just-computed value into instr's own local,
// unless instr produces no value (store, struct.set, array.set).
func (fg *funcGen) setResult(out *strings.Builder, indent int, instr *ir.Instruction) {
	if instr.Type().IsVoid() {
		return
	}
	fg.line(out, indent, "local.set $v%d", instr.ID())
}

// numPrefix returns the wasm numeric-type prefix ("i32"/"i64"/"f32"/"f64")
// an arithmetic/comparison opcode dispatches on, taken from its first
// operand's type.
func numPrefix(t ir.Type) string {
	switch t.Kind {
	case ir.I32:
		return "i32"
	case ir.I64:
		return "i64"
	case ir.F32:
		return "f32"
	case ir.F64:
		return "f64"
	default:
		return "i32"
	}
}

func isFloatPrefix(p string) bool { return p == "f32" || p == "f64" }

// emitInstr renders one non-terminator instruction: operands pushed,
// opcode mnemonic(s) emitted, result stored to its local.
func (fg *funcGen) emitInstr(out *strings.Builder, indent int, instr *ir.Instruction) {
	switch instr.Op {
	case ir.OpAlloca:
		// The local itself was already declared in collectLocals; an
		// alloca with no initialiser just leaves it at wasm's default
		// zero value until the first store.
		return

	case ir.OpLoad:
		fg.push(out, indent, instr.Operands[0])
		fg.setResult(out, indent, instr)
		return

	case ir.OpStore:
		fg.push(out, indent, instr.Operands[0])
		fg.line(out, indent, "local.set $v%d", instr.Operands[1].ID())
		return

	case ir.OpNeg:
		prefix := numPrefix(instr.Operands[0].Type())
		if isFloatPrefix(prefix) {
			fg.push(out, indent, instr.Operands[0])
			fg.line(out, indent, "%s.neg", prefix)
		} else {
			fg.line(out, indent, "%s.const 0", prefix)
			fg.push(out, indent, instr.Operands[0])
			fg.line(out, indent, "%s.sub", prefix)
		}
		fg.setResult(out, indent, instr)
		return

	case ir.OpNot:
		fg.push(out, indent, instr.Operands[0])
		fg.line(out, indent, "i32.eqz")
		fg.setResult(out, indent, instr)
		return
	}

	if mnemonic, ok := binaryMnemonic(instr); ok {
		fg.push(out, indent, instr.Operands[0])
		fg.push(out, indent, instr.Operands[1])
		fg.line(out, indent, mnemonic)
		fg.setResult(out, indent, instr)
		return
	}

	switch instr.Op {
	case ir.OpCall:
		for _, op := range instr.Operands {
			fg.push(out, indent, op)
		}
		fg.line(out, indent, "call $%s", instr.CalleeName)

	case ir.OpCallIndirect:
		fg.push(out, indent, instr.Operands[0])
		for _, op := range instr.Operands[1:] {
			fg.push(out, indent, op)
		}
		fg.line(out, indent, "call_ref $fn_any")

	case ir.OpFuncRef:
		fg.line(out, indent, "ref.func $%s", instr.CalleeName)

	case ir.OpCast:
		fg.emitCast(out, indent, instr)

	case ir.OpStructNew:
		for _, op := range instr.Operands {
			fg.push(out, indent, op)
		}
		fg.line(out, indent, "struct.new $%s", instr.TypeName)

	case ir.OpStructGet:
		fg.push(out, indent, instr.Operands[0])
		fg.line(out, indent, "struct.get $%s $%s", instr.TypeName, instr.FieldName)

	case ir.OpStructSet:
		fg.push(out, indent, instr.Operands[0])
		fg.push(out, indent, instr.Operands[1])
		fg.line(out, indent, "struct.set $%s $%s", instr.TypeName, instr.FieldName)

	case ir.OpArrayNew:
		fg.push(out, indent, instr.Operands[0])
		fg.push(out, indent, instr.Operands[1])
		fg.line(out, indent, "array.new $%s", instr.TypeName)

	case ir.OpArrayNewDefault:
		fg.push(out, indent, instr.Operands[0])
		fg.line(out, indent, "array.new_default $%s", instr.TypeName)

	case ir.OpArrayGet:
		fg.push(out, indent, instr.Operands[0])
		fg.push(out, indent, instr.Operands[1])
		fg.line(out, indent, "array.get $%s", instr.TypeName)

	case ir.OpArraySet:
		fg.push(out, indent, instr.Operands[0])
		fg.push(out, indent, instr.Operands[1])
		fg.push(out, indent, instr.Operands[2])
		fg.line(out, indent, "array.set $%s", instr.TypeName)

	case ir.OpArrayLen:
		fg.push(out, indent, instr.Operands[0])
		fg.line(out, indent, "array.len")

	case ir.OpRefNull:
		fg.line(out, indent, "ref.null $%s", instr.TypeName)

	case ir.OpRefIsNull:
		fg.push(out, indent, instr.Operands[0])
		fg.line(out, indent, "ref.is_null")

	case ir.OpRefEq:
		fg.push(out, indent, instr.Operands[0])
		fg.push(out, indent, instr.Operands[1])
		fg.line(out, indent, "ref.eq")

	case ir.OpRefCast:
		fg.push(out, indent, instr.Operands[0])
		fg.line(out, indent, "ref.cast (ref $%s)", instr.TypeName)

	case ir.OpRefTest:
		fg.push(out, indent, instr.Operands[0])
		fg.line(out, indent, "ref.test (ref $%s)", instr.TypeName)

	case ir.OpRttCanon:
		fg.line(out, indent, "rtt.canon $%s", instr.TypeName)

	case ir.OpRttSub:
		fg.push(out, indent, instr.Operands[0])
		fg.line(out, indent, "rtt.sub $%s", instr.TypeName)

	case ir.OpI31New:
		fg.push(out, indent, instr.Operands[0])
		fg.line(out, indent, "ref.i31")

	case ir.OpI31GetS:
		fg.push(out, indent, instr.Operands[0])
		fg.line(out, indent, "i31.get_s")

	case ir.OpI31GetU:
		fg.push(out, indent, instr.Operands[0])
		fg.line(out, indent, "i31.get_u")

	default:
		panic(fmt.Sprintf("wat: unhandled opcode %s", instr.Op))
	}

	fg.setResult(out, indent, instr)
}

// binaryMnemonic maps the arithmetic/comparison/logical opcodes to their
// wasm mnemonic, choosing the numeric prefix from the left operand's type
// and the _s/_u suffix from Instruction.Signed where the opcode forks on
// signedness.
func binaryMnemonic(instr *ir.Instruction) (string, bool) {
	if len(instr.Operands) != 2 {
		return "", false
	}
	prefix := numPrefix(instr.Operands[0].Type())
	isFloat := isFloatPrefix(prefix)

	switch instr.Op {
	case ir.OpAdd:
		return prefix + ".add", true
	case ir.OpSub:
		return prefix + ".sub", true
	case ir.OpMul:
		return prefix + ".mul", true
	case ir.OpDiv:
		if isFloat {
			return prefix + ".div", true
		}
		return prefix + signedSuffix(".div_s", ".div_u", instr.Signed), true
	case ir.OpRem:
		return prefix + signedSuffix(".rem_s", ".rem_u", instr.Signed), true
	case ir.OpEq:
		return prefix + ".eq", true
	case ir.OpNeq:
		return prefix + ".ne", true
	case ir.OpLt:
		if isFloat {
			return prefix + ".lt", true
		}
		return prefix + signedSuffix(".lt_s", ".lt_u", instr.Signed), true
	case ir.OpGt:
		if isFloat {
			return prefix + ".gt", true
		}
		return prefix + signedSuffix(".gt_s", ".gt_u", instr.Signed), true
	case ir.OpLe:
		if isFloat {
			return prefix + ".le", true
		}
		return prefix + signedSuffix(".le_s", ".le_u", instr.Signed), true
	case ir.OpGe:
		if isFloat {
			return prefix + ".ge", true
		}
		return prefix + signedSuffix(".ge_s", ".ge_u", instr.Signed), true
	case ir.OpAnd:
		return "i32.and", true
	case ir.OpOr:
		return "i32.or", true
	default:
		return "", false
	}
}

func signedSuffix(signed, unsigned string, isSigned bool) string {
	if isSigned {
		return signed
	}
	return unsigned
}

// emitCast maps a cross-numeric-kind conversion to its wasm instruction.
// Casts between PlasmTypes that already collapsed to the same ir.Kind
// (e.g. u8 -> i32, both i32) need no instruction at all: the operand's
// value is already the correct wasm representation, so it's just
// re-stored into the cast's own local.
func (fg *funcGen) emitCast(out *strings.Builder, indent int, instr *ir.Instruction) {
	src := instr.Operands[0].Type()
	dst := instr.Type()
	fg.push(out, indent, instr.Operands[0])

	if src.Kind == dst.Kind {
		return
	}

	switch {
	case src.Kind == ir.I32 && dst.Kind == ir.I64:
		fg.line(out, indent, signedSuffix("i64.extend_i32_s", "i64.extend_i32_u", instr.Signed))
	case src.Kind == ir.I64 && dst.Kind == ir.I32:
		fg.line(out, indent, "i32.wrap_i64")
	case src.Kind == ir.I32 && dst.Kind == ir.F32:
		fg.line(out, indent, signedSuffix("f32.convert_i32_s", "f32.convert_i32_u", instr.Signed))
	case src.Kind == ir.I32 && dst.Kind == ir.F64:
		fg.line(out, indent, signedSuffix("f64.convert_i32_s", "f64.convert_i32_u", instr.Signed))
	case src.Kind == ir.I64 && dst.Kind == ir.F32:
		fg.line(out, indent, signedSuffix("f32.convert_i64_s", "f32.convert_i64_u", instr.Signed))
	case src.Kind == ir.I64 && dst.Kind == ir.F64:
		fg.line(out, indent, signedSuffix("f64.convert_i64_s", "f64.convert_i64_u", instr.Signed))
	case src.Kind == ir.F32 && dst.Kind == ir.I32:
		fg.line(out, indent, signedSuffix("i32.trunc_f32_s", "i32.trunc_f32_u", instr.Signed))
	case src.Kind == ir.F64 && dst.Kind == ir.I32:
		fg.line(out, indent, signedSuffix("i32.trunc_f64_s", "i32.trunc_f64_u", instr.Signed))
	case src.Kind == ir.F32 && dst.Kind == ir.I64:
		fg.line(out, indent, signedSuffix("i64.trunc_f32_s", "i64.trunc_f32_u", instr.Signed))
	case src.Kind == ir.F64 && dst.Kind == ir.I64:
		fg.line(out, indent, signedSuffix("i64.trunc_f64_s", "i64.trunc_f64_u", instr.Signed))
	case src.Kind == ir.F32 && dst.Kind == ir.F64:
		fg.line(out, indent, "f64.promote_f32")
	case src.Kind == ir.F64 && dst.Kind == ir.F32:
		fg.line(out, indent, "f32.demote_f64")
	default:
		panic(fmt.Sprintf("wat: unsupported cast %s -> %s", src, dst))
	}
}

// Package wat reconstructs structured control flow from an ir.Module and
// emits it as WebAssembly text format (WAT) targeting the GC and typed
// function-references proposals. It assumes its input already passed
// through the front end and semantic analysis cleanly: Generate never
// produces diagnostics, the same way irbuilder's lowering never does
// once semantic.Analyze reports zero errors.
package wat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lehlud/plasm/internal/ir"
)

// Generate renders module as a complete WAT text module.
func Generate(module *ir.Module) string {
	g := &generator{module: module}
	g.collectStrings()
	g.collectImports()

	var out strings.Builder
	out.WriteString("(module\n")

	g.emitTypeSection(&out)
	g.emitImportSection(&out)
	if module.UsesMemory() {
		// Reserved for host-runtime use (e.g. plasm_string_concat's own
		// scratch space); the generator itself spills every alloca to a
		// wasm local rather than a linear-memory cell, since wasm-GC
		// references can't be stored in memory and a uniform local-based
		// scheme keeps numeric and reference locals on the same footing.
		out.WriteString("  (memory $mem 1)\n")
	}
	g.emitStringData(&out)
	g.emitGlobalSection(&out)

	for _, fn := range module.Functions {
		fg := newFuncGen(g, fn)
		fg.emit(&out)
	}

	out.WriteString(")\n")
	return out.String()
}

// generator carries module-wide state shared across every function being
// emitted: the builtin/user type section, the host-import table, and the
// interned string-literal data segment.
type generator struct {
	module *ir.Module

	strings   []string       // interned string literals, in first-use order
	strOffset map[string]int // byte offset of each literal within the data segment
	strLen    map[string]int

	imports   []importFunc // host functions referenced but never defined
	importSet map[string]bool
}

type importFunc struct {
	name   string
	params []ir.Type
	result ir.Type
}

// collectStrings walks every instruction operand in the module looking
// for string-constant values, and lays them out end to end in one
// passive data segment keyed by first-use order.
func (g *generator) collectStrings() {
	g.strOffset = make(map[string]int)
	g.strLen = make(map[string]int)
	offset := 0

	intern := func(v ir.Value) {
		c, ok := v.(*ir.Constant)
		if !ok || c.Kind != ir.ConstString {
			return
		}
		if _, seen := g.strOffset[c.StrValue]; seen {
			return
		}
		g.strOffset[c.StrValue] = offset
		g.strLen[c.StrValue] = len(c.StrValue)
		g.strings = append(g.strings, c.StrValue)
		offset += len(c.StrValue)
	}

	for _, gl := range g.module.Globals {
		if gl.Init != nil {
			intern(gl.Init)
		}
	}
	for _, fn := range g.module.Functions {
		for _, b := range fn.Blocks {
			for _, instr := range b.Instructions {
				for _, op := range instr.Operands {
					intern(op)
				}
			}
		}
	}
}

// collectImports finds every OpCall/OpFuncRef callee name with no
// matching ir.Function: these are host-provided builtins (only
// plasm_string_concat today, see DESIGN.md) and need a WAT import
// declaration instead of a local function definition.
func (g *generator) collectImports() {
	g.importSet = make(map[string]bool)
	defined := make(map[string]bool, len(g.module.Functions))
	for _, fn := range g.module.Functions {
		defined[fn.Name] = true
	}

	record := func(name string, params []ir.Type, result ir.Type) {
		if defined[name] || g.importSet[name] {
			return
		}
		g.importSet[name] = true
		g.imports = append(g.imports, importFunc{name: name, params: params, result: result})
	}

	for _, fn := range g.module.Functions {
		for _, b := range fn.Blocks {
			for _, instr := range b.Instructions {
				switch instr.Op {
				case ir.OpCall:
					params := make([]ir.Type, len(instr.Operands))
					for i, op := range instr.Operands {
						params[i] = op.Type()
					}
					record(instr.CalleeName, params, instr.Type())
				case ir.OpFuncRef:
					record(instr.CalleeName, nil, ir.VoidType)
				}
			}
		}
	}
}

func (g *generator) emitImportSection(out *strings.Builder) {
	for _, imp := range g.imports {
		fmt.Fprintf(out, "  (import \"env\" \"%s\" (func $%s", imp.name, imp.name)
		for _, p := range imp.params {
			fmt.Fprintf(out, " (param %s)", wasmValType(p))
		}
		if !imp.result.IsVoid() {
			fmt.Fprintf(out, " (result %s)", wasmValType(imp.result))
		}
		out.WriteString("))\n")
	}
}

func (g *generator) emitStringData(out *strings.Builder) {
	if len(g.strings) == 0 {
		return
	}
	var blob strings.Builder
	for _, s := range g.strings {
		blob.WriteString(s)
	}
	fmt.Fprintf(out, "  (data $strdata %q)\n", blob.String())
}

func (g *generator) emitGlobalSection(out *strings.Builder) {
	for _, gl := range g.module.Globals {
		t := wasmValType(gl.Type())
		if gl.IsConstant && gl.Init != nil {
			fmt.Fprintf(out, "  (global $%s %s (%s))\n", gl.Name(), t, g.constInit(gl.Init))
			continue
		}
		// No recoverable literal initialiser: declared mutable, default
		// zero value, left for the host/runtime to populate (see
		// irbuilder's lowerConst doc comment).
		fmt.Fprintf(out, "  (global $%s (mut %s) (%s))\n", gl.Name(), t, zeroInit(gl.Type()))
	}
}

// constInit renders a module-level constant initialiser expression; used
// only for globals, where the value must be a single constant
// instruction sequence rather than arbitrary code.
func (g *generator) constInit(v ir.Value) string {
	c, ok := v.(*ir.Constant)
	if !ok {
		return zeroInit(v.Type())
	}
	switch c.Kind {
	case ir.ConstI32:
		return fmt.Sprintf("i32.const %d", c.IntValue)
	case ir.ConstI64:
		return fmt.Sprintf("i64.const %d", c.IntValue)
	case ir.ConstF32:
		return fmt.Sprintf("f32.const %v", c.FloatValue)
	case ir.ConstF64:
		return fmt.Sprintf("f64.const %v", c.FloatValue)
	case ir.ConstString:
		off, ln := g.strOffset[c.StrValue], g.strLen[c.StrValue]
		return fmt.Sprintf("array.new_data $string $strdata (i32.const %d) (i32.const %d)", off, ln)
	default:
		return zeroInit(v.Type())
	}
}

func zeroInit(t ir.Type) string {
	switch t.Kind {
	case ir.I32:
		return "i32.const 0"
	case ir.I64:
		return "i64.const 0"
	case ir.F32:
		return "f32.const 0"
	case ir.F64:
		return "f64.const 0"
	case ir.FuncRef:
		return "ref.null $fn_any"
	default:
		return fmt.Sprintf("ref.null %s", wasmHeapType(t))
	}
}

// emitTypeSection emits the builtin string/any representations plus one
// struct or array definition per registered ir.TypeDef, sorted by name
// for a stable, order-independent rendering. A definition may reference
// one emitted after it (a class field of an array type registered after
// the class in irbuilder, say): WAT type references resolve by name
// here, not position.
func (g *generator) emitTypeSection(out *strings.Builder) {
	out.WriteString("  (type $string (array (mut i8)))\n")
	out.WriteString("  (type $any (struct))\n")
	out.WriteString("  (type $fn_any (func))\n")

	defs := append([]*ir.TypeDef(nil), g.module.TypeDefs...)
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })

	for _, td := range defs {
		switch td.Kind {
		case ir.StructDef:
			fmt.Fprintf(out, "  (type $%s (struct", td.Name)
			for _, f := range td.Fields {
				mut := ""
				if f.Mutable {
					mut = "mut "
				}
				fmt.Fprintf(out, " (field $%s (%s%s))", f.Name, mut, wasmValType(f.Type))
			}
			out.WriteString("))\n")
		case ir.ArrayDef:
			mut := ""
			if td.Mutable {
				mut = "mut "
			}
			fmt.Fprintf(out, "  (type $%s (array (%s%s)))\n", td.Name, mut, wasmValType(td.Elem))
		}
	}
}

// wasmValType renders an ir.Type as the value-type spelling used in
// param/result/local/field position.
func wasmValType(t ir.Type) string {
	switch t.Kind {
	case ir.I32:
		return "i32"
	case ir.I64:
		return "i64"
	case ir.F32:
		return "f32"
	case ir.F64:
		return "f64"
	case ir.FuncRef:
		// Every function-reference value is given the same nominal
		// $fn_any type (see DESIGN.md): call_ref needs a concretely
		// typed ref operand, and the IR doesn't track per-signature
		// function types, so one shared top-ish type stands in for all
		// of them rather than generating one per call-site arity.
		return "(ref null $fn_any)"
	case ir.Void:
		return "i32" // unreachable in practice: void never occupies a value slot
	default:
		if t.Nullable {
			return fmt.Sprintf("(ref null $%s)", t.RefName)
		}
		return fmt.Sprintf("(ref $%s)", t.RefName)
	}
}

// wasmHeapType renders the bare heap-type name used by ref.null, without
// the enclosing (ref ...) wrapper.
func wasmHeapType(t ir.Type) string {
	if t.RefName == "" {
		return "any"
	}
	return "$" + t.RefName
}

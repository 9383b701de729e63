package irbuilder

import (
	"testing"

	"github.com/lehlud/plasm/internal/ir"
	"github.com/lehlud/plasm/internal/parser"
	"github.com/lehlud/plasm/internal/semantic"
)

// build parses and analyzes src, failing the test on any parse or
// semantic diagnostic, then lowers the result to an ir.Module.
func build(t *testing.T, src string) *ir.Module {
	t.Helper()
	p := parser.New(src)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	info, diags := semantic.Analyze(program)
	if len(diags) > 0 {
		t.Fatalf("unexpected semantic diagnostics: %v", diags)
	}
	return Build(program, info)
}

func TestBuildSimpleFunction(t *testing.T) {
	module := build(t, `fn add(i32 a, i32 b) i32 { return a + b; }`)

	fn := module.FindFunction("add")
	if fn == nil {
		t.Fatalf("expected a lowered function named add")
	}
	if len(fn.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(fn.Params))
	}
	if fn.Result != ir.I32Type {
		t.Errorf("Result = %v, want i32", fn.Result)
	}
	if len(fn.Blocks) != 1 || fn.Blocks[0].Label != "entry" {
		t.Fatalf("expected a single entry block, got %+v", fn.Blocks)
	}
	if !fn.Blocks[0].Terminated() {
		t.Errorf("entry block should be terminated by the return statement")
	}
}

func TestBuildIfElseBlockStructure(t *testing.T) {
	module := build(t, `
		fn f(i32 x) i32 {
			if (x > 0) { return 1; } else { return 0; }
		}
	`)
	fn := module.FindFunction("f")
	labels := make([]string, len(fn.Blocks))
	for i, b := range fn.Blocks {
		labels[i] = b.Label
	}
	want := []string{"entry", "then", "else", "merge"}
	if len(labels) != len(want) {
		t.Fatalf("got blocks %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("block %d label = %q, want %q", i, labels[i], want[i])
		}
	}
	// Both arms return, so nothing branches into merge; it is closed only
	// by the implicit bare return added at the end of the body.
	entry := fn.Blocks[0]
	if entry.Term.Op != ir.TermCondBr {
		t.Errorf("entry terminator = %v, want TermCondBr", entry.Term.Op)
	}
}

func TestBuildWhileBlockStructure(t *testing.T) {
	module := build(t, `
		fn f(i32 x) void {
			while (x > 0) { x = x - 1; }
		}
	`)
	fn := module.FindFunction("f")
	labels := make([]string, len(fn.Blocks))
	for i, b := range fn.Blocks {
		labels[i] = b.Label
	}
	want := []string{"entry", "while_header", "while_body", "while_exit"}
	if len(labels) != len(want) {
		t.Fatalf("got blocks %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("block %d label = %q, want %q", i, labels[i], want[i])
		}
	}

	header := fn.Blocks[1]
	if header.Term.Op != ir.TermCondBr {
		t.Errorf("while_header terminator = %v, want TermCondBr", header.Term.Op)
	}
	body := fn.Blocks[2]
	if body.Term.Op != ir.TermBr || body.Term.Then != header {
		t.Errorf("while_body should branch back to while_header, got %+v", body.Term)
	}
}

func TestBuildClassRegistersStructTypeDef(t *testing.T) {
	module := build(t, `
		class Point {
			pub final i32 x;
			pub final i32 y;
			constructor(i32 x, i32 y) { }
		}
		fn f() void { let p = Point(1 as i32, 2 as i32); }
	`)
	td := module.FindTypeDef("Point")
	if td == nil {
		t.Fatalf("expected a Point struct type def")
	}
	if td.Kind != ir.StructDef || len(td.Fields) != 2 {
		t.Fatalf("Point type def = %+v, want a 2-field struct", td)
	}
	if module.FindFunction("Point_constructor_0") == nil {
		t.Errorf("expected a lowered constructor named Point_constructor_0")
	}
}

func TestBuildOperatorOverloadMangledName(t *testing.T) {
	module := build(t, `
		class Point {
			pub final i32 x;
			constructor(i32 x) { }
			op(+) (Point other) Point { return self; }
		}
		fn f() void { let p = Point(1 as i32); let q = p + p; }
	`)
	if module.FindFunction("Point_op_add") == nil {
		t.Errorf("expected the + overload lowered as Point_op_add")
	}
}

func TestBuildConstGlobal(t *testing.T) {
	module := build(t, `const PI: f64 = 3.14;`)
	if len(module.Globals) != 1 {
		t.Fatalf("got %d globals, want 1", len(module.Globals))
	}
	g := module.Globals[0]
	if g.Name() != "PI" || g.Type() != ir.F64Type {
		t.Errorf("global = %+v, want PI of type f64", g)
	}
	if !g.IsConstant || g.Init == nil {
		t.Errorf("PI should have a constant Init, got %+v", g)
	}
}

func TestBuildFunctionParamsAreAllocaAndStored(t *testing.T) {
	module := build(t, `fn f(i32 a) void { }`)
	fn := module.FindFunction("f")
	entry := fn.Blocks[0]
	if len(entry.Instructions) < 2 {
		t.Fatalf("expected at least an alloca and a store, got %d instructions", len(entry.Instructions))
	}
	if entry.Instructions[0].Op != ir.OpAlloca {
		t.Errorf("first instruction = %v, want OpAlloca", entry.Instructions[0].Op)
	}
	if entry.Instructions[1].Op != ir.OpStore {
		t.Errorf("second instruction = %v, want OpStore", entry.Instructions[1].Op)
	}
}

func TestBuildLambdaLiftedAsSeparateFunction(t *testing.T) {
	module := build(t, `
		fn apply((i32) => i32 f, i32 x) i32 { return f(x); }
		fn main() i32 { return apply(@(i32 a) => a + 1, 1); }
	`)
	var found bool
	for _, fn := range module.Functions {
		if fn.Name == "__lambda_0" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a lifted lambda function named __lambda_0, got functions: %v", functionNames(module))
	}
}

func functionNames(module *ir.Module) []string {
	names := make([]string, len(module.Functions))
	for i, fn := range module.Functions {
		names[i] = fn.Name
	}
	return names
}

func TestMissingBodyFunctionStillTerminates(t *testing.T) {
	module := build(t, `fn f() void { }`)
	fn := module.FindFunction("f")
	if !fn.Blocks[0].Terminated() {
		t.Errorf("an empty void function body should still get an implicit return")
	}
	if fn.Blocks[0].Term.Op != ir.TermRet || fn.Blocks[0].Term.Value != nil {
		t.Errorf("implicit terminator = %+v, want a bare void TermRet", fn.Blocks[0].Term)
	}
}

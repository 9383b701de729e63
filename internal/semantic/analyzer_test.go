package semantic

import (
	"testing"

	"github.com/lehlud/plasm/internal/ast"
	"github.com/lehlud/plasm/internal/parser"
)

// analyze parses src and runs the full (name + type) analysis pipeline,
// failing the test immediately if parsing itself errors.
func analyze(t *testing.T, src string) (*ast.Program, *Info, []diagErr) {
	t.Helper()
	p := parser.New(src)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	info, diags := Analyze(program)
	out := make([]diagErr, len(diags))
	for i, d := range diags {
		out[i] = diagErr{d.String()}
	}
	return program, info, out
}

type diagErr struct{ msg string }

func TestAnalyzeCleanProgramHasNoDiagnostics(t *testing.T) {
	_, _, diags := analyze(t, `
		fn add(i32 a, i32 b) i32 { return a + b; }
		fn main() i32 { return add(1, 2); }
	`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
}

func TestUndefinedIdentifierIsReported(t *testing.T) {
	_, _, diags := analyze(t, `fn f() i32 { return missing; }`)
	if len(diags) == 0 {
		t.Fatalf("expected a diagnostic for the undefined identifier")
	}
}

func TestDuplicateDeclarationInSameScopeIsReported(t *testing.T) {
	_, _, diags := analyze(t, `
		fn f() void { let x = 1; let x = 2; }
	`)
	if len(diags) == 0 {
		t.Fatalf("expected a diagnostic for the redeclared local")
	}
}

func TestShadowingAcrossScopesIsFine(t *testing.T) {
	_, _, diags := analyze(t, `
		fn f(i32 x) i32 {
			if (true) { let x = 2; }
			return x;
		}
	`)
	if len(diags) != 0 {
		t.Fatalf("shadowing a param in a nested block should be legal, got: %v", diags)
	}
}

func TestLiteralWideningToDeclaredType(t *testing.T) {
	program, info, diags := analyze(t, `fn f() void { let i32 x = 1; }`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	fn := program.Declarations[0].(*ast.FunctionDecl)
	decl := fn.Body.Statements[0].(*ast.VarDecl)
	init := decl.Bindings[0].Init
	got := info.TypeOf(init)
	if got == nil || !got.IsInteger() || got.BitWidth() != 32 {
		t.Errorf("literal's recorded type = %v, want i32", got)
	}
}

func TestIntegerLiteralDefaultsToI64WithoutATarget(t *testing.T) {
	program, info, diags := analyze(t, `fn f() void { let x = 1; }`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	fn := program.Declarations[0].(*ast.FunctionDecl)
	decl := fn.Body.Statements[0].(*ast.VarDecl)
	got := info.TypeOf(decl.Bindings[0].Init)
	if got == nil || got.BitWidth() != 64 || !got.IsSigned() {
		t.Errorf("untargeted literal's type = %v, want i64", got)
	}
}

func TestMismatchedReturnTypeIsReported(t *testing.T) {
	_, _, diags := analyze(t, `fn f() i32 { return "not an int"; }`)
	if len(diags) == 0 {
		t.Fatalf("expected a diagnostic for returning a string from an i32 function")
	}
}

func TestOperatorOverloadResolution(t *testing.T) {
	program, info, diags := analyze(t, `
		class Point {
			pub final i32 x;
			pub final i32 y;
			constructor(i32 x, i32 y) { }
			op(+) (Point other) Point { return self; }
		}
		fn f() void { let p = Point(1 as i32, 2 as i32); let q = p + p; }
	`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	var binExpr *ast.BinaryExpression
	fn := program.Declarations[len(program.Declarations)-1].(*ast.FunctionDecl)
	decl := fn.Body.Statements[1].(*ast.VarDecl)
	binExpr = decl.Bindings[0].Init.(*ast.BinaryExpression)

	call, ok := info.OperatorCalls[binExpr]
	if !ok {
		t.Fatalf("expected an OperatorCalls entry for the + expression")
	}
	if call.Class.Name != "Point" || call.Operator.Symbol != "+" {
		t.Errorf("resolved operator call = %+v, want Point.op(+)", call)
	}
}

func TestConstructorOverloadResolutionRecordsArity(t *testing.T) {
	program, info, diags := analyze(t, `
		class Pair {
			pub final i32 a;
			pub final i32 b;
			constructor(i32 a, i32 b) { }
		}
		fn f() void { let p = Pair(1 as i32, 2 as i32); }
	`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	fn := program.Declarations[len(program.Declarations)-1].(*ast.FunctionDecl)
	decl := fn.Body.Statements[0].(*ast.VarDecl)
	call := decl.Bindings[0].Init.(*ast.CallExpression)

	cc, ok := info.ConstructorCalls[call]
	if !ok {
		t.Fatalf("expected a ConstructorCalls entry for Pair(1 as i32, 2 as i32)")
	}
	if len(cc.Constructor.Params) != 2 {
		t.Errorf("resolved constructor has %d params, want 2", len(cc.Constructor.Params))
	}
}

func TestLambdaArityMismatchIsReported(t *testing.T) {
	_, _, diags := analyze(t, `
		fn apply((i32) => i32 f, i32 x) i32 { return f(x); }
		fn main() i32 { return apply(@(i32 a, i32 b) => a + b, 1); }
	`)
	if len(diags) == 0 {
		t.Fatalf("expected a diagnostic for the lambda/parameter arity mismatch")
	}
}

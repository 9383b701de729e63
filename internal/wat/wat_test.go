package wat_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/lehlud/plasm/internal/irbuilder"
	"github.com/lehlud/plasm/internal/parser"
	"github.com/lehlud/plasm/internal/semantic"
	"github.com/lehlud/plasm/internal/wat"
)

// generate runs src through the full front end and lowers it to WAT text,
// failing the test on any parse or semantic diagnostic.
func generate(t *testing.T, src string) string {
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
	module := irbuilder.Build(program, info)
	return wat.Generate(module)
}

func TestGenerateArithmeticFunction(t *testing.T) {
	snaps.MatchSnapshot(t, generate(t, `fn add(i32 a, i32 b) i32 { return a + b; }`))
}

func TestGenerateIfElse(t *testing.T) {
	snaps.MatchSnapshot(t, generate(t, `
		fn max(i32 a, i32 b) i32 {
			if (a > b) { return a; } else { return b; }
		}
	`))
}

func TestGenerateWhileLoop(t *testing.T) {
	snaps.MatchSnapshot(t, generate(t, `
		fn sumTo(i32 n) i32 {
			let i32 total = 0;
			let i32 i = 0;
			while (i < n) {
				total = total + i;
				i = i + 1;
			}
			return total;
		}
	`))
}

func TestGenerateClassWithOperatorOverload(t *testing.T) {
	snaps.MatchSnapshot(t, generate(t, `
		class Point {
			pub final i32 x;
			pub final i32 y;
			constructor(i32 x, i32 y) { }
			op(+) (Point other) Point { return self; }
		}
		fn f() void { let p = Point(1 as i32, 2 as i32); let q = p + p; }
	`))
}

func TestGenerateLambdaCallIndirect(t *testing.T) {
	snaps.MatchSnapshot(t, generate(t, `
		fn apply((i32) => i32 f, i32 x) i32 { return f(x); }
		fn main() i32 { return apply(@(i32 a) => a + 1, 1); }
	`))
}

func TestGenerateStringConstant(t *testing.T) {
	snaps.MatchSnapshot(t, generate(t, `const GREETING: string = "hello";`))
}

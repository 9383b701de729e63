package parser

import (
	"testing"

	"github.com/lehlud/plasm/internal/ast"
)

func checkParserErrors(t *testing.T, p *Parser) {
	t.Helper()
	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			t.Errorf("parser error: %s", e.String())
		}
		t.FailNow()
	}
}

func TestParseConstDecl(t *testing.T) {
	p := New(`const PI: f64 = 3.14;`)
	program := p.ParseProgram()
	checkParserErrors(t, p)

	if len(program.Declarations) != 1 {
		t.Fatalf("got %d declarations, want 1", len(program.Declarations))
	}
	decl, ok := program.Declarations[0].(*ast.ConstDecl)
	if !ok {
		t.Fatalf("Declarations[0] is %T, want *ast.ConstDecl", program.Declarations[0])
	}
	if decl.Name.Value != "PI" {
		t.Errorf("Name.Value = %q, want PI", decl.Name.Value)
	}
	if decl.Type == nil || decl.Type.Name != "f64" {
		t.Errorf("Type = %v, want f64", decl.Type)
	}
}

func TestParseFunctionDecl(t *testing.T) {
	p := New(`fn add(i32 a, i32 b) i32 { return a + b; }`)
	program := p.ParseProgram()
	checkParserErrors(t, p)

	decl, ok := program.Declarations[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("Declarations[0] is %T, want *ast.FunctionDecl", program.Declarations[0])
	}
	if decl.Name.Value != "add" {
		t.Errorf("Name.Value = %q, want add", decl.Name.Value)
	}
	if len(decl.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(decl.Params))
	}
	if decl.Params[0].Name != "a" || decl.Params[1].Name != "b" {
		t.Errorf("Params = %+v", decl.Params)
	}
	if decl.ReturnType == nil || decl.ReturnType.Name != "i32" {
		t.Errorf("ReturnType = %v, want i32", decl.ReturnType)
	}
	if len(decl.Body.Statements) != 1 {
		t.Fatalf("got %d body statements, want 1", len(decl.Body.Statements))
	}
	ret, ok := decl.Body.Statements[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("body statement is %T, want *ast.ReturnStatement", decl.Body.Statements[0])
	}
	bin, ok := ret.Value.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("return value is %T, want *ast.BinaryExpression", ret.Value)
	}
	if bin.Operator != "+" {
		t.Errorf("Operator = %q, want +", bin.Operator)
	}
}

func TestParseVarDeclWithoutType(t *testing.T) {
	p := New(`fn f() void { let x = 1, y = 2; }`)
	program := p.ParseProgram()
	checkParserErrors(t, p)

	fn := program.Declarations[0].(*ast.FunctionDecl)
	decl, ok := fn.Body.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("statement is %T, want *ast.VarDecl", fn.Body.Statements[0])
	}
	if decl.Type != nil {
		t.Errorf("Type = %v, want nil (omitted)", decl.Type)
	}
	if len(decl.Bindings) != 2 {
		t.Fatalf("got %d bindings, want 2", len(decl.Bindings))
	}
	if decl.Bindings[0].Name.Value != "x" || decl.Bindings[1].Name.Value != "y" {
		t.Errorf("Bindings = %+v", decl.Bindings)
	}
}

func TestParseIfElse(t *testing.T) {
	p := New(`fn f() void { if (true) { return; } else { return; } }`)
	program := p.ParseProgram()
	checkParserErrors(t, p)

	fn := program.Declarations[0].(*ast.FunctionDecl)
	stmt, ok := fn.Body.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.IfStatement", fn.Body.Statements[0])
	}
	if stmt.Then == nil || stmt.Else == nil {
		t.Errorf("expected both Then and Else to be set")
	}
}

func TestParseWhile(t *testing.T) {
	p := New(`fn f() void { while (x) { return; } }`)
	program := p.ParseProgram()
	checkParserErrors(t, p)

	fn := program.Declarations[0].(*ast.FunctionDecl)
	stmt, ok := fn.Body.Statements[0].(*ast.WhileStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.WhileStatement", fn.Body.Statements[0])
	}
	if _, ok := stmt.Condition.(*ast.Identifier); !ok {
		t.Errorf("Condition is %T, want *ast.Identifier", stmt.Condition)
	}
}

func TestBinaryPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3))"},
		{"(1 + 2) * 3;", "((1 + 2) * 3)"},
		{"1 < 2 && 3 > 4;", "((1 < 2) && (3 > 4))"},
		{"a = b = 1;", "(a = (b = 1))"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p := New("fn f() void { " + tt.input + " }")
			program := p.ParseProgram()
			checkParserErrors(t, p)
			fn := program.Declarations[0].(*ast.FunctionDecl)
			stmt := fn.Body.Statements[0].(*ast.ExpressionStatement)
			if got := stmt.Expression.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseCallExpression(t *testing.T) {
	p := New(`fn f() void { add(1, 2); }`)
	program := p.ParseProgram()
	checkParserErrors(t, p)

	fn := program.Declarations[0].(*ast.FunctionDecl)
	stmt := fn.Body.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("Expression is %T, want *ast.CallExpression", stmt.Expression)
	}
	if len(call.Args) != 2 {
		t.Fatalf("got %d args, want 2", len(call.Args))
	}
}

func TestParseErrorRecoverySynchronizes(t *testing.T) {
	p := New(`fn ok() void { return; } @@@ fn alsoOk() void { return; }`)
	program := p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected at least one parse error for the garbage declaration")
	}
	if len(program.Declarations) != 2 {
		t.Fatalf("got %d declarations after recovery, want 2 (ok and alsoOk)", len(program.Declarations))
	}
}

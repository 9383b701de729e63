package ast

import (
	"testing"

	"github.com/lehlud/plasm/internal/lexer"
)

func TestIdentifierNode(t *testing.T) {
	id := &Identifier{Token: lexer.Token{Literal: "x"}, Value: "x"}
	if id.String() != "x" {
		t.Errorf("String() = %q, want x", id.String())
	}
	if id.TokenLiteral() != "x" {
		t.Errorf("TokenLiteral() = %q, want x", id.TokenLiteral())
	}
	var _ Expression = id // Identifier must satisfy Expression
}

func TestProgramStringJoinsDeclarationsWithNewlines(t *testing.T) {
	prog := &Program{
		Declarations: []Declaration{
			&ImportDecl{Path: "other"},
			&ConstDecl{
				Name:  &Identifier{Value: "PI"},
				Type:  &TypeSpec{Kind: TypeSimple, Name: "f64"},
				Value: &FloatLiteral{Value: 3.14, Token: lexer.Token{Literal: "3.14"}},
			},
		},
	}
	got := prog.String()
	want := "import other;\nconst PI = 3.14;\n"
	if got != want {
		t.Errorf("Program.String() = %q, want %q", got, want)
	}
}

func TestProgramTokenLiteralAndPosPreferImports(t *testing.T) {
	prog := &Program{
		Imports: []*ImportDecl{{Token: lexer.Token{Literal: "import", Pos: lexer.Position{Line: 1, Column: 1}}}},
		Declarations: []Declaration{
			&ConstDecl{Name: &Identifier{Value: "X"}, Token: lexer.Token{Literal: "const", Pos: lexer.Position{Line: 2, Column: 1}}},
		},
	}
	if got := prog.TokenLiteral(); got != "import" {
		t.Errorf("TokenLiteral() = %q, want import", got)
	}
	if got := prog.Pos(); got.Line != 1 {
		t.Errorf("Pos().Line = %d, want 1", got.Line)
	}
}

func TestEmptyProgramPosDefaultsToFirstLine(t *testing.T) {
	prog := &Program{}
	got := prog.Pos()
	if got.Line != 1 || got.Column != 1 {
		t.Errorf("Pos() on an empty program = %+v, want {1, 1}", got)
	}
}

func TestStringInterpolationInterleavesPartsAndExprs(t *testing.T) {
	interp := &StringInterpolation{
		Parts: []string{"hi ", "!"},
		Exprs: []Expression{&Identifier{Value: "name"}},
	}
	got := interp.String()
	want := `"hi ${name}!"`
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTupleExpressionString(t *testing.T) {
	tup := &TupleExpression{
		Elements: []Expression{
			&IntegerLiteral{Value: 1, Token: lexer.Token{Literal: "1"}},
			&IntegerLiteral{Value: 2, Token: lexer.Token{Literal: "2"}},
		},
	}
	got := tup.String()
	want := "(1, 2)"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSelfExpressionString(t *testing.T) {
	if (&SelfExpression{}).String() != "self" {
		t.Errorf("SelfExpression.String() = %q, want self", (&SelfExpression{}).String())
	}
}

func TestOperatorSymbolMangleCoversEveryOverloadableOperator(t *testing.T) {
	symbols := []OperatorSymbol{OpAdd, OpSub, OpMul, OpDiv, OpMod, OpEq, OpNeq, OpLt, OpGt, OpLe, OpGe, OpAnd, OpOr}
	for _, sym := range symbols {
		if _, ok := Mangle[sym]; !ok {
			t.Errorf("Mangle has no entry for operator %q", sym)
		}
	}
}

// TestDeclarationsSatisfyNodeInterface is a compile-time check: if any of
// these stops implementing Node, this file fails to build.
func TestDeclarationsSatisfyNodeInterface(t *testing.T) {
	var _ []Node = []Node{
		(*ConstDecl)(nil),
		(*FunctionDecl)(nil),
		(*ProcedureDecl)(nil),
		(*ClassDecl)(nil),
		(*ImportDecl)(nil),
	}
}

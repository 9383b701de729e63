package symbols

import (
	"testing"

	"github.com/lehlud/plasm/internal/lexer"
)

// dummyNode satisfies ast.Node with the minimum needed for a Symbol's
// Declaration field in a test, without pulling in a real parse.
type dummyNode struct{}

func (dummyNode) TokenLiteral() string      { return "dummy" }
func (dummyNode) String() string            { return "dummy" }
func (dummyNode) Pos() lexer.Position       { return lexer.Position{} }

func TestDefineAndResolve(t *testing.T) {
	scope := NewScope(nil)

	sym, ok := scope.Define("x", dummyNode{}, KindVariable)
	if !ok {
		t.Fatalf("Define(\"x\") should succeed in a fresh scope")
	}
	if sym.Name != "x" || sym.Kind != KindVariable {
		t.Errorf("Define returned %+v, want Name=x Kind=variable", sym)
	}
	if sym.Declaration != (dummyNode{}) {
		t.Errorf("Declaration = %v, want the node passed to Define", sym.Declaration)
	}

	got, ok := scope.Resolve("x")
	if !ok || got != sym {
		t.Errorf("Resolve(\"x\") = %v, %v, want the symbol just defined", got, ok)
	}
}

func TestRedefinitionWithinScopeFails(t *testing.T) {
	scope := NewScope(nil)
	if _, ok := scope.Define("x", nil, KindConstant); !ok {
		t.Fatalf("first Define(\"x\") should succeed")
	}
	if _, ok := scope.Define("x", nil, KindVariable); ok {
		t.Errorf("redefining \"x\" in the same scope should fail")
	}
}

func TestShadowingAcrossScopes(t *testing.T) {
	outer := NewScope(nil)
	outerSym, _ := outer.Define("x", nil, KindConstant)

	inner := NewScope(outer)
	innerSym, ok := inner.Define("x", nil, KindVariable)
	if !ok {
		t.Fatalf("shadowing \"x\" in a nested scope should succeed")
	}

	if got, _ := inner.Resolve("x"); got != innerSym {
		t.Errorf("Resolve(\"x\") from inner should find the shadowing symbol")
	}
	if got, _ := inner.ResolveLocal("x"); got != innerSym {
		t.Errorf("ResolveLocal(\"x\") should find the shadowing symbol")
	}
	if got, _ := outer.Resolve("x"); got != outerSym {
		t.Errorf("Resolve(\"x\") from outer should still find the outer symbol")
	}
}

func TestResolveLocalDoesNotSeeParent(t *testing.T) {
	outer := NewScope(nil)
	outer.Define("x", nil, KindConstant)
	inner := NewScope(outer)

	if _, ok := inner.ResolveLocal("x"); ok {
		t.Errorf("ResolveLocal should not see a parent scope's symbols")
	}
	if _, ok := inner.Resolve("x"); !ok {
		t.Errorf("Resolve should walk up to the parent scope")
	}
}

func TestResolveUndefined(t *testing.T) {
	scope := NewScope(nil)
	if _, ok := scope.Resolve("missing"); ok {
		t.Errorf("Resolve(\"missing\") should fail")
	}
}

func TestParent(t *testing.T) {
	outer := NewScope(nil)
	inner := NewScope(outer)
	if inner.Parent() != outer {
		t.Errorf("Parent() = %v, want %v", inner.Parent(), outer)
	}
	if outer.Parent() != nil {
		t.Errorf("outermost scope's Parent() should be nil")
	}
}

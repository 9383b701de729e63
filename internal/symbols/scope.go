// Package symbols implements the scope chain used by name resolution:
// a symbol table per scope, chained to its parent, with shadowing across
// nesting levels but duplicate-detection within a single scope.
package symbols

import (
	"github.com/lehlud/plasm/internal/ast"
)

// Kind classifies what a Symbol names.
type Kind int

const (
	KindConstant Kind = iota
	KindFunction
	KindProcedure
	KindClass
	KindParameter
	KindVariable
	KindField
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindFunction:
		return "function"
	case KindProcedure:
		return "procedure"
	case KindClass:
		return "class"
	case KindParameter:
		return "parameter"
	case KindVariable:
		return "variable"
	case KindField:
		return "field"
	default:
		return "unknown"
	}
}

// Symbol binds a name to the declaration that introduced it.
type Symbol struct {
	Name        string
	Declaration ast.Node
	Kind        Kind
}

// Scope is one level of the lexical scope chain.
type Scope struct {
	parent  *Scope
	symbols map[string]*Symbol
}

// NewScope creates a scope nested inside parent (nil for the outermost
// scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, symbols: make(map[string]*Symbol)}
}

// Parent returns the enclosing scope, or nil at the outermost level.
func (s *Scope) Parent() *Scope { return s.parent }

// Define introduces name in this scope. It returns false without
// modifying the scope if name is already bound here (a same-scope
// redefinition is a name error); shadowing an outer scope is fine.
func (s *Scope) Define(name string, declaration ast.Node, kind Kind) (*Symbol, bool) {
	if _, exists := s.symbols[name]; exists {
		return nil, false
	}
	sym := &Symbol{Name: name, Declaration: declaration, Kind: kind}
	s.symbols[name] = sym
	return sym, true
}

// Resolve looks up name in this scope and, failing that, each enclosing
// scope in turn.
func (s *Scope) Resolve(name string) (*Symbol, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if sym, ok := sc.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// ResolveLocal looks up name only in this scope, ignoring ancestors.
func (s *Scope) ResolveLocal(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Package ir implements plasm's typed SSA intermediate representation:
// an arena-of-values model (dense slices owned by Module, referenced by
// pointer/index, never cloned) with GC-aware types, grounded on the
// basic-block/value-arena shape of vslc's src/ir/lir package.
package ir

import "fmt"

// Kind discriminates an IR value type.
type Kind int

const (
	I32 Kind = iota
	I64
	F32
	F64
	Ref     // reference to a struct/array IrTypeDef, or to void ("funcref"-less class refs)
	FuncRef // reference to a function, used for lambda/function values
	Void
)

// Type is an IR-level type: a wasm numeric type, or a (possibly
// nullable) reference to a named type definition.
type Type struct {
	Kind     Kind
	RefName  string // set when Kind is Ref or FuncRef and the target is a named type/func
	Nullable bool   // only meaningful when Kind == Ref
}

var (
	I32Type  = Type{Kind: I32}
	I64Type  = Type{Kind: I64}
	F32Type  = Type{Kind: F32}
	F64Type  = Type{Kind: F64}
	VoidType = Type{Kind: Void}
)

// RefType builds a (nullable) reference to the named type definition.
func RefType(name string, nullable bool) Type {
	return Type{Kind: Ref, RefName: name, Nullable: nullable}
}

// FuncRefType builds a reference to a function value of the given name.
func FuncRefType(name string) Type {
	return Type{Kind: FuncRef, RefName: name}
}

func (t Type) IsVoid() bool { return t.Kind == Void }

func (t Type) String() string {
	switch t.Kind {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case Void:
		return "void"
	case FuncRef:
		return fmt.Sprintf("funcref<%s>", t.RefName)
	case Ref:
		if t.Nullable {
			return fmt.Sprintf("(ref null $%s)", t.RefName)
		}
		return fmt.Sprintf("(ref $%s)", t.RefName)
	default:
		return "?"
	}
}

// TypeDefKind distinguishes a GC struct definition from a GC array
// definition.
type TypeDefKind int

const (
	StructDef TypeDefKind = iota
	ArrayDef
)

// Field is one member of a struct type definition.
type Field struct {
	Name    string
	Type    Type
	Mutable bool
}

// TypeDef is a named GC struct or array type, emitted in the WAT type
// section before any function that references it.
type TypeDef struct {
	Name    string
	Kind    TypeDefKind
	Fields  []Field // StructDef
	Elem    Type    // ArrayDef
	Mutable bool    // ArrayDef: whether the element is declared (mut ...)
}

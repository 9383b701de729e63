// Package types implements PlasmType, the semantic type model, and the
// implicit-upcast compatibility lattice used by the type analyser and
// the IR builder's type mapping.
package types

import "strings"

// Kind discriminates the PlasmType sum.
type Kind int

const (
	KindPrimitive Kind = iota
	KindClass
	KindGeneric
	KindFunction
)

// PlasmType is a primitive, a named user type (class), a parameterised
// type `N<T...>`, or a function `(T...) -> T`.
type PlasmType struct {
	Kind Kind

	// KindPrimitive
	Primitive PrimitiveKind

	// KindClass
	ClassName string

	// KindGeneric, e.g. array<T>
	GenericName string
	TypeArgs    []*PlasmType

	// KindFunction
	Params []*PlasmType
	Result *PlasmType
}

// PrimitiveKind enumerates the fixed-width numeric types, bool, string,
// void, and any.
type PrimitiveKind int

const (
	U8 PrimitiveKind = iota
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	F32
	F64
	Bool
	String
	Void
	Any
)

var primitiveNames = map[PrimitiveKind]string{
	U8: "u8", U16: "u16", U32: "u32", U64: "u64",
	I8: "i8", I16: "i16", I32: "i32", I64: "i64",
	F32: "f32", F64: "f64", Bool: "bool", String: "string",
	Void: "void", Any: "any",
}

var namesToPrimitive = func() map[string]PrimitiveKind {
	m := make(map[string]PrimitiveKind, len(primitiveNames))
	for k, v := range primitiveNames {
		m[v] = k
	}
	return m
}()

// LookupPrimitive resolves a primitive type-name spelling, if any.
func LookupPrimitive(name string) (PrimitiveKind, bool) {
	p, ok := namesToPrimitive[name]
	return p, ok
}

// Prim constructs a primitive PlasmType.
func Prim(k PrimitiveKind) *PlasmType { return &PlasmType{Kind: KindPrimitive, Primitive: k} }

var (
	U8Type     = Prim(U8)
	U16Type    = Prim(U16)
	U32Type    = Prim(U32)
	U64Type    = Prim(U64)
	I8Type     = Prim(I8)
	I16Type    = Prim(I16)
	I32Type    = Prim(I32)
	I64Type    = Prim(I64)
	F32Type    = Prim(F32)
	F64Type    = Prim(F64)
	BoolType   = Prim(Bool)
	StringType = Prim(String)
	VoidType   = Prim(Void)
	AnyType    = Prim(Any)
)

// Class constructs a named user-type PlasmType.
func Class(name string) *PlasmType { return &PlasmType{Kind: KindClass, ClassName: name} }

// Generic constructs a parameterised type, e.g. Generic("array", elem).
func Generic(name string, args ...*PlasmType) *PlasmType {
	return &PlasmType{Kind: KindGeneric, GenericName: name, TypeArgs: args}
}

// Array is the common case of Generic("array", elem).
func Array(elem *PlasmType) *PlasmType { return Generic("array", elem) }

// Function constructs a function type `(params) -> result`.
func Function(params []*PlasmType, result *PlasmType) *PlasmType {
	return &PlasmType{Kind: KindFunction, Params: params, Result: result}
}

// bitWidth returns the primitive's declared bit width, or 0 for
// non-numeric primitives.
func bitWidth(p PrimitiveKind) int {
	switch p {
	case U8, I8:
		return 8
	case U16, I16:
		return 16
	case U32, I32, F32:
		return 32
	case U64, I64, F64:
		return 64
	default:
		return 0
	}
}

// BitWidth exposes bitWidth for a full PlasmType (0 for non-primitives).
func (t *PlasmType) BitWidth() int {
	if t == nil || t.Kind != KindPrimitive {
		return 0
	}
	return bitWidth(t.Primitive)
}

// IsUnsigned reports whether t is one of u8/u16/u32/u64.
func (t *PlasmType) IsUnsigned() bool {
	return t != nil && t.Kind == KindPrimitive &&
		(t.Primitive == U8 || t.Primitive == U16 || t.Primitive == U32 || t.Primitive == U64)
}

// IsSigned reports whether t is one of i8/i16/i32/i64.
func (t *PlasmType) IsSigned() bool {
	return t != nil && t.Kind == KindPrimitive &&
		(t.Primitive == I8 || t.Primitive == I16 || t.Primitive == I32 || t.Primitive == I64)
}

// IsInteger reports whether t is any signed or unsigned integer type.
func (t *PlasmType) IsInteger() bool { return t.IsSigned() || t.IsUnsigned() }

// IsFloating reports whether t is f32 or f64.
func (t *PlasmType) IsFloating() bool {
	return t != nil && t.Kind == KindPrimitive && (t.Primitive == F32 || t.Primitive == F64)
}

// IsNumeric reports whether t is integer or floating.
func (t *PlasmType) IsNumeric() bool { return t.IsInteger() || t.IsFloating() }

// IsBool, IsString, IsVoid, IsAny test the remaining primitive kinds.
func (t *PlasmType) IsBool() bool   { return t != nil && t.Kind == KindPrimitive && t.Primitive == Bool }
func (t *PlasmType) IsString() bool { return t != nil && t.Kind == KindPrimitive && t.Primitive == String }
func (t *PlasmType) IsVoid() bool   { return t != nil && t.Kind == KindPrimitive && t.Primitive == Void }
func (t *PlasmType) IsAny() bool    { return t != nil && t.Kind == KindPrimitive && t.Primitive == Any }
func (t *PlasmType) IsClass() bool  { return t != nil && t.Kind == KindClass }
func (t *PlasmType) IsFunction() bool { return t != nil && t.Kind == KindFunction }
func (t *PlasmType) IsArray() bool {
	return t != nil && t.Kind == KindGeneric && t.GenericName == "array"
}

// ElemType returns the element type of an array<T>, or nil.
func (t *PlasmType) ElemType() *PlasmType {
	if !t.IsArray() || len(t.TypeArgs) == 0 {
		return nil
	}
	return t.TypeArgs[0]
}

// Equal reports structural equality between two PlasmTypes.
func Equal(a, b *PlasmType) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindPrimitive:
		return a.Primitive == b.Primitive
	case KindClass:
		return a.ClassName == b.ClassName
	case KindGeneric:
		if a.GenericName != b.GenericName || len(a.TypeArgs) != len(b.TypeArgs) {
			return false
		}
		for i := range a.TypeArgs {
			if !Equal(a.TypeArgs[i], b.TypeArgs[i]) {
				return false
			}
		}
		return true
	case KindFunction:
		if len(a.Params) != len(b.Params) || !Equal(a.Result, b.Result) {
			return false
		}
		for i := range a.Params {
			if !Equal(a.Params[i], b.Params[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func (t *PlasmType) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindPrimitive:
		return primitiveNames[t.Primitive]
	case KindClass:
		return t.ClassName
	case KindGeneric:
		args := make([]string, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			args[i] = a.String()
		}
		return t.GenericName + "<" + strings.Join(args, ", ") + ">"
	case KindFunction:
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = p.String()
		}
		return "(" + strings.Join(params, ", ") + ") -> " + t.Result.String()
	}
	return "?"
}

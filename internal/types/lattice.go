package types

// CanImplicitlyUpcast reports whether a value of type from may be used
// where a value of type to is expected without an explicit `as` cast.
//
// Rules (spec.md §4.4):
//
//	(a) from == to
//	(b) either side is any
//	(c) both unsigned, bitWidth(from) < bitWidth(to)
//	(d) from unsigned, to signed, bitWidth(from) < bitWidth(to)
//	(e) both signed, bitWidth(from) < bitWidth(to)
//	(f) from integer, to floating, bitWidth(from) <= bitWidth(to)
//	(g) from f32, to f64
//
// Notably u64 -> i64 is NOT implicit (rule (d) needs a strict width
// increase), and signed -> unsigned is never implicit.
func CanImplicitlyUpcast(from, to *PlasmType) bool {
	if from == nil || to == nil {
		return false
	}
	if Equal(from, to) {
		return true
	}
	if from.IsAny() || to.IsAny() {
		return true
	}
	if from.Kind != KindPrimitive || to.Kind != KindPrimitive {
		return false
	}

	switch {
	case from.IsUnsigned() && to.IsUnsigned():
		return from.BitWidth() < to.BitWidth()
	case from.IsUnsigned() && to.IsSigned():
		return from.BitWidth() < to.BitWidth()
	case from.IsSigned() && to.IsSigned():
		return from.BitWidth() < to.BitWidth()
	case from.IsInteger() && to.IsFloating():
		return from.BitWidth() <= to.BitWidth()
	case from.Primitive == F32 && to.Primitive == F64:
		return true
	default:
		return false
	}
}

// IsCompatibleWith is the general-purpose compatibility check used for
// call arguments, constructor arguments, and array-element typing: a
// value of type from satisfies a context expecting to if they're equal
// or from can implicitly upcast to to.
func IsCompatibleWith(from, to *PlasmType) bool {
	return Equal(from, to) || CanImplicitlyUpcast(from, to)
}

package semantic

import (
	"github.com/lehlud/plasm/internal/ast"
	"github.com/lehlud/plasm/internal/types"
)

// resolveConstructor picks the constructor overload matching argTypes:
// same arity, and every argument type-compatible (equal or implicitly
// upcastable) with the corresponding parameter. Ambiguous or absent
// matches are reported through the caller's diagnostic sink.
func resolveConstructor(class *ClassInfo, argTypes []*types.PlasmType) (*ConstructorInfo, int) {
	var match *ConstructorInfo
	count := 0
	for _, ctor := range class.Constructors {
		if arityAndTypesMatch(ctor.Params, argTypes) {
			match = ctor
			count++
		}
	}
	return match, count
}

// resolveOperator picks the single-parameter operator overload for sym
// whose parameter type accepts argType.
func resolveOperator(class *ClassInfo, sym ast.OperatorSymbol, argType *types.PlasmType) (*OperatorInfo, int) {
	var match *OperatorInfo
	count := 0
	for _, op := range class.Operators[sym] {
		if op.ParamType != nil && types.IsCompatibleWith(argType, op.ParamType) {
			match = op
			count++
		}
	}
	return match, count
}

func arityAndTypesMatch(params []*types.PlasmType, argTypes []*types.PlasmType) bool {
	if len(params) != len(argTypes) {
		return false
	}
	for i, p := range params {
		if !types.IsCompatibleWith(argTypes[i], p) {
			return false
		}
	}
	return true
}

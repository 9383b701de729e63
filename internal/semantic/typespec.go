package semantic

import (
	"fmt"

	"github.com/lehlud/plasm/internal/ast"
	"github.com/lehlud/plasm/internal/types"
)

// resolveTypeSpec converts a parsed ast.TypeSpec into a types.PlasmType,
// given the set of class names declared in the program. Only "array" is
// a recognised generic; tuple type specs (parsed for grammar
// completeness) have no PlasmType representation and are
// rejected here.
func resolveTypeSpec(spec *ast.TypeSpec, classes map[string]*ClassInfo) (*types.PlasmType, error) {
	if spec == nil {
		return nil, fmt.Errorf("missing type")
	}
	switch spec.Kind {
	case ast.TypeVoid:
		return types.VoidType, nil
	case ast.TypeAny:
		return types.AnyType, nil
	case ast.TypeSimple:
		if prim, ok := types.LookupPrimitive(spec.Name); ok {
			return types.Prim(prim), nil
		}
		if _, ok := classes[spec.Name]; ok {
			return types.Class(spec.Name), nil
		}
		return nil, fmt.Errorf("undefined type '%s'", spec.Name)
	case ast.TypeGeneric:
		if spec.Generic != "array" {
			return nil, fmt.Errorf("unknown generic type '%s'", spec.Generic)
		}
		if len(spec.TypeArgs) != 1 {
			return nil, fmt.Errorf("array takes exactly one type argument")
		}
		elem, err := resolveTypeSpec(spec.TypeArgs[0], classes)
		if err != nil {
			return nil, err
		}
		return types.Array(elem), nil
	case ast.TypeFunction:
		params := make([]*types.PlasmType, len(spec.Params))
		for i, p := range spec.Params {
			pt, err := resolveTypeSpec(p, classes)
			if err != nil {
				return nil, err
			}
			params[i] = pt
		}
		result, err := resolveTypeSpec(spec.Result, classes)
		if err != nil {
			return nil, err
		}
		return types.Function(params, result), nil
	case ast.TypeTuple:
		return nil, fmt.Errorf("tuple types are not supported")
	default:
		return nil, fmt.Errorf("unknown type spec kind")
	}
}

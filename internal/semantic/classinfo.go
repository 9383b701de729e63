package semantic

import (
	"github.com/lehlud/plasm/internal/ast"
	"github.com/lehlud/plasm/internal/types"
)

// buildClassInfo resolves every member signature of decl: field types,
// constructor/operator/method parameter and return types. classes must
// already contain every declared class name (including decl's own),
// since a field may reference another class declared later in the
// file. Errors are reported as Name diagnostics since they're detected
// before any expression typing happens.
func (a *analysis) buildClassInfo(decl *ast.ClassDecl) *ClassInfo {
	info := &ClassInfo{
		Name:       decl.Name.Value,
		FieldIndex: make(map[string]int),
		Operators:  make(map[ast.OperatorSymbol][]*OperatorInfo),
		Methods:    make(map[string]*FuncInfo),
		Decl:       decl,
	}

	for _, f := range decl.Fields {
		if _, dup := info.FieldIndex[f.Name.Value]; dup {
			a.errorf(f.Pos(), "field '%s' already declared in class '%s'", f.Name.Value, info.Name)
			continue
		}
		var ft *types.PlasmType
		if f.Type != nil {
			t, err := resolveTypeSpec(f.Type, a.info.Classes)
			if err != nil {
				a.errorf(f.Pos(), "%s", err)
				ft = types.AnyType
			} else {
				ft = t
			}
		}
		// ft stays nil here when the field omits a type (`let name = init;`);
		// the type analyser fills it in from the initializer.
		info.FieldIndex[f.Name.Value] = len(info.Fields)
		info.Fields = append(info.Fields, &FieldInfo{
			Name: f.Name.Value, Type: ft, IsFinal: f.IsFinal, Init: f.Init, Decl: f,
		})
	}

	for _, c := range decl.Constructors {
		params := a.resolveParams(c.Params)
		info.Constructors = append(info.Constructors, &ConstructorInfo{Params: params, Decl: c})
	}

	for _, op := range decl.Operators {
		var paramType *types.PlasmType
		if op.Param != nil {
			pt, err := resolveTypeSpec(op.Param.Type, a.info.Classes)
			if err != nil {
				a.errorf(op.Pos(), "%s", err)
				pt = types.AnyType
			}
			paramType = pt
		}
		ret, err := resolveTypeSpec(op.ReturnType, a.info.Classes)
		if err != nil {
			a.errorf(op.Pos(), "%s", err)
			ret = types.AnyType
		}
		opInfo := &OperatorInfo{Symbol: op.Symbol, ParamType: paramType, ReturnType: ret, Decl: op}
		for _, existing := range info.Operators[op.Symbol] {
			if types.Equal(existing.ParamType, opInfo.ParamType) {
				a.errorf(op.Pos(), "operator '%s' already overloaded for parameter type '%s' in class '%s'",
					op.Symbol, opInfo.ParamType, info.Name)
			}
		}
		info.Operators[op.Symbol] = append(info.Operators[op.Symbol], opInfo)
	}

	for _, m := range decl.Methods {
		fi := a.resolveFuncSignature(m)
		if _, dup := info.Methods[fi.Name]; dup {
			a.errorf(m.Pos(), "method '%s' already declared in class '%s'", fi.Name, info.Name)
			continue
		}
		info.Methods[fi.Name] = fi
	}

	return info
}

func (a *analysis) resolveParams(params []*ast.Param) []*types.PlasmType {
	out := make([]*types.PlasmType, len(params))
	for i, p := range params {
		t, err := resolveTypeSpec(p.Type, a.info.Classes)
		if err != nil {
			a.errorf(p.Pos(), "%s", err)
			t = types.AnyType
		}
		out[i] = t
	}
	return out
}

// resolveFuncSignature resolves a top-level or class-member fn/proc
// declaration's parameter and return types.
func (a *analysis) resolveFuncSignature(decl ast.Declaration) *FuncInfo {
	switch d := decl.(type) {
	case *ast.FunctionDecl:
		ret, err := resolveTypeSpec(d.ReturnType, a.info.Classes)
		if err != nil {
			a.errorf(d.Pos(), "%s", err)
			ret = types.AnyType
		}
		return &FuncInfo{Name: d.Name.Value, Params: a.resolveParams(d.Params), Result: ret, Decl: d}
	case *ast.ProcedureDecl:
		ret, err := resolveTypeSpec(d.ReturnType, a.info.Classes)
		if err != nil {
			a.errorf(d.Pos(), "%s", err)
			ret = types.VoidType
		}
		return &FuncInfo{Name: d.Name.Value, Params: a.resolveParams(d.Params), Result: ret, Decl: d}
	default:
		return &FuncInfo{}
	}
}


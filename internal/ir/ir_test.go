package ir

import "testing"

func TestModuleNextIDsAreUniqueAndStableAcrossKinds(t *testing.T) {
	m := NewModule()
	if got := m.NextValueID(); got != 1 {
		t.Errorf("first NextValueID() = %d, want 1", got)
	}
	if got := m.NextValueID(); got != 2 {
		t.Errorf("second NextValueID() = %d, want 2", got)
	}
	if got := m.NextBlockID(); got != 1 {
		t.Errorf("NextBlockID() after two value ids = %d, want 1 (separate counters)", got)
	}
}

func TestModuleAddAndFindFunction(t *testing.T) {
	m := NewModule()
	fn := NewFunction("add", nil, I32Type)
	m.AddFunction(fn)

	if got := m.FindFunction("add"); got != fn {
		t.Errorf("FindFunction(\"add\") = %v, want %v", got, fn)
	}
	if got := m.FindFunction("missing"); got != nil {
		t.Errorf("FindFunction(\"missing\") = %v, want nil", got)
	}
}

func TestModuleAddAndFindTypeDef(t *testing.T) {
	m := NewModule()
	td := &TypeDef{Name: "Point", Kind: StructDef, Fields: []Field{
		{Name: "x", Type: I32Type, Mutable: false},
	}}
	m.AddTypeDef(td)

	if got := m.FindTypeDef("Point"); got != td {
		t.Errorf("FindTypeDef(\"Point\") = %v, want %v", got, td)
	}
	if got := m.FindTypeDef("Missing"); got != nil {
		t.Errorf("FindTypeDef(\"Missing\") = %v, want nil", got)
	}
}

func TestModuleUsesMemory(t *testing.T) {
	empty := NewModule()
	empty.AddFunction(NewFunction("f", nil, VoidType))
	if empty.UsesMemory() {
		t.Errorf("a module with no load/store/alloca should not use memory")
	}

	withAlloca := NewModule()
	fn := NewFunction("g", nil, VoidType)
	b := fn.AddBlock(NewBlock(withAlloca.NextBlockID(), "entry"))
	b.Alloca(withAlloca.NextValueID, I32Type)
	withAlloca.AddFunction(fn)
	if !withAlloca.UsesMemory() {
		t.Errorf("a module with an alloca instruction should use memory")
	}
}

func TestFunctionAddBlockAndLookup(t *testing.T) {
	fn := NewFunction("f", nil, VoidType)
	entry := fn.AddBlock(NewBlock(0, "entry"))
	exit := fn.AddBlock(NewBlock(1, "exit"))

	if got := fn.Block(0); got != entry {
		t.Errorf("Block(0) = %v, want entry", got)
	}
	if got := fn.Block(1); got != exit {
		t.Errorf("Block(1) = %v, want exit", got)
	}
	if got := fn.Block(99); got != nil {
		t.Errorf("Block(99) = %v, want nil", got)
	}
}

func TestBlockEmittingAppendsInstructions(t *testing.T) {
	m := NewModule()
	b := NewBlock(0, "entry")

	lhs := NewIntConstant(m.NextValueID(), I32Type, 1)
	rhs := NewIntConstant(m.NextValueID(), I32Type, 2)
	sum := b.Binary(m.NextValueID, OpAdd, I32Type, lhs, rhs)

	if len(b.Instructions) != 1 {
		t.Fatalf("got %d instructions, want 1", len(b.Instructions))
	}
	if b.Instructions[0] != sum {
		t.Errorf("Instructions[0] = %v, want the returned instruction", b.Instructions[0])
	}
	if sum.Op != OpAdd {
		t.Errorf("Op = %v, want OpAdd", sum.Op)
	}
	if len(sum.Operands) != 2 || sum.Operands[0] != lhs || sum.Operands[1] != rhs {
		t.Errorf("Operands = %v, want [lhs, rhs]", sum.Operands)
	}
}

func TestBlockCallSetsCalleeName(t *testing.T) {
	m := NewModule()
	b := NewBlock(0, "entry")
	arg := NewIntConstant(m.NextValueID(), I32Type, 1)
	call := b.Call(m.NextValueID, "add", I32Type, arg)
	if call.CalleeName != "add" {
		t.Errorf("CalleeName = %q, want add", call.CalleeName)
	}
	if call.Op != OpCall {
		t.Errorf("Op = %v, want OpCall", call.Op)
	}
}

func TestBlockCallIndirectPrependsCallee(t *testing.T) {
	m := NewModule()
	b := NewBlock(0, "entry")
	callee := NewParam(m.NextValueID(), "f", FuncRefType("any"))
	arg := NewIntConstant(m.NextValueID(), I32Type, 1)
	call := b.CallIndirect(m.NextValueID, callee, I32Type, arg)

	if len(call.Operands) != 2 {
		t.Fatalf("got %d operands, want 2", len(call.Operands))
	}
	if call.Operands[0] != callee {
		t.Errorf("Operands[0] = %v, want the callee", call.Operands[0])
	}
	if call.Operands[1] != arg {
		t.Errorf("Operands[1] = %v, want the argument", call.Operands[1])
	}
}

func TestBlockStructNewSetsTypeName(t *testing.T) {
	m := NewModule()
	b := NewBlock(0, "entry")
	x := NewIntConstant(m.NextValueID(), I32Type, 1)
	inst := b.StructNew(m.NextValueID, "Point", RefType("Point", false), x, x)
	if inst.TypeName != "Point" {
		t.Errorf("TypeName = %q, want Point", inst.TypeName)
	}
	if inst.Op != OpStructNew {
		t.Errorf("Op = %v, want OpStructNew", inst.Op)
	}
}

func TestBlockStructGetSetsTypeAndFieldName(t *testing.T) {
	m := NewModule()
	b := NewBlock(0, "entry")
	ref := NewParam(m.NextValueID(), "p", RefType("Point", false))
	inst := b.StructGet(m.NextValueID, "Point", "x", I32Type, ref)
	if inst.TypeName != "Point" || inst.FieldName != "x" {
		t.Errorf("TypeName/FieldName = %q/%q, want Point/x", inst.TypeName, inst.FieldName)
	}
}

func TestBlockAppendAfterTerminatorPanics(t *testing.T) {
	m := NewModule()
	b := NewBlock(0, "entry")
	b.SetRet(nil)

	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic when emitting after a terminator")
		}
	}()
	b.Alloca(m.NextValueID, I32Type)
}

func TestBlockSetRetTwicePanics(t *testing.T) {
	b := NewBlock(0, "entry")
	b.SetRet(nil)
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic when terminating an already-terminated block")
		}
	}()
	b.SetRet(nil)
}

func TestBlockTerminated(t *testing.T) {
	b := NewBlock(0, "entry")
	if b.Terminated() {
		t.Errorf("a fresh block should not be terminated")
	}
	b.SetBr(NewBlock(1, "next"))
	if !b.Terminated() {
		t.Errorf("block should be terminated after SetBr")
	}
	if b.Term.Op != TermBr {
		t.Errorf("Term.Op = %v, want TermBr", b.Term.Op)
	}
}

func TestBlockSetCondBr(t *testing.T) {
	b := NewBlock(0, "entry")
	then := NewBlock(1, "then")
	els := NewBlock(2, "else")
	cond := NewIntConstant(1, I32Type, 1)
	b.SetCondBr(cond, then, els)

	if b.Term.Op != TermCondBr {
		t.Fatalf("Term.Op = %v, want TermCondBr", b.Term.Op)
	}
	if b.Term.Cond != cond || b.Term.Then != then || b.Term.Else != els {
		t.Errorf("Term = %+v, want Cond/Then/Else set to the given values", b.Term)
	}
}

func TestInstructionNameDefaultsWhenUnset(t *testing.T) {
	inst := NewInstruction(3, OpAdd, I32Type)
	if inst.Name() != "v" {
		t.Errorf("Name() = %q, want the default \"v\"", inst.Name())
	}
	inst.SetName("sum")
	if inst.Name() != "sum" {
		t.Errorf("Name() after SetName = %q, want sum", inst.Name())
	}
}

func TestInstructionIDAndType(t *testing.T) {
	inst := NewInstruction(7, OpMul, F64Type)
	if inst.ID() != 7 {
		t.Errorf("ID() = %d, want 7", inst.ID())
	}
	if inst.Type() != F64Type {
		t.Errorf("Type() = %v, want F64Type", inst.Type())
	}
}

func TestTypeStringForms(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"i32", I32Type, "i32"},
		{"i64", I64Type, "i64"},
		{"f32", F32Type, "f32"},
		{"f64", F64Type, "f64"},
		{"void", VoidType, "void"},
		{"non-null ref", RefType("Point", false), "(ref $Point)"},
		{"nullable ref", RefType("Point", true), "(ref null $Point)"},
		{"funcref", FuncRefType("fn_any"), "funcref<fn_any>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTypeIsVoid(t *testing.T) {
	if !VoidType.IsVoid() {
		t.Errorf("VoidType.IsVoid() = false, want true")
	}
	if I32Type.IsVoid() {
		t.Errorf("I32Type.IsVoid() = true, want false")
	}
}

func TestNewIntConstantPicksKindFromType(t *testing.T) {
	c32 := NewIntConstant(0, I32Type, 5)
	if c32.Kind != ConstI32 || c32.IntValue != 5 {
		t.Errorf("i32 constant = %+v, want Kind=ConstI32 IntValue=5", c32)
	}
	c64 := NewIntConstant(1, I64Type, 9)
	if c64.Kind != ConstI64 {
		t.Errorf("i64 constant Kind = %v, want ConstI64", c64.Kind)
	}
}

func TestNewStringConstantTypesAsStringRef(t *testing.T) {
	c := NewStringConstant(0, "hi")
	if c.Kind != ConstString || c.StrValue != "hi" {
		t.Errorf("string constant = %+v, want Kind=ConstString StrValue=hi", c)
	}
	if c.Type() != RefType("string", false) {
		t.Errorf("Type() = %v, want (ref $string)", c.Type())
	}
}

func TestNewGlobal(t *testing.T) {
	init := NewIntConstant(0, I32Type, 1)
	g := NewGlobal(1, "COUNT", I32Type, true, init)
	if g.ID() != 1 || g.Name() != "COUNT" || g.Type() != I32Type {
		t.Errorf("global = %+v", g)
	}
	if !g.IsConstant || g.Init != init {
		t.Errorf("IsConstant/Init = %v/%v, want true/init", g.IsConstant, g.Init)
	}
}

package types

import "testing"

func TestBitWidthAndSignedness(t *testing.T) {
	tests := []struct {
		name       string
		t          *PlasmType
		width      int
		signed     bool
		unsigned   bool
		floating   bool
		isInteger  bool
	}{
		{"u8", U8Type, 8, false, true, false, true},
		{"i8", I8Type, 8, true, false, false, true},
		{"u32", U32Type, 32, false, true, false, true},
		{"i64", I64Type, 64, true, false, false, true},
		{"f32", F32Type, 32, false, false, true, false},
		{"f64", F64Type, 64, false, false, true, false},
		{"bool", BoolType, 0, false, false, false, false},
		{"string", StringType, 0, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.t.BitWidth(); got != tt.width {
				t.Errorf("BitWidth() = %d, want %d", got, tt.width)
			}
			if got := tt.t.IsSigned(); got != tt.signed {
				t.Errorf("IsSigned() = %v, want %v", got, tt.signed)
			}
			if got := tt.t.IsUnsigned(); got != tt.unsigned {
				t.Errorf("IsUnsigned() = %v, want %v", got, tt.unsigned)
			}
			if got := tt.t.IsFloating(); got != tt.floating {
				t.Errorf("IsFloating() = %v, want %v", got, tt.floating)
			}
			if got := tt.t.IsInteger(); got != tt.isInteger {
				t.Errorf("IsInteger() = %v, want %v", got, tt.isInteger)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	arrI32 := Array(I32Type)
	arrI32b := Array(I32Type)
	arrF32 := Array(F32Type)
	fn := Function([]*PlasmType{I32Type, BoolType}, StringType)
	fnSame := Function([]*PlasmType{I32Type, BoolType}, StringType)
	fnDiffResult := Function([]*PlasmType{I32Type, BoolType}, I32Type)

	tests := []struct {
		name string
		a, b *PlasmType
		want bool
	}{
		{"same primitive", I32Type, I32Type, true},
		{"different primitive", I32Type, I64Type, false},
		{"same class", Class("Point"), Class("Point"), true},
		{"different class", Class("Point"), Class("Line"), false},
		{"same array element", arrI32, arrI32b, true},
		{"different array element", arrI32, arrF32, false},
		{"same function signature", fn, fnSame, true},
		{"different function result", fn, fnDiffResult, false},
		{"nil vs nil", nil, nil, true},
		{"nil vs non-nil", nil, I32Type, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestArrayElemType(t *testing.T) {
	arr := Array(StringType)
	elem := arr.ElemType()
	if elem == nil || !elem.IsString() {
		t.Fatalf("ElemType() = %v, want string", elem)
	}
	if I32Type.ElemType() != nil {
		t.Errorf("ElemType() on a non-array type should be nil")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		t    *PlasmType
		want string
	}{
		{I32Type, "i32"},
		{Class("Point"), "Point"},
		{Array(I32Type), "array<i32>"},
		{Function([]*PlasmType{I32Type, I32Type}, BoolType), "(i32, i32) -> bool"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestLookupPrimitive(t *testing.T) {
	if k, ok := LookupPrimitive("i32"); !ok || k != I32 {
		t.Errorf("LookupPrimitive(\"i32\") = %v, %v, want I32, true", k, ok)
	}
	if _, ok := LookupPrimitive("not-a-type"); ok {
		t.Errorf("LookupPrimitive(\"not-a-type\") should fail")
	}
}

package ir

// Opcode is the IR's full instruction set: arithmetic, comparison,
// logical, memory, control (terminators are modelled separately, see
// Terminator), constant-adjacent casts, and the WebAssembly-GC opcode
// family.
type Opcode int

const (
	OpAdd Opcode = iota
	OpSub
	OpMul
	OpDiv
	OpRem
	OpEq
	OpNeq
	OpLt
	OpGt
	OpLe
	OpGe
	OpAnd
	OpOr
	OpNot
	OpNeg

	OpLoad
	OpStore
	OpAlloca

	OpCall         // CalleeName names the target function
	OpCallIndirect // Operands[0] is the funcref callee, Operands[1:] are arguments

	OpCast // TypeName unused; result Type is the cast target

	OpStructNew
	OpStructGet // TypeName + FieldName identify the field
	OpStructSet

	OpArrayNew // Operands: [initialValue, length]
	OpArrayNewDefault
	OpArrayGet
	OpArraySet
	OpArrayLen

	OpRefNull
	OpRefIsNull
	OpRefEq
	OpRefCast
	OpRefTest

	OpRttCanon
	OpRttSub

	OpI31New
	OpI31GetS
	OpI31GetU

	OpFuncRef // CalleeName names the referenced function
)

var opcodeNames = map[Opcode]string{
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div", OpRem: "rem",
	OpEq: "eq", OpNeq: "neq", OpLt: "lt", OpGt: "gt", OpLe: "le", OpGe: "ge",
	OpAnd: "and", OpOr: "or", OpNot: "not", OpNeg: "neg",
	OpLoad: "load", OpStore: "store", OpAlloca: "alloca",
	OpCall: "call", OpCallIndirect: "callIndirect", OpCast: "cast",
	OpStructNew: "struct.new", OpStructGet: "struct.get", OpStructSet: "struct.set",
	OpArrayNew: "array.new", OpArrayNewDefault: "array.new_default",
	OpArrayGet: "array.get", OpArraySet: "array.set", OpArrayLen: "array.len",
	OpRefNull: "ref.null", OpRefIsNull: "ref.is_null", OpRefEq: "ref.eq",
	OpRefCast: "ref.cast", OpRefTest: "ref.test",
	OpRttCanon: "rtt.canon", OpRttSub: "rtt.sub",
	OpI31New: "i31.new", OpI31GetS: "i31.get_s", OpI31GetU: "i31.get_u",
	OpFuncRef: "func.ref",
}

func (op Opcode) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return "?"
}

// Instruction is a single non-terminator IR operation; it is itself a
// Value (its result), consistent with the data model's SSA rule that
// every value is produced by exactly one instruction.
type Instruction struct {
	id   int
	name string
	typ  Type

	Op       Opcode
	Operands []Value

	// Signed records the operand type's signedness for opcodes whose wasm
	// encoding forks on it (OpDiv, OpRem, OpLt/OpGt/OpLe/OpGe, and OpCast
	// for integer extension and integer/float conversion); ignored
	// otherwise. IR numeric types collapse width (see Type) but the WAT
	// generator still needs signedness to pick _s/_u instruction forms.
	Signed bool

	// Set only by the opcodes that need a name beyond their operands.
	CalleeName string // OpCall, OpFuncRef
	TypeName   string // OpStructNew/Get/Set, OpArrayNew*, OpRefCast/Test, OpRttCanon/Sub
	FieldName  string // OpStructGet/Set
}

func NewInstruction(id int, op Opcode, typ Type, operands ...Value) *Instruction {
	return &Instruction{id: id, typ: typ, Op: op, Operands: operands}
}

func (i *Instruction) ID() int   { return i.id }
func (i *Instruction) Type() Type { return i.typ }

// Name returns the instruction's symbolic name, or "v" when none was
// set explicitly (the WAT generator names locals by ID, not by Name).
func (i *Instruction) Name() string {
	if i.name != "" {
		return i.name
	}
	return "v"
}

func (i *Instruction) SetName(name string) { i.name = name }

// TermOpcode discriminates the three terminator forms a block may end
// with.
type TermOpcode int

const (
	TermRet TermOpcode = iota
	TermBr
	TermCondBr
)

// Terminator ends a basic block: a return (with an optional value), an
// unconditional branch, or a conditional branch to one of two targets.
type Terminator struct {
	Op    TermOpcode
	Value Value // TermRet only; nil for a void return
	Cond  Value // TermCondBr only
	Then  *Block
	Else  *Block // TermCondBr only
}

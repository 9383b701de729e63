package ir

import "fmt"

// Block is a basic block: a monotonically numbered id, an optional
// label ("entry", "then", "else", "merge", "while_header", ...), a
// straight-line instruction list, and an optional terminator. Every
// block except the last reachable one in its function must end in a
// terminator.
type Block struct {
	ID           int
	Label        string
	Instructions []*Instruction
	Term         *Terminator
}

func NewBlock(id int, label string) *Block {
	return &Block{ID: id, Label: label}
}

func (b *Block) Terminated() bool { return b.Term != nil }

func (b *Block) add(instr *Instruction) *Instruction {
	if b.Term != nil {
		panic(fmt.Sprintf("block %s: cannot append an instruction after its terminator", b.Label))
	}
	b.Instructions = append(b.Instructions, instr)
	return instr
}

// Emit appends a generic instruction built from op/typ/operands. The
// opcode-specific convenience wrappers below cover every opcode the IR
// builder needs; Emit exists for opcodes (struct/array/ref family) whose
// extra name fields are set by the caller afterward.
func (b *Block) Emit(nextID func() int, op Opcode, typ Type, operands ...Value) *Instruction {
	return b.add(NewInstruction(nextID(), op, typ, operands...))
}

func (b *Block) Binary(nextID func() int, op Opcode, typ Type, lhs, rhs Value) *Instruction {
	return b.add(NewInstruction(nextID(), op, typ, lhs, rhs))
}

func (b *Block) Unary(nextID func() int, op Opcode, typ Type, operand Value) *Instruction {
	return b.add(NewInstruction(nextID(), op, typ, operand))
}

func (b *Block) Alloca(nextID func() int, typ Type) *Instruction {
	return b.add(NewInstruction(nextID(), OpAlloca, typ))
}

func (b *Block) Load(nextID func() int, typ Type, src Value) *Instruction {
	return b.add(NewInstruction(nextID(), OpLoad, typ, src))
}

func (b *Block) Store(nextID func() int, value, dst Value) *Instruction {
	return b.add(NewInstruction(nextID(), OpStore, VoidType, value, dst))
}

func (b *Block) Call(nextID func() int, name string, typ Type, args ...Value) *Instruction {
	inst := NewInstruction(nextID(), OpCall, typ, args...)
	inst.CalleeName = name
	return b.add(inst)
}

func (b *Block) CallIndirect(nextID func() int, callee Value, typ Type, args ...Value) *Instruction {
	operands := append([]Value{callee}, args...)
	return b.add(NewInstruction(nextID(), OpCallIndirect, typ, operands...))
}

func (b *Block) Cast(nextID func() int, typ Type, value Value) *Instruction {
	return b.add(NewInstruction(nextID(), OpCast, typ, value))
}

func (b *Block) FuncRef(nextID func() int, name string, typ Type) *Instruction {
	inst := NewInstruction(nextID(), OpFuncRef, typ)
	inst.CalleeName = name
	return b.add(inst)
}

func (b *Block) StructNew(nextID func() int, typeName string, typ Type, fields ...Value) *Instruction {
	inst := NewInstruction(nextID(), OpStructNew, typ, fields...)
	inst.TypeName = typeName
	return b.add(inst)
}

func (b *Block) StructGet(nextID func() int, typeName, fieldName string, typ Type, ref Value) *Instruction {
	inst := NewInstruction(nextID(), OpStructGet, typ, ref)
	inst.TypeName, inst.FieldName = typeName, fieldName
	return b.add(inst)
}

func (b *Block) StructSet(nextID func() int, typeName, fieldName string, ref, value Value) *Instruction {
	inst := NewInstruction(nextID(), OpStructSet, VoidType, ref, value)
	inst.TypeName, inst.FieldName = typeName, fieldName
	return b.add(inst)
}

func (b *Block) ArrayNewDefault(nextID func() int, typeName string, typ Type, length Value) *Instruction {
	inst := NewInstruction(nextID(), OpArrayNewDefault, typ, length)
	inst.TypeName = typeName
	return b.add(inst)
}

func (b *Block) ArrayGet(nextID func() int, typeName string, typ Type, array, index Value) *Instruction {
	inst := NewInstruction(nextID(), OpArrayGet, typ, array, index)
	inst.TypeName = typeName
	return b.add(inst)
}

func (b *Block) ArraySet(nextID func() int, typeName string, array, index, value Value) *Instruction {
	inst := NewInstruction(nextID(), OpArraySet, VoidType, array, index, value)
	inst.TypeName = typeName
	return b.add(inst)
}

func (b *Block) ArrayLen(nextID func() int, array Value) *Instruction {
	return b.add(NewInstruction(nextID(), OpArrayLen, I32Type, array))
}

func (b *Block) RefNull(nextID func() int, typeName string) *Instruction {
	inst := NewInstruction(nextID(), OpRefNull, RefType(typeName, true))
	inst.TypeName = typeName
	return b.add(inst)
}

// SetRet terminates b with a return, value may be nil for a void return.
func (b *Block) SetRet(value Value) {
	if b.Term != nil {
		panic(fmt.Sprintf("block %s: already terminated", b.Label))
	}
	b.Term = &Terminator{Op: TermRet, Value: value}
}

// SetBr terminates b with an unconditional branch to target.
func (b *Block) SetBr(target *Block) {
	if b.Term != nil {
		panic(fmt.Sprintf("block %s: already terminated", b.Label))
	}
	b.Term = &Terminator{Op: TermBr, Then: target}
}

// SetCondBr terminates b with a conditional branch: thenBlock if cond is
// true, elseBlock otherwise.
func (b *Block) SetCondBr(cond Value, thenBlock, elseBlock *Block) {
	if b.Term != nil {
		panic(fmt.Sprintf("block %s: already terminated", b.Label))
	}
	b.Term = &Terminator{Op: TermCondBr, Cond: cond, Then: thenBlock, Else: elseBlock}
}

package passes

import "github.com/lehlud/plasm/internal/ir"

// Visitor is the pre-order traversal contract spec.md SS4.7 calls for:
// one callback per IR level, each returning false to skip descending
// into that node's children rather than always walking every node.
type Visitor interface {
	VisitModule(m *ir.Module) bool
	VisitFunction(fn *ir.Function) bool
	VisitBlock(b *ir.Block) bool
	VisitInstruction(instr *ir.Instruction) bool
	VisitValue(v ir.Value)
}

// BaseVisitor implements Visitor with every hook a no-op returning true,
// so a pass only has to override the hooks it cares about.
type BaseVisitor struct{}

func (BaseVisitor) VisitModule(*ir.Module) bool           { return true }
func (BaseVisitor) VisitFunction(*ir.Function) bool       { return true }
func (BaseVisitor) VisitBlock(*ir.Block) bool             { return true }
func (BaseVisitor) VisitInstruction(*ir.Instruction) bool { return true }
func (BaseVisitor) VisitValue(ir.Value)                   {}

// Walk performs a pre-order traversal of module, function, block,
// instruction and operand-value, in that nesting order, calling v's
// hooks and respecting each hook's descend-or-skip return value.
func Walk(v Visitor, module *ir.Module) {
	if !v.VisitModule(module) {
		return
	}
	for _, fn := range module.Functions {
		if !v.VisitFunction(fn) {
			continue
		}
		for _, b := range fn.Blocks {
			if !v.VisitBlock(b) {
				continue
			}
			for _, instr := range b.Instructions {
				if !v.VisitInstruction(instr) {
					continue
				}
				for _, op := range instr.Operands {
					v.VisitValue(op)
				}
			}
			if b.Term != nil {
				walkTerminatorValues(v, b.Term)
			}
		}
	}
}

// walkTerminatorValues visits the values a block terminator references
// directly (a ret's value, a condBr's condition), which otherwise never
// appear in any Instruction.Operands list.
func walkTerminatorValues(v Visitor, term *ir.Terminator) {
	switch term.Op {
	case ir.TermRet:
		if term.Value != nil {
			v.VisitValue(term.Value)
		}
	case ir.TermCondBr:
		if term.Cond != nil {
			v.VisitValue(term.Cond)
		}
	}
}

package passes

import "github.com/lehlud/plasm/internal/ir"

// DeadCodeElimination would drop instructions whose result is never
// used by any later instruction or terminator; unimplemented (spec.md
// SS4.7 only requires the interface be present, not that every bundled
// pass optimise anything). Kept as a registered no-op rather than
// omitted so Manager.Passes always reflects the full intended pipeline.
type DeadCodeElimination struct{}

func (DeadCodeElimination) Name() string       { return "dead-code-elimination" }
func (DeadCodeElimination) Run(*ir.Module) bool { return false }

// ConstantFolding would reduce an arithmetic instruction over two
// constant operands to a single constant; unimplemented for the same
// reason as DeadCodeElimination.
type ConstantFolding struct{}

func (ConstantFolding) Name() string       { return "constant-folding" }
func (ConstantFolding) Run(*ir.Module) bool { return false }

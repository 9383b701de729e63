package wat

import (
	"fmt"
	"strings"

	"github.com/lehlud/plasm/internal/ir"
)

// funcGen holds the per-function state needed to reconstruct structured
// control flow and emit one (func ...) form: every alloca/instruction
// result gets its own wasm local (see DESIGN.md's memory-vs-local
// decision), referenced throughout by `$v<id>`.
type funcGen struct {
	g  *generator
	fn *ir.Function

	locals  []localDecl
	visited map[*ir.Block]bool
	pending []pendingTarget
	labelN  int
}

type localDecl struct {
	name string
	typ  ir.Type
}

// pendingTarget records the enclosing wasm `if`/`loop` label a fallthrough
// edge to a given IR block should `br` to, instead of inlining that
// block's content a second time. Pushed when entering an if/loop,
// popped on the way back out.
type pendingTarget struct {
	block *ir.Block
	label string
}

func newFuncGen(g *generator, fn *ir.Function) *funcGen {
	fg := &funcGen{g: g, fn: fn, visited: make(map[*ir.Block]bool)}
	fg.collectLocals()
	return fg
}

// collectLocals assigns a wasm local to every value-producing
// instruction in the function, in block/instruction order. Void
// instructions (store, struct.set, array.set, terminators) need none.
func (fg *funcGen) collectLocals() {
	for _, b := range fg.fn.Blocks {
		for _, instr := range b.Instructions {
			if instr.Type().IsVoid() {
				continue
			}
			fg.locals = append(fg.locals, localDecl{name: fmt.Sprintf("$v%d", instr.ID()), typ: instr.Type()})
		}
	}
}

func (fg *funcGen) newLabel(prefix string) string {
	fg.labelN++
	return fmt.Sprintf("%s_%d", prefix, fg.labelN)
}

func (fg *funcGen) emit(out *strings.Builder) {
	fmt.Fprintf(out, "  (func $%s", fg.fn.Name)
	for _, p := range fg.fn.Params {
		fmt.Fprintf(out, " (param $p_%s %s)", p.Name(), wasmValType(p.Type()))
	}
	if !fg.fn.Result.IsVoid() {
		fmt.Fprintf(out, " (result %s)", wasmValType(fg.fn.Result))
	}
	out.WriteString("\n")

	for _, l := range fg.locals {
		fmt.Fprintf(out, "    (local %s %s)\n", l.name, wasmValType(l.typ))
	}

	if len(fg.fn.Blocks) > 0 {
		fg.emitBlock(out, fg.fn.Blocks[0])
	}

	out.WriteString("  )\n")
}

// line writes one indented WAT instruction line.
func (fg *funcGen) line(out *strings.Builder, indent int, format string, args ...any) {
	out.WriteString(strings.Repeat("  ", indent+2))
	fmt.Fprintf(out, format, args...)
	out.WriteString("\n")
}

// emitBlock appends blk's straight-line instructions, then follows its
// terminator: a return ends the region, an unconditional branch either
// opens a loop (target labelled "while_header") or falls straight
// through into its target, and a conditional branch opens a structured
// `if`. blk is always entered fresh here (never already visited), since
// join points are reached via `br` (branchOrInline) rather than by
// inlining a second time.
func (fg *funcGen) emitBlock(out *strings.Builder, blk *ir.Block) {
	fg.visited[blk] = true
	indent := len(fg.pending)
	for _, instr := range blk.Instructions {
		fg.emitInstr(out, indent, instr)
	}

	switch blk.Term.Op {
	case ir.TermRet:
		if blk.Term.Value != nil {
			fg.push(out, indent, blk.Term.Value)
		}
		fg.line(out, indent, "return")
	case ir.TermBr:
		target := blk.Term.Then
		if target.Label == "while_header" {
			fg.emitLoop(out, target)
			return
		}
		fg.branchOrInline(out, target)
	case ir.TermCondBr:
		fg.emitIf(out, blk)
	}
}

// branchOrInline either emits a `br` to the label registered for target
// (it's the merge/exit point of some enclosing if/loop already being
// closed) or, the first time target is reached, inlines it directly.
func (fg *funcGen) branchOrInline(out *strings.Builder, target *ir.Block) {
	for _, p := range fg.pending {
		if p.block == target {
			fg.line(out, len(fg.pending), "br $%s", p.label)
			return
		}
	}
	if !fg.visited[target] {
		fg.emitBlock(out, target)
	}
}

// emitIf reconstructs a structured `if`/`else`/`end` from blk's
// conditional terminator. The no-else form (source `if` with no `else`)
// is recognised directly from the builder's block-naming scheme: its
// "else" target is itself the merge block. Otherwise the two arms'
// common reconvergence point is found by reachability (findMerge), since
// nested control flow can interpose arbitrarily many blocks between the
// arms and their join point in Module's block list.
func (fg *funcGen) emitIf(out *strings.Builder, blk *ir.Block) {
	term := blk.Term
	thenBlk, elseBlk := term.Then, term.Else
	indent := len(fg.pending)

	hasElse := elseBlk.Label != "merge"
	var merge *ir.Block
	if hasElse {
		merge = findMerge(thenBlk, elseBlk)
	} else {
		merge = elseBlk
	}

	label := fg.newLabel("if_end")
	fg.push(out, indent, term.Cond)
	fg.line(out, indent, "if $%s", label)

	if merge != nil {
		fg.pending = append(fg.pending, pendingTarget{block: merge, label: label})
	}
	fg.emitBlock(out, thenBlk)
	if hasElse {
		fg.line(out, indent, "else")
		fg.emitBlock(out, elseBlk)
	}
	fg.line(out, indent, "end")
	if merge != nil {
		fg.pending = fg.pending[:len(fg.pending)-1]
		if !fg.visited[merge] {
			fg.emitBlock(out, merge)
		}
	}
}

// emitLoop reconstructs a `while` from the header/body/exit block triple
// lowerWhile produces: the condition is re-evaluated at the top of a
// `loop`, the body runs (and branches back to the header) only when it
// holds, and falling off the body's `if` (or the loop itself, when the
// condition is false) exits to whatever follows, exactly the exit block.
func (fg *funcGen) emitLoop(out *strings.Builder, header *ir.Block) {
	fg.visited[header] = true
	indent := len(fg.pending)
	label := fg.newLabel("while_header")
	fg.line(out, indent, "loop $%s", label)

	for _, instr := range header.Instructions {
		fg.emitInstr(out, indent+1, instr)
	}
	cond, body, exit := header.Term.Cond, header.Term.Then, header.Term.Else

	fg.push(out, indent+1, cond)
	fg.line(out, indent+1, "if")
	fg.pending = append(fg.pending, pendingTarget{block: header, label: label})
	fg.emitBlock(out, body)
	fg.pending = fg.pending[:len(fg.pending)-1]
	fg.line(out, indent+1, "end")
	fg.line(out, indent, "end")

	if !fg.visited[exit] {
		fg.emitBlock(out, exit)
	}
}

// findMerge locates the nearest block reachable from both thenBlk and
// elseBlk: the single join point a well-formed if/else (built only from
// structured source if/while statements) always reconverges at. Returns
// nil when neither arm can reach a common block, i.e. both arms
// terminate (return) and the if-statement has no continuation at all.
func findMerge(thenBlk, elseBlk *ir.Block) *ir.Block {
	elseReach := reachableSet(elseBlk)

	seen := make(map[*ir.Block]bool)
	queue := []*ir.Block{thenBlk}
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		if seen[b] {
			continue
		}
		seen[b] = true
		if elseReach[b] {
			return b
		}
		queue = append(queue, successors(b)...)
	}
	return nil
}

func reachableSet(start *ir.Block) map[*ir.Block]bool {
	seen := make(map[*ir.Block]bool)
	queue := []*ir.Block{start}
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		if seen[b] {
			continue
		}
		seen[b] = true
		queue = append(queue, successors(b)...)
	}
	return seen
}

func successors(b *ir.Block) []*ir.Block {
	if b.Term == nil {
		return nil
	}
	switch b.Term.Op {
	case ir.TermBr:
		return []*ir.Block{b.Term.Then}
	case ir.TermCondBr:
		return []*ir.Block{b.Term.Then, b.Term.Else}
	default:
		return nil
	}
}

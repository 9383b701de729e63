package irbuilder

import (
	"github.com/lehlud/plasm/internal/ast"
	"github.com/lehlud/plasm/internal/ir"
)

// bindParams allocates fn's IR parameters and, per the Builder doc
// comment, immediately spills each into an alloca'd slot so every later
// read/write goes through load/store uniformly.
func (b *Builder) bindParams(fn *ir.Function, params []*ast.Param) {
	for _, p := range params {
		sym := b.info.ParamSymbol[p]
		irType := b.irType(b.info.SymbolTypes[sym])

		param := ir.NewParam(b.module.NextValueID(), p.Name, irType)
		fn.Params = append(fn.Params, param)

		slot := b.currentBlock.Alloca(b.module.NextValueID, irType)
		b.currentBlock.Store(b.module.NextValueID, param, slot)
		b.values[sym] = slot
	}
}

// ensureTerminated gives the current block a trailing terminator when
// control could otherwise fall off the end of a function body (a
// procedure with no explicit return on every path, or a function whose
// declared return type made the checker accept an implicit void-ish
// path). The terminator is always a bare void return, whatever the
// function's result type: type analysis does not check that every path
// of a non-void function returns a value, and the block closed here may
// also be one nothing branches into (the merge block after an if/else
// whose arms both return).
func (b *Builder) ensureTerminated() {
	if !b.currentBlock.Terminated() {
		b.currentBlock.SetRet(nil)
	}
}

func (b *Builder) newBlock(label string) *ir.Block {
	blk := ir.NewBlock(b.module.NextBlockID(), label)
	b.currentFunc.AddBlock(blk)
	return blk
}

func (b *Builder) lowerBlock(block *ast.Block) {
	for _, stmt := range block.Statements {
		if b.currentBlock.Terminated() {
			// Statements after a return/break-equivalent are
			// unreachable; the pass manager's unreachable-block pass
			// cleans up whole blocks, but a terminated block can't
			// accept more statements at all (Block.add panics), so
			// dead statements inside the same block are simply skipped.
			continue
		}
		b.lowerStatement(stmt)
	}
}

func (b *Builder) lowerStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		b.lowerVarDecl(s)
	case *ast.IfStatement:
		b.lowerIf(s)
	case *ast.WhileStatement:
		b.lowerWhile(s)
	case *ast.ReturnStatement:
		b.lowerReturn(s)
	case *ast.ExpressionStatement:
		b.lowerExpr(s.Expression)
	case *ast.Block:
		b.lowerBlock(s)
	}
}

// lowerVarDecl allocas a slot per binding and, for a binding with an
// initialiser, stores the lowered initial value into it right away.
func (b *Builder) lowerVarDecl(decl *ast.VarDecl) {
	for _, binding := range decl.Bindings {
		sym := b.info.BindingSymbol[binding]
		irType := b.irType(b.info.SymbolTypes[sym])

		slot := b.currentBlock.Alloca(b.module.NextValueID, irType)
		if binding.Init != nil {
			val := b.lowerExpr(binding.Init)
			b.currentBlock.Store(b.module.NextValueID, val, slot)
		}
		b.values[sym] = slot
	}
}

// lowerIf follows the block-naming scheme: a "then" block, an "else"
// block only when the source has one, and a shared "merge" block that
// both rejoin at (skipped on whichever side already terminated, e.g.
// via a return on every path through it).
func (b *Builder) lowerIf(s *ast.IfStatement) {
	cond := b.lowerExpr(s.Condition)

	thenBlock := b.newBlock("then")
	var elseBlock *ir.Block
	if s.Else != nil {
		elseBlock = b.newBlock("else")
	}
	merge := b.newBlock("merge")

	if elseBlock != nil {
		b.currentBlock.SetCondBr(cond, thenBlock, elseBlock)
	} else {
		b.currentBlock.SetCondBr(cond, thenBlock, merge)
	}

	b.currentBlock = thenBlock
	b.lowerStatement(s.Then)
	if !b.currentBlock.Terminated() {
		b.currentBlock.SetBr(merge)
	}

	if elseBlock != nil {
		b.currentBlock = elseBlock
		b.lowerStatement(s.Else)
		if !b.currentBlock.Terminated() {
			b.currentBlock.SetBr(merge)
		}
	}

	b.currentBlock = merge
}

// lowerWhile follows the header/body/exit naming scheme: header
// evaluates the condition and branches into the body or out to exit,
// body unconditionally branches back to header.
func (b *Builder) lowerWhile(s *ast.WhileStatement) {
	header := b.newBlock("while_header")
	body := b.newBlock("while_body")
	exit := b.newBlock("while_exit")

	b.currentBlock.SetBr(header)

	b.currentBlock = header
	cond := b.lowerExpr(s.Condition)
	b.currentBlock.SetCondBr(cond, body, exit)

	b.currentBlock = body
	b.lowerStatement(s.Body)
	if !b.currentBlock.Terminated() {
		b.currentBlock.SetBr(header)
	}

	b.currentBlock = exit
}

func (b *Builder) lowerReturn(s *ast.ReturnStatement) {
	if s.Value == nil {
		b.currentBlock.SetRet(nil)
		return
	}
	b.currentBlock.SetRet(b.lowerExpr(s.Value))
}

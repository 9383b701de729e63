package semantic

import (
	"github.com/lehlud/plasm/internal/ast"
	"github.com/lehlud/plasm/internal/diagnostics"
)

// Analyze runs the full semantic pipeline over prog: name resolution,
// then type analysis. Type analysis only runs if name resolution
// reported no diagnostics, since it relies on every identifier having
// already been resolved to a symbol.
func Analyze(prog *ast.Program) (*Info, []diagnostics.Diagnostic) {
	info, diags := AnalyzeNames(prog)
	if len(diags) > 0 {
		return info, diags
	}
	diags = AnalyzeTypes(prog, info)
	return info, diags
}

// Package passes implements the trivial module-rewriting pass manager
// from spec.md SS4.7: an ordered list of passes, each exposing a name and
// a run(module) -> bool contract, plus a pre-order visitor contract over
// module/function/block/instruction/value so further passes can be added
// without re-implementing traversal.
package passes

import "github.com/lehlud/plasm/internal/ir"

// Pass is a single module-rewriting transformation. Run reports whether
// it changed anything, mirroring dws's own Pass interface
// (internal/semantic.Pass in the teacher repo) but over ir.Module instead
// of an AST.
type Pass interface {
	Name() string
	Run(module *ir.Module) bool
}

// Manager runs an ordered list of passes over a module, repeating the
// whole list until a full pass over it makes no further change (a
// fixed-point iteration), matching the interface note in spec.md SS4.7
// that bundled passes need not optimise anything but must compose.
type Manager struct {
	passes []Pass
}

// NewManager creates a manager running passes in the given order.
func NewManager(passes ...Pass) *Manager {
	return &Manager{passes: passes}
}

// Add appends a pass, to run after every pass already registered.
func (m *Manager) Add(p Pass) {
	m.passes = append(m.passes, p)
}

// Passes returns the registered passes in run order.
func (m *Manager) Passes() []Pass {
	return m.passes
}

// Run executes every registered pass once per round, looping until a
// round changes nothing. It returns the names of passes that fired at
// least once, in the order they first changed the module.
func (m *Manager) Run(module *ir.Module) []string {
	var fired []string
	seen := make(map[string]bool)
	for {
		changed := false
		for _, p := range m.passes {
			if p.Run(module) {
				changed = true
				if !seen[p.Name()] {
					seen[p.Name()] = true
					fired = append(fired, p.Name())
				}
			}
		}
		if !changed {
			return fired
		}
	}
}

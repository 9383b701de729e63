// Package diagnostics formats compiler diagnostics with source context,
// the way errors surface from every phase of the plasm pipeline.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/lehlud/plasm/internal/lexer"
)

// Phase names a pipeline stage, used as the prefix in "<Phase> error at
// L:C: msg".
type Phase string

const (
	Lexer    Phase = "Lexer"
	Parser   Phase = "Parse"
	Name     Phase = "Name"
	Type     Phase = "Type"
	IR       Phase = "IR"
	WAT      Phase = "WAT"
)

// Diagnostic is a single reported problem, tagged with the phase that
// found it and the source position it refers to.
type Diagnostic struct {
	Phase   Phase
	Pos     lexer.Position
	Message string
}

func New(phase Phase, pos lexer.Position, format string, args ...any) Diagnostic {
	return Diagnostic{Phase: phase, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface so a Diagnostic can be returned
// or wrapped like any other Go error.
func (d Diagnostic) Error() string { return d.String() }

// String renders "<Phase> error at L:C: message", the canonical format
// used throughout the pipeline.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s error at %s: %s", d.Phase, d.Pos, d.Message)
}

// Format renders the diagnostic with the offending source line and a
// caret pointing at the column.
func (d Diagnostic) Format(source string) string {
	var sb strings.Builder
	sb.WriteString(d.String())
	sb.WriteByte('\n')

	lines := strings.Split(source, "\n")
	if d.Pos.Line >= 1 && d.Pos.Line <= len(lines) {
		line := lines[d.Pos.Line-1]
		prefix := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteByte('\n')
		col := d.Pos.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", len(prefix)+col-1))
		sb.WriteString("^")
	}
	return sb.String()
}

// FormatAll renders a whole diagnostic list, one block per entry.
func FormatAll(diags []Diagnostic, source string) string {
	var sb strings.Builder
	for i, d := range diags {
		sb.WriteString(d.Format(source))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

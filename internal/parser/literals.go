package parser

import (
	"strings"

	"github.com/lehlud/plasm/internal/ast"
	"github.com/lehlud/plasm/internal/diagnostics"
	"github.com/lehlud/plasm/internal/lexer"
)

// parseStringExpression decodes a scanned string token into a plain
// StringLiteral, or a StringInterpolation when it contains `${expr}`
// segments. The lexer leaves those segments as literal text in
// tok.StringValue; splitting and parsing them happens here so the
// lexer itself stays expression-grammar-agnostic.
func (p *Parser) parseStringExpression(tok lexer.Token) ast.Expression {
	raw := tok.StringValue
	if !strings.Contains(raw, "${") {
		return &ast.StringLiteral{Token: tok, Value: raw}
	}

	parts, exprSrcs := splitInterpolation(raw)
	interp := &ast.StringInterpolation{Token: tok, Parts: parts}
	for _, src := range exprSrcs {
		interp.Exprs = append(interp.Exprs, p.parseEmbeddedExpression(src, tok.Pos))
	}
	return interp
}

// splitInterpolation splits raw into the literal text segments and the
// `${...}` expression sources between them, tracking brace depth so a
// nested `{`/`}` (e.g. a lambda block inside the interpolation) doesn't
// end the segment early. len(parts) == len(exprs)+1 always.
func splitInterpolation(raw string) (parts []string, exprs []string) {
	var sb strings.Builder
	i := 0
	for i < len(raw) {
		if i+1 < len(raw) && raw[i] == '$' && raw[i+1] == '{' {
			parts = append(parts, sb.String())
			sb.Reset()
			i += 2
			depth := 1
			start := i
			for i < len(raw) && depth > 0 {
				switch raw[i] {
				case '{':
					depth++
				case '}':
					depth--
					if depth == 0 {
						goto doneExpr
					}
				}
				i++
			}
		doneExpr:
			exprs = append(exprs, raw[start:i])
			if i < len(raw) {
				i++ // consume closing '}'
			}
			continue
		}
		sb.WriteByte(raw[i])
		i++
	}
	parts = append(parts, sb.String())
	return parts, exprs
}

// parseEmbeddedExpression parses one `${...}` payload as a standalone
// expression, re-lexing it and folding any resulting diagnostics into
// the enclosing parser (positions are reported relative to the
// embedded source, not the owning string literal).
func (p *Parser) parseEmbeddedExpression(src string, basePos lexer.Position) ast.Expression {
	tokens, lexErrs := lexer.Tokenize(src)
	for _, e := range lexErrs {
		p.errors = append(p.errors, diagnostics.New(diagnostics.Lexer, e.Pos, "in string interpolation: %s", e.Message))
	}
	sub := &Parser{tokens: tokens}
	expr := sub.parseExpression()
	p.errors = append(p.errors, sub.errors...)
	if expr == nil {
		return &ast.StringLiteral{Token: lexer.NewToken(lexer.STRING, "", basePos), Value: ""}
	}
	return expr
}

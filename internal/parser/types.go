package parser

import (
	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/token"
)

// parseTypeExpr: int | float | bool | string | nothing | Ident.
// Встроенные имена: обычные идентификаторы, их узнаёт семантика.
func (p *Parser) parseTypeExpr() (ast.TypeID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident, token.NothingLit:
		p.advance()
		return p.arenas.Types.New(p.intern(tok.Text), tok.Span), true
	default:
		p.errAtPeek(diag.SynExpectType, "expected type, got "+quote(tok))
		return ast.NoTypeID, false
	}
}

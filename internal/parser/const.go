package parser

import (
	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/token"
)

// parseConstBinding парсит 'const' name [: Type] = Expr ';'
func (p *Parser) parseConstBinding(first token.Token, vis ast.Visibility) (ast.ConstItem, bool) {
	p.advance() // 'const'

	c := ast.ConstItem{Visibility: vis, Doc: first.DocComment()}
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.ConstItem{}, false
	}
	c.Name, c.NameSpan = name, nameSpan

	if p.at(token.Colon) {
		p.advance()
		if c.Type, ok = p.parseTypeExpr(); !ok {
			return ast.ConstItem{}, false
		}
	}

	if !p.at(token.Assign) {
		p.report(diag.SynConstMissingValue, diag.SevError, p.getDiagnosticSpan(), "const declaration requires '=' and a value")
		return ast.ConstItem{}, false
	}
	p.advance()
	if c.Value, ok = p.parseExpr(); !ok {
		return ast.ConstItem{}, false
	}

	p.expectSemicolon("const declaration")
	c.Span = first.Span.Cover(p.lastSpan)
	return c, true
}

func (p *Parser) parseConstItem(first token.Token, vis ast.Visibility) (ast.ItemID, bool) {
	c, ok := p.parseConstBinding(first, vis)
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewConst(c), true
}

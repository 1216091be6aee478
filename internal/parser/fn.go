package parser

import (
	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/token"
)

// parseFnItem: [pub] fn name(params) [-> Type] { body }
func (p *Parser) parseFnItem(first token.Token, vis ast.Visibility) (ast.ItemID, bool) {
	p.advance() // 'fn'

	fn := ast.FnItem{Visibility: vis, Doc: first.DocComment()}
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}
	fn.Name, fn.NameSpan = name, nameSpan

	if _, ok = p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return ast.NoItemID, false
	}
	if fn.Params, ok = p.parseFnParams(); !ok {
		return ast.NoItemID, false
	}

	if p.at(token.Arrow) {
		p.advance()
		if fn.Result, ok = p.parseTypeExpr(); !ok {
			return ast.NoItemID, false
		}
	}

	if !p.at(token.LBrace) {
		p.errAtPeek(diag.SynUnexpectedToken, "expected '{' to start function body, got "+quote(p.lx.Peek()))
		return ast.NoItemID, false
	}
	if fn.Body, ok = p.parseBlock(); !ok {
		return ast.NoItemID, false
	}
	fn.Span = first.Span.Cover(p.lastSpan)
	return p.arenas.Items.NewFn(fn), true
}

// parseFnParams парсит список после '(' включая ')'.
func (p *Parser) parseFnParams() ([]ast.FnParamID, bool) {
	var params []ast.FnParamID
	for !p.at(token.RParen) {
		name, nameSpan, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		if _, ok = p.expect(token.Colon, diag.SynExpectType, "expected ':' and a type after parameter name"); !ok {
			return nil, false
		}
		typ, ok := p.parseTypeExpr()
		if !ok {
			return nil, false
		}
		params = append(params, p.arenas.Items.NewFnParam(ast.FnParam{
			Name:     name,
			Type:     typ,
			NameSpan: nameSpan,
			Span:     nameSpan.Cover(p.lastSpan),
		}))
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynExpectRightParen, "expected ')' to close parameter list"); !ok {
		return nil, false
	}
	return params, true
}

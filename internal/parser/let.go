package parser

import (
	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/token"
)

// parseLetBinding парсит 'let' [mut] name [: Type] [= Expr] ';'
// и переиспользуется для items и statements.
func (p *Parser) parseLetBinding(first token.Token, vis ast.Visibility) (ast.LetItem, bool) {
	p.advance() // 'let'

	binding := ast.LetItem{Visibility: vis, Doc: first.DocComment()}
	if p.at(token.KwMut) {
		p.advance()
		binding.IsMut = true
	}

	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.LetItem{}, false
	}
	binding.Name, binding.NameSpan = name, nameSpan

	if p.at(token.Colon) {
		p.advance()
		if binding.Type, ok = p.parseTypeExpr(); !ok {
			return ast.LetItem{}, false
		}
	}

	if p.at(token.Assign) {
		p.advance()
		if binding.Value, ok = p.parseExpr(); !ok {
			return ast.LetItem{}, false
		}
	}

	if !binding.Type.IsValid() && !binding.Value.IsValid() {
		p.report(diag.SynLetMissingTypeOrValue, diag.SevError, nameSpan,
			"let binding must have either type annotation or initializer")
		return ast.LetItem{}, false
	}

	// без ';' узел всё равно сохраняем, чтобы семантика его видела
	p.expectSemicolon("let binding")
	binding.Span = first.Span.Cover(p.lastSpan)
	return binding, true
}

// parseLetItem распознаёт let верхнего уровня: [pub] let [mut] name [: Type] [= Expr];
func (p *Parser) parseLetItem(first token.Token, vis ast.Visibility) (ast.ItemID, bool) {
	binding, ok := p.parseLetBinding(first, vis)
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewLet(binding), true
}

package parser

import (
	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/token"
)

func (p *Parser) parseBlock() (ast.StmtID, bool) {
	if !p.at(token.LBrace) {
		return ast.NoStmtID, false
	}
	openTok := p.advance()
	var stmtIDs []ast.StmtID

	for !p.at(token.EOF) && !p.at(token.RBrace) {
		if isTopLevelStarter(p.lx.Peek().Kind) && !p.atOr(token.KwLet, token.KwConst) {
			break // забытая '}' перед следующим item
		}
		before := p.lx.Peek().Span
		stmtID, ok := p.parseStmt()
		if ok {
			stmtIDs = append(stmtIDs, stmtID)
			continue
		}
		if p.lx.Peek().Span == before {
			p.advance()
		}
		p.resyncStatement()
	}

	closeTok, ok := p.expect(token.RBrace, diag.SynExpectRightBrace, "expected '}' to close block")
	span := openTok.Span.Cover(p.lastSpan)
	if ok {
		span = openTok.Span.Cover(closeTok.Span)
	}
	return p.arenas.Stmts.NewBlock(span, stmtIDs), true
}

// resyncStatement прокручивает до конца statement: после ';' или до '}' / стартера.
func (p *Parser) resyncStatement() {
	for !p.at(token.EOF) {
		switch p.lx.Peek().Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.RBrace, token.KwLet, token.KwConst, token.KwReturn, token.KwIf, token.KwWhile, token.KwFn, token.KwPub:
			return
		}
		p.advance()
	}
}

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	first := p.lx.Peek()
	switch first.Kind {
	case token.KwLet:
		binding, ok := p.parseLetBinding(first, ast.VisPrivate)
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewLet(binding), true
	case token.KwConst:
		c, ok := p.parseConstBinding(first, ast.VisPrivate)
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewConst(c), true
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.LBrace:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	retTok := p.advance()

	exprID := ast.NoExprID
	if !p.atOr(token.Semicolon, token.RBrace, token.EOF) {
		var ok bool
		if exprID, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	p.expectSemicolon("return statement")
	return p.arenas.Stmts.NewReturn(retTok.Span.Cover(p.lastSpan), exprID), true
}

func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	ifTok := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseBody("if")
	if !ok {
		return ast.NoStmtID, false
	}

	els := ast.NoStmtID
	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			els, ok = p.parseIfStmt()
		} else {
			els, ok = p.parseBody("else")
		}
		if !ok {
			return ast.NoStmtID, false
		}
	}
	return p.arenas.Stmts.NewIf(ifTok.Span.Cover(p.lastSpan), cond, then, els), true
}

func (p *Parser) parseWhileStmt() (ast.StmtID, bool) {
	whileTok := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseBody("while")
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWhile(whileTok.Span.Cover(p.lastSpan), cond, body), true
}

func (p *Parser) parseBody(what string) (ast.StmtID, bool) {
	if !p.at(token.LBrace) {
		p.errAtPeek(diag.SynUnexpectedToken, "expected '{' after "+what+", got "+quote(p.lx.Peek()))
		return ast.NoStmtID, false
	}
	return p.parseBlock()
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	exprID, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	p.expectSemicolon("expression statement")
	span := p.arenas.Exprs.Get(exprID).Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewExpr(span, exprID), true
}

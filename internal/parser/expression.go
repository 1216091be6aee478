package parser

import (
	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/source"
	"strata/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		prec, isRightAssoc := getBinaryOperatorPrec(p.lx.Peek().Kind)
		if prec < minPrec || prec < 0 {
			break
		}
		opTok := p.advance()

		nextMinPrec := prec + 1
		if isRightAssoc {
			nextMinPrec = prec
		}
		right, ok := p.parseBinaryExpr(nextMinPrec)
		if !ok {
			return ast.NoExprID, false
		}

		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, binaryOps[opTok.Kind], left, right)
	}
	return left, true
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	type prefixOp struct {
		op   ast.ExprUnaryOp
		span source.Span
	}
	var prefixes []prefixOp
	for {
		op, ok := getUnaryOperator(p.lx.Peek().Kind)
		if !ok {
			break
		}
		tok := p.advance()
		prefixes = append(prefixes, prefixOp{op: op, span: tok.Span})
	}

	expr, ok := p.parsePostfixExpr()
	if !ok {
		return ast.NoExprID, false
	}

	// Применяем префиксы справа налево
	for i := len(prefixes) - 1; i >= 0; i-- {
		span := prefixes[i].span.Cover(p.arenas.Exprs.Get(expr).Span)
		expr = p.arenas.Exprs.NewUnary(span, prefixes[i].op, expr)
	}
	return expr, true
}

// parsePostfixExpr обрабатывает вызовы: f(a)(b)
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.LParen) {
		expr, ok = p.parseCallExpr(expr)
		if !ok {
			return ast.NoExprID, false
		}
	}
	return expr, true
}

func (p *Parser) parseCallExpr(target ast.ExprID) (ast.ExprID, bool) {
	p.advance() // '('
	var args []ast.ExprID
	for !p.at(token.RParen) {
		arg, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	closeTok, ok := p.expect(token.RParen, diag.SynExpectRightParen, "expected ')' to close argument list")
	if !ok {
		return ast.NoExprID, false
	}
	span := p.arenas.Exprs.Get(target).Span.Cover(closeTok.Span)
	return p.arenas.Exprs.NewCall(span, target, args), true
}

// parsePrimaryExpr парсит атомарные выражения
func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.intern(tok.Text)), true
	case token.IntLit:
		return p.literal(ast.ExprLitInt), true
	case token.FloatLit:
		return p.literal(ast.ExprLitFloat), true
	case token.StringLit:
		return p.literal(ast.ExprLitString), true
	case token.KwTrue:
		return p.literal(ast.ExprLitTrue), true
	case token.KwFalse:
		return p.literal(ast.ExprLitFalse), true
	case token.NothingLit:
		return p.literal(ast.ExprLitNothing), true
	case token.LParen:
		return p.parseParenExpr()
	default:
		p.errAtPeek(diag.SynExpectExpression, "expected expression, got "+quote(tok))
		return ast.NoExprID, false
	}
}

func (p *Parser) literal(kind ast.ExprLitKind) ast.ExprID {
	tok := p.advance()
	return p.arenas.Exprs.NewLiteral(tok.Span, kind, p.strings.Intern(tok.Text))
}

func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	openTok := p.advance()
	inner, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	closeTok, ok := p.expect(token.RParen, diag.SynExpectRightParen, "expected ')' to close parenthesized expression")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewGroup(openTok.Span.Cover(closeTok.Span), inner), true
}

package parser

import (
	"strconv"

	"strata/internal/diag"
	"strata/internal/source"
	"strata/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan: лучший span для диагностики: на EOF указываем сразу за последним токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.ZeroideToEnd()
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errAtPeek(code, msg)
	return token.Token{Kind: token.Invalid, Span: p.getDiagnosticSpan(), Text: p.lx.Peek().Text}, false
}

// expectSemicolon репортит отсутствие ';' сразу после последнего токена.
func (p *Parser) expectSemicolon(what string) (token.Token, bool) {
	if p.at(token.Semicolon) {
		return p.advance(), true
	}
	p.report(diag.SynExpectSemicolon, diag.SevError, p.lastSpan.ZeroideToEnd(), "expected ';' after "+what)
	return token.Token{}, false
}

// errAtPeek репортит ошибку на текущем токене. Invalid-токены уже отрепорчены лексером.
func (p *Parser) errAtPeek(code diag.Code, msg string) bool {
	if p.at(token.Invalid) {
		p.opts.CurrentErrors++
		return false
	}
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
		// после лимита молчим, кроме финального SynTooManyErrors
		if p.opts.MaxErrors != 0 && p.opts.CurrentErrors > p.opts.MaxErrors && code != diag.SynTooManyErrors {
			return false
		}
	}
	if p.opts.Reporter == nil {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}

// resyncUntil пропускает токены до одного из kinds или EOF. Без аргументов: до EOF.
func (p *Parser) resyncUntil(kinds ...token.Kind) {
	for !p.at(token.EOF) && !p.atOr(kinds...) {
		p.advance()
	}
}

func quote(tok token.Token) string {
	if tok.Kind == token.EOF {
		return "end of file"
	}
	return strconv.Quote(tok.Text)
}

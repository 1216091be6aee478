package lexer

import (
	"strata/internal/diag"
	"strata/internal/token"
)

// Поддержка: 0, 123, 1_000, 1.5, 1e-3, 1.0e+10.
// Неверные формы (1e, 12abc): репорт LexBadNumber и Invalid токен.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	lx.eatDigits()

	// дробная часть только если за точкой цифра
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump()
		kind = token.FloatLit
		lx.eatDigits()
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			return lx.badNumber(start, "expected digit after exponent")
		}
		lx.eatDigits()
	}

	// хвост вида 12abc: одна плохая лексема, а не число + идентификатор
	if b := lx.cursor.Peek(); isIdentStartByte(b) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return lx.badNumber(start, "invalid suffix on number literal")
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.file.Content[sp.Start:sp.End]
	if text[len(text)-1] == '_' {
		return lx.badNumber(start, "number literal cannot end with '_'")
	}
	return token.Token{Kind: kind, Span: sp, Text: string(text)}
}

func (lx *Lexer) eatDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadNumber, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

package lexer

import (
	"strata/internal/diag"
	"strata/internal/token"
)

// scanString reads a "..." literal. Escapes are skipped as pairs and left
// undecoded; a string never spans lines.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			return lx.textToken(token.StringLit, start)
		case '\n':
			return lx.badString(start, "newline in string literal")
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				return lx.badString(start, "unterminated string literal")
			}
		}
		lx.cursor.Bump()
	}
	return lx.badString(start, "unterminated string literal")
}

func (lx *Lexer) badString(start Mark, msg string) token.Token {
	tok := lx.textToken(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, msg)
	return tok
}

// textToken builds a token whose text is the source slice from start.
func (lx *Lexer) textToken(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

package token

import (
	"strata/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, string or nothing literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NothingLit, IntLit, FloatLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind <= RBrace
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwFn && t.Kind <= KwFalse
}

func (t Token) IsIdent() bool { return t.Kind == Ident }

// DocComment joins the text of leading /// lines, without the markers.
func (t Token) DocComment() string {
	var out []byte
	for _, tr := range t.Leading {
		if tr.Kind != TriviaDocLine {
			continue
		}
		text := tr.Text
		if len(text) >= 3 {
			text = text[3:]
		}
		if len(text) > 0 && text[0] == ' ' {
			text = text[1:]
		}
		if len(out) > 0 {
			out = append(out, '\n')
		}
		out = append(out, text...)
	}
	return string(out)
}

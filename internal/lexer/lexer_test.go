package lexer_test

import (
	"testing"

	"strata/internal/diag"
	"strata/internal/lexer"
	"strata/internal/source"
	"strata/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.st", []byte(input)))
	bag := diag.NewBag(0)
	return lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

// collectAllTokens собирает все токены до EOF
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	lx, bag := makeTestLexer(input)
	toks := collectAllTokens(lx)
	got := kinds(toks)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %v, want %v (all: %v)", input, i, got[i], want[i], got)
		}
	}
	if bag.HasErrors() {
		t.Fatalf("%q: unexpected diagnostics %+v", input, bag.Items())
	}
	return toks
}

func TestLetStatement(t *testing.T) {
	toks := expectKinds(t, "let mut x: int = 1 + 2;",
		token.KwLet, token.KwMut, token.Ident, token.Colon, token.Ident,
		token.Assign, token.IntLit, token.Plus, token.IntLit, token.Semicolon)
	if toks[2].Text != "x" || toks[2].Span.Start != 8 || toks[2].Span.End != 9 {
		t.Fatalf("ident token = %+v", toks[2])
	}
}

func TestFunctionHeader(t *testing.T) {
	expectKinds(t, "pub fn add(a: int, b: int) -> int { return a; }",
		token.KwPub, token.KwFn, token.Ident, token.LParen,
		token.Ident, token.Colon, token.Ident, token.Comma,
		token.Ident, token.Colon, token.Ident, token.RParen,
		token.Arrow, token.Ident, token.LBrace, token.KwReturn,
		token.Ident, token.Semicolon, token.RBrace)
}

func TestOperators(t *testing.T) {
	expectKinds(t, "== != <= >= < > && || ! = - * / %",
		token.EqEq, token.BangEq, token.LtEq, token.GtEq, token.Lt, token.Gt,
		token.AndAnd, token.OrOr, token.Bang, token.Assign, token.Minus,
		token.Star, token.Slash, token.Percent)
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		in   string
		kind token.Kind
	}{
		{"0", token.IntLit},
		{"1_000", token.IntLit},
		{"3.14", token.FloatLit},
		{"1e10", token.FloatLit},
		{"2.5E-3", token.FloatLit},
		{`"hi \"there\""`, token.StringLit},
		{"true", token.KwTrue},
		{"false", token.KwFalse},
		{"nothing", token.NothingLit},
	}
	for _, tt := range tests {
		toks := expectKinds(t, tt.in, tt.kind)
		if toks[0].Text != tt.in {
			t.Fatalf("%q: text %q", tt.in, toks[0].Text)
		}
	}
}

func TestIntegerFollowedByDot(t *testing.T) {
	// "1." без цифры: целое, точка останется неизвестным символом
	lx, bag := makeTestLexer("1.x")
	toks := collectAllTokens(lx)
	if toks[0].Kind != token.IntLit || toks[0].Text != "1" {
		t.Fatalf("first token = %+v", toks[0])
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("expected unknown character for '.'")
	}
}

func TestTrivia(t *testing.T) {
	src := "/// doc line\n// plain\n/* block /* nested */ */ let"
	toks := expectKinds(t, src, token.KwLet)
	var docs, lines, blocks int
	for _, tr := range toks[0].Leading {
		switch tr.Kind {
		case token.TriviaDocLine:
			docs++
		case token.TriviaLineComment:
			lines++
		case token.TriviaBlockComment:
			blocks++
			if tr.Text != "/* block /* nested */ */" {
				t.Fatalf("block text %q", tr.Text)
			}
		}
	}
	if docs != 1 || lines != 1 || blocks != 1 {
		t.Fatalf("docs=%d lines=%d blocks=%d", docs, lines, blocks)
	}
	if toks[0].DocComment() != "doc line" {
		t.Fatalf("DocComment = %q", toks[0].DocComment())
	}
}

func TestFourSlashesIsPlainComment(t *testing.T) {
	toks := expectKinds(t, "//// rule\nx", token.Ident)
	if toks[0].Leading[0].Kind != token.TriviaLineComment {
		t.Fatalf("//// must be a plain comment, got %v", toks[0].Leading[0].Kind)
	}
}

func TestCRLFIsTrivia(t *testing.T) {
	expectKinds(t, "let\r\nx", token.KwLet, token.Ident)
}

func TestUnicodeIdentifiers(t *testing.T) {
	toks := expectKinds(t, "let caf\u00e9 = 1; let cafe\u0301 = 2;",
		token.KwLet, token.Ident, token.Assign, token.IntLit, token.Semicolon,
		token.KwLet, token.Ident, token.Assign, token.IntLit, token.Semicolon)
	if toks[1].Text != "caf\u00e9" || toks[6].Text != "cafe\u0301" {
		t.Fatalf("texts %q %q", toks[1].Text, toks[6].Text)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code diag.Code
	}{
		{"unknown ascii", "let $ = 1;", diag.LexUnknownChar},
		{"unknown unicode", "let € = 1;", diag.LexUnknownChar},
		{"unterminated string", `"abc`, diag.LexUnterminatedString},
		{"newline in string", "\"abc\ndef\"", diag.LexUnterminatedString},
		{"unterminated block comment", "/* never closed", diag.LexUnterminatedBlockComment},
		{"bad exponent", "1e+", diag.LexBadNumber},
		{"bad suffix", "12abc", diag.LexBadNumber},
		{"trailing underscore", "12_", diag.LexBadNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, bag := makeTestLexer(tt.in)
			collectAllTokens(lx)
			if !bag.HasErrors() {
				t.Fatalf("expected error for %q", tt.in)
			}
			if got := bag.Items()[0].Code; got != tt.code {
				t.Fatalf("code = %s, want %s", got.ID(), tt.code.ID())
			}
		})
	}
}

func TestUnknownUnicodeSpansWholeRune(t *testing.T) {
	lx, _ := makeTestLexer("€")
	tok := lx.Next()
	if tok.Kind != token.Invalid || tok.Span.Len() != 3 {
		t.Fatalf("token = %+v", tok)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("second Peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("Next = %q", n.Text)
	}
	for i := 0; i < 3; i++ {
		if lx.Next().Kind != token.EOF {
			t.Fatalf("EOF must be sticky")
		}
	}
}

func TestTokenize(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("", []byte("x;")))
	toks := lexer.Tokenize(file, lexer.Options{})
	if len(toks) != 3 || toks[2].Kind != token.EOF || toks[2].Span.Start != 2 {
		t.Fatalf("Tokenize = %+v", toks)
	}
}

package parser

import (
	"testing"

	"strata/internal/ast"
	"strata/internal/diag"
)

func TestParseTopLevelItems(t *testing.T) {
	src := `
/// The answer.
pub let mut x: int = 42;
const LIMIT = 10;
fn add(a: int, b: int) -> int {
    return a + b;
}
`
	p := parseSource(t, src)
	expectNoDiagnostics(t, p)
	items := p.items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	let, ok := p.builder.Items.Let(items[0])
	if !ok || p.name(let.Name) != "x" || !let.IsMut || let.Visibility != ast.VisPublic {
		t.Fatalf("let item = %+v", let)
	}
	if let.Doc != "The answer." {
		t.Fatalf("doc = %q", let.Doc)
	}
	if typ := p.builder.Types.Get(let.Type); typ == nil || p.name(typ.Name) != "int" {
		t.Fatalf("let type lost")
	}

	c, ok := p.builder.Items.Const(items[1])
	if !ok || p.name(c.Name) != "LIMIT" || c.Type.IsValid() || !c.Value.IsValid() {
		t.Fatalf("const item = %+v", c)
	}

	fn, ok := p.builder.Items.Fn(items[2])
	if !ok || p.name(fn.Name) != "add" || len(fn.Params) != 2 || !fn.Result.IsValid() {
		t.Fatalf("fn item = %+v", fn)
	}
	if param := p.builder.Items.FnParam(fn.Params[1]); p.name(param.Name) != "b" {
		t.Fatalf("second param = %q", p.name(param.Name))
	}
	body := p.builder.Stmts.Block(fn.Body)
	if body == nil || len(body.Stmts) != 1 || p.builder.Stmts.Get(body.Stmts[0]).Kind != ast.StmtReturn {
		t.Fatalf("fn body = %+v", body)
	}
}

func TestItemSpans(t *testing.T) {
	p := parseSource(t, "let x = 1;\nfn f() {}")
	expectNoDiagnostics(t, p)
	first := p.builder.Items.Get(p.items()[0])
	if first.Span.Start != 0 || first.Span.End != 10 {
		t.Fatalf("let span = %v", first.Span)
	}
	second := p.builder.Items.Get(p.items()[1])
	if second.Span.Start != 11 || second.Span.End != 20 {
		t.Fatalf("fn span = %v", second.Span)
	}
}

func TestStatements(t *testing.T) {
	src := `fn main() {
    let mut i = 0;
    const step: int = 1;
    while i < 10 {
        i = i + step;
    }
    if i == 10 { print(i); } else if i > 10 { } else { }
    { let inner = true; }
    return;
}`
	p := parseSource(t, src)
	expectNoDiagnostics(t, p)
	fn, _ := p.builder.Items.Fn(p.items()[0])
	body := p.builder.Stmts.Block(fn.Body)
	want := []ast.StmtKind{ast.StmtLet, ast.StmtConst, ast.StmtWhile, ast.StmtIf, ast.StmtBlock, ast.StmtReturn}
	if len(body.Stmts) != len(want) {
		t.Fatalf("expected %d statements, got %d", len(want), len(body.Stmts))
	}
	for i, k := range want {
		if got := p.builder.Stmts.Get(body.Stmts[i]).Kind; got != k {
			t.Fatalf("stmt %d kind = %v, want %v", i, got, k)
		}
	}
	ifStmt := p.builder.Stmts.If(body.Stmts[3])
	if nested := p.builder.Stmts.If(ifStmt.Else); nested == nil || !nested.Else.IsValid() {
		t.Fatalf("else-if chain lost")
	}
	if ret := p.builder.Stmts.Return(body.Stmts[5]); ret.Expr.IsValid() {
		t.Fatalf("bare return must have no expression")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"missing semicolon", "let x = 1\nlet y = 2;", diag.SynExpectSemicolon},
		{"let without type or value", "let x;", diag.SynLetMissingTypeOrValue},
		{"const without value", "const C: int;", diag.SynConstMissingValue},
		{"missing identifier", "let = 1;", diag.SynExpectIdentifier},
		{"missing expression", "let x = ;", diag.SynExpectExpression},
		{"missing type", "let x: 5 = 1;", diag.SynExpectType},
		{"unclosed paren", "let x = (1 + 2;", diag.SynExpectRightParen},
		{"unclosed call", "let x = f(1, 2;", diag.SynExpectRightParen},
		{"unclosed block", "fn f() { let x = 1;", diag.SynExpectRightBrace},
		{"top level junk", "x = 1;", diag.SynUnexpectedTopLevel},
		{"pub without item", "pub 42;", diag.SynUnexpectedToken},
		{"fn without body", "fn f() -> int;", diag.SynUnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseSource(t, tt.src)
			d := expectCode(t, p, tt.code)
			if d.Severity != diag.SevError {
				t.Fatalf("severity = %v", d.Severity)
			}
			if p.result.Errors == 0 {
				t.Fatalf("Result.Errors must count reported errors")
			}
		})
	}
}

func TestMissingSemicolonPointsAfterLastToken(t *testing.T) {
	p := parseSource(t, "let x = 1\nlet y = 2;")
	d := expectCode(t, p, diag.SynExpectSemicolon)
	if d.Primary.Start != 9 || d.Primary.End != 9 {
		t.Fatalf("span = %v", d.Primary)
	}
	// оба item всё равно построены
	if len(p.items()) != 2 {
		t.Fatalf("expected both items, got %d", len(p.items()))
	}
}

func TestRecoveryKeepsLaterItems(t *testing.T) {
	p := parseSource(t, "let = ;\nfoo bar baz;\nlet ok = 1;")
	if len(p.items()) != 1 {
		t.Fatalf("expected recovered item, got %d (%s)", len(p.items()), diagnosticsSummary(p.bag))
	}
	let, _ := p.builder.Items.Let(p.items()[0])
	if p.name(let.Name) != "ok" {
		t.Fatalf("recovered %q", p.name(let.Name))
	}
}

func TestLexErrorNotDuplicatedByParser(t *testing.T) {
	p := parseSource(t, "let x = $;")
	if p.bag.Len() != 1 || p.bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("diagnostics: %s", diagnosticsSummary(p.bag))
	}
}

func TestMaxErrors(t *testing.T) {
	p := parseSourceOpts(t, "1; 2; 3; 4; 5; 6;", 2)
	var syn, tooMany int
	for _, d := range p.bag.Items() {
		switch d.Code {
		case diag.SynUnexpectedTopLevel:
			syn++
		case diag.SynTooManyErrors:
			tooMany++
		}
	}
	if syn != 2 || tooMany != 1 {
		t.Fatalf("syn=%d tooMany=%d (%s)", syn, tooMany, diagnosticsSummary(p.bag))
	}
}

func TestIdentifiersAreNFCNormalised(t *testing.T) {
	p := parseSource(t, "let caf\u00e9 = 1;\nlet y = cafe\u0301;")
	expectNoDiagnostics(t, p)
	first, _ := p.builder.Items.Let(p.items()[0])
	second, _ := p.builder.Items.Let(p.items()[1])
	ident, ok := p.builder.Exprs.Ident(second.Value)
	if !ok || ident.Name != first.Name {
		t.Fatalf("decomposed spelling interned separately")
	}
}

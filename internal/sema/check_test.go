package sema

import (
	"strings"
	"testing"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/lexer"
	"strata/internal/parser"
	"strata/internal/source"
	"strata/internal/symbols"
	"strata/internal/types"
)

type program struct {
	fs      *source.FileSet
	builder *ast.Builder
	strings *source.Interner
	table   *symbols.Table
	result  *Result
	files   []ast.FileID
}

func newProgram() *program {
	in := source.NewInterner()
	return &program{
		fs:      source.NewFileSet(),
		builder: ast.NewBuilder(ast.Hints{}),
		strings: in,
		table:   symbols.NewTable(symbols.Hints{}, in),
		result:  NewResult(nil),
	}
}

// add парсит и проверяет одну единицу, возвращая её диагностики.
func (p *program) add(t *testing.T, name, src string) *diag.Bag {
	t.Helper()
	file := p.fs.Get(p.fs.AddVirtual(name, []byte(src)))
	bag := diag.NewBag(0)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	res := parser.ParseFile(file, lx, p.builder, p.strings, parser.Options{Reporter: reporter})
	opts := Options{Reporter: reporter, Symbols: p.table, Result: p.result}
	Resolve(p.builder, res.File, opts)
	Check(p.builder, res.File, opts)
	p.files = append(p.files, res.File)
	return bag
}

func codes(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func messages(bag *diag.Bag) string {
	parts := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		parts = append(parts, d.Code.ID()+": "+d.Message)
	}
	return strings.Join(parts, "; ")
}

func TestCheckCleanPrograms(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"let", "let x = 1;"},
		{"typed", "let s: string = \"hi\"; const pi: float = 3.14;"},
		{"mutable", "fn f() { let mut n = 0; n = n + 1; }"},
		{"call", "fn add(a: int, b: int) -> int { return a + b; } let r = add(1, 2);"},
		{"forward call", "fn main() -> int { return helper(); } fn helper() -> int { return 7; }"},
		{"if else returns", "fn sign(x: int) -> int { if x < 0 { return -1; } else { return 1; } }"},
		{"while true", "fn spin() -> bool { while true { return false; } }"},
		{"logic", "let ok = !(1 < 2) || true && 2 >= 1;"},
		{"string concat", "let s = \"a\" + \"b\";"},
		{"nothing", "fn f() -> nothing { return; } let n = nothing;"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := newProgram()
			if bag := p.add(t, "a.st", tc.src); bag.Len() != 0 {
				t.Fatalf("unexpected diagnostics: %s", messages(bag))
			}
		})
	}
}

func TestCheckErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want diag.Code
	}{
		{"unresolved", "let y = x + 1;", diag.SemaUnresolvedSymbol},
		{"use before let", "let y = x; let x = 1;", diag.SemaUnresolvedSymbol},
		{"duplicate", "let x = 1; const x = 2;", diag.SemaDuplicateSymbol},
		{"immutable", "fn f() { let n = 0; n = 1; }", diag.SemaAssignImmutable},
		{"const assign", "const c = 1; fn f() { c = 2; }", diag.SemaAssignImmutable},
		{"param assign", "fn f(a: int) { a = 2; }", diag.SemaAssignImmutable},
		{"mismatch init", "let x: int = \"s\";", diag.SemaTypeMismatch},
		{"mismatch op", "let x = 1 + \"s\";", diag.SemaTypeMismatch},
		{"mixed numeric", "let x = 1 + 2.0;", diag.SemaTypeMismatch},
		{"bad condition", "fn f() { if 1 { } }", diag.SemaTypeMismatch},
		{"bad negate", "let b = -true;", diag.SemaTypeMismatch},
		{"arity", "fn f(a: int) {} let r = f(1, 2);", diag.SemaArityMismatch},
		{"arg type", "fn f(a: int) {} let r = f(\"s\");", diag.SemaTypeMismatch},
		{"not callable", "let x = 1; let y = x();", diag.SemaNotCallable},
		{"missing return", "fn f() -> int { }", diag.SemaMissingReturn},
		{"bare return", "fn f() -> int { return; }", diag.SemaMissingReturn},
		{"if without else", "fn f(b: bool) -> int { if b { return 1; } }", diag.SemaMissingReturn},
		{"wrong return", "fn f() -> int { return \"s\"; }", diag.SemaTypeMismatch},
		{"return in void", "fn f() { return 1; }", diag.SemaTypeMismatch},
		{"assign target", "fn f() { 1 = 2; }", diag.SemaInvalidAssignTarget},
		{"unknown type", "let p: Point = 1;", diag.SemaUnknownType},
		{"unknown param type", "fn f(p: Point) {}", diag.SemaUnknownType},
		{"assign mismatch", "fn f() { let mut s = \"a\"; s = 1; }", diag.SemaTypeMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := newProgram()
			bag := p.add(t, "a.st", tc.src)
			if !hasCode(bag, tc.want) {
				t.Fatalf("expected %s, got %s", tc.want.ID(), messages(bag))
			}
			if !bag.HasErrors() {
				t.Fatalf("expected error severity")
			}
		})
	}
}

func TestShadowingIsWarning(t *testing.T) {
	p := newProgram()
	bag := p.add(t, "a.st", "let x = 1; fn f(x: int) -> int { return x; }")
	if got := codes(bag); len(got) != 1 || got[0] != diag.SemaShadowSymbol {
		t.Fatalf("codes = %v (%s)", got, messages(bag))
	}
	if bag.HasErrors() {
		t.Fatalf("shadowing must not be an error")
	}
}

func TestUnitsSeeEarlierDeclarations(t *testing.T) {
	p := newProgram()
	if bag := p.add(t, "a.st", "let x = 1;"); bag.Len() != 0 {
		t.Fatalf("a.st: %s", messages(bag))
	}
	if bag := p.add(t, "b.st", "let y = x + 1;"); bag.Len() != 0 {
		t.Fatalf("b.st: %s", messages(bag))
	}
	top := p.table.TopLevel()
	if len(top) != 2 || p.table.Name(top[0]) != "x" || p.table.Name(top[1]) != "y" {
		t.Fatalf("top-level symbols = %v", top)
	}
	y := p.table.Symbols.Get(top[1])
	if y.Type != p.result.TypeInterner.Builtins().Int {
		t.Fatalf("y type = %s", types.Label(p.result.TypeInterner, y.Type))
	}
}

func TestDuplicateAcrossUnitsNotesEarlierUnit(t *testing.T) {
	p := newProgram()
	p.add(t, "a.st", "let x = 1;")
	bag := p.add(t, "b.st", "let x = 2;")
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.SemaDuplicateSymbol {
		t.Fatalf("diagnostics: %s", messages(bag))
	}
	if len(items[0].Notes) != 1 {
		t.Fatalf("expected a note")
	}
	note := p.fs.Get(items[0].Notes[0].Span.File)
	if note.DisplayName() != "a.st" {
		t.Fatalf("note points at %q", note.DisplayName())
	}
}

func TestResolvedTypesRecorded(t *testing.T) {
	p := newProgram()
	p.add(t, "a.st", "fn add(a: int, b: int) -> int { return a + b; } let r = add(1, 2) < 4;")
	b := p.result.TypeInterner.Builtins()
	file := p.builder.Files.Get(p.files[0])
	if len(file.Items) != 2 {
		t.Fatalf("items = %d", len(file.Items))
	}
	if got := types.Label(p.result.TypeInterner, p.result.ItemTypes[file.Items[0]]); got != "fn(int, int) -> int" {
		t.Fatalf("fn type = %s", got)
	}
	if p.result.ItemTypes[file.Items[1]] != b.Bool {
		t.Fatalf("r must be bool")
	}
	let, _ := p.builder.Items.Let(file.Items[1])
	if p.result.ExprTypes[let.Value] != b.Bool {
		t.Fatalf("initializer type not recorded")
	}
}

func TestNFCIdentifiersResolveToOneSymbol(t *testing.T) {
	p := newProgram()
	bag := p.add(t, "a.st", "let caf\u00e9 = 1; let y = cafe\u0301 + 1;")
	if bag.Len() != 0 {
		t.Fatalf("diagnostics: %s", messages(bag))
	}
}

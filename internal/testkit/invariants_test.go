package testkit

import (
	"strings"
	"testing"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/lexer"
	"strata/internal/parser"
	"strata/internal/source"
)

func parse(src string) (*ast.Builder, ast.FileID, *source.File) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("kit.st", []byte(src)))
	reporter := diag.BagReporter{Bag: diag.NewBag(0)}
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(file, lexer.New(file, lexer.Options{Reporter: reporter}), b, source.NewInterner(), parser.Options{Reporter: reporter})
	return b, res.File, file
}

func TestCheckSpanInvariants(t *testing.T) {
	for _, src := range []string{
		"",
		"let x = 1;\n",
		"let x = 1;\nfn f() -> int { return x; }\nconst C = 2;\n",
		"let = ;\nlet y = 2;",
	} {
		b, id, file := parse(src)
		if err := CheckSpanInvariants(b, id, file); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
	}
}

func TestCheckSpanInvariantsCatchesBadFileSpan(t *testing.T) {
	b, id, file := parse("let x = 1;\n")
	b.Files.Get(id).Span.End = 3
	err := CheckSpanInvariants(b, id, file)
	if err == nil || !strings.Contains(err.Error(), "does not cover") {
		t.Fatalf("expected cover error, got %v", err)
	}
	if err := CheckSpanInvariants(nil, id, file); err == nil {
		t.Fatalf("expected error for nil builder")
	}
}

package parser

import (
	"fmt"
	"strings"
	"testing"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/lexer"
	"strata/internal/source"
)

type parsed struct {
	builder *ast.Builder
	strings *source.Interner
	file    ast.FileID
	bag     *diag.Bag
	result  Result
}

func parseSource(t *testing.T, src string) parsed {
	t.Helper()
	return parseSourceOpts(t, src, 0)
}

func parseSourceOpts(t *testing.T, src string, maxErrors uint) parsed {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.st", []byte(src)))
	bag := diag.NewBag(0)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	b := ast.NewBuilder(ast.Hints{})
	in := source.NewInterner()
	res := ParseFile(file, lx, b, in, Options{Reporter: reporter, MaxErrors: maxErrors})
	return parsed{builder: b, strings: in, file: res.File, bag: bag, result: res}
}

func (p parsed) items() []ast.ItemID {
	return p.builder.Files.Get(p.file).Items
}

func (p parsed) name(id source.StringID) string {
	return p.strings.MustLookup(id)
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func expectNoDiagnostics(t *testing.T, p parsed) {
	t.Helper()
	if p.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(p.bag))
	}
}

func expectCode(t *testing.T, p parsed, code diag.Code) diag.Diagnostic {
	t.Helper()
	for _, d := range p.bag.Items() {
		if d.Code == code {
			return d
		}
	}
	t.Fatalf("expected %s, got %s", code.ID(), diagnosticsSummary(p.bag))
	return diag.Diagnostic{}
}

// exprString печатает выражение в скобочной форме для проверки приоритетов.
func exprString(p parsed, id ast.ExprID) string {
	exprs := p.builder.Exprs
	expr := exprs.Get(id)
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := exprs.Ident(id)
		return p.name(data.Name)
	case ast.ExprLit:
		data, _ := exprs.Literal(id)
		return p.name(data.Value)
	case ast.ExprBinary:
		data, _ := exprs.Binary(id)
		return "(" + exprString(p, data.Left) + " " + data.Op.String() + " " + exprString(p, data.Right) + ")"
	case ast.ExprUnary:
		data, _ := exprs.Unary(id)
		return "(" + data.Op.String() + exprString(p, data.Operand) + ")"
	case ast.ExprCall:
		data, _ := exprs.Call(id)
		args := make([]string, len(data.Args))
		for i, a := range data.Args {
			args[i] = exprString(p, a)
		}
		return exprString(p, data.Target) + "(" + strings.Join(args, ", ") + ")"
	case ast.ExprGroup:
		data, _ := exprs.Group(id)
		return exprString(p, data.Inner)
	}
	return "?"
}

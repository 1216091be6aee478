package frontend

import (
	"fmt"

	"github.com/google/uuid"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/diagfmt"
	"strata/internal/lexer"
	"strata/internal/parser"
	"strata/internal/provider"
	"strata/internal/sema"
	"strata/internal/source"
	"strata/internal/symbols"
	"strata/internal/syntaxtree"
	"strata/internal/trace"
)

// Program is the engine-side state of one session.
// It is not safe for concurrent use.
type Program struct {
	id     uuid.UUID
	lib    *provider.Library
	tracer trace.Tracer
	// 0: без ограничения
	maxDiagnostics int

	files   *source.FileSet
	strings *source.Interner
	builder *ast.Builder
	table   *symbols.Table
	sema    *sema.Result
	units   []ast.FileID
}

// New creates a program that owns lib. The reference is dropped by Release.
func New(lib *provider.Library) *Program {
	in := source.NewInterner()
	return &Program{
		id:      uuid.New(),
		lib:     lib,
		tracer:  trace.Nop,
		files:   source.NewFileSet(),
		strings: in,
		builder: ast.NewBuilder(ast.Hints{}),
		table:   symbols.NewTable(symbols.Hints{}, in),
		sema:    sema.NewResult(nil),
	}
}

// ID identifies the program in trace events.
func (p *Program) ID() uuid.UUID { return p.id }

// SetTracer routes pass spans to t; nil disables tracing.
func (p *Program) SetTracer(t trace.Tracer) {
	if t == nil {
		t = trace.Nop
	}
	p.tracer = t
}

// SetMaxDiagnostics caps the diagnostics reported per unit.
func (p *Program) SetMaxDiagnostics(n int) {
	p.maxDiagnostics = max(n, 0)
}

func (p *Program) released() bool { return p.files == nil }

func (p *Program) span(name string, parent uint64) *trace.Span {
	return trace.BeginProgram(p.tracer, trace.ScopePass, name, parent, p.id.String())
}

// ParseUnit lexes, parses, resolves and checks one unit against everything
// registered before it. The returned buffer holds the JSON report of this
// call, or is nil when the call produced no diagnostics.
func (p *Program) ParseUnit(name string, text []byte) *provider.Buffer {
	if p.released() {
		return nil
	}
	// единица принадлежит программе: копируем входные байты
	content := append([]byte(nil), text...)
	fileID := p.files.AddVirtual(name, content)
	file := p.files.Get(fileID)

	unitSpan := trace.BeginProgram(p.tracer, trace.ScopeModule, file.DisplayName(), 0, p.id.String())
	bag := diag.NewBag(p.maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	sp := p.span("lex+parse", unitSpan.ID())
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	res := parser.ParseFile(file, lx, p.builder, p.strings, parser.Options{
		Reporter:  reporter,
		MaxErrors: maxErrors(p.maxDiagnostics),
	})
	sp.WithExtra("parse_errors", fmt.Sprint(res.Errors)).End("")
	p.units = append(p.units, res.File)

	opts := sema.Options{Reporter: reporter, Symbols: p.table, Result: p.sema}
	sp = p.span("resolve", unitSpan.ID())
	sema.Resolve(p.builder, res.File, opts)
	sp.End("")

	sp = p.span("check", unitSpan.ID())
	sema.Check(p.builder, res.File, opts)
	sp.End("")

	bag.Dedup()
	bag.Sort()
	unitSpan.WithExtra("diagnostics", fmt.Sprint(bag.Len())).End("")

	data, err := diagfmt.EncodeReport(bag.Items(), p.files)
	if err != nil {
		// пустой объект не пройдёт декодер: вызов станет сбоем протокола
		trace.Point(p.tracer, trace.ScopeModule, "encode-report", err.Error(), 0)
		return p.lib.NewBuffer([]byte("{}"))
	}
	if data == nil {
		return nil
	}
	return p.lib.NewBuffer(data)
}

func maxErrors(n int) uint {
	if n <= 0 {
		return 0
	}
	return uint(n)
}

// SyntaxTree renders the accumulated program. A nil buffer stands for the
// neutral document.
func (p *Program) SyntaxTree(optionsBlob []byte) *provider.Buffer {
	if p.released() || len(p.units) == 0 {
		return nil
	}
	opts, err := syntaxtree.DecodeOptions(optionsBlob)
	if err != nil {
		trace.Point(p.tracer, trace.ScopePass, "syntax-tree", err.Error(), 0)
		return nil
	}
	sp := p.span("syntax-tree", 0)
	out, err := syntaxtree.Render(syntaxtree.Input{
		AST:     p.builder,
		Files:   p.files,
		Strings: p.strings,
		Sema:    p.sema,
		Units:   p.units,
	}, opts)
	if err != nil {
		sp.End(err.Error())
		return nil
	}
	sp.WithExtra("bytes", fmt.Sprint(len(out))).End("")
	return p.lib.NewBuffer([]byte(out))
}

// Units lists registered units in insertion order.
func (p *Program) Units() []provider.Unit {
	if p.released() {
		return nil
	}
	out := make([]provider.Unit, 0, len(p.units))
	for i, fileID := range p.units {
		f := p.files.Get(p.builder.Files.Get(fileID).Span.File)
		out = append(out, provider.Unit{Name: f.Path, Index: i, Size: len(f.Content)})
	}
	return out
}

// Release frees the engine state and then drops the library reference.
// Calling it twice is a no-op.
func (p *Program) Release() {
	if p.released() {
		return
	}
	p.files = nil
	p.strings = nil
	p.builder = nil
	p.table = nil
	p.sema = nil
	p.units = nil
	lib := p.lib
	p.lib = nil
	if lib != nil {
		lib.Release()
	}
}

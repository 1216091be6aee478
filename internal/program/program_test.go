package program

import (
	"errors"
	"strings"
	"testing"

	"strata/internal/frontend"
	"strata/internal/messages"
	"strata/internal/provider"
	"strata/internal/syntaxtree"
)

func strataRegistry() *provider.Registry {
	reg := provider.NewRegistry()
	reg.Register(frontend.EngineName, func() (provider.Engine, error) { return frontend.Engine{}, nil })
	return reg
}

func TestExampleScenario(t *testing.T) {
	p := New(Options{Registry: strataRegistry()})
	defer p.Close()

	var first, second messages.List
	if !p.Parse(&first, "a.lang", "let x = 1;") {
		t.Fatalf("Parse a.lang: %v", p.LastError())
	}
	if !p.Parse(&second, "b.lang", "let y = x + 1;") {
		t.Fatalf("Parse b.lang: %v", p.LastError())
	}
	if first.Len() != 0 || second.Len() != 0 {
		t.Fatalf("unexpected diagnostics:\n%s\n%s", first.String(), second.String())
	}
	tree := p.SyntaxTree(syntaxtree.Options{})
	if !strings.Contains(tree, `"name":"x"`) || !strings.Contains(tree, `"name":"y"`) {
		t.Fatalf("tree misses declarations: %s", tree)
	}
	if p.State() != StateActive {
		t.Fatalf("state = %v", p.State())
	}
}

func TestEmptySessionIsSafe(t *testing.T) {
	p := New(Options{Registry: strataRegistry()})
	if got := p.SyntaxTree(syntaxtree.Options{PrettyPrint: true}); got != syntaxtree.Empty {
		t.Fatalf("SyntaxTree() = %q", got)
	}
	if p.Units() != nil {
		t.Fatalf("units on empty session")
	}
	p.Reset()
	p.Reset()
	if p.State() != StateEmpty || p.LastError() != nil {
		t.Fatalf("state = %v err = %v", p.State(), p.LastError())
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestStructuralAndSemanticSuccessAreIndependent(t *testing.T) {
	p := New(Options{Registry: strataRegistry()})
	defer p.Close()
	cases := []struct {
		name, src string
		errs      bool
	}{
		{"clean", "let a = 1;", false},
		{"syntax", "let b = ;", true},
		{"semantic", "let c: bool = 1;", true},
		{"warning only", "fn f(a: int) -> int { let a = 2; return a; }", false},
		{"clean again", "let d = a + 1;", false},
	}
	for _, tc := range cases {
		var sink messages.List
		if !p.Parse(&sink, tc.name+".st", tc.src) {
			t.Fatalf("%s: Parse returned false: %v", tc.name, p.LastError())
		}
		if sink.HasErrors() != tc.errs {
			t.Fatalf("%s: HasErrors = %v\n%s", tc.name, sink.HasErrors(), sink.String())
		}
		want := StateActive
		if tc.errs {
			want = StateFailed
		}
		if p.State() != want {
			t.Fatalf("%s: state = %v, want %v", tc.name, p.State(), want)
		}
	}
}

func TestDiagnosticsOnlyGrow(t *testing.T) {
	p := New(Options{Registry: strataRegistry()})
	defer p.Close()
	var sink messages.List
	sink.Add(messages.Message{Severity: messages.SeverityInfo, Text: "caller's own"})
	units := []string{"let a = z;", "let b = 1;", "let c = a + q;", "fn f() -> int { }"}
	prev := sink.Len()
	for i, src := range units {
		p.Parse(&sink, "u.st", src)
		if sink.Len() < prev {
			t.Fatalf("unit %d: sink shrank from %d to %d", i, prev, sink.Len())
		}
		if sink.Messages()[0].Text != "caller's own" {
			t.Fatalf("unit %d: earlier message replaced", i)
		}
		prev = sink.Len()
	}
	if sink.Count(messages.SeverityError) != 3 {
		t.Fatalf("errors = %d\n%s", sink.Count(messages.SeverityError), sink.String())
	}
}

func TestResetForgetsUnits(t *testing.T) {
	p := New(Options{Registry: strataRegistry()})
	defer p.Close()
	var sink messages.List
	p.Parse(&sink, "a.st", "let x = 1;")
	if len(p.Units()) != 1 {
		t.Fatalf("units = %v", p.Units())
	}
	p.Reset()
	if p.State() != StateEmpty || p.SyntaxTree(syntaxtree.Options{}) != syntaxtree.Empty {
		t.Fatalf("reset kept state %v", p.State())
	}
	p.Parse(&sink, "b.st", "let y = x;")
	if !sink.HasErrors() {
		t.Fatalf("x survived reset")
	}
	units := p.Units()
	if len(units) != 1 || units[0].Name != "b.st" {
		t.Fatalf("units = %+v", units)
	}
}

func TestClosedSession(t *testing.T) {
	reg := strataRegistry()
	p := New(Options{Registry: reg})
	var sink messages.List
	p.Parse(&sink, "a.st", "let x = 1;")
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if p.Parse(&sink, "b.st", "let y = 1;") {
		t.Fatalf("Parse on closed session succeeded")
	}
	if !errors.Is(p.LastError(), ErrClosed) {
		t.Fatalf("LastError = %v", p.LastError())
	}
	p.Reset()
	if p.State() != StateClosed {
		t.Fatalf("Reset reopened a closed session")
	}
	if got := p.SyntaxTree(syntaxtree.Options{}); got != syntaxtree.Empty {
		t.Fatalf("closed SyntaxTree = %q", got)
	}
	lib, err := reg.Acquire(frontend.EngineName)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer lib.Release()
	// реестр и наш Acquire
	if lib.Refs() != 2 {
		t.Fatalf("refs = %d, want 2", lib.Refs())
	}
}

func TestUnavailableEngine(t *testing.T) {
	p := New(Options{Registry: strataRegistry(), Engine: "missing"})
	var sink messages.List
	if p.Parse(&sink, "a.st", "let x = 1;") {
		t.Fatalf("Parse succeeded without an engine")
	}
	if !errors.Is(p.LastError(), provider.ErrEngineUnavailable) {
		t.Fatalf("LastError = %v", p.LastError())
	}
	if p.State() != StateEmpty || sink.Len() != 0 {
		t.Fatalf("state = %v, sink = %d", p.State(), sink.Len())
	}
}

func TestSyntaxTreeIsIdempotent(t *testing.T) {
	p := New(Options{Registry: strataRegistry()})
	defer p.Close()
	var sink messages.List
	p.Parse(&sink, "a.st", "/// doc\npub fn add(a: int, b: int) -> int { return a + b; }")
	p.Parse(&sink, "b.st", "let r = add(1, 2);")
	opts := syntaxtree.Options{IncludeResolvedTypes: true, IncludeSourceLocations: true, IncludeComments: true, PrettyPrint: true}
	first := p.SyntaxTree(opts)
	second := p.SyntaxTree(opts)
	if first != second {
		t.Fatalf("exports differ:\n%s\n---\n%s", first, second)
	}
	if len(p.Units()) != 2 {
		t.Fatalf("export changed the units: %v", p.Units())
	}
	if !strings.Contains(first, `"resolved_type": "fn(int, int) -> int"`) {
		t.Fatalf("missing fn type:\n%s", first)
	}
}

func TestSyntaxTreeFailureIsRecorded(t *testing.T) {
	p := New(Options{Registry: strataRegistry()})
	defer p.Close()
	var sink messages.List
	if !p.Parse(&sink, "a.st", "let x = 1;") {
		t.Fatalf("Parse: %v", p.LastError())
	}
	if got := p.SyntaxTree(syntaxtree.Options{MaxDepth: -1}); got != syntaxtree.Empty {
		t.Fatalf("SyntaxTree = %q", got)
	}
	if !errors.Is(p.LastError(), syntaxtree.ErrInvalidOptions) {
		t.Fatalf("LastError = %v", p.LastError())
	}
	if got := p.SyntaxTree(syntaxtree.Options{}); got == syntaxtree.Empty || p.LastError() != nil {
		t.Fatalf("good export after failure: %q err = %v", got, p.LastError())
	}

	empty := New(Options{Registry: strataRegistry()})
	if got := empty.SyntaxTree(syntaxtree.Options{MaxDepth: -1}); got != syntaxtree.Empty || empty.LastError() != nil {
		t.Fatalf("empty session: %q err = %v", got, empty.LastError())
	}
	p.Close()
	p.SyntaxTree(syntaxtree.Options{})
	if !errors.Is(p.LastError(), ErrClosed) {
		t.Fatalf("closed LastError = %v", p.LastError())
	}
}

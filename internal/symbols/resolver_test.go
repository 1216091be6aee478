package symbols

import (
	"strings"
	"testing"

	"strata/internal/diag"
	"strata/internal/source"
)

func newTestResolver(t *testing.T) (*Table, *Resolver, *diag.Bag) {
	t.Helper()
	table := NewTable(Hints{}, nil)
	bag := diag.NewBag(0)
	r := NewResolver(table, table.Root(), ResolverOptions{Reporter: diag.BagReporter{Bag: bag}})
	return table, r, bag
}

func TestDeclareAndLookup(t *testing.T) {
	table, r, bag := newTestResolver(t)
	x := table.Strings.Intern("x")
	id, ok := r.Declare(x, source.Span{File: 1, Start: 4, End: 5}, SymbolLet, 0, SymbolDecl{})
	if !ok || !id.IsValid() {
		t.Fatalf("declare failed")
	}
	got, ok := r.Lookup(x)
	if !ok || got != id {
		t.Fatalf("lookup = %d, want %d", got, id)
	}
	if _, ok := r.Lookup(table.Strings.Intern("y")); ok {
		t.Fatalf("y must be unresolved")
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if table.Name(id) != "x" || len(table.TopLevel()) != 1 {
		t.Fatalf("table view mismatch")
	}
}

func TestDuplicateDeclarationAcrossUnits(t *testing.T) {
	table, r, bag := newTestResolver(t)
	x := table.Strings.Intern("x")
	first := source.Span{File: 1, Start: 4, End: 5}
	if _, ok := r.Declare(x, first, SymbolLet, 0, SymbolDecl{}); !ok {
		t.Fatalf("first declare failed")
	}
	if _, ok := r.Declare(x, source.Span{File: 2, Start: 6, End: 7}, SymbolConst, 0, SymbolDecl{}); ok {
		t.Fatalf("duplicate must be rejected")
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.SemaDuplicateSymbol || items[0].Severity != diag.SevError {
		t.Fatalf("diagnostics = %+v", items)
	}
	if len(items[0].Notes) != 1 || items[0].Notes[0].Span != first {
		t.Fatalf("note must point at the first unit: %+v", items[0].Notes)
	}
}

func TestShadowingWarns(t *testing.T) {
	table, r, bag := newTestResolver(t)
	x := table.Strings.Intern("x")
	outer, _ := r.Declare(x, source.Span{File: 1, Start: 0, End: 1}, SymbolLet, 0, SymbolDecl{})
	fn := r.Enter(ScopeFunction, source.Span{File: 1, Start: 10, End: 40})
	inner, ok := r.Declare(x, source.Span{File: 1, Start: 12, End: 13}, SymbolParam, 0, SymbolDecl{})
	if !ok {
		t.Fatalf("shadowing declaration must succeed")
	}
	if got, _ := r.Lookup(x); got != inner {
		t.Fatalf("inner lookup = %d, want %d", got, inner)
	}
	r.Leave(fn)
	if got, _ := r.Lookup(x); got != outer {
		t.Fatalf("outer lookup = %d, want %d", got, outer)
	}
	items := bag.Items()
	if len(items) != 1 || items[0].Code != diag.SemaShadowSymbol || items[0].Severity != diag.SevWarning {
		t.Fatalf("diagnostics = %+v", items)
	}
}

func TestUnderscoreDoesNotWarn(t *testing.T) {
	table, r, bag := newTestResolver(t)
	u := table.Strings.Intern("_")
	r.Declare(u, source.Span{File: 1, Start: 0, End: 1}, SymbolLet, 0, SymbolDecl{})
	blk := r.Enter(ScopeBlock, source.Span{})
	r.Declare(u, source.Span{File: 1, Start: 5, End: 6}, SymbolLet, 0, SymbolDecl{})
	r.Leave(blk)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestLeaveMismatchPanics(t *testing.T) {
	_, r, _ := newTestResolver(t)
	a := r.Enter(ScopeBlock, source.Span{})
	r.Enter(ScopeBlock, source.Span{})
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	r.Leave(a)
}

func TestSymbolFlags(t *testing.T) {
	flags := SymbolFlagPublic | SymbolFlagMutable
	if got := flags.Strings(); len(got) != 2 || got[0] != "public" || got[1] != "mutable" {
		t.Fatalf("Strings() = %v", got)
	}
	sym := Symbol{Flags: SymbolFlagMutable}
	if !sym.IsMutable() {
		t.Fatalf("mutable flag not observed")
	}
	if SymbolConst.String() != "const" || ScopeProgram.String() != "program" {
		t.Fatalf("kind labels changed")
	}
}

func TestLeaveMismatchNamesScopes(t *testing.T) {
	table, r, _ := newTestResolver(t)
	root := table.Root()
	r.Enter(ScopeBlock, source.Span{})
	defer func() {
		msg, _ := recover().(string)
		if !strings.Contains(msg, "while expecting "+root.String()) || root.String() == NoScopeID.String() {
			t.Fatalf("panic = %q", msg)
		}
	}()
	r.Leave(root)
}

func TestIDStrings(t *testing.T) {
	if NoSymbolID.String() != "sym#-" || SymbolID(7).String() != "sym#7" {
		t.Fatalf("symbol ids: %s %s", NoSymbolID, SymbolID(7))
	}
	if NoScopeID.String() != "scope#-" || ScopeID(3).String() != "scope#3" {
		t.Fatalf("scope ids: %s %s", NoScopeID, ScopeID(3))
	}
}

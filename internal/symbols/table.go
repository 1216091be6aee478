package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"strata/internal/source"
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates symbol-related arenas and shared resources.
//
// One table backs a whole program: every unit declares its top-level items
// into the same program scope, so later units see earlier declarations.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner
	root    ScopeID
}

// NewTable builds a fresh table with optional capacity hints.
// If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	t := &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
		Strings: strings,
	}
	t.root = t.Scopes.New(ScopeProgram, NoScopeID, source.Span{})
	return t
}

// Root returns the program-wide scope.
func (t *Table) Root() ScopeID {
	return t.root
}

// TopLevel lists the symbols of the program scope in declaration order.
func (t *Table) TopLevel() []SymbolID {
	scope := t.Scopes.Get(t.root)
	if scope == nil {
		return nil
	}
	return scope.Symbols
}

// Name returns the spelled name of a symbol or "" for unknown IDs.
func (t *Table) Name(id SymbolID) string {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return ""
	}
	name, _ := t.Strings.Lookup(sym.Name)
	return name
}

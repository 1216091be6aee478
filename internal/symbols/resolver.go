package symbols

import (
	"fmt"

	"strata/internal/diag"
	"strata/internal/source"
)

// ResolverOptions configures resolver construction.
type ResolverOptions struct {
	Reporter diag.Reporter
}

// Resolver drives scope management and declaration/lookup routines.
type Resolver struct {
	table    *Table
	reporter diag.Reporter
	stack    []ScopeID
}

// NewResolver wires a resolver to an existing scope stack. If root is valid it
// becomes the current scope; otherwise scope-sensitive operations are no-ops.
func NewResolver(table *Table, root ScopeID, opts ResolverOptions) *Resolver {
	r := &Resolver{
		table:    table,
		reporter: opts.Reporter,
		stack:    make([]ScopeID, 0, 8),
	}
	if root.IsValid() {
		r.stack = append(r.stack, root)
	}
	return r
}

// CurrentScope returns the scope at the top of the stack.
func (r *Resolver) CurrentScope() ScopeID {
	if len(r.stack) == 0 {
		return NoScopeID
	}
	return r.stack[len(r.stack)-1]
}

// Enter creates a child scope, pushes it onto the stack, and returns its ID.
func (r *Resolver) Enter(kind ScopeKind, span source.Span) ScopeID {
	scope := r.table.Scopes.New(kind, r.CurrentScope(), span)
	r.stack = append(r.stack, scope)
	return scope
}

// Leave pops the current scope. A mismatch with expected is a programming
// error in the walker.
func (r *Resolver) Leave(expected ScopeID) {
	if len(r.stack) == 0 {
		return
	}
	top := r.stack[len(r.stack)-1]
	if expected.IsValid() && top != expected {
		panic(fmt.Sprintf("symbols: scope stack mismatch: closing %s while expecting %s", top, expected))
	}
	r.stack = r.stack[:len(r.stack)-1]
}

// Declare installs a symbol into the current scope. Returns false if there is
// no active scope or declaration conflicts with existing entry.
func (r *Resolver) Declare(name source.StringID, span source.Span, kind SymbolKind, flags SymbolFlags, decl SymbolDecl) (SymbolID, bool) {
	scopeID := r.CurrentScope()
	scope := r.table.Scopes.Get(scopeID)
	if scope == nil {
		return NoSymbolID, false
	}

	if existing := scope.NameIndex[name]; len(existing) > 0 {
		prev := r.table.Symbols.Get(existing[len(existing)-1])
		r.reportDuplicateSymbol(name, span, prev)
		return NoSymbolID, false
	}

	if shadow := r.findShadowing(scopeID, name); shadow.IsValid() {
		r.reportShadowing(name, span, shadow)
	}

	sym := Symbol{
		Name:  name,
		Kind:  kind,
		Scope: scopeID,
		Span:  span,
		Flags: flags,
		Decl:  decl,
	}
	id := r.table.Symbols.New(&sym)
	scope.Symbols = append(scope.Symbols, id)
	scope.NameIndex[name] = append(scope.NameIndex[name], id)
	return id, true
}

// Lookup walks the scope chain searching for a symbol with the given name.
func (r *Resolver) Lookup(name source.StringID) (SymbolID, bool) {
	scopeID := r.CurrentScope()
	for scopeID.IsValid() {
		scope := r.table.Scopes.Get(scopeID)
		if scope == nil {
			break
		}
		if ids := scope.NameIndex[name]; len(ids) > 0 {
			return ids[len(ids)-1], true
		}
		scopeID = scope.Parent
	}
	return NoSymbolID, false
}

func (r *Resolver) reportDuplicateSymbol(name source.StringID, span source.Span, prev *Symbol) {
	if r.reporter == nil {
		return
	}
	nameStr := r.table.Strings.MustLookup(name)
	msg := fmt.Sprintf("duplicate declaration of '%s'", nameStr)
	builder := diag.ReportError(r.reporter, diag.SemaDuplicateSymbol, span, msg)
	if builder == nil {
		return
	}
	if prev != nil && prev.Span != (source.Span{}) {
		builder.WithNote(prev.Span, "previous declaration here")
	}
	builder.Emit()
}

func (r *Resolver) findShadowing(scopeID ScopeID, name source.StringID) SymbolID {
	scope := r.table.Scopes.Get(scopeID)
	if scope == nil {
		return NoSymbolID
	}
	parent := scope.Parent
	for parent.IsValid() {
		parentScope := r.table.Scopes.Get(parent)
		if parentScope == nil {
			break
		}
		if ids := parentScope.NameIndex[name]; len(ids) > 0 {
			return ids[len(ids)-1]
		}
		parent = parentScope.Parent
	}
	return NoSymbolID
}

func (r *Resolver) reportShadowing(name source.StringID, span source.Span, shadow SymbolID) {
	if r.reporter == nil {
		return
	}
	nameStr := r.table.Strings.MustLookup(name)
	if nameStr == "_" {
		return
	}
	msg := fmt.Sprintf("declaration of '%s' shadows previous binding", nameStr)
	builder := diag.ReportWarning(r.reporter, diag.SemaShadowSymbol, span, msg)
	if builder == nil {
		return
	}
	if prev := r.table.Symbols.Get(shadow); prev != nil && prev.Span != (source.Span{}) {
		builder.WithNote(prev.Span, "previous declaration here")
	}
	builder.Emit()
}

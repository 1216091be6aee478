package symbols

import (
	"strata/internal/ast"
	"strata/internal/source"
	"strata/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolFunction
	SymbolLet
	SymbolConst
	SymbolParam
)

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint8

const (
	SymbolFlagPublic SymbolFlags = 1 << iota
	SymbolFlagMutable
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolFunction:
		return "function"
	case SymbolLet:
		return "let"
	case SymbolConst:
		return "const"
	case SymbolParam:
		return "param"
	default:
		return "invalid"
	}
}

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 2)
	if f&SymbolFlagPublic != 0 {
		labels = append(labels, "public")
	}
	if f&SymbolFlagMutable != 0 {
		labels = append(labels, "mutable")
	}
	return labels
}

// SymbolDecl points back to the AST node that introduced the symbol.
type SymbolDecl struct {
	Item  ast.ItemID
	Stmt  ast.StmtID
	Param ast.FnParamID
}

// Symbol describes a named entity declared in some scope.
type Symbol struct {
	Name  source.StringID
	Kind  SymbolKind
	Scope ScopeID
	Span  source.Span
	Flags SymbolFlags
	Decl  SymbolDecl
	Type  types.TypeID // NoTypeID пока тип не вычислен
}

// IsMutable reports whether assignment to the symbol is allowed.
func (s *Symbol) IsMutable() bool {
	return s.Flags&SymbolFlagMutable != 0
}

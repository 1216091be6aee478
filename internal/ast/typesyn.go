package ast

import (
	"strata/internal/source"
)

// TypeExpr is a written type: a single name such as int or a user identifier.
type TypeExpr struct {
	Name source.StringID
	Span source.Span
}

type TypeExprs struct {
	Arena *Arena[TypeExpr]
}

func NewTypeExprs(capHint uint) *TypeExprs {
	return &TypeExprs{
		Arena: NewArena[TypeExpr](capHint),
	}
}

func (t *TypeExprs) New(name source.StringID, span source.Span) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{
		Name: name,
		Span: span,
	}))
}

func (t *TypeExprs) Get(id TypeID) *TypeExpr {
	return t.Arena.Get(uint32(id))
}

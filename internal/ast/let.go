package ast

import (
	"strata/internal/source"
)

// LetItem is a top-level or local binding. The same payload serves the
// StmtLet statement.
type LetItem struct {
	Name       source.StringID
	Type       TypeID // NoTypeID если тип выводится
	Value      ExprID // NoExprID если нет инициализации
	IsMut      bool
	Visibility Visibility
	Doc        string
	NameSpan   source.Span
	Span       source.Span
}

func (i *Items) Let(id ItemID) (*LetItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemLet {
		return nil, false
	}
	return i.Lets.Get(uint32(item.Payload)), true
}

func (i *Items) NewLet(let LetItem) ItemID {
	payload := i.Lets.Allocate(let)
	return i.New(ItemLet, let.Span, PayloadID(payload))
}

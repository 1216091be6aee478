package ast

import (
	"strata/internal/source"
)

type ConstItem struct {
	Name       source.StringID
	Type       TypeID // NoTypeID если тип выводится
	Value      ExprID
	Visibility Visibility
	Doc        string
	NameSpan   source.Span
	Span       source.Span
}

func (i *Items) Const(id ItemID) (*ConstItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemConst {
		return nil, false
	}
	return i.Consts.Get(uint32(item.Payload)), true
}

func (i *Items) NewConst(c ConstItem) ItemID {
	payload := i.Consts.Allocate(c)
	return i.New(ItemConst, c.Span, PayloadID(payload))
}

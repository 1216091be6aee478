package ast

import (
	"strata/internal/source"
)

type ItemKind uint8

const (
	ItemFn ItemKind = iota
	ItemLet
	ItemConst
)

func (k ItemKind) String() string {
	switch k {
	case ItemFn:
		return "Fn"
	case ItemLet:
		return "Let"
	case ItemConst:
		return "Const"
	}
	return "Item"
}

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

type Items struct {
	Arena    *Arena[Item]
	Fns      *Arena[FnItem]
	FnParams *Arena[FnParam]
	Lets     *Arena[LetItem]
	Consts   *Arena[ConstItem]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Items{
		Arena:    NewArena[Item](capHint),
		Fns:      NewArena[FnItem](capHint),
		FnParams: NewArena[FnParam](capHint),
		Lets:     NewArena[LetItem](capHint),
		Consts:   NewArena[ConstItem](capHint),
	}
}

func (i *Items) New(kind ItemKind, span source.Span, payloadID PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payloadID,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

// NameOf returns the declared name and its span for any item kind.
func (i *Items) NameOf(id ItemID) (source.StringID, source.Span) {
	item := i.Get(id)
	if item == nil {
		return source.NoStringID, source.Span{}
	}
	switch item.Kind {
	case ItemFn:
		fn := i.Fns.Get(uint32(item.Payload))
		return fn.Name, fn.NameSpan
	case ItemLet:
		let := i.Lets.Get(uint32(item.Payload))
		return let.Name, let.NameSpan
	case ItemConst:
		c := i.Consts.Get(uint32(item.Payload))
		return c.Name, c.NameSpan
	}
	return source.NoStringID, source.Span{}
}

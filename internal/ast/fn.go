package ast

import (
	"strata/internal/source"
)

type FnParam struct {
	Name     source.StringID
	Type     TypeID
	NameSpan source.Span
	Span     source.Span
}

type FnItem struct {
	Name       source.StringID
	Params     []FnParamID
	Result     TypeID // NoTypeID означает nothing
	Body       StmtID // блок
	Visibility Visibility
	Doc        string
	NameSpan   source.Span
	Span       source.Span
}

func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	item := i.Arena.Get(uint32(id))
	if item == nil || item.Kind != ItemFn {
		return nil, false
	}
	return i.Fns.Get(uint32(item.Payload)), true
}

func (i *Items) FnParam(id FnParamID) *FnParam {
	return i.FnParams.Get(uint32(id))
}

func (i *Items) NewFnParam(p FnParam) FnParamID {
	return FnParamID(i.FnParams.Allocate(p))
}

func (i *Items) NewFn(fn FnItem) ItemID {
	payload := i.Fns.Allocate(fn)
	return i.New(ItemFn, fn.Span, PayloadID(payload))
}

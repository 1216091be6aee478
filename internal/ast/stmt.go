package ast

import (
	"strata/internal/source"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtLet
	StmtConst
	StmtExpr
	StmtReturn
	StmtIf
	StmtWhile
)

func (k StmtKind) String() string {
	switch k {
	case StmtBlock:
		return "Block"
	case StmtLet:
		return "Let"
	case StmtConst:
		return "Const"
	case StmtExpr:
		return "ExprStmt"
	case StmtReturn:
		return "Return"
	case StmtIf:
		return "If"
	case StmtWhile:
		return "While"
	}
	return "Stmt"
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type BlockStmt struct {
	Stmts []StmtID
}

type ExprStmt struct {
	Expr ExprID
}

type ReturnStmt struct {
	Expr ExprID // NoExprID для голого return
}

type IfStmt struct {
	Cond ExprID
	Then StmtID
	Else StmtID // NoStmtID, блок или вложенный if
}

type WhileStmt struct {
	Cond ExprID
	Body StmtID
}

type Stmts struct {
	Arena   *Arena[Stmt]
	Blocks  *Arena[BlockStmt]
	Lets    *Arena[LetItem]
	Consts  *Arena[ConstItem]
	Exprs   *Arena[ExprStmt]
	Returns *Arena[ReturnStmt]
	Ifs     *Arena[IfStmt]
	Whiles  *Arena[WhileStmt]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Blocks:  NewArena[BlockStmt](capHint),
		Lets:    NewArena[LetItem](capHint),
		Consts:  NewArena[ConstItem](capHint),
		Exprs:   NewArena[ExprStmt](capHint),
		Returns: NewArena[ReturnStmt](capHint),
		Ifs:     NewArena[IfStmt](capHint),
		Whiles:  NewArena[WhileStmt](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	return s.new(StmtBlock, span, s.Blocks.Allocate(BlockStmt{Stmts: stmts}))
}

func (s *Stmts) NewLet(let LetItem) StmtID {
	return s.new(StmtLet, let.Span, s.Lets.Allocate(let))
}

func (s *Stmts) NewConst(c ConstItem) StmtID {
	return s.new(StmtConst, c.Span, s.Consts.Allocate(c))
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(ExprStmt{Expr: expr}))
}

func (s *Stmts) NewReturn(span source.Span, expr ExprID) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(ReturnStmt{Expr: expr}))
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIf, span, s.Ifs.Allocate(IfStmt{Cond: cond, Then: then, Else: els}))
}

func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	return s.new(StmtWhile, span, s.Whiles.Allocate(WhileStmt{Cond: cond, Body: body}))
}

func (s *Stmts) Block(id StmtID) *BlockStmt {
	st := s.Get(id)
	if st == nil || st.Kind != StmtBlock {
		return nil
	}
	return s.Blocks.Get(uint32(st.Payload))
}

func (s *Stmts) Let(id StmtID) *LetItem {
	st := s.Get(id)
	if st == nil || st.Kind != StmtLet {
		return nil
	}
	return s.Lets.Get(uint32(st.Payload))
}

func (s *Stmts) Const(id StmtID) *ConstItem {
	st := s.Get(id)
	if st == nil || st.Kind != StmtConst {
		return nil
	}
	return s.Consts.Get(uint32(st.Payload))
}

func (s *Stmts) Expr(id StmtID) *ExprStmt {
	st := s.Get(id)
	if st == nil || st.Kind != StmtExpr {
		return nil
	}
	return s.Exprs.Get(uint32(st.Payload))
}

func (s *Stmts) Return(id StmtID) *ReturnStmt {
	st := s.Get(id)
	if st == nil || st.Kind != StmtReturn {
		return nil
	}
	return s.Returns.Get(uint32(st.Payload))
}

func (s *Stmts) If(id StmtID) *IfStmt {
	st := s.Get(id)
	if st == nil || st.Kind != StmtIf {
		return nil
	}
	return s.Ifs.Get(uint32(st.Payload))
}

func (s *Stmts) While(id StmtID) *WhileStmt {
	st := s.Get(id)
	if st == nil || st.Kind != StmtWhile {
		return nil
	}
	return s.Whiles.Get(uint32(st.Payload))
}

package syntaxtree

import (
	"strata/internal/ast"
	"strata/internal/types"
)

func (b *builder) stmt(stmtID ast.StmtID, depth int) *Node {
	stmt := b.in.AST.Stmts.Get(stmtID)
	if stmt == nil {
		return &Node{Type: "Invalid"}
	}
	var n *Node
	switch stmt.Kind {
	case ast.StmtLet:
		n = b.let(b.in.AST.Stmts.Let(stmtID), depth)
		b.resolved(n, b.stmtType(stmtID))
		return n
	case ast.StmtConst:
		n = b.constant(b.in.AST.Stmts.Const(stmtID), depth)
		b.resolved(n, b.stmtType(stmtID))
		return n
	}

	n = &Node{Type: stmt.Kind.String()}
	b.span(n, stmt.Span)
	var kids []func(int) *Node
	switch stmt.Kind {
	case ast.StmtBlock:
		for _, child := range b.in.AST.Stmts.Block(stmtID).Stmts {
			kids = append(kids, b.stmtThunk(child))
		}
	case ast.StmtExpr:
		kids = append(kids, b.exprThunk(b.in.AST.Stmts.Expr(stmtID).Expr))
	case ast.StmtReturn:
		if ret := b.in.AST.Stmts.Return(stmtID); ret.Expr.IsValid() {
			kids = append(kids, b.exprThunk(ret.Expr))
		}
	case ast.StmtIf:
		ifStmt := b.in.AST.Stmts.If(stmtID)
		kids = append(kids, b.exprThunk(ifStmt.Cond), b.stmtThunk(ifStmt.Then))
		if ifStmt.Else.IsValid() {
			n.field("has_else", true)
			kids = append(kids, b.stmtThunk(ifStmt.Else))
		}
	case ast.StmtWhile:
		whileStmt := b.in.AST.Stmts.While(stmtID)
		kids = append(kids, b.exprThunk(whileStmt.Cond), b.stmtThunk(whileStmt.Body))
	}
	b.attach(n, depth, kids)
	return n
}

func (b *builder) stmtThunk(id ast.StmtID) func(int) *Node {
	return func(depth int) *Node { return b.stmt(id, depth) }
}

func (b *builder) exprThunk(id ast.ExprID) func(int) *Node {
	return func(depth int) *Node { return b.expr(id, depth) }
}

// attach строит детей только если глубина позволяет.
func (b *builder) attach(n *Node, depth int, kids []func(int) *Node) {
	if len(kids) == 0 || !b.descend(n, depth) {
		return
	}
	n.Children = make([]*Node, 0, len(kids))
	for _, kid := range kids {
		n.Children = append(n.Children, kid(depth+1))
	}
}

func (b *builder) stmtType(id ast.StmtID) types.TypeID {
	if b.in.Sema == nil {
		return types.NoTypeID
	}
	return b.in.Sema.StmtTypes[id]
}

func (b *builder) expr(exprID ast.ExprID, depth int) *Node {
	expr := b.in.AST.Exprs.Get(exprID)
	if expr == nil {
		return &Node{Type: "Invalid"}
	}
	n := &Node{Type: expr.Kind.String()}
	b.span(n, expr.Span)
	if b.in.Sema != nil {
		b.resolved(n, b.in.Sema.ExprTypes[exprID])
	}

	var kids []func(int) *Node
	switch expr.Kind {
	case ast.ExprIdent:
		ident, _ := b.in.AST.Exprs.Ident(exprID)
		n.Name = b.name(ident.Name)
	case ast.ExprLit:
		lit, _ := b.in.AST.Exprs.Literal(exprID)
		n.Kind = lit.Kind.String()
		n.Text = b.name(lit.Value)
	case ast.ExprBinary:
		bin, _ := b.in.AST.Exprs.Binary(exprID)
		n.Kind = bin.Op.String()
		kids = append(kids, b.exprThunk(bin.Left), b.exprThunk(bin.Right))
	case ast.ExprUnary:
		unary, _ := b.in.AST.Exprs.Unary(exprID)
		n.Kind = unary.Op.String()
		kids = append(kids, b.exprThunk(unary.Operand))
	case ast.ExprCall:
		call, _ := b.in.AST.Exprs.Call(exprID)
		n.field("args", len(call.Args))
		kids = append(kids, b.exprThunk(call.Target))
		for _, arg := range call.Args {
			kids = append(kids, b.exprThunk(arg))
		}
	case ast.ExprGroup:
		group, _ := b.in.AST.Exprs.Group(exprID)
		kids = append(kids, b.exprThunk(group.Inner))
	}
	b.attach(n, depth, kids)
	return n
}

package sema

import (
	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/symbols"
	"strata/internal/types"
)

func (tc *typeChecker) checkStmt(stmtID ast.StmtID) {
	stmt := tc.builder.Stmts.Get(stmtID)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		block := tc.builder.Stmts.Block(stmtID)
		scope := tc.resolver.Enter(symbols.ScopeBlock, stmt.Span)
		for _, child := range block.Stmts {
			tc.checkStmt(child)
		}
		tc.resolver.Leave(scope)
	case ast.StmtLet:
		symID, ty := tc.checkLet(tc.builder.Stmts.Let(stmtID), symbols.SymbolDecl{Stmt: stmtID})
		tc.recordStmt(stmtID, symID, ty)
	case ast.StmtConst:
		symID, ty := tc.checkConst(tc.builder.Stmts.Const(stmtID), symbols.SymbolDecl{Stmt: stmtID})
		tc.recordStmt(stmtID, symID, ty)
	case ast.StmtExpr:
		tc.checkExpr(tc.builder.Stmts.Expr(stmtID).Expr)
	case ast.StmtReturn:
		tc.checkReturn(stmt, tc.builder.Stmts.Return(stmtID))
	case ast.StmtIf:
		ifStmt := tc.builder.Stmts.If(stmtID)
		tc.checkCondition(ifStmt.Cond, "if")
		tc.checkStmt(ifStmt.Then)
		tc.checkStmt(ifStmt.Else)
	case ast.StmtWhile:
		whileStmt := tc.builder.Stmts.While(stmtID)
		tc.checkCondition(whileStmt.Cond, "while")
		tc.checkStmt(whileStmt.Body)
	}
}

func (tc *typeChecker) recordStmt(stmtID ast.StmtID, symID symbols.SymbolID, ty types.TypeID) {
	if symID.IsValid() {
		tc.result.StmtSymbols[stmtID] = symID
	}
	if ty != types.NoTypeID {
		tc.result.StmtTypes[stmtID] = ty
	}
}

func (tc *typeChecker) checkCondition(cond ast.ExprID, what string) {
	ty := tc.checkExpr(cond)
	if ty != types.NoTypeID && ty != tc.builtins.Bool {
		tc.report(diag.SemaTypeMismatch, tc.exprSpan(cond),
			"%s condition must be bool, got %s", what, tc.typeLabel(ty))
	}
}

func (tc *typeChecker) checkReturn(stmt *ast.Stmt, ret *ast.ReturnStmt) {
	if len(tc.fnResults) == 0 {
		tc.report(diag.SemaReturnOutsideFn, stmt.Span, "return outside of a function")
		if ret != nil {
			tc.checkExpr(ret.Expr)
		}
		return
	}
	expected := tc.fnResults[len(tc.fnResults)-1]
	if ret == nil || !ret.Expr.IsValid() {
		if expected != tc.builtins.Nothing && expected != types.NoTypeID {
			tc.report(diag.SemaMissingReturn, stmt.Span,
				"missing return value: expected %s", tc.typeLabel(expected))
		}
		return
	}
	actual := tc.checkExpr(ret.Expr)
	if !tc.assignable(expected, actual) {
		tc.report(diag.SemaTypeMismatch, tc.exprSpan(ret.Expr),
			"cannot return %s from function returning %s",
			tc.typeLabel(actual), tc.typeLabel(expected))
	}
}

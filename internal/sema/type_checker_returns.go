package sema

import (
	"strata/internal/ast"
)

type returnStatus uint8

const (
	returnOpen returnStatus = iota
	returnClosed
)

func (tc *typeChecker) returnStatus(stmtID ast.StmtID) returnStatus {
	stmt := tc.builder.Stmts.Get(stmtID)
	if stmt == nil {
		return returnOpen
	}
	switch stmt.Kind {
	case ast.StmtReturn:
		return returnClosed
	case ast.StmtBlock:
		if block := tc.builder.Stmts.Block(stmtID); block != nil {
			for _, child := range block.Stmts {
				if tc.returnStatus(child) == returnClosed {
					return returnClosed
				}
			}
		}
		return returnOpen
	case ast.StmtIf:
		ifStmt := tc.builder.Stmts.If(stmtID)
		if ifStmt == nil || !ifStmt.Else.IsValid() {
			return returnOpen
		}
		if tc.returnStatus(ifStmt.Then) == returnClosed && tc.returnStatus(ifStmt.Else) == returnClosed {
			return returnClosed
		}
		return returnOpen
	case ast.StmtWhile:
		whileStmt := tc.builder.Stmts.While(stmtID)
		if whileStmt != nil && tc.isBoolLiteralTrue(whileStmt.Cond) && tc.returnStatus(whileStmt.Body) == returnClosed {
			return returnClosed
		}
		return returnOpen
	default:
		return returnOpen
	}
}

func (tc *typeChecker) isBoolLiteralTrue(expr ast.ExprID) bool {
	node := tc.builder.Exprs.Get(expr)
	if node == nil {
		return false
	}
	switch node.Kind {
	case ast.ExprLit:
		lit, ok := tc.builder.Exprs.Literal(expr)
		return ok && lit.Kind == ast.ExprLitTrue
	case ast.ExprGroup:
		group, ok := tc.builder.Exprs.Group(expr)
		return ok && tc.isBoolLiteralTrue(group.Inner)
	}
	return false
}

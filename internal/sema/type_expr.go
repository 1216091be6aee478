package sema

import (
	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/symbols"
	"strata/internal/types"
)

// checkExpr вычисляет тип выражения и запоминает его в Result.ExprTypes.
// NoTypeID означает, что ошибка уже сообщена.
func (tc *typeChecker) checkExpr(id ast.ExprID) types.TypeID {
	expr := tc.builder.Exprs.Get(id)
	if expr == nil {
		return types.NoTypeID
	}
	var ty types.TypeID
	switch expr.Kind {
	case ast.ExprIdent:
		ty = tc.typeIdent(id)
	case ast.ExprLit:
		ty = tc.typeLiteral(id)
	case ast.ExprGroup:
		group, _ := tc.builder.Exprs.Group(id)
		ty = tc.checkExpr(group.Inner)
	case ast.ExprUnary:
		ty = tc.typeUnary(id)
	case ast.ExprBinary:
		ty = tc.typeBinary(id)
	case ast.ExprCall:
		ty = tc.typeCall(id)
	}
	if ty != types.NoTypeID {
		tc.result.ExprTypes[id] = ty
	}
	return ty
}

func (tc *typeChecker) typeIdent(id ast.ExprID) types.TypeID {
	ident, _ := tc.builder.Exprs.Ident(id)
	symID, ok := tc.resolver.Lookup(ident.Name)
	if !ok {
		tc.report(diag.SemaUnresolvedSymbol, tc.exprSpan(id), "unresolved symbol '%s'", tc.lookupName(ident.Name))
		return types.NoTypeID
	}
	tc.result.ExprSymbols[id] = symID
	return tc.table.Symbols.Get(symID).Type
}

func (tc *typeChecker) typeLiteral(id ast.ExprID) types.TypeID {
	lit, _ := tc.builder.Exprs.Literal(id)
	switch lit.Kind {
	case ast.ExprLitInt:
		return tc.builtins.Int
	case ast.ExprLitFloat:
		return tc.builtins.Float
	case ast.ExprLitString:
		return tc.builtins.String
	case ast.ExprLitTrue, ast.ExprLitFalse:
		return tc.builtins.Bool
	case ast.ExprLitNothing:
		return tc.builtins.Nothing
	}
	return types.NoTypeID
}

func (tc *typeChecker) typeUnary(id ast.ExprID) types.TypeID {
	unary, _ := tc.builder.Exprs.Unary(id)
	operand := tc.checkExpr(unary.Operand)
	if operand == types.NoTypeID {
		return types.NoTypeID
	}
	switch unary.Op {
	case ast.ExprUnaryNeg:
		if tc.isNumeric(operand) {
			return operand
		}
	case ast.ExprUnaryNot:
		if operand == tc.builtins.Bool {
			return operand
		}
	}
	tc.report(diag.SemaTypeMismatch, tc.exprSpan(id),
		"operator %s cannot be applied to %s", unary.Op, tc.typeLabel(operand))
	return types.NoTypeID
}

func (tc *typeChecker) typeBinary(id ast.ExprID) types.TypeID {
	bin, _ := tc.builder.Exprs.Binary(id)
	if bin.Op == ast.ExprBinaryAssign {
		return tc.typeAssign(bin)
	}
	left := tc.checkExpr(bin.Left)
	right := tc.checkExpr(bin.Right)
	if left == types.NoTypeID || right == types.NoTypeID {
		return types.NoTypeID
	}

	switch {
	case bin.Op.IsArithmetic():
		if left == right && tc.isNumeric(left) {
			return left
		}
		if bin.Op == ast.ExprBinaryAdd && left == right && left == tc.builtins.String {
			return left
		}
	case bin.Op == ast.ExprBinaryEq || bin.Op == ast.ExprBinaryNotEq:
		if left == right && !tc.isKind(left, types.KindFn) {
			return tc.builtins.Bool
		}
	case bin.Op.IsComparison():
		if left == right && (tc.isNumeric(left) || left == tc.builtins.String) {
			return tc.builtins.Bool
		}
	case bin.Op.IsLogical():
		if left == tc.builtins.Bool && right == tc.builtins.Bool {
			return left
		}
	}
	tc.report(diag.SemaTypeMismatch, tc.exprSpan(id),
		"operator %s cannot be applied to %s and %s", bin.Op, tc.typeLabel(left), tc.typeLabel(right))
	return types.NoTypeID
}

// typeAssign: цель: только идентификатор изменяемой let-привязки.
// Присваивание само по себе имеет тип nothing.
func (tc *typeChecker) typeAssign(bin *ast.ExprBinaryData) types.TypeID {
	value := tc.checkExpr(bin.Right)
	ident, ok := tc.builder.Exprs.Ident(tc.unwrapGroup(bin.Left))
	if !ok {
		tc.checkExpr(bin.Left)
		tc.report(diag.SemaInvalidAssignTarget, tc.exprSpan(bin.Left), "invalid assignment target")
		return tc.builtins.Nothing
	}
	target := tc.checkExpr(bin.Left)
	symID, resolved := tc.result.ExprSymbols[tc.unwrapGroup(bin.Left)]
	if !resolved {
		return tc.builtins.Nothing
	}
	sym := tc.table.Symbols.Get(symID)
	if sym.Kind != symbols.SymbolLet || !sym.IsMutable() {
		b := diag.ReportError(tc.reporter, diag.SemaAssignImmutable, tc.exprSpan(bin.Left),
			"cannot assign to immutable "+sym.Kind.String()+" '"+tc.lookupName(ident.Name)+"'")
		if sym.Span.Len() > 0 {
			b.WithNote(sym.Span, "declared here")
		}
		b.Emit()
		return tc.builtins.Nothing
	}
	if !tc.assignable(target, value) {
		tc.report(diag.SemaTypeMismatch, tc.exprSpan(bin.Right),
			"cannot assign %s to '%s' of type %s",
			tc.typeLabel(value), tc.lookupName(ident.Name), tc.typeLabel(target))
	}
	return tc.builtins.Nothing
}

func (tc *typeChecker) unwrapGroup(id ast.ExprID) ast.ExprID {
	for {
		group, ok := tc.builder.Exprs.Group(id)
		if !ok {
			return id
		}
		id = group.Inner
	}
}

func (tc *typeChecker) typeCall(id ast.ExprID) types.TypeID {
	call, _ := tc.builder.Exprs.Call(id)
	callee := tc.checkExpr(call.Target)
	args := make([]types.TypeID, len(call.Args))
	for i, arg := range call.Args {
		args[i] = tc.checkExpr(arg)
	}
	if callee == types.NoTypeID {
		return types.NoTypeID
	}
	info, ok := tc.types.FnInfo(callee)
	if !ok {
		if ident, isIdent := tc.builder.Exprs.Ident(tc.unwrapGroup(call.Target)); isIdent {
			tc.report(diag.SemaNotCallable, tc.exprSpan(call.Target),
				"'%s' is not callable: has type %s", tc.lookupName(ident.Name), tc.typeLabel(callee))
		} else {
			tc.report(diag.SemaNotCallable, tc.exprSpan(call.Target),
				"expression of type %s is not callable", tc.typeLabel(callee))
		}
		return types.NoTypeID
	}
	if len(args) != len(info.Params) {
		tc.report(diag.SemaArityMismatch, tc.exprSpan(id),
			"wrong number of arguments: expected %d, got %d", len(info.Params), len(args))
		return info.Result
	}
	for i, arg := range call.Args {
		if !tc.assignable(info.Params[i], args[i]) {
			tc.report(diag.SemaTypeMismatch, tc.exprSpan(arg),
				"argument %d: expected %s, got %s", i+1, tc.typeLabel(info.Params[i]), tc.typeLabel(args[i]))
		}
	}
	return info.Result
}

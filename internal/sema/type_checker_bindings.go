package sema

import (
	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/source"
	"strata/internal/symbols"
	"strata/internal/types"
)

// checkLet проверяет инициализатор до объявления, поэтому `let x = x;`
// видит внешний x.
func (tc *typeChecker) checkLet(let *ast.LetItem, decl symbols.SymbolDecl) (symbols.SymbolID, types.TypeID) {
	if let == nil {
		return symbols.NoSymbolID, types.NoTypeID
	}
	ty := tc.bindingType(let.Type, let.Value, let.Name)
	flags := symbols.SymbolFlags(0)
	if let.IsMut {
		flags |= symbols.SymbolFlagMutable
	}
	if let.Visibility.IsPublic() {
		flags |= symbols.SymbolFlagPublic
	}
	return tc.declareBinding(let.Name, let.NameSpan, symbols.SymbolLet, flags, decl, ty), ty
}

func (tc *typeChecker) checkConst(c *ast.ConstItem, decl symbols.SymbolDecl) (symbols.SymbolID, types.TypeID) {
	if c == nil {
		return symbols.NoSymbolID, types.NoTypeID
	}
	ty := tc.bindingType(c.Type, c.Value, c.Name)
	flags := symbols.SymbolFlags(0)
	if c.Visibility.IsPublic() {
		flags |= symbols.SymbolFlagPublic
	}
	return tc.declareBinding(c.Name, c.NameSpan, symbols.SymbolConst, flags, decl, ty), ty
}

func (tc *typeChecker) bindingType(annotation ast.TypeID, value ast.ExprID, name source.StringID) types.TypeID {
	declared := tc.resolveTypeExpr(annotation)
	if !value.IsValid() {
		return declared
	}
	actual := tc.checkExpr(value)
	if !annotation.IsValid() {
		return actual
	}
	if !tc.assignable(declared, actual) {
		tc.report(diag.SemaTypeMismatch, tc.exprSpan(value),
			"cannot initialize '%s' of type %s with %s",
			tc.lookupName(name), tc.typeLabel(declared), tc.typeLabel(actual))
	}
	return declared
}

func (tc *typeChecker) declareBinding(name source.StringID, span source.Span, kind symbols.SymbolKind, flags symbols.SymbolFlags, decl symbols.SymbolDecl, ty types.TypeID) symbols.SymbolID {
	symID, ok := tc.resolver.Declare(name, span, kind, flags, decl)
	if !ok {
		return symbols.NoSymbolID
	}
	tc.table.Symbols.Get(symID).Type = ty
	return symID
}

func (tc *typeChecker) checkFn(itemID ast.ItemID) {
	fn, ok := tc.builder.Items.Fn(itemID)
	if !ok {
		return
	}
	fnType := tc.result.ItemTypes[itemID]
	if fnType == types.NoTypeID {
		// Resolve не запускался для этого файла
		fnType = tc.functionType(fn)
		tc.result.ItemTypes[itemID] = fnType
	}
	info, ok := tc.types.FnInfo(fnType)
	if !ok {
		return
	}

	scope := tc.resolver.Enter(symbols.ScopeFunction, fn.Span)
	for i, paramID := range fn.Params {
		param := tc.builder.Items.FnParam(paramID)
		tc.declareBinding(param.Name, param.NameSpan, symbols.SymbolParam, 0,
			symbols.SymbolDecl{Item: itemID, Param: paramID}, info.Params[i])
	}

	tc.fnResults = append(tc.fnResults, info.Result)
	tc.checkStmt(fn.Body)
	tc.fnResults = tc.fnResults[:len(tc.fnResults)-1]
	tc.resolver.Leave(scope)

	if info.Result != tc.builtins.Nothing && info.Result != types.NoTypeID && tc.returnStatus(fn.Body) != returnClosed {
		span := fn.NameSpan
		if body := tc.builder.Stmts.Get(fn.Body); body != nil {
			span = body.Span.ZeroideToEnd()
		}
		tc.report(diag.SemaMissingReturn, span,
			"missing return value: function '%s' must return %s",
			tc.lookupName(fn.Name), tc.typeLabel(info.Result))
	}
}

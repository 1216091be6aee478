package sema

import (
	"strata/internal/ast"
	"strata/internal/symbols"
	"strata/internal/types"
)

func (tc *typeChecker) declareFunctions() {
	file := tc.builder.Files.Get(tc.fileID)
	for _, itemID := range file.Items {
		fn, ok := tc.builder.Items.Fn(itemID)
		if !ok {
			continue
		}
		fnType := tc.functionType(fn)
		tc.result.ItemTypes[itemID] = fnType

		flags := symbols.SymbolFlags(0)
		if fn.Visibility.IsPublic() {
			flags |= symbols.SymbolFlagPublic
		}
		symID, declared := tc.resolver.Declare(fn.Name, fn.NameSpan, symbols.SymbolFunction, flags, symbols.SymbolDecl{Item: itemID})
		if !declared {
			continue
		}
		tc.table.Symbols.Get(symID).Type = fnType
		tc.result.ItemSymbols[itemID] = symID
	}
}

// functionType resolves parameter and result annotations. Unknown types are
// reported once here and become Invalid.
func (tc *typeChecker) functionType(fn *ast.FnItem) types.TypeID {
	params := make([]types.TypeID, 0, len(fn.Params))
	for _, paramID := range fn.Params {
		param := tc.builder.Items.FnParam(paramID)
		ty := tc.resolveTypeExpr(param.Type)
		tc.result.ParamTypes[paramID] = ty
		params = append(params, ty)
	}
	result := tc.builtins.Nothing
	if fn.Result.IsValid() {
		result = tc.resolveTypeExpr(fn.Result)
	}
	return tc.types.RegisterFn(params, result)
}

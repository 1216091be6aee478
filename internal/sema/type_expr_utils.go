package sema

import (
	"fmt"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/source"
	"strata/internal/types"
)

func (tc *typeChecker) report(code diag.Code, span source.Span, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if b := diag.ReportError(tc.reporter, code, span, msg); b != nil {
		b.Emit()
	}
}

func (tc *typeChecker) lookupName(id source.StringID) string {
	name, ok := tc.table.Strings.Lookup(id)
	if !ok {
		return "_"
	}
	return name
}

func (tc *typeChecker) typeLabel(id types.TypeID) string {
	return types.Label(tc.types, id)
}

func (tc *typeChecker) exprSpan(id ast.ExprID) source.Span {
	if expr := tc.builder.Exprs.Get(id); expr != nil {
		return expr.Span
	}
	return source.Span{}
}

// resolveTypeExpr maps a written type to a TypeID. NoTypeID in, NoTypeID out.
func (tc *typeChecker) resolveTypeExpr(id ast.TypeID) types.TypeID {
	if !id.IsValid() {
		return types.NoTypeID
	}
	texpr := tc.builder.Types.Get(id)
	if texpr == nil {
		return types.NoTypeID
	}
	name := tc.lookupName(texpr.Name)
	if ty, ok := tc.types.BuiltinByName(name); ok {
		return ty
	}
	tc.report(diag.SemaUnknownType, texpr.Span, "unknown type '%s'", name)
	return types.NoTypeID
}

// assignable: Invalid совместим со всем, чтобы не плодить каскадные ошибки.
func (tc *typeChecker) assignable(expected, actual types.TypeID) bool {
	if expected == types.NoTypeID || actual == types.NoTypeID {
		return true
	}
	return expected == actual
}

func (tc *typeChecker) isKind(id types.TypeID, kind types.Kind) bool {
	tt, ok := tc.types.Lookup(id)
	return ok && tt.Kind == kind
}

func (tc *typeChecker) isNumeric(id types.TypeID) bool {
	tt, ok := tc.types.Lookup(id)
	return ok && tt.IsNumeric()
}

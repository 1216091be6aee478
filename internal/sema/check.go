package sema

import (
	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/symbols"
	"strata/internal/types"
)

// Options configure a semantic pass over a file.
type Options struct {
	Reporter diag.Reporter
	Symbols  *symbols.Table
	// Result накапливает артефакты всех единиц программы; nil: новый.
	Result *Result
}

// Result stores semantic artefacts produced by the resolver and checker.
// One Result serves every unit of a program.
type Result struct {
	TypeInterner *types.Interner
	ExprTypes    map[ast.ExprID]types.TypeID
	ExprSymbols  map[ast.ExprID]symbols.SymbolID
	ItemSymbols  map[ast.ItemID]symbols.SymbolID
	ItemTypes    map[ast.ItemID]types.TypeID
	StmtSymbols  map[ast.StmtID]symbols.SymbolID
	StmtTypes    map[ast.StmtID]types.TypeID
	ParamTypes   map[ast.FnParamID]types.TypeID
}

// NewResult allocates empty bookkeeping. If typesIn is nil a fresh interner
// is created.
func NewResult(typesIn *types.Interner) *Result {
	if typesIn == nil {
		typesIn = types.NewInterner()
	}
	return &Result{
		TypeInterner: typesIn,
		ExprTypes:    make(map[ast.ExprID]types.TypeID),
		ExprSymbols:  make(map[ast.ExprID]symbols.SymbolID),
		ItemSymbols:  make(map[ast.ItemID]symbols.SymbolID),
		ItemTypes:    make(map[ast.ItemID]types.TypeID),
		StmtSymbols:  make(map[ast.StmtID]symbols.SymbolID),
		StmtTypes:    make(map[ast.StmtID]types.TypeID),
		ParamTypes:   make(map[ast.FnParamID]types.TypeID),
	}
}

// Resolve declares the functions of a file in the program scope and computes
// their signatures, so bodies anywhere in the file may call them.
func Resolve(builder *ast.Builder, fileID ast.FileID, opts Options) *Result {
	tc := newTypeChecker(builder, fileID, opts)
	if tc == nil {
		return opts.Result
	}
	tc.declareFunctions()
	return tc.result
}

// Check walks the items of a file in order: declares let/const bindings,
// type-checks initializers and function bodies.
func Check(builder *ast.Builder, fileID ast.FileID, opts Options) *Result {
	tc := newTypeChecker(builder, fileID, opts)
	if tc == nil {
		return opts.Result
	}
	tc.run()
	return tc.result
}

type typeChecker struct {
	builder  *ast.Builder
	fileID   ast.FileID
	reporter diag.Reporter
	table    *symbols.Table
	resolver *symbols.Resolver
	types    *types.Interner
	builtins types.Builtins
	result   *Result
	// стек ожидаемых типов результата; пуст вне функции
	fnResults []types.TypeID
}

func newTypeChecker(builder *ast.Builder, fileID ast.FileID, opts Options) *typeChecker {
	if builder == nil || opts.Symbols == nil || builder.Files.Get(fileID) == nil {
		return nil
	}
	res := opts.Result
	if res == nil {
		res = NewResult(nil)
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &typeChecker{
		builder:  builder,
		fileID:   fileID,
		reporter: reporter,
		table:    opts.Symbols,
		resolver: symbols.NewResolver(opts.Symbols, opts.Symbols.Root(), symbols.ResolverOptions{Reporter: reporter}),
		types:    res.TypeInterner,
		builtins: res.TypeInterner.Builtins(),
		result:   res,
	}
}

func (tc *typeChecker) run() {
	file := tc.builder.Files.Get(tc.fileID)
	for _, itemID := range file.Items {
		item := tc.builder.Items.Get(itemID)
		if item == nil {
			continue
		}
		switch item.Kind {
		case ast.ItemLet:
			let, _ := tc.builder.Items.Let(itemID)
			symID, ty := tc.checkLet(let, symbols.SymbolDecl{Item: itemID})
			tc.recordItem(itemID, symID, ty)
		case ast.ItemConst:
			c, _ := tc.builder.Items.Const(itemID)
			symID, ty := tc.checkConst(c, symbols.SymbolDecl{Item: itemID})
			tc.recordItem(itemID, symID, ty)
		case ast.ItemFn:
			tc.checkFn(itemID)
		}
	}
}

func (tc *typeChecker) recordItem(itemID ast.ItemID, symID symbols.SymbolID, ty types.TypeID) {
	if symID.IsValid() {
		tc.result.ItemSymbols[itemID] = symID
	}
	if ty != types.NoTypeID {
		tc.result.ItemTypes[itemID] = ty
	}
}

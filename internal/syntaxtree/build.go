package syntaxtree

import (
	"bytes"
	"encoding/json"
	"fmt"

	"strata/internal/ast"
	"strata/internal/sema"
	"strata/internal/source"
	"strata/internal/types"
)

// Input carries the program state an export reads from.
type Input struct {
	AST     *ast.Builder
	Files   *source.FileSet
	Strings *source.Interner
	// Sema may be nil; resolved types are then omitted.
	Sema  *sema.Result
	Units []ast.FileID
}

type builder struct {
	in   Input
	opts Options
}

// Build constructs the document tree.
func Build(in Input, opts Options) *Document {
	b := &builder{in: in, opts: opts}
	doc := &Document{Type: "Program", Units: make([]*Node, 0, len(in.Units))}
	for i, fileID := range in.Units {
		if unit := b.unit(i, fileID); unit != nil {
			doc.Units = append(doc.Units, unit)
		}
	}
	return doc
}

// Render builds and serialises the document.
func Render(in Input, opts Options) (string, error) {
	doc := Build(in, opts)
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if opts.PrettyPrint {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("encode syntax tree: %w", err)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// descend reports whether children at depth+1 may be emitted and marks the
// node truncated otherwise.
func (b *builder) descend(n *Node, depth int) bool {
	if b.opts.MaxDepth > 0 && depth >= b.opts.MaxDepth {
		n.Truncated = true
		return false
	}
	return true
}

func (b *builder) name(id source.StringID) string {
	if b.in.Strings == nil {
		return ""
	}
	s, _ := b.in.Strings.Lookup(id)
	return s
}

func (b *builder) span(n *Node, sp source.Span) {
	if !b.opts.IncludeSourceLocations || b.in.Files == nil || !b.in.Files.Has(sp.File) {
		return
	}
	start, end := b.in.Files.Resolve(sp)
	n.Span = &SpanJSON{
		Start: sp.Start, End: sp.End,
		Line: start.Line, Column: start.Col,
		EndLine: end.Line, EndColumn: end.Col,
	}
}

func (b *builder) resolved(n *Node, ty types.TypeID) {
	if !b.opts.IncludeResolvedTypes || b.in.Sema == nil || ty == types.NoTypeID {
		return
	}
	n.ResolvedType = types.Label(b.in.Sema.TypeInterner, ty)
}

func (b *builder) doc(n *Node, doc string) {
	if b.opts.IncludeComments && doc != "" {
		n.field("doc", doc)
	}
}

func (b *builder) typeName(id ast.TypeID) string {
	if texpr := b.in.AST.Types.Get(id); texpr != nil {
		return b.name(texpr.Name)
	}
	return ""
}

func (b *builder) unit(index int, fileID ast.FileID) *Node {
	file := b.in.AST.Files.Get(fileID)
	if file == nil {
		return nil
	}
	n := &Node{Type: "Unit", Name: source.UnnamedDisplay}
	if b.in.Files != nil && b.in.Files.Has(file.Span.File) {
		n.Name = b.in.Files.Get(file.Span.File).DisplayName()
	}
	n.field("index", index)
	b.span(n, file.Span)

	items := file.Items
	if b.opts.Item != "" {
		items = b.filterItems(items)
	}
	if len(items) == 0 || !b.descend(n, 1) {
		return n
	}
	for _, itemID := range items {
		if child := b.item(itemID, 2); child != nil {
			n.Children = append(n.Children, child)
		}
	}
	return n
}

func (b *builder) filterItems(items []ast.ItemID) []ast.ItemID {
	out := make([]ast.ItemID, 0, 1)
	for _, itemID := range items {
		nameID, _ := b.in.AST.Items.NameOf(itemID)
		if b.name(nameID) == b.opts.Item {
			out = append(out, itemID)
		}
	}
	return out
}

func (b *builder) itemType(id ast.ItemID) types.TypeID {
	if b.in.Sema == nil {
		return types.NoTypeID
	}
	return b.in.Sema.ItemTypes[id]
}

func (b *builder) item(itemID ast.ItemID, depth int) *Node {
	item := b.in.AST.Items.Get(itemID)
	if item == nil {
		return nil
	}
	switch item.Kind {
	case ast.ItemLet:
		let, _ := b.in.AST.Items.Let(itemID)
		n := b.let(let, depth)
		b.resolved(n, b.itemType(itemID))
		return n
	case ast.ItemConst:
		c, _ := b.in.AST.Items.Const(itemID)
		n := b.constant(c, depth)
		b.resolved(n, b.itemType(itemID))
		return n
	case ast.ItemFn:
		fn, _ := b.in.AST.Items.Fn(itemID)
		n := b.fn(fn, depth)
		b.resolved(n, b.itemType(itemID))
		return n
	}
	return nil
}

func (b *builder) let(let *ast.LetItem, depth int) *Node {
	n := &Node{Type: "Let", Name: b.name(let.Name)}
	b.span(n, let.Span)
	b.doc(n, let.Doc)
	if let.IsMut {
		n.field("mutable", true)
	}
	if let.Visibility.IsPublic() {
		n.field("public", true)
	}
	if let.Type.IsValid() {
		n.field("type", b.typeName(let.Type))
	}
	if let.Value.IsValid() && b.descend(n, depth) {
		n.Children = append(n.Children, b.expr(let.Value, depth+1))
	}
	return n
}

func (b *builder) constant(c *ast.ConstItem, depth int) *Node {
	n := &Node{Type: "Const", Name: b.name(c.Name)}
	b.span(n, c.Span)
	b.doc(n, c.Doc)
	if c.Visibility.IsPublic() {
		n.field("public", true)
	}
	if c.Type.IsValid() {
		n.field("type", b.typeName(c.Type))
	}
	if c.Value.IsValid() && b.descend(n, depth) {
		n.Children = append(n.Children, b.expr(c.Value, depth+1))
	}
	return n
}

func (b *builder) fn(fn *ast.FnItem, depth int) *Node {
	n := &Node{Type: "Fn", Name: b.name(fn.Name)}
	b.span(n, fn.Span)
	b.doc(n, fn.Doc)
	if fn.Visibility.IsPublic() {
		n.field("public", true)
	}
	result := "nothing"
	if fn.Result.IsValid() {
		result = b.typeName(fn.Result)
	}
	n.field("result", result)
	if b.opts.SkipFunctionBodies {
		n.field("body", "skipped")
	}

	hasBody := fn.Body.IsValid() && !b.opts.SkipFunctionBodies
	if (len(fn.Params) == 0 && !hasBody) || !b.descend(n, depth) {
		return n
	}
	for _, paramID := range fn.Params {
		param := b.in.AST.Items.FnParam(paramID)
		p := &Node{Type: "Param", Name: b.name(param.Name)}
		p.field("type", b.typeName(param.Type))
		b.span(p, param.Span)
		if b.in.Sema != nil {
			b.resolved(p, b.in.Sema.ParamTypes[paramID])
		}
		n.Children = append(n.Children, p)
	}
	if hasBody {
		n.Children = append(n.Children, b.stmt(fn.Body, depth+1))
	}
	return n
}

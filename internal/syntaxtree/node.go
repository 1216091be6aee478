package syntaxtree

// Node is one element of the exported tree.
type Node struct {
	Type         string         `json:"type"`
	Kind         string         `json:"kind,omitempty"`
	Name         string         `json:"name,omitempty"`
	Text         string         `json:"text,omitempty"`
	ResolvedType string         `json:"resolved_type,omitempty"`
	Span         *SpanJSON      `json:"span,omitempty"`
	Fields       map[string]any `json:"fields,omitempty"`
	Children     []*Node        `json:"children,omitempty"`
	Truncated    bool           `json:"truncated,omitempty"`
}

// SpanJSON is a source range with 1-based line/column positions.
type SpanJSON struct {
	Start     uint32 `json:"start"`
	End       uint32 `json:"end"`
	Line      uint32 `json:"line"`
	Column    uint32 `json:"column"`
	EndLine   uint32 `json:"end_line"`
	EndColumn uint32 `json:"end_column"`
}

// Document is the root of an export.
type Document struct {
	Type  string  `json:"type"`
	Units []*Node `json:"units"`
}

func (n *Node) field(key string, value any) {
	if n.Fields == nil {
		n.Fields = make(map[string]any, 4)
	}
	n.Fields[key] = value
}

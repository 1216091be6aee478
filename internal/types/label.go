package types

import (
	"strings"
)

// Label returns a user-friendly label for a TypeID.
func Label(typesIn *Interner, id TypeID) string {
	return labelDepth(typesIn, id, 0)
}

func labelDepth(typesIn *Interner, id TypeID, depth int) string {
	if id == NoTypeID || typesIn == nil {
		return "?"
	}
	if depth > 6 {
		return "..."
	}
	tt, ok := typesIn.Lookup(id)
	if !ok {
		return "?"
	}
	if tt.Kind != KindFn {
		return tt.Kind.String()
	}
	info, _ := typesIn.FnInfo(id)
	var b strings.Builder
	b.WriteString("fn(")
	for i, p := range info.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(labelDepth(typesIn, p, depth+1))
	}
	b.WriteString(") -> ")
	b.WriteString(labelDepth(typesIn, info.Result, depth+1))
	return b.String()
}

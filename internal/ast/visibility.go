package ast

// Visibility of a top-level item. Only `pub` changes it; nested bindings are
// always private.
type Visibility uint8

const (
	VisPrivate Visibility = iota
	VisPublic
)

// IsPublic reports whether the item was declared with `pub`.
func (v Visibility) IsPublic() bool { return v == VisPublic }

// String returns the keyword spelling, empty for private items.
func (v Visibility) String() string {
	if v.IsPublic() {
		return "pub"
	}
	return ""
}

package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type. Checks treat it as "already
// reported" and never complain about it again.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNothing
	KindBool
	KindString
	KindInt
	KindFloat
	KindFn
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNothing:
		return "nothing"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindFn:
		return "fn"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor. Payload indexes side tables (FnInfo for KindFn).
type Type struct {
	Kind    Kind
	Payload uint32
}

func (t Type) IsNumeric() bool {
	return t.Kind == KindInt || t.Kind == KindFloat
}

package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	KwFn     // fn
	KwLet    // let
	KwConst  // const
	KwMut    // mut
	KwPub    // pub
	KwIf     // if
	KwElse   // else
	KwWhile  // while
	KwReturn // return
	KwTrue   // true
	KwFalse  // false

	// NothingLit is the 'nothing' literal.
	NothingLit
	IntLit
	FloatLit
	StringLit

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Assign    // =
	EqEq      // ==
	Bang      // !
	BangEq    // !=
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	AndAnd    // &&
	OrOr      // ||
	Colon     // :
	Semicolon // ;
	Comma     // ,
	Arrow     // ->
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	KwFn:       "KwFn",
	KwLet:      "KwLet",
	KwConst:    "KwConst",
	KwMut:      "KwMut",
	KwPub:      "KwPub",
	KwIf:       "KwIf",
	KwElse:     "KwElse",
	KwWhile:    "KwWhile",
	KwReturn:   "KwReturn",
	KwTrue:     "KwTrue",
	KwFalse:    "KwFalse",
	NothingLit: "NothingLit",
	IntLit:     "IntLit",
	FloatLit:   "FloatLit",
	StringLit:  "StringLit",
	Plus:       "Plus",
	Minus:      "Minus",
	Star:       "Star",
	Slash:      "Slash",
	Percent:    "Percent",
	Assign:     "Assign",
	EqEq:       "EqEq",
	Bang:       "Bang",
	BangEq:     "BangEq",
	Lt:         "Lt",
	LtEq:       "LtEq",
	Gt:         "Gt",
	GtEq:       "GtEq",
	AndAnd:     "AndAnd",
	OrOr:       "OrOr",
	Colon:      "Colon",
	Semicolon:  "Semicolon",
	Comma:      "Comma",
	Arrow:      "Arrow",
	LParen:     "LParen",
	RParen:     "RParen",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
}

var kindSpelling = map[Kind]string{
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Assign: "=", EqEq: "==", Bang: "!", BangEq: "!=",
	Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=",
	AndAnd: "&&", OrOr: "||", Colon: ":", Semicolon: ";", Comma: ",",
	Arrow: "->", LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Spelling returns the source spelling of punctuation and keywords,
// used in "expected ..." messages. Other kinds fall back to String.
func (k Kind) Spelling() string {
	if s, ok := kindSpelling[k]; ok {
		return s
	}
	for word, kw := range keywords {
		if kw == k {
			return word
		}
	}
	switch k {
	case Ident:
		return "identifier"
	case EOF:
		return "end of file"
	}
	return k.String()
}

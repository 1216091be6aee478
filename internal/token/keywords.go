package token

var keywords = map[string]Kind{
	"fn":      KwFn,
	"let":     KwLet,
	"const":   KwConst,
	"mut":     KwMut,
	"pub":     KwPub,
	"if":      KwIf,
	"else":    KwElse,
	"while":   KwWhile,
	"return":  KwReturn,
	"true":    KwTrue,
	"false":   KwFalse,
	"nothing": NothingLit,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые: только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

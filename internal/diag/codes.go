package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Парсерные
	SynInfo                  Code = 2000
	SynUnexpectedToken       Code = 2001
	SynUnexpectedTopLevel    Code = 2002
	SynExpectIdentifier      Code = 2003
	SynExpectExpression      Code = 2004
	SynExpectType            Code = 2005
	SynExpectSemicolon       Code = 2006
	SynExpectRightParen      Code = 2007
	SynExpectRightBrace      Code = 2008
	SynLetMissingTypeOrValue Code = 2009
	SynConstMissingValue     Code = 2010
	SynTooManyErrors         Code = 2099

	// Семантические
	SemaInfo                Code = 3000
	SemaDuplicateSymbol     Code = 3001
	SemaUnresolvedSymbol    Code = 3002
	SemaShadowSymbol        Code = 3003
	SemaAssignImmutable     Code = 3004
	SemaTypeMismatch        Code = 3005
	SemaArityMismatch       Code = 3006
	SemaNotCallable         Code = 3007
	SemaMissingReturn       Code = 3008
	SemaReturnOutsideFn     Code = 3009
	SemaInvalidAssignTarget Code = 3010
	SemaUnknownType         Code = 3011

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number literal",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnexpectedTopLevel:       "Unexpected top-level construct",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectExpression:         "Expected expression",
	SynExpectType:               "Expected type",
	SynExpectSemicolon:          "Expected ';'",
	SynExpectRightParen:         "Expected ')'",
	SynExpectRightBrace:         "Expected '}'",
	SynLetMissingTypeOrValue:    "Binding needs a type or an initializer",
	SynConstMissingValue:        "Constant needs an initializer",
	SynTooManyErrors:            "Too many syntax errors",
	SemaInfo:                    "Semantic information",
	SemaDuplicateSymbol:         "Duplicate declaration",
	SemaUnresolvedSymbol:        "Unresolved symbol",
	SemaShadowSymbol:            "Declaration shadows an outer symbol",
	SemaAssignImmutable:         "Assignment to immutable binding",
	SemaTypeMismatch:            "Type mismatch",
	SemaArityMismatch:           "Wrong number of arguments",
	SemaNotCallable:             "Call of a non-function",
	SemaMissingReturn:           "Missing return value",
	SemaReturnOutsideFn:         "Return outside of a function",
	SemaInvalidAssignTarget:     "Invalid assignment target",
	SemaUnknownType:             "Unknown type",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

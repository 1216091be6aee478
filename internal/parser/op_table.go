package parser

import (
	"strata/internal/ast"
	"strata/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAssignment     = 1 // =
	precLogicalOr      = 2 // ||
	precLogicalAnd     = 3 // &&
	precEquality       = 4 // == !=
	precComparison     = 5 // < <= > >=
	precAdditive       = 6 // + -
	precMultiplicative = 7 // * / %
)

// getBinaryOperatorPrec возвращает (приоритет, правоассоциативный).
func getBinaryOperatorPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Assign:
		return precAssignment, true
	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false
	case token.EqEq, token.BangEq:
		return precEquality, false
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	default:
		return -1, false // не бинарный оператор
	}
}

var binaryOps = map[token.Kind]ast.ExprBinaryOp{
	token.Plus:    ast.ExprBinaryAdd,
	token.Minus:   ast.ExprBinarySub,
	token.Star:    ast.ExprBinaryMul,
	token.Slash:   ast.ExprBinaryDiv,
	token.Percent: ast.ExprBinaryMod,
	token.AndAnd:  ast.ExprBinaryLogicalAnd,
	token.OrOr:    ast.ExprBinaryLogicalOr,
	token.EqEq:    ast.ExprBinaryEq,
	token.BangEq:  ast.ExprBinaryNotEq,
	token.Lt:      ast.ExprBinaryLess,
	token.LtEq:    ast.ExprBinaryLessEq,
	token.Gt:      ast.ExprBinaryGreater,
	token.GtEq:    ast.ExprBinaryGreaterEq,
	token.Assign:  ast.ExprBinaryAssign,
}

func getUnaryOperator(kind token.Kind) (ast.ExprUnaryOp, bool) {
	switch kind {
	case token.Minus:
		return ast.ExprUnaryNeg, true
	case token.Bang:
		return ast.ExprUnaryNot, true
	default:
		return ast.ExprUnaryNeg, false
	}
}

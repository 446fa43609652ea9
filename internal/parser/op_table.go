package parser

import (
	"cqasm/internal/ast"
	"cqasm/internal/token"
)

// Таблица приоритетов бинарных операторов.
// Чем больше число, тем выше приоритет; унарные операторы связывают сильнее всех.
const (
	precLogicalOr  = 1  // ||
	precLogicalXor = 2  // ^^
	precLogicalAnd = 3  // &&
	precBitwiseOr  = 4  // |
	precBitwiseXor = 5  // ^
	precBitwiseAnd = 6  // &
	precEquality   = 7  // == !=
	precComparison = 8  // < <= > >=
	precShift      = 9  // << >>
	precAdditive   = 10 // + -
	precMul        = 11 // * / %
	precPower      = 12 // ** (правоассоциативен)
)

type binaryEntry struct {
	prec  int
	right bool
	op    ast.BinaryOp
}

var binaryTable = map[token.Kind]binaryEntry{
	token.OrOr:       {precLogicalOr, false, ast.BinaryLogicalOr},
	token.CaretCaret: {precLogicalXor, false, ast.BinaryLogicalXor},
	token.AndAnd:     {precLogicalAnd, false, ast.BinaryLogicalAnd},
	token.Pipe:       {precBitwiseOr, false, ast.BinaryBitOr},
	token.Caret:      {precBitwiseXor, false, ast.BinaryBitXor},
	token.Amp:        {precBitwiseAnd, false, ast.BinaryBitAnd},
	token.EqEq:       {precEquality, false, ast.BinaryEq},
	token.BangEq:     {precEquality, false, ast.BinaryNe},
	token.Lt:         {precComparison, false, ast.BinaryLt},
	token.Gt:         {precComparison, false, ast.BinaryGt},
	token.LtEq:       {precComparison, false, ast.BinaryLe},
	token.GtEq:       {precComparison, false, ast.BinaryGe},
	token.Shl:        {precShift, false, ast.BinaryShl},
	token.Shr:        {precShift, false, ast.BinaryShr},
	token.Plus:       {precAdditive, false, ast.BinaryAdd},
	token.Minus:      {precAdditive, false, ast.BinarySub},
	token.Star:       {precMul, false, ast.BinaryMul},
	token.Slash:      {precMul, false, ast.BinaryDiv},
	token.Percent:    {precMul, false, ast.BinaryMod},
	token.StarStar:   {precPower, true, ast.BinaryPower},
}

// binaryOperator возвращает приоритет, ассоциативность и вид оператора.
func binaryOperator(kind token.Kind) (binaryEntry, bool) {
	e, ok := binaryTable[kind]
	return e, ok
}

func unaryOperator(kind token.Kind) (ast.UnaryOp, bool) {
	switch kind {
	case token.Minus:
		return ast.UnaryMinus, true
	case token.Tilde:
		return ast.UnaryBitNot, true
	case token.Bang:
		return ast.UnaryLogicalNot, true
	default:
		return 0, false
	}
}

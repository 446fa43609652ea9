package ast

// UnaryOp enumerates prefix operators. Unary plus does not produce a node.
type UnaryOp uint8

const (
	// UnaryMinus represents negation (-).
	UnaryMinus UnaryOp = iota
	// UnaryBitNot represents bitwise complement (~).
	UnaryBitNot
	// UnaryLogicalNot represents logical negation (!).
	UnaryLogicalNot
)

// Symbol returns the operator spelling ("-", "~", "!").
func (op UnaryOp) Symbol() string {
	switch op {
	case UnaryMinus:
		return "-"
	case UnaryBitNot:
		return "~"
	case UnaryLogicalNot:
		return "!"
	default:
		return "?"
	}
}

// NodeName returns the tag used in the serialized tree.
func (op UnaryOp) NodeName() string {
	switch op {
	case UnaryMinus:
		return "UnaryMinusExpression"
	case UnaryBitNot:
		return "BitwiseNotExpression"
	case UnaryLogicalNot:
		return "LogicalNotExpression"
	default:
		return "UnaryExpression"
	}
}

// BinaryOp enumerates infix operators.
type BinaryOp uint8

const (
	// Арифметические

	BinaryPower BinaryOp = iota
	BinaryMul
	BinaryDiv
	BinaryMod
	BinaryAdd
	BinarySub

	// Сдвиги и сравнения

	BinaryShl
	BinaryShr
	BinaryGt
	BinaryLt
	BinaryGe
	BinaryLe
	BinaryEq
	BinaryNe

	// Битовые и логические

	BinaryBitAnd
	BinaryBitXor
	BinaryBitOr
	BinaryLogicalAnd
	BinaryLogicalXor
	BinaryLogicalOr
)

var binaryInfo = [...]struct {
	symbol string
	node   string
}{
	BinaryPower:      {"**", "PowerExpression"},
	BinaryMul:        {"*", "ProductExpression"},
	BinaryDiv:        {"/", "DivisionExpression"},
	BinaryMod:        {"%", "ModuloExpression"},
	BinaryAdd:        {"+", "AdditionExpression"},
	BinarySub:        {"-", "SubtractionExpression"},
	BinaryShl:        {"<<", "ShiftLeftExpression"},
	BinaryShr:        {">>", "ShiftRightExpression"},
	BinaryGt:         {">", "CmpGtExpression"},
	BinaryLt:         {"<", "CmpLtExpression"},
	BinaryGe:         {">=", "CmpGeExpression"},
	BinaryLe:         {"<=", "CmpLeExpression"},
	BinaryEq:         {"==", "CmpEqExpression"},
	BinaryNe:         {"!=", "CmpNeExpression"},
	BinaryBitAnd:     {"&", "BitwiseAndExpression"},
	BinaryBitXor:     {"^", "BitwiseXorExpression"},
	BinaryBitOr:      {"|", "BitwiseOrExpression"},
	BinaryLogicalAnd: {"&&", "LogicalAndExpression"},
	BinaryLogicalXor: {"^^", "LogicalXorExpression"},
	BinaryLogicalOr:  {"||", "LogicalOrExpression"},
}

// Symbol returns the operator spelling, e.g. "**".
func (op BinaryOp) Symbol() string {
	if int(op) < len(binaryInfo) {
		return binaryInfo[op].symbol
	}
	return "?"
}

// NodeName returns the tag used in the serialized tree.
func (op BinaryOp) NodeName() string {
	if int(op) < len(binaryInfo) {
		return binaryInfo[op].node
	}
	return "BinaryExpression"
}

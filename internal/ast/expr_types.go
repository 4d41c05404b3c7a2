package ast

import "minic/internal/source"

// ExprKind enumerates the different kinds of expressions.
type ExprKind uint8

const (
	// ExprVar is a variable reference.
	ExprVar ExprKind = iota
	// ExprConst is an integer constant.
	ExprConst
	// ExprRelational compares two operands.
	ExprRelational
	ExprBinary
	ExprUnary
)

func (k ExprKind) String() string {
	switch k {
	case ExprVar:
		return "var"
	case ExprConst:
		return "cnst"
	case ExprRelational:
		return "rexpr"
	case ExprBinary:
		return "bexpr"
	case ExprUnary:
		return "uexpr"
	default:
		return "unknown"
	}
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Pos     source.Pos
	Payload PayloadID
}

type RelOp uint8

const (
	RelLT RelOp = iota
	RelGT
	RelLE
	RelGE
	RelEQ
	RelNEQ
)

var relOpText = [...]string{"<", ">", "<=", ">=", "==", "!="}

func (op RelOp) String() string {
	if int(op) < len(relOpText) {
		return relOpText[op]
	}
	return "?"
}

// ParseRelOp maps an operator spelling to RelOp.
func ParseRelOp(s string) (RelOp, bool) {
	for i, text := range relOpText {
		if text == s {
			return RelOp(i), true
		}
	}
	return 0, false
}

type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
)

var binaryOpText = [...]string{"+", "-", "*", "/"}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

func ParseBinaryOp(s string) (BinaryOp, bool) {
	for i, text := range binaryOpText {
		if text == s {
			return BinaryOp(i), true
		}
	}
	return 0, false
}

type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota
)

func (op UnaryOp) String() string {
	if op == UnaryNeg {
		return "-"
	}
	return "?"
}

func ParseUnaryOp(s string) (UnaryOp, bool) {
	if s == "-" {
		return UnaryNeg, true
	}
	return 0, false
}

type VarExpr struct {
	Name string
}

type ConstExpr struct {
	Value int64
}

type RelationalExpr struct {
	Op  RelOp
	LHS ExprID
	RHS ExprID
}

type BinaryExpr struct {
	Op  BinaryOp
	LHS ExprID
	RHS ExprID
}

type UnaryExpr struct {
	Op      UnaryOp
	Operand ExprID
}

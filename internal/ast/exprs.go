package ast

import "minic/internal/source"

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena       *Arena[Expr]
	Vars        *Arena[VarExpr]
	Consts      *Arena[ConstExpr]
	Relationals *Arena[RelationalExpr]
	Binaries    *Arena[BinaryExpr]
	Unaries     *Arena[UnaryExpr]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using capHint as the initial capacity.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Exprs{
		Arena:       NewArena[Expr](capHint),
		Vars:        NewArena[VarExpr](capHint),
		Consts:      NewArena[ConstExpr](capHint),
		Relationals: NewArena[RelationalExpr](capHint),
		Binaries:    NewArena[BinaryExpr](capHint),
		Unaries:     NewArena[UnaryExpr](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, pos source.Pos, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Pos:     pos,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payloadOf(id ExprID, kind ExprKind) uint32 {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0
	}
	return uint32(expr.Payload)
}

// NewVar creates a variable reference.
func (e *Exprs) NewVar(pos source.Pos, name string) ExprID {
	payload := e.Vars.Allocate(VarExpr{Name: name})
	return e.new(ExprVar, pos, PayloadID(payload))
}

// Var returns the reference data, or nil when id is not a variable.
func (e *Exprs) Var(id ExprID) *VarExpr {
	return e.Vars.Get(e.payloadOf(id, ExprVar))
}

func (e *Exprs) NewConst(pos source.Pos, value int64) ExprID {
	payload := e.Consts.Allocate(ConstExpr{Value: value})
	return e.new(ExprConst, pos, PayloadID(payload))
}

func (e *Exprs) Const(id ExprID) *ConstExpr {
	return e.Consts.Get(e.payloadOf(id, ExprConst))
}

func (e *Exprs) NewRelational(pos source.Pos, op RelOp, lhs, rhs ExprID) ExprID {
	payload := e.Relationals.Allocate(RelationalExpr{Op: op, LHS: lhs, RHS: rhs})
	return e.new(ExprRelational, pos, PayloadID(payload))
}

func (e *Exprs) Relational(id ExprID) *RelationalExpr {
	return e.Relationals.Get(e.payloadOf(id, ExprRelational))
}

func (e *Exprs) NewBinary(pos source.Pos, op BinaryOp, lhs, rhs ExprID) ExprID {
	payload := e.Binaries.Allocate(BinaryExpr{Op: op, LHS: lhs, RHS: rhs})
	return e.new(ExprBinary, pos, PayloadID(payload))
}

func (e *Exprs) Binary(id ExprID) *BinaryExpr {
	return e.Binaries.Get(e.payloadOf(id, ExprBinary))
}

func (e *Exprs) NewUnary(pos source.Pos, op UnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(UnaryExpr{Op: op, Operand: operand})
	return e.new(ExprUnary, pos, PayloadID(payload))
}

func (e *Exprs) Unary(id ExprID) *UnaryExpr {
	return e.Unaries.Get(e.payloadOf(id, ExprUnary))
}

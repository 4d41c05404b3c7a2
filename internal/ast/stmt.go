package ast

import "minic/internal/source"

type StmtKind uint8

const (
	StmtCall StmtKind = iota
	StmtReturn
	StmtBlock
	StmtWhile
	StmtIf
	StmtAssign
	StmtDecl
)

func (k StmtKind) String() string {
	switch k {
	case StmtCall:
		return "call"
	case StmtReturn:
		return "return"
	case StmtBlock:
		return "block"
	case StmtWhile:
		return "while"
	case StmtIf:
		return "if"
	case StmtAssign:
		return "asgn"
	case StmtDecl:
		return "decl"
	default:
		return "unknown"
	}
}

type Stmt struct {
	Kind    StmtKind
	Pos     source.Pos
	Payload PayloadID
}

// CallStmt calls an extern routine with an optional single argument.
type CallStmt struct {
	Callee string
	Arg    ExprID
}

// ReturnStmt carries an optional result expression.
type ReturnStmt struct {
	Expr ExprID
}

type BlockStmt struct {
	Stmts []StmtID
}

type WhileStmt struct {
	Cond ExprID
	Body StmtID
}

// IfStmt has an optional Else branch.
type IfStmt struct {
	Cond ExprID
	Then StmtID
	Else StmtID
}

type AssignStmt struct {
	LHS ExprID
	RHS ExprID
}

// DeclStmt declares a local variable (`int x;`).
type DeclStmt struct {
	Name string
}

type Stmts struct {
	Arena   *Arena[Stmt]
	Calls   *Arena[CallStmt]
	Returns *Arena[ReturnStmt]
	Blocks  *Arena[BlockStmt]
	Whiles  *Arena[WhileStmt]
	Ifs     *Arena[IfStmt]
	Assigns *Arena[AssignStmt]
	Decls   *Arena[DeclStmt]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Calls:   NewArena[CallStmt](capHint),
		Returns: NewArena[ReturnStmt](capHint),
		Blocks:  NewArena[BlockStmt](capHint),
		Whiles:  NewArena[WhileStmt](capHint),
		Ifs:     NewArena[IfStmt](capHint),
		Assigns: NewArena[AssignStmt](capHint),
		Decls:   NewArena[DeclStmt](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, pos source.Pos, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Pos:     pos,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payloadOf(id StmtID, kind StmtKind) uint32 {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != kind {
		return 0
	}
	return uint32(stmt.Payload)
}

func (s *Stmts) NewCall(pos source.Pos, callee string, arg ExprID) StmtID {
	payload := s.Calls.Allocate(CallStmt{Callee: callee, Arg: arg})
	return s.new(StmtCall, pos, PayloadID(payload))
}

func (s *Stmts) Call(id StmtID) *CallStmt {
	return s.Calls.Get(s.payloadOf(id, StmtCall))
}

func (s *Stmts) NewReturn(pos source.Pos, expr ExprID) StmtID {
	payload := s.Returns.Allocate(ReturnStmt{Expr: expr})
	return s.new(StmtReturn, pos, PayloadID(payload))
}

func (s *Stmts) Return(id StmtID) *ReturnStmt {
	return s.Returns.Get(s.payloadOf(id, StmtReturn))
}

// NewBlock copies stmts so the caller may reuse its slice.
func (s *Stmts) NewBlock(pos source.Pos, stmts []StmtID) StmtID {
	payload := s.Blocks.Allocate(BlockStmt{Stmts: append([]StmtID(nil), stmts...)})
	return s.new(StmtBlock, pos, PayloadID(payload))
}

func (s *Stmts) Block(id StmtID) *BlockStmt {
	return s.Blocks.Get(s.payloadOf(id, StmtBlock))
}

func (s *Stmts) NewWhile(pos source.Pos, cond ExprID, body StmtID) StmtID {
	payload := s.Whiles.Allocate(WhileStmt{Cond: cond, Body: body})
	return s.new(StmtWhile, pos, PayloadID(payload))
}

func (s *Stmts) While(id StmtID) *WhileStmt {
	return s.Whiles.Get(s.payloadOf(id, StmtWhile))
}

func (s *Stmts) NewIf(pos source.Pos, cond ExprID, then, els StmtID) StmtID {
	payload := s.Ifs.Allocate(IfStmt{Cond: cond, Then: then, Else: els})
	return s.new(StmtIf, pos, PayloadID(payload))
}

func (s *Stmts) If(id StmtID) *IfStmt {
	return s.Ifs.Get(s.payloadOf(id, StmtIf))
}

func (s *Stmts) NewAssign(pos source.Pos, lhs, rhs ExprID) StmtID {
	payload := s.Assigns.Allocate(AssignStmt{LHS: lhs, RHS: rhs})
	return s.new(StmtAssign, pos, PayloadID(payload))
}

func (s *Stmts) Assign(id StmtID) *AssignStmt {
	return s.Assigns.Get(s.payloadOf(id, StmtAssign))
}

func (s *Stmts) NewDecl(pos source.Pos, name string) StmtID {
	payload := s.Decls.Allocate(DeclStmt{Name: name})
	return s.new(StmtDecl, pos, PayloadID(payload))
}

func (s *Stmts) Decl(id StmtID) *DeclStmt {
	return s.Decls.Get(s.payloadOf(id, StmtDecl))
}

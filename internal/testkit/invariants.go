package testkit

import (
	"fmt"

	"minic/internal/ast"
)

// CheckTreeInvariants runs a minimal set of structural invariants on a tree:
// 1) the root program exists
// 2) every referenced node exists and is referenced exactly once (the tree
//    is finite and acyclic, no node is shared)
// 3) required children are present (function body, loop condition, ...)
func CheckTreeInvariants(b *ast.Builder, root ast.ProgramID) error {
	if b == nil {
		return fmt.Errorf("nil builder")
	}
	prog := b.Program(root)
	if prog == nil {
		return fmt.Errorf("program node not found: id=%d", root)
	}
	c := checker{
		b:     b,
		items: make(map[ast.ItemID]bool),
		stmts: make(map[ast.StmtID]bool),
		exprs: make(map[ast.ExprID]bool),
	}
	for _, id := range prog.Externs {
		if err := c.item(id, ast.ItemExtern); err != nil {
			return err
		}
	}
	for _, id := range prog.Funcs {
		if err := c.item(id, ast.ItemFn); err != nil {
			return err
		}
	}
	return nil
}

type checker struct {
	b     *ast.Builder
	items map[ast.ItemID]bool
	stmts map[ast.StmtID]bool
	exprs map[ast.ExprID]bool
}

func (c *checker) item(id ast.ItemID, want ast.ItemKind) error {
	item := c.b.Items.Get(id)
	if item == nil {
		return fmt.Errorf("nil item for id=%d", id)
	}
	if item.Kind != want {
		return fmt.Errorf("item %d: expected %s, got %s", id, want, item.Kind)
	}
	if c.items[id] {
		return fmt.Errorf("item %d referenced twice", id)
	}
	c.items[id] = true
	if fn, ok := c.b.Items.Fn(id); ok {
		if !fn.Body.IsValid() {
			return fmt.Errorf("function %q has no body", fn.Name)
		}
		return c.stmt(fn.Body)
	}
	return nil
}

func (c *checker) stmt(id ast.StmtID) error {
	stmt := c.b.Stmts.Get(id)
	if stmt == nil {
		return fmt.Errorf("nil stmt for id=%d", id)
	}
	if c.stmts[id] {
		return fmt.Errorf("stmt %d referenced twice", id)
	}
	c.stmts[id] = true

	switch stmt.Kind {
	case ast.StmtCall:
		if arg := c.b.Stmts.Call(id).Arg; arg.IsValid() {
			return c.expr(arg)
		}
	case ast.StmtReturn:
		if e := c.b.Stmts.Return(id).Expr; e.IsValid() {
			return c.expr(e)
		}
	case ast.StmtBlock:
		for _, child := range c.b.Stmts.Block(id).Stmts {
			if err := c.stmt(child); err != nil {
				return err
			}
		}
	case ast.StmtWhile:
		loop := c.b.Stmts.While(id)
		if err := c.expr(loop.Cond); err != nil {
			return err
		}
		return c.stmt(loop.Body)
	case ast.StmtIf:
		cond := c.b.Stmts.If(id)
		if err := c.expr(cond.Cond); err != nil {
			return err
		}
		if err := c.stmt(cond.Then); err != nil {
			return err
		}
		if cond.Else.IsValid() {
			return c.stmt(cond.Else)
		}
	case ast.StmtAssign:
		asgn := c.b.Stmts.Assign(id)
		if err := c.expr(asgn.LHS); err != nil {
			return err
		}
		return c.expr(asgn.RHS)
	case ast.StmtDecl:
		if c.b.Stmts.Decl(id).Name == "" {
			return fmt.Errorf("stmt %d: declaration without a name", id)
		}
	}
	return nil
}

func (c *checker) expr(id ast.ExprID) error {
	expr := c.b.Exprs.Get(id)
	if expr == nil {
		return fmt.Errorf("nil expr for id=%d", id)
	}
	if c.exprs[id] {
		return fmt.Errorf("expr %d referenced twice", id)
	}
	c.exprs[id] = true

	switch expr.Kind {
	case ast.ExprVar:
		if c.b.Exprs.Var(id).Name == "" {
			return fmt.Errorf("expr %d: variable without a name", id)
		}
	case ast.ExprRelational:
		rel := c.b.Exprs.Relational(id)
		if err := c.expr(rel.LHS); err != nil {
			return err
		}
		return c.expr(rel.RHS)
	case ast.ExprBinary:
		bin := c.b.Exprs.Binary(id)
		if err := c.expr(bin.LHS); err != nil {
			return err
		}
		return c.expr(bin.RHS)
	case ast.ExprUnary:
		return c.expr(c.b.Exprs.Unary(id).Operand)
	}
	return nil
}

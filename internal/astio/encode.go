package astio

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"minic/internal/ast"
	"minic/internal/source"
)

// Encode writes the tree rooted at root in the requested format. An absent
// root is written as null.
func Encode(w io.Writer, b *ast.Builder, root ast.ProgramID, format Format) error {
	node := Raise(b, root)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(node); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewEncoder(w).Encode(node); err != nil {
			return fmt.Errorf("encode msgpack: %w", err)
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	return nil
}

// Raise converts ast nodes back into interchange form; it returns nil for an
// absent root.
func Raise(b *ast.Builder, root ast.ProgramID) *Node {
	prog := b.Program(root)
	if prog == nil {
		return nil
	}
	r := raiser{b: b}
	n := r.node(KindProgram, prog.Pos)
	for _, id := range prog.Externs {
		if ext, ok := b.Items.Extern(id); ok {
			e := r.node(KindExtern, b.Items.Get(id).Pos)
			e.Name = ext.Name
			n.Externs = append(n.Externs, e)
		}
	}
	for _, id := range prog.Funcs {
		if fn, ok := b.Items.Fn(id); ok {
			f := r.node(KindFunc, b.Items.Get(id).Pos)
			f.Name = fn.Name
			if fn.HasParam() {
				f.Param = r.node(KindVar, fn.ParamPos)
				f.Param.Name = fn.Param
			}
			f.Body = r.stmt(fn.Body)
			n.Funcs = append(n.Funcs, f)
		}
	}
	return n
}

type raiser struct {
	b *ast.Builder
}

func (r *raiser) node(kind string, pos source.Pos) *Node {
	return &Node{Kind: kind, Line: pos.Line, Col: pos.Col}
}

func (r *raiser) stmt(id ast.StmtID) *Node {
	stmt := r.b.Stmts.Get(id)
	if stmt == nil {
		return nil
	}
	switch stmt.Kind {
	case ast.StmtCall:
		call := r.b.Stmts.Call(id)
		n := r.node(KindCall, stmt.Pos)
		n.Name = call.Callee
		n.Arg = r.expr(call.Arg)
		return n
	case ast.StmtReturn:
		n := r.node(KindReturn, stmt.Pos)
		n.Expr = r.expr(r.b.Stmts.Return(id).Expr)
		return n
	case ast.StmtBlock:
		n := r.node(KindBlock, stmt.Pos)
		for _, child := range r.b.Stmts.Block(id).Stmts {
			n.Stmts = append(n.Stmts, r.stmt(child))
		}
		return n
	case ast.StmtWhile:
		loop := r.b.Stmts.While(id)
		n := r.node(KindWhile, stmt.Pos)
		n.Cond = r.expr(loop.Cond)
		n.Body = r.stmt(loop.Body)
		return n
	case ast.StmtIf:
		cond := r.b.Stmts.If(id)
		n := r.node(KindIf, stmt.Pos)
		n.Cond = r.expr(cond.Cond)
		n.Then = r.stmt(cond.Then)
		n.Else = r.stmt(cond.Else)
		return n
	case ast.StmtAssign:
		asgn := r.b.Stmts.Assign(id)
		n := r.node(KindAssign, stmt.Pos)
		n.LHS = r.expr(asgn.LHS)
		n.RHS = r.expr(asgn.RHS)
		return n
	case ast.StmtDecl:
		n := r.node(KindDecl, stmt.Pos)
		n.Name = r.b.Stmts.Decl(id).Name
		return n
	}
	return nil
}

func (r *raiser) expr(id ast.ExprID) *Node {
	expr := r.b.Exprs.Get(id)
	if expr == nil {
		return nil
	}
	switch expr.Kind {
	case ast.ExprVar:
		n := r.node(KindVar, expr.Pos)
		n.Name = r.b.Exprs.Var(id).Name
		return n
	case ast.ExprConst:
		n := r.node(KindConst, expr.Pos)
		value := r.b.Exprs.Const(id).Value
		n.Value = &value
		return n
	case ast.ExprRelational:
		rel := r.b.Exprs.Relational(id)
		n := r.node(KindRExpr, expr.Pos)
		n.Op = rel.Op.String()
		n.LHS, n.RHS = r.expr(rel.LHS), r.expr(rel.RHS)
		return n
	case ast.ExprBinary:
		bin := r.b.Exprs.Binary(id)
		n := r.node(KindBExpr, expr.Pos)
		n.Op = bin.Op.String()
		n.LHS, n.RHS = r.expr(bin.LHS), r.expr(bin.RHS)
		return n
	case ast.ExprUnary:
		un := r.b.Exprs.Unary(id)
		n := r.node(KindUExpr, expr.Pos)
		n.Op = un.Op.String()
		n.Expr = r.expr(un.Operand)
		return n
	}
	return nil
}

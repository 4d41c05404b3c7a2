package astio

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"minic/internal/ast"
	"minic/internal/source"
)

// Decode reads one tree document. An empty document or an explicit null
// yields a nil root and no error.
func Decode(r io.Reader, format Format) (*Node, error) {
	var root *Node
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&root)
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&root)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(&root)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	return root, nil
}

// Load decodes data and lowers it into an arena-backed tree. A nil root is
// returned as ast.NoProgramID together with an empty builder.
func Load(data []byte, format Format) (*ast.Builder, ast.ProgramID, error) {
	root, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, ast.NoProgramID, err
	}
	return Lower(root)
}

// Lower converts an interchange tree into ast nodes. Identifiers are
// normalised to NFC.
func Lower(root *Node) (*ast.Builder, ast.ProgramID, error) {
	b := ast.NewBuilder(ast.Hints{})
	if root == nil {
		return b, ast.NoProgramID, nil
	}
	l := lowerer{b: b}
	id, err := l.program(root)
	if err != nil {
		return nil, ast.NoProgramID, err
	}
	return b, id, nil
}

type lowerer struct {
	b *ast.Builder
}

func posOf(n *Node) source.Pos {
	return source.Pos{Line: n.Line, Col: n.Col}
}

func malformed(n *Node, format string, args ...any) error {
	return fmt.Errorf("%w: %s at %s: %s", ErrMalformed, n.Kind, posOf(n), fmt.Sprintf(format, args...))
}

func (l *lowerer) ident(n *Node) (string, error) {
	if n.Name == "" {
		return "", malformed(n, "missing name")
	}
	return norm.NFC.String(n.Name), nil
}

func (l *lowerer) program(n *Node) (ast.ProgramID, error) {
	if n.Kind != KindProgram {
		return ast.NoProgramID, fmt.Errorf("%w: root must be a %s, got %q", ErrMalformed, KindProgram, n.Kind)
	}
	externs := make([]ast.ItemID, 0, len(n.Externs))
	for _, child := range n.Externs {
		if child == nil || child.Kind != KindExtern {
			return ast.NoProgramID, malformed(n, "externs may only hold %s nodes", KindExtern)
		}
		name, err := l.ident(child)
		if err != nil {
			return ast.NoProgramID, err
		}
		externs = append(externs, l.b.Items.NewExtern(posOf(child), name))
	}
	funcs := make([]ast.ItemID, 0, len(n.Funcs))
	for _, child := range n.Funcs {
		id, err := l.fn(child)
		if err != nil {
			return ast.NoProgramID, err
		}
		funcs = append(funcs, id)
	}
	return l.b.NewProgram(posOf(n), externs, funcs), nil
}

func (l *lowerer) fn(n *Node) (ast.ItemID, error) {
	if n == nil || n.Kind != KindFunc {
		return ast.NoItemID, fmt.Errorf("%w: funcs may only hold %s nodes", ErrMalformed, KindFunc)
	}
	name, err := l.ident(n)
	if err != nil {
		return ast.NoItemID, err
	}
	var param string
	var paramPos source.Pos
	if n.Param != nil {
		if n.Param.Kind != KindVar {
			return ast.NoItemID, malformed(n, "param must be a %s, got %q", KindVar, n.Param.Kind)
		}
		if param, err = l.ident(n.Param); err != nil {
			return ast.NoItemID, err
		}
		paramPos = posOf(n.Param)
	}
	if n.Body == nil {
		return ast.NoItemID, malformed(n, "missing body")
	}
	body, err := l.stmt(n.Body)
	if err != nil {
		return ast.NoItemID, err
	}
	return l.b.Items.NewFn(posOf(n), name, param, paramPos, body), nil
}

func (l *lowerer) requiredStmt(parent, n *Node, field string) (ast.StmtID, error) {
	if n == nil {
		return ast.NoStmtID, malformed(parent, "missing %s", field)
	}
	return l.stmt(n)
}

func (l *lowerer) requiredExpr(parent, n *Node, field string) (ast.ExprID, error) {
	if n == nil {
		return ast.NoExprID, malformed(parent, "missing %s", field)
	}
	return l.expr(n)
}

func (l *lowerer) optionalExpr(n *Node) (ast.ExprID, error) {
	if n == nil {
		return ast.NoExprID, nil
	}
	return l.expr(n)
}

func (l *lowerer) stmt(n *Node) (ast.StmtID, error) {
	pos := posOf(n)
	switch n.Kind {
	case KindCall:
		if n.Name == "" {
			return ast.NoStmtID, malformed(n, "missing callee name")
		}
		arg, err := l.optionalExpr(n.Arg)
		if err != nil {
			return ast.NoStmtID, err
		}
		return l.b.Stmts.NewCall(pos, n.Name, arg), nil

	case KindReturn:
		expr, err := l.optionalExpr(n.Expr)
		if err != nil {
			return ast.NoStmtID, err
		}
		return l.b.Stmts.NewReturn(pos, expr), nil

	case KindBlock:
		stmts := make([]ast.StmtID, 0, len(n.Stmts))
		for _, child := range n.Stmts {
			if child == nil {
				return ast.NoStmtID, malformed(n, "null statement")
			}
			id, err := l.stmt(child)
			if err != nil {
				return ast.NoStmtID, err
			}
			stmts = append(stmts, id)
		}
		return l.b.Stmts.NewBlock(pos, stmts), nil

	case KindWhile:
		cond, err := l.requiredExpr(n, n.Cond, "cond")
		if err != nil {
			return ast.NoStmtID, err
		}
		body, err := l.requiredStmt(n, n.Body, "body")
		if err != nil {
			return ast.NoStmtID, err
		}
		return l.b.Stmts.NewWhile(pos, cond, body), nil

	case KindIf:
		cond, err := l.requiredExpr(n, n.Cond, "cond")
		if err != nil {
			return ast.NoStmtID, err
		}
		then, err := l.requiredStmt(n, n.Then, "then")
		if err != nil {
			return ast.NoStmtID, err
		}
		els := ast.NoStmtID
		if n.Else != nil {
			if els, err = l.stmt(n.Else); err != nil {
				return ast.NoStmtID, err
			}
		}
		return l.b.Stmts.NewIf(pos, cond, then, els), nil

	case KindAssign:
		lhs, err := l.requiredExpr(n, n.LHS, "lhs")
		if err != nil {
			return ast.NoStmtID, err
		}
		rhs, err := l.requiredExpr(n, n.RHS, "rhs")
		if err != nil {
			return ast.NoStmtID, err
		}
		return l.b.Stmts.NewAssign(pos, lhs, rhs), nil

	case KindDecl:
		name, err := l.ident(n)
		if err != nil {
			return ast.NoStmtID, err
		}
		return l.b.Stmts.NewDecl(pos, name), nil

	case KindVar, KindConst, KindRExpr, KindBExpr, KindUExpr:
		return ast.NoStmtID, malformed(n, "expression used as a statement")
	}
	return ast.NoStmtID, fmt.Errorf("%w: %q at %s", ErrUnknownKind, n.Kind, pos)
}

func (l *lowerer) expr(n *Node) (ast.ExprID, error) {
	pos := posOf(n)
	switch n.Kind {
	case KindVar:
		name, err := l.ident(n)
		if err != nil {
			return ast.NoExprID, err
		}
		return l.b.Exprs.NewVar(pos, name), nil

	case KindConst:
		if n.Value == nil {
			return ast.NoExprID, malformed(n, "missing value")
		}
		return l.b.Exprs.NewConst(pos, *n.Value), nil

	case KindRExpr:
		op, ok := ast.ParseRelOp(n.Op)
		if !ok {
			return ast.NoExprID, malformed(n, "unknown relational operator %q", n.Op)
		}
		lhs, rhs, err := l.operands(n)
		if err != nil {
			return ast.NoExprID, err
		}
		return l.b.Exprs.NewRelational(pos, op, lhs, rhs), nil

	case KindBExpr:
		op, ok := ast.ParseBinaryOp(n.Op)
		if !ok {
			return ast.NoExprID, malformed(n, "unknown binary operator %q", n.Op)
		}
		lhs, rhs, err := l.operands(n)
		if err != nil {
			return ast.NoExprID, err
		}
		return l.b.Exprs.NewBinary(pos, op, lhs, rhs), nil

	case KindUExpr:
		op, ok := ast.ParseUnaryOp(n.Op)
		if !ok {
			return ast.NoExprID, malformed(n, "unknown unary operator %q", n.Op)
		}
		operand, err := l.requiredExpr(n, n.Expr, "expr")
		if err != nil {
			return ast.NoExprID, err
		}
		return l.b.Exprs.NewUnary(pos, op, operand), nil

	case KindCall, KindReturn, KindBlock, KindWhile, KindIf, KindAssign, KindDecl:
		return ast.NoExprID, malformed(n, "statement used as an expression")
	}
	return ast.NoExprID, fmt.Errorf("%w: %q at %s", ErrUnknownKind, n.Kind, pos)
}

func (l *lowerer) operands(n *Node) (ast.ExprID, ast.ExprID, error) {
	lhs, err := l.requiredExpr(n, n.LHS, "lhs")
	if err != nil {
		return ast.NoExprID, ast.NoExprID, err
	}
	rhs, err := l.requiredExpr(n, n.RHS, "rhs")
	if err != nil {
		return ast.NoExprID, ast.NoExprID, err
	}
	return lhs, rhs, nil
}

package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"minic/internal/ast"
	"minic/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

func (n *treeNode) add(children ...*treeNode) {
	for _, c := range children {
		if c != nil {
			n.children = append(n.children, c)
		}
	}
}

func labelAt(pos source.Pos, format string, args ...any) string {
	label := fmt.Sprintf(format, args...)
	if pos.IsKnown() {
		label += " @" + pos.String()
	}
	return label
}

// Tree writes the syntax tree rooted at root using ├─/└─ guides, one node per
// line. An absent root prints "<empty>".
func Tree(w io.Writer, b *ast.Builder, root ast.ProgramID) error {
	prog := b.Program(root)
	if prog == nil {
		_, err := io.WriteString(w, "<empty>\n")
		return err
	}
	node := &treeNode{label: labelAt(prog.Pos, "program")}
	for _, id := range prog.Externs {
		node.add(buildItemTreeNode(b, id))
	}
	for _, id := range prog.Funcs {
		node.add(buildItemTreeNode(b, id))
	}

	var sb strings.Builder
	sb.WriteString(node.label)
	sb.WriteByte('\n')
	renderChildren(&sb, node, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func renderChildren(sb *strings.Builder, node *treeNode, prefix string) {
	for i, child := range node.children {
		last := i == len(node.children)-1
		sb.WriteString(prefix)
		if last {
			sb.WriteString("└─ ")
		} else {
			sb.WriteString("├─ ")
		}
		sb.WriteString(child.label)
		sb.WriteByte('\n')
		next := prefix + "│  "
		if last {
			next = prefix + "   "
		}
		renderChildren(sb, child, next)
	}
}

func buildItemTreeNode(b *ast.Builder, id ast.ItemID) *treeNode {
	item := b.Items.Get(id)
	if item == nil {
		return &treeNode{label: "<nil item>"}
	}
	if ext, ok := b.Items.Extern(id); ok {
		return &treeNode{label: labelAt(item.Pos, "extern %s", ext.Name)}
	}
	fn, ok := b.Items.Fn(id)
	if !ok {
		return &treeNode{label: fmt.Sprintf("<%s item>", item.Kind)}
	}
	node := &treeNode{label: labelAt(item.Pos, "func %s", fn.Name)}
	if fn.HasParam() {
		node.add(&treeNode{label: labelAt(fn.ParamPos, "param %s", fn.Param)})
	}
	node.add(buildStmtTreeNode(b, fn.Body))
	return node
}

func buildStmtTreeNode(b *ast.Builder, id ast.StmtID) *treeNode {
	stmt := b.Stmts.Get(id)
	if stmt == nil {
		return nil
	}
	node := &treeNode{label: labelAt(stmt.Pos, "%s", stmt.Kind)}
	switch stmt.Kind {
	case ast.StmtCall:
		call := b.Stmts.Call(id)
		node.label = labelAt(stmt.Pos, "call %s", call.Callee)
		node.add(buildExprTreeNode(b, call.Arg))
	case ast.StmtReturn:
		node.add(buildExprTreeNode(b, b.Stmts.Return(id).Expr))
	case ast.StmtBlock:
		for _, child := range b.Stmts.Block(id).Stmts {
			node.add(buildStmtTreeNode(b, child))
		}
	case ast.StmtWhile:
		loop := b.Stmts.While(id)
		node.add(buildExprTreeNode(b, loop.Cond), buildStmtTreeNode(b, loop.Body))
	case ast.StmtIf:
		cond := b.Stmts.If(id)
		node.add(buildExprTreeNode(b, cond.Cond), buildStmtTreeNode(b, cond.Then))
		if cond.Else.IsValid() {
			els := &treeNode{label: "else"}
			els.add(buildStmtTreeNode(b, cond.Else))
			node.add(els)
		}
	case ast.StmtAssign:
		asgn := b.Stmts.Assign(id)
		node.add(buildExprTreeNode(b, asgn.LHS), buildExprTreeNode(b, asgn.RHS))
	case ast.StmtDecl:
		node.label = labelAt(stmt.Pos, "decl %s", b.Stmts.Decl(id).Name)
	}
	return node
}

func buildExprTreeNode(b *ast.Builder, id ast.ExprID) *treeNode {
	expr := b.Exprs.Get(id)
	if expr == nil {
		return nil
	}
	switch expr.Kind {
	case ast.ExprVar:
		return &treeNode{label: labelAt(expr.Pos, "var %s", b.Exprs.Var(id).Name)}
	case ast.ExprConst:
		return &treeNode{label: labelAt(expr.Pos, "cnst %d", b.Exprs.Const(id).Value)}
	case ast.ExprRelational:
		rel := b.Exprs.Relational(id)
		node := &treeNode{label: labelAt(expr.Pos, "rexpr %s", rel.Op)}
		node.add(buildExprTreeNode(b, rel.LHS), buildExprTreeNode(b, rel.RHS))
		return node
	case ast.ExprBinary:
		bin := b.Exprs.Binary(id)
		node := &treeNode{label: labelAt(expr.Pos, "bexpr %s", bin.Op)}
		node.add(buildExprTreeNode(b, bin.LHS), buildExprTreeNode(b, bin.RHS))
		return node
	case ast.ExprUnary:
		un := b.Exprs.Unary(id)
		node := &treeNode{label: labelAt(expr.Pos, "uexpr %s", un.Op)}
		node.add(buildExprTreeNode(b, un.Operand))
		return node
	}
	return &treeNode{label: fmt.Sprintf("<%s expr>", expr.Kind)}
}

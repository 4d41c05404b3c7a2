package sema

import (
	"fmt"
	"strconv"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/source"
	"minic/internal/symbols"
	"minic/internal/trace"
)

type walkStats struct {
	decls    int
	refs     int
	maxDepth int
	errors   int
}

// walker owns the scope stack of one traversal. Every walk* method returns
// true when an error was reported in the visited subtree; siblings are always
// visited regardless.
type walker struct {
	builder  *ast.Builder
	reporter diag.Reporter
	tracer   trace.Tracer
	span     uint64
	scopes   *symbols.Stack
	stats    walkStats
}

func (w *walker) walkProgram(prog *ast.Program) bool {
	errorFound := false
	for _, id := range prog.Externs {
		errorFound = w.walkItem(id) || errorFound
	}
	for _, id := range prog.Funcs {
		errorFound = w.walkItem(id) || errorFound
	}
	return errorFound
}

func (w *walker) walkItem(id ast.ItemID) bool {
	item := w.builder.Items.Get(id)
	if item == nil {
		return false
	}
	switch item.Kind {
	case ast.ItemExtern:
		// prototypes declare no variables
		return false
	case ast.ItemFn:
		if fn, ok := w.builder.Items.Fn(id); ok && fn != nil {
			return w.walkFn(fn)
		}
	}
	return false
}

// walkFn opens one scope shared by the parameter and the statements of the
// body block: `f(x) { int x; }` is a redeclaration. Blocks nested inside the
// body get scopes of their own as usual.
func (w *walker) walkFn(fn *ast.FnItem) bool {
	errorFound := false
	w.enter(symbols.ScopeFunction, fn.Name)

	if fn.HasParam() {
		errorFound = w.declare(fn.Param, fn.ParamPos) || errorFound
	}

	if body := w.builder.Stmts.Block(fn.Body); body != nil {
		errorFound = w.walkStmtList(body.Stmts) || errorFound
	} else {
		errorFound = w.walkStmt(fn.Body) || errorFound
	}

	w.leave(fn.Name)
	return errorFound
}

func (w *walker) walkStmtList(stmts []ast.StmtID) bool {
	errorFound := false
	for _, id := range stmts {
		errorFound = w.walkStmt(id) || errorFound
	}
	return errorFound
}

func (w *walker) walkStmt(id ast.StmtID) bool {
	if !id.IsValid() {
		return false
	}
	stmt := w.builder.Stmts.Get(id)
	if stmt == nil {
		return false
	}

	errorFound := false
	switch stmt.Kind {
	case ast.StmtCall:
		if call := w.builder.Stmts.Call(id); call != nil && call.Arg.IsValid() {
			errorFound = w.walkExpr(call.Arg)
		}

	case ast.StmtReturn:
		if ret := w.builder.Stmts.Return(id); ret != nil {
			errorFound = w.walkExpr(ret.Expr)
		}

	case ast.StmtBlock:
		block := w.builder.Stmts.Block(id)
		if block == nil {
			return false
		}
		w.enter(symbols.ScopeBlock, stmt.Pos.String())
		errorFound = w.walkStmtList(block.Stmts)
		w.leave(stmt.Pos.String())

	case ast.StmtWhile:
		if loop := w.builder.Stmts.While(id); loop != nil {
			errorFound = w.walkExpr(loop.Cond) || errorFound
			errorFound = w.walkStmt(loop.Body) || errorFound
		}

	case ast.StmtIf:
		if cond := w.builder.Stmts.If(id); cond != nil {
			errorFound = w.walkExpr(cond.Cond) || errorFound
			errorFound = w.walkStmt(cond.Then) || errorFound
			if cond.Else.IsValid() {
				errorFound = w.walkStmt(cond.Else) || errorFound
			}
		}

	case ast.StmtAssign:
		if asgn := w.builder.Stmts.Assign(id); asgn != nil {
			errorFound = w.walkExpr(asgn.LHS) || errorFound
			errorFound = w.walkExpr(asgn.RHS) || errorFound
		}

	case ast.StmtDecl:
		if decl := w.builder.Stmts.Decl(id); decl != nil {
			errorFound = w.declare(decl.Name, stmt.Pos)
		}
	}
	return errorFound
}

func (w *walker) walkExpr(id ast.ExprID) bool {
	if !id.IsValid() {
		return false
	}
	expr := w.builder.Exprs.Get(id)
	if expr == nil {
		return false
	}

	errorFound := false
	switch expr.Kind {
	case ast.ExprVar:
		if ref := w.builder.Exprs.Var(id); ref != nil {
			errorFound = w.resolve(ref.Name, expr.Pos)
		}

	case ast.ExprConst:
		// terminal

	case ast.ExprRelational:
		if rel := w.builder.Exprs.Relational(id); rel != nil {
			errorFound = w.walkExpr(rel.LHS) || errorFound
			errorFound = w.walkExpr(rel.RHS) || errorFound
		}

	case ast.ExprBinary:
		if bin := w.builder.Exprs.Binary(id); bin != nil {
			errorFound = w.walkExpr(bin.LHS) || errorFound
			errorFound = w.walkExpr(bin.RHS) || errorFound
		}

	case ast.ExprUnary:
		if un := w.builder.Exprs.Unary(id); un != nil {
			errorFound = w.walkExpr(un.Operand)
		}
	}
	return errorFound
}

// declare inserts name into the innermost scope and reports a redeclaration
// when it is already there. The first declaration is kept.
func (w *walker) declare(name string, pos source.Pos) bool {
	w.stats.decls++
	if w.scopes.DeclareAt(name, pos) {
		return false
	}
	w.stats.errors++
	b := diag.ReportError(w.reporter, diag.SemaRedeclaredVariable, pos,
		fmt.Sprintf("redeclared variable '%s'", name))
	if prev, ok := w.scopes.Resolve(name); ok && prev.IsKnown() {
		b.WithNote(prev, fmt.Sprintf("previous declaration of '%s' is here", name))
	}
	b.Emit()
	return true
}

func (w *walker) resolve(name string, pos source.Pos) bool {
	w.stats.refs++
	if w.scopes.IsDeclared(name) {
		return false
	}
	w.stats.errors++
	diag.ReportError(w.reporter, diag.SemaUndeclaredVariable, pos,
		fmt.Sprintf("undeclared variable '%s'", name)).Emit()
	return true
}

func (w *walker) enter(kind symbols.ScopeKind, owner string) {
	w.scopes.Push(kind)
	depth := w.scopes.Depth()
	if depth > w.stats.maxDepth {
		w.stats.maxDepth = depth
	}
	if w.tracer.Level().ShouldEmit(trace.ScopeNode) {
		trace.Point(w.tracer, trace.ScopeNode, "scope.push", owner, w.span, map[string]string{
			"kind":  kind.String(),
			"depth": strconv.Itoa(depth),
		})
	}
}

func (w *walker) leave(owner string) {
	kind := w.scopes.Kind()
	w.scopes.Pop()
	if w.tracer.Level().ShouldEmit(trace.ScopeNode) {
		trace.Point(w.tracer, trace.ScopeNode, "scope.pop", owner, w.span, map[string]string{
			"kind":  kind.String(),
			"depth": strconv.Itoa(w.scopes.Depth()),
		})
	}
}

package sema

import (
	"bytes"
	"strings"
	"testing"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/source"
	"minic/internal/trace"
)

// tb is a tiny tree builder for tests.
type tb struct {
	b *ast.Builder
}

func newTB() *tb { return &tb{b: ast.NewBuilder(ast.Hints{})} }

func (t *tb) v(name string) ast.ExprID { return t.b.Exprs.NewVar(source.Pos{}, name) }
func (t *tb) c(value int64) ast.ExprID { return t.b.Exprs.NewConst(source.Pos{}, value) }
func (t *tb) decl(name string) ast.StmtID { return t.b.Stmts.NewDecl(source.Pos{}, name) }
func (t *tb) ret(e ast.ExprID) ast.StmtID { return t.b.Stmts.NewReturn(source.Pos{}, e) }
func (t *tb) block(s ...ast.StmtID) ast.StmtID { return t.b.Stmts.NewBlock(source.Pos{}, s) }
func (t *tb) asgn(lhs, rhs ast.ExprID) ast.StmtID {
	return t.b.Stmts.NewAssign(source.Pos{}, lhs, rhs)
}
func (t *tb) ifElse(cond ast.ExprID, then, els ast.StmtID) ast.StmtID {
	return t.b.Stmts.NewIf(source.Pos{}, cond, then, els)
}

func (t *tb) program(param string, body ast.StmtID) ast.ProgramID {
	printFn := t.b.Items.NewExtern(source.Pos{}, "print")
	read := t.b.Items.NewExtern(source.Pos{}, "read")
	fn := t.b.Items.NewFn(source.Pos{}, "f", param, source.Pos{}, body)
	return t.b.NewProgram(source.Pos{}, []ast.ItemID{printFn, read}, []ast.ItemID{fn})
}

func run(t *testing.T, b *ast.Builder, root ast.ProgramID) (bool, string) {
	t.Helper()
	var out strings.Builder
	errorFound := Analyze(b, root, Options{Reporter: diag.StreamReporter{W: &out}})
	return errorFound, out.String()
}

func TestScenarios(t *testing.T) {
	cases := []struct {
		name  string
		build func(t *tb) ast.ProgramID
		fail  bool
		out   string
	}{
		{
			// f(x) { int x; return x; }
			name: "param redeclared in body",
			build: func(t *tb) ast.ProgramID {
				return t.program("x", t.block(t.decl("x"), t.ret(t.v("x"))))
			},
			fail: true,
			out:  "Error: redeclared variable 'x'\n",
		},
		{
			// f() { { int y; } return y; }
			name: "name dies with its block",
			build: func(t *tb) ast.ProgramID {
				return t.program("", t.block(t.block(t.decl("y")), t.ret(t.v("y"))))
			},
			fail: true,
			out:  "Error: undeclared variable 'y'\n",
		},
		{
			// f() { int x; x = 1; return x; }
			name: "declare assign return",
			build: func(t *tb) ast.ProgramID {
				return t.program("", t.block(t.decl("x"), t.asgn(t.v("x"), t.c(1)), t.ret(t.v("x"))))
			},
		},
		{
			// f(x) { if (x) { int y; y = 1; } else { int y; y = 2; } return x; }
			name: "sibling blocks may reuse a name",
			build: func(t *tb) ast.ProgramID {
				then := t.block(t.decl("y"), t.asgn(t.v("y"), t.c(1)))
				els := t.block(t.decl("y"), t.asgn(t.v("y"), t.c(2)))
				return t.program("x", t.block(t.ifElse(t.v("x"), then, els), t.ret(t.v("x"))))
			},
		},
		{
			// f(x) { { int x; } return x; }
			name: "nested block in body gets its own scope",
			build: func(t *tb) ast.ProgramID {
				return t.program("x", t.block(t.block(t.decl("x")), t.ret(t.v("x"))))
			},
		},
		{
			// f() { int a; { a = 1; } return a; }
			name: "outer name visible in inner block",
			build: func(t *tb) ast.ProgramID {
				return t.program("", t.block(t.decl("a"), t.block(t.asgn(t.v("a"), t.c(1))), t.ret(t.v("a"))))
			},
		},
		{
			// f() { int a; int a; int a; return 0; }
			name: "each duplicate is reported",
			build: func(t *tb) ast.ProgramID {
				return t.program("", t.block(t.decl("a"), t.decl("a"), t.decl("a"), t.ret(t.c(0))))
			},
			fail: true,
			out:  "Error: redeclared variable 'a'\nError: redeclared variable 'a'\n",
		},
		{
			// f() { b = c; return d; }
			name: "all errors are collected",
			build: func(t *tb) ast.ProgramID {
				return t.program("", t.block(t.asgn(t.v("b"), t.v("c")), t.ret(t.v("d"))))
			},
			fail: true,
			out: "Error: undeclared variable 'b'\n" +
				"Error: undeclared variable 'c'\n" +
				"Error: undeclared variable 'd'\n",
		},
		{
			// f() { int X; return x; }
			name: "names are case sensitive",
			build: func(t *tb) ast.ProgramID {
				return t.program("", t.block(t.decl("X"), t.ret(t.v("x"))))
			},
			fail: true,
			out:  "Error: undeclared variable 'x'\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tree := newTB()
			root := tc.build(tree)
			fail, out := run(t, tree.b, root)
			if fail != tc.fail {
				t.Fatalf("errorFound = %v, want %v (output %q)", fail, tc.fail, out)
			}
			if out != tc.out {
				t.Fatalf("unexpected diagnostics:\nwant:\n%s\ngot:\n%s", tc.out, out)
			}
		})
	}
}

func TestEmptyTree(t *testing.T) {
	fail, out := run(t, nil, ast.NoProgramID)
	if !fail {
		t.Fatalf("expected failure for an absent root")
	}
	if out != "Error: AST is empty\n" {
		t.Fatalf("unexpected output %q", out)
	}

	b := ast.NewBuilder(ast.Hints{})
	if fail, out = run(t, b, ast.NoProgramID); !fail || out != "Error: AST is empty\n" {
		t.Fatalf("unexpected result %v %q", fail, out)
	}
}

func TestNoNamesNoDiagnostics(t *testing.T) {
	// f() { print(1 + -2); while (3 < 4) { read(); } if (5 == 5) return 6; return 7 * 8; }
	tree := newTB()
	b := tree.b
	call := b.Stmts.NewCall(source.Pos{}, "print",
		b.Exprs.NewBinary(source.Pos{}, ast.BinAdd, tree.c(1), b.Exprs.NewUnary(source.Pos{}, ast.UnaryNeg, tree.c(2))))
	loop := b.Stmts.NewWhile(source.Pos{}, b.Exprs.NewRelational(source.Pos{}, ast.RelLT, tree.c(3), tree.c(4)),
		tree.block(b.Stmts.NewCall(source.Pos{}, "read", ast.NoExprID)))
	cond := tree.ifElse(b.Exprs.NewRelational(source.Pos{}, ast.RelEQ, tree.c(5), tree.c(5)), tree.ret(tree.c(6)), ast.NoStmtID)
	root := tree.program("", tree.block(call, loop, cond,
		tree.ret(b.Exprs.NewBinary(source.Pos{}, ast.BinMul, tree.c(7), tree.c(8)))))

	if fail, out := run(t, b, root); fail || out != "" {
		t.Fatalf("expected a clean pass, got %v %q", fail, out)
	}
}

func TestWhileBodyBlockIsScoped(t *testing.T) {
	// f(n) { while (n > 0) { int i; i = n; } return i; }
	tree := newTB()
	b := tree.b
	loop := b.Stmts.NewWhile(source.Pos{}, b.Exprs.NewRelational(source.Pos{}, ast.RelGT, tree.v("n"), tree.c(0)),
		tree.block(tree.decl("i"), tree.asgn(tree.v("i"), tree.v("n"))))
	root := tree.program("n", tree.block(loop, tree.ret(tree.v("i"))))

	fail, out := run(t, b, root)
	if !fail || out != "Error: undeclared variable 'i'\n" {
		t.Fatalf("unexpected result %v %q", fail, out)
	}
}

func TestExpressionsAreWalked(t *testing.T) {
	// f() { print(-(a + (b < c))); }
	tree := newTB()
	b := tree.b
	rel := b.Exprs.NewRelational(source.Pos{}, ast.RelLT, tree.v("b"), tree.v("c"))
	sum := b.Exprs.NewBinary(source.Pos{}, ast.BinAdd, tree.v("a"), rel)
	call := b.Stmts.NewCall(source.Pos{}, "print", b.Exprs.NewUnary(source.Pos{}, ast.UnaryNeg, sum))
	root := tree.program("", tree.block(call))

	fail, out := run(t, b, root)
	want := "Error: undeclared variable 'a'\nError: undeclared variable 'b'\nError: undeclared variable 'c'\n"
	if !fail || out != want {
		t.Fatalf("unexpected result %v %q", fail, out)
	}
}

func TestNonBlockBodyUsesFunctionScope(t *testing.T) {
	// f(x) return x;
	tree := newTB()
	root := tree.program("x", tree.ret(tree.v("x")))
	if fail, out := run(t, tree.b, root); fail || out != "" {
		t.Fatalf("unexpected result %v %q", fail, out)
	}
}

func TestRedeclarationNotePointsAtOriginal(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	first := b.Stmts.NewDecl(source.Pos{Line: 2, Col: 5}, "k")
	second := b.Stmts.NewDecl(source.Pos{Line: 3, Col: 5}, "k")
	body := b.Stmts.NewBlock(source.Pos{Line: 1, Col: 10}, []ast.StmtID{first, second})
	fn := b.Items.NewFn(source.Pos{Line: 1, Col: 1}, "f", "", source.Pos{}, body)
	root := b.NewProgram(source.Pos{}, nil, []ast.ItemID{fn})

	bag := diag.NewBag(0)
	if !Analyze(b, root, Options{Reporter: diag.BagReporter{Bag: bag}}) {
		t.Fatalf("expected failure")
	}
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.SemaRedeclaredVariable || d.Primary.Line != 3 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if len(d.Notes) != 1 || d.Notes[0].Pos.Line != 2 {
		t.Fatalf("expected a note at line 2, got %+v", d.Notes)
	}
}

func TestTraceScopeEvents(t *testing.T) {
	tree := newTB()
	root := tree.program("x", tree.block(tree.block(tree.decl("y")), tree.ret(tree.v("x"))))

	var buf bytes.Buffer
	tracer := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	if Analyze(tree.b, root, Options{Reporter: diag.NopReporter{}, Tracer: tracer}) {
		t.Fatalf("unexpected failure")
	}

	out := buf.String()
	if got := strings.Count(out, "scope.push"); got != 2 {
		t.Fatalf("expected 2 pushes, got %d:\n%s", got, out)
	}
	if got := strings.Count(out, "scope.pop"); got != 2 {
		t.Fatalf("expected 2 pops, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "max_depth=2") {
		t.Fatalf("expected max_depth=2 in:\n%s", out)
	}
}

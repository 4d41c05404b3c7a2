package testkit

import (
	"strings"
	"testing"

	"minic/internal/ast"
	"minic/internal/source"
)

func TestCheckTreeInvariantsAcceptsTree(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	x := b.Exprs.NewVar(source.Pos{}, "x")
	body := b.Stmts.NewBlock(source.Pos{}, []ast.StmtID{b.Stmts.NewReturn(source.Pos{}, x)})
	fn := b.Items.NewFn(source.Pos{}, "f", "x", source.Pos{}, body)
	root := b.NewProgram(source.Pos{}, nil, []ast.ItemID{fn})

	if err := CheckTreeInvariants(b, root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckTreeInvariantsRejectsSharing(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	x := b.Exprs.NewVar(source.Pos{}, "x")
	asgn := b.Stmts.NewAssign(source.Pos{}, x, x)
	body := b.Stmts.NewBlock(source.Pos{}, []ast.StmtID{asgn})
	fn := b.Items.NewFn(source.Pos{}, "f", "", source.Pos{}, body)
	root := b.NewProgram(source.Pos{}, nil, []ast.ItemID{fn})

	err := CheckTreeInvariants(b, root)
	if err == nil || !strings.Contains(err.Error(), "referenced twice") {
		t.Fatalf("expected sharing to be rejected, got %v", err)
	}
}

func TestCheckTreeInvariantsMissingRoot(t *testing.T) {
	if err := CheckTreeInvariants(ast.NewBuilder(ast.Hints{}), ast.NoProgramID); err == nil {
		t.Fatalf("expected error for a missing program")
	}
}

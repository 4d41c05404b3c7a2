package ast

import "minic/internal/source"

type Hints struct{ Programs, Items, Stmts, Exprs uint }

// Builder owns every node of a tree. Nodes reference each other by ID only,
// so dropping the Builder releases the whole tree.
type Builder struct {
	Programs *Programs
	Items    *Items
	Stmts    *Stmts
	Exprs    *Exprs
}

func NewBuilder(hints Hints) *Builder {
	if hints.Programs == 0 {
		hints.Programs = 1
	}
	if hints.Items == 0 {
		hints.Items = 1 << 4
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 6
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 6
	}
	return &Builder{
		Programs: NewPrograms(hints.Programs),
		Items:    NewItems(hints.Items),
		Stmts:    NewStmts(hints.Stmts),
		Exprs:    NewExprs(hints.Exprs),
	}
}

func (b *Builder) NewProgram(pos source.Pos, externs, funcs []ItemID) ProgramID {
	return b.Programs.New(pos, externs, funcs)
}

// Program returns nil for an absent root.
func (b *Builder) Program(id ProgramID) *Program {
	if b == nil {
		return nil
	}
	return b.Programs.Get(id)
}

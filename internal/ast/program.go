package ast

import "minic/internal/source"

// Program is the root of a compilation unit: extern prototypes followed by
// function definitions, in source order.
type Program struct {
	Pos     source.Pos
	Externs []ItemID
	Funcs   []ItemID
}

type Programs struct {
	Arena *Arena[Program]
}

func NewPrograms(capHint uint) *Programs {
	return &Programs{Arena: NewArena[Program](capHint)}
}

func (p *Programs) New(pos source.Pos, externs, funcs []ItemID) ProgramID {
	return ProgramID(p.Arena.Allocate(Program{
		Pos:     pos,
		Externs: append([]ItemID(nil), externs...),
		Funcs:   append([]ItemID(nil), funcs...),
	}))
}

func (p *Programs) Get(id ProgramID) *Program {
	return p.Arena.Get(uint32(id))
}

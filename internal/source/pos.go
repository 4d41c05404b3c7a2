package source

import "fmt"

// Pos is a 1-based line/column pair reported by the parser.
// The zero value means the position is unknown.
type Pos struct {
	Line uint32
	Col  uint32
}

func (p Pos) IsKnown() bool {
	return p.Line != 0
}

func (p Pos) String() string {
	if !p.IsKnown() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

package ast

import "minic/internal/source"

// ItemKind enumerates top-level declarations of a program.
type ItemKind uint8

const (
	ItemExtern ItemKind = iota
	ItemFn
)

func (k ItemKind) String() string {
	switch k {
	case ItemExtern:
		return "extern"
	case ItemFn:
		return "func"
	default:
		return "unknown"
	}
}

type Item struct {
	Kind    ItemKind
	Pos     source.Pos
	Payload PayloadID
}

// ExternItem is a prototype of a library routine (print, read).
type ExternItem struct {
	Name string
}

// FnItem is a function definition. MiniC functions take at most one parameter;
// an empty Param means the function has none.
type FnItem struct {
	Name     string
	Param    string
	ParamPos source.Pos
	Body     StmtID
}

func (f *FnItem) HasParam() bool {
	return f != nil && f.Param != ""
}

type Items struct {
	Arena   *Arena[Item]
	Externs *Arena[ExternItem]
	Fns     *Arena[FnItem]
}

func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 4
	}
	return &Items{
		Arena:   NewArena[Item](capHint),
		Externs: NewArena[ExternItem](capHint),
		Fns:     NewArena[FnItem](capHint),
	}
}

func (i *Items) new(kind ItemKind, pos source.Pos, payload PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Pos:     pos,
		Payload: payload,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

// NewExtern creates an extern declaration.
func (i *Items) NewExtern(pos source.Pos, name string) ItemID {
	payload := i.Externs.Allocate(ExternItem{Name: name})
	return i.new(ItemExtern, pos, PayloadID(payload))
}

// Extern returns the extern payload for id.
func (i *Items) Extern(id ItemID) (*ExternItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemExtern {
		return nil, false
	}
	return i.Externs.Get(uint32(item.Payload)), true
}

// NewFn creates a function definition. Pass an empty param for a
// parameterless function.
func (i *Items) NewFn(pos source.Pos, name, param string, paramPos source.Pos, body StmtID) ItemID {
	payload := i.Fns.Allocate(FnItem{
		Name:     name,
		Param:    param,
		ParamPos: paramPos,
		Body:     body,
	})
	return i.new(ItemFn, pos, PayloadID(payload))
}

// Fn returns the function payload for id.
func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemFn {
		return nil, false
	}
	return i.Fns.Get(uint32(item.Payload)), true
}

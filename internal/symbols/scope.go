package symbols

import "minic/internal/source"

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeFunction           // parameter + function top-level block, merged
	ScopeBlock              // nested `{ ... }`
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope is the set of names declared directly in one lexical region.
// Names are compared byte-for-byte, so lookups are case-sensitive.
type Scope struct {
	Kind  ScopeKind
	names map[string]source.Pos
}

func newScope(kind ScopeKind) Scope {
	return Scope{Kind: kind, names: make(map[string]source.Pos)}
}

// insert reports whether name was added; a name already present is left as is.
func (s *Scope) insert(name string, pos source.Pos) bool {
	if _, ok := s.names[name]; ok {
		return false
	}
	s.names[name] = pos
	return true
}

func (s *Scope) lookup(name string) (source.Pos, bool) {
	pos, ok := s.names[name]
	return pos, ok
}

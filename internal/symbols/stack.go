package symbols

import (
	"fmt"

	"minic/internal/source"
)

// Stack is the living stack of scopes visible at the current point of a
// traversal. The last element is the innermost scope. A Stack belongs to a
// single traversal and is not safe for concurrent use.
type Stack struct {
	scopes []Scope
}

func NewStack() *Stack {
	return &Stack{scopes: make([]Scope, 0, 8)}
}

// Push opens a new empty innermost scope.
func (s *Stack) Push(kind ScopeKind) {
	s.scopes = append(s.scopes, newScope(kind))
}

// Pop discards the innermost scope together with every name declared in it.
// Popping an empty stack is a bug in the caller and panics.
func (s *Stack) Pop() {
	if len(s.scopes) == 0 {
		panic(fmt.Errorf("symbols: pop on empty scope stack"))
	}
	s.scopes[len(s.scopes)-1] = Scope{}
	s.scopes = s.scopes[:len(s.scopes)-1]
}

// Declare inserts name into the innermost scope. It returns false, leaving
// the scope untouched, when the name is already declared in that same scope.
// Outer scopes are not consulted: shadowing is legal.
func (s *Stack) Declare(name string) bool {
	return s.DeclareAt(name, source.Pos{})
}

// DeclareAt is Declare that also remembers where the name was declared.
func (s *Stack) DeclareAt(name string, pos source.Pos) bool {
	if len(s.scopes) == 0 {
		panic(fmt.Errorf("symbols: declare %q outside of any scope", name))
	}
	return s.scopes[len(s.scopes)-1].insert(name, pos)
}

// IsDeclared searches from the innermost scope outwards.
func (s *Stack) IsDeclared(name string) bool {
	_, ok := s.Resolve(name)
	return ok
}

// Resolve returns the position of the visible declaration of name, i.e. the
// one in the innermost scope that declares it.
func (s *Stack) Resolve(name string) (source.Pos, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if pos, ok := s.scopes[i].lookup(name); ok {
			return pos, true
		}
	}
	return source.Pos{}, false
}

// Depth equals the current lexical nesting depth.
func (s *Stack) Depth() int {
	return len(s.scopes)
}

// Kind returns the kind of the innermost scope, or ScopeInvalid when empty.
func (s *Stack) Kind() ScopeKind {
	if len(s.scopes) == 0 {
		return ScopeInvalid
	}
	return s.scopes[len(s.scopes)-1].Kind
}

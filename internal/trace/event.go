package trace

import "time"

// Kind tells span boundaries from instant points.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope orders events from the whole run (ScopeDriver) down to single
// syntax tree nodes (ScopeNode).
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // check_files, one command invocation
	ScopePass                    // decode, sema
	ScopeFile                    // check_file
	ScopeNode                    // scope.push, scope.pop
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeFile:
		return "file"
	case ScopeNode:
		return "node"
	default:
		return "unknown"
	}
}

// Extra keys shared by spans.
const (
	StatusKey    = "status"
	StatusFailed = "failed"
)

// Event is one line of trace output.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer when written
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for a root span
	Name     string // "sema", "check_file", "scope.push", ...
	Detail   string
	Extra    map[string]string
}

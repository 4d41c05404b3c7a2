package trace

import "fmt"

// Level selects how much of a check run is traced.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // ends of failed spans: files and sema passes that found errors
	LevelPhase        // check_files and sema/decode pass spans
	LevelDetail       // plus one span per tree file
	LevelDebug        // plus scope push/pop inside the walker
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelPhase:
		return "phase"
	case LevelDetail:
		return "detail"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel accepts off|error|phase|detail|debug in lower or upper case.
// The empty string means off.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "off", "OFF", "":
		return LevelOff, nil
	case "error", "ERROR":
		return LevelError, nil
	case "phase", "PHASE":
		return LevelPhase, nil
	case "detail", "DETAIL":
		return LevelDetail, nil
	case "debug", "DEBUG":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
	}
}

// ShouldEmit reports whether span begins and points of scope are written.
// LevelError writes none of them; see Accepts.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePass
	case LevelDetail:
		return scope <= ScopeFile
	case LevelDebug:
		return true
	}
	return false
}

// tracks reports whether Begin has to open a live span for scope. At
// LevelError spans are kept silently so a failing End can still be written.
func (l Level) tracks(scope Scope) bool {
	return l.ShouldEmit(scope) || (l == LevelError && scope < ScopeNode)
}

// Accepts is the final filter applied by a tracer to every event.
func (l Level) Accepts(ev *Event) bool {
	if l == LevelError {
		return ev.Kind == KindSpanEnd && ev.Extra[StatusKey] == StatusFailed
	}
	return l.ShouldEmit(ev.Scope)
}

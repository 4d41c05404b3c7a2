package sema

import (
	"fmt"
	"strconv"

	"minic/internal/ast"
	"minic/internal/diag"
	"minic/internal/source"
	"minic/internal/symbols"
	"minic/internal/trace"
)

// Options configure a scope-checking pass.
type Options struct {
	Reporter diag.Reporter
	Tracer   trace.Tracer
	// ParentSpan links the pass span to the caller's trace span.
	ParentSpan uint64
}

// Analyze verifies lexical scoping of the program rooted at root: every
// variable reference must resolve to a visible declaration and no name may be
// declared twice in the same scope. Every violation is reported through
// opts.Reporter and the traversal continues; the result is true when at least
// one error was found. An absent root reports "AST is empty" and returns true
// without traversal.
//
// The builder is only read.
func Analyze(builder *ast.Builder, root ast.ProgramID, opts Options) bool {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}

	prog := builder.Program(root)
	if prog == nil {
		diag.ReportError(reporter, diag.SemaEmptyTree, source.Pos{}, "AST is empty").Emit()
		return true
	}

	span := trace.Begin(tracer, trace.ScopePass, "sema", opts.ParentSpan)
	w := walker{
		builder:  builder,
		reporter: reporter,
		tracer:   tracer,
		span:     span.ID(),
		scopes:   symbols.NewStack(),
	}
	errorFound := w.walkProgram(prog)
	if depth := w.scopes.Depth(); depth != 0 {
		panic(fmt.Errorf("sema: scope stack not balanced after traversal, depth=%d", depth))
	}

	span.WithExtra("decls", strconv.Itoa(w.stats.decls)).
		WithExtra("refs", strconv.Itoa(w.stats.refs)).
		WithExtra("max_depth", strconv.Itoa(w.stats.maxDepth)).
		WithExtra("errors", strconv.Itoa(w.stats.errors))
	if errorFound {
		span.Fail("failed")
	} else {
		span.End("ok")
	}
	return errorFound
}

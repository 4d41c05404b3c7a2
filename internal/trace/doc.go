// Package trace provides the tracing subsystem of the minic front end. It is
// the repository's logging layer: drivers and passes emit begin/end spans and
// point events that a Tracer writes as text or NDJSON.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	minic check --trace=- --trace-level=phase prog.json
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Ends of failed spans (status=failed), nothing else
//   - LevelPhase: Driver and pass boundaries
//   - LevelDetail: Per-file events
//   - LevelDebug: Everything including scope push/pop inside the walker
//
// # Scopes
//
//   - ScopeDriver: Top-level CLI operations
//   - ScopePass: decode, sema
//   - ScopeFile: per tree file
//   - ScopeNode: syntax tree level
//
// # Context Propagation
//
// The active Tracer travels in a context.Context (WithTracer / FromContext).
// When no tracer is attached FromContext returns Nop, so emitting is always
// safe.
package trace

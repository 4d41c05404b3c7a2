// Package diag defines the diagnostic model shared by the analysis passes.
//
// # Purpose
//
//   - Provide small, deterministic records that capture findings produced by
//     the tree decoder and the scope checker.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag performs no formatting beyond the fixed stream line
// ("Error: undeclared variable 'x'"). Richer rendering lives in
// internal/diagfmt.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text, e.g. "redeclared variable 'x'".
//   - Primary – the source.Pos reported by the parser, zero when unknown.
//   - Notes – optional secondary positions/messages for additional context.
//
// # Emitting diagnostics
//
// Phases report through a diag.Reporter. StreamReporter prints each
// diagnostic immediately, BagReporter collects into a bounded Bag and
// MultiReporter fans out to several reporters. Reporting never fails and
// never stops the producer: every violation found in a pass is reported, in
// traversal order, without deduplication.
package diag

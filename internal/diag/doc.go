// Package diag defines the engine-side diagnostic model shared by the
// lexer, parser and semantic passes.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: compact numeric identifier with a stable string form (codes.go).
//   - Message: short human oriented text.
//   - Primary: the source.Span pointing at the issue.
//   - Notes: optional secondary spans, e.g. "previous declaration here".
//     A note may point into a different unit than the primary span.
//
// # Emitting diagnostics
//
// Phases emit through a Reporter. ReportError/ReportWarning return a
// ReportBuilder that collects notes before Emit. BagReporter stores into a
// Bag, which supports sorting and deduplication.
//
// Package diag does no IO and no formatting beyond the single-line short
// form; the wire report and the pretty renderer live in internal/diagfmt.
package diag

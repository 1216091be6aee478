// Package trace provides the structured event log of strata.
//
// Sessions, engines and the CLI emit span begin/end events; a tracer decides
// what to keep and where to write it.
//
// # Usage
//
//	strata check --trace=- --trace-level=phase a.st b.st
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to a file or stderr
//   - RingTracer: last N events in memory, dumped on failure
//   - MultiTracer: fan-out to several tracers
//
// # Levels and scopes
//
// LevelPhase keeps driver and pass events (session calls, lex+parse, resolve,
// check, syntax-tree); LevelDetail adds per-unit events; LevelDebug keeps
// everything.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "resolve", parentID)
//	defer span.End("")
package trace

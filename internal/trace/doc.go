// Package trace provides a tracing subsystem for the corrigo repair engine.
//
// The trace package enables tracking of search-engine exploration, test
// executions, and partitioning activity, to help diagnose slow or stuck
// repair runs.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	corrigo repair --trace=- --trace-level=phase ./project
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - Nop: zero-overhead no-op tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer for crash dumps
//   - MultiTracer: combines multiple tracers
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: no tracing
//   - LevelError: only crash dumps
//   - LevelPhase: run boundaries and candidate exploration milestones
//   - LevelDetail: per-test execution events
//   - LevelDebug: everything including coverage bookkeeping
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeRun: top-level repair operations
//   - ScopeCandidate: one search-space candidate under exploration
//   - ScopeTest: one test execution for one candidate
//   - ScopeCoverage: per-test-per-patch coverage bookkeeping
//
// # Context Propagation
//
// Tracers are propagated through the repair pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeCandidate, "findNext", parentID)
//	defer span.End("")
package trace

// Package trace records what the builtin registry does during a run.
//
// Tracing is enabled from the command line:
//
//	builtinreg list --trace=- --trace-level=detail
//
// Tracers:
//
//   - Nop: used when tracing is off
//   - StreamTracer: writes each event as it happens (file or stderr)
//   - RingTracer: keeps the last N events in memory
//   - MultiTracer: fans out to several tracers
//
// Levels, coarse to fine: off, error, phase, detail, debug. A level admits
// every scope at or above its granularity; ScopeNode events (one per forgotten
// builtin, per feature check) need debug.
//
// The tracer travels in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "builtins.initialize", 0)
//	defer span.End("")
package trace

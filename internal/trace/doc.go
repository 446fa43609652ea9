// Package trace records structured events for the cQASM front-end.
//
// Events describe the driver call, its phases (lex, parse, sema, format) and,
// at the most verbose level, individual statements.
//
// # Usage
//
//	cqasm analyze --trace=- --trace-level=phase prog.cq
//
// # Tracers
//
//   - Nop: disabled tracing
//   - StreamTracer: buffered write to a file or stderr
//   - Recorder: last N events in memory, dumped when a command fails
//   - Tee: several of the above at once
//
// # Context
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.Start(ctx, trace.ScopePhase, "parse")
//	defer span.End("")
package trace

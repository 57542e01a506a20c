// Package trace records what bigcalc is doing while it evaluates.
//
// Commands open a span per invocation, batch runs open one per file and
// one per expression, and the evaluator can report individual operations
// at the debug level. Events go to a stream (stderr or a file), to an
// in-memory ring that is dumped when a command fails, or to both.
//
// # Levels
//
//   - LevelOff: nothing is recorded
//   - LevelError: nothing is streamed; the ring is only dumped on failure
//   - LevelPhase: command and batch boundaries
//   - LevelDetail: per-expression jobs
//   - LevelDebug: individual operations
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeJob, "job", trace.CurrentSpan(ctx).SpanID)
//	defer span.End("")
package trace

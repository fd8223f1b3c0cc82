// Package trace records spans of the analyzer's work.
//
// A Tracer travels in a context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "symbols", trace.CurrentSpan(ctx).SpanID)
//	defer span.End("")
//
// Scopes, coarse to fine: ScopeDriver (one CLI command), ScopeFile (one
// tree file), ScopePass (symbol construction, type checking) and ScopeNode
// (one function declaration). The Level decides which scopes are emitted.
//
// StreamTracer writes events as they happen (text or ndjson), RingTracer
// keeps the last N events for a dump after a failed run, MultiTracer does both.
package trace

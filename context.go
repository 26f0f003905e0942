package scopez

import "context"

// spanKeyType is a private type for context keys to avoid collisions.
type spanKeyType struct{}

var spanKey spanKeyType

// ContextWithSpan returns a context carrying span. This is the supported way
// to hand an active span across a goroutine boundary: activation stacks
// never follow a goroutine hand-off, so the receiving side re-activates the
// span itself if it wants scope semantics there.
func ContextWithSpan(ctx context.Context, span Span) context.Context {
	return context.WithValue(ctx, spanKey, span)
}

// SpanFromContext returns the span carried by ctx, or nil.
func SpanFromContext(ctx context.Context) Span {
	if ctx == nil {
		return nil
	}
	if span, ok := ctx.Value(spanKey).(Span); ok {
		return span
	}
	return nil
}

// StartSpanFromContext starts a span named operation from the globally
// registered tracer, as a child of the span carried by ctx when present.
// The returned context carries the new span.
func StartSpanFromContext(ctx context.Context, operation string) (Span, context.Context) {
	return StartSpanFromContextWithTracer(ctx, Global(), operation)
}

// StartSpanFromContextWithTracer is StartSpanFromContext with an explicit
// tracer, for call sites that have one wired through.
func StartSpanFromContextWithTracer(ctx context.Context, tracer Tracer, operation string) (Span, context.Context) {
	builder := tracer.BuildSpan(operation)
	if parent := SpanFromContext(ctx); parent != nil {
		builder = builder.AsChildOf(parent.Context())
	}
	span := builder.Start()
	return span, ContextWithSpan(ctx, span)
}

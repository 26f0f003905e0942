// Package scopez provides the propagation core of a distributed tracing API:
// span activation scopes, a process-wide tracer registry, and carrier
// abstractions for moving span context across process boundaries.
//
// scopez deliberately stops short of being a tracer. It defines the
// capability contracts (Tracer, Span, SpanContext) and the three pieces of
// machinery every tracer needs but none should reimplement:
//
//   - ScopeManager: tracks which span is active on the current goroutine and
//     restores the previous one when an activation ends.
//   - Global registry: a process-wide, register-once slot for "the" tracer,
//     backed by an inert no-op implementation until something real is
//     installed.
//   - Carrier formats: the closed set of encodings (text map, HTTP headers,
//     binary) a tracer's Inject/Extract must speak.
//
// Basic Usage:
//
//	if ok, err := scopez.RegisterIfAbsent(newAppTracer); err != nil {
//		log.Fatal(err)
//	} else if ok {
//		// this call site won the registration race
//	}
//
//	tracer := scopez.Global()
//	span := tracer.BuildSpan("handle-request").Start()
//	scope := tracer.ScopeManager().Activate(span, true)
//	defer scope.Close() // finishes span, restores the previous scope
//
// Thread Safety:
//
// The global registry is safe for concurrent use; reads never block.
// Activation stacks are confined to a single goroutine and need no locking.
// A Scope must be closed on the goroutine that activated it; handing work to
// another goroutine requires explicit propagation, see ContextWithSpan.
package scopez

import "time"

// Tracer is the capability contract a concrete tracing implementation
// provides. The registry forwards every method verbatim to whatever tracer
// is currently installed.
type Tracer interface {
	// ScopeManager returns the manager for this tracer's active spans.
	ScopeManager() ScopeManager

	// ActiveSpan is shorthand for ScopeManager().Active().Span().
	// Returns nil when no span is active on the calling goroutine.
	ActiveSpan() Span

	// BuildSpan returns a builder for a span with the given operation name.
	BuildSpan(operation string) SpanBuilder

	// Inject serializes sc into carrier according to format.
	// Returns ErrUnsupportedFormat when format is unknown to the tracer and
	// ErrInvalidCarrier when carrier does not match the format's shape.
	Inject(sc SpanContext, format interface{}, carrier interface{}) error

	// Extract deserializes a SpanContext from carrier.
	// Absence of propagated state is reported as ErrSpanContextNotFound;
	// state that is present but malformed as ErrSpanContextCorrupted.
	Extract(format interface{}, carrier interface{}) (SpanContext, error)
}

// Span is a single timed unit of work. The scopez core only ever calls
// Finish (conditionally, on Scope close) and otherwise treats the span as
// opaque.
type Span interface {
	// Context returns the propagable state of this span. Valid for use
	// after Finish.
	Context() SpanContext

	// SetOperationName renames the span. Returns the span for chaining.
	SetOperationName(operation string) Span

	// SetTag attaches a key/value annotation. Returns the span for chaining.
	SetTag(key string, value interface{}) Span

	// LogKV records a timestamped event from alternating key/value pairs.
	LogKV(alternatingKeyValues ...interface{})

	// SetBaggageItem attaches a key/value pair that propagates to this
	// span's SpanContext and all descendant spans.
	SetBaggageItem(key, value string) Span

	// BaggageItem returns the baggage value for key, or "" if unset.
	BaggageItem(key string) string

	// Finish marks the end of the span. Must be called once; behavior of
	// further calls is implementation defined.
	Finish()

	// Tracer returns the tracer that created this span.
	Tracer() Tracer
}

// SpanContext is the propagable identity and baggage state of a Span.
// Implementations are immutable from the point of view of this package.
type SpanContext interface {
	// ForeachBaggageItem calls handler for each baggage entry in no
	// particular order. Iteration stops early when handler returns false.
	ForeachBaggageItem(handler func(key, value string) bool)
}

// SpanBuilder assembles a Span. Builders are not safe for concurrent use.
type SpanBuilder interface {
	// AsChildOf declares parent as the parent of the span being built.
	AsChildOf(parent SpanContext) SpanBuilder

	// IgnoreActiveSpan prevents the builder from adopting the goroutine's
	// active span as an implicit parent.
	IgnoreActiveSpan() SpanBuilder

	// WithTag sets a tag on the span being built.
	WithTag(key string, value interface{}) SpanBuilder

	// WithStartTime overrides the span's start timestamp.
	WithStartTime(t time.Time) SpanBuilder

	// Start creates the span without activating it.
	Start() Span

	// StartActive creates the span and activates it through the tracer's
	// ScopeManager, as if Activate(Start(), finishOnClose) were called.
	StartActive(finishOnClose bool) Scope
}

package scopez

import "time"

// NoopTracer is the behaviorally inert Tracer the registry serves before a
// real implementation is installed. Every operation is side-effect-free and
// returns the corresponding inert default.
type NoopTracer struct{}

var (
	defaultNoopScopeManager = noopScopeManager{}
	defaultNoopSpan         = noopSpan{}
	defaultNoopSpanContext  = noopSpanContext{}
)

// ScopeManager implements Tracer.
func (NoopTracer) ScopeManager() ScopeManager { return defaultNoopScopeManager }

// ActiveSpan implements Tracer. Always nil: a no-op tracer never has an
// active span.
func (NoopTracer) ActiveSpan() Span { return nil }

// BuildSpan implements Tracer.
func (NoopTracer) BuildSpan(string) SpanBuilder { return noopSpanBuilder{} }

// Inject implements Tracer. Discards everything.
func (NoopTracer) Inject(SpanContext, interface{}, interface{}) error { return nil }

// Extract implements Tracer. Never finds propagated state.
func (NoopTracer) Extract(interface{}, interface{}) (SpanContext, error) {
	return nil, ErrSpanContextNotFound
}

type noopScopeManager struct{}

func (noopScopeManager) Activate(span Span, _ bool) Scope { return noopScope{span: span} }
func (noopScopeManager) Active() Scope { return nil }

type noopScope struct{ span Span }

func (noopScope) Close() {}
func (s noopScope) Span() Span { return s.span }

type noopSpan struct{}

func (noopSpan) Context() SpanContext { return defaultNoopSpanContext }
func (noopSpan) SetOperationName(string) Span { return defaultNoopSpan }
func (noopSpan) SetTag(string, interface{}) Span { return defaultNoopSpan }
func (noopSpan) LogKV(...interface{}) {}
func (noopSpan) SetBaggageItem(string, string) Span { return defaultNoopSpan }
func (noopSpan) BaggageItem(string) string { return "" }
func (noopSpan) Finish() {}
func (noopSpan) Tracer() Tracer { return NoopTracer{} }

type noopSpanContext struct{}

func (noopSpanContext) ForeachBaggageItem(func(k, v string) bool) {}

type noopSpanBuilder struct{}

func (b noopSpanBuilder) AsChildOf(SpanContext) SpanBuilder { return b }
func (b noopSpanBuilder) IgnoreActiveSpan() SpanBuilder { return b }
func (b noopSpanBuilder) WithTag(string, interface{}) SpanBuilder { return b }
func (b noopSpanBuilder) WithStartTime(time.Time) SpanBuilder { return b }
func (noopSpanBuilder) Start() Span { return defaultNoopSpan }
func (noopSpanBuilder) StartActive(bool) Scope { return noopScope{span: defaultNoopSpan} }

// Package mocktracer provides an in-memory Tracer for testing instrumented
// code. Finished spans are recorded rather than exported, and time is
// injectable so span durations assert deterministically.
package mocktracer

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/zoobzio/scopez"
)

// MockTracer is a scopez.Tracer that records every finished span in memory.
// Safe for concurrent use by multiple goroutines.
type MockTracer struct {
	scopeManager scopez.ScopeManager
	clock        clockz.Clock
	nextID       atomic.Int64

	mu       sync.Mutex
	finished []*MockSpan
}

var _ scopez.Tracer = (*MockTracer)(nil)

// New creates a mock tracer on the real clock.
func New() *MockTracer {
	return NewWithClock(clockz.RealClock)
}

// NewWithClock creates a mock tracer with the specified clock.
// Enables clock injection for deterministic testing.
func NewWithClock(clock clockz.Clock) *MockTracer {
	return &MockTracer{
		scopeManager: scopez.NewGoroutineScopeManager(),
		clock:        clock,
	}
}

// ScopeManager implements scopez.Tracer.
func (t *MockTracer) ScopeManager() scopez.ScopeManager {
	return t.scopeManager
}

// ActiveSpan implements scopez.Tracer.
func (t *MockTracer) ActiveSpan() scopez.Span {
	scope := t.scopeManager.Active()
	if scope == nil {
		return nil
	}
	return scope.Span()
}

// BuildSpan implements scopez.Tracer.
func (t *MockTracer) BuildSpan(operation string) scopez.SpanBuilder {
	return &spanBuilder{
		tracer:    t,
		operation: operation,
	}
}

// FinishedSpans returns a copy of the spans finished so far, in finish order.
func (t *MockTracer) FinishedSpans() []*MockSpan {
	t.mu.Lock()
	defer t.mu.Unlock()

	spans := make([]*MockSpan, len(t.finished))
	copy(spans, t.finished)
	return spans
}

// Reset discards all recorded spans.
func (t *MockTracer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.finished = nil
}

func (t *MockTracer) recordSpan(span *MockSpan) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.finished = append(t.finished, span)
}

func (t *MockTracer) nextMockID() int {
	return int(t.nextID.Add(1))
}

// spanBuilder assembles a MockSpan. Not safe for concurrent use.
type spanBuilder struct {
	tracer       *MockTracer
	operation    string
	parent       *MockSpanContext
	tags         map[string]interface{}
	startTime    time.Time
	ignoreActive bool
}

func (b *spanBuilder) AsChildOf(parent scopez.SpanContext) scopez.SpanBuilder {
	if ctx, ok := parent.(MockSpanContext); ok {
		b.parent = &ctx
	}
	return b
}

func (b *spanBuilder) IgnoreActiveSpan() scopez.SpanBuilder {
	b.ignoreActive = true
	return b
}

func (b *spanBuilder) WithTag(key string, value interface{}) scopez.SpanBuilder {
	if b.tags == nil {
		b.tags = make(map[string]interface{})
	}
	b.tags[key] = value
	return b
}

func (b *spanBuilder) WithStartTime(t time.Time) scopez.SpanBuilder {
	b.startTime = t
	return b
}

func (b *spanBuilder) Start() scopez.Span {
	tracer := b.tracer

	parent := b.parent
	if parent == nil && !b.ignoreActive {
		if active := tracer.ActiveSpan(); active != nil {
			if ctx, ok := active.Context().(MockSpanContext); ok {
				parent = &ctx
			}
		}
	}

	ctx := MockSpanContext{
		SpanID:  tracer.nextMockID(),
		Sampled: true,
	}
	parentID := 0
	if parent != nil {
		ctx.TraceID = parent.TraceID
		ctx.Sampled = parent.Sampled
		ctx.Baggage = copyBaggage(parent.Baggage)
		parentID = parent.SpanID
	} else {
		ctx.TraceID = tracer.nextMockID()
	}

	startTime := b.startTime
	if startTime.IsZero() {
		startTime = tracer.clock.Now()
	}

	span := &MockSpan{
		tracer:        tracer,
		ctx:           ctx,
		parentID:      parentID,
		operationName: b.operation,
		startTime:     startTime,
	}
	for k, v := range b.tags {
		span.SetTag(k, v)
	}
	return span
}

func (b *spanBuilder) StartActive(finishOnClose bool) scopez.Scope {
	return b.tracer.scopeManager.Activate(b.Start(), finishOnClose)
}

package mocktracer

import (
	"sync"
	"time"

	"github.com/zoobzio/scopez"
)

// MockSpanContext is the propagable state of a MockSpan. Values are
// immutable; baggage mutation goes through WithBaggageItem, which returns a
// fresh context.
type MockSpanContext struct {
	TraceID int
	SpanID  int
	Sampled bool
	Baggage map[string]string
}

var _ scopez.SpanContext = MockSpanContext{}

// ForeachBaggageItem implements scopez.SpanContext.
func (c MockSpanContext) ForeachBaggageItem(handler func(key, value string) bool) {
	for k, v := range c.Baggage {
		if !handler(k, v) {
			break
		}
	}
}

// WithBaggageItem returns a new context with the given key/value baggage
// pair set. The receiver is unchanged.
func (c MockSpanContext) WithBaggageItem(key, value string) MockSpanContext {
	baggage := make(map[string]string, len(c.Baggage)+1)
	for k, v := range c.Baggage {
		baggage[k] = v
	}
	baggage[key] = value
	return MockSpanContext{c.TraceID, c.SpanID, c.Sampled, baggage}
}

func copyBaggage(baggage map[string]string) map[string]string {
	if baggage == nil {
		return nil
	}
	out := make(map[string]string, len(baggage))
	for k, v := range baggage {
		out[k] = v
	}
	return out
}

// LogRecord is one timestamped LogKV call on a MockSpan.
type LogRecord struct {
	Timestamp time.Time
	Fields    map[string]interface{}
}

// MockSpan is a scopez.Span recorded by a MockTracer. Accessors are safe
// for concurrent use.
type MockSpan struct {
	tracer *MockTracer

	mu            sync.Mutex
	ctx           MockSpanContext
	parentID      int
	operationName string
	startTime     time.Time
	finishTime    time.Time
	tags          map[string]interface{}
	logs          []LogRecord
}

var _ scopez.Span = (*MockSpan)(nil)

// Context implements scopez.Span.
func (s *MockSpan) Context() scopez.SpanContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

// SetOperationName implements scopez.Span.
func (s *MockSpan) SetOperationName(operation string) scopez.Span {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.operationName = operation
	return s
}

// SetTag implements scopez.Span. No-op once the span is finished.
func (s *MockSpan) SetTag(key string, value interface{}) scopez.Span {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.finishTime.IsZero() {
		return s
	}
	if s.tags == nil {
		s.tags = make(map[string]interface{})
	}
	s.tags[key] = value
	return s
}

// LogKV implements scopez.Span. An odd number of arguments records a
// single "error" field instead.
func (s *MockSpan) LogKV(alternatingKeyValues ...interface{}) {
	fields := make(map[string]interface{}, len(alternatingKeyValues)/2)
	if len(alternatingKeyValues)%2 != 0 {
		fields["error"] = "non-even keyValues len"
	} else {
		for i := 0; i < len(alternatingKeyValues); i += 2 {
			key, ok := alternatingKeyValues[i].(string)
			if !ok {
				fields["error"] = "non-string field key"
				continue
			}
			fields[key] = alternatingKeyValues[i+1]
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, LogRecord{
		Timestamp: s.tracer.clock.Now(),
		Fields:    fields,
	})
}

// SetBaggageItem implements scopez.Span.
func (s *MockSpan) SetBaggageItem(key, value string) scopez.Span {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = s.ctx.WithBaggageItem(key, value)
	return s
}

// BaggageItem implements scopez.Span.
func (s *MockSpan) BaggageItem(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.Baggage[key]
}

// Finish implements scopez.Span. Safe to call multiple times; only the
// first call records the span.
func (s *MockSpan) Finish() {
	s.mu.Lock()
	if !s.finishTime.IsZero() {
		s.mu.Unlock()
		return
	}
	s.finishTime = s.tracer.clock.Now()
	s.mu.Unlock()

	s.tracer.recordSpan(s)
}

// Tracer implements scopez.Span.
func (s *MockSpan) Tracer() scopez.Tracer {
	return s.tracer
}

// OperationName returns the span's current operation name.
func (s *MockSpan) OperationName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.operationName
}

// ParentID returns the SpanID of this span's parent, or 0 for a root span.
func (s *MockSpan) ParentID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parentID
}

// StartTime returns when the span started.
func (s *MockSpan) StartTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startTime
}

// FinishTime returns when the span finished, or the zero time while the
// span is still open.
func (s *MockSpan) FinishTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finishTime
}

// Finished reports whether Finish has been called.
func (s *MockSpan) Finished() bool {
	return !s.FinishTime().IsZero()
}

// Tag returns the value recorded for key, if any.
func (s *MockSpan) Tag(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.tags[key]
	return value, ok
}

// Tags returns a copy of the span's tags.
func (s *MockSpan) Tags() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	tags := make(map[string]interface{}, len(s.tags))
	for k, v := range s.tags {
		tags[k] = v
	}
	return tags
}

// Logs returns a copy of the span's log records.
func (s *MockSpan) Logs() []LogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := make([]LogRecord, len(s.logs))
	copy(logs, s.logs)
	return logs
}

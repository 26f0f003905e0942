package mocktracer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/clockz"

	"github.com/zoobzio/scopez"
	"github.com/zoobzio/scopez/mocktracer"
)

func TestStartSpanRecordsOnFinish(t *testing.T) {
	tracer := mocktracer.New()

	span := tracer.BuildSpan("load-user").Start().(*mocktracer.MockSpan)
	assert.Empty(t, tracer.FinishedSpans())

	span.SetTag("user.id", 123)
	span.Finish()

	finished := tracer.FinishedSpans()
	require.Len(t, finished, 1)
	assert.Equal(t, "load-user", finished[0].OperationName())
	value, ok := finished[0].Tag("user.id")
	require.True(t, ok)
	assert.Equal(t, 123, value)
}

func TestFinishIsIdempotent(t *testing.T) {
	tracer := mocktracer.New()

	span := tracer.BuildSpan("op").Start()
	span.Finish()
	span.Finish()

	assert.Len(t, tracer.FinishedSpans(), 1)
}

func TestSetTagAfterFinishIsIgnored(t *testing.T) {
	tracer := mocktracer.New()

	span := tracer.BuildSpan("op").Start().(*mocktracer.MockSpan)
	span.Finish()
	span.SetTag("late", true)

	_, ok := span.Tag("late")
	assert.False(t, ok)
}

func TestSpanClockInjection(t *testing.T) {
	clock := clockz.NewFakeClock()
	tracer := mocktracer.NewWithClock(clock)

	span := tracer.BuildSpan("op").Start().(*mocktracer.MockSpan)
	started := clock.Now()

	clock.Advance(250 * time.Millisecond)
	span.Finish()

	assert.Equal(t, started, span.StartTime())
	assert.Equal(t, 250*time.Millisecond, span.FinishTime().Sub(span.StartTime()))
}

func TestBuilderParentage(t *testing.T) {
	tracer := mocktracer.New()

	parent := tracer.BuildSpan("parent").Start().(*mocktracer.MockSpan)
	child := tracer.BuildSpan("child").
		AsChildOf(parent.Context()).
		Start().(*mocktracer.MockSpan)

	parentCtx := parent.Context().(mocktracer.MockSpanContext)
	childCtx := child.Context().(mocktracer.MockSpanContext)

	assert.Equal(t, parentCtx.TraceID, childCtx.TraceID)
	assert.NotEqual(t, parentCtx.SpanID, childCtx.SpanID)
	assert.Equal(t, parentCtx.SpanID, child.ParentID())

	root := tracer.BuildSpan("root").Start().(*mocktracer.MockSpan)
	rootCtx := root.Context().(mocktracer.MockSpanContext)
	assert.NotEqual(t, parentCtx.TraceID, rootCtx.TraceID)
	assert.Zero(t, root.ParentID())
}

func TestBuilderAdoptsActiveSpan(t *testing.T) {
	tracer := mocktracer.New()

	scope := tracer.BuildSpan("parent").StartActive(true)
	implicit := tracer.BuildSpan("implicit-child").Start().(*mocktracer.MockSpan)
	detached := tracer.BuildSpan("detached").IgnoreActiveSpan().Start().(*mocktracer.MockSpan)
	scope.Close()

	parentCtx := scope.Span().Context().(mocktracer.MockSpanContext)
	assert.Equal(t, parentCtx.SpanID, implicit.ParentID())
	assert.Zero(t, detached.ParentID())
}

func TestBuilderTagsAndStartTime(t *testing.T) {
	tracer := mocktracer.New()
	startTime := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)

	span := tracer.BuildSpan("op").
		WithTag("component", "test").
		WithStartTime(startTime).
		Start().(*mocktracer.MockSpan)

	assert.Equal(t, startTime, span.StartTime())
	value, ok := span.Tag("component")
	require.True(t, ok)
	assert.Equal(t, "test", value)
}

func TestBaggagePropagatesToChildren(t *testing.T) {
	tracer := mocktracer.New()

	parent := tracer.BuildSpan("parent").Start()
	parent.SetBaggageItem("tenant", "acme")

	child := tracer.BuildSpan("child").AsChildOf(parent.Context()).Start()
	assert.Equal(t, "acme", child.BaggageItem("tenant"))

	// Baggage set on the child does not leak back to the parent.
	child.SetBaggageItem("request", "42")
	assert.Equal(t, "", parent.BaggageItem("request"))

	items := map[string]string{}
	child.Context().ForeachBaggageItem(func(k, v string) bool {
		items[k] = v
		return true
	})
	assert.Equal(t, map[string]string{"tenant": "acme", "request": "42"}, items)
}

func TestLogKV(t *testing.T) {
	tracer := mocktracer.New()

	span := tracer.BuildSpan("op").Start().(*mocktracer.MockSpan)
	span.LogKV(scopez.LogFieldEvent, "error", scopez.LogFieldMessage, "boom")
	span.Finish()

	logs := span.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, map[string]interface{}{
		"event":   "error",
		"message": "boom",
	}, logs[0].Fields)
}

func TestReset(t *testing.T) {
	tracer := mocktracer.New()

	tracer.BuildSpan("op").Start().Finish()
	require.Len(t, tracer.FinishedSpans(), 1)

	tracer.Reset()
	assert.Empty(t, tracer.FinishedSpans())
}

func TestFinishedSpansAreACopy(t *testing.T) {
	tracer := mocktracer.New()

	tracer.BuildSpan("op").Start().Finish()
	spans := tracer.FinishedSpans()
	require.Len(t, spans, 1)

	spans[0] = nil
	require.NotNil(t, tracer.FinishedSpans()[0])
}

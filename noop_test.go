package scopez

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopTracerIsInert(t *testing.T) {
	tracer := NoopTracer{}

	assert.Nil(t, tracer.ActiveSpan())
	assert.Nil(t, tracer.ScopeManager().Active())

	span := tracer.BuildSpan("op").
		WithTag("key", "value").
		WithStartTime(time.Now()).
		IgnoreActiveSpan().
		Start()
	require.NotNil(t, span)

	// Chaining works, nothing is recorded.
	span.SetOperationName("renamed").
		SetTag("key", "value").
		SetBaggageItem("k", "v")
	span.LogKV("event", "noop")
	assert.Equal(t, "", span.BaggageItem("k"))
	span.Finish()
	span.Finish()

	visited := false
	span.Context().ForeachBaggageItem(func(string, string) bool {
		visited = true
		return true
	})
	assert.False(t, visited)
}

func TestNoopScopeManager(t *testing.T) {
	tracer := NoopTracer{}
	sm := tracer.ScopeManager()

	span := tracer.BuildSpan("op").Start()
	scope := sm.Activate(span, true)
	require.NotNil(t, scope)
	assert.Equal(t, span, scope.Span())

	// Activation leaves no trace; the no-op manager never has an active scope.
	assert.Nil(t, sm.Active())
	scope.Close()
}

func TestNoopExtractYieldsNone(t *testing.T) {
	tracer := NoopTracer{}

	for _, format := range []BuiltinFormat{Binary, TextMap, HTTPHeaders} {
		sc, err := tracer.Extract(format, TextMapCarrier{"trace-id": "42"})
		assert.Nil(t, sc)
		assert.Equal(t, ErrSpanContextNotFound, err)
	}
}

func TestNoopStartActive(t *testing.T) {
	scope := NoopTracer{}.BuildSpan("op").StartActive(true)
	require.NotNil(t, scope)
	require.NotNil(t, scope.Span())
	scope.Close()
}

package scopez

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTracer is a registrable tracer distinguishable from the no-op default.
// It counts BuildSpan calls so forwarding is observable.
type stubTracer struct {
	NoopTracer
	name       string
	buildCalls int
}

func (t *stubTracer) BuildSpan(operation string) SpanBuilder {
	t.buildCalls++
	return t.NoopTracer.BuildSpan(operation)
}

func TestGlobalDefaultsToNoop(t *testing.T) {
	resetGlobal()

	require.False(t, IsRegistered())

	tracer := Global()
	require.NotNil(t, tracer)

	// All delegated operations are inert before registration.
	assert.Nil(t, tracer.ActiveSpan())
	assert.Nil(t, tracer.ScopeManager().Active())

	span := tracer.BuildSpan("noop-op").Start()
	span.SetTag("key", "value")
	span.Finish()

	require.NoError(t, tracer.Inject(span.Context(), TextMap, TextMapCarrier{}))

	_, err := tracer.Extract(TextMap, TextMapCarrier{"trace-id": "1"})
	assert.Equal(t, ErrSpanContextNotFound, err)
}

func TestRegisterIfAbsent(t *testing.T) {
	resetGlobal()

	first := &stubTracer{name: "first"}
	ok, err := RegisterIfAbsent(func() (Tracer, error) { return first, nil })
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, IsRegistered())

	// Second registration loses without its provider being invoked.
	invoked := false
	ok, err = RegisterIfAbsent(func() (Tracer, error) {
		invoked = true
		return &stubTracer{name: "second"}, nil
	})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, invoked)
}

func TestGlobalForwardsToRegisteredTracer(t *testing.T) {
	resetGlobal()

	// References obtained before registration observe the registered tracer
	// afterwards.
	handle := Global()
	_, err := handle.Extract(TextMap, TextMapCarrier{})
	require.Equal(t, ErrSpanContextNotFound, err)

	registered := &stubTracer{name: "real"}
	ok, err := RegisterIfAbsent(func() (Tracer, error) { return registered, nil })
	require.NoError(t, err)
	require.True(t, ok)

	handle.BuildSpan("op").Start()
	assert.Equal(t, 1, registered.buildCalls)
}

func TestRegisterIfAbsentNilProvider(t *testing.T) {
	resetGlobal()

	ok, err := RegisterIfAbsent(nil)
	require.Error(t, err)
	assert.False(t, ok)
	assert.False(t, IsRegistered())
}

func TestRegisterIfAbsentNilTracer(t *testing.T) {
	resetGlobal()

	ok, err := RegisterIfAbsent(func() (Tracer, error) { return nil, nil })
	require.Error(t, err)
	assert.False(t, ok)
	assert.False(t, IsRegistered())
}

func TestRegisterIfAbsentProviderFailure(t *testing.T) {
	resetGlobal()

	cause := errors.New("no tracer configured")
	ok, err := RegisterIfAbsent(func() (Tracer, error) { return nil, cause })
	require.Error(t, err)
	assert.Equal(t, cause, errors.Cause(err))
	assert.False(t, ok)
	assert.False(t, IsRegistered())
}

func TestRegisterIfAbsentRejectsForwardingHandle(t *testing.T) {
	resetGlobal()

	ok, err := RegisterIfAbsent(func() (Tracer, error) { return Global(), nil })
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, IsRegistered())
}

func TestRegisterConflict(t *testing.T) {
	resetGlobal()

	first := &stubTracer{name: "first"}
	require.NoError(t, Register(first))
	require.True(t, IsRegistered())

	// Re-registering the same tracer is tolerated.
	require.NoError(t, Register(first))

	// Registering the forwarding handle is tolerated.
	require.NoError(t, Register(Global()))

	// A different tracer fails loudly.
	err := Register(&stubTracer{name: "second"})
	require.Error(t, err)
}

func TestRegisterIfAbsentConcurrent(t *testing.T) {
	resetGlobal()

	const callers = 32

	var wg sync.WaitGroup
	wins := make(chan bool, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := RegisterIfAbsent(func() (Tracer, error) {
				return &stubTracer{name: "racer"}, nil
			})
			if err != nil {
				t.Error(err)
				return
			}
			wins <- ok
		}()
	}
	wg.Wait()
	close(wins)

	winners := 0
	for ok := range wins {
		if ok {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
	assert.True(t, IsRegistered())
}

package scopez

import (
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

// registeredTracer is the registry cell's single value. Holding the
// isRegistered flag next to the tracer keeps both visible in one atomic load.
type registeredTracer struct {
	tracer       Tracer
	isRegistered bool
}

var (
	globalCell   atomic.Pointer[registeredTracer]
	registerMu   sync.Mutex
	globalHandle = &forwardingTracer{}
)

func init() {
	globalCell.Store(&registeredTracer{tracer: NoopTracer{}})
}

// Global returns the forwarding handle for the process-wide tracer. Every
// method on the returned Tracer is delegated, at call time, to whatever
// tracer is currently registered; until registration that is a no-op tracer,
// so uninitialized use is safe and inert.
//
// Prefer passing a Tracer explicitly through application wiring; the global
// registry exists as a fallback for call sites that cannot receive one.
func Global() Tracer {
	return globalHandle
}

// IsRegistered reports whether a real tracer has been installed.
func IsRegistered() bool {
	return globalCell.Load().isRegistered
}

// RegisterIfAbsent installs the tracer obtained from provider, unless one is
// already registered. Registration is a one-time transition: among concurrent
// callers exactly one observes true, all others false.
//
// provider is only invoked when the registry is still unoccupied. A nil
// provider, a nil candidate, or a provider failure leaves the registry
// untouched and is reported as an error. The forwarding handle itself is
// never installed; offering it also returns false.
func RegisterIfAbsent(provider func() (Tracer, error)) (bool, error) {
	if provider == nil {
		return false, errors.New("cannot register global tracer from nil provider")
	}

	registerMu.Lock()
	defer registerMu.Unlock()

	if globalCell.Load().isRegistered {
		return false, nil
	}
	candidate, err := provider()
	if err != nil {
		return false, errors.Wrap(err, "obtaining tracer from provider")
	}
	if candidate == nil {
		return false, errors.New("cannot register nil global tracer")
	}
	if candidate == Tracer(globalHandle) {
		return false, nil
	}
	globalCell.Store(&registeredTracer{tracer: candidate, isRegistered: true})
	return true, nil
}

// Register installs tracer as the global tracer.
//
// Deprecated: use RegisterIfAbsent, which does not attempt a double
// registration. Register returns an error when a different tracer is already
// installed.
func Register(tracer Tracer) error {
	ok, err := RegisterIfAbsent(func() (Tracer, error) { return tracer, nil })
	if err != nil {
		return err
	}
	if !ok && tracer != Tracer(globalHandle) && tracer != globalCell.Load().tracer {
		return errors.New("a global tracer is already registered")
	}
	return nil
}

// resetGlobal restores the pre-registration state. Test use only.
func resetGlobal() {
	registerMu.Lock()
	defer registerMu.Unlock()
	globalCell.Store(&registeredTracer{tracer: NoopTracer{}})
}

// forwardingTracer is the stable handle returned by Global. It carries no
// state of its own; each call re-reads the registry cell so references
// obtained before registration behave as if obtained after.
type forwardingTracer struct{}

func (*forwardingTracer) ScopeManager() ScopeManager {
	return globalCell.Load().tracer.ScopeManager()
}

func (*forwardingTracer) ActiveSpan() Span {
	return globalCell.Load().tracer.ActiveSpan()
}

func (*forwardingTracer) BuildSpan(operation string) SpanBuilder {
	return globalCell.Load().tracer.BuildSpan(operation)
}

func (*forwardingTracer) Inject(sc SpanContext, format interface{}, carrier interface{}) error {
	return globalCell.Load().tracer.Inject(sc, format, carrier)
}

func (*forwardingTracer) Extract(format interface{}, carrier interface{}) (SpanContext, error) {
	return globalCell.Load().tracer.Extract(format, carrier)
}

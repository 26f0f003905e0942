package scopez

import (
	"sync"

	"github.com/petermattis/goid"
)

// Scope binds a Span to "active" status on one goroutine. A Scope is created
// exclusively by ScopeManager.Activate and owned by the code that activated
// it; it must be closed exactly once, on the activating goroutine.
//
// Closing a Scope more than once, or out of LIFO order, is an unchecked
// programming error. The only defined guard is that closing a Scope which is
// not the goroutine's current one is a silent no-op.
type Scope interface {
	// Close ends the active period of the wrapped span, restoring the scope
	// that was active immediately before this one.
	Close()

	// Span returns the wrapped Span.
	Span() Span
}

// ScopeManager activates spans and exposes the currently active one.
type ScopeManager interface {
	// Activate makes span the calling goroutine's active span. When
	// finishOnClose is true, closing the returned Scope also finishes the
	// span. A nil span is the caller's error and is not validated here.
	Activate(span Span, finishOnClose bool) Scope

	// Active returns the calling goroutine's active Scope, or nil.
	Active() Scope
}

// GoroutineScopeManager is a ScopeManager that confines each activation
// stack to the goroutine that built it. The stack itself is the chain of
// toRestore pointers hanging off the current scope, so each scope carries
// everything needed to restore the state that preceded it.
//
// Scopes never follow a goroutine hand-off: a new goroutine starts with an
// empty stack. Use ContextWithSpan to carry a span across that boundary.
type GoroutineScopeManager struct {
	// current maps a goroutine id to its innermost active scope. Entries
	// are removed when the stack empties so short-lived goroutines leave
	// nothing behind.
	current sync.Map // int64 -> *goroutineScope
}

// NewGoroutineScopeManager returns an empty manager.
func NewGoroutineScopeManager() *GoroutineScopeManager {
	return &GoroutineScopeManager{}
}

// Activate implements ScopeManager.
func (m *GoroutineScopeManager) Activate(span Span, finishOnClose bool) Scope {
	gid := goid.Get()
	s := &goroutineScope{
		manager:       m,
		span:          span,
		finishOnClose: finishOnClose,
	}
	if prev, ok := m.current.Load(gid); ok {
		s.toRestore = prev.(*goroutineScope)
	}
	m.current.Store(gid, s)
	return s
}

// Active implements ScopeManager.
func (m *GoroutineScopeManager) Active() Scope {
	if s, ok := m.current.Load(goid.Get()); ok {
		return s.(*goroutineScope)
	}
	return nil
}

type goroutineScope struct {
	manager       *GoroutineScopeManager
	span          Span
	toRestore     *goroutineScope
	finishOnClose bool
}

func (s *goroutineScope) Close() {
	gid := goid.Get()
	cur, ok := s.manager.current.Load(gid)
	if !ok || cur.(*goroutineScope) != s {
		// Not the current scope. This shouldn't happen if callers close in
		// LIFO order. Bail out.
		return
	}
	if s.finishOnClose {
		s.span.Finish()
	}
	if s.toRestore == nil {
		s.manager.current.Delete(gid)
	} else {
		s.manager.current.Store(gid, s.toRestore)
	}
}

func (s *goroutineScope) Span() Span {
	return s.span
}

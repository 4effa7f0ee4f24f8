// Package pool provides typed object recycling for the engine's
// high-churn records (nodes, transactions, shadows).
package pool

import "sync"

// Pool hands out reset instances of T and takes them back when every
// dependent view has released them.
type Pool[T any] struct {
	inner sync.Pool
	reset func(*T)
}

// New creates a pool; reset clears a recycled instance before reuse and
// may be nil for types without retained state.
func New[T any](reset func(*T)) *Pool[T] {
	return &Pool[T]{
		inner: sync.Pool{New: func() any { return new(T) }},
		reset: reset,
	}
}

// Get returns a cleared instance.
func (p *Pool[T]) Get() *T {
	return p.inner.Get().(*T)
}

// Put recycles an instance. Nil is ignored so callers can recycle
// cache lookups unconditionally.
func (p *Pool[T]) Put(x *T) {
	if x == nil {
		return
	}
	if p.reset != nil {
		p.reset(x)
	}
	p.inner.Put(x)
}

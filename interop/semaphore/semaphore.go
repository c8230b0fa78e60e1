// Package semaphore provides an adapter that mimics
// golang.org/x/sync/semaphore semantics using the local token counter. It
// enables incremental migration without changing call sites that expect a
// weighted semaphore.
package semaphore

import (
	"context"

	"github.com/NetPo4ki/go-tokens/tokens"
)

// Weighted is a semaphore-like wrapper over tokens.Counter. Acquire takes
// tokens, Release puts them back. Unlike the bare counter, a Weighted
// starts full: all n permits are available at construction.
type Weighted struct {
	c *tokens.Counter
}

// NewWeighted creates a semaphore with n permits, all available.
func NewWeighted(n int) *Weighted {
	c := tokens.New(n)
	for i := 0; i < n; i++ {
		c.Add()
	}
	return &Weighted{c: c}
}

// Acquire blocks until n permits are available or ctx is done. It returns
// nil on success and ctx.Err() on cancellation.
func (w *Weighted) Acquire(ctx context.Context, n int) error {
	return w.c.ConsumeContext(ctx, n)
}

// TryAcquire takes n permits without blocking, reporting whether it did.
func (w *Weighted) TryAcquire(n int) bool {
	return w.c.TryConsume(n)
}

// Release returns n permits. Releasing more permits than were acquired
// panics, matching golang.org/x/sync/semaphore.
func (w *Weighted) Release(n int) {
	for i := 0; i < n; i++ {
		if !w.c.Add() {
			panic("semaphore: released more than held")
		}
	}
}

package tokens

import (
	"context"
	"sync"
	"time"
)

// DefaultPollInterval bounds how long a cancellable wait can go without
// re-checking its cancel signal.
const DefaultPollInterval = 100 * time.Millisecond

type Option func(*Options)

type Options struct {
	PollInterval time.Duration
	Observer     Observer
}

func defaultOptions() Options { return Options{PollInterval: DefaultPollInterval} }

func WithPollInterval(d time.Duration) Option { return func(o *Options) { o.PollInterval = d } }

func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

// Observer receives counter events. Implementations must not call back into
// the Counter from a hook; hooks run outside the counter's lock but on the
// calling goroutine.
type Observer interface {
	TokenAdded(count int)
	AddRejected()
	ConsumeSatisfied(n int, wait time.Duration)
	ConsumeRejected(n int)
	ConsumeCancelled(n int, wait time.Duration)
}

// Counter is a bounded token counter safe for use by any number of
// producer and consumer goroutines. The count stays within [0, capacity];
// every mutation and observation happens under one mutex. Waiters are woken
// by closing a broadcast channel that is replaced on every successful Add.
type Counter struct {
	capacity int

	mu    sync.Mutex
	count int
	wake  chan struct{}

	opts Options
	obs  Observer
}

// New creates a Counter with the given capacity and zero tokens.
// A capacity of 0 is legal but makes consumption of n > 0 permanently
// impossible; negative capacities are clamped to 0.
func New(capacity int, optFns ...Option) *Counter {
	if capacity < 0 {
		capacity = 0
	}
	c := &Counter{capacity: capacity, wake: make(chan struct{}), opts: defaultOptions()}
	for _, fn := range optFns {
		fn(&c.opts)
	}
	if c.opts.PollInterval <= 0 {
		c.opts.PollInterval = DefaultPollInterval
	}
	c.obs = c.opts.Observer
	return c
}

// Capacity returns the fixed upper bound set at construction.
func (c *Counter) Capacity() int { return c.capacity }

// Count returns the current number of available tokens. The value is a
// snapshot and may be stale by the time the caller looks at it.
func (c *Counter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Add makes one token available. It never blocks: if the counter is at
// capacity it returns false and the caller is expected to retry later or
// drop the token. On success every waiter is woken so each can re-check
// its own requested amount.
func (c *Counter) Add() bool {
	c.mu.Lock()
	if c.count >= c.capacity {
		c.mu.Unlock()
		if c.obs != nil {
			c.obs.AddRejected()
		}
		return false
	}
	c.count++
	n := c.count
	close(c.wake)
	c.wake = make(chan struct{})
	c.mu.Unlock()
	if c.obs != nil {
		c.obs.TokenAdded(n)
	}
	return true
}

// TryConsume takes n tokens if at least n are available, without blocking.
// The check and the decrement are one atomic step under the lock. n must be
// non-negative.
func (c *Counter) TryConsume(n int) bool {
	checkRequest(n)
	c.mu.Lock()
	if c.count < n {
		c.mu.Unlock()
		if c.obs != nil {
			c.obs.ConsumeRejected(n)
		}
		return false
	}
	c.count -= n
	c.mu.Unlock()
	if c.obs != nil {
		c.obs.ConsumeSatisfied(n, 0)
	}
	return true
}

// Consume blocks until n tokens are available, takes them, and returns true.
//
// There is no escape mechanism: if producers never supply n tokens the call
// blocks forever. That makes Consume unsafe outside contexts with an
// external deadline guarantee; prefer ConsumeCancellable or ConsumeContext.
func (c *Counter) Consume(n int) bool {
	checkRequest(n)
	start := time.Now()
	c.mu.Lock()
	for c.count < n {
		ch := c.wake
		c.mu.Unlock()
		<-ch
		c.mu.Lock()
	}
	c.count -= n
	c.mu.Unlock()
	if c.obs != nil {
		c.obs.ConsumeSatisfied(n, time.Since(start))
	}
	return true
}

// ConsumeCancellable blocks until n tokens are available or cancel is set,
// whichever comes first. It returns true after taking the tokens, false if
// cancelled. A nil cancel never fires, making the call equivalent to
// Consume.
//
// The availability check runs before the cancel check, so a request that is
// already satisfiable succeeds even when cancel is set. Cancellation is
// observed immediately via the signal's channel in the common case, and
// within one poll interval in the worst case. A cancelled call leaves the
// count untouched.
func (c *Counter) ConsumeCancellable(n int, cancel *Signal) bool {
	checkRequest(n)
	start := time.Now()
	c.mu.Lock()
	for c.count < n {
		if cancel.IsSet() {
			c.mu.Unlock()
			if c.obs != nil {
				c.obs.ConsumeCancelled(n, time.Since(start))
			}
			return false
		}
		ch := c.wake
		c.mu.Unlock()
		select {
		case <-ch:
		case <-cancel.Done():
			if c.obs != nil {
				c.obs.ConsumeCancelled(n, time.Since(start))
			}
			return false
		case <-time.After(c.opts.PollInterval):
		}
		c.mu.Lock()
		// Loop re-checks the count: another consumer may have raced
		// ahead and taken the tokens between the wake and the relock.
	}
	c.count -= n
	c.mu.Unlock()
	if c.obs != nil {
		c.obs.ConsumeSatisfied(n, time.Since(start))
	}
	return true
}

// ConsumeContext is the context-native form of ConsumeCancellable: it waits
// directly on ctx.Done(), so cancellation needs no polling interval. It
// returns nil after taking the tokens, or ctx.Err() if the context is
// cancelled first.
func (c *Counter) ConsumeContext(ctx context.Context, n int) error {
	checkRequest(n)
	start := time.Now()
	c.mu.Lock()
	for c.count < n {
		if err := ctx.Err(); err != nil {
			c.mu.Unlock()
			if c.obs != nil {
				c.obs.ConsumeCancelled(n, time.Since(start))
			}
			return err
		}
		ch := c.wake
		c.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			if c.obs != nil {
				c.obs.ConsumeCancelled(n, time.Since(start))
			}
			return ctx.Err()
		}
		c.mu.Lock()
	}
	c.count -= n
	c.mu.Unlock()
	if c.obs != nil {
		c.obs.ConsumeSatisfied(n, time.Since(start))
	}
	return nil
}

func checkRequest(n int) {
	if n < 0 {
		panic("tokens: negative request")
	}
}

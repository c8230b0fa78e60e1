package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/NetPo4ki/go-tokens/tokens"
)

// DefaultInterval is the production pace used when none is given.
const DefaultInterval = 500 * time.Millisecond

// Producer adds one token to a shared counter per interval until stopped.
// Adds rejected at capacity are counted and dropped; the producer never
// blocks on a full counter.
type Producer struct {
	counter *tokens.Counter
	lim     *rate.Limiter

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	startOnce sync.Once

	produced atomic.Int64
	rejected atomic.Int64
}

// NewProducer creates a producer for counter pacing one Add per interval.
// A non-positive interval falls back to DefaultInterval. The producer does
// not run until Start is called.
func NewProducer(counter *tokens.Counter, interval time.Duration) *Producer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Producer{
		counter: counter,
		lim:     rate.NewLimiter(rate.Every(interval), 1),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the production loop. Repeated calls are no-ops.
func (p *Producer) Start() {
	p.startOnce.Do(func() {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				if err := p.lim.Wait(p.ctx); err != nil {
					return
				}
				if p.counter.Add() {
					p.produced.Add(1)
				} else {
					p.rejected.Add(1)
				}
			}
		}()
	})
}

// Stop halts the loop and waits for the goroutine to exit. Safe to call
// multiple times and before Start.
func (p *Producer) Stop() {
	p.cancel()
	p.wg.Wait()
}

// Produced returns how many tokens this producer has successfully added.
func (p *Producer) Produced() int64 { return p.produced.Load() }

// Rejected returns how many adds were refused because the counter was full.
func (p *Producer) Rejected() int64 { return p.rejected.Load() }

package worker

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/NetPo4ki/go-tokens/tokens"
)

type ConsumerOption func(*ConsumerOptions)

type ConsumerOptions struct {
	// Callback is invoked with the result of every consume attempt,
	// including the final failed one.
	Callback func(ok bool)
	// MaxAttempts bounds the number of consume attempts; 0 means no bound.
	MaxAttempts int
}

func WithCallback(fn func(ok bool)) ConsumerOption {
	return func(o *ConsumerOptions) { o.Callback = fn }
}

func WithMaxAttempts(n int) ConsumerOption {
	return func(o *ConsumerOptions) { o.MaxAttempts = n }
}

// Consumer repeatedly takes a fixed number of tokens from a shared counter.
// Each attempt uses the cancellable consume form with the consumer's own
// stop signal, so Stop interrupts a wait within the counter's poll bound.
// The loop exits on the first failed attempt or when MaxAttempts is reached.
type Consumer struct {
	counter *tokens.Counter
	need    int
	opts    ConsumerOptions

	stop      *tokens.Signal
	wg        sync.WaitGroup
	startOnce sync.Once

	consumed  atomic.Int64
	elapsedNs atomic.Int64
}

// NewConsumer creates a consumer taking need tokens per attempt. The
// consumer does not run until Start is called.
func NewConsumer(counter *tokens.Counter, need int, optFns ...ConsumerOption) *Consumer {
	c := &Consumer{counter: counter, need: need, stop: tokens.NewSignal()}
	for _, fn := range optFns {
		fn(&c.opts)
	}
	return c
}

// Start launches the consumption loop. Repeated calls are no-ops.
func (c *Consumer) Start() {
	c.startOnce.Do(func() {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			start := time.Now()
			defer func() { c.elapsedNs.Store(time.Since(start).Nanoseconds()) }()
			for attempts := 0; ; attempts++ {
				if c.opts.MaxAttempts > 0 && attempts >= c.opts.MaxAttempts {
					return
				}
				ok := c.counter.ConsumeCancellable(c.need, c.stop)
				if c.opts.Callback != nil {
					c.opts.Callback(ok)
				}
				if !ok {
					return
				}
				c.consumed.Add(1)
			}
		}()
	})
}

// Stop sets the consumer's stop signal and waits for the goroutine to exit.
// Safe to call multiple times and before Start.
func (c *Consumer) Stop() {
	c.stop.Set()
	c.wg.Wait()
}

// Consumed returns the number of successful attempts. Tokens taken in total
// is Consumed() times the per-attempt amount.
func (c *Consumer) Consumed() int64 { return c.consumed.Load() }

// Elapsed returns the loop's wall-clock running time. It is meaningful only
// after the loop has exited.
func (c *Consumer) Elapsed() time.Duration {
	return time.Duration(c.elapsedNs.Load())
}

package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/NetPo4ki/go-tokens/tokens"
)

// Metrics is a Prometheus-backed observer for a token counter. It tracks
// add/consume outcomes and the time consumers spend waiting.
type Metrics struct {
	tokensAdded       prometheus.Counter
	addsRejected      prometheus.Counter
	tokensConsumed    prometheus.Counter
	consumesRejected  prometheus.Counter
	consumesCancelled prometheus.Counter
	waitSeconds       prometheus.Histogram
}

var _ tokens.Observer = (*Metrics)(nil)

// New returns a Metrics observer with its collectors registered on reg.
// A nil reg skips registration, which is handy in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		tokensAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tokens_added_total",
			Help: "Tokens successfully added to the counter.",
		}),
		addsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tokens_adds_rejected_total",
			Help: "Add attempts rejected because the counter was at capacity.",
		}),
		tokensConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tokens_consumed_total",
			Help: "Tokens taken by successful consume calls.",
		}),
		consumesRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tokens_consumes_rejected_total",
			Help: "Non-blocking consume attempts that found too few tokens.",
		}),
		consumesCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tokens_consumes_cancelled_total",
			Help: "Blocking consume calls that were cancelled before being satisfied.",
		}),
		waitSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tokens_consume_wait_seconds",
			Help:    "Time consume calls spent waiting, satisfied or cancelled.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.tokensAdded,
			m.addsRejected,
			m.tokensConsumed,
			m.consumesRejected,
			m.consumesCancelled,
			m.waitSeconds,
		)
	}
	return m
}

func (m *Metrics) TokenAdded(_ int) { m.tokensAdded.Inc() }

func (m *Metrics) AddRejected() { m.addsRejected.Inc() }

func (m *Metrics) ConsumeSatisfied(n int, wait time.Duration) {
	m.tokensConsumed.Add(float64(n))
	m.waitSeconds.Observe(wait.Seconds())
}

func (m *Metrics) ConsumeRejected(_ int) { m.consumesRejected.Inc() }

func (m *Metrics) ConsumeCancelled(_ int, wait time.Duration) {
	m.consumesCancelled.Inc()
	m.waitSeconds.Observe(wait.Seconds())
}

// AvailableTokens returns a gauge that samples the counter's current count
// on every scrape. Register it alongside a Metrics observer.
func AvailableTokens(c *tokens.Counter) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "tokens_available",
		Help: "Tokens currently available in the counter.",
	}, func() float64 { return float64(c.Count()) })
}

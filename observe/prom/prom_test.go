package prom

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/NetPo4ki/go-tokens/tokens"
)

func TestMetricsTrackCounterEvents(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	m := New(reg)
	c := tokens.New(2, tokens.WithObserver(m))

	c.Add()
	c.Add()
	c.Add() // rejected at capacity
	c.TryConsume(5)
	c.TryConsume(2)
	sig := tokens.NewSignal()
	sig.Set()
	c.ConsumeCancellable(1, sig)

	if got := testutil.ToFloat64(m.tokensAdded); got != 2 {
		t.Fatalf("tokens_added_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.addsRejected); got != 1 {
		t.Fatalf("tokens_adds_rejected_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.tokensConsumed); got != 2 {
		t.Fatalf("tokens_consumed_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.consumesRejected); got != 1 {
		t.Fatalf("tokens_consumes_rejected_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.consumesCancelled); got != 1 {
		t.Fatalf("tokens_consumes_cancelled_total = %v, want 1", got)
	}
}

func TestAvailableTokensGauge(t *testing.T) {
	t.Parallel()
	c := tokens.New(5)
	g := AvailableTokens(c)
	if got := testutil.ToFloat64(g); got != 0 {
		t.Fatalf("gauge = %v on empty counter", got)
	}
	c.Add()
	c.Add()
	if got := testutil.ToFloat64(g); got != 2 {
		t.Fatalf("gauge = %v, want 2", got)
	}
}

func TestWaitHistogramObservesCancelledWaits(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	m := New(reg)
	c := tokens.New(1, tokens.WithObserver(m), tokens.WithPollInterval(10*time.Millisecond))
	sig := tokens.NewSignal()
	done := make(chan struct{})
	go func() {
		c.ConsumeCancellable(1, sig)
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)
	sig.Set()
	<-done
	if got := testutil.CollectAndCount(m.waitSeconds); got != 1 {
		t.Fatalf("wait histogram series count = %d, want 1", got)
	}
}

package worker

import (
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/NetPo4ki/go-tokens/tokens"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestProducerAddsTokens(t *testing.T) {
	t.Parallel()
	c := tokens.New(100)
	p := NewProducer(c, 10*time.Millisecond)
	p.Start()
	time.Sleep(55 * time.Millisecond)
	p.Stop()
	produced := p.Produced()
	if produced < 1 {
		t.Fatal("producer added no tokens")
	}
	// Nothing consumes, so everything produced must still be there.
	if got := int64(c.Count()); got != produced {
		t.Fatalf("count = %d, produced = %d", got, produced)
	}
}

func TestProducerRespectsCapacity(t *testing.T) {
	t.Parallel()
	const capacity = 2
	c := tokens.New(capacity)
	p := NewProducer(c, time.Millisecond)
	p.Start()
	time.Sleep(50 * time.Millisecond)
	p.Stop()
	if got := c.Count(); got != capacity {
		t.Fatalf("count = %d, want %d", got, capacity)
	}
	if p.Produced() != capacity {
		t.Fatalf("produced = %d, want %d", p.Produced(), capacity)
	}
	if p.Rejected() == 0 {
		t.Fatal("expected rejected adds once at capacity")
	}
}

func TestProducerStopIdempotent(t *testing.T) {
	t.Parallel()
	c := tokens.New(10)
	p := NewProducer(c, 5*time.Millisecond)
	p.Start()
	p.Stop()
	p.Stop()
	after := p.Produced()
	time.Sleep(20 * time.Millisecond)
	if p.Produced() != after {
		t.Fatal("producer kept running after Stop")
	}
}

func TestProducerStopBeforeStart(t *testing.T) {
	t.Parallel()
	c := tokens.New(10)
	p := NewProducer(c, time.Millisecond)
	p.Stop()
	p.Start() // loop sees the cancelled context and exits
	p.Stop()
	if p.Produced() != 0 {
		t.Fatalf("produced = %d after stop-before-start", p.Produced())
	}
}

package otel

import (
	"time"

	"github.com/NetPo4ki/go-tokens/tokens"
)

// Nop is a no-op implementation of the tokens.Observer interface.
// It serves as a placeholder for an OpenTelemetry-backed observer without adding dependencies.
type Nop struct{}

var _ tokens.Observer = (*Nop)(nil)

// NewNop returns a no-op observer.
func NewNop() *Nop { return &Nop{} }

func (*Nop) TokenAdded(int)                        {}
func (*Nop) AddRejected()                          {}
func (*Nop) ConsumeSatisfied(int, time.Duration)   {}
func (*Nop) ConsumeRejected(int)                   {}
func (*Nop) ConsumeCancelled(int, time.Duration)   {}

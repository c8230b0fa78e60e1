package tokens

import "sync"

// Signal is an externally settable, one-way boolean flag used to cancel
// blocked consumers. Once set it stays set; Set is idempotent and safe to
// call from any goroutine.
//
// The nil *Signal is valid and is never set. Passing it to
// ConsumeCancellable yields an uncancellable wait.
type Signal struct {
	once sync.Once
	done chan struct{}
}

// NewSignal returns an unset Signal.
func NewSignal() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Set fires the signal. Every current and future Done channel read unblocks
// and IsSet reports true from now on.
func (s *Signal) Set() {
	if s == nil {
		return
	}
	s.once.Do(func() { close(s.done) })
}

// IsSet reports whether the signal has fired.
func (s *Signal) IsSet() bool {
	if s == nil {
		return false
	}
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when the signal fires. For a nil Signal it
// returns nil, which blocks forever in a select.
func (s *Signal) Done() <-chan struct{} {
	if s == nil {
		return nil
	}
	return s.done
}

package sequence

import (
	"sync"
	"time"
)

// Signal is a write-once readiness flag. It replaces polling a boolean: the
// sequencer reads when the signal fired and callers may block on Done.
type Signal struct {
	mu    sync.Mutex
	fired bool
	at    time.Time
	done  chan struct{}
}

func NewSignal() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Fire marks the signal ready at `at`. Only the first call has an effect; it
// reports whether this call fired the signal.
func (s *Signal) Fire(at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fired {
		return false
	}
	s.fired = true
	s.at = at
	close(s.done)
	return true
}

// Fired returns the firing time, if the signal fired.
func (s *Signal) Fired() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.at, s.fired
}

func (s *Signal) Done() <-chan struct{} {
	return s.done
}

// Package progress animates the loader percentage between fixed phases.
package progress

import (
	"math"
	"time"
)

// DefaultDuration is the length of one phase transition.
const DefaultDuration = 500 * time.Millisecond

// Display is the surface the animator writes to.
type Display interface {
	SetPercent(percent int)
	// SetFill receives the bar fill in [0,1].
	SetFill(fill float64)
}

type Phase struct {
	Start    int
	End      int
	Duration time.Duration
}

// Value samples the phase at elapsed time since its start. The result is rounded
// half-up and clamped to End.
func (p Phase) Value(elapsed time.Duration) int {
	return int(math.Floor(p.exact(elapsed) + 0.5))
}

func (p Phase) exact(elapsed time.Duration) float64 {
	f := 1.0
	if p.Duration > 0 {
		f = math.Min(float64(elapsed)/float64(p.Duration), 1)
	}
	if f < 0 {
		f = 0
	}
	return float64(p.Start) + float64(p.End-p.Start)*f
}

// Animator drives one phase at a time. Starting a new phase supersedes the
// running one.
type Animator struct {
	display Display
	phase   Phase
	startAt time.Time
	running bool
	last    int
}

func NewAnimator(display Display) *Animator {
	return &Animator{display: display}
}

// Start begins phase at `at` and writes its first value.
func (a *Animator) Start(phase Phase, at time.Time) {
	a.phase = phase
	a.startAt = at
	a.running = true
	a.write(phase.Start, float64(phase.Start))
}

// Running reports whether a phase is still interpolating.
func (a *Animator) Running() bool {
	return a.running
}

// Percent is the last value written to the display.
func (a *Animator) Percent() int {
	return a.last
}

// Advance writes the value for now. It is a no-op once the phase reached its end.
func (a *Animator) Advance(now time.Time) {
	if !a.running {
		return
	}
	elapsed := now.Sub(a.startAt)
	a.write(a.phase.Value(elapsed), a.phase.exact(elapsed))
	if a.phase.Duration <= 0 || elapsed >= a.phase.Duration {
		a.running = false
	}
}

func (a *Animator) write(percent int, exact float64) {
	a.last = percent
	if a.display == nil {
		return
	}
	a.display.SetPercent(percent)
	a.display.SetFill(math.Max(0, math.Min(exact/100, 1)))
}

// Package tween interpolates mgl32 vectors over wall-clock time.
//
// A Tweener is advanced from the frame loop. Each tween returns a Handle the caller
// may keep and wait on, or simply drop.
package tween

import (
	"context"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

type Vec3Options struct {
	Duration time.Duration
	Ease     Ease
	OnUpdate func(v mgl32.Vec3)
}

type vec3Tween struct {
	target   *mgl32.Vec3
	from, to mgl32.Vec3
	start    time.Time
	opts     Vec3Options
	handle   *Handle
}

// Handle tracks one tween or a group of tweens. Handles finish from
// Tweener.Advance and share its single-goroutine contract; Done and Wait may be
// used from anywhere.
type Handle struct {
	once    sync.Once
	done    chan struct{}
	pending int
	groups  []*Handle
}

func newHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

func (h *Handle) finish() {
	h.once.Do(func() {
		close(h.done)
		for _, g := range h.groups {
			g.memberFinished()
		}
		h.groups = nil
	})
}

func (h *Handle) memberFinished() {
	h.pending--
	if h.pending <= 0 {
		h.finish()
	}
}

// Done is closed once the tween reached its end value.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

func (h *Handle) Finished() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the tween finished or ctx is cancelled.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// All returns a handle that finishes when every given handle finished. It
// finishes in the Advance call that completes its last member.
func All(handles ...*Handle) *Handle {
	group := newHandle()
	for _, h := range handles {
		if h == nil || h.Finished() {
			continue
		}
		group.pending++
		h.groups = append(h.groups, group)
	}
	if group.pending == 0 {
		group.finish()
	}
	return group
}

// Tweener owns the active tweens. It is not safe for concurrent use; drive it from
// the frame loop.
type Tweener struct {
	active []*vec3Tween
}

func NewTweener() *Tweener {
	return &Tweener{}
}

// To animates *target from its current value to `to`, starting at `at`.
func (tw *Tweener) To(target *mgl32.Vec3, to mgl32.Vec3, at time.Time, opts Vec3Options) *Handle {
	if opts.Ease == nil {
		opts.Ease = Linear
	}
	t := &vec3Tween{
		target: target,
		from:   *target,
		to:     to,
		start:  at,
		opts:   opts,
		handle: newHandle(),
	}
	tw.active = append(tw.active, t)
	return t.handle
}

// Active reports the number of running tweens.
func (tw *Tweener) Active() int {
	return len(tw.active)
}

// Advance applies every running tween at time now and retires finished ones.
func (tw *Tweener) Advance(now time.Time) {
	kept := tw.active[:0]
	for _, t := range tw.active {
		if t.step(now) {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(tw.active); i++ {
		tw.active[i] = nil
	}
	tw.active = kept
}

// step returns false once the tween completed.
func (t *vec3Tween) step(now time.Time) bool {
	p := 1.0
	if t.opts.Duration > 0 {
		p = float64(now.Sub(t.start)) / float64(t.opts.Duration)
	}
	if p < 0 {
		return true
	}
	if p >= 1 {
		*t.target = t.to
	} else {
		e := float32(t.opts.Ease(p))
		*t.target = t.from.Add(t.to.Sub(t.from).Mul(e))
	}
	if t.opts.OnUpdate != nil {
		t.opts.OnUpdate(*t.target)
	}
	if p >= 1 {
		t.handle.finish()
		return false
	}
	return true
}

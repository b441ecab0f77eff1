// Package sequence runs the one-shot loading and intro timeline.
//
// The Sequencer is advanced from the frame loop with the current time. All waits are
// absolute deadlines: a transition is stamped with the deadline it satisfied rather
// than the tick that observed it, so the timeline does not depend on frame rate.
package sequence

import (
	"errors"
	"fmt"
	"time"

	"github.com/gekko3d/snowfall/intro/progress"
	"github.com/gekko3d/snowfall/intro/tween"
)

var (
	ErrAlreadyStarted = errors.New("sequence: already started")
	ErrAssetTimeout   = errors.New("sequence: timed out waiting for assets")
)

// Surface is the loader UI driven by the sequencer.
type Surface interface {
	ShowLoader(visible bool, at time.Time)
	// EndLoader starts fading the loader wrapper out.
	EndLoader(at time.Time)
	// RemoveLoader takes the loader off the interactive surface.
	RemoveLoader(at time.Time)
	ShowError(err error, at time.Time)
}

// IntroFunc starts the camera intro at `at` and returns its handle.
type IntroFunc func(at time.Time) *tween.Handle

type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

type Timings struct {
	ShowDelay     time.Duration
	Phase1Hold    time.Duration
	Phase2MinHold time.Duration
	SettleDelay   time.Duration
	Phase3Hold    time.Duration
	HideDelay     time.Duration
	Transition    time.Duration
	// AssetTimeout bounds AwaitingAssets. Zero waits forever.
	AssetTimeout time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		ShowDelay:     750 * time.Millisecond,
		Phase1Hold:    1000 * time.Millisecond,
		Phase2MinHold: 1000 * time.Millisecond,
		SettleDelay:   750 * time.Millisecond,
		Phase3Hold:    1000 * time.Millisecond,
		HideDelay:     250 * time.Millisecond,
		Transition:    progress.DefaultDuration,
		AssetTimeout:  30 * time.Second,
	}
}

// Total is the scripted time from Start to loader removal when assets are ready
// before the gate.
func (t Timings) Total() time.Duration {
	return t.ShowDelay + t.Phase1Hold + t.Phase2MinHold + t.SettleDelay + t.Phase3Hold + t.HideDelay + t.Transition
}

type Config struct {
	Ready   *Signal
	Surface Surface
	Display progress.Display
	Intro   IntroFunc
	Timings Timings
	Logger  Logger
}

type Transition struct {
	From State
	To   State
	At   time.Time
}

type Sequencer struct {
	cfg  Config
	anim *progress.Animator

	state      State
	enteredAt  time.Time
	phaseStart time.Time
	hideStep   int
	hideAt     time.Time

	intro    *tween.Handle
	err      error
	history  []Transition
	finished chan struct{}
}

func New(cfg Config) *Sequencer {
	if cfg.Ready == nil {
		cfg.Ready = NewSignal()
	}
	if cfg.Timings == (Timings{}) {
		cfg.Timings = DefaultTimings()
	}
	return &Sequencer{
		cfg:      cfg,
		anim:     progress.NewAnimator(cfg.Display),
		state:    Idle,
		finished: make(chan struct{}),
	}
}

func (s *Sequencer) State() State { return s.state }

func (s *Sequencer) Err() error { return s.err }

// Percent is the last percentage written to the display.
func (s *Sequencer) Percent() int { return s.anim.Percent() }

// Intro returns the intro handle once IntroAnimating was entered.
func (s *Sequencer) Intro() *tween.Handle { return s.intro }

// Finished is closed once the sequencer reached Done or Failed.
func (s *Sequencer) Finished() <-chan struct{} { return s.finished }

func (s *Sequencer) History() []Transition {
	out := make([]Transition, len(s.history))
	copy(out, s.history)
	return out
}

// EnteredAt returns when state was first entered.
func (s *Sequencer) EnteredAt(state State) (time.Time, bool) {
	for _, tr := range s.history {
		if tr.To == state {
			return tr.At, true
		}
	}
	return time.Time{}, false
}

// Start reveals the loader at `at`. The sequence runs once per session.
func (s *Sequencer) Start(at time.Time) error {
	if s.state != Idle {
		return ErrAlreadyStarted
	}
	if s.cfg.Surface != nil {
		s.cfg.Surface.ShowLoader(true, at)
	}
	s.enter(ShowingLoader, at)
	return nil
}

// Advance runs every transition whose deadline is at or before now.
func (s *Sequencer) Advance(now time.Time) State {
	if s.state == Idle || s.state.Terminal() {
		return s.state
	}
	for s.step(now) {
	}
	s.anim.Advance(now)
	return s.state
}

func (s *Sequencer) step(now time.Time) bool {
	t := s.cfg.Timings

	switch s.state {
	case ShowingLoader:
		d := s.enteredAt.Add(t.ShowDelay)
		if now.Before(d) {
			return false
		}
		s.startPhase(progress.Phase{Start: 0, End: 32, Duration: t.Transition}, d)
		s.enter(Phase1, d)

	case Phase1:
		d := s.phaseStart.Add(t.Transition)
		if now.Before(d) {
			return false
		}
		s.enter(Delay, d)

	case Delay:
		d := latest(s.phaseStart.Add(t.Phase1Hold), s.enteredAt)
		if now.Before(d) {
			return false
		}
		s.startPhase(progress.Phase{Start: 32, End: 67, Duration: t.Transition}, d)
		s.enter(Phase2, d)

	case Phase2:
		d := s.phaseStart.Add(t.Transition)
		if now.Before(d) {
			return false
		}
		s.enter(AwaitingAssets, d)

	case AwaitingAssets:
		readyAt, ok := s.cfg.Ready.Fired()
		if t.AssetTimeout > 0 {
			deadline := s.enteredAt.Add(t.AssetTimeout)
			if (!ok && !now.Before(deadline)) || (ok && readyAt.After(deadline)) {
				s.fail(ErrAssetTimeout, deadline)
				return false
			}
		}
		if !ok {
			return false
		}
		gate := latest(readyAt, s.phaseStart.Add(t.Phase2MinHold), s.enteredAt)
		d := gate.Add(t.SettleDelay)
		if now.Before(d) {
			return false
		}
		s.startPhase(progress.Phase{Start: 67, End: 100, Duration: t.Transition}, d)
		s.enter(Phase3, d)

	case Phase3:
		d := s.phaseStart.Add(t.Phase3Hold)
		if now.Before(d) {
			return false
		}
		s.anim.Advance(d)
		if s.cfg.Surface != nil {
			s.cfg.Surface.ShowLoader(false, d)
		}
		s.hideStep = 0
		s.enter(HidingLoader, d)

	case HidingLoader:
		if s.hideStep == 0 {
			d := s.enteredAt.Add(t.HideDelay)
			if now.Before(d) {
				return false
			}
			if s.cfg.Surface != nil {
				s.cfg.Surface.EndLoader(d)
			}
			s.hideStep = 1
			s.hideAt = d
			return true
		}
		d := s.hideAt.Add(t.Transition)
		if now.Before(d) {
			return false
		}
		if s.cfg.Surface != nil {
			s.cfg.Surface.RemoveLoader(d)
		}
		s.enter(IntroAnimating, d)

	case IntroAnimating:
		if s.cfg.Intro != nil {
			s.intro = s.cfg.Intro(s.enteredAt)
		}
		s.enter(Done, s.enteredAt)
		close(s.finished)
		return false

	default:
		return false
	}
	return true
}

// startPhase settles the running phase at `at` before starting the next one, so
// the displayed value never steps backwards.
func (s *Sequencer) startPhase(phase progress.Phase, at time.Time) {
	s.anim.Advance(at)
	s.anim.Start(phase, at)
	s.phaseStart = at
}

func (s *Sequencer) enter(next State, at time.Time) {
	s.history = append(s.history, Transition{From: s.state, To: next, At: at})
	if s.cfg.Logger != nil {
		s.cfg.Logger.Debugf("sequence: %s -> %s", s.state, next)
	}
	s.state = next
	s.enteredAt = at
}

func (s *Sequencer) fail(err error, at time.Time) {
	s.err = fmt.Errorf("%s after %s: %w", s.state, s.cfg.Timings.AssetTimeout, err)
	if s.cfg.Logger != nil {
		s.cfg.Logger.Errorf("%v", s.err)
	}
	if s.cfg.Surface != nil {
		s.cfg.Surface.ShowError(s.err, at)
	}
	s.enter(Failed, at)
	close(s.finished)
}

func latest(first time.Time, rest ...time.Time) time.Time {
	out := first
	for _, t := range rest {
		if t.After(out) {
			out = t
		}
	}
	return out
}

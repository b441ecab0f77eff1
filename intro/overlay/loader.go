// Package overlay holds the 2D loading screen and UI buttons drawn over the scene.
package overlay

import (
	"time"

	"github.com/gekko3d/snowfall/intro/progress"
)

// fade interpolates linearly from one opacity to another.
type fade struct {
	from, to float64
	at       time.Time
	dur      time.Duration
}

func (f fade) value(now time.Time) float64 {
	if f.dur <= 0 || !now.Before(f.at.Add(f.dur)) {
		return f.to
	}
	if now.Before(f.at) {
		return f.from
	}
	p := float64(now.Sub(f.at)) / float64(f.dur)
	return f.from + (f.to-f.from)*p
}

func (f fade) settled(now time.Time) bool {
	return f.dur <= 0 || !now.Before(f.at.Add(f.dur))
}

// Loader is the loading screen state. It receives percentages from the progress
// animator and lifecycle calls from the sequencer.
type Loader struct {
	transition time.Duration

	percent int
	fill    float64

	active  bool
	content fade
	wrapper fade
	ended   bool
	removed bool
	err     error

	version uint64
}

func NewLoader(transition time.Duration) *Loader {
	if transition <= 0 {
		transition = progress.DefaultDuration
	}
	return &Loader{
		transition: transition,
		wrapper:    fade{from: 1, to: 1},
	}
}

func (l *Loader) SetPercent(p int) {
	if p == l.percent {
		return
	}
	l.percent = p
	l.version++
}

func (l *Loader) SetFill(f float64) {
	if f == l.fill {
		return
	}
	l.fill = f
	l.version++
}

// ShowLoader toggles the text and bar, fading over one transition.
func (l *Loader) ShowLoader(visible bool, at time.Time) {
	target := 0.0
	if visible {
		target = 1
	}
	l.content = fade{from: l.content.value(at), to: target, at: at, dur: l.transition}
	l.active = visible
	l.version++
}

// EndLoader starts fading the whole wrapper out.
func (l *Loader) EndLoader(at time.Time) {
	l.wrapper = fade{from: l.wrapper.value(at), to: 0, at: at, dur: l.transition}
	l.ended = true
	l.version++
}

// RemoveLoader drops the loader from the surface.
func (l *Loader) RemoveLoader(at time.Time) {
	l.wrapper = fade{from: 0, to: 0, at: at}
	l.content = fade{from: 0, to: 0, at: at}
	l.removed = true
	l.version++
}

// ErrorBackdropAlpha is the backdrop opacity once an error is shown, so the scene
// stays visible behind the message.
const ErrorBackdropAlpha = 0.6

// ShowError replaces the progress readout with a message and thins the backdrop.
func (l *Loader) ShowError(err error, at time.Time) {
	l.err = err
	l.content = fade{from: l.content.value(at), to: 1, at: at, dur: l.transition}
	l.wrapper = fade{from: l.wrapper.value(at), to: ErrorBackdropAlpha, at: at, dur: l.transition}
	l.version++
}

func (l *Loader) Percent() int    { return l.percent }
func (l *Loader) Fill() float64   { return l.fill }
func (l *Loader) Active() bool    { return l.active }
func (l *Loader) Ended() bool     { return l.ended }
func (l *Loader) Removed() bool   { return l.removed }
func (l *Loader) Err() error      { return l.err }
func (l *Loader) Version() uint64 { return l.version }

// ContentAlpha is the opacity of the percentage text and bar, or of the error
// message, which is not dimmed with the backdrop.
func (l *Loader) ContentAlpha(now time.Time) float64 {
	if l.removed {
		return 0
	}
	if l.err != nil {
		return l.content.value(now)
	}
	return l.content.value(now) * l.WrapperAlpha(now)
}

// WrapperAlpha is the opacity of the full-screen loader backdrop.
func (l *Loader) WrapperAlpha(now time.Time) float64 {
	if l.removed {
		return 0
	}
	return l.wrapper.value(now)
}

// Animating reports whether any fade is still in flight at now.
func (l *Loader) Animating(now time.Time) bool {
	if l.removed {
		return false
	}
	return !l.content.settled(now) || !l.wrapper.settled(now)
}

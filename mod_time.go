package snowfall

import (
	"time"
)

// Clock is the source of frame timestamps.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

type Time struct {
	Start   time.Time
	Time    time.Time
	Dt      time.Duration
	Elapsed time.Duration
	Frame   uint64
}

type TimeModule struct {
	// Clock defaults to the wall clock.
	Clock Clock
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	clock := mod.Clock
	if clock == nil {
		clock = wallClock{}
	}
	now := clock.Now()
	timeResource := &Time{
		Start: now,
		Time:  now,
	}
	cmd.AddResources(timeResource)
	cmd.UseSystem(System(func(t *Time) {
		advanceTime(t, clock.Now())
	}).InStage(Prelude))
}

func advanceTime(t *Time, now time.Time) {
	if now.Before(t.Time) {
		now = t.Time
	}
	t.Dt = now.Sub(t.Time)
	t.Time = now
	t.Elapsed = now.Sub(t.Start)
	t.Frame++
}

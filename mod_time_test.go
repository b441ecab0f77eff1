package snowfall

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// stepClock advances by step on every read.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

func TestAdvanceTime(t *testing.T) {
	t0 := time.Unix(500, 0)
	tm := &Time{Start: t0, Time: t0}

	advanceTime(tm, t0.Add(16*time.Millisecond))
	assert.Equal(t, 16*time.Millisecond, tm.Dt)
	assert.Equal(t, 16*time.Millisecond, tm.Elapsed)
	assert.Equal(t, uint64(1), tm.Frame)

	// a clock stepping backwards is clamped
	advanceTime(tm, t0)
	assert.Equal(t, time.Duration(0), tm.Dt)
	assert.Equal(t, 16*time.Millisecond, tm.Elapsed)
	assert.Equal(t, uint64(2), tm.Frame)
}

func TestTimeModule_UsesClock(t *testing.T) {
	clock := &stepClock{now: time.Unix(0, 0), step: 10 * time.Millisecond}
	app := NewAppBuilder().UseModule(TimeModule{Clock: clock}).Build()

	app.Step()
	app.Step()

	tm, ok := Resource[Time](app)
	assert.True(t, ok)
	assert.Equal(t, 20*time.Millisecond, tm.Elapsed)
	assert.Equal(t, 10*time.Millisecond, tm.Dt)
}

func TestInput_EdgeFlags(t *testing.T) {
	var in Input
	in.set(KeyM, true)
	assert.True(t, in.JustPressed[KeyM])
	assert.True(t, in.Pressed[KeyM])

	in.set(KeyM, true)
	assert.False(t, in.JustPressed[KeyM])

	in.set(KeyM, false)
	assert.True(t, in.JustReleased[KeyM])
	assert.False(t, in.Pressed[KeyM])
}

func TestWriterLogger(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWriterLogger("snowfall", false, &out, &errOut)

	l.Debugf("hidden")
	l.Infof("loaded %d", 3)
	l.Errorf("broken")
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[snowfall] INFO: loaded 3")
	assert.Contains(t, errOut.String(), "[snowfall] ERROR: broken")

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("shown")
	assert.Contains(t, out.String(), "DEBUG: shown")
}

func TestApp_LoggerFallsBackToNop(t *testing.T) {
	var nilApp *App
	assert.NotNil(t, nilApp.Logger())
	assert.NotNil(t, newApp().Logger())

	app := NewAppBuilder().UseModule(LoggingModule{Prefix: "x"}).Build()
	_, ok := app.Logger().(*DefaultLogger)
	assert.True(t, ok)
}

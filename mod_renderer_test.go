package snowfall

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatsTicker(t *testing.T) {
	t0 := time.Unix(0, 0)
	s := statsTicker{interval: 2 * time.Second}

	assert.False(t, s.due(t0))
	assert.False(t, s.due(t0.Add(1999*time.Millisecond)))
	assert.True(t, s.due(t0.Add(2*time.Second)))
	assert.False(t, s.due(t0.Add(3*time.Second)))

	// a long stall reports once, not once per missed interval
	assert.True(t, s.due(t0.Add(11*time.Second)))
	assert.False(t, s.due(t0.Add(11500*time.Millisecond)))
	assert.True(t, s.due(t0.Add(12*time.Second)))
}

func TestStatsTicker_Disabled(t *testing.T) {
	s := statsTicker{}
	assert.False(t, s.due(time.Unix(0, 0)))
	assert.False(t, s.due(time.Unix(100, 0)))
}

func TestSurfaceSize(t *testing.T) {
	w, h := surfaceSize(&WindowState{Width: 800, Height: 600, FramebufferWidth: 1600, FramebufferHeight: 1200})
	assert.Equal(t, uint32(1600), w)
	assert.Equal(t, uint32(1200), h)

	w, h = surfaceSize(&WindowState{Width: 800, Height: 600})
	assert.Equal(t, uint32(800), w)
	assert.Equal(t, uint32(600), h)

	w, h = surfaceSize(&WindowState{})
	assert.Equal(t, uint32(1), w)
	assert.Equal(t, uint32(1), h)
}

func TestWindowState_PixelRatio(t *testing.T) {
	assert.Equal(t, 2.0, (&WindowState{Width: 800, FramebufferWidth: 1600}).PixelRatio())
	assert.Equal(t, 1.0, (&WindowState{}).PixelRatio())

	ws := &WindowState{resized: true}
	assert.True(t, ws.TakeResize())
	assert.False(t, ws.TakeResize())
}

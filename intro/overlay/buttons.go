package overlay

import (
	"image"
	"math"
)

type ButtonID int

const (
	NoButton ButtonID = iota
	FullscreenButton
	SoundButton
)

func (b ButtonID) String() string {
	switch b {
	case FullscreenButton:
		return "fullscreen"
	case SoundButton:
		return "sound"
	default:
		return "none"
	}
}

const (
	buttonSize   = 40
	buttonMargin = 20
	buttonGap    = 12
)

// Buttons is the state of the corner controls. Fullscreen mirrors the window mode
// ("active" icon), SoundPaused stops the animated bars. Scale is framebuffer pixels
// per screen coordinate; zero means 1.
type Buttons struct {
	Fullscreen  bool
	SoundPaused bool
	Hovered     ButtonID
	Scale       float64
}

func (b *Buttons) scale() float64 {
	if b.Scale <= 0 {
		return 1
	}
	return b.Scale
}

// Rect returns the button bounds in framebuffer pixels for a viewport, anchored
// to the bottom right corner.
func (b *Buttons) Rect(id ButtonID, width, height int) image.Rectangle {
	s := b.scale()
	size := scaled(buttonSize, s)
	margin := scaled(buttonMargin, s)
	y := height - margin - size
	x := width - margin - size
	switch id {
	case FullscreenButton:
	case SoundButton:
		x -= size + scaled(buttonGap, s)
	default:
		return image.Rectangle{}
	}
	return image.Rect(x, y, x+size, y+size)
}

// scaled converts a length in screen coordinates to framebuffer pixels, never
// below one pixel.
func scaled(v int, s float64) int {
	return max(int(math.Round(float64(v)*s)), 1)
}

// HitTest returns the button under (x, y), or NoButton.
func (b *Buttons) HitTest(x, y float64, width, height int) ButtonID {
	p := image.Pt(int(x), int(y))
	for _, id := range []ButtonID{FullscreenButton, SoundButton} {
		if p.In(b.Rect(id, width, height)) {
			return id
		}
	}
	return NoButton
}

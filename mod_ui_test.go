package snowfall

import (
	"image"
	"testing"
	"time"

	"github.com/gekko3d/snowfall/intro/overlay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func click(x, y float64) *Input {
	in := &Input{MouseX: x, MouseY: y}
	in.JustPressed[MouseButtonLeft] = true
	return in
}

func TestHandleUiInput_Clicks(t *testing.T) {
	ui := &UiState{}

	intent := handleUiInput(click(750, 550), ui, 800, 600, false)
	assert.Equal(t, uiIntent{ToggleFullscreen: true}, intent)
	assert.Equal(t, overlay.FullscreenButton, ui.Buttons.Hovered)

	intent = handleUiInput(click(700, 560), ui, 800, 600, false)
	assert.Equal(t, uiIntent{ToggleSound: true}, intent)

	intent = handleUiInput(click(100, 100), ui, 800, 600, false)
	assert.False(t, intent.requested())
	assert.Equal(t, overlay.NoButton, ui.Buttons.Hovered)
}

func TestHandleUiInput_HoverWithoutClick(t *testing.T) {
	ui := &UiState{}
	intent := handleUiInput(&Input{MouseX: 750, MouseY: 550}, ui, 800, 600, false)
	assert.False(t, intent.requested())
	assert.Equal(t, overlay.FullscreenButton, ui.Buttons.Hovered)
}

func TestHandleUiInput_Keys(t *testing.T) {
	ui := &UiState{}

	in := &Input{}
	in.JustPressed[KeyF11] = true
	assert.True(t, handleUiInput(in, ui, 800, 600, false).ToggleFullscreen)

	in = &Input{}
	in.JustPressed[KeyM] = true
	assert.True(t, handleUiInput(in, ui, 800, 600, false).ToggleSound)

	in = &Input{}
	in.JustPressed[KeyEscape] = true
	assert.Equal(t, uiIntent{ExitFullscreen: true}, handleUiInput(in, ui, 800, 600, true))
	assert.Equal(t, uiIntent{Quit: true}, handleUiInput(in, ui, 800, 600, false))
}

type fakePlayer struct {
	paused []bool
	closed bool
}

func (p *fakePlayer) SetPaused(paused bool) { p.paused = append(p.paused, paused) }
func (p *fakePlayer) Close()                { p.closed = true }

func TestSoundState_ToggleBeforeAndAfterLoad(t *testing.T) {
	s := &SoundState{Enabled: true}
	assert.False(t, s.Playing())

	assert.False(t, s.Toggle())
	p := &fakePlayer{}
	s.attach(p)
	assert.Equal(t, []bool{true}, p.paused)
	assert.False(t, s.Playing())

	assert.True(t, s.Toggle())
	assert.Equal(t, []bool{true, false}, p.paused)
	assert.True(t, s.Playing())

	replacement := &fakePlayer{}
	s.attach(replacement)
	assert.True(t, p.closed)
	assert.Equal(t, []bool{false}, replacement.paused)

	s.close()
	assert.True(t, replacement.closed)
	assert.False(t, s.Loaded())
}

func TestDecodeTrack_MissingFile(t *testing.T) {
	_, err := decodeTrack("does/not/exist.mp3")
	assert.Error(t, err)
}

func TestUiPaintSystem_MirrorsWindowAndSound(t *testing.T) {
	painter, err := overlay.NewPainter(16)
	require.NoError(t, err)
	ui := &UiState{Painter: painter}
	ws := &WindowState{FramebufferWidth: 320, FramebufferHeight: 240, Fullscreen: true}
	sound := &SoundState{}
	loader := overlay.NewLoader(0)
	now := time.Unix(10, 0)
	tm := &Time{Start: now, Time: now}

	cmd := newApp().Commands()

	uiPaintSystem(tm, ui, loader, ws, sound, cmd)
	require.NotNil(t, ui.Frame)
	assert.Equal(t, ui.Frame.Bounds(), ui.Dirty)
	assert.Equal(t, 320, ui.Frame.Bounds().Dx())
	assert.True(t, ui.Buttons.Fullscreen)
	assert.True(t, ui.Buttons.SoundPaused)

	ui.Dirty = image.Rectangle{}
	uiPaintSystem(tm, ui, loader, ws, sound, cmd)
	assert.True(t, ui.Dirty.Empty())
}

func TestUiPaintSystem_ScalesByPixelRatio(t *testing.T) {
	painter, err := overlay.NewPainter(16)
	require.NoError(t, err)
	ui := &UiState{Painter: painter}
	ws := &WindowState{Width: 800, Height: 600, FramebufferWidth: 1600, FramebufferHeight: 1200}
	sound := &SoundState{Enabled: true}
	loader := overlay.NewLoader(0)
	now := time.Unix(10, 0)
	tm := &Time{Start: now, Time: now}
	cmd := newApp().Commands()

	uiPaintSystem(tm, ui, loader, ws, sound, cmd)
	assert.Equal(t, 2.0, ui.Buttons.Scale)
	assert.Equal(t, 2.0, painter.Scale())
	assert.Equal(t, image.Rect(0, 0, 1600, 1200), ui.Dirty)

	// Only the sound bars move: the dirty region is the sound button.
	ui.Dirty = image.Rectangle{}
	tm.Elapsed = 100 * time.Millisecond
	uiPaintSystem(tm, ui, loader, ws, sound, cmd)
	assert.Equal(t, ui.Buttons.Rect(overlay.SoundButton, 1600, 1200), ui.Dirty)
	assert.Equal(t, 80, ui.Dirty.Dx())
}

func TestUiInputSystem_HoversScaledButtons(t *testing.T) {
	ui := &UiState{}
	ws := &WindowState{Width: 800, Height: 600, FramebufferWidth: 1600, FramebufferHeight: 1200}
	sound := &SoundState{}

	// Fullscreen button at scale 2 spans x 1480..1560, y 1080..1160.
	uiInputSystem(&Input{MouseX: 1500, MouseY: 1100}, ui, ws, sound, newApp().Commands())
	assert.Equal(t, 2.0, ui.Buttons.Scale)
	assert.Equal(t, overlay.FullscreenButton, ui.Buttons.Hovered)
}

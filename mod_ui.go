package snowfall

import (
	"image"
	"os"

	"github.com/gekko3d/snowfall/intro/overlay"
)

type UiModule struct {
	FontSize float64
	// FontPath overrides the bundled face. A broken file falls back with a warning.
	FontPath string
}

// UiState is the corner controls plus the last painted overlay. Dirty collects
// the repainted parts of Frame until the renderer uploaded them.
type UiState struct {
	Buttons overlay.Buttons
	Painter *overlay.Painter
	Frame   *image.RGBA
	Dirty   image.Rectangle
}

// uiIntent is what one frame of input asks for.
type uiIntent struct {
	ToggleFullscreen bool
	ExitFullscreen   bool
	ToggleSound      bool
	Quit             bool
}

func (i uiIntent) requested() bool {
	return i.ToggleFullscreen || i.ExitFullscreen || i.ToggleSound || i.Quit
}

func (mod UiModule) Install(app *App, cmd *Commands) {
	size := mod.FontSize
	if size <= 0 {
		size = 22
	}
	painter, err := mod.painter(app.Logger(), size)
	if err != nil {
		app.Logger().Errorf("ui: %v", err)
		panic(err)
	}
	cmd.AddResources(&UiState{Painter: painter})

	app.UseSystem(System(uiInputSystem).InStage(Update).RunAlways())
	app.UseSystem(System(uiPaintSystem).InStage(PreRender).RunAlways())
}

func (mod UiModule) painter(logger Logger, size float64) (*overlay.Painter, error) {
	if mod.FontPath != "" {
		data, err := os.ReadFile(mod.FontPath)
		if err == nil {
			var p *overlay.Painter
			if p, err = overlay.NewPainterWithFont(data, size); err == nil {
				return p, nil
			}
		}
		logger.Warnf("ui: font %s unusable, using default: %v", mod.FontPath, err)
	}
	return overlay.NewPainter(size)
}

// handleUiInput maps clicks and shortcuts to intents and tracks hover. Buttons are
// hit-tested in framebuffer pixels.
func handleUiInput(input *Input, ui *UiState, width, height int, fullscreen bool) uiIntent {
	var intent uiIntent

	ui.Buttons.Hovered = ui.Buttons.HitTest(input.MouseX, input.MouseY, width, height)
	if input.JustPressed[MouseButtonLeft] {
		switch ui.Buttons.Hovered {
		case overlay.FullscreenButton:
			intent.ToggleFullscreen = true
		case overlay.SoundButton:
			intent.ToggleSound = true
		}
	}

	if input.JustPressed[KeyF] || input.JustPressed[KeyF11] {
		intent.ToggleFullscreen = true
	}
	if input.JustPressed[KeyM] {
		intent.ToggleSound = true
	}
	if input.JustPressed[KeyEscape] {
		if fullscreen {
			intent.ExitFullscreen = true
		} else {
			intent.Quit = true
		}
	}
	return intent
}

func uiInputSystem(input *Input, ui *UiState, ws *WindowState, sound *SoundState, cmd *Commands) {
	ui.Buttons.Scale = ws.PixelRatio()
	intent := handleUiInput(input, ui, ws.FramebufferWidth, ws.FramebufferHeight, ws.Fullscreen)
	if !intent.requested() {
		return
	}
	switch {
	case intent.ToggleFullscreen:
		ws.ToggleFullscreen()
	case intent.ExitFullscreen:
		ws.SetFullscreen(false)
	}
	if intent.ToggleSound {
		sound.Toggle()
	}
	if intent.Quit {
		cmd.Logger().Infof("quit requested")
		cmd.Exit()
	}
}

// uiPaintSystem sizes the overlay by the window's pixel ratio so text and buttons
// keep their screen size on HiDPI displays.
func uiPaintSystem(t *Time, ui *UiState, loader *overlay.Loader, ws *WindowState, sound *SoundState, cmd *Commands) {
	ui.Buttons.Fullscreen = ws.Fullscreen
	ui.Buttons.SoundPaused = !sound.Enabled
	ui.Buttons.Scale = ws.PixelRatio()
	if err := ui.Painter.SetScale(ui.Buttons.Scale); err != nil {
		cmd.Logger().Warnf("ui: %v", err)
	}

	frame, dirty := ui.Painter.Paint(loader, &ui.Buttons, ws.FramebufferWidth, ws.FramebufferHeight, t.Elapsed, t.Time)
	if !dirty.Empty() {
		ui.Frame = frame
		ui.Dirty = ui.Dirty.Union(dirty)
	}
}

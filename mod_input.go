package snowfall

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyF int = iota
	KeyM
	KeySpace
	KeyEscape
	KeyF11
	MouseButtonLeft
	MouseButtonRight
	inputSlots
)

type InputModule struct{}

// Input is the per-frame keyboard and mouse snapshot. Mouse coordinates are in
// framebuffer pixels.
type Input struct {
	Pressed [inputSlots]bool

	JustPressed  [inputSlots]bool
	JustReleased [inputSlots]bool

	MouseX, MouseY float64
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

func inputSystem(s *WindowState, input *Input) {
	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		input.set(key, s.windowGlfw.GetKey(glfwKey) == glfw.Press)
	}
	for btn, glfwBtn := range mouseToGlfw {
		input.set(btn, s.windowGlfw.GetMouseButton(glfwBtn) == glfw.Press)
	}

	mx, my := s.windowGlfw.GetCursorPos()
	ratio := s.PixelRatio()
	input.MouseX = mx * ratio
	input.MouseY = my * ratio
}

// set records the current state of a slot and derives the edge flags.
func (input *Input) set(slot int, down bool) {
	input.JustPressed[slot] = down && !input.Pressed[slot]
	input.JustReleased[slot] = !down && input.Pressed[slot]
	input.Pressed[slot] = down
}

var keyToGlfw = map[int]glfw.Key{
	KeyF:      glfw.KeyF,
	KeyM:      glfw.KeyM,
	KeySpace:  glfw.KeySpace,
	KeyEscape: glfw.KeyEscape,
	KeyF11:    glfw.KeyF11,
}

var mouseToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:  glfw.MouseButtonLeft,
	MouseButtonRight: glfw.MouseButtonRight,
}

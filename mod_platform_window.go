package snowfall

import (
	"reflect"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState is the shared GLFW window. Sizes are tracked in screen coordinates
// (Width, Height) and framebuffer pixels (FramebufferWidth, FramebufferHeight).
type WindowState struct {
	windowGlfw *glfw.Window
	title      string

	Width             int
	Height            int
	FramebufferWidth  int
	FramebufferHeight int
	Fullscreen        bool

	resized bool
	// windowed geometry restored when leaving fullscreen
	windowedX, windowedY          int
	windowedWidth, windowedHeight int
}

// PlatformWindowModule ensures a single shared GLFW window (WindowState) is created
// and made available as a resource for the renderer and input modules.
// Install is idempotent: if a WindowState resource already exists, it is reused.
type PlatformWindowModule struct {
	Width      int
	Height     int
	Title      string
	Fullscreen bool
}

// NewPlatformWindow creates a module that provides a shared WindowState resource.
// If Width/Height are zero, sensible defaults are used.
func NewPlatformWindow(cfg WindowConfig) *PlatformWindowModule {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title == "" {
		cfg.Title = "Snowfall"
	}
	return &PlatformWindowModule{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Title:      cfg.Title,
		Fullscreen: cfg.Fullscreen,
	}
}

// Install provides the WindowState resource if missing.
func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	t := reflect.TypeOf((*WindowState)(nil)).Elem()
	if _, ok := app.resources[t]; ok {
		return
	}

	ws := createWindowState(m.Width, m.Height, m.Title)
	app.addResources(ws)
	app.onCleanup(ws.destroy)
	if m.Fullscreen {
		ws.SetFullscreen(true)
	}

	cmd.UseSystem(System(func(ws *WindowState, cmd *Commands) {
		if ws.windowGlfw.ShouldClose() {
			cmd.Exit()
		}
	}).InStage(Finale))
}

func createWindowState(width int, height int, title string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // Important: tell GLFW we don't want OpenGL
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		panic(err)
	}

	ws := &WindowState{
		windowGlfw: win,
		title:      title,
		Width:      width,
		Height:     height,
	}
	ws.FramebufferWidth, ws.FramebufferHeight = win.GetFramebufferSize()

	win.SetSizeCallback(func(_ *glfw.Window, w, h int) {
		ws.Width, ws.Height = w, h
	})
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		ws.FramebufferWidth, ws.FramebufferHeight = w, h
		ws.resized = true
	})
	return ws
}

// TakeResize reports whether the framebuffer changed size since the last call.
func (ws *WindowState) TakeResize() bool {
	r := ws.resized
	ws.resized = false
	return r
}

// PixelRatio is framebuffer pixels per screen coordinate.
func (ws *WindowState) PixelRatio() float64 {
	if ws.Width <= 0 {
		return 1
	}
	r := float64(ws.FramebufferWidth) / float64(ws.Width)
	if r <= 0 {
		return 1
	}
	return r
}

func (ws *WindowState) ToggleFullscreen() {
	ws.SetFullscreen(!ws.Fullscreen)
}

// SetFullscreen moves the window to the primary monitor at its current video mode,
// or back to the remembered windowed geometry.
func (ws *WindowState) SetFullscreen(on bool) {
	if on == ws.Fullscreen {
		return
	}
	if on {
		monitor := glfw.GetPrimaryMonitor()
		if monitor == nil {
			return
		}
		mode := monitor.GetVideoMode()
		ws.windowedX, ws.windowedY = ws.windowGlfw.GetPos()
		ws.windowedWidth, ws.windowedHeight = ws.windowGlfw.GetSize()
		ws.windowGlfw.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	} else {
		ws.windowGlfw.SetMonitor(nil, ws.windowedX, ws.windowedY, ws.windowedWidth, ws.windowedHeight, 0)
	}
	ws.Fullscreen = on
}

func (ws *WindowState) destroy() {
	ws.windowGlfw.Destroy()
	glfw.Terminate()
}

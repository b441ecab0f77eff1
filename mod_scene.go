package snowfall

import (
	"github.com/gekko3d/snowfall/scenert/core"
)

const (
	// StateLoading runs the loading screen and the intro sequence.
	StateLoading State = iota
	// StateExploring is the interactive scene after the loader was removed.
	StateExploring
	StateQuit
)

// SceneModule provides the render context (*core.Scene) and the camera. The camera
// aspect follows the window when one is installed.
type SceneModule struct{}

func (SceneModule) Install(app *App, cmd *Commands) {
	aspect := float32(0)
	if ws, ok := Resource[WindowState](app); ok && ws.FramebufferHeight > 0 {
		aspect = float32(ws.FramebufferWidth) / float32(ws.FramebufferHeight)
	}
	cmd.AddResources(core.NewScene(), core.NewCamera(aspect))
}

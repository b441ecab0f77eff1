package snowfall

import (
	"image"
	"time"

	"github.com/gekko3d/snowfall/scenert/core"
	"github.com/gekko3d/snowfall/scenert/gpu"
)

type RendererModule struct {
	ShadowMapSize uint32
	// StatsInterval between render statistics lines. Zero disables them.
	StatsInterval time.Duration
}

// RenderState holds the GPU objects owned by the renderer module.
type RenderState struct {
	gpu      *GpuState
	renderer *gpu.Renderer
	stats    statsTicker
}

func (mod RendererModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, RendererWGPU)

	ws, ok := Resource[WindowState](app)
	if !ok {
		panic("RendererModule requires PlatformWindowModule")
	}
	gs := createGpuState(ws)
	w, h := surfaceSize(ws)
	renderer, err := gpu.NewRenderer(gs.device, gs.queue, gs.surfaceConfig.Format, w, h, mod.ShadowMapSize)
	if err != nil {
		app.Logger().Errorf("renderer: %v", err)
		panic(err)
	}
	app.Logger().Infof("renderer ready (%dx%d, %v)", w, h, gs.surfaceConfig.Format)

	state := &RenderState{
		gpu:      gs,
		renderer: renderer,
		stats:    statsTicker{interval: mod.StatsInterval},
	}
	cmd.AddResources(state)
	app.onCleanup(func() {
		renderer.Release()
		gs.release()
	})

	app.UseSystem(System(prepareFrameSystem).InStage(PreRender).RunAlways())
	app.UseSystem(System(renderFrameSystem).InStage(Render).RunAlways())
	app.UseSystem(System(renderStatsSystem).InStage(PostRender).RunAlways())
}

func prepareFrameSystem(rs *RenderState, ws *WindowState, scene *core.Scene, cam *core.Camera, ui *UiState, cmd *Commands) {
	if ws.TakeResize() {
		if rs.gpu.reconfigure(ws.FramebufferWidth, ws.FramebufferHeight) {
			if err := rs.renderer.Resize(uint32(ws.FramebufferWidth), uint32(ws.FramebufferHeight)); err != nil {
				cmd.Logger().Errorf("resize: %v", err)
			}
			cam.SetViewport(ws.FramebufferWidth, ws.FramebufferHeight)
			cmd.Logger().Debugf("resized to %dx%d", ws.FramebufferWidth, ws.FramebufferHeight)
		}
	}
	if err := rs.renderer.SyncScene(scene); err != nil {
		cmd.Logger().Errorf("scene upload: %v", err)
	}
	if err := rs.renderer.WriteFrame(scene, cam); err != nil {
		cmd.Logger().Errorf("frame uniforms: %v", err)
	}
	if !ui.Dirty.Empty() {
		if err := rs.renderer.UploadOverlay(ui.Frame, ui.Dirty); err != nil {
			cmd.Logger().Errorf("overlay upload: %v", err)
		}
		ui.Dirty = image.Rectangle{}
	}
}

func renderFrameSystem(rs *RenderState, ws *WindowState, scene *core.Scene, cmd *Commands) {
	if ws.FramebufferWidth <= 0 || ws.FramebufferHeight <= 0 {
		return
	}
	surface := rs.gpu.surface
	next, err := surface.GetCurrentTexture()
	if err != nil {
		cmd.Logger().Errorf("GetCurrentTexture failed: %v", err)
		return
	}
	defer next.Release()

	view, err := next.CreateView(nil)
	if err != nil {
		cmd.Logger().Errorf("CreateView failed: %v", err)
		return
	}
	defer view.Release()

	if err := rs.renderer.Render(view, scene); err != nil {
		cmd.Logger().Errorf("render: %v", err)
		return
	}
	surface.Present()
}

func renderStatsSystem(t *Time, rs *RenderState, scene *core.Scene, cmd *Commands) {
	if !rs.stats.due(t.Time) {
		return
	}
	s := gpu.FrameStats(scene, rs.renderer.OverlayVisible())
	cmd.Logger().Infof("Triangles: %d, Draw Calls: %d, Points: %d", s.Triangles, s.DrawCalls, s.Points)
}

// statsTicker fires at most once per interval. The first call only arms it.
type statsTicker struct {
	interval time.Duration
	next     time.Time
}

func (s *statsTicker) due(now time.Time) bool {
	if s.interval <= 0 {
		return false
	}
	if s.next.IsZero() {
		s.next = now.Add(s.interval)
		return false
	}
	if now.Before(s.next) {
		return false
	}
	for !now.Before(s.next) {
		s.next = s.next.Add(s.interval)
	}
	return true
}

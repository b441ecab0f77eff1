package snowfall

import (
	"math/rand"
	"time"

	"github.com/gekko3d/snowfall/scenert/core"
)

// SnowModule generates the particle field once and advances the snow shader time
// every frame.
type SnowModule struct {
	Config core.SnowConfig
	// Seed of the generator. Zero seeds from the clock.
	Seed int64
}

func (mod SnowModule) Install(app *App, cmd *Commands) {
	scene, ok := Resource[core.Scene](app)
	if !ok {
		panic("SnowModule requires SceneModule")
	}
	cfg := mod.Config
	if cfg == (core.SnowConfig{}) {
		cfg = core.DefaultSnowConfig()
	}
	seed := mod.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	scene.Snow = core.NewSnowField(rand.New(rand.NewSource(seed)), cfg)
	app.Logger().Debugf("snow: %d particles, seed %d", len(scene.Snow.Particles), seed)

	cmd.UseSystem(
		System(snowSystem).InStage(Update).RunAlways(),
	)
}

func snowSystem(t *Time, scene *core.Scene) {
	if scene.Snow == nil {
		return
	}
	scene.Snow.Frame(t.Elapsed)
}

package snowfall

import (
	"time"

	"github.com/gekko3d/snowfall/intro/sequence"
	"github.com/gekko3d/snowfall/intro/tween"
	"github.com/gekko3d/snowfall/scenert/core"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	introCameraEnd = mgl32.Vec3{46, 3, 0}
	introTargetEnd = mgl32.Vec3{6, 10, 0}
)

// CameraIntro starts the camera fly-in when the loader is gone.
type CameraIntro struct {
	Start sequence.IntroFunc
}

// NewIntro returns an IntroFunc tweening the camera position and look target
// together over duration.
func NewIntro(tw *tween.Tweener, cam *core.Camera, duration time.Duration) sequence.IntroFunc {
	return func(at time.Time) *tween.Handle {
		opts := tween.Vec3Options{Duration: duration, Ease: tween.Power2InOut}
		return tween.All(
			tw.To(&cam.Position, introCameraEnd, at, opts),
			tw.To(&cam.LookTarget, introTargetEnd, at, opts),
		)
	}
}

type IntroModule struct {
	Duration time.Duration
}

func (mod IntroModule) Install(app *App, cmd *Commands) {
	cam, ok := Resource[core.Camera](app)
	if !ok {
		panic("IntroModule requires SceneModule")
	}
	duration := mod.Duration
	if duration <= 0 {
		duration = 3 * time.Second
	}
	tw := tween.NewTweener()
	cmd.AddResources(tw, &CameraIntro{Start: NewIntro(tw, cam, duration)})

	cmd.UseSystem(
		System(func(t *Time, tw *tween.Tweener) {
			tw.Advance(t.Time)
		}).InStage(PostUpdate).RunAlways(),
	)
}

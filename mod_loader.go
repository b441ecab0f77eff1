package snowfall

import (
	"time"

	"github.com/gekko3d/snowfall/intro/overlay"
	"github.com/gekko3d/snowfall/intro/sequence"
)

// LoaderModule drives the loading screen through the intro sequence while the app
// is in StateLoading, then switches to StateExploring. The sequence starts on the
// first frame so time spent in Install (window, GPU, fonts) is not counted.
type LoaderModule struct {
	Timings sequence.Timings
}

func (mod LoaderModule) Install(app *App, cmd *Commands) {
	ready, ok := Resource[sequence.Signal](app)
	if !ok {
		panic("LoaderModule requires AssetServerModule")
	}
	timings := mod.Timings
	if timings == (sequence.Timings{}) {
		timings = sequence.DefaultTimings()
	}

	loader := overlay.NewLoader(timings.Transition)
	cfg := sequence.Config{
		Ready:   ready,
		Surface: loader,
		Display: loader,
		Timings: timings,
		Logger:  app.Logger(),
	}
	if intro, ok := Resource[CameraIntro](app); ok {
		cfg.Intro = intro.Start
	}
	cmd.AddResources(loader, sequence.New(cfg))

	cmd.UseSystem(
		System(advanceSequence).InStage(Update).InState(OnExecute(StateLoading)),
	)
}

func advanceSequence(t *Time, seq *sequence.Sequencer, cmd *Commands) {
	if seq.State() == sequence.Idle {
		if err := seq.Start(t.Time); err != nil {
			cmd.Logger().Warnf("loader: %v", err)
			return
		}
	}
	switch seq.Advance(t.Time) {
	case sequence.Done:
		cmd.Logger().Infof("intro started after %s", t.Elapsed.Round(time.Millisecond))
		cmd.ChangeState(StateExploring)
	case sequence.Failed:
		cmd.Logger().Errorf("loading failed: %v", seq.Err())
		cmd.ChangeState(StateExploring)
	}
}

// Command snowfall shows the loading overlay, then the snow scene.
//
// Unlike earlier builds, which waited on missing assets forever, the loader now
// gives up after 30s and shows an error. Set -asset-timeout=0, timings.asset_timeout
// in the config file or SNOWFALL_ASSET_TIMEOUT=0 to wait without limit.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gekko3d/snowfall"
	"github.com/gekko3d/snowfall/intro/sequence"
)

var (
	configFlag = flag.String("config", "", "YAML config file")
	debugFlag  = flag.Bool("debug", false, "Enable debug logging")

	assetTimeoutFlag = flag.Duration("asset-timeout", sequence.DefaultTimings().AssetTimeout,
		"Give up waiting for assets after this long, 0 waits forever. Overrides the config file")
)

func main() {
	flag.Parse()

	cfg, err := snowfall.LoadConfig(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *debugFlag {
		cfg.Debug = true
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "asset-timeout" {
			cfg.Timings.AssetTimeout = *assetTimeoutFlag
		}
	})

	app := snowfall.NewAppBuilder().
		UseStates(snowfall.StateLoading, snowfall.StateQuit).
		UseModule(
			snowfall.LoggingModule{Prefix: cfg.LogPrefix, Debug: cfg.Debug},
			snowfall.TimeModule{},
			snowfall.NewPlatformWindow(cfg.Window),
			snowfall.InputModule{},
			snowfall.SceneModule{},
			snowfall.SnowModule{Config: cfg.SnowConfig(), Seed: cfg.Snow.Seed},
			snowfall.SoundModule{Enabled: cfg.Sound.Enabled, Volume: cfg.Sound.Volume},
			snowfall.AssetServerModule{Model: cfg.Assets.Model, Music: cfg.Assets.Music},
			snowfall.IntroModule{Duration: cfg.IntroDuration},
			snowfall.LoaderModule{Timings: cfg.SequenceTimings()},
			snowfall.UiModule{FontPath: cfg.Assets.Font},
			snowfall.RendererModule{ShadowMapSize: cfg.ShadowMapSize, StatsInterval: cfg.StatsInterval},
		).
		Build()

	app.Run()
}

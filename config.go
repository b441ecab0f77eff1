package snowfall

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gekko3d/snowfall/intro/sequence"
	"github.com/gekko3d/snowfall/scenert/core"
	"gopkg.in/yaml.v3"
)

const envPrefix = "SNOWFALL_"

type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
}

type AssetConfig struct {
	Model string `yaml:"model"`
	Music string `yaml:"music"`
	Font  string `yaml:"font"`
}

type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0..1
}

type SnowSettings struct {
	Count  int     `yaml:"count"`
	Area   float32 `yaml:"area"`
	Height float32 `yaml:"height"`
	// Seed of the particle generator. Zero seeds from the clock.
	Seed int64 `yaml:"seed"`
}

type TimingConfig struct {
	ShowDelay     time.Duration `yaml:"show_delay"`
	Phase1Hold    time.Duration `yaml:"phase1_hold"`
	Phase2MinHold time.Duration `yaml:"phase2_min_hold"`
	SettleDelay   time.Duration `yaml:"settle_delay"`
	Phase3Hold    time.Duration `yaml:"phase3_hold"`
	HideDelay     time.Duration `yaml:"hide_delay"`
	Transition    time.Duration `yaml:"transition"`
	AssetTimeout  time.Duration `yaml:"asset_timeout"`
}

type Config struct {
	Debug         bool          `yaml:"debug"`
	LogPrefix     string        `yaml:"log_prefix"`
	StatsInterval time.Duration `yaml:"stats_interval"`
	ShadowMapSize uint32        `yaml:"shadow_map_size"`
	IntroDuration time.Duration `yaml:"intro_duration"`
	Window        WindowConfig  `yaml:"window"`
	Assets        AssetConfig   `yaml:"assets"`
	Sound         SoundConfig   `yaml:"sound"`
	Snow          SnowSettings  `yaml:"snow"`
	Timings       TimingConfig  `yaml:"timings"`
}

func DefaultConfig() Config {
	snow := core.DefaultSnowConfig()
	t := sequence.DefaultTimings()
	return Config{
		LogPrefix:     "snowfall",
		StatsInterval: 2 * time.Second,
		ShadowMapSize: core.DefaultShadowConfig().MapSize,
		IntroDuration: 3 * time.Second,
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Snowfall",
		},
		Assets: AssetConfig{
			Model: "assets/models/angrybirds.glb",
			Music: "assets/sounds/ambient.mp3",
		},
		Sound: SoundConfig{
			Enabled: true,
			Volume:  1,
		},
		Snow: SnowSettings{
			Count:  snow.Count,
			Area:   snow.Area,
			Height: snow.Height,
		},
		Timings: TimingConfig(t),
	}
}

// LoadConfig layers defaults, the YAML file at path (skipped when path is empty)
// and SNOWFALL_* environment variables.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SnowConfig converts the settings to the generator input.
func (c Config) SnowConfig() core.SnowConfig {
	out := core.DefaultSnowConfig()
	out.Count = c.Snow.Count
	if c.Snow.Area > 0 {
		out.Area = c.Snow.Area
	}
	if c.Snow.Height > 0 {
		out.Height = c.Snow.Height
	}
	return out
}

func (c Config) SequenceTimings() sequence.Timings {
	return sequence.Timings(c.Timings)
}

type lookupFunc func(key string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	var firstErr error
	record := func(key string, err error) {
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("config: %s%s: %w", envPrefix, key, err)
		}
	}
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(envPrefix + key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			record(key, err)
			if err == nil {
				*dst = b
			}
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := lookup(envPrefix + key); ok && v != "" {
			n, err := strconv.Atoi(v)
			record(key, err)
			if err == nil {
				*dst = n
			}
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(envPrefix + key); ok && v != "" {
			d, err := time.ParseDuration(v)
			record(key, err)
			if err == nil {
				*dst = d
			}
		}
	}

	boolean("DEBUG", &cfg.Debug)
	integer("WIDTH", &cfg.Window.Width)
	integer("HEIGHT", &cfg.Window.Height)
	boolean("FULLSCREEN", &cfg.Window.Fullscreen)
	str("MODEL", &cfg.Assets.Model)
	str("MUSIC", &cfg.Assets.Music)
	boolean("SOUND", &cfg.Sound.Enabled)
	integer("SNOW_COUNT", &cfg.Snow.Count)
	duration("ASSET_TIMEOUT", &cfg.Timings.AssetTimeout)
	duration("STATS_INTERVAL", &cfg.StatsInterval)

	if v, ok := lookup(envPrefix + "VOLUME"); ok && v != "" {
		// 0-100 converted to 0.0-1.0
		n, err := strconv.Atoi(v)
		record("VOLUME", err)
		if err == nil {
			cfg.Sound.Volume = min(max(float64(n)/100, 0), 1)
		}
	}
	if v, ok := lookup(envPrefix + "SEED"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		record("SEED", err)
		if err == nil {
			cfg.Snow.Seed = n
		}
	}
	return firstErr
}

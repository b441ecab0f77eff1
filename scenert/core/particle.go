package core

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// ParticleRecord is one snow flake. Records are generated once and never mutated;
// motion is computed in the vertex stage from time.
type ParticleRecord struct {
	Position    mgl32.Vec3 `gpu:"layout" location:"1" format:"float3"`
	FallSpeed   float32    `gpu:"layout" location:"2" format:"float"`
	PhaseOffset float32    `gpu:"layout" location:"3" format:"float"` // radians
	Size        float32    `gpu:"layout" location:"4" format:"float"`
}

type SnowConfig struct {
	Count   int
	Area    float32 // full width of the X/Z box
	Height  float32
	CenterX float32
	CenterZ float32
}

func DefaultSnowConfig() SnowConfig {
	return SnowConfig{
		Count:   1500,
		Area:    250,
		Height:  80,
		CenterX: -60,
		CenterZ: 0,
	}
}

// GenerateSnow produces cfg.Count independent records. A nil rng uses a time-seeded
// source.
func GenerateSnow(rng *rand.Rand, cfg SnowConfig) []ParticleRecord {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Count < 0 {
		cfg.Count = 0
	}
	records := make([]ParticleRecord, cfg.Count)
	for i := range records {
		records[i] = ParticleRecord{
			Position: mgl32.Vec3{
				(rng.Float32()-0.5)*cfg.Area + cfg.CenterX,
				rng.Float32() * cfg.Height,
				(rng.Float32()-0.5)*cfg.Area + cfg.CenterZ,
			},
			FallSpeed:   below(0.8+rng.Float32(), 1.8),
			PhaseOffset: below(rng.Float32()*2*math.Pi, 2*math.Pi),
			Size:        below(1+rng.Float32(), 2),
		}
	}
	return records
}

// below keeps float32 rounding from landing on an exclusive upper bound.
func below(v, limit float32) float32 {
	if v >= limit {
		return math.Nextafter32(limit, 0)
	}
	return v
}

// SnowUniforms is the per-frame input of the snow shader.
type SnowUniforms struct {
	Time   float32 // seconds since scene start
	Height float32
}

// SnowClock hands out strictly increasing shader times.
type SnowClock struct {
	last   float32
	ticked bool
}

// Tick converts elapsed time to shader seconds. If elapsed did not advance past the
// previous value, the next float32 above it is returned instead.
func (c *SnowClock) Tick(elapsed time.Duration) float32 {
	t := float32(elapsed.Seconds())
	if c.ticked && t <= c.last {
		t = math.Nextafter32(c.last, float32(math.Inf(1)))
	}
	c.last = t
	c.ticked = true
	return t
}

func (c *SnowClock) Last() float32 {
	return c.last
}

// SnowField owns the static particle set and its shader clock.
type SnowField struct {
	Config    SnowConfig
	Particles []ParticleRecord
	Clock     SnowClock
	Uniforms  SnowUniforms
	// Uploaded is set once the instance buffer holds Particles.
	Uploaded bool
}

func NewSnowField(rng *rand.Rand, cfg SnowConfig) *SnowField {
	return &SnowField{
		Config:    cfg,
		Particles: GenerateSnow(rng, cfg),
		Uniforms:  SnowUniforms{Height: cfg.Height},
	}
}

// Frame advances the shader time for one rendered frame.
func (f *SnowField) Frame(elapsed time.Duration) SnowUniforms {
	f.Uniforms = SnowUniforms{
		Time:   f.Clock.Tick(elapsed),
		Height: f.Config.Height,
	}
	return f.Uniforms
}

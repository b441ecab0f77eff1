package core

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSnow_Bounds(t *testing.T) {
	cfg := DefaultSnowConfig()
	records := GenerateSnow(rand.New(rand.NewSource(42)), cfg)
	require.Len(t, records, 1500)

	half := cfg.Area / 2
	for i, r := range records {
		require.GreaterOrEqual(t, r.Position.Y(), float32(0), "record %d", i)
		require.Less(t, r.Position.Y(), cfg.Height, "record %d", i)
		require.LessOrEqual(t, float32(math.Abs(float64(r.Position.X()-cfg.CenterX))), half, "record %d", i)
		require.LessOrEqual(t, float32(math.Abs(float64(r.Position.Z()-cfg.CenterZ))), half, "record %d", i)
		require.GreaterOrEqual(t, r.FallSpeed, float32(0.8))
		require.Less(t, r.FallSpeed, float32(1.8))
		require.GreaterOrEqual(t, r.PhaseOffset, float32(0))
		require.Less(t, r.PhaseOffset, float32(2*math.Pi))
		require.GreaterOrEqual(t, r.Size, float32(1))
		require.Less(t, r.Size, float32(2))
	}
}

func TestGenerateSnow_DeterministicForSeed(t *testing.T) {
	cfg := SnowConfig{Count: 10, Area: 10, Height: 5}
	a := GenerateSnow(rand.New(rand.NewSource(7)), cfg)
	b := GenerateSnow(rand.New(rand.NewSource(7)), cfg)
	assert.Equal(t, a, b)

	assert.Empty(t, GenerateSnow(nil, SnowConfig{Count: -3}))
	assert.Len(t, GenerateSnow(nil, cfg), 10)
}

func TestBelow(t *testing.T) {
	assert.Less(t, below(2, 2), float32(2))
	assert.Equal(t, float32(1.5), below(1.5, 2))
}

func TestSnowClock_StrictlyIncreasing(t *testing.T) {
	var c SnowClock
	first := c.Tick(0)
	assert.Equal(t, float32(0), first)

	second := c.Tick(0)
	assert.Greater(t, second, first, "repeated elapsed time must still advance")

	third := c.Tick(16 * time.Millisecond)
	assert.InDelta(t, 0.016, third, 1e-6)

	fourth := c.Tick(10 * time.Millisecond)
	assert.Greater(t, fourth, third, "clock never goes backwards")
	assert.Equal(t, fourth, c.Last())
}

func TestSnowField_Frame(t *testing.T) {
	f := NewSnowField(rand.New(rand.NewSource(1)), DefaultSnowConfig())
	u := f.Frame(2 * time.Second)
	assert.Equal(t, float32(2), u.Time)
	assert.Equal(t, float32(80), u.Height)
	assert.Len(t, f.Particles, 1500)
}

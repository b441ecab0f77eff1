package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// HexColor converts 0xRRGGBB to linear-ish RGB in [0,1].
func HexColor(hex uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

type AmbientLight struct {
	Color     mgl32.Vec3
	Intensity float32
}

type DirectionalLight struct {
	Color      mgl32.Vec3
	Intensity  float32
	Position   mgl32.Vec3
	Target     mgl32.Vec3
	CastShadow bool
	Shadow     ShadowConfig
}

// ShadowConfig describes the orthographic shadow camera of a directional light.
type ShadowConfig struct {
	MapSize    uint32
	Near, Far  float32
	Left       float32
	Right      float32
	Top        float32
	Bottom     float32
	Bias       float32
	NormalBias float32
	Radius     float32 // PCF kernel radius in texels
}

func DefaultShadowConfig() ShadowConfig {
	return ShadowConfig{
		MapSize:    2048,
		Near:       20,
		Far:        300,
		Left:       -110,
		Right:      170,
		Top:        120,
		Bottom:     -40,
		Bias:       -0.001,
		NormalBias: 0.05,
		Radius:     2,
	}
}

// Direction points from the light towards its target.
func (l *DirectionalLight) Direction() mgl32.Vec3 {
	d := l.Target.Sub(l.Position)
	if d.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return d.Normalize()
}

// ViewProjection is the light-space matrix used by the shadow pass.
func (l *DirectionalLight) ViewProjection() mgl32.Mat4 {
	up := mgl32.Vec3{0, 1, 0}
	if dir := l.Direction(); mgl32.Abs(dir.Dot(up)) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}
	view := mgl32.LookAtV(l.Position, l.Target, up)
	s := l.Shadow
	proj := mgl32.Ortho(s.Left, s.Right, s.Bottom, s.Top, s.Near, s.Far)
	return depthZeroToOne.Mul4(proj).Mul4(view)
}

type Fog struct {
	Color     mgl32.Vec3
	Near, Far float32
}

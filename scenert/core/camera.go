package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// depthZeroToOne remaps OpenGL clip depth [-1,1] to WebGPU's [0,1].
var depthZeroToOne = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Camera is a perspective camera aimed at a look target.
type Camera struct {
	Position   mgl32.Vec3
	LookTarget mgl32.Vec3
	Up         mgl32.Vec3
	FovY       float32 // degrees
	Aspect     float32
	Near       float32
	Far        float32
}

func NewCamera(aspect float32) *Camera {
	if aspect <= 0 {
		aspect = 16.0 / 9.0
	}
	return &Camera{
		Position:   mgl32.Vec3{38, 3, 36},
		LookTarget: mgl32.Vec3{6, 3, -4},
		Up:         mgl32.Vec3{0, 1, 0},
		FovY:       45,
		Aspect:     aspect,
		Near:       1,
		Far:        400,
	}
}

// SetViewport updates the aspect ratio. Zero heights are ignored (minimised window).
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.LookTarget, c.Up)
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
	return depthZeroToOne.Mul4(proj)
}

func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// Basis returns the camera right and up vectors in world space, used to face
// billboards towards the viewer.
func (c *Camera) Basis() (right, up mgl32.Vec3) {
	forward := c.LookTarget.Sub(c.Position)
	if forward.Len() == 0 {
		return mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}
	}
	forward = forward.Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return right, up
}

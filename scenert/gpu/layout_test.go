package gpu

import (
	"image"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/snowfall/scenert/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexLayout_Mesh(t *testing.T) {
	layout := VertexLayout(core.Vertex{}, wgpu.VertexStepModeVertex)
	assert.Equal(t, uint64(36), layout.ArrayStride)
	require.Len(t, layout.Attributes, 3)
	for i, a := range layout.Attributes {
		assert.Equal(t, uint32(i), a.ShaderLocation)
		assert.Equal(t, uint64(i*12), a.Offset)
		assert.Equal(t, wgpu.VertexFormatFloat32x3, a.Format)
	}
}

func TestVertexLayout_SnowInstances(t *testing.T) {
	layout := VertexLayout(core.ParticleRecord{}, wgpu.VertexStepModeInstance)
	assert.Equal(t, wgpu.VertexStepModeInstance, layout.StepMode)
	assert.Equal(t, uint64(24), layout.ArrayStride)
	require.Len(t, layout.Attributes, 4)
	assert.Equal(t, uint32(1), layout.Attributes[0].ShaderLocation)
	assert.Equal(t, wgpu.VertexFormatFloat32, layout.Attributes[1].Format)
	assert.Equal(t, uint64(20), layout.Attributes[3].Offset)
}

func TestVertexLayout_PanicsOnNonStruct(t *testing.T) {
	assert.Panics(t, func() { VertexLayout(42, wgpu.VertexStepModeVertex) })
	assert.Panics(t, func() { parseFormat("half3") })
}

func TestBytes_UniformSizes(t *testing.T) {
	assert.Len(t, Bytes(SceneUniforms{}), 272)
	assert.Len(t, Bytes(SnowUniforms{}), 16)
	assert.Len(t, Bytes(BatchUniforms{}), 16)
	assert.Len(t, Bytes(snowQuad), 48)

	particles := make([]core.ParticleRecord, 3)
	assert.Len(t, Bytes(particles), 72)
	assert.Len(t, Bytes(&SnowUniforms{}), 16)
}

func TestBytes_LittleEndian(t *testing.T) {
	b := Bytes(SnowUniforms{Time: 1})
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, b[:4])
}

func TestPackScene(t *testing.T) {
	scene := core.NewScene()
	cam := core.NewCamera(1)
	u := PackScene(scene, cam)

	assert.Equal(t, cam.ViewProjection(), u.ViewProj)
	assert.Equal(t, float32(0.7), u.SunDir[3])
	assert.Equal(t, float32(2048), u.Shadow[0])
	assert.Equal(t, float32(1), u.Shadow[2])
	assert.Equal(t, [4]float32{50, 450, -0.001, 0.05}, u.Fog)

	// The sun sits above the scene, so the direction towards it points up.
	assert.Greater(t, u.SunDir[1], float32(0))
	dir := mgl32.Vec3{u.SunDir[0], u.SunDir[1], u.SunDir[2]}
	assert.InDelta(t, 1, dir.Len(), 1e-5)
}

func TestGroupMeshes(t *testing.T) {
	tri := make([]core.Vertex, 3)
	meshes := []*core.Mesh{
		{Name: "Bird", Vertices: tri, CastShadow: true, ReceiveShadow: true},
		{Name: "Ground", Vertices: tri, ReceiveShadow: true},
		{Name: "Pig", Vertices: tri, CastShadow: true, ReceiveShadow: true},
		{Name: "Empty"},
		nil,
	}
	batches := groupMeshes(meshes)
	require.Len(t, batches, 2)
	assert.Equal(t, []string{"Bird", "Pig"}, batches[0].names)
	assert.Len(t, batches[0].vertices, 6)
	assert.Equal(t, []string{"Ground"}, batches[1].names)
	assert.False(t, batches[1].key.cast)
}

func TestFrameStats(t *testing.T) {
	scene := core.NewScene()
	scene.AddMeshes(
		&core.Mesh{Name: "Bird", Vertices: make([]core.Vertex, 6), CastShadow: true, ReceiveShadow: true},
		&core.Mesh{Name: "Ground", Vertices: make([]core.Vertex, 3), ReceiveShadow: true},
	)
	scene.Snow = &core.SnowField{Particles: make([]core.ParticleRecord, 1500)}

	s := FrameStats(scene, true)
	assert.Equal(t, Stats{Triangles: 2 + 1 + 2 + 1, DrawCalls: 5, Points: 1500}, s)

	scene.Sun.CastShadow = false
	s = FrameStats(scene, false)
	assert.Equal(t, Stats{Triangles: 3, DrawCalls: 3, Points: 1500}, s)
}

func TestOverlayRegion(t *testing.T) {
	bounds := image.Rect(0, 0, 800, 600)
	button := image.Rect(628, 540, 668, 580)

	assert.Equal(t, button, OverlayRegion(bounds, button, false))
	assert.Equal(t, bounds, OverlayRegion(bounds, button, true))
	assert.Equal(t, image.Rect(780, 590, 800, 600), OverlayRegion(bounds, image.Rect(780, 590, 820, 630), false))
	assert.True(t, OverlayRegion(bounds, image.Rectangle{}, false).Empty())
}

package gpu

import (
	"github.com/gekko3d/snowfall/scenert/core"
	"github.com/go-gl/mathgl/mgl32"
)

// SceneUniforms mirrors `Scene` in scene.wgsl. Every vec3 is padded to a vec4.
type SceneUniforms struct {
	ViewProj      mgl32.Mat4
	LightViewProj mgl32.Mat4
	CameraPos     [4]float32
	CameraRight   [4]float32
	CameraUp      [4]float32
	SunDir        [4]float32 // xyz towards the light, w intensity
	SunColor      [4]float32
	Ambient       [4]float32 // rgb, w intensity
	FogColor      [4]float32
	Fog           [4]float32 // near, far, depth bias, normal bias
	Shadow        [4]float32 // map size, pcf radius, enabled
}

// SnowUniforms mirrors `Snow` in snow.wgsl.
type SnowUniforms struct {
	Time   float32
	Height float32
	Pad    [2]float32
}

// BatchUniforms mirrors `Batch` in scene.wgsl.
type BatchUniforms struct {
	Flags [4]float32 // x receives shadows
}

func vec4(v mgl32.Vec3, w float32) [4]float32 {
	return [4]float32{v[0], v[1], v[2], w}
}

func boolf(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

func PackScene(scene *core.Scene, cam *core.Camera) SceneUniforms {
	right, up := cam.Basis()
	sun := scene.Sun
	shadow := sun.Shadow
	return SceneUniforms{
		ViewProj:      cam.ViewProjection(),
		LightViewProj: sun.ViewProjection(),
		CameraPos:     vec4(cam.Position, 1),
		CameraRight:   vec4(right, 0),
		CameraUp:      vec4(up, 0),
		SunDir:        vec4(sun.Direction().Mul(-1), sun.Intensity),
		SunColor:      vec4(sun.Color, 1),
		Ambient:       vec4(scene.Ambient.Color, scene.Ambient.Intensity),
		FogColor:      vec4(scene.Fog.Color, 1),
		Fog:           [4]float32{scene.Fog.Near, scene.Fog.Far, shadow.Bias, shadow.NormalBias},
		Shadow:        [4]float32{float32(shadow.MapSize), shadow.Radius, boolf(sun.CastShadow), 0},
	}
}

func PackSnow(u core.SnowUniforms) SnowUniforms {
	return SnowUniforms{Time: u.Time, Height: u.Height}
}

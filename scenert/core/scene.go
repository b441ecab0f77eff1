package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Scene is the render context: everything the renderer draws, owned by the App and
// handed to systems as a resource.
type Scene struct {
	Background mgl32.Vec3
	Fog        Fog
	Ambient    AmbientLight
	Sun        DirectionalLight
	Meshes     []*Mesh
	Snow       *SnowField

	version uint64
}

func NewScene() *Scene {
	sky := HexColor(0xa3c6e0)
	return &Scene{
		Background: sky,
		Fog:        Fog{Color: sky, Near: 50, Far: 450},
		Ambient:    AmbientLight{Color: HexColor(0xbfd6e6), Intensity: 0.35},
		Sun: DirectionalLight{
			Color:      HexColor(0xffe5c5),
			Intensity:  0.7,
			Position:   mgl32.Vec3{80, 70, -30},
			CastShadow: true,
			Shadow:     DefaultShadowConfig(),
		},
	}
}

func (s *Scene) AddMeshes(meshes ...*Mesh) {
	if len(meshes) == 0 {
		return
	}
	s.Meshes = append(s.Meshes, meshes...)
	s.version++
}

// Version changes whenever the mesh set changes.
func (s *Scene) Version() uint64 {
	return s.version
}

func (s *Scene) Triangles() int {
	n := 0
	for _, m := range s.Meshes {
		n += m.Triangles()
	}
	return n
}

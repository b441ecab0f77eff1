package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the interleaved layout of the scene pipeline.
type Vertex struct {
	Position [3]float32 `gpu:"layout" location:"0" format:"float3"`
	Normal   [3]float32 `gpu:"layout" location:"1" format:"float3"`
	Color    [3]float32 `gpu:"layout" location:"2" format:"float3"`
}

type Mesh struct {
	Name          string
	Vertices      []Vertex
	Transform     mgl32.Mat4
	CastShadow    bool
	ReceiveShadow bool
}

func (m *Mesh) Triangles() int {
	return len(m.Vertices) / 3
}

// FlatShade expands an indexed triangle list into unshared vertices carrying the
// face normal, so every triangle is lit uniformly. Positions are transformed by
// world first. A nil index list means positions are already a triangle list.
func FlatShade(positions [][3]float32, indices []uint32, world mgl32.Mat4, color mgl32.Vec3) []Vertex {
	if indices == nil {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	tris := len(indices) / 3
	out := make([]Vertex, 0, tris*3)
	for t := 0; t < tris; t++ {
		var p [3]mgl32.Vec3
		valid := true
		for k := 0; k < 3; k++ {
			idx := indices[t*3+k]
			if int(idx) >= len(positions) {
				valid = false
				break
			}
			src := positions[idx]
			p[k] = mgl32.TransformCoordinate(mgl32.Vec3{src[0], src[1], src[2]}, world)
		}
		if !valid {
			continue
		}
		n := p[1].Sub(p[0]).Cross(p[2].Sub(p[0]))
		if n.Len() > 0 {
			n = n.Normalize()
		}
		for k := 0; k < 3; k++ {
			out = append(out, Vertex{
				Position: [3]float32(p[k]),
				Normal:   [3]float32(n),
				Color:    [3]float32(color),
			})
		}
	}
	return out
}

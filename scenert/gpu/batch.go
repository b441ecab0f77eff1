package gpu

import (
	"github.com/gekko3d/snowfall/scenert/core"
)

type batchKey struct {
	cast    bool
	receive bool
}

// meshBatch is every mesh sharing the same shadow flags, merged into one vertex
// stream.
type meshBatch struct {
	key      batchKey
	names    []string
	vertices []core.Vertex
}

// groupMeshes merges meshes by shadow flags, keeping first-seen order.
func groupMeshes(meshes []*core.Mesh) []*meshBatch {
	var out []*meshBatch
	index := map[batchKey]*meshBatch{}
	for _, m := range meshes {
		if m == nil || len(m.Vertices) == 0 {
			continue
		}
		key := batchKey{cast: m.CastShadow, receive: m.ReceiveShadow}
		b, ok := index[key]
		if !ok {
			b = &meshBatch{key: key}
			index[key] = b
			out = append(out, b)
		}
		b.names = append(b.names, m.Name)
		b.vertices = append(b.vertices, m.Vertices...)
	}
	return out
}

// Stats summarizes one rendered frame.
type Stats struct {
	Triangles int
	DrawCalls int
	Points    int
}

// FrameStats counts what Render submits for scene. Shadow-casting triangles are
// counted once more for the shadow pass.
func FrameStats(scene *core.Scene, overlay bool) Stats {
	var s Stats
	for _, b := range groupMeshes(scene.Meshes) {
		tris := len(b.vertices) / 3
		s.Triangles += tris
		s.DrawCalls++
		if b.key.cast && scene.Sun.CastShadow {
			s.Triangles += tris
			s.DrawCalls++
		}
	}
	if scene.Snow != nil && len(scene.Snow.Particles) > 0 {
		s.Points = len(scene.Snow.Particles)
		s.DrawCalls++
	}
	if overlay {
		s.Triangles++
		s.DrawCalls++
	}
	return s
}

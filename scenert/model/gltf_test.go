package model

import (
	"path/filepath"
	"testing"

	"github.com/gekko3d/snowfall/scenert/core"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() *gltf.Document {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 0, -1}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Materials = []*gltf.Material{{
		Name:                 "Red",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float64{1, 0, 0, 1}},
	}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos},
			Material:   gltf.Index(0),
		}},
	}}
	doc.Nodes = []*gltf.Node{
		{Name: "Root", Translation: [3]float64{0, 2, 0}, Children: []int{1, 2}},
		{Name: "Bird", Mesh: gltf.Index(0)},
		{Name: GroundName, Mesh: gltf.Index(0)},
		{Name: "Ignored", Mesh: gltf.Index(0)},
	}
	doc.Scenes[0].Nodes = []int{0, 3}
	return doc
}

func TestExtract(t *testing.T) {
	meshes, err := Extract(testDocument())
	require.NoError(t, err)
	require.Len(t, meshes, 2, "only the first scene child is traversed")

	bird, ground := meshes[0], meshes[1]
	assert.Equal(t, "Bird", bird.Name)
	assert.True(t, bird.CastShadow)
	assert.True(t, bird.ReceiveShadow)
	assert.Equal(t, GroundName, ground.Name)
	assert.False(t, ground.CastShadow)
	assert.True(t, ground.ReceiveShadow)

	require.Len(t, bird.Vertices, 3)
	for _, v := range bird.Vertices {
		assert.InDelta(t, 2, v.Position[1], 1e-6, "parent translation applied")
		assert.InDelta(t, 1, v.Normal[1], 1e-6)
		assert.Equal(t, [3]float32{1, 0, 0}, v.Color)
	}
}

func TestExtract_NoScene(t *testing.T) {
	doc := gltf.NewDocument()
	_, err := Extract(doc)
	assert.ErrorIs(t, err, ErrNoScene)

	doc.Scenes = nil
	_, err = Extract(doc)
	assert.ErrorIs(t, err, ErrNoScene)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.glb"))
	assert.Error(t, err)
}

func TestApplyShadowFlags(t *testing.T) {
	m := &core.Mesh{Name: "Pig"}
	ApplyShadowFlags(m)
	assert.True(t, m.CastShadow)

	m = &core.Mesh{Name: GroundName, CastShadow: true}
	ApplyShadowFlags(m)
	assert.False(t, m.CastShadow)
	assert.True(t, m.ReceiveShadow)
}

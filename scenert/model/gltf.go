// Package model turns glTF/GLB documents into flat-shaded scene meshes.
package model

import (
	"errors"
	"fmt"

	"github.com/gekko3d/snowfall/scenert/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

var ErrNoScene = errors.New("model: document has no scene root")

// GroundName is the mesh that only receives shadows.
const GroundName = "Ground"

// Load opens a .gltf or .glb file and extracts its meshes.
func Load(path string) ([]*core.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: open %s: %w", path, err)
	}
	meshes, err := Extract(doc)
	if err != nil {
		return nil, fmt.Errorf("model: %s: %w", path, err)
	}
	return meshes, nil
}

// Extract walks the first child of the default scene and returns one mesh per
// triangle primitive, baked into world space.
func Extract(doc *gltf.Document) ([]*core.Mesh, error) {
	root, err := rootNode(doc)
	if err != nil {
		return nil, err
	}
	var out []*core.Mesh
	if err := walk(doc, root, mgl32.Ident4(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func rootNode(doc *gltf.Document) (int, error) {
	if len(doc.Scenes) == 0 {
		return 0, ErrNoScene
	}
	sceneIdx := 0
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		sceneIdx = *doc.Scene
	}
	scene := doc.Scenes[sceneIdx]
	if len(scene.Nodes) == 0 || scene.Nodes[0] >= len(doc.Nodes) {
		return 0, ErrNoScene
	}
	return scene.Nodes[0], nil
}

func walk(doc *gltf.Document, idx int, parent mgl32.Mat4, out *[]*core.Mesh) error {
	node := doc.Nodes[idx]
	world := parent.Mul4(localMatrix(node))

	if node.Mesh != nil && *node.Mesh < len(doc.Meshes) {
		mesh := doc.Meshes[*node.Mesh]
		name := node.Name
		if name == "" {
			name = mesh.Name
		}
		for i, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			m, err := primitiveMesh(doc, prim, world)
			if err != nil {
				return fmt.Errorf("mesh %q primitive %d: %w", name, i, err)
			}
			m.Name = name
			ApplyShadowFlags(m)
			*out = append(*out, m)
		}
	}
	for _, child := range node.Children {
		if child >= len(doc.Nodes) {
			continue
		}
		if err := walk(doc, child, world, out); err != nil {
			return err
		}
	}
	return nil
}

func primitiveMesh(doc *gltf.Document, prim *gltf.Primitive, world mgl32.Mat4) (*core.Mesh, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, errors.New("missing POSITION")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, err
	}
	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, err
		}
	}
	return &core.Mesh{
		Vertices:  core.FlatShade(positions, indices, world, baseColor(doc, prim)),
		Transform: world,
	}, nil
}

// ApplyShadowFlags sets the shadow behaviour by name: the ground only receives,
// everything else casts and receives.
func ApplyShadowFlags(m *core.Mesh) {
	m.ReceiveShadow = true
	m.CastShadow = m.Name != GroundName
}

func baseColor(doc *gltf.Document, prim *gltf.Primitive) mgl32.Vec3 {
	if prim.Material == nil || *prim.Material >= len(doc.Materials) {
		return mgl32.Vec3{1, 1, 1}
	}
	pbr := doc.Materials[*prim.Material].PBRMetallicRoughness
	if pbr == nil {
		return mgl32.Vec3{1, 1, 1}
	}
	c := pbr.BaseColorFactorOrDefault()
	return mgl32.Vec3{float32(c[0]), float32(c[1]), float32(c[2])}
}

func localMatrix(n *gltf.Node) mgl32.Mat4 {
	m := n.MatrixOrDefault()
	if m != gltf.DefaultMatrix {
		var out mgl32.Mat4
		for i := range m {
			out[i] = float32(m[i])
		}
		return out
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	rot := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(rot.Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

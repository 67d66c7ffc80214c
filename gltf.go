package siescene

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// GeometryFromGLTF bakes every triangle primitive reachable from the
// document's default scene into one geometry in model space. Material
// base colors become face colors.
func GeometryFromGLTF(doc *gltf.Document) (*Geometry, error) {
	geo := NewGeometry()

	var roots []int
	switch {
	case doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes):
		roots = nodeIndices(doc.Scenes[*doc.Scene].Nodes)
	case len(doc.Scenes) > 0:
		roots = nodeIndices(doc.Scenes[0].Nodes)
	default:
		for i := range doc.Nodes {
			roots = append(roots, i)
		}
	}

	var visit func(idx int, parent mgl64.Mat4, depth int) error
	visit = func(idx int, parent mgl64.Mat4, depth int) error {
		if idx < 0 || idx >= len(doc.Nodes) {
			return fmt.Errorf("node %d out of range", idx)
		}
		if depth > 64 {
			return fmt.Errorf("node hierarchy too deep at node %d", idx)
		}
		node := doc.Nodes[idx]
		world := parent.Mul4(nodeMatrix(node))
		if node.Mesh != nil {
			if err := addGLTFMesh(geo, doc, int(*node.Mesh), world); err != nil {
				return fmt.Errorf("node %d: %w", idx, err)
			}
		}
		for _, c := range node.Children {
			if err := visit(int(c), world, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	for _, n := range roots {
		if err := visit(n, mgl64.Ident4(), 0); err != nil {
			return nil, err
		}
	}

	if len(geo.Faces) == 0 {
		return nil, fmt.Errorf("no triangle meshes in document")
	}
	return geo, nil
}

func addGLTFMesh(geo *Geometry, doc *gltf.Document, meshIdx int, world mgl64.Mat4) error {
	if meshIdx < 0 || meshIdx >= len(doc.Meshes) {
		return fmt.Errorf("mesh %d out of range", meshIdx)
	}
	// mirrored transforms flip the winding
	flip := world.Mat3().Det() < 0

	for pi, prim := range doc.Meshes[meshIdx].Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok || int(posIdx) >= len(doc.Accessors) {
			return fmt.Errorf("primitive %d has no positions", pi)
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("reading positions of primitive %d: %w", pi, err)
		}

		var uvs [][2]float32
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok && int(uvIdx) < len(doc.Accessors) {
			uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
			if err != nil {
				return fmt.Errorf("reading texture coordinates of primitive %d: %w", pi, err)
			}
		}

		var indices []uint32
		if prim.Indices != nil {
			if int(*prim.Indices) >= len(doc.Accessors) {
				return fmt.Errorf("primitive %d indices out of range", pi)
			}
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("reading indices of primitive %d: %w", pi, err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		col := color.RGBA{}
		if prim.Material != nil && int(*prim.Material) < len(doc.Materials) {
			col = materialColor(doc.Materials[*prim.Material])
		}

		for t := 0; t+2 < len(indices); t += 3 {
			corners := [3]uint32{indices[t], indices[t+1], indices[t+2]}
			if flip {
				corners[1], corners[2] = corners[2], corners[1]
			}
			points := make([]mgl64.Vec3, 3)
			var faceUVs []mgl64.Vec2
			valid := true
			for k, c := range corners {
				if int(c) >= len(positions) {
					valid = false
					break
				}
				p := positions[c]
				points[k] = transformPoint(world, mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])})
				if int(c) < len(uvs) {
					faceUVs = append(faceUVs, mgl64.Vec2{float64(uvs[c][0]), float64(uvs[c][1])})
				}
			}
			if !valid {
				return fmt.Errorf("primitive %d index out of range", pi)
			}
			if polygonArea(points) < epsilon {
				continue
			}
			fi := geo.AddFace(points, faceUVs)
			geo.Faces[fi].Col = col
		}
	}
	return nil
}

func nodeIndices(nodes []uint32) []int {
	out := make([]int, len(nodes))
	for i, n := range nodes {
		out[i] = int(n)
	}
	return out
}

func polygonArea(points []mgl64.Vec3) float64 {
	var n mgl64.Vec3
	for i := 1; i+1 < len(points); i++ {
		n = n.Add(points[i].Sub(points[0]).Cross(points[i+1].Sub(points[0])))
	}
	return n.Len() / 2
}

// nodeMatrix returns the node's local transform. A zero matrix means the
// node uses translation, rotation and scale instead.
func nodeMatrix(node *gltf.Node) mgl64.Mat4 {
	if m, ok := matrixOf(node.Matrix); ok {
		return m
	}
	t := vec3Of(node.Translation)
	s := vec3Of(node.Scale)
	if s == (mgl64.Vec3{}) {
		s = mgl64.Vec3{1, 1, 1}
	}
	q := quatOf(node.Rotation)
	return mgl64.Translate3D(t.X(), t.Y(), t.Z()).
		Mul4(q.Mat4()).
		Mul4(mgl64.Scale3D(s.X(), s.Y(), s.Z()))
}

func vec3Of(v [3]float64) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}

// quatOf reads an x, y, z, w rotation. The zero quaternion is identity.
func quatOf(v [4]float64) mgl64.Quat {
	q := mgl64.Quat{W: v[3], V: mgl64.Vec3{v[0], v[1], v[2]}}
	if q.Len() < epsilon {
		return mgl64.QuatIdent()
	}
	return q.Normalize()
}

func matrixOf(v [16]float64) (mgl64.Mat4, bool) {
	m := mgl64.Mat4(v)
	if m == (mgl64.Mat4{}) || m == mgl64.Ident4() {
		return m, false
	}
	return m, true
}

func materialColor(m *gltf.Material) color.RGBA {
	if m == nil || m.PBRMetallicRoughness == nil {
		return color.RGBA{}
	}
	c, ok := rgbaOf(m.PBRMetallicRoughness.BaseColorFactor)
	if !ok {
		return color.RGBA{}
	}
	return c
}

// rgbaOf converts a base color factor. Nil and all-zero factors are
// reported as unset.
func rgbaOf(v *[4]float64) (color.RGBA, bool) {
	if v == nil {
		return color.RGBA{}, false
	}
	f := *v
	if f == [4]float64{} {
		return color.RGBA{}, false
	}
	to8 := func(x float64) uint8 { return uint8(math.Round(clampf(x, 0, 1) * 255)) }
	return color.RGBA{R: to8(f[0]), G: to8(f[1]), B: to8(f[2]), A: 255}, true
}

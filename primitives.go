package siescene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var quadUVs = []mgl64.Vec2{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

// NewBoxGeometry builds a box centred on the origin. Every side is a quad
// wound counter clockwise when seen from outside and mapped to the full
// texture.
func NewBoxGeometry(width, height, depth float64) *Geometry {
	g := NewGeometry()
	x, y, z := width/2, height/2, depth/2

	sides := [6][4]mgl64.Vec3{
		{{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z}},     // front
		{{x, -y, -z}, {-x, -y, -z}, {-x, y, -z}, {x, y, -z}}, // back
		{{x, -y, z}, {x, -y, -z}, {x, y, -z}, {x, y, z}},     // right
		{{-x, -y, -z}, {-x, -y, z}, {-x, y, z}, {-x, y, -z}}, // left
		{{-x, y, z}, {x, y, z}, {x, y, -z}, {-x, y, -z}},     // top
		{{-x, -y, -z}, {x, -y, -z}, {x, -y, z}, {-x, -y, z}}, // bottom
	}
	for _, s := range sides {
		g.AddFace(s[:], quadUVs)
	}
	return g
}

// NewPlaneGeometry builds a plane in XY facing +Z, split into a grid so
// lighting and fog vary across it.
func NewPlaneGeometry(width, height float64, widthSegments, heightSegments int) *Geometry {
	widthSegments = max(widthSegments, 1)
	heightSegments = max(heightSegments, 1)
	g := NewGeometry()

	dx := width / float64(widthSegments)
	dy := height / float64(heightSegments)
	at := func(ix, iy int) mgl64.Vec3 {
		return mgl64.Vec3{-width/2 + float64(ix)*dx, height/2 - float64(iy)*dy, 0}
	}
	uv := func(ix, iy int) mgl64.Vec2 {
		return mgl64.Vec2{float64(ix) / float64(widthSegments), float64(iy) / float64(heightSegments)}
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			g.AddFace(
				[]mgl64.Vec3{at(ix, iy+1), at(ix+1, iy+1), at(ix+1, iy), at(ix, iy)},
				[]mgl64.Vec2{uv(ix, iy+1), uv(ix+1, iy+1), uv(ix+1, iy), uv(ix, iy)},
			)
		}
	}
	return g
}

// NewSphereGeometry builds a UV sphere. Bands touching the poles are
// triangles, the rest are quads.
func NewSphereGeometry(radius float64, widthSegments, heightSegments int) *Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)
	g := NewGeometry()

	point := func(ix, iy int) (mgl64.Vec3, mgl64.Vec2) {
		u := float64(ix) / float64(widthSegments)
		v := float64(iy) / float64(heightSegments)
		phi := u * 2 * math.Pi
		theta := v * math.Pi
		p := mgl64.Vec3{
			-radius * math.Cos(phi) * math.Sin(theta),
			radius * math.Cos(theta),
			radius * math.Sin(phi) * math.Sin(theta),
		}
		return p, mgl64.Vec2{u, v}
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a, uvA := point(ix+1, iy)
			b, uvB := point(ix, iy)
			c, uvC := point(ix, iy+1)
			d, uvD := point(ix+1, iy+1)

			switch {
			case iy == 0:
				g.AddFace([]mgl64.Vec3{b, c, d}, []mgl64.Vec2{uvB, uvC, uvD})
			case iy == heightSegments-1:
				g.AddFace([]mgl64.Vec3{a, b, d}, []mgl64.Vec2{uvA, uvB, uvD})
			default:
				g.AddFace([]mgl64.Vec3{a, b, c, d}, []mgl64.Vec2{uvA, uvB, uvC, uvD})
			}
		}
	}
	return g
}

// NewGridHelper returns a square grid of lines on the XZ plane.
func NewGridHelper(size float64, divisions int) *Object3D {
	divisions = max(divisions, 1)
	centreColor := ColorFromHex(0x444444)
	gridColor := ColorFromHex(0x888888)

	g := NewGeometry()
	step := size / float64(divisions)
	half := size / 2
	for i := 0; i <= divisions; i++ {
		k := -half + float64(i)*step
		col := gridColor
		if i == divisions/2 {
			col = centreColor
		}
		s := g.AddSegment(mgl64.Vec3{-half, 0, k}, mgl64.Vec3{half, 0, k})
		g.Segments[s].Col = col
		s = g.AddSegment(mgl64.Vec3{k, 0, -half}, mgl64.Vec3{k, 0, half})
		g.Segments[s].Col = col
	}

	grid := NewLineSegments(g, NewLineBasicMaterial(0xFFFFFF))
	grid.Name = "GridHelper"
	grid.RenderOrder = -1
	return grid
}

// NewAxesHelper draws the X, Y and Z axes in red, green and blue.
func NewAxesHelper(size float64) *Object3D {
	g := NewGeometry()
	axes := []struct {
		dir mgl64.Vec3
		hex uint32
	}{
		{mgl64.Vec3{size, 0, 0}, 0xFF0000},
		{mgl64.Vec3{0, size, 0}, 0x00FF00},
		{mgl64.Vec3{0, 0, size}, 0x0000FF},
	}
	for _, a := range axes {
		s := g.AddSegment(mgl64.Vec3{}, a.dir)
		g.Segments[s].Col = ColorFromHex(a.hex)
	}

	obj := NewLineSegments(g, NewLineBasicMaterial(0xFFFFFF))
	obj.Name = "AxesHelper"
	return obj
}

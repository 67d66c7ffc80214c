package siescene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Geometry is an indexed polygon mesh. Faces and segments index into
// Vertices; a geometry may carry both.
type Geometry struct {
	Vertices []mgl64.Vec3
	Faces    []Face
	Segments []Segment

	pointIndex map[[3]float64]int
}

func NewGeometry() *Geometry {
	return &Geometry{
		pointIndex: make(map[[3]float64]int),
	}
}

// AddVertex returns the index of v, reusing an existing identical vertex.
func (g *Geometry) AddVertex(v mgl64.Vec3) int {
	if g.pointIndex == nil {
		g.reindex()
	}
	key := [3]float64{v.X(), v.Y(), v.Z()}
	if index, found := g.pointIndex[key]; found {
		return index
	}
	g.Vertices = append(g.Vertices, v)
	index := len(g.Vertices) - 1
	g.pointIndex[key] = index
	return index
}

func (g *Geometry) reindex() {
	g.pointIndex = make(map[[3]float64]int, len(g.Vertices))
	for i, v := range g.Vertices {
		key := [3]float64{v.X(), v.Y(), v.Z()}
		if _, found := g.pointIndex[key]; !found {
			g.pointIndex[key] = i
		}
	}
}

// AddFace appends a polygon over the given corners. uvs may be nil.
func (g *Geometry) AddFace(points []mgl64.Vec3, uvs []mgl64.Vec2) int {
	f := Face{Indices: make([]int, len(points))}
	for i, p := range points {
		f.Indices[i] = g.AddVertex(p)
	}
	if len(uvs) == len(points) {
		f.UVs = append([]mgl64.Vec2(nil), uvs...)
	}
	f.Normal = polygonNormal(points)
	g.Faces = append(g.Faces, f)
	return len(g.Faces) - 1
}

func (g *Geometry) AddSegment(a, b mgl64.Vec3) int {
	g.Segments = append(g.Segments, Segment{A: g.AddVertex(a), B: g.AddVertex(b)})
	return len(g.Segments) - 1
}

func (g *Geometry) FacePoints(i int, dst []mgl64.Vec3) []mgl64.Vec3 {
	dst = dst[:0]
	for _, idx := range g.Faces[i].Indices {
		dst = append(dst, g.Vertices[idx])
	}
	return dst
}

// ComputeNormals recalculates every face normal from its vertices.
func (g *Geometry) ComputeNormals() {
	var pts []mgl64.Vec3
	for i := range g.Faces {
		pts = g.FacePoints(i, pts)
		g.Faces[i].Normal = polygonNormal(pts)
	}
}

// Bounds returns the axis aligned box around all vertices.
func (g *Geometry) Bounds() (min, max mgl64.Vec3) {
	if len(g.Vertices) == 0 {
		return
	}
	min = mgl64.Vec3{math.MaxFloat64, math.MaxFloat64, math.MaxFloat64}
	max = mgl64.Vec3{-math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64}
	for _, v := range g.Vertices {
		for a := 0; a < 3; a++ {
			min[a] = math.Min(min[a], v[a])
			max[a] = math.Max(max[a], v[a])
		}
	}
	return min, max
}

// Extents returns the size of the bounding box along each axis.
func (g *Geometry) Extents() mgl64.Vec3 {
	min, max := g.Bounds()
	return max.Sub(min)
}

// Centre moves the vertices so the bounding box is centred on the origin.
func (g *Geometry) Centre() {
	min, max := g.Bounds()
	mid := min.Add(max).Mul(0.5)
	for i := range g.Vertices {
		g.Vertices[i] = g.Vertices[i].Sub(mid)
	}
	g.pointIndex = nil
}

func (g *Geometry) ScaleAll(scale float64) {
	for i := range g.Vertices {
		g.Vertices[i] = g.Vertices[i].Mul(scale)
	}
	g.pointIndex = nil
}

// IsPlanar reports whether every face lies in one plane.
func (g *Geometry) IsPlanar() bool {
	if len(g.Faces) == 0 {
		return false
	}
	n := g.Faces[0].Normal
	p0 := g.Vertices[g.Faces[0].Indices[0]]
	for _, f := range g.Faces {
		if f.Normal.Sub(n).Len() > 1e-6 {
			return false
		}
		for _, idx := range f.Indices {
			if math.Abs(n.Dot(g.Vertices[idx].Sub(p0))) > 1e-6 {
				return false
			}
		}
	}
	return true
}

func (g *Geometry) Clone() *Geometry {
	c := &Geometry{
		Vertices: make([]mgl64.Vec3, len(g.Vertices)),
		Faces:    make([]Face, len(g.Faces)),
		Segments: make([]Segment, len(g.Segments)),
	}
	copy(c.Vertices, g.Vertices)
	copy(c.Segments, g.Segments)
	for i := range g.Faces {
		c.Faces[i] = g.Faces[i].Copy()
	}
	return c
}

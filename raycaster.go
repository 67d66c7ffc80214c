package siescene

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3 // unit length
}

func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Intersection is one hit. FaceIndex is the face for meshes and the
// segment for lines.
type Intersection struct {
	Object    *Object3D
	Distance  float64
	Point     mgl64.Vec3
	FaceIndex int
}

// Raycaster finds the objects under a ray. Each object reports at most
// its nearest hit. Visibility is not considered.
type Raycaster struct {
	Ray           Ray
	Near, Far     float64
	LineThreshold float64
}

func NewRaycaster() *Raycaster {
	return &Raycaster{
		Ray:           Ray{Direction: mgl64.Vec3{0, 0, -1}},
		Far:           math.Inf(1),
		LineThreshold: 1,
	}
}

// SetFromCamera aims the ray from the camera through a point given in
// normalised device coordinates.
func (r *Raycaster) SetFromCamera(ndc mgl64.Vec2, camera *PerspectiveCamera) {
	origin := camera.WorldPosition()
	through := camera.Unproject(mgl64.Vec3{ndc.X(), ndc.Y(), 0.5})
	dir := through.Sub(origin)
	if dir.Len() < epsilon {
		dir = mgl64.Vec3{0, 0, -1}
	}
	r.Ray = Ray{Origin: origin, Direction: dir.Normalize()}
}

func (r *Raycaster) IntersectObject(obj *Object3D, recursive bool) []Intersection {
	var hits []Intersection
	hits = r.intersect(obj, recursive, hits)
	sortIntersections(hits)
	return hits
}

// IntersectObjects tests every object and returns the hits nearest first.
func (r *Raycaster) IntersectObjects(objs []*Object3D, recursive bool) []Intersection {
	var hits []Intersection
	for _, o := range objs {
		hits = r.intersect(o, recursive, hits)
	}
	sortIntersections(hits)
	return hits
}

func sortIntersections(hits []Intersection) {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
}

func (r *Raycaster) intersect(obj *Object3D, recursive bool, hits []Intersection) []Intersection {
	if obj == nil {
		return hits
	}
	var hit Intersection
	var ok bool
	switch obj.Kind {
	case KindMesh:
		hit, ok = r.intersectMesh(obj)
	case KindLine:
		hit, ok = r.intersectLines(obj)
	}
	if ok {
		hits = append(hits, hit)
	}
	if recursive {
		for _, c := range obj.children {
			hits = r.intersect(c, true, hits)
		}
	}
	return hits
}

func (r *Raycaster) intersectMesh(obj *Object3D) (Intersection, bool) {
	g := obj.Geometry
	if g == nil || len(g.Faces) == 0 {
		return Intersection{}, false
	}
	frontOnly := obj.Material == nil || obj.Material.Side == FrontSide

	world := obj.WorldMatrix()
	verts := obj.worldVertices(world, nil)

	best := Intersection{Distance: math.Inf(1)}
	found := false
	pts := make([]mgl64.Vec3, 0, 8)
	for i, f := range g.Faces {
		pts = pts[:0]
		for _, idx := range f.Indices {
			pts = append(pts, verts[idx])
		}
		t, point, ok := rayIntersectsPolygon(r.Ray, pts, frontOnly)
		if !ok || t < r.Near || t > r.Far || t >= best.Distance {
			continue
		}
		best = Intersection{Object: obj, Distance: t, Point: point, FaceIndex: i}
		found = true
	}
	return best, found
}

func (r *Raycaster) intersectLines(obj *Object3D) (Intersection, bool) {
	g := obj.Geometry
	if g == nil || len(g.Segments) == 0 {
		return Intersection{}, false
	}
	world := obj.WorldMatrix()
	verts := obj.worldVertices(world, nil)
	thresholdSq := r.LineThreshold * r.LineThreshold

	best := Intersection{Distance: math.Inf(1)}
	found := false
	for i, s := range g.Segments {
		onRay, onSeg := closestRaySegment(r.Ray, verts[s.A], verts[s.B])
		if onRay.Sub(onSeg).LenSqr() > thresholdSq {
			continue
		}
		d := onRay.Sub(r.Ray.Origin).Len()
		if d < r.Near || d > r.Far || d >= best.Distance {
			continue
		}
		best = Intersection{Object: obj, Distance: d, Point: onSeg, FaceIndex: i}
		found = true
	}
	return best, found
}

// rayIntersectsPolygon intersects a ray with a planar convex polygon.
// It returns the distance along the ray and the hit point.
func rayIntersectsPolygon(ray Ray, polygonPoints []mgl64.Vec3, frontOnly bool) (float64, mgl64.Vec3, bool) {
	if len(polygonPoints) < 3 {
		return 0, mgl64.Vec3{}, false
	}
	plane := NewPlaneFromPolygon(polygonPoints)
	if frontOnly && plane.Normal.Dot(ray.Direction) > 0 {
		return 0, mgl64.Vec3{}, false
	}
	t, ok := plane.RayIntersect(ray)
	if !ok {
		return 0, mgl64.Vec3{}, false
	}
	point := ray.At(t)
	if !isPointInPolygon(point, polygonPoints, plane.Normal) {
		return 0, mgl64.Vec3{}, false
	}
	return t, point, true
}

// isPointInPolygon tests a point already on the polygon's plane by
// projecting both onto the axis plane the polygon faces most and
// counting edge crossings.
func isPointInPolygon(point mgl64.Vec3, polygonPoints []mgl64.Vec3, normal mgl64.Vec3) bool {
	absX := math.Abs(normal.X())
	absY := math.Abs(normal.Y())
	absZ := math.Abs(normal.Z())

	var u, v int
	switch {
	case absX >= absY && absX >= absZ:
		u, v = 1, 2
	case absY >= absX && absY >= absZ:
		u, v = 0, 2
	default:
		u, v = 0, 1
	}

	px, py := point[u], point[v]
	inside := false
	n := len(polygonPoints)
	for i := 0; i < n; i++ {
		p1 := polygonPoints[i]
		p2 := polygonPoints[(i+1)%n]
		if (p1[v] > py) != (p2[v] > py) {
			xCross := (p2[u]-p1[u])*(py-p1[v])/(p2[v]-p1[v]) + p1[u]
			if px < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// closestRaySegment returns the closest pair of points between a ray and
// the segment a-b.
func closestRaySegment(ray Ray, a, b mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	d1 := ray.Direction
	d2 := b.Sub(a)
	w := ray.Origin.Sub(a)

	aa := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(w)

	var s, t float64
	if e < epsilon {
		s = math.Max(0, -d1.Dot(w)/aa)
		return ray.At(s), a
	}
	c := d1.Dot(w)
	bb := d1.Dot(d2)
	denom := aa*e - bb*bb
	if denom > epsilon {
		s = math.Max(0, (bb*f-c*e)/denom)
	}
	t = (bb*s + f) / e
	switch {
	case t < 0:
		t = 0
		s = math.Max(0, -c/aa)
	case t > 1:
		t = 1
		s = math.Max(0, (bb-c)/aa)
	}
	return ray.At(s), a.Add(d2.Mul(t))
}

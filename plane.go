package siescene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Plane is the set of points p with Normal·p + D = 0.
type Plane struct {
	Normal mgl64.Vec3
	D      float64
}

const planeThickness = 1e-6

// NewPlane builds the plane through point with the given unit normal.
func NewPlane(point, normal mgl64.Vec3) Plane {
	return Plane{Normal: normal, D: -normal.Dot(point)}
}

// NewPlaneFromPolygon builds the plane of a flat polygon, oriented by its
// winding.
func NewPlaneFromPolygon(points []mgl64.Vec3) Plane {
	if len(points) == 0 {
		return Plane{Normal: mgl64.Vec3{0, 0, 1}}
	}
	return NewPlane(points[0], polygonNormal(points))
}

// PointOnPlane returns the signed distance of p. Points within
// planeThickness of the plane count as on it.
func (p Plane) PointOnPlane(pt mgl64.Vec3) float64 {
	num := p.Normal.Dot(pt) + p.D
	if math.Abs(num) < planeThickness {
		return 0
	}
	return num
}

// LIntersect reports whether the segment p1-p2 crosses the plane with
// its ends strictly on opposite sides.
func (p Plane) LIntersect(p1, p2 mgl64.Vec3) bool {
	a := p.PointOnPlane(p1)
	b := p.PointOnPlane(p2)
	if a == 0 || b == 0 {
		return false
	}
	return (a > 0) != (b > 0)
}

// LineIntersect returns where the segment p1-p2 crosses the plane.
func (p Plane) LineIntersect(p1, p2 mgl64.Vec3) (mgl64.Vec3, bool) {
	if !p.LIntersect(p1, p2) {
		return mgl64.Vec3{}, false
	}
	t, ok := p.along(p1, p2.Sub(p1))
	if !ok {
		return mgl64.Vec3{}, false
	}
	return p1.Add(p2.Sub(p1).Mul(t)), true
}

// RayIntersect returns the distance along the ray to the plane. Rays
// parallel to the plane or pointing away from it miss.
func (p Plane) RayIntersect(ray Ray) (float64, bool) {
	t, ok := p.along(ray.Origin, ray.Direction)
	if !ok || t < 0 {
		return 0, false
	}
	return t, true
}

// Facing reports whether pt is on the side the normal points to.
func (p Plane) Facing(pt mgl64.Vec3) bool {
	return p.Normal.Dot(pt)+p.D > 0
}

func (p Plane) along(origin, dir mgl64.Vec3) (float64, bool) {
	denom := p.Normal.Dot(dir)
	if math.Abs(denom) < epsilon {
		return 0, false
	}
	return -(p.Normal.Dot(origin) + p.D) / denom, true
}

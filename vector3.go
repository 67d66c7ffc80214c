package siescene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// mulVec multiplies two vectors component by component.
func mulVec(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

func lerpVec(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func smoothstep(low, high, x float64) float64 {
	if x <= low {
		return 0
	}
	if x >= high {
		return 1
	}
	x = (x - low) / (high - low)
	return x * x * (3 - 2*x)
}

// polygonNormal uses Newell's method so degenerate leading corners
// (sphere poles, clipped faces) still give a usable normal.
func polygonNormal(points []mgl64.Vec3) mgl64.Vec3 {
	var n mgl64.Vec3
	for i := range points {
		cur := points[i]
		next := points[(i+1)%len(points)]
		n[0] += (cur.Y() - next.Y()) * (cur.Z() + next.Z())
		n[1] += (cur.Z() - next.Z()) * (cur.X() + next.X())
		n[2] += (cur.X() - next.X()) * (cur.Y() + next.Y())
	}
	if n.Len() == 0 {
		return mgl64.Vec3{0, 0, 1}
	}
	return n.Normalize()
}

func centroid(points []mgl64.Vec3) mgl64.Vec3 {
	var c mgl64.Vec3
	if len(points) == 0 {
		return c
	}
	for _, p := range points {
		c = c.Add(p)
	}
	return c.Mul(1 / float64(len(points)))
}

func almostZero(v float64) bool {
	return math.Abs(v) < epsilon
}

package siescene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// clipVertex is a view space corner with its texture coordinate.
type clipVertex struct {
	pos mgl64.Vec3
	uv  mgl64.Vec2
}

// clipPolygonAgainstNearPlane keeps the part of a view space polygon in
// front of the plane z = nearZ. The camera looks down -Z so kept points
// have z <= nearZ. UVs are interpolated along clipped edges.
func clipPolygonAgainstNearPlane(points []clipVertex, nearZ float64, dst []clipVertex) []clipVertex {
	dst = dst[:0]
	if len(points) == 0 {
		return dst
	}
	inside := func(p clipVertex) bool {
		return p.pos.Z() <= nearZ
	}

	prev := points[len(points)-1]
	prevIn := inside(prev)
	for _, cur := range points {
		curIn := inside(cur)
		if curIn != prevIn {
			t := (nearZ - prev.pos.Z()) / (cur.pos.Z() - prev.pos.Z())
			dst = append(dst, clipVertex{
				pos: lerpVec(prev.pos, cur.pos, t),
				uv:  prev.uv.Add(cur.uv.Sub(prev.uv).Mul(t)),
			})
		}
		if curIn {
			dst = append(dst, cur)
		}
		prev, prevIn = cur, curIn
	}
	return dst
}

// clipSegmentAgainstNearPlane returns the visible part of a view space
// segment, or false when it is entirely behind the near plane.
func clipSegmentAgainstNearPlane(a, b mgl64.Vec3, nearZ float64) (mgl64.Vec3, mgl64.Vec3, bool) {
	aIn := a.Z() <= nearZ
	bIn := b.Z() <= nearZ
	switch {
	case aIn && bIn:
		return a, b, true
	case !aIn && !bIn:
		return a, b, false
	}
	t := (nearZ - a.Z()) / (b.Z() - a.Z())
	p := lerpVec(a, b, t)
	if aIn {
		return a, p, true
	}
	return p, b, true
}

package siescene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Face is a convex planar polygon over a geometry's vertex list.
type Face struct {
	Indices []int
	UVs     []mgl64.Vec2 // per corner, image space (v grows downwards)
	Normal  mgl64.Vec3
	Col     color.RGBA // zero alpha means use the material color
}

func (f *Face) hasUVs() bool {
	return len(f.UVs) == len(f.Indices)
}

func (f *Face) Copy() Face {
	n := Face{
		Indices: make([]int, len(f.Indices)),
		Normal:  f.Normal,
		Col:     f.Col,
	}
	copy(n.Indices, f.Indices)
	if f.UVs != nil {
		n.UVs = make([]mgl64.Vec2, len(f.UVs))
		copy(n.UVs, f.UVs)
	}
	return n
}

// Segment is a line between two vertices.
type Segment struct {
	A, B int
	Col  color.RGBA // zero alpha means use the material color
}

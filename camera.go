package siescene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// PerspectiveCamera looks down its local -Z axis.
type PerspectiveCamera struct {
	*Object3D

	Fov    float64 // vertical field of view in degrees
	Aspect float64
	Near   float64
	Far    float64

	projection mgl64.Mat4
}

func NewPerspectiveCamera(fov, aspect, near, far float64) *PerspectiveCamera {
	c := &PerspectiveCamera{
		Object3D: NewObject3D(KindCamera),
		Fov:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
	}
	c.Name = "PerspectiveCamera"
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix must be called after changing Fov, Aspect, Near
// or Far.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.Fov), aspect, c.Near, c.Far)
}

func (c *PerspectiveCamera) ProjectionMatrix() mgl64.Mat4 {
	return c.projection
}

func (c *PerspectiveCamera) ViewMatrix() mgl64.Mat4 {
	return c.WorldMatrix().Inv()
}

// Project maps a world point to normalised device coordinates.
func (c *PerspectiveCamera) Project(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, c.projection.Mul4(c.ViewMatrix()))
}

// Unproject maps normalised device coordinates back to world space.
func (c *PerspectiveCamera) Unproject(ndc mgl64.Vec3) mgl64.Vec3 {
	inv := c.projection.Mul4(c.ViewMatrix()).Inv()
	return mgl64.TransformCoordinate(ndc, inv)
}

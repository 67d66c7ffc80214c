package siescene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// OrbitControls keeps a camera on a sphere around Target. Drag deltas
// change the angles, wheel steps change the radius.
type OrbitControls struct {
	Target      mgl64.Vec3
	Enabled     bool
	RotateSpeed float64
	ZoomSpeed   float64

	MinDistance, MaxDistance     float64
	MinPolarAngle, MaxPolarAngle float64

	camera *PerspectiveCamera
	radius float64
	theta  float64 // around +Y, measured from +Z
	phi    float64 // down from +Y
}

func NewOrbitControls(camera *PerspectiveCamera) *OrbitControls {
	c := &OrbitControls{
		Enabled:       true,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		MaxDistance:   math.Inf(1),
		MaxPolarAngle: math.Pi,
		camera:        camera,
	}
	c.sync()
	c.Update()
	return c
}

// sync reads the spherical coordinates back from the camera position.
func (c *OrbitControls) sync() {
	offset := c.camera.Position.Sub(c.Target)
	c.radius = offset.Len()
	if c.radius == 0 {
		c.theta, c.phi = 0, 0
		return
	}
	c.theta = math.Atan2(offset.X(), offset.Z())
	c.phi = math.Acos(clampf(offset.Y()/c.radius, -1, 1))
}

// Rotate orbits by a drag of dx, dy pixels on a viewport of the given
// height. A full-height drag turns by one revolution.
func (c *OrbitControls) Rotate(dx, dy, height float64) {
	if !c.Enabled || height <= 0 {
		return
	}
	c.theta -= 2 * math.Pi * dx / height * c.RotateSpeed
	c.phi -= 2 * math.Pi * dy / height * c.RotateSpeed
	c.Update()
}

// Zoom moves towards the target for positive wheel steps.
func (c *OrbitControls) Zoom(steps float64) {
	if !c.Enabled || steps == 0 {
		return
	}
	scale := math.Pow(0.95, c.ZoomSpeed*math.Abs(steps))
	if steps > 0 {
		c.radius *= scale
	} else {
		c.radius /= scale
	}
	c.Update()
}

func (c *OrbitControls) Distance() float64 {
	return c.radius
}

// Update clamps the angles and distance and moves the camera.
func (c *OrbitControls) Update() {
	const eps = 1e-6
	c.phi = clampf(c.phi, math.Max(c.MinPolarAngle, eps), math.Min(c.MaxPolarAngle, math.Pi-eps))
	c.radius = clampf(c.radius, c.MinDistance, c.MaxDistance)

	sinPhi := math.Sin(c.phi)
	offset := mgl64.Vec3{
		c.radius * sinPhi * math.Sin(c.theta),
		c.radius * math.Cos(c.phi),
		c.radius * sinPhi * math.Cos(c.theta),
	}
	c.camera.Position = c.Target.Add(offset)
	c.camera.LookAt(c.Target)
}

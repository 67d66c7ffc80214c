package demo

import (
	"github.com/go-gl/mathgl/mgl64"
)

// NormalizePointer maps a pixel position to normalised device
// coordinates: x and y in [-1, 1] with y up.
func NormalizePointer(clientX, clientY float64, width, height int) mgl64.Vec2 {
	if width <= 0 || height <= 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{
		(clientX/float64(width))*2 - 1,
		-(clientY/float64(height))*2 + 1,
	}
}

// PointerMove records the pointer and turns the look-at cube and the
// model towards it. It returns ErrModelNotReady until the model loads;
// the cube has been updated either way.
func PointerMove(c *Context, clientX, clientY float64) error {
	c.Pointer = NormalizePointer(clientX, clientY, c.Width, c.Height)
	target := mgl64.Vec3{c.Pointer.X(), c.Pointer.Y(), 0}

	c.LookAtCube.LookAt(target)
	return c.Model.LookAt(target)
}

// Resize adapts the camera and renderer to a new viewport.
func Resize(c *Context, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Width, c.Height = width, height
	c.Camera.Aspect = float64(width) / float64(height)
	c.Camera.UpdateProjectionMatrix()
	c.Renderer.SetSize(width, height)
}

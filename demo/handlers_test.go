package demo

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePointer(t *testing.T) {
	testCases := []struct {
		name     string
		x, y     float64
		expected mgl64.Vec2
	}{
		{"Top left", 0, 0, mgl64.Vec2{-1, 1}},
		{"Bottom right", 800, 600, mgl64.Vec2{1, -1}},
		{"Centre", 400, 300, mgl64.Vec2{0, 0}},
		{"Quarter", 200, 450, mgl64.Vec2{-0.5, -0.5}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizePointer(tc.x, tc.y, 800, 600)
			assert.InDelta(t, tc.expected.X(), got.X(), 1e-12)
			assert.InDelta(t, tc.expected.Y(), got.Y(), 1e-12)
		})
	}

	assert.Equal(t, mgl64.Vec2{}, NormalizePointer(10, 10, 0, 600))
}

func TestPointerMoveTurnsCube(t *testing.T) {
	c := buildHeadless(t)

	err := PointerMove(c, 400, 300)
	assert.ErrorIs(t, err, ErrModelNotReady)
	assert.Equal(t, mgl64.Vec2{0, 0}, c.Pointer)

	// cube2 sits at (8, 2, 0) and turns its +Z axis to the origin
	forward := c.LookAtCube.WorldMatrix().Mul4x1(mgl64.Vec4{0, 0, 1, 0}).Vec3().Normalize()
	want := mgl64.Vec3{-8, -2, 0}.Normalize()
	assert.Greater(t, forward.Dot(want), 0.999)

	PointerMove(c, 800, 0)
	forward = c.LookAtCube.WorldMatrix().Mul4x1(mgl64.Vec4{0, 0, 1, 0}).Vec3().Normalize()
	want = mgl64.Vec3{1 - 8, 1 - 2, 0}.Normalize()
	assert.Greater(t, forward.Dot(want), 0.999)
}

func TestResize(t *testing.T) {
	c := buildHeadless(t)

	Resize(c, 1024, 512)
	assert.Equal(t, 1024, c.Width)
	assert.Equal(t, 512, c.Height)
	assert.InDelta(t, 2.0, c.Camera.Aspect, 1e-12)
	w, h := c.Renderer.Size()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 512, h)

	Resize(c, 0, 100)
	Resize(c, 100, -1)
	assert.Equal(t, 1024, c.Width)
	assert.InDelta(t, 2.0, c.Camera.Aspect, 1e-12)

	// pointer normalisation follows the new size
	PointerMove(c, 512, 256)
	assert.InDelta(t, 0, c.Pointer.X(), 1e-12)
	assert.InDelta(t, 0, c.Pointer.Y(), 1e-12)
}

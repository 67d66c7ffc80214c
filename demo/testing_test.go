package demo

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

// headlessConfig builds without textures or a model.
func headlessConfig() Config {
	return Config{Width: 800, Height: 600, Title: "test"}
}

func buildHeadless(t *testing.T) *Context {
	t.Helper()
	c, err := Build(headlessConfig())
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

// pointAt sets the pointer over a world position.
func pointAt(c *Context, p mgl64.Vec3) {
	ndc := c.Camera.Project(p)
	c.Pointer = mgl64.Vec2{ndc.X(), ndc.Y()}
}

package demo

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, "#FF0000", opts.SphereColor)
	assert.False(t, opts.Wireframe)
	assert.Equal(t, 0.02, opts.Speed)
	assert.Equal(t, 0.2, opts.Angle)
	assert.Equal(t, 0.0, opts.Penumbra)
	assert.Equal(t, 100000.0, opts.Intensity)
}

func TestPanelClamps(t *testing.T) {
	testCases := []struct {
		name     string
		set      func(*Panel, float64)
		get      func(Options) float64
		value    float64
		expected float64
	}{
		{"Speed above", (*Panel).SetSpeed, func(o Options) float64 { return o.Speed }, 1, MaxSpeed},
		{"Speed below", (*Panel).SetSpeed, func(o Options) float64 { return o.Speed }, -1, MinSpeed},
		{"Angle inside", (*Panel).SetAngle, func(o Options) float64 { return o.Angle }, 0.7, 0.7},
		{"Penumbra above", (*Panel).SetPenumbra, func(o Options) float64 { return o.Penumbra }, 2, MaxPenumbra},
		{"Intensity below", (*Panel).SetIntensity, func(o Options) float64 { return o.Intensity }, 10, MinIntensity},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPanel(DefaultOptions())
			tc.set(p, tc.value)
			assert.Equal(t, tc.expected, tc.get(p.Options))
		})
	}
}

func TestPanelSphereColor(t *testing.T) {
	p := NewPanel(DefaultOptions())
	var pushed []color.RGBA
	p.OnSphereColor = func(c color.RGBA) { pushed = append(pushed, c) }

	assert.NoError(t, p.SetSphereColor("#ff0000"))
	assert.Empty(t, pushed, "unchanged color should not notify")

	assert.NoError(t, p.SetSphereColor("00ff00"))
	assert.Equal(t, "#00FF00", p.Options.SphereColor)
	assert.Equal(t, []color.RGBA{{G: 255, A: 255}}, pushed)
	assert.Equal(t, [3]float32{0, 1, 0}, p.sphereColor)

	assert.Error(t, p.SetSphereColor("green"))
	assert.Equal(t, "#00FF00", p.Options.SphereColor)
	assert.Len(t, pushed, 1)
}

func TestPanelWireframe(t *testing.T) {
	p := NewPanel(DefaultOptions())
	var calls []bool
	p.OnWireframe = func(on bool) { calls = append(calls, on) }

	p.SetWireframe(false)
	p.SetWireframe(true)
	p.SetWireframe(true)
	p.SetWireframe(false)
	assert.Equal(t, []bool{true, false}, calls)
	assert.False(t, p.Options.Wireframe)
}

package demo

import (
	"math"
)

// Frame advances the animation by one display refresh and applies the
// hover effects of whatever is under the pointer.
func Frame(c *Context) {
	c.Spin.RotateX(SpinStep)
	c.Spin.RotateY(SpinStep)

	opts := c.Options()
	c.Step += opts.Speed
	c.Bob.Position[1] = BobAmplitude * math.Abs(math.Sin(c.Step))

	spot := c.Spot.Light
	spot.Angle = opts.Angle
	spot.Penumbra = opts.Penumbra
	spot.Intensity = opts.Intensity
	c.SpotHelper.Update()

	c.Raycaster.SetFromCamera(c.Pointer, c.Camera)
	hits := c.Raycaster.IntersectObjects(c.Targets(), true)
	c.LastHits = hits
	if len(hits) > 0 {
		c.Config.Logf("%d intersections, nearest %s at %.2f", len(hits), hits[0].Object.Name, hits[0].Distance)
	}

	for _, hit := range hits {
		if hit.Object.ID == c.HoverHighlightID && hit.Object.Material != nil {
			hit.Object.Material.SetHex(HighlightColor)
		}
		if hit.Object.ID == c.HoverSpinID {
			hit.Object.RotateX(SpinStep)
			hit.Object.RotateY(SpinStep)
		}
	}
}

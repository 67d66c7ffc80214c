package siescene

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type LightKind int

const (
	AmbientLight LightKind = iota
	SpotLight
)

// Light is the payload of a KindLight object. Spot lights shine from the
// object's world position towards Target.
type Light struct {
	Kind      LightKind
	Color     color.RGBA
	Intensity float64

	Angle    float64 // cone half angle in radians
	Penumbra float64 // fraction of the cone that fades out, 0..1
	Decay    float64
	Distance float64 // 0 means unlimited
	Target   mgl64.Vec3
}

func NewAmbientLight(hex uint32, intensity float64) *Object3D {
	o := NewObject3D(KindLight)
	o.Name = "AmbientLight"
	o.Light = &Light{Kind: AmbientLight, Color: ColorFromHex(hex), Intensity: intensity}
	return o
}

func NewSpotLight(hex uint32, intensity float64) *Object3D {
	o := NewObject3D(KindLight)
	o.Name = "SpotLight"
	o.Position = mgl64.Vec3{0, 1, 0}
	o.Light = &Light{
		Kind:      SpotLight,
		Color:     ColorFromHex(hex),
		Intensity: intensity,
		Angle:     math.Pi / 3,
		Decay:     2,
	}
	return o
}

// ConeFactor returns how much of the spot reaches a direction whose angle
// to the spot axis has the given cosine.
func (l *Light) ConeFactor(cosAngle float64) float64 {
	outer := math.Cos(l.Angle)
	inner := math.Cos(l.Angle * (1 - clampf(l.Penumbra, 0, 1)))
	if inner-outer < epsilon {
		if cosAngle >= outer {
			return 1
		}
		return 0
	}
	return smoothstep(outer, inner, cosAngle)
}

// DistanceFactor attenuates with distance, fading to zero at Distance
// when one is set.
func (l *Light) DistanceFactor(d float64) float64 {
	f := 1 / math.Pow(math.Max(d, 0.01), l.Decay)
	if l.Distance > 0 {
		r := d / l.Distance
		cut := clampf(1-r*r*r*r, 0, 1)
		f *= cut * cut
	}
	return f
}

// Irradiance returns the light arriving at point p on a surface with
// normal n, before the surface color is applied.
func (l *Light) Irradiance(lightPos, p, n mgl64.Vec3) float64 {
	switch l.Kind {
	case AmbientLight:
		return l.Intensity
	case SpotLight:
		toLight := lightPos.Sub(p)
		d := toLight.Len()
		if d < epsilon {
			return 0
		}
		dirToLight := toLight.Mul(1 / d)
		nl := n.Dot(dirToLight)
		if nl <= 0 {
			return 0
		}
		cone := l.ConeFactor(l.axis(lightPos).Dot(dirToLight.Mul(-1)))
		if cone == 0 {
			return 0
		}
		return l.Intensity * cone * l.DistanceFactor(d) * nl / math.Pi
	}
	return 0
}

func (l *Light) axis(lightPos mgl64.Vec3) mgl64.Vec3 {
	dir := l.Target.Sub(lightPos)
	if dir.Len() < epsilon {
		return mgl64.Vec3{0, -1, 0}
	}
	return dir.Normalize()
}

// SpotLightHelper draws a spot light's cone as lines. Call Update after
// changing the light.
type SpotLightHelper struct {
	*Object3D
	light *Object3D
}

const spotHelperRimSegments = 32

func NewSpotLightHelper(light *Object3D) *SpotLightHelper {
	h := &SpotLightHelper{
		Object3D: NewLineSegments(NewGeometry(), NewLineBasicMaterial(0xFFFFFF)),
		light:    light,
	}
	h.Name = "SpotLightHelper"
	h.Update()
	return h
}

func (h *SpotLightHelper) Light() *Object3D {
	return h.light
}

// Update rebuilds the cone from the light's position, target, angle and
// distance. The helper stays at the origin; its lines are in world space.
func (h *SpotLightHelper) Update() {
	l := h.light.Light
	apex := h.light.WorldPosition()
	axis := l.axis(apex)

	length := l.Distance
	if length == 0 {
		length = 1000
	}
	radius := length * math.Tan(l.Angle)
	centre := apex.Add(axis.Mul(length))

	up := mgl64.Vec3{0, 1, 0}
	if math.Abs(axis.Dot(up)) > 0.999 {
		up = mgl64.Vec3{1, 0, 0}
	}
	u := axis.Cross(up).Normalize()
	v := axis.Cross(u).Normalize()
	rim := func(a float64) mgl64.Vec3 {
		return centre.Add(u.Mul(radius * math.Cos(a))).Add(v.Mul(radius * math.Sin(a)))
	}

	g := NewGeometry()
	for i := 0; i < 4; i++ {
		g.AddSegment(apex, rim(float64(i)*math.Pi/2))
	}
	for i := 0; i < spotHelperRimSegments; i++ {
		a0 := float64(i) / spotHelperRimSegments * 2 * math.Pi
		a1 := float64(i+1) / spotHelperRimSegments * 2 * math.Pi
		g.AddSegment(rim(a0), rim(a1))
	}
	h.Geometry = g
	h.Material.Color = l.Color
}

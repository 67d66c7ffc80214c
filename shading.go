package siescene

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// sceneLight is a light with its world position resolved for the frame.
type sceneLight struct {
	obj      *Object3D
	light    *Light
	position mgl64.Vec3
}

func collectLights(scene *Scene) []sceneLight {
	var lights []sceneLight
	scene.Traverse(func(o *Object3D) bool {
		if !o.Visible {
			return false
		}
		if o.Kind == KindLight && o.Light != nil {
			lights = append(lights, sceneLight{obj: o, light: o.Light, position: o.WorldPosition()})
		}
		return true
	})
	return lights
}

// getColor lights one face. p is the face centre and n its unit normal
// facing the viewer, both in world space.
func getColor(mat *Material, base color.RGBA, p, n, eye mgl64.Vec3, lights []sceneLight) mgl64.Vec3 {
	albedo := colorToVec(base)
	if !mat.lit() {
		return albedo
	}

	var diffuse, specular mgl64.Vec3
	view := eye.Sub(p)
	if view.Len() > epsilon {
		view = view.Normalize()
	}
	for _, l := range lights {
		lightColor := colorToVec(l.light.Color)
		irradiance := l.light.Irradiance(l.position, p, n)
		if irradiance == 0 {
			continue
		}
		diffuse = diffuse.Add(lightColor.Mul(irradiance))

		if mat.Kind != MaterialPhong || l.light.Kind != SpotLight {
			continue
		}
		half := l.position.Sub(p).Normalize().Add(view)
		if half.Len() < epsilon {
			continue
		}
		nh := math.Max(0, n.Dot(half.Normalize()))
		strength := mat.Specular * 0.25 * (mat.Shininess*0.5 + 1) * math.Pow(nh, mat.Shininess)
		specular = specular.Add(lightColor.Mul(irradiance * strength))
	}
	return mulVec(albedo, diffuse).Add(specular)
}

// applyFog blends a linear color towards the fog color.
func applyFog(c mgl64.Vec3, fog *FogExp2, depth float64) mgl64.Vec3 {
	if fog == nil {
		return c
	}
	return lerpVec(c, colorToVec(fog.Color), fog.Factor(depth))
}

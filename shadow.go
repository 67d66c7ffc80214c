package siescene

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	shadowOpacity = 0.45
	shadowLift    = 0.01
)

// shadowPlane is the world space plane of a flat shadow receiver.
type shadowPlane struct {
	Plane
	obj *Object3D
}

// projectFromPoint casts p from the light onto the plane. It fails when
// p is not between the light and the plane.
func (s shadowPlane) projectFromPoint(light, p mgl64.Vec3) (mgl64.Vec3, bool) {
	dir := p.Sub(light)
	if s.Normal.Dot(dir) > -epsilon {
		return mgl64.Vec3{}, false
	}
	t, ok := s.RayIntersect(Ray{Origin: light, Direction: dir})
	if !ok || t < 1 {
		return mgl64.Vec3{}, false
	}
	return light.Add(dir.Mul(t)).Add(s.Normal.Mul(shadowLift)), true
}

func shadowReceivers(scene *Scene) []shadowPlane {
	var planes []shadowPlane
	scene.Traverse(func(o *Object3D) bool {
		if !o.Visible {
			return false
		}
		if o.Kind != KindMesh || !o.ReceiveShadow || o.Geometry == nil || !o.Geometry.IsPlanar() {
			return true
		}
		world := o.WorldMatrix()
		pts := o.Geometry.FacePoints(0, nil)
		for i := range pts {
			pts[i] = transformPoint(world, pts[i])
		}
		planes = append(planes, shadowPlane{Plane: NewPlaneFromPolygon(pts), obj: o})
		return true
	})
	return planes
}

func shadowCasters(scene *Scene) []*Object3D {
	var casters []*Object3D
	scene.Traverse(func(o *Object3D) bool {
		if !o.Visible {
			return false
		}
		if o.Kind == KindMesh && o.CastShadow && o.Geometry != nil {
			casters = append(casters, o)
		}
		return true
	})
	return casters
}

// addShadows flattens every caster face that faces a shadow casting spot
// light onto each planar receiver. The polygons are drawn as overlays
// right after the receiver's render order group.
func (r *Renderer) addShadows(scene *Scene) {
	receivers := shadowReceivers(scene)
	if len(receivers) == 0 {
		return
	}
	casters := shadowCasters(scene)
	if len(casters) == 0 {
		return
	}

	var worldPts, flat []mgl64.Vec3
	for _, l := range r.lights {
		if l.light.Kind != SpotLight || !l.obj.CastShadow {
			continue
		}
		axis := l.light.axis(l.position)

		for _, recv := range receivers {
			if !recv.Facing(l.position) {
				continue
			}
			if recv.obj.Material != nil && recv.obj.Material.Side == FrontSide && !recv.Facing(r.eye) {
				continue
			}
			for _, caster := range casters {
				if caster == recv.obj {
					continue
				}
				world := caster.WorldMatrix()
				verts := caster.worldVertices(world, nil)
				for _, f := range caster.Geometry.Faces {
					worldPts = worldPts[:0]
					for _, idx := range f.Indices {
						worldPts = append(worldPts, verts[idx])
					}
					centre := centroid(worldPts)
					if polygonNormal(worldPts).Dot(l.position.Sub(centre)) <= 0 {
						continue
					}

					flat = flat[:0]
					ok := true
					for _, p := range worldPts {
						q, hit := recv.projectFromPoint(l.position, p)
						if !hit {
							ok = false
							break
						}
						flat = append(flat, q)
					}
					if !ok {
						continue
					}

					toShadow := centroid(flat).Sub(l.position)
					cone := l.light.ConeFactor(axis.Dot(toShadow.Normalize()))
					if cone == 0 {
						continue
					}
					r.addShadowPolygon(flat, recv.obj.RenderOrder, cone*shadowOpacity)
				}
			}
		}
	}
}

func (r *Renderer) addShadowPolygon(points []mgl64.Vec3, order int, opacity float64) {
	r.clipIn = r.clipIn[:0]
	for _, p := range points {
		r.clipIn = append(r.clipIn, clipVertex{pos: transformPoint(r.view, p)})
	}
	r.clipOut = clipPolygonAgainstNearPlane(r.clipIn, -r.near, r.clipOut)
	if len(r.clipOut) < 3 {
		return
	}
	r.projectClipped(false, 0, 0)

	clr := shadowColor(opacity)
	depth := -transformPoint(r.view, centroid(points)).Z()
	r.items = append(r.items, drawItem{
		order:   order,
		overlay: true,
		depth:   depth,
		body:    r.push(fillConvexPolygon(nil, nil, r.xs, r.ys, nil, nil, clr)),
	})
	r.Info.Shadows++
}

func shadowColor(opacity float64) color.RGBA {
	return color.RGBA{A: uint8(math.Round(clampf(opacity, 0, 1) * 255))}
}

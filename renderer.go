package siescene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// span is a range of the renderer's vertex and index arenas. Indices in
// the span are relative to its first vertex.
type span struct {
	v0, v1 int
	i0, i1 int
}

func (s span) empty() bool {
	return s.i1 <= s.i0
}

// drawItem is one polygon or line ready to draw.
type drawItem struct {
	order   int
	overlay bool
	depth   float64
	src     *ebiten.Image
	body    span
	fog     span // drawn over a textured face
}

// RenderInfo counts the work done by the last Render call.
type RenderInfo struct {
	Faces     int
	Lines     int
	Shadows   int
	DrawCalls int
}

// Renderer draws a scene with the painter's algorithm: every face and
// line segment is shaded once, sorted far to near and batched into
// DrawTriangles calls.
type Renderer struct {
	ShadowMapEnabled bool
	Info             RenderInfo

	width, height int
	batcher       *PolygonBatcher

	items    []drawItem
	vertices []ebiten.Vertex
	indices  []uint16

	// per frame state
	view, proj mgl64.Mat4
	near, far  float64
	eye        mgl64.Vec3
	fog        *FogExp2
	lights     []sceneLight

	clipIn, clipOut []clipVertex
	xs, ys, us, vs  []float32
	worldPts        []mgl64.Vec3
}

func NewRenderer(width, height int) *Renderer {
	r := &Renderer{batcher: NewPolygonBatcher()}
	r.SetSize(width, height)
	return r
}

func (r *Renderer) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
}

func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Render draws the scene as seen by the camera onto screen.
func (r *Renderer) Render(screen *ebiten.Image, scene *Scene, camera *PerspectiveCamera) {
	r.drawBackground(screen, scene)
	r.collect(scene, camera)
	r.flush(screen)
}

// collect shades and sorts every visible face, line and shadow.
func (r *Renderer) collect(scene *Scene, camera *PerspectiveCamera) {
	r.prepare(scene, camera)

	scene.Traverse(func(o *Object3D) bool {
		if !o.Visible {
			return false
		}
		switch o.Kind {
		case KindMesh:
			r.addMesh(o)
		case KindLine:
			r.addLines(o)
		}
		return true
	})
	if r.ShadowMapEnabled {
		r.addShadows(scene)
	}

	r.sortItems()
}

func (r *Renderer) prepare(scene *Scene, camera *PerspectiveCamera) {
	r.items = r.items[:0]
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	r.Info = RenderInfo{}

	r.view = camera.ViewMatrix()
	r.proj = camera.ProjectionMatrix()
	r.near, r.far = camera.Near, camera.Far
	r.eye = camera.WorldPosition()
	r.fog = scene.Fog
	r.lights = collectLights(scene)
}

func (r *Renderer) drawBackground(screen *ebiten.Image, scene *Scene) {
	bg := scene.Background
	if bg.Texture == nil {
		screen.Fill(bg.Color)
		return
	}
	img := bg.Texture.Image()
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sw)/float64(bg.Texture.Width()), float64(sh)/float64(bg.Texture.Height()))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// toScreen projects a view space point to pixel coordinates.
func (r *Renderer) toScreen(p mgl64.Vec3) (float32, float32) {
	ndc := mgl64.TransformCoordinate(p, r.proj)
	x := (ndc.X() + 1) * 0.5 * float64(r.width)
	y := (1 - ndc.Y()) * 0.5 * float64(r.height)
	return float32(x), float32(y)
}

func (r *Renderer) addMesh(obj *Object3D) {
	g := obj.Geometry
	if g == nil || len(g.Faces) == 0 {
		return
	}
	mat := obj.Material
	if mat == nil {
		mat = NewMeshBasicMaterial(0xFFFFFF)
	}
	world := obj.WorldMatrix()
	worldVerts := obj.worldVertices(world, nil)

	var src *ebiten.Image
	var texW, texH float64
	if mat.Map != nil && !mat.Wireframe {
		src = mat.Map.Image()
		texW, texH = float64(mat.Map.Width()), float64(mat.Map.Height())
	}

	for fi := range g.Faces {
		f := &g.Faces[fi]
		r.worldPts = r.worldPts[:0]
		r.clipIn = r.clipIn[:0]
		for ci, idx := range f.Indices {
			wp := worldVerts[idx]
			r.worldPts = append(r.worldPts, wp)
			cv := clipVertex{pos: transformPoint(r.view, wp)}
			if f.hasUVs() {
				cv.uv = f.UVs[ci]
			}
			r.clipIn = append(r.clipIn, cv)
		}

		normal := polygonNormal(r.worldPts)
		centre := centroid(r.worldPts)
		if normal.Dot(r.eye.Sub(centre)) < 0 {
			if mat.Side == FrontSide && !mat.Wireframe {
				continue
			}
			normal = normal.Mul(-1)
		}

		viewCentre := transformPoint(r.view, centre)
		depth := -viewCentre.Z()
		if depth > r.far {
			continue
		}

		r.clipOut = clipPolygonAgainstNearPlane(r.clipIn, -r.near, r.clipOut)
		if len(r.clipOut) < 3 {
			continue
		}

		base := mat.Color
		if f.Col.A != 0 {
			base = f.Col
		}
		lit := getColor(mat, base, centre, normal, r.eye, r.lights)

		textured := src != nil && f.hasUVs()
		r.projectClipped(textured, texW, texH)
		item := drawItem{order: obj.RenderOrder, depth: depth}

		switch {
		case mat.Wireframe:
			clr := vecToColor(applyFog(lit, r.fog, depth), 255)
			item.body = r.push(strokePath(r.xs, r.ys, true, 1, clr))
		case textured:
			item.src = src
			item.body = r.push(fillConvexPolygon(nil, nil, r.xs, r.ys, r.us, r.vs, vecToColor(lit, 255)))
			item.fog = r.textureFog(depth)
		default:
			clr := vecToColor(applyFog(lit, r.fog, depth), 255)
			item.body = r.push(fillConvexPolygon(nil, nil, r.xs, r.ys, nil, nil, clr))
		}
		r.items = append(r.items, item)
		r.Info.Faces++
	}
}

// push copies a locally indexed triangle list into the arenas.
func (r *Renderer) push(vs []ebiten.Vertex, is []uint16) span {
	s := span{v0: len(r.vertices), i0: len(r.indices)}
	r.vertices = append(r.vertices, vs...)
	r.indices = append(r.indices, is...)
	s.v1, s.i1 = len(r.vertices), len(r.indices)
	return s
}

// textureFog returns a translucent fog polygon over the current screen
// points. Vertex colors only scale a texture, so fog can't be mixed in.
func (r *Renderer) textureFog(depth float64) span {
	if r.fog == nil {
		return span{}
	}
	f := r.fog.Factor(depth)
	if f < 1.0/255 {
		return span{}
	}
	clr := r.fog.Color
	clr.A = uint8(f*255 + 0.5)
	return r.push(fillConvexPolygon(nil, nil, r.xs, r.ys, nil, nil, clr))
}

// projectClipped fills the screen coordinate scratch slices from clipOut.
func (r *Renderer) projectClipped(textured bool, texW, texH float64) {
	r.xs, r.ys = r.xs[:0], r.ys[:0]
	r.us, r.vs = r.us[:0], r.vs[:0]
	for _, cv := range r.clipOut {
		x, y := r.toScreen(cv.pos)
		r.xs = append(r.xs, x)
		r.ys = append(r.ys, y)
		if textured {
			r.us = append(r.us, float32(cv.uv.X()*texW))
			r.vs = append(r.vs, float32(cv.uv.Y()*texH))
		}
	}
	if !textured {
		r.us, r.vs = nil, nil
	}
}

func (r *Renderer) addLines(obj *Object3D) {
	g := obj.Geometry
	if g == nil || len(g.Segments) == 0 {
		return
	}
	mat := obj.Material
	if mat == nil {
		mat = NewLineBasicMaterial(0xFFFFFF)
	}
	world := obj.WorldMatrix()
	verts := obj.worldVertices(world, nil)

	for _, s := range g.Segments {
		a := transformPoint(r.view, verts[s.A])
		b := transformPoint(r.view, verts[s.B])
		a, b, ok := clipSegmentAgainstNearPlane(a, b, -r.near)
		if !ok {
			continue
		}
		depth := -(a.Z() + b.Z()) / 2

		base := mat.Color
		if s.Col.A != 0 {
			base = s.Col
		}
		clr := vecToColor(applyFog(colorToVec(base), r.fog, depth), 255)

		ax, ay := r.toScreen(a)
		bx, by := r.toScreen(b)
		vs, is := strokePath([]float32{ax, bx}, []float32{ay, by}, false, 1, clr)
		if len(is) == 0 {
			continue
		}
		r.items = append(r.items, drawItem{order: obj.RenderOrder, depth: depth, body: r.push(vs, is)})
		r.Info.Lines++
	}
}

// sortItems orders by render order, then plain items before overlays,
// then far to near.
func (r *Renderer) sortItems() {
	sort.SliceStable(r.items, func(i, j int) bool {
		a, b := &r.items[i], &r.items[j]
		if a.order != b.order {
			return a.order < b.order
		}
		if a.overlay != b.overlay {
			return !a.overlay
		}
		return a.depth > b.depth
	})
}

func (r *Renderer) flush(screen *ebiten.Image) {
	r.batcher.Begin(screen)
	for i := range r.items {
		it := &r.items[i]
		r.draw(it.src, it.body)
		r.draw(nil, it.fog)
	}
	r.batcher.Flush()
	r.Info.DrawCalls = r.batcher.DrawCalls
}

func (r *Renderer) draw(src *ebiten.Image, s span) {
	if s.empty() {
		return
	}
	r.batcher.Add(src, r.vertices[s.v0:s.v1], r.indices[s.i0:s.i1])
}

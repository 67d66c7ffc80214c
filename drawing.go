package siescene

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteOnce sync.Once
	whiteSub  *ebiten.Image
)

// solidImage is a 1x1 white source used for untextured triangles.
func solidImage() *ebiten.Image {
	whiteOnce.Do(func() {
		whiteImage := ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSub
}

const maxBatchVertices = math.MaxUint16

// PolygonBatcher collects triangles that share a source image and draws
// them with as few DrawTriangles calls as possible.
type PolygonBatcher struct {
	screen   *ebiten.Image
	src      *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
	op       ebiten.DrawTrianglesOptions

	DrawCalls int
}

func NewPolygonBatcher() *PolygonBatcher {
	return &PolygonBatcher{
		vertices: make([]ebiten.Vertex, 0, 4096),
		indices:  make([]uint16, 0, 8192),
		op:       ebiten.DrawTrianglesOptions{AntiAlias: true},
	}
}

func (b *PolygonBatcher) Begin(screen *ebiten.Image) {
	b.screen = screen
	b.src = nil
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
	b.DrawCalls = 0
}

// Add queues triangles. indices are relative to vs. A nil src draws with
// the vertex colors only.
func (b *PolygonBatcher) Add(src *ebiten.Image, vs []ebiten.Vertex, is []uint16) {
	if len(vs) == 0 || len(is) == 0 {
		return
	}
	if src == nil {
		src = solidImage()
	}
	if src != b.src || len(b.vertices)+len(vs) > maxBatchVertices {
		b.Flush()
		b.src = src
	}
	base := uint16(len(b.vertices))
	b.vertices = append(b.vertices, vs...)
	for _, i := range is {
		b.indices = append(b.indices, base+i)
	}
}

// AddPolygon fills a convex screen space polygon.
func (b *PolygonBatcher) AddPolygon(xp, yp []float32, clr color.RGBA) {
	if len(xp) < 3 {
		return
	}
	vs, is := fillConvexPolygon(nil, nil, xp, yp, nil, nil, clr)
	b.Add(nil, vs, is)
}

// AddPolygonOutline strokes the closed outline of a polygon.
func (b *PolygonBatcher) AddPolygonOutline(xp, yp []float32, strokeWidth float32, clr color.RGBA) {
	vs, is := strokePath(xp, yp, true, strokeWidth, clr)
	b.Add(nil, vs, is)
}

func (b *PolygonBatcher) Flush() {
	if len(b.indices) == 0 || b.screen == nil {
		b.vertices = b.vertices[:0]
		b.indices = b.indices[:0]
		return
	}
	b.screen.DrawTriangles(b.vertices, b.indices, b.src, &b.op)
	b.DrawCalls++
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}

// fillConvexPolygon appends a triangle fan. When u and v are given they
// are source pixel coordinates, otherwise the solid pixel is sampled.
func fillConvexPolygon(vs []ebiten.Vertex, is []uint16, xp, yp, u, v []float32, clr color.RGBA) ([]ebiten.Vertex, []uint16) {
	if len(xp) < 3 {
		return vs, is
	}
	cr, cg, cb, ca := colorScale(clr)
	base := uint16(len(vs))
	for i := range xp {
		vert := ebiten.Vertex{
			DstX:   xp[i],
			DstY:   yp[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		}
		if u != nil {
			vert.SrcX, vert.SrcY = u[i], v[i]
		}
		vs = append(vs, vert)
	}
	for i := 2; i < len(xp); i++ {
		is = append(is, base, base+uint16(i-1), base+uint16(i))
	}
	return vs, is
}

// strokePath builds the triangles for a stroked polyline.
func strokePath(xp, yp []float32, closed bool, strokeWidth float32, clr color.RGBA) ([]ebiten.Vertex, []uint16) {
	if len(xp) < 2 {
		return nil, nil
	}
	var path vector.Path
	path.MoveTo(xp[0], yp[0])
	for i := 1; i < len(xp); i++ {
		path.LineTo(xp[i], yp[i])
	}
	if closed {
		path.Close()
	}

	strokeOp := &vector.StrokeOptions{
		Width: strokeWidth,
	}
	vertices, indices := path.AppendVerticesAndIndicesForStroke(nil, nil, strokeOp)

	cr, cg, cb, ca := colorScale(clr)
	for i := range vertices {
		vertices[i].ColorR = cr
		vertices[i].ColorG = cg
		vertices[i].ColorB = cb
		vertices[i].ColorA = ca
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
	}
	return vertices, indices
}

func colorScale(clr color.RGBA) (float32, float32, float32, float32) {
	return float32(clr.R) / 255.0, float32(clr.G) / 255.0, float32(clr.B) / 255.0, float32(clr.A) / 255.0
}

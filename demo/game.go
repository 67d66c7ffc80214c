package demo

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Overlay is an immediate mode GUI drawn over the scene, such as the
// cimgui-go ebiten backend.
type Overlay interface {
	BeginFrame()
	EndFrame()
	Draw(screen *ebiten.Image)
	Layout(outsideWidth, outsideHeight int)
}

// Game runs the playground inside ebiten. A nil overlay runs without the
// control panel.
type Game struct {
	ctx     *Context
	overlay Overlay

	cursorX, cursorY int
	cursorSeen       bool

	lastX, lastY int
	dragged      bool
	ShowStats    bool
}

func NewGame(ctx *Context, overlay Overlay) *Game {
	return &Game{ctx: ctx, overlay: overlay, ShowStats: true}
}

func (g *Game) Context() *Context {
	return g.ctx
}

func (g *Game) Update() error {
	g.ctx.Queue.Drain()

	if g.overlay != nil {
		g.overlay.BeginFrame()
		g.ctx.Panel.Build()
	}

	x, y := ebiten.CursorPosition()
	g.handleCursor(x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), g.wantsMouse())
	_, wheel := ebiten.Wheel()
	if wheel != 0 && !g.wantsMouse() {
		g.ctx.Controls.Zoom(wheel)
	}

	Frame(g.ctx)

	if g.overlay != nil {
		g.overlay.EndFrame()
	}
	return nil
}

func (g *Game) wantsMouse() bool {
	return g.overlay != nil && imgui.CurrentIO().WantCaptureMouse()
}

// handleCursor forwards cursor moves to PointerMove and drags to the
// orbit controls. Drags that start over the panel are left to the panel.
// The first sample only records the position; the pointer stays at the
// centre until the cursor actually moves.
func (g *Game) handleCursor(x, y int, pressed, captured bool) {
	if !g.cursorSeen {
		g.cursorSeen = true
		g.cursorX, g.cursorY = x, y
	} else if x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		if err := PointerMove(g.ctx, float64(x), float64(y)); err != nil {
			g.ctx.Config.Logf("Pointer move: %v", err)
		}
	}

	if pressed && !captured {
		if g.dragged {
			g.ctx.Controls.Rotate(float64(x-g.lastX), float64(y-g.lastY), float64(g.ctx.Height))
		}
		g.lastX, g.lastY = x, y
		g.dragged = true
	} else {
		g.dragged = false
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.ctx.Renderer.Render(screen, g.ctx.Scene, g.ctx.Camera)

	if g.ShowStats {
		info := g.ctx.Renderer.Info
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %0.1f  faces: %d  shadows: %d  draws: %d  hits: %d",
			ebiten.ActualTPS(), info.Faces, info.Shadows, info.DrawCalls, len(g.ctx.LastHits)), 10, g.ctx.Height-20)
	}

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
	}
	if outsideWidth != g.ctx.Width || outsideHeight != g.ctx.Height {
		Resize(g.ctx, outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

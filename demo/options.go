package demo

import (
	"image/color"
	"log"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/smasonuk/siescene"
)

const (
	MinSpeed     = 0.0
	MaxSpeed     = 0.1
	MinAngle     = 0.0
	MaxAngle     = 1.0
	MinPenumbra  = 0.0
	MaxPenumbra  = 1.0
	MinIntensity = 50000.0
	MaxIntensity = 100000.0
)

// Options are the values the control panel edits. Speed, Angle, Penumbra
// and Intensity are read by the frame loop; color and wireframe changes
// are pushed through the panel callbacks.
type Options struct {
	SphereColor string
	Wireframe   bool
	Speed       float64
	Angle       float64
	Penumbra    float64
	Intensity   float64
}

func DefaultOptions() Options {
	return Options{
		SphereColor: "#FF0000",
		Wireframe:   false,
		Speed:       0.02,
		Angle:       0.2,
		Penumbra:    0,
		Intensity:   100000,
	}
}

// Panel owns the options and notifies listeners of pushed changes.
type Panel struct {
	Options Options

	OnSphereColor func(color.RGBA)
	OnWireframe   func(bool)

	sphereColor [3]float32
}

func NewPanel(opts Options) *Panel {
	p := &Panel{Options: opts}
	p.syncColor()
	return p
}

func (p *Panel) syncColor() {
	c, err := siescene.ParseHexColor(p.Options.SphereColor)
	if err != nil {
		return
	}
	p.sphereColor = [3]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

// SetSphereColor accepts "#RRGGBB". An unparsable value is rejected.
func (p *Panel) SetSphereColor(hex string) error {
	c, err := siescene.ParseHexColor(hex)
	if err != nil {
		return err
	}
	normalized := siescene.HexString(c)
	if normalized == p.Options.SphereColor {
		return nil
	}
	p.Options.SphereColor = normalized
	p.syncColor()
	if p.OnSphereColor != nil {
		p.OnSphereColor(c)
	}
	return nil
}

func (p *Panel) SetWireframe(on bool) {
	if on == p.Options.Wireframe {
		return
	}
	p.Options.Wireframe = on
	if p.OnWireframe != nil {
		p.OnWireframe(on)
	}
}

func (p *Panel) SetSpeed(v float64) {
	p.Options.Speed = clampRange(v, MinSpeed, MaxSpeed)
}

func (p *Panel) SetAngle(v float64) {
	p.Options.Angle = clampRange(v, MinAngle, MaxAngle)
}

func (p *Panel) SetPenumbra(v float64) {
	p.Options.Penumbra = clampRange(v, MinPenumbra, MaxPenumbra)
}

func (p *Panel) SetIntensity(v float64) {
	p.Options.Intensity = clampRange(v, MinIntensity, MaxIntensity)
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Build draws the controls window. It must run between the ImGui
// backend's BeginFrame and EndFrame.
func (p *Panel) Build() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 190), imgui.CondOnce)
	if imgui.BeginV("Controls", nil, 0) {
		col := p.sphereColor
		if imgui.ColorEdit3("sphereColor", &col) {
			c := color.RGBA{R: to8(col[0]), G: to8(col[1]), B: to8(col[2]), A: 255}
			if err := p.SetSphereColor(siescene.HexString(c)); err != nil {
				log.Printf("Ignoring sphere color: %v", err)
			}
			p.sphereColor = col
		}

		wire := p.Options.Wireframe
		if imgui.Checkbox("wireframe", &wire) {
			p.SetWireframe(wire)
		}

		p.slider("speed", p.Options.Speed, MinSpeed, MaxSpeed, p.SetSpeed)
		p.slider("angle", p.Options.Angle, MinAngle, MaxAngle, p.SetAngle)
		p.slider("penumbra", p.Options.Penumbra, MinPenumbra, MaxPenumbra, p.SetPenumbra)
		p.slider("intensity", p.Options.Intensity, MinIntensity, MaxIntensity, p.SetIntensity)
	}
	imgui.End()
}

func (p *Panel) slider(label string, value, lo, hi float64, set func(float64)) {
	v := float32(value)
	if imgui.SliderFloat(label, &v, float32(lo), float32(hi)) {
		set(float64(v))
	}
}

func to8(f float32) uint8 {
	return uint8(clampRange(float64(f), 0, 1)*255 + 0.5)
}

package siescene

import (
	"image/color"
)

type MaterialKind int

const (
	MaterialBasic MaterialKind = iota
	MaterialPhong
	MaterialStandard
	MaterialLine
)

type Side int

const (
	FrontSide Side = iota
	DoubleSide
)

// Material describes how a mesh or line surface is shaded.
// Basic and line materials ignore lights and fog still applies.
type Material struct {
	Kind      MaterialKind
	Color     color.RGBA
	Wireframe bool
	Side      Side
	Map       *Texture
	Shininess float64
	Specular  float64 // phong highlight strength
}

func NewMeshBasicMaterial(hex uint32) *Material {
	return &Material{Kind: MaterialBasic, Color: ColorFromHex(hex)}
}

func NewMeshPhongMaterial(hex uint32) *Material {
	return &Material{
		Kind:      MaterialPhong,
		Color:     ColorFromHex(hex),
		Shininess: 30,
		Specular:  0x11 / 255.0,
	}
}

func NewMeshStandardMaterial(hex uint32) *Material {
	return &Material{Kind: MaterialStandard, Color: ColorFromHex(hex)}
}

func NewLineBasicMaterial(hex uint32) *Material {
	return &Material{Kind: MaterialLine, Color: ColorFromHex(hex)}
}

func (m *Material) SetHex(hex uint32) {
	m.Color = ColorFromHex(hex)
}

func (m *Material) SetColor(c color.RGBA) {
	m.Color = c
}

// Hex returns the color as 0xRRGGBB.
func (m *Material) Hex() uint32 {
	return uint32(m.Color.R)<<16 | uint32(m.Color.G)<<8 | uint32(m.Color.B)
}

func (m *Material) lit() bool {
	return m.Kind == MaterialPhong || m.Kind == MaterialStandard
}

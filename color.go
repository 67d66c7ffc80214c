package siescene

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// ColorFromHex converts 0xRRGGBB to an opaque color.
func ColorFromHex(hex uint32) color.RGBA {
	return color.RGBA{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 255,
	}
}

// ParseHexColor accepts "#RRGGBB", "RRGGBB" and "0xRRGGBB".
func ParseHexColor(s string) (color.RGBA, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimPrefix(v, "#")
	v = strings.TrimPrefix(strings.TrimPrefix(v, "0x"), "0X")
	if len(v) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want 6 hex digits", s)
	}
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return ColorFromHex(uint32(n)), nil
}

// HexString formats a color as "#RRGGBB".
func HexString(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func colorToVec(c color.RGBA) mgl64.Vec3 {
	return mgl64.Vec3{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}

func vecToColor(v mgl64.Vec3, alpha uint8) color.RGBA {
	return color.RGBA{
		R: uint8(clampf(v.X(), 0, 1)*255 + 0.5),
		G: uint8(clampf(v.Y(), 0, 1)*255 + 0.5),
		B: uint8(clampf(v.Z(), 0, 1)*255 + 0.5),
		A: alpha,
	}
}

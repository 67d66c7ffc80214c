package siescene

import (
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	testCases := []struct {
		input    string
		expected color.RGBA
		wantErr  bool
	}{
		{"#FF0000", color.RGBA{R: 255, A: 255}, false},
		{"00ff00", color.RGBA{G: 255, A: 255}, false},
		{"0x0000FF", color.RGBA{B: 255, A: 255}, false},
		{" #8a2be2 ", color.RGBA{R: 0x8A, G: 0x2B, B: 0xE2, A: 255}, false},
		{"#FFF", color.RGBA{}, true},
		{"zzzzzz", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseHexColor(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseHexColor(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if got != tc.expected {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestHexString(t *testing.T) {
	if got := HexString(ColorFromHex(0x8A2BE2)); got != "#8A2BE2" {
		t.Errorf("HexString() = %q, want #8A2BE2", got)
	}
	m := NewMeshBasicMaterial(0x123456)
	if m.Hex() != 0x123456 {
		t.Errorf("Hex() = %06X, want 123456", m.Hex())
	}
}

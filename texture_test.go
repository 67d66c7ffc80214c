package siescene

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func solidPNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestTextureDecode(t *testing.T) {
	testCases := []struct {
		name         string
		size         int
		wantW, wantH int
	}{
		{"Resampled", 16, 16, 16},
		{"Native size", 0, 8, 4},
	}

	clr := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loader := &TextureLoader{Size: tc.size}
			tex, err := loader.Decode("solid", bytes.NewReader(solidPNG(t, 8, 4, clr)))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if tex.Width() != tc.wantW || tex.Height() != tc.wantH {
				t.Errorf("size = %dx%d, want %dx%d", tex.Width(), tex.Height(), tc.wantW, tc.wantH)
			}
			avg := tex.Average()
			if absDiff(avg.R, clr.R) > 1 || absDiff(avg.G, clr.G) > 1 || absDiff(avg.B, clr.B) > 1 {
				t.Errorf("Average() = %v, want %v", avg, clr)
			}
		})
	}
}

func TestTextureDecodeError(t *testing.T) {
	if _, err := NewTextureLoader().Decode("junk", bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected an error")
	}
	if _, err := NewTextureLoader().Load("assets/images/missing.png"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadBundledTextures(t *testing.T) {
	loader := NewTextureLoader()
	loader.Size = 64
	for _, p := range []string{"assets/images/mamcube.png", "assets/images/maxresdefault.png"} {
		tex, err := loader.Load(p)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", p, err)
		}
		if tex.Width() != 64 || tex.Height() != 64 {
			t.Errorf("%s size = %dx%d, want 64x64", p, tex.Width(), tex.Height())
		}
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

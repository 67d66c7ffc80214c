package siescene

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const DefaultTextureSize = 256

// Texture holds decoded pixels. The GPU image is created on first draw so
// textures can be loaded before the game loop starts.
type Texture struct {
	Name   string
	Pixels *image.RGBA

	once sync.Once
	img  *ebiten.Image
}

// NewTexture resamples src to a size x size square. A size of zero keeps
// the source dimensions.
func NewTexture(name string, src image.Image, size int) *Texture {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if size > 0 {
		w, h = size, size
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return &Texture{Name: name, Pixels: dst}
}

func (t *Texture) Width() int {
	return t.Pixels.Bounds().Dx()
}

func (t *Texture) Height() int {
	return t.Pixels.Bounds().Dy()
}

// Image returns the ebiten image, creating it on the first call.
func (t *Texture) Image() *ebiten.Image {
	t.once.Do(func() {
		t.img = ebiten.NewImageFromImage(t.Pixels)
	})
	return t.img
}

// Average is the mean color of the texture, used where a texture can't be
// sampled per pixel.
func (t *Texture) Average() color.RGBA {
	var r, g, b, n uint64
	pix := t.Pixels.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		r += uint64(pix[i])
		g += uint64(pix[i+1])
		b += uint64(pix[i+2])
		n++
	}
	if n == 0 {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: 255}
}

// TextureLoader decodes png, jpeg and webp files.
type TextureLoader struct {
	Size int
}

func NewTextureLoader() *TextureLoader {
	return &TextureLoader{Size: DefaultTextureSize}
}

func (l *TextureLoader) Load(path string) (*Texture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open texture %s: %w", path, err)
	}
	defer file.Close()

	tex, err := l.Decode(path, file)
	if err != nil {
		return nil, fmt.Errorf("error decoding texture %s: %w", path, err)
	}
	return tex, nil
}

func (l *TextureLoader) Decode(name string, r io.Reader) (*Texture, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	tex := NewTexture(name, img, l.Size)
	log.Printf("Loaded %s texture %s (%dx%d)", format, name, tex.Width(), tex.Height())
	return tex, nil
}

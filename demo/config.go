package demo

import "log"

// Config holds the startup settings of the playground.
type Config struct {
	Width, Height int
	Title         string

	ModelURL          string // empty skips the model
	CubeTexture       string // empty leaves the cubes untextured
	BackgroundTexture string // empty keeps a plain background
	TextureSize       int

	ShadowMap bool
	Verbose   bool
}

func DefaultConfig() Config {
	return Config{
		Width:             1280,
		Height:            720,
		Title:             "siescene playground",
		ModelURL:          "assets/folder.glb",
		CubeTexture:       "assets/images/mamcube.png",
		BackgroundTexture: "assets/images/maxresdefault.png",
		TextureSize:       256,
		ShadowMap:         true,
	}
}

// Logf logs only when verbose output is on.
func (c Config) Logf(format string, args ...any) {
	if c.Verbose {
		log.Printf(format, args...)
	}
}

package main

import (
	"flag"
	"log"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/smasonuk/siescene/demo"
)

func main() {
	cfg := demo.DefaultConfig()
	flag.IntVar(&cfg.Width, "width", cfg.Width, "window width")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "window height")
	flag.StringVar(&cfg.ModelURL, "model", cfg.ModelURL, "model path or URL (.glb, .gltf, .ply, .dxf)")
	flag.StringVar(&cfg.CubeTexture, "cube-texture", cfg.CubeTexture, "texture for the textured cubes")
	flag.StringVar(&cfg.BackgroundTexture, "background", cfg.BackgroundTexture, "background image")
	flag.IntVar(&cfg.TextureSize, "texture-size", cfg.TextureSize, "texture resample size")
	flag.BoolVar(&cfg.ShadowMap, "shadows", cfg.ShadowMap, "draw planar shadows")
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose per frame logging")
	noPanel := flag.Bool("no-panel", false, "run without the control panel")
	flag.Parse()

	var overlay demo.Overlay
	if !*noPanel {
		backend := ebitenbackend.NewEbitenBackend()
		backend.CreateWindow(cfg.Title, cfg.Width, cfg.Height)
		imgui.CurrentIO().SetIniFilename("")
		overlay = backend
	} else {
		ebiten.SetWindowTitle(cfg.Title)
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	ctx, err := demo.Build(cfg)
	if err != nil {
		log.Fatalf("Error building scene: %v", err)
	}
	defer ctx.Close()

	if err := ebiten.RunGame(demo.NewGame(ctx, overlay)); err != nil {
		log.Fatal(err)
	}
}

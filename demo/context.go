package demo

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smasonuk/siescene"
)

const (
	BobAmplitude   = 10.0
	SpinStep       = 0.01
	HighlightColor = 0x0000FF
)

// Context groups every piece of state shared by the frame loop and the
// input handlers. All of it is owned by the update goroutine.
type Context struct {
	Config Config

	Scene     *siescene.Scene
	Camera    *siescene.PerspectiveCamera
	Controls  *siescene.OrbitControls
	Renderer  *siescene.Renderer
	Raycaster *siescene.Raycaster
	Panel     *Panel

	Pointer       mgl64.Vec2
	Step          float64
	Width, Height int

	Spin       *siescene.Object3D // rotates every frame
	Bob        *siescene.Object3D // bounces every frame
	LookAtCube *siescene.Object3D // follows the pointer
	HoverSpin  *siescene.Object3D
	Floor      *siescene.Object3D
	Spot       *siescene.Object3D
	SpotHelper *siescene.SpotLightHelper

	HoverHighlightID uint64
	HoverSpinID      uint64

	Model *ModelHandle

	// Targets returns the objects tested against the pointer ray.
	Targets  func() []*siescene.Object3D
	LastHits []siescene.Intersection

	Queue *EventQueue

	cancel context.CancelFunc
}

// Options is the live panel state.
func (c *Context) Options() *Options {
	return &c.Panel.Options
}

// Close stops a model load still in flight.
func (c *Context) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// Build creates the playground scene and starts loading the model.
func Build(cfg Config) (*Context, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid viewport %dx%d", cfg.Width, cfg.Height)
	}
	log.Println("Creating scene...")

	opts := DefaultOptions()
	c := &Context{
		Config:    cfg,
		Scene:     siescene.NewScene(),
		Raycaster: siescene.NewRaycaster(),
		Panel:     NewPanel(opts),
		Width:     cfg.Width,
		Height:    cfg.Height,
		Model:     &ModelHandle{},
		Queue:     NewEventQueue(),
	}
	c.Targets = func() []*siescene.Object3D {
		return c.Scene.Children()
	}

	c.Renderer = siescene.NewRenderer(cfg.Width, cfg.Height)
	c.Renderer.ShadowMapEnabled = cfg.ShadowMap

	c.Camera = siescene.NewPerspectiveCamera(75, float64(cfg.Width)/float64(cfg.Height), 0.1, 1000)
	c.Camera.SetPosition(0, 2, 5)
	c.Controls = siescene.NewOrbitControls(c.Camera)

	scene := c.Scene
	scene.Add(siescene.NewAxesHelper(5))
	scene.Add(siescene.NewGridHelper(30, 30))

	c.Spin = siescene.NewMesh(siescene.NewBoxGeometry(1, 1, 1), siescene.NewMeshStandardMaterial(0x8A2BE2))
	c.Spin.Name = "cube"
	scene.Add(c.Spin)

	c.Floor = siescene.NewMesh(siescene.NewPlaneGeometry(30, 30, 30, 30), siescene.NewMeshPhongMaterial(0xFFFFFF))
	c.Floor.Name = "plane"
	c.Floor.Material.Side = siescene.DoubleSide
	c.Floor.Rotation[0] = -0.5 * math.Pi
	c.Floor.ReceiveShadow = true
	c.Floor.RenderOrder = -1
	scene.Add(c.Floor)

	sphereColor, err := siescene.ParseHexColor(opts.SphereColor)
	if err != nil {
		return nil, fmt.Errorf("sphere color: %w", err)
	}
	sphereMat := siescene.NewMeshPhongMaterial(0)
	sphereMat.SetColor(sphereColor)
	sphereMat.Wireframe = opts.Wireframe
	c.Bob = siescene.NewMesh(siescene.NewSphereGeometry(4, 50, 50), sphereMat)
	c.Bob.Name = "sphere"
	c.Bob.SetPosition(-10, 10, 0)
	c.Bob.CastShadow = true
	scene.Add(c.Bob)

	scene.Add(siescene.NewAmbientLight(0xFFFFFF, 0.4))

	c.Spot = siescene.NewSpotLight(0xFFFFFF, opts.Intensity)
	c.Spot.SetPosition(-100, 100, 0)
	c.Spot.CastShadow = true
	c.Spot.Light.Angle = opts.Angle
	c.Spot.Light.Penumbra = opts.Penumbra
	scene.Add(c.Spot)
	c.SpotHelper = siescene.NewSpotLightHelper(c.Spot)
	scene.Add(c.SpotHelper.Object3D)

	scene.Fog = siescene.NewFogExp2(0xFFFFFF, 0.015)

	textures := siescene.NewTextureLoader()
	if cfg.TextureSize > 0 {
		textures.Size = cfg.TextureSize
	}
	if cfg.BackgroundTexture != "" {
		bg, err := textures.Load(cfg.BackgroundTexture)
		if err != nil {
			log.Printf("Background texture unavailable: %v", err)
		} else {
			scene.Background.Texture = bg
		}
	}
	var cubeTexture *siescene.Texture
	if cfg.CubeTexture != "" {
		cubeTexture, err = textures.Load(cfg.CubeTexture)
		if err != nil {
			log.Printf("Cube texture unavailable: %v", err)
			cubeTexture = nil
		}
	}

	c.LookAtCube = texturedCube("cube2", 0xEE0000, cubeTexture)
	c.LookAtCube.SetPosition(8, 2, 0)
	scene.Add(c.LookAtCube)

	c.HoverSpin = texturedCube("cube3", 0x00FF00, cubeTexture)
	c.HoverSpin.SetPosition(0, 2, -5)
	scene.Add(c.HoverSpin)

	c.HoverHighlightID = c.Bob.ID
	c.HoverSpinID = c.HoverSpin.ID

	c.Panel.OnSphereColor = func(col color.RGBA) {
		c.Bob.Material.SetColor(col)
	}
	c.Panel.OnWireframe = func(on bool) {
		c.Bob.Material.Wireframe = on
	}

	c.loadModel()

	log.Println("Initialization Complete.")
	return c, nil
}

func texturedCube(name string, hex uint32, tex *siescene.Texture) *siescene.Object3D {
	mat := siescene.NewMeshStandardMaterial(hex)
	mat.Map = tex
	cube := siescene.NewMesh(siescene.NewBoxGeometry(4, 4, 4), mat)
	cube.Name = name
	return cube
}

var errNoModel = errors.New("no model configured")

func (c *Context) loadModel() {
	if c.Config.ModelURL == "" {
		c.Model.Fail(errNoModel)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	log.Printf("Loading model %s...", c.Config.ModelURL)
	loader := siescene.NewModelLoader()
	loader.Load(ctx, c.Config.ModelURL, c.Queue.Post, c.onModelLoaded, c.onModelError)
}

func (c *Context) onModelLoaded(obj *siescene.Object3D) {
	obj.SetPosition(5, 0, 5)
	obj.SetScale(3, 3, 3)
	c.Scene.Add(obj)
	c.Model.Resolve(obj)
	c.Config.Logf("Model %s ready (id %d)", obj.Name, obj.ID)
}

func (c *Context) onModelError(err error) {
	log.Printf("Error loading model: %v", err)
	c.Model.Fail(err)
}

package siescene

import (
	"image/color"
	"math"

	"github.com/kamstrup/intmap"
)

// FogExp2 thickens exponentially with the squared view distance.
type FogExp2 struct {
	Color   color.RGBA
	Density float64
}

func NewFogExp2(hex uint32, density float64) *FogExp2 {
	return &FogExp2{Color: ColorFromHex(hex), Density: density}
}

// Factor returns how much of the fog color replaces a surface at depth.
func (f *FogExp2) Factor(depth float64) float64 {
	d := f.Density * depth
	return clampf(1-math.Exp(-d*d), 0, 1)
}

type Background struct {
	Color   color.RGBA
	Texture *Texture
}

// Scene owns the root of the object graph and an ID index over every
// object attached below it.
type Scene struct {
	Background Background
	Fog        *FogExp2

	root  *Object3D
	index *intmap.Map[uint64, *Object3D]
}

func NewScene() *Scene {
	s := &Scene{
		Background: Background{Color: color.RGBA{A: 255}},
		root:       NewGroup(),
		index:      intmap.New[uint64, *Object3D](64),
	}
	s.root.Name = "Scene"
	s.root.scene = s
	return s
}

func (s *Scene) Add(obj *Object3D) {
	s.root.Add(obj)
}

func (s *Scene) Remove(obj *Object3D) {
	if obj == nil || obj.parent == nil || obj.scene != s {
		return
	}
	obj.parent.Remove(obj)
}

// Children returns the top level objects in insertion order.
func (s *Scene) Children() []*Object3D {
	return s.root.children
}

func (s *Scene) Root() *Object3D {
	return s.root
}

func (s *Scene) ObjectByID(id uint64) (*Object3D, bool) {
	return s.index.Get(id)
}

func (s *Scene) Len() int {
	return s.index.Len()
}

func (s *Scene) Traverse(fn func(*Object3D) bool) {
	for _, c := range s.root.children {
		c.Traverse(fn)
	}
}

func (s *Scene) register(obj *Object3D) {
	obj.Traverse(func(o *Object3D) bool {
		o.scene = s
		s.index.Put(o.ID, o)
		return true
	})
}

func (s *Scene) unregister(obj *Object3D) {
	obj.Traverse(func(o *Object3D) bool {
		o.scene = nil
		s.index.Del(o.ID)
		return true
	})
}

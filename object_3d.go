package siescene

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
)

type Kind int

const (
	KindGroup Kind = iota
	KindMesh
	KindLine
	KindLight
	KindCamera
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "Mesh"
	case KindLine:
		return "Line"
	case KindLight:
		return "Light"
	case KindCamera:
		return "Camera"
	}
	return "Group"
}

var lastObjectID atomic.Uint64

// Object3D is a node of the scene graph. Its ID is assigned once at
// construction and never reused, so it can be cached and compared
// for the whole lifetime of the object.
type Object3D struct {
	ID   uint64
	Name string
	Kind Kind

	Position mgl64.Vec3
	Rotation mgl64.Vec3 // Euler angles in radians, XYZ order
	Scale    mgl64.Vec3

	Visible       bool
	CastShadow    bool
	ReceiveShadow bool
	RenderOrder   int

	Geometry *Geometry
	Material *Material
	Light    *Light

	parent   *Object3D
	children []*Object3D
	scene    *Scene
}

func NewObject3D(kind Kind) *Object3D {
	return &Object3D{
		ID:      lastObjectID.Add(1),
		Kind:    kind,
		Scale:   mgl64.Vec3{1, 1, 1},
		Visible: true,
	}
}

func NewGroup() *Object3D {
	return NewObject3D(KindGroup)
}

func NewMesh(geometry *Geometry, material *Material) *Object3D {
	o := NewObject3D(KindMesh)
	o.Geometry = geometry
	o.Material = material
	return o
}

// NewLineSegments draws the geometry's segment list.
func NewLineSegments(geometry *Geometry, material *Material) *Object3D {
	o := NewObject3D(KindLine)
	o.Geometry = geometry
	o.Material = material
	return o
}

func (o *Object3D) SetPosition(x, y, z float64) {
	o.Position = mgl64.Vec3{x, y, z}
}

func (o *Object3D) SetScale(x, y, z float64) {
	o.Scale = mgl64.Vec3{x, y, z}
}

func (o *Object3D) RotateX(rad float64) {
	o.Rotation[0] += rad
}

func (o *Object3D) RotateY(rad float64) {
	o.Rotation[1] += rad
}

func (o *Object3D) Parent() *Object3D {
	return o.parent
}

func (o *Object3D) Children() []*Object3D {
	return o.children
}

// Add attaches child, detaching it from any previous parent first.
func (o *Object3D) Add(child *Object3D) {
	if child == nil || child == o {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = o
	o.children = append(o.children, child)
	if o.scene != nil {
		o.scene.register(child)
	}
}

func (o *Object3D) Remove(child *Object3D) {
	for i, c := range o.children {
		if c != child {
			continue
		}
		o.children = append(o.children[:i], o.children[i+1:]...)
		child.parent = nil
		if child.scene != nil {
			child.scene.unregister(child)
		}
		return
	}
}

// Traverse visits o and every descendant depth first. Returning false
// from fn skips the node's children.
func (o *Object3D) Traverse(fn func(*Object3D) bool) {
	if !fn(o) {
		return
	}
	for _, c := range o.children {
		c.Traverse(fn)
	}
}

func (o *Object3D) LocalMatrix() mgl64.Mat4 {
	return ComposeMatrix(o.Position, o.Rotation, o.Scale)
}

func (o *Object3D) WorldMatrix() mgl64.Mat4 {
	local := o.LocalMatrix()
	if o.parent == nil {
		return local
	}
	return o.parent.WorldMatrix().Mul4(local)
}

func (o *Object3D) WorldPosition() mgl64.Vec3 {
	return o.WorldMatrix().Col(3).Vec3()
}

// LookAt rotates the object so its +Z axis points at the world space
// target. Cameras point -Z at the target instead.
func (o *Object3D) LookAt(target mgl64.Vec3) {
	up := mgl64.Vec3{0, 1, 0}
	position := o.WorldPosition()

	var rot mgl64.Mat4
	if o.Kind == KindCamera {
		rot = lookAtRotation(position, target, up)
	} else {
		rot = lookAtRotation(target, position, up)
	}

	if o.parent != nil {
		parentRot := rotationPart(o.parent.WorldMatrix())
		rot = parentRot.Transpose().Mul4(rot)
	}
	o.Rotation = EulerFromMatrix(rot)
}

// worldVertices transforms the geometry's vertices by the world matrix.
func (o *Object3D) worldVertices(world mgl64.Mat4, dst []mgl64.Vec3) []mgl64.Vec3 {
	dst = dst[:0]
	if o.Geometry == nil {
		return dst
	}
	for _, v := range o.Geometry.Vertices {
		dst = append(dst, transformPoint(world, v))
	}
	return dst
}

package siescene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	ROTX = 0
	ROTY = 1
	ROTZ = 2
)

func NewRotationMatrix(aRotation int, theta float64) mgl64.Mat4 {
	switch aRotation {
	case ROTX:
		return mgl64.HomogRotate3DX(theta)
	case ROTY:
		return mgl64.HomogRotate3DY(theta)
	case ROTZ:
		return mgl64.HomogRotate3DZ(theta)
	}
	return mgl64.Ident4()
}

func TransMatrix(x, y, z float64) mgl64.Mat4 {
	return mgl64.Translate3D(x, y, z)
}

// EulerMatrix returns the rotation for Euler angles applied in XYZ order.
func EulerMatrix(r mgl64.Vec3) mgl64.Mat4 {
	x := NewRotationMatrix(ROTX, r.X())
	y := NewRotationMatrix(ROTY, r.Y())
	z := NewRotationMatrix(ROTZ, r.Z())
	return x.Mul4(y).Mul4(z)
}

// ComposeMatrix builds translation * rotation * scale.
func ComposeMatrix(position, rotation, scale mgl64.Vec3) mgl64.Mat4 {
	t := TransMatrix(position.X(), position.Y(), position.Z())
	s := mgl64.Scale3D(scale.X(), scale.Y(), scale.Z())
	return t.Mul4(EulerMatrix(rotation)).Mul4(s)
}

// EulerFromMatrix extracts XYZ Euler angles from the upper 3x3 of m.
// The matrix must be a pure rotation.
func EulerFromMatrix(m mgl64.Mat4) mgl64.Vec3 {
	m11, m12, m13 := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	m22, m23 := m.At(1, 1), m.At(1, 2)
	m32, m33 := m.At(2, 1), m.At(2, 2)

	y := math.Asin(mgl64.Clamp(m13, -1, 1))
	if math.Abs(m13) < 0.9999999 {
		return mgl64.Vec3{math.Atan2(-m23, m33), y, math.Atan2(-m12, m11)}
	}
	// gimbal lock, z folded into x
	return mgl64.Vec3{math.Atan2(m32, m22), y, 0}
}

// lookAtRotation builds a rotation whose +Z axis points from target to eye.
func lookAtRotation(eye, target, up mgl64.Vec3) mgl64.Mat4 {
	zAxis := eye.Sub(target)
	if zAxis.LenSqr() == 0 {
		zAxis = mgl64.Vec3{0, 0, 1}
	}
	zAxis = zAxis.Normalize()

	xAxis := up.Cross(zAxis)
	if xAxis.LenSqr() == 0 {
		// up and forward are parallel, nudge forward off the up axis
		if math.Abs(up.Z()) == 1 {
			zAxis[0] += 0.0001
		} else {
			zAxis[2] += 0.0001
		}
		zAxis = zAxis.Normalize()
		xAxis = up.Cross(zAxis)
	}
	xAxis = xAxis.Normalize()
	yAxis := zAxis.Cross(xAxis)

	return mgl64.Mat4{
		xAxis.X(), xAxis.Y(), xAxis.Z(), 0,
		yAxis.X(), yAxis.Y(), yAxis.Z(), 0,
		zAxis.X(), zAxis.Y(), zAxis.Z(), 0,
		0, 0, 0, 1,
	}
}

// rotationPart strips translation and scale from a world matrix.
func rotationPart(m mgl64.Mat4) mgl64.Mat4 {
	c0 := m.Col(0).Vec3()
	c1 := m.Col(1).Vec3()
	c2 := m.Col(2).Vec3()
	if c0.Len() > 0 {
		c0 = c0.Normalize()
	}
	if c1.Len() > 0 {
		c1 = c1.Normalize()
	}
	if c2.Len() > 0 {
		c2 = c2.Normalize()
	}
	return mgl64.Mat4{
		c0.X(), c0.Y(), c0.Z(), 0,
		c1.X(), c1.Y(), c1.Z(), 0,
		c2.X(), c2.Y(), c2.Z(), 0,
		0, 0, 0, 1,
	}
}

func transformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, m)
}

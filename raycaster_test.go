package siescene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newBox(size float64, side Side) *Object3D {
	mat := NewMeshBasicMaterial(0xFFFFFF)
	mat.Side = side
	return NewMesh(NewBoxGeometry(size, size, size), mat)
}

func rayDown(origin mgl64.Vec3) *Raycaster {
	r := NewRaycaster()
	r.Ray = Ray{Origin: origin, Direction: mgl64.Vec3{0, 0, -1}}
	return r
}

func TestIntersectBox(t *testing.T) {
	box := newBox(2, FrontSide)
	hits := rayDown(mgl64.Vec3{0, 0, 5}).IntersectObject(box, false)
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	hit := hits[0]
	if hit.Object != box {
		t.Errorf("hit object %v, want the box", hit.Object.Name)
	}
	if !almostEqual(hit.Distance, 4) {
		t.Errorf("Distance = %f, want 4", hit.Distance)
	}
	if !vecAlmostEqual(hit.Point, mgl64.Vec3{0, 0, 1}) {
		t.Errorf("Point = %v, want (0, 0, 1)", hit.Point)
	}
	if hit.FaceIndex != 0 {
		t.Errorf("FaceIndex = %d, want the front face", hit.FaceIndex)
	}
}

func TestIntersectFollowsTransform(t *testing.T) {
	box := newBox(2, FrontSide)
	box.SetPosition(3, 0, 0)

	if hits := rayDown(mgl64.Vec3{0, 0, 5}).IntersectObject(box, false); len(hits) != 0 {
		t.Errorf("got %d hits for a ray beside the box", len(hits))
	}
	if hits := rayDown(mgl64.Vec3{3, 0.5, 5}).IntersectObject(box, false); len(hits) != 1 {
		t.Errorf("got %d hits for a ray through the moved box, want 1", len(hits))
	}
}

func TestIntersectObjectsSortedByDistance(t *testing.T) {
	far := newBox(2, FrontSide)
	far.Name = "far"
	far.SetPosition(0, 0, -10)
	near := newBox(2, FrontSide)
	near.Name = "near"

	hits := rayDown(mgl64.Vec3{0, 0, 5}).IntersectObjects([]*Object3D{far, near}, false)
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].Object != near || hits[1].Object != far {
		t.Errorf("hits ordered %s, %s", hits[0].Object.Name, hits[1].Object.Name)
	}
	if !almostEqual(hits[1].Distance, 14) {
		t.Errorf("far Distance = %f, want 14", hits[1].Distance)
	}
}

func TestIntersectSides(t *testing.T) {
	testCases := []struct {
		name     string
		side     Side
		expected int
	}{
		{"Front side skips faces seen from behind", FrontSide, 0},
		{"Double side hits from inside", DoubleSide, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hits := rayDown(mgl64.Vec3{}).IntersectObject(newBox(2, tc.side), false)
			if len(hits) != tc.expected {
				t.Fatalf("got %d hits, want %d", len(hits), tc.expected)
			}
			if tc.expected == 1 && !almostEqual(hits[0].Distance, 1) {
				t.Errorf("Distance = %f, want 1", hits[0].Distance)
			}
		})
	}
}

func TestIntersectRecursive(t *testing.T) {
	group := NewGroup()
	group.SetPosition(0, 0, -2)
	child := newBox(2, FrontSide)
	group.Add(child)

	r := rayDown(mgl64.Vec3{0, 0, 5})
	if hits := r.IntersectObject(group, false); len(hits) != 0 {
		t.Errorf("non recursive test returned %d hits", len(hits))
	}
	hits := r.IntersectObject(group, true)
	if len(hits) != 1 || hits[0].Object != child {
		t.Fatalf("recursive test returned %v", hits)
	}
	if !almostEqual(hits[0].Distance, 6) {
		t.Errorf("Distance = %f, want 6", hits[0].Distance)
	}
}

func TestIntersectNearFar(t *testing.T) {
	r := rayDown(mgl64.Vec3{0, 0, 5})
	r.Far = 3
	if hits := r.IntersectObject(newBox(2, FrontSide), false); len(hits) != 0 {
		t.Errorf("got %d hits beyond Far", len(hits))
	}
}

func TestIntersectLines(t *testing.T) {
	g := NewGeometry()
	g.AddSegment(mgl64.Vec3{-5, 0, 0}, mgl64.Vec3{5, 0, 0})
	line := NewLineSegments(g, NewLineBasicMaterial(0xFFFFFF))

	testCases := []struct {
		name     string
		origin   mgl64.Vec3
		expected int
	}{
		{"Within threshold", mgl64.Vec3{0, 0.5, 5}, 1},
		{"Outside threshold", mgl64.Vec3{0, 3, 5}, 0},
		{"Past the end", mgl64.Vec3{7, 0, 5}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hits := rayDown(tc.origin).IntersectObject(line, false)
			if len(hits) != tc.expected {
				t.Fatalf("got %d hits, want %d", len(hits), tc.expected)
			}
			if tc.expected == 1 && !almostEqual(hits[0].Distance, 5) {
				t.Errorf("Distance = %f, want 5", hits[0].Distance)
			}
		})
	}
}

func TestLightsAreNeverHit(t *testing.T) {
	spot := NewSpotLight(0xFFFFFF, 1)
	spot.SetPosition(0, 0, 0)
	if hits := rayDown(mgl64.Vec3{0, 0, 5}).IntersectObject(spot, true); len(hits) != 0 {
		t.Errorf("got %d hits on a light", len(hits))
	}
}

func TestSetFromCamera(t *testing.T) {
	cam := NewPerspectiveCamera(90, 1, 0.1, 100)
	cam.SetPosition(0, 0, 5)

	r := NewRaycaster()
	r.SetFromCamera(mgl64.Vec2{0, 0}, cam)
	if !vecAlmostEqual(r.Ray.Origin, mgl64.Vec3{0, 0, 5}) {
		t.Errorf("Origin = %v", r.Ray.Origin)
	}
	if !vecAlmostEqual(r.Ray.Direction, mgl64.Vec3{0, 0, -1}) {
		t.Errorf("Direction = %v, want -Z", r.Ray.Direction)
	}

	// a 90 degree field of view puts the right edge at 45 degrees
	r.SetFromCamera(mgl64.Vec2{1, 0}, cam)
	want := mgl64.Vec3{1, 0, -1}.Normalize()
	if !vecAlmostEqual(r.Ray.Direction, want) {
		t.Errorf("Direction = %v, want %v", r.Ray.Direction, want)
	}
}

func TestClosestRaySegment(t *testing.T) {
	ray := Ray{Origin: mgl64.Vec3{0, 1, 5}, Direction: mgl64.Vec3{0, 0, -1}}
	onRay, onSeg := closestRaySegment(ray, mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{1, 0, 0})
	if !vecAlmostEqual(onRay, mgl64.Vec3{0, 1, 0}) || !vecAlmostEqual(onSeg, mgl64.Vec3{}) {
		t.Errorf("closestRaySegment() = %v, %v", onRay, onSeg)
	}
	if d := onRay.Sub(onSeg).Len(); math.Abs(d-1) > 1e-9 {
		t.Errorf("gap = %f, want 1", d)
	}
}

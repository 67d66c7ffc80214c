package siescene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func clipInput(points [][]float64) []clipVertex {
	out := make([]clipVertex, len(points))
	for i, p := range points {
		out[i] = clipVertex{pos: mgl64.Vec3{p[0], p[1], p[2]}}
	}
	return out
}

func clipMatches(got []clipVertex, want [][]float64) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if !vecAlmostEqual(got[i].pos, mgl64.Vec3{want[i][0], want[i][1], want[i][2]}) {
			return false
		}
	}
	return true
}

func TestClipPolygonAgainstNearPlane(t *testing.T) {
	const nearZ = -10
	testCases := []struct {
		name     string
		input    [][]float64
		expected [][]float64
	}{
		{
			name:     "Polygon fully in front of near plane",
			input:    [][]float64{{0, 0, -20}, {1, 0, -20}, {0, 1, -20}},
			expected: [][]float64{{0, 0, -20}, {1, 0, -20}, {0, 1, -20}},
		},
		{
			name:     "Polygon fully behind near plane",
			input:    [][]float64{{0, 0, -5}, {1, 0, -5}, {0, 1, -5}},
			expected: [][]float64{},
		},
		{
			name: "Polygon with one point in front",
			input: [][]float64{
				{0, 0, -15}, // inside
				{0, 1, -5},  // outside
				{1, 0, -5},  // outside
			},
			expected: [][]float64{{0.5, 0, -10}, {0, 0, -15}, {0, 0.5, -10}},
		},
		{
			name: "Polygon with two points in front",
			input: [][]float64{
				{0, 0, -5},  // outside
				{0, 1, -15}, // inside
				{1, 0, -15}, // inside
			},
			expected: [][]float64{{0.5, 0, -10}, {0, 0.5, -10}, {0, 1, -15}, {1, 0, -15}},
		},
		{
			name:     "Empty polygon",
			input:    [][]float64{},
			expected: [][]float64{},
		},
		{
			name:     "Polygon on the near plane",
			input:    [][]float64{{0, 0, -10}, {1, 0, -10}, {0, 1, -10}},
			expected: [][]float64{{0, 0, -10}, {1, 0, -10}, {0, 1, -10}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clipped := clipPolygonAgainstNearPlane(clipInput(tc.input), nearZ, nil)
			if !clipMatches(clipped, tc.expected) {
				t.Errorf("clipPolygonAgainstNearPlane() = %v, want %v", clipped, tc.expected)
			}
		})
	}
}

func TestClipPolygonInterpolatesUVs(t *testing.T) {
	in := []clipVertex{
		{pos: mgl64.Vec3{0, 0, -20}, uv: mgl64.Vec2{0, 0}},
		{pos: mgl64.Vec3{0, 0, 0}, uv: mgl64.Vec2{1, 1}},
		{pos: mgl64.Vec3{1, 0, -20}, uv: mgl64.Vec2{1, 0}},
	}
	out := clipPolygonAgainstNearPlane(in, -10, nil)
	if len(out) != 4 {
		t.Fatalf("got %d corners, want 4", len(out))
	}
	// the edge from corner 0 to corner 1 is cut half way
	if !vecAlmostEqual(out[1].pos, mgl64.Vec3{0, 0, -10}) {
		t.Errorf("cut position = %v", out[1].pos)
	}
	if !almostEqual(out[1].uv.X(), 0.5) || !almostEqual(out[1].uv.Y(), 0.5) {
		t.Errorf("cut uv = %v, want (0.5, 0.5)", out[1].uv)
	}
}

func TestClipSegmentAgainstNearPlane(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     mgl64.Vec3
		wantA    mgl64.Vec3
		wantB    mgl64.Vec3
		expected bool
	}{
		{"Both in front", mgl64.Vec3{0, 0, -20}, mgl64.Vec3{1, 0, -30}, mgl64.Vec3{0, 0, -20}, mgl64.Vec3{1, 0, -30}, true},
		{"Both behind", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, -5}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, -5}, false},
		{"Start behind", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, -20}, mgl64.Vec3{0, 0, -10}, mgl64.Vec3{0, 0, -20}, true},
		{"End behind", mgl64.Vec3{10, 20, -20}, mgl64.Vec3{30, 40, 0}, mgl64.Vec3{10, 20, -20}, mgl64.Vec3{20, 30, -10}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, b, ok := clipSegmentAgainstNearPlane(tc.a, tc.b, -10)
			if ok != tc.expected {
				t.Fatalf("visible = %v, want %v", ok, tc.expected)
			}
			if ok && (!vecAlmostEqual(a, tc.wantA) || !vecAlmostEqual(b, tc.wantB)) {
				t.Errorf("clipSegmentAgainstNearPlane() = %v %v, want %v %v", a, b, tc.wantA, tc.wantB)
			}
		})
	}
}

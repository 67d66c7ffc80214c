package siescene

import (
	"image/color"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const plyFaceColors = `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
element face 2
property list uchar int vertex_indices
property uchar red
property uchar green
property uchar blue
end_header
0 0 0
1 0 0
1 1 0
0 1 0
3 0 1 2 255 0 0
3 0 2 3 0 255 0
`

const plyVertexColors = `ply
format ascii 1.0
element vertex 3
property float x
property float y
property float z
property uchar red
property uchar green
property uchar blue
element face 1
property list uchar int vertex_indices
end_header
0 0 0 255 0 0
1 0 0 0 255 0
0 1 0 0 0 255
3 0 1 2
`

const dxfTriangle = `0
SECTION
2
ENTITIES
0
3DFACE
8
0
10
0.0
20
0.0
30
0.0
11
1.0
21
0.0
31
0.0
12
0.0
22
1.0
32
0.0
13
0.0
23
1.0
33
0.0
0
ENDSEC
0
EOF
`

func TestLoadPLYFaceColors(t *testing.T) {
	g, err := LoadGeometryFromPLYReader(strings.NewReader(plyFaceColors), FACE_NORMAL)
	if err != nil {
		t.Fatalf("LoadGeometryFromPLYReader() error = %v", err)
	}
	if len(g.Vertices) != 4 || len(g.Faces) != 2 {
		t.Fatalf("got %d vertices and %d faces, want 4 and 2", len(g.Vertices), len(g.Faces))
	}
	if g.Faces[0].Col != (color.RGBA{R: 255, A: 255}) || g.Faces[1].Col != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("face colors = %v, %v", g.Faces[0].Col, g.Faces[1].Col)
	}
	if !vecAlmostEqual(g.Faces[0].Normal, mgl64.Vec3{0, 0, 1}) {
		t.Errorf("normal = %v, want +Z", g.Faces[0].Normal)
	}
}

func TestLoadPLYReversed(t *testing.T) {
	g, err := LoadGeometryFromPLYReader(strings.NewReader(plyFaceColors), FACE_REVERSE)
	if err != nil {
		t.Fatalf("LoadGeometryFromPLYReader() error = %v", err)
	}
	if !vecAlmostEqual(g.Faces[0].Normal, mgl64.Vec3{0, 0, -1}) {
		t.Errorf("normal = %v, want -Z", g.Faces[0].Normal)
	}
}

func TestLoadPLYVertexColors(t *testing.T) {
	g, err := LoadGeometryFromPLYReader(strings.NewReader(plyVertexColors), FACE_NORMAL)
	if err != nil {
		t.Fatalf("LoadGeometryFromPLYReader() error = %v", err)
	}
	want := color.RGBA{R: 85, G: 85, B: 85, A: 255}
	if g.Faces[0].Col != want {
		t.Errorf("face color = %v, want the vertex average %v", g.Faces[0].Col, want)
	}
}

func TestLoadPLYErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"Binary format", strings.Replace(plyFaceColors, "format ascii 1.0", "format binary_little_endian 1.0", 1)},
		{"Truncated vertices", strings.Split(plyFaceColors, "0 1 0\n")[0]},
		{"Bad vertex index", strings.Replace(plyFaceColors, "3 0 2 3", "3 0 2 9", 1)},
		{"Missing face color", strings.Replace(plyFaceColors, "3 0 1 2 255 0 0", "3 0 1 2", 1)},
		{"Bad coordinate", strings.Replace(plyFaceColors, "1 1 0\n", "1 one 0\n", 1)},
		{"Face color out of range", strings.Replace(plyFaceColors, "3 0 1 2 255 0 0", "3 0 1 2 256 0 0", 1)},
		{"Bad vertex color", strings.Replace(plyVertexColors, "0 1 0 0 0 255", "0 1 0 0 0 blue", 1)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadGeometryFromPLYReader(strings.NewReader(tc.input), FACE_NORMAL); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadDXF(t *testing.T) {
	g, err := LoadGeometryFromDXFReader(strings.NewReader(dxfTriangle), FACE_NORMAL)
	if err != nil {
		t.Fatalf("LoadGeometryFromDXFReader() error = %v", err)
	}
	if len(g.Faces) != 1 {
		t.Fatalf("got %d faces, want 1", len(g.Faces))
	}
	if n := len(g.Faces[0].Indices); n != 3 {
		t.Errorf("face has %d corners, want the repeated corner dropped", n)
	}
	if !vecAlmostEqual(g.Faces[0].Normal, mgl64.Vec3{0, 0, 1}) {
		t.Errorf("normal = %v, want +Z", g.Faces[0].Normal)
	}
}

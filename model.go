package siescene

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	FACE_NORMAL  = 0
	FACE_REVERSE = 1
)

// plyVertex is a vertex with its color.
type plyVertex struct {
	pos mgl64.Vec3
	col color.RGBA
}

// LoadGeometryFromPLYReader parses an ASCII PLY file. Face colors come
// from the face element, or else the average of the vertex colors.
func LoadGeometryFromPLYReader(reader io.Reader, reverse int) (*Geometry, error) {
	scanner := bufio.NewScanner(reader)

	var vertexCount, faceCount int
	var hasVertexColor, hasFaceColor bool
	var currentElement string
	format := ""

header:
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) > 1 {
				format = parts[1]
			}
		case "element":
			if len(parts) == 3 {
				currentElement = parts[1]
				n, err := strconv.Atoi(parts[2])
				if err != nil {
					return nil, fmt.Errorf("invalid %s count %q: %w", parts[1], parts[2], err)
				}
				if parts[1] == "vertex" {
					vertexCount = n
				} else if parts[1] == "face" {
					faceCount = n
				}
			}
		case "property":
			if len(parts) > 2 && (parts[2] == "red" || parts[2] == "diffuse_red") {
				if currentElement == "vertex" {
					hasVertexColor = true
				} else if currentElement == "face" {
					hasFaceColor = true
				}
			}
		case "end_header":
			break header
		}
	}
	if format != "" && format != "ascii" {
		return nil, fmt.Errorf("unsupported PLY format %q", format)
	}

	vertices := make([]plyVertex, 0, vertexCount)
	for i := 0; i < vertexCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading vertices")
		}
		parts := strings.Fields(scanner.Text())
		need := 3
		if hasVertexColor {
			need = 6
		}
		if len(parts) < need {
			return nil, fmt.Errorf("invalid vertex data on line %d", i)
		}
		var pos mgl64.Vec3
		for k := range pos {
			f, err := strconv.ParseFloat(parts[k], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid vertex coordinate on line %d: %w", i, err)
			}
			pos[k] = f
		}
		v := plyVertex{pos: pos, col: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
		if hasVertexColor {
			col, err := parsePLYColor(parts[3:6])
			if err != nil {
				return nil, fmt.Errorf("invalid vertex color on line %d: %w", i, err)
			}
			v.col = col
		}
		vertices = append(vertices, v)
	}

	geo := NewGeometry()
	for i := 0; i < faceCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected end of file while reading faces")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			return nil, fmt.Errorf("empty face on line %d", i)
		}
		numFaceVerts, err := strconv.Atoi(parts[0])
		if err != nil || numFaceVerts < 3 || len(parts) < numFaceVerts+1 {
			return nil, fmt.Errorf("invalid face data on line %d", i)
		}

		points := make([]mgl64.Vec3, numFaceVerts)
		var r, g, b uint32
		for j := 0; j < numFaceVerts; j++ {
			idx, err := strconv.Atoi(parts[j+1])
			if err != nil || idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("invalid vertex index %q on face %d", parts[j+1], i)
			}
			vert := vertices[idx]
			points[j] = vert.pos
			r += uint32(vert.col.R)
			g += uint32(vert.col.G)
			b += uint32(vert.col.B)
		}

		var faceColor color.RGBA
		switch {
		case hasFaceColor:
			if len(parts) != numFaceVerts+1+3 {
				return nil, fmt.Errorf("invalid face-color data on line %d", i)
			}
			col, err := parsePLYColor(parts[numFaceVerts+1:])
			if err != nil {
				return nil, fmt.Errorf("invalid face color on line %d: %w", i, err)
			}
			faceColor = col
		case hasVertexColor:
			n := uint32(numFaceVerts)
			faceColor = color.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: 255}
		}

		if reverse == FACE_REVERSE {
			reversePoints(points)
		}
		fi := geo.AddFace(points, nil)
		geo.Faces[fi].Col = faceColor
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from PLY source: %w", err)
	}
	return geo, nil
}

// parsePLYColor reads red, green and blue channels in 0-255.
func parsePLYColor(fields []string) (color.RGBA, error) {
	var c [3]uint8
	for k := range c {
		n, err := strconv.ParseUint(fields[k], 10, 8)
		if err != nil {
			return color.RGBA{}, err
		}
		c[k] = uint8(n)
	}
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}, nil
}

// LoadGeometryFromDXFReader reads the 3DFACE entities of a DXF file.
// Triangles repeat their last corner, which is dropped.
func LoadGeometryFromDXFReader(reader io.Reader, reverse int) (*Geometry, error) {
	geo := NewGeometry()
	scanner := bufio.NewScanner(reader)

	readFloatLine := func() (float64, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.EOF
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(scanner.Text()), 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse float value '%s': %w", scanner.Text(), err)
		}
		return val, nil
	}

	for scanner.Scan() {
		if !strings.HasPrefix(strings.TrimSpace(scanner.Text()), "3DFACE") {
			continue
		}

		// layer group code, layer name, first coordinate group code
		for i := 0; i < 3; i++ {
			if !scanner.Scan() {
				return nil, fmt.Errorf("unexpected end of file while parsing 3DFACE header")
			}
		}

		points := make([]mgl64.Vec3, 0, 4)
		for c := 0; c < 4; c++ {
			x, err := readFloatLine()
			if err != nil {
				return nil, fmt.Errorf("error reading X coordinate for vertex %d: %w", c, err)
			}
			scanner.Scan()

			y, err := readFloatLine()
			if err != nil {
				return nil, fmt.Errorf("error reading Y coordinate for vertex %d: %w", c, err)
			}
			scanner.Scan()

			z, err := readFloatLine()
			if err != nil {
				return nil, fmt.Errorf("error reading Z coordinate for vertex %d: %w", c, err)
			}
			scanner.Scan()

			p := mgl64.Vec3{x, y, z}
			if len(points) > 0 && points[len(points)-1].ApproxEqual(p) {
				continue
			}
			points = append(points, p)
		}
		if len(points) > 3 && points[0].ApproxEqual(points[len(points)-1]) {
			points = points[:len(points)-1]
		}
		if len(points) < 3 {
			continue
		}
		if reverse == FACE_REVERSE {
			reversePoints(points)
		}
		geo.AddFace(points, nil)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from DXF source: %w", err)
	}
	return geo, nil
}

func reversePoints(points []mgl64.Vec3) {
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
}

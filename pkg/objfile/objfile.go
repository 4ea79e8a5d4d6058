// Package objfile encodes triangle meshes as Wavefront OBJ text, the plain
// mesh interchange format consumed by downstream tooling.
package objfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/Faultbox/scenepack/pkg/math"
)

// Encoding errors.
var (
	ErrNoPositions      = errors.New("mesh has no vertex positions")
	ErrIndexOutOfRange  = errors.New("triangle index out of range")
	ErrPartialTriangles = errors.New("triangle index count is not a multiple of 3")
)

// Mesh is the data an OBJ file is written from. UVs and Normals are optional;
// they are emitted only when their length matches len(Positions), mirroring
// the convention that per-vertex attribute arrays are parallel.
type Mesh struct {
	Name      string
	Positions []math.Vec3
	UVs       []math.Vec2
	Normals   []math.Vec3
	Triangles []int // flat index list, 3 entries per face, 0-based
}

// formatFloat renders a float in a fixed, locale-independent decimal form.
func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', 6, 32)
}

// Encode writes the mesh to w in OBJ form: object header, v lines, optional
// vt/vn lines, then f lines with 1-based indices. The face line format varies
// with which attribute arrays are present (v, v/vt, v//vn, v/vt/vn).
func Encode(w io.Writer, m *Mesh) error {
	if len(m.Positions) == 0 {
		return ErrNoPositions
	}
	if len(m.Triangles)%3 != 0 {
		return ErrPartialTriangles
	}

	hasUVs := len(m.UVs) == len(m.Positions)
	hasNormals := len(m.Normals) == len(m.Positions)

	bw := bufio.NewWriter(w)

	name := m.Name
	if name == "" {
		name = "mesh"
	}
	fmt.Fprintf(bw, "o %s\n", name)

	for _, p := range m.Positions {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z))
	}
	if hasUVs {
		for _, uv := range m.UVs {
			fmt.Fprintf(bw, "vt %s %s\n", formatFloat(uv.X), formatFloat(uv.Y))
		}
	}
	if hasNormals {
		for _, n := range m.Normals {
			fmt.Fprintf(bw, "vn %s %s %s\n", formatFloat(n.X), formatFloat(n.Y), formatFloat(n.Z))
		}
	}

	for i := 0; i+2 < len(m.Triangles); i += 3 {
		a, b, c := m.Triangles[i], m.Triangles[i+1], m.Triangles[i+2]
		for _, idx := range [3]int{a, b, c} {
			if idx < 0 || idx >= len(m.Positions) {
				return fmt.Errorf("%w: %d (have %d vertices)", ErrIndexOutOfRange, idx, len(m.Positions))
			}
		}
		// OBJ indices are 1-based.
		a, b, c = a+1, b+1, c+1

		switch {
		case hasUVs && hasNormals:
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		case hasUVs:
			fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, a, b, b, c, c)
		case hasNormals:
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
		default:
			fmt.Fprintf(bw, "f %d %d %d\n", a, b, c)
		}
	}

	return bw.Flush()
}

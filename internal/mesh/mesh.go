package mesh

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"chopper-recorder/internal/mathutil"
)

// Triangle holds index triples into the vertex and texcoord arrays.
type Triangle struct {
	VI [3]int
	TI [3]int
}

// Mesh holds one loaded surface mesh. Vertices are global coordinates;
// UVs and TexPath are present only for textured OBJ meshes.
type Mesh struct {
	Name    string
	Verts   []mathutil.Vec3
	UVs     [][2]float64
	Tris    []Triangle
	Color   color.NRGBA
	TexPath string
}

// DefaultColor is used when neither the scene nor the file assigns one.
var DefaultColor = color.NRGBA{R: 200, G: 200, B: 205, A: 255}

// Load reads a mesh file, dispatching on extension. Supported: legacy VTK
// polydata (.vtk) and Wavefront OBJ (.obj).
func Load(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vtk":
		return ParseVTK(path)
	case ".obj":
		return ParseOBJ(path)
	default:
		return nil, fmt.Errorf("mesh: unsupported format: %s", path)
	}
}

// Bounds returns the axis-aligned bounding box of the mesh vertices.
func (m *Mesh) Bounds() (min, max mathutil.Vec3) {
	min = mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, v := range m.Verts {
		for k := 0; k < 3; k++ {
			if v[k] < min[k] {
				min[k] = v[k]
			}
			if v[k] > max[k] {
				max[k] = v[k]
			}
		}
	}
	return min, max
}

// checkTris verifies every index is inside the vertex array.
func checkTris(m *Mesh, path string) error {
	nv := len(m.Verts)
	for _, t := range m.Tris {
		for _, i := range t.VI {
			if i < 0 || i >= nv {
				return fmt.Errorf("mesh: %s: vertex index %d out of range (%d vertices)", path, i, nv)
			}
		}
	}
	return nil
}

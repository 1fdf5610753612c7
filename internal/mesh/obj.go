package mesh

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"chopper-recorder/internal/mathutil"
)

// ParseOBJ reads a Wavefront OBJ file. Faces are fan-triangulated; negative
// indices are resolved relative to the arrays seen so far. If a material
// library assigns a diffuse texture (map_Kd) to the active material, its path
// is recorded on the mesh, resolved relative to the OBJ's directory.
func ParseOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: open %s: %w", path, err)
	}
	defer f.Close()

	m := &Mesh{
		Name:  strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Color: DefaultColor,
	}

	var materials map[string]string // material name → texture path

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("mesh: %s:%d: short vertex line", path, lineNo)
			}
			var v mathutil.Vec3
			for k := 0; k < 3; k++ {
				v[k], err = strconv.ParseFloat(fields[k+1], 64)
				if err != nil {
					return nil, fmt.Errorf("mesh: %s:%d: bad coordinate %q", path, lineNo, fields[k+1])
				}
			}
			m.Verts = append(m.Verts, v)

		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("mesh: %s:%d: short texcoord line", path, lineNo)
			}
			u, err1 := strconv.ParseFloat(fields[1], 64)
			v, err2 := strconv.ParseFloat(fields[2], 64)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("mesh: %s:%d: bad texcoord", path, lineNo)
			}
			m.UVs = append(m.UVs, [2]float64{u, v})

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("mesh: %s:%d: face needs 3+ vertices", path, lineNo)
			}
			vis := make([]int, 0, len(fields)-1)
			tis := make([]int, 0, len(fields)-1)
			for _, fv := range fields[1:] {
				vi, ti, err := parseFaceVertex(fv, len(m.Verts), len(m.UVs))
				if err != nil {
					return nil, fmt.Errorf("mesh: %s:%d: %w", path, lineNo, err)
				}
				vis = append(vis, vi)
				tis = append(tis, ti)
			}
			for k := 1; k+1 < len(vis); k++ {
				m.Tris = append(m.Tris, Triangle{
					VI: [3]int{vis[0], vis[k], vis[k+1]},
					TI: [3]int{tis[0], tis[k], tis[k+1]},
				})
			}

		case "mtllib":
			if len(fields) < 2 {
				continue
			}
			materials, err = parseMTL(filepath.Join(filepath.Dir(path), fields[1]))
			if err != nil {
				return nil, err
			}

		case "usemtl":
			if len(fields) >= 2 && materials != nil {
				if tex, ok := materials[fields[1]]; ok {
					m.TexPath = tex
				}
			}

		case "o", "g", "s", "vn", "l", "usemap":
			// names, smoothing, normals: not needed for flat-shaded rendering
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("mesh: read %s: %w", path, err)
	}

	if len(m.Verts) == 0 {
		return nil, fmt.Errorf("mesh: %s: no vertices", path)
	}
	if err := checkTris(m, path); err != nil {
		return nil, err
	}

	return m, nil
}

// parseFaceVertex handles "v", "v/vt", "v//vn" and "v/vt/vn" forms.
// Returns zero-based indices; ti is -1 when no texcoord is given.
func parseFaceVertex(s string, nv, nuv int) (vi, ti int, err error) {
	parts := strings.Split(s, "/")

	vi, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad face vertex %q", s)
	}
	vi = resolveIndex(vi, nv)

	ti = -1
	if len(parts) >= 2 && parts[1] != "" {
		ti, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, fmt.Errorf("bad face texcoord %q", s)
		}
		ti = resolveIndex(ti, nuv)
	}
	return vi, ti, nil
}

// resolveIndex maps OBJ 1-based (or negative-relative) indices to 0-based.
func resolveIndex(i, n int) int {
	if i < 0 {
		return n + i
	}
	return i - 1
}

// parseMTL extracts map_Kd texture paths from a material library.
func parseMTL(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: open material library %s: %w", path, err)
	}
	defer f.Close()

	out := make(map[string]string)
	dir := filepath.Dir(path)
	current := ""

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "newmtl":
			current = fields[1]
		case "map_Kd":
			if current != "" {
				out[current] = filepath.Join(dir, fields[len(fields)-1])
			}
		}
	}
	return out, sc.Err()
}

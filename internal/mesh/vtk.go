package mesh

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"chopper-recorder/internal/mathutil"
)

// ParseVTK reads a legacy-format VTK polydata file, ASCII or BINARY.
// Only the POINTS and POLYGONS sections are consumed; attribute sections
// (POINT_DATA, CELL_DATA) end the scan. Binary payloads are big-endian per
// the legacy VTK spec.
func ParseVTK(path string) (*Mesh, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: read %s: %w", path, err)
	}

	r := &vtkReader{data: raw}

	// Line 1: "# vtk DataFile Version x.y"
	if !strings.HasPrefix(r.line(), "# vtk DataFile") {
		return nil, fmt.Errorf("mesh: %s: not a legacy VTK file", path)
	}
	r.line() // title, unused

	switch strings.ToUpper(strings.TrimSpace(r.line())) {
	case "ASCII":
		r.ascii = true
	case "BINARY":
		r.ascii = false
	default:
		return nil, fmt.Errorf("mesh: %s: format line must be ASCII or BINARY", path)
	}

	ds := strings.Fields(r.line())
	if len(ds) != 2 || ds[0] != "DATASET" || ds[1] != "POLYDATA" {
		return nil, fmt.Errorf("mesh: %s: dataset is not POLYDATA", path)
	}

	m := &Mesh{
		Name:  strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Color: DefaultColor,
	}

	for {
		fields := strings.Fields(r.line())
		if len(fields) == 0 {
			if r.eof() {
				break
			}
			continue
		}

		switch fields[0] {
		case "POINTS":
			if err := r.readPoints(m, fields); err != nil {
				return nil, fmt.Errorf("mesh: %s: %w", path, err)
			}
		case "POLYGONS":
			if err := r.readPolygons(m, fields); err != nil {
				return nil, fmt.Errorf("mesh: %s: %w", path, err)
			}
		case "POINT_DATA", "CELL_DATA", "FIELD":
			// attribute data follows; geometry is done
			r.off = len(r.data)
		default:
			return nil, fmt.Errorf("mesh: %s: unsupported section %q", path, fields[0])
		}

		if r.eof() {
			break
		}
	}

	if len(m.Verts) == 0 {
		return nil, fmt.Errorf("mesh: %s: no POINTS section", path)
	}
	if err := checkTris(m, path); err != nil {
		return nil, err
	}

	return m, nil
}

func (r *vtkReader) readPoints(m *Mesh, fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("malformed POINTS header")
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 0 {
		return fmt.Errorf("bad POINTS count %q", fields[1])
	}

	var width int
	switch fields[2] {
	case "float":
		width = 4
	case "double":
		width = 8
	default:
		return fmt.Errorf("unsupported POINTS type %q", fields[2])
	}

	m.Verts = make([]mathutil.Vec3, 0, n)
	for i := 0; i < n; i++ {
		var v mathutil.Vec3
		for k := 0; k < 3; k++ {
			f, err := r.float(width)
			if err != nil {
				return fmt.Errorf("POINTS truncated at %d/%d: %w", i, n, err)
			}
			v[k] = f
		}
		m.Verts = append(m.Verts, v)
	}
	return nil
}

func (r *vtkReader) readPolygons(m *Mesh, fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("malformed POLYGONS header")
	}
	np, err := strconv.Atoi(fields[1])
	if err != nil || np < 0 {
		return fmt.Errorf("bad POLYGONS count %q", fields[1])
	}

	for i := 0; i < np; i++ {
		count, err := r.int32()
		if err != nil {
			return fmt.Errorf("POLYGONS truncated at %d/%d: %w", i, np, err)
		}
		if count < 0 || count > 1<<20 {
			return fmt.Errorf("implausible polygon size %d", count)
		}

		idx := make([]int, count)
		for k := range idx {
			idx[k], err = r.int32()
			if err != nil {
				return fmt.Errorf("POLYGONS truncated at %d/%d: %w", i, np, err)
			}
		}

		// Fan-triangulate n-gons
		for k := 1; k+1 < count; k++ {
			m.Tris = append(m.Tris, Triangle{VI: [3]int{idx[0], idx[k], idx[k+1]}})
		}
	}
	return nil
}

// vtkReader walks the file sequentially. Header and section lines are always
// text; numeric payloads are either whitespace tokens (ASCII) or raw
// big-endian values (BINARY).
type vtkReader struct {
	data  []byte
	off   int
	ascii bool
	toks  []string
}

func (r *vtkReader) eof() bool {
	return r.off >= len(r.data) && len(r.toks) == 0
}

// line reads up to the next newline, dropping any pending tokens.
func (r *vtkReader) line() string {
	r.toks = nil
	if r.off >= len(r.data) {
		return ""
	}
	start := r.off
	for r.off < len(r.data) && r.data[r.off] != '\n' {
		r.off++
	}
	s := string(r.data[start:r.off])
	if r.off < len(r.data) {
		r.off++ // consume newline
	}
	return strings.TrimRight(s, "\r")
}

// word returns the next ASCII token, pulling in lines as needed.
func (r *vtkReader) word() (string, error) {
	for len(r.toks) == 0 {
		if r.off >= len(r.data) {
			return "", fmt.Errorf("unexpected end of file")
		}
		r.toks = strings.Fields(r.line())
	}
	w := r.toks[0]
	r.toks = r.toks[1:]
	return w, nil
}

func (r *vtkReader) float(width int) (float64, error) {
	if r.ascii {
		w, err := r.word()
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return 0, fmt.Errorf("bad float %q", w)
		}
		return f, nil
	}

	if r.off+width > len(r.data) {
		return 0, fmt.Errorf("unexpected end of file")
	}
	var f float64
	if width == 4 {
		f = float64(math.Float32frombits(binary.BigEndian.Uint32(r.data[r.off:])))
	} else {
		f = math.Float64frombits(binary.BigEndian.Uint64(r.data[r.off:]))
	}
	r.off += width
	return f, nil
}

func (r *vtkReader) int32() (int, error) {
	if r.ascii {
		w, err := r.word()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(w)
		if err != nil {
			return 0, fmt.Errorf("bad int %q", w)
		}
		return n, nil
	}

	if r.off+4 > len(r.data) {
		return 0, fmt.Errorf("unexpected end of file")
	}
	n := int(int32(binary.BigEndian.Uint32(r.data[r.off:])))
	r.off += 4
	return n, nil
}

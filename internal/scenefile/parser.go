package scenefile

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
)

// xmlScene matches the scene XML schema.
type xmlScene struct {
	Background string     `xml:"Background,attr"`
	StepDeg    float64    `xml:"StepDeg,attr"`
	Meshes     []xmlMesh  `xml:"Mesh"`
	Axis       *xmlAxis   `xml:"Axis"`
	Marker     *xmlMarker `xml:"Marker"`
	Frame      *xmlFrame  `xml:"Frame"`
}

type xmlMesh struct {
	File  string   `xml:"File,attr"`
	Color string   `xml:"Color,attr"`
	Spin  *xmlSpin `xml:"Spin"`
}

type xmlSpin struct {
	xmlFrame
	StepDeg float64 `xml:"StepDeg,attr"`
}

type xmlAxis struct {
	X1, Y1, Z1 float64 `xml:",attr"`
	X2, Y2, Z2 float64 `xml:",attr"`
	Color      string  `xml:"Color,attr"`
	Width      int     `xml:"Width,attr"`
}

type xmlMarker struct {
	X, Y, Z float64 `xml:",attr"`
	Color   string  `xml:"Color,attr"`
	Radius  int     `xml:"Radius,attr"`
}

type xmlFrame struct {
	OriginX, OriginY, OriginZ float64 `xml:",attr"`
	RotX, RotY, RotZ          float64 `xml:",attr"`
}

// Parse reads a scene XML file into a Def.
func Parse(path string) (*Def, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: read %s: %w", path, err)
	}

	var sc xmlScene
	if err := xml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("scenefile: parse %s: %w", path, err)
	}

	if len(sc.Meshes) == 0 {
		return nil, fmt.Errorf("scenefile: %s: no Mesh entries", path)
	}
	if sc.Marker == nil {
		return nil, fmt.Errorf("scenefile: %s: missing Marker", path)
	}
	if sc.Frame == nil {
		return nil, fmt.Errorf("scenefile: %s: missing Frame", path)
	}

	def := &Def{
		Background: sc.Background,
		StepDeg:    sc.StepDeg,
		Marker: MarkerDef{
			Position: [3]float64{sc.Marker.X, sc.Marker.Y, sc.Marker.Z},
			Color:    sc.Marker.Color,
			Radius:   sc.Marker.Radius,
		},
		Frame: frameDef(*sc.Frame),
	}

	for _, m := range sc.Meshes {
		if m.File == "" {
			return nil, fmt.Errorf("scenefile: %s: Mesh without File", path)
		}
		md := MeshDef{File: m.File, Color: m.Color}
		if m.Spin != nil {
			md.Spin = &SpinDef{
				Frame:   frameDef(m.Spin.xmlFrame),
				StepDeg: m.Spin.StepDeg,
			}
		}
		def.Meshes = append(def.Meshes, md)
	}

	if sc.Axis != nil {
		def.Axis = &AxisDef{
			Start: [3]float64{sc.Axis.X1, sc.Axis.Y1, sc.Axis.Z1},
			End:   [3]float64{sc.Axis.X2, sc.Axis.Y2, sc.Axis.Z2},
			Color: sc.Axis.Color,
			Width: sc.Axis.Width,
		}
	}

	return def, nil
}

func frameDef(f xmlFrame) FrameDef {
	return FrameDef{
		Origin: [3]float64{f.OriginX, f.OriginY, f.OriginZ},
		RotDeg: [3]float64{f.RotX, f.RotY, f.RotZ},
	}
}

// ParseColor converts "#rrggbb" or "#rrggbbaa" to NRGBA. Empty input returns
// def unchanged.
func ParseColor(s string, def color.NRGBA) (color.NRGBA, error) {
	if s == "" {
		return def, nil
	}
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return def, fmt.Errorf("scenefile: bad color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 64)
	if err != nil {
		return def, fmt.Errorf("scenefile: bad color %q", s)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// Default returns the built-in chopper scene: three helicopter meshes, a
// green line marking the local y-axis at (-40, 0, -20), and a yellow marker
// that orbits it by π/20 per tick.
func Default() *Def {
	return &Def{
		Background: "#000000",
		StepDeg:    9, // π/20 rad
		Meshes: []MeshDef{
			{File: "main_body.vtk", Color: "#ffffff"},
			{File: "top_rotor.vtk", Color: "#ff0000"},
			{File: "tail_rotor.vtk", Color: "#0000ff"},
		},
		Axis: &AxisDef{
			Start: [3]float64{-40, 0, -20},
			End:   [3]float64{-40, -20, -20},
			Color: "#00ff00",
			Width: 5,
		},
		Marker: MarkerDef{
			Position: [3]float64{-30, -10, -20},
			Color:    "#ffff00",
			Radius:   6,
		},
		Frame: FrameDef{
			Origin: [3]float64{-40, 0, -20},
		},
	}
}

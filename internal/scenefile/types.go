package scenefile

// Def is a parsed scene description: the meshes to load, the local frame
// governing the marker's motion, and the per-tick rotation step.
type Def struct {
	Background string
	Meshes     []MeshDef
	Axis       *AxisDef
	Marker     MarkerDef
	Frame      FrameDef
	StepDeg    float64
}

// MeshDef names one mesh file with its display color and optional spin.
type MeshDef struct {
	File  string
	Color string
	Spin  *SpinDef
}

// SpinDef attaches a per-tick rotation about a mesh-local vertical axis.
// The frame fields follow FrameDef; StepDeg is degrees per tick.
type SpinDef struct {
	Frame   FrameDef
	StepDeg float64
}

// AxisDef is the visualized local-axis line segment.
type AxisDef struct {
	Start [3]float64
	End   [3]float64
	Color string
	Width int
}

// MarkerDef is the animated point.
type MarkerDef struct {
	Position [3]float64
	Color    string
	Radius   int
}

// FrameDef places a local frame: origin in global coordinates plus an
// Euler XYZ orientation in degrees.
type FrameDef struct {
	Origin [3]float64
	RotDeg [3]float64
}

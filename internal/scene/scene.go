package scene

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"chopper-recorder/internal/geom"
	"chopper-recorder/internal/mathutil"
	"chopper-recorder/internal/mesh"
	"chopper-recorder/internal/scenefile"
	"chopper-recorder/internal/texture"
)

// Spin rotates an object about its own local y-axis by Step radians per tick.
type Spin struct {
	Pose geom.Pose
	Step float64
}

// Object is one placed mesh. Verts are the bind positions; spinning objects
// derive per-tick positions from them without mutating the mesh.
type Object struct {
	Mesh *mesh.Mesh
	Spin *Spin

	posed []mathutil.Vec3 // scratch for spun vertices
}

// TickVerts returns the object's vertex positions at the given tick.
func (o *Object) TickVerts(tick int) []mathutil.Vec3 {
	if o.Spin == nil {
		return o.Mesh.Verts
	}

	angle := o.Spin.Step * float64(tick)
	if cap(o.posed) < len(o.Mesh.Verts) {
		o.posed = make([]mathutil.Vec3, 0, len(o.Mesh.Verts))
	}
	o.posed = o.posed[:0]
	for _, v := range o.Mesh.Verts {
		o.posed = append(o.posed, o.Spin.Pose.RotateAboutLocalY(v, angle))
	}
	return o.posed
}

// Line is the visualized local-axis segment.
type Line struct {
	Start, End mathutil.Vec3
	Width      int
	Color      color.NRGBA
}

// Marker is the animated point with its rendering attributes.
type Marker struct {
	Start  mathutil.Vec3
	Color  color.NRGBA
	Radius int
}

// Scene holds everything needed to render one animation frame: the placed
// meshes, the axis line, the marker descriptor, the local frame pose that
// governs the marker, and the fitted camera.
type Scene struct {
	Objects    []*Object
	Axis       *Line
	Marker     Marker
	Frame      geom.Pose
	Step       float64 // radians per tick
	Background color.NRGBA
	Overlay    string

	Camera   Camera
	Textures texture.Resolver
}

// Build loads the meshes named by a scene definition (relative paths resolve
// against dataDir), validates the frame pose, and fits the camera.
func Build(def *scenefile.Def, dataDir string, textures texture.Resolver) (*Scene, error) {
	bg, err := scenefile.ParseColor(def.Background, color.NRGBA{A: 255})
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Background: bg,
		Step:       mathutil.Deg2Rad(def.StepDeg),
		Textures:   textures,
	}

	for _, md := range def.Meshes {
		m, err := mesh.Load(resolvePath(md.File, dataDir))
		if err != nil {
			return nil, err
		}
		if m.Color, err = scenefile.ParseColor(md.Color, m.Color); err != nil {
			return nil, err
		}

		obj := &Object{Mesh: m}
		if md.Spin != nil {
			pose, err := framePose(md.Spin.Frame)
			if err != nil {
				return nil, fmt.Errorf("scene: spin frame for %s: %w", md.File, err)
			}
			obj.Spin = &Spin{Pose: pose, Step: mathutil.Deg2Rad(md.Spin.StepDeg)}
		}
		s.Objects = append(s.Objects, obj)
	}

	if def.Axis != nil {
		c, err := scenefile.ParseColor(def.Axis.Color, color.NRGBA{G: 255, A: 255})
		if err != nil {
			return nil, err
		}
		w := def.Axis.Width
		if w <= 0 {
			w = 3
		}
		s.Axis = &Line{
			Start: mathutil.Vec3(def.Axis.Start),
			End:   mathutil.Vec3(def.Axis.End),
			Width: w,
			Color: c,
		}
	}

	mc, err := scenefile.ParseColor(def.Marker.Color, color.NRGBA{R: 255, G: 255, A: 255})
	if err != nil {
		return nil, err
	}
	r := def.Marker.Radius
	if r <= 0 {
		r = 5
	}
	s.Marker = Marker{
		Start:  mathutil.Vec3(def.Marker.Position),
		Color:  mc,
		Radius: r,
	}

	if s.Frame, err = framePose(def.Frame); err != nil {
		return nil, fmt.Errorf("scene: frame: %w", err)
	}

	s.fitCamera()
	return s, nil
}

// framePose builds a rigid pose from an origin and Euler XYZ degrees.
func framePose(f scenefile.FrameDef) (geom.Pose, error) {
	q := mathutil.EulerToQuat(
		mathutil.Deg2Rad(f.RotDeg[0]),
		mathutil.Deg2Rad(f.RotDeg[1]),
		mathutil.Deg2Rad(f.RotDeg[2]),
	)
	return geom.NewPose(mathutil.QuatToMat3(q), mathutil.Vec3(f.Origin))
}

// fitCamera frames the meshes, the axis line, and the marker's full orbit.
func (s *Scene) fitCamera() {
	min := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}

	grow := func(v mathutil.Vec3) {
		for k := 0; k < 3; k++ {
			if v[k] < min[k] {
				min[k] = v[k]
			}
			if v[k] > max[k] {
				max[k] = v[k]
			}
		}
	}

	for _, o := range s.Objects {
		lo, hi := o.Mesh.Bounds()
		grow(lo)
		grow(hi)
	}
	if s.Axis != nil {
		grow(s.Axis.Start)
		grow(s.Axis.End)
	}

	// Marker orbit: a circle around the frame's local y-axis. Bound it by a
	// sphere centered on the axis at the marker's height.
	local := s.Frame.Inverse().MulPoint(s.Marker.Start)
	orbitR := mathutil.Vec3{local[0], 0, local[2]}.Len()
	center := s.Frame.Matrix().MulPoint(mathutil.Vec3{0, local[1], 0})
	grow(center.Add(mathutil.Vec3{orbitR, orbitR, orbitR}))
	grow(center.Sub(mathutil.Vec3{orbitR, orbitR, orbitR}))

	s.Camera.Fit(min, max)
}

func resolvePath(p, dataDir string) string {
	if filepath.IsAbs(p) || dataDir == "" {
		return p
	}
	return filepath.Join(dataDir, p)
}

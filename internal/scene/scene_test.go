package scene

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chopper-recorder/internal/geom"
	"chopper-recorder/internal/mathutil"
	"chopper-recorder/internal/raster"
	"chopper-recorder/internal/scenefile"
)

const triangleVTK = `# vtk DataFile Version 3.0
fixture
ASCII
DATASET POLYDATA
POINTS 3 float
-45 -5 -25
-35 -5 -25
-40 5 -25
POLYGONS 1 4
3 0 1 2
`

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "body.vtk"), []byte(triangleVTK), 0o644))
	return dir
}

func testDef() *scenefile.Def {
	return &scenefile.Def{
		Background: "#000000",
		StepDeg:    9,
		Meshes:     []scenefile.MeshDef{{File: "body.vtk", Color: "#ffffff"}},
		Axis: &scenefile.AxisDef{
			Start: [3]float64{-40, 0, -20},
			End:   [3]float64{-40, -20, -20},
			Color: "#00ff00",
			Width: 5,
		},
		Marker: scenefile.MarkerDef{
			Position: [3]float64{-30, -10, -20},
			Color:    "#ffff00",
			Radius:   6,
		},
		Frame: scenefile.FrameDef{Origin: [3]float64{-40, 0, -20}},
	}
}

func TestBuild(t *testing.T) {
	s, err := Build(testDef(), fixtureDir(t), nil)
	require.NoError(t, err)

	require.Len(t, s.Objects, 1)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, s.Objects[0].Mesh.Color)
	assert.InDelta(t, math.Pi/20, s.Step, 1e-12)
	assert.Equal(t, mathutil.Vec3{-40, 0, -20}, s.Frame.Origin())
	assert.Equal(t, mathutil.Vec3{-30, -10, -20}, s.Marker.Start)
	require.NotNil(t, s.Axis)
	assert.Equal(t, 5, s.Axis.Width)
}

func TestBuildErrors(t *testing.T) {
	dir := fixtureDir(t)

	missing := testDef()
	missing.Meshes[0].File = "nope.vtk"
	_, err := Build(missing, dir, nil)
	require.Error(t, err)

	badColor := testDef()
	badColor.Meshes[0].Color = "#zz"
	_, err = Build(badColor, dir, nil)
	require.Error(t, err)
}

func TestBuildDefaultsAppliedForZeroValues(t *testing.T) {
	def := testDef()
	def.Marker.Radius = 0
	def.Marker.Color = ""
	def.Axis.Width = 0

	s, err := Build(def, fixtureDir(t), nil)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Marker.Radius)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, A: 255}, s.Marker.Color)
	assert.Equal(t, 3, s.Axis.Width)
}

func TestTickVerts(t *testing.T) {
	s, err := Build(testDef(), fixtureDir(t), nil)
	require.NoError(t, err)

	obj := s.Objects[0]
	// no spin: bind verts returned as-is
	assert.Equal(t, obj.Mesh.Verts, obj.TickVerts(7))

	pose := geom.TranslatedPose(mathutil.Vec3{-40, 0, -25})
	obj.Spin = &Spin{Pose: pose, Step: math.Pi / 2}

	v0 := obj.Mesh.Verts[0] // (-45, -5, -25)
	got := obj.TickVerts(1)[0]
	// quarter turn about y at (-40, 0, -25): (-5, -5, 0) local → (0, -5, 5)
	assert.InDelta(t, -40, got[0], 1e-9)
	assert.InDelta(t, -5, got[1], 1e-9)
	assert.InDelta(t, -20, got[2], 1e-9)
	// bind verts untouched
	assert.Equal(t, v0, obj.Mesh.Verts[0])

	// tick 0 is the bind pose
	got0 := obj.TickVerts(0)
	for k := 0; k < 3; k++ {
		assert.InDelta(t, v0[k], got0[0][k], 1e-9)
	}
}

func TestCameraFitAndProject(t *testing.T) {
	var c Camera
	c.Fit(mathutil.Vec3{-50, -10, -30}, mathutil.Vec3{-30, 10, -10})

	px, py, pz := c.Project([]mathutil.Vec3{{-40, 0, -20}}, 100, 100, 10, nil, nil, nil)
	require.Len(t, px, 1)
	// center of the box projects to the screen center
	assert.InDelta(t, 50, px[0], 1e-9)
	assert.InDelta(t, 50, py[0], 1e-9)
	assert.InDelta(t, 0, pz[0], 1e-9)

	// corners stay inside the margin
	px, py, _ = c.Project([]mathutil.Vec3{{-50, -10, -30}, {-30, 10, -10}}, 100, 100, 10, px, py, pz)
	for i := range px {
		assert.GreaterOrEqual(t, px[i], 0.0)
		assert.LessOrEqual(t, px[i], 100.0)
		assert.GreaterOrEqual(t, py[i], 0.0)
		assert.LessOrEqual(t, py[i], 100.0)
	}
}

func TestCameraYawChangesView(t *testing.T) {
	var c Camera
	c.Fit(mathutil.Vec3{-1, -1, -1}, mathutil.Vec3{1, 1, 1})

	p0, _, _ := c.Project([]mathutil.Vec3{{0, 0, 1}}, 100, 100, 0, nil, nil, nil)
	x0 := p0[0]

	c.Yaw = math.Pi / 2
	p1, _, _ := c.Project([]mathutil.Vec3{{0, 0, 1}}, 100, 100, 0, nil, nil, nil)
	assert.Greater(t, math.Abs(p1[0]-x0), 1e-6, "yaw change must move the projection")
}

func TestRenderDrawsScene(t *testing.T) {
	s, err := Build(testDef(), fixtureDir(t), nil)
	require.NoError(t, err)

	fb := raster.NewFrameBuffer(80, 60)
	s.Render(fb, s.Marker.Start, nil, 0)

	lit := 0
	for i := 0; i < len(fb.Color); i += 4 {
		if fb.Color[i] != 0 || fb.Color[i+1] != 0 || fb.Color[i+2] != 0 {
			lit++
		}
	}
	assert.Greater(t, lit, 20, "mesh, axis and marker should light pixels")
}

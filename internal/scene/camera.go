package scene

import (
	"math"

	"chopper-recorder/internal/mathutil"
)

// Camera is an orthographic orbit camera. The base orientation looks at the
// global yz-plane (down the x-axis); yaw and pitch orbit around it. Center and
// scale are fitted once from the scene bounds so the framing stays fixed
// across frames.
type Camera struct {
	Yaw   float64
	Pitch float64

	center mathutil.Vec3
	radius float64
}

// yz-plane base view: world (x, y, z) → screen (z, y, -x).
var baseView = mathutil.RotY(math.Pi / 2)

// Fit frames the camera on a bounding box, with some slack so the orbiting
// marker stays in view at any yaw.
func (c *Camera) Fit(min, max mathutil.Vec3) {
	c.center = min.Add(max).Scale(0.5)
	c.radius = max.Sub(min).Len() / 2
	if c.radius < 1e-3 {
		c.radius = 1e-3
	}
}

// View returns the current orientation matrix.
func (c *Camera) View() mathutil.Mat3 {
	return mathutil.Mat3Mul(
		mathutil.Mat3Mul(mathutil.RotX(c.Pitch), mathutil.RotY(c.Yaw)),
		baseView,
	)
}

// Project maps world-space points into screen space: x right, y down, z
// toward the viewer. Output slices are reused when capacity allows.
func (c *Camera) Project(verts []mathutil.Vec3, w, h, margin int, px, py, pz []float64) ([]float64, []float64, []float64) {
	view := c.View()
	half := float64(min(w, h))/2 - float64(margin)
	scale := half / c.radius
	cx, cy := float64(w)/2, float64(h)/2

	px = px[:0]
	py = py[:0]
	pz = pz[:0]
	for _, v := range verts {
		t := view.MulVec3(v.Sub(c.center))
		px = append(px, cx+t[0]*scale)
		py = append(py, cy-t[1]*scale)
		pz = append(pz, t[2]*scale)
	}
	return px, py, pz
}

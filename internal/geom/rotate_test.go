package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chopper-recorder/internal/mathutil"
)

const tol = 1e-9

// The original scene: local frame translated to (-40, 0, -20) with identity
// orientation, marker starting at (-30, -10, -20), step of π/20 per tick.
func chopperFrame(t *testing.T) Pose {
	t.Helper()
	p, err := NewPose(mathutil.Mat3Identity(), mathutil.Vec3{-40, 0, -20})
	require.NoError(t, err)
	return p
}

func TestRotateZeroAngleIsIdentity(t *testing.T) {
	frames := []Pose{
		chopperFrame(t),
		MustPose(mathutil.FromMat3Translation(mathutil.RotX(1.1), mathutil.Vec3{3, 4, 5})),
	}
	points := []mathutil.Vec3{
		{-30, -10, -20},
		{0, 0, 0},
		{1e6, -1e6, 0.5},
	}

	for _, f := range frames {
		for _, p := range points {
			got := f.RotateAboutLocalY(p, 0)
			for k := 0; k < 3; k++ {
				assert.InDelta(t, p[k], got[k], tol)
			}
		}
	}
}

func TestRotateMatchesReference(t *testing.T) {
	frame := chopperFrame(t)
	got := frame.RotateAboutLocalY(mathutil.Vec3{-30, -10, -20}, math.Pi/20)

	// Reference output of T · RotY(π/20) · T⁻¹ applied to the start point
	assert.InDelta(t, -30.123116594049, got[0], 1e-6)
	assert.InDelta(t, -10.0, got[1], 1e-6)
	assert.InDelta(t, -21.564344650402, got[2], 1e-6)
}

func TestRotateComposition(t *testing.T) {
	frame := chopperFrame(t)
	start := mathutil.Vec3{-30, -10, -20}
	step := math.Pi / 20

	// n small steps equal one big step of n·θ
	p := start
	for i := 0; i < 5; i++ {
		p = frame.RotateAboutLocalY(p, step)
	}
	once := frame.RotateAboutLocalY(start, 5*step)

	for k := 0; k < 3; k++ {
		assert.InDelta(t, once[k], p[k], 1e-9)
	}

	// Reference value for the composed position (π/4 total)
	assert.InDelta(t, -32.928932188135, p[0], 1e-6)
	assert.InDelta(t, -10.0, p[1], 1e-6)
	assert.InDelta(t, -27.071067811865, p[2], 1e-6)
}

func TestRotateReducesToPlainRotYAtOrigin(t *testing.T) {
	frame, err := NewPose(mathutil.Mat3Identity(), mathutil.Vec3{})
	require.NoError(t, err)

	p := mathutil.Vec3{1, 2, 3}
	angle := 0.3
	got := frame.RotateAboutLocalY(p, angle)
	want := mathutil.RotY(angle).MulVec3(p)

	for k := 0; k < 3; k++ {
		assert.InDelta(t, want[k], got[k], tol)
	}
}

func TestRotateRoundTrip(t *testing.T) {
	frame := MustPose(mathutil.FromMat3Translation(mathutil.RotZ(0.4), mathutil.Vec3{-7, 2, 9}))
	start := mathutil.Vec3{12, -3, 4.5}

	p := frame.RotateAboutLocalY(start, 1.25)
	p = frame.RotateAboutLocalY(p, -1.25)

	for k := 0; k < 3; k++ {
		assert.InDelta(t, start[k], p[k], tol)
	}
}

func TestHomogeneousScaleStaysOne(t *testing.T) {
	frames := []Pose{
		chopperFrame(t),
		MustPose(mathutil.FromMat3Translation(mathutil.RotX(0.3), mathutil.Vec3{1, -2, 3})),
	}

	for _, f := range frames {
		for _, angle := range []float64{0, 0.1, math.Pi / 2, -2.5} {
			motion := mathutil.Mat4Mul(mathutil.Mat4Mul(f.Matrix(), mathutil.RotY4(angle)), f.Inverse())
			h := motion.MulVec4(mathutil.Vec3{4, 5, 6}.Homogeneous())
			assert.InDelta(t, 1.0, h.W(), 1e-12)
		}
	}
}

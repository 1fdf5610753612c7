package geom

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"chopper-recorder/internal/mathutil"
)

// ErrInvalidTransform reports a pose matrix that is not a rigid transform:
// singular, scaled, sheared, or with a bad last row.
var ErrInvalidTransform = errors.New("geom: invalid transform")

// rigidTol is the tolerance for the orthonormality and last-row checks.
const rigidTol = 1e-9

// Pose is a rigid transform mapping local-frame coordinates to global
// coordinates. Immutable once constructed; the inverse is computed up front
// so per-tick rotation never re-inverts.
type Pose struct {
	m   mathutil.Mat4
	inv mathutil.Mat4
}

// NewPose builds a pose from a 3×3 orientation and the local frame's origin
// in global coordinates. The orientation must be a pure rotation.
func NewPose(orientation mathutil.Mat3, origin mathutil.Vec3) (Pose, error) {
	return FromMatrix(mathutil.FromMat3Translation(orientation, origin))
}

// TranslatedPose builds a pose whose orientation is identity — a local frame
// that is only offset from the global origin.
func TranslatedPose(origin mathutil.Vec3) Pose {
	p, _ := NewPose(mathutil.Mat3Identity(), origin)
	return p
}

// FromMatrix validates a raw 4×4 matrix as a rigid transform and wraps it in
// a Pose. Returns ErrInvalidTransform if the upper-left block is not
// orthonormal with determinant +1, the last row is not [0 0 0 1], or the
// matrix cannot be inverted.
func FromMatrix(m mathutil.Mat4) (Pose, error) {
	if err := checkRigid(m); err != nil {
		return Pose{}, err
	}

	inv, err := invert(m)
	if err != nil {
		return Pose{}, err
	}

	return Pose{m: m, inv: inv}, nil
}

// MustPose is FromMatrix for known-good literals; panics on a bad matrix.
func MustPose(m mathutil.Mat4) Pose {
	p, err := FromMatrix(m)
	if err != nil {
		panic(err)
	}
	return p
}

// Matrix returns the local→global transform.
func (p Pose) Matrix() mathutil.Mat4 {
	return p.m
}

// Inverse returns the global→local transform.
func (p Pose) Inverse() mathutil.Mat4 {
	return p.inv
}

// Origin returns the local frame's origin in global coordinates.
func (p Pose) Origin() mathutil.Vec3 {
	return p.m.Translation()
}

// Orientation returns the local frame's rotation part.
func (p Pose) Orientation() mathutil.Mat3 {
	return p.m.Mat3Part()
}

func (p Pose) String() string {
	o := p.Origin()
	return fmt.Sprintf("Pose{origin=(%.3f, %.3f, %.3f)}", o[0], o[1], o[2])
}

func checkRigid(m mathutil.Mat4) error {
	// Last row must be [0 0 0 1]
	for i, want := range [4]float64{0, 0, 0, 1} {
		if math.Abs(m[12+i]-want) > rigidTol {
			return fmt.Errorf("%w: last row is not [0 0 0 1]", ErrInvalidTransform)
		}
	}

	// Rotation block must satisfy RᵀR = I
	r := m.Mat3Part()
	rtr := mathutil.Mat3Mul(r.Transpose(), r)
	id := mathutil.Mat3Identity()
	for i := 0; i < 9; i++ {
		if math.Abs(rtr[i]-id[i]) > rigidTol {
			return fmt.Errorf("%w: rotation block is not orthonormal", ErrInvalidTransform)
		}
	}

	// Proper rotation, no reflection
	if math.Abs(r.Det()-1) > rigidTol {
		return fmt.Errorf("%w: rotation block determinant is %g, want 1", ErrInvalidTransform, r.Det())
	}

	return nil
}

// invert computes the full 4×4 inverse. gonum reports singular and badly
// conditioned matrices, which we fold into ErrInvalidTransform.
func invert(m mathutil.Mat4) (mathutil.Mat4, error) {
	src := mat.NewDense(4, 4, append([]float64(nil), m[:]...))

	var dst mat.Dense
	if err := dst.Inverse(src); err != nil {
		return mathutil.Mat4{}, fmt.Errorf("%w: %v", ErrInvalidTransform, err)
	}

	var out mathutil.Mat4
	copy(out[:], dst.RawMatrix().Data)
	return out, nil
}

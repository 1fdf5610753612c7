package geom

import "chopper-recorder/internal/mathutil"

// RotateAboutLocalY returns the global coordinates of p after rotating it by
// angle radians about the pose's local y-axis.
//
// A rotation matrix alone rotates about the global origin, so an offset axis
// needs conjugation: carry the point into the local frame, rotate there, and
// carry it back. The motion matrix is T · RotY(angle) · T⁻¹.
//
// The result is converted from homogeneous to Cartesian by dividing through
// by the fourth component. For a rigid pose that component is exactly 1, but
// the divide is kept so the chain stays correct if the pose type ever grows
// non-rigid (e.g. scaling) variants.
func (p Pose) RotateAboutLocalY(point mathutil.Vec3, angle float64) mathutil.Vec3 {
	motion := mathutil.Mat4Mul(mathutil.Mat4Mul(p.m, mathutil.RotY4(angle)), p.inv)

	h := motion.MulVec4(point.Homogeneous())
	return mathutil.Vec3{h[0] / h[3], h[1] / h[3], h[2] / h[3]}
}

package mathutil

import "math"

// Quat is a unit quaternion stored as (x, y, z, w). Scene files give frame
// orientations as Euler angles; quaternions are the intermediate so composed
// rotations stay normalized.
type Quat [4]float64

// EulerToQuat builds a quaternion from intrinsic XYZ Euler angles in radians.
func EulerToQuat(rx, ry, rz float64) Quat {
	hx, hy, hz := rx*0.5, ry*0.5, rz*0.5
	cx, sx := math.Cos(hx), math.Sin(hx)
	cy, sy := math.Cos(hy), math.Sin(hy)
	cz, sz := math.Cos(hz), math.Sin(hz)

	return Quat{
		sx*cy*cz - cx*sy*sz,
		cx*sy*cz + sx*cy*sz,
		cx*cy*sz - sx*sy*cz,
		cx*cy*cz + sx*sy*sz,
	}
}

// QuatToMat3 expands a unit quaternion into its rotation matrix.
func QuatToMat3(q Quat) Mat3 {
	x, y, z, w := q[0], q[1], q[2], q[3]

	x2, y2, z2 := x+x, y+y, z+z
	xx, yy, zz := x*x2, y*y2, z*z2
	xy, xz, yz := x*y2, x*z2, y*z2
	wx, wy, wz := w*x2, w*y2, w*z2

	return Mat3{
		1 - (yy + zz), xy - wz, xz + wy,
		xy + wz, 1 - (xx + zz), yz - wx,
		xz - wy, yz + wx, 1 - (xx + yy),
	}
}

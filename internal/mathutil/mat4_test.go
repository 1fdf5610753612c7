package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMat4Mul(t *testing.T) {
	a := Mat4{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	b := Mat4{17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32}

	want := Mat4{
		250, 260, 270, 280,
		618, 644, 670, 696,
		986, 1028, 1070, 1112,
		1354, 1412, 1470, 1528,
	}
	assert.Equal(t, want, Mat4Mul(a, b))

	id := Mat4Identity()
	assert.Equal(t, a, Mat4Mul(a, id))
	assert.Equal(t, a, Mat4Mul(id, a))
}

func TestMulVec4KeepsW(t *testing.T) {
	m := FromMat3Translation(RotY(0.5), Vec3{1, 2, 3})
	h := m.MulVec4(Vec3{4, 5, 6}.Homogeneous())
	assert.Equal(t, 1.0, h.W())

	// MulPoint is MulVec4 with the w row dropped
	p := m.MulPoint(Vec3{4, 5, 6})
	for k := 0; k < 3; k++ {
		assert.InDelta(t, h[k], p[k], 1e-15)
	}
}

func TestRotY4(t *testing.T) {
	theta := 0.3
	c, s := math.Cos(theta), math.Sin(theta)
	want := Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
	assert.Equal(t, want, RotY4(theta))

	// 4×4 agrees with the 3×3 rotation
	got := RotY4(theta).MulPoint(Vec3{1, 2, 3})
	want3 := RotY(theta).MulVec3(Vec3{1, 2, 3})
	for k := 0; k < 3; k++ {
		assert.InDelta(t, want3[k], got[k], 1e-15)
	}
}

func TestFromMat3Translation(t *testing.T) {
	m := FromMat3Translation(Mat3Identity(), Vec3{7, 8, 9})
	assert.Equal(t, Vec3{7, 8, 9}, m.Translation())
	assert.Equal(t, Mat3Identity(), m.Mat3Part())
	assert.Equal(t, Vec3{8, 10, 12}, m.MulPoint(Vec3{1, 2, 3}))
}

func TestMat3RotationInverseIsTranspose(t *testing.T) {
	r := Mat3Mul(RotX(0.3), Mat3Mul(RotY(1.1), RotZ(-0.7)))
	inv := r.Inverse()
	tr := r.Transpose()
	for i := 0; i < 9; i++ {
		assert.InDelta(t, tr[i], inv[i], 1e-12)
	}
	assert.InDelta(t, 1.0, r.Det(), 1e-12)
}

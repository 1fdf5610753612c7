package raster

import (
	"math"

	"chopper-recorder/internal/mathutil"
)

// LightConfig holds the shading parameters. Directions are in screen space
// (x right, y down, z toward the viewer), so lighting stays fixed relative to
// the camera while the scene orbits under it.
type LightConfig struct {
	KeyDir   mathutil.Vec3
	RimDir   mathutil.Vec3
	HalfMain mathutil.Vec3 // Blinn-Phong half-vector, key light vs viewer

	Ambient  float64
	Hemi     float64
	Direct   float64
	Rim      float64
	SpecInt  float64
	SpecPow  float64
	Exposure float64
	InvGamma float64
}

// DefaultLightConfig is a key light from the upper left front, a hemisphere
// fill, and a rim from the lower right. Tuned against the default chopper
// scene so the white fuselage reads without clipping.
func DefaultLightConfig() LightConfig {
	keyDir := mathutil.Vec3{-0.4, -0.55, 0.65}.Normalize()
	rimDir := mathutil.Vec3{0.6, 0.25, -0.5}.Normalize()
	viewDir := mathutil.Vec3{0, 0, -1} // from eye into the scene

	return LightConfig{
		KeyDir:   keyDir,
		RimDir:   rimDir,
		HalfMain: keyDir.Sub(viewDir).Normalize(),
		Ambient:  0.50,
		Hemi:     0.45,
		Direct:   1.40,
		Rim:      0.50,
		SpecInt:  0.40,
		SpecPow:  12.0,
		Exposure: 1.05,
		InvGamma: 1.0 / 2.2,
	}
}

// ComputeShade returns the scalar light intensity for a face normal.
// Normals are unoriented (meshes mix winding), so Lambert terms use the
// absolute dot product.
func (lc *LightConfig) ComputeShade(normal mathutil.Vec3) float64 {
	key := math.Abs(normal.Dot(lc.KeyDir))
	rim := math.Abs(normal.Dot(lc.RimDir))

	// Hemisphere fill: faces pointing up get more sky
	hemi := (1.0-math.Abs(normal[1]))*0.5 + 0.5

	ndh := normal.Dot(lc.HalfMain)
	if ndh < 0 {
		ndh = 0
	}
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemi*lc.Hemi + key*lc.Direct + rim*lc.Rim + spec
}

// srgbToLinear decodes 8-bit sRGB to linear, precomputed once.
var srgbToLinear [256]float64

func init() {
	for i := range srgbToLinear {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap is the ACES filmic curve fit; maps linear light to [0, 1).
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

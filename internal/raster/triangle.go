package raster

import (
	"image"
	"math"

	"chopper-recorder/internal/mathutil"
)

// RasterizeTriangle rasterizes a single triangle with optional texture
// mapping, z-buffer, sRGB color space, flat shading, and ACES tone mapping.
//
// px/py/pz are screen-space vertex coordinates (y down, z toward the viewer,
// larger z wins). vi indexes them; ti indexes uvs when tex is non-nil and all
// entries are in range, otherwise the flat color is used.
//
// This is the HOT PATH — designed for zero allocation in the inner loop.
func RasterizeTriangle(
	fb *FrameBuffer,
	px, py, pz []float64,
	uvs [][2]float64,
	vi, ti [3]int,
	tex *image.NRGBA,
	flatR, flatG, flatB, flatA uint8,
	lc *LightConfig,
) {
	nv := len(px)
	for _, i := range vi {
		if i < 0 || i >= nv {
			return
		}
	}

	x0, y0, z0 := px[vi[0]], py[vi[0]], pz[vi[0]]
	x1, y1, z1 := px[vi[1]], py[vi[1]], pz[vi[1]]
	x2, y2, z2 := px[vi[2]], py[vi[2]], pz[vi[2]]

	hasUV := tex != nil
	for _, i := range ti {
		if i < 0 || i >= len(uvs) {
			hasUV = false
			break
		}
	}

	var u0, v0uv, u1, v1uv, u2, v2uv float64
	if hasUV {
		u0, v0uv = uvs[ti[0]][0], uvs[ti[0]][1]
		u1, v1uv = uvs[ti[1]][0], uvs[ti[1]][1]
		u2, v2uv = uvs[ti[2]][0], uvs[ti[2]][1]
	}

	// Face normal for flat shading
	e1x, e1y, e1z := x1-x0, y1-y0, z1-z0
	e2x, e2y, e2z := x2-x0, y2-y0, z2-z0
	nx := e1y*e2z - e1z*e2y
	ny := e1z*e2x - e1x*e2z
	nz := e1x*e2y - e1y*e2x
	nl := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if nl < 1e-8 {
		return
	}
	shade := lc.ComputeShade(mathutil.Vec3{nx / nl, ny / nl, nz / nl})

	// Bounding box clipped to the framebuffer
	w, h := fb.Width, fb.Height
	minX := int(math.Min(math.Min(x0, x1), x2))
	maxX := int(math.Max(math.Max(x0, x1), x2)) + 1
	minY := int(math.Min(math.Min(y0, y1), y2))
	maxY := int(math.Max(math.Max(y0, y1), y2)) + 1

	if minX < 0 {
		minX = 0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= h {
		maxY = h - 1
	}
	if minX >= maxX || minY >= maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	exposure := lc.Exposure
	invGamma := lc.InvGamma

	// Pixel loop — zero allocations
	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		rowOff := sy * w
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			var cr, cg, cb, ca uint8
			if hasUV {
				u := w0*u0 + w1*u1 + w2*u2
				v := w0*v0uv + w1*v1uv + w2*v2uv
				cr, cg, cb, ca = SampleTexture(tex, u, v)
			} else {
				cr, cg, cb, ca = flatR, flatG, flatB, flatA
			}

			// Skip transparent texels
			if ca < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			// sRGB decode → shade → tone map → sRGB encode
			sr := srgbToLinear[cr] * shade * exposure
			sg := srgbToLinear[cg] * shade * exposure
			sb := srgbToLinear[cb] * shade * exposure

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = clamp255(math.Pow(ACESTonemap(sr), invGamma) * 255)
			fb.Color[pxIdx+1] = clamp255(math.Pow(ACESTonemap(sg), invGamma) * 255)
			fb.Color[pxIdx+2] = clamp255(math.Pow(ACESTonemap(sb), invGamma) * 255)
			fb.Color[pxIdx+3] = ca
		}
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

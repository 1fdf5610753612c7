package raster

import "image"

// SampleTexture reads tex at (u, v) with bilinear filtering. UVs outside
// [0, 1) wrap, so tiled skins sample correctly. Indexes tex.Pix directly;
// called per covered pixel from the triangle loop.
func SampleTexture(tex *image.NRGBA, u, v float64) (r, g, b, a uint8) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()

	u -= float64(int(u))
	if u < 0 {
		u++
	}
	v -= float64(int(v))
	if v < 0 {
		v++
	}

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0, y0 := int(fx), int(fy)
	x1 := (x0 + 1) % w
	y1 := (y0 + 1) % h
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	pix := tex.Pix
	i00 := y0*tex.Stride + x0*4
	i10 := y0*tex.Stride + x1*4
	i01 := y1*tex.Stride + x0*4
	i11 := y1*tex.Stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	blend := func(off int) uint8 {
		f := float64(pix[i00+off])*w00 + float64(pix[i10+off])*w10 +
			float64(pix[i01+off])*w01 + float64(pix[i11+off])*w11
		return uint8(f + 0.5)
	}
	return blend(0), blend(1), blend(2), blend(3)
}

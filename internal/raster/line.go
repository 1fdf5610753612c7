package raster

import (
	"image/color"
	"math"
)

// zBias lifts lines and discs slightly toward the viewer so markers drawn on
// a surface win the depth test against it.
const zBias = 1e-3

// DrawLine3D draws a depth-tested line between two screen-space points using
// DDA stepping along the major axis. lw is the line width in pixels.
func DrawLine3D(fb *FrameBuffer, x0, y0, z0, x1, y1, z1 float64, lw int, c color.NRGBA) {
	dx := x1 - x0
	dy := y1 - y0
	steps := int(math.Max(math.Abs(dx), math.Abs(dy))) + 1

	half := lw / 2
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(x0 + dx*t)
		y := int(y0 + dy*t)
		z := z0 + (z1-z0)*t + zBias
		for oy := -half; oy <= half; oy++ {
			for ox := -half; ox <= half; ox++ {
				putPixel(fb, x+ox, y+oy, z, c)
			}
		}
	}
}

// DrawDisc draws a depth-tested filled disc at a screen-space position.
func DrawDisc(fb *FrameBuffer, cx, cy, z float64, r int, c color.NRGBA) {
	x0, y0 := int(cx), int(cy)
	r2 := r * r
	for oy := -r; oy <= r; oy++ {
		for ox := -r; ox <= r; ox++ {
			if ox*ox+oy*oy > r2 {
				continue
			}
			putPixel(fb, x0+ox, y0+oy, z+zBias, c)
		}
	}
}

func putPixel(fb *FrameBuffer, x, y int, z float64, c color.NRGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	zIdx := y*fb.Width + x
	if z <= fb.ZBuf[zIdx] {
		return
	}
	fb.ZBuf[zIdx] = z

	i := zIdx * 4
	fb.Color[i] = c.R
	fb.Color[i+1] = c.G
	fb.Color[i+2] = c.B
	fb.Color[i+3] = c.A
}

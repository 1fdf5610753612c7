package raster

import (
	"image"
	"image/color"
	"math"
)

// FrameBuffer holds the rendering target as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	ZBuf   []float64 // depth per pixel, len = W*H, initialized to -inf
}

// NewFrameBuffer allocates a zeroed color buffer and -inf z-buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	zbuf := make([]float64, n)
	for i := range zbuf {
		zbuf[i] = math.Inf(-1)
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, n*4),
		ZBuf:   zbuf,
	}
}

// Clear resets the z-buffer and fills the color buffer with the background.
// Reuses the allocations so per-frame rendering stays allocation-free.
func (fb *FrameBuffer) Clear(bg color.NRGBA) {
	for i := range fb.ZBuf {
		fb.ZBuf[i] = math.Inf(-1)
	}
	for i := 0; i < len(fb.Color); i += 4 {
		fb.Color[i] = bg.R
		fb.Color[i+1] = bg.G
		fb.Color[i+2] = bg.B
		fb.Color[i+3] = bg.A
	}
}

// Image copies the color buffer into a new NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}

package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(img *image.NRGBA, c color.NRGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
}

func TestDownsampleSolid(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	fill(src, color.NRGBA{R: 120, G: 30, B: 200, A: 255})

	out := Downsample(src, 16, 16)
	require.Equal(t, image.Rect(0, 0, 16, 16), out.Bounds())

	for i := 0; i < len(out.Pix); i += 4 {
		assert.InDelta(t, 120, float64(out.Pix[i]), 1)
		assert.InDelta(t, 30, float64(out.Pix[i+1]), 1)
		assert.InDelta(t, 200, float64(out.Pix[i+2]), 1)
		assert.Equal(t, uint8(255), out.Pix[i+3])
	}
}

func TestDownsampleNoUpscale(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	out := Downsample(src, 20, 20)
	assert.Same(t, src, out)
}

func TestDownsampleAveragesBlocks(t *testing.T) {
	// left half white, right half black
	src := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			v := uint8(0)
			if x < 16 {
				v = 255
			}
			src.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}

	out := Downsample(src, 8, 8)
	left := out.NRGBAAt(0, 4)
	right := out.NRGBAAt(7, 4)
	assert.Greater(t, left.R, uint8(200))
	assert.Less(t, right.R, uint8(55))
}

func TestDownsampleTransparentStaysDark(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	fill(src, color.NRGBA{R: 255, G: 255, B: 255, A: 0})

	out := Downsample(src, 4, 4)
	for i := 0; i < len(out.Pix); i += 4 {
		assert.Equal(t, uint8(0), out.Pix[i+3])
	}
}

package raster

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DrawText renders multi-line text onto an image at (x, y) using the built-in
// 7×13 bitmap face. Used for the key-binding help overlay in each frame.
func DrawText(img *image.NRGBA, x, y int, c color.NRGBA, text string) {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
	}

	lineHeight := face.Height + 2
	for i, line := range strings.Split(text, "\n") {
		d.Dot = fixed.P(x, y+i*lineHeight)
		d.DrawString(line)
	}
}

// Package texture normalises decoded images for GPU upload.
package texture

import (
	"image"
	"image/color"
)

// ToRGBA converts any image to tightly packed, non-premultiplied RGBA with
// its origin at (0, 0). With flipY the rows are reversed, which suits
// OpenGL's bottom-left texture origin.
func ToRGBA(img image.Image, flipY bool) *image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		dstY := y
		if flipY {
			dstY = h - 1 - y
		}
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			i := rgba.PixOffset(x, dstY)
			rgba.Pix[i+0] = c.R
			rgba.Pix[i+1] = c.G
			rgba.Pix[i+2] = c.B
			rgba.Pix[i+3] = c.A
		}
	}

	return rgba
}

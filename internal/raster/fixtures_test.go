package raster

import (
	"image"
	"image/color"
)

// whiteGray returns a w x h grayscale image filled with background white.
func whiteGray(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

// fillRect paints the half-open rectangle [x0,x1) x [y0,y1) with value v.
func fillRect(img *image.Gray, x0, y0, x1, y1 int, v uint8) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
}

// outlineRect paints a rectangular border of the given thickness.
func outlineRect(img *image.Gray, x0, y0, x1, y1, thickness int, v uint8) {
	fillRect(img, x0, y0, x1, y0+thickness, v)
	fillRect(img, x0, y1-thickness, x1, y1, v)
	fillRect(img, x0, y0, x0+thickness, y1, v)
	fillRect(img, x1-thickness, y0, x1, y1, v)
}

// fillAnnulus paints every pixel whose distance from (cx, cy) lies in
// [rIn, rOut] with value v. rIn of 0 gives a filled disc.
func fillAnnulus(img *image.Gray, cx, cy int, rIn, rOut float64, v uint8) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := float64(x - cx)
			dy := float64(y - cy)
			d2 := dx*dx + dy*dy
			if d2 >= rIn*rIn && d2 <= rOut*rOut {
				img.SetGray(x, y, color.Gray{Y: v})
			}
		}
	}
}

package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	colorCheckbox        = color.RGBA{G: 255, A: 255}
	colorCheckboxChecked = color.RGBA{G: 200, A: 255}
	colorRadio           = color.RGBA{B: 255, A: 255}
	colorRadioSelected   = color.RGBA{B: 200, A: 255}
	colorInput           = color.RGBA{R: 255, A: 255}
	colorBorder          = color.RGBA{R: 255, G: 165, A: 255}
	colorBand            = color.RGBA{G: 255, B: 255, A: 255}
)

// Annotate renders a debug overlay of every detection onto a copy of the
// page raster: checkboxes in green, radio buttons in blue, input boxes in
// red, ruling lines in orange and row bands in cyan with an index label.
func Annotate(src image.Image, controls []Control, borders Borders, bands []Band) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	width := bounds.Dx()

	for _, c := range controls {
		switch c.Type {
		case ControlCheckbox:
			col := colorCheckbox
			if c.Checked != nil && *c.Checked {
				col = colorCheckboxChecked
			}
			drawRect(dst, c.BBox.X0, c.BBox.Y0, c.BBox.X1, c.BBox.Y1, col, 2)
			drawLabel(dst, int(c.BBox.X0), int(c.BBox.Y0)-2, "CB", col)
		case ControlRadio:
			col := colorRadio
			if c.Selected != nil && *c.Selected {
				col = colorRadioSelected
			}
			if c.Center != nil {
				drawCircle(dst, c.Center.X, c.Center.Y, c.Radius, col, 2)
				drawLabel(dst, c.Center.X-5, c.Center.Y-c.Radius-2, "RB", col)
			}
		case ControlInput:
			drawRect(dst, c.BBox.X0, c.BBox.Y0, c.BBox.X1, c.BBox.Y1, colorInput, 2)
			drawLabel(dst, int(c.BBox.X0), int(c.BBox.Y0)-2, "INPUT", colorInput)
		}
	}

	for _, line := range borders.Horizontal {
		drawHSeg(dst, line.X0, line.X1, line.Y, colorBorder)
	}
	for _, line := range borders.Vertical {
		drawVSeg(dst, line.X, line.Y0, line.Y1, colorBorder)
	}

	for i, band := range bands {
		drawHSeg(dst, 0, width, band.Y0, colorBand)
		drawHSeg(dst, 0, width, band.Y1, colorBand)
		drawLabel(dst, 5, band.Y0+12, fmt.Sprintf("R%d", i), colorBand)
	}

	return dst
}

func drawRect(dst *image.RGBA, x0, y0, x1, y1 float64, col color.RGBA, thickness int) {
	ix0, iy0 := int(math.Round(x0)), int(math.Round(y0))
	ix1, iy1 := int(math.Round(x1)), int(math.Round(y1))
	for t := 0; t < thickness; t++ {
		drawHSeg(dst, ix0, ix1, iy0+t, col)
		drawHSeg(dst, ix0, ix1, iy1-t, col)
		drawVSeg(dst, ix0+t, iy0, iy1, col)
		drawVSeg(dst, ix1-t, iy0, iy1, col)
	}
}

func drawCircle(dst *image.RGBA, cx, cy, r int, col color.RGBA, thickness int) {
	for t := 0; t < thickness; t++ {
		rr := r + t
		steps := 8 * (rr + 1)
		for i := 0; i < steps; i++ {
			angle := 2 * math.Pi * float64(i) / float64(steps)
			x := cx + int(math.Round(float64(rr)*math.Cos(angle)))
			y := cy + int(math.Round(float64(rr)*math.Sin(angle)))
			setPixel(dst, x, y, col)
		}
	}
}

func drawHSeg(dst *image.RGBA, x0, x1, y int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		setPixel(dst, x, y, col)
	}
}

func drawVSeg(dst *image.RGBA, x, y0, y1 int, col color.RGBA) {
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		setPixel(dst, x, y, col)
	}
}

func setPixel(dst *image.RGBA, x, y int, col color.RGBA) {
	if image.Pt(x, y).In(dst.Bounds()) {
		dst.SetRGBA(x, y, col)
	}
}

func drawLabel(dst *image.RGBA, x, y int, text string, col color.RGBA) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

package raster

import (
	"image"
	"sort"
)

// DefaultMinLineLength is the minimum pixel length of a detected border
// segment.
const DefaultMinLineLength = 30

// DetectBorders isolates horizontal and vertical ruling lines with
// morphological opening using elongated kernels, then reduces each surviving
// component to a one-dimensional segment through its midline. Horizontal
// segments come back sorted by y, vertical segments by x.
func DetectBorders(gray *image.Gray, minLineLength int) Borders {
	binary := BinaryInv(gray, 200)

	horizontal := Open(binary, minLineLength, 1)
	vertical := Open(binary, 1, minLineLength)

	var borders Borders
	for _, c := range FindContours(horizontal) {
		if c.Rect.Dx() > minLineLength {
			borders.Horizontal = append(borders.Horizontal, HLine{
				Y:  c.Rect.Min.Y + c.Rect.Dy()/2,
				X0: c.Rect.Min.X,
				X1: c.Rect.Max.X,
			})
		}
	}
	for _, c := range FindContours(vertical) {
		if c.Rect.Dy() > minLineLength {
			borders.Vertical = append(borders.Vertical, VLine{
				X:  c.Rect.Min.X + c.Rect.Dx()/2,
				Y0: c.Rect.Min.Y,
				Y1: c.Rect.Max.Y,
			})
		}
	}

	sort.Slice(borders.Horizontal, func(i, j int) bool {
		return borders.Horizontal[i].Y < borders.Horizontal[j].Y
	})
	sort.Slice(borders.Vertical, func(i, j int) bool {
		return borders.Vertical[i].X < borders.Vertical[j].X
	})

	return borders
}

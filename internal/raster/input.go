package raster

import (
	"image"

	"github.com/pagelens/pagelens/internal/geom"
)

// InputBoxConfig bounds the pixel geometry of candidate input boxes at
// 72 DPI. The detector scales the limits for higher resolutions.
type InputBoxConfig struct {
	MinWidth  int
	MinHeight int
	MaxHeight int
}

// DefaultInputBoxConfig returns the size window for 72 DPI rasters.
func DefaultInputBoxConfig() InputBoxConfig {
	return InputBoxConfig{MinWidth: 50, MinHeight: 12, MaxHeight: 40}
}

// DetectInputBoxes finds wide, short bordered rectangles: the free-text entry
// fields of a form. Edges are extracted first, dilated to bridge broken
// border strokes, and the resulting components filtered by aspect ratio and
// rectangularity. Confidence is the extent (contour area over bounding area).
func DetectInputBoxes(gray *image.Gray, cfg InputBoxConfig) []Control {
	edges := EdgeMap(gray, 50, 150)
	dilated := Dilate(edges, 2, 2)

	var boxes []Control
	for _, contour := range FindContours(dilated) {
		w := contour.Rect.Dx()
		h := contour.Rect.Dy()

		if w < cfg.MinWidth || h < cfg.MinHeight || h > cfg.MaxHeight {
			continue
		}
		if h == 0 || float64(w)/float64(h) < 2 {
			continue
		}

		perimeter := ArcLength(contour.Points)
		area := ContourArea(contour.Points)
		if area < 100 {
			continue
		}

		approx := ApproxPoly(contour.Points, 0.02*perimeter)
		if len(approx) < 4 || len(approx) > 8 {
			continue
		}

		extent := area / float64(w*h)
		if extent <= 0.3 {
			continue
		}

		x, y := contour.Rect.Min.X, contour.Rect.Min.Y
		boxes = append(boxes, Control{
			Type:       ControlInput,
			BBox:       geom.BBox{X0: float64(x), Y0: float64(y), X1: float64(x + w), Y1: float64(y + h)},
			Confidence: geom.Round2(extent),
		})
	}

	return RemoveOverlapping(boxes, 0.5)
}

// EdgeMap produces a binary edge image from gradient magnitudes with
// hysteresis: pixels above high are edges, pixels above low survive only
// when 8-connected to an edge.
func EdgeMap(gray *image.Gray, low, high float64) *image.Gray {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	if w < 3 || h < 3 {
		return out
	}

	_, _, mag := sobel(gray)

	// Strong edges seed a flood into connected weak edges.
	var stack []Point
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if mag[y*w+x] >= high {
				out.SetGray(x, y, grayOn)
				stack = append(stack, Point{x, y})
			}
		}
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := p.X+dx, p.Y+dy
				if nx < 1 || ny < 1 || nx >= w-1 || ny >= h-1 {
					continue
				}
				if out.GrayAt(nx, ny).Y == 0 && mag[ny*w+nx] >= low {
					out.SetGray(nx, ny, grayOn)
					stack = append(stack, Point{nx, ny})
				}
			}
		}
	}

	return out
}

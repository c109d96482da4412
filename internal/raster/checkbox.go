package raster

import (
	"image"

	"github.com/pagelens/pagelens/internal/geom"
)

// CheckboxConfig bounds the pixel size of candidate checkboxes. Sizes are at
// 72 DPI and scaled by the detector for higher resolutions.
type CheckboxConfig struct {
	MinSize int
	MaxSize int
}

// DefaultCheckboxConfig returns the size window for 72 DPI rasters.
func DefaultCheckboxConfig() CheckboxConfig {
	return CheckboxConfig{MinSize: 8, MaxSize: 30}
}

// DetectCheckboxes finds small square bordered shapes in the binary image and
// classifies each as checked or unchecked by the darkness of its interior.
// Overlapping detections are collapsed keeping the higher-confidence one.
func DetectCheckboxes(gray, binary *image.Gray, cfg CheckboxConfig) []Control {
	var checkboxes []Control

	for _, contour := range FindContours(binary) {
		w := contour.Rect.Dx()
		h := contour.Rect.Dy()

		if w < cfg.MinSize || h < cfg.MinSize || w > cfg.MaxSize || h > cfg.MaxSize {
			continue
		}

		if h == 0 {
			continue
		}
		aspect := float64(w) / float64(h)
		if aspect < 0.7 || aspect > 1.4 {
			continue
		}

		epsilon := 0.02 * ArcLength(contour.Points)
		approx := ApproxPoly(contour.Points, epsilon)
		if len(approx) < 4 || len(approx) > 8 {
			continue
		}

		x, y := contour.Rect.Min.X, contour.Rect.Min.Y
		borderWidth := minInt(w, h) / 4
		if borderWidth < 2 {
			borderWidth = 2
		}
		if w <= 2*borderWidth || h <= 2*borderWidth {
			continue
		}

		centerMean := meanRegion(gray,
			x+borderWidth, y+borderWidth, x+w-borderWidth, y+h-borderWidth)

		// Mean of the four edge rows/columns of the ROI.
		edgeMean := (meanRegion(gray, x, y, x+w, y+1) +
			meanRegion(gray, x, y+h-1, x+w, y+h) +
			meanRegion(gray, x, y, x+1, y+h) +
			meanRegion(gray, x+w-1, y, x+w, y+h)) / 4

		// The border must be darker than the interior, otherwise this is
		// a filled blob rather than a drawn box.
		if edgeMean >= centerMean+30 {
			continue
		}

		checkboxes = append(checkboxes, Control{
			Type:       ControlCheckbox,
			BBox:       geom.BBox{X0: float64(x), Y0: float64(y), X1: float64(x + w), Y1: float64(y + h)},
			Checked:    boolPtr(centerMean < 220),
			Confidence: 0.7,
		})
	}

	return RemoveOverlapping(checkboxes, 0.3)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

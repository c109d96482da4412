package page

import (
	"math"

	"github.com/pagelens/pagelens/internal/geom"
	"github.com/pagelens/pagelens/internal/layout"
	"github.com/pagelens/pagelens/internal/raster"
)

// minControlSizePt is the smallest credible form control. Smaller detections
// are glyph artifacts.
const minControlSizePt = 10.0

// leftMarginFraction of page width below which an x-aligned run of controls
// is treated as a bullet column rather than a form grid.
const leftMarginFraction = 0.05

// FilterValidControls removes detections that are not real form controls:
// anything under 10pt, marks embedded inside a text block, and bullet-like
// shapes hugging the left margin with no label to their left.
//
// When three or more size-passing controls align on a grid the page clearly
// is a form, so only the inside-text check applies; forms with icon columns
// would otherwise lose their controls to the bullet heuristic.
func FilterValidControls(raw []raster.Control, blocks []layout.Block, scaleFactor, pageWidth float64) []raster.Control {
	var sizeValid []raster.Control
	for _, c := range raw {
		if c.BBox.Width()/scaleFactor >= minControlSizePt &&
			c.BBox.Height()/scaleFactor >= minControlSizePt {
			sizeValid = append(sizeValid, c)
		}
	}

	gridAligned := controlsAligned(sizeValid, scaleFactor, pageWidth)

	var valid []raster.Control
	for _, c := range sizeValid {
		ctrlX := c.BBox.CenterX() / scaleFactor
		ctrlY := c.BBox.CenterY() / scaleFactor

		if insideTextBlock(ctrlX, ctrlY, blocks) {
			continue
		}
		if !gridAligned {
			bulletLike := ctrlX < pageWidth*leftMarginFraction &&
				!hasLabelToLeft(c, blocks, scaleFactor)
			if bulletLike {
				continue
			}
		}
		valid = append(valid, c)
	}
	return valid
}

// controlsAligned reports whether at least three controls share an x or y
// center (5pt buckets). X-alignment at the left margin is ignored because a
// column of bullets aligns there too.
func controlsAligned(controls []raster.Control, scaleFactor, pageWidth float64) bool {
	const minAligned = 3
	const tolerancePt = 5.0
	if len(controls) < minAligned {
		return false
	}

	leftMargin := pageWidth * leftMarginFraction

	xCounts := make(map[float64]int)
	yCounts := make(map[float64]int)
	for _, c := range controls {
		cx := c.BBox.CenterX() / scaleFactor
		cy := c.BBox.CenterY() / scaleFactor
		xCounts[math.Round(cx/tolerancePt)*tolerancePt]++
		yCounts[math.Round(cy/tolerancePt)*tolerancePt]++
	}

	for x, count := range xCounts {
		if x >= leftMargin && count >= minAligned {
			return true
		}
	}
	for _, count := range yCounts {
		if count >= minAligned {
			return true
		}
	}
	return false
}

func insideTextBlock(ctrlX, ctrlY float64, blocks []layout.Block) bool {
	for _, b := range blocks {
		if ctrlX >= b.BBox.X0-5 && ctrlX <= b.BBox.X1+5 &&
			ctrlY >= b.BBox.Y0-2 && ctrlY <= b.BBox.Y1+2 {
			return true
		}
	}
	return false
}

// hasLabelToLeft reports whether some text block sits on the control's row
// within 50pt to its left. Real form controls have labels; bullets do not.
func hasLabelToLeft(c raster.Control, blocks []layout.Block, scaleFactor float64) bool {
	const maxGapPt = 50.0
	ctrlX0 := c.BBox.X0 / scaleFactor
	ctrlYCenter := c.BBox.CenterY() / scaleFactor

	for _, b := range blocks {
		if math.Abs(b.BBox.CenterY()-ctrlYCenter) > 10 {
			continue
		}
		if b.BBox.X1 < ctrlX0 && ctrlX0-b.BBox.X1 <= maxGapPt {
			return true
		}
	}
	return false
}

// ComputeControlFeatures returns the raw geometric features of a control in
// both pixel and point units. Kept descriptive rather than classified so a
// downstream consumer can interpret size in context.
func ComputeControlFeatures(c raster.Control, scaleFactor float64) *raster.ControlFeatures {
	w := c.BBox.Width()
	h := c.BBox.Height()
	aspect := 1.0
	if h > 0 {
		aspect = geom.Round2(w / h)
	}
	return &raster.ControlFeatures{
		WidthPx:     w,
		HeightPx:    h,
		AspectRatio: aspect,
		WidthPt:     math.Round(w/scaleFactor*10) / 10,
		HeightPt:    math.Round(h/scaleFactor*10) / 10,
	}
}

// MapControlsToBlocks attaches each control's document-space box and, when a
// text block ends just left of the control on the same row, the nearest such
// block as its label.
func MapControlsToBlocks(controls []raster.Control, blocks []layout.Block, scaleFactor float64) []raster.Control {
	mapped := make([]raster.Control, 0, len(controls))

	for _, c := range controls {
		pdfBox := c.BBox.Scale(1 / scaleFactor).Round()
		c.PDFBBox = &pdfBox

		bestDist := math.Inf(1)
		var best *layout.Block
		for i := range blocks {
			b := &blocks[i]
			if b.BBox.X1 < pdfBox.X0+20 && math.Abs(b.BBox.Y0-pdfBox.Y0) < 15 {
				dist := pdfBox.X0 - b.BBox.X1
				if dist > 0 && dist < bestDist {
					bestDist = dist
					best = b
				}
			}
		}
		if best != nil {
			id := best.ID
			c.LabelBlockID = &id
			c.LabelText = best.Text
		}

		mapped = append(mapped, c)
	}

	return mapped
}

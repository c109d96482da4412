// Package page fuses text layout, detected controls and table structure into
// a single structural record for one document page, and classifies the page
// to pick the processing pipeline.
package page

import (
	"math"

	"github.com/pagelens/pagelens/internal/layout"
)

// PageType selects the processing pipeline for a page.
type PageType string

const (
	// PageTypeForm gets full processing: row grouping, grids and control
	// mapping.
	PageTypeForm PageType = "form"
	// PageTypeTable marks pages dominated by ruled table structure.
	PageTypeTable PageType = "table"
	// PageTypeText gets paragraph-level output only.
	PageTypeText PageType = "text"
)

// Signals are the measured layout features the classifier decided on. They
// are kept in the output so a consumer can audit the decision.
type Signals struct {
	ControlCount   int     `json:"control_count"`
	ColumnCount    int     `json:"column_count"`
	TextDensity    float64 `json:"text_density"`
	AvgWidthRatio  float64 `json:"avg_width_ratio"`
	AlignmentScore float64 `json:"alignment_score"`
	BlockCount     int     `json:"block_count"`
}

// Classification is the page type decision with its supporting signals.
type Classification struct {
	PageType PageType `json:"page_type"`
	Signals  Signals  `json:"signals"`
	Reason   string   `json:"reason"`
}

// Classify decides the page type from layout features, in strict priority
// order: control presence beats density checks beats alignment. The default
// is form because over-processing a text page is recoverable downstream
// while under-processing a form is not.
func Classify(blocks []layout.Block, columns []float64, pageWidth, pageHeight float64, controlCount int) Classification {
	if len(blocks) == 0 {
		return Classification{PageType: PageTypeText, Reason: "no blocks"}
	}

	pageArea := pageWidth * pageHeight
	hasControls := controlCount > 0

	columnCount := 1
	if len(columns) > 0 {
		// Count x-positions (10pt buckets) used by at least 3 blocks, then
		// divide by 3 for a rough column estimate.
		usage := make(map[float64]int)
		for _, b := range blocks {
			usage[math.Round(b.BBox.X0/10)*10]++
		}
		significant := 0
		for _, count := range usage {
			if count >= 3 {
				significant++
			}
		}
		columnCount = significant / 3
		if columnCount < 1 {
			columnCount = 1
		}
	}

	// Blocks per 100x100pt of page area.
	textDensity := 0.0
	if pageArea > 0 {
		textDensity = float64(len(blocks)) / (pageArea / 10000)
	}

	totalWidth := 0.0
	for _, b := range blocks {
		totalWidth += b.BBox.Width()
	}
	widthRatio := 0.0
	if pageWidth > 0 {
		widthRatio = totalWidth / float64(len(blocks)) / pageWidth
	}

	xCounts := make(map[float64]int)
	for _, b := range blocks {
		xCounts[math.Round(b.BBox.X0)]++
	}
	alignedBlocks := 0
	for _, count := range xCounts {
		if count >= 3 {
			alignedBlocks += count
		}
	}
	alignmentScore := float64(alignedBlocks) / float64(len(blocks))

	signals := Signals{
		ControlCount:   controlCount,
		ColumnCount:    columnCount,
		TextDensity:    round3(textDensity),
		AvgWidthRatio:  round3(widthRatio),
		AlignmentScore: round3(alignmentScore),
		BlockCount:     len(blocks),
	}

	classified := func(t PageType, reason string) Classification {
		return Classification{PageType: t, Signals: signals, Reason: reason}
	}

	// At least two controls, or bullets and letter shapes would trip this.
	if controlCount >= 2 {
		return classified(PageTypeForm, "has_controls")
	}
	if textDensity > 5 && !hasControls {
		return classified(PageTypeText, "high_density_no_controls")
	}
	if columnCount >= 2 && !hasControls {
		return classified(PageTypeText, "multi_column")
	}
	if alignmentScore > 0.4 && widthRatio < 0.6 && textDensity < 5 {
		return classified(PageTypeForm, "grid_alignment")
	}
	if widthRatio > 0.7 && textDensity > 0.5 {
		return classified(PageTypeText, "prose_layout")
	}
	return classified(PageTypeForm, "default")
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

package table

import (
	"sort"

	"github.com/pagelens/pagelens/internal/geom"
	"github.com/pagelens/pagelens/internal/raster"
)

// Page width fractions separating the coarse zones of a form-like table:
// left form area, right form area and far-right photo box.
const (
	leftBoundaryFraction = 0.45
	rightStartFraction   = 0.40
	photoStartFraction   = 0.75
)

// tableGapY is the vertical gap in pixels between horizontal lines that
// splits the page into distinct table regions.
const tableGapY = 60

// rowClusterGap is the maximum spacing between horizontal line positions
// merged into one row boundary.
const rowClusterGap = 25

// SegmentByGaps splits the page into vertical table regions wherever
// consecutive horizontal ruling lines are separated by more than minGap
// pixels. Returns the y extent of each region, top to bottom.
func SegmentByGaps(hLines []raster.HLine, minGap int) []YRange {
	if len(hLines) == 0 {
		return nil
	}

	ys := make([]int, len(hLines))
	for i, l := range hLines {
		ys[i] = l.Y
	}
	sort.Ints(ys)

	var regions []YRange
	start := ys[0]
	for i := 1; i < len(ys); i++ {
		if ys[i]-ys[i-1] > minGap {
			regions = append(regions, YRange{YStart: start, YEnd: ys[i-1]})
			start = ys[i]
		}
	}
	return append(regions, YRange{YStart: start, YEnd: ys[len(ys)-1]})
}

// DetectVisualSections identifies the semantic zones of each table region
// from its line structure: form sections on the left and right halves of the
// page and photo boxes extending to the far right. For photo boxes the
// rowspan is the number of row boundaries the box crosses. Returns nil when
// the page has no usable line structure.
func DetectVisualSections(hLines []raster.HLine, vLines []raster.VLine, pageWidth, pageHeight int) *VisualSections {
	if len(hLines) == 0 || len(vLines) == 0 {
		return nil
	}

	leftBoundary := float64(pageWidth) * leftBoundaryFraction
	rightStart := float64(pageWidth) * rightStartFraction
	photoStart := float64(pageWidth) * photoStartFraction

	var tables []VisualTable
	for regionIdx, r := range SegmentByGaps(hLines, tableGapY) {
		var regionLines []raster.HLine
		for _, l := range hLines {
			if l.Y >= r.YStart && l.Y <= r.YEnd {
				regionLines = append(regionLines, l)
			}
		}
		if len(regionLines) < 2 {
			continue
		}

		ys := uniqueYs(regionLines)
		rowBoundaries := clusterInts(ys, rowClusterGap)

		var leftLines, rightLines, photoLines []raster.HLine
		for _, l := range regionLines {
			switch {
			case float64(l.X1) < leftBoundary:
				leftLines = append(leftLines, l)
			case float64(l.X1) > photoStart:
				photoLines = append(photoLines, l)
			}
			if float64(l.X0) > rightStart && float64(l.X1) < photoStart {
				rightLines = append(rightLines, l)
			}
		}

		var sections []Section
		if len(leftLines) > 0 {
			sections = append(sections, Section{
				Type: SectionForm,
				Side: "left",
				BBox: hLinesBBox(leftLines),
			})
		}
		if len(rightLines) > 0 {
			sections = append(sections, Section{
				Type: SectionForm,
				Side: "right",
				BBox: hLinesBBox(rightLines),
			})
		}
		if len(photoLines) > 0 {
			bbox := hLinesBBox(photoLines)
			rowsInPhoto := 0
			for _, y := range rowBoundaries {
				if float64(y) >= bbox.Y0 && float64(y) <= bbox.Y1 {
					rowsInPhoto++
				}
			}
			rowspan := rowsInPhoto - 1
			if rowspan < 1 {
				rowspan = 1
			}
			sections = append(sections, Section{
				Type:    SectionPhoto,
				BBox:    bbox,
				RowSpan: rowspan,
			})
		}

		numRows := 0
		if len(rowBoundaries) > 1 {
			numRows = len(rowBoundaries) - 1
		}

		tables = append(tables, VisualTable{
			TableIndex:    regionIdx,
			Region:        r,
			Sections:      sections,
			RowBoundaries: rowBoundaries,
			NumRows:       numRows,
		})
	}

	return &VisualSections{Tables: tables, TotalTables: len(tables)}
}

func uniqueYs(lines []raster.HLine) []int {
	seen := make(map[int]struct{}, len(lines))
	var ys []int
	for _, l := range lines {
		if _, ok := seen[l.Y]; !ok {
			seen[l.Y] = struct{}{}
			ys = append(ys, l.Y)
		}
	}
	sort.Ints(ys)
	return ys
}

func hLinesBBox(lines []raster.HLine) geom.BBox {
	bbox := geom.BBox{
		X0: float64(lines[0].X0), Y0: float64(lines[0].Y),
		X1: float64(lines[0].X1), Y1: float64(lines[0].Y),
	}
	for _, l := range lines[1:] {
		if float64(l.X0) < bbox.X0 {
			bbox.X0 = float64(l.X0)
		}
		if float64(l.X1) > bbox.X1 {
			bbox.X1 = float64(l.X1)
		}
		if float64(l.Y) < bbox.Y0 {
			bbox.Y0 = float64(l.Y)
		}
		if float64(l.Y) > bbox.Y1 {
			bbox.Y1 = float64(l.Y)
		}
	}
	return bbox
}

package table

import (
	"sort"

	"github.com/pagelens/pagelens/internal/geom"
	"github.com/pagelens/pagelens/internal/raster"
)

// DefaultRegionTolerance is the clustering tolerance in pixels when grouping
// ruling lines into table regions.
const DefaultRegionTolerance = 10

// minXOverlap is the minimum fraction of the shorter line's span that two
// horizontal lines must share to belong to the same region.
const minXOverlap = 0.3

// FindRegions groups ruling lines into distinct table regions. Tables on a
// page often do not share a column structure, so horizontal lines are
// clustered by x-overlap first and vertical lines attached to each cluster's
// extent. A region needs at least two lines of each orientation. Regions are
// returned sorted top to bottom, then left to right.
func FindRegions(hLines []raster.HLine, vLines []raster.VLine, tolerance int) []Region {
	if len(hLines) == 0 || len(vLines) == 0 {
		return nil
	}

	used := make([]bool, len(hLines))
	var regions []Region

	for i, line := range hLines {
		if used[i] {
			continue
		}
		group := []raster.HLine{line}
		used[i] = true

		for j := i + 1; j < len(hLines); j++ {
			if used[j] {
				continue
			}
			for _, member := range group {
				if hLinesOverlapX(hLines[j], member) {
					group = append(group, hLines[j])
					used[j] = true
					break
				}
			}
		}

		if len(group) < 2 {
			continue
		}

		x0, x1 := group[0].X0, group[0].X1
		y0, y1 := group[0].Y, group[0].Y
		for _, l := range group[1:] {
			if l.X0 < x0 {
				x0 = l.X0
			}
			if l.X1 > x1 {
				x1 = l.X1
			}
			if l.Y < y0 {
				y0 = l.Y
			}
			if l.Y > y1 {
				y1 = l.Y
			}
		}

		var regionVLines []raster.VLine
		for _, v := range vLines {
			if v.X >= x0-tolerance && v.X <= x1+tolerance &&
				v.Y0 <= y1+tolerance && v.Y1 >= y0-tolerance {
				regionVLines = append(regionVLines, v)
			}
		}
		if len(regionVLines) < 2 {
			continue
		}

		regions = append(regions, Region{
			BBox:   geom.BBox{X0: float64(x0), Y0: float64(y0), X1: float64(x1), Y1: float64(y1)},
			HLines: group,
			VLines: regionVLines,
		})
	}

	sort.SliceStable(regions, func(i, j int) bool {
		if regions[i].BBox.Y0 != regions[j].BBox.Y0 {
			return regions[i].BBox.Y0 < regions[j].BBox.Y0
		}
		return regions[i].BBox.X0 < regions[j].BBox.X0
	})

	return regions
}

func hLinesOverlapX(a, b raster.HLine) bool {
	x0 := a.X0
	if b.X0 > x0 {
		x0 = b.X0
	}
	x1 := a.X1
	if b.X1 < x1 {
		x1 = b.X1
	}
	if x1 <= x0 {
		return false
	}
	spanA := a.X1 - a.X0
	spanB := b.X1 - b.X0
	shorter := spanA
	if spanB < shorter {
		shorter = spanB
	}
	if shorter <= 0 {
		return false
	}
	return float64(x1-x0)/float64(shorter) >= minXOverlap
}

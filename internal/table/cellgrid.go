package table

import (
	"sort"

	"github.com/pagelens/pagelens/internal/geom"
	"github.com/pagelens/pagelens/internal/raster"
)

// BuildCellGrid builds an explicit cell grid from the intersections of the
// given ruling lines. Nearby line positions are clustered so slightly wavy
// scans still produce one boundary. Returns nil when the lines cannot form
// at least one cell.
func BuildCellGrid(hLines []raster.HLine, vLines []raster.VLine, tolerance int) *CellGrid {
	if len(hLines) == 0 || len(vLines) == 0 {
		return nil
	}

	yPositions := make([]int, len(hLines))
	for i, l := range hLines {
		yPositions[i] = l.Y
	}
	xPositions := make([]int, len(vLines))
	for i, l := range vLines {
		xPositions[i] = l.X
	}

	rowBoundaries := clusterInts(yPositions, tolerance)
	colBoundaries := clusterInts(xPositions, tolerance)
	if len(rowBoundaries) < 2 || len(colBoundaries) < 2 {
		return nil
	}

	cells := make([][]*Cell, len(rowBoundaries)-1)
	for rowIdx := range cells {
		y0 := rowBoundaries[rowIdx]
		y1 := rowBoundaries[rowIdx+1]
		row := make([]*Cell, len(colBoundaries)-1)
		for colIdx := range row {
			row[colIdx] = &Cell{
				Row: rowIdx,
				Col: colIdx,
				BBox: geom.BBox{
					X0: float64(colBoundaries[colIdx]),
					Y0: float64(y0),
					X1: float64(colBoundaries[colIdx+1]),
					Y1: float64(y1),
				},
			}
		}
		cells[rowIdx] = row
	}

	return &CellGrid{
		RowBoundaries: rowBoundaries,
		ColBoundaries: colBoundaries,
		NumRows:       len(rowBoundaries) - 1,
		NumCols:       len(colBoundaries) - 1,
		Cells:         cells,
	}
}

// BuildTableGrids builds one cell grid per detected table region, instead of
// a single page-wide grid that would smear unrelated tables together.
func BuildTableGrids(hLines []raster.HLine, vLines []raster.VLine, tolerance int) []*CellGrid {
	var grids []*CellGrid
	for _, region := range FindRegions(hLines, vLines, tolerance) {
		grid := BuildCellGrid(region.HLines, region.VLines, tolerance)
		if grid != nil {
			bbox := region.BBox
			grid.RegionBBox = &bbox
			grids = append(grids, grid)
		}
	}
	return grids
}

// clusterInts groups sorted positions whose neighbor gap is within tolerance
// and returns each group's mean as the canonical position.
func clusterInts(positions []int, tolerance int) []int {
	if len(positions) == 0 {
		return nil
	}
	sorted := make([]int, len(positions))
	copy(sorted, positions)
	sort.Ints(sorted)

	var result []int
	sum, count, last := sorted[0], 1, sorted[0]
	for _, pos := range sorted[1:] {
		if pos-last <= tolerance {
			sum += pos
			count++
		} else {
			result = append(result, sum/count)
			sum, count = pos, 1
		}
		last = pos
	}
	return append(result, sum/count)
}

package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelens/pagelens/internal/geom"
	"github.com/pagelens/pagelens/internal/raster"
)

func threeByTwoLines() ([]raster.HLine, []raster.VLine) {
	hLines := []raster.HLine{
		{Y: 100, X0: 50, X1: 350},
		{Y: 150, X0: 50, X1: 350},
		{Y: 200, X0: 50, X1: 350},
		{Y: 250, X0: 50, X1: 350},
	}
	vLines := []raster.VLine{
		{X: 50, Y0: 100, Y1: 250},
		{X: 200, Y0: 100, Y1: 250},
		{X: 350, Y0: 100, Y1: 250},
	}
	return hLines, vLines
}

func TestBuildCellGrid(t *testing.T) {
	hLines, vLines := threeByTwoLines()

	grid := BuildCellGrid(hLines, vLines, 10)

	require.NotNil(t, grid)
	assert.Equal(t, 3, grid.NumRows)
	assert.Equal(t, 2, grid.NumCols)
	assert.Equal(t, []int{100, 150, 200, 250}, grid.RowBoundaries)
	assert.Equal(t, []int{50, 200, 350}, grid.ColBoundaries)

	cell := grid.Cells[1][1]
	assert.Equal(t, 1, cell.Row)
	assert.Equal(t, 1, cell.Col)
	assert.Equal(t, geom.BBox{X0: 200, Y0: 150, X1: 350, Y1: 200}, cell.BBox)
}

func TestBuildCellGridClustersJitteryLines(t *testing.T) {
	hLines := []raster.HLine{
		{Y: 100, X0: 0, X1: 300},
		{Y: 104, X0: 0, X1: 300}, // same boundary, a few px off
		{Y: 200, X0: 0, X1: 300},
	}
	vLines := []raster.VLine{
		{X: 0, Y0: 100, Y1: 200},
		{X: 300, Y0: 100, Y1: 200},
	}

	grid := BuildCellGrid(hLines, vLines, 10)

	require.NotNil(t, grid)
	assert.Equal(t, 1, grid.NumRows)
	assert.Equal(t, []int{102, 200}, grid.RowBoundaries)
}

func TestBuildCellGridDegenerate(t *testing.T) {
	assert.Nil(t, BuildCellGrid(nil, nil, 10))

	// All lines collapse to one boundary: no cells.
	hLines := []raster.HLine{{Y: 100, X0: 0, X1: 300}, {Y: 102, X0: 0, X1: 300}}
	vLines := []raster.VLine{{X: 0, Y0: 0, Y1: 200}, {X: 300, Y0: 0, Y1: 200}}
	assert.Nil(t, BuildCellGrid(hLines, vLines[:1], 10))
	assert.Nil(t, BuildCellGrid(hLines, vLines, 10))
}

func TestBuildTableGrids(t *testing.T) {
	hLines, vLines := threeByTwoLines()

	grids := BuildTableGrids(hLines, vLines, 10)

	require.Len(t, grids, 1)
	require.NotNil(t, grids[0].RegionBBox)
	assert.Equal(t, 50.0, grids[0].RegionBBox.X0)
	assert.Equal(t, 3, grids[0].NumRows)
}

func TestClusterInts(t *testing.T) {
	assert.Nil(t, clusterInts(nil, 5))
	assert.Equal(t, []int{101, 200}, clusterInts([]int{100, 103, 200}, 5))
	// Chained positions merge into one cluster.
	assert.Equal(t, []int{104}, clusterInts([]int{100, 104, 108}, 5))
}

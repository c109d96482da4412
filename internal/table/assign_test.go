package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelens/pagelens/internal/geom"
	"github.com/pagelens/pagelens/internal/layout"
)

func TestAssignBlocks(t *testing.T) {
	hLines, vLines := threeByTwoLines()
	grid := BuildCellGrid(hLines, vLines, 10)
	require.NotNil(t, grid)

	// Document-space blocks at half scale: pixel grid runs 50..350, so a
	// block centered at (60, 62.5) maps to pixel (120, 125), cell (0, 0).
	blocks := []*layout.Block{
		{ID: 0, Text: "top left", BBox: geom.BBox{X0: 50, Y0: 55, X1: 70, Y1: 70}},
		{ID: 1, Text: "bottom right", BBox: geom.BBox{X0: 130, Y0: 105, X1: 150, Y1: 120}},
		{ID: 2, Text: "outside", BBox: geom.BBox{X0: 400, Y0: 400, X1: 420, Y1: 420}},
	}

	AssignBlocks(grid, blocks, 2.0)

	require.Len(t, grid.Cells[0][0].Content, 1)
	assert.Equal(t, "top left", grid.Cells[0][0].Content[0].Text)

	require.Len(t, grid.Cells[2][1].Content, 1)
	assert.Equal(t, "bottom right", grid.Cells[2][1].Content[0].Text)

	for _, row := range grid.Cells {
		for _, cell := range row {
			for _, b := range cell.Content {
				assert.NotEqual(t, "outside", b.Text)
			}
		}
	}
}

func TestAssignBlocksNilGrid(t *testing.T) {
	// Must not panic.
	AssignBlocks(nil, []*layout.Block{{}}, 1.0)
}

func TestAssignBlocksFirstMatchingCellWins(t *testing.T) {
	hLines, vLines := threeByTwoLines()
	grid := BuildCellGrid(hLines, vLines, 10)
	require.NotNil(t, grid)

	// Center exactly on the shared boundary at pixel x=200: both cells of the
	// row contain it, only the first gets the block.
	b := &layout.Block{Text: "on boundary", BBox: geom.BBox{X0: 190, Y0: 120, X1: 210, Y1: 130}}
	AssignBlocks(grid, []*layout.Block{b}, 1.0)

	assert.Len(t, grid.Cells[0][0].Content, 1)
	assert.Empty(t, grid.Cells[0][1].Content)
}

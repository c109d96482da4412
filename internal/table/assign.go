package table

import "github.com/pagelens/pagelens/internal/layout"

// AssignBlocks places text blocks into grid cells. Block coordinates are in
// document points and get multiplied by scaleFactor to match the pixel grid;
// a block lands in the first cell containing its scaled center.
func AssignBlocks(grid *CellGrid, blocks []*layout.Block, scaleFactor float64) {
	if grid == nil || len(blocks) == 0 {
		return
	}

	for _, block := range blocks {
		centerX := block.BBox.CenterX() * scaleFactor
		centerY := block.BBox.CenterY() * scaleFactor

	cells:
		for _, row := range grid.Cells {
			for _, cell := range row {
				if cell.BBox.Contains(centerX, centerY) {
					cell.Content = append(cell.Content, block)
					break cells
				}
			}
		}
	}
}

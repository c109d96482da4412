package table

// DetectSpans infers rowspan and colspan from grid content. A populated cell
// absorbs the run of empty cells below it into a rowspan and the run of
// empty cells to its right into a colspan; absorbed cells produce no span of
// their own. Empty cells outside any span are reported as 1x1 empty spans so
// the output covers the whole grid.
func DetectSpans(grid *CellGrid) []Span {
	if grid == nil {
		return nil
	}

	numRows := len(grid.Cells)
	if numRows == 0 {
		return nil
	}
	numCols := len(grid.Cells[0])

	consumed := make([][]bool, numRows)
	for i := range consumed {
		consumed[i] = make([]bool, numCols)
	}

	var spans []Span
	for rowIdx := 0; rowIdx < numRows; rowIdx++ {
		for colIdx := 0; colIdx < numCols; colIdx++ {
			if consumed[rowIdx][colIdx] {
				continue
			}
			cell := grid.Cells[rowIdx][colIdx]

			rowSpan, colSpan := 1, 1
			if len(cell.Content) > 0 {
				for r := rowIdx + 1; r < numRows; r++ {
					if len(grid.Cells[r][colIdx].Content) > 0 {
						break
					}
					rowSpan++
				}
				for c := colIdx + 1; c < numCols; c++ {
					if len(grid.Cells[rowIdx][c].Content) > 0 {
						break
					}
					colSpan++
				}
			}

			for r := rowIdx; r < rowIdx+rowSpan; r++ {
				for c := colIdx; c < colIdx+colSpan; c++ {
					consumed[r][c] = true
				}
			}

			spans = append(spans, Span{
				Row:     rowIdx,
				Col:     colIdx,
				RowSpan: rowSpan,
				ColSpan: colSpan,
				Content: cell.Content,
				BBox:    cell.BBox,
				IsEmpty: len(cell.Content) == 0,
			})
		}
	}

	return spans
}

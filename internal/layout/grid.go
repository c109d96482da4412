package layout

import "github.com/pagelens/pagelens/internal/geom"

// GridTolerance is the clustering tolerance for column boundaries, in
// document points. Nearby x positions within this distance collapse into one
// canonical boundary, preventing micro-columns from extraction jitter.
const GridTolerance = 15.0

// InferGridColumns derives the canonical column boundaries for a row group
// from the union of every block's x0 and x1 across every row. Column
// structure is a property of the group, not any single row: sparse rows
// still align to the shared grid.
func InferGridColumns(rows []Row, tolerance float64) []ColumnBounds {
	var allX []float64
	for _, row := range rows {
		for _, b := range row.Blocks {
			allX = append(allX, b.BBox.X0, b.BBox.X1)
		}
	}
	if len(allX) == 0 {
		return nil
	}

	boundaries := geom.ClusterPositions(allX, tolerance)
	if len(boundaries) < 2 {
		return nil
	}

	columns := make([]ColumnBounds, len(boundaries)-1)
	for i := range columns {
		columns[i] = ColumnBounds{X0: boundaries[i], X1: boundaries[i+1]}
	}
	return columns
}

// MapRowToGrid re-expresses a row as a fixed-length cell array on the given
// columns. A block is placed only in the first column it overlaps; the other
// columns it spans stay nil, reserved for a later colspan pass. A block is
// never duplicated into multiple cells.
func MapRowToGrid(row Row, columns []ColumnBounds) []*Block {
	if len(columns) == 0 {
		return nil
	}

	cells := make([]*Block, len(columns))

	for i := range row.Blocks {
		block := &row.Blocks[i]
		for col, bounds := range columns {
			if block.BBox.X0 < bounds.X1 && block.BBox.X1 > bounds.X0 {
				cells[col] = block
				break
			}
		}
	}

	return cells
}

// BuildGrid applies grid inference to one row group. Returns nil when the
// group's rows carry no usable x boundaries.
func BuildGrid(rows []Row, rowIndices []int) *Grid {
	if len(rowIndices) == 0 {
		return nil
	}

	groupRows := make([]Row, 0, len(rowIndices))
	for _, idx := range rowIndices {
		if idx >= 0 && idx < len(rows) {
			groupRows = append(groupRows, rows[idx])
		}
	}
	if len(groupRows) == 0 {
		return nil
	}

	columns := InferGridColumns(groupRows, GridTolerance)
	if len(columns) == 0 {
		return nil
	}

	rounded := make([]ColumnBounds, len(columns))
	for i, c := range columns {
		rounded[i] = ColumnBounds{X0: geom.Round2(c.X0), X1: geom.Round2(c.X1)}
	}

	gridRows := make([]GridRow, len(groupRows))
	for i, row := range groupRows {
		gridRows[i] = GridRow{
			YMin:  row.YMin,
			YMax:  row.YMax,
			Type:  row.Type,
			Cells: MapRowToGrid(row, columns),
		}
	}

	return &Grid{
		Columns:          len(columns),
		ColumnBoundaries: rounded,
		Rows:             gridRows,
	}
}

// DetectColumns clusters the left edges of all blocks across rows, giving
// the page-level column x positions used by the page classifier.
func DetectColumns(rows []Row, xTolerance float64) []float64 {
	var xs []float64
	for _, row := range rows {
		for _, b := range row.Blocks {
			xs = append(xs, b.BBox.X0)
		}
	}
	if len(xs) == 0 {
		return []float64{}
	}

	centers := geom.ClusterPositions(xs, xTolerance)
	out := make([]float64, len(centers))
	for i, c := range centers {
		out[i] = geom.Round2(c)
	}
	return out
}

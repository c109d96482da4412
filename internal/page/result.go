package page

import (
	"github.com/pagelens/pagelens/internal/layout"
	"github.com/pagelens/pagelens/internal/raster"
	"github.com/pagelens/pagelens/internal/table"
)

// Dimensions are the page size in document points.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TextSection carries the text layout analysis of the page. Rows and
// RowGroups are nil on text pages, where row-level analysis is skipped.
type TextSection struct {
	Blocks    []layout.Block    `json:"blocks"`
	Rows      []layout.Row      `json:"rows"`
	RowSource layout.RowSource  `json:"row_source,omitempty"`
	RowGroups []layout.RowGroup `json:"row_groups"`
	Columns   []float64         `json:"columns"`
	Stats     layout.Stats      `json:"stats"`
}

// ControlSection carries the validated form controls with the factor
// converting their raster pixels to document points.
type ControlSection struct {
	Items       []raster.Control `json:"items"`
	ScaleFactor float64          `json:"scale_factor"`
}

// TableStructure is one reconstructed table: its explicit cell grid and the
// logical spans inferred from cell occupancy.
type TableStructure struct {
	Grid  *table.CellGrid `json:"grid"`
	Spans []table.Span    `json:"spans"`
}

// Summary gives a consumer the page's shape at a glance without walking the
// full record.
type Summary struct {
	TotalBlocks    int                    `json:"total_blocks"`
	TotalRows      int                    `json:"total_rows"`
	TotalRowGroups int                    `json:"total_row_groups"`
	TotalControls  int                    `json:"total_controls"`
	VisualTables   int                    `json:"visual_tables"`
	RowTypes       map[layout.RowType]int `json:"row_types"`
	Note           string                 `json:"note,omitempty"`
}

// Result is the unified structural record of one page: text layout, form
// controls, table structure and the classification that selected the
// pipeline. When Error is set all other fields except Source and PageNumber
// are zero.
type Result struct {
	Source         string                `json:"source"`
	PageNumber     int                   `json:"page_number"`
	PageType       PageType              `json:"page_type,omitempty"`
	Classification *Classification       `json:"classification,omitempty"`
	Dimensions     *Dimensions           `json:"dimensions,omitempty"`
	Text           *TextSection          `json:"text,omitempty"`
	Controls       *ControlSection       `json:"controls,omitempty"`
	TableBorders   *raster.Borders       `json:"table_borders,omitempty"`
	Tables         []TableStructure      `json:"tables,omitempty"`
	VisualSections *table.VisualSections `json:"visual_sections,omitempty"`
	Summary        *Summary              `json:"summary,omitempty"`
	DebugImage     string                `json:"debug_image,omitempty"`
	Error          string                `json:"error,omitempty"`
}

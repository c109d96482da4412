// Package table reconstructs tabular structure from the ruling lines found
// on a page raster: distinct table regions, explicit cell grids, text
// assignment, span inference and coarse visual sections.
package table

import (
	"github.com/pagelens/pagelens/internal/geom"
	"github.com/pagelens/pagelens/internal/layout"
	"github.com/pagelens/pagelens/internal/raster"
)

// Cell is one slot of a reconstructed table grid. Coordinates are in raster
// pixels. Content holds the text blocks whose scaled centers fall inside it.
type Cell struct {
	Row     int             `json:"row"`
	Col     int             `json:"col"`
	BBox    geom.BBox       `json:"bbox"`
	Content []*layout.Block `json:"content,omitempty"`
}

// CellGrid is the explicit cell structure of one table region.
type CellGrid struct {
	RowBoundaries []int      `json:"row_boundaries"`
	ColBoundaries []int      `json:"col_boundaries"`
	NumRows       int        `json:"num_rows"`
	NumCols       int        `json:"num_cols"`
	Cells         [][]*Cell  `json:"cells"`
	RegionBBox    *geom.BBox `json:"region_bbox,omitempty"`
}

// Span is one logical cell after rowspan/colspan inference. A span covers
// RowSpan x ColSpan grid slots anchored at (Row, Col).
type Span struct {
	Row     int             `json:"row"`
	Col     int             `json:"col"`
	RowSpan int             `json:"rowspan"`
	ColSpan int             `json:"colspan"`
	Content []*layout.Block `json:"content"`
	BBox    geom.BBox       `json:"bbox"`
	IsEmpty bool            `json:"is_empty"`
}

// Region groups the ruling lines belonging to one table on the page.
type Region struct {
	BBox   geom.BBox
	HLines []raster.HLine
	VLines []raster.VLine
}

// SectionType labels the coarse zones recognized inside a table region.
type SectionType string

const (
	SectionForm  SectionType = "form_section"
	SectionPhoto SectionType = "photo_box"
)

// Section is one coarse zone of a table region: a left or right form area,
// or a photo box spanning several rows on the far right.
type Section struct {
	Type    SectionType `json:"type"`
	Side    string      `json:"side,omitempty"`
	BBox    geom.BBox   `json:"bbox"`
	RowSpan int         `json:"rowspan,omitempty"`
}

// YRange is the vertical extent of one segmented table region.
type YRange struct {
	YStart int `json:"y_start"`
	YEnd   int `json:"y_end"`
}

// VisualTable summarizes the sections and row structure of one table region.
type VisualTable struct {
	TableIndex    int       `json:"table_index"`
	Region        YRange    `json:"region"`
	Sections      []Section `json:"sections"`
	RowBoundaries []int     `json:"row_boundaries"`
	NumRows       int       `json:"num_rows"`
}

// VisualSections is the page-level summary of all recognized table regions.
type VisualSections struct {
	Tables      []VisualTable `json:"tables"`
	TotalTables int           `json:"total_tables"`
}

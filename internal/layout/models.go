// Package layout assembles raw text spans into blocks, groups blocks into
// typed rows and row groups, and infers canonical column grids.
//
// All layout entities live in document space (points, origin top-left). The
// package is pure: it performs no I/O and every operation is a deterministic
// function of its inputs, so a page processed twice yields identical output.
package layout

import "github.com/pagelens/pagelens/internal/geom"

// Span is the smallest extracted text unit with its own font and bounding
// box. Spans are produced by the text extraction backend and never modified.
type Span struct {
	Text     string    `json:"text"`
	BBox     geom.BBox `json:"bbox"`
	LineY    float64   `json:"line_y"`
	FontName string    `json:"font_name"`
	FontSize float64   `json:"font_size"`
}

// Block is a merged run of spans forming one visual line or paragraph.
// ID is assigned only after the final (y0, x0) sort, so ids follow reading
// order.
type Block struct {
	ID       int       `json:"id"`
	Text     string    `json:"text"`
	BBox     geom.BBox `json:"bbox"`
	FontSize float64   `json:"font_size"`
	FontName string    `json:"font_name"`
	IsBold   bool      `json:"is_bold"`
}

// RowType labels the semantic shape of one row of blocks.
type RowType string

const (
	RowTypeEmpty        RowType = "empty"
	RowTypeHeader       RowType = "header"
	RowTypeParagraph    RowType = "paragraph"
	RowTypeLabel        RowType = "label"
	RowTypeLabelValue   RowType = "label-value"
	RowTypeLabelPair    RowType = "label-pair"
	RowTypeOptionRow    RowType = "option-row"
	RowTypeBulletItem   RowType = "bullet-item"
	RowTypeBulletList   RowType = "bullet-list"
	RowTypeNumberedItem RowType = "numbered-item"
	RowTypeMixed        RowType = "mixed"
)

// RowSource identifies which of the two independent row derivations produced
// a page's rows. Downstream logic branches on this, so it is an explicit tag
// rather than an optional field.
type RowSource string

const (
	// RowSourceVisualBand means rows came from the pixel projection bands of
	// the rendered page. Bands are authoritative when at least three are
	// found because they are immune to text extraction ordering noise.
	RowSourceVisualBand RowSource = "visual_bands"
	// RowSourceTextProximity means rows came from y-center grouping of the
	// text blocks, the fallback when too few bands exist.
	RowSourceTextProximity RowSource = "text_y_proximity"
)

// Row is a horizontal run of blocks sharing one vertical band. Blocks are
// referenced, not owned; they belong to the page.
type Row struct {
	Blocks []Block `json:"blocks"`
	YMin   float64 `json:"y_min"`
	YMax   float64 `json:"y_max"`
	Type   RowType `json:"type,omitempty"`
}

// GroupHint describes the layout shape a row group appears to form.
type GroupHint string

const (
	GroupHintGrid    GroupHint = "grid"
	GroupHintOptions GroupHint = "options"
	GroupHintList    GroupHint = "list"
	GroupHintStack   GroupHint = "stack"
	GroupHintUnknown GroupHint = "unknown"
)

// RowGroup is a maximal run of consecutive, pairwise compatible rows forming
// one logical layout unit. RowIndices points into the page's row slice.
type RowGroup struct {
	ID         string    `json:"id"`
	RowIndices []int     `json:"row_indices"`
	Hint       GroupHint `json:"hint"`
	RowCount   int       `json:"row_count"`
	Grid       *Grid     `json:"grid,omitempty"`
}

// ColumnBounds is one canonical column range of a grid.
type ColumnBounds struct {
	X0 float64 `json:"x0"`
	X1 float64 `json:"x1"`
}

// GridRow is one row re-expressed on the group's canonical grid. Cells has
// exactly one entry per grid column; a nil cell is an empty placeholder,
// reserved for later colspan resolution.
type GridRow struct {
	YMin  float64  `json:"y_min"`
	YMax  float64  `json:"y_max"`
	Type  RowType  `json:"type"`
	Cells []*Block `json:"cells"`
}

// Grid is the canonical column structure of a row group.
type Grid struct {
	Columns          int            `json:"columns"`
	ColumnBoundaries []ColumnBounds `json:"column_boundaries"`
	Rows             []GridRow      `json:"rows"`
}

// Stats summarizes the font distribution of a page's blocks, used by the row
// classifier for header detection.
type Stats struct {
	MedianFontSize float64 `json:"median_font_size"`
	MinFontSize    float64 `json:"min_font_size"`
	MaxFontSize    float64 `json:"max_font_size"`
	TotalBlocks    int     `json:"total_blocks"`
}

// Package raster performs pixel-level analysis of a rendered page image:
// binarization, visual row band estimation, form control detection, and
// border line detection. Everything in this package works in raster space
// (pixels at the rendering resolution); conversion to document space is the
// caller's concern.
package raster

import "github.com/pagelens/pagelens/internal/geom"

// ControlType identifies the kind of detected interactive element.
type ControlType string

const (
	ControlCheckbox ControlType = "checkbox"
	ControlRadio    ControlType = "radio"
	ControlInput    ControlType = "input"
)

// Point is a raster-space pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Control is one detected form control in raster space. Checked is set for
// checkboxes, Center/Radius/Selected for radio buttons; the other fields are
// nil for types they do not apply to.
type Control struct {
	Type       ControlType `json:"type"`
	BBox       geom.BBox   `json:"bbox"`
	Checked    *bool       `json:"checked,omitempty"`
	Center     *Point      `json:"center,omitempty"`
	Radius     int         `json:"radius,omitempty"`
	Selected   *bool       `json:"selected,omitempty"`
	Confidence float64     `json:"confidence"`

	// Fields attached after raster detection, by the validity filter.
	PDFBBox      *geom.BBox       `json:"pdf_bbox,omitempty"`
	Features     *ControlFeatures `json:"features,omitempty"`
	LabelBlockID *int             `json:"label_block_id,omitempty"`
	LabelText    string           `json:"label_text,omitempty"`
}

// ControlFeatures carries raw geometric features of a control. No semantic
// classification happens here; the downstream interpreter decides meaning.
type ControlFeatures struct {
	WidthPx     float64 `json:"width_px"`
	HeightPx    float64 `json:"height_px"`
	AspectRatio float64 `json:"aspect_ratio"`
	WidthPt     float64 `json:"width_pt"`
	HeightPt    float64 `json:"height_pt"`
}

// HLine is a detected horizontal border segment.
type HLine struct {
	Y  int `json:"y"`
	X0 int `json:"x0"`
	X1 int `json:"x1"`
}

// VLine is a detected vertical border segment.
type VLine struct {
	X  int `json:"x"`
	Y0 int `json:"y0"`
	Y1 int `json:"y1"`
}

// Borders holds all detected border line segments of a page, horizontal
// sorted by y and vertical sorted by x.
type Borders struct {
	Horizontal []HLine `json:"horizontal"`
	Vertical   []VLine `json:"vertical"`
}

// Band is a pixel-derived horizontal content region, independent of text.
type Band struct {
	Y0 int `json:"y0"`
	Y1 int `json:"y1"`
}

func boolPtr(v bool) *bool { return &v }

package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelens/pagelens/internal/geom"
	"github.com/pagelens/pagelens/internal/layout"
	"github.com/pagelens/pagelens/internal/raster"
)

// control builds a raster-space control; coordinates are pixels.
func control(x0, y0, x1, y1 float64) raster.Control {
	return raster.Control{
		Type:       raster.ControlCheckbox,
		BBox:       geom.BBox{X0: x0, Y0: y0, X1: x1, Y1: y1},
		Confidence: 0.7,
	}
}

func TestFilterValidControlsDropsTinyMarks(t *testing.T) {
	// 8x8px at scale 1 is under the 10pt minimum.
	raw := []raster.Control{control(100, 100, 108, 108)}
	valid := FilterValidControls(raw, nil, 1.0, 612)
	assert.Empty(t, valid)
}

func TestFilterValidControlsDropsMarksInsideText(t *testing.T) {
	raw := []raster.Control{control(100, 100, 114, 114)}
	blocks := []layout.Block{
		{Text: "some words", BBox: geom.BBox{X0: 80, Y0: 98, X1: 200, Y1: 115}},
	}
	valid := FilterValidControls(raw, blocks, 1.0, 612)
	assert.Empty(t, valid)
}

func TestFilterValidControlsDropsLeftMarginBullets(t *testing.T) {
	// Two controls hugging the left margin with no label to the left and no
	// grid alignment: bullet column.
	raw := []raster.Control{
		control(5, 100, 20, 115),
		control(5, 200, 20, 215),
	}
	valid := FilterValidControls(raw, nil, 1.0, 612)
	assert.Empty(t, valid)
}

func TestFilterValidControlsKeepsLabeledControl(t *testing.T) {
	raw := []raster.Control{control(200, 100, 215, 115)}
	blocks := []layout.Block{
		{ID: 0, Text: "Agree?", BBox: geom.BBox{X0: 120, Y0: 100, X1: 180, Y1: 114}},
	}
	valid := FilterValidControls(raw, blocks, 1.0, 612)
	require.Len(t, valid, 1)
}

func TestFilterValidControlsGridAlignmentSkipsBulletCheck(t *testing.T) {
	// Three controls sharing one x column away from the margin: grid aligned,
	// so even an unlabeled margin control passes the bullet filter.
	raw := []raster.Control{
		control(200, 100, 215, 115),
		control(200, 200, 215, 215),
		control(200, 300, 215, 315),
	}
	valid := FilterValidControls(raw, nil, 1.0, 612)
	assert.Len(t, valid, 3)
}

func TestFilterValidControlsScaledCoordinates(t *testing.T) {
	// 30px at scale 2 is 15pt: size passes only when divided by the scale.
	raw := []raster.Control{control(400, 200, 430, 230)}
	valid := FilterValidControls(raw, nil, 2.0, 612)
	assert.Len(t, valid, 1)
}

func TestComputeControlFeatures(t *testing.T) {
	c := control(100, 100, 130, 115)
	f := ComputeControlFeatures(c, 2.0)

	assert.Equal(t, 30.0, f.WidthPx)
	assert.Equal(t, 15.0, f.HeightPx)
	assert.Equal(t, 2.0, f.AspectRatio)
	assert.Equal(t, 15.0, f.WidthPt)
	assert.Equal(t, 7.5, f.HeightPt)
}

func TestComputeControlFeaturesZeroHeight(t *testing.T) {
	c := control(100, 100, 130, 100)
	f := ComputeControlFeatures(c, 1.0)
	assert.Equal(t, 1.0, f.AspectRatio)
}

func TestMapControlsToBlocks(t *testing.T) {
	controls := []raster.Control{control(400, 200, 430, 230)}
	blocks := []layout.Block{
		{ID: 0, Text: "far away", BBox: geom.BBox{X0: 10, Y0: 400, X1: 60, Y1: 414}},
		{ID: 1, Text: "Signature", BBox: geom.BBox{X0: 100, Y0: 102, X1: 180, Y1: 116}},
	}

	mapped := MapControlsToBlocks(controls, blocks, 2.0)

	require.Len(t, mapped, 1)
	m := mapped[0]
	require.NotNil(t, m.PDFBBox)
	assert.Equal(t, geom.BBox{X0: 200, Y0: 100, X1: 215, Y1: 115}, *m.PDFBBox)
	require.NotNil(t, m.LabelBlockID)
	assert.Equal(t, 1, *m.LabelBlockID)
	assert.Equal(t, "Signature", m.LabelText)
}

func TestMapControlsToBlocksNoLabel(t *testing.T) {
	controls := []raster.Control{control(400, 200, 430, 230)}
	blocks := []layout.Block{
		{ID: 0, Text: "below", BBox: geom.BBox{X0: 100, Y0: 300, X1: 180, Y1: 314}},
	}

	mapped := MapControlsToBlocks(controls, blocks, 2.0)

	require.Len(t, mapped, 1)
	assert.Nil(t, mapped[0].LabelBlockID)
	assert.Empty(t, mapped[0].LabelText)
}

func TestMapControlsToBlocksPicksNearestLabel(t *testing.T) {
	controls := []raster.Control{control(400, 200, 430, 230)}
	blocks := []layout.Block{
		{ID: 0, Text: "farther", BBox: geom.BBox{X0: 20, Y0: 101, X1: 80, Y1: 115}},
		{ID: 1, Text: "nearer", BBox: geom.BBox{X0: 120, Y0: 101, X1: 190, Y1: 115}},
	}

	mapped := MapControlsToBlocks(controls, blocks, 2.0)

	require.NotNil(t, mapped[0].LabelBlockID)
	assert.Equal(t, 1, *mapped[0].LabelBlockID)
}

package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanFormImage(t *testing.T) {
	gray := whiteGray(300, 200)
	outlineRect(gray, 20, 20, 38, 38, 2, 0)   // checkbox
	outlineRect(gray, 60, 100, 260, 124, 2, 0) // input field
	fillRect(gray, 20, 160, 280, 162, 0)       // ruling line

	result := Scan(gray, DefaultScanConfig(1.0))

	require.NotNil(t, result)
	assert.Equal(t, 300, result.Width)
	assert.Equal(t, 200, result.Height)
	assert.Equal(t, 1.0, result.ScaleFactor)
	assert.NotEmpty(t, result.Checkboxes)
	assert.NotEmpty(t, result.InputBoxes)
	assert.NotEmpty(t, result.Borders.Horizontal)
	assert.NotEmpty(t, result.RowBands)

	controls := result.Controls()
	assert.Len(t, controls, len(result.Checkboxes)+len(result.Radios)+len(result.InputBoxes))
}

func TestScanBlankImage(t *testing.T) {
	result := Scan(whiteGray(100, 100), DefaultScanConfig(1.0))

	assert.Empty(t, result.Checkboxes)
	assert.Empty(t, result.Radios)
	assert.Empty(t, result.InputBoxes)
	assert.Empty(t, result.RowBands)
	assert.Empty(t, result.Controls())
}

func TestScanZeroScaleDefaultsToOne(t *testing.T) {
	cfg := DefaultScanConfig(0)
	result := Scan(whiteGray(50, 50), cfg)
	assert.Equal(t, 1.0, result.ScaleFactor)
}

package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectBorders(t *testing.T) {
	gray := whiteGray(120, 120)
	fillRect(gray, 10, 60, 90, 62, 0)  // horizontal rule
	fillRect(gray, 100, 20, 102, 100, 0) // vertical rule

	borders := DetectBorders(gray, DefaultMinLineLength)

	require.Len(t, borders.Horizontal, 1)
	h := borders.Horizontal[0]
	assert.InDelta(t, 61, h.Y, 2)
	assert.InDelta(t, 10, h.X0, 2)
	assert.InDelta(t, 90, h.X1, 2)

	require.Len(t, borders.Vertical, 1)
	v := borders.Vertical[0]
	assert.InDelta(t, 101, v.X, 2)
	assert.InDelta(t, 20, v.Y0, 2)
	assert.InDelta(t, 100, v.Y1, 2)
}

func TestDetectBordersIgnoresShortSegments(t *testing.T) {
	gray := whiteGray(100, 100)
	fillRect(gray, 10, 50, 30, 52, 0) // only 20px long

	borders := DetectBorders(gray, DefaultMinLineLength)
	assert.Empty(t, borders.Horizontal)
	assert.Empty(t, borders.Vertical)
}

func TestDetectBordersIgnoresText(t *testing.T) {
	gray := whiteGray(200, 60)
	// Scattered small blobs the size of glyphs.
	for x := 10; x < 180; x += 12 {
		fillRect(gray, x, 20, x+6, 30, 0)
	}

	borders := DetectBorders(gray, DefaultMinLineLength)
	assert.Empty(t, borders.Horizontal)
	assert.Empty(t, borders.Vertical)
}

func TestDetectBordersSortsByPosition(t *testing.T) {
	gray := whiteGray(120, 120)
	fillRect(gray, 10, 80, 90, 82, 0)
	fillRect(gray, 10, 20, 90, 22, 0)

	borders := DetectBorders(gray, DefaultMinLineLength)

	require.Len(t, borders.Horizontal, 2)
	assert.Less(t, borders.Horizontal[0].Y, borders.Horizontal[1].Y)
}

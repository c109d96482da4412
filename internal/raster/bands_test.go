package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectRowBands(t *testing.T) {
	gray := whiteGray(100, 100)
	fillRect(gray, 10, 10, 90, 22, 0)
	fillRect(gray, 10, 50, 90, 64, 0)

	bands := DetectRowBands(gray, DefaultBandConfig())

	require.Len(t, bands, 2)
	assert.Equal(t, Band{Y0: 10, Y1: 22}, bands[0])
	assert.Equal(t, Band{Y0: 50, Y1: 64}, bands[1])
}

func TestDetectRowBandsMergesCloseBands(t *testing.T) {
	gray := whiteGray(100, 100)
	// Two runs separated by a 3px gap, under the default MinGap of 5.
	fillRect(gray, 10, 10, 90, 20, 0)
	fillRect(gray, 10, 23, 90, 33, 0)

	bands := DetectRowBands(gray, DefaultBandConfig())

	require.Len(t, bands, 1)
	assert.Equal(t, Band{Y0: 10, Y1: 33}, bands[0])
}

func TestDetectRowBandsDropsThinBands(t *testing.T) {
	gray := whiteGray(100, 100)
	fillRect(gray, 10, 10, 90, 13, 0) // 3px, under MinRowHeight

	assert.Empty(t, DetectRowBands(gray, DefaultBandConfig()))
}

func TestDetectRowBandsBlankPage(t *testing.T) {
	assert.Empty(t, DetectRowBands(whiteGray(50, 50), DefaultBandConfig()))
}

func TestDetectRowBandsContentToBottomEdge(t *testing.T) {
	gray := whiteGray(50, 40)
	fillRect(gray, 5, 30, 45, 40, 0)

	bands := DetectRowBands(gray, DefaultBandConfig())

	require.Len(t, bands, 1)
	assert.Equal(t, Band{Y0: 30, Y1: 40}, bands[0])
}

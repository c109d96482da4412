package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToGrayPassthrough(t *testing.T) {
	g := whiteGray(4, 4)
	assert.Same(t, g, ToGray(g))
}

func TestToGrayConvertsRGBA(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 2, 1))
	rgba.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	rgba.Set(1, 0, color.RGBA{A: 255})

	g := ToGray(rgba)
	assert.Equal(t, uint8(255), g.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(0), g.GrayAt(1, 0).Y)
}

func TestBinaryInv(t *testing.T) {
	g := whiteGray(3, 1)
	g.SetGray(0, 0, color.Gray{Y: 10})

	bin := BinaryInv(g, 200)
	assert.Equal(t, uint8(255), bin.GrayAt(0, 0).Y, "dark pixel becomes foreground")
	assert.Equal(t, uint8(0), bin.GrayAt(1, 0).Y, "light pixel becomes background")
}

func TestAdaptiveThresholdExtractsInk(t *testing.T) {
	g := whiteGray(40, 40)
	fillRect(g, 15, 15, 25, 25, 0)

	bin := AdaptiveThreshold(g, 11, 2)

	assert.Equal(t, uint8(255), bin.GrayAt(15, 15).Y, "ink edge is foreground")
	assert.Equal(t, uint8(0), bin.GrayAt(2, 2).Y, "uniform background stays off")
}

func TestOpenRemovesShortRuns(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 60, 10))
	// A 40px horizontal run and a lone 3px blip.
	fillRect(g, 5, 5, 45, 6, 255)
	fillRect(g, 50, 5, 53, 6, 255)

	opened := Open(g, 20, 1)

	assert.Equal(t, uint8(255), opened.GrayAt(25, 5).Y, "long run survives")
	assert.Equal(t, uint8(0), opened.GrayAt(51, 5).Y, "short blip is removed")
}

func TestErodeDilateRoundTrip(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 20, 20))
	fillRect(g, 5, 5, 15, 15, 255)

	eroded := Erode(g, 3, 3)
	assert.Equal(t, uint8(0), eroded.GrayAt(5, 5).Y, "boundary pixel eroded")
	assert.Equal(t, uint8(255), eroded.GrayAt(10, 10).Y, "interior survives")

	restored := Dilate(eroded, 3, 3)
	assert.Equal(t, uint8(255), restored.GrayAt(5, 5).Y)
}

func TestMeanRegion(t *testing.T) {
	g := whiteGray(10, 10)
	fillRect(g, 0, 0, 5, 10, 0)

	assert.Equal(t, 0.0, meanRegion(g, 0, 0, 5, 10))
	assert.Equal(t, 255.0, meanRegion(g, 5, 0, 10, 10))
	assert.InDelta(t, 127.5, meanRegion(g, 0, 0, 10, 10), 1e-9)
	assert.Equal(t, 255.0, meanRegion(g, 8, 8, 8, 8), "empty window reads as background")
}

func TestPreprocess(t *testing.T) {
	g := whiteGray(30, 30)
	fillRect(g, 10, 10, 20, 20, 0)

	gray, binary := Preprocess(g)
	require.NotNil(t, gray)
	require.NotNil(t, binary)
	assert.Equal(t, g.Bounds(), binary.Bounds())
}

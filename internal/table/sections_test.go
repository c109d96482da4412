package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagelens/pagelens/internal/raster"
)

func TestSegmentByGaps(t *testing.T) {
	hLines := []raster.HLine{
		{Y: 100}, {Y: 130}, {Y: 160},
		{Y: 400}, {Y: 440},
	}

	regions := SegmentByGaps(hLines, 60)

	require.Len(t, regions, 2)
	assert.Equal(t, YRange{YStart: 100, YEnd: 160}, regions[0])
	assert.Equal(t, YRange{YStart: 400, YEnd: 440}, regions[1])
}

func TestSegmentByGapsSingleRegion(t *testing.T) {
	hLines := []raster.HLine{{Y: 50}, {Y: 80}, {Y: 110}}
	regions := SegmentByGaps(hLines, 60)
	require.Len(t, regions, 1)
	assert.Equal(t, YRange{YStart: 50, YEnd: 110}, regions[0])
}

func TestSegmentByGapsEmpty(t *testing.T) {
	assert.Nil(t, SegmentByGaps(nil, 60))
}

func TestDetectVisualSections(t *testing.T) {
	// Page 1000px wide: left zone ends at 450, right zone is 400..750, photo
	// boxes extend past 750.
	hLines := []raster.HLine{
		{Y: 100, X0: 20, X1: 400},  // left form lines
		{Y: 140, X0: 20, X1: 400},
		{Y: 180, X0: 20, X1: 400},
		{Y: 100, X0: 500, X1: 700}, // right form lines
		{Y: 140, X0: 500, X1: 700},
		{Y: 100, X0: 800, X1: 980}, // photo box top and bottom
		{Y: 180, X0: 800, X1: 980},
	}
	vLines := []raster.VLine{
		{X: 20, Y0: 100, Y1: 180},
		{X: 400, Y0: 100, Y1: 180},
	}

	sections := DetectVisualSections(hLines, vLines, 1000, 1200)

	require.NotNil(t, sections)
	assert.Equal(t, 1, sections.TotalTables)
	require.Len(t, sections.Tables, 1)

	table := sections.Tables[0]
	assert.Equal(t, 0, table.TableIndex)
	assert.Equal(t, 2, table.NumRows)
	require.Len(t, table.Sections, 3)

	var left, right, photo *Section
	for i := range table.Sections {
		s := &table.Sections[i]
		switch {
		case s.Type == SectionForm && s.Side == "left":
			left = s
		case s.Type == SectionForm && s.Side == "right":
			right = s
		case s.Type == SectionPhoto:
			photo = s
		}
	}

	require.NotNil(t, left)
	assert.Equal(t, 20.0, left.BBox.X0)
	assert.Equal(t, 400.0, left.BBox.X1)

	require.NotNil(t, right)
	assert.Equal(t, 500.0, right.BBox.X0)

	require.NotNil(t, photo)
	assert.Equal(t, 800.0, photo.BBox.X0)
	assert.Equal(t, 2, photo.RowSpan, "photo box crosses all three row boundaries")
}

func TestDetectVisualSectionsSplitsDistantTables(t *testing.T) {
	hLines := []raster.HLine{
		{Y: 100, X0: 20, X1: 400},
		{Y: 140, X0: 20, X1: 400},
		{Y: 500, X0: 20, X1: 400},
		{Y: 540, X0: 20, X1: 400},
	}
	vLines := []raster.VLine{{X: 20, Y0: 100, Y1: 540}}

	sections := DetectVisualSections(hLines, vLines, 1000, 1200)

	require.NotNil(t, sections)
	assert.Equal(t, 2, sections.TotalTables)
	assert.Equal(t, 0, sections.Tables[0].TableIndex)
	assert.Equal(t, 1, sections.Tables[1].TableIndex)
}

func TestDetectVisualSectionsNoLines(t *testing.T) {
	assert.Nil(t, DetectVisualSections(nil, nil, 1000, 1200))
}

package page

import (
	"sort"

	"github.com/pagelens/pagelens/internal/geom"
	"github.com/pagelens/pagelens/internal/layout"
	"github.com/pagelens/pagelens/internal/raster"
)

// AssignBlocksToBands regroups text blocks by the visual row bands of the
// rendered page, making pixels authoritative over text y-coordinates. Band
// coordinates are divided by scaleFactor into document space and a block
// joins the band containing its y-center. Bands that catch no blocks are
// dropped. Returns nil when there are no bands, signalling the caller to
// fall back to y-proximity rows.
func AssignBlocksToBands(blocks []layout.Block, bands []raster.Band, scaleFactor float64) []layout.Row {
	if len(bands) == 0 {
		return nil
	}

	var rows []layout.Row
	for _, band := range bands {
		bandY0 := float64(band.Y0) / scaleFactor
		bandY1 := float64(band.Y1) / scaleFactor

		var bandBlocks []layout.Block
		for _, block := range blocks {
			yCenter := block.BBox.CenterY()
			if yCenter >= bandY0 && yCenter <= bandY1 {
				bandBlocks = append(bandBlocks, block)
			}
		}
		if len(bandBlocks) == 0 {
			continue
		}

		sort.SliceStable(bandBlocks, func(i, j int) bool {
			return bandBlocks[i].BBox.X0 < bandBlocks[j].BBox.X0
		})

		rows = append(rows, layout.Row{
			Blocks: bandBlocks,
			YMin:   geom.Round2(bandY0),
			YMax:   geom.Round2(bandY1),
		})
	}

	if len(rows) == 0 {
		return nil
	}
	return rows
}

package raster

import "image"

// BandConfig controls visual row band detection. MinGap and MinRowHeight are
// in pixels, already scaled to the raster resolution by the caller.
type BandConfig struct {
	MinGap       int
	MinRowHeight int
}

// DefaultBandConfig returns the band parameters for 72 DPI rasters.
func DefaultBandConfig() BandConfig {
	return BandConfig{MinGap: 5, MinRowHeight: 8}
}

// DetectRowBands finds horizontal bands of ink separated by whitespace using
// a row projection histogram. Rows whose normalized ink proportion exceeds a
// small noise floor count as content; consecutive content rows form a band.
// Bands shorter than MinRowHeight are dropped and bands separated by less
// than MinGap are merged. The result is sorted top to bottom.
func DetectRowBands(gray *image.Gray, cfg BandConfig) []Band {
	binary := BinaryInv(gray, 200)
	b := binary.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	projection := make([]int64, h)
	var maxVal int64
	for y := 0; y < h; y++ {
		var sum int64
		for x := 0; x < w; x++ {
			sum += int64(binary.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
		}
		projection[y] = sum
		if sum > maxVal {
			maxVal = sum
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	const threshold = 0.02

	var bands []Band
	inContent := false
	startY := 0
	for y := 0; y < h; y++ {
		content := float64(projection[y])/float64(maxVal) > threshold
		switch {
		case content && !inContent:
			startY = y
			inContent = true
		case !content && inContent:
			if y-startY >= cfg.MinRowHeight {
				bands = append(bands, Band{Y0: startY, Y1: y})
			}
			inContent = false
		}
	}
	if inContent && h-startY >= cfg.MinRowHeight {
		bands = append(bands, Band{Y0: startY, Y1: h})
	}

	if len(bands) < 2 {
		return bands
	}
	merged := bands[:1]
	for _, band := range bands[1:] {
		if band.Y0-merged[len(merged)-1].Y1 < cfg.MinGap {
			merged[len(merged)-1].Y1 = band.Y1
		} else {
			merged = append(merged, band)
		}
	}
	return merged
}

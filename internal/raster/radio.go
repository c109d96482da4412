package raster

import (
	"image"
	"math"
	"sort"

	"github.com/pagelens/pagelens/internal/geom"
)

// RadioConfig holds the base geometry for radio button detection at 72 DPI.
// The detector multiplies everything by the raster scale factor.
type RadioConfig struct {
	MinRadius int
	MaxRadius int
	MinDist   int
}

// DefaultRadioConfig returns the radius window and center spacing for 72 DPI.
func DefaultRadioConfig() RadioConfig {
	return RadioConfig{MinRadius: 4, MaxRadius: 10, MinDist: 20}
}

// DetectRadioButtons locates small circles via a gradient Hough transform and
// validates each candidate against a ring pattern: a visible perimeter with
// either a hollow center (unselected) or a filled center (selected).
// Candidates with an ambiguous half-filled center are rejected.
func DetectRadioButtons(gray, binary *image.Gray, scaleFactor float64, cfg RadioConfig) []Control {
	minR := int(float64(cfg.MinRadius) * scaleFactor)
	maxR := int(float64(cfg.MaxRadius) * scaleFactor)
	minDist := int(float64(cfg.MinDist) * scaleFactor)
	if minR < 1 {
		minR = 1
	}
	if maxR < minR {
		maxR = minR
	}

	var radios []Control
	b := binary.Bounds()
	w, h := b.Dx(), b.Dy()

	for _, c := range houghCircles(gray, minR, maxR, minDist) {
		x0, y0 := c.cx-c.r, c.cy-c.r
		x1, y1 := c.cx+c.r, c.cy+c.r
		if x0 < 0 || y0 < 0 || x1 >= w || y1 >= h {
			continue
		}

		perimeterRatio, centerRatio := ringFill(binary, c.cx, c.cy, c.r, int(3*scaleFactor))

		hasBorder := perimeterRatio > 0.25
		isHollow := centerRatio < 0.35
		isFilled := centerRatio > 0.5
		if !hasBorder || (!isHollow && !isFilled) {
			continue
		}

		radios = append(radios, Control{
			Type:       ControlRadio,
			BBox:       geom.BBox{X0: float64(x0), Y0: float64(y0), X1: float64(x1), Y1: float64(y1)},
			Center:     &Point{X: c.cx, Y: c.cy},
			Radius:     c.r,
			Selected:   boolPtr(isFilled),
			Confidence: geom.Round2(math.Min(perimeterRatio+0.3, 1.0)),
		})
	}

	return radios
}

// ringFill reports the foreground fill ratios of a circle's perimeter ring
// and its inner disc. ringWidth is the thickness of the perimeter ring.
func ringFill(binary *image.Gray, cx, cy, r, ringWidth int) (perimeter, center float64) {
	innerR := r - ringWidth
	if innerR < 1 {
		innerR = 1
	}
	b := binary.Bounds()

	var perimOn, perimTotal, centerOn, centerTotal int
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
				continue
			}
			dx, dy := x-cx, y-cy
			d2 := dx*dx + dy*dy
			if d2 > r*r {
				continue
			}
			on := binary.GrayAt(b.Min.X+x, b.Min.Y+y).Y > 0
			if d2 <= innerR*innerR {
				centerTotal++
				if on {
					centerOn++
				}
			} else {
				perimTotal++
				if on {
					perimOn++
				}
			}
		}
	}

	if perimTotal > 0 {
		perimeter = float64(perimOn) / float64(perimTotal)
	}
	if centerTotal > 0 {
		center = float64(centerOn) / float64(centerTotal)
	}
	return perimeter, center
}

type circle struct {
	cx, cy, r int
	votes     int
}

// houghCircles runs a gradient-direction Hough transform over the given
// radius range. Edge pixels vote for centers along their gradient in both
// directions, per candidate radius. Peaks closer than minDist to a stronger
// peak are suppressed.
func houghCircles(gray *image.Gray, minR, maxR, minDist int) []circle {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 3 || h < 3 {
		return nil
	}

	gx, gy, mag := sobel(gray)

	// One accumulator plane per radius.
	nR := maxR - minR + 1
	acc := make([][]int32, nR)
	for i := range acc {
		acc[i] = make([]int32, w*h)
	}

	const edgeThreshold = 80
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			m := mag[y*w+x]
			if m < edgeThreshold {
				continue
			}
			ux := float64(gx[y*w+x]) / m
			uy := float64(gy[y*w+x]) / m
			for ri := 0; ri < nR; ri++ {
				r := float64(minR + ri)
				for _, sign := range [2]float64{1, -1} {
					cx := x + int(math.Round(sign*ux*r))
					cy := y + int(math.Round(sign*uy*r))
					if cx >= 0 && cy >= 0 && cx < w && cy < h {
						acc[ri][cy*w+cx]++
					}
				}
			}
		}
	}

	// Collect local peaks strong enough to be a plausible circle: at least
	// a third of the circumference must have voted.
	var candidates []circle
	for ri := 0; ri < nR; ri++ {
		r := minR + ri
		need := int32(float64(2*math.Pi*float64(r)) / 3)
		if need < 8 {
			need = 8
		}
		plane := acc[ri]
		for y := 1; y < h-1; y++ {
			for x := 1; x < w-1; x++ {
				v := plane[y*w+x]
				if v < need {
					continue
				}
				if v < plane[y*w+x-1] || v < plane[y*w+x+1] ||
					v < plane[(y-1)*w+x] || v < plane[(y+1)*w+x] {
					continue
				}
				candidates = append(candidates, circle{cx: x, cy: y, r: r, votes: int(v)})
			}
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].votes > candidates[j].votes
	})

	var kept []circle
	for _, c := range candidates {
		tooClose := false
		for _, k := range kept {
			dx := c.cx - k.cx
			dy := c.cy - k.cy
			if dx*dx+dy*dy < minDist*minDist {
				tooClose = true
				break
			}
		}
		if !tooClose {
			kept = append(kept, c)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].cy != kept[j].cy {
			return kept[i].cy < kept[j].cy
		}
		return kept[i].cx < kept[j].cx
	})
	return kept
}

// sobel returns the horizontal and vertical gradients and the gradient
// magnitude for each interior pixel.
func sobel(gray *image.Gray) (gx, gy []int32, mag []float64) {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	gx = make([]int32, w*h)
	gy = make([]int32, w*h)
	mag = make([]float64, w*h)

	at := func(x, y int) int32 {
		return int32(gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			sx := -at(x-1, y-1) + at(x+1, y-1) +
				-2*at(x-1, y) + 2*at(x+1, y) +
				-at(x-1, y+1) + at(x+1, y+1)
			sy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)
			gx[y*w+x] = sx
			gy[y*w+x] = sy
			mag[y*w+x] = math.Sqrt(float64(sx*sx + sy*sy))
		}
	}
	return gx, gy, mag
}

package raster

import (
	"fmt"
	"testing"
)

func TestZZDebugRadio(t *testing.T) {
	gray := whiteGray(40, 40)
	fillAnnulus(gray, 20, 20, 7, 9, 0)
	binary := BinaryInv(gray, 200)

	cfg := DefaultRadioConfig()
	circles := houghCircles(gray, cfg.MinRadius, cfg.MaxRadius, cfg.MinDist)
	fmt.Printf("hough circles: %+v\n", circles)
	for _, c := range circles {
		p, ctr := ringFill(binary, c.cx, c.cy, c.r, 3)
		fmt.Printf("c=%+v perim=%.3f center=%.3f\n", c, p, ctr)
	}
}

func TestZZDebugCheckbox(t *testing.T) {
	gray := whiteGray(300, 200)
	outlineRect(gray, 20, 20, 38, 38, 2, 0)
	_, binary := Preprocess(gray)
	contours := FindContours(binary)
	for _, c := range contours {
		fmt.Printf("contour rect=%v npts=%d\n", c.Rect, len(c.Points))
		eps := 0.02 * ArcLength(c.Points)
		approx := ApproxPoly(c.Points, eps)
		fmt.Printf("  arclen=%.1f eps=%.2f approx=%d\n", ArcLength(c.Points), eps, len(approx))
	}
	boxes := DetectCheckboxes(gray, binary, DefaultCheckboxConfig())
	fmt.Printf("boxes: %+v\n", boxes)
}

func TestZZDebugScan(t *testing.T) {
	gray := whiteGray(300, 200)
	outlineRect(gray, 20, 20, 38, 38, 2, 0)
	outlineRect(gray, 60, 100, 260, 124, 2, 0)
	fillRect(gray, 20, 160, 280, 162, 0)

	g2, binary := Preprocess(gray)
	for _, c := range FindContours(binary) {
		if c.Rect.Dx() < 40 {
			fmt.Printf("small contour rect=%v npts=%d\n", c.Rect, len(c.Points))
		}
	}
	boxes := DetectCheckboxes(g2, binary, DefaultCheckboxConfig())
	fmt.Printf("direct boxes: %d\n", len(boxes))

	res := Scan(gray, DefaultScanConfig(1.0))
	fmt.Printf("scan: cb=%d radios=%d inputs=%d hlines=%d bands=%d\n",
		len(res.Checkboxes), len(res.Radios), len(res.InputBoxes),
		len(res.Borders.Horizontal), len(res.RowBands))
}

// Package geom provides the geometric primitives shared by every stage of the
// page structure pipeline: bounding boxes, overlap measures, and 1-D position
// clustering.
//
// All geometry lives in one of two coordinate spaces. Document space is
// measured in PDF points with the origin at the top-left corner and y
// increasing downward. Raster space is measured in pixels at the rendering
// resolution. The two are related by a single scale factor
// (raster pixels per document point); BBox carries no space tag itself, so
// callers must not compare boxes from different spaces without converting.
package geom

import (
	"math"
	"sort"
)

// BBox is an axis-aligned bounding box with x0 <= x1 and y0 <= y1 for
// well-formed boxes. Malformed boxes (inverted or zero-area) are tolerated by
// every operation and simply behave as empty.
type BBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Width returns the horizontal extent, never negative.
func (b BBox) Width() float64 {
	if b.X1 < b.X0 {
		return 0
	}
	return b.X1 - b.X0
}

// Height returns the vertical extent, never negative.
func (b BBox) Height() float64 {
	if b.Y1 < b.Y0 {
		return 0
	}
	return b.Y1 - b.Y0
}

// Area returns the box area; malformed boxes have zero area.
func (b BBox) Area() float64 {
	return b.Width() * b.Height()
}

// CenterX returns the horizontal center.
func (b BBox) CenterX() float64 {
	return (b.X0 + b.X1) / 2
}

// CenterY returns the vertical center.
func (b BBox) CenterY() float64 {
	return (b.Y0 + b.Y1) / 2
}

// Contains reports whether the point (x, y) lies inside the box, edges
// inclusive.
func (b BBox) Contains(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Y0 && y <= b.Y1
}

// Union returns the smallest box covering both b and other.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		X0: math.Min(b.X0, other.X0),
		Y0: math.Min(b.Y0, other.Y0),
		X1: math.Max(b.X1, other.X1),
		Y1: math.Max(b.Y1, other.Y1),
	}
}

// Intersection returns the overlapping region of b and other. When the boxes
// do not overlap the result has zero area.
func (b BBox) Intersection(other BBox) BBox {
	r := BBox{
		X0: math.Max(b.X0, other.X0),
		Y0: math.Max(b.Y0, other.Y0),
		X1: math.Min(b.X1, other.X1),
		Y1: math.Min(b.Y1, other.Y1),
	}
	if r.X1 <= r.X0 || r.Y1 <= r.Y0 {
		return BBox{}
	}
	return r
}

// IoU computes intersection-over-union of two boxes. Degenerate boxes yield
// 0, never an error.
func (b BBox) IoU(other BBox) float64 {
	inter := b.Intersection(other).Area()
	if inter == 0 {
		return 0
	}
	union := b.Area() + other.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// OverlapsX reports whether the horizontal ranges of the two boxes overlap.
func (b BBox) OverlapsX(other BBox) bool {
	return b.X0 < other.X1 && b.X1 > other.X0
}

// Scale returns the box with every coordinate multiplied by f. Used to
// convert between raster and document space.
func (b BBox) Scale(f float64) BBox {
	return BBox{X0: b.X0 * f, Y0: b.Y0 * f, X1: b.X1 * f, Y1: b.Y1 * f}
}

// Round returns the box with every coordinate rounded to two decimals, the
// precision used throughout the output record.
func (b BBox) Round() BBox {
	return BBox{X0: Round2(b.X0), Y0: Round2(b.Y0), X1: Round2(b.X1), Y1: Round2(b.Y1)}
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ClusterPositions groups nearby 1-D positions and returns the centroid of
// each cluster, sorted ascending. A position joins the current cluster when
// it is within tolerance of the cluster's last member, so chains of close
// positions collapse into one canonical boundary. This absorbs the couple of
// points of jitter that text extraction and line detection both produce.
func ClusterPositions(positions []float64, tolerance float64) []float64 {
	if len(positions) == 0 {
		return nil
	}

	sorted := make([]float64, len(positions))
	copy(sorted, positions)
	sort.Float64s(sorted)

	var centers []float64
	clusterStart := 0
	last := sorted[0]
	sum := sorted[0]

	for i := 1; i < len(sorted); i++ {
		if math.Abs(sorted[i]-last) <= tolerance {
			sum += sorted[i]
			last = sorted[i]
			continue
		}
		centers = append(centers, sum/float64(i-clusterStart))
		clusterStart = i
		last = sorted[i]
		sum = sorted[i]
	}
	centers = append(centers, sum/float64(len(sorted)-clusterStart))

	return centers
}

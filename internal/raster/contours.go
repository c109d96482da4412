package raster

import (
	"image"
	"math"
)

// Contour is the outer boundary of one connected foreground component of a
// binary image.
type Contour struct {
	Points    []Point         // traced boundary, clockwise
	Rect      image.Rectangle // bounding rectangle
	PixelArea int             // number of foreground pixels in the component
}

// FindContours locates all connected foreground components (8-connectivity)
// of a binary image and traces each component's outer boundary. Nested
// components are reported individually, so hollow rectangles yield both the
// outer frame and the inner hole's frame.
func FindContours(binary *image.Gray) []Contour {
	b := binary.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	labels := make([]int32, w*h)
	var contours []Contour
	next := int32(1)

	on := func(x, y int) bool {
		return x >= 0 && y >= 0 && x < w && y < h &&
			binary.GrayAt(b.Min.X+x, b.Min.Y+y).Y > 0
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !on(x, y) || labels[y*w+x] != 0 {
				continue
			}

			// Flood fill the component to label it and collect its extent.
			label := next
			next++
			rect := image.Rect(x, y, x+1, y+1)
			area := 0
			stack := []Point{{x, y}}
			labels[y*w+x] = label
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				area++
				rect = rect.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := p.X+dx, p.Y+dy
						if on(nx, ny) && labels[ny*w+nx] == 0 {
							labels[ny*w+nx] = label
							stack = append(stack, Point{nx, ny})
						}
					}
				}
			}

			contours = append(contours, Contour{
				Points:    traceBoundary(on, Point{x, y}),
				Rect:      rect,
				PixelArea: area,
			})
		}
	}

	return contours
}

// mooreOffsets is the clockwise 8-neighborhood starting west.
var mooreOffsets = [8]Point{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

// traceBoundary follows the outer boundary of a component clockwise (Moore
// neighbor tracing) starting from its topmost-leftmost pixel.
func traceBoundary(on func(x, y int) bool, start Point) []Point {
	boundary := []Point{start}
	current := start
	// Entered the start pixel scanning from the west.
	backtrack := 0

	for {
		found := false
		for i := 0; i < 8; i++ {
			dir := (backtrack + 1 + i) % 8
			n := Point{current.X + mooreOffsets[dir].X, current.Y + mooreOffsets[dir].Y}
			if on(n.X, n.Y) {
				// Next backtrack points at the previous pixel.
				backtrack = (dir + 4) % 8
				current = n
				found = true
				break
			}
		}
		if !found {
			// Isolated pixel.
			break
		}
		if current == start && len(boundary) > 1 {
			break
		}
		boundary = append(boundary, current)
		if len(boundary) > 100000 {
			break
		}
	}

	return boundary
}

// ArcLength returns the perimeter of a closed point sequence.
func ArcLength(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	total := 0.0
	for i := range points {
		a := points[i]
		b := points[(i+1)%len(points)]
		dx := float64(b.X - a.X)
		dy := float64(b.Y - a.Y)
		total += math.Sqrt(dx*dx + dy*dy)
	}
	return total
}

// ContourArea returns the enclosed area of a closed point sequence by the
// shoelace formula.
func ContourArea(points []Point) float64 {
	if len(points) < 3 {
		return 0
	}
	sum := 0.0
	for i := range points {
		a := points[i]
		b := points[(i+1)%len(points)]
		sum += float64(a.X*b.Y - b.X*a.Y)
	}
	return math.Abs(sum) / 2
}

// ApproxPoly simplifies a closed contour with the Douglas-Peucker algorithm
// at the given tolerance, returning the approximated vertex list. Used to
// test whether a contour is roughly rectangular (4-8 vertices).
func ApproxPoly(points []Point, epsilon float64) []Point {
	if len(points) < 3 {
		return points
	}

	// Split the closed curve at the two mutually farthest of (first point,
	// farthest-from-first), then simplify both halves.
	far := 0
	maxD := -1.0
	for i, p := range points {
		d := pointDist(points[0], p)
		if d > maxD {
			maxD = d
			far = i
		}
	}
	if far == 0 {
		return points[:1]
	}

	first := douglasPeucker(points[:far+1], epsilon)
	second := douglasPeucker(append(points[far:], points[0]), epsilon)

	// Drop duplicated junction vertices.
	poly := append([]Point{}, first...)
	if len(second) > 2 {
		poly = append(poly, second[1:len(second)-1]...)
	}
	return poly
}

func douglasPeucker(points []Point, epsilon float64) []Point {
	if len(points) < 3 {
		return points
	}

	maxD := 0.0
	index := 0
	for i := 1; i < len(points)-1; i++ {
		d := perpendicularDist(points[i], points[0], points[len(points)-1])
		if d > maxD {
			maxD = d
			index = i
		}
	}

	if maxD <= epsilon {
		return []Point{points[0], points[len(points)-1]}
	}

	left := douglasPeucker(points[:index+1], epsilon)
	right := douglasPeucker(points[index:], epsilon)
	return append(left[:len(left)-1], right...)
}

func perpendicularDist(p, a, b Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	norm := math.Sqrt(dx*dx + dy*dy)
	if norm == 0 {
		return pointDist(p, a)
	}
	return math.Abs(dx*float64(a.Y-p.Y)-float64(a.X-p.X)*dy) / norm
}

func pointDist(a, b Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

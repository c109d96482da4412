package raster

import (
	"image"
	"image/color"
)

// grayOn is the foreground value of binary images in this package.
var grayOn = color.Gray{Y: 255}

// ToGray converts any image to 8-bit grayscale.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

// BoxBlur3 applies a 3x3 mean blur, the light denoising pass before
// thresholding.
func BoxBlur3(src *image.Gray) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum, n := 0, 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					xx, yy := x+dx, y+dy
					if xx < 0 || yy < 0 || xx >= w || yy >= h {
						continue
					}
					sum += int(src.GrayAt(b.Min.X+xx, b.Min.Y+yy).Y)
					n++
				}
			}
			dst.SetGray(b.Min.X+x, b.Min.Y+y, color.Gray{Y: uint8(sum / n)})
		}
	}
	return dst
}

// integralImage computes the summed-area table of src, with one extra
// leading row and column of zeros so window sums need no edge special cases.
func integralImage(src *image.Gray) [][]int64 {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	sat := make([][]int64, h+1)
	sat[0] = make([]int64, w+1)
	for y := 1; y <= h; y++ {
		sat[y] = make([]int64, w+1)
		var rowSum int64
		for x := 1; x <= w; x++ {
			rowSum += int64(src.GrayAt(b.Min.X+x-1, b.Min.Y+y-1).Y)
			sat[y][x] = sat[y-1][x] + rowSum
		}
	}
	return sat
}

// AdaptiveThreshold binarizes src against the local mean over a window of the
// given (odd) size, minus constant c. Output is inverted: ink becomes 255,
// background 0, which is what the contour search expects.
func AdaptiveThreshold(src *image.Gray, window int, c int) *image.Gray {
	if window < 3 {
		window = 3
	}
	if window%2 == 0 {
		window++
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(b)
	sat := integralImage(src)
	half := window / 2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0, y0 := x-half, y-half
			x1, y1 := x+half+1, y+half+1
			if x0 < 0 {
				x0 = 0
			}
			if y0 < 0 {
				y0 = 0
			}
			if x1 > w {
				x1 = w
			}
			if y1 > h {
				y1 = h
			}
			area := int64((x1 - x0) * (y1 - y0))
			sum := sat[y1][x1] - sat[y0][x1] - sat[y1][x0] + sat[y0][x0]
			mean := sum / area
			v := int64(src.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			if v <= mean-int64(c) {
				dst.SetGray(b.Min.X+x, b.Min.Y+y, color.Gray{Y: 255})
			}
		}
	}
	return dst
}

// BinaryInv binarizes src with a fixed threshold, inverted: pixels darker
// than the threshold become 255.
func BinaryInv(src *image.Gray, threshold uint8) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if src.GrayAt(x, y).Y < threshold {
				dst.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return dst
}

// Preprocess produces the grayscale and inverted binary images every
// detector works from.
func Preprocess(img image.Image) (gray, binary *image.Gray) {
	gray = ToGray(img)
	blurred := BoxBlur3(gray)
	binary = AdaptiveThreshold(blurred, 11, 2)
	return gray, binary
}

// Erode applies morphological erosion with a kw x kh rectangular kernel on a
// binary image (foreground 255).
func Erode(src *image.Gray, kw, kh int) *image.Gray {
	return morph(src, kw, kh, true)
}

// Dilate applies morphological dilation with a kw x kh rectangular kernel on
// a binary image (foreground 255).
func Dilate(src *image.Gray, kw, kh int) *image.Gray {
	return morph(src, kw, kh, false)
}

// Open is erosion followed by dilation: it removes foreground features
// smaller than the kernel. With an elongated kernel only long straight runs
// survive, which is how border lines are isolated.
func Open(src *image.Gray, kw, kh int) *image.Gray {
	return Dilate(Erode(src, kw, kh), kw, kh)
}

func morph(src *image.Gray, kw, kh int, erode bool) *image.Gray {
	if kw < 1 {
		kw = 1
	}
	if kh < 1 {
		kh = 1
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(b)
	hw, hh := kw/2, kh/2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Erosion requires every kernel pixel set; dilation any.
			hit := erode
		kernel:
			for dy := -hh; dy <= kh-1-hh; dy++ {
				for dx := -hw; dx <= kw-1-hw; dx++ {
					xx, yy := x+dx, y+dy
					on := xx >= 0 && yy >= 0 && xx < w && yy < h &&
						src.GrayAt(b.Min.X+xx, b.Min.Y+yy).Y > 0
					if erode && !on {
						hit = false
						break kernel
					}
					if !erode && on {
						hit = true
						break kernel
					}
				}
			}
			if hit {
				dst.SetGray(b.Min.X+x, b.Min.Y+y, color.Gray{Y: 255})
			}
		}
	}
	return dst
}

// meanRegion returns the mean intensity of gray over the given pixel window,
// clamped to the image. Returns 255 (background) for an empty window.
func meanRegion(gray *image.Gray, x0, y0, x1, y1 int) float64 {
	b := gray.Bounds()
	if x0 < b.Min.X {
		x0 = b.Min.X
	}
	if y0 < b.Min.Y {
		y0 = b.Min.Y
	}
	if x1 > b.Max.X {
		x1 = b.Max.X
	}
	if y1 > b.Max.Y {
		y1 = b.Max.Y
	}
	if x0 >= x1 || y0 >= y1 {
		return 255
	}
	var sum int64
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			sum += int64(gray.GrayAt(x, y).Y)
		}
	}
	return float64(sum) / float64((x1-x0)*(y1-y0))
}

package vision

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"

	"github.com/nathaniel-sheetz/BananaVision/internal/config"
	"github.com/nathaniel-sheetz/BananaVision/internal/imaging"
)

// SeparateEdges carves boundary evidence out of the banana mask so touching
// same-colored bananas become separable components before segmentation.
//
// Raw color masking alone cannot distinguish two touching bananas of the
// same color; wherever a strong gray-level edge exists inside the mask, a
// thin band of pixels is reclassified as not-banana to break the mask apart
// ahead of distance-transform seeding.
//
// Parameters:
//   - src: the original decoded image (gradients are computed on gray
//     levels, not on the mask).
//   - banana: the cleaned banana mask (union of green and yellow).
//
// Returns the carved mask and the boundary band that was removed. If the
// edge map contains no edges inside the mask, the mask is returned
// unchanged (as a copy) and the boundary band is empty, so no regions are
// artificially split.
//
// # Algorithm
//
//  1. Grayscale conversion and Gaussian noise reduction (bild)
//  2. Sobel gradients: magnitude = sqrt(Gx² + Gy²), direction = atan2(Gy, Gx)
//  3. Non-maximum suppression to thin edges to 1-pixel width
//  4. Hysteresis thresholding with cfg.CannyLow / cfg.CannyHigh:
//     strong edges are always kept, weak edges only when adjacent to a
//     strong edge
//  5. Restriction to the banana mask, then cfg.EdgeDilateIterations
//     single-pixel dilation passes to widen edges into a boundary band
//  6. Subtraction of the band from the mask, followed by a radius-1 opening
//     to drop slivers left behind by the carving
func SeparateEdges(src image.Image, banana *imaging.Mask, cfg config.Config) (separated, boundary *imaging.Mask) {
	edges := edgeMask(src, cfg.CannyLow, cfg.CannyHigh)

	inMask := imaging.Intersect(edges, banana)
	if inMask.Count() == 0 {
		return banana.Clone(), imaging.NewMask(banana.W, banana.H)
	}

	boundary = inMask
	for i := 0; i < cfg.EdgeDilateIterations; i++ {
		boundary = boundary.Dilate(1)
	}

	separated = imaging.Subtract(banana, boundary).Open(1)
	return separated, boundary
}

// edgeMask performs Canny-style edge detection over the full image,
// returning a binary mask of edge pixels. Thresholds are on a 0-255
// gradient-magnitude scale.
func edgeMask(src image.Image, thresholdLow, thresholdHigh int) *imaging.Mask {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Grayscale + 5x5-equivalent Gaussian blur to reduce noise before
	// gradient computation.
	blurred := blur.Gaussian(effect.Grayscale(src), 1.4)

	gray := make([]float64, width*height)
	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, _, _, _ := blurred.At(x+blurred.Bounds().Min.X, y+blurred.Bounds().Min.Y).RGBA()
			gray[i] = float64(r>>8) / 255.0
			i++
		}
	}

	// Sobel gradients.
	magnitude := make([]float64, width*height)
	direction := make([]float64, width*height)

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += gray[py*width+px] * sobelX[ky+1][kx+1]
					gy += gray[py*width+px] * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y*width+x] = math.Sqrt(gx*gx + gy*gy)
			direction[y*width+x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression: keep only local maxima along the gradient
	// direction, thinning edges to single-pixel width.
	suppressed := make([]float64, width*height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			angle := direction[y*width+x]
			mag := magnitude[y*width+x]

			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[y*width+x-1]
				n2 = magnitude[y*width+x+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[(y-1)*width+x+1]
				n2 = magnitude[(y+1)*width+x-1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[(y-1)*width+x]
				n2 = magnitude[(y+1)*width+x]
			} else {
				n1 = magnitude[(y-1)*width+x-1]
				n2 = magnitude[(y+1)*width+x+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y*width+x] = mag
			}
		}
	}

	// Double threshold and edge tracking by hysteresis.
	out := imaging.NewMask(width, height)
	lowThresh := float64(thresholdLow) / 255.0
	highThresh := float64(thresholdHigh) / 255.0

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			val := suppressed[y*width+x]
			switch {
			case val >= highThresh:
				out.Set(x, y, true)
			case val >= lowThresh:
				for ky := -1; ky <= 1; ky++ {
					for kx := -1; kx <= 1; kx++ {
						py := clamp(y+ky, 0, height-1)
						px := clamp(x+kx, 0, width-1)
						if suppressed[py*width+px] >= highThresh {
							out.Set(x, y, true)
						}
					}
				}
			}
		}
	}

	return out
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

package vision

// Synthetic image builders shared by the package tests. Colors are
// constructed through go-colorful from HSV so the fixtures land well inside
// (or outside) the configured bands regardless of rounding in the 8-bit
// round trip.

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/nathaniel-sheetz/BananaVision/internal/imaging"
)

// hsvColor builds an RGBA color from hue (degrees), saturation and value
// (both 0-1).
func hsvColor(h, s, v float64) color.RGBA {
	r, g, b := colorful.Hsv(h, s, v).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

var (
	greenFill  = hsvColor(100, 0.8, 0.8) // well inside the green band
	yellowFill = hsvColor(45, 0.8, 0.8)  // well inside the yellow band

	// spotFill sits in the spot band and the yellow band at once: real
	// brown spotting shades into dark yellow at its rim, and only the
	// dual-band pixels are what the pixel-mode detector counts.
	spotFill = hsvColor(35, 0.7, 0.55)

	// brownFill is a pure spot-band color, outside both banana bands.
	brownFill = hsvColor(25, 0.6, 0.4)

	// backgroundFill is a neutral dark gray: zero saturation keeps it out
	// of every band.
	backgroundFill = color.RGBA{40, 40, 40, 255}
)

// newCanvas creates a w x h image filled with the background color.
func newCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRect(img, 0, 0, w, h, backgroundFill)
	return img
}

// fillRect paints the half-open rectangle [x1,x2) x [y1,y2).
func fillRect(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			img.Set(x, y, c)
		}
	}
}

// fillCircle paints a filled circle of the given radius.
func fillCircle(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, c)
			}
		}
	}
}

// maskRect builds a mask with one filled rectangle.
func maskRect(w, h, x1, y1, x2, y2 int) *imaging.Mask {
	m := imaging.NewMask(w, h)
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			m.Set(x, y, true)
		}
	}
	return m
}

// setRect marks a rectangle in an existing mask.
func setRect(m *imaging.Mask, x1, y1, x2, y2 int) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			m.Set(x, y, true)
		}
	}
}

package imaging

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// HSVImage is a planar hue/saturation/value view of a decoded image.
//
// The three channels are stored as flat row-major slices so the pipeline can
// threshold pixels without repeated color-model conversions. Hue is in
// degrees (0-360), saturation and value in percent (0-100).
//
// An HSVImage is immutable after construction: the pipeline borrows it for
// the duration of one analysis and never writes to it.
type HSVImage struct {
	W, H int
	Hue  []float64
	Sat  []float64
	Val  []float64
}

// FromImage converts a decoded image into its HSV representation.
//
// Conversion uses go-colorful's RGB->HSV transform on each pixel. The alpha
// channel is ignored; callers feeding premultiplied images should flatten
// them first.
func FromImage(img image.Image) *HSVImage {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	out := &HSVImage{
		W:   w,
		H:   h,
		Hue: make([]float64, w*h),
		Sat: make([]float64, w*h),
		Val: make([]float64, w*h),
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			c := colorful.Color{
				R: float64(r) / 65535.0,
				G: float64(g) / 65535.0,
				B: float64(b) / 65535.0,
			}
			hue, sat, val := c.Hsv()
			out.Hue[i] = hue
			out.Sat[i] = sat * 100
			out.Val[i] = val * 100
			i++
		}
	}

	return out
}

// At returns the HSV sample at (x, y). No bounds checking is performed;
// callers iterate within the image dimensions.
func (p *HSVImage) At(x, y int) (h, s, v float64) {
	i := y*p.W + x
	return p.Hue[i], p.Sat[i], p.Val[i]
}

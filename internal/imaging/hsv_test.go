package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestFromImage_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		c       color.RGBA
		h, s, v float64
	}{
		{"red", color.RGBA{255, 0, 0, 255}, 0, 100, 100},
		{"pure green", color.RGBA{0, 255, 0, 255}, 120, 100, 100},
		{"yellow", color.RGBA{255, 255, 0, 255}, 60, 100, 100},
		{"black", color.RGBA{0, 0, 0, 255}, 0, 0, 0},
		{"white", color.RGBA{255, 255, 255, 255}, 0, 0, 100},
		{"mid gray", color.RGBA{128, 128, 128, 255}, 0, 0, 50.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, 1, 1))
			img.Set(0, 0, tt.c)

			hsv := FromImage(img)
			h, s, v := hsv.At(0, 0)

			if math.Abs(h-tt.h) > 0.5 || math.Abs(s-tt.s) > 0.5 || math.Abs(v-tt.v) > 0.5 {
				t.Errorf("got (%.1f, %.1f, %.1f), want (%.1f, %.1f, %.1f)",
					h, s, v, tt.h, tt.s, tt.v)
			}
		})
	}
}

func TestFromImage_RoundTripsColorful(t *testing.T) {
	// A color built from HSV must convert back to (very nearly) the same
	// HSV sample after the 8-bit round trip.
	want := colorful.Hsv(95, 0.8, 0.7)

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	r, g, b := want.RGB255()
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, color.RGBA{r, g, b, 255})
		}
	}

	hsv := FromImage(img)
	h, s, v := hsv.At(1, 1)

	if math.Abs(h-95) > 1 || math.Abs(s-80) > 1 || math.Abs(v-70) > 1 {
		t.Errorf("round trip drifted: got (%.2f, %.2f, %.2f)", h, s, v)
	}
}

func TestFromImage_NonZeroOrigin(t *testing.T) {
	// Sub-images have bounds that do not start at (0, 0); the HSV plane
	// must still be addressed from the origin.
	img := image.NewRGBA(image.Rect(10, 10, 14, 14))
	img.Set(10, 10, color.RGBA{0, 255, 0, 255})

	hsv := FromImage(img)
	if hsv.W != 4 || hsv.H != 4 {
		t.Fatalf("dimensions: got %dx%d, want 4x4", hsv.W, hsv.H)
	}
	h, s, v := hsv.At(0, 0)
	if math.Abs(h-120) > 0.5 || math.Abs(s-100) > 0.5 || math.Abs(v-100) > 0.5 {
		t.Errorf("origin pixel: got (%.1f, %.1f, %.1f), want (120, 100, 100)", h, s, v)
	}
}

// Package debugviz renders the pipeline's intermediate artifacts as images
// for threshold tuning. It is an optional sink: the vision core produces
// artifacts without knowing whether anything will render them.
package debugviz

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"path/filepath"

	"github.com/disintegration/imaging"

	intimg "github.com/nathaniel-sheetz/BananaVision/internal/imaging"
	"github.com/nathaniel-sheetz/BananaVision/internal/vision"
)

// overlayAlpha is the blend weight of the tint over the original pixel.
const overlayAlpha = 0.5

// OverlayMask blends a tint color over every set pixel of the mask, leaving
// the rest of the image untouched.
func OverlayMask(src image.Image, m *intimg.Mask, tint color.NRGBA) *image.NRGBA {
	bounds := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), src, bounds.Min, draw.Src)

	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if !m.At(x, y) {
				continue
			}
			c := out.NRGBAAt(x, y)
			out.SetNRGBA(x, y, color.NRGBA{
				R: blend(c.R, tint.R),
				G: blend(c.G, tint.G),
				B: blend(c.B, tint.B),
				A: 255,
			})
		}
	}
	return out
}

func blend(base, tint uint8) uint8 {
	return uint8(float64(base)*(1-overlayAlpha) + float64(tint)*overlayAlpha)
}

// OverlayRegions draws each segmented region's boundary in green over the
// original image, the banana-mode counterpart of a contour overlay.
func OverlayRegions(src image.Image, lm *vision.LabelMap) *image.NRGBA {
	bounds := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), src, bounds.Min, draw.Src)

	edge := color.NRGBA{0, 255, 0, 255}
	for y := 0; y < lm.H; y++ {
		for x := 0; x < lm.W; x++ {
			l := lm.At(x, y)
			if l == 0 {
				continue
			}
			// A region pixel is a boundary pixel when any 4-neighbor
			// carries a different label.
			if lm.At(x-1, y) != l || lm.At(x+1, y) != l || lm.At(x, y-1) != l || lm.At(x, y+1) != l {
				out.SetNRGBA(x, y, edge)
			}
		}
	}
	return out
}

// MaskImage renders a mask as a black and white grayscale image.
func MaskImage(m *intimg.Mask) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, m.W, m.H))
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.At(x, y) {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

// maxSide caps saved debug images; larger renders are scaled down to keep
// artifact directories manageable.
const maxSide = 1024

// SaveAll writes the standard artifact set next to the analyzed image:
// green/yellow/spot overlays, the boundary band, the banana mask, and the
// region overlay. It returns the written paths.
func SaveAll(dir, stem string, src image.Image, art *vision.Artifacts) ([]string, error) {
	renders := []struct {
		suffix string
		img    image.Image
	}{
		{"green", OverlayMask(src, art.Green, color.NRGBA{0, 255, 0, 255})},
		{"yellow", OverlayMask(src, art.Yellow, color.NRGBA{255, 255, 0, 255})},
		{"spots", OverlayMask(src, art.Spots, color.NRGBA{255, 0, 0, 255})},
		{"boundary", MaskImage(art.Boundary)},
		{"mask", MaskImage(art.Banana)},
		{"regions", OverlayRegions(src, art.Labels)},
	}

	paths := make([]string, 0, len(renders))
	for _, r := range renders {
		img := r.img
		if b := img.Bounds(); b.Dx() > maxSide || b.Dy() > maxSide {
			img = imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
		}

		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stem, r.suffix))
		if err := imaging.Save(img, path); err != nil {
			return paths, fmt.Errorf("failed to save debug artifact %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

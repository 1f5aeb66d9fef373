package vision

import (
	"github.com/nathaniel-sheetz/BananaVision/internal/config"
	"github.com/nathaniel-sheetz/BananaVision/internal/imaging"
)

// ColorMasks holds the per-band binary masks produced from one image.
//
// The two masks are disjoint for any valid configuration: the green band
// starts strictly above the yellow band in hue, which config.Validate
// enforces before an Analyzer is constructed.
type ColorMasks struct {
	Green  *imaging.Mask
	Yellow *imaging.Mask
}

// MaskColors thresholds the image into green and yellow banana masks.
// It has no side effects beyond mask construction and is deterministic for
// a given image and configuration.
func MaskColors(img *imaging.HSVImage, cfg config.Config) ColorMasks {
	return ColorMasks{
		Green:  maskBand(img, cfg.Green),
		Yellow: maskBand(img, cfg.Yellow),
	}
}

// maskBand marks every pixel whose HSV sample falls inside the band.
func maskBand(img *imaging.HSVImage, b config.Band) *imaging.Mask {
	m := imaging.NewMask(img.W, img.H)
	for i := 0; i < img.W*img.H; i++ {
		if b.Contains(img.Hue[i], img.Sat[i], img.Val[i]) {
			m.SetIndex(i, true)
		}
	}
	return m
}

// maskCleanupRadius is the disc radius of the open/close pair applied to the
// combined color mask before segmentation, matching a 5x5 elliptical kernel.
const maskCleanupRadius = 2

// BananaMask combines the color masks into the cleaned banana-pixel mask:
// the union of green and yellow, opened to drop color noise, closed to fill
// small gaps, interior holes filled, with connected components below
// cfg.MinRegionArea discarded.
//
// Hole filling matters downstream: a brown spot darker than the yellow band
// is a pocket of background inside the fruit's color mask. Left open, the
// pocket punches the distance transform full of false minima and keeps the
// spot outside every eroded interior, so segmentation over-seeds and the
// spot is never counted. Filled masks describe whole fruits.
func BananaMask(masks ColorMasks, cfg config.Config) *imaging.Mask {
	combined := imaging.Union(masks.Green, masks.Yellow)
	combined = combined.Open(maskCleanupRadius).Close(maskCleanupRadius).FillHoles()
	return dropSmallComponents(combined, cfg.MinRegionArea)
}

// dropSmallComponents removes every 8-connected component whose pixel count
// is below minArea.
func dropSmallComponents(m *imaging.Mask, minArea int) *imaging.Mask {
	lm := labelComponents(m)
	areas := make([]int, lm.MaxLabel()+1)
	for _, l := range lm.labels {
		areas[int(l)]++
	}

	out := imaging.NewMask(m.W, m.H)
	for i, l := range lm.labels {
		if l > 0 && areas[int(l)] >= minArea {
			out.SetIndex(i, true)
		}
	}
	return out
}

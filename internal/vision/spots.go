package vision

import (
	"github.com/nathaniel-sheetz/BananaVision/internal/config"
	"github.com/nathaniel-sheetz/BananaVision/internal/imaging"
)

// SpottedYellow finds the yellow pixels that belong to spotted areas, for
// pixel-mode classification.
//
// The detection is erode-then-detect-then-dilate:
//
//  1. Erode the yellow mask by cfg.ErodeRadius to obtain an interior mask.
//     Banana tips and edges are naturally darker and would false-positive
//     as spots, so the outer margin is excluded entirely.
//  2. Threshold the brown/tan band within that interior only.
//  3. Dilate the spot pixels by cfg.DilateRadius, growing each sparse spot
//     into a representative surrounding patch, and intersect the result
//     with the yellow mask.
//
// The returned mask is a subset of the yellow mask; its pixel count is the
// spotted-yellow tally.
func SpottedYellow(img *imaging.HSVImage, yellow *imaging.Mask, cfg config.Config) *imaging.Mask {
	interior := yellow.Erode(cfg.ErodeRadius)

	spots := imaging.Intersect(maskBand(img, cfg.Spot), interior)
	if spots.Count() == 0 {
		return imaging.NewMask(yellow.W, yellow.H)
	}

	return imaging.Intersect(spots.Dilate(cfg.DilateRadius), yellow)
}

// RegionSpotted reports whether a single segmented banana has interior
// spotting: at least cfg.MinSpotPixels brown-band pixels inside the eroded
// region mask. The gate keeps a lone noisy pixel from flipping a banana to
// "spotted".
func RegionSpotted(img *imaging.HSVImage, region *imaging.Mask, cfg config.Config) bool {
	interior := region.Erode(cfg.ErodeRadius)
	if interior.Count() == 0 {
		return false
	}

	threshold := cfg.MinSpotPixels
	if threshold < 1 {
		threshold = 1
	}

	count := 0
	band := cfg.Spot
	for i := 0; i < interior.Len(); i++ {
		if interior.AtIndex(i) && band.Contains(img.Hue[i], img.Sat[i], img.Val[i]) {
			count++
			if count >= threshold {
				return true
			}
		}
	}
	return false
}

// SpotMask is the debug view of spot detection: every brown-band pixel
// inside the banana mask, without the interior restriction.
func SpotMask(img *imaging.HSVImage, banana *imaging.Mask, cfg config.Config) *imaging.Mask {
	return imaging.Intersect(maskBand(img, cfg.Spot), banana)
}

package vision

import (
	"fmt"
	"image"

	"github.com/nathaniel-sheetz/BananaVision/internal/config"
	"github.com/nathaniel-sheetz/BananaVision/internal/imaging"
)

// DegenerateInputError reports an image too small for the configured
// structuring-element and window sizes. It is a recoverable per-image
// failure: a batch skips the image and continues with the rest.
type DegenerateInputError struct {
	Width, Height int
	MinSide       int
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("image %dx%d is smaller than the %d pixels required by the configured kernels",
		e.Width, e.Height, e.MinSide)
}

// Artifacts holds the intermediate products of one analysis for debug
// visualization. Producing them is a side query: nothing in the pipeline
// requires a debug sink to be present.
type Artifacts struct {
	Green    *imaging.Mask // green-band pixels inside the banana mask
	Yellow   *imaging.Mask // yellow-band pixels inside the banana mask
	Banana   *imaging.Mask // cleaned combined mask
	Spots    *imaging.Mask // brown-band pixels inside the banana mask
	Boundary *imaging.Mask // edge band carved out before segmentation
	Labels   *LabelMap     // segmented regions
}

// Analyzer runs the ripeness pipeline under one fixed configuration.
// It carries no per-image state; one Analyzer may process independent
// images concurrently.
type Analyzer struct {
	cfg config.Config
}

// New validates the configuration and returns an Analyzer. A configuration
// error aborts construction; it is never retried.
func New(cfg config.Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{cfg: cfg}, nil
}

// Analyze runs the full pipeline on a decoded image and returns its
// Summary. The image is borrowed for the duration of the call and never
// mutated.
func (a *Analyzer) Analyze(img image.Image) (Summary, error) {
	s, _, err := a.run(img, false)
	return s, err
}

// AnalyzeDebug runs the pipeline and additionally returns every
// intermediate artifact, including segmentation output in pixel mode.
func (a *Analyzer) AnalyzeDebug(img image.Image) (Summary, *Artifacts, error) {
	return a.run(img, true)
}

// minSide returns the smallest image dimension the configured kernels and
// windows can operate on.
func (a *Analyzer) minSide() int {
	need := 2*a.cfg.ErodeRadius + 1
	if n := 2*a.cfg.DilateRadius + 1; n > need {
		need = n
	}
	if a.cfg.LocalMaximaWindow > need {
		need = a.cfg.LocalMaximaWindow
	}
	// The edge detector's blur and Sobel kernels need at least 5 pixels.
	if need < 5 {
		need = 5
	}
	return need
}

func (a *Analyzer) run(img image.Image, debug bool) (Summary, *Artifacts, error) {
	cfg := a.cfg
	bounds := img.Bounds()

	if need := a.minSide(); bounds.Dx() < need || bounds.Dy() < need {
		return Summary{}, nil, &DegenerateInputError{
			Width:   bounds.Dx(),
			Height:  bounds.Dy(),
			MinSide: need,
		}
	}

	hsv := imaging.FromImage(img)
	masks := MaskColors(hsv, cfg)
	banana := BananaMask(masks, cfg)

	greenIn := imaging.Intersect(masks.Green, banana)
	yellowIn := imaging.Intersect(masks.Yellow, banana)

	var summary Summary
	var boundary *imaging.Mask
	var labels *LabelMap

	switch cfg.Mode {
	case config.ModeBanana:
		var separated *imaging.Mask
		separated, boundary = SeparateEdges(img, banana, cfg)
		labels = Segment(separated, cfg)
		summary = a.classifyRegions(hsv, labels, greenIn, yellowIn)

	default: // config.ModePixel
		spottedYellow := SpottedYellow(hsv, yellowIn, cfg)
		summary = a.classifyPixels(banana, greenIn, yellowIn, spottedYellow)
	}

	if !debug {
		return summary, nil, nil
	}

	if labels == nil {
		// Pixel mode: segmentation artifacts are still produced as a side
		// query for visualization.
		var separated *imaging.Mask
		separated, boundary = SeparateEdges(img, banana, cfg)
		labels = Segment(separated, cfg)
	}

	return summary, &Artifacts{
		Green:    greenIn,
		Yellow:   yellowIn,
		Banana:   banana,
		Spots:    SpotMask(hsv, banana, cfg),
		Boundary: boundary,
		Labels:   labels,
	}, nil
}

// classifyPixels tallies every banana-mask pixel through the classifier.
func (a *Analyzer) classifyPixels(banana, greenIn, yellowIn, spottedYellow *imaging.Mask) Summary {
	var green, clean, spotted int

	for i := 0; i < banana.Len(); i++ {
		if !banana.AtIndex(i) {
			continue
		}
		u := pixelUnit{
			green:   greenIn.AtIndex(i),
			yellow:  yellowIn.AtIndex(i),
			spotted: spottedYellow.AtIndex(i),
		}
		class, ok := Classify(u)
		if !ok {
			continue
		}
		switch class {
		case ClassGreen:
			green++
		case ClassYellowClean:
			clean++
		case ClassYellowSpotted:
			spotted++
		}
	}

	return Aggregate(green, clean, spotted, config.ModePixel)
}

// classifyRegions tallies every segmented region through the classifier,
// using the majority color vote across the region's pixels.
func (a *Analyzer) classifyRegions(hsv *imaging.HSVImage, labels *LabelMap, greenIn, yellowIn *imaging.Mask) Summary {
	var green, clean, spotted int

	for _, r := range labels.Regions() {
		var g, y int
		for _, i := range r.Pixels {
			if greenIn.AtIndex(i) {
				g++
			}
			if yellowIn.AtIndex(i) {
				y++
			}
		}

		u := regionUnit{
			green:   g,
			yellow:  y,
			spotted: g <= y && RegionSpotted(hsv, labels.RegionMask(r), a.cfg),
		}
		class, ok := Classify(u)
		if !ok {
			continue
		}
		switch class {
		case ClassGreen:
			green++
		case ClassYellowClean:
			clean++
		case ClassYellowSpotted:
			spotted++
		}
	}

	return Aggregate(green, clean, spotted, config.ModeBanana)
}

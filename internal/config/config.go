// Package config defines the tunable parameters for the banana ripeness
// pipeline and their validation rules.
//
// All tunables live in a single Config value that is passed explicitly into
// each pipeline stage. There is no process-wide mutable state, so one process
// can analyze images concurrently under different configurations.
//
// # Color Bands
//
// Color thresholds are expressed as inclusive HSV bands:
//   - Hue: 0-360 degrees on the color wheel
//   - Saturation: 0-100 percent
//   - Value: 0-100 percent
//
// The green and yellow bands must not overlap in hue: the green band's lower
// hue bound must be strictly greater than the yellow band's upper hue bound.
// Overlapping bands are a configuration error, detected by Validate before
// any pixel is processed.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Mode selects the unit of classification.
type Mode string

const (
	// ModePixel classifies and tallies individual banana-colored pixels.
	ModePixel Mode = "pixel"

	// ModeBanana segments the mask into individual bananas and tallies
	// whole regions.
	ModeBanana Mode = "banana"
)

// Band is an inclusive range on each HSV axis used to threshold pixels into
// a binary mask.
type Band struct {
	HueLo float64 // Lower hue bound in degrees (0-360)
	HueHi float64 // Upper hue bound in degrees (0-360)
	SatLo float64 // Lower saturation bound in percent (0-100)
	SatHi float64 // Upper saturation bound in percent (0-100)
	ValLo float64 // Lower value bound in percent (0-100)
	ValHi float64 // Upper value bound in percent (0-100)
}

// Contains reports whether the HSV sample falls inside the band. All bounds
// are inclusive.
func (b Band) Contains(h, s, v float64) bool {
	return h >= b.HueLo && h <= b.HueHi &&
		s >= b.SatLo && s <= b.SatHi &&
		v >= b.ValLo && v <= b.ValHi
}

// Config holds every tunable recognized by the pipeline.
type Config struct {
	// Green and Yellow are the banana color bands. They must be disjoint
	// in hue, with the green band strictly above the yellow band.
	Green  Band
	Yellow Band

	// Spot is the brown/tan band used for interior spot detection.
	Spot Band

	// ErodeRadius is the disc radius used to erode a yellow region down to
	// its interior before looking for spots. Banana tips and edges are
	// naturally darker and would otherwise false-positive as spots.
	ErodeRadius int

	// DilateRadius is the disc radius used to grow each detected spot
	// pixel into a representative spotted patch.
	DilateRadius int

	// MinSpotPixels is the minimum number of interior spot pixels before a
	// region counts as spotted, so a single noisy pixel does not flip a
	// banana to "spotted".
	MinSpotPixels int

	// MinRegionArea is the minimum pixel count for a connected component
	// to survive, both in the cleaned color mask and in the watershed
	// post-filter.
	MinRegionArea int

	// CannyLow and CannyHigh are the hysteresis thresholds of the edge
	// detector, on a 0-255 gradient-magnitude scale. Gradients above
	// CannyHigh are always edges; gradients between the two are kept only
	// when connected to a strong edge.
	CannyLow  int
	CannyHigh int

	// EdgeDilateIterations is the number of single-pixel dilation passes
	// applied to in-mask edges to form the boundary band that carves
	// touching bananas apart.
	EdgeDilateIterations int

	// LocalMaximaWindow is the side length (odd) of the neighborhood used
	// to find distance-transform local maxima when seeding the watershed.
	LocalMaximaWindow int

	// MinDistance is the minimum distance-transform value, in pixels, for
	// a local maximum to become a watershed seed.
	MinDistance float64

	// Mode selects pixel or banana classification.
	Mode Mode
}

// Default returns the stock configuration. Hue/saturation/value numbers
// derive from field-tuned OpenCV thresholds (H 0-179, S/V 0-255) rescaled to
// degrees and percent.
func Default() Config {
	return Config{
		Yellow: Band{HueLo: 30, HueHi: 64, SatLo: 40, SatHi: 100, ValLo: 40, ValHi: 100},
		Green:  Band{HueLo: 65, HueHi: 130, SatLo: 30, SatHi: 100, ValLo: 30, ValHi: 100},
		Spot:   Band{HueLo: 10, HueHi: 60, SatLo: 12, SatHi: 100, ValLo: 12, ValHi: 78},

		ErodeRadius:   7,
		DilateRadius:  6,
		MinSpotPixels: 10,
		MinRegionArea: 500,

		CannyLow:             120,
		CannyHigh:            240,
		EdgeDilateIterations: 2,

		LocalMaximaWindow: 15,
		MinDistance:       10,

		Mode: ModePixel,
	}
}

// ValidationError describes a malformed configuration. It satisfies the
// error interface and is returned by Validate and FromEnv.
type ValidationError struct {
	Field  string // The offending field, e.g. "green/yellow hue"
	Reason string // Human-readable explanation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// Validate checks that every range is well-formed (lower <= upper on each
// axis), kernel sizes are positive, and the green and yellow hue bands do
// not overlap. It returns a *ValidationError describing the first problem
// found, or nil.
func (c Config) Validate() error {
	for _, band := range []struct {
		name string
		b    Band
	}{
		{"green band", c.Green},
		{"yellow band", c.Yellow},
		{"spot band", c.Spot},
	} {
		if err := validateBand(band.name, band.b); err != nil {
			return err
		}
	}

	if c.Green.HueLo <= c.Yellow.HueHi {
		return &ValidationError{
			Field: "green/yellow hue",
			Reason: fmt.Sprintf("green lower hue bound (%.1f) must be strictly greater than yellow upper hue bound (%.1f)",
				c.Green.HueLo, c.Yellow.HueHi),
		}
	}

	if c.ErodeRadius <= 0 {
		return &ValidationError{Field: "erode radius", Reason: "must be positive"}
	}
	if c.DilateRadius <= 0 {
		return &ValidationError{Field: "dilate radius", Reason: "must be positive"}
	}
	if c.MinSpotPixels < 0 {
		return &ValidationError{Field: "min spot pixels", Reason: "must not be negative"}
	}
	if c.MinRegionArea < 0 {
		return &ValidationError{Field: "min region area", Reason: "must not be negative"}
	}
	if c.CannyLow < 0 || c.CannyHigh > 255 || c.CannyLow >= c.CannyHigh {
		return &ValidationError{Field: "canny thresholds", Reason: "need 0 <= low < high <= 255"}
	}
	if c.EdgeDilateIterations < 0 {
		return &ValidationError{Field: "edge dilate iterations", Reason: "must not be negative"}
	}
	if c.LocalMaximaWindow < 3 || c.LocalMaximaWindow%2 == 0 {
		return &ValidationError{Field: "local maxima window", Reason: "must be an odd number >= 3"}
	}
	if c.MinDistance < 0 {
		return &ValidationError{Field: "min distance", Reason: "must not be negative"}
	}
	if c.Mode != ModePixel && c.Mode != ModeBanana {
		return &ValidationError{Field: "mode", Reason: `must be "pixel" or "banana"`}
	}

	return nil
}

func validateBand(name string, b Band) error {
	type axis struct {
		label    string
		lo, hi   float64
		min, max float64
	}
	for _, a := range []axis{
		{"hue", b.HueLo, b.HueHi, 0, 360},
		{"saturation", b.SatLo, b.SatHi, 0, 100},
		{"value", b.ValLo, b.ValHi, 0, 100},
	} {
		if a.lo > a.hi {
			return &ValidationError{
				Field:  name,
				Reason: fmt.Sprintf("%s lower bound %.1f exceeds upper bound %.1f", a.label, a.lo, a.hi),
			}
		}
		if a.lo < a.min || a.hi > a.max {
			return &ValidationError{
				Field:  name,
				Reason: fmt.Sprintf("%s bounds [%.1f, %.1f] outside [%.0f, %.0f]", a.label, a.lo, a.hi, a.min, a.max),
			}
		}
	}
	return nil
}

// FromEnv returns the default configuration with overrides applied from the
// environment. A .env file in the working directory is loaded first if
// present (missing files are not an error).
//
// Recognized variables:
//
//	BANANA_MODE                    pixel | banana
//	BANANA_GREEN_BAND              six comma-separated numbers: hueLo,hueHi,satLo,satHi,valLo,valHi
//	BANANA_YELLOW_BAND             same format
//	BANANA_SPOT_BAND               same format
//	BANANA_ERODE_RADIUS            integer
//	BANANA_DILATE_RADIUS           integer
//	BANANA_MIN_SPOT_PIXELS         integer
//	BANANA_MIN_REGION_AREA         integer
//	BANANA_CANNY_LOW               integer
//	BANANA_CANNY_HIGH              integer
//	BANANA_EDGE_DILATE_ITERATIONS  integer
//	BANANA_LOCAL_MAXIMA_WINDOW     odd integer
//	BANANA_MIN_DISTANCE            number
//
// The assembled configuration is validated before being returned.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if v := os.Getenv("BANANA_MODE"); v != "" {
		cfg.Mode = Mode(v)
	}

	for _, b := range []struct {
		env  string
		dest *Band
	}{
		{"BANANA_GREEN_BAND", &cfg.Green},
		{"BANANA_YELLOW_BAND", &cfg.Yellow},
		{"BANANA_SPOT_BAND", &cfg.Spot},
	} {
		if v := os.Getenv(b.env); v != "" {
			band, err := parseBand(v)
			if err != nil {
				return Config{}, &ValidationError{Field: b.env, Reason: err.Error()}
			}
			*b.dest = band
		}
	}

	for _, n := range []struct {
		env  string
		dest *int
	}{
		{"BANANA_ERODE_RADIUS", &cfg.ErodeRadius},
		{"BANANA_DILATE_RADIUS", &cfg.DilateRadius},
		{"BANANA_MIN_SPOT_PIXELS", &cfg.MinSpotPixels},
		{"BANANA_MIN_REGION_AREA", &cfg.MinRegionArea},
		{"BANANA_CANNY_LOW", &cfg.CannyLow},
		{"BANANA_CANNY_HIGH", &cfg.CannyHigh},
		{"BANANA_EDGE_DILATE_ITERATIONS", &cfg.EdgeDilateIterations},
		{"BANANA_LOCAL_MAXIMA_WINDOW", &cfg.LocalMaximaWindow},
	} {
		if v := os.Getenv(n.env); v != "" {
			i, err := strconv.Atoi(v)
			if err != nil {
				return Config{}, &ValidationError{Field: n.env, Reason: "not an integer: " + v}
			}
			*n.dest = i
		}
	}

	if v := os.Getenv("BANANA_MIN_DISTANCE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, &ValidationError{Field: "BANANA_MIN_DISTANCE", Reason: "not a number: " + v}
		}
		cfg.MinDistance = f
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parseBand parses "hueLo,hueHi,satLo,satHi,valLo,valHi".
func parseBand(s string) (Band, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 6 {
		return Band{}, fmt.Errorf("want 6 comma-separated numbers, got %d", len(parts))
	}
	vals := make([]float64, 6)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Band{}, fmt.Errorf("component %d is not a number: %q", i+1, p)
		}
		vals[i] = f
	}
	return Band{
		HueLo: vals[0], HueHi: vals[1],
		SatLo: vals[2], SatHi: vals[3],
		ValLo: vals[4], ValHi: vals[5],
	}, nil
}

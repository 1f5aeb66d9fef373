package vision

import "github.com/nathaniel-sheetz/BananaVision/internal/config"

// Summary is the result record of one analyzed image.
//
// Invariant: Green + YellowClean + YellowSpotted == Total, and the three
// percentages sum to 100 whenever Total is positive. A zero Total is a valid
// empty result (no banana pixels or regions found), reported with all
// percentages at zero rather than a division fault.
type Summary struct {
	Mode config.Mode `json:"mode"`

	// Unit names what Total counts: "pixels" or "bananas".
	Unit string `json:"unit"`

	Green         int `json:"green"`
	YellowClean   int `json:"yellow_clean"`
	YellowSpotted int `json:"yellow_spotted"`
	Total         int `json:"total"`

	GreenPct         float64 `json:"green_percent"`
	YellowCleanPct   float64 `json:"yellow_clean_percent"`
	YellowSpottedPct float64 `json:"yellow_spotted_percent"`
}

// Aggregate tallies per-class counts into a Summary. In pixel mode the
// counts are labeled areas; in banana mode they are region counts.
func Aggregate(green, yellowClean, yellowSpotted int, mode config.Mode) Summary {
	s := Summary{
		Mode:          mode,
		Unit:          "pixels",
		Green:         green,
		YellowClean:   yellowClean,
		YellowSpotted: yellowSpotted,
		Total:         green + yellowClean + yellowSpotted,
	}
	if mode == config.ModeBanana {
		s.Unit = "bananas"
	}

	if s.Total > 0 {
		s.GreenPct = float64(green) / float64(s.Total) * 100
		s.YellowCleanPct = float64(yellowClean) / float64(s.Total) * 100
		s.YellowSpottedPct = float64(yellowSpotted) / float64(s.Total) * 100
	}

	return s
}

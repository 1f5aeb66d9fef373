// Package report renders one analysis Summary per image for the console or
// for machine consumption. Formatting lives outside the vision core: the
// core produces SummaryRecords, this package prints them.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/nathaniel-sheetz/BananaVision/internal/config"
	"github.com/nathaniel-sheetz/BananaVision/internal/vision"
)

const ruleWidth = 45

// Text renders a human-readable ripeness report for one image.
func Text(name string, s vision.Summary) string {
	totalLine := fmt.Sprintf("Total banana area: %s pixels", groupDigits(s.Total))
	if s.Mode == config.ModeBanana {
		totalLine = fmt.Sprintf("Total bananas counted: %s", groupDigits(s.Total))
	}

	lines := []string{
		fmt.Sprintf("Analyzing: %s", name),
		strings.Repeat("=", ruleWidth),
		"Banana Ripeness Analysis",
		strings.Repeat("-", ruleWidth),
		fmt.Sprintf("Green:              %6.1f%%", s.GreenPct),
		fmt.Sprintf("Yellow (no spots):  %6.1f%%", s.YellowCleanPct),
		fmt.Sprintf("Yellow (spotted):   %6.1f%%", s.YellowSpottedPct),
		strings.Repeat("-", ruleWidth),
		totalLine,
		strings.Repeat("=", ruleWidth),
	}
	return strings.Join(lines, "\n")
}

// Record is the JSON shape of one per-image result.
type Record struct {
	Image string `json:"image"`
	vision.Summary
}

// WriteJSON emits one Record as a single JSON line, suitable for streaming
// one result per analyzed image.
func WriteJSON(w io.Writer, name string, s vision.Summary) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(Record{Image: name, Summary: s}); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// groupDigits formats a non-negative integer with thousands separators.
func groupDigits(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

package vision

import (
	"testing"

	"github.com/nathaniel-sheetz/BananaVision/internal/config"
	"github.com/nathaniel-sheetz/BananaVision/internal/imaging"
)

func TestSegment_EmptyMask(t *testing.T) {
	lm := Segment(imaging.NewMask(64, 64), config.Default())
	if got := lm.MaxLabel(); got != 0 {
		t.Errorf("regions: got %d, want 0", got)
	}
	if got := len(lm.Regions()); got != 0 {
		t.Errorf("Regions(): got %d entries, want 0", got)
	}
}

func TestSegment_SingleRectangle(t *testing.T) {
	mask := maskRect(80, 80, 20, 20, 60, 60)

	lm := Segment(mask, config.Default())
	if got := lm.MaxLabel(); got != 1 {
		t.Fatalf("regions: got %d, want 1", got)
	}

	regions := lm.Regions()
	if regions[0].ID != 1 {
		t.Errorf("region ID: got %d, want 1", regions[0].ID)
	}
	if regions[0].Area != 1600 {
		t.Errorf("region area: got %d, want 1600", regions[0].Area)
	}
}

func TestSegment_TwoSeparateBlobs(t *testing.T) {
	mask := imaging.NewMask(120, 60)
	setRect(mask, 10, 15, 40, 45)
	setRect(mask, 70, 15, 100, 45)

	lm := Segment(mask, config.Default())
	if got := lm.MaxLabel(); got != 2 {
		t.Fatalf("regions: got %d, want 2", got)
	}

	regions := lm.Regions()
	for _, r := range regions {
		if r.Area != 900 {
			t.Errorf("region %d area: got %d, want 900", r.ID, r.Area)
		}
	}

	// Labels are dense and assigned in row-major order: the left blob
	// comes first.
	if got := lm.At(25, 30); got != 1 {
		t.Errorf("left blob label: got %d, want 1", got)
	}
	if got := lm.At(85, 30); got != 2 {
		t.Errorf("right blob label: got %d, want 2", got)
	}
}

func TestSegment_BarbellSplitsAtNeck(t *testing.T) {
	// Two squares joined by a thin bridge form a single connected
	// component, but the bridge is too narrow to host a seed, so the
	// flood divides the component into two regions at the neck.
	mask := imaging.NewMask(120, 60)
	setRect(mask, 10, 10, 40, 40)
	setRect(mask, 70, 10, 100, 40)
	setRect(mask, 40, 23, 70, 27)

	if got := labelComponents(mask).MaxLabel(); got != 1 {
		t.Fatalf("barbell connectivity: got %d components, want 1", got)
	}

	lm := Segment(mask, config.Default())
	if got := lm.MaxLabel(); got != 2 {
		t.Fatalf("regions: got %d, want 2", got)
	}

	// Every mask pixel is claimed by exactly one region.
	total := 0
	for _, r := range lm.Regions() {
		total += r.Area
	}
	if total != mask.Count() {
		t.Errorf("region areas sum to %d, want full mask coverage %d", total, mask.Count())
	}

	if left, right := lm.At(25, 25), lm.At(85, 25); left == right {
		t.Errorf("square interiors share label %d; want distinct regions", left)
	}
}

func TestSegment_MinDistanceSuppressesShallowBlobs(t *testing.T) {
	// With MinDistance raised far beyond the blob's interior depth no
	// seeds survive, and segmentation reports zero regions rather than
	// failing.
	mask := maskRect(80, 80, 20, 20, 60, 60)

	cfg := config.Default()
	cfg.MinDistance = 100

	lm := Segment(mask, cfg)
	if got := lm.MaxLabel(); got != 0 {
		t.Errorf("regions: got %d, want 0", got)
	}
}

func TestSegment_AreaFilterRelabelsDensely(t *testing.T) {
	// The small blob comes first in row-major order but falls under the
	// area floor; the surviving blob must be renumbered to 1.
	mask := imaging.NewMask(140, 80)
	setRect(mask, 5, 5, 35, 35)    // 900 px, dropped
	setRect(mask, 60, 20, 100, 60) // 1600 px, kept

	cfg := config.Default()
	cfg.MinRegionArea = 1000

	lm := Segment(mask, cfg)
	if got := lm.MaxLabel(); got != 1 {
		t.Fatalf("regions: got %d, want 1", got)
	}
	if got := lm.At(80, 40); got != 1 {
		t.Errorf("surviving blob label: got %d, want 1", got)
	}
	if got := lm.At(20, 20); got != 0 {
		t.Errorf("dropped blob label: got %d, want 0", got)
	}

	regions := lm.Regions()
	if len(regions) != 1 {
		t.Fatalf("Regions(): got %d entries, want 1", len(regions))
	}
	if regions[0].Area != 1600 {
		t.Errorf("surviving region area: got %d, want 1600", regions[0].Area)
	}
}

func TestDistanceTransform_RectangleProfile(t *testing.T) {
	// Chamfer 3-4 distance on a 9-wide strip: the center column sits 5
	// pixels from either side border, orthogonal steps cost 3.
	mask := maskRect(19, 9, 5, 0, 14, 9)
	dist := distanceTransform(mask)

	at := func(x, y int) int32 { return dist[y*19+x] }

	if got := at(4, 4); got != 0 {
		t.Errorf("background distance: got %d, want 0", got)
	}
	if got := at(5, 4); got != 3 {
		t.Errorf("border column: got %d, want 3", got)
	}
	if got := at(9, 4); got != 15 {
		t.Errorf("center column: got %d, want 15", got)
	}
	// The strip touches the image top edge; out-of-bounds does not count
	// as background, so distance keeps growing toward the vertical center.
	if got := at(9, 0); got != 15 {
		t.Errorf("top row of strip: got %d, want 15 (image border is not background)", got)
	}
}

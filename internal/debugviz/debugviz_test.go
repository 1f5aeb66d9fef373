package debugviz

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/nathaniel-sheetz/BananaVision/internal/config"
	intimg "github.com/nathaniel-sheetz/BananaVision/internal/imaging"
	"github.com/nathaniel-sheetz/BananaVision/internal/vision"
)

func sampleMask(w, h, x1, y1, x2, y2 int) *intimg.Mask {
	m := intimg.NewMask(w, h)
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			m.Set(x, y, true)
		}
	}
	return m
}

func TestOverlayMask_TintsOnlyMaskedPixels(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			src.Set(x, y, color.RGBA{100, 100, 100, 255})
		}
	}
	mask := sampleMask(20, 20, 5, 5, 10, 10)

	out := OverlayMask(src, mask, color.NRGBA{0, 255, 0, 255})

	tinted := out.NRGBAAt(7, 7)
	if tinted.G <= tinted.R {
		t.Errorf("masked pixel not tinted green: %+v", tinted)
	}
	plain := out.NRGBAAt(15, 15)
	if plain.R != 100 || plain.G != 100 || plain.B != 100 {
		t.Errorf("unmasked pixel changed: %+v", plain)
	}
}

func TestMaskImage(t *testing.T) {
	mask := sampleMask(10, 10, 2, 2, 5, 5)
	out := MaskImage(mask)

	if out.GrayAt(3, 3).Y != 255 {
		t.Error("set pixel must render white")
	}
	if out.GrayAt(8, 8).Y != 0 {
		t.Error("unset pixel must render black")
	}
}

func TestSaveAll_WritesArtifactSet(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 80, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 80; x++ {
			src.Set(x, y, color.RGBA{200, 180, 40, 255})
		}
	}

	banana := sampleMask(80, 80, 10, 10, 70, 70)
	art := &vision.Artifacts{
		Green:    sampleMask(80, 80, 10, 10, 40, 70),
		Yellow:   sampleMask(80, 80, 40, 10, 70, 70),
		Banana:   banana,
		Spots:    sampleMask(80, 80, 30, 30, 35, 35),
		Boundary: intimg.NewMask(80, 80),
		Labels:   vision.Segment(banana, config.Default()),
	}

	dir := t.TempDir()
	paths, err := SaveAll(dir, "sample", src, art)
	if err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	if len(paths) != 6 {
		t.Fatalf("artifacts written: got %d, want 6", len(paths))
	}

	for _, suffix := range []string{"green", "yellow", "spots", "boundary", "mask", "regions"} {
		path := filepath.Join(dir, "sample_"+suffix+".png")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing artifact %s: %v", path, err)
		}
	}
}

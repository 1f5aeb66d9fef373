package vision

import "github.com/nathaniel-sheetz/BananaVision/internal/imaging"

// LabelMap is a grid of region identifiers over an image: 0 marks background
// or unassigned pixels, positive values mark segmented banana regions.
//
// Identifiers are dense, starting at 1 with no gaps, and are assigned only
// to pixels that passed the minimum-area filter; all other foreground pixels
// collapse to background.
type LabelMap struct {
	W, H     int
	labels   []int32
	maxLabel int
}

// NewLabelMap returns an all-background label map of the given dimensions.
func NewLabelMap(w, h int) *LabelMap {
	return &LabelMap{W: w, H: h, labels: make([]int32, w*h)}
}

// At returns the region identifier at (x, y), or 0 for background and
// out-of-bounds coordinates.
func (lm *LabelMap) At(x, y int) int {
	if x < 0 || x >= lm.W || y < 0 || y >= lm.H {
		return 0
	}
	return int(lm.labels[y*lm.W+x])
}

// MaxLabel returns the highest region identifier, equal to the region count.
func (lm *LabelMap) MaxLabel() int { return lm.maxLabel }

// Region is a derived view over a LabelMap: the pixels sharing one
// identifier plus their cached count. Regions are valid only for the
// lifetime of one analysis call.
type Region struct {
	ID     int
	Area   int
	Pixels []int // flat row-major indices into the source image
}

// Regions collects the pixels of every region, ordered by identifier.
func (lm *LabelMap) Regions() []Region {
	if lm.maxLabel == 0 {
		return nil
	}

	regions := make([]Region, lm.maxLabel)
	for id := range regions {
		regions[id].ID = id + 1
	}
	for i, l := range lm.labels {
		if l > 0 {
			r := &regions[l-1]
			r.Pixels = append(r.Pixels, i)
			r.Area++
		}
	}
	return regions
}

// RegionMask renders one region as a binary mask over the full image.
func (lm *LabelMap) RegionMask(r Region) *imaging.Mask {
	m := imaging.NewMask(lm.W, lm.H)
	for _, i := range r.Pixels {
		m.SetIndex(i, true)
	}
	return m
}

// neighbors8 enumerates the 8-connected neighborhood in fixed scan order,
// so every algorithm visiting neighbors does so deterministically.
var neighbors8 = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// labelComponents assigns a dense identifier to every 8-connected component
// of the mask, scanning in row-major order with an explicit work queue
// (no recursion), so labeling is reproducible on identical input.
func labelComponents(m *imaging.Mask) *LabelMap {
	lm := NewLabelMap(m.W, m.H)
	queue := make([]int, 0, 64)
	next := int32(0)

	for i := 0; i < m.Len(); i++ {
		if !m.AtIndex(i) || lm.labels[i] != 0 {
			continue
		}
		next++
		lm.labels[i] = next
		queue = append(queue[:0], i)

		for len(queue) > 0 {
			p := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			px, py := p%m.W, p/m.W

			for _, off := range neighbors8 {
				nx, ny := px+off[0], py+off[1]
				if nx < 0 || nx >= m.W || ny < 0 || ny >= m.H {
					continue
				}
				n := ny*m.W + nx
				if m.AtIndex(n) && lm.labels[n] == 0 {
					lm.labels[n] = next
					queue = append(queue, n)
				}
			}
		}
	}

	lm.maxLabel = int(next)
	return lm
}

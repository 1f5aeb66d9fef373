package vision

import (
	"math"

	"github.com/nathaniel-sheetz/BananaVision/internal/config"
	"github.com/nathaniel-sheetz/BananaVision/internal/imaging"
)

// Chamfer weights for the 3-4 distance transform: orthogonal steps cost 3,
// diagonal steps cost 4, approximating Euclidean distance at 3x scale.
const (
	chamferOrtho = 3
	chamferDiag  = 4
)

// distInf stands in for "no background reached yet" during the chamfer
// passes. It is far above any reachable distance but safely below overflow
// when a chamfer weight is added.
const distInf int32 = math.MaxInt32 / 2

// Segment partitions the carved banana mask into individually countable
// regions.
//
// # Algorithm
//
//  1. Distance transform: every foreground pixel gets its chamfer 3-4
//     distance to the nearest background pixel.
//  2. Seeding: local maxima of the transform within a
//     cfg.LocalMaximaWindow-sized neighborhood whose distance is at least
//     cfg.MinDistance pixels become seed points; plateaus of equal distance
//     merge into one seed component via row-major connected-component
//     labeling, which is also the deterministic tie-break for equal
//     distance values.
//  3. Flooding: labels grow outward from the seeds in order of decreasing
//     distance, constrained to the foreground mask, using an explicit
//     bucketed work queue over array indices (no recursion). Where two
//     flood fronts meet at equal distance, the front whose pixel entered
//     the queue first in row-major order wins.
//  4. Post-filter: labeled components below cfg.MinRegionArea are dropped,
//     and the survivors are renumbered densely from 1 in order of their
//     original seed labels.
//
// Zero qualifying seeds yield an empty LabelMap with zero regions; that is
// a valid result, not an error.
func Segment(mask *imaging.Mask, cfg config.Config) *LabelMap {
	if mask.Count() == 0 {
		return NewLabelMap(mask.W, mask.H)
	}

	dist := distanceTransform(mask)

	seeds := localMaxima(mask, dist, cfg.LocalMaximaWindow, cfg.MinDistance)
	if seeds.Count() == 0 {
		return NewLabelMap(mask.W, mask.H)
	}

	// Grow seeds by one pixel so near-adjacent maxima of one banana fuse
	// into a single seed component.
	seeds = imaging.Intersect(seeds.Dilate(1), mask)

	lm := labelComponents(seeds)
	flood(lm, mask, dist)

	return filterAndRelabel(lm, cfg.MinRegionArea)
}

// distanceTransform computes the chamfer 3-4 distance of every foreground
// pixel to the nearest background pixel, in two passes over the grid.
// Pixels beyond the image border are not treated as background; a mask
// filling the whole frame keeps distInf everywhere, which downstream code
// handles as one giant plateau.
func distanceTransform(m *imaging.Mask) []int32 {
	w, h := m.W, m.H
	dist := make([]int32, w*h)

	for i := range dist {
		if m.AtIndex(i) {
			dist[i] = distInf
		}
	}

	relax := func(i int, neighbor int32, weight int32) {
		if neighbor+weight < dist[i] {
			dist[i] = neighbor + weight
		}
	}

	// Forward pass: left, up-left, up, up-right.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if dist[i] == 0 {
				continue
			}
			if x > 0 {
				relax(i, dist[i-1], chamferOrtho)
			}
			if y > 0 {
				relax(i, dist[i-w], chamferOrtho)
				if x > 0 {
					relax(i, dist[i-w-1], chamferDiag)
				}
				if x < w-1 {
					relax(i, dist[i-w+1], chamferDiag)
				}
			}
		}
	}

	// Backward pass: right, down-right, down, down-left.
	for y := h - 1; y >= 0; y-- {
		for x := w - 1; x >= 0; x-- {
			i := y*w + x
			if dist[i] == 0 {
				continue
			}
			if x < w-1 {
				relax(i, dist[i+1], chamferOrtho)
			}
			if y < h-1 {
				relax(i, dist[i+w], chamferOrtho)
				if x < w-1 {
					relax(i, dist[i+w+1], chamferDiag)
				}
				if x > 0 {
					relax(i, dist[i+w-1], chamferDiag)
				}
			}
		}
	}

	return dist
}

// localMaxima marks every foreground pixel whose distance is at least
// minDistance (in pixel units) and is not exceeded anywhere in the
// window x window neighborhood around it.
func localMaxima(m *imaging.Mask, dist []int32, window int, minDistance float64) *imaging.Mask {
	w, h := m.W, m.H
	half := window / 2
	minChamfer := int32(math.Round(minDistance * chamferOrtho))

	seeds := imaging.NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := dist[y*w+x]
			if !m.AtIndex(y*w+x) || d < minChamfer || d == 0 {
				continue
			}

			isMax := true
			for wy := max(0, y-half); wy <= min(h-1, y+half) && isMax; wy++ {
				for wx := max(0, x-half); wx <= min(w-1, x+half); wx++ {
					if dist[wy*w+wx] > d {
						isMax = false
						break
					}
				}
			}
			if isMax {
				seeds.Set(x, y, true)
			}
		}
	}
	return seeds
}

// flood grows the seed labels outward over the foreground mask in order of
// decreasing distance, using a bucket queue keyed by chamfer distance.
// Every assignment is deterministic: buckets are FIFO and neighbors are
// visited in the fixed neighbors8 order.
func flood(lm *LabelMap, mask *imaging.Mask, dist []int32) {
	w, h := lm.W, lm.H

	maxDist := int32(0)
	for i, d := range dist {
		if mask.AtIndex(i) && d > maxDist {
			maxDist = d
		}
	}
	if maxDist == distInf {
		// No background anywhere: the whole mask is one plateau and the
		// seed labels already cover it after flooding at a single level.
		maxDist = int32(len(dist))
	}

	level := func(d int32) int32 {
		if d > maxDist {
			return maxDist
		}
		return d
	}

	buckets := make([][]int, maxDist+1)
	for i := range lm.labels {
		if lm.labels[i] != 0 {
			l := level(dist[i])
			buckets[l] = append(buckets[l], i)
		}
	}

	for d := maxDist; d >= 1; d-- {
		// The slice may grow while we walk it: neighbors at this level are
		// appended behind the current position.
		for k := 0; k < len(buckets[d]); k++ {
			i := buckets[d][k]
			px, py := i%w, i/w

			for _, off := range neighbors8 {
				nx, ny := px+off[0], py+off[1]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				n := ny*w + nx
				if !mask.AtIndex(n) || lm.labels[n] != 0 {
					continue
				}
				lm.labels[n] = lm.labels[i]

				nl := level(dist[n])
				if nl > d {
					nl = d
				}
				buckets[nl] = append(buckets[nl], n)
			}
		}
		buckets[d] = nil
	}
}

// filterAndRelabel drops labeled components below minArea and renumbers the
// survivors densely from 1, preserving the original label order.
func filterAndRelabel(lm *LabelMap, minArea int) *LabelMap {
	areas := make([]int, lm.maxLabel+1)
	for _, l := range lm.labels {
		areas[int(l)]++
	}

	remap := make([]int32, lm.maxLabel+1)
	next := int32(0)
	for id := 1; id <= lm.maxLabel; id++ {
		if areas[id] >= minArea {
			next++
			remap[id] = next
		}
	}

	out := NewLabelMap(lm.W, lm.H)
	for i, l := range lm.labels {
		if l > 0 {
			out.labels[i] = remap[int(l)]
		}
	}
	out.maxLabel = int(next)
	return out
}

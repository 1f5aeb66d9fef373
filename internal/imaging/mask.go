package imaging

// Mask is a binary grid with the same dimensions as its source image.
//
// Each pipeline stage allocates its own output mask; set operations and
// morphology never mutate their receivers or arguments, so a mask produced
// early in the pipeline can safely be read again by later stages.
type Mask struct {
	W, H int
	bits []bool
}

// NewMask returns an all-false mask of the given dimensions.
func NewMask(w, h int) *Mask {
	return &Mask{W: w, H: h, bits: make([]bool, w*h)}
}

// At reports whether the pixel at (x, y) is set. Out-of-bounds coordinates
// report false, which matches the morphology convention that everything
// beyond the image is background.
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.W || y < 0 || y >= m.H {
		return false
	}
	return m.bits[y*m.W+x]
}

// Set assigns the pixel at (x, y). Out-of-bounds coordinates are ignored.
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || x >= m.W || y < 0 || y >= m.H {
		return
	}
	m.bits[y*m.W+x] = v
}

// AtIndex reports the pixel at a flat row-major index.
func (m *Mask) AtIndex(i int) bool { return m.bits[i] }

// SetIndex assigns the pixel at a flat row-major index.
func (m *Mask) SetIndex(i int, v bool) { m.bits[i] = v }

// Len returns the number of cells in the grid (W*H).
func (m *Mask) Len() int { return len(m.bits) }

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the mask.
func (m *Mask) Clone() *Mask {
	out := NewMask(m.W, m.H)
	copy(out.bits, m.bits)
	return out
}

// Union returns a new mask set wherever either input is set.
// Both inputs must share dimensions.
func Union(a, b *Mask) *Mask {
	out := NewMask(a.W, a.H)
	for i := range out.bits {
		out.bits[i] = a.bits[i] || b.bits[i]
	}
	return out
}

// Intersect returns a new mask set wherever both inputs are set.
func Intersect(a, b *Mask) *Mask {
	out := NewMask(a.W, a.H)
	for i := range out.bits {
		out.bits[i] = a.bits[i] && b.bits[i]
	}
	return out
}

// Subtract returns a new mask set wherever a is set and b is not.
func Subtract(a, b *Mask) *Mask {
	out := NewMask(a.W, a.H)
	for i := range out.bits {
		out.bits[i] = a.bits[i] && !b.bits[i]
	}
	return out
}

// discOffsets returns the relative coordinates of a disc structuring element
// of the given radius: every (dx, dy) with dx*dx+dy*dy <= radius*radius.
func discOffsets(radius int) [][2]int {
	offsets := make([][2]int, 0, (2*radius+1)*(2*radius+1))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				offsets = append(offsets, [2]int{dx, dy})
			}
		}
	}
	return offsets
}

// Erode returns a new mask where a pixel survives only if every pixel under
// a disc structuring element of the given radius is set. Pixels beyond the
// image border count as background, so set regions shrink away from the
// image edge as well.
func (m *Mask) Erode(radius int) *Mask {
	offsets := discOffsets(radius)
	out := NewMask(m.W, m.H)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if !m.bits[y*m.W+x] {
				continue
			}
			keep := true
			for _, off := range offsets {
				if !m.At(x+off[0], y+off[1]) {
					keep = false
					break
				}
			}
			out.bits[y*m.W+x] = keep
		}
	}
	return out
}

// Dilate returns a new mask where a pixel is set if any pixel under a disc
// structuring element of the given radius is set.
func (m *Mask) Dilate(radius int) *Mask {
	offsets := discOffsets(radius)
	out := NewMask(m.W, m.H)
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if !m.bits[y*m.W+x] {
				continue
			}
			for _, off := range offsets {
				out.Set(x+off[0], y+off[1], true)
			}
		}
	}
	return out
}

// FillHoles returns a new mask with every enclosed background pocket set.
// Background is flooded from the image border with an explicit stack
// (4-connected, no recursion); unset pixels the flood never reaches are
// holes inside foreground regions and become foreground.
func (m *Mask) FillHoles() *Mask {
	outside := make([]bool, len(m.bits))
	stack := make([]int, 0, 2*(m.W+m.H))

	push := func(x, y int) {
		if x < 0 || x >= m.W || y < 0 || y >= m.H {
			return
		}
		i := y*m.W + x
		if m.bits[i] || outside[i] {
			return
		}
		outside[i] = true
		stack = append(stack, i)
	}

	for x := 0; x < m.W; x++ {
		push(x, 0)
		push(x, m.H-1)
	}
	for y := 0; y < m.H; y++ {
		push(0, y)
		push(m.W-1, y)
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%m.W, i/m.W
		push(x-1, y)
		push(x+1, y)
		push(x, y-1)
		push(x, y+1)
	}

	out := NewMask(m.W, m.H)
	for i := range out.bits {
		out.bits[i] = m.bits[i] || !outside[i]
	}
	return out
}

// Open performs erosion followed by dilation, removing isolated specks
// smaller than the structuring element.
func (m *Mask) Open(radius int) *Mask {
	return m.Erode(radius).Dilate(radius)
}

// Close performs dilation followed by erosion, filling gaps smaller than
// the structuring element.
func (m *Mask) Close(radius int) *Mask {
	return m.Dilate(radius).Erode(radius)
}

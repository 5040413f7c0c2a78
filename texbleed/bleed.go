// Package texbleed implements the two-pass 8SSEDT seam bleed.
package texbleed

// emptyOffset is the "infinitely far" offset seeded into unsolved cells
// and the permanent one-cell border. Its squared magnitude exceeds any
// distance reachable on a real grid, so any propagated seed beats it.
const emptyOffset = 9999

// cell is one entry of the offset grid: the integer offset, in pixels,
// from this cell to its (currently) nearest seed.
type cell struct {
	dx, dy int32
}

// dist2 returns the squared Euclidean magnitude of the offset.
func (c cell) dist2() int32 {
	return c.dx*c.dx + c.dy*c.dy
}

// sweep holds the grid state of one Bleed call. The grid is (W+2)×(H+2):
// interior cells map 1:1 to pixels, the border stays at emptyOffset so
// neighbor reads never need bounds checks.
type sweep struct {
	grid    []cell
	gstride int // cells per grid row (W+2)
	origin  int // index of the cell for pixel (0,0)
}

// at returns a pointer to the cell of pixel (x,y).
func (s *sweep) at(x, y int) *cell {
	return &s.grid[s.origin+y*s.gstride+x]
}

// compare propagates the neighbor at relative position (nx,ny) into the
// cell of pixel (x,y): the neighbor's offset, shifted by the step taken,
// replaces the cell's offset when it is strictly nearer. Ties keep the
// incumbent, which is what makes the sweep schedule's outcome
// deterministic.
func (s *sweep) compare(x, y int, nx, ny int32) {
	p := s.at(x, y)
	other := s.grid[s.origin+(y+int(ny))*s.gstride+x+int(nx)]
	other.dx += nx
	other.dy += ny
	if other.dist2() < p.dist2() {
		*p = other
	}
}

// Bleed fills every fully transparent pixel of img (alpha byte exactly 0)
// with the bytes of its nearest seed pixel (alpha strictly above
// opts.Threshold), forcing the destination alpha back to 0 so the
// transparency structure of the texture is preserved. Pixels that are not
// fully transparent are never modified, and an image with no seed at all
// is left untouched. A nil opts means DefaultOptions.
//
// The distance metric is Euclidean, computed exactly on integer offsets
// by the classic two-pass 8SSEDT schedule; see the package documentation
// for the tie-breaking contract.
//
// Complexity: O(W×H) time, O(W×H) memory.
func Bleed(img *Image, opts *Options) error {
	// 1) Validate the descriptor and options.
	if err := img.validate(); err != nil {
		return err
	}
	if opts == nil {
		def := DefaultOptions()
		opts = &def
	}

	// 2) Allocate the bordered offset grid, everything "infinitely far".
	w, h := img.W, img.H
	gstride := w + 2
	s := sweep{
		grid:    make([]cell, gstride*(h+2)),
		gstride: gstride,
		origin:  gstride + 1,
	}
	for i := range s.grid {
		s.grid[i] = cell{dx: emptyOffset, dy: emptyOffset}
	}

	// 3) Seed from the solid pixels.
	any := false
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if img.Pix[img.pixel(x, y)+img.AlphaIndex] > opts.Threshold {
				*s.at(x, y) = cell{}
				any = true
			}
		}
	}
	if !any {
		return nil
	}

	// 4) Forward pass: rows top-to-bottom. Left-to-right pulls from the
	// left and the three upper neighbors, then a right-to-left half-row
	// pulls from the right.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.compare(x, y, -1, 0)
			s.compare(x, y, 0, -1)
			s.compare(x, y, -1, -1)
			s.compare(x, y, 1, -1)
		}
		for x := w - 1; x >= 0; x-- {
			s.compare(x, y, 1, 0)
		}
	}

	// 5) Backward pass: the mirror schedule, rows bottom-to-top.
	for y := h - 1; y >= 0; y-- {
		for x := w - 1; x >= 0; x-- {
			s.compare(x, y, 1, 0)
			s.compare(x, y, 0, 1)
			s.compare(x, y, -1, 1)
			s.compare(x, y, 1, 1)
		}
		for x := 0; x < w; x++ {
			s.compare(x, y, -1, 0)
		}
	}

	// 6) Copy-back: every alpha==0 pixel takes the bytes of its nearest
	// seed, then has its alpha forced back to 0.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := s.at(x, y)
			dst := img.pixel(x, y)
			if img.Pix[dst+img.AlphaIndex] != 0 {
				continue
			}
			src := img.pixel(x+int(p.dx), y+int(p.dy))
			copy(img.Pix[dst:dst+img.PixStride], img.Pix[src:src+img.PixStride])
			img.Pix[dst+img.AlphaIndex] = 0
		}
	}

	return nil
}

// Package raycast: packet traversal of the implicit tree.
//
// Rays are processed in packets of up to PacketSize lanes. The descent
// keeps a small explicit stack of (node, activeCount) pairs; at every
// internal node the packet is partitioned in place so that only lanes
// still intersecting the subtree stay in the active prefix. All
// lane-parallel arrays are swapped together, so lane i refers to one and
// the same original ray throughout the descent.
package raycast

// packet holds the lane-parallel scratch state of one ray batch. It is
// stack-resident for the duration of a Trace call; nothing escapes.
type packet struct {
	rx, ry, rz [PacketSize]float32 // origins
	dx, dy, dz [PacketSize]float32 // directions
	ix, iy, iz [PacketSize]float32 // inverse directions (may be ±Inf)
	maxt       [PacketSize]float32 // per-lane pruning t
	rayIdx     [PacketSize]int     // back-pointer into the caller's slice, -1 for padding

	outMask          [PacketSize]bool    // per-lane kernel verdict
	outU, outV, outT [PacketSize]float32 // per-lane kernel results
}

// swapLanes exchanges lanes d and s across every lane-parallel array,
// preserving the lane-to-ray pairing. outU/outV/outT are excluded: they
// are only read in leaf resolve, which never reorders lanes.
func (p *packet) swapLanes(d, s int) {
	p.rx[d], p.rx[s] = p.rx[s], p.rx[d]
	p.ry[d], p.ry[s] = p.ry[s], p.ry[d]
	p.rz[d], p.rz[s] = p.rz[s], p.rz[d]
	p.dx[d], p.dx[s] = p.dx[s], p.dx[d]
	p.dy[d], p.dy[s] = p.dy[s], p.dy[d]
	p.dz[d], p.dz[s] = p.dz[s], p.dz[d]
	p.ix[d], p.ix[s] = p.ix[s], p.ix[d]
	p.iy[d], p.iy[s] = p.iy[s], p.iy[d]
	p.iz[d], p.iz[s] = p.iz[s], p.iz[d]
	p.maxt[d], p.maxt[s] = p.maxt[s], p.maxt[d]
	p.rayIdx[d], p.rayIdx[s] = p.rayIdx[s], p.rayIdx[d]
	p.outMask[d], p.outMask[s] = p.outMask[s], p.outMask[d]
}

// frame is one stack entry of the descent.
type frame struct {
	node   int
	active int
}

// traceStackDepth bounds the descent stack: one frame per tree level plus
// the terminator. 64 covers any leaf row addressable by int32 indices.
const traceStackDepth = 64

// Trace fires every ray in rays against the tree and writes the output
// fields of each ray in place. Mode and filtering come from opts; a nil
// opts means DefaultTraceOptions (plain first-hit).
//
// In first-hit mode each ray ends with Hit naming its closest accepted
// triangle (opacity >= 0.5), T/U/V describing that intersection and
// Visibility 0; on a miss Hit is NoHit, T keeps its input value and
// Visibility stays 1. In visibility mode (Cutoff in [0,1]) Hit/T/U/V are
// left at their miss values and Visibility accumulates the product of
// (1-opacity) over crossed triangles, short-circuiting per ray once it
// falls to Cutoff or below.
//
// Filter invocations for a given ray follow tree-traversal order (the
// left-biased DFS intersected with leaf order), not geometric order.
//
// Returns ErrNilTree / ErrTreeNotBuilt on lifecycle misuse and
// ErrBadCutoff from option validation. There is no batch size limit.
func (t *Tree) Trace(rays []Ray, opts *TraceOptions) error {
	// 1) Lifecycle and option validation.
	if t == nil {
		return ErrNilTree
	}
	if t.Leafs == nil {
		return ErrTreeNotBuilt
	}
	if opts == nil {
		def := DefaultTraceOptions()
		opts = &def
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	var p packet
	var stack [traceStackDepth]frame
	firstHit := opts.Cutoff < 0

	// 2) Process the batch packet by packet.
	for base := 0; base < len(rays); {
		npacket := len(rays) - base
		if npacket > PacketSize {
			npacket = PacketSize
		}
		next := base + npacket

		// 2.1) Capture rays into the lane arrays and reset their outputs.
		for n := 0; n < npacket; n++ {
			r := &rays[base+n]
			p.rx[n], p.ry[n], p.rz[n] = r.Org[0], r.Org[1], r.Org[2]
			p.dx[n], p.dy[n], p.dz[n] = r.Dir[0], r.Dir[1], r.Dir[2]
			p.ix[n] = 1 / r.Dir[0] // relies on IEEE infinity for axis-parallel rays
			p.iy[n] = 1 / r.Dir[1]
			p.iz[n] = 1 / r.Dir[2]
			p.maxt[n] = r.T
			p.rayIdx[n] = base + n

			r.Visibility = 1
			r.Hit = NoHit
			r.U = 0
			r.V = 0
		}

		// 2.2) Pad to a multiple of 4 by duplicating the last real ray.
		// Padded lanes carry rayIdx -1 so no hit is ever written back.
		for npacket&3 != 0 {
			d, s := npacket, npacket-1
			p.rx[d], p.ry[d], p.rz[d] = p.rx[s], p.ry[s], p.rz[s]
			p.dx[d], p.dy[d], p.dz[d] = p.dx[s], p.dy[s], p.dz[s]
			p.ix[d], p.iy[d], p.iz[d] = p.ix[s], p.iy[s], p.iz[s]
			p.maxt[d] = p.maxt[s]
			p.rayIdx[d] = -1
			npacket++
		}

		// 2.3) Push the (0,0) terminator and start at the root with the
		// whole packet active.
		stack[0] = frame{}
		sp := 1
		node := 0
		ncur := npacket

		for {
			if node >= t.FirstLeaf {
				// 3) Leaf: run every triangle against all active lanes.
				leaf := &t.Leafs[node-t.FirstLeaf]
				for k := int32(0); k < leaf.TriCount; k++ {
					triIdx := t.LeafTris[leaf.TriIndex+k]
					tri := 3 * int(triIdx)
					v0 := t.Vtxs[int(t.Tris[tri])*3:]
					v1 := t.Vtxs[int(t.Tris[tri+1])*3:]
					v2 := t.Vtxs[int(t.Tris[tri+2])*3:]
					if !p.intersectTri(v0, v1, v2, ncur) {
						continue
					}

					// 3.1) Resolve each hitting lane against its ray.
					for n := 0; n < ncur; n++ {
						if !p.outMask[n] || p.rayIdx[n] < 0 {
							continue
						}
						r := &rays[p.rayIdx[n]]
						if p.outT[n] >= r.T {
							continue
						}
						opacity := float32(1)
						if opts.Filter != nil {
							opacity = opts.Filter(int(triIdx), p.rayIdx[n],
								p.outT[n], p.outU[n], p.outV[n], opts.Userdata)
						}
						if firstHit {
							// 3.2a) First-hit: accept solid-enough hits,
							// tighten this lane so later tests must beat it.
							if opacity >= 0.5 {
								r.T = p.outT[n]
								r.U = p.outU[n]
								r.V = p.outV[n]
								r.Hit = triIdx
								r.Visibility = 0
								p.maxt[n] = p.outT[n]
							}
						} else {
							// 3.2b) Visibility: accumulate blockage; once
							// the cutoff is reached this lane stops testing.
							r.Visibility *= 1 - opacity
							if r.Visibility <= opts.Cutoff {
								p.maxt[n] = 0
							}
						}
					}
				}
			} else {
				// 4) Internal node: slab-test all active lanes.
				if p.intersectBox(&t.Nodes[node], ncur) {
					// 4.1) Partition: misses swap to the tail, the active
					// prefix shrinks to the hitting lanes.
					nhit := 0
					for nhit < ncur {
						if !p.outMask[nhit] {
							ncur--
							p.swapLanes(nhit, ncur)
						} else {
							nhit++
						}
					}

					if ncur > 0 {
						// 4.2) Round up to whole lane groups; the re-tested
						// tail lanes are live rays, not padding. Push the
						// right child, descend left.
						ncur = (ncur + 3) &^ 3
						stack[sp] = frame{node: 2*node + 2, active: ncur}
						sp++
						node = 2*node + 1
						continue
					}
				}
			}

			// 5) Pop. The terminator's node 0 ends the packet.
			sp--
			node = stack[sp].node
			ncur = stack[sp].active
			if node == 0 {
				break
			}
		}

		base = next
	}

	return nil
}

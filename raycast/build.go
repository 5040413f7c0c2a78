// Package raycast: implicit-BVH construction over a triangle soup.
//
// The builder produces a complete binary tree stored as heap-indexed
// arrays: leafCount is the smallest power of two with
// leafCount*MaxLeafTris >= T, the leafCount-1 internal nodes carry bounding
// boxes, and the leaves address runs of a permutation of [0,T). The split
// is an object median on the longest axis, so the recursion always bottoms
// out exactly at the leaf row.
package raycast

import (
	"fmt"
	"math"
)

// NewTree builds the acceleration structure for the given geometry.
//
// vtxs packs x,y,z float32 triples; tris packs vertex-index triples.
// Both arrays are retained by reference: they must outlive the tree and
// stay unmodified while any Trace runs. An empty soup (no triangles) is
// legal and yields a tree every trace misses.
//
// Returns ErrVertexArity / ErrTriangleArity when an array is not packed in
// triples, and ErrVertexIndexRange when a triangle names a missing vertex.
//
// Complexity: O(T log T) expected time (quickselect per level), O(T) memory.
func NewTree(vtxs []float32, tris []int32) (*Tree, error) {
	// 1) Validate the soup shape.
	if len(vtxs)%3 != 0 {
		return nil, ErrVertexArity
	}
	if len(tris)%3 != 0 {
		return nil, ErrTriangleArity
	}
	vtxCount := int32(len(vtxs) / 3)
	for i, idx := range tris {
		if idx < 0 || idx >= vtxCount {
			return nil, fmt.Errorf("NewTree: triangle %d vertex slot %d holds %d: %w",
				i/3, i%3, idx, ErrVertexIndexRange)
		}
	}

	// 2) Size the implicit tree: the smallest power-of-two leaf row that
	//    holds every triangle at MaxLeafTris per leaf.
	triCount := len(tris) / 3
	leafCount := 1
	for leafCount*MaxLeafTris < triCount {
		leafCount <<= 1
	}

	// 3) Allocate the three builder-owned arrays.
	t := &Tree{
		Vtxs:      vtxs,
		Tris:      tris,
		FirstLeaf: leafCount - 1,
		Nodes:     make([]Node, leafCount-1),
		Leafs:     make([]Leaf, leafCount),
		LeafTris:  make([]int32, triCount),
	}

	// 4) Seed the permutation with the identity.
	for n := 0; n < triCount; n++ {
		t.LeafTris[n] = int32(n)
	}

	// 5) Recursively partition from the root.
	t.buildNodes(0, 0, triCount)

	return t, nil
}

// Free releases the builder-owned arrays. The caller's geometry is left
// untouched. Freeing an already-freed tree is a no-op.
// Complexity: O(1).
func (t *Tree) Free() {
	if t == nil {
		return
	}
	t.Nodes = nil
	t.Leafs = nil
	t.LeafTris = nil
	t.FirstLeaf = -1
}

// buildNodes recurses over (nodeIdx, triangle range). Leaf slots record
// their range; internal nodes compute their box, median-split the range on
// the longest axis and descend into both children.
func (t *Tree) buildNodes(nodeIdx, triIndex, triCount int) {
	// Leaf slot: record the range, done. The sizing in NewTree guarantees
	// triCount <= MaxLeafTris here.
	if nodeIdx >= t.FirstLeaf {
		t.Leafs[nodeIdx-t.FirstLeaf] = Leaf{
			TriIndex: int32(triIndex),
			TriCount: int32(triCount),
		}
		return
	}

	// Bounds over every vertex of every triangle in the range.
	bmin := [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	bmax := [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for n := 0; n < triCount; n++ {
		tri := t.LeafTris[triIndex+n]
		for v := 0; v < 3; v++ {
			base := int(t.Tris[3*int(tri)+v]) * 3
			for a := 0; a < 3; a++ {
				p := t.Vtxs[base+a]
				if p < bmin[a] {
					bmin[a] = p
				}
				if p > bmax[a] {
					bmax[a] = p
				}
			}
		}
	}
	t.Nodes[nodeIdx] = Node{BMin: bmin, BMax: bmax}

	// Longest axis; a later axis wins only if strictly longer.
	axis := 0
	if bmax[1]-bmin[1] > bmax[axis]-bmin[axis] {
		axis = 1
	}
	if bmax[2]-bmin[2] > bmax[axis]-bmin[axis] {
		axis = 2
	}

	// Object median: exactly floor(triCount/2) triangles on the left.
	leftCount := triCount >> 1
	t.quickselect(triIndex, triIndex+triCount-1, triIndex+leftCount, axis)

	t.buildNodes(2*nodeIdx+1, triIndex, leftCount)
	t.buildNodes(2*nodeIdx+2, triIndex+leftCount, triCount-leftCount)
}

// triKey returns the sort key of triangle tri on the given axis: the axis
// coordinate of the triangle's first vertex.
func (t *Tree) triKey(tri int32, axis int) float32 {
	return t.Vtxs[int(t.Tris[3*int(tri)])*3+axis]
}

// partitionTris runs one Lomuto partition of LeafTris[lo..hi] (inclusive)
// around the key of the last element, returning the pivot's final slot.
func (t *Tree) partitionTris(lo, hi, axis int) int {
	split := t.triKey(t.LeafTris[hi], axis)
	dest := lo
	for i := lo; i < hi; i++ {
		if t.triKey(t.LeafTris[i], axis) < split {
			t.LeafTris[dest], t.LeafTris[i] = t.LeafTris[i], t.LeafTris[dest]
			dest++
		}
	}
	t.LeafTris[dest], t.LeafTris[hi] = t.LeafTris[hi], t.LeafTris[dest]

	return dest
}

// quickselect rearranges LeafTris[lo..hi] (inclusive) so that slot mid
// holds the element it would hold in sorted order, with smaller keys to
// its left. Linear expected time.
func (t *Tree) quickselect(lo, hi, mid, axis int) {
	for {
		pivot := t.partitionTris(lo, hi, axis)
		switch {
		case mid < pivot:
			hi = pivot - 1
		case mid > pivot:
			lo = pivot + 1
		default:
			return
		}
	}
}

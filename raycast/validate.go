// Package raycast: structural self-check of a built tree.
package raycast

import (
	"fmt"
)

// Validate checks the build invariants of the tree:
//
//   - the leaf row is a power of two and FirstLeaf = leafCount-1;
//   - the leaves' triangle ranges tile [0,T) exactly, in order, each with
//     a count in [1, MaxLeafTris] (0 allowed only for the empty tree);
//   - the leaf-triangle permutation mentions every triangle exactly once;
//   - every internal node's box contains every vertex of every triangle
//     reachable through it, and the boxes of both children.
//
// Intended for tests and for debugging callers that mutate geometry under
// a live tree. Returns nil or a wrapped ErrCorruptTree.
//
// Complexity: O(T log L + L) time (each internal node rescans the
// triangles beneath it), O(T) memory.
func (t *Tree) Validate() error {
	if t == nil {
		return ErrNilTree
	}
	if t.Leafs == nil {
		return ErrTreeNotBuilt
	}

	// 1) Shape of the implicit tree.
	leafCount := len(t.Leafs)
	if leafCount == 0 || leafCount&(leafCount-1) != 0 {
		return fmt.Errorf("Validate: leaf count %d not a power of two: %w", leafCount, ErrCorruptTree)
	}
	if t.FirstLeaf != leafCount-1 || len(t.Nodes) != t.FirstLeaf {
		return fmt.Errorf("Validate: firstLeaf %d / %d nodes / %d leaves inconsistent: %w",
			t.FirstLeaf, len(t.Nodes), leafCount, ErrCorruptTree)
	}

	// 2) Leaf ranges tile [0,T) and the permutation is total.
	triCount := t.TriCount()
	if len(t.LeafTris) != triCount {
		return fmt.Errorf("Validate: permutation holds %d of %d triangles: %w",
			len(t.LeafTris), triCount, ErrCorruptTree)
	}
	offset := int32(0)
	for i, leaf := range t.Leafs {
		if leaf.TriIndex != offset {
			return fmt.Errorf("Validate: leaf %d starts at %d, want %d: %w",
				i, leaf.TriIndex, offset, ErrCorruptTree)
		}
		if leaf.TriCount < 0 || leaf.TriCount > MaxLeafTris {
			return fmt.Errorf("Validate: leaf %d holds %d triangles: %w",
				i, leaf.TriCount, ErrCorruptTree)
		}
		if leaf.TriCount == 0 && triCount > 0 {
			return fmt.Errorf("Validate: leaf %d empty in a non-empty tree: %w", i, ErrCorruptTree)
		}
		offset += leaf.TriCount
	}
	if int(offset) != triCount {
		return fmt.Errorf("Validate: leaves cover %d of %d triangles: %w", offset, triCount, ErrCorruptTree)
	}
	seen := make([]bool, triCount)
	for _, tri := range t.LeafTris {
		if tri < 0 || int(tri) >= triCount || seen[tri] {
			return fmt.Errorf("Validate: triangle %d missing or repeated in permutation: %w",
				tri, ErrCorruptTree)
		}
		seen[tri] = true
	}

	// 3) Box containment, root downward.
	if len(t.Nodes) > 0 {
		if err := t.validateNode(0); err != nil {
			return err
		}
	}

	return nil
}

// validateNode checks node nodeIdx's box against its leaf triangles and,
// for internal children, against their stored boxes.
func (t *Tree) validateNode(nodeIdx int) error {
	node := &t.Nodes[nodeIdx]

	// Every vertex of every triangle beneath this node must be inside.
	lo, hi := t.subtreeRange(nodeIdx)
	for _, tri := range t.LeafTris[lo:hi] {
		for v := 0; v < 3; v++ {
			base := int(t.Tris[3*int(tri)+v]) * 3
			for a := 0; a < 3; a++ {
				pos := t.Vtxs[base+a]
				if pos < node.BMin[a] || pos > node.BMax[a] {
					return fmt.Errorf("Validate: node %d box excludes triangle %d: %w",
						nodeIdx, tri, ErrCorruptTree)
				}
			}
		}
	}

	for _, child := range [2]int{2*nodeIdx + 1, 2*nodeIdx + 2} {
		if child >= t.FirstLeaf {
			continue
		}
		cn := &t.Nodes[child]
		for a := 0; a < 3; a++ {
			if cn.BMin[a] < node.BMin[a] || cn.BMax[a] > node.BMax[a] {
				return fmt.Errorf("Validate: node %d box excludes child %d: %w",
					nodeIdx, child, ErrCorruptTree)
			}
		}
		if err := t.validateNode(child); err != nil {
			return err
		}
	}

	return nil
}

// subtreeRange returns the half-open permutation range covered by the
// leaves beneath nodeIdx.
func (t *Tree) subtreeRange(nodeIdx int) (lo, hi int) {
	first, last := nodeIdx, nodeIdx
	for first < t.FirstLeaf {
		first = 2*first + 1
		last = 2*last + 2
	}
	lo = int(t.Leafs[first-t.FirstLeaf].TriIndex)
	end := t.Leafs[last-t.FirstLeaf]
	hi = int(end.TriIndex + end.TriCount)

	return lo, hi
}

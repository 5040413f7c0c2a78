// Package raycast traces packets of rays against a static triangle soup,
// accelerated by a balanced implicit bounding volume hierarchy.
//
// What:
//
//   - NewTree builds an immutable BVH over caller-owned vertex and triangle
//     arrays: axis-aligned boxes at internal nodes, small triangle lists at
//     leaves, all stored in heap-indexed arrays (children of node i are
//     2i+1 and 2i+2, no pointers).
//   - Tree.Trace streams batches of rays through the tree four lanes at a
//     time, partitioning each packet in place at every node so that SIMD
//     work concentrates on the lanes that still matter.
//   - Two query modes share one entry point: first-hit (closest accepted
//     intersection per ray) and visibility accumulation (∏(1−opacity) with
//     an early cutoff), selected by TraceOptions.Cutoff.
//   - An optional FilterFunc supplies per-intersection opacity, enabling
//     transparency masks and per-triangle culling.
//
// Why:
//
//   - Ambient-occlusion baking: build once, fire millions of hemisphere
//     rays, read back visibility.
//   - Shadow and thickness queries for offline tools.
//   - Any closest-hit lookup over static geometry.
//
// Complexity:
//
//   - NewTree:    O(T log T) expected time, O(T) memory (T = triangles).
//   - Tree.Trace: O(R/4 · log T) box/triangle tests expected per batch of
//     R rays on well-shaped scenes; worst case O(R·T).
//
// Concurrency:
//
//   - A built Tree is read-only. Callers may share one Tree across
//     goroutines as long as each goroutine traces its own ray slice.
//
// Errors:
//
//   - ErrNilTree, ErrTreeNotBuilt: misuse of the Tree lifecycle.
//   - ErrVertexArity, ErrTriangleArity: arrays not packed in triples.
//   - ErrVertexIndexRange: a triangle names a vertex that does not exist.
//   - ErrBadCutoff: cutoff is NaN or above 1.
package raycast

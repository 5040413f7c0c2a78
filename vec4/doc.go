// Package vec4 provides a portable 4-wide float32 lane abstraction for
// packet geometry kernels.
//
// What:
//
//   - Float4 holds four float32 lanes with element-wise Add/Sub/Mul/Div,
//     Min/Max, and ordered comparisons producing a Mask4.
//   - Mask4 holds four lane predicates with And, Or and an Any reduction.
//   - Load/Store move lane groups in and out of flat scratch arrays.
//
// Why:
//
//   - Packet ray tracing tests one triangle or one box against four rays at
//     a time; expressing the kernels against lanes keeps them branch-free
//     and lets a compiler (or a future intrinsic layer) vectorize them.
//   - All arithmetic is plain IEEE-754 float32: division by zero yields
//     signed infinities and 0/0 yields NaN, and NaN fails every ordered
//     comparison. The raycast kernels depend on exactly these semantics to
//     reject degenerate intersections without an explicit determinant test.
//
// Complexity:
//
//   - Every operation: O(1) time, zero allocations.
//
// Errors: none. All operations are total over their value inputs.
package vec4

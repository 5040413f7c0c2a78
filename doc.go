// Package aobake is a small offline geometry-processing toolkit for baking
// ambient occlusion and related per-texel signals onto static triangle meshes.
//
// 🚀 What is aobake?
//
//	A pure-Go library built from two independent cores:
//
//	  • raycast/  — a 4-wide packet ray tracer over a static triangle soup,
//	    accelerated by a balanced implicit BVH. Answers first-hit queries
//	    (closest intersection per ray) or visibility accumulation with an
//	    early cutoff, with an optional per-triangle opacity filter.
//	  • texbleed/ — a two-pass Euclidean distance-transform dilation that
//	    fills transparent texels with the color of the nearest opaque texel,
//	    killing UV-seam artifacts under bilinear filtering and mipmapping.
//
// ✨ Why choose aobake?
//
//   - Offline-friendly   — build the tree once, trace any number of batches
//   - Thread-shareable   — a built tree is read-only; batches are self-contained
//   - Deterministic      — no global state, no hidden randomness
//   - Pure Go            — no cgo, no GPU, the only dependency is testify (tests)
//
// Under the hood, everything is organized under three subpackages:
//
//	vec4/     — portable 4-wide float32 lane arithmetic used by the tracer
//	raycast/  — implicit BVH build, packet traversal, Möller–Trumbore core
//	texbleed/ — 8SSEDT seam bleeding over raw pixel buffers
//
// Dive into the package docs for contracts, invariants and worked examples.
//
//	go get github.com/katalvlaran/aobake
package aobake

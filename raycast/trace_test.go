package raycast_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/aobake/raycast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// downRay aims straight down the -z axis from (x, y, 1).
func downRay(x, y float32) raycast.Ray {
	return raycast.Ray{Org: [3]float32{x, y, 1}, Dir: [3]float32{0, 0, -1}, T: 10}
}

// stackedTris returns n copies of the unit triangle, all at z = 0,
// overlapping in the xy plane.
func stackedTris(n int) ([]float32, []int32) {
	vtxs := make([]float32, 0, n*9)
	tris := make([]int32, 0, n*3)
	for i := 0; i < n; i++ {
		vtxs = append(vtxs, 0, 0, 0, 1, 0, 0, 0, 1, 0)
		tris = append(tris, int32(3*i), int32(3*i+1), int32(3*i+2))
	}
	return vtxs, tris
}

// TestTrace_SingleTriangleHit is the canonical axial-ray hit: exact
// barycentrics and parameter fall out of the arithmetic.
func TestTrace_SingleTriangleHit(t *testing.T) {
	tree, err := raycast.NewTree(unitTriangleVtxs, unitTriangleTris)
	require.NoError(t, err)
	defer tree.Free()

	rays := []raycast.Ray{downRay(0.25, 0.25)}
	opts := raycast.DefaultTraceOptions()
	require.NoError(t, tree.Trace(rays, &opts))

	assert.Equal(t, int32(0), rays[0].Hit, "must hit triangle 0")
	assert.InDelta(t, 1.0, rays[0].T, 1e-6, "intersection distance")
	assert.InDelta(t, 0.25, rays[0].U, 1e-6, "barycentric u")
	assert.InDelta(t, 0.25, rays[0].V, 1e-6, "barycentric v")
	assert.Equal(t, float32(0), rays[0].Visibility, "a first-hit zeroes visibility")
}

// TestTrace_Miss verifies the miss contract: Hit stays NoHit, T keeps its
// input value and visibility stays 1.
func TestTrace_Miss(t *testing.T) {
	tree, err := raycast.NewTree(unitTriangleVtxs, unitTriangleTris)
	require.NoError(t, err)
	defer tree.Free()

	rays := []raycast.Ray{downRay(2, 2)}
	opts := raycast.DefaultTraceOptions()
	require.NoError(t, tree.Trace(rays, &opts))

	assert.Equal(t, raycast.NoHit, rays[0].Hit, "nothing intersects at (2,2)")
	assert.Equal(t, float32(10), rays[0].T, "T must keep its input value on a miss")
	assert.Equal(t, float32(1), rays[0].Visibility, "nothing blocked")
}

// TestTrace_VisibilityAccumulation stacks coplanar half-opaque triangles
// over one ray. Two of them leave 0.5*0.5 = 0.25 visibility (above the
// 0.2 cutoff, so both are tested); with four, the lane short-circuits
// after the third (0.125 <= 0.2) and the fourth is never accumulated.
func TestTrace_VisibilityAccumulation(t *testing.T) {
	half := func(triIdx, rayIdx int, tt, u, v float32, userdata any) float32 {
		return 0.5
	}

	for _, tc := range []struct {
		name    string
		count   int
		wantVis float32
	}{
		{"two stacked", 2, 0.25},
		{"four stacked short-circuits after three", 4, 0.125},
	} {
		t.Run(tc.name, func(t *testing.T) {
			vtxs, tris := stackedTris(tc.count)
			tree, err := raycast.NewTree(vtxs, tris)
			require.NoError(t, err)
			defer tree.Free()

			rays := []raycast.Ray{downRay(0.1, 0.1)}
			opts := raycast.TraceOptions{Cutoff: 0.2, Filter: half}
			require.NoError(t, tree.Trace(rays, &opts))

			assert.InDelta(t, tc.wantVis, rays[0].Visibility, 1e-6)
			assert.Equal(t, raycast.NoHit, rays[0].Hit, "visibility mode never records a hit")
			assert.Equal(t, float32(10), rays[0].T, "visibility mode never narrows T")
		})
	}
}

// TestTrace_FilterCulling makes the geometrically nearer triangle fully
// transparent: first-hit mode must skip it and name the farther one.
func TestTrace_FilterCulling(t *testing.T) {
	// Triangle 0 at z = 0.5 (nearer along the ray), triangle 1 at z = 0.
	vtxs := []float32{
		0, 0, 0.5, 1, 0, 0.5, 0, 1, 0.5,
		0, 0, 0, 1, 0, 0, 0, 1, 0,
	}
	tris := []int32{0, 1, 2, 3, 4, 5}
	tree, err := raycast.NewTree(vtxs, tris)
	require.NoError(t, err)
	defer tree.Free()

	cullFirst := func(triIdx, rayIdx int, tt, u, v float32, userdata any) float32 {
		if triIdx == 0 {
			return 0
		}
		return 1
	}

	rays := []raycast.Ray{downRay(0.1, 0.1)}
	opts := raycast.TraceOptions{Cutoff: raycast.FirstHit, Filter: cullFirst}
	require.NoError(t, tree.Trace(rays, &opts))

	assert.Equal(t, int32(1), rays[0].Hit, "the transparent triangle must be culled")
	assert.InDelta(t, 1.0, rays[0].T, 1e-6, "distance to the z=0 triangle")
}

// TestTrace_ConstantFilterMatchesNearest: with a constant-1 filter,
// first-hit mode must agree with the unfiltered geometric nearest result.
func TestTrace_ConstantFilterMatchesNearest(t *testing.T) {
	vtxs, tris := randomSoup(64, 7)
	tree, err := raycast.NewTree(vtxs, tris)
	require.NoError(t, err)
	defer tree.Free()

	mkRays := func() []raycast.Ray {
		rays := make([]raycast.Ray, 0, 25)
		for i := 0; i < 5; i++ {
			for j := 0; j < 5; j++ {
				r := downRay(float32(i)*0.25, float32(j)*0.25)
				r.Org[2] = 2
				rays = append(rays, r)
			}
		}
		return rays
	}

	plain := mkRays()
	opts := raycast.DefaultTraceOptions()
	require.NoError(t, tree.Trace(plain, &opts))

	filtered := mkRays()
	opaque := func(triIdx, rayIdx int, tt, u, v float32, userdata any) float32 { return 1 }
	fOpts := raycast.TraceOptions{Cutoff: raycast.FirstHit, Filter: opaque}
	require.NoError(t, tree.Trace(filtered, &fOpts))

	for i := range plain {
		assert.Equal(t, plain[i].Hit, filtered[i].Hit, "ray %d hit", i)
		assert.Equal(t, plain[i].T, filtered[i].T, "ray %d distance", i)
	}
}

// TestTrace_ClosestAcrossLeaves stacks parallel triangles at increasing
// depth so they spread over many leaves; first-hit must return the global
// minimum t regardless of traversal order.
func TestTrace_ClosestAcrossLeaves(t *testing.T) {
	const n = 40
	vtxs := make([]float32, 0, n*9)
	tris := make([]int32, 0, n*3)
	for i := 0; i < n; i++ {
		z := float32(i+1) * 0.1
		vtxs = append(vtxs, -1, -1, z, 3, -1, z, -1, 3, z)
		tris = append(tris, int32(3*i), int32(3*i+1), int32(3*i+2))
	}
	tree, err := raycast.NewTree(vtxs, tris)
	require.NoError(t, err)
	defer tree.Free()

	rays := []raycast.Ray{{Org: [3]float32{0.5, 0.5, 0}, Dir: [3]float32{0, 0, 1}, T: 100}}
	opts := raycast.DefaultTraceOptions()
	require.NoError(t, tree.Trace(rays, &opts))

	assert.Equal(t, int32(0), rays[0].Hit, "the z=0.1 plane is nearest")
	assert.InDelta(t, 0.1, rays[0].T, 1e-5)
}

// TestTrace_PacketBoundaryParity traces the same rays in one batch and
// one-by-one: padding, packet splitting and lane partitioning must not
// change any per-ray result.
func TestTrace_PacketBoundaryParity(t *testing.T) {
	vtxs, tris := randomSoup(128, 11)
	tree, err := raycast.NewTree(vtxs, tris)
	require.NoError(t, err)
	defer tree.Free()

	for _, nrays := range []int{1, 3, 4, 5, 63, 64, 65, 100, 130} {
		mk := func() []raycast.Ray {
			rays := make([]raycast.Ray, nrays)
			for i := range rays {
				f := float32(i) / float32(nrays)
				rays[i] = raycast.Ray{
					Org: [3]float32{f, 1 - f, 2},
					Dir: [3]float32{0.1 - 0.2*f, 0.2*f - 0.1, -1},
					T:   10,
				}
			}
			return rays
		}

		batch := mk()
		opts := raycast.DefaultTraceOptions()
		require.NoError(t, tree.Trace(batch, &opts))

		single := mk()
		for i := range single {
			one := single[i : i+1]
			require.NoError(t, tree.Trace(one, &opts))
		}

		for i := range batch {
			assert.Equal(t, single[i].Hit, batch[i].Hit, "nrays=%d ray %d hit", nrays, i)
			assert.Equal(t, single[i].T, batch[i].T, "nrays=%d ray %d t", nrays, i)
			assert.Equal(t, single[i].U, batch[i].U, "nrays=%d ray %d u", nrays, i)
			assert.Equal(t, single[i].V, batch[i].V, "nrays=%d ray %d v", nrays, i)
		}
	}
}

// TestTrace_VisibilityRange checks the visibility range law on a random
// scene: every ray's visibility stays within [0,1].
func TestTrace_VisibilityRange(t *testing.T) {
	vtxs, tris := randomSoup(64, 13)
	tree, err := raycast.NewTree(vtxs, tris)
	require.NoError(t, err)
	defer tree.Free()

	quarter := func(triIdx, rayIdx int, tt, u, v float32, userdata any) float32 { return 0.25 }
	rays := make([]raycast.Ray, 32)
	for i := range rays {
		f := float32(i) / 32
		rays[i] = raycast.Ray{Org: [3]float32{f, f, 2}, Dir: [3]float32{0, 0, -1}, T: 10}
	}
	opts := raycast.TraceOptions{Cutoff: 0, Filter: quarter}
	require.NoError(t, tree.Trace(rays, &opts))

	for i, r := range rays {
		assert.GreaterOrEqual(t, r.Visibility, float32(0), "ray %d visibility below range", i)
		assert.LessOrEqual(t, r.Visibility, float32(1), "ray %d visibility above range", i)
	}
}

// TestTrace_FilterInvokedOncePerCandidate counts filter callbacks in
// visibility mode: one per candidate intersection, with the caller's ray
// index and the pass-through userdata.
func TestTrace_FilterInvokedOncePerCandidate(t *testing.T) {
	vtxs, tris := stackedTris(3)
	tree, err := raycast.NewTree(vtxs, tris)
	require.NoError(t, err)
	defer tree.Free()

	type tag struct{ calls int }
	ud := &tag{}
	counting := func(triIdx, rayIdx int, tt, u, v float32, userdata any) float32 {
		userdata.(*tag).calls++
		assert.Equal(t, 1, rayIdx, "filter must see the caller's ray index")
		return 0.1
	}

	rays := []raycast.Ray{downRay(5, 5), downRay(0.1, 0.1)} // ray 0 misses everything
	opts := raycast.TraceOptions{Cutoff: 0, Filter: counting, Userdata: ud}
	require.NoError(t, tree.Trace(rays, &opts))

	assert.Equal(t, 3, ud.calls, "each crossed triangle filters exactly once")
	assert.InDelta(t, 0.9*0.9*0.9, rays[1].Visibility, 1e-6)
}

// TestTrace_DegenerateInputs: zero-area triangles and zero-length
// directions are not errors, they just never hit.
func TestTrace_DegenerateInputs(t *testing.T) {
	// A zero-area triangle (all vertices collinear).
	vtxs := []float32{0, 0, 0, 1, 0, 0, 2, 0, 0}
	tris := []int32{0, 1, 2}
	tree, err := raycast.NewTree(vtxs, tris)
	require.NoError(t, err, "degenerate triangles are legal input")
	defer tree.Free()

	rays := []raycast.Ray{
		downRay(0.5, 0),
		{Org: [3]float32{0.5, 0, 1}, Dir: [3]float32{0, 0, 0}, T: 10}, // zero-length direction
	}
	opts := raycast.DefaultTraceOptions()
	require.NoError(t, tree.Trace(rays, &opts))

	for i, r := range rays {
		assert.Equal(t, raycast.NoHit, r.Hit, "ray %d must miss", i)
		assert.Equal(t, float32(1), r.Visibility, "ray %d unblocked", i)
	}
}

// TestTraceOptions_Validate rejects NaN and above-1 cutoffs and accepts
// the two legal ranges.
func TestTraceOptions_Validate(t *testing.T) {
	tree, err := raycast.NewTree(unitTriangleVtxs, unitTriangleTris)
	require.NoError(t, err)
	defer tree.Free()

	bad := raycast.TraceOptions{Cutoff: 1.5}
	assert.ErrorIs(t, tree.Trace(nil, &bad), raycast.ErrBadCutoff, "cutoff above 1 must error")

	bad.Cutoff = float32(math.NaN())
	assert.ErrorIs(t, tree.Trace(nil, &bad), raycast.ErrBadCutoff, "NaN cutoff must error")

	ok := raycast.TraceOptions{Cutoff: raycast.FirstHit}
	assert.NoError(t, tree.Trace(nil, &ok), "first-hit sentinel is legal")
	ok.Cutoff = 1
	assert.NoError(t, tree.Trace(nil, &ok), "cutoff 1 is legal")
	assert.NoError(t, tree.Trace(nil, nil), "nil options mean defaults")
}

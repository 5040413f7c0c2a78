// Package raycast: the two 4-wide geometry kernels of the tracer.
//
// Both kernels run one primitive (a triangle or a node box) against four
// ray lanes at a time over the packet scratch arrays, writing a per-lane
// hit mask. They are written against vec4 and rely on IEEE-754 float32
// semantics: a zero determinant or a zero direction component produces
// infinities or NaNs that fail the ordered compares, so no explicit
// degeneracy test is needed anywhere.
package raycast

import (
	"github.com/katalvlaran/aobake/vec4"
)

// intersectTri runs the Möller–Trumbore test of one triangle (v0,v1,v2,
// each a 3-float prefix of the vertex array) against the first ncur lanes.
// Per lane it writes outMask plus the barycentrics and ray parameter in
// outU/outV/outT. A lane hits iff all of:
//
//	u >= 0, u <= 1, v >= 0, u+v <= 1, t >= 0, t <= maxt[lane]
//
// There is no determinant test: 1/0 is infinite and infinities fail the
// range compares above. Returns whether any lane hit.
func (p *packet) intersectTri(v0, v1, v2 []float32, ncur int) bool {
	// Edge vectors, splat once per triangle.
	e01x := vec4.Splat(v1[0] - v0[0])
	e01y := vec4.Splat(v1[1] - v0[1])
	e01z := vec4.Splat(v1[2] - v0[2])
	e02x := vec4.Splat(v2[0] - v0[0])
	e02y := vec4.Splat(v2[1] - v0[1])
	e02z := vec4.Splat(v2[2] - v0[2])

	zero := vec4.Splat(0)
	one := vec4.Splat(1)

	anyHit := false
	for g := 0; g < ncur; g += vec4.Lanes {
		dx := vec4.Load(p.dx[g:])
		dy := vec4.Load(p.dy[g:])
		dz := vec4.Load(p.dz[g:])

		// pvec = cross(dir, e02)
		pvecx := dy.Mul(e02z).Sub(dz.Mul(e02y))
		pvecy := dz.Mul(e02x).Sub(dx.Mul(e02z))
		pvecz := dx.Mul(e02y).Sub(dy.Mul(e02x))

		// det = dot(e01, pvec)
		det := e01x.Mul(pvecx).Add(e01y.Mul(pvecy).Add(e01z.Mul(pvecz)))

		// tvec = org - v0
		tvecx := vec4.Load(p.rx[g:]).Sub(vec4.Splat(v0[0]))
		tvecy := vec4.Load(p.ry[g:]).Sub(vec4.Splat(v0[1]))
		tvecz := vec4.Load(p.rz[g:]).Sub(vec4.Splat(v0[2]))

		// qvec = cross(tvec, e01)
		qvecx := tvecy.Mul(e01z).Sub(tvecz.Mul(e01y))
		qvecy := tvecz.Mul(e01x).Sub(tvecx.Mul(e01z))
		qvecz := tvecx.Mul(e01y).Sub(tvecy.Mul(e01x))

		// u = dot(tvec, pvec) / det
		// v = dot(dir,  qvec) / det
		// t = dot(e02,  qvec) / det
		u := tvecx.Mul(pvecx).Add(tvecy.Mul(pvecy).Add(tvecz.Mul(pvecz)))
		v := dx.Mul(qvecx).Add(dy.Mul(qvecy).Add(dz.Mul(qvecz)))
		tt := e02x.Mul(qvecx).Add(e02y.Mul(qvecy).Add(e02z.Mul(qvecz)))
		invDet := one.Div(det)
		u = u.Mul(invDet)
		v = v.Mul(invDet)
		tt = tt.Mul(invDet)

		prev := vec4.Load(p.maxt[g:])
		isect := u.CmpGE(zero).
			And(u.CmpLE(one)).
			And(v.CmpGE(zero)).
			And(u.Add(v).CmpLE(one)).
			And(tt.CmpGE(zero)).
			And(tt.CmpLE(prev))

		copy(p.outMask[g:], isect[:])
		u.Store(p.outU[g:])
		v.Store(p.outV[g:])
		tt.Store(p.outT[g:])
		if isect.Any() {
			anyHit = true
		}
	}

	return anyHit
}

// intersectBox runs the slab test of one node box against the first ncur
// lanes, writing outMask per lane. A lane hits iff:
//
//	tmax >= 0 && tmax >= tmin && tmin <= maxt[lane]
//
// Inverse directions may be signed infinities; the min/max pairing below
// resolves the resulting NaNs the same way packed min/max hardware does
// (the second operand wins an unordered compare). Returns whether any
// lane hit.
func (p *packet) intersectBox(node *Node, ncur int) bool {
	bminx := vec4.Splat(node.BMin[0])
	bminy := vec4.Splat(node.BMin[1])
	bminz := vec4.Splat(node.BMin[2])
	bmaxx := vec4.Splat(node.BMax[0])
	bmaxy := vec4.Splat(node.BMax[1])
	bmaxz := vec4.Splat(node.BMax[2])

	zero := vec4.Splat(0)

	anyHit := false
	for g := 0; g < ncur; g += vec4.Lanes {
		ix := vec4.Load(p.ix[g:])
		iy := vec4.Load(p.iy[g:])
		iz := vec4.Load(p.iz[g:])

		// Plane distances along each axis.
		d0x := bminx.Sub(vec4.Load(p.rx[g:])).Mul(ix)
		d0y := bminy.Sub(vec4.Load(p.ry[g:])).Mul(iy)
		d0z := bminz.Sub(vec4.Load(p.rz[g:])).Mul(iz)
		d1x := bmaxx.Sub(vec4.Load(p.rx[g:])).Mul(ix)
		d1y := bmaxy.Sub(vec4.Load(p.ry[g:])).Mul(iy)
		d1z := bmaxz.Sub(vec4.Load(p.rz[g:])).Mul(iz)

		// Per-axis entry/exit.
		v0x := d0x.Min(d1x)
		v0y := d0y.Min(d1y)
		v0z := d0z.Min(d1z)
		v1x := d0x.Max(d1x)
		v1y := d0y.Max(d1y)
		v1z := d0z.Max(d1z)

		// tmin = hmax of entries, tmax = hmin of exits.
		tmin := v0x.Max(v0y.Max(v0z))
		tmax := v1x.Min(v1y.Min(v1z))

		prev := vec4.Load(p.maxt[g:])
		isect := tmax.CmpGE(zero).
			And(tmax.CmpGE(tmin)).
			And(tmin.CmpLE(prev))

		copy(p.outMask[g:], isect[:])
		if isect.Any() {
			anyHit = true
		}
	}

	return anyHit
}

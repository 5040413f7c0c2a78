// Package vec4 implements the 4-wide float32 lane type used by the packet
// ray tracer. All operations are element-wise, allocation-free and preserve
// IEEE-754 float32 semantics lane by lane.
package vec4

// Lanes is the fixed lane width of the abstraction.
const Lanes = 4

// Float4 is a group of four float32 lanes.
type Float4 [Lanes]float32

// Mask4 is a group of four lane predicates, produced by comparisons and
// consumed by And/Or/Any.
type Mask4 [Lanes]bool

// Splat returns a Float4 with every lane set to v.
// Complexity: O(1).
func Splat(v float32) Float4 {
	return Float4{v, v, v, v}
}

// Load returns the four lanes at s[0:4]. The slice must hold at least four
// elements; this mirrors an aligned vector load from a scratch array.
// Complexity: O(1).
func Load(s []float32) Float4 {
	_ = s[3] // single bounds check for all four lanes
	return Float4{s[0], s[1], s[2], s[3]}
}

// Store writes the four lanes into s[0:4].
// Complexity: O(1).
func (a Float4) Store(s []float32) {
	_ = s[3]
	s[0], s[1], s[2], s[3] = a[0], a[1], a[2], a[3]
}

// Add returns a + b lane-wise.
func (a Float4) Add(b Float4) Float4 {
	return Float4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

// Sub returns a - b lane-wise.
func (a Float4) Sub(b Float4) Float4 {
	return Float4{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

// Mul returns a * b lane-wise.
func (a Float4) Mul(b Float4) Float4 {
	return Float4{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

// Div returns a / b lane-wise. Division by zero produces signed infinity
// and 0/0 produces NaN, per IEEE-754; callers rely on this.
func (a Float4) Div(b Float4) Float4 {
	return Float4{a[0] / b[0], a[1] / b[1], a[2] / b[2], a[3] / b[3]}
}

// Min returns the lane-wise minimum of a and b.
// When either lane is NaN the other operand is NOT guaranteed to win; the
// second operand is returned for unordered pairs, matching the x86
// min-ps convention the slab test was designed against.
func (a Float4) Min(b Float4) Float4 {
	var r Float4
	for i := 0; i < Lanes; i++ {
		if a[i] < b[i] {
			r[i] = a[i]
		} else {
			r[i] = b[i]
		}
	}
	return r
}

// Max returns the lane-wise maximum of a and b, with the same unordered
// convention as Min.
func (a Float4) Max(b Float4) Float4 {
	var r Float4
	for i := 0; i < Lanes; i++ {
		if a[i] > b[i] {
			r[i] = a[i]
		} else {
			r[i] = b[i]
		}
	}
	return r
}

// CmpGE returns the lane-wise predicate a >= b. Unordered lanes (NaN on
// either side) compare false.
func (a Float4) CmpGE(b Float4) Mask4 {
	return Mask4{a[0] >= b[0], a[1] >= b[1], a[2] >= b[2], a[3] >= b[3]}
}

// CmpLE returns the lane-wise predicate a <= b. Unordered lanes compare
// false.
func (a Float4) CmpLE(b Float4) Mask4 {
	return Mask4{a[0] <= b[0], a[1] <= b[1], a[2] <= b[2], a[3] <= b[3]}
}

// And returns the lane-wise conjunction of m and o.
func (m Mask4) And(o Mask4) Mask4 {
	return Mask4{m[0] && o[0], m[1] && o[1], m[2] && o[2], m[3] && o[3]}
}

// Or returns the lane-wise disjunction of m and o.
func (m Mask4) Or(o Mask4) Mask4 {
	return Mask4{m[0] || o[0], m[1] || o[1], m[2] || o[2], m[3] || o[3]}
}

// Any reports whether at least one lane of m is set.
func (m Mask4) Any() bool {
	return m[0] || m[1] || m[2] || m[3]
}

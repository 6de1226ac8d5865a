package geometry

import "github.com/achilleasa/lumen/types"

// Tolerance used by intersection tests to reject near-zero denominators.
const Epsilon float32 = 1e-6

// A ray with a precomputed inverse direction. The direction does not need to
// be normalized; hit parameters are expressed in units of its length.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3
	InvDir types.Vec3
}

// Create a new ray.
func NewRay(origin, dir types.Vec3) Ray {
	return Ray{
		Origin: origin,
		Dir:    dir,
		InvDir: types.Vec3{1.0 / dir[0], 1.0 / dir[1], 1.0 / dir[2]},
	}
}

// Get the point at parameter t along the ray.
func (r Ray) At(t float32) types.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// Nearest tracks the farthest admissible hit parameter while a ray is tested
// against a sequence of surfaces. It is passed by value into every
// intersection call and the narrowed value is handed back on a hit so that
// farther candidates are rejected without sorting.
type Nearest struct {
	// Negative values mean that the bound is not set yet.
	Param float32
}

// An unbounded accumulator.
func Unbounded() Nearest {
	return Nearest{Param: -1}
}

// An accumulator bounded at t.
func Within(t float32) Nearest {
	return Nearest{Param: t}
}

// Returns true if a hit parameter has been recorded.
func (n Nearest) Bounded() bool {
	return n.Param >= 0
}

// Returns true if a hit at parameter t is not farther than the bound.
func (n Nearest) Admits(t float32) bool {
	return !n.Bounded() || t <= n.Param
}

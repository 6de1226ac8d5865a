package geometry

import (
	"github.com/achilleasa/lumen/types"
	"github.com/chewxy/math32"
)

// Widens the far slab parameter to absorb float32 rounding so hits lying
// exactly on a box face are not culled.
const slabPadding float32 = 1 + 2*3.6e-7

// An axis-aligned bounding box.
type BoundingBox struct {
	Min types.Vec3
	Max types.Vec3
}

// Create an empty bounding box. Adding any point to it yields a box that
// contains just that point.
func NewBoundingBox() BoundingBox {
	inf := math32.Inf(1)
	return BoundingBox{
		Min: types.Vec3{inf, inf, inf},
		Max: types.Vec3{-inf, -inf, -inf},
	}
}

// Returns true if no points have been added to the box.
func (b *BoundingBox) Empty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Grow box so it contains point.
func (b *BoundingBox) AddPoint(point types.Vec3) {
	b.Min = types.MinVec3(b.Min, point)
	b.Max = types.MaxVec3(b.Max, point)
}

// Grow box so it contains all triangle vertices.
func (b *BoundingBox) AddTriangle(tri *Triangle) {
	for i := range tri.Vertices {
		b.AddPoint(tri.Vertices[i].Position)
	}
}

// Returns true if point lies inside the box (boundary included).
func (b *BoundingBox) Contains(point types.Vec3) bool {
	for i := 0; i < 3; i++ {
		if point[i] < b.Min[i] || point[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Get the box center.
func (b *BoundingBox) Center() types.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Test whether the ray crosses the box using the slab method. The test only
// reports whether the ray may hit something inside the box; it never reports
// false negatives. NaN slab parameters (ray origin on a slab plane with a
// zero direction component) leave the running interval untouched.
func (b *BoundingBox) Intersects(ray Ray, near Nearest) bool {
	if b.Empty() {
		return false
	}

	tMin := float32(0)
	tMax := math32.Inf(1)
	if near.Bounded() {
		tMax = near.Param
	}

	for axis := 0; axis < 3; axis++ {
		t0 := (b.Min[axis] - ray.Origin[axis]) * ray.InvDir[axis]
		t1 := (b.Max[axis] - ray.Origin[axis]) * ray.InvDir[axis]
		if ray.InvDir[axis] < 0 {
			t0, t1 = t1, t0
		}
		t1 *= slabPadding

		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return false
		}
	}

	return true
}

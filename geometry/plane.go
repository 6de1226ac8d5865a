package geometry

import "github.com/achilleasa/lumen/types"

// A plane defined by the implicit equation a*x + b*y + c*z + d = 0.
type Plane struct {
	A, B, C, D float32
}

// Create a plane passing through origin and spanned by two edge vectors.
func NewPlane(edge1, edge2, origin types.Vec3) Plane {
	n := edge1.Cross(edge2)
	return Plane{
		A: n[0],
		B: n[1],
		C: n[2],
		D: -origin.Dot(n),
	}
}

// Get the (unnormalized) plane normal.
func (p Plane) Normal() types.Vec3 {
	return types.Vec3{p.A, p.B, p.C}
}

// Intersect ray with the plane. Hits behind the ray origin or farther than
// the current nearest bound are rejected.
func (p Plane) Intersect(ray Ray, near Nearest) (Nearest, Fragment, bool) {
	n := p.Normal()
	m := n.Dot(ray.Dir)
	if m == 0 {
		return near, Fragment{}, false
	}

	t := -(p.D + n.Dot(ray.Origin)) / m
	if t < 0 || !near.Admits(t) {
		return near, Fragment{}, false
	}

	return Within(t), Fragment{
		Position: ray.At(t),
		Normal:   n,
		Param:    t,
	}, true
}

// Evaluate the plane equation at a point. Points on the plane evaluate to 0.
func (p Plane) Eval(point types.Vec3) float32 {
	return p.A*point[0] + p.B*point[1] + p.C*point[2] + p.D
}

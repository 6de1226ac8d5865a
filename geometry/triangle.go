package geometry

import (
	"github.com/achilleasa/lumen/types"
	"github.com/chewxy/math32"
)

// A triangle primitive.
type Triangle struct {
	Vertices [3]Vertex
}

// Create a triangle from three vertices.
func NewTriangle(v0, v1, v2 Vertex) Triangle {
	return Triangle{Vertices: [3]Vertex{v0, v1, v2}}
}

// Get the (unnormalized) face normal using the vertex winding order.
func (tri *Triangle) FaceNormal() types.Vec3 {
	a, b, c := tri.Vertices[0].Position, tri.Vertices[1].Position, tri.Vertices[2].Position
	return b.Sub(a).Cross(c.Sub(a))
}

// Get the triangle barycenter.
func (tri *Triangle) Barycenter() types.Vec3 {
	a, b, c := tri.Vertices[0].Position, tri.Vertices[1].Position, tri.Vertices[2].Position
	return a.Add(b).Add(c).Mul(1.0 / 3.0)
}

// Returns true if all vertices carry texture coordinates.
func (tri *Triangle) HasUV() bool {
	return tri.Vertices[0].HasUV && tri.Vertices[1].HasUV && tri.Vertices[2].HasUV
}

// Intersect ray with the triangle and generate a fragment with interpolated
// normal and texture coordinates. Points lying on a triangle edge are treated
// as hits.
func (tri *Triangle) Intersect(ray Ray, near Nearest) (Nearest, Fragment, bool) {
	a, b, c := tri.Vertices[0].Position, tri.Vertices[1].Position, tri.Vertices[2].Position
	ab := b.Sub(a)
	bc := c.Sub(b)
	ca := a.Sub(c)

	n := ab.Cross(c.Sub(a))
	area2 := n.Len()
	if area2 == 0 {
		return near, Fragment{}, false
	}

	plane := Plane{A: n[0], B: n[1], C: n[2], D: -a.Dot(n)}
	hitNear, frag, hit := plane.Intersect(ray, near)
	if !hit {
		return near, Fragment{}, false
	}

	// The point must be on the inner side of all three edges
	p := frag.Position
	cpA := ab.Cross(p.Sub(a))
	cpB := bc.Cross(p.Sub(b))
	cpC := ca.Cross(p.Sub(c))
	if n.Dot(cpA) < 0 || n.Dot(cpB) < 0 || n.Dot(cpC) < 0 {
		return near, Fragment{}, false
	}

	// Each weight is the area of the sub-triangle opposite to its vertex.
	wA := cpB.Len() / area2
	wB := cpC.Len() / area2
	wC := cpA.Len() / area2

	frag.Normal = tri.Vertices[0].Normal.Mul(wA).
		Add(tri.Vertices[1].Normal.Mul(wB)).
		Add(tri.Vertices[2].Normal.Mul(wC))

	if tri.HasUV() {
		frag.UV = tri.Vertices[0].UV.Mul(wA).
			Add(tri.Vertices[1].UV.Mul(wB)).
			Add(tri.Vertices[2].UV.Mul(wC))
		frag.HasUV = true
	}

	return hitNear, frag, true
}

// Test whether the ray hits the triangle using the Moller-Trumbore algorithm.
// This variant skips attribute interpolation and is used for occlusion queries.
func (tri *Triangle) Occludes(ray Ray, near Nearest) (Nearest, bool) {
	v0 := tri.Vertices[0].Position
	e1 := tri.Vertices[1].Position.Sub(v0)
	e2 := tri.Vertices[2].Position.Sub(v0)

	p := ray.Dir.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < Epsilon {
		return near, false
	}
	invDet := 1.0 / det

	tv := ray.Origin.Sub(v0)
	u := tv.Dot(p) * invDet
	if u < 0 || u > 1 {
		return near, false
	}

	q := tv.Cross(e1)
	v := ray.Dir.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return near, false
	}

	t := e2.Dot(q) * invDet
	if t <= Epsilon || !near.Admits(t) {
		return near, false
	}

	return Within(t), true
}

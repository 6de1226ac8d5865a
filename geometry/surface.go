package geometry

import "fmt"

// The supported surface types.
type SurfaceKind uint8

const (
	PlaneSurface SurfaceKind = iota
	TriangleSurface
	MeshSurface
)

// Get the surface kind name.
func (k SurfaceKind) String() string {
	switch k {
	case PlaneSurface:
		return "plane"
	case TriangleSurface:
		return "triangle"
	case MeshSurface:
		return "mesh"
	}
	return fmt.Sprintf("SurfaceKind(%d)", uint8(k))
}

// A surface that can be intersected by rays. Only the field matching Kind
// is populated.
type Surface struct {
	Kind     SurfaceKind
	Plane    Plane
	Triangle Triangle
	Mesh     *Mesh
}

// Wrap a plane.
func PlaneShape(p Plane) Surface {
	return Surface{Kind: PlaneSurface, Plane: p}
}

// Wrap a single triangle.
func TriangleShape(tri Triangle) Surface {
	return Surface{Kind: TriangleSurface, Triangle: tri}
}

// Wrap a bounding-box culled mesh.
func MeshShape(m *Mesh) Surface {
	return Surface{Kind: MeshSurface, Mesh: m}
}

// Intersect ray with the surface and return the nearest fragment.
func (s *Surface) Intersect(ray Ray, near Nearest) (Nearest, Fragment, bool) {
	switch s.Kind {
	case PlaneSurface:
		return s.Plane.Intersect(ray, near)
	case TriangleSurface:
		return s.Triangle.Intersect(ray, near)
	case MeshSurface:
		return s.Mesh.Intersect(ray, near)
	}
	return near, Fragment{}, false
}

// Test whether the ray hits the surface without computing a fragment.
func (s *Surface) Occludes(ray Ray, near Nearest) (Nearest, bool) {
	switch s.Kind {
	case PlaneSurface:
		hitNear, _, ok := s.Plane.Intersect(ray, near)
		if ok && hitNear.Param <= Epsilon {
			return near, false
		}
		return hitNear, ok
	case TriangleSurface:
		return s.Triangle.Occludes(ray, near)
	case MeshSurface:
		return s.Mesh.Occludes(ray, near)
	}
	return near, false
}

// Get the number of triangles making up the surface.
func (s *Surface) TriangleCount() int {
	switch s.Kind {
	case TriangleSurface:
		return 1
	case MeshSurface:
		return len(s.Mesh.Triangles)
	}
	return 0
}

// Get the surface bounding box. Planes are unbounded and report false.
func (s *Surface) BBox() (BoundingBox, bool) {
	switch s.Kind {
	case TriangleSurface:
		bbox := NewBoundingBox()
		bbox.AddTriangle(&s.Triangle)
		return bbox, true
	case MeshSurface:
		return s.Mesh.BBox, true
	}
	return BoundingBox{}, false
}

package geometry

import (
	"errors"
	"fmt"

	"github.com/achilleasa/lumen/types"
)

var (
	ErrIndexOutOfRange = errors.New("geometry: face index out of range")
	ErrInconsistentUV  = errors.New("geometry: inconsistent texture coordinate presence across mesh vertices")
	ErrEmptyMesh       = errors.New("geometry: mesh contains no faces")
)

// Indices of the attributes for a face vertex. Indices are 1-based; a zero
// index marks an attribute as absent.
type Index struct {
	Position int
	UV       int
	Normal   int
}

// A triangular face.
type Face [3]Index

// Indexed mesh data as produced by a mesh file parser.
type MeshData struct {
	Positions []types.Vec3
	Normals   []types.Vec3
	UVs       []types.Vec2
	Faces     []Face
}

// A triangle mesh and its bounding box.
type Mesh struct {
	Triangles []Triangle
	BBox      BoundingBox
}

// Build a mesh from indexed data. Faces without normal indices get the
// normalized face normal assigned to their vertices. Either all face
// vertices in the mesh reference texture coordinates or none of them does.
func NewMesh(data *MeshData) (*Mesh, error) {
	if len(data.Faces) == 0 {
		return nil, ErrEmptyMesh
	}

	mesh := &Mesh{
		Triangles: make([]Triangle, 0, len(data.Faces)),
	}

	withUV, withoutUV := 0, 0
	for faceIndex, face := range data.Faces {
		var tri Triangle
		missingNormals := false
		for i, index := range face {
			v := &tri.Vertices[i]

			pos, err := lookup(data.Positions, index.Position)
			if err != nil {
				return nil, fmt.Errorf("face %d: position index %d: %w", faceIndex, index.Position, err)
			}
			v.Position = pos

			if index.Normal == 0 {
				missingNormals = true
			} else if v.Normal, err = lookup(data.Normals, index.Normal); err != nil {
				return nil, fmt.Errorf("face %d: normal index %d: %w", faceIndex, index.Normal, err)
			}

			if index.UV == 0 {
				withoutUV++
				continue
			}
			if v.UV, err = lookup(data.UVs, index.UV); err != nil {
				return nil, fmt.Errorf("face %d: uv index %d: %w", faceIndex, index.UV, err)
			}
			v.HasUV = true
			withUV++
		}

		if missingNormals {
			faceNormal := tri.FaceNormal().Normalize()
			for i := range tri.Vertices {
				tri.Vertices[i].Normal = faceNormal
			}
		}

		mesh.Triangles = append(mesh.Triangles, tri)
	}

	if withUV != 0 && withoutUV != 0 {
		return nil, fmt.Errorf("%w (%d with, %d without)", ErrInconsistentUV, withUV, withoutUV)
	}

	mesh.UpdateBBox()
	return mesh, nil
}

// Convert a 1-based index into a slice element.
func lookup[T any](list []T, index int) (T, error) {
	var zero T
	if index < 1 || index > len(list) {
		return zero, ErrIndexOutOfRange
	}
	return list[index-1], nil
}

// Returns true if the mesh vertices carry texture coordinates.
func (m *Mesh) HasUV() bool {
	return len(m.Triangles) != 0 && m.Triangles[0].HasUV()
}

// Get the mean of all triangle barycenters.
func (m *Mesh) Barycenter() types.Vec3 {
	var sum types.Vec3
	if len(m.Triangles) == 0 {
		return sum
	}
	for i := range m.Triangles {
		sum = sum.Add(m.Triangles[i].Barycenter())
	}
	return sum.Mul(1.0 / float32(len(m.Triangles)))
}

// Move all vertices by offset.
func (m *Mesh) Translate(offset types.Vec3) {
	m.transform(func(v *Vertex) {
		v.Position = v.Position.Add(offset)
	})
}

// Scale all vertices relative to the origin. Normals are scaled by the
// inverse factors so they stay perpendicular to the surface.
func (m *Mesh) Scale(factors types.Vec3) {
	inv := types.Vec3{1 / factors[0], 1 / factors[1], 1 / factors[2]}
	m.transform(func(v *Vertex) {
		v.Position = v.Position.MulVec(factors)
		v.Normal = v.Normal.MulVec(inv)
	})
}

// Rotate all vertices and normals around the origin.
func (m *Mesh) Rotate(q types.Quat) {
	m.transform(func(v *Vertex) {
		v.Position = q.Rotate(v.Position)
		v.Normal = q.Rotate(v.Normal)
	})
}

func (m *Mesh) transform(fn func(*Vertex)) {
	for ti := range m.Triangles {
		for vi := range m.Triangles[ti].Vertices {
			fn(&m.Triangles[ti].Vertices[vi])
		}
	}
	m.UpdateBBox()
}

// Recalculate the mesh bounding box.
func (m *Mesh) UpdateBBox() {
	m.BBox = NewBoundingBox()
	for i := range m.Triangles {
		m.BBox.AddTriangle(&m.Triangles[i])
	}
}

// Intersect ray with the mesh and return the nearest fragment. The bounding
// box is tested first so rays that miss it skip the triangle loop.
func (m *Mesh) Intersect(ray Ray, near Nearest) (Nearest, Fragment, bool) {
	var (
		nearest Fragment
		hit     bool
	)
	if !m.BBox.Intersects(ray, near) {
		return near, nearest, false
	}

	for i := range m.Triangles {
		var (
			frag Fragment
			ok   bool
		)
		if near, frag, ok = m.Triangles[i].Intersect(ray, near); ok {
			nearest, hit = frag, true
		}
	}
	return near, nearest, hit
}

// Test whether the ray hits any mesh triangle.
func (m *Mesh) Occludes(ray Ray, near Nearest) (Nearest, bool) {
	if !m.BBox.Intersects(ray, near) {
		return near, false
	}

	for i := range m.Triangles {
		if hitNear, ok := m.Triangles[i].Occludes(ray, near); ok {
			return hitNear, true
		}
	}
	return near, false
}

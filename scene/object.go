package scene

import (
	"errors"
	"fmt"

	"github.com/achilleasa/lumen/geometry"
	"github.com/achilleasa/lumen/types"
)

var (
	ErrZeroScale    = errors.New("scene: object scale has a zero component")
	ErrMissingShape = errors.New("scene: object has no geometry")
)

// An object placed in the world. Shape geometry is loaded in object space
// and baked into world space by Initialize.
type Object struct {
	Name    string
	Visible bool

	Shape    geometry.Surface
	Material Material

	// Source of the mesh geometry; empty for plane objects.
	MeshPath string

	// Edge vectors spanning plane objects.
	PlaneEdges [2]types.Vec3

	// Transform applied by Initialize. Rotation is expressed in degrees
	// around the X, Y and Z axes, applied in that order.
	Position types.Vec3
	Rotation types.Vec3
	Scale    types.Vec3

	// Set once the transform has been baked into the geometry.
	Baked bool
}

// Create a visible object with an identity transform.
func NewObject(name string, shape geometry.Surface, material Material) *Object {
	return &Object{
		Name:     name,
		Visible:  true,
		Shape:    shape,
		Material: material,
		Scale:    types.XYZ(1, 1, 1),
	}
}

// Bake the object transform into its geometry. Meshes are centered at the
// origin, scaled, rotated and finally translated to Position so that the
// barycenter of the baked mesh equals Position. Calling Initialize on an
// already baked object is a no-op.
func (o *Object) Initialize() error {
	if o.Baked {
		return nil
	}
	if o.Scale[0] == 0 || o.Scale[1] == 0 || o.Scale[2] == 0 {
		return fmt.Errorf("%w: object %q scale %v", ErrZeroScale, o.Name, o.Scale)
	}

	rot := types.QuatFromEulerDegrees(o.Rotation)
	switch o.Shape.Kind {
	case geometry.MeshSurface:
		if o.Shape.Mesh == nil || len(o.Shape.Mesh.Triangles) == 0 {
			return fmt.Errorf("%w: object %q", ErrMissingShape, o.Name)
		}
		mesh := o.Shape.Mesh
		mesh.Translate(mesh.Barycenter().Neg())
		mesh.Scale(o.Scale)
		mesh.Rotate(rot)
		mesh.Translate(o.Position)
	case geometry.PlaneSurface:
		edge1 := rot.Rotate(o.PlaneEdges[0].MulVec(o.Scale))
		edge2 := rot.Rotate(o.PlaneEdges[1].MulVec(o.Scale))
		if edge1.Cross(edge2).Len() == 0 {
			return fmt.Errorf("%w: object %q plane edges are parallel", ErrMissingShape, o.Name)
		}
		o.Shape = geometry.PlaneShape(geometry.NewPlane(edge1, edge2, o.Position))
	case geometry.TriangleSurface:
		tri := &o.Shape.Triangle
		center := tri.Barycenter()
		for i := range tri.Vertices {
			v := &tri.Vertices[i]
			v.Position = rot.Rotate(v.Position.Sub(center).MulVec(o.Scale)).Add(o.Position)
			v.Normal = rot.Rotate(v.Normal.MulVec(types.Vec3{1 / o.Scale[0], 1 / o.Scale[1], 1 / o.Scale[2]}))
		}
	}

	o.Baked = true
	return nil
}

// Intersect ray with the object geometry.
func (o *Object) Intersect(ray geometry.Ray, near geometry.Nearest) (geometry.Nearest, geometry.Fragment, bool) {
	return o.Shape.Intersect(ray, near)
}

// Test whether the object blocks the ray.
func (o *Object) Occludes(ray geometry.Ray, near geometry.Nearest) bool {
	_, hit := o.Shape.Occludes(ray, near)
	return hit
}

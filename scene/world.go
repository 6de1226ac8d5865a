package scene

import (
	"fmt"

	"github.com/achilleasa/lumen/geometry"
	"github.com/achilleasa/lumen/types"
)

// The world holds everything that can be seen or can cast shadows. It is not
// modified while rendering and can be shared by all render workers.
type World struct {
	// Basis vectors of the world space; the third one points up.
	Basis [3]types.Vec3

	Cameras []Camera
	Objects []*Object
	Lights  []PointLight
}

// Create an empty world using the standard basis.
func NewWorld() *World {
	return &World{
		Basis: [3]types.Vec3{
			types.XYZ(1, 0, 0),
			types.XYZ(0, 1, 0),
			types.XYZ(0, 0, 1),
		},
	}
}

// Get the world up vector.
func (w *World) Up() types.Vec3 {
	return w.Basis[2]
}

// Add a camera looking from position towards target using the world up vector.
func (w *World) AddCamera(position, target types.Vec3) {
	w.Cameras = append(w.Cameras, NewCamera(position, target, w.Up()))
}

// Get a camera by index.
func (w *World) Camera(index int) (*Camera, error) {
	if index < 0 || index >= len(w.Cameras) {
		return nil, fmt.Errorf("scene: camera index %d out of range [0, %d)", index, len(w.Cameras))
	}
	return &w.Cameras[index], nil
}

// Bake the transforms of all objects.
func (w *World) Initialize() error {
	for _, obj := range w.Objects {
		if err := obj.Initialize(); err != nil {
			return err
		}
	}
	return nil
}

// Find the nearest visible object hit by ray.
func (w *World) Intersect(ray geometry.Ray) (geometry.Fragment, *Object, bool) {
	var (
		near    = geometry.Unbounded()
		nearest geometry.Fragment
		hitObj  *Object
	)
	for _, obj := range w.Objects {
		if !obj.Visible {
			continue
		}
		var (
			frag geometry.Fragment
			ok   bool
		)
		if near, frag, ok = obj.Intersect(ray, near); ok {
			nearest, hitObj = frag, obj
		}
	}
	return nearest, hitObj, hitObj != nil
}

// Returns true if any object blocks the ray before the near bound. Hidden
// objects still cast shadows.
func (w *World) IsOccluded(ray geometry.Ray, near geometry.Nearest) bool {
	for _, obj := range w.Objects {
		if obj.Occludes(ray, near) {
			return true
		}
	}
	return false
}

// Get the unique texture paths referenced by object materials.
func (w *World) TexturePaths() []string {
	var (
		paths []string
		seen  = make(map[string]struct{})
	)
	for _, obj := range w.Objects {
		for _, path := range obj.Material.TexturePaths() {
			if _, exists := seen[path]; exists {
				continue
			}
			seen[path] = struct{}{}
			paths = append(paths, path)
		}
	}
	return paths
}

// Count the triangles in all object meshes.
func (w *World) TriangleCount() int {
	count := 0
	for _, obj := range w.Objects {
		count += obj.Shape.TriangleCount()
	}
	return count
}

package geometry

import "github.com/achilleasa/lumen/types"

// A mesh vertex.
type Vertex struct {
	Position types.Vec3
	Normal   types.Vec3

	// Texture coordinates; only meaningful if HasUV is set.
	UV    types.Vec2
	HasUV bool
}

// The result of a successful ray intersection.
type Fragment struct {
	Position types.Vec3

	// Interpolated surface normal. It is not normalized.
	Normal types.Vec3

	// Interpolated texture coordinates; only meaningful if HasUV is set.
	UV    types.Vec2
	HasUV bool

	// The ray parameter at the hit point.
	Param float32
}

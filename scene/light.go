package scene

import (
	"github.com/achilleasa/lumen/geometry"
	"github.com/achilleasa/lumen/types"
)

// Shadow rays stop just short of the shaded point so that the surface being
// shaded does not occlude itself.
const shadowRayBound float32 = 0.999

// An omnidirectional light source.
type PointLight struct {
	Position  types.Vec3
	Intensity float32
}

// Build the shadow ray from the light towards point.
func (l *PointLight) ShadowRay(point types.Vec3) (geometry.Ray, geometry.Nearest) {
	return geometry.NewRay(l.Position, point.Sub(l.Position)), geometry.Within(shadowRayBound)
}

// Returns true if point is directly lit by this light.
func (l *PointLight) Illuminates(point types.Vec3, world *World) bool {
	ray, near := l.ShadowRay(point)
	return !world.IsOccluded(ray, near)
}

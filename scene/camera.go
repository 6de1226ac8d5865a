package scene

import (
	"errors"
	"fmt"

	"github.com/achilleasa/lumen/geometry"
	"github.com/achilleasa/lumen/types"
	"github.com/chewxy/math32"
)

const (
	DefaultFOV  float32 = 70
	DefaultClip float32 = 0.1
)

var (
	ErrCameraAtTarget   = errors.New("scene: camera position coincides with its target")
	ErrCameraUpParallel = errors.New("scene: camera up vector is parallel to the view direction")
	ErrInvalidFOV       = errors.New("scene: camera fov must be in the (0, 180) range")
	ErrInvalidClip      = errors.New("scene: camera clip distance must be positive")
)

// A pinhole camera looking from Position towards Target.
type Camera struct {
	Position types.Vec3
	Target   types.Vec3
	Up       types.Vec3

	// Horizontal field of view in degrees.
	FOV float32

	// Distance between the camera position and the canvas.
	Clip float32
}

// Create a camera with the default fov and clip distance.
func NewCamera(position, target, up types.Vec3) Camera {
	return Camera{
		Position: position,
		Target:   target,
		Up:       up,
		FOV:      DefaultFOV,
		Clip:     DefaultClip,
	}
}

// Check that the camera defines a valid view basis.
func (c *Camera) Validate() error {
	forward := c.Target.Sub(c.Position)
	if forward.Len() == 0 {
		return ErrCameraAtTarget
	}
	if forward.Cross(c.Up).Len() <= geometry.Epsilon*forward.Len()*c.Up.Len() {
		return ErrCameraUpParallel
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		return fmt.Errorf("%w; got %f", ErrInvalidFOV, c.FOV)
	}
	if c.Clip <= 0 {
		return fmt.Errorf("%w; got %f", ErrInvalidClip, c.Clip)
	}
	return nil
}

// The image plane of a camera. Origin is the canvas corner that maps to the
// image position (0, 0); Horizontal and Vertical span the full canvas.
type Canvas struct {
	Position   types.Vec3
	Origin     types.Vec3
	Horizontal types.Vec3
	Vertical   types.Vec3
}

// Calculate the canvas basis for the given aspect ratio (width / height).
func (c *Camera) CanvasBase(aspect float32) Canvas {
	forward := c.Target.Sub(c.Position).Normalize()
	right := forward.Cross(c.Up).Normalize()
	actualUp := forward.Cross(right)

	fovTan := math32.Tan(types.Deg2Rad(c.FOV / 2))
	horizontal := right.Mul(fovTan * 2 * c.Clip)
	vertical := actualUp.Mul(fovTan * 2 * c.Clip / aspect)

	return Canvas{
		Position:   c.Position,
		Origin:     c.Position.Add(forward.Mul(c.Clip)).Sub(vertical.Div(2)).Sub(horizontal.Div(2)),
		Horizontal: horizontal,
		Vertical:   vertical,
	}
}

// Build the ray passing through the image-space position pos of a
// resX x resY image.
func (cv *Canvas) RayFromSample(pos types.Vec2, resX, resY float32) geometry.Ray {
	target := cv.Origin.
		Add(cv.Horizontal.Mul(pos[0] / resX)).
		Add(cv.Vertical.Mul(pos[1] / resY))
	return geometry.NewRay(cv.Position, target.Sub(cv.Position))
}

// Build the ray passing through the image-space position pos. The canvas is
// recalculated on every call; use CanvasBase when generating many rays.
func (c *Camera) RayFromSample(pos types.Vec2, resX, resY float32) geometry.Ray {
	canvas := c.CanvasBase(resX / resY)
	return canvas.RayFromSample(pos, resX, resY)
}

package reader

import (
	"encoding/json"

	"github.com/achilleasa/lumen/types"
)

// The on-disk layout of a JSON scene description.
type SceneDocument struct {
	Version  string           `json:"version"`
	World    WorldDocument    `json:"world"`
	Renderer RendererDocument `json:"renderer"`
}

type WorldDocument struct {
	// Optional basis override; the third vector points up.
	Basis *[3]types.Vec3 `json:"basis,omitempty"`

	Cameras []CameraDocument `json:"cameras"`
	Objects []ObjectDocument `json:"objects"`
	Lights  []LightDocument  `json:"lights"`
}

type CameraDocument struct {
	Position types.Vec3  `json:"position"`
	Target   types.Vec3  `json:"target"`
	Up       *types.Vec3 `json:"up,omitempty"`
	FOV      float32     `json:"fov,omitempty"`
	Clip     float32     `json:"clip,omitempty"`
}

// An object is either backed by a wavefront mesh or by a plane spanned by
// two edge vectors. Material is either a path to a material file or an
// inline material document.
type ObjectDocument struct {
	Name     string          `json:"name"`
	Visible  *bool           `json:"visible,omitempty"`
	Mesh     string          `json:"mesh,omitempty"`
	Plane    *[2]types.Vec3  `json:"plane,omitempty"`
	Material json.RawMessage `json:"material,omitempty"`

	Position types.Vec3  `json:"position"`
	Rotation types.Vec3  `json:"rotation"`
	Scale    *types.Vec3 `json:"scale,omitempty"`
}

type LightDocument struct {
	Position  types.Vec3 `json:"position"`
	Intensity *float32   `json:"intensity,omitempty"`
}

type RendererDocument struct {
	Width      int          `json:"width,omitempty"`
	Height     int          `json:"height,omitempty"`
	Sampler    string       `json:"sampler,omitempty"`
	SampleRate int          `json:"sample_rate,omitempty"`
	Filter     string       `json:"filter,omitempty"`
	Threads    int          `json:"threads,omitempty"`
	BlockSize  int          `json:"block_size,omitempty"`
	Background *types.Color `json:"background,omitempty"`
	Seed       int64        `json:"seed,omitempty"`
	Camera     int          `json:"camera,omitempty"`
}

// The on-disk layout of a material.
type MaterialDocument struct {
	Name    string           `json:"name"`
	Type    string           `json:"type"`
	Diffuse *ChannelDocument `json:"diffuse,omitempty"`
	Ambient *ChannelDocument `json:"ambient,omitempty"`

	// Ambient occlusion parameters.
	MaxRange float32 `json:"max_range,omitempty"`
	Samples  int     `json:"samples,omitempty"`
}

// A channel defines either a solid color or a texture map.
type ChannelDocument struct {
	Color   *types.Color     `json:"color,omitempty"`
	Texture *TextureDocument `json:"texture,omitempty"`
}

type TextureDocument struct {
	Path    string  `json:"path"`
	TilingX float32 `json:"tiling_x,omitempty"`
	TilingY float32 `json:"tiling_y,omitempty"`
}

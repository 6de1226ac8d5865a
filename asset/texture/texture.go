package texture

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/achilleasa/lumen/asset"
	"github.com/achilleasa/lumen/log"
	"github.com/achilleasa/lumen/types"
	"github.com/chewxy/math32"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotFound   = errors.New("texture: not found in registry")
	ErrEmptyImage = errors.New("texture: image has zero width or height")
)

var logger = log.New("texture")

// A decoded texture image. Texel colors are stored row-major with the
// first row at the top of the image.
type Texture struct {
	Format string

	Width  int
	Height int

	Data []types.Color
}

// Create a new texture from a Resource.
func New(res *asset.Resource) (*Texture, error) {
	img, format, err := image.Decode(res)
	if err != nil {
		return nil, fmt.Errorf("texture: could not decode %s: %w", res.Path(), err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrEmptyImage, res.Path())
	}

	tex := &Texture{
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Data:   make([]types.Color, bounds.Dx()*bounds.Dy()),
	}

	offset := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			tex.Data[offset] = types.ColorFromRGBA(img.At(x, y))
			offset++
		}
	}

	return tex, nil
}

// Get the texel at (x, y). Coordinates wrap around the texture edges.
func (t *Texture) At(x, y int) types.Color {
	x %= t.Width
	if x < 0 {
		x += t.Width
	}
	y %= t.Height
	if y < 0 {
		y += t.Height
	}
	return t.Data[y*t.Width+x]
}

// Look up the texel for texture coordinates (u, v) tiled tilingX and tilingY
// times across the surface.
func (t *Texture) Sample(uv types.Vec2, tilingX, tilingY float32) types.Color {
	x := int(math32.Floor(uv[0] * tilingX * float32(t.Width)))
	y := int(math32.Floor(uv[1] * tilingY * float32(t.Height)))
	return t.At(x, y)
}

// A Registry maps resolved resource paths to decoded textures. A populated
// registry is read-only and can be shared between render workers.
type Registry map[string]*Texture

// Get a texture by its path.
func (r Registry) Lookup(path string) (*Texture, error) {
	if tex, exists := r[path]; exists {
		return tex, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Ensure that every path in the list has been loaded.
func (r Registry) Check(paths []string) error {
	for _, path := range paths {
		if _, err := r.Lookup(path); err != nil {
			return err
		}
	}
	return nil
}

// Load the textures at the given paths concurrently. Duplicate paths are
// loaded once. The first load error aborts the operation.
func LoadRegistry(paths []string) (Registry, error) {
	var (
		unique []string
		seen   = make(map[string]struct{}, len(paths))
	)
	for _, path := range paths {
		if _, exists := seen[path]; exists {
			continue
		}
		seen[path] = struct{}{}
		unique = append(unique, path)
	}

	// Each worker owns one slot so no locking is needed.
	textures := make([]*Texture, len(unique))
	var group errgroup.Group
	group.SetLimit(4)
	for index, path := range unique {
		index, path := index, path
		group.Go(func() error {
			res, err := asset.NewResource(path, nil)
			if err != nil {
				return err
			}
			defer res.Close()

			tex, err := New(res)
			if err != nil {
				return err
			}
			logger.Debugf("loaded %s texture %s (%dx%d)", tex.Format, path, tex.Width, tex.Height)

			textures[index] = tex
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	reg := make(Registry, len(unique))
	for index, path := range unique {
		reg[path] = textures[index]
	}
	return reg, nil
}

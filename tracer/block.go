package tracer

import (
	"errors"
	"fmt"
	"image"

	"github.com/achilleasa/lumen/types"
	"github.com/chewxy/math32"
)

var ErrSampleOutOfBounds = errors.New("tracer: sample lies outside the block")

// A single image sample. Position is expressed in image space (pixel units).
type Sample struct {
	Position types.Vec2
	Color    types.Color
}

// The samples collected for one image pixel.
type Pixel struct {
	X, Y    int
	Samples []Sample
}

// Get the image-space position of the pixel center.
func (p *Pixel) Center() types.Vec2 {
	return types.XY(float32(p.X)+0.5, float32(p.Y)+0.5)
}

// A rectangular region of the frame that is traced as a unit. Pixels are
// stored row-major; Colors receives the reconstructed pixel colors in the
// same order.
type Block struct {
	ID     int
	Rect   image.Rectangle
	Pixels []Pixel
	Colors []types.Color
}

// Allocate a block covering rect.
func NewBlock(id int, rect image.Rectangle) *Block {
	b := &Block{
		ID:     id,
		Rect:   rect,
		Pixels: make([]Pixel, rect.Dx()*rect.Dy()),
		Colors: make([]types.Color, rect.Dx()*rect.Dy()),
	}

	offset := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			b.Pixels[offset] = Pixel{X: x, Y: y}
			offset++
		}
	}
	return b
}

// Get the image-space bounds of the block.
func (b *Block) Bounds() image.Rectangle {
	return b.Rect
}

// Get the pixel at image coordinates (x, y) or nil if it lies outside the block.
func (b *Block) Pixel(x, y int) *Pixel {
	if !(image.Point{x, y}).In(b.Rect) {
		return nil
	}
	return &b.Pixels[(y-b.Rect.Min.Y)*b.Rect.Dx()+(x-b.Rect.Min.X)]
}

// Append a sample to the pixel containing its position.
func (b *Block) AddSample(s Sample) error {
	px := b.Pixel(int(math32.Floor(s.Position[0])), int(math32.Floor(s.Position[1])))
	if px == nil {
		return fmt.Errorf("%w: sample at %v; block %d bounds %v", ErrSampleOutOfBounds, s.Position, b.ID, b.Rect)
	}
	px.Samples = append(px.Samples, s)
	return nil
}

// Count the samples stored in the block.
func (b *Block) SampleCount() int {
	count := 0
	for i := range b.Pixels {
		count += len(b.Pixels[i].Samples)
	}
	return count
}

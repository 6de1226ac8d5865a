package renderer

import (
	"fmt"
	"image"
	"sync"

	"github.com/achilleasa/lumen/tracer"
	"github.com/achilleasa/lumen/types"
)

// A Frame holds the reconstructed pixel colors of a render in a flat
// row-major buffer. Blocks are copied in as a whole under a single lock.
type Frame struct {
	Width  int
	Height int
	Pix    []types.Color

	mu         sync.Mutex
	blocksDone int
}

// Allocate a black frame.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]types.Color, width*height),
	}
}

// Get the frame bounds.
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// Get the color of pixel (x, y).
func (f *Frame) At(x, y int) types.Color {
	return f.Pix[y*f.Width+x]
}

// Copy the reconstructed colors of a block into the frame and return the
// number of blocks written so far.
func (f *Frame) Superpose(b *tracer.Block) (int, error) {
	if !b.Rect.In(f.Bounds()) {
		return 0, fmt.Errorf("%w: block %d bounds %v; frame %v", ErrBlockOutOfFrame, b.ID, b.Rect, f.Bounds())
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	w := b.Rect.Dx()
	for y := b.Rect.Min.Y; y < b.Rect.Max.Y; y++ {
		src := b.Colors[(y-b.Rect.Min.Y)*w : (y-b.Rect.Min.Y+1)*w]
		copy(f.Pix[y*f.Width+b.Rect.Min.X:], src)
	}
	f.blocksDone++
	return f.blocksDone, nil
}

// Convert the frame to an 8-bit image.
func (f *Frame) RGBA() *image.RGBA {
	img := image.NewRGBA(f.Bounds())
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, f.At(x, y).RGBA())
		}
	}
	return img
}

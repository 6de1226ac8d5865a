package tracer

import (
	"fmt"
	"image"
)

// The BlockScheduler interface is implemented by all frame partitioning
// strategies. A schedule covers every frame pixel exactly once.
type BlockScheduler interface {
	// Split a frameW x frameH frame into blocks. The returned slice order is
	// the order in which blocks are handed to the render workers.
	Schedule(frameW, frameH int) []image.Rectangle
}

// Square tiles of a fixed size; tiles on the right and bottom edges are
// clipped to the frame.
type tileScheduler struct {
	size int
}

// Create a scheduler that splits frames into size x size tiles.
func NewTileScheduler(size int) BlockScheduler {
	return &tileScheduler{size: size}
}

func (sch *tileScheduler) Schedule(frameW, frameH int) []image.Rectangle {
	return Partition(frameW, frameH, sch.size)
}

// Full-width strips of a fixed height.
type rowScheduler struct {
	rows int
}

// Create a scheduler that splits frames into full-width strips that are
// rows pixels high.
func NewRowScheduler(rows int) BlockScheduler {
	return &rowScheduler{rows: rows}
}

func (sch *rowScheduler) Schedule(frameW, frameH int) []image.Rectangle {
	if frameW <= 0 || frameH <= 0 || sch.rows <= 0 {
		return nil
	}

	strips := make([]image.Rectangle, 0, (frameH+sch.rows-1)/sch.rows)
	for y := 0; y < frameH; y += sch.rows {
		strips = append(strips, image.Rect(0, y, frameW, min(y+sch.rows, frameH)))
	}
	return strips
}

// Select a scheduler by name.
func NewScheduler(name string, blockSize int) (BlockScheduler, error) {
	switch name {
	case "", "tiles":
		return NewTileScheduler(blockSize), nil
	case "rows":
		return NewRowScheduler(blockSize), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownSchedule, name)
}

// Split a frame into size x size blocks in row-major order. The number of
// blocks along each axis is rounded up so edge blocks may be smaller.
func Partition(frameW, frameH, size int) []image.Rectangle {
	if frameW <= 0 || frameH <= 0 || size <= 0 {
		return nil
	}

	cols := (frameW + size - 1) / size
	rows := (frameH + size - 1) / size
	blocks := make([]image.Rectangle, 0, cols*rows)
	for by := 0; by < rows; by++ {
		for bx := 0; bx < cols; bx++ {
			x0, y0 := bx*size, by*size
			blocks = append(blocks, image.Rect(x0, y0, min(x0+size, frameW), min(y0+size, frameH)))
		}
	}
	return blocks
}

package renderer

import (
	"fmt"

	"github.com/achilleasa/lumen/tracer"
	"github.com/achilleasa/lumen/types"
)

type Options struct {
	// Frame dims.
	FrameW int
	FrameH int

	// Block dims and the partitioning strategy ("tiles" or "rows").
	BlockSize int
	Schedule  string

	// Number of render workers; 0 selects one worker per CPU.
	NumWorkers int

	// Sample placement and reconstruction.
	Sampler tracer.SamplerKind
	// Number of samples.
	SamplesPerPixel int
	Filter          tracer.FilterKind

	// Color of rays that escape the scene.
	Background types.Color

	// Seed for the per-block random number generators.
	Seed int64

	// Optional callback invoked after each block is written to the frame.
	Progress func(done, total int)
}

// Get the default render options.
func DefaultOptions() Options {
	return Options{
		FrameW:          960,
		FrameH:          540,
		BlockSize:       32,
		Schedule:        "tiles",
		Sampler:         tracer.StratifiedSampler,
		SamplesPerPixel: 1,
		Filter:          tracer.BoxFilter,
		Background:      types.Black,
	}
}

// Check that the options describe a renderable frame.
func (opts *Options) Validate() error {
	if opts.FrameW <= 0 || opts.FrameH <= 0 {
		return fmt.Errorf("%w; got %dx%d", ErrInvalidFrameDims, opts.FrameW, opts.FrameH)
	}
	if opts.BlockSize <= 0 {
		return fmt.Errorf("%w; got %d", ErrInvalidBlockSize, opts.BlockSize)
	}
	if opts.SamplesPerPixel < 1 {
		return fmt.Errorf("%w; got %d", ErrInvalidSampleRate, opts.SamplesPerPixel)
	}
	if opts.NumWorkers < 0 {
		return fmt.Errorf("%w; got %d", ErrInvalidWorkers, opts.NumWorkers)
	}
	if err := (tracer.Sampler{Kind: opts.Sampler, Rate: opts.SamplesPerPixel}).Validate(); err != nil {
		return err
	}
	if err := (tracer.Filter{Kind: opts.Filter}).Validate(); err != nil {
		return err
	}
	if _, err := tracer.NewScheduler(opts.Schedule, opts.BlockSize); err != nil {
		return err
	}
	return nil
}

package tracer

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/achilleasa/lumen/asset/texture"
	"github.com/achilleasa/lumen/scene"
	"github.com/achilleasa/lumen/types"
)

// Block statistics.
type Stats struct {
	Blocks  int
	Pixels  int
	Samples int

	// Number of primary rays that hit an object.
	Hits int

	// Time spent tracing.
	Elapsed time.Duration
}

// Accumulate the statistics of another block.
func (s *Stats) Add(other Stats) {
	s.Blocks += other.Blocks
	s.Pixels += other.Pixels
	s.Samples += other.Samples
	s.Hits += other.Hits
	s.Elapsed += other.Elapsed
}

// A Tracer turns blocks into reconstructed pixel colors. All fields are
// read-only once tracing starts so a single Tracer can be shared by any
// number of workers.
type Tracer struct {
	World    *scene.World
	Canvas   scene.Canvas
	Textures texture.Registry

	FrameW int
	FrameH int

	Sampler    Sampler
	Filter     Filter
	Background types.Color

	// Base seed for the per-block random number generators.
	Seed int64
}

// Create a tracer rendering the world through camera into a frameW x frameH
// frame.
func New(world *scene.World, camera *scene.Camera, frameW, frameH int) *Tracer {
	return &Tracer{
		World:   world,
		Canvas:  camera.CanvasBase(float32(frameW) / float32(frameH)),
		FrameW:  frameW,
		FrameH:  frameH,
		Sampler: Sampler{Kind: StratifiedSampler, Rate: 1},
		Filter:  Filter{Kind: BoxFilter},
	}
}

// Get the random number generator seed for a block. The result depends only
// on the tracer seed and the block id so output does not depend on which
// worker traced the block.
func (tr *Tracer) BlockSeed(blockID int) int64 {
	return tr.Seed*6364136223846793005 + int64(blockID)*1442695040888963407 + 1
}

// Sample, trace and filter all pixels in block b.
func (tr *Tracer) TraceBlock(b *Block) (Stats, error) {
	start := time.Now()
	stats := Stats{Blocks: 1, Pixels: len(b.Pixels)}

	if err := tr.Sampler.CreateSamples(b); err != nil {
		return stats, err
	}

	ctx := &scene.ShadingContext{
		World:    tr.World,
		Textures: tr.Textures,
		Rand:     rand.New(rand.NewSource(tr.BlockSeed(b.ID))),
	}
	resX, resY := float32(tr.FrameW), float32(tr.FrameH)

	for pi := range b.Pixels {
		px := &b.Pixels[pi]
		for si := range px.Samples {
			sample := &px.Samples[si]
			ray := tr.Canvas.RayFromSample(sample.Position, resX, resY)

			frag, obj, hit := tr.World.Intersect(ray)
			if !hit {
				sample.Color = tr.Background
				continue
			}

			color, err := obj.Material.Color(&frag, ray, ctx)
			if err != nil {
				return stats, fmt.Errorf("tracer: shading object %q: %w", obj.Name, err)
			}
			sample.Color = color
			stats.Hits++
		}
		stats.Samples += len(px.Samples)
		b.Colors[pi] = tr.Filter.Reconstruct(px)
	}

	stats.Elapsed = time.Since(start)
	return stats, nil
}

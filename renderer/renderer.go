package renderer

import (
	"fmt"
	"runtime"
	"time"

	"github.com/achilleasa/lumen/asset/texture"
	"github.com/achilleasa/lumen/log"
	"github.com/achilleasa/lumen/scene"
	"github.com/achilleasa/lumen/tracer"
)

type Renderer interface {
	// Render a frame of world as seen through camera.
	Render(world *scene.World, camera *scene.Camera) (*Frame, error)

	// Get render statistics for the last rendered frame.
	Stats() FrameStats
}

// The default renderer traces blocks in parallel on a fixed pool of workers.
type defaultRenderer struct {
	logger   log.Logger
	options  Options
	textures texture.Registry
	stats    FrameStats
}

// Create a new renderer. Textures must contain every texture referenced by
// the materials of the worlds passed to Render.
func NewDefault(opts Options, textures texture.Registry) (Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.NumWorkers == 0 {
		opts.NumWorkers = runtime.NumCPU()
	}

	return &defaultRenderer{
		logger:   log.New("renderer"),
		options:  opts,
		textures: textures,
	}, nil
}

// Get render statistics for the last rendered frame.
func (r *defaultRenderer) Stats() FrameStats {
	return r.stats
}

// Render a frame. The call blocks until every block has been traced. If any
// block fails the first error is returned once the remaining blocks finish.
func (r *defaultRenderer) Render(world *scene.World, camera *scene.Camera) (*Frame, error) {
	if world == nil {
		return nil, ErrSceneNotDefined
	}
	if camera == nil {
		return nil, ErrCameraNotDefined
	}
	if err := camera.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCameraNotDefined, err)
	}
	if err := r.textures.Check(world.TexturePaths()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingTexture, err)
	}

	opts := r.options
	sch, err := tracer.NewScheduler(opts.Schedule, opts.BlockSize)
	if err != nil {
		return nil, err
	}
	rects := sch.Schedule(opts.FrameW, opts.FrameH)

	tr := tracer.New(world, camera, opts.FrameW, opts.FrameH)
	tr.Textures = r.textures
	tr.Sampler = tracer.Sampler{Kind: opts.Sampler, Rate: opts.SamplesPerPixel}
	tr.Filter = tracer.Filter{Kind: opts.Filter}
	tr.Background = opts.Background
	tr.Seed = opts.Seed

	numWorkers := min(opts.NumWorkers, len(rects))
	r.logger.Infof("rendering %dx%d frame: %d blocks, %d workers, %d %s spp, %s filter",
		opts.FrameW, opts.FrameH, len(rects), numWorkers, opts.SamplesPerPixel, opts.Sampler, opts.Filter)

	start := time.Now()
	frame := NewFrame(opts.FrameW, opts.FrameH)
	pool := newWorkerPool(tr, frame, numWorkers, len(rects))
	pool.Start()
	for id, rect := range rects {
		pool.Submit(blockTask{ID: id, Rect: rect})
	}
	go pool.Stop()

	workerStats := make([]tracer.Stats, numWorkers)
	var firstErr error
	for res := range pool.Results() {
		if res.Err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("renderer: block %d: %w", res.ID, res.Err)
			}
			continue
		}
		workerStats[res.WorkerID].Add(res.Stats)
		if opts.Progress != nil {
			opts.Progress(res.Done, len(rects))
		}
	}

	r.stats = r.collectStats(workerStats, len(rects), time.Since(start))
	if firstErr != nil {
		return nil, firstErr
	}

	r.logger.Debugf("frame rendered in %s", r.stats.RenderTime)
	return frame, nil
}

func (r *defaultRenderer) collectStats(workerStats []tracer.Stats, blocks int, elapsed time.Duration) FrameStats {
	stats := FrameStats{
		Workers:    make([]WorkerStat, len(workerStats)),
		Blocks:     blocks,
		RenderTime: elapsed,
	}

	framePixels := float32(r.options.FrameW * r.options.FrameH)
	for id, ws := range workerStats {
		stats.Workers[id] = WorkerStat{
			Id:           id,
			Blocks:       ws.Blocks,
			Pixels:       ws.Pixels,
			Samples:      ws.Samples,
			Hits:         ws.Hits,
			FramePercent: 100 * float32(ws.Pixels) / framePixels,
			RenderTime:   ws.Elapsed,
		}
	}
	return stats
}

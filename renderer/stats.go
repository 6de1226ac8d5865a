package renderer

import "time"

type WorkerStat struct {
	// The worker id.
	Id int

	// Blocks, pixels and samples traced by this worker.
	Blocks  int
	Pixels  int
	Samples int
	Hits    int

	// The percentage of total frame area traced by this worker.
	FramePercent float32

	// Time spent tracing blocks.
	RenderTime time.Duration
}

type FrameStats struct {
	// Individual worker stats.
	Workers []WorkerStat

	// Number of blocks the frame was split into.
	Blocks int

	// Total render time for entire frame.
	RenderTime time.Duration
}

package renderer

import (
	"image"
	"sync"

	"github.com/achilleasa/lumen/tracer"
)

// A block waiting to be traced.
type blockTask struct {
	ID   int
	Rect image.Rectangle
}

// The outcome of tracing a block.
type blockResult struct {
	ID       int
	WorkerID int
	Done     int
	Stats    tracer.Stats
	Err      error
}

// A fixed-size pool of workers that trace blocks and write them back to a
// shared frame.
type workerPool struct {
	taskQueue   chan blockTask
	resultQueue chan blockResult
	workers     []*worker
	wg          sync.WaitGroup
}

type worker struct {
	ID          int
	tracer      *tracer.Tracer
	frame       *Frame
	taskQueue   <-chan blockTask
	resultQueue chan<- blockResult
}

// Create a pool with numWorkers workers sharing tr and frame. The queues are
// sized to hold every block of the frame so submitting never blocks.
func newWorkerPool(tr *tracer.Tracer, frame *Frame, numWorkers, numBlocks int) *workerPool {
	wp := &workerPool{
		taskQueue:   make(chan blockTask, numBlocks),
		resultQueue: make(chan blockResult, numBlocks),
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &worker{
			ID:          i,
			tracer:      tr,
			frame:       frame,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}
	return wp
}

// Start all workers.
func (wp *workerPool) Start() {
	for _, w := range wp.workers {
		wp.wg.Add(1)
		go w.run(&wp.wg)
	}
}

// Signal that no more tasks will be submitted, wait for the workers to drain
// the queue and close the result queue.
func (wp *workerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// Queue a block for tracing.
func (wp *workerPool) Submit(task blockTask) {
	wp.taskQueue <- task
}

// Get the channel that receives block results.
func (wp *workerPool) Results() <-chan blockResult {
	return wp.resultQueue
}

func (w *worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		block := tracer.NewBlock(task.ID, task.Rect)
		stats, err := w.tracer.TraceBlock(block)

		result := blockResult{ID: task.ID, WorkerID: w.ID, Stats: stats, Err: err}
		if err == nil {
			result.Done, result.Err = w.frame.Superpose(block)
		}
		w.resultQueue <- result
	}
}

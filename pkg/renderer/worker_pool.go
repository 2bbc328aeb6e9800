package renderer

import (
	"math/rand"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/cpu"
	"golang.org/x/sync/errgroup"
)

// ScanlineTask is one row waiting to be rendered
type ScanlineTask struct {
	Row int
}

// RowFunc renders a single row. random belongs to the calling worker.
type RowFunc func(row int, random *rand.Rand) error

// WorkerPool renders rows in parallel. Every row is queued before the
// workers start; each worker owns a generator seeded with seed+workerID.
type WorkerPool struct {
	numWorkers int
	seed       int64
	logger     zerolog.Logger
}

// NewWorkerPool creates a worker pool with the specified number of workers,
// or one per logical CPU when numWorkers is not positive
func NewWorkerPool(numWorkers int, seed int64, logger zerolog.Logger) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkerCount()
	}

	return &WorkerPool{
		numWorkers: numWorkers,
		seed:       seed,
		logger:     logger,
	}
}

// DefaultWorkerCount returns the number of logical CPUs
func DefaultWorkerCount() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders rows 0..rows-1 and blocks until all workers have exited. A
// failing row does not stop the others; the first error is returned after
// every row has been attempted. The result counts rows handled per worker.
func (wp *WorkerPool) Run(rows int, work RowFunc) ([]int, error) {
	tasks := make(chan ScanlineTask, max(rows, 0))
	for y := 0; y < rows; y++ {
		tasks <- ScanlineTask{Row: y}
	}
	close(tasks)

	rowsPerWorker := make([]int, wp.numWorkers)

	var g errgroup.Group
	for i := 0; i < wp.numWorkers; i++ {
		id := i
		g.Go(func() error {
			return wp.runWorker(id, tasks, work, &rowsPerWorker[id])
		})
	}

	err := g.Wait()
	return rowsPerWorker, err
}

// runWorker is the main worker loop
func (wp *WorkerPool) runWorker(id int, tasks <-chan ScanlineTask, work RowFunc, handled *int) error {
	random := rand.New(rand.NewSource(wp.seed + int64(id)))
	logger := wp.logger.With().Int("worker", id).Logger()
	logger.Debug().Msg("Worker started")

	var firstErr error
	for task := range tasks {
		if err := work(task.Row, random); err != nil {
			logger.Error().Err(err).Int("row", task.Row).Msg("Scanline failed")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		*handled++
	}

	logger.Debug().Int("rows", *handled).Msg("Worker finished")
	return firstErr
}

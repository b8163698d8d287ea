package ellspmv

import "github.com/ellkernel/ellspmv/hwy/contrib/workerpool"

// Executor is the opaque compute-backend handle: a CPU backend with
// OpenMP-style shared-memory parallelism. It wraps a persistent worker pool
// and carries no further state the kernels consume.
type Executor struct {
	pool *workerpool.Pool
}

// NewExecutor creates an Executor backed by numWorkers persistent
// goroutines. numWorkers <= 0 uses runtime.GOMAXPROCS.
func NewExecutor(numWorkers int) *Executor {
	return &Executor{pool: workerpool.New(numWorkers)}
}

// NumWorkers returns the number of worker goroutines backing this executor.
func (e *Executor) NumWorkers() int {
	return e.pool.NumWorkers()
}

// Close shuts down the worker pool. Safe to call multiple times.
func (e *Executor) Close() {
	e.pool.Close()
}

// run distributes rowBlocks row-blocks across the pool using a static,
// contiguous partition: each worker owns a contiguous range it processes
// strictly sequentially, with no cross-worker reduction, so every output
// row is written by exactly one goroutine.
func (e *Executor) run(rowBlocks int, fn func(start, end int)) {
	e.pool.ParallelFor(rowBlocks, fn)
}

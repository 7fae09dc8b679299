package renderer

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// WorkerPool runs a fixed number of render workers that pull pixels from a
// shared allocator
type WorkerPool struct {
	numWorkers int
	allocator  *PixelAllocator
	wg         sync.WaitGroup

	errOnce sync.Once
	err     error
}

// NewWorkerPool creates a pool of numWorkers workers over allocator
func NewWorkerPool(numWorkers int, allocator *PixelAllocator) *WorkerPool {
	return &WorkerPool{
		numWorkers: numWorkers,
		allocator:  allocator,
	}
}

// Start launches every worker. Each worker runs work with its id.
func (wp *WorkerPool) Start(work func(workerID int)) {
	for id := 0; id < wp.numWorkers; id++ {
		wp.wg.Add(1)
		go func(id int) {
			defer wp.wg.Done()
			if err := wp.run(id, work); err != nil {
				wp.fail(err)
			}
		}(id)
	}
}

// Wait blocks until every worker has returned and reports the first failure
func (wp *WorkerPool) Wait() error {
	wp.wg.Wait()
	return wp.err
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run executes work, converting a panic into an error
func (wp *WorkerPool) run(id int, work func(workerID int)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker %d panicked: %v\n%s", id, r, debug.Stack())
		}
	}()
	work(id)
	return nil
}

// fail records the first error and stops the allocator so the remaining
// workers drain quickly
func (wp *WorkerPool) fail(err error) {
	wp.errOnce.Do(func() {
		wp.err = err
	})
	wp.allocator.Abort()
}

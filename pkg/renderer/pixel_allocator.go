package renderer

import (
	"sync/atomic"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PixelAllocator hands out pixels of a width x height image in row-major
// order. It is safe for concurrent use; each pixel is handed out once.
type PixelAllocator struct {
	width int
	total int64

	next      atomic.Int64
	completed atomic.Int64
	aborted   atomic.Bool

	interval time.Duration // Progress log period; 0 disables progress logs
	lastLog  atomic.Int64  // UnixNano of the last progress line
	logger   core.Logger
}

// NewPixelAllocator creates an allocator over width*height pixels
func NewPixelAllocator(width, height int, interval time.Duration, logger core.Logger) *PixelAllocator {
	p := &PixelAllocator{
		width:    width,
		total:    int64(width) * int64(height),
		interval: interval,
		logger:   logger,
	}
	p.lastLog.Store(time.Now().UnixNano())
	return p
}

// Next claims the next pixel. ok is false once every pixel has been claimed
// or the allocator was aborted.
func (p *PixelAllocator) Next() (col, row int, ok bool) {
	if p.aborted.Load() {
		return 0, 0, false
	}

	index := p.next.Add(1) - 1
	if index >= p.total {
		return 0, 0, false
	}
	return int(index % int64(p.width)), int(index / int64(p.width)), true
}

// Done records one finished pixel and logs progress when the interval elapsed
func (p *PixelAllocator) Done() {
	completed := p.completed.Add(1)
	if p.interval <= 0 || p.logger == nil {
		return
	}

	now := time.Now().UnixNano()
	last := p.lastLog.Load()
	if now-last < int64(p.interval) || !p.lastLog.CompareAndSwap(last, now) {
		return
	}
	p.logger.Printf("Progress: %5.1f%% (%d/%d pixels)\n",
		100*float64(completed)/float64(p.total), completed, p.total)
}

// Abort stops handing out pixels
func (p *PixelAllocator) Abort() {
	p.aborted.Store(true)
}

// Completed returns the number of pixels reported done
func (p *PixelAllocator) Completed() int64 {
	return p.completed.Load()
}

// Total returns the number of pixels in the image
func (p *PixelAllocator) Total() int64 {
	return p.total
}

package renderer

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestPixelAllocator_RowMajorOrder(t *testing.T) {
	allocator := NewPixelAllocator(3, 2, 0, nil)

	expected := [][2]int{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}
	for i, want := range expected {
		col, row, ok := allocator.Next()
		if !ok {
			t.Fatalf("Pixel %d: allocator exhausted early", i)
		}
		if col != want[0] || row != want[1] {
			t.Errorf("Pixel %d: expected (%d,%d), got (%d,%d)", i, want[0], want[1], col, row)
		}
	}

	for i := 0; i < 3; i++ {
		if _, _, ok := allocator.Next(); ok {
			t.Error("Expected exhausted allocator to keep returning the sentinel")
		}
	}
}

func TestPixelAllocator_ConcurrentClaimsAreDisjoint(t *testing.T) {
	const width, height, workers = 37, 23, 8
	allocator := NewPixelAllocator(width, height, 0, nil)

	var mu sync.Mutex
	claimed := make(map[[2]int]int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				col, row, ok := allocator.Next()
				if !ok {
					return
				}
				mu.Lock()
				claimed[[2]int{col, row}]++
				mu.Unlock()
				allocator.Done()
			}
		}()
	}
	wg.Wait()

	if len(claimed) != width*height {
		t.Errorf("Expected %d distinct pixels, got %d", width*height, len(claimed))
	}
	for pixel, count := range claimed {
		if count != 1 {
			t.Errorf("Pixel %v claimed %d times", pixel, count)
		}
	}
	if allocator.Completed() != width*height {
		t.Errorf("Expected %d completed, got %d", width*height, allocator.Completed())
	}
}

func TestPixelAllocator_Abort(t *testing.T) {
	allocator := NewPixelAllocator(10, 10, 0, nil)
	allocator.Next()
	allocator.Abort()

	if _, _, ok := allocator.Next(); ok {
		t.Error("Expected no pixels after abort")
	}
}

func TestPixelAllocator_ProgressLogging(t *testing.T) {
	logger := &recordingLogger{}
	allocator := NewPixelAllocator(2, 2, time.Nanosecond, logger)

	for i := 0; i < 4; i++ {
		allocator.Next()
		time.Sleep(time.Millisecond)
		allocator.Done()
	}

	if len(logger.lines) == 0 {
		t.Error("Expected progress lines with a short interval")
	}

	quiet := &recordingLogger{}
	allocator = NewPixelAllocator(2, 2, 0, quiet)
	for i := 0; i < 4; i++ {
		allocator.Next()
		allocator.Done()
	}
	if len(quiet.lines) != 0 {
		t.Errorf("Expected no progress lines with interval 0, got %d", len(quiet.lines))
	}
}

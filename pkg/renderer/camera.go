package renderer

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var (
	// ErrMissingConfiguration is wrapped by every MissingConfigurationError
	ErrMissingConfiguration = errors.New("missing camera configuration")

	// ErrInvalidConfiguration marks camera settings outside their valid range
	ErrInvalidConfiguration = errors.New("invalid camera configuration")
)

// MissingConfigurationError names a required camera field that was not set
type MissingConfigurationError struct {
	Field string
}

func (e *MissingConfigurationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingConfiguration, e.Field)
}

func (e *MissingConfigurationError) Unwrap() error {
	return ErrMissingConfiguration
}

// RayTracer computes the color seen along a primary ray. Implementations
// must be safe for concurrent use; per-call state lives in sampler and stats.
type RayTracer interface {
	RayColor(ray core.Ray, sampler core.Sampler, stats *core.RayStats) core.Vec3
}

// CameraConfig describes a camera. Location, Forward and Up are pointers so
// that an unset vector can be told apart from the origin.
type CameraConfig struct {
	Location *core.Vec3
	Forward  *core.Vec3 // Must be perpendicular to Up
	Up       *core.Vec3

	ViewPlaneWidth    float64
	ViewPlaneHeight   float64
	ViewPlaneDistance float64

	Threads       int     // Render goroutines; 0 renders synchronously
	SampleGrid    int     // Anti-aliasing rays per pixel axis; 0 or 1 casts one ray
	DebugInterval float64 // Seconds between progress lines; 0 disables them
	Seed          uint64  // Base seed for per-pixel sampling

	Sink       ImageSink
	Integrator RayTracer
	Logger     core.Logger // Optional
}

// Camera generates primary rays through a view plane and renders them into
// a sink. It is immutable once built.
type Camera struct {
	location core.Vec3
	forward  core.Vec3
	up       core.Vec3
	right    core.Vec3

	width    float64
	height   float64
	distance float64

	threads       int
	sampleGrid    int
	debugInterval time.Duration
	seed          uint64

	sink   ImageSink
	tracer RayTracer
	logger core.Logger
}

// NewCamera validates config and builds a camera
func NewCamera(config CameraConfig) (*Camera, error) {
	switch {
	case config.Location == nil:
		return nil, &MissingConfigurationError{Field: "Location"}
	case config.Forward == nil:
		return nil, &MissingConfigurationError{Field: "Forward"}
	case config.Up == nil:
		return nil, &MissingConfigurationError{Field: "Up"}
	case config.ViewPlaneWidth == 0:
		return nil, &MissingConfigurationError{Field: "ViewPlaneWidth"}
	case config.ViewPlaneHeight == 0:
		return nil, &MissingConfigurationError{Field: "ViewPlaneHeight"}
	case config.ViewPlaneDistance == 0:
		return nil, &MissingConfigurationError{Field: "ViewPlaneDistance"}
	case config.Sink == nil:
		return nil, &MissingConfigurationError{Field: "Sink"}
	case config.Integrator == nil:
		return nil, &MissingConfigurationError{Field: "Integrator"}
	}

	forward, err := core.UnitVector(*config.Forward)
	if err != nil {
		return nil, fmt.Errorf("camera forward: %w", err)
	}
	up, err := core.UnitVector(*config.Up)
	if err != nil {
		return nil, fmt.Errorf("camera up: %w", err)
	}
	if !core.IsZero(forward.Dot(up)) {
		return nil, fmt.Errorf("forward %v and up %v are not perpendicular: %w", *config.Forward, *config.Up, ErrInvalidConfiguration)
	}

	if config.ViewPlaneWidth < 0 || config.ViewPlaneHeight < 0 || config.ViewPlaneDistance < 0 {
		return nil, fmt.Errorf("view plane size and distance must be positive: %w", ErrInvalidConfiguration)
	}
	if config.Threads < 0 {
		return nil, fmt.Errorf("threads must not be negative, got %d: %w", config.Threads, ErrInvalidConfiguration)
	}
	if config.SampleGrid < 0 {
		return nil, fmt.Errorf("sample grid must not be negative, got %d: %w", config.SampleGrid, ErrInvalidConfiguration)
	}
	if config.DebugInterval < 0 {
		return nil, fmt.Errorf("debug interval must not be negative, got %g: %w", config.DebugInterval, ErrInvalidConfiguration)
	}
	if config.Sink.Width() <= 0 || config.Sink.Height() <= 0 {
		return nil, fmt.Errorf("image size %dx%d: %w", config.Sink.Width(), config.Sink.Height(), ErrInvalidConfiguration)
	}

	logger := config.Logger
	if logger == nil {
		logger = discardLogger{}
	}

	return &Camera{
		location:      *config.Location,
		forward:       forward,
		up:            up,
		right:         forward.Cross(up).Normalize(),
		width:         config.ViewPlaneWidth,
		height:        config.ViewPlaneHeight,
		distance:      config.ViewPlaneDistance,
		threads:       config.Threads,
		sampleGrid:    max(config.SampleGrid, 1),
		debugInterval: time.Duration(config.DebugInterval * float64(time.Second)),
		seed:          config.Seed,
		sink:          config.Sink,
		tracer:        config.Integrator,
		logger:        logger,
	}, nil
}

// pixelCenter returns the point on the view plane at the center of pixel
// (col,row) of a resX x resY grid
func (c *Camera) pixelCenter(resX, resY, col, row int) core.Vec3 {
	point := c.location.Add(c.forward.Multiply(c.distance))

	xJ := (float64(col) - float64(resX-1)/2) * (c.width / float64(resX))
	yI := -(float64(row) - float64(resY-1)/2) * (c.height / float64(resY))

	if !core.IsZero(xJ) {
		point = point.Add(c.right.Multiply(xJ))
	}
	if !core.IsZero(yI) {
		point = point.Add(c.up.Multiply(yI))
	}
	return point
}

// ConstructRay returns the ray from the camera through the center of pixel
// (col,row) of a resX x resY grid. Row 0 is the top of the image.
func (c *Camera) ConstructRay(resX, resY, col, row int) core.Ray {
	return core.NewRay(c.location, c.pixelCenter(resX, resY, col, row).Subtract(c.location))
}

// castPixel averages the colors of the pixel's rays. A sample grid of n
// jitters n² rays over the pixel footprint.
func (c *Camera) castPixel(resX, resY, col, row int, sampler core.Sampler, stats *core.RayStats) core.Vec3 {
	if c.sampleGrid == 1 {
		return c.tracer.RayColor(c.ConstructRay(resX, resY, col, row), sampler, stats)
	}

	pixelSize := math.Min(c.width/float64(resX), c.height/float64(resY))
	board := core.NewBlackboardWithAxes(c.sampleGrid, c.location,
		c.pixelCenter(resX, resY, col, row), c.right, c.up, pixelSize/2)

	rays := board.Rays(sampler)
	if len(rays) == 0 {
		return c.tracer.RayColor(c.ConstructRay(resX, resY, col, row), sampler, stats)
	}

	color := core.Vec3{}
	for _, ray := range rays {
		color = color.Add(c.tracer.RayColor(ray, sampler, stats))
	}
	return color.Multiply(1.0 / float64(len(rays)))
}

// PrintGrid overwrites every interval-th row and column of the sink with
// color, a debugging overlay for checking the view plane layout
func (c *Camera) PrintGrid(interval int, color core.Vec3) error {
	if interval <= 0 {
		return fmt.Errorf("grid interval must be positive, got %d: %w", interval, ErrInvalidConfiguration)
	}

	width, height := c.sink.Width(), c.sink.Height()
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if row%interval == 0 || col%interval == 0 {
				c.sink.WritePixel(col, row, color)
			}
		}
	}
	return nil
}

// pixelWorker renders pixels with its own sampler and ray counters
type pixelWorker struct {
	camera  *Camera
	sampler *core.SeededSampler
	stats   core.RayStats
}

func (c *Camera) newPixelWorker() *pixelWorker {
	return &pixelWorker{
		camera:  c,
		sampler: core.NewSeededSampler(c.seed),
	}
}

// drain renders pixels until the allocator runs out
func (w *pixelWorker) drain(allocator *PixelAllocator) {
	c := w.camera
	width, height := c.sink.Width(), c.sink.Height()

	for {
		col, row, ok := allocator.Next()
		if !ok {
			return
		}

		// Each pixel's randomness depends only on its index
		w.sampler.Reset(c.seed, uint64(row)*uint64(width)+uint64(col))
		c.sink.WritePixel(col, row, c.castPixel(width, height, col, row, w.sampler, &w.stats))
		allocator.Done()
	}
}

// Render casts every pixel into the sink. With zero threads the pixels are
// rendered synchronously in row-major order; otherwise that many goroutines
// share the pixels. A panic while shading aborts the render and is returned
// as an error.
func (c *Camera) Render() (RenderStats, error) {
	start := time.Now()
	width, height := c.sink.Width(), c.sink.Height()
	allocator := NewPixelAllocator(width, height, c.debugInterval, c.logger)

	c.logger.Printf("Rendering %dx%d with %d rays per pixel (using %d workers)...\n",
		width, height, c.sampleGrid*c.sampleGrid, c.threads)

	var workers []*pixelWorker
	var err error

	if c.threads == 0 {
		worker := c.newPixelWorker()
		workers = append(workers, worker)

		pool := NewWorkerPool(1, allocator)
		err = pool.run(0, func(int) { worker.drain(allocator) })
	} else {
		pool := NewWorkerPool(c.threads, allocator)
		for i := 0; i < pool.GetNumWorkers(); i++ {
			workers = append(workers, c.newPixelWorker())
		}
		pool.Start(func(id int) { workers[id].drain(allocator) })
		err = pool.Wait()
	}

	stats := RenderStats{
		TotalPixels:     int(allocator.Completed()),
		SamplesPerPixel: c.sampleGrid * c.sampleGrid,
		Workers:         c.threads,
		Duration:        time.Since(start),
	}
	for _, worker := range workers {
		stats.Rays.Merge(worker.stats)
	}

	if err != nil {
		return stats, fmt.Errorf("render aborted after %d/%d pixels: %w", stats.TotalPixels, allocator.Total(), err)
	}

	c.logger.Printf("Render completed in %v (%d pixels, %.0f rays/s)\n",
		stats.Duration, stats.TotalPixels, stats.RaysPerSecond())
	return stats, nil
}
